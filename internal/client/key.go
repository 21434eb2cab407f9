package client

import (
	"crypto/rand"
	"math/big"
)

const DefaultKeyLength = 8

const keyAlphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// GenerateKey returns a random alphanumeric key. Existing keys are not
// checked: a collision overwrites the stored mapping.
func GenerateKey(n int) string {
	if n < 1 {
		n = DefaultKeyLength
	}
	max := big.NewInt(int64(len(keyAlphabet)))
	b := make([]byte, n)
	for i := range b {
		idx, err := rand.Int(rand.Reader, max)
		if err != nil {
			panic(err)
		}
		b[i] = keyAlphabet[idx.Int64()]
	}
	return string(b)
}
