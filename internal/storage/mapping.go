package storage

import (
	"encoding/json"
	"time"
)

// Mapping is one stored submission.
type Mapping struct {
	Key        string          `json:"key"`
	Data       json.RawMessage `json:"data"`
	StoredDate time.Time       `json:"storedDate"`
}

// Document is the on-disk form of the store.
type Document struct {
	Mappings []Mapping `json:"mappings"`
}

// Find returns the index of the mapping with the given key or -1.
func Find(mappings []Mapping, key string) int {
	for i := range mappings {
		if mappings[i].Key == key {
			return i
		}
	}
	return -1
}
