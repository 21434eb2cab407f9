package app

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/ipoluianov/jsonstore/internal/client"
)

type ClientParams struct {
	URL     string
	PutFile string
	Key     string
	GetID   string
}

// RunClient executes the -put / -get command line actions against a
// running server and prints the result to out.
func RunClient(ctx context.Context, out io.Writer, params ClientParams) error {
	return runClient(ctx, out, os.Stdin, client.New(params.URL, nil), params)
}

func runClient(ctx context.Context, out io.Writer, in io.Reader, c *client.Client, params ClientParams) error {
	if len(params.PutFile) > 0 {
		var data []byte
		var err error
		if params.PutFile == "-" {
			data, err = io.ReadAll(in)
		} else {
			data, err = os.ReadFile(params.PutFile)
		}
		if err != nil {
			return fmt.Errorf("read %s: %w", params.PutFile, err)
		}
		if !json.Valid(data) {
			return fmt.Errorf("%s does not contain valid JSON", params.PutFile)
		}

		key := params.Key
		if len(key) == 0 {
			key = client.GenerateKey(client.DefaultKeyLength)
		}
		res, err := c.Put(ctx, key, json.RawMessage(data))
		if err != nil {
			return err
		}
		_, _ = fmt.Fprintln(out, res.Key, params.URL+res.AccessURL)
	}

	if len(params.GetID) > 0 {
		res, err := c.Get(ctx, params.GetID)
		if err != nil {
			return err
		}
		bs, err := json.MarshalIndent(res.Data, "", "  ")
		if err != nil {
			return err
		}
		_, _ = fmt.Fprintln(out, string(bs))
	}
	return nil
}
