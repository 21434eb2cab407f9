package storage

import (
	"errors"
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

const documentSchema = `{
  "type": "object",
  "required": ["mappings"],
  "properties": {
    "mappings": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["key", "data", "storedDate"],
        "properties": {
          "key": {"type": "string", "minLength": 1},
          "storedDate": {"type": "string", "minLength": 1}
        }
      }
    }
  }
}`

var ErrMalformedDocument = errors.New("malformed store document")

var schemaLoader = gojsonschema.NewStringLoader(documentSchema)

func validateDocument(bs []byte) error {
	result, err := gojsonschema.Validate(schemaLoader, gojsonschema.NewBytesLoader(bs))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedDocument, err)
	}
	if result.Valid() {
		return nil
	}
	msgs := make([]string, 0, len(result.Errors()))
	for _, e := range result.Errors() {
		msgs = append(msgs, e.String())
	}
	return fmt.Errorf("%w: %s", ErrMalformedDocument, strings.Join(msgs, "; "))
}
