// Package codec converts documents to and from the string values held by the store.
package codec

import (
	"encoding/json"
	"fmt"

	apperrors "github.com/julianstephens/aisle/internal/errors"
)

// Encode serializes doc as compact JSON.
func Encode[T any](doc T) (string, error) {
	data, err := json.Marshal(doc)
	if err != nil {
		return "", fmt.Errorf("failed to serialize document: %w", err)
	}
	return string(data), nil
}

// Decode parses raw, read from key, into a T. Fields missing from raw keep
// their zero value; malformed input yields a *errors.ParseError.
func Decode[T any](key, raw string) (T, error) {
	var doc T
	if err := json.Unmarshal([]byte(raw), &doc); err != nil {
		var zero T
		return zero, &apperrors.ParseError{Key: key, Err: err}
	}
	return doc, nil
}
