// Package decode turns raw response bytes into typed values.
//
// The only implementation is JSON via encoding/json. Failures surface as
// *DecodeError carrying the attempted type name and the byte length of the
// input, so a truncated or mis-shaped payload can be diagnosed from the error
// alone. Payloads are never silently defaulted.
package decode

import (
	"encoding/json"
	"fmt"
)

// DecodeError reports a response body that does not match the expected schema.
type DecodeError struct {
	// Type is the name of the Go type the payload was decoded into.
	Type string

	// Size is the length of the payload in bytes.
	Size int

	Err error
}

// Error implements the error interface.
func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode: %d bytes into %s: %v", e.Size, e.Type, e.Err)
}

// Unwrap returns the underlying decoding error.
func (e *DecodeError) Unwrap() error {
	return e.Err
}

// JSON decodes data into a value of type T.
func JSON[T any](data []byte) (T, error) {
	var out T
	if err := Into(data, &out); err != nil {
		return out, err
	}
	return out, nil
}

// Into decodes data into the value pointed to by v. It matches the signature
// of json.Unmarshal so test doubles can stand in for it.
func Into(data []byte, v any) error {
	if err := json.Unmarshal(data, v); err != nil {
		return &DecodeError{
			Type: fmt.Sprintf("%T", v),
			Size: len(data),
			Err:  err,
		}
	}
	return nil
}
