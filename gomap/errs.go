package gomap

import (
	"errors"
	"fmt"
)

var ErrMarshal = errors.New("marshal error")

// MarshalError names the field path at which conversion failed.
type MarshalError struct {
	FieldPath string
	Message   string
	Err       error
}

func (e *MarshalError) Error() string {
	if e.FieldPath != "" {
		return fmt.Sprintf("marshal error at %s: %s", e.FieldPath, e.Message)
	}
	return fmt.Sprintf("marshal error: %s", e.Message)
}

func (e *MarshalError) Unwrap() error {
	if e.Err != nil {
		return e.Err
	}
	return ErrMarshal
}
