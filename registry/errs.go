package registry

import (
	"errors"
	"fmt"
)

var (
	ErrUnhandledType    = errors.New("unhandled type")
	ErrMalformedPayload = errors.New("malformed payload")
)

type UnhandledTypeError struct {
	Tag  string
	Desc string
}

func (e *UnhandledTypeError) Unwrap() error {
	return ErrUnhandledType
}

func (e *UnhandledTypeError) Error() string {
	return fmt.Sprintf("%s %s for %s", ErrUnhandledType, e.Tag, e.Desc)
}

// MalformedPayloadError is returned by handlers which recognise their
// variant but cannot render one of its fields.
type MalformedPayloadError struct {
	Tag    string
	Field  string
	Reason string
}

func (e *MalformedPayloadError) Unwrap() error {
	return ErrMalformedPayload
}

func (e *MalformedPayloadError) Error() string {
	return fmt.Sprintf("%s: %s field %s: %s", ErrMalformedPayload, e.Tag, e.Field, e.Reason)
}

func Malformed(tag, field, format string, args ...any) error {
	return &MalformedPayloadError{
		Tag:    tag,
		Field:  field,
		Reason: fmt.Sprintf(format, args...),
	}
}

// PathError locates an error inside the value tree, as in $.roles[2].name.
type PathError struct {
	Path string
	Err  error
}

func (e *PathError) Unwrap() error {
	return e.Err
}

func (e *PathError) Error() string {
	return fmt.Sprintf("at $%s: %s", e.Path, e.Err)
}

// AtPath prefixes err's location with seg. Container handlers call it
// on errors coming back from their children.
func AtPath(err error, seg string) error {
	if err == nil {
		return nil
	}
	if pe, ok := err.(*PathError); ok {
		pe.Path = seg + pe.Path
		return pe
	}
	return &PathError{Path: seg, Err: err}
}
