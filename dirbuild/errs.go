package dirbuild

import (
	"errors"
	"fmt"
)

var (
	ErrNoBuildFile = errors.New("no build file")
	ErrConfig      = errors.New("invalid build configuration")
	ErrConflict    = fmt.Errorf("%w: output conflict", ErrConfig)
)

// SourceError locates a failure at a record of a source file. Record is
// -1 for failures concerning the whole source.
type SourceError struct {
	File   string
	Record int
	Err    error
}

func (e *SourceError) Unwrap() error {
	return e.Err
}

func (e *SourceError) Error() string {
	if e.Record < 0 {
		return fmt.Sprintf("source %s: %v", e.File, e.Err)
	}
	return fmt.Sprintf("source %s record %d: %v", e.File, e.Record, e.Err)
}
