package token

import (
	"errors"
	"fmt"
)

var (
	ErrEscape       = errors.New("cannot escape")
	ErrUnterminated = errors.New("unterminated")
	ErrBadEscape    = errors.New("bad escape")
)

// EscapingError reports text that has no Ruby string literal form.
type EscapingError struct {
	Text   string
	Offset int
}

func (e *EscapingError) Unwrap() error {
	return ErrEscape
}

func (e *EscapingError) Error() string {
	return fmt.Sprintf("%s: invalid utf8 at byte %d of %q", ErrEscape, e.Offset, abbrev(e.Text))
}

func abbrev(s string) string {
	if len(s) <= 32 {
		return s
	}
	return s[:32] + "..."
}
