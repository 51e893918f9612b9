package parse

import (
	"errors"
	"fmt"

	"github.com/goccy/go-yaml/ast"
)

var (
	ErrParse      = errors.New("parse error")
	ErrUnknownTag = fmt.Errorf("%w: unknown tag", ErrParse)
	ErrKeyType    = fmt.Errorf("%w: unsupported key", ErrParse)
	ErrAlias      = fmt.Errorf("%w: undefined alias", ErrParse)
)

// PosError places an error at a line and column of the input.
type PosError struct {
	Line, Column int
	Err          error
}

func (e *PosError) Unwrap() error {
	return e.Err
}

func (e *PosError) Error() string {
	return fmt.Sprintf("%d:%d: %v", e.Line, e.Column, e.Err)
}

func posErr(n ast.Node, err error) error {
	tok := n.GetToken()
	if tok == nil || tok.Position == nil {
		return err
	}
	return &PosError{Line: tok.Position.Line, Column: tok.Position.Column, Err: err}
}
