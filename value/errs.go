package value

import "errors"

var (
	ErrUnsupported = errors.New("unsupported go value")
	ErrNotData     = errors.New("value has no data representation")
)
