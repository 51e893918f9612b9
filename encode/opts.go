package encode

import "github.com/signadot/seedgen/registry"

type EncodeOption func(*EncState)

// Indent sets the unit written once per nesting level, a tab by default.
func Indent(unit string) EncodeOption {
	return func(es *EncState) { es.unit = unit }
}

// Depth sets the nesting level of the top level value, for output
// spliced into already indented code.
func Depth(n int) EncodeOption {
	return func(es *EncState) { es.depth = n }
}

func EncodeColors(c *Colors) EncodeOption {
	return func(es *EncState) { es.colors = c }
}

func WithRegistry(r *registry.Registry) EncodeOption {
	return func(es *EncState) { es.reg = r }
}
