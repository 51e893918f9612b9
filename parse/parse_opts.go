package parse

type parseOpts struct {
	textKeys bool
}

type ParseOption func(*parseOpts)

// ParseTextKeys makes plain mapping keys Text keys, rendered "key" =>,
// instead of Atom keys.
func ParseTextKeys(v bool) ParseOption {
	return func(o *parseOpts) { o.textKeys = v }
}
