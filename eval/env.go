package eval

import (
	"github.com/signadot/seedgen/value"
)

// Env is what a prune rule sees for each mapping pair.
type Env struct {
	Key   string `expr:"key"`
	Kind  string `expr:"kind"`
	Size  int    `expr:"size"`
	Text  string `expr:"text"`
	Blank bool   `expr:"blank"`
	Path  string `expr:"path"`
	// Value is the pair's value as plain data, nil for values with no
	// data form.
	Value any `expr:"value"`
}

func newEnv(path string, p *value.Pair) Env {
	v := p.Value
	if v == nil {
		v = value.Nil()
	}
	env := Env{
		Key:   p.Key.Name,
		Kind:  v.Kind.String(),
		Size:  v.Len(),
		Blank: value.Blank(v),
		Path:  path,
	}
	switch v.Kind {
	case value.NumberKind, value.TextKind, value.AtomKind, value.RawKind:
		env.Text = v.Text
	}
	if x, err := value.ToJSONAny(v); err == nil {
		env.Value = x
	}
	return env
}
