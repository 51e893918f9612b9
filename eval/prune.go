// Package eval compiles expr-lang predicates that prune mapping pairs
// from value trees before they are rendered.
package eval

import (
	"fmt"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"github.com/signadot/seedgen/debug"
	"github.com/signadot/seedgen/value"
)

// Rule is a compiled predicate. Pairs for which it holds are dropped.
type Rule struct {
	src string
	prg *vm.Program
}

func Compile(src string) (*Rule, error) {
	prg, err := expr.Compile(src, exprOpts()...)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %w", ErrCompile, src, err)
	}
	return &Rule{src: src, prg: prg}, nil
}

func MustCompile(src string) *Rule {
	r, err := Compile(src)
	if err != nil {
		panic(err)
	}
	return r
}

func (r *Rule) String() string {
	return r.src
}

// Drops reports whether the rule drops the pair p found at path.
func (r *Rule) Drops(path string, p *value.Pair) (bool, error) {
	out, err := expr.Run(r.prg, newEnv(path, p))
	if err != nil {
		return false, fmt.Errorf("%w at %s: %w", ErrEval, path, err)
	}
	b, _ := out.(bool)
	return b, nil
}

// Prune returns a copy of v without the mapping pairs, at any depth,
// for which r holds. v is not modified. Extension payloads are opaque
// and left as they are.
func (r *Rule) Prune(v *value.Value) (*value.Value, error) {
	return r.prune(v, "$")
}

func (r *Rule) prune(v *value.Value, path string) (*value.Value, error) {
	if v == nil {
		return nil, nil
	}
	switch v.Kind {
	case value.SequenceKind:
		items := make([]*value.Value, len(v.Items))
		for i, item := range v.Items {
			x, err := r.prune(item, fmt.Sprintf("%s[%d]", path, i))
			if err != nil {
				return nil, err
			}
			items[i] = x
		}
		return value.FromSeq(items...), nil
	case value.MappingKind:
		pairs := make([]value.Pair, 0, len(v.Pairs))
		for i := range v.Pairs {
			p := &v.Pairs[i]
			kPath := path + "." + p.Key.Name
			drop, err := r.Drops(kPath, p)
			if err != nil {
				return nil, err
			}
			if drop {
				if debug.Prune() {
					debug.Logf("prune %s (%s) by %q\n", kPath, p.Value, r.src)
				}
				continue
			}
			x, err := r.prune(p.Value, kPath)
			if err != nil {
				return nil, err
			}
			pairs = append(pairs, value.Field(p.Key, x))
		}
		return value.FromPairs(pairs...), nil
	default:
		return v, nil
	}
}
