package eval

import (
	"fmt"
	"slices"
	"sync"
)

var (
	mu    sync.RWMutex
	rules = map[string]*Rule{}
)

// DefaultPrune drops nil values and empty lists, which seed files
// never need to spell out.
var DefaultPrune = MustCompile(`kind == "Nil" || (kind == "Sequence" && size == 0)`)

func Register(name string, r *Rule) error {
	mu.Lock()
	defer mu.Unlock()
	if _, present := rules[name]; present {
		return fmt.Errorf("%s: %w", name, ErrRuleExists)
	}
	rules[name] = r
	return nil
}

func init() {
	Register("nil", MustCompile(`kind == "Nil"`))
	Register("empty", MustCompile(`kind in ["Sequence", "Mapping"] && size == 0`))
	Register("blank", MustCompile(`blank`))
	Register("default", DefaultPrune)
}

func Lookup(name string) *Rule {
	mu.RLock()
	defer mu.RUnlock()
	return rules[name]
}

func Names() []string {
	mu.RLock()
	defer mu.RUnlock()
	res := make([]string, 0, len(rules))
	for name := range rules {
		res = append(res, name)
	}
	slices.Sort(res)
	return res
}

// Resolve returns the rule registered as s, or compiles s.
func Resolve(s string) (*Rule, error) {
	if r := Lookup(s); r != nil {
		return r, nil
	}
	return Compile(s)
}
