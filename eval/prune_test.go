package eval

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/signadot/seedgen/value"
)

func atom(k string, v *value.Value) value.Pair {
	return value.Field(value.Atom(k), v)
}

func sample() *value.Value {
	return value.FromPairs(
		atom("name", value.FromString("Agency 1")),
		atom("logo", value.Nil()),
		atom("services", value.FromSeq()),
		atom("notes", value.FromString("  ")),
		atom("count", value.FromNumber("0")),
		atom("nested", value.FromSeq(value.FromPairs(
			atom("a", value.Nil()),
			atom("b", value.FromBool(false)),
		))),
	)
}

func TestDefaultPrune(t *testing.T) {
	in := sample()
	got, err := DefaultPrune.Prune(in)
	if err != nil {
		t.Fatal(err)
	}
	want := value.FromPairs(
		atom("name", value.FromString("Agency 1")),
		atom("notes", value.FromString("  ")),
		atom("count", value.FromNumber("0")),
		atom("nested", value.FromSeq(value.FromPairs(
			atom("b", value.FromBool(false)),
		))),
	)
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("(-want +got)\n%s", diff)
	}
	if diff := cmp.Diff(sample(), in); diff != "" {
		t.Errorf("input modified (-want +got)\n%s", diff)
	}
}

func TestRules(t *testing.T) {
	tests := []struct {
		rule string
		keep []string
	}{
		{rule: "blank", keep: []string{"name", "count", "nested"}},
		{rule: "nil", keep: []string{"name", "services", "notes", "count", "nested"}},
		{rule: `key startsWith "n"`, keep: []string{"logo", "services", "count"}},
		{rule: `text == "0"`, keep: []string{"name", "logo", "services", "notes", "nested"}},
		{rule: `path == "$.logo" || value == "Agency 1"`, keep: []string{"services", "notes", "count", "nested"}},
		{rule: `!isIdent(key) || size > 1`, keep: []string{"logo", "services", "count", "nested"}},
	}
	for _, tt := range tests {
		r, err := Resolve(tt.rule)
		if err != nil {
			t.Fatalf("%s: %v", tt.rule, err)
		}
		got, err := r.Prune(sample())
		if err != nil {
			t.Fatalf("%s: %v", tt.rule, err)
		}
		var keys []string
		for _, p := range got.Pairs {
			keys = append(keys, p.Key.Name)
		}
		if diff := cmp.Diff(tt.keep, keys); diff != "" {
			t.Errorf("%s (-want +got)\n%s", tt.rule, diff)
		}
	}
}

func TestCompileErrors(t *testing.T) {
	for _, src := range []string{`kind ==`, `size + 1`, `nope == 1`} {
		if _, err := Compile(src); !errors.Is(err, ErrCompile) {
			t.Errorf("%q: got %v", src, err)
		}
	}
}

func TestRegister(t *testing.T) {
	if err := Register("nil", MustCompile("true")); !errors.Is(err, ErrRuleExists) {
		t.Errorf("got %v", err)
	}
	if Lookup("default") != DefaultPrune {
		t.Error("default rule not registered")
	}
}
