package value

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestFromFloat(t *testing.T) {
	tests := []struct {
		in   float64
		kind Kind
		out  string
	}{
		{in: 1, kind: NumberKind, out: "1.0"},
		{in: 1.5, kind: NumberKind, out: "1.5"},
		{in: -0.25, kind: NumberKind, out: "-0.25"},
		{in: 1e21, kind: NumberKind, out: "1.0e+21"},
		{in: 1.5e-7, kind: NumberKind, out: "1.5e-07"},
		{in: math.Inf(1), kind: RawKind, out: "Float::INFINITY"},
		{in: math.Inf(-1), kind: RawKind, out: "-Float::INFINITY"},
		{in: math.NaN(), kind: RawKind, out: "Float::NAN"},
	}
	for _, tt := range tests {
		v := FromFloat(tt.in)
		if v.Kind != tt.kind || v.Text != tt.out {
			t.Errorf("FromFloat(%v) = %s %q want %s %q", tt.in, v.Kind, v.Text, tt.kind, tt.out)
		}
	}
}

func TestKindText(t *testing.T) {
	for _, k := range Kinds() {
		d, err := k.MarshalText()
		if err != nil {
			t.Fatal(err)
		}
		var back Kind
		if err := back.UnmarshalText(d); err != nil {
			t.Fatal(err)
		}
		if back != k {
			t.Errorf("got %s want %s", back, k)
		}
	}
	var k Kind
	if err := k.UnmarshalText([]byte("Hash")); err == nil {
		t.Error("expected error for unknown kind")
	}
}

func TestBlank(t *testing.T) {
	tests := []struct {
		v     *Value
		blank bool
	}{
		{v: nil, blank: true},
		{v: Nil(), blank: true},
		{v: FromString(""), blank: true},
		{v: FromString(" \n"), blank: true},
		{v: FromString("x"), blank: false},
		{v: FromSeq(), blank: true},
		{v: FromSeq(Nil()), blank: false},
		{v: FromPairs(), blank: true},
		{v: FromBool(false), blank: false},
		{v: FromInt(0), blank: false},
		{v: Ext("X", nil), blank: false},
	}
	for _, tt := range tests {
		if got := Blank(tt.v); got != tt.blank {
			t.Errorf("Blank(%s) = %t want %t", tt.v, got, tt.blank)
		}
	}
}

func TestLookup(t *testing.T) {
	m := FromPairs(
		Field(Text("unique_id"), FromString("t")),
		Field(Atom("name"), FromString("n")),
		Field(Atom("unique_id"), FromString("a")),
	)
	if got := m.Lookup("unique_id"); got.Text != "a" {
		t.Errorf("atom key should win, got %s", got)
	}
	if got := m.Get(Text("unique_id")); got.Text != "t" {
		t.Errorf("got %s", got)
	}
	if got := m.Lookup("missing"); got != nil {
		t.Errorf("got %s want nil", got)
	}
	if got := FromSeq().Lookup("x"); got != nil {
		t.Errorf("lookup on sequence should be nil, got %s", got)
	}
}

func TestMarshalJSONKeepsOrder(t *testing.T) {
	v := FromPairs(
		Field(Atom("z"), FromInt(1)),
		Field(Text("a"), FromSeq(FromBool(true), Nil(), FromAtom("sym"))),
		Field(Atom("m"), FromNumber("1.50")),
	)
	d, err := json.Marshal(v)
	if err != nil {
		t.Fatal(err)
	}
	want := `{"z":1,"a":[true,null,"sym"],"m":1.50}`
	if string(d) != want {
		t.Errorf("got %s want %s", d, want)
	}
	if _, err := json.Marshal(FromPairs(Field(Expr("x.y"), Nil()))); err == nil {
		t.Error("expected error marshaling expression key")
	}
	if _, err := json.Marshal(FromRaw("X.find(1)")); err == nil {
		t.Error("expected error marshaling raw")
	}
}

func TestFromAny(t *testing.T) {
	var x any
	if err := json.Unmarshal([]byte(`{"b":[1,"two",null],"a":{"c":false}}`), &x); err != nil {
		t.Fatal(err)
	}
	v, err := FromAny(x)
	if err != nil {
		t.Fatal(err)
	}
	want := FromPairs(
		Field(Atom("a"), FromPairs(Field(Atom("c"), FromBool(false)))),
		Field(Atom("b"), FromSeq(FromFloat(1), FromString("two"), Nil())),
	)
	if diff := cmp.Diff(want, v); diff != "" {
		t.Errorf("FromAny mismatch (-want +got):\n%s", diff)
	}
	back, err := ToJSONAny(v)
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := back.(map[string]any)["b"].([]any); !ok {
		t.Errorf("expected []any, got %T", back.(map[string]any)["b"])
	}
	if _, err := FromAny(struct{}{}); err == nil {
		t.Error("expected error for struct")
	}
}
