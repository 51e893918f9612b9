package encode

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/signadot/seedgen/registry"
	"github.com/signadot/seedgen/token"
	"github.com/signadot/seedgen/value"
)

type encTest struct {
	name string
	in   *value.Value
	out  string
}

var encTests = []encTest{
	{name: "nil", in: value.Nil(), out: "nil"},
	{name: "true", in: value.FromBool(true), out: "true"},
	{name: "false", in: value.FromBool(false), out: "false"},
	{name: "int", in: value.FromNumber("42"), out: "42"},
	{name: "float keeps form", in: value.FromNumber("1.50"), out: "1.50"},
	{name: "negative", in: value.FromInt(-3), out: "-3"},
	{name: "text", in: value.FromString(`say "hi"`), out: `"say \"hi\""`},
	{name: "atom", in: value.FromAtom("create"), out: ":create"},
	{name: "atom bang", in: value.FromAtom("save!"), out: ":save!"},
	{name: "atom quoted", in: value.FromAtom("a-b"), out: `:"a-b"`},
	{name: "raw", in: value.FromRaw("FormSection.where(unique_id: %w[a b])"), out: "FormSection.where(unique_id: %w[a b])"},
	{name: "empty seq", in: value.FromSeq(), out: "[]"},
	{name: "empty map", in: value.FromPairs(), out: "{}"},
	{
		name: "seq",
		in:   value.FromSeq(value.FromAtom("a"), value.FromAtom("b"), value.FromAtom("c")),
		out:  "[\n\t:a,\n\t:b,\n\t:c\n]",
	},
	{
		name: "key forms",
		in: value.FromPairs(
			value.Field(value.Atom("a"), value.FromNumber("1")),
			value.Field(value.Text("b-c"), value.FromString("x")),
		),
		out: "{\n\ta: 1,\n\t\"b-c\" => \"x\"\n}",
	},
	{
		name: "atom key not identifier",
		in: value.FromPairs(
			value.Field(value.Atom("a-b"), value.FromBool(true)),
			value.Field(value.Atom("1st"), value.FromBool(false)),
		),
		out: "{\n\t\"a-b\" => true,\n\t\"1st\" => false\n}",
	},
	{
		name: "text key always quoted",
		in:   value.FromPairs(value.Field(value.Text("name"), value.Nil())),
		out:  "{\n\t\"name\" => nil\n}",
	},
	{
		name: "expr key",
		in: value.FromPairs(
			value.Field(value.Expr("Role.find_by(unique_id: 'admin').id"), value.FromSeq()),
		),
		out: "{\n\t(Role.find_by(unique_id: 'admin').id) => []\n}",
	},
	{
		name: "nested",
		in: value.FromPairs(
			value.Field(value.Atom("name"), value.FromString("Agency 1")),
			value.Field(value.Atom("roles"), value.FromSeq(
				value.FromPairs(value.Field(value.Atom("id"), value.FromNumber("1"))),
				value.FromSeq(),
			)),
			value.Field(value.Atom("empty"), value.FromPairs()),
		),
		out: "{\n" +
			"\tname: \"Agency 1\",\n" +
			"\troles: [\n" +
			"\t\t{\n" +
			"\t\t\tid: 1\n" +
			"\t\t},\n" +
			"\t\t[]\n" +
			"\t],\n" +
			"\tempty: {}\n" +
			"}",
	},
}

func TestEncode(t *testing.T) {
	for _, tt := range encTests {
		t.Run(tt.name, func(t *testing.T) {
			buf := bytes.NewBuffer(nil)
			if err := Encode(tt.in, buf); err != nil {
				t.Fatal(err)
			}
			if got := buf.String(); got != tt.out {
				t.Errorf("got\n%s\nwant\n%s", got, tt.out)
			}
		})
	}
}

func TestEncodeTextRoundTrip(t *testing.T) {
	for _, s := range []string{
		"plain",
		`"quoted"`,
		`back\slash`,
		"multi\nline\n",
		`#{interp} #@ivar #$global`,
		"tab\tand\x00nul",
	} {
		out, err := New(nil).String(value.FromString(s))
		if err != nil {
			t.Fatalf("encode %q: %v", s, err)
		}
		back, err := token.Unquote(out)
		if err != nil {
			t.Fatalf("unquote %s: %v", out, err)
		}
		if back != s {
			t.Errorf("round trip of %q gave %q", s, back)
		}
		if strings.Contains(out, "\n") {
			t.Errorf("literal newline in %s", out)
		}
	}
}

func TestEncodeOptions(t *testing.T) {
	v := value.FromSeq(value.FromPairs(value.Field(value.Atom("a"), value.Nil())))
	es := New(nil, Indent("  "), Depth(1))
	got, err := es.String(v)
	if err != nil {
		t.Fatal(err)
	}
	want := "[\n    {\n      a: nil\n    }\n  ]"
	if got != want {
		t.Errorf("got\n%s\nwant\n%s", got, want)
	}
}

func TestEncodeErrors(t *testing.T) {
	tests := []struct {
		name     string
		in       *value.Value
		sentinel error
		msg      string
	}{
		{
			name:     "unhandled extension",
			in:       value.FromSeq(value.FromInt(1), value.Ext("Widget", struct{}{})),
			sentinel: registry.ErrUnhandledType,
			msg:      "at $[1]: unhandled type Widget",
		},
		{
			name:     "nil pointer",
			in:       value.FromPairs(value.Field(value.Atom("x"), nil)),
			sentinel: registry.ErrUnhandledType,
			msg:      "at $.x: unhandled type <nil>",
		},
		{
			name: "duplicate key",
			in: value.FromPairs(
				value.Field(value.Atom("a"), value.Nil()),
				value.Field(value.Atom("a"), value.Nil()),
			),
			sentinel: registry.ErrMalformedPayload,
			msg:      "field key: duplicate key :a",
		},
		{
			name: "duplicate rendered key",
			in: value.FromPairs(
				value.Field(value.Atom("a-b"), value.FromInt(1)),
				value.Field(value.Text("a-b"), value.FromInt(2)),
			),
			sentinel: registry.ErrMalformedPayload,
			msg:      "field key: duplicate key",
		},
		{
			name:     "bad number",
			in:       value.FromPairs(value.Field(value.Text("n m"), value.FromNumber("12abc"))),
			sentinel: registry.ErrMalformedPayload,
			msg:      "at $.'n m': malformed payload: Number field number",
		},
		{
			name:     "empty raw",
			in:       value.FromRaw(" "),
			sentinel: registry.ErrMalformedPayload,
			msg:      "Raw field raw",
		},
		{
			name:     "empty expr key",
			in:       value.FromPairs(value.Field(value.Expr(""), value.Nil())),
			sentinel: registry.ErrMalformedPayload,
			msg:      "field key: empty expression key",
		},
		{
			name:     "bad utf8",
			in:       value.FromSeq(value.FromSeq(value.FromString("a\xffb"))),
			sentinel: token.ErrEscape,
			msg:      "at $[0][0]: cannot escape",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := bytes.NewBufferString("")
			err := Encode(tt.in, buf)
			if !errors.Is(err, tt.sentinel) {
				t.Fatalf("expected %v, got %v", tt.sentinel, err)
			}
			if !strings.Contains(err.Error(), tt.msg) {
				t.Errorf("error %q does not contain %q", err, tt.msg)
			}
			if buf.Len() != 0 {
				t.Errorf("partial output written: %q", buf.String())
			}
		})
	}
}

func TestDelegatedKindMismatch(t *testing.T) {
	es := New(nil)
	_, err := EncodeMapping(value.FromSeq(), 0, es)
	if !errors.Is(err, registry.ErrMalformedPayload) {
		t.Errorf("expected malformed payload, got %v", err)
	}
	_, err = EncodeSequence(value.FromPairs(), 0, es)
	if !errors.Is(err, registry.ErrMalformedPayload) {
		t.Errorf("expected malformed payload, got %v", err)
	}
}

func TestOverrideMapping(t *testing.T) {
	sorted := func(v *value.Value, depth int, enc registry.Encoder) (string, error) {
		return "SORTED", nil
	}
	reg := registry.Compose(Builtins(), registry.New(registry.Handle("Mapping", sorted)))
	got, err := New(reg).String(value.FromSeq(value.FromPairs()))
	if err != nil {
		t.Fatal(err)
	}
	if want := "[\n\tSORTED\n]"; got != want {
		t.Errorf("got %q want %q", got, want)
	}
}

func TestColors(t *testing.T) {
	old := color.NoColor
	color.NoColor = false
	defer func() { color.NoColor = old }()

	got, err := New(nil, EncodeColors(NewColors())).String(value.FromPairs(
		value.Field(value.Atom("pct"), value.FromString("100%")),
	))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(got, "\x1b[") {
		t.Errorf("expected escape sequences in %q", got)
	}
	if !strings.Contains(got, `"100%"`) {
		t.Errorf("percent sign mangled in %q", got)
	}
}
