package value

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Value is a node of the tree handed to the encoder. Exactly the fields
// relevant to Kind are set; the rest are zero.
type Value struct {
	Kind Kind

	Bool  bool
	Text  string // Number literal, Text, Atom name or Raw code
	Items []*Value
	Pairs []Pair

	// Extension variants
	Tag     string
	Payload any
}

func Nil() *Value {
	return &Value{Kind: NilKind}
}

func FromBool(b bool) *Value {
	return &Value{Kind: BoolKind, Bool: b}
}

// FromNumber keeps lit exactly as given, so "1.0" and "1" stay distinct.
func FromNumber(lit string) *Value {
	return &Value{Kind: NumberKind, Text: lit}
}

func FromInt(i int64) *Value {
	return FromNumber(strconv.FormatInt(i, 10))
}

func FromUint(u uint64) *Value {
	return FromNumber(strconv.FormatUint(u, 10))
}

// FromFloat produces a float literal. Infinities and NaN have no literal
// form and come back as Raw references to the Float constants.
func FromFloat(f float64) *Value {
	switch {
	case math.IsInf(f, 1):
		return FromRaw("Float::INFINITY")
	case math.IsInf(f, -1):
		return FromRaw("-Float::INFINITY")
	case math.IsNaN(f):
		return FromRaw("Float::NAN")
	}
	lit := strconv.FormatFloat(f, 'g', -1, 64)
	if !strings.ContainsAny(lit, ".eE") {
		lit += ".0"
	} else if i := strings.IndexAny(lit, "eE"); i != -1 && !strings.Contains(lit[:i], ".") {
		// 1e+21 is not a float literal, 1.0e+21 is
		lit = lit[:i] + ".0" + lit[i:]
	}
	return FromNumber(lit)
}

func FromString(s string) *Value {
	return &Value{Kind: TextKind, Text: s}
}

func FromAtom(name string) *Value {
	return &Value{Kind: AtomKind, Text: name}
}

func FromRaw(code string) *Value {
	return &Value{Kind: RawKind, Text: code}
}

func FromSeq(items ...*Value) *Value {
	if items == nil {
		items = []*Value{}
	}
	return &Value{Kind: SequenceKind, Items: items}
}

func FromPairs(pairs ...Pair) *Value {
	if pairs == nil {
		pairs = []Pair{}
	}
	return &Value{Kind: MappingKind, Pairs: pairs}
}

// FromAtomMap builds a mapping with atom keys in the order given by keys.
func FromAtomMap(keys []string, m map[string]*Value) *Value {
	pairs := make([]Pair, 0, len(keys))
	for _, k := range keys {
		pairs = append(pairs, Field(Atom(k), m[k]))
	}
	return FromPairs(pairs...)
}

func Ext(tag string, payload any) *Value {
	return &Value{Kind: ExtensionKind, Tag: tag, Payload: payload}
}

// VariantTag is the name handlers are registered under: the kind name
// for built-in variants, the extension tag otherwise.
func (v *Value) VariantTag() string {
	if v.Kind == ExtensionKind {
		return v.Tag
	}
	return v.Kind.String()
}

// Get returns the value stored under k, or nil.
func (v *Value) Get(k Key) *Value {
	if v.Kind != MappingKind {
		return nil
	}
	for i := range v.Pairs {
		if v.Pairs[i].Key.Same(k) {
			return v.Pairs[i].Value
		}
	}
	return nil
}

// Lookup returns the value stored under name as either an atom or a text
// key, atom first.
func (v *Value) Lookup(name string) *Value {
	if res := v.Get(Atom(name)); res != nil {
		return res
	}
	return v.Get(Text(name))
}

func (v *Value) Len() int {
	switch v.Kind {
	case SequenceKind:
		return len(v.Items)
	case MappingKind:
		return len(v.Pairs)
	case TextKind, AtomKind, RawKind, NumberKind:
		return len(v.Text)
	default:
		return 0
	}
}

// String is a short description used in error messages and debug
// output; it is not the encoded form.
func (v *Value) String() string {
	if v == nil {
		return "<nil value>"
	}
	switch v.Kind {
	case NilKind:
		return "Nil"
	case BoolKind:
		return fmt.Sprintf("Boolean(%t)", v.Bool)
	case NumberKind:
		return fmt.Sprintf("Number(%s)", v.Text)
	case TextKind:
		return fmt.Sprintf("Text(%q)", abbrev(v.Text))
	case AtomKind:
		return fmt.Sprintf("Atom(%s)", v.Text)
	case RawKind:
		return fmt.Sprintf("Raw(%s)", abbrev(v.Text))
	case SequenceKind:
		return fmt.Sprintf("Sequence(%d items)", len(v.Items))
	case MappingKind:
		keys := make([]string, 0, min(len(v.Pairs), 4))
		for i := range v.Pairs {
			if i == 4 {
				keys = append(keys, "...")
				break
			}
			keys = append(keys, v.Pairs[i].Key.String())
		}
		return fmt.Sprintf("Mapping{%s}", strings.Join(keys, " "))
	case ExtensionKind:
		return fmt.Sprintf("Extension(%s, %T)", v.Tag, v.Payload)
	default:
		return "<unknown kind>"
	}
}

func abbrev(s string) string {
	const max = 40
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}
