package value

import "fmt"

type Kind int

const (
	NilKind Kind = iota
	BoolKind
	NumberKind
	TextKind
	AtomKind
	SequenceKind
	MappingKind
	RawKind
	ExtensionKind
)

var kindNames = map[Kind]string{
	NilKind:       "Nil",
	BoolKind:      "Boolean",
	NumberKind:    "Number",
	TextKind:      "Text",
	AtomKind:      "Atom",
	SequenceKind:  "Sequence",
	MappingKind:   "Mapping",
	RawKind:       "Raw",
	ExtensionKind: "Extension",
}

func (k Kind) String() string {
	s, ok := kindNames[k]
	if ok {
		return s
	}
	return "<unknown kind>"
}

func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

func (k *Kind) UnmarshalText(d []byte) error {
	for kk, s := range kindNames {
		if s == string(d) {
			*k = kk
			return nil
		}
	}
	return fmt.Errorf("unrecognized kind %q", d)
}

func Kinds() []Kind {
	return []Kind{
		NilKind,
		BoolKind,
		NumberKind,
		TextKind,
		AtomKind,
		SequenceKind,
		MappingKind,
		RawKind,
		ExtensionKind,
	}
}

// IsLeaf reports whether values of kind k never contain nested values
// visible to the engine. Extension payloads are opaque and so count as
// non-leaf.
func (k Kind) IsLeaf() bool {
	switch k {
	case SequenceKind, MappingKind, ExtensionKind:
		return false
	default:
		return true
	}
}
