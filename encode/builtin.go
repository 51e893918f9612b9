package encode

import (
	"strconv"
	"strings"

	"github.com/signadot/seedgen/registry"
	"github.com/signadot/seedgen/token"
	"github.com/signadot/seedgen/value"
)

// Builtins returns a registry handling every variant except extensions.
func Builtins() *registry.Registry {
	return registry.New(
		registry.Handle(value.NilKind.String(), EncodeNil),
		registry.Handle(value.BoolKind.String(), EncodeBool),
		registry.Handle(value.NumberKind.String(), EncodeNumber),
		registry.Handle(value.TextKind.String(), EncodeText),
		registry.Handle(value.AtomKind.String(), EncodeAtom),
		registry.Handle(value.RawKind.String(), EncodeRaw),
		registry.Handle(value.SequenceKind.String(), EncodeSequence),
		registry.Handle(value.MappingKind.String(), EncodeMapping),
	)
}

func EncodeNil(_ *value.Value, _ int, enc registry.Encoder) (string, error) {
	return enc.Color(value.NilKind, "nil"), nil
}

func EncodeBool(v *value.Value, _ int, enc registry.Encoder) (string, error) {
	return enc.Color(value.BoolKind, strconv.FormatBool(v.Bool)), nil
}

func EncodeNumber(v *value.Value, _ int, enc registry.Encoder) (string, error) {
	if !token.IsNumber(v.Text) {
		return "", registry.Malformed(v.VariantTag(), "number", "%q is not a numeric literal", v.Text)
	}
	return enc.Color(value.NumberKind, v.Text), nil
}

func EncodeText(v *value.Value, _ int, enc registry.Encoder) (string, error) {
	q, err := token.Quote(v.Text)
	if err != nil {
		return "", err
	}
	return enc.Color(value.TextKind, q), nil
}

func EncodeAtom(v *value.Value, _ int, enc registry.Encoder) (string, error) {
	if v.Text == "" {
		return "", registry.Malformed(v.VariantTag(), "atom", "empty symbol")
	}
	if token.IsMethodName(v.Text) {
		return enc.Color(value.AtomKind, ":"+v.Text), nil
	}
	q, err := token.Quote(v.Text)
	if err != nil {
		return "", err
	}
	return enc.Color(value.AtomKind, ":"+q), nil
}

func EncodeRaw(v *value.Value, _ int, enc registry.Encoder) (string, error) {
	if strings.TrimSpace(v.Text) == "" {
		return "", registry.Malformed(v.VariantTag(), "raw", "empty code fragment")
	}
	return enc.Color(value.RawKind, v.Text), nil
}

func EncodeSequence(v *value.Value, depth int, enc registry.Encoder) (string, error) {
	if v.Kind != value.SequenceKind {
		return "", registry.Malformed(v.VariantTag(), "kind", "want %s got %s", value.SequenceKind, v.Kind)
	}
	if len(v.Items) == 0 {
		return "[]", nil
	}
	var buf strings.Builder
	buf.WriteString("[\n")
	prefix := enc.Indent(depth + 1)
	for i, item := range v.Items {
		s, err := enc.Encode(item, depth+1)
		if err != nil {
			return "", registry.AtPath(err, "["+strconv.Itoa(i)+"]")
		}
		if i > 0 {
			buf.WriteString(",\n")
		}
		buf.WriteString(prefix)
		buf.WriteString(s)
	}
	buf.WriteByte('\n')
	buf.WriteString(enc.Indent(depth))
	buf.WriteByte(']')
	return buf.String(), nil
}

func EncodeMapping(v *value.Value, depth int, enc registry.Encoder) (string, error) {
	if v.Kind != value.MappingKind {
		return "", registry.Malformed(v.VariantTag(), "kind", "want %s got %s", value.MappingKind, v.Kind)
	}
	if len(v.Pairs) == 0 {
		return "{}", nil
	}
	var buf strings.Builder
	buf.WriteString("{\n")
	prefix := enc.Indent(depth + 1)
	seen := make(map[value.Key]struct{}, len(v.Pairs))
	for i := range v.Pairs {
		p := &v.Pairs[i]
		sk := renderedKey(p.Key)
		if _, dup := seen[sk]; dup {
			return "", registry.Malformed(v.VariantTag(), "key", "duplicate key %s", p.Key)
		}
		seen[sk] = struct{}{}
		k, err := EncodeKey(p.Key, enc)
		if err != nil {
			return "", registry.AtPath(err, keySegment(p.Key))
		}
		s, err := enc.Encode(p.Value, depth+1)
		if err != nil {
			return "", registry.AtPath(err, keySegment(p.Key))
		}
		if i > 0 {
			buf.WriteString(",\n")
		}
		buf.WriteString(prefix)
		buf.WriteString(k)
		buf.WriteString(s)
	}
	buf.WriteByte('\n')
	buf.WriteString(enc.Indent(depth))
	buf.WriteByte('}')
	return buf.String(), nil
}

// EncodeKey returns the key and its separator: "name: " when the key is
// an atom that is also an identifier, "\"name\" => " for text keys and
// other atoms, "(expr) => " for expression keys.
func EncodeKey(k value.Key, enc registry.Encoder) (string, error) {
	switch k.Kind {
	case value.AtomKey:
		if token.IsIdent(k.Name) {
			return enc.Color(value.AtomKind, k.Name) + ": ", nil
		}
		fallthrough
	case value.TextKey:
		q, err := token.Quote(k.Name)
		if err != nil {
			return "", err
		}
		return enc.Color(value.TextKind, q) + " => ", nil
	case value.ExprKey:
		if strings.TrimSpace(k.Name) == "" {
			return "", registry.Malformed(value.MappingKind.String(), "key", "empty expression key")
		}
		return "(" + enc.Color(value.RawKind, k.Name) + ") => ", nil
	default:
		return "", registry.Malformed(value.MappingKind.String(), "key", "unknown key kind %d", k.Kind)
	}
}

// renderedKey maps keys that print the same to the same Key: atoms
// that are not identifiers are written as text keys.
func renderedKey(k value.Key) value.Key {
	if k.Kind == value.AtomKey && !token.IsIdent(k.Name) {
		k.Kind = value.TextKey
	}
	return k
}

func keySegment(k value.Key) string {
	f := k.Name
	if f != "" && strings.IndexAny(f, "'.*$[]() ") == -1 {
		return "." + f
	}
	return ".'" + strings.ReplaceAll(f, "'", "\\'") + "'"
}
