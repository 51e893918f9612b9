package value

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// ToJSONAny is the inverse of FromAny for data variants. Atoms become
// strings; Raw code, expression keys and extensions have no data form.
func ToJSONAny(v *Value) (any, error) {
	switch v.Kind {
	case NilKind:
		return nil, nil
	case BoolKind:
		return v.Bool, nil
	case NumberKind:
		return json.Number(v.Text), nil
	case TextKind, AtomKind:
		return v.Text, nil
	case SequenceKind:
		res := make([]any, len(v.Items))
		for i, item := range v.Items {
			x, err := ToJSONAny(item)
			if err != nil {
				return nil, err
			}
			res[i] = x
		}
		return res, nil
	case MappingKind:
		res := make(map[string]any, len(v.Pairs))
		for i := range v.Pairs {
			p := &v.Pairs[i]
			if p.Key.Kind == ExprKey {
				return nil, fmt.Errorf("%w: expression key %s", ErrNotData, p.Key)
			}
			x, err := ToJSONAny(p.Value)
			if err != nil {
				return nil, err
			}
			res[p.Key.Name] = x
		}
		return res, nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrNotData, v)
	}
}

// MarshalJSON writes data variants as JSON keeping mapping order.
func (v *Value) MarshalJSON() ([]byte, error) {
	buf := bytes.NewBuffer(nil)
	if err := writeJSON(buf, v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeJSON(buf *bytes.Buffer, v *Value) error {
	switch v.Kind {
	case SequenceKind:
		buf.WriteByte('[')
		for i, item := range v.Items {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := writeJSON(buf, item); err != nil {
				return err
			}
		}
		buf.WriteByte(']')
		return nil
	case MappingKind:
		buf.WriteByte('{')
		for i := range v.Pairs {
			p := &v.Pairs[i]
			if p.Key.Kind == ExprKey {
				return fmt.Errorf("%w: expression key %s", ErrNotData, p.Key)
			}
			if i > 0 {
				buf.WriteByte(',')
			}
			d, err := json.Marshal(p.Key.Name)
			if err != nil {
				return err
			}
			buf.Write(d)
			buf.WriteByte(':')
			if err := writeJSON(buf, p.Value); err != nil {
				return err
			}
		}
		buf.WriteByte('}')
		return nil
	default:
		x, err := ToJSONAny(v)
		if err != nil {
			return err
		}
		d, err := json.Marshal(x)
		if err != nil {
			return err
		}
		buf.Write(d)
		return nil
	}
}
