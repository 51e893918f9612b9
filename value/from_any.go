package value

import (
	"encoding/json"
	"fmt"
	"maps"
	"slices"
)

// FromAny converts the generic values produced by encoding/json,
// expr-lang and similar decoders. Maps come out with atom keys in
// sorted order since Go maps carry none.
func FromAny(x any) (*Value, error) {
	switch v := x.(type) {
	case nil:
		return Nil(), nil
	case *Value:
		return v, nil
	case bool:
		return FromBool(v), nil
	case int:
		return FromInt(int64(v)), nil
	case int8:
		return FromInt(int64(v)), nil
	case int16:
		return FromInt(int64(v)), nil
	case int32:
		return FromInt(int64(v)), nil
	case int64:
		return FromInt(v), nil
	case uint:
		return FromUint(uint64(v)), nil
	case uint8:
		return FromUint(uint64(v)), nil
	case uint16:
		return FromUint(uint64(v)), nil
	case uint32:
		return FromUint(uint64(v)), nil
	case uint64:
		return FromUint(v), nil
	case float32:
		return FromFloat(float64(v)), nil
	case float64:
		return FromFloat(v), nil
	case json.Number:
		return FromNumber(v.String()), nil
	case string:
		return FromString(v), nil
	case []any:
		items := make([]*Value, len(v))
		for i, e := range v {
			item, err := FromAny(e)
			if err != nil {
				return nil, fmt.Errorf("[%d]: %w", i, err)
			}
			items[i] = item
		}
		return FromSeq(items...), nil
	case []*Value:
		return FromSeq(v...), nil
	case map[string]any:
		keys := slices.Sorted(maps.Keys(v))
		pairs := make([]Pair, len(keys))
		for i, k := range keys {
			item, err := FromAny(v[k])
			if err != nil {
				return nil, fmt.Errorf(".%s: %w", k, err)
			}
			pairs[i] = Field(Atom(k), item)
		}
		return FromPairs(pairs...), nil
	case map[string]*Value:
		return FromAtomMap(slices.Sorted(maps.Keys(v)), v), nil
	default:
		return nil, fmt.Errorf("%w: %T", ErrUnsupported, x)
	}
}
