package record

import (
	"maps"
	"slices"

	"github.com/signadot/seedgen/encode"
	"github.com/signadot/seedgen/registry"
	"github.com/signadot/seedgen/value"
)

// IndifferentMap is a string keyed map remembering insertion order, for
// attribute hashes which do not distinguish symbol from string keys.
type IndifferentMap struct {
	keys []string
	m    map[string]*value.Value
}

func NewIndifferent() *IndifferentMap {
	return &IndifferentMap{m: map[string]*value.Value{}}
}

// Set stores v under k. Overwriting keeps the original position.
func (im *IndifferentMap) Set(k string, v *value.Value) *IndifferentMap {
	if _, ok := im.m[k]; !ok {
		im.keys = append(im.keys, k)
	}
	im.m[k] = v
	return im
}

func (im *IndifferentMap) Get(k string) *value.Value {
	return im.m[k]
}

func (im *IndifferentMap) Delete(k string) {
	if _, ok := im.m[k]; !ok {
		return
	}
	delete(im.m, k)
	im.keys = slices.DeleteFunc(im.keys, func(x string) bool { return x == k })
}

func (im *IndifferentMap) Keys() []string {
	return slices.Clone(im.keys)
}

func (im *IndifferentMap) Len() int {
	return len(im.keys)
}

// Normalized wraps payload as a normalized mapping. payload is an
// *IndifferentMap, a map[string]*value.Value (rendered in sorted key
// order) or a mapping value whose keys all get turned into atoms.
func Normalized(payload any) *value.Value {
	return value.Ext(NormalizedTag, payload)
}

func EncodeNormalized(v *value.Value, depth int, enc registry.Encoder) (string, error) {
	var m *value.Value
	switch p := v.Payload.(type) {
	case *IndifferentMap:
		if p == nil {
			return "", registry.Malformed(v.VariantTag(), "payload", "nil map")
		}
		m = value.FromAtomMap(p.keys, p.m)
	case map[string]*value.Value:
		m = value.FromAtomMap(slices.Sorted(maps.Keys(p)), p)
	case *value.Value:
		if p == nil || p.Kind != value.MappingKind {
			return "", registry.Malformed(v.VariantTag(), "payload", "want Mapping got %s", p)
		}
		pairs := make([]value.Pair, len(p.Pairs))
		for i, pair := range p.Pairs {
			if pair.Key.Kind == value.ExprKey {
				return "", registry.Malformed(v.VariantTag(), "key", "expression key %s cannot be symbolized", pair.Key)
			}
			pairs[i] = value.Field(value.Atom(pair.Key.Name), pair.Value)
		}
		m = value.FromPairs(pairs...)
	default:
		return "", registry.Malformed(v.VariantTag(), "payload", "unsupported payload %T", v.Payload)
	}
	return encode.EncodeMapping(m, depth, enc)
}
