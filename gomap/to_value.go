// Package gomap converts Go values into value trees ready for encoding.
package gomap

import (
	"cmp"
	"encoding"
	"fmt"
	"reflect"
	"slices"

	"github.com/signadot/seedgen/value"
)

// ValueMarshaler is implemented by types that build their own value tree.
type ValueMarshaler interface {
	SeedValue() (*value.Value, error)
}

var (
	valuePtrType       = reflect.TypeFor[*value.Value]()
	valueMarshalerType = reflect.TypeFor[ValueMarshaler]()
)

// ToValue converts v. Structs become mappings with atom keys named by
// their seed tags, maps with string keys become mappings in sorted key
// order, and types implementing ValueMarshaler or encoding.TextMarshaler
// provide their own representation.
func ToValue(v any) (*value.Value, error) {
	if v == nil {
		return value.Nil(), nil
	}
	w := &walker{visited: map[visit]bool{}}
	return w.walk(reflect.ValueOf(v), "")
}

type walker struct {
	visited map[visit]bool
}

// visit identifies a pointer, map or slice on the current walk path.
type visit struct {
	ptr uintptr
	typ reflect.Type
	n   int
}

// enter marks rv as being walked and returns a func that unmarks it, or
// a MarshalError if rv is already on the path.
func (w *walker) enter(rv reflect.Value, path string) (func(), error) {
	k := visit{ptr: rv.Pointer(), typ: rv.Type()}
	if rv.Kind() == reflect.Slice {
		k.n = rv.Len()
	}
	if w.visited[k] {
		return nil, &MarshalError{FieldPath: path, Message: fmt.Sprintf("cycle through %s", rv.Type())}
	}
	w.visited[k] = true
	return func() { delete(w.visited, k) }, nil
}

func (w *walker) walk(rv reflect.Value, path string) (*value.Value, error) {
	if !rv.IsValid() {
		return value.Nil(), nil
	}
	if rv.Type() == valuePtrType {
		if rv.IsNil() {
			return value.Nil(), nil
		}
		return rv.Interface().(*value.Value), nil
	}
	if res, ok, err := w.marshaler(rv, path); ok {
		return res, err
	}
	switch rv.Kind() {
	case reflect.Pointer:
		if rv.IsNil() {
			return value.Nil(), nil
		}
		leave, err := w.enter(rv, path)
		if err != nil {
			return nil, err
		}
		defer leave()
		return w.walk(rv.Elem(), path)
	case reflect.Interface:
		if rv.IsNil() {
			return value.Nil(), nil
		}
		return w.walk(rv.Elem(), path)
	case reflect.Bool:
		return value.FromBool(rv.Bool()), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return value.FromInt(rv.Int()), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return value.FromUint(rv.Uint()), nil
	case reflect.Float32, reflect.Float64:
		return value.FromFloat(rv.Float()), nil
	case reflect.String:
		return value.FromString(rv.String()), nil
	case reflect.Slice:
		if rv.IsNil() {
			return value.Nil(), nil
		}
		if rv.Type().Elem().Kind() == reflect.Uint8 {
			return value.FromString(string(rv.Bytes())), nil
		}
		if rv.Len() > 0 {
			leave, err := w.enter(rv, path)
			if err != nil {
				return nil, err
			}
			defer leave()
		}
		return w.sequence(rv, path)
	case reflect.Array:
		return w.sequence(rv, path)
	case reflect.Map:
		if rv.IsNil() {
			return value.Nil(), nil
		}
		leave, err := w.enter(rv, path)
		if err != nil {
			return nil, err
		}
		defer leave()
		return w.mapping(rv, path)
	case reflect.Struct:
		return w.structure(rv, path)
	default:
		return nil, &MarshalError{FieldPath: path, Message: fmt.Sprintf("unsupported type %s", rv.Type())}
	}
}

func (w *walker) marshaler(rv reflect.Value, path string) (*value.Value, bool, error) {
	if !rv.CanInterface() {
		return nil, false, nil
	}
	if k := rv.Kind(); (k == reflect.Pointer || k == reflect.Interface) && rv.IsNil() {
		return nil, false, nil
	}
	if rv.Kind() != reflect.Pointer && reflect.PointerTo(rv.Type()).Implements(valueMarshalerType) && !rv.Type().Implements(valueMarshalerType) {
		if rv.CanAddr() {
			rv = rv.Addr()
		} else {
			ptr := reflect.New(rv.Type())
			ptr.Elem().Set(rv)
			rv = ptr
		}
	}
	x := rv.Interface()
	if m, ok := x.(ValueMarshaler); ok {
		res, err := m.SeedValue()
		if err != nil {
			return nil, true, &MarshalError{FieldPath: path, Message: "SeedValue failed", Err: err}
		}
		if res == nil {
			res = value.Nil()
		}
		return res, true, nil
	}
	if m, ok := x.(encoding.TextMarshaler); ok {
		d, err := m.MarshalText()
		if err != nil {
			return nil, true, &MarshalError{FieldPath: path, Message: "MarshalText failed", Err: err}
		}
		return value.FromString(string(d)), true, nil
	}
	return nil, false, nil
}

func (w *walker) sequence(rv reflect.Value, path string) (*value.Value, error) {
	items := make([]*value.Value, rv.Len())
	for i := range items {
		item, err := w.walk(rv.Index(i), fmt.Sprintf("%s[%d]", path, i))
		if err != nil {
			return nil, err
		}
		items[i] = item
	}
	return value.FromSeq(items...), nil
}

func (w *walker) mapping(rv reflect.Value, path string) (*value.Value, error) {
	if rv.Type().Key().Kind() != reflect.String {
		return nil, &MarshalError{FieldPath: path, Message: fmt.Sprintf("map key type %s is not a string", rv.Type().Key())}
	}
	keys := rv.MapKeys()
	slices.SortFunc(keys, func(a, b reflect.Value) int {
		return cmp.Compare(a.String(), b.String())
	})
	pairs := make([]value.Pair, len(keys))
	for i, k := range keys {
		item, err := w.walk(rv.MapIndex(k), path+"."+k.String())
		if err != nil {
			return nil, err
		}
		pairs[i] = value.Field(value.Atom(k.String()), item)
	}
	return value.FromPairs(pairs...), nil
}

func (w *walker) structure(rv reflect.Value, path string) (*value.Value, error) {
	fields := StructFields(rv.Type())
	pairs := make([]value.Pair, 0, len(fields))
	for _, fi := range fields {
		fv, err := rv.FieldByIndexErr(fi.Index)
		if err != nil {
			// nil embedded pointer
			continue
		}
		if fi.OmitEmpty && fv.IsZero() {
			continue
		}
		fpath := path + "." + fi.Name
		var item *value.Value
		switch {
		case fi.AsAtom || fi.AsRaw:
			if fv.Kind() == reflect.Pointer && !fv.IsNil() {
				fv = fv.Elem()
			}
			if fv.Kind() == reflect.Pointer {
				item = value.Nil()
				break
			}
			if fv.Kind() != reflect.String {
				return nil, &MarshalError{FieldPath: fpath, Message: fmt.Sprintf("atom and raw fields must be strings, not %s", fv.Type())}
			}
			if fi.AsAtom {
				item = value.FromAtom(fv.String())
			} else {
				item = value.FromRaw(fv.String())
			}
		default:
			item, err = w.walk(fv, fpath)
			if err != nil {
				return nil, err
			}
		}
		key := value.Atom(fi.Name)
		if fi.TextKey {
			key = value.Text(fi.Name)
		}
		pairs = append(pairs, value.Field(key, item))
	}
	return value.FromPairs(pairs...), nil
}
