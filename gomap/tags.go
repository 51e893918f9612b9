package gomap

import (
	"reflect"
	"strings"
	"sync"
)

// TagName is the struct tag read by ToValue.
const TagName = "seed"

// FieldInfo holds what the seed tag says about one struct field.
type FieldInfo struct {
	// Index is the field index path, for promoted fields of embedded structs.
	Index []int
	// Name is the mapping key, the Go field name when the tag has none.
	Name string

	OmitEmpty bool
	// AsAtom renders string fields as symbols.
	AsAtom bool
	// AsRaw renders string fields as verbatim Ruby code.
	AsRaw bool
	// TextKey renders the key as a quoted string instead of a symbol.
	TextKey bool
}

// ParseStructTag splits a seed tag into its name and flags.
//
//	seed:"unique_id,omitempty"
//	seed:"kind,atom"
//	seed:"-"
func ParseStructTag(tag string) (name string, flags map[string]bool) {
	flags = map[string]bool{}
	parts := strings.Split(tag, ",")
	name = strings.TrimSpace(parts[0])
	for _, p := range parts[1:] {
		if p = strings.TrimSpace(p); p != "" {
			flags[p] = true
		}
	}
	return name, flags
}

var fieldCache sync.Map // reflect.Type -> []FieldInfo

// StructFields returns the exported fields of t in declaration order,
// with embedded untagged structs flattened into their parent.
func StructFields(t reflect.Type) []FieldInfo {
	if fi, ok := fieldCache.Load(t); ok {
		return fi.([]FieldInfo)
	}
	res := structFields(t, nil)
	fieldCache.Store(t, res)
	return res
}

func structFields(t reflect.Type, index []int) []FieldInfo {
	var res []FieldInfo
	for i := range t.NumField() {
		f := t.Field(i)
		tag, tagged := f.Tag.Lookup(TagName)
		if tag == "-" {
			continue
		}
		idx := append(append([]int{}, index...), i)
		if f.Anonymous && !tagged {
			ft := f.Type
			if ft.Kind() == reflect.Pointer {
				ft = ft.Elem()
			}
			if ft.Kind() == reflect.Struct {
				res = append(res, structFields(ft, idx)...)
				continue
			}
		}
		if !f.IsExported() {
			continue
		}
		name, flags := ParseStructTag(tag)
		if name == "" {
			name = f.Name
		}
		res = append(res, FieldInfo{
			Index:     idx,
			Name:      name,
			OmitEmpty: flags["omitempty"],
			AsAtom:    flags["atom"],
			AsRaw:     flags["raw"],
			TextKey:   flags["text"],
		})
	}
	return res
}
