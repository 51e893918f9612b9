// Package seedgen renders Go and document values as Ruby source for seed
// files. The functions here use a shared default serializer; build a
// record.Serializer directly to register model types or override handlers.
package seedgen

import (
	"fmt"

	"github.com/signadot/seedgen/gomap"
	"github.com/signadot/seedgen/record"
	"github.com/signadot/seedgen/value"
)

var defaultSerializer = record.NewSerializer()

// RenderValue renders v as a Ruby literal.
func RenderValue(v *value.Value) (string, error) {
	return defaultSerializer.RenderValue(v)
}

// RenderCall renders typeName.create_or_update!(attrs) or
// typeName.create!(attrs) according to uniqueIDPresent.
func RenderCall(typeName string, uniqueIDPresent bool, attrs *value.Value) (string, error) {
	return defaultSerializer.RenderCall(typeName, uniqueIDPresent, attrs)
}

// RenderStruct converts x with gomap.ToValue and renders it as a call on
// typeName, choosing the call form from its unique_id attribute.
func RenderStruct(typeName string, x any) (string, error) {
	attrs, err := gomap.ToValue(x)
	if err != nil {
		return "", fmt.Errorf("could not convert %T: %w", x, err)
	}
	return defaultSerializer.Instance(typeName, attrs)
}
