// Package record adds the persisted object and indifferent mapping
// variants on top of the built-in handlers.
package record

import (
	"errors"
	"fmt"
	"strings"

	"github.com/signadot/seedgen/registry"
	"github.com/signadot/seedgen/token"
	"github.com/signadot/seedgen/value"
)

const (
	PersistedTag  = "PersistedObject"
	NormalizedTag = "NormalizedMapping"

	UniqueIDField = "unique_id"

	CreateCall         = "create!"
	CreateOrUpdateCall = "create_or_update!"
)

type Mode int

const (
	// ModeAuto picks CreateOrUpdateCall when the attributes carry a
	// non-blank unique id.
	ModeAuto Mode = iota
	ModeCreate
	ModeCreateOrUpdate
)

func (m Mode) String() string {
	switch m {
	case ModeAuto:
		return "auto"
	case ModeCreate:
		return "create"
	case ModeCreateOrUpdate:
		return "create_or_update"
	default:
		return "<unknown mode>"
	}
}

var ErrMode = errors.New("unknown call mode")

// ParseMode accepts the names printed by Mode.String, "" for ModeAuto
// and the camel case spelling createOrUpdate.
func ParseMode(s string) (Mode, error) {
	switch s {
	case "", "auto":
		return ModeAuto, nil
	case "create":
		return ModeCreate, nil
	case "create_or_update", "createOrUpdate":
		return ModeCreateOrUpdate, nil
	}
	return ModeAuto, fmt.Errorf("%w %q", ErrMode, s)
}

// Object is the payload of a persisted object: a constructor call on
// TypeName taking Attributes, which must be a mapping.
type Object struct {
	TypeName   string
	Mode       Mode
	Attributes *value.Value
}

func New(typeName string, attrs *value.Value) *value.Value {
	return value.Ext(PersistedTag, &Object{TypeName: typeName, Attributes: attrs})
}

// Call is New with the call form fixed by uniqueIDPresent rather than by
// inspecting attrs.
func Call(typeName string, uniqueIDPresent bool, attrs *value.Value) *value.Value {
	mode := ModeCreate
	if uniqueIDPresent {
		mode = ModeCreateOrUpdate
	}
	return value.Ext(PersistedTag, &Object{TypeName: typeName, Mode: mode, Attributes: attrs})
}

// Model is New under a tag of its own, typeName, for use with a
// registry declaring typeName to extend PersistedTag.
func Model(typeName string, attrs *value.Value) *value.Value {
	return value.Ext(typeName, &Object{TypeName: typeName, Attributes: attrs})
}

func (o *Object) CallName() string {
	switch o.Mode {
	case ModeCreate:
		return CreateCall
	case ModeCreateOrUpdate:
		return CreateOrUpdateCall
	}
	if o.Attributes != nil && !value.Blank(o.Attributes.Lookup(UniqueIDField)) {
		return CreateOrUpdateCall
	}
	return CreateCall
}

func EncodeObject(v *value.Value, depth int, enc registry.Encoder) (string, error) {
	var o *Object
	switch p := v.Payload.(type) {
	case *Object:
		o = p
	case Object:
		o = &p
	default:
		return "", registry.Malformed(v.VariantTag(), "payload", "want *record.Object got %T", v.Payload)
	}
	if o == nil {
		return "", registry.Malformed(v.VariantTag(), "payload", "nil object")
	}
	if !token.IsConstant(o.TypeName) {
		return "", registry.Malformed(v.VariantTag(), "type_name", "%q is not a constant name", o.TypeName)
	}
	if o.Attributes == nil || o.Attributes.Kind != value.MappingKind {
		desc := "nothing"
		if o.Attributes != nil {
			desc = o.Attributes.Kind.String()
		}
		return "", registry.Malformed(v.VariantTag(), "attributes", "want Mapping got %s", desc)
	}
	args, err := enc.Encode(o.Attributes, depth+1)
	if err != nil {
		return "", registry.AtPath(err, ".attributes")
	}
	var buf strings.Builder
	buf.WriteString(o.TypeName)
	buf.WriteByte('.')
	buf.WriteString(o.CallName())
	buf.WriteString("(\n")
	buf.WriteString(enc.Indent(depth + 1))
	buf.WriteString(args)
	buf.WriteByte('\n')
	buf.WriteString(enc.Indent(depth))
	buf.WriteByte(')')
	return buf.String(), nil
}
