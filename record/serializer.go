package record

import (
	"github.com/signadot/seedgen/encode"
	"github.com/signadot/seedgen/registry"
	"github.com/signadot/seedgen/value"
)

// Handlers returns the record handlers alone, to be composed over
// encode.Builtins.
func Handlers() *registry.Registry {
	return registry.New(
		registry.Handle(PersistedTag, EncodeObject),
		registry.Handle(NormalizedTag, EncodeNormalized),
	)
}

type options struct {
	models    []string
	overrides []*registry.Registry
	encOpts   []encode.EncodeOption
}

type Option func(*options)

// WithModels declares each name as a kind of persisted object, so values
// built with Model(name, ...) resolve to EncodeObject unless an override
// handles name itself.
func WithModels(names ...string) Option {
	return func(o *options) { o.models = append(o.models, names...) }
}

// WithOverrides composes r over the record handlers. Later overrides are
// consulted first.
func WithOverrides(r *registry.Registry) Option {
	return func(o *options) { o.overrides = append(o.overrides, r) }
}

func WithEncodeOptions(opts ...encode.EncodeOption) Option {
	return func(o *options) { o.encOpts = append(o.encOpts, opts...) }
}

// Serializer renders plain values and persisted object calls. It is
// immutable and safe for concurrent use.
type Serializer struct {
	es *encode.EncState
}

func NewSerializer(opts ...Option) *Serializer {
	o := &options{}
	for _, opt := range opts {
		opt(o)
	}
	handlers := Handlers()
	for _, name := range o.models {
		handlers = handlers.Extend(name, PersistedTag)
	}
	reg := registry.Compose(encode.Builtins(), handlers)
	for _, over := range o.overrides {
		reg = registry.Compose(reg, over)
	}
	return &Serializer{es: encode.New(reg, o.encOpts...)}
}

func (s *Serializer) Registry() *registry.Registry {
	return s.es.Registry()
}

func (s *Serializer) RenderValue(v *value.Value) (string, error) {
	return s.es.String(v)
}

// RenderCall renders typeName.create_or_update!(attrs) when
// uniqueIDPresent, typeName.create!(attrs) otherwise.
func (s *Serializer) RenderCall(typeName string, uniqueIDPresent bool, attrs *value.Value) (string, error) {
	return s.es.String(Call(typeName, uniqueIDPresent, attrs))
}

// Instance renders a call whose form is chosen from attrs' unique id.
func (s *Serializer) Instance(typeName string, attrs *value.Value) (string, error) {
	return s.es.String(New(typeName, attrs))
}
