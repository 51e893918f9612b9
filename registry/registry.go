package registry

import (
	"maps"
	"slices"

	"github.com/signadot/seedgen/debug"
	"github.com/signadot/seedgen/value"
)

// Encoder is the part of the renderer a handler may use: recursion into
// nested values, indentation and token coloring.
type Encoder interface {
	Encode(v *value.Value, depth int) (string, error)
	Indent(depth int) string
	Color(k value.Kind, s string) string
}

// Handler renders v, which sits at depth; nested values are rendered
// through enc at depth+1.
type Handler func(v *value.Value, depth int, enc Encoder) (string, error)

type Entry struct {
	Tag     string
	Match   func(*value.Value) bool // nil for plain tag entries
	Handler Handler
}

func (e *Entry) matches(v *value.Value, lineage []string) bool {
	if e.Match != nil {
		return e.Match(v)
	}
	return slices.Contains(lineage, e.Tag)
}

type Registry struct {
	entries []Entry
	parents map[string]string
}

type Option func(*Registry)

func Handle(tag string, h Handler) Option {
	return func(r *Registry) { r.put(Entry{Tag: tag, Handler: h}) }
}

// HandleFunc adds a predicate entry; name identifies it for replacement
// and listing.
func HandleFunc(name string, match func(*value.Value) bool, h Handler) Option {
	return func(r *Registry) { r.put(Entry{Tag: name, Match: match, Handler: h}) }
}

// Extends declares that values tagged child may be handled by entries
// for parent when nothing earlier matches child itself.
func Extends(child, parent string) Option {
	return func(r *Registry) { r.parents[child] = parent }
}

func New(opts ...Option) *Registry {
	r := &Registry{parents: map[string]string{}}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *Registry) clone() *Registry {
	return &Registry{
		entries: slices.Clone(r.entries),
		parents: maps.Clone(r.parents),
	}
}

// put appends e, or replaces in place an entry with the same tag.
func (r *Registry) put(e Entry) {
	for i := range r.entries {
		if r.entries[i].Tag == e.Tag {
			r.entries[i] = e
			return
		}
	}
	r.entries = append(r.entries, e)
}

// Register returns a copy of r with h handling tag. An existing entry
// for the same tag is replaced at its position, otherwise h goes last.
func (r *Registry) Register(tag string, h Handler) *Registry {
	res := r.clone()
	Handle(tag, h)(res)
	return res
}

func (r *Registry) RegisterFunc(name string, match func(*value.Value) bool, h Handler) *Registry {
	res := r.clone()
	HandleFunc(name, match, h)(res)
	return res
}

func (r *Registry) Extend(child, parent string) *Registry {
	res := r.clone()
	Extends(child, parent)(res)
	return res
}

// Compose returns a registry resolving overrides' entries before base's.
// Base entries whose tag is overridden are dropped, and parent
// declarations are merged with overrides winning.
func Compose(base, overrides *Registry) *Registry {
	res := &Registry{
		entries: make([]Entry, 0, len(base.entries)+len(overrides.entries)),
		parents: maps.Clone(base.parents),
	}
	res.entries = append(res.entries, overrides.entries...)
	for _, e := range base.entries {
		if !overrides.has(e.Tag) {
			res.entries = append(res.entries, e)
		}
	}
	maps.Copy(res.parents, overrides.parents)
	return res
}

func (r *Registry) has(tag string) bool {
	return slices.ContainsFunc(r.entries, func(e Entry) bool { return e.Tag == tag })
}

// Lineage returns tag followed by its declared ancestors. A cycle in the
// declarations ends the walk.
func (r *Registry) Lineage(tag string) []string {
	res := []string{tag}
	for {
		p, ok := r.parents[tag]
		if !ok || slices.Contains(res, p) {
			return res
		}
		res = append(res, p)
		tag = p
	}
}

func (r *Registry) Resolve(v *value.Value) (Handler, error) {
	if v == nil {
		return nil, &UnhandledTypeError{Tag: "<nil>", Desc: "missing value"}
	}
	lineage := r.Lineage(v.VariantTag())
	for i := range r.entries {
		e := &r.entries[i]
		if !e.matches(v, lineage) {
			continue
		}
		if debug.Resolve() {
			debug.Logf("resolve %s -> entry %d %q\n", v, i, e.Tag)
		}
		return e.Handler, nil
	}
	return nil, &UnhandledTypeError{Tag: v.VariantTag(), Desc: v.String()}
}

// Entries returns the entries in resolution order.
func (r *Registry) Entries() []Entry {
	return slices.Clone(r.entries)
}

func (r *Registry) Tags() []string {
	res := make([]string, len(r.entries))
	for i := range r.entries {
		res[i] = r.entries[i].Tag
	}
	return res
}

func (r *Registry) Len() int {
	return len(r.entries)
}
