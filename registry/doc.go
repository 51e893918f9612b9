// Package registry holds the ordered handler tables used by the encoder.
//
// A Registry maps variant tags to handlers. Resolution walks the entries
// in order and returns the first whose tag is the value's variant tag or
// one of its declared parents (see Extends), or whose predicate accepts
// the value. Registries never change once built: Register, Extend and
// Compose all return a new Registry.
//
//	base := registry.New(
//	    registry.Handle("Mapping", encodeMapping),
//	    registry.Handle("Text", encodeText),
//	)
//	derived := registry.Compose(base, registry.New(
//	    registry.Handle("Mapping", encodeSortedMapping),
//	    registry.Handle("Agency", encodeAgency),
//	    registry.Extends("Agency", "PersistedObject"),
//	))
//
// In derived, "Mapping" resolves to encodeSortedMapping, and an
// extension tagged "Agency" resolves to encodeAgency, or to a
// "PersistedObject" handler if encodeAgency were absent.
package registry
