// Package encode renders value trees as Ruby source.
//
// # Usage
//
//	v := value.FromPairs(
//	    value.Field(value.Atom("name"), value.FromString("alice")),
//	    value.Field(value.Text("e-mail"), value.FromString("a@example.org")),
//	)
//	err := encode.Encode(v, os.Stdout)
//
// produces
//
//	{
//		name: "alice",
//		"e-mail" => "a@example.org"
//	}
//
// Rendering is driven by a registry.Registry; Builtins covers every
// non-extension variant. Derived renderers compose their own handlers on
// top with registry.Compose and may call the exported Encode* handlers
// directly to delegate.
//
// # Related Packages
//
//   - github.com/signadot/seedgen/value - the value model
//   - github.com/signadot/seedgen/registry - handler tables
//   - github.com/signadot/seedgen/record - persisted object calls
package encode
