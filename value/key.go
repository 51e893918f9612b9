package value

type KeyKind int

const (
	AtomKey KeyKind = iota
	TextKey
	ExprKey
)

func (k KeyKind) String() string {
	switch k {
	case AtomKey:
		return "AtomKey"
	case TextKey:
		return "TextKey"
	case ExprKey:
		return "ExprKey"
	default:
		return "<unknown key kind>"
	}
}

// Key is a mapping key. For ExprKey, Name holds an already rendered
// expression which is emitted verbatim inside parentheses.
type Key struct {
	Kind KeyKind
	Name string
}

func Atom(name string) Key { return Key{Kind: AtomKey, Name: name} }
func Text(name string) Key { return Key{Kind: TextKey, Name: name} }
func Expr(code string) Key { return Key{Kind: ExprKey, Name: code} }

// Same reports whether two keys would address the same entry of a
// mapping once evaluated: atom keys only collide with atom keys, text
// keys with text keys, expressions by their source text.
func (k Key) Same(o Key) bool {
	return k.Kind == o.Kind && k.Name == o.Name
}

func (k Key) String() string {
	switch k.Kind {
	case AtomKey:
		return ":" + k.Name
	case TextKey:
		return "'" + k.Name + "'"
	default:
		return "(" + k.Name + ")"
	}
}

type Pair struct {
	Key   Key
	Value *Value
}

func Field(k Key, v *Value) Pair {
	return Pair{Key: k, Value: v}
}
