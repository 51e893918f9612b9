package value

// Blank reports whether v carries no information: nil values, empty or
// whitespace-only text, and empty containers. Numbers and booleans are
// never blank, so false and 0 survive pruning.
func Blank(v *Value) bool {
	if v == nil {
		return true
	}
	switch v.Kind {
	case NilKind:
		return true
	case TextKind, AtomKind, RawKind:
		for _, r := range v.Text {
			switch r {
			case ' ', '\t', '\n', '\r', '\f', '\v':
			default:
				return false
			}
		}
		return true
	case SequenceKind:
		return len(v.Items) == 0
	case MappingKind:
		return len(v.Pairs) == 0
	default:
		return false
	}
}
