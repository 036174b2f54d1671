package ast

// Equal compares two trees structurally. Identifiers compare by name, literals
// by value, and a block's scope is ignored.
func Equal(a, b *Node) bool {
	if a == nil || b == nil {
		return a == b
	}
	if a.Kind != b.Kind || a.Type.Kind != b.Type.Kind || len(a.Children) != len(b.Children) {
		return false
	}
	switch a.Kind {
	case KindVarIdentifier, KindTypeIdentifier, KindLabel, KindGoto:
		if a.Name != b.Name {
			return false
		}
	case KindIntLiteral:
		if a.Int != b.Int {
			return false
		}
	case KindFloatLiteral:
		if a.Float != b.Float {
			return false
		}
	case KindBooleanLiteral:
		if a.Bool != b.Bool {
			return false
		}
	case KindCharLiteral:
		if a.Char != b.Char {
			return false
		}
	case KindStringLiteral:
		if a.Str != b.Str {
			return false
		}
	}
	for i := range a.Children {
		if !Equal(a.Children[i], b.Children[i]) {
			return false
		}
	}
	return true
}
