package ast

import (
	"strconv"
	"strings"

	"tokiwen/internal/types"
)

// String renders the tree on one line, e.g.
// Block(Sequence(Statement(IntLiteral[int](1024)), Noop())).
func (n *Node) String() string {
	var sb strings.Builder
	n.write(&sb)
	return sb.String()
}

func (n *Node) write(sb *strings.Builder) {
	if n == nil {
		sb.WriteString("<nil>")
		return
	}
	sb.WriteString(n.Kind.String())
	if n.Type != nil && n.Type.Kind != types.KindVoid {
		sb.WriteByte('[')
		sb.WriteString(n.Type.String())
		sb.WriteByte(']')
	}
	sb.WriteByte('(')
	if v, ok := n.Value(); ok {
		sb.WriteString(v)
	}
	for i, c := range n.Children {
		if i > 0 {
			sb.WriteString(", ")
		}
		c.write(sb)
	}
	sb.WriteByte(')')
}

// Value formats the payload of leaf nodes.
func (n *Node) Value() (string, bool) {
	switch n.Kind {
	case KindVarIdentifier, KindTypeIdentifier, KindLabel, KindGoto:
		return n.Name, true
	case KindIntLiteral:
		return strconv.FormatInt(n.Int, 10), true
	case KindFloatLiteral:
		return strconv.FormatFloat(n.Float, 'g', -1, 64), true
	case KindBooleanLiteral:
		return strconv.FormatBool(n.Bool), true
	case KindCharLiteral:
		return strconv.QuoteRuneToASCII(rune(n.Char)), true
	case KindStringLiteral:
		return strconv.Quote(n.Str), true
	}
	return "", false
}
