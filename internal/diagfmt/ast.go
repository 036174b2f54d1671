package diagfmt

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"tokiwen/internal/ast"
	"tokiwen/internal/source"
	"tokiwen/internal/types"
)

type ASTNodeOutput struct {
	Kind     string          `json:"kind"`
	Type     string          `json:"type,omitempty"`
	Value    string          `json:"value,omitempty"`
	Span     source.Span     `json:"span"`
	Children []ASTNodeOutput `json:"children,omitempty"`
}

// FormatASTPretty prints the tree one node per line:
//
//	Block (1:1-2:9)
//	└─ Sequence (1:1-2:9)
//	   ├─ Statement (1:1-1:6)
//	   ...
func FormatASTPretty(w io.Writer, root *ast.Node, fs *source.FileSet) error {
	var sb strings.Builder
	writeNode(&sb, root, fs, "", "")
	_, err := io.WriteString(w, sb.String())
	return err
}

func writeNode(sb *strings.Builder, n *ast.Node, fs *source.FileSet, lead, prefix string) {
	sb.WriteString(lead)
	sb.WriteString(nodeLabel(n))
	if n != nil {
		fmt.Fprintf(sb, " (%s)", formatSpan(n.Span, fs))
	}
	sb.WriteByte('\n')
	if n == nil {
		return
	}
	for i, c := range n.Children {
		if i == len(n.Children)-1 {
			writeNode(sb, c, fs, prefix+"└─ ", prefix+"   ")
		} else {
			writeNode(sb, c, fs, prefix+"├─ ", prefix+"│  ")
		}
	}
}

func nodeLabel(n *ast.Node) string {
	if n == nil {
		return "<nil>"
	}
	label := n.Kind.String()
	if n.Type != nil && n.Type.Kind != types.KindVoid {
		label += ": " + n.Type.String()
	}
	if v, ok := n.Value(); ok {
		label += " = " + v
	}
	return label
}

// FormatASTJSON writes the tree as nested JSON objects.
func FormatASTJSON(w io.Writer, root *ast.Node) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(nodeJSON(root))
}

func nodeJSON(n *ast.Node) ASTNodeOutput {
	if n == nil {
		return ASTNodeOutput{Kind: "<nil>"}
	}
	out := ASTNodeOutput{Kind: n.Kind.String(), Span: n.Span}
	if n.Type != nil && n.Type.Kind != types.KindVoid {
		out.Type = n.Type.String()
	}
	if v, ok := n.Value(); ok {
		out.Value = v
	}
	for _, c := range n.Children {
		out.Children = append(out.Children, nodeJSON(c))
	}
	return out
}

func formatSpan(span source.Span, fs *source.FileSet) string {
	if fs != nil && fs.Get(span.File) != nil {
		start, end := fs.Resolve(span)
		return fmt.Sprintf("%d:%d-%d:%d", start.Line, start.Col, end.Line, end.Col)
	}
	return fmt.Sprintf("span(%d-%d)", span.Start, span.End)
}
