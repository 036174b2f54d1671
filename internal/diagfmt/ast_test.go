package diagfmt

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"tokiwen/internal/parser"
)

func TestFormatASTPretty(t *testing.T) {
	f := parser.New("int a = 1;")
	res := f.Parse()
	if !res.Success {
		t.Fatalf("parse: %s", res.Message)
	}
	var buf bytes.Buffer
	if err := FormatASTPretty(&buf, res.AST, f.Files()); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	for _, want := range []string{
		"Block (1:1-1:11)\n",
		"└─ Sequence",
		"DeclarationAssignment",
		"VarIdentifier: int = a",
		"IntLiteral: int = 1",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("missing %q in:\n%s", want, out)
		}
	}
}

func TestFormatASTJSON(t *testing.T) {
	res := parser.New("write 2.5;").Parse()
	if !res.Success {
		t.Fatalf("parse: %s", res.Message)
	}
	var buf bytes.Buffer
	if err := FormatASTJSON(&buf, res.AST); err != nil {
		t.Fatal(err)
	}
	var root ASTNodeOutput
	if err := json.Unmarshal(buf.Bytes(), &root); err != nil {
		t.Fatal(err)
	}
	if root.Kind != "Block" || len(root.Children) != 1 {
		t.Fatalf("unexpected root %+v", root)
	}
	if !strings.Contains(buf.String(), `"value": "2.5"`) {
		t.Fatalf("float literal missing:\n%s", buf.String())
	}
}
