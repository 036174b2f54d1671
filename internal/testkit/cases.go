// Package testkit holds helpers shared by the golden tests: markdown case
// files and tree invariants.
package testkit

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/yuin/goldmark"
	mdast "github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// SourceFence is the fence language holding the program under test.
const SourceFence = "tkw"

// AssertionType names an expectation fence.
type AssertionType string

const (
	// AssertListing expects one instruction per line, e.g. LOAD_I(1).
	AssertListing AssertionType = "listing"
	// AssertAST expects the one-line tree dump.
	AssertAST AssertionType = "ast"
	// AssertCompileError expects a failure whose message contains the fence.
	AssertCompileError AssertionType = "compile-error"
)

var assertionTypes = []AssertionType{AssertListing, AssertAST, AssertCompileError}

type Assertion struct {
	Type    AssertionType
	Content string
	Line    int
}

// Case is one "## Test: name" section.
type Case struct {
	Name       string
	File       string
	Line       int
	Source     string
	Assertions []Assertion
}

// LoadCases reads every markdown file matching pattern.
func LoadCases(pattern string) ([]Case, error) {
	paths, err := filepath.Glob(pattern)
	if err != nil {
		return nil, err
	}
	slices.Sort(paths)
	var all []Case
	for _, path := range paths {
		content, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		cases, err := ExtractCases(content)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		for i := range cases {
			cases[i].File = path
		}
		all = append(all, cases...)
	}
	return all, nil
}

// ExtractCases parses a markdown document. Every "Test: " heading opens a
// case; it must be followed by one tkw fence and at least one assertion.
func ExtractCases(markdown []byte) ([]Case, error) {
	doc := goldmark.New().Parser().Parse(text.NewReader(markdown))

	var (
		cases   []Case
		current *Case
	)
	flush := func() error {
		if current == nil {
			return nil
		}
		if current.Source == "" {
			return fmt.Errorf("line %d: test %q has no %s fence", current.Line, current.Name, SourceFence)
		}
		if len(current.Assertions) == 0 {
			return fmt.Errorf("line %d: test %q has no assertion fences", current.Line, current.Name)
		}
		cases = append(cases, *current)
		current = nil
		return nil
	}

	err := mdast.Walk(doc, func(node mdast.Node, entering bool) (mdast.WalkStatus, error) {
		if !entering {
			return mdast.WalkContinue, nil
		}
		switch n := node.(type) {
		case *mdast.Heading:
			heading := nodeText(n, markdown)
			name, ok := strings.CutPrefix(heading, "Test: ")
			if !ok {
				return mdast.WalkContinue, nil
			}
			if err := flush(); err != nil {
				return mdast.WalkStop, err
			}
			current = &Case{Name: name, Line: lineOf(n, markdown)}

		case *mdast.FencedCodeBlock:
			lang := string(n.Language(markdown))
			line := lineOf(n, markdown)
			if lang == "" {
				return mdast.WalkContinue, nil
			}
			if current == nil {
				return mdast.WalkStop, fmt.Errorf("line %d: %s fence outside of a test", line, lang)
			}
			content := strings.TrimRight(blockText(n, markdown), "\n")
			switch {
			case lang == SourceFence:
				if current.Source != "" {
					return mdast.WalkStop, fmt.Errorf("line %d: test %q has several %s fences", line, current.Name, SourceFence)
				}
				current.Source = content
			case slices.Contains(assertionTypes, AssertionType(lang)):
				current.Assertions = append(current.Assertions, Assertion{Type: AssertionType(lang), Content: content, Line: line})
			default:
				return mdast.WalkStop, fmt.Errorf("line %d: unknown fence language %q in test %q", line, lang, current.Name)
			}
		}
		return mdast.WalkContinue, nil
	})
	if err != nil {
		return nil, err
	}
	if err := flush(); err != nil {
		return nil, err
	}
	return cases, nil
}

func nodeText(node mdast.Node, src []byte) string {
	var buf bytes.Buffer
	_ = mdast.Walk(node, func(n mdast.Node, entering bool) (mdast.WalkStatus, error) {
		if t, ok := n.(*mdast.Text); ok && entering {
			buf.Write(t.Segment.Value(src))
		}
		return mdast.WalkContinue, nil
	})
	return buf.String()
}

func blockText(block *mdast.FencedCodeBlock, src []byte) string {
	var buf bytes.Buffer
	lines := block.Lines()
	for i := range lines.Len() {
		seg := lines.At(i)
		buf.Write(seg.Value(src))
	}
	return buf.String()
}

// lineOf is the 1-based line of the node's first content line. Headings
// and fences report the line just after their marker.
func lineOf(node mdast.Node, src []byte) int {
	if node.Lines().Len() == 0 {
		return 1
	}
	return bytes.Count(src[:node.Lines().At(0).Start], []byte{'\n'}) + 1
}
