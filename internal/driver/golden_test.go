package driver

import (
	"context"
	"strconv"
	"strings"
	"testing"

	"tokiwen/internal/testkit"
)

// TestGolden runs the markdown cases under testdata/.
func TestGolden(t *testing.T) {
	cases, err := testkit.LoadCases("testdata/*.md")
	if err != nil {
		t.Fatalf("load cases: %v", err)
	}
	if len(cases) == 0 {
		t.Fatalf("no golden cases found")
	}
	for _, tc := range cases {
		t.Run(tc.Name, func(t *testing.T) {
			u := CompileSource(context.Background(), tc.Name+".tkw", []byte(tc.Source), Options{MaxDiagnostics: 16})
			if u.Parse != nil && u.Parse.AST != nil {
				if err := testkit.CheckTreeInvariants(u.Parse.AST, u.File); err != nil {
					t.Errorf("%s:%d: %v", tc.File, tc.Line, err)
				}
			}
			for _, a := range tc.Assertions {
				checkAssertion(t, tc, a, u)
			}
		})
	}
}

func checkAssertion(t *testing.T, tc testkit.Case, a testkit.Assertion, u *Unit) {
	t.Helper()
	where := func() string { return tc.File + ":" + strconv.Itoa(a.Line) }
	switch a.Type {
	case testkit.AssertCompileError:
		if !u.Failed() {
			t.Errorf("%s: expected a compile error containing %q", where(), a.Content)
			return
		}
		d, _ := u.Bag.First()
		if !strings.Contains(d.Message, a.Content) {
			t.Errorf("%s: error %q does not contain %q", where(), d.Message, a.Content)
		}
	case testkit.AssertAST:
		if u.Parse == nil || u.Parse.AST == nil {
			t.Errorf("%s: parse failed: %v", where(), u.Bag.Items())
			return
		}
		if got := u.Parse.AST.String(); got != a.Content {
			t.Errorf("%s: ast mismatch\n got: %s\nwant: %s", where(), got, a.Content)
		}
	case testkit.AssertListing:
		if u.Failed() {
			t.Errorf("%s: compile failed: %v", where(), u.Bag.Items())
			return
		}
		lines := make([]string, len(u.Program.Code))
		for i, ins := range u.Program.Code {
			lines[i] = ins.String()
		}
		if got := strings.Join(lines, "\n"); got != a.Content {
			t.Errorf("%s: listing mismatch\n got:\n%s\nwant:\n%s", where(), got, a.Content)
		}
	}
}
