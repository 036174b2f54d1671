package fuzztests

import (
	"path/filepath"
	"testing"

	"tokiwen/internal/testkit"
)

const maxFuzzInput = 1 << 16 // 64 KiB

// addCorpusSeeds feeds every golden case source plus a few hand-picked
// fragments to the fuzzer.
func addCorpusSeeds(f *testing.F) {
	cases, err := testkit.LoadCases(filepath.Join("..", "driver", "testdata", "*.md"))
	if err == nil {
		for _, c := range cases {
			f.Add([]byte(c.Source))
		}
	}
	for _, s := range languageSeeds {
		f.Add([]byte(s))
	}
}

var languageSeeds = []string{
	"",
	";",
	"int a = 1; write a;",
	"float f = 1e1; f *= 2.5; write -f;",
	"char c = '\\n'; write c;",
	`write "tab\there";`,
	"boolean b = 1 < 2 && !false; if (b) write 1; else write 0;",
	"int n = 3; while (n > 0) n -= 1;",
	"top: { int x; read x; if (x) goto top; }",
	"int a; int b; a = b = a + b * (a - b) % 2;",
	"{ { { } } }",
	"goto nowhere;",
	"int a; int a;",
	"write 1",
	"'ab'",
	"\"unterminated",
}

func clamp(input []byte) []byte {
	if len(input) > maxFuzzInput {
		input = input[:maxFuzzInput]
	}
	return append([]byte(nil), input...)
}
