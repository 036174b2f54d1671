package literal

import (
	"errors"
	"testing"
)

func TestParseNumbers(t *testing.T) {
	if v, err := ParseInt("1024"); err != nil || v != 1024 {
		t.Fatalf("ParseInt: %v %v", v, err)
	}
	if _, err := ParseInt("99999999999999999999"); err == nil {
		t.Fatal("overflow must fail")
	}
	tests := map[string]float64{"2.71828": 2.71828, "7.3e-3": 0.0073, "1e1": 10, ".5": 0.5}
	for in, want := range tests {
		got, err := ParseFloat(in)
		if err != nil || got != want {
			t.Errorf("ParseFloat(%q) = %v, %v", in, got, err)
		}
	}
}

func TestParseChar(t *testing.T) {
	tests := []struct {
		in   string
		want byte
	}{
		{`'a'`, 'a'},
		{`'\n'`, '\n'},
		{`'\''`, '\''},
		{`'\\'`, '\\'},
	}
	for _, tt := range tests {
		got, err := ParseChar(tt.in)
		if err != nil || got != tt.want {
			t.Errorf("ParseChar(%s) = %q, %v", tt.in, got, err)
		}
	}
	if _, err := ParseChar(`'ab'`); err == nil {
		t.Error("two bytes must fail")
	}
	if _, err := ParseChar(`a`); !errors.Is(err, ErrNotQuoted) {
		t.Errorf("unquoted: %v", err)
	}
}

func TestParseString(t *testing.T) {
	got, err := ParseString(`"a\tb\n\"c\"\\\r\v\f"`)
	if err != nil {
		t.Fatal(err)
	}
	if want := "a\tb\n\"c\"\\\r\v\f"; got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
	if got, _ := ParseString(`""`); got != "" {
		t.Fatalf("empty string: %q", got)
	}
	if _, err := ParseString(`"\x"`); !errors.Is(err, ErrBadEscape) {
		t.Fatalf("bad escape: %v", err)
	}
}
