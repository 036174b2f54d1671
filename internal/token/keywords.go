package token

import (
	"fmt"
	"sort"
)

var defaultKeywords = map[string]Kind{
	"if":    KwIf,
	"else":  KwElse,
	"while": KwWhile,
	"goto":  KwGoto,
	"write": KwWrite,
	"read":  KwRead,
	"true":  KwTrue,
	"false": KwFalse,
}

// KeywordTable maps spellings to keyword kinds. Several spellings may map to
// the same keyword, so a remapped language keeps accepting the defaults.
type KeywordTable struct {
	spellings map[string]Kind
}

// DefaultKeywords returns a fresh table holding the built-in spellings.
func DefaultKeywords() *KeywordTable {
	kt := &KeywordTable{spellings: make(map[string]Kind, len(defaultKeywords))}
	for s, k := range defaultKeywords {
		kt.spellings[s] = k
	}
	return kt
}

// Set registers spelling as an additional spelling of keyword kind.
func (kt *KeywordTable) Set(kind Kind, spelling string) error {
	if !kind.IsKeyword() {
		return fmt.Errorf("%s is not a keyword", kind)
	}
	if spelling == "" || !isIdentSpelling(spelling) {
		return fmt.Errorf("keyword spelling %q is not an identifier", spelling)
	}
	kt.spellings[spelling] = kind
	return nil
}

// Lookup возвращает вид ключевого слова, если ident им является.
// Ключевые слова регистрозависимые.
func (kt *KeywordTable) Lookup(ident string) (Kind, bool) {
	if kt == nil {
		k, ok := defaultKeywords[ident]
		return k, ok
	}
	k, ok := kt.spellings[ident]
	return k, ok
}

// Fingerprint returns a stable textual form of the table, used as a cache key component.
func (kt *KeywordTable) Fingerprint() string {
	if kt == nil {
		kt = DefaultKeywords()
	}
	keys := make([]string, 0, len(kt.spellings))
	for s := range kt.spellings {
		keys = append(keys, s)
	}
	sort.Strings(keys)
	out := ""
	for _, s := range keys {
		out += fmt.Sprintf("%s=%d;", s, kt.spellings[s])
	}
	return out
}

// KeywordByName resolves the canonical name of a keyword ("if", "while", ...).
func KeywordByName(name string) (Kind, bool) {
	k, ok := defaultKeywords[name]
	return k, ok
}

func isIdentSpelling(s string) bool {
	for i, r := range s {
		switch {
		case r == '_', r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
		case i > 0 && r >= '0' && r <= '9':
		case r >= 0x80:
		default:
			return false
		}
	}
	return true
}
