// Package literal converts literal lexemes produced by the lexer into values.
package literal

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var (
	// ErrBadEscape reports a backslash followed by a character outside the escape set.
	ErrBadEscape = errors.New("unknown escape sequence")
	// ErrNotQuoted reports a lexeme missing its surrounding quotes.
	ErrNotQuoted = errors.New("literal is not quoted")
)

// ParseInt parses a decimal integer lexeme.
func ParseInt(lexeme string) (int64, error) {
	v, err := strconv.ParseInt(lexeme, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid integer literal %q: %w", lexeme, err)
	}
	return v, nil
}

// ParseFloat parses a decimal float lexeme, exponent allowed.
func ParseFloat(lexeme string) (float64, error) {
	v, err := strconv.ParseFloat(lexeme, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid float literal %q: %w", lexeme, err)
	}
	return v, nil
}

// ParseChar parses a quoted char lexeme such as 'a' or '\n'.
func ParseChar(lexeme string) (byte, error) {
	body, err := unquote(lexeme, '\'')
	if err != nil {
		return 0, err
	}
	s, err := Unescape(body)
	if err != nil {
		return 0, err
	}
	if len(s) != 1 {
		return 0, fmt.Errorf("char literal %s must hold exactly one byte", lexeme)
	}
	return s[0], nil
}

// ParseString parses a double-quoted lexeme and translates its escapes.
func ParseString(lexeme string) (string, error) {
	body, err := unquote(lexeme, '"')
	if err != nil {
		return "", err
	}
	return Unescape(body)
}

// Unescape translates \n \r \t \v \f \\ \" and \'.
func Unescape(s string) (string, error) {
	if !strings.ContainsRune(s, '\\') {
		return s, nil
	}
	var sb strings.Builder
	sb.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c != '\\' {
			sb.WriteByte(c)
			continue
		}
		i++
		if i == len(s) {
			return "", fmt.Errorf("%w: trailing backslash", ErrBadEscape)
		}
		switch s[i] {
		case 'n':
			sb.WriteByte('\n')
		case 'r':
			sb.WriteByte('\r')
		case 't':
			sb.WriteByte('\t')
		case 'v':
			sb.WriteByte('\v')
		case 'f':
			sb.WriteByte('\f')
		case '\\', '"', '\'':
			sb.WriteByte(s[i])
		default:
			return "", fmt.Errorf("%w: \\%c", ErrBadEscape, s[i])
		}
	}
	return sb.String(), nil
}

func unquote(lexeme string, q byte) (string, error) {
	if len(lexeme) < 2 || lexeme[0] != q || lexeme[len(lexeme)-1] != q {
		return "", fmt.Errorf("%w: %s", ErrNotQuoted, lexeme)
	}
	return lexeme[1 : len(lexeme)-1], nil
}
