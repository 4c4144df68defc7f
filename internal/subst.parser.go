package internal

import "strings"

// ParsedToken is the result of splitting a token's inner text.
type ParsedToken struct {
	Name       string // trimmed token name
	Default    string // unescaped default text, valid when HasDefault
	HasDefault bool
}

// ParseInner splits a token's inner text into a name and an optional
// default clause.
//
// When enableDefault is false the whole inner text (trimmed) is the name
// and defaultDelim/escapeChar carry no special meaning. When true, the
// name ends at the first occurrence of defaultDelim that is not preceded
// by an unescaped escapeChar; everything after it is the default text,
// which is then unescaped: escapeChar followed by defaultDelim or by
// escapeChar collapses to the escaped character, any other escapeChar use
// passes through unchanged.
func ParseInner(inner string, enableDefault bool, defaultDelim, escapeChar rune) ParsedToken {
	if !enableDefault {
		return ParsedToken{Name: strings.TrimSpace(inner)}
	}

	split := findUnescapedDelim(inner, defaultDelim, escapeChar)
	if split < 0 {
		return ParsedToken{Name: strings.TrimSpace(inner)}
	}

	rawDefault := inner[split+len(string(defaultDelim)):]
	return ParsedToken{
		Name:       strings.TrimSpace(inner[:split]),
		Default:    unescapeDefault(rawDefault, defaultDelim, escapeChar),
		HasDefault: true,
	}
}

// findUnescapedDelim returns the byte offset of the first occurrence of
// delim not escaped by esc, or -1. Two-state scan: normal / after-escape.
func findUnescapedDelim(s string, delim, esc rune) int {
	escaped := false
	for i, r := range s {
		if escaped {
			escaped = false
			continue
		}
		switch r {
		case esc:
			escaped = true
		case delim:
			return i
		}
	}
	return -1
}

// unescapeDefault collapses esc+delim and esc+esc pairs to the escaped
// character. Any other occurrence of esc is kept as-is.
func unescapeDefault(s string, delim, esc rune) string {
	var b strings.Builder
	b.Grow(len(s))
	runes := []rune(s)
	for i := 0; i < len(runes); i++ {
		if runes[i] == esc && i+1 < len(runes) && (runes[i+1] == delim || runes[i+1] == esc) {
			b.WriteRune(runes[i+1])
			i++
			continue
		}
		b.WriteRune(runes[i])
	}
	return b.String()
}
