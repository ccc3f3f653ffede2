package ini

//go:generate go tool stringer --linecomment --type lineKind --output line_string.go

import (
	"strings"
	"unicode"
)

// lineKind classifies one line of input.
type lineKind int

const (
	lineBlank   lineKind = iota // blank
	lineSection                 // section
	lineItem                    // item
	lineInvalid                 // invalid
)

// classify determines the kind of line and extracts its fields.
// For lineSection, name is the section name. For lineItem, name and value
// are the item's key and value. It holds no state between calls.
// Whitespace is any rune for which unicode.IsSpace holds, including U+00A0.
func classify(line string) (kind lineKind, name, value string) {
	s := strings.TrimFunc(line, unicode.IsSpace)

	if s == "" || s[0] == '#' {
		return lineBlank, "", ""
	}

	if name, ok := scanSection(s); ok {
		return lineSection, name, ""
	}

	if name, value, ok := scanItem(s); ok {
		return lineItem, name, value
	}

	return lineInvalid, "", ""
}

// scanSection matches "[name]" followed by an optional comment.
// The name is one or more characters excluding '[', ']' and '#'.
func scanSection(s string) (string, bool) {
	if s[0] != '[' {
		return "", false
	}

	end := strings.IndexAny(s[1:], "[]#")
	if end <= 0 || s[1+end] != ']' {
		return "", false
	}

	if !isTrailer(s[end+2:]) {
		return "", false
	}

	return s[1 : 1+end], true
}

// scanItem matches "name = value" followed by an optional comment.
// Both name and value are one or more characters excluding whitespace,
// '=' and '#'.
func scanItem(s string) (name, value string, ok bool) {
	name, rest := scanToken(s)
	if name == "" {
		return "", "", false
	}

	rest = strings.TrimLeftFunc(rest, unicode.IsSpace)
	if rest == "" || rest[0] != '=' {
		return "", "", false
	}

	rest = strings.TrimLeftFunc(rest[1:], unicode.IsSpace)

	value, rest = scanToken(rest)
	if value == "" || !isTrailer(rest) {
		return "", "", false
	}

	return name, value, true
}

// scanToken splits s after its longest prefix of token characters.
func scanToken(s string) (token, rest string) {
	end := strings.IndexFunc(s, func(r rune) bool {
		return r == '=' || r == '#' || unicode.IsSpace(r)
	})
	if end < 0 {
		return s, ""
	}

	return s[:end], s[end:]
}

// isTrailer reports whether s is optional whitespace followed by an optional
// comment.
func isTrailer(s string) bool {
	s = strings.TrimLeftFunc(s, unicode.IsSpace)

	return s == "" || s[0] == '#'
}
