package parser

import (
	"unicode"
	"unicode/utf8"
)

// IsNCName reports whether s is an XML non-colonized name: a letter or '_'
// followed by letters, digits, '.', '-', '_' or combining characters.
func IsNCName(s string) bool {
	if s == "" {
		return false
	}
	r, size := utf8.DecodeRuneInString(s)
	if !isNameStart(r) {
		return false
	}
	for _, r := range s[size:] {
		if !isNameChar(r) {
			return false
		}
	}
	return true
}

func isNameStart(r rune) bool {
	return r == '_' || unicode.IsLetter(r)
}

func isNameChar(r rune) bool {
	switch {
	case isNameStart(r), unicode.IsDigit(r):
		return true
	case r == '.', r == '-', r == 0xB7:
		return true
	case unicode.Is(unicode.Mn, r), unicode.Is(unicode.Mc, r), unicode.Is(unicode.Nl, r):
		return true
	}
	return false
}
