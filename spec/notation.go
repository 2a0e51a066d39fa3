package spec

import (
	"fmt"
	"strings"
	"unicode"
)

// Notation decides how the symbols of a right-hand side and of a target string are delimited.
type Notation string

const (
	// NotationSpaced separates symbols by white spaces, so a symbol may have a multi-character name.
	// For example, `expr -> expr plus term | term`.
	NotationSpaced = Notation("spaced")

	// NotationCompact treats every character as a symbol. For example, `S->aA|b`.
	NotationCompact = Notation("compact")
)

func (n Notation) String() string {
	return string(n)
}

func ParseNotation(s string) (Notation, error) {
	switch Notation(strings.ToLower(strings.TrimSpace(s))) {
	case NotationSpaced, "":
		return NotationSpaced, nil
	case NotationCompact:
		return NotationCompact, nil
	}
	return "", fmt.Errorf("unknown notation: %v (want %v or %v)", s, NotationSpaced, NotationCompact)
}

// Separator returns the text placed between symbols when they are printed in this notation.
func (n Notation) Separator() string {
	if n == NotationCompact {
		return ""
	}
	return " "
}

func (n Notation) split(text string) []string {
	if n != NotationCompact {
		return []string{text}
	}
	syms := make([]string, 0, len(text))
	for _, r := range text {
		if unicode.IsSpace(r) {
			continue
		}
		syms = append(syms, string(r))
	}
	return syms
}

// SplitInput splits a target string into the symbols a derivation must produce.
func SplitInput(text string, n Notation) []string {
	if n == NotationCompact {
		return n.split(text)
	}
	return strings.Fields(text)
}
