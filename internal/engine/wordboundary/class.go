package wordboundary

import (
	"unicode"

	"golang.org/x/text/unicode/rangetable"
)

// CharClass is the coarse category a character belongs to for word
// navigation.
type CharClass uint8

const (
	// Other covers control, format, surrogate, private-use, unassigned and
	// combining-mark characters. It never produces a boundary.
	Other CharClass = iota
	Whitespace
	Word
	Punctuation
)

func (c CharClass) String() string {
	switch c {
	case Whitespace:
		return "whitespace"
	case Word:
		return "word"
	case Punctuation:
		return "punctuation"
	default:
		return "other"
	}
}

var (
	whitespaceTable = rangetable.Merge(unicode.Zl, unicode.Zp, unicode.Zs)

	punctuationTable = rangetable.Merge(
		unicode.Pc, unicode.Pd, unicode.Ps, unicode.Pe, unicode.Pi, unicode.Pf, unicode.Po,
		unicode.Sm, unicode.Sc, unicode.Sk,
	)

	wordTable = rangetable.Merge(
		unicode.Lu, unicode.Ll, unicode.Lt, unicode.Lm, unicode.Lo,
		unicode.Nd, unicode.Nl, unicode.No,
		unicode.So,
	)
)

// Classify returns the class of r.
func Classify(r rune) CharClass {
	switch {
	case unicode.IsSpace(r) || unicode.Is(whitespaceTable, r):
		return Whitespace
	case unicode.Is(wordTable, r):
		return Word
	case unicode.Is(punctuationTable, r):
		return Punctuation
	default:
		return Other
	}
}
