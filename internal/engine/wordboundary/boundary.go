package wordboundary

import "fmt"

// Type describes which side of a word a boundary sits on.
type Type uint8

const (
	// Start is the beginning of a word or punctuation run.
	Start Type = iota + 1
	// End is the end of a word or punctuation run.
	End
	// Both is simultaneously the end of one run and the start of the next.
	Both
)

func (t Type) String() string {
	switch t {
	case Start:
		return "start"
	case End:
		return "end"
	case Both:
		return "both"
	default:
		return fmt.Sprintf("Type(%d)", uint8(t))
	}
}

// Matches reports whether a boundary of type t satisfies a request for
// other. Both matches anything.
func (t Type) Matches(other Type) bool {
	return t == Both || other == Both || t == other
}

// Between returns the boundary between a character of class prev and the
// character of class cur that follows it.
func Between(prev, cur CharClass) (Type, bool) {
	if prev == Other || cur == Other || prev == cur {
		return 0, false
	}
	switch {
	case prev == Word && cur == Punctuation, prev == Punctuation && cur == Word:
		return Both, true
	case prev == Whitespace:
		return Start, true
	default:
		return End, true
	}
}

// Boundary is a boundary found by a Scanner.
type Boundary struct {
	Offset int
	Type   Type
}
