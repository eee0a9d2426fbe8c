// Package search finds regular expression matches in a rope without
// flattening it into a string.
package search

import (
	"regexp"

	"github.com/dshills/strand/internal/engine/rope"
)

// Match is the byte range of a match.
type Match struct {
	Start, End int
}

// Next returns the first match of re that starts at or after from.
// Matching reads the rope lazily through a rune reader, so ^ and \b see
// from as the start of input.
func Next(text rope.Rope, re *regexp.Regexp, from int) (Match, bool) {
	from = min(max(from, 0), text.Len())
	loc := re.FindReaderIndex(text.NewReader(from))
	if loc == nil {
		return Match{}, false
	}
	return Match{Start: from + loc[0], End: from + loc[1]}, true
}

// Prev returns the last match of re that starts before from.
func Prev(text rope.Rope, re *regexp.Regexp, from int) (Match, bool) {
	var (
		last  Match
		found bool
	)
	for pos := 0; pos < from; {
		m, ok := Next(text, re, pos)
		if !ok || m.Start >= from {
			break
		}
		last, found = m, true
		pos = m.End
		if m.End == m.Start {
			pos = text.NextGraphemeOffset(m.Start)
			if pos == m.Start {
				break
			}
		}
	}
	return last, found
}

// NextWrapping is Next, continuing from the start of the text when
// nothing matches after from.
func NextWrapping(text rope.Rope, re *regexp.Regexp, from int) (Match, bool) {
	if m, ok := Next(text, re, from); ok {
		return m, true
	}
	if from == 0 {
		return Match{}, false
	}
	return Next(text, re, 0)
}

// PrevWrapping is Prev, continuing from the end of the text when nothing
// matches before from.
func PrevWrapping(text rope.Rope, re *regexp.Regexp, from int) (Match, bool) {
	if m, ok := Prev(text, re, from); ok {
		return m, true
	}
	if from > text.Len() {
		return Match{}, false
	}
	return Prev(text, re, text.Len()+1)
}
