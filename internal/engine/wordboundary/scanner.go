package wordboundary

import (
	"io"

	"github.com/dshills/strand/internal/engine/rope"
)

// Direction selects which way a Scanner walks.
type Direction uint8

const (
	Forward Direction = iota
	Backward
)

type runeReader interface {
	ReadRune() (rune, int, error)
	Offset() int
}

// Scanner lazily yields the word boundaries of a text from a starting
// offset, reading the rope one chunk at a time.
//
// A forward scan reports boundaries strictly after the start and always
// ends with a Both boundary at the end of the text. A backward scan
// reports boundaries strictly before the start and ends with Both at 0.
type Scanner struct {
	text  rope.Rope
	start int
	dir   Direction

	rd       runeReader
	prev     CharClass
	havePrev bool
	done     bool
}

// NewScanner returns a scanner over text starting at offset.
func NewScanner(text rope.Rope, offset int, dir Direction) *Scanner {
	s := &Scanner{text: text, start: min(max(offset, 0), text.Len()), dir: dir}
	s.Reset()
	return s
}

// Scan returns a forward scanner starting at offset.
func Scan(text rope.Rope, offset int) *Scanner {
	return NewScanner(text, offset, Forward)
}

// ScanBackward returns a backward scanner starting at offset.
func ScanBackward(text rope.Rope, offset int) *Scanner {
	return NewScanner(text, offset, Backward)
}

// Reset rewinds the scanner to its starting offset.
func (s *Scanner) Reset() {
	if s.dir == Forward {
		s.rd = s.text.NewReader(s.start)
	} else {
		s.rd = s.text.NewReverseReader(s.start)
	}
	s.havePrev = false
	s.done = false
}

// Next returns the next boundary. It returns false once the terminating
// boundary has been reported.
func (s *Scanner) Next() (Boundary, bool) {
	if s.done {
		return Boundary{}, false
	}
	for {
		// The offset between the previous character and the one about
		// to be read.
		at := s.rd.Offset()
		ch, _, err := s.rd.ReadRune()
		if err == io.EOF {
			s.done = true
			return Boundary{Offset: at, Type: Both}, true
		}
		cur := Classify(ch)
		if !s.havePrev {
			s.prev, s.havePrev = cur, true
			continue
		}
		prev := s.prev
		s.prev = cur
		var t Type
		var ok bool
		if s.dir == Forward {
			t, ok = Between(prev, cur)
		} else {
			t, ok = Between(cur, prev)
		}
		if ok {
			return Boundary{Offset: at, Type: t}, true
		}
	}
}

// Find returns the first boundary in the scan direction whose type
// matches kind. The terminating boundary matches every kind, so Find
// always succeeds.
func Find(text rope.Rope, offset int, dir Direction, kind Type) Boundary {
	s := NewScanner(text, offset, dir)
	for {
		b, ok := s.Next()
		if !ok {
			// Unreachable: the terminating boundary is Both.
			return b
		}
		if b.Type.Matches(kind) {
			return b
		}
	}
}

// All collects every boundary of a scan. Intended for tests and small texts.
func All(text rope.Rope, offset int, dir Direction) []Boundary {
	var out []Boundary
	s := NewScanner(text, offset, dir)
	for b, ok := s.Next(); ok; b, ok = s.Next() {
		out = append(out, b)
	}
	return out
}
