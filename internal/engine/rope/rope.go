package rope

import (
	"fmt"
	"io"
	"strings"
)

// Rope is an immutable rope data structure for efficient text storage.
// Operations return new Rope values; the original is never modified.
// Copying a Rope is an O(1) snapshot that stays valid across later edits.
type Rope struct {
	root *node
}

// New creates an empty rope.
func New() Rope {
	return Rope{root: emptyLeaf}
}

// FromString creates a rope from a string.
func FromString(s string) Rope {
	return Rope{root: buildFromChunks(splitIntoChunks(s))}
}

// FromReader creates a rope from an io.Reader.
func FromReader(r io.Reader) (Rope, error) {
	var b Builder
	if _, err := b.ReadFrom(r); err != nil {
		return Rope{}, fmt.Errorf("reading rope: %w", err)
	}
	return b.Build(), nil
}

func (r Rope) node() *node {
	if r.root == nil {
		return emptyLeaf
	}
	return r.root
}

// Len returns the total byte length.
func (r Rope) Len() int {
	return r.node().summary.Bytes
}

// IsEmpty returns true if the rope contains no text.
func (r Rope) IsEmpty() bool {
	return r.Len() == 0
}

// LineCount returns the number of lines (newlines + 1).
func (r Rope) LineCount() int {
	return r.node().summary.Lines + 1
}

// String returns the full text as a string.
// Use sparingly for large ropes.
func (r Rope) String() string {
	return r.Slice(0, r.Len())
}

// Slice returns the text in the byte range [start, end), clamped to the rope.
func (r Rope) Slice(start, end int) string {
	start, end = r.clampRange(start, end)
	if start >= end {
		return ""
	}
	var sb strings.Builder
	sb.Grow(end - start)
	r.node().appendTo(&sb, start, end)
	return sb.String()
}

// SubRope returns the byte range [start, end) as a rope sharing structure
// with r.
func (r Rope) SubRope(start, end int) Rope {
	start, end = r.clampRange(start, end)
	if start >= end {
		return New()
	}
	_, right := r.Split(start)
	left, _ := right.Split(end - start)
	return left
}

func (r Rope) clampRange(start, end int) (int, int) {
	n := r.Len()
	start = min(max(start, 0), n)
	end = min(max(end, 0), n)
	return start, end
}

// Split splits the rope at offset.
// Left rope contains [0, offset), right contains [offset, end).
func (r Rope) Split(offset int) (Rope, Rope) {
	if offset <= 0 {
		return New(), r
	}
	if offset >= r.Len() {
		return r, New()
	}
	left, right := r.node().split(offset)
	return Rope{root: collapse(left)}, Rope{root: collapse(right)}
}

// Concat concatenates two ropes.
func (r Rope) Concat(other Rope) Rope {
	return Rope{root: concat(r.node(), other.node())}
}

// Insert inserts text at the given byte offset.
func (r Rope) Insert(offset int, text string) Rope {
	return r.ReplaceRope(offset, offset, FromString(text))
}

// Delete removes text in the byte range [start, end).
func (r Rope) Delete(start, end int) Rope {
	return r.ReplaceRope(start, end, New())
}

// Replace replaces text in the byte range [start, end) with new text.
func (r Rope) Replace(start, end int, text string) Rope {
	return r.ReplaceRope(start, end, FromString(text))
}

// ReplaceRope replaces the byte range [start, end) with the contents of
// another rope. Offsets are clamped to the rope.
func (r Rope) ReplaceRope(start, end int, text Rope) Rope {
	start, end = r.clampRange(start, end)
	if start > end {
		start = end
	}
	if start == end && text.IsEmpty() {
		return r
	}
	left, rest := r.Split(start)
	_, right := rest.Split(end - start)
	return left.Concat(text).Concat(right)
}

// Equals reports whether two ropes hold the same text.
func (r Rope) Equals(other Rope) bool {
	if r.Len() != other.Len() {
		return false
	}
	if r.node() == other.node() {
		return true
	}
	return r.String() == other.String()
}

// LineOfOffset returns the 0-indexed line containing the byte offset.
// Offsets past the end map to the last line.
func (r Rope) LineOfOffset(offset int) int {
	offset = min(max(offset, 0), r.Len())
	return r.node().linesBefore(offset)
}

// LineStartOffset returns the byte offset of the start of the given line.
// Lines past the end map to the rope length.
func (r Rope) LineStartOffset(line int) int {
	switch {
	case line <= 0:
		return 0
	case line >= r.LineCount():
		return r.Len()
	}
	return r.node().lineStart(line)
}

// LineEndOffset returns the byte offset of the end of the given line's
// content, before its "\n" or "\r\n".
func (r Rope) LineEndOffset(line int) int {
	if line >= r.LineCount()-1 {
		return r.Len()
	}
	end := r.LineStartOffset(line+1) - 1
	if end > r.LineStartOffset(line) && r.Slice(end-1, end) == "\r" {
		end--
	}
	return end
}

// LineText returns the text of the given line without its line ending.
func (r Rope) LineText(line int) string {
	return r.Slice(r.LineStartOffset(line), r.LineEndOffset(line))
}
