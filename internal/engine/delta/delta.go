package delta

import (
	"fmt"

	"github.com/dshills/strand/internal/engine/rope"
)

// Element is one step of a delta: either a copy of a base-text range or
// an insertion of new text.
type Element struct {
	// Start and End delimit the copied base range when Text is nil.
	Start, End int
	// Text is the inserted text. Nil for copy elements.
	Text *rope.Rope
}

// IsCopy reports whether the element copies base text.
func (e Element) IsCopy() bool { return e.Text == nil }

// Len returns the number of bytes the element contributes to the result.
func (e Element) Len() int {
	if e.IsCopy() {
		return e.End - e.Start
	}
	return e.Text.Len()
}

// Delta transforms a base text of a fixed length into a new text.
// Copy elements are ascending and non-overlapping; base ranges that no
// element copies are deleted.
type Delta struct {
	elements []Element
	baseLen  int
}

// Identity returns the delta that leaves a text of baseLen bytes unchanged.
func Identity(baseLen int) Delta {
	d := Delta{baseLen: baseLen}
	if baseLen > 0 {
		d.elements = []Element{{Start: 0, End: baseLen}}
	}
	return d
}

// Simple returns a delta replacing [start, end) of a base text of baseLen
// bytes with text.
func Simple(start, end int, text rope.Rope, baseLen int) Delta {
	b := NewBuilder(baseLen)
	b.ReplaceRope(start, end, text)
	return b.Build()
}

// BaseLen returns the length of the text the delta applies to.
func (d Delta) BaseLen() int { return d.baseLen }

// NewLen returns the length of the text the delta produces.
func (d Delta) NewLen() int {
	n := 0
	for _, el := range d.elements {
		n += el.Len()
	}
	return n
}

// Elements returns the delta's elements.
func (d Delta) Elements() []Element {
	return d.elements
}

// IsIdentity reports whether applying the delta leaves its base unchanged.
func (d Delta) IsIdentity() bool {
	switch len(d.elements) {
	case 0:
		return d.baseLen == 0
	case 1:
		el := d.elements[0]
		return el.IsCopy() && el.Start == 0 && el.End == d.baseLen
	}
	return false
}

// Apply produces the new text. It panics if base does not have the
// delta's base length.
func (d Delta) Apply(base rope.Rope) rope.Rope {
	if base.Len() != d.baseLen {
		panic(fmt.Sprintf("delta: apply to text of length %d, want %d", base.Len(), d.baseLen))
	}
	if d.IsIdentity() {
		return base
	}
	out := rope.New()
	for _, el := range d.elements {
		if el.IsCopy() {
			out = out.Concat(base.SubRope(el.Start, el.End))
		} else {
			out = out.Concat(*el.Text)
		}
	}
	return out
}

// Invert returns the delta that turns the result of d back into base.
func (d Delta) Invert(base rope.Rope) Delta {
	b := NewBuilder(d.NewLen())
	pos, basePos := 0, 0
	for _, el := range d.elements {
		if el.IsCopy() {
			// Base text skipped before this copy was deleted by d.
			if el.Start > basePos {
				b.ReplaceRope(pos, pos, base.SubRope(basePos, el.Start))
			}
			basePos = el.End
		} else {
			b.Delete(pos, pos+el.Len())
		}
		pos += el.Len()
	}
	if basePos < d.baseLen {
		b.ReplaceRope(pos, pos, base.SubRope(basePos, d.baseLen))
	}
	return b.Build()
}

// Compose returns a delta equivalent to applying a and then b.
// It panics if b's base length differs from a's new length.
func Compose(a, b Delta) Delta {
	if b.baseLen != a.NewLen() {
		panic(fmt.Sprintf("delta: compose with base length %d, want %d", b.baseLen, a.NewLen()))
	}
	out := Delta{baseLen: a.baseLen}
	for _, el := range b.elements {
		if !el.IsCopy() {
			out.push(el)
			continue
		}
		// Map the copied range of a's output back through a's elements.
		pos := 0
		for _, ae := range a.elements {
			aEnd := pos + ae.Len()
			lo, hi := max(el.Start, pos), min(el.End, aEnd)
			if lo < hi {
				if ae.IsCopy() {
					out.push(Element{Start: ae.Start + lo - pos, End: ae.Start + hi - pos})
				} else {
					sub := ae.Text.SubRope(lo-pos, hi-pos)
					out.push(Element{Text: &sub})
				}
			}
			if aEnd >= el.End {
				break
			}
			pos = aEnd
		}
	}
	return out
}

// push appends an element, merging it with a contiguous predecessor.
func (d *Delta) push(el Element) {
	if el.Len() == 0 {
		return
	}
	if n := len(d.elements); n > 0 {
		last := &d.elements[n-1]
		switch {
		case last.IsCopy() && el.IsCopy() && last.End == el.Start:
			last.End = el.End
			return
		case !last.IsCopy() && !el.IsCopy():
			joined := last.Text.Concat(*el.Text)
			last.Text = &joined
			return
		}
	}
	d.elements = append(d.elements, el)
}

// String renders the delta for debugging.
func (d Delta) String() string {
	s := fmt.Sprintf("Delta(base=%d)[", d.baseLen)
	for i, el := range d.elements {
		if i > 0 {
			s += " "
		}
		if el.IsCopy() {
			s += fmt.Sprintf("copy(%d,%d)", el.Start, el.End)
		} else {
			s += fmt.Sprintf("insert(%q)", el.Text.String())
		}
	}
	return s + "]"
}
