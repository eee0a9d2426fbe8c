package delta

import (
	"fmt"

	"github.com/dshills/strand/internal/engine/rope"
)

// Builder assembles a delta from edits given in ascending order.
// Each edit must start at or after the end of the previous one.
type Builder struct {
	d    Delta
	last int
}

// NewBuilder returns a builder for a base text of baseLen bytes.
func NewBuilder(baseLen int) *Builder {
	return &Builder{d: Delta{baseLen: baseLen}}
}

// ReplaceRope replaces [start, end) of the base with text.
// Out-of-order, overlapping or out-of-bounds ranges are programmer errors
// and panic.
func (b *Builder) ReplaceRope(start, end int, text rope.Rope) {
	if start < b.last || end < start || end > b.d.baseLen {
		panic(fmt.Sprintf("delta: invalid edit [%d,%d) after %d in base of %d", start, end, b.last, b.d.baseLen))
	}
	b.d.push(Element{Start: b.last, End: start})
	if !text.IsEmpty() {
		b.d.push(Element{Text: &text})
	}
	b.last = end
}

// Replace replaces [start, end) of the base with text.
func (b *Builder) Replace(start, end int, text string) {
	b.ReplaceRope(start, end, rope.FromString(text))
}

// Insert inserts text at offset.
func (b *Builder) Insert(offset int, text string) {
	b.Replace(offset, offset, text)
}

// Delete removes [start, end) of the base.
func (b *Builder) Delete(start, end int) {
	b.ReplaceRope(start, end, rope.New())
}

// Last returns the end of the most recent edit, the earliest offset the
// next edit may start at.
func (b *Builder) Last() int {
	return b.last
}

// Build finishes the delta, copying the rest of the base.
func (b *Builder) Build() Delta {
	b.d.push(Element{Start: b.last, End: b.d.baseLen})
	d := b.d
	b.d = Delta{baseLen: d.baseLen}
	b.last = 0
	return d
}
