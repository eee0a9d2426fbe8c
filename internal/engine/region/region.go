package region

import (
	"fmt"

	"github.com/dshills/strand/internal/engine/delta"
)

// Stickiness controls how a position behaves when text is inserted
// exactly at it.
type Stickiness uint8

const (
	// Sticky positions move to the end of text inserted at them.
	Sticky Stickiness = iota
	// NonSticky positions stay before text inserted at them.
	NonSticky
)

// String returns the stickiness name.
func (s Stickiness) String() string {
	if s == NonSticky {
		return "non-sticky"
	}
	return "sticky"
}

// Range is a half-open byte range with Start <= End.
type Range struct {
	Start, End int
}

// Len returns the number of bytes covered.
func (r Range) Len() int { return r.End - r.Start }

// Region is a pair of offsets that moves with the text around it.
//
// Head is the end the user moves when extending a selection, Tail is the
// anchor. The two are not ordered. A region with Head == Tail is a cursor.
type Region struct {
	Head int
	Tail int

	Stickiness Stickiness

	// PreferredColumn is the column vertical motion tries to return to
	// after passing through shorter lines. Nil when not moving vertically.
	PreferredColumn *int
}

// Cursor returns a sticky zero-width region at offset.
func Cursor(offset int) Region {
	return Selection(offset, offset)
}

// Selection returns a sticky region with the given head and tail.
func Selection(head, tail int) Region {
	return Region{Head: head, Tail: tail, Stickiness: Sticky}
}

// IsCursor reports whether the region is zero-width.
func (r Region) IsCursor() bool {
	return r.Head == r.Tail
}

// Range returns the region's offsets in ascending order.
func (r Region) Range() Range {
	if r.Head <= r.Tail {
		return Range{r.Head, r.Tail}
	}
	return Range{r.Tail, r.Head}
}

// Overlaps reports whether the two regions overlap or touch.
func (r Region) Overlaps(other Region) bool {
	a, b := r.Range(), other.Range()
	return a.Start <= b.End && b.Start <= a.End
}

// Merge returns the union of r and other, keeping the direction,
// stickiness and preferred column of r. It reports false when the regions
// do not overlap.
func (r Region) Merge(other Region) (Region, bool) {
	if !r.Overlaps(other) {
		return r, false
	}
	a, b := r.Range(), other.Range()
	start, end := min(a.Start, b.Start), max(a.End, b.End)
	merged := r
	if r.Head <= r.Tail {
		merged.Head, merged.Tail = start, end
	} else {
		merged.Head, merged.Tail = end, start
	}
	return merged, true
}

// Transform moves both ends of the region through t.
func (r Region) Transform(t *delta.Transformer) Region {
	after := r.Stickiness == Sticky
	r.Head = t.Transform(r.Head, after)
	r.Tail = t.Transform(r.Tail, after)
	return r
}

// WithPreferredColumn returns a copy of r remembering col.
func (r Region) WithPreferredColumn(col int) Region {
	r.PreferredColumn = &col
	return r
}

// Equal reports whether two regions have the same offsets, stickiness and
// preferred column.
func (r Region) Equal(other Region) bool {
	if r.Head != other.Head || r.Tail != other.Tail || r.Stickiness != other.Stickiness {
		return false
	}
	switch {
	case r.PreferredColumn == nil && other.PreferredColumn == nil:
		return true
	case r.PreferredColumn == nil || other.PreferredColumn == nil:
		return false
	default:
		return *r.PreferredColumn == *other.PreferredColumn
	}
}

func (r Region) String() string {
	return fmt.Sprintf("<%d..%d>", r.Head, r.Tail)
}
