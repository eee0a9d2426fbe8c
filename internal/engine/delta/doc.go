// Package delta describes edits between two versions of a rope.
//
// A Delta is a list of elements over a base text: copies of base ranges
// and insertions of new text. Anything the copies skip is deleted.
// Deltas can be applied, inverted against their base, composed, and used
// to carry offsets from the old text into the new one.
//
//	b := delta.NewBuilder(base.Len())
//	b.Replace(1, 3, "X")
//	d := b.Build()
//	next := d.Apply(base)
//	caret = delta.Transform(d, caret, true)
package delta
