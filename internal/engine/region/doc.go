// Package region models cursors, selections and marks as regions that move
// with the text they point into.
//
// Regions are addressed by ID rather than by index, so merging two carets
// never invalidates the handle of a third. A Set owns every region of one
// buffer and restores its caret invariants after each mutation: carets are
// ordered by head, never overlap, and one of them is always primary.
package region
