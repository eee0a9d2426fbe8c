// Package history tracks undo groups for a buffer.
//
// Every edit belongs to an undo group. Consecutive edits of the same
// EditType share a group, so a run of typed characters undoes as one step.
// A change of edit type, or an edit made after an undo, starts a new group.
//
// The history is linear:
//
//	h := history.New()
//	g := h.Record(history.EditInsert) // group for the next commit
//	h.Undo()                          // g is now in h.Undone()
//	h.Redo()                          // and back out again
//
// Editing after an undo discards the redo branch. The discarded groups stay
// in the undone set forever, so replaying the revision log never resurrects
// them.
package history
