// Package buffer provides the editing façade of a single document.
//
// A Buffer composes the pieces of the engine:
//
//   - a revision.Engine holding the text and every committed delta
//   - a region.Set holding the carets and marks
//   - a history.History deciding undo groups
//
// All edits are expressed as a BufferOp:
//
//	b := buffer.NewEmpty()
//	vp := view.New(0, 40)
//	b.ApplyBufferOp(vp, buffer.Insert{Text: "hello"})
//	b.ApplyBufferOp(vp, buffer.Move{Motion: motion.Of(motion.Left)})
//	b.ApplyBufferOp(vp, buffer.Undo{})
//
// Each edit builds one delta covering every caret, commits it, and moves
// all regions through the same delta, so carets and marks stay attached to
// the text around them. Undo and redo move regions through the delta
// between the old and new head.
//
// # Undo grouping
//
// Consecutive edits of the same EditType form one undo group. Undo and
// redo end the current group, and editing after an undo discards the redo
// branch.
package buffer
