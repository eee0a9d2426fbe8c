package buffer

import (
	"fmt"

	"github.com/dshills/strand/internal/engine/history"
	"github.com/dshills/strand/internal/engine/motion"
)

// EditType classifies edits for undo grouping.
type EditType = history.EditType

// Edit types.
const (
	EditOther  = history.EditOther
	EditInsert = history.EditInsert
	EditDelete = history.EditDelete
)

// Trajectory is the direction of a single-character delete.
type Trajectory uint8

const (
	// Backward deletes the grapheme before each caret (backspace).
	Backward Trajectory = iota
	// Forward deletes the grapheme after each caret.
	Forward
)

func (t Trajectory) String() string {
	if t == Forward {
		return "forward"
	}
	return "backward"
}

// BufferOp is an operation applied through Buffer.ApplyBufferOp.
// The set of operations is closed.
type BufferOp interface {
	isBufferOp()
	fmt.Stringer
}

// Insert replaces every caret's range with Text.
type Insert struct {
	Text string
}

// Delete removes one grapheme next to every caret's head.
type Delete struct {
	Trajectory Trajectory
}

// Undo reverts the most recent undo group.
type Undo struct{}

// Redo reapplies the most recently undone group.
type Redo struct{}

// Move moves every caret, collapsing selections.
type Move struct {
	Motion motion.Motion
}

// Selection moves the head of every caret, extending selections.
type Selection struct {
	Motion motion.Motion
}

// NewCaret adds a caret where Motion takes the primary caret. The new
// caret becomes primary.
type NewCaret struct {
	Motion motion.Motion
}

// DeleteSelected removes the range of every caret.
type DeleteSelected struct{}

func (Insert) isBufferOp()         {}
func (Delete) isBufferOp()         {}
func (Undo) isBufferOp()           {}
func (Redo) isBufferOp()           {}
func (Move) isBufferOp()           {}
func (Selection) isBufferOp()      {}
func (NewCaret) isBufferOp()       {}
func (DeleteSelected) isBufferOp() {}

func (op Insert) String() string      { return fmt.Sprintf("insert(%q)", op.Text) }
func (op Delete) String() string      { return "delete(" + op.Trajectory.String() + ")" }
func (Undo) String() string           { return "undo" }
func (Redo) String() string           { return "redo" }
func (op Move) String() string        { return "move(" + op.Motion.String() + ")" }
func (op Selection) String() string   { return "select(" + op.Motion.String() + ")" }
func (op NewCaret) String() string    { return "new-caret(" + op.Motion.String() + ")" }
func (DeleteSelected) String() string { return "delete-selected" }
