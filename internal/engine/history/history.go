package history

import "github.com/dshills/strand/internal/engine/revision"

// EditType classifies an edit for undo grouping.
type EditType uint8

const (
	// EditOther is any edit that never merges with its neighbours' group
	// by type, such as a paste of a selection replacement.
	EditOther EditType = iota
	// EditInsert is typed text.
	EditInsert
	// EditDelete is a character or selection deletion.
	EditDelete
)

// String returns the edit type name.
func (t EditType) String() string {
	switch t {
	case EditInsert:
		return "insert"
	case EditDelete:
		return "delete"
	default:
		return "other"
	}
}

// History is the undo state machine of one buffer. Group 0 is the initial
// group and can never be undone.
//
// History is not safe for concurrent use.
type History struct {
	curGroup revision.GroupID
	groups   []revision.GroupID
	idx      int
	undone   revision.GroupSet
	lastEdit EditType
}

// New returns a history positioned on the initial group.
func New() *History {
	return &History{
		groups:   []revision.GroupID{0},
		undone:   revision.GroupSet{},
		lastEdit: EditOther,
	}
}

// PerformEdit returns the group the next commit belongs to. A new group is
// started when newGroup is set or when the history is not at its tip; in
// the latter case the redo branch is discarded.
func (h *History) PerformEdit(newGroup bool) revision.GroupID {
	if newGroup || h.idx != len(h.groups)-1 {
		h.curGroup++
		h.groups = append(h.groups[:h.idx+1], h.curGroup)
		h.idx++
	}
	return h.curGroup
}

// Record is PerformEdit driven by edit type: an edit continues the current
// group only if it has the same type as the previous one.
func (h *History) Record(t EditType) revision.GroupID {
	newGroup := h.lastEdit != t
	h.lastEdit = t
	return h.PerformEdit(newGroup)
}

// Undo marks the most recent applied group as undone. It reports false if
// there is nothing to undo.
func (h *History) Undo() bool {
	if h.idx == 0 {
		return false
	}
	h.undone[h.groups[h.idx]] = struct{}{}
	h.idx--
	h.lastEdit = EditOther
	return true
}

// Redo reapplies the most recently undone group. It reports false if the
// history is already at its tip.
func (h *History) Redo() bool {
	if h.idx == len(h.groups)-1 {
		return false
	}
	h.idx++
	delete(h.undone, h.groups[h.idx])
	h.lastEdit = EditOther
	return true
}

// CanUndo reports whether Undo would succeed.
func (h *History) CanUndo() bool { return h.idx > 0 }

// CanRedo reports whether Redo would succeed.
func (h *History) CanRedo() bool { return h.idx < len(h.groups)-1 }

// Undone returns a copy of the set of undone groups.
func (h *History) Undone() revision.GroupSet {
	return h.undone.Clone()
}

// CurrentGroup returns the group of the most recent applied edit, or 0
// when every edit is undone.
func (h *History) CurrentGroup() revision.GroupID {
	return h.groups[h.idx]
}
