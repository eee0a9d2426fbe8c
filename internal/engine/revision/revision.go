package revision

import (
	"time"

	"github.com/dshills/strand/internal/engine/delta"
	"github.com/dshills/strand/internal/engine/rope"
)

// ID identifies a revision of the text. IDs increase by one per revision.
type ID uint64

// Kind says how a revision was produced.
type Kind uint8

const (
	// KindInitial is the revision the engine was created with.
	KindInitial Kind = iota
	// KindEdit is a committed delta.
	KindEdit
	// KindUndo is a change of the undone set.
	KindUndo
)

// Revision captures the text at a point in time together with the step
// that produced it from the previous revision.
type Revision struct {
	// ID uniquely identifies this revision.
	ID ID

	// Kind says whether the revision came from an edit or an undo/redo.
	Kind Kind

	// Timestamp when this revision was created.
	Timestamp time.Time

	step delta.Delta
	rope rope.Rope
}

// Rope returns the text snapshot for this revision.
func (r *Revision) Rope() rope.Rope {
	return r.rope
}

// Step returns the delta from the previous revision to this one.
func (r *Revision) Step() delta.Delta {
	return r.step
}

// revisionStore keeps a bounded, contiguous window of the newest revisions.
type revisionStore struct {
	revisions  []*Revision
	maxEntries int
}

func newRevisionStore(maxEntries int) *revisionStore {
	if maxEntries <= 0 {
		maxEntries = DefaultMaxRevisions
	}
	return &revisionStore{maxEntries: maxEntries}
}

// add stores a revision, evicting the oldest ones past capacity.
func (rs *revisionStore) add(rev *Revision) {
	rs.revisions = append(rs.revisions, rev)
	if over := len(rs.revisions) - rs.maxEntries; over > 0 {
		clear(rs.revisions[:over])
		rs.revisions = rs.revisions[over:]
	}
}

// index returns the position of id in the window.
func (rs *revisionStore) index(id ID) (int, bool) {
	if len(rs.revisions) == 0 {
		return 0, false
	}
	first := rs.revisions[0].ID
	if id < first || id > rs.head().ID {
		return 0, false
	}
	return int(id - first), true
}

func (rs *revisionStore) get(id ID) (*Revision, bool) {
	i, ok := rs.index(id)
	if !ok {
		return nil, false
	}
	return rs.revisions[i], true
}

func (rs *revisionStore) head() *Revision {
	return rs.revisions[len(rs.revisions)-1]
}

func (rs *revisionStore) len() int {
	return len(rs.revisions)
}
