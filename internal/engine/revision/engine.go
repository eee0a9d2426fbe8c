package revision

import (
	"fmt"
	"maps"
	"slices"
	"time"

	"github.com/dshills/strand/internal/engine/delta"
	"github.com/dshills/strand/internal/engine/rope"
	"github.com/dshills/strand/internal/logging"
)

// GroupID identifies an undo group. Every committed delta belongs to one.
type GroupID uint64

// GroupSet is a set of undo groups.
type GroupSet map[GroupID]struct{}

// NewGroupSet returns a set holding ids.
func NewGroupSet(ids ...GroupID) GroupSet {
	s := make(GroupSet, len(ids))
	for _, id := range ids {
		s[id] = struct{}{}
	}
	return s
}

// Has reports whether id is in the set.
func (s GroupSet) Has(id GroupID) bool {
	_, ok := s[id]
	return ok
}

// Clone returns a copy of the set.
func (s GroupSet) Clone() GroupSet {
	if s == nil {
		return GroupSet{}
	}
	return maps.Clone(s)
}

// Sorted returns the ids in ascending order.
func (s GroupSet) Sorted() []GroupID {
	return slices.Sorted(maps.Keys(s))
}

type entry struct {
	group  GroupID
	delta  delta.Delta
	before rope.Rope
}

// Engine stores the text of a document together with the log of every
// delta committed to it.
//
// The head is always the result of replaying, in commit order, the logged
// deltas whose group is not in the undone set. Undo changes that set and
// recomputes the head; nothing is ever removed from the log.
type Engine struct {
	base   rope.Rope
	head   rope.Rope
	log    []entry
	active []int // log indices currently applied, ascending
	undone GroupSet

	revisions    *revisionStore
	maxRevisions int
	nextID       ID
	logger       *logging.Logger
}

// New creates an engine whose initial text is text.
func New(text rope.Rope, opts ...Option) *Engine {
	e := &Engine{
		base:         text,
		head:         text,
		undone:       GroupSet{},
		maxRevisions: DefaultMaxRevisions,
		logger:       logging.Default(),
	}
	for _, opt := range opts {
		opt(e)
	}
	e.revisions = newRevisionStore(e.maxRevisions)
	e.logger = e.logger.WithComponent("revision")
	e.revisions.add(&Revision{
		ID:        e.nextID,
		Kind:      KindInitial,
		Timestamp: time.Now(),
		step:      delta.Identity(text.Len()),
		rope:      text,
	})
	return e
}

// Head returns the current text. The returned rope is an immutable
// snapshot and stays valid after further commits.
func (e *Engine) Head() rope.Rope {
	return e.head
}

// HeadRevision returns the ID of the current revision.
func (e *Engine) HeadRevision() ID {
	return e.revisions.head().ID
}

// Revision returns a retained revision by ID.
func (e *Engine) Revision(id ID) (*Revision, bool) {
	return e.revisions.get(id)
}

// RevisionCount returns the number of retained revisions.
func (e *Engine) RevisionCount() int {
	return e.revisions.len()
}

// Undone returns a copy of the current undone set.
func (e *Engine) Undone() GroupSet {
	return e.undone.Clone()
}

// Commit applies d to the head and records it under group.
// A delta built for a different text length, or a commit into a group
// that is currently undone, is a programmer error and panics before any
// state changes.
func (e *Engine) Commit(d delta.Delta, group GroupID) rope.Rope {
	if d.BaseLen() != e.head.Len() {
		panic(fmt.Sprintf("revision: commit delta for length %d onto head of length %d", d.BaseLen(), e.head.Len()))
	}
	if e.undone.Has(group) {
		panic(fmt.Sprintf("revision: commit into undone group %d", group))
	}
	before := e.head
	e.head = d.Apply(before)
	e.log = append(e.log, entry{group: group, delta: d, before: before})
	e.active = append(e.active, len(e.log)-1)
	e.push(KindEdit, d)
	e.logger.Trace("commit group=%d %d->%d bytes revision=%d", group, before.Len(), e.head.Len(), e.HeadRevision())
	return e.head
}

// Undo makes undone the set of rolled-back groups and recomputes the head.
// Only the part of the history that differs from the current state is
// inverted and replayed; the result always equals Replay(undone).
func (e *Engine) Undo(undone GroupSet) rope.Rope {
	next := e.activeFor(undone)
	common := 0
	for common < len(next) && common < len(e.active) && next[common] == e.active[common] {
		common++
	}

	text := e.head
	step := delta.Identity(text.Len())
	for i := len(e.active) - 1; i >= common; i-- {
		ent := e.log[e.active[i]]
		inv := ent.delta.Invert(ent.before)
		step = delta.Compose(step, inv)
		text = inv.Apply(text)
	}
	for _, idx := range next[common:] {
		d := e.log[idx].delta
		step = delta.Compose(step, d)
		text = d.Apply(text)
	}

	rolledBack := len(e.active) - common
	e.head = text
	e.active = next
	e.undone = undone.Clone()
	e.push(KindUndo, step)
	e.logger.Trace("undo set=%v rolled back %d, replayed %d, revision=%d",
		e.undone.Sorted(), rolledBack, len(next)-common, e.HeadRevision())
	return e.head
}

// Replay rebuilds the text from the initial revision, applying every
// logged delta whose group is not in undone. It does not change the engine.
func (e *Engine) Replay(undone GroupSet) rope.Rope {
	text := e.base
	for _, idx := range e.activeFor(undone) {
		text = e.log[idx].delta.Apply(text)
	}
	return text
}

// DeltaFromHead returns the delta from revision id to the head.
// It fails with ErrRevisionNotFound if id was evicted or never existed.
func (e *Engine) DeltaFromHead(id ID) (delta.Delta, error) {
	i, ok := e.revisions.index(id)
	if !ok {
		return delta.Delta{}, fmt.Errorf("%w: %d", ErrRevisionNotFound, id)
	}
	revs := e.revisions.revisions
	d := delta.Identity(revs[i].rope.Len())
	for _, rev := range revs[i+1:] {
		d = delta.Compose(d, rev.step)
	}
	return d, nil
}

func (e *Engine) activeFor(undone GroupSet) []int {
	out := make([]int, 0, len(e.log))
	for i, ent := range e.log {
		if !undone.Has(ent.group) {
			out = append(out, i)
		}
	}
	return out
}

func (e *Engine) push(kind Kind, step delta.Delta) {
	e.nextID++
	e.revisions.add(&Revision{
		ID:        e.nextID,
		Kind:      kind,
		Timestamp: time.Now(),
		step:      step,
		rope:      e.head,
	})
}
