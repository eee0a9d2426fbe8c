package buffer

import (
	"fmt"
	"iter"
	"regexp"

	"github.com/dshills/strand/internal/engine/delta"
	"github.com/dshills/strand/internal/engine/history"
	"github.com/dshills/strand/internal/engine/motion"
	"github.com/dshills/strand/internal/engine/region"
	"github.com/dshills/strand/internal/engine/revision"
	"github.com/dshills/strand/internal/engine/rope"
	"github.com/dshills/strand/internal/engine/search"
	"github.com/dshills/strand/internal/engine/view"
	"github.com/dshills/strand/internal/logging"
)

// Position is a line/column position in the buffer. Col is a byte column.
type Position = rope.Point

// Buffer owns the text of one document together with its carets and undo
// history. Every mutation goes through ApplyBufferOp or
// JumpCaretToPosition.
//
// Buffer is not safe for concurrent use. The ropes it hands out are
// immutable and may be used from any goroutine.
type Buffer struct {
	engine  *revision.Engine
	regions *region.Set
	history *history.History

	logger       *logging.Logger
	maxRevisions int
}

// NewFromString creates a buffer holding s with a single caret at 0.
func NewFromString(s string, opts ...Option) *Buffer {
	return newBuffer(rope.FromString(s), opts...)
}

// NewEmpty creates an empty buffer.
func NewEmpty(opts ...Option) *Buffer {
	return newBuffer(rope.New(), opts...)
}

// NewFromRope creates a buffer holding text.
func NewFromRope(text rope.Rope, opts ...Option) *Buffer {
	return newBuffer(text, opts...)
}

func newBuffer(text rope.Rope, opts ...Option) *Buffer {
	b := &Buffer{
		regions:      region.NewSet(region.Cursor(0)),
		history:      history.New(),
		logger:       logging.Default(),
		maxRevisions: revision.DefaultMaxRevisions,
	}
	for _, opt := range opts {
		opt(b)
	}
	b.engine = revision.New(text, b.revisionOptions()...)
	b.logger = b.logger.WithComponent("buffer")
	return b
}

// ContentToString returns the whole text.
func (b *Buffer) ContentToString() string {
	return b.engine.Head().String()
}

// HeadRope returns a snapshot of the current text. It stays valid and
// unchanged while the buffer is edited further.
func (b *Buffer) HeadRope() rope.Rope {
	return b.engine.Head()
}

// Len returns the text length in bytes.
func (b *Buffer) Len() int {
	return b.engine.Head().Len()
}

// LineCount returns the number of lines. An empty buffer has one line.
func (b *Buffer) LineCount() int {
	return b.engine.Head().LineCount()
}

// LinesBetween lazily yields the lines in [low, high) without their
// trailing newline.
func (b *Buffer) LinesBetween(low, high int) iter.Seq2[int, string] {
	return b.engine.Head().Lines(low, high)
}

// Carets returns the carets in ascending order.
func (b *Buffer) Carets() []region.Region {
	return b.regions.Carets()
}

// PrimaryCaret returns the primary caret.
func (b *Buffer) PrimaryCaret() region.Region {
	return b.regions.Primary()
}

// AllCaretPositions returns the head of every caret as a position, in
// ascending order.
func (b *Buffer) AllCaretPositions() []Position {
	text := b.engine.Head()
	carets := b.regions.Carets()
	out := make([]Position, len(carets))
	for i, c := range carets {
		out[i] = text.OffsetToPoint(c.Head)
	}
	return out
}

// AddMark adds a region that follows edits without being a caret.
func (b *Buffer) AddMark(r region.Region) region.ID {
	return b.regions.AddMark(r)
}

// Mark returns a mark added with AddMark.
func (b *Buffer) Mark(id region.ID) (region.Region, bool) {
	return b.regions.Mark(id)
}

// RemoveMark deletes a mark.
func (b *Buffer) RemoveMark(id region.ID) {
	b.regions.RemoveMark(id)
}

// CanUndo reports whether an Undo op would change anything.
func (b *Buffer) CanUndo() bool { return b.history.CanUndo() }

// CanRedo reports whether a Redo op would change anything.
func (b *Buffer) CanRedo() bool { return b.history.CanRedo() }

// Revision returns the id of the current text revision.
func (b *Buffer) Revision() revision.ID {
	return b.engine.HeadRevision()
}

// ApplyBufferOp applies op, using vp for viewport-relative motions. It
// returns false only for an Undo or Redo with nothing to do.
func (b *Buffer) ApplyBufferOp(vp view.Viewport, op BufferOp) bool {
	b.logger.Debug("apply %s", op)
	text := b.engine.Head()
	switch op := op.(type) {
	case Insert:
		b.insertAtCarets(op.Text)
	case Delete:
		b.deleteAtCarets(op.Trajectory)
	case DeleteSelected:
		b.deleteSelected()
	case Undo:
		return b.undo()
	case Redo:
		return b.redo()
	case Move:
		b.regions.UpdateCarets(func(_ region.ID, r region.Region) region.Region {
			return motion.Apply(text, vp, r, false, op.Motion)
		})
	case Selection:
		b.regions.UpdateCarets(func(_ region.ID, r region.Region) region.Region {
			return motion.Apply(text, vp, r, true, op.Motion)
		})
	case NewCaret:
		primary := b.regions.Primary()
		caret := motion.Apply(text, vp, primary, false, op.Motion)
		if !caret.Equal(primary) {
			b.regions.AddCaret(true, caret)
		}
	default:
		panic(fmt.Sprintf("buffer: unknown op %T", op))
	}
	return true
}

// JumpCaretToPosition leaves a single caret at pos. With snap set an out of
// range position is clamped to the nearest valid one; without it the jump
// fails and nothing changes unless pos addresses the text.
func (b *Buffer) JumpCaretToPosition(pos Position, snap bool) bool {
	text := b.engine.Head()
	var offset int
	if snap {
		offset = text.PointToOffsetSnapping(pos)
	} else {
		var ok bool
		if offset, ok = text.PointToOffset(pos); !ok {
			return false
		}
	}
	b.regions.CollapseCaretsIntoPrimary()
	b.regions.SetPrimaryCaret(region.Cursor(offset))
	return true
}

// SelectNextMatch selects the next match of re after the primary caret,
// wrapping around to the start of the text. With addCaret the match is
// selected by a new primary caret, otherwise the buffer drops to a single
// caret first. It reports whether anything matched.
func (b *Buffer) SelectNextMatch(re *regexp.Regexp, addCaret bool) bool {
	m, ok := search.NextWrapping(b.engine.Head(), re, b.regions.Primary().Range().End)
	if !ok {
		return false
	}
	b.selectMatch(region.Selection(m.End, m.Start), addCaret)
	return true
}

// SelectPrevMatch is SelectNextMatch searching backwards from the start of
// the primary caret. The selection's head is left at the match start.
func (b *Buffer) SelectPrevMatch(re *regexp.Regexp, addCaret bool) bool {
	m, ok := search.PrevWrapping(b.engine.Head(), re, b.regions.Primary().Range().Start)
	if !ok {
		return false
	}
	b.selectMatch(region.Selection(m.Start, m.End), addCaret)
	return true
}

func (b *Buffer) selectMatch(sel region.Region, addCaret bool) {
	if addCaret {
		b.regions.AddCaret(true, sel)
		return
	}
	b.regions.CollapseCaretsIntoPrimary()
	b.regions.SetPrimaryCaret(sel)
}

func (b *Buffer) insertAtCarets(text string) {
	ins := rope.FromString(text)
	db := delta.NewBuilder(b.engine.Head().Len())
	for _, c := range b.regions.Carets() {
		r := c.Range()
		db.ReplaceRope(r.Start, r.End, ins)
	}
	b.commit(db.Build(), EditInsert)
}

func (b *Buffer) deleteAtCarets(traj Trajectory) {
	text := b.engine.Head()
	db := delta.NewBuilder(text.Len())
	for _, c := range b.regions.Carets() {
		var start, end int
		switch traj {
		case Forward:
			start, end = c.Head, text.NextGraphemeOffset(c.Head)
		default:
			start, end = text.PrevGraphemeOffset(c.Head), c.Head
		}
		start = max(start, db.Last())
		end = max(end, start)
		db.Delete(start, end)
	}
	b.commit(db.Build(), EditDelete)
}

func (b *Buffer) deleteSelected() {
	db := delta.NewBuilder(b.engine.Head().Len())
	for _, c := range b.regions.Carets() {
		r := c.Range()
		db.Delete(r.Start, r.End)
	}
	b.commit(db.Build(), EditDelete)
}

// commit moves the regions through d and records it in the current undo
// group. Deltas that change nothing are dropped.
func (b *Buffer) commit(d delta.Delta, editType EditType) {
	if d.IsIdentity() {
		return
	}
	b.regions.ApplyDelta(d)
	group := b.history.Record(editType)
	b.engine.Commit(d, group)
}

func (b *Buffer) undo() bool {
	if !b.history.Undo() {
		return false
	}
	b.syncHistory()
	return true
}

func (b *Buffer) redo() bool {
	if !b.history.Redo() {
		return false
	}
	b.syncHistory()
	return true
}

// syncHistory recomputes the text for the history's undone set and carries
// the regions over. If the change cannot be expressed as a delta the
// regions are clamped instead.
func (b *Buffer) syncHistory() {
	prev := b.engine.HeadRevision()
	text := b.engine.Undo(b.history.Undone())
	d, err := b.engine.DeltaFromHead(prev)
	if err != nil {
		b.logger.Warn("carets not transformed after undo: %v", err)
		b.regions.ClampTo(text.Len())
		return
	}
	b.regions.ApplyDelta(d)
}
