package engine

import (
	"fmt"
	"io"
	"regexp"
	"sync"

	"github.com/google/uuid"
	"github.com/tidwall/sjson"

	"github.com/dshills/strand/internal/engine/buffer"
	"github.com/dshills/strand/internal/engine/region"
	"github.com/dshills/strand/internal/engine/revision"
	"github.com/dshills/strand/internal/engine/rope"
	"github.com/dshills/strand/internal/engine/tracking"
	"github.com/dshills/strand/internal/engine/view"
	"github.com/dshills/strand/internal/logging"
)

// Re-export commonly used types for convenience.
type (
	// Position is a line/column position with a byte column.
	Position = buffer.Position

	// Region is a caret or mark.
	Region = region.Region

	// Viewport is the visible window of lines.
	Viewport = view.Viewport

	// RevisionID identifies a revision of the text.
	RevisionID = revision.ID

	// BufferOp is an operation applied through Apply.
	BufferOp = buffer.BufferOp
)

// Engine is a document session. It wraps a buffer together with the
// viewport it is shown in and serializes access to both.
//
// All operations are thread-safe and can be called from multiple goroutines.
type Engine struct {
	mu sync.RWMutex

	id          uuid.UUID
	title       string
	buf         *buffer.Buffer
	viewport    view.Viewport
	checkpoints *tracking.Checkpoints

	// Configuration
	scrollOff    int
	maxRevisions int
	readOnly     bool
	logger       *logging.Logger

	// Initialization
	initContent string
}

// New creates an engine with the given options.
func New(opts ...Option) *Engine {
	e := newEngine(opts...)
	e.buf = buffer.NewFromString(e.initContent, e.bufferOptions()...)
	e.initContent = ""
	return e
}

// NewFromReader creates an engine whose content is read from r.
func NewFromReader(r io.Reader, opts ...Option) (*Engine, error) {
	text, err := rope.FromReader(r)
	if err != nil {
		return nil, fmt.Errorf("read content: %w", err)
	}
	e := newEngine(opts...)
	e.buf = buffer.NewFromRope(text, e.bufferOptions()...)
	e.initContent = ""
	return e, nil
}

func newEngine(opts ...Option) *Engine {
	e := &Engine{
		id:           uuid.New(),
		viewport:     view.New(0, DefaultHeight),
		checkpoints:  tracking.NewCheckpoints(),
		scrollOff:    DefaultScrollOff,
		maxRevisions: revision.DefaultMaxRevisions,
		logger:       logging.Default(),
	}
	for _, opt := range opts {
		opt(e)
	}
	e.logger = e.logger.WithField("document", e.id.String())
	return e
}

func (e *Engine) bufferOptions() []buffer.Option {
	return []buffer.Option{
		buffer.WithLogger(e.logger),
		buffer.WithMaxRevisions(e.maxRevisions),
	}
}

// ============================================================================
// Identity
// ============================================================================

// ID returns the document id.
func (e *Engine) ID() uuid.UUID {
	return e.id
}

// Title returns the document title.
func (e *Engine) Title() string {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.title
}

// SetTitle changes the document title.
func (e *Engine) SetTitle(title string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.title = title
}

// IsReadOnly returns true if the engine rejects edits.
func (e *Engine) IsReadOnly() bool {
	return e.readOnly
}

// ============================================================================
// Read Operations
// ============================================================================

// Text returns the entire content.
func (e *Engine) Text() string {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.buf.ContentToString()
}

// Len returns the content length in bytes.
func (e *Engine) Len() int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.buf.Len()
}

// LineCount returns the number of lines.
func (e *Engine) LineCount() int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.buf.LineCount()
}

// VisibleLines returns the text of the lines inside the viewport, without
// their trailing newline.
func (e *Engine) VisibleLines() []string {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.visibleLinesLocked()
}

func (e *Engine) visibleLinesLocked() []string {
	lines := make([]string, 0, min(e.viewport.Height, e.buf.LineCount()))
	for _, line := range e.buf.LinesBetween(e.viewport.FirstLine, e.viewport.FirstLine+e.viewport.Height) {
		lines = append(lines, line)
	}
	return lines
}

// Snapshot returns an immutable copy of the current text.
func (e *Engine) Snapshot() rope.Rope {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.buf.HeadRope()
}

// Revision returns the id of the current text revision.
func (e *Engine) Revision() RevisionID {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.buf.Revision()
}

// WriteTo writes the current content to w. Only taking the snapshot holds
// the lock, so edits may proceed while a large document is written.
func (e *Engine) WriteTo(w io.Writer) (int64, error) {
	return e.Snapshot().WriteTo(w)
}

// ============================================================================
// Carets and Viewport
// ============================================================================

// Carets returns all carets in ascending order.
func (e *Engine) Carets() []Region {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.buf.Carets()
}

// PrimaryCaret returns the primary caret.
func (e *Engine) PrimaryCaret() Region {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.buf.PrimaryCaret()
}

// CaretPositions returns the head of every caret as a position.
func (e *Engine) CaretPositions() []Position {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.buf.AllCaretPositions()
}

// Viewport returns the current viewport.
func (e *Engine) Viewport() Viewport {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.viewport
}

// SetViewport replaces the viewport. It is not scrolled to the caret until
// the next operation.
func (e *Engine) SetViewport(vp Viewport) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.viewport = vp
}

// Resize changes the viewport height and scrolls it to the primary caret.
func (e *Engine) Resize(height int) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.viewport = view.New(e.viewport.FirstLine, height)
	e.followCaretLocked()
}

// ============================================================================
// Operations
// ============================================================================

// Apply applies op to the buffer and scrolls the viewport so the primary
// caret stays visible. It returns false only for an undo or redo that had
// nothing to do. Edits on a read-only engine fail with ErrReadOnly.
func (e *Engine) Apply(op BufferOp) (bool, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.readOnly && isEdit(op) {
		return false, ErrReadOnly
	}
	changed := e.buf.ApplyBufferOp(e.viewport, op)
	e.followCaretLocked()
	return changed, nil
}

// Undo rolls back the most recent undo group.
func (e *Engine) Undo() error {
	ok, err := e.Apply(buffer.Undo{})
	if err != nil {
		return err
	}
	if !ok {
		return ErrNothingToUndo
	}
	return nil
}

// Redo restores the most recently undone group.
func (e *Engine) Redo() error {
	ok, err := e.Apply(buffer.Redo{})
	if err != nil {
		return err
	}
	if !ok {
		return ErrNothingToRedo
	}
	return nil
}

// CanUndo returns true if there is something to undo.
func (e *Engine) CanUndo() bool {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.buf.CanUndo()
}

// CanRedo returns true if there is something to redo.
func (e *Engine) CanRedo() bool {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.buf.CanRedo()
}

// Jump leaves a single caret at pos. See buffer.Buffer.JumpCaretToPosition
// for the meaning of snap.
func (e *Engine) Jump(pos Position, snap bool) bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.buf.JumpCaretToPosition(pos, snap) {
		return false
	}
	e.followCaretLocked()
	return true
}

// SelectNextMatch compiles pattern and selects its next match after the
// primary caret, wrapping around. It reports whether anything matched.
func (e *Engine) SelectNextMatch(pattern string, addCaret bool) (bool, error) {
	return e.selectMatch(pattern, addCaret, (*buffer.Buffer).SelectNextMatch)
}

// SelectPrevMatch is SelectNextMatch searching backwards from the primary
// caret.
func (e *Engine) SelectPrevMatch(pattern string, addCaret bool) (bool, error) {
	return e.selectMatch(pattern, addCaret, (*buffer.Buffer).SelectPrevMatch)
}

func (e *Engine) selectMatch(pattern string, addCaret bool, find func(*buffer.Buffer, *regexp.Regexp, bool) bool) (bool, error) {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return false, fmt.Errorf("%w: %w", ErrInvalidPattern, err)
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if !find(e.buf, re, addCaret) {
		return false, nil
	}
	e.followCaretLocked()
	return true, nil
}

// AddMark adds a region that follows edits without being a caret.
func (e *Engine) AddMark(r Region) region.ID {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.buf.AddMark(r)
}

// Mark returns a mark added with AddMark.
func (e *Engine) Mark(id region.ID) (Region, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.buf.Mark(id)
}

// RemoveMark deletes a mark.
func (e *Engine) RemoveMark(id region.ID) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.buf.RemoveMark(id)
}

func (e *Engine) followCaretLocked() {
	line := e.buf.HeadRope().LineOfOffset(e.buf.PrimaryCaret().Head)
	vp := e.viewport.WithLineInView(line, e.scrollOff)
	if vp != e.viewport {
		e.logger.Trace("scroll %s -> %s", e.viewport, vp)
		e.viewport = vp
	}
}

func isEdit(op BufferOp) bool {
	switch op.(type) {
	case buffer.Insert, buffer.Delete, buffer.DeleteSelected, buffer.Undo, buffer.Redo:
		return true
	}
	return false
}

// ============================================================================
// Checkpoints
// ============================================================================

// Checkpoint records the current text under name, replacing any
// checkpoint with that name, and returns the revision it was taken at.
func (e *Engine) Checkpoint(name string) RevisionID {
	e.mu.Lock()
	defer e.mu.Unlock()
	rev := e.buf.Revision()
	e.checkpoints.Set(name, e.buf.HeadRope(), rev)
	return rev
}

// DeleteCheckpoint removes a checkpoint.
func (e *Engine) DeleteCheckpoint(name string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.checkpoints.Delete(name)
}

// Checkpoints returns the checkpoint names in sorted order.
func (e *Engine) Checkpoints() []string {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.checkpoints.Names()
}

// ModifiedSince reports whether the text differs from checkpoint name.
// Undoing back to the checkpointed text counts as unmodified.
func (e *Engine) ModifiedSince(name string) (bool, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	cp, err := e.checkpointLocked(name)
	if err != nil {
		return false, err
	}
	return !cp.Text.Equals(e.buf.HeadRope()), nil
}

// DiffSince returns a unified line diff from checkpoint name to the
// current text, with context unchanged lines around each change. It is
// empty when nothing changed.
func (e *Engine) DiffSince(name string, context int) (string, error) {
	e.mu.RLock()
	cp, err := e.checkpointLocked(name)
	head := e.buf.HeadRope()
	title := e.title
	e.mu.RUnlock()
	if err != nil {
		return "", err
	}

	if title == "" {
		title = "current"
	}
	return tracking.Unified(name, title, tracking.Diff(cp.Text, head, context)), nil
}

func (e *Engine) checkpointLocked(name string) (*tracking.Checkpoint, error) {
	cp, ok := e.checkpoints.Get(name)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrCheckpointNotFound, name)
	}
	return cp, nil
}

// ============================================================================
// Notifications
// ============================================================================

// UpdateNotification renders the state a client needs to redraw: the
// document id, the viewport, the visible lines and the caret positions.
func (e *Engine) UpdateNotification() ([]byte, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	doc := []byte(`{}`)
	var err error
	set := func(path string, value any) {
		if err == nil {
			doc, err = sjson.SetBytes(doc, path, value)
		}
	}
	setRaw := func(path, raw string) {
		if err == nil {
			doc, err = sjson.SetRawBytes(doc, path, []byte(raw))
		}
	}

	set("document_id", e.id.String())
	if e.title != "" {
		set("title", e.title)
	}
	set("revision", uint64(e.buf.Revision()))
	set("view.first_line", e.viewport.FirstLine)
	set("view.height", e.viewport.Height)
	setRaw("text", "[]")
	for _, line := range e.visibleLinesLocked() {
		set("text.-1", line)
	}
	setRaw("carets", "[]")
	for _, pos := range e.buf.AllCaretPositions() {
		set("carets.-1", pos)
	}
	if err != nil {
		return nil, fmt.Errorf("build update notification: %w", err)
	}
	return doc, nil
}
