package tracking

import (
	"errors"
	"maps"
	"slices"
	"time"

	"github.com/dshills/strand/internal/engine/revision"
	"github.com/dshills/strand/internal/engine/rope"
)

// ErrCheckpointNotFound indicates no checkpoint has the requested name.
var ErrCheckpointNotFound = errors.New("checkpoint not found")

// Checkpoint is the text of a document at a named point in time.
type Checkpoint struct {
	// Name identifies the checkpoint.
	Name string

	// Revision is the document revision the text was taken at.
	Revision revision.ID

	// Text is the document text.
	Text rope.Rope

	// Created is when the checkpoint was taken.
	Created time.Time
}

// Age returns how long ago the checkpoint was taken.
func (c *Checkpoint) Age() time.Duration {
	return time.Since(c.Created)
}

// Checkpoints stores checkpoints by name. It is not safe for concurrent
// use.
type Checkpoints struct {
	byName map[string]*Checkpoint
}

// NewCheckpoints returns an empty store.
func NewCheckpoints() *Checkpoints {
	return &Checkpoints{byName: make(map[string]*Checkpoint)}
}

// Set records text under name, replacing any checkpoint with that name.
func (c *Checkpoints) Set(name string, text rope.Rope, rev revision.ID) *Checkpoint {
	cp := &Checkpoint{Name: name, Revision: rev, Text: text, Created: time.Now()}
	c.byName[name] = cp
	return cp
}

// Get returns the checkpoint called name.
func (c *Checkpoints) Get(name string) (*Checkpoint, bool) {
	cp, ok := c.byName[name]
	return cp, ok
}

// Delete removes the checkpoint called name.
func (c *Checkpoints) Delete(name string) {
	delete(c.byName, name)
}

// Names returns the checkpoint names in sorted order.
func (c *Checkpoints) Names() []string {
	return slices.Sorted(maps.Keys(c.byName))
}

// Len returns the number of checkpoints.
func (c *Checkpoints) Len() int {
	return len(c.byName)
}

// Prune deletes checkpoints older than maxAge and returns how many were
// removed.
func (c *Checkpoints) Prune(maxAge time.Duration) int {
	removed := 0
	for name, cp := range c.byName {
		if cp.Age() > maxAge {
			delete(c.byName, name)
			removed++
		}
	}
	return removed
}
