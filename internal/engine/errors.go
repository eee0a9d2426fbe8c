package engine

import (
	"errors"

	"github.com/dshills/strand/internal/engine/tracking"
)

// Errors returned by engine operations.
var (
	// ErrNothingToUndo indicates every undo group is already rolled back.
	ErrNothingToUndo = errors.New("nothing to undo")

	// ErrNothingToRedo indicates no rolled back group is left to restore.
	ErrNothingToRedo = errors.New("nothing to redo")

	// ErrReadOnly indicates an edit was attempted on a read-only engine.
	ErrReadOnly = errors.New("engine is read-only")

	// ErrInvalidPattern indicates a search pattern failed to compile.
	ErrInvalidPattern = errors.New("invalid search pattern")

	// ErrCheckpointNotFound indicates no checkpoint has the requested name.
	ErrCheckpointNotFound = tracking.ErrCheckpointNotFound
)
