package engine

import (
	"github.com/dshills/strand/internal/engine/view"
	"github.com/dshills/strand/internal/logging"
)

// Default configuration values.
const (
	DefaultHeight    = 24
	DefaultScrollOff = 0
)

// Option configures an Engine during creation.
type Option func(*Engine)

// WithContent sets the initial content of the engine.
func WithContent(content string) Option {
	return func(e *Engine) {
		e.initContent = content
	}
}

// WithTitle sets the document title reported in update notifications.
func WithTitle(title string) Option {
	return func(e *Engine) {
		e.title = title
	}
}

// WithMaxRevisions sets the maximum number of stored revisions.
func WithMaxRevisions(max int) Option {
	return func(e *Engine) {
		if max > 0 {
			e.maxRevisions = max
		}
	}
}

// WithViewport sets the initial viewport.
func WithViewport(vp view.Viewport) Option {
	return func(e *Engine) {
		e.viewport = vp
	}
}

// WithHeight sets the viewport height, keeping the first line at 0.
func WithHeight(height int) Option {
	return func(e *Engine) {
		e.viewport = view.New(0, height)
	}
}

// WithScrollOff sets how many lines are kept between the primary caret
// and the edges of the viewport.
func WithScrollOff(lines int) Option {
	return func(e *Engine) {
		if lines >= 0 {
			e.scrollOff = lines
		}
	}
}

// WithLogger sets the logger for the engine and its buffer.
func WithLogger(l *logging.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

// WithReadOnly creates a read-only engine.
// Edit operations will return ErrReadOnly.
func WithReadOnly() Option {
	return func(e *Engine) {
		e.readOnly = true
	}
}
