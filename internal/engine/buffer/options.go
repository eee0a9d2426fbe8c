package buffer

import (
	"github.com/dshills/strand/internal/engine/revision"
	"github.com/dshills/strand/internal/logging"
)

// Option is a functional option for configuring a Buffer.
type Option func(*Buffer)

// WithLogger sets the logger for op dispatch and recovery messages. The
// revision engine logs through the same logger.
func WithLogger(l *logging.Logger) Option {
	return func(b *Buffer) {
		if l != nil {
			b.logger = l
		}
	}
}

// WithMaxRevisions bounds the revisions kept for carrying carets across
// undo and redo.
func WithMaxRevisions(n int) Option {
	return func(b *Buffer) {
		if n > 0 {
			b.maxRevisions = n
		}
	}
}

func (b *Buffer) revisionOptions() []revision.Option {
	return []revision.Option{
		revision.WithLogger(b.logger),
		revision.WithMaxRevisions(b.maxRevisions),
	}
}
