package revision

import "github.com/dshills/strand/internal/logging"

// DefaultMaxRevisions is the number of revisions retained for
// DeltaFromHead when no limit is configured.
const DefaultMaxRevisions = 1000

// Option configures an Engine during creation.
type Option func(*Engine)

// WithMaxRevisions bounds the number of retained revisions. Older
// revisions are evicted and can no longer be diffed against the head.
func WithMaxRevisions(max int) Option {
	return func(e *Engine) {
		if max > 0 {
			e.maxRevisions = max
		}
	}
}

// WithLogger sets the logger used for commit and undo tracing.
func WithLogger(l *logging.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}
