package revision

import "errors"

// ErrRevisionNotFound indicates a revision was evicted or never existed.
var ErrRevisionNotFound = errors.New("revision not found")
