package region

import "github.com/google/uuid"

// ID is an opaque handle to a region. IDs stay valid across merges and
// removals of other regions.
type ID uuid.UUID

func newID() ID {
	return ID(uuid.New())
}

// IsZero reports whether id is the zero value.
func (id ID) IsZero() bool {
	return id == ID{}
}

func (id ID) String() string {
	return uuid.UUID(id).String()
}
