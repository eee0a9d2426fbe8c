// Package revision implements the versioned text store behind a buffer.
//
// An Engine holds the current head text and an append-only log of
// committed deltas, each tagged with an undo group. Undoing is expressed
// as a set of rolled-back groups: the head is always the replay of the
// logged deltas outside that set, in commit order.
//
// Every commit and every change of the undone set produces a new
// revision. The engine keeps a bounded window of recent revisions so that
// callers can ask for the delta between any retained revision and the
// head, which is how cursor positions are carried across an undo.
package revision
