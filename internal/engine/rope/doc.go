// Package rope provides an immutable rope for storing document text.
//
// A rope is a B+ tree whose leaves hold bounded UTF-8 chunks and whose
// internal nodes cache byte and newline counts for their subtree. Every
// leaf sits at the same depth.
//
// Key features:
//   - O(log n) split, concat, slicing and line/offset lookups
//   - Immutable values; an edit returns a new rope sharing unchanged subtrees
//   - O(1) snapshots that stay valid while the document keeps changing
//   - Lazy chunk iteration in both directions from any offset
//   - Grapheme-cluster navigation for cursor movement
//
// Offsets are byte offsets into the UTF-8 text. Lines are separated by
// '\n' and a rope always has at least one line.
//
// Basic usage:
//
//	r := rope.FromString("hello world")
//	r = r.Insert(5, ",")   // "hello, world"
//	r = r.Delete(0, 7)     // "world"
//	snapshot := r          // keeps "world" no matter what happens to r next
package rope
