// Package engine provides the document session for strand.
//
// An Engine wraps a buffer.Buffer together with the viewport a client
// shows it in. It is the only layer that takes locks: the packages below
// it are single-threaded and are driven one operation at a time from here.
//
// # Architecture
//
// The engine is built on several sub-packages:
//
//   - rope: persistent B+ tree holding the text
//   - delta: edits as lists of copied and inserted spans
//   - revision: delta log with group based undo
//   - history: linear undo groups with branch on edit
//   - region: carets and marks that follow edits
//   - motion: caret motions over text and viewport
//   - buffer: the op dispatcher tying the above together
//
// # Thread Safety
//
// All Engine operations are thread-safe. Reads take a read lock and edits
// take the write lock. WriteTo only holds the lock long enough to take a
// snapshot, so saving a large document does not block editing.
//
// # Basic Usage
//
//	e := engine.New(engine.WithContent("hello"), engine.WithHeight(10))
//
//	e.Apply(buffer.Move{Motion: motion.Of(motion.EndOfLine)})
//	e.Apply(buffer.Insert{Text: " world"})
//	text := e.Text() // "hello world"
//
//	e.Undo() // "hello"
//
//	note, _ := e.UpdateNotification()
//
// UpdateNotification renders the document id, the viewport, the visible
// lines and the caret positions as JSON.
package engine
