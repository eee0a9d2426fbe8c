// Package script decodes and runs op scripts.
//
// A script is a sequence of steps applied to an engine.Engine. Each step
// is a buffer op, a caret jump or a regex search. Scripts are written
// either as YAML:
//
//	ops:
//	  - op: insert
//	    text: "hello"
//	  - op: move
//	    motion: prev-word-start
//	  - op: jump
//	    line: 3
//	    col: 0
//	    snap: true
//
// or as JSON lines, one step per line:
//
//	{"op":"insert","text":"hello"}
//	{"op":"search","pattern":"h.l","add_caret":true}
//
// Op names are insert, delete (direction forward or backward),
// delete-selected, undo, redo, move, select, new-caret (each taking a
// motion name as accepted by motion.Parse), jump and search (direction
// forward or backward).
package script
