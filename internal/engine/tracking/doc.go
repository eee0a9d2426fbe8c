// Package tracking keeps named checkpoints of a document and computes
// line diffs against them.
//
// A checkpoint holds an immutable rope, so taking one costs nothing more
// than the rope header; the text is shared with the live document until
// it is edited.
//
//	cps := tracking.NewCheckpoints()
//	cps.Set("saved", text, rev)
//
//	// later
//	cp, _ := cps.Get("saved")
//	hunks := tracking.Diff(cp.Text, current, 3)
//	fmt.Print(tracking.Unified("saved", "current", hunks))
package tracking
