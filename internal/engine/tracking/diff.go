package tracking

import (
	"fmt"
	"math"
	"slices"
	"strconv"
	"strings"

	"github.com/dshills/strand/internal/engine/rope"
)

const (
	// DefaultMaxDiffLines bounds the changed region handed to the Myers
	// algorithm. Larger regions are reported as one delete plus one insert.
	DefaultMaxDiffLines = 10000

	// DefaultMaxDiffMemoryMB bounds the memory the Myers trace may use.
	// A diff whose edit distance would exceed it is reported as one delete
	// plus one insert.
	DefaultMaxDiffMemoryMB = 32
)

// maxEditDistance is the largest edit distance whose trace fits in
// DefaultMaxDiffMemoryMB. Step d keeps 2d+3 ints, so the trace up to D
// holds about (D+2)^2 of them.
var maxEditDistance = int(math.Sqrt(float64(DefaultMaxDiffMemoryMB<<20)/8)) - 2

// Op is the kind of one line in an edit script.
type Op uint8

const (
	// Equal marks a line present in both texts.
	Equal Op = iota
	// Insert marks a line only in the new text.
	Insert
	// Delete marks a line only in the old text.
	Delete
)

func (o Op) String() string {
	switch o {
	case Equal:
		return "equal"
	case Insert:
		return "insert"
	case Delete:
		return "delete"
	default:
		return "unknown"
	}
}

// Edit is one step of a line edit script. OldLine and NewLine are the
// positions in the old and new texts where the step happens; for an
// Insert OldLine is the old line it precedes, and for a Delete NewLine is
// the new line it precedes.
type Edit struct {
	Op      Op
	OldLine int
	NewLine int
}

// Line is one line of a hunk.
type Line struct {
	Op   Op
	Text string
}

// Hunk is a run of changes with surrounding context. Starts are 0-based.
type Hunk struct {
	OldStart, OldCount int
	NewStart, NewCount int
	Lines              []Line
}

// SplitLines returns the lines of r without their newlines.
func SplitLines(r rope.Rope) []string {
	out := make([]string, 0, r.LineCount())
	for _, line := range r.Lines(0, r.LineCount()) {
		out = append(out, line)
	}
	return out
}

// Diff returns the hunks turning old into new, each with up to context
// unchanged lines around its changes.
func Diff(old, new rope.Rope, context int) []Hunk {
	if old.Equals(new) {
		return nil
	}
	oldLines, newLines := SplitLines(old), SplitLines(new)
	return Hunks(EditScript(oldLines, newLines), oldLines, newLines, context)
}

// EditScript returns a shortest edit script from old to new. Common
// leading and trailing lines are matched directly; the rest goes through
// the Myers algorithm unless it exceeds DefaultMaxDiffLines or needs more
// than DefaultMaxDiffMemoryMB.
func EditScript(old, new []string) []Edit {
	prefix := 0
	for prefix < len(old) && prefix < len(new) && old[prefix] == new[prefix] {
		prefix++
	}
	suffix := 0
	for suffix < len(old)-prefix && suffix < len(new)-prefix &&
		old[len(old)-1-suffix] == new[len(new)-1-suffix] {
		suffix++
	}

	edits := make([]Edit, 0, max(len(old), len(new)))
	for i := 0; i < prefix; i++ {
		edits = append(edits, Edit{Op: Equal, OldLine: i, NewLine: i})
	}

	oldMid, newMid := old[prefix:len(old)-suffix], new[prefix:len(new)-suffix]
	mid, ok := []Edit(nil), false
	if len(oldMid)+len(newMid) <= DefaultMaxDiffLines {
		mid, ok = myers(oldMid, newMid, maxEditDistance)
	}
	if !ok {
		mid = replaceAll(len(oldMid), len(newMid))
	}
	for _, e := range mid {
		e.OldLine += prefix
		e.NewLine += prefix
		edits = append(edits, e)
	}

	for i := 0; i < suffix; i++ {
		edits = append(edits, Edit{
			Op:      Equal,
			OldLine: len(old) - suffix + i,
			NewLine: len(new) - suffix + i,
		})
	}
	return edits
}

func replaceAll(n, m int) []Edit {
	edits := make([]Edit, 0, n+m)
	for i := 0; i < n; i++ {
		edits = append(edits, Edit{Op: Delete, OldLine: i})
	}
	for j := 0; j < m; j++ {
		edits = append(edits, Edit{Op: Insert, OldLine: n, NewLine: j})
	}
	return edits
}

// myers implements the Myers diff algorithm. v[off+k] holds the furthest
// x reached on diagonal k. trace[d] is the part of v that step d reads,
// diagonals -d-1 through d+1, as it was before the step. It gives up with
// false once the edit distance passes limit.
func myers(old, new []string, limit int) ([]Edit, bool) {
	n, m := len(old), len(new)
	maxD := n + m
	if maxD == 0 {
		return nil, true
	}
	off := maxD + 1
	v := make([]int, 2*maxD+3)
	var trace [][]int

	for d := 0; d <= min(maxD, limit); d++ {
		trace = append(trace, slices.Clone(v[off-d-1:off+d+2]))
		for k := -d; k <= d; k += 2 {
			var x int
			if k == -d || (k != d && v[off+k-1] < v[off+k+1]) {
				x = v[off+k+1]
			} else {
				x = v[off+k-1] + 1
			}
			y := x - k
			for x < n && y < m && old[x] == new[y] {
				x++
				y++
			}
			v[off+k] = x
			if x >= n && y >= m {
				return backtrack(trace, n, m), true
			}
		}
	}
	return nil, false
}

func backtrack(trace [][]int, n, m int) []Edit {
	x, y := n, m
	var edits []Edit
	for d := len(trace) - 1; d >= 0; d-- {
		v, off := trace[d], d+1
		k := x - y
		var prevK int
		if k == -d || (k != d && v[off+k-1] < v[off+k+1]) {
			prevK = k + 1
		} else {
			prevK = k - 1
		}
		prevX := v[off+prevK]
		prevY := prevX - prevK

		for x > prevX && y > prevY {
			x--
			y--
			edits = append(edits, Edit{Op: Equal, OldLine: x, NewLine: y})
		}
		if d > 0 {
			if x == prevX {
				edits = append(edits, Edit{Op: Insert, OldLine: x, NewLine: prevY})
			} else {
				edits = append(edits, Edit{Op: Delete, OldLine: prevX, NewLine: y})
			}
		}
		x, y = prevX, prevY
	}
	slices.Reverse(edits)
	return edits
}

// Hunks groups an edit script into hunks. Changes separated by at most
// 2*context unchanged lines share a hunk.
func Hunks(edits []Edit, old, new []string, context int) []Hunk {
	context = max(context, 0)
	var hunks []Hunk
	for i := 0; i < len(edits); {
		if edits[i].Op == Equal {
			i++
			continue
		}
		first, last := i, i
		for j := i + 1; j < len(edits); j++ {
			if edits[j].Op == Equal {
				continue
			}
			if j-last-1 > 2*context {
				break
			}
			last = j
		}
		lo := max(first-context, 0)
		hi := min(last+context+1, len(edits))
		hunks = append(hunks, makeHunk(edits[lo:hi], old, new))
		i = hi
	}
	return hunks
}

func makeHunk(edits []Edit, old, new []string) Hunk {
	h := Hunk{OldStart: edits[0].OldLine, NewStart: edits[0].NewLine}
	for _, e := range edits {
		switch e.Op {
		case Equal:
			h.Lines = append(h.Lines, Line{Op: Equal, Text: old[e.OldLine]})
			h.OldCount++
			h.NewCount++
		case Delete:
			h.Lines = append(h.Lines, Line{Op: Delete, Text: old[e.OldLine]})
			h.OldCount++
		case Insert:
			h.Lines = append(h.Lines, Line{Op: Insert, Text: new[e.NewLine]})
			h.NewCount++
		}
	}
	return h
}

// Unified renders hunks in unified diff format. It returns "" when there
// are no hunks.
func Unified(oldName, newName string, hunks []Hunk) string {
	if len(hunks) == 0 {
		return ""
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "--- %s\n+++ %s\n", oldName, newName)
	for _, h := range hunks {
		fmt.Fprintf(&sb, "@@ -%s +%s @@\n", span(h.OldStart, h.OldCount), span(h.NewStart, h.NewCount))
		for _, l := range h.Lines {
			switch l.Op {
			case Insert:
				sb.WriteByte('+')
			case Delete:
				sb.WriteByte('-')
			default:
				sb.WriteByte(' ')
			}
			sb.WriteString(l.Text)
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}

func span(start, count int) string {
	switch count {
	case 0:
		return strconv.Itoa(start) + ",0"
	case 1:
		return strconv.Itoa(start + 1)
	default:
		return strconv.Itoa(start+1) + "," + strconv.Itoa(count)
	}
}
