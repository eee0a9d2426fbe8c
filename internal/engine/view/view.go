// Package view describes which lines of a buffer a client shows.
package view

import (
	"fmt"
	"math"
)

// Viewport is the vertical slice of a buffer visible to a client.
type Viewport struct {
	// FirstLine is the index of the first visible line.
	FirstLine int `json:"first_line"`
	// Height is the number of visible lines.
	Height int `json:"height"`
}

// New returns a viewport starting at firstLine showing height lines.
func New(firstLine, height int) Viewport {
	return Viewport{FirstLine: max(firstLine, 0), Height: max(height, 0)}
}

// Unbounded returns a viewport that starts at line 0 and is taller than
// any buffer.
func Unbounded() Viewport {
	return Viewport{Height: math.MaxInt32}
}

// LastLine returns the index of the last visible line.
func (v Viewport) LastLine() int {
	return max(v.FirstLine+v.Height-1, 0)
}

// Contains reports whether line is visible.
func (v Viewport) Contains(line int) bool {
	return line >= v.FirstLine && line <= v.LastLine()
}

// WithLineInView scrolls the viewport as little as possible so that line is
// visible and at least scrollOff lines away from either edge. Near the top
// of the buffer the margin above is allowed to shrink.
func (v Viewport) WithLineInView(line, scrollOff int) Viewport {
	if v.Height <= 0 {
		v.FirstLine = max(line, 0)
		return v
	}
	scrollOff = max(min(scrollOff, (v.Height-1)/2), 0)
	switch {
	case line < v.FirstLine+scrollOff:
		v.FirstLine = max(line-scrollOff, 0)
	case line > v.LastLine()-scrollOff:
		v.FirstLine = max(line+scrollOff-(v.Height-1), 0)
	}
	return v
}

func (v Viewport) String() string {
	return fmt.Sprintf("lines %d-%d", v.FirstLine, v.LastLine())
}
