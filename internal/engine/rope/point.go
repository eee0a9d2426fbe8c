package rope

// Point is a line/column position. Both are 0-indexed; Col is a byte
// column within the line.
type Point struct {
	Line int `json:"line"`
	Col  int `json:"col"`
}

// OffsetToPoint converts a byte offset to a line/column position.
func (r Rope) OffsetToPoint(offset int) Point {
	offset = min(max(offset, 0), r.Len())
	line := r.LineOfOffset(offset)
	return Point{Line: line, Col: offset - r.LineStartOffset(line)}
}

// PointToOffset converts a position to a byte offset. It reports false when
// the line is past the last line or the column exceeds the line's length.
// A column equal to the line length addresses the end of the line.
func (r Rope) PointToOffset(p Point) (int, bool) {
	if p.Line < 0 || p.Col < 0 || p.Line >= r.LineCount() {
		return 0, false
	}
	start := r.LineStartOffset(p.Line)
	if p.Col > r.LineEndOffset(p.Line)-start {
		return 0, false
	}
	return start + p.Col, true
}

// PointToOffsetSnapping converts a position to a byte offset, clamping the
// line to the text and the column to the line's content, then snapping to
// the start of the grapheme cluster the column falls in.
func (r Rope) PointToOffsetSnapping(p Point) int {
	line := min(max(p.Line, 0), r.LineCount()-1)
	start := r.LineStartOffset(line)
	end := r.LineEndOffset(line)
	offset := start + min(max(p.Col, 0), end-start)
	if offset == end {
		return offset
	}
	return r.GraphemeFloor(offset)
}
