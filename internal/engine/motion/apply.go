package motion

import (
	"github.com/dshills/strand/internal/engine/region"
	"github.com/dshills/strand/internal/engine/rope"
	"github.com/dshills/strand/internal/engine/view"
	"github.com/dshills/strand/internal/engine/wordboundary"
)

// Apply resolves m against text and vp, starting from r.
//
// The head moves to the resolved offset. If onlyMoveHead is set the tail
// stays put and the selection is extended; otherwise the region collapses
// to a cursor at the new head. Vertical motions remember the column they
// started from in PreferredColumn, every other motion clears it.
func Apply(text rope.Rope, vp view.Viewport, r region.Region, onlyMoveHead bool, m Motion) region.Region {
	if m.IsVertical() {
		return moveVertically(text, r, lineDelta(text, vp, r, m), onlyMoveHead)
	}

	var offset int
	switch m.Kind {
	case Left:
		offset = text.PrevGraphemeOffset(r.Head)
	case Right:
		offset = text.NextGraphemeOffset(r.Head)
	case StartOfLine:
		offset = text.LineStartOffset(text.LineOfOffset(r.Head))
	case EndOfLine:
		line := text.LineOfOffset(r.Head)
		if line < text.LineCount()-1 {
			offset = text.LineStartOffset(line + 1)
		} else {
			offset = text.Len()
		}
	case NextWordBoundary:
		offset = wordboundary.Find(text, r.Head, wordboundary.Forward, m.Boundary).Offset
	case PrevWordBoundary:
		offset = wordboundary.Find(text, r.Head, wordboundary.Backward, m.Boundary).Offset
	default:
		return r
	}

	r.Head = offset
	if !onlyMoveHead {
		r.Tail = offset
	}
	r.PreferredColumn = nil
	return r
}

// lineDelta returns how many lines a vertical motion moves from r's head.
func lineDelta(text rope.Rope, vp view.Viewport, r region.Region, m Motion) int {
	switch m.Kind {
	case Up:
		return -1
	case Down:
		return 1
	case TopOfViewport:
		return vp.FirstLine - text.LineOfOffset(r.Head)
	default:
		return vp.LastLine() - text.LineOfOffset(r.Head)
	}
}

func moveVertically(text rope.Rope, r region.Region, lines int, onlyMoveHead bool) region.Region {
	pos := text.OffsetToPoint(r.Head)
	if r.PreferredColumn != nil {
		pos.Col = *r.PreferredColumn
	}
	preferred := pos.Col

	target := min(max(pos.Line+lines, 0), text.LineCount()-1)
	offset := r.Head
	if target != pos.Line {
		offset = text.PointToOffsetSnapping(rope.Point{Line: target, Col: pos.Col})
	}

	r.Head = offset
	if !onlyMoveHead {
		r.Tail = offset
	}
	return r.WithPreferredColumn(preferred)
}
