package rope

import "github.com/rivo/uniseg"

// graphemeWindow is the initial lookahead used when measuring a cluster.
const graphemeWindow = 64

// NextGraphemeOffset returns the offset just past the grapheme cluster that
// starts at offset. At the end of the text it returns Len().
func (r Rope) NextGraphemeOffset(offset int) int {
	n := r.Len()
	if offset >= n {
		return n
	}
	offset = max(offset, 0)
	for window := graphemeWindow; ; window *= 2 {
		end := min(offset+window, n)
		cluster, rest, _, _ := uniseg.FirstGraphemeClusterInString(r.Slice(offset, end), -1)
		if rest != "" || end == n {
			return offset + len(cluster)
		}
	}
}

// PrevGraphemeOffset returns the start of the grapheme cluster that ends at
// offset. At the start of the text it returns 0.
func (r Rope) PrevGraphemeOffset(offset int) int {
	offset = min(offset, r.Len())
	if offset <= 0 {
		return 0
	}
	// Line starts are always cluster boundaries, except inside "\r\n",
	// which the line lookup of offset-1 already steps over.
	start := r.LineStartOffset(r.LineOfOffset(offset - 1))
	return start + lastBoundaryBefore(r.Slice(start, offset), offset-start)
}

// GraphemeFloor snaps offset back to the start of the cluster containing it.
func (r Rope) GraphemeFloor(offset int) int {
	offset = min(max(offset, 0), r.Len())
	if offset == 0 || offset == r.Len() {
		return offset
	}
	start := r.LineStartOffset(r.LineOfOffset(offset))
	end := r.NextGraphemeOffset(offset)
	return start + lastBoundaryBefore(r.Slice(start, end), offset-start+1)
}

// lastBoundaryBefore returns the last cluster boundary in s strictly below limit.
func lastBoundaryBefore(s string, limit int) int {
	pos, last := 0, 0
	state := -1
	for s != "" && pos < limit {
		last = pos
		var cluster string
		cluster, s, _, state = uniseg.FirstGraphemeClusterInString(s, state)
		pos += len(cluster)
	}
	return last
}
