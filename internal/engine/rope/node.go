package rope

import "strings"

// Tree shape constants.
const (
	// MaxChildren is the maximum children per internal node.
	MaxChildren = 8

	// MaxChunksPerLeaf is the maximum chunks in a leaf node.
	MaxChunksPerLeaf = 4
)

// node is a node of the rope B+ tree. Nodes are never mutated after
// construction, so subtrees are freely shared between ropes.
// Leaves (height == 0) hold chunks; internal nodes hold children.
// Every leaf of a tree sits at the same depth.
type node struct {
	height   uint8
	summary  summary
	children []*node
	chunks   []chunk
}

var emptyLeaf = &node{}

func newLeaf(chunks []chunk) *node {
	n := &node{chunks: chunks}
	for _, c := range chunks {
		n.summary = n.summary.add(c.summary)
	}
	return n
}

func newInternal(children []*node) *node {
	n := &node{height: children[0].height + 1, children: children}
	for _, c := range children {
		n.summary = n.summary.add(c.summary)
	}
	return n
}

func (n *node) isLeaf() bool { return n.height == 0 }

// buildFromChunks builds a balanced tree bottom-up.
func buildFromChunks(chunks []chunk) *node {
	if len(chunks) == 0 {
		return emptyLeaf
	}
	var level []*node
	for i := 0; i < len(chunks); i += MaxChunksPerLeaf {
		end := min(i+MaxChunksPerLeaf, len(chunks))
		level = append(level, newLeaf(append([]chunk(nil), chunks[i:end]...)))
	}
	return buildLevels(level)
}

// buildLevels groups same-height nodes into parents until one root remains.
func buildLevels(level []*node) *node {
	if len(level) == 0 {
		return emptyLeaf
	}
	for len(level) > 1 {
		var parents []*node
		for i := 0; i < len(level); i += MaxChildren {
			end := min(i+MaxChildren, len(level))
			parents = append(parents, newInternal(append([]*node(nil), level[i:end]...)))
		}
		level = parents
	}
	return level[0]
}

func (n *node) appendTo(sb *strings.Builder, start, end int) {
	if start >= end {
		return
	}
	if n.isLeaf() {
		pos := 0
		for _, c := range n.chunks {
			cEnd := pos + c.len()
			if cEnd > start && pos < end {
				sb.WriteString(c.text[max(start-pos, 0):min(end-pos, c.len())])
			}
			if cEnd >= end {
				return
			}
			pos = cEnd
		}
		return
	}
	pos := 0
	for _, child := range n.children {
		cEnd := pos + child.summary.Bytes
		if cEnd > start && pos < end {
			child.appendTo(sb, max(start-pos, 0), min(end-pos, child.summary.Bytes))
		}
		if cEnd >= end {
			return
		}
		pos = cEnd
	}
}

// split divides the subtree at a byte offset. Both results keep the
// height of n, so they can be rejoined with concat.
func (n *node) split(at int) (*node, *node) {
	if n.isLeaf() {
		var left, right []chunk
		pos := 0
		for _, c := range n.chunks {
			switch {
			case pos+c.len() <= at:
				left = append(left, c)
			case pos >= at:
				right = append(right, c)
			default:
				l, r := c.split(at - pos)
				left = append(left, l)
				right = append(right, r)
			}
			pos += c.len()
		}
		return newLeaf(left), newLeaf(right)
	}

	var left, right []*node
	pos := 0
	for _, child := range n.children {
		size := child.summary.Bytes
		switch {
		case pos+size <= at:
			left = append(left, child)
		case pos >= at:
			right = append(right, child)
		default:
			l, r := child.split(at - pos)
			if l.summary.Bytes > 0 {
				left = append(left, l)
			}
			if r.summary.Bytes > 0 {
				right = append(right, r)
			}
		}
		pos += size
	}
	return wrapChildren(left, n.height), wrapChildren(right, n.height)
}

// wrapChildren builds a node of the given height from children one level
// below it, padding with an empty chain when there are none.
func wrapChildren(children []*node, height uint8) *node {
	if len(children) == 0 {
		return emptyOfHeight(height)
	}
	if len(children) <= MaxChildren {
		return newInternal(children)
	}
	return buildLevels(children)
}

func emptyOfHeight(height uint8) *node {
	n := emptyLeaf
	for n.height < height {
		n = newInternal([]*node{n})
	}
	return n
}

// concat joins two trees, keeping every leaf at the same depth.
func concat(left, right *node) *node {
	if left.summary.Bytes == 0 {
		return collapse(right)
	}
	if right.summary.Bytes == 0 {
		return collapse(left)
	}
	return join(collapse(left), collapse(right))
}

// join concatenates two non-empty trees. The result is at most one level
// taller than the taller input.
func join(left, right *node) *node {
	switch {
	case left.height == right.height:
		return merge(left, right)
	case left.height > right.height:
		children := append([]*node(nil), left.children...)
		last := len(children) - 1
		children = append(children[:last], splice(join(children[last], right), left.height-1)...)
		return wrapChildren(children, left.height)
	default:
		children := splice(join(left, right.children[0]), right.height-1)
		children = append(children, right.children[1:]...)
		return wrapChildren(children, right.height)
	}
}

// merge joins two nodes of equal height.
func merge(left, right *node) *node {
	if left.isLeaf() {
		chunks := joinChunks(left.chunks, right.chunks)
		if len(chunks) <= MaxChunksPerLeaf {
			return newLeaf(chunks)
		}
		mid := len(chunks) / 2
		return newInternal([]*node{newLeaf(chunks[:mid:mid]), newLeaf(chunks[mid:])})
	}
	children := make([]*node, 0, len(left.children)+len(right.children))
	children = append(children, left.children...)
	children = append(children, right.children...)
	if len(children) <= MaxChildren {
		return newInternal(children)
	}
	mid := len(children) / 2
	return newInternal([]*node{newInternal(children[:mid:mid]), newInternal(children[mid:])})
}

// splice returns the nodes of height h that stand in for n in its parent.
// n is either of height h or one level taller after a merge overflowed.
func splice(n *node, h uint8) []*node {
	if n.height == h {
		return []*node{n}
	}
	return n.children
}

// collapse strips single-child internal roots.
func collapse(n *node) *node {
	for !n.isLeaf() && len(n.children) == 1 {
		n = n.children[0]
	}
	return n
}

// lineStart returns the byte offset just past the nth newline of the subtree.
// The caller guarantees 1 <= line <= n.summary.Lines.
func (n *node) lineStart(line int) int {
	offset := 0
	for !n.isLeaf() {
		next := n.children[len(n.children)-1]
		for _, child := range n.children {
			if child.summary.Lines >= line {
				next = child
				break
			}
			line -= child.summary.Lines
			offset += child.summary.Bytes
		}
		n = next
	}
	for _, c := range n.chunks {
		if c.summary.Lines >= line {
			return offset + nthNewline(c.text, line) + 1
		}
		line -= c.summary.Lines
		offset += c.len()
	}
	return offset
}

// linesBefore counts the newlines in [0, offset).
func (n *node) linesBefore(offset int) int {
	lines := 0
	for !n.isLeaf() {
		descended := false
		for _, child := range n.children {
			if offset < child.summary.Bytes {
				n = child
				descended = true
				break
			}
			offset -= child.summary.Bytes
			lines += child.summary.Lines
		}
		if !descended {
			return lines
		}
	}
	for _, c := range n.chunks {
		if offset < c.len() {
			return lines + strings.Count(c.text[:offset], "\n")
		}
		offset -= c.len()
		lines += c.summary.Lines
	}
	return lines
}
