package rope

import (
	"io"
	"iter"
	"unicode/utf8"
)

type iterFrame struct {
	node *node
	idx  int // selected child or chunk
}

// ChunkIterator walks the chunks of a rope lazily, forward or backward,
// starting from an arbitrary byte offset.
type ChunkIterator struct {
	stack      []iterFrame
	reverse    bool
	started    bool
	done       bool
	bound      int // forward: first offset; reverse: end offset
	chunkStart int
	text       string
	offset     int
}

// ChunksFrom returns an iterator over the text in [offset, Len()), chunk by chunk.
func (r Rope) ChunksFrom(offset int) *ChunkIterator {
	offset = min(max(offset, 0), r.Len())
	it := &ChunkIterator{bound: offset, done: offset >= r.Len()}
	if !it.done {
		it.seek(r.node(), offset)
	}
	return it
}

// ChunksBefore returns an iterator over the text in [0, offset), walking
// backward from offset one chunk at a time.
func (r Rope) ChunksBefore(offset int) *ChunkIterator {
	offset = min(max(offset, 0), r.Len())
	it := &ChunkIterator{bound: offset, reverse: true, done: offset == 0}
	if !it.done {
		it.seek(r.node(), offset-1)
	}
	return it
}

// seek descends to the chunk containing the byte at offset.
func (it *ChunkIterator) seek(n *node, offset int) {
	pos := 0
	for {
		if n.isLeaf() {
			for i, c := range n.chunks {
				if offset < pos+c.len() || i == len(n.chunks)-1 {
					it.stack = append(it.stack, iterFrame{node: n, idx: i})
					it.chunkStart = pos
					return
				}
				pos += c.len()
			}
			return
		}
		for i, child := range n.children {
			if offset < pos+child.summary.Bytes || i == len(n.children)-1 {
				it.stack = append(it.stack, iterFrame{node: n, idx: i})
				n = child
				break
			}
			pos += child.summary.Bytes
		}
	}
}

func (it *ChunkIterator) current() chunk {
	top := it.stack[len(it.stack)-1]
	return top.node.chunks[top.idx]
}

// Next advances to the next chunk.
// Returns false once the iteration is complete.
func (it *ChunkIterator) Next() bool {
	for !it.done {
		if !it.started {
			it.started = true
			c := it.current()
			if it.reverse {
				it.text = c.text[:it.bound-it.chunkStart]
				it.offset = it.chunkStart
			} else {
				it.text = c.text[it.bound-it.chunkStart:]
				it.offset = it.bound
			}
		} else if !it.step() {
			it.done = true
			it.text = ""
			return false
		} else {
			c := it.current()
			it.text = c.text
			it.offset = it.chunkStart
		}
		if it.text != "" {
			return true
		}
	}
	return false
}

// step moves the leaf cursor by one chunk in the iteration direction.
func (it *ChunkIterator) step() bool {
	if !it.reverse {
		it.chunkStart += it.current().len()
	}
	delta := 1
	if it.reverse {
		delta = -1
	}

	depth := len(it.stack) - 1
	for depth >= 0 {
		f := &it.stack[depth]
		f.idx += delta
		if f.idx >= 0 && f.idx < f.node.width() {
			break
		}
		depth--
	}
	if depth < 0 {
		return false
	}

	// Descend to the leftmost or rightmost leaf below the new position.
	for d := depth; d < len(it.stack)-1; d++ {
		child := it.stack[d].node.children[it.stack[d].idx]
		idx := 0
		if it.reverse {
			idx = child.width() - 1
		}
		it.stack[d+1] = iterFrame{node: child, idx: idx}
	}
	if it.reverse {
		it.chunkStart -= it.current().len()
	}
	return true
}

func (n *node) width() int {
	if n.isLeaf() {
		return len(n.chunks)
	}
	return len(n.children)
}

// Text returns the current chunk's text, trimmed to the iteration bounds.
func (it *ChunkIterator) Text() string {
	return it.text
}

// Offset returns the byte offset of the start of Text.
func (it *ChunkIterator) Offset() int {
	return it.offset
}

// Lines returns a lazy sequence of (line number, line text) for the lines
// in [low, high), clamped to the rope. Line text excludes the newline.
func (r Rope) Lines(low, high int) iter.Seq2[int, string] {
	return func(yield func(int, string) bool) {
		low, high := max(low, 0), min(high, r.LineCount())
		for line := low; line < high; line++ {
			if !yield(line, r.LineText(line)) {
				return
			}
		}
	}
}

// WriteTo streams the rope to w chunk by chunk.
func (r Rope) WriteTo(w io.Writer) (int64, error) {
	var total int64
	it := r.ChunksFrom(0)
	for it.Next() {
		n, err := io.WriteString(w, it.Text())
		total += int64(n)
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

// Reader reads a rope from a starting offset. It implements io.Reader and
// io.RuneReader, so it can feed regexp matching without flattening the text.
type Reader struct {
	chunks *ChunkIterator
	buf    string
	offset int
}

// NewReader returns a Reader positioned at offset.
func (r Rope) NewReader(offset int) *Reader {
	it := r.ChunksFrom(offset)
	return &Reader{chunks: it, offset: min(max(offset, 0), r.Len())}
}

// Offset returns the byte offset of the next byte to be read.
func (rd *Reader) Offset() int {
	return rd.offset
}

func (rd *Reader) fill() bool {
	for rd.buf == "" || !utf8.FullRuneInString(rd.buf) {
		if !rd.chunks.Next() {
			return rd.buf != ""
		}
		rd.buf += rd.chunks.Text()
	}
	return true
}

// ReadRune implements io.RuneReader.
func (rd *Reader) ReadRune() (rune, int, error) {
	if !rd.fill() {
		return 0, 0, io.EOF
	}
	ch, size := utf8.DecodeRuneInString(rd.buf)
	rd.buf = rd.buf[size:]
	rd.offset += size
	return ch, size, nil
}

// Read implements io.Reader.
func (rd *Reader) Read(p []byte) (int, error) {
	if rd.buf == "" && !rd.chunks.Next() {
		return 0, io.EOF
	}
	if rd.buf == "" {
		rd.buf = rd.chunks.Text()
	}
	n := copy(p, rd.buf)
	rd.buf = rd.buf[n:]
	rd.offset += n
	return n, nil
}

// ReverseReader reads runes backward from an offset toward the start of
// the rope.
type ReverseReader struct {
	chunks *ChunkIterator
	buf    string
	offset int
}

// NewReverseReader returns a ReverseReader positioned at offset.
func (r Rope) NewReverseReader(offset int) *ReverseReader {
	return &ReverseReader{chunks: r.ChunksBefore(offset), offset: min(max(offset, 0), r.Len())}
}

// Offset returns the offset just past the next rune to be read.
func (rd *ReverseReader) Offset() int {
	return rd.offset
}

// fill loads chunks until the last rune of the buffer is complete.
func (rd *ReverseReader) fill() bool {
	for {
		i := len(rd.buf) - 1
		for i >= 0 && len(rd.buf)-i < utf8.UTFMax && !isRuneStart(rd.buf[i]) {
			i--
		}
		if i >= 0 && isRuneStart(rd.buf[i]) {
			return true
		}
		if !rd.chunks.Next() {
			return rd.buf != ""
		}
		rd.buf = rd.chunks.Text() + rd.buf
	}
}

// ReadRune returns the rune ending at Offset and moves before it.
func (rd *ReverseReader) ReadRune() (rune, int, error) {
	if !rd.fill() {
		return 0, 0, io.EOF
	}
	ch, size := utf8.DecodeLastRuneInString(rd.buf)
	rd.buf = rd.buf[:len(rd.buf)-size]
	rd.offset -= size
	return ch, size, nil
}
