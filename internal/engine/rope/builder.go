package rope

import (
	"io"
	"strings"
	"unicode/utf8"
)

// Builder provides efficient incremental construction of a rope.
// It buffers writes and builds the tree when Build is called.
type Builder struct {
	chunks []chunk
	buffer strings.Builder
}

// WriteString appends a string to the builder.
func (b *Builder) WriteString(s string) {
	b.buffer.WriteString(s)
	if b.buffer.Len() >= MaxChunkSize*2 {
		b.flush(false)
	}
}

// Write implements io.Writer.
func (b *Builder) Write(p []byte) (int, error) {
	b.WriteString(string(p))
	return len(p), nil
}

// flush moves buffered text into chunks. Unless final is set, a trailing
// partial UTF-8 sequence stays buffered for the next write.
func (b *Builder) flush(final bool) {
	s := b.buffer.String()
	keep := ""
	if !final && len(s) > 0 {
		last := len(s) - 1
		for last > 0 && len(s)-last < utf8.UTFMax && !isRuneStart(s[last]) {
			last--
		}
		if !utf8.FullRuneInString(s[last:]) {
			s, keep = s[:last], s[last:]
		}
	}
	b.buffer.Reset()
	b.buffer.WriteString(keep)
	b.chunks = append(b.chunks, splitIntoChunks(s)...)
}

// ReadFrom implements io.ReaderFrom.
func (b *Builder) ReadFrom(r io.Reader) (int64, error) {
	buf := make([]byte, 64*1024)
	var total int64
	for {
		n, err := r.Read(buf)
		if n > 0 {
			b.WriteString(string(buf[:n]))
			total += int64(n)
		}
		if err == io.EOF {
			return total, nil
		}
		if err != nil {
			return total, err
		}
	}
}

// Build creates the rope from accumulated data and resets the builder.
func (b *Builder) Build() Rope {
	b.flush(true)
	r := Rope{root: buildFromChunks(b.chunks)}
	b.chunks = nil
	return r
}
