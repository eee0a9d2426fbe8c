package rope

import "strings"

// Chunk size constants control the granularity of text storage.
const (
	// MinChunkSize is the size below which adjacent chunks are coalesced.
	MinChunkSize = 128

	// MaxChunkSize is the maximum bytes per chunk.
	MaxChunkSize = 512

	// targetChunkSize is the preferred chunk size when building.
	targetChunkSize = (MinChunkSize + MaxChunkSize) / 2
)

// chunk is an immutable piece of text stored in a leaf.
// Chunk boundaries always fall on UTF-8 sequence starts.
type chunk struct {
	text    string
	summary summary
}

func newChunk(s string) chunk {
	return chunk{text: s, summary: computeSummary(s)}
}

func (c chunk) len() int { return len(c.text) }

// split cuts the chunk at a byte offset inside it.
func (c chunk) split(at int) (chunk, chunk) {
	if at <= 0 {
		return chunk{}, c
	}
	if at >= len(c.text) {
		return c, chunk{}
	}
	return newChunk(c.text[:at]), newChunk(c.text[at:])
}

// splitIntoChunks splits a string into chunks of at most MaxChunkSize bytes.
func splitIntoChunks(s string) []chunk {
	if len(s) == 0 {
		return nil
	}
	if len(s) <= MaxChunkSize {
		return []chunk{newChunk(s)}
	}

	chunks := make([]chunk, 0, len(s)/targetChunkSize+1)
	for len(s) > 0 {
		if len(s) <= MaxChunkSize {
			chunks = append(chunks, newChunk(s))
			break
		}
		at := chunkBoundary(s, targetChunkSize)
		chunks = append(chunks, newChunk(s[:at]))
		s = s[at:]
	}
	return chunks
}

// chunkBoundary finds a split point near target, preferring the byte after
// a newline and never cutting a UTF-8 sequence.
func chunkBoundary(s string, target int) int {
	if target >= len(s) {
		return len(s)
	}
	window := MinChunkSize / 4
	lo := max(target-window, 1)
	hi := min(target+window, len(s))
	if i := strings.LastIndexByte(s[lo:hi], '\n'); i >= 0 {
		return lo + i + 1
	}

	pos := target
	for pos < len(s) && !isRuneStart(s[pos]) {
		pos++
	}
	if pos >= len(s) {
		pos = target
		for pos > 0 && !isRuneStart(s[pos]) {
			pos--
		}
	}
	return pos
}

// joinChunks concatenates two chunk lists, merging undersized chunks at the seam.
func joinChunks(left, right []chunk) []chunk {
	out := make([]chunk, 0, len(left)+len(right))
	out = append(out, left...)
	for _, c := range right {
		if n := len(out); n > 0 {
			last := out[n-1]
			if (last.len() < MinChunkSize || c.len() < MinChunkSize) && last.len()+c.len() <= MaxChunkSize {
				out[n-1] = newChunk(last.text + c.text)
				continue
			}
		}
		out = append(out, c)
	}
	return out
}

func isRuneStart(b byte) bool {
	return b&0xC0 != 0x80
}
