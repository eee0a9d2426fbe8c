package rope

import "strings"

// summary holds the aggregated metrics of a subtree.
type summary struct {
	// Bytes is the UTF-8 byte count.
	Bytes int
	// Lines is the number of newline characters.
	Lines int
}

// add combines two summaries.
func (s summary) add(other summary) summary {
	return summary{Bytes: s.Bytes + other.Bytes, Lines: s.Lines + other.Lines}
}

func computeSummary(s string) summary {
	return summary{Bytes: len(s), Lines: strings.Count(s, "\n")}
}

// nthNewline returns the byte index of the nth newline in s (1-indexed),
// or -1 if s holds fewer than n newlines.
func nthNewline(s string, n int) int {
	if n <= 0 {
		return -1
	}
	base := 0
	for {
		i := strings.IndexByte(s, '\n')
		if i < 0 {
			return -1
		}
		n--
		if n == 0 {
			return base + i
		}
		base += i + 1
		s = s[i+1:]
	}
}
