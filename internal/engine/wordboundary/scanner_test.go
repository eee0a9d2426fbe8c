package wordboundary

import (
	"testing"

	"github.com/dshills/strand/internal/engine/rope"
	"github.com/google/go-cmp/cmp"
	"pgregory.net/rapid"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		r    rune
		want CharClass
	}{
		{' ', Whitespace},
		{'\n', Whitespace},
		{'\u00a0', Whitespace},
		{'a', Word},
		{'Z', Word},
		{'7', Word},
		{'\u4e16', Word},
		{'\u00a9', Word},
		{'_', Punctuation},
		{'.', Punctuation},
		{'+', Punctuation},
		{'$', Punctuation},
		{'^', Punctuation},
		{'\u0301', Other},
		{'\u200b', Other},
		{0x01, Other},
	}
	for _, tt := range tests {
		if got := Classify(tt.r); got != tt.want {
			t.Errorf("Classify(%U) = %v, want %v", tt.r, got, tt.want)
		}
	}
}

func TestBetween(t *testing.T) {
	tests := []struct {
		prev, cur CharClass
		want      Type
		ok        bool
	}{
		{Word, Word, 0, false},
		{Punctuation, Punctuation, 0, false},
		{Whitespace, Whitespace, 0, false},
		{Word, Other, 0, false},
		{Other, Punctuation, 0, false},
		{Word, Punctuation, Both, true},
		{Punctuation, Word, Both, true},
		{Whitespace, Word, Start, true},
		{Word, Whitespace, End, true},
		{Whitespace, Punctuation, Start, true},
		{Punctuation, Whitespace, End, true},
	}
	for _, tt := range tests {
		got, ok := Between(tt.prev, tt.cur)
		if got != tt.want || ok != tt.ok {
			t.Errorf("Between(%v, %v) = (%v, %v), want (%v, %v)", tt.prev, tt.cur, got, ok, tt.want, tt.ok)
		}
	}
}

func TestMatches(t *testing.T) {
	if !Both.Matches(Start) || !End.Matches(Both) || !Start.Matches(Start) {
		t.Error("expected match")
	}
	if Start.Matches(End) || End.Matches(Start) {
		t.Error("Start and End must not match")
	}
}

func TestScanForward(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		start int
		want  []Boundary
	}{
		{"words and punctuation", "foo foo...", 0, []Boundary{
			{3, End}, {4, Start}, {7, Both}, {10, Both},
		}},
		{"padded word", " foo ", 0, []Boundary{{1, Start}, {4, End}, {5, Both}}},
		{"underscore", "foo_bar", 0, []Boundary{{3, Both}, {4, Both}, {7, Both}}},
		{"mid-word start", " foo foo...", 2, []Boundary{
			{4, End}, {5, Start}, {8, Both}, {11, Both},
		}},
		{"empty", "", 0, []Boundary{{0, Both}}},
		{"at end", "abc", 3, []Boundary{{3, Both}}},
		{"multibyte", "h\u00e9llo w\u00f6rld", 0, []Boundary{{6, End}, {7, Start}, {13, Both}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := All(rope.FromString(tt.text), tt.start, Forward)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("forward boundaries mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestScanBackward(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		start int
		want  []Boundary
	}{
		{"from middle", " foo foo...", 7, []Boundary{
			{5, Start}, {4, End}, {1, Start}, {0, Both},
		}},
		{"from end", "a.b", 3, []Boundary{{2, Both}, {1, Both}, {0, Both}}},
		{"at start", "abc", 0, []Boundary{{0, Both}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := All(rope.FromString(tt.text), tt.start, Backward)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("backward boundaries mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestFind(t *testing.T) {
	text := rope.FromString("hello hello hello")
	tests := []struct {
		name  string
		start int
		dir   Direction
		kind  Type
		want  int
	}{
		{"next end", 1, Forward, End, 5},
		{"next start", 1, Forward, Start, 6},
		{"next start from word start", 6, Forward, Start, 12},
		{"next end in last word", 13, Forward, End, 17},
		{"prev start in first word", 3, Backward, Start, 0},
		{"prev end", 8, Backward, End, 5},
		{"prev start", 8, Backward, Start, 6},
		{"prev start from word start", 6, Backward, Start, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Find(text, tt.start, tt.dir, tt.kind); got.Offset != tt.want {
				t.Errorf("Find = %d, want %d", got.Offset, tt.want)
			}
		})
	}
}

func TestScannerReset(t *testing.T) {
	s := Scan(rope.FromString("a b"), 0)
	first, _ := s.Next()
	for _, ok := s.Next(); ok; _, ok = s.Next() {
	}
	s.Reset()
	again, _ := s.Next()
	if first != again {
		t.Errorf("after Reset got %+v, want %+v", again, first)
	}
}

func TestScanSymmetry(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		s := rapid.StringMatching(`[a-c .,_\n]{0,60}`).Draw(t, "text")
		text := rope.FromString(s)
		k := rapid.IntRange(0, len(s)).Draw(t, "k")

		fwd := All(text, k, Forward)
		if last := fwd[len(fwd)-1]; last != (Boundary{len(s), Both}) {
			t.Fatalf("forward scan ended with %+v", last)
		}
		back := All(text, fwd[0].Offset, Backward)
		if last := back[len(back)-1]; last != (Boundary{0, Both}) {
			t.Fatalf("backward scan ended with %+v", last)
		}
		if back[0].Offset > k {
			t.Fatalf("backward from %d landed at %d, past %d", fwd[0].Offset, back[0].Offset, k)
		}
	})
}
