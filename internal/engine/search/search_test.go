package search

import (
	"regexp"
	"strings"
	"testing"

	"github.com/dshills/strand/internal/engine/rope"
)

func TestNext(t *testing.T) {
	text := rope.FromString("foo bar foo baz")
	re := regexp.MustCompile(`foo`)
	tests := []struct {
		from int
		want Match
		ok   bool
	}{
		{0, Match{0, 3}, true},
		{1, Match{8, 11}, true},
		{8, Match{8, 11}, true},
		{9, Match{}, false},
		{-4, Match{0, 3}, true},
	}
	for _, tt := range tests {
		got, ok := Next(text, re, tt.from)
		if got != tt.want || ok != tt.ok {
			t.Errorf("Next(%d) = %v, %v; want %v, %v", tt.from, got, ok, tt.want, tt.ok)
		}
	}
}

func TestPrev(t *testing.T) {
	text := rope.FromString("foo bar foo baz")
	re := regexp.MustCompile(`ba.`)
	if got, ok := Prev(text, re, 15); !ok || got != (Match{12, 15}) {
		t.Errorf("Prev(15) = %v, %v", got, ok)
	}
	if got, ok := Prev(text, re, 12); !ok || got != (Match{4, 7}) {
		t.Errorf("Prev(12) = %v, %v", got, ok)
	}
	if _, ok := Prev(text, re, 4); ok {
		t.Error("Prev(4) should find nothing")
	}

	empty := regexp.MustCompile(`x*`)
	if got, ok := Prev(rope.FromString("ab"), empty, 2); !ok || got != (Match{1, 1}) {
		t.Errorf("empty-match Prev = %v, %v", got, ok)
	}
}

func TestNextWrapping(t *testing.T) {
	text := rope.FromString("one two one")
	re := regexp.MustCompile(`two`)
	if got, ok := NextWrapping(text, re, 6); !ok || got != (Match{4, 7}) {
		t.Errorf("NextWrapping = %v, %v", got, ok)
	}
	if _, ok := NextWrapping(text, regexp.MustCompile(`three`), 3); ok {
		t.Error("expected no match")
	}
}

func TestPrevWrapping(t *testing.T) {
	text := rope.FromString("one two one")
	re := regexp.MustCompile(`one`)
	if got, ok := PrevWrapping(text, re, 5); !ok || got != (Match{0, 3}) {
		t.Errorf("PrevWrapping(5) = %v, %v", got, ok)
	}
	if got, ok := PrevWrapping(text, re, 0); !ok || got != (Match{8, 11}) {
		t.Errorf("PrevWrapping(0) = %v, %v", got, ok)
	}
	if _, ok := PrevWrapping(text, regexp.MustCompile(`three`), 3); ok {
		t.Error("expected no match")
	}
}

func TestNextAcrossChunks(t *testing.T) {
	s := strings.Repeat("a", 3000) + "needle" + strings.Repeat("b", 3000)
	got, ok := Next(rope.FromString(s), regexp.MustCompile(`needle`), 10)
	if !ok || got != (Match{3000, 3006}) {
		t.Errorf("Next = %v, %v", got, ok)
	}
}
