package delta

import (
	"testing"

	"github.com/dshills/strand/internal/engine/rope"
	"pgregory.net/rapid"
)

func TestBuilderApply(t *testing.T) {
	tests := []struct {
		name  string
		base  string
		edits func(b *Builder)
		want  string
	}{
		{"insert into empty", "", func(b *Builder) { b.Insert(0, "hel") }, "hel"},
		{"append", "hel", func(b *Builder) { b.Insert(3, "lo") }, "hello"},
		{"replace selection", "hello", func(b *Builder) { b.Replace(1, 3, "X") }, "hXlo"},
		{"delete", "hey", func(b *Builder) { b.Delete(2, 3) }, "he"},
		{"multiple edits", "abc", func(b *Builder) {
			b.Insert(0, "1")
			b.Insert(1, "2")
			b.Delete(2, 3)
		}, "1a2b"},
		{"no edits", "same", func(b *Builder) {}, "same"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			base := rope.FromString(tt.base)
			b := NewBuilder(base.Len())
			tt.edits(b)
			d := b.Build()
			if got := d.Apply(base).String(); got != tt.want {
				t.Errorf("Apply = %q, want %q (%s)", got, tt.want, d)
			}
			if d.NewLen() != len(tt.want) {
				t.Errorf("NewLen = %d, want %d", d.NewLen(), len(tt.want))
			}
		})
	}
}

func TestBuilderRejectsOverlap(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic for overlapping edits")
		}
	}()
	b := NewBuilder(10)
	b.Delete(2, 5)
	b.Delete(4, 6)
}

func TestApplyWrongBasePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic for mismatched base length")
		}
	}()
	Simple(0, 0, rope.FromString("x"), 3).Apply(rope.FromString("ab"))
}

func TestIdentity(t *testing.T) {
	if !Identity(5).IsIdentity() || !Identity(0).IsIdentity() {
		t.Error("Identity should report IsIdentity")
	}
	if Simple(1, 2, rope.New(), 5).IsIdentity() {
		t.Error("a deletion is not an identity")
	}
	base := rope.FromString("hello")
	if got := Identity(5).Apply(base); got.String() != "hello" {
		t.Errorf("identity apply = %q", got.String())
	}
}

func TestTransform(t *testing.T) {
	// "hello" with "X" inserted at 2 -> "heXllo"
	ins := Simple(2, 2, rope.FromString("X"), 5)
	// "hello" with [1,3) deleted -> "hlo"
	del := Simple(1, 3, rope.New(), 5)
	// "X" inserted at the start, and into empty text.
	front := Simple(0, 0, rope.FromString("X"), 5)
	empty := Simple(0, 0, rope.FromString("X"), 0)
	// "hello" with [1,3) replaced by "X" -> "hXlo"
	repl := Simple(1, 3, rope.FromString("X"), 5)

	tests := []struct {
		name   string
		d      Delta
		offset int
		after  bool
		want   int
	}{
		{"before insert", ins, 1, true, 1},
		{"at insert sticky", ins, 2, true, 3},
		{"at insert non-sticky", ins, 2, false, 2},
		{"after insert", ins, 4, false, 5},
		{"end of text sticky", ins, 5, true, 6},
		{"before delete", del, 1, true, 1},
		{"inside delete", del, 2, true, 1},
		{"end of delete", del, 3, false, 1},
		{"after delete", del, 5, true, 3},
		{"insert at start non-sticky", front, 0, false, 0},
		{"insert at start sticky", front, 0, true, 1},
		{"after insert at start", front, 3, false, 4},
		{"insert into empty non-sticky", empty, 0, false, 0},
		{"insert into empty sticky", empty, 0, true, 1},
		{"replace start non-sticky", repl, 1, false, 1},
		{"inside replace non-sticky", repl, 2, false, 2},
		{"end of text after append", ins, 5, false, 6},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Transform(tt.d, tt.offset, tt.after); got != tt.want {
				t.Errorf("Transform(%d, %v) = %d, want %d", tt.offset, tt.after, got, tt.want)
			}
		})
	}
}

func TestTransformSelectionReplace(t *testing.T) {
	// Replacing "el" in "hello" leaves both ends of the selection after "X".
	d := Simple(1, 3, rope.FromString("X"), 5)
	if head := Transform(d, 1, true); head != 2 {
		t.Errorf("head = %d, want 2", head)
	}
	if tail := Transform(d, 3, true); tail != 2 {
		t.Errorf("tail = %d, want 2", tail)
	}
}

func TestInvert(t *testing.T) {
	base := rope.FromString("hello world")
	b := NewBuilder(base.Len())
	b.Replace(0, 1, "J")
	b.Delete(5, 6)
	b.Insert(11, "!")
	d := b.Build()

	next := d.Apply(base)
	if next.String() != "Jelloworld!" {
		t.Fatalf("Apply = %q", next.String())
	}
	back := d.Invert(base).Apply(next)
	if back.String() != "hello world" {
		t.Errorf("Invert round trip = %q", back.String())
	}
}

func TestCompose(t *testing.T) {
	base := rope.FromString("abc")
	a := Simple(3, 3, rope.FromString("def"), 3) // abcdef
	b := Simple(1, 4, rope.FromString("-"), 6)   // a-ef
	c := Compose(a, b)
	if got := c.Apply(base).String(); got != "a-ef" {
		t.Errorf("Compose apply = %q, want %q (%s)", got, "a-ef", c)
	}
	if c.BaseLen() != 3 || c.NewLen() != 4 {
		t.Errorf("Compose lengths = %d -> %d", c.BaseLen(), c.NewLen())
	}
}

func genEdit(t *rapid.T, text string) (int, int, string) {
	start := rapid.IntRange(0, len(text)).Draw(t, "start")
	end := rapid.IntRange(start, len(text)).Draw(t, "end")
	ins := rapid.StringMatching(`[a-e]{0,8}`).Draw(t, "text")
	return start, end, ins
}

func TestDeltaProperties(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		s := rapid.StringMatching(`[a-z\n]{0,80}`).Draw(t, "base")
		base := rope.FromString(s)

		start, end, ins := genEdit(t, s)
		a := Simple(start, end, rope.FromString(ins), base.Len())
		mid := a.Apply(base)
		if want := s[:start] + ins + s[end:]; mid.String() != want {
			t.Fatalf("Apply = %q, want %q", mid.String(), want)
		}

		if back := a.Invert(base).Apply(mid); back.String() != s {
			t.Fatalf("Invert round trip = %q, want %q", back.String(), s)
		}

		start2, end2, ins2 := genEdit(t, mid.String())
		b := Simple(start2, end2, rope.FromString(ins2), mid.Len())
		want := b.Apply(mid).String()
		if got := Compose(a, b).Apply(base).String(); got != want {
			t.Fatalf("Compose = %q, want %q", got, want)
		}

		off := rapid.IntRange(0, len(s)).Draw(t, "offset")
		if got := Transform(a, off, true); got < 0 || got > mid.Len() {
			t.Fatalf("Transform out of range: %d", got)
		}
		if Transform(a, off, false) > Transform(a, off, true) {
			t.Fatalf("non-sticky offset moved past sticky one")
		}
	})
}
