package region

import (
	"testing"

	"github.com/dshills/strand/internal/engine/delta"
	"github.com/dshills/strand/internal/engine/rope"
	"github.com/google/go-cmp/cmp"
	"pgregory.net/rapid"
)

func TestRegionRange(t *testing.T) {
	tests := []struct {
		r    Region
		want Range
	}{
		{Cursor(4), Range{4, 4}},
		{Selection(1, 3), Range{1, 3}},
		{Selection(3, 1), Range{1, 3}},
	}
	for _, tt := range tests {
		if got := tt.r.Range(); got != tt.want {
			t.Errorf("%v.Range() = %v, want %v", tt.r, got, tt.want)
		}
	}
	if !Cursor(2).IsCursor() || Selection(1, 2).IsCursor() {
		t.Error("IsCursor mismatch")
	}
}

func TestOverlaps(t *testing.T) {
	tests := []struct {
		a, b Region
		want bool
	}{
		{Selection(10, 20), Selection(15, 16), true},
		{Selection(10, 20), Selection(5, 15), true},
		{Selection(10, 20), Selection(15, 20), true},
		{Selection(10, 20), Cursor(15), true},
		{Selection(10, 20), Selection(20, 25), true},
		{Selection(10, 15), Selection(18, 20), false},
	}
	for _, tt := range tests {
		if got := tt.a.Overlaps(tt.b); got != tt.want {
			t.Errorf("%v.Overlaps(%v) = %v, want %v", tt.a, tt.b, got, tt.want)
		}
		if got := tt.b.Overlaps(tt.a); got != tt.want {
			t.Errorf("%v.Overlaps(%v) = %v, want %v", tt.b, tt.a, got, tt.want)
		}
	}
}

func TestMerge(t *testing.T) {
	tests := []struct {
		name string
		a, b Region
		want Region
		ok   bool
	}{
		{"forward", Selection(10, 15), Selection(12, 20), Selection(10, 20), true},
		{"keeps left direction", Selection(15, 10), Selection(12, 20), Selection(20, 10), true},
		{"contained", Selection(0, 30), Cursor(5), Selection(0, 30), true},
		{"disjoint", Selection(10, 15), Selection(18, 20), Selection(10, 15), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := tt.a.Merge(tt.b)
			if ok != tt.ok {
				t.Fatalf("Merge ok = %v, want %v", ok, tt.ok)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Merge mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestRegionEqual(t *testing.T) {
	a := Cursor(3).WithPreferredColumn(7)
	b := Cursor(3).WithPreferredColumn(7)
	if !a.Equal(b) {
		t.Error("regions with equal preferred columns should be equal")
	}
	if a.Equal(Cursor(3)) || Cursor(3).Equal(a) {
		t.Error("preferred column must take part in equality")
	}
	if Cursor(3).Equal(Region{Head: 3, Tail: 3, Stickiness: NonSticky}) {
		t.Error("stickiness must take part in equality")
	}
}

func TestNewSet(t *testing.T) {
	s := NewSet(Cursor(0))
	if s.CaretCount() != 1 || s.Marks() != 0 {
		t.Fatalf("new set has %d carets, %d marks", s.CaretCount(), s.Marks())
	}
	if s.PrimaryID().IsZero() || !s.IsCaret(s.PrimaryID()) {
		t.Error("primary id must name the only caret")
	}
	if diff := cmp.Diff(Cursor(0), s.Primary()); diff != "" {
		t.Errorf("primary mismatch (-want +got):\n%s", diff)
	}
}

func TestAddCaretKeepsOrder(t *testing.T) {
	s := NewSet(Cursor(10))
	first := s.PrimaryID()
	s.AddCaret(false, Cursor(20))
	added := s.AddCaret(true, Cursor(5))

	want := []Region{Cursor(5), Cursor(10), Cursor(20)}
	if diff := cmp.Diff(want, s.Carets()); diff != "" {
		t.Errorf("carets mismatch (-want +got):\n%s", diff)
	}
	if s.PrimaryID() != added {
		t.Error("added caret should be primary")
	}
	if r, ok := s.Get(first); !ok || r.Head != 10 {
		t.Errorf("original caret lost: %v, %v", r, ok)
	}
}

func TestAddCaretMerges(t *testing.T) {
	s := NewSet(Selection(2, 6))
	first := s.PrimaryID()

	got := s.AddCaret(true, Cursor(4))
	if got != first {
		t.Errorf("AddCaret returned %s, want surviving caret %s", got, first)
	}
	if s.CaretCount() != 1 || s.PrimaryID() != first {
		t.Errorf("merged caret should leave one primary caret, got %v", s.Carets())
	}
	if s.Marks() != 0 {
		t.Error("merged caret must be removed from the region map")
	}
}

func TestMergeTransfersPrimary(t *testing.T) {
	s := NewSet(Cursor(0))
	left := s.PrimaryID()
	right := s.AddCaret(true, Cursor(5))

	s.UpdateCarets(func(id ID, r Region) Region {
		if id == left {
			return Selection(0, 5)
		}
		return r
	})

	if s.CaretCount() != 1 {
		t.Fatalf("carets = %v, want a single merged caret", s.Carets())
	}
	if s.PrimaryID() != left {
		t.Error("primary should move to the surviving left caret")
	}
	if _, ok := s.Get(right); ok {
		t.Error("merged-away id should be gone")
	}
}

func TestMergeReachesBack(t *testing.T) {
	s := NewSet(Selection(2, 3))
	s.AddCaret(false, Cursor(5))
	s.AddCaret(false, Selection(8, 0))

	want := []Region{Selection(0, 8)}
	if diff := cmp.Diff(want, s.Carets()); diff != "" {
		t.Errorf("carets mismatch (-want +got):\n%s", diff)
	}
}

func TestApplyDelta(t *testing.T) {
	base := rope.FromString("abcdef")
	b := delta.NewBuilder(base.Len())
	b.Insert(2, "XY")
	b.Delete(4, 6)
	d := b.Build() // abXYcd

	s := NewSet(Cursor(2))
	nonSticky := s.AddCaret(false, Region{Head: 0, Tail: 0, Stickiness: NonSticky})
	mark := s.AddMark(Region{Head: 5, Tail: 5, Stickiness: NonSticky})
	s.ApplyDelta(d)

	want := []Region{
		{Head: 0, Tail: 0, Stickiness: NonSticky},
		Cursor(4),
	}
	if diff := cmp.Diff(want, s.Carets()); diff != "" {
		t.Errorf("carets mismatch (-want +got):\n%s", diff)
	}
	if r, _ := s.Get(nonSticky); r.Head != 0 {
		t.Errorf("non-sticky caret moved to %d", r.Head)
	}
	if r, ok := s.Mark(mark); !ok || r.Head != 6 {
		t.Errorf("mark = %v, %v; want head 6", r, ok)
	}
}

func TestApplyDeltaInsertAtStart(t *testing.T) {
	s := NewSet(Region{Head: 0, Tail: 0, Stickiness: NonSticky})
	s.AddCaret(false, Cursor(3))
	sticky := s.AddMark(Cursor(0))
	s.ApplyDelta(delta.Simple(0, 0, rope.FromString("XY"), 3))

	want := []Region{
		{Head: 0, Tail: 0, Stickiness: NonSticky},
		Cursor(5),
	}
	if diff := cmp.Diff(want, s.Carets()); diff != "" {
		t.Errorf("carets mismatch (-want +got):\n%s", diff)
	}
	if r, _ := s.Mark(sticky); r.Head != 2 {
		t.Errorf("sticky mark = %d, want 2", r.Head)
	}

	empty := NewSet(Region{Head: 0, Tail: 0, Stickiness: NonSticky})
	empty.ApplyDelta(delta.Simple(0, 0, rope.FromString("abc"), 0))
	if got := empty.Primary().Head; got != 0 {
		t.Errorf("non-sticky caret in empty text moved to %d", got)
	}
}

func TestApplyDeltaMergesCollapsedSelections(t *testing.T) {
	s := NewSet(Selection(1, 2))
	s.AddCaret(false, Selection(3, 4))

	b := delta.NewBuilder(6)
	b.Delete(1, 4)
	s.ApplyDelta(b.Build())

	if diff := cmp.Diff([]Region{Cursor(1)}, s.Carets()); diff != "" {
		t.Errorf("carets mismatch (-want +got):\n%s", diff)
	}
}

func TestCollapse(t *testing.T) {
	s := NewSet(Selection(4, 1))
	s.AddCaret(false, Selection(7, 9))
	s.CollapseSelections()
	if diff := cmp.Diff([]Region{Cursor(4), Cursor(7)}, s.Carets()); diff != "" {
		t.Errorf("collapsed selections mismatch (-want +got):\n%s", diff)
	}

	primary := s.PrimaryID()
	mark := s.AddMark(Cursor(0))
	s.CollapseCaretsIntoPrimary()
	if s.CaretCount() != 1 || s.PrimaryID() != primary || s.Primary().Head != 4 {
		t.Errorf("after collapse carets = %v", s.Carets())
	}
	if _, ok := s.Mark(mark); !ok {
		t.Error("collapsing carets must keep marks")
	}
}

func TestMarks(t *testing.T) {
	s := NewSet(Cursor(3))
	id := s.AddMark(Cursor(3))
	if s.CaretCount() != 1 || s.Marks() != 1 {
		t.Error("a mark at a caret position must not merge with it")
	}
	if _, ok := s.Mark(s.PrimaryID()); ok {
		t.Error("Mark must not return carets")
	}
	s.RemoveMark(s.PrimaryID())
	if s.CaretCount() != 1 {
		t.Error("RemoveMark must not remove carets")
	}
	s.RemoveMark(id)
	if _, ok := s.Mark(id); ok {
		t.Error("mark should be removed")
	}
}

func TestClampTo(t *testing.T) {
	s := NewSet(Selection(3, 12))
	s.AddCaret(false, Cursor(20))
	s.ClampTo(5)
	if diff := cmp.Diff([]Region{Selection(3, 5)}, s.Carets()); diff != "" {
		t.Errorf("clamped carets mismatch (-want +got):\n%s", diff)
	}
}

func TestCaretInvariant(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		n := rapid.IntRange(0, 50).Draw(t, "len")
		genRegion := func(label string) Region {
			return Selection(rapid.IntRange(0, n).Draw(t, label+"Head"), rapid.IntRange(0, n).Draw(t, label+"Tail"))
		}

		s := NewSet(genRegion("primary"))
		for range rapid.IntRange(0, 8).Draw(t, "carets") {
			s.AddCaret(rapid.Bool().Draw(t, "makePrimary"), genRegion("caret"))
		}

		start := rapid.IntRange(0, n).Draw(t, "start")
		end := rapid.IntRange(start, n).Draw(t, "end")
		ins := rapid.StringMatching(`[a-z]{0,5}`).Draw(t, "insert")
		b := delta.NewBuilder(n)
		b.Replace(start, end, ins)
		s.ApplyDelta(b.Build())

		carets := s.Carets()
		for i := 1; i < len(carets); i++ {
			if carets[i-1].Range().End >= carets[i].Range().Start {
				t.Fatalf("carets %v and %v overlap or are out of order", carets[i-1], carets[i])
			}
		}
		if !s.IsCaret(s.PrimaryID()) {
			t.Fatalf("primary %s is not a caret", s.PrimaryID())
		}
		newLen := n - (end - start) + len(ins)
		for _, c := range carets {
			if r := c.Range(); r.Start < 0 || r.End > newLen {
				t.Fatalf("caret %v outside [0, %d]", c, newLen)
			}
		}
	})
}
