package revision

import (
	"errors"
	"testing"

	"github.com/dshills/strand/internal/engine/delta"
	"github.com/dshills/strand/internal/engine/rope"
	"pgregory.net/rapid"
)

func insert(e *Engine, offset int, text string) delta.Delta {
	b := delta.NewBuilder(e.Head().Len())
	b.Insert(offset, text)
	return b.Build()
}

func TestCommitAndUndo(t *testing.T) {
	e := New(rope.New())
	e.Commit(insert(e, 0, "hel"), 1)
	e.Commit(insert(e, 3, "lo"), 1)
	e.Commit(insert(e, 5, " world"), 2)

	if got := e.Head().String(); got != "hello world" {
		t.Fatalf("Head = %q, want %q", got, "hello world")
	}

	tests := []struct {
		name   string
		undone GroupSet
		want   string
	}{
		{"undo last group", NewGroupSet(2), "hello"},
		{"undo everything", NewGroupSet(1, 2), ""},
		{"redo first group", NewGroupSet(2), "hello"},
		{"redo all", NewGroupSet(), "hello world"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := e.Undo(tt.undone).String()
			if got != tt.want {
				t.Errorf("Undo(%v) = %q, want %q", tt.undone.Sorted(), got, tt.want)
			}
			if replay := e.Replay(tt.undone).String(); replay != got {
				t.Errorf("Replay = %q, head = %q", replay, got)
			}
		})
	}
}

func TestRevisionsAdvance(t *testing.T) {
	e := New(rope.FromString("abc"))
	if e.HeadRevision() != 0 {
		t.Fatalf("initial revision = %d, want 0", e.HeadRevision())
	}
	e.Commit(insert(e, 3, "d"), 1)
	e.Undo(NewGroupSet(1))
	if e.HeadRevision() != 2 || e.RevisionCount() != 3 {
		t.Errorf("revision = %d count = %d, want 2 and 3", e.HeadRevision(), e.RevisionCount())
	}
	rev, ok := e.Revision(1)
	if !ok || rev.Kind != KindEdit || rev.Rope().String() != "abcd" {
		t.Errorf("Revision(1) = %+v, %v", rev, ok)
	}
	if rev, _ := e.Revision(2); rev.Kind != KindUndo {
		t.Errorf("Revision(2).Kind = %v, want KindUndo", rev.Kind)
	}
}

func TestDeltaFromHead(t *testing.T) {
	e := New(rope.FromString("one two"))
	start := e.HeadRevision()

	b := delta.NewBuilder(e.Head().Len())
	b.Delete(0, 4)
	e.Commit(b.Build(), 1)
	e.Commit(insert(e, 3, "!"), 2)

	d, err := e.DeltaFromHead(start)
	if err != nil {
		t.Fatalf("DeltaFromHead: %v", err)
	}
	if got := d.Apply(rope.FromString("one two")).String(); got != "two!" {
		t.Errorf("delta applied = %q, want %q", got, "two!")
	}
	if got := delta.Transform(d, 5, false); got != 1 {
		t.Errorf("offset 5 transformed to %d, want 1", got)
	}

	d, err = e.DeltaFromHead(e.HeadRevision())
	if err != nil || !d.IsIdentity() {
		t.Errorf("delta from head to itself = %s, %v", d, err)
	}
}

func TestRevisionEviction(t *testing.T) {
	e := New(rope.New(), WithMaxRevisions(3))
	for i := range 5 {
		e.Commit(insert(e, i, "x"), GroupID(i))
	}
	if e.RevisionCount() != 3 {
		t.Fatalf("RevisionCount = %d, want 3", e.RevisionCount())
	}
	if _, err := e.DeltaFromHead(0); !errors.Is(err, ErrRevisionNotFound) {
		t.Errorf("evicted revision error = %v, want ErrRevisionNotFound", err)
	}
	if _, err := e.DeltaFromHead(99); !errors.Is(err, ErrRevisionNotFound) {
		t.Errorf("future revision error = %v, want ErrRevisionNotFound", err)
	}
	d, err := e.DeltaFromHead(3)
	if err != nil {
		t.Fatalf("DeltaFromHead(3): %v", err)
	}
	if got := d.Apply(rope.FromString("xxx")).String(); got != "xxxxx" {
		t.Errorf("delta applied = %q", got)
	}
}

func TestCommitPanics(t *testing.T) {
	tests := []struct {
		name string
		run  func(e *Engine)
	}{
		{"wrong base length", func(e *Engine) {
			e.Commit(delta.Identity(99), 1)
		}},
		{"undone group", func(e *Engine) {
			e.Commit(insert(e, 0, "a"), 1)
			e.Undo(NewGroupSet(1))
			e.Commit(insert(e, 0, "b"), 1)
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := New(rope.FromString("abc"))
			defer func() {
				if recover() == nil {
					t.Error("expected panic")
				}
			}()
			tt.run(e)
		})
	}
}

func TestGroupSet(t *testing.T) {
	s := NewGroupSet(3, 1, 2)
	c := s.Clone()
	delete(c, 1)
	if !s.Has(1) || c.Has(1) {
		t.Error("Clone must not share storage")
	}
	got := s.Sorted()
	if len(got) != 3 || got[0] != 1 || got[2] != 3 {
		t.Errorf("Sorted = %v", got)
	}
	var nilSet GroupSet
	if nilSet.Has(1) || nilSet.Clone() == nil {
		t.Error("nil set should be empty and clone to a non-nil set")
	}
}

// TestUndoMatchesReplay drives the engine with a linear undo history and
// checks that incremental undo agrees with a full replay and that
// DeltaFromHead carries the previous text to the head.
func TestUndoMatchesReplay(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		e := New(rope.FromString(rapid.StringMatching(`[a-z]{0,20}`).Draw(t, "initial")))
		undone := GroupSet{}
		var live, redo []GroupID
		next := GroupID(1)

		steps := rapid.IntRange(1, 40).Draw(t, "steps")
		for range steps {
			prevRev := e.HeadRevision()
			prevText := e.Head()

			switch rapid.IntRange(0, 3).Draw(t, "op") {
			case 0, 1:
				group := next
				if len(live) > 0 && len(redo) == 0 && rapid.Bool().Draw(t, "sameGroup") {
					group = live[len(live)-1]
				} else {
					next++
					live = append(live, group)
					redo = redo[:0]
				}
				n := e.Head().Len()
				start := rapid.IntRange(0, n).Draw(t, "start")
				end := rapid.IntRange(start, n).Draw(t, "end")
				text := rapid.StringMatching(`[a-z\n]{0,6}`).Draw(t, "text")
				want := e.Head().Replace(start, end, text).String()
				b := delta.NewBuilder(n)
				b.Replace(start, end, text)
				if got := e.Commit(b.Build(), group).String(); got != want {
					t.Fatalf("Commit = %q, want %q", got, want)
				}
			case 2:
				if len(live) == 0 {
					continue
				}
				g := live[len(live)-1]
				live = live[:len(live)-1]
				redo = append(redo, g)
				undone[g] = struct{}{}
				e.Undo(undone)
			case 3:
				if len(redo) == 0 {
					continue
				}
				g := redo[len(redo)-1]
				redo = redo[:len(redo)-1]
				live = append(live, g)
				delete(undone, g)
				e.Undo(undone)
			}

			if got, want := e.Head().String(), e.Replay(undone).String(); got != want {
				t.Fatalf("head %q differs from replay %q", got, want)
			}
			d, err := e.DeltaFromHead(prevRev)
			if err != nil {
				t.Fatalf("DeltaFromHead(%d): %v", prevRev, err)
			}
			if got := d.Apply(prevText).String(); got != e.Head().String() {
				t.Fatalf("step delta gives %q, head is %q", got, e.Head().String())
			}
		}
	})
}
