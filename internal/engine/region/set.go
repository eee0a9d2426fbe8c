package region

import (
	"fmt"
	"slices"

	"github.com/dshills/strand/internal/engine/delta"
)

// Set stores every region of a buffer.
//
// Carets are the regions where edits happen. They are kept ordered by head
// and never overlap; any overlap produced by a mutation is merged away
// before the mutating call returns. One caret is the primary caret, the
// one that survives when leaving multi-caret mode. Marks are regions that
// follow edits like carets do but are never merged.
//
// Set is not safe for concurrent use.
type Set struct {
	regions map[ID]Region
	carets  []ID
	primary ID
}

// NewSet returns a set holding a single primary caret.
func NewSet(primary Region) *Set {
	id := newID()
	return &Set{
		regions: map[ID]Region{id: primary},
		carets:  []ID{id},
		primary: id,
	}
}

func (s *Set) mustGet(id ID) Region {
	r, ok := s.regions[id]
	if !ok {
		panic(fmt.Sprintf("region: unknown region %s", id))
	}
	return r
}

// Carets returns the carets in ascending order. The result is never empty.
func (s *Set) Carets() []Region {
	out := make([]Region, len(s.carets))
	for i, id := range s.carets {
		out[i] = s.mustGet(id)
	}
	return out
}

// CaretIDs returns the ids of the carets in the order of Carets.
func (s *Set) CaretIDs() []ID {
	return slices.Clone(s.carets)
}

// CaretCount returns the number of carets.
func (s *Set) CaretCount() int {
	return len(s.carets)
}

// Primary returns the primary caret.
func (s *Set) Primary() Region {
	return s.mustGet(s.primary)
}

// PrimaryID returns the id of the primary caret.
func (s *Set) PrimaryID() ID {
	return s.primary
}

// Get returns the region with the given id, caret or mark.
func (s *Set) Get(id ID) (Region, bool) {
	r, ok := s.regions[id]
	return r, ok
}

// IsCaret reports whether id names a live caret.
func (s *Set) IsCaret(id ID) bool {
	return slices.Contains(s.carets, id)
}

// UpdateRegions replaces every region, carets and marks, with f's result.
func (s *Set) UpdateRegions(f func(ID, Region) Region) {
	for id, r := range s.regions {
		s.regions[id] = f(id, r)
	}
	s.normalize()
}

// UpdateCarets replaces every caret with f's result. Carets are visited in
// ascending order.
func (s *Set) UpdateCarets(f func(ID, Region) Region) {
	for _, id := range s.carets {
		s.regions[id] = f(id, s.regions[id])
	}
	s.normalize()
}

// AddCaret inserts a new caret and returns the id of the caret that holds
// it afterwards. That is the new id unless the caret was merged into an
// existing one.
func (s *Set) AddCaret(makePrimary bool, r Region) ID {
	id := newID()
	s.regions[id] = r
	s.carets = append(s.carets, id)
	if makePrimary {
		s.primary = id
	}
	if into, ok := s.normalize()[id]; ok {
		return into
	}
	return id
}

// SetPrimaryCaret overwrites the primary caret.
func (s *Set) SetPrimaryCaret(r Region) {
	s.regions[s.primary] = r
	s.normalize()
}

// CollapseCaretsIntoPrimary removes every caret except the primary one.
func (s *Set) CollapseCaretsIntoPrimary() {
	for _, id := range s.carets {
		if id != s.primary {
			delete(s.regions, id)
		}
	}
	s.carets = append(s.carets[:0], s.primary)
}

// CollapseSelections turns every caret into a cursor at its head.
func (s *Set) CollapseSelections() {
	s.UpdateCarets(func(_ ID, r Region) Region {
		r.Tail = r.Head
		return r
	})
}

// ApplyDelta moves every region through d.
func (s *Set) ApplyDelta(d delta.Delta) {
	t := delta.NewTransformer(d)
	s.UpdateRegions(func(_ ID, r Region) Region {
		return r.Transform(t)
	})
}

// ClampTo pulls every region into [0, n]. It is the fallback when a
// region cannot be transformed through an edit.
func (s *Set) ClampTo(n int) {
	s.UpdateRegions(func(_ ID, r Region) Region {
		r.Head = max(0, min(r.Head, n))
		r.Tail = max(0, min(r.Tail, n))
		return r
	})
}

// AddMark stores a region that follows edits but is not a caret.
func (s *Set) AddMark(r Region) ID {
	id := newID()
	s.regions[id] = r
	return id
}

// Mark returns the mark with the given id.
func (s *Set) Mark(id ID) (Region, bool) {
	if s.IsCaret(id) {
		return Region{}, false
	}
	return s.Get(id)
}

// RemoveMark deletes a mark. Removing a caret id is a no-op.
func (s *Set) RemoveMark(id ID) {
	if !s.IsCaret(id) {
		delete(s.regions, id)
	}
}

// Marks returns the number of marks.
func (s *Set) Marks() int {
	return len(s.regions) - len(s.carets)
}

// normalize sorts the carets by head and merges overlapping or touching
// neighbours into the left one. It returns where each removed caret went.
func (s *Set) normalize() map[ID]ID {
	slices.SortStableFunc(s.carets, func(a, b ID) int {
		return s.regions[a].Head - s.regions[b].Head
	})

	var merged map[ID]ID
	for i := 0; i < len(s.carets)-1; {
		leftID, rightID := s.carets[i], s.carets[i+1]
		left, right := s.regions[leftID], s.regions[rightID]
		if left.Range().End < right.Range().Start {
			i++
			continue
		}
		union, _ := left.Merge(right)
		s.regions[leftID] = union
		delete(s.regions, rightID)
		s.carets = slices.Delete(s.carets, i+1, i+2)
		if s.primary == rightID {
			s.primary = leftID
		}
		if merged == nil {
			merged = make(map[ID]ID)
		}
		merged[rightID] = leftID
		for from, to := range merged {
			if to == rightID {
				merged[from] = leftID
			}
		}
		// The union can reach back over the previous caret.
		if i > 0 {
			i--
		}
	}
	return merged
}
