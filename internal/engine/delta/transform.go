package delta

// Transformer maps offsets in a delta's base text to the corresponding
// offsets in its result.
type Transformer struct {
	d Delta
}

// NewTransformer returns a transformer for d.
func NewTransformer(d Delta) *Transformer {
	return &Transformer{d: d}
}

// Transform maps offset through the delta. When text is inserted exactly
// at offset, after selects whether the result lands after the insertion
// (sticky) or stays before it. Offsets inside deleted ranges collapse to
// the deletion point.
func (t *Transformer) Transform(offset int, after bool) int {
	result, base := 0, 0
	for _, el := range t.d.elements {
		if el.IsCopy() {
			if offset <= el.Start {
				return result
			}
			if offset < el.End {
				return result + offset - el.Start
			}
			result += el.End - el.Start
			base = el.End
		} else {
			// base is where the insertion lands in the old text.
			if !after && offset <= base {
				return result
			}
			result += el.Text.Len()
		}
	}
	return result
}

// Transform maps a single offset through d.
func Transform(d Delta, offset int, after bool) int {
	return NewTransformer(d).Transform(offset, after)
}
