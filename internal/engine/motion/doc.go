// Package motion resolves abstract cursor movements into regions.
//
// A Motion names a direction of travel (one grapheme, a line, a word
// boundary, an edge of the viewport) without saying where it ends. Apply
// turns it into concrete offsets against a text snapshot. It is a pure
// function: the same text, viewport, region and motion always produce the
// same result.
package motion
