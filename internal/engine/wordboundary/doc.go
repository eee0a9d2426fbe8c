// Package wordboundary finds word boundaries for cursor navigation.
//
// Characters are classified as whitespace, word, punctuation or other.
// A boundary exists between two adjacent characters of different classes
// unless either is "other"; its Type says whether it begins a run, ends
// one, or both. Scanners walk the rope lazily in either direction.
package wordboundary
