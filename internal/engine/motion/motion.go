package motion

import (
	"errors"
	"fmt"
	"strings"

	"github.com/dshills/strand/internal/engine/wordboundary"
)

// ErrUnknownMotion is returned by Parse for an unrecognized name.
var ErrUnknownMotion = errors.New("unknown motion")

// Kind identifies a motion.
type Kind uint8

// Motion kinds. Up and Down move by one line.
const (
	Left Kind = iota
	Right
	StartOfLine
	EndOfLine
	Up
	Down
	TopOfViewport
	BottomOfViewport
	NextWordBoundary
	PrevWordBoundary
)

var kindNames = [...]string{
	Left:             "left",
	Right:            "right",
	StartOfLine:      "start-of-line",
	EndOfLine:        "end-of-line",
	Up:               "up",
	Down:             "down",
	TopOfViewport:    "top-of-viewport",
	BottomOfViewport: "bottom-of-viewport",
	NextWordBoundary: "next-word",
	PrevWordBoundary: "prev-word",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", k)
}

// Motion is an abstract cursor movement. Boundary is only meaningful for
// the word boundary kinds.
type Motion struct {
	Kind     Kind
	Boundary wordboundary.Type
}

// Of returns a motion of kind k.
func Of(k Kind) Motion {
	return Motion{Kind: k}
}

// NextWord moves to the next word boundary matching t.
func NextWord(t wordboundary.Type) Motion {
	return Motion{Kind: NextWordBoundary, Boundary: t}
}

// PrevWord moves to the previous word boundary matching t.
func PrevWord(t wordboundary.Type) Motion {
	return Motion{Kind: PrevWordBoundary, Boundary: t}
}

// IsVertical reports whether the motion moves between lines and keeps the
// preferred column.
func (m Motion) IsVertical() bool {
	switch m.Kind {
	case Up, Down, TopOfViewport, BottomOfViewport:
		return true
	}
	return false
}

// String returns the textual form accepted by Parse, such as "down" or
// "next-word-start".
func (m Motion) String() string {
	if m.Kind == NextWordBoundary || m.Kind == PrevWordBoundary {
		return m.Kind.String() + "-" + boundaryName(m.Boundary)
	}
	return m.Kind.String()
}

func boundaryName(t wordboundary.Type) string {
	switch t {
	case wordboundary.Start:
		return "start"
	case wordboundary.End:
		return "end"
	default:
		return "any"
	}
}

// Parse reads a motion from its textual form. Word motions take a
// "-start", "-end" or "-any" suffix; a bare "next-word" means "-start".
func Parse(s string) (Motion, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for k, kn := range kindNames {
		kind := Kind(k)
		if kind == NextWordBoundary || kind == PrevWordBoundary {
			rest, ok := strings.CutPrefix(name, kn)
			if !ok {
				continue
			}
			switch rest {
			case "", "-start":
				return Motion{Kind: kind, Boundary: wordboundary.Start}, nil
			case "-end":
				return Motion{Kind: kind, Boundary: wordboundary.End}, nil
			case "-any", "-both":
				return Motion{Kind: kind, Boundary: wordboundary.Both}, nil
			}
			continue
		}
		if name == kn {
			return Of(kind), nil
		}
	}
	return Motion{}, fmt.Errorf("%w: %q", ErrUnknownMotion, s)
}
