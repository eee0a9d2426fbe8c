package script

import (
	"errors"
	"fmt"

	"github.com/dshills/strand/internal/engine/buffer"
	"github.com/dshills/strand/internal/engine/motion"
)

// Errors returned while decoding scripts.
var (
	// ErrUnknownOp indicates a step names an op that does not exist.
	ErrUnknownOp = errors.New("unknown op")

	// ErrInvalidStep indicates a step is missing a field or has a bad value.
	ErrInvalidStep = errors.New("invalid step")

	// ErrUnknownFormat indicates a script file extension is not recognized.
	ErrUnknownFormat = errors.New("unknown script format")
)

// Kind says what a step does.
type Kind uint8

const (
	// KindOp applies a buffer op.
	KindOp Kind = iota
	// KindJump moves to a single caret at a position.
	KindJump
	// KindSearch selects the next or previous match of a pattern.
	KindSearch
)

// Step is one decoded script entry.
type Step struct {
	Kind Kind

	// Op is set for KindOp.
	Op buffer.BufferOp

	// Position and Snap are set for KindJump.
	Position buffer.Position
	Snap     bool

	// Pattern, Backward and AddCaret are set for KindSearch.
	Pattern  string
	Backward bool
	AddCaret bool

	// Line is the 1-based source line the step was decoded from.
	Line int
}

func (s Step) String() string {
	switch s.Kind {
	case KindJump:
		mode := "strict"
		if s.Snap {
			mode = "snap"
		}
		return fmt.Sprintf("jump(%d:%d %s)", s.Position.Line, s.Position.Col, mode)
	case KindSearch:
		name := "search"
		if s.Backward {
			name = "search-back"
		}
		if s.AddCaret {
			return fmt.Sprintf("%s(%q +caret)", name, s.Pattern)
		}
		return fmt.Sprintf("%s(%q)", name, s.Pattern)
	default:
		return s.Op.String()
	}
}

// rawStep holds the fields of a step as written, before validation.
type rawStep struct {
	Op        string  `yaml:"op"`
	Text      *string `yaml:"text"`
	Direction string  `yaml:"direction"`
	Motion    string  `yaml:"motion"`
	Line      *int    `yaml:"line"`
	Col       *int    `yaml:"col"`
	Snap      bool    `yaml:"snap"`
	Pattern   string  `yaml:"pattern"`
	AddCaret  bool    `yaml:"add_caret"`
}

func (r rawStep) build(line int) (Step, error) {
	step := Step{Kind: KindOp, Line: line}
	switch r.Op {
	case "insert":
		if r.Text == nil {
			return Step{}, fmt.Errorf("%w: insert needs text", ErrInvalidStep)
		}
		step.Op = buffer.Insert{Text: *r.Text}
	case "delete":
		switch r.Direction {
		case "", "backward":
			step.Op = buffer.Delete{Trajectory: buffer.Backward}
		case "forward":
			step.Op = buffer.Delete{Trajectory: buffer.Forward}
		default:
			return Step{}, fmt.Errorf("%w: delete direction %q", ErrInvalidStep, r.Direction)
		}
	case "delete-selected":
		step.Op = buffer.DeleteSelected{}
	case "undo":
		step.Op = buffer.Undo{}
	case "redo":
		step.Op = buffer.Redo{}
	case "move", "select", "new-caret":
		m, err := motion.Parse(r.Motion)
		if err != nil {
			return Step{}, fmt.Errorf("%w: %w", ErrInvalidStep, err)
		}
		switch r.Op {
		case "move":
			step.Op = buffer.Move{Motion: m}
		case "select":
			step.Op = buffer.Selection{Motion: m}
		default:
			step.Op = buffer.NewCaret{Motion: m}
		}
	case "jump":
		if r.Line == nil {
			return Step{}, fmt.Errorf("%w: jump needs line", ErrInvalidStep)
		}
		step.Kind = KindJump
		step.Position.Line = *r.Line
		if r.Col != nil {
			step.Position.Col = *r.Col
		}
		step.Snap = r.Snap
	case "search":
		if r.Pattern == "" {
			return Step{}, fmt.Errorf("%w: search needs pattern", ErrInvalidStep)
		}
		switch r.Direction {
		case "", "forward":
		case "backward":
			step.Backward = true
		default:
			return Step{}, fmt.Errorf("%w: search direction %q", ErrInvalidStep, r.Direction)
		}
		step.Kind = KindSearch
		step.Pattern = r.Pattern
		step.AddCaret = r.AddCaret
	case "":
		return Step{}, fmt.Errorf("%w: missing op", ErrInvalidStep)
	default:
		return Step{}, fmt.Errorf("%w: %q", ErrUnknownOp, r.Op)
	}
	return step, nil
}
