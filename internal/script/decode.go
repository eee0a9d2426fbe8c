package script

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/tidwall/gjson"
	"gopkg.in/yaml.v3"
)

// maxLineSize bounds a single JSON line, which may carry a large insert.
const maxLineSize = 16 << 20

// StepError reports a step that could not be decoded or run.
type StepError struct {
	// Index is the 0-based position of the step in the script.
	Index int
	// Line is the 1-based source line, or 0 if unknown.
	Line int
	// Err is the underlying error.
	Err error
}

func (e *StepError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("step %d (line %d): %v", e.Index, e.Line, e.Err)
	}
	return fmt.Sprintf("step %d: %v", e.Index, e.Err)
}

func (e *StepError) Unwrap() error {
	return e.Err
}

// Parse decodes a script, choosing the format from name's extension:
// .yaml and .yml are YAML, .jsonl, .ndjson and .json are JSON lines.
func Parse(name string, r io.Reader) ([]Step, error) {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".yaml", ".yml":
		return ParseYAML(r)
	case ".jsonl", ".ndjson", ".json":
		return ParseJSONLines(r)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownFormat, name)
	}
}

// ParseYAML decodes a YAML script with a top-level ops list. An empty
// document is an empty script.
func ParseYAML(r io.Reader) ([]Step, error) {
	var doc struct {
		Ops []yaml.Node `yaml:"ops"`
	}
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("decode script: %w", err)
	}

	steps := make([]Step, 0, len(doc.Ops))
	for i, node := range doc.Ops {
		var raw rawStep
		if err := node.Decode(&raw); err != nil {
			return nil, &StepError{Index: i, Line: node.Line, Err: fmt.Errorf("%w: %w", ErrInvalidStep, err)}
		}
		step, err := raw.build(node.Line)
		if err != nil {
			return nil, &StepError{Index: i, Line: node.Line, Err: err}
		}
		steps = append(steps, step)
	}
	return steps, nil
}

// ParseJSONLines decodes a script holding one JSON object per line.
// Blank lines are skipped.
func ParseJSONLines(r io.Reader) ([]Step, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	var steps []Step
	for lineNo := 1; sc.Scan(); lineNo++ {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		raw, err := rawFromJSON(line)
		if err == nil {
			var step Step
			if step, err = raw.build(lineNo); err == nil {
				steps = append(steps, step)
				continue
			}
		}
		return nil, &StepError{Index: len(steps), Line: lineNo, Err: err}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read script: %w", err)
	}
	return steps, nil
}

func rawFromJSON(line string) (rawStep, error) {
	if !gjson.Valid(line) {
		return rawStep{}, fmt.Errorf("%w: malformed JSON", ErrInvalidStep)
	}
	obj := gjson.Parse(line)
	if !obj.IsObject() {
		return rawStep{}, fmt.Errorf("%w: step must be an object", ErrInvalidStep)
	}

	raw := rawStep{
		Op:        obj.Get("op").String(),
		Direction: obj.Get("direction").String(),
		Motion:    obj.Get("motion").String(),
		Snap:      obj.Get("snap").Bool(),
		Pattern:   obj.Get("pattern").String(),
		AddCaret:  obj.Get("add_caret").Bool(),
	}
	if v := obj.Get("text"); v.Exists() {
		if v.Type != gjson.String {
			return rawStep{}, fmt.Errorf("%w: text must be a string", ErrInvalidStep)
		}
		text := v.String()
		raw.Text = &text
	}
	for _, f := range []struct {
		name string
		dst  **int
	}{{"line", &raw.Line}, {"col", &raw.Col}} {
		v := obj.Get(f.name)
		if !v.Exists() {
			continue
		}
		if v.Type != gjson.Number {
			return rawStep{}, fmt.Errorf("%w: %s must be a number", ErrInvalidStep, f.name)
		}
		n := int(v.Int())
		*f.dst = &n
	}
	return raw, nil
}
