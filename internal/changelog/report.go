package changelog

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ariel-frischer/chlog/internal/markdown"
)

// Message is a diagnostic attached to a source line of the changelog.
type Message struct {
	Line  int
	Text  string
	Fatal bool
}

// Report collects the diagnostics of one pipeline run over one file.
type Report struct {
	Path     string
	Messages []Message
}

// NewReport creates an empty report for the file at path.
func NewReport(path string) *Report {
	return &Report{Path: path}
}

// Fail records a fatal message positioned at n.
func (r *Report) Fail(n markdown.Node, format string, args ...any) {
	r.add(n, true, format, args...)
}

// Warn records a non-fatal message positioned at n.
func (r *Report) Warn(n markdown.Node, format string, args ...any) {
	r.add(n, false, format, args...)
}

func (r *Report) add(n markdown.Node, fatal bool, format string, args ...any) {
	line := 0
	if n != nil {
		line = n.Pos().Line
	}
	r.Messages = append(r.Messages, Message{Line: line, Text: fmt.Sprintf(format, args...), Fatal: fatal})
}

// Fatal returns the fatal messages in the order they were recorded.
func (r *Report) Fatal() []Message {
	var fatal []Message
	for _, m := range r.Messages {
		if m.Fatal {
			fatal = append(fatal, m)
		}
	}
	return fatal
}

// Warnings returns the non-fatal messages.
func (r *Report) Warnings() []Message {
	var warnings []Message
	for _, m := range r.Messages {
		if !m.Fatal {
			warnings = append(warnings, m)
		}
	}
	return warnings
}

// Err is the structural gate: it returns a *StructuralError holding every
// fatal message, or nil when the run may proceed.
func (r *Report) Err() error {
	fatal := r.Fatal()
	if len(fatal) == 0 {
		return nil
	}
	return &StructuralError{Path: r.Path, Messages: fatal}
}

// StructuralError reports a changelog whose heading structure is invalid.
type StructuralError struct {
	Path     string
	Messages []Message
}

func (e *StructuralError) Error() string {
	lines := make([]string, len(e.Messages))
	for i, m := range e.Messages {
		lines[i] = e.format(m)
	}
	return strings.Join(lines, "\n")
}

func (e *StructuralError) format(m Message) string {
	switch {
	case e.Path != "" && m.Line > 0:
		return fmt.Sprintf("%s:%d: %s", e.Path, m.Line, m.Text)
	case e.Path != "":
		return fmt.Sprintf("%s: %s", e.Path, m.Text)
	case m.Line > 0:
		return fmt.Sprintf("line %d: %s", m.Line, m.Text)
	default:
		return m.Text
	}
}

// IsStructuralError returns true if err wraps a StructuralError.
func IsStructuralError(err error) bool {
	var se *StructuralError
	return errors.As(err, &se)
}
