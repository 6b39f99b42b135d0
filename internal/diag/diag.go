// Package diag formats fatal errors with source context, mirroring
// CWBudde-go-dws/internal/errors's CompilerError: a message, a
// position, and the enclosing source line with a caret pointing at
// the offending column.
package diag

import (
	"fmt"
	"strings"

	"github.com/cwbudde/deconst/internal/token"
)

// Error is one reportable fatal diagnostic (spec.md §7's ParseError).
type Error struct {
	Message string
	Source  string
	File    string
	Pos     token.Position
}

// New builds an Error.
func New(pos token.Position, message, source, file string) *Error {
	return &Error{Pos: pos, Message: message, Source: source, File: file}
}

func (e *Error) Error() string {
	return e.Format(false)
}

// Format renders e with a line/column header, the source line, and a
// caret indicator. color enables ANSI styling for terminal output.
func (e *Error) Format(color bool) string {
	var sb strings.Builder

	if e.File != "" {
		fmt.Fprintf(&sb, "Error in %s:%d:%d\n", e.File, e.Pos.Line, e.Pos.Column)
	} else {
		fmt.Fprintf(&sb, "Error at line %d:%d\n", e.Pos.Line, e.Pos.Column)
	}

	if line := e.sourceLine(e.Pos.Line); line != "" {
		prefix := fmt.Sprintf("%4d | ", e.Pos.Line)
		sb.WriteString(prefix)
		sb.WriteString(line)
		sb.WriteString("\n")
		sb.WriteString(strings.Repeat(" ", len(prefix)+e.Pos.Column-1))
		if color {
			sb.WriteString("\033[1;31m")
		}
		sb.WriteString("^")
		if color {
			sb.WriteString("\033[0m")
		}
		sb.WriteString("\n")
	}

	if color {
		sb.WriteString("\033[1m")
	}
	sb.WriteString(e.Message)
	if color {
		sb.WriteString("\033[0m")
	}
	return sb.String()
}

func (e *Error) sourceLine(lineNum int) string {
	if e.Source == "" {
		return ""
	}
	lines := strings.Split(e.Source, "\n")
	if lineNum < 1 || lineNum > len(lines) {
		return ""
	}
	return lines[lineNum-1]
}

// FormatAll renders a batch of errors, one per blank-line-separated
// block, matching CWBudde-go-dws's FormatErrors.
func FormatAll(errs []*Error, color bool) string {
	parts := make([]string, len(errs))
	for i, e := range errs {
		parts[i] = e.Format(color)
	}
	return strings.Join(parts, "\n\n")
}

// FromParseErrors converts parser.ParseError-shaped messages (pos +
// text) into diag.Errors carrying source context, pairing them by
// index and stopping at the shorter slice.
func FromParseErrors(positions []token.Position, messages []string, source, file string) []*Error {
	n := len(messages)
	if len(positions) < n {
		n = len(positions)
	}
	out := make([]*Error, n)
	for i := 0; i < n; i++ {
		out[i] = New(positions[i], messages[i], source, file)
	}
	return out
}
