// Package errors provides source-position-aware error formatting shared by
// the tokenizer, parser and syntax checker (spec.md §7).
package errors

import (
	"fmt"
	"strings"

	"github.com/helena-lang/helena/internal/token"
)

// SourceError represents a single diagnostic with position and source
// context, rendered with a caret under the offending column.
type SourceError struct {
	Kind    string // stable, machine-matchable error kind (spec.md §7)
	Message string
	Source  string
	Pos     token.Position
}

// New creates a SourceError whose message equals its kind verbatim (the
// canonical structural error kinds in spec.md §7 are themselves messages).
func New(kind string, pos token.Position, source string) *SourceError {
	return &SourceError{Kind: kind, Message: kind, Source: source, Pos: pos}
}

// Newf creates a SourceError whose display message is formatted
// independently from its Kind (e.g. `cannot resolve variable "x"`).
func Newf(kind string, pos token.Position, source, format string, args ...any) *SourceError {
	return &SourceError{Kind: kind, Message: fmt.Sprintf(format, args...), Source: source, Pos: pos}
}

// Error implements the error interface.
func (e *SourceError) Error() string {
	return e.Format(false)
}

// Format renders the error with a source-line gutter and a caret pointing
// at Pos.Column, optionally with ANSI color.
func (e *SourceError) Format(color bool) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "error at %d:%d: ", e.Pos.Line, e.Pos.Column)
	if color {
		sb.WriteString("\033[1m")
	}
	sb.WriteString(e.Message)
	if color {
		sb.WriteString("\033[0m")
	}

	if line := e.sourceLine(e.Pos.Line); line != "" {
		sb.WriteString("\n")
		gutter := fmt.Sprintf("%4d | ", e.Pos.Line)
		sb.WriteString(gutter)
		sb.WriteString(line)
		sb.WriteString("\n")
		sb.WriteString(strings.Repeat(" ", len(gutter)+max0(e.Pos.Column-1)))
		if color {
			sb.WriteString("\033[1;31m")
		}
		sb.WriteString("^")
		if color {
			sb.WriteString("\033[0m")
		}
	}

	return sb.String()
}

func (e *SourceError) sourceLine(line int) string {
	if e.Source == "" {
		return ""
	}
	lines := strings.Split(e.Source, "\n")
	if line < 1 || line > len(lines) {
		return ""
	}
	return lines[line-1]
}

func max0(n int) int {
	if n < 0 {
		return 0
	}
	return n
}
