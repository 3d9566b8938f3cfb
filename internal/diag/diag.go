// Package diag renders parser.ParseError values as source-anchored
// diagnostics: a file:line:column header, the offending source line, and
// a caret pointing at the failing position.
package diag

import (
	"fmt"
	"strings"

	"github.com/mhaller/es5parser/internal/parser"
)

// SourceError pairs a structured ParseError with the source text and
// file name needed to render it with context.
type SourceError struct {
	Err    *parser.ParseError
	Source string
	File   string
}

// NewSourceError wraps err with the source and file it was parsed from.
func NewSourceError(err *parser.ParseError, source, file string) *SourceError {
	return &SourceError{Err: err, Source: source, File: file}
}

// Error implements the error interface with the plain, uncolored rendering.
func (e *SourceError) Error() string {
	return e.Render(false)
}

// Render formats the error with a header, the offending source line, and
// a caret under the failing column. If color is true, ANSI codes
// highlight the caret and message for terminal output.
func (e *SourceError) Render(color bool) string {
	var sb strings.Builder

	pos := e.Err.Pos
	if e.File != "" {
		fmt.Fprintf(&sb, "%s:%d:%d: ", e.File, pos.Line, pos.Column)
	} else {
		fmt.Fprintf(&sb, "%d:%d: ", pos.Line, pos.Column)
	}
	sb.WriteString(e.Err.Kind.String())
	sb.WriteString(": ")
	sb.WriteString(e.Err.Error())
	sb.WriteString("\n")

	line := sourceLine(e.Source, pos.Line)
	if line != "" {
		lineNumStr := fmt.Sprintf("%4d | ", pos.Line)
		sb.WriteString(lineNumStr)
		sb.WriteString(line)
		sb.WriteString("\n")

		sb.WriteString(strings.Repeat(" ", len(lineNumStr)+pos.Column-1))
		if color {
			sb.WriteString("\033[1;31m")
		}
		sb.WriteString("^")
		if color {
			sb.WriteString("\033[0m")
		}
		sb.WriteString("\n")
	}

	return sb.String()
}

func sourceLine(source string, lineNum int) string {
	if source == "" || lineNum < 1 {
		return ""
	}
	lines := strings.Split(source, "\n")
	if lineNum > len(lines) {
		return ""
	}
	return lines[lineNum-1]
}

// RenderAll renders a batch of errors, numbering them when there is more
// than one (spec.md's driver contract reports every accumulated error,
// even though the core parser itself stops at the first).
func RenderAll(errs []*SourceError, color bool) string {
	if len(errs) == 0 {
		return ""
	}
	if len(errs) == 1 {
		return errs[0].Render(color)
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "parsing failed with %d error(s):\n\n", len(errs))
	for i, e := range errs {
		fmt.Fprintf(&sb, "[%d/%d] ", i+1, len(errs))
		sb.WriteString(e.Render(color))
		if i < len(errs)-1 {
			sb.WriteString("\n")
		}
	}
	return sb.String()
}
