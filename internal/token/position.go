// Package token defines the lexical tokens, source positions, and spans
// shared by the lexer and the parser.
package token

import "fmt"

// Posn is a single point in the source: a byte offset plus the
// corresponding 1-based line and column (column counts runes, not bytes,
// matching how editors report cursor positions for UTF-8 source).
type Posn struct {
	Offset int
	Line   int
	Column int
}

// String renders the position as "line:column".
func (p Posn) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// IsZero reports whether p is the unresolved "not yet known" position.
// A real position always has Line >= 1.
func (p Posn) IsZero() bool {
	return p.Line == 0
}

// Span is a half-open range [Start, End) in the source. The zero Span
// represents "not yet resolved" (ast.BaseNode.Span before NodeBuilder
// stamps it).
type Span struct {
	Start Posn
	End   Posn
}

// IsZero reports whether the span has not been resolved yet.
func (s Span) IsZero() bool {
	return s.Start.IsZero() && s.End.IsZero()
}

// Contains reports whether s fully encloses other (s.Start <= other.Start
// and other.End <= s.End, by offset). Used by span-containment tests.
func (s Span) Contains(other Span) bool {
	return s.Start.Offset <= other.Start.Offset && other.End.Offset <= s.End.Offset
}
