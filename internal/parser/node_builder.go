package parser

import "github.com/mhaller/es5parser/internal/token"

// nodeBuilder captures a node's start position and back-patches its end
// once the node's extent is known (spec.md §4.2), mirroring the
// teacher's NodeBuilder but working on the simpler value-typed Span.
type nodeBuilder struct {
	p     *Parser
	start token.Posn
}

// startNode begins tracking a new node at the parser's current position
// (the start of whatever token comes next).
func (p *Parser) startNode() nodeBuilder {
	return nodeBuilder{p: p, start: p.cur.Peek().Span.Start}
}

// finish produces the Span for a node that ends at the position the
// cursor has just consumed up to (i.e. immediately after the last
// token read as part of this node).
func (b nodeBuilder) finish() token.Span {
	return token.Span{Start: b.start, End: b.p.lastEnd}
}

// finishAt produces the Span for a node whose end is an explicit
// position (e.g. the end of a token read earlier, before further
// lookahead moved the cursor on).
func (b nodeBuilder) finishAt(end token.Posn) token.Span {
	return token.Span{Start: b.start, End: end}
}
