package parser

import (
	"github.com/mhaller/es5parser/internal/lexer"
	"github.com/mhaller/es5parser/internal/token"
)

// ModeCell is the shared sloppy/strict flag the parser writes into once
// a `"use strict"` directive prologue is recognized, and the cursor
// consults nowhere itself — it exists so strict-mode binding checks
// (spec.md §3: "never eval, arguments, or future-reserved" in strict
// mode) can be answered from any point in the parser without threading
// an extra argument through every call.
type ModeCell struct {
	Strict bool
}

// cursor wraps a lexer with the parser's lexer-parser protocol: an
// explicit choice of operator-context vs. regexp-context lexing on
// every read (spec.md §4.3), and a single-token pushback buffer so the
// parser can look one token ahead, decide it guessed wrong, and put it
// back.
type cursor struct {
	lex      *lexer.Lexer
	mode     *ModeCell
	pushback *token.Token
}

func newCursor(lex *lexer.Lexer) *cursor {
	return &cursor{lex: lex, mode: &ModeCell{}}
}

// next returns the next token from the lexer or the pushback slot.
func (c *cursor) next(mode lexer.Mode) token.Token {
	if c.pushback != nil {
		tok := *c.pushback
		c.pushback = nil
		return tok
	}
	return c.lex.NextToken(mode)
}

// Peek returns the next token without consuming it, lexed in regexp
// context — correct everywhere a `/` would start a new expression
// (statement starts, after most operators, inside parens/brackets).
func (c *cursor) Peek() token.Token {
	tok := c.next(lexer.ModeRegExp)
	c.Unread(tok)
	return tok
}

// PeekOp is Peek, but lexes a leading `/` as division — correct right
// after an operand (e.g. before deciding whether `a / b` continues an
// expression or `a` ends a statement).
func (c *cursor) PeekOp() token.Token {
	tok := c.next(lexer.ModeOperator)
	c.Unread(tok)
	return tok
}

// Read consumes and returns the next token in regexp context.
func (c *cursor) Read() token.Token {
	return c.next(lexer.ModeRegExp)
}

// ReadOp consumes and returns the next token in operator (division) context.
func (c *cursor) ReadOp() token.Token {
	return c.next(lexer.ModeOperator)
}

// Unread pushes tok back so the next Read/Peek call returns it again.
// The protocol only ever needs to push back the single token it just
// looked at, so a second Unread before an intervening Read is a bug.
func (c *cursor) Unread(tok token.Token) {
	c.pushback = &tok
}

// Reread consumes the next token, lexed in the given mode, for a caller
// that has already peeked and confirmed it and just wants to advance
// past it (mirrors the teacher's dispatch-then-reread statement-parsing
// idiom). It does not check the token's type.
func (c *cursor) Reread(mode lexer.Mode) token.Token {
	return c.next(mode)
}
