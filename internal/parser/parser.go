// Package parser implements a hand-written, single-pass,
// recursive-descent parser for ES5 plus `let`, `for-of`, and
// `new.target`, producing the internal/ast tree consumed by
// pkg/estree.
package parser

import (
	"github.com/mhaller/es5parser/internal/ast"
	"github.com/mhaller/es5parser/internal/lexer"
	"github.com/mhaller/es5parser/internal/token"
)

// Parser walks a token stream (via cursor) and builds an ast.Script.
// It stops at the first structured error, matching spec.md §7 ("the
// parser in fact returns on the first error"); Errors() still returns a
// slice so callers don't need a type switch to get at it.
type Parser struct {
	cur *cursor
	cx  *parseContext

	lastEnd token.Posn
	err     *ParseError
}

// New constructs a Parser reading from l.
func New(l *lexer.Lexer) *Parser {
	return &Parser{cur: newCursor(l), cx: newParseContext()}
}

// Errors returns the accumulated parse errors (at most one: see Parser).
func (p *Parser) Errors() []*ParseError {
	if p.err == nil {
		return nil
	}
	return []*ParseError{p.err}
}

// ParseScript parses src as a complete program.
func ParseScript(src string) (*ast.Script, []*ParseError) {
	p := New(lexer.New(src))
	script, err := p.ParseScript()
	if err != nil {
		return nil, p.Errors()
	}
	return script, nil
}

// ParseScript parses the parser's token stream as a complete program.
func (p *Parser) ParseScript() (script *ast.Script, err error) {
	defer func() {
		if r := recover(); r != nil {
			if pe, ok := r.(*ParseError); ok {
				p.err = pe
				err = pe
				return
			}
			panic(r)
		}
	}()
	b := p.startNode()
	body := p.statementList(true)
	return &ast.Script{BaseNode: ast.BaseNode{Sp: b.finish()}, Body: body}, nil
}

// fail records e and aborts the current parse via panic, unwound by
// ParseScript's recover. This keeps every parsing method's signature
// free of a threaded error return, matching how deeply the grammar's
// helpers call each other (mirrors the teacher's panic/recover use in
// its own Pratt loop for unrecoverable token mismatches).
func (p *Parser) fail(e *ParseError) {
	panic(e)
}

func (p *Parser) failUnexpected(tok token.Token) {
	p.fail(&ParseError{Kind: ErrUnexpectedToken, Pos: tok.Span.Start, Token: tok})
}

// read consumes the next token in regexp context and tracks its end
// position for span back-patching.
func (p *Parser) read() token.Token {
	tok := p.cur.Read()
	p.lastEnd = tok.Span.End
	return tok
}

// readOp consumes the next token in operator (division) context.
func (p *Parser) readOp() token.Token {
	tok := p.cur.ReadOp()
	p.lastEnd = tok.Span.End
	return tok
}

func (p *Parser) peek() token.Token   { return p.cur.Peek() }
func (p *Parser) peekOp() token.Token { return p.cur.PeekOp() }
func (p *Parser) unread(tok token.Token) {
	p.cur.Unread(tok)
}

// expect consumes the next token and requires it to have type typ.
func (p *Parser) expect(typ token.Type) token.Token {
	tok := p.read()
	if tok.Type != typ {
		p.failUnexpected(tok)
	}
	return tok
}

// matches consumes and returns true if the next token has type typ,
// otherwise leaves the cursor untouched and returns false.
func (p *Parser) matches(typ token.Type) bool {
	if p.peek().Type != typ {
		return false
	}
	p.read()
	return true
}

// matchesOp is matches, peeking/reading in operator context.
func (p *Parser) matchesOp(typ token.Type) bool {
	if p.peekOp().Type != typ {
		return false
	}
	p.readOp()
	return true
}
