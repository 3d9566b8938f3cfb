package parser

import (
	"github.com/mhaller/es5parser/internal/ast"
	"github.com/mhaller/es5parser/internal/token"
)

// forStatement dispatches on what follows `for (` to the four head
// shapes the grammar distinguishes: a `var` declaration list, a `let`
// declaration list, a bare `;` (no head at all), or a plain expression
// (spec.md §4.5's for-head disambiguation).
func (p *Parser) forStatement() ast.Stmt {
	b := p.startNode()
	p.expect(token.FOR)
	p.expect(token.LPAREN)
	tok := p.peek()
	switch {
	case tok.Type == token.VAR:
		return p.finishFor(b, p.forVar())
	case tok.Type == token.IDENT && tok.Name.IsContextual(token.ContextualLet):
		return p.finishFor(b, p.forLet())
	case tok.Type == token.CONST:
		p.read()
		p.fail(&ParseError{Kind: ErrUnsupportedFeature, Pos: tok.Span.Start, Name: "const"})
		return nil
	case tok.Type == token.SEMICOLON:
		p.expect(token.SEMICOLON)
		return p.finishFor(b, p.moreFor(nil))
	default:
		return p.finishFor(b, p.forExpr())
	}
}

func (p *Parser) finishFor(b nodeBuilder, stmt ast.Stmt) ast.Stmt {
	switch s := stmt.(type) {
	case *ast.For:
		s.Sp = b.finish()
	case *ast.ForIn:
		s.Sp = b.finish()
	case *ast.ForOf:
		s.Sp = b.finish()
	}
	return stmt
}

func (p *Parser) forVar() ast.Stmt {
	start := p.peek().Span.Start
	p.expect(token.VAR)
	lhs := p.pattern()
	return p.forHeadCommon(start, lhs, func(dStart token.Posn, dtors []*ast.Dtor) ast.ForHead {
		return &ast.ForHeadVar{BaseNode: ast.BaseNode{Sp: token.Span{Start: dStart, End: p.lastEnd}}, Dtors: dtors}
	}, func(dStart token.Posn, lhs ast.Patt) ast.ForInHead {
		return &ast.ForInHeadVar{BaseNode: ast.BaseNode{Sp: token.Span{Start: dStart, End: p.lastEnd}}, Lhs: lhs}
	}, func(dStart token.Posn, lhs ast.Patt) ast.ForOfHead {
		return &ast.ForOfHeadVar{BaseNode: ast.BaseNode{Sp: token.Span{Start: dStart, End: p.lastEnd}}, Lhs: lhs}
	}, func(dStart token.Posn, id *ast.Id, init ast.Expr) ast.ForInHead {
		return &ast.ForInHeadVarInit{BaseNode: ast.BaseNode{Sp: token.Span{Start: dStart, End: p.lastEnd}}, Lhs: id, Init: init}
	})
}

func (p *Parser) forLet() ast.Stmt {
	start := p.peek().Span.Start
	p.read() // the `let` contextual keyword, lexed as IDENT
	lhs := p.pattern()
	return p.forHeadCommon(start, lhs, func(dStart token.Posn, dtors []*ast.Dtor) ast.ForHead {
		return &ast.ForHeadLet{BaseNode: ast.BaseNode{Sp: token.Span{Start: dStart, End: p.lastEnd}}, Dtors: dtors}
	}, func(dStart token.Posn, lhs ast.Patt) ast.ForInHead {
		return &ast.ForInHeadLet{BaseNode: ast.BaseNode{Sp: token.Span{Start: dStart, End: p.lastEnd}}, Lhs: lhs}
	}, func(dStart token.Posn, lhs ast.Patt) ast.ForOfHead {
		return &ast.ForOfHeadLet{BaseNode: ast.BaseNode{Sp: token.Span{Start: dStart, End: p.lastEnd}}, Lhs: lhs}
	}, nil) // `let` has no legacy VarInit form
}

// forHeadCommon implements the shared var/let dispatch: after the
// binding keyword and the first pattern, decide between a C-style head
// (optional `= init`, then `;`), a for-in head (optionally the legacy
// `= init in` form for a simple identifier under `var`), or a for-of head.
func (p *Parser) forHeadCommon(
	start token.Posn, lhs ast.Patt,
	mkHead func(token.Posn, []*ast.Dtor) ast.ForHead,
	mkIn func(token.Posn, ast.Patt) ast.ForInHead,
	mkOf func(token.Posn, ast.Patt) ast.ForOfHead,
	mkVarInit func(token.Posn, *ast.Id, ast.Expr) ast.ForInHead,
) ast.Stmt {
	id, isSimple := lhs.(*ast.Id)
	tok := p.peek()
	switch {
	case tok.Type == token.ASSIGN:
		p.expect(token.ASSIGN)
		var rhs ast.Expr
		p.withAllowIn(false, func() error { rhs = p.assignmentExpression(); return nil })
		if isSimple && mkVarInit != nil && p.peek().Type == token.IN {
			p.expect(token.IN)
			head := mkVarInit(start, id, rhs)
			return p.moreForIn(head)
		}
		dtor := &ast.Dtor{BaseNode: ast.BaseNode{Sp: token.Span{Start: start, End: p.lastEnd}}, Lhs: lhs, Init: rhs}
		return p.moreFor(p.moreForHead(start, dtor, mkHead))
	case tok.Type == token.IN:
		p.expect(token.IN)
		return p.moreForIn(mkIn(start, lhs))
	case tok.Type == token.IDENT && tok.Name.IsContextual(token.ContextualOf):
		p.read()
		return p.moreForOf(mkOf(start, lhs))
	default:
		if _, compound := lhs.(*ast.CompoundPatt); compound {
			p.fail(&ParseError{Kind: ErrUnsupportedFeature, Pos: start, Name: "destructuring without initializer"})
		}
		dtor := &ast.Dtor{BaseNode: ast.BaseNode{Sp: token.Span{Start: start, End: p.lastEnd}}, Lhs: lhs, Init: nil}
		return p.moreFor(p.moreForHead(start, dtor, mkHead))
	}
}

func (p *Parser) forExpr() ast.Stmt {
	start := p.peek().Span.Start
	var lhs ast.Expr
	p.withAllowIn(false, func() error { lhs = p.expression(); return nil })
	tok := p.peek()
	switch {
	case tok.Type == token.SEMICOLON:
		p.expect(token.SEMICOLON)
		head := &ast.ForHeadExpr{BaseNode: ast.BaseNode{Sp: token.Span{Start: start, End: p.lastEnd}}, Expr: lhs}
		return p.moreFor(head)
	case tok.Type == token.IN:
		p.expect(token.IN)
		target, reason := toAssignTarget(lhs)
		if target == nil {
			p.fail(&ParseError{Kind: ErrInvalidLHS, Pos: start, Reason: reason})
		}
		head := &ast.ForInHeadPatt{BaseNode: ast.BaseNode{Sp: token.Span{Start: start, End: p.lastEnd}}, Target: target}
		return p.moreForIn(head)
	case tok.Type == token.IDENT && tok.Name.IsContextual(token.ContextualOf):
		p.read()
		target, reason := toAssignTarget(lhs)
		if target == nil {
			p.fail(&ParseError{Kind: ErrInvalidLHS, Pos: start, Reason: reason})
		}
		head := &ast.ForOfHeadPatt{BaseNode: ast.BaseNode{Sp: token.Span{Start: start, End: p.lastEnd}}, Target: target}
		return p.moreForOf(head)
	default:
		p.failUnexpected(p.read())
		return nil
	}
}

// moreForHead parses the remaining C-style declarator list (`, name =
// init`*) and the head's closing `;`, with `in` suppressed throughout
// (spec.md §4.4: `allow_in=false` inside a for-head).
func (p *Parser) moreForHead(start token.Posn, first *ast.Dtor, mkHead func(token.Posn, []*ast.Dtor) ast.ForHead) ast.ForHead {
	dtors := []*ast.Dtor{first}
	p.withAllowIn(false, func() error {
		for p.matches(token.COMMA) {
			dtors = append(dtors, p.declarator())
		}
		return nil
	})
	p.expect(token.SEMICOLON)
	return mkHead(start, dtors)
}

func (p *Parser) moreFor(head ast.ForHead) ast.Stmt {
	test := p.expressionOptSemi()
	var update ast.Expr
	if !p.matches(token.RPAREN) {
		p.withAllowIn(true, func() error { update = p.expression(); return nil })
		p.expect(token.RPAREN)
	}
	body := p.iterationBody()
	return &ast.For{Head: head, Test: test, Update: update, Body: body}
}

func (p *Parser) moreForIn(head ast.ForInHead) ast.Stmt {
	var obj ast.Expr
	p.withAllowIn(true, func() error { obj = p.assignmentExpression(); return nil })
	p.expect(token.RPAREN)
	body := p.iterationBody()
	return &ast.ForIn{Head: head, Obj: obj, Body: body}
}

func (p *Parser) moreForOf(head ast.ForOfHead) ast.Stmt {
	var iter ast.Expr
	p.withAllowIn(true, func() error { iter = p.assignmentExpression(); return nil })
	p.expect(token.RPAREN)
	body := p.iterationBody()
	return &ast.ForOf{Head: head, Iter: iter, Body: body}
}

func (p *Parser) expressionOptSemi() ast.Expr {
	if p.matches(token.SEMICOLON) {
		return nil
	}
	var expr ast.Expr
	p.withAllowIn(true, func() error { expr = p.expression(); return nil })
	p.expect(token.SEMICOLON)
	return expr
}
