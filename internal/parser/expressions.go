package parser

import (
	"github.com/mhaller/es5parser/internal/ast"
	"github.com/mhaller/es5parser/internal/token"
)

// expression parses a full comma expression.
func (p *Parser) expression() ast.Expr {
	first := p.assignmentExpression()
	return p.moreExpressions(first)
}

// moreExpressions extends an already-parsed expression with `, expr`*
// into a Seq, or returns it unchanged if no comma follows.
func (p *Parser) moreExpressions(first ast.Expr) ast.Expr {
	if !p.matchesOp(token.COMMA) {
		return first
	}
	exprs := []ast.Expr{first}
	for {
		exprs = append(exprs, p.assignmentExpression())
		if !p.matchesOp(token.COMMA) {
			break
		}
	}
	return &ast.Seq{BaseNode: ast.BaseNode{Sp: token.Span{Start: first.Span().Start, End: p.lastEnd}}, Exprs: exprs}
}

// idExpression continues parsing an expression whose leading identifier
// has already been consumed by the statement dispatcher (spec.md §4.5's
// identifier fast path, used to tell a labelled statement from an
// expression statement without backtracking).
func (p *Parser) idExpression(id *ast.Id) ast.Expr {
	first := p.idAssignmentExpression(id)
	return p.moreExpressions(first)
}

func (p *Parser) idAssignmentExpression(id *ast.Id) ast.Expr {
	cond := p.idConditionalExpression(id)
	return p.moreAssignment(cond)
}

func (p *Parser) idConditionalExpression(id *ast.Id) ast.Expr {
	first := p.idUnaryExpression(id)
	test := p.moreInfix(first, 0)
	return p.moreConditional(test)
}

func (p *Parser) idUnaryExpression(id *ast.Id) ast.Expr {
	base := p.memberCallTail(id)
	return p.postfixOpt(base)
}

// assignmentExpression is AssignmentExpression: a conditional expression,
// optionally followed by `=` or a compound-assignment operator whose
// left side is reinterpreted through the cover grammar (spec.md §4.6).
func (p *Parser) assignmentExpression() ast.Expr {
	cond := p.conditionalExpression()
	return p.moreAssignment(cond)
}

func (p *Parser) moreAssignment(lhs ast.Expr) ast.Expr {
	tok := p.peekOp()
	if tok.Type == token.ASSIGN {
		p.readOp()
		target, reason, unsupported := toAssignPatt(lhs)
		if unsupported {
			p.fail(&ParseError{Kind: ErrUnsupportedFeature, Pos: lhs.Span().Start, Name: "destructuring assignment"})
		}
		if target == nil {
			p.fail(&ParseError{Kind: ErrInvalidLHS, Pos: lhs.Span().Start, Reason: reason})
		}
		rhs := p.assignmentExpression()
		return &ast.Assign{BaseNode: ast.BaseNode{Sp: token.Span{Start: lhs.Span().Start, End: p.lastEnd}}, Left: target, Right: rhs}
	}
	if op, ok := ast.ToAssop(tok.Type); ok {
		p.readOp()
		target, reason := toAssignTarget(lhs)
		if target == nil {
			p.fail(&ParseError{Kind: ErrInvalidLHS, Pos: lhs.Span().Start, Reason: reason})
		}
		rhs := p.assignmentExpression()
		return &ast.BinAssign{BaseNode: ast.BaseNode{Sp: token.Span{Start: lhs.Span().Start, End: p.lastEnd}}, Op: op, Left: target, Right: rhs}
	}
	return lhs
}

// conditionalExpression is the ternary `test ? cons : alt`, with the
// infix binary/logical climb feeding its test.
func (p *Parser) conditionalExpression() ast.Expr {
	test := p.infixExpression(0)
	return p.moreConditional(test)
}

// moreConditional parses the optional `? cons : alt` tail. Both branches
// reset allow_in to true regardless of the enclosing context, so a `?:`
// nested inside a for-head can still use `in` freely (spec.md §4.4's
// Open Question on allow_in scoping inside conditional branches).
func (p *Parser) moreConditional(test ast.Expr) ast.Expr {
	if !p.matchesOp(token.QUESTION) {
		return test
	}
	var cons, alt ast.Expr
	p.withAllowIn(true, func() error { cons = p.assignmentExpression(); return nil })
	p.expect(token.COLON)
	p.withAllowIn(true, func() error { alt = p.assignmentExpression(); return nil })
	return &ast.Cond{BaseNode: ast.BaseNode{Sp: token.Span{Start: test.Span().Start, End: p.lastEnd}}, Test: test, Cons: cons, Alt: alt}
}

// infixExpression parses a unary expression and climbs the binary/
// logical operator chain, stopping at any operator whose precedence is
// below minPrec (spec.md §4.1's Pratt-style precedence climbing over 11
// levels and 2 logical operators).
func (p *Parser) infixExpression(minPrec int) ast.Expr {
	left := p.unaryExpression()
	return p.moreInfix(left, minPrec)
}

func (p *Parser) moreInfix(left ast.Expr, minPrec int) ast.Expr {
	for {
		tok := p.peekOp()
		if logop, ok := ast.ToLogop(tok.Type); ok {
			prec := logop.Precedence()
			if prec < minPrec {
				return left
			}
			p.readOp()
			right := p.infixExpression(prec + 1)
			left = &ast.Logop{BaseNode: ast.BaseNode{Sp: token.Span{Start: left.Span().Start, End: p.lastEnd}}, Op: logop, Left: left, Right: right}
			continue
		}
		if binop, ok := ast.ToBinop(tok.Type, p.cx.allowIn); ok {
			prec := binop.Precedence()
			if prec < minPrec {
				return left
			}
			p.readOp()
			right := p.infixExpression(prec + 1)
			left = &ast.Binop{BaseNode: ast.BaseNode{Sp: token.Span{Start: left.Span().Start, End: p.lastEnd}}, Op: binop, Left: left, Right: right}
			continue
		}
		return left
	}
}

// unaryExpression handles prefix `++`/`--`, the unary operators, and
// otherwise falls through to a left-hand-side expression with an
// optional postfix `++`/`--`.
func (p *Parser) unaryExpression() ast.Expr {
	tok := p.peek()
	if tok.Type == token.INC || tok.Type == token.DEC {
		p.read()
		arg := p.unaryExpression()
		target, reason := toAssignTarget(arg)
		if target == nil {
			p.fail(&ParseError{Kind: ErrInvalidLHS, Pos: tok.Span.Start, Reason: reason})
		}
		sp := token.Span{Start: tok.Span.Start, End: p.lastEnd}
		if tok.Type == token.INC {
			return &ast.PreInc{BaseNode: ast.BaseNode{Sp: sp}, Arg: target}
		}
		return &ast.PreDec{BaseNode: ast.BaseNode{Sp: sp}, Arg: target}
	}
	if unop, ok := ast.ToUnop(tok.Type); ok {
		p.read()
		arg := p.unaryExpression()
		sp := token.Span{Start: tok.Span.Start, End: p.lastEnd}
		return &ast.Unop{BaseNode: ast.BaseNode{Sp: sp}, Op: unop, Arg: arg}
	}
	base := p.leftHandSideExpression()
	return p.postfixOpt(base)
}

// postfixOpt applies a trailing `++`/`--` to base, but only when no line
// terminator separates them (spec.md §4.5's restricted productions: ASI
// forces a newline-preceded `++`/`--` to start a new statement instead).
func (p *Parser) postfixOpt(base ast.Expr) ast.Expr {
	tok := p.peekOp()
	if tok.Newline || (tok.Type != token.INC && tok.Type != token.DEC) {
		return base
	}
	p.readOp()
	target, reason := toAssignTarget(base)
	if target == nil {
		p.fail(&ParseError{Kind: ErrInvalidLHS, Pos: base.Span().Start, Reason: reason})
	}
	sp := token.Span{Start: base.Span().Start, End: p.lastEnd}
	if tok.Type == token.INC {
		return &ast.PostInc{BaseNode: ast.BaseNode{Sp: sp}, Arg: target}
	}
	return &ast.PostDec{BaseNode: ast.BaseNode{Sp: sp}, Arg: target}
}

// leftHandSideExpression dispatches between a new-chain and a plain
// member/call chain rooted at a primary expression (spec.md §4.1's
// "new-chains").
func (p *Parser) leftHandSideExpression() ast.Expr {
	if p.peek().Type == token.NEW {
		base := p.newExpression()
		return p.memberCallTail(base)
	}
	base := p.primaryExpression()
	return p.memberCallTail(base)
}

// newExpression parses one `new` form: the `new.target` meta-property,
// or a `new` chain. A chain is a run of leading `new` tokens followed by
// one member-base and one batch of derefs, then up to as many
// immediately-adjacent argument lists as there are pending `new`s, each
// pairing with the rightmost still-unmatched `new`; any `new` left over
// once a deref or non-`(` token appears finalizes bare (`Callee, None`).
// Suffixes after that point are ordinary member/call suffixes applied by
// the caller's memberCallTail, not further new-pairings — so a deref
// sandwiched between a finished `new` and a later `(args)` correctly
// stops that `(args)` from being claimed as the `new`'s own.
func (p *Parser) newExpression() ast.Expr {
	b := p.startNode()
	tok := p.expect(token.NEW)
	if p.matches(token.DOT) {
		idTok := p.expect(token.IDENT)
		if !idTok.Name.IsContextual(token.ContextualTarget) {
			p.fail(&ParseError{Kind: ErrUnexpectedToken, Pos: idTok.Span.Start, Token: idTok})
		}
		if !p.cx.function {
			p.fail(&ParseError{Kind: ErrUnexpectedToken, Pos: tok.Span.Start, Token: tok})
		}
		return &ast.NewTarget{BaseNode: ast.BaseNode{Sp: b.finish()}}
	}

	// starts[i] is the position of the i-th `new` token, in source order;
	// the one closest to the member-base (the end of the slice) pairs
	// with the first argument list encountered.
	starts := []token.Posn{tok.Span.Start}
	for p.peek().Type == token.NEW {
		starts = append(starts, p.read().Span.Start)
	}

	base := p.primaryExpression()
	base = p.memberExpressionNoCall(base)

	i := len(starts) - 1
	for i >= 0 && p.peek().Type == token.LPAREN {
		args := p.arguments()
		base = &ast.New{BaseNode: ast.BaseNode{Sp: token.Span{Start: starts[i], End: p.lastEnd}}, Callee: base, Args: args, HasArgs: true}
		i--
	}
	for i >= 0 {
		base = &ast.New{BaseNode: ast.BaseNode{Sp: token.Span{Start: starts[i], End: p.lastEnd}}, Callee: base, Args: nil, HasArgs: false}
		i--
	}
	return base
}

// memberCallTail applies any run of `.name`, `[expr]`, and `(args)`
// suffixes to base.
func (p *Parser) memberCallTail(base ast.Expr) ast.Expr {
	for {
		tok := p.peekOp()
		switch tok.Type {
		case token.DOT:
			p.readOp()
			name := p.propertyName()
			base = &ast.Dot{BaseNode: ast.BaseNode{Sp: token.Span{Start: base.Span().Start, End: p.lastEnd}}, Object: base, Name: name}
		case token.LBRACK:
			p.readOp()
			var index ast.Expr
			p.withAllowIn(true, func() error { index = p.expression(); return nil })
			p.expect(token.RBRACK)
			base = &ast.Brack{BaseNode: ast.BaseNode{Sp: token.Span{Start: base.Span().Start, End: p.lastEnd}}, Object: base, Index: index}
		case token.LPAREN:
			args := p.arguments()
			base = &ast.Call{BaseNode: ast.BaseNode{Sp: token.Span{Start: base.Span().Start, End: p.lastEnd}}, Callee: base, Args: args}
		default:
			return base
		}
	}
}

// memberExpressionNoCall is memberCallTail without the `(args)` case,
// used for a `new` expression's callee.
func (p *Parser) memberExpressionNoCall(base ast.Expr) ast.Expr {
	for {
		tok := p.peekOp()
		switch tok.Type {
		case token.DOT:
			p.readOp()
			name := p.propertyName()
			base = &ast.Dot{BaseNode: ast.BaseNode{Sp: token.Span{Start: base.Span().Start, End: p.lastEnd}}, Object: base, Name: name}
		case token.LBRACK:
			p.readOp()
			var index ast.Expr
			p.withAllowIn(true, func() error { index = p.expression(); return nil })
			p.expect(token.RBRACK)
			base = &ast.Brack{BaseNode: ast.BaseNode{Sp: token.Span{Start: base.Span().Start, End: p.lastEnd}}, Object: base, Index: index}
		default:
			return base
		}
	}
}

// propertyName reads the name after a `.`: any IdentifierName, which
// includes reserved words (`obj.class` is legal even though `class` is
// never a legal binding).
func (p *Parser) propertyName() string {
	tok := p.read()
	if tok.Type == token.IDENT {
		return tok.Name.Text
	}
	if tok.Type.IsKeyword() {
		return tok.Type.String()
	}
	p.failUnexpected(tok)
	return ""
}

// arguments parses a parenthesized, comma-separated argument list.
// `in` is always allowed inside it, regardless of the enclosing context.
func (p *Parser) arguments() []ast.Expr {
	p.expect(token.LPAREN)
	var args []ast.Expr
	if p.matches(token.RPAREN) {
		return args
	}
	for {
		args = append(args, p.withAllowInAssignment())
		if !p.matches(token.COMMA) {
			break
		}
	}
	p.expect(token.RPAREN)
	return args
}

func (p *Parser) withAllowInAssignment() ast.Expr {
	var e ast.Expr
	p.withAllowIn(true, func() error { e = p.assignmentExpression(); return nil })
	return e
}

// primaryExpression parses the non-recursive leaves of the expression
// grammar plus the array/object literals and function expressions.
func (p *Parser) primaryExpression() ast.Expr {
	b := p.startNode()
	tok := p.peek()
	switch tok.Type {
	case token.THIS:
		p.read()
		return &ast.This{BaseNode: ast.BaseNode{Sp: b.finish()}}
	case token.NULL:
		p.read()
		return &ast.Null{BaseNode: ast.BaseNode{Sp: b.finish()}}
	case token.TRUE:
		p.read()
		return &ast.True{BaseNode: ast.BaseNode{Sp: b.finish()}}
	case token.FALSE:
		p.read()
		return &ast.False{BaseNode: ast.BaseNode{Sp: b.finish()}}
	case token.NUMBER:
		p.read()
		return &ast.Number{BaseNode: ast.BaseNode{Sp: b.finish()}, Value: tok.NumberValue, Raw: tok.Literal}
	case token.STRING:
		p.read()
		return &ast.String{BaseNode: ast.BaseNode{Sp: b.finish()}, Value: tok.StringValue, Raw: tok.Literal}
	case token.REGEXP:
		p.read()
		return &ast.RegExp{BaseNode: ast.BaseNode{Sp: b.finish()}, Pattern: tok.RegExpPattern, Flags: tok.RegExpFlags}
	case token.IDENT:
		p.read()
		return &ast.Id{BaseNode: ast.BaseNode{Sp: b.finish()}, Name: tok.Name}
	case token.LPAREN:
		p.read()
		var inner ast.Expr
		p.withAllowIn(true, func() error { inner = p.expression(); return nil })
		p.expect(token.RPAREN)
		return inner
	case token.LBRACK:
		return p.arrayLiteral()
	case token.LBRACE:
		return p.objectLiteral()
	case token.FUNCTION:
		fun := p.function()
		return &ast.FunExpr{BaseNode: ast.BaseNode{Sp: b.finish()}, Fun: fun}
	default:
		bad := p.read()
		p.failUnexpected(bad)
		return nil
	}
}

// arrayLiteral parses `[ (Elision? AssignmentExpression)* Elision? ]`; a
// nil element marks an elision (`[1,,3]`), and a trailing comma before
// `]` does not introduce one.
func (p *Parser) arrayLiteral() ast.Expr {
	b := p.startNode()
	p.expect(token.LBRACK)
	var elements []ast.Expr
	for !p.matches(token.RBRACK) {
		if p.matches(token.COMMA) {
			elements = append(elements, nil)
			continue
		}
		elements = append(elements, p.withAllowInAssignment())
		if !p.matches(token.COMMA) {
			p.expect(token.RBRACK)
			break
		}
	}
	return &ast.Arr{BaseNode: ast.BaseNode{Sp: b.finish()}, Elements: elements}
}

// objectLiteral parses `{ Property (, Property)* ,? }` (the resolution
// for the trailing-comma Open Question: it checks for `}` right after
// consuming a comma, rather than disallowing a comma before `}`).
func (p *Parser) objectLiteral() ast.Expr {
	b := p.startNode()
	p.expect(token.LBRACE)
	var props []ast.Prop
	for !p.matches(token.RBRACE) {
		props = append(props, p.objectProperty())
		if p.matches(token.COMMA) {
			continue
		}
		p.expect(token.RBRACE)
		break
	}
	return &ast.Obj{BaseNode: ast.BaseNode{Sp: b.finish()}, Props: props}
}

// objectProperty parses one property: an ordinary `key: value`, or a
// `get`/`set` accessor, disambiguated by whether `get`/`set` is itself
// immediately followed by a property key (`{get: 1}` uses `get` as a
// plain key; `{get x() {}}` is an accessor).
func (p *Parser) objectProperty() ast.Prop {
	b := p.startNode()
	tok := p.peek()
	if tok.Type == token.IDENT && (tok.Name.IsContextual(token.ContextualGet) || tok.Name.IsContextual(token.ContextualSet)) {
		kwTok := p.read()
		next := p.peek()
		if next.Type != token.COLON && next.Type != token.COMMA && next.Type != token.RBRACE {
			key := p.propertyKey()
			fun := p.accessorFunction()
			kind := ast.PropGet
			if kwTok.Name.IsContextual(token.ContextualSet) {
				kind = ast.PropSet
			}
			return ast.Prop{BaseNode: ast.BaseNode{Sp: b.finish()}, Key: key, Kind: kind, Fun: fun}
		}
		key := ast.PropKey{BaseNode: ast.BaseNode{Sp: kwTok.Span}, Kind: ast.PropKeyIdent, Name: kwTok.Name.Text}
		p.expect(token.COLON)
		val := p.withAllowInAssignment()
		return ast.Prop{BaseNode: ast.BaseNode{Sp: b.finish()}, Key: key, Kind: ast.PropInit, Value: val}
	}
	key := p.propertyKey()
	p.expect(token.COLON)
	val := p.withAllowInAssignment()
	return ast.Prop{BaseNode: ast.BaseNode{Sp: b.finish()}, Key: key, Kind: ast.PropInit, Value: val}
}

// propertyKey parses an object-literal key: a string, a number, or an
// IdentifierName (which, like a `.name` suffix, admits reserved words).
func (p *Parser) propertyKey() ast.PropKey {
	b := p.startNode()
	tok := p.peek()
	switch tok.Type {
	case token.STRING:
		p.read()
		return ast.PropKey{BaseNode: ast.BaseNode{Sp: b.finish()}, Kind: ast.PropKeyString, Str: tok.StringValue}
	case token.NUMBER:
		p.read()
		return ast.PropKey{BaseNode: ast.BaseNode{Sp: b.finish()}, Kind: ast.PropKeyNumber, Num: tok.NumberValue}
	default:
		name := p.propertyName()
		return ast.PropKey{BaseNode: ast.BaseNode{Sp: b.finish()}, Kind: ast.PropKeyIdent, Name: name}
	}
}

// accessorFunction parses a get/set accessor's parameter list and body,
// function-scoped exactly like an ordinary function (spec.md §4.4).
func (p *Parser) accessorFunction() *ast.Fun {
	b := p.startNode()
	params := p.formalParameters()
	p.expect(token.LBRACE)
	outer := p.cx
	p.cx = newParseContext()
	p.cx.function = true
	body := p.statementList(true)
	p.cx = outer
	p.expect(token.RBRACE)
	return &ast.Fun{BaseNode: ast.BaseNode{Sp: b.finish()}, Params: params, Body: body}
}
