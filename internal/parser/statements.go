package parser

import (
	"github.com/mhaller/es5parser/internal/ast"
	"github.com/mhaller/es5parser/internal/token"
)

// statementList parses StmtListItem* until a token that cannot start
// one (`}` or EOF). It is shared by every brace-delimited body; only the
// Script and FunctionBody callers pass detectDirectives, since a
// directive prologue is only meaningful at those two positions
// (spec.md §4.3/§9) — an ordinary block like `if (x) { "use strict"; }`
// must not promote the shared mode cell.
func (p *Parser) statementList(detectDirectives bool) []ast.StmtListItem {
	var items []ast.StmtListItem
	inPrologue := detectDirectives
	for {
		tok := p.peek()
		if tok.Type == token.RBRACE || tok.Type == token.EOF {
			return items
		}
		item := p.declarationOrStatement()
		items = append(items, item)
		if inPrologue {
			inPrologue = p.directivePrologueStep(item)
		}
	}
}

// directivePrologueStep inspects one just-parsed statement list item for
// directive-prologue membership (a bare string-literal expression
// statement), promoting strict mode on `"use strict"`. It returns
// whether the prologue can still continue with the next item.
func (p *Parser) directivePrologueStep(item ast.StmtListItem) bool {
	stmt, ok := item.(*ast.ExprStmt)
	if !ok {
		return false
	}
	str, ok := stmt.Expr.(*ast.String)
	if !ok {
		return false
	}
	if str.Raw == `"use strict"` || str.Raw == `'use strict'` {
		p.cur.mode.Strict = true
	}
	return true
}

// declarationOrStatement dispatches to the one recognized declaration
// form (function) or falls through to statement.
func (p *Parser) declarationOrStatement() ast.StmtListItem {
	if p.peek().Type == token.FUNCTION {
		return p.functionDeclaration()
	}
	return p.statement()
}

func (p *Parser) functionDeclaration() *ast.FunDecl {
	b := p.startNode()
	fun := p.function()
	return &ast.FunDecl{BaseNode: ast.BaseNode{Sp: b.finish()}, Fun: fun}
}

// function parses the shared shape of a function declaration or
// expression: `function` Identifier? `(` Params `)` `{` Body `}`. It
// swaps in a fresh, function-scoped parseContext for the body, per
// spec.md §4.4 (iteration/switch/labels do not cross a function
// boundary; the function flag enables `return` and narrows `new.target`).
func (p *Parser) function() *ast.Fun {
	b := p.startNode()
	p.expect(token.FUNCTION)
	var id *ast.Id
	if p.peek().Type == token.IDENT {
		id = p.bindingID()
	}
	params := p.formalParameters()
	p.expect(token.LBRACE)
	outer := p.cx
	p.cx = newParseContext()
	p.cx.function = true
	body := p.statementList(true)
	p.cx = outer
	p.expect(token.RBRACE)
	return &ast.Fun{BaseNode: ast.BaseNode{Sp: b.finish()}, Id: id, Params: params, Body: body}
}

func (p *Parser) formalParameters() []ast.Patt {
	p.expect(token.LPAREN)
	var params []ast.Patt
	if p.matches(token.RPAREN) {
		return params
	}
	for {
		params = append(params, p.pattern())
		if !p.matches(token.COMMA) {
			break
		}
	}
	p.expect(token.RPAREN)
	return params
}

// pattern parses a binding pattern: a plain identifier, or a
// destructuring pattern that is recognized (so the parser doesn't
// mis-read `[`/`{` as something else) but always rejected, since
// destructuring beyond identifiers is a non-goal here.
func (p *Parser) pattern() ast.Patt {
	if p.peek().Type == token.IDENT {
		return p.bindingID()
	}
	b := p.startNode()
	switch p.peek().Type {
	case token.LBRACK, token.LBRACE:
		p.read()
		p.fail(&ParseError{Kind: ErrUnsupportedFeature, Pos: b.start, Name: "destructuring"})
	}
	tok := p.read()
	p.failUnexpected(tok)
	return &ast.CompoundPatt{BaseNode: ast.BaseNode{Sp: b.finish()}}
}

// bindingID reads an identifier destined to be bound (a var/let/param
// name or a catch parameter) and enforces the strict-mode binding
// restriction (spec.md §3).
func (p *Parser) bindingID() *ast.Id {
	b := p.startNode()
	id := p.id()
	if p.cx2Strict() && id.Name.IllegalStrictBinding() {
		p.fail(&ParseError{Kind: ErrIllegalStrictBinding, Pos: b.start, Name: id.Name.Text})
	}
	return id
}

// cx2Strict reports whether the shared mode cell is currently strict.
func (p *Parser) cx2Strict() bool { return p.cur.mode.Strict }

// id reads a plain IdentifierReference: any IDENT token, contextual
// keywords included (spec.md §9: contextual keywords are still plain
// identifiers everywhere else). It rejects every other token type.
func (p *Parser) id() *ast.Id {
	b := p.startNode()
	tok := p.read()
	if tok.Type != token.IDENT {
		p.failUnexpected(tok)
	}
	return &ast.Id{BaseNode: ast.BaseNode{Sp: b.finishAt(tok.Span.End)}, Name: tok.Name}
}

// idOpt reads an identifier if one follows, else leaves the cursor
// untouched and returns nil.
func (p *Parser) idOpt() *ast.Id {
	tok := p.peek()
	if tok.Type != token.IDENT {
		return nil
	}
	return p.id()
}

// statement parses any statement form other than a declaration.
func (p *Parser) statement() ast.Stmt {
	tok := p.peek()
	switch tok.Type {
	case token.LBRACE:
		return p.blockStatement()
	case token.VAR:
		return p.varStatement()
	case token.SEMICOLON:
		return p.emptyStatement()
	case token.IF:
		return p.ifStatement()
	case token.CONTINUE:
		return p.continueStatement()
	case token.BREAK:
		return p.breakStatement()
	case token.RETURN:
		return p.returnStatement()
	case token.WITH:
		return p.withStatement()
	case token.SWITCH:
		return p.switchStatement()
	case token.THROW:
		return p.throwStatement()
	case token.TRY:
		return p.tryStatement()
	case token.WHILE:
		return p.whileStatement()
	case token.DO:
		return p.doStatement()
	case token.FOR:
		return p.forStatement()
	case token.DEBUGGER:
		return p.debuggerStatement()
	case token.CONST:
		p.read()
		p.fail(&ParseError{Kind: ErrUnsupportedFeature, Pos: tok.Span.Start, Name: "const"})
		return nil
	case token.IDENT:
		id := p.id()
		return p.idStatement(id)
	default:
		return p.expressionStatement()
	}
}

// idStatement handles the identifier-led fast path: either a labelled
// statement (`id:`) or an expression statement starting with id.
func (p *Parser) idStatement(id *ast.Id) ast.Stmt {
	if p.peekOp().Type == token.COLON {
		return p.labelledStatement(id)
	}
	b := p.startNodeAt(id.Sp.Start)
	expr := p.idExpression(id)
	semi := p.endWithAutoSemi(true)
	return &ast.ExprStmt{BaseNode: ast.BaseNode{Sp: b.finish()}, Expr: expr, Semi: semi}
}

// labelledStatement collects consecutive `Identifier ':'` pairs into one
// Labelled node, per the original grammar's loop that stops as soon as
// it sees an identifier not followed by `:`.
func (p *Parser) labelledStatement(first *ast.Id) ast.Stmt {
	b := p.startNodeAt(first.Sp.Start)
	labels := []*ast.Id{first}
	p.expect(token.COLON)
	var exprID *ast.Id
	for {
		tok := p.peek()
		if tok.Type != token.IDENT {
			break
		}
		candidate := p.id()
		if p.peekOp().Type != token.COLON {
			exprID = candidate
			break
		}
		p.expect(token.COLON)
		labels = append(labels, candidate)
	}
	if exprID != nil {
		stmt, _ := p.withLabels(labels, labelStatement, func() (ast.Stmt, error) {
			return p.idStatement(exprID), nil
		})
		return &ast.Labelled{BaseNode: ast.BaseNode{Sp: b.finish()}, Labels: labels, Body: stmt}
	}
	typ := labelStatement
	if p.startsIteration() {
		typ = labelIteration
	}
	stmt, _ := p.withLabels(labels, typ, func() (ast.Stmt, error) {
		return p.statement(), nil
	})
	return &ast.Labelled{BaseNode: ast.BaseNode{Sp: b.finish()}, Labels: labels, Body: stmt}
}

// startsIteration reports whether the upcoming statement is one of the
// loop forms, so a label attached to it is a valid `continue` target.
func (p *Parser) startsIteration() bool {
	switch p.peek().Type {
	case token.FOR, token.WHILE, token.DO:
		return true
	default:
		return false
	}
}

func (p *Parser) expressionStatement() ast.Stmt {
	b := p.startNode()
	var expr ast.Expr
	p.withAllowIn(true, func() error {
		expr = p.expression()
		return nil
	})
	semi := p.endWithAutoSemi(true)
	return &ast.ExprStmt{BaseNode: ast.BaseNode{Sp: b.finish()}, Expr: expr, Semi: semi}
}

func (p *Parser) blockStatement() ast.Stmt {
	b := p.startNode()
	p.expect(token.LBRACE)
	body := p.statementList(false)
	p.expect(token.RBRACE)
	return &ast.Block{BaseNode: ast.BaseNode{Sp: b.finish()}, Body: body}
}

func (p *Parser) varStatement() ast.Stmt {
	b := p.startNode()
	p.expect(token.VAR)
	dtors := p.declaratorList()
	semi := p.endWithAutoSemi(true)
	return &ast.VarStmt{BaseNode: ast.BaseNode{Sp: b.finish()}, Dtors: dtors, Semi: semi}
}

func (p *Parser) declaratorList() []*ast.Dtor {
	dtors := []*ast.Dtor{p.declarator()}
	for p.matches(token.COMMA) {
		dtors = append(dtors, p.declarator())
	}
	return dtors
}

func (p *Parser) declarator() *ast.Dtor {
	b := p.startNode()
	lhs := p.pattern()
	var init ast.Expr
	if p.matches(token.ASSIGN) {
		init = p.assignmentExpression()
	} else if _, compound := lhs.(*ast.CompoundPatt); compound {
		p.fail(&ParseError{Kind: ErrUnsupportedFeature, Pos: b.start, Name: "destructuring without initializer"})
	}
	return &ast.Dtor{BaseNode: ast.BaseNode{Sp: b.finish()}, Lhs: lhs, Init: init}
}

func (p *Parser) emptyStatement() ast.Stmt {
	b := p.startNode()
	p.expect(token.SEMICOLON)
	return &ast.Empty{BaseNode: ast.BaseNode{Sp: b.finish()}}
}

func (p *Parser) ifStatement() ast.Stmt {
	b := p.startNode()
	p.expect(token.IF)
	test := p.parenExpression()
	cons := p.statement()
	var alt ast.Stmt
	if p.matches(token.ELSE) {
		alt = p.statement()
	}
	return &ast.If{BaseNode: ast.BaseNode{Sp: b.finish()}, Test: test, Cons: cons, Alt: alt}
}

// iterationBody parses a loop's body statement with the iteration flag
// set, restoring it afterward (spec.md §4.4).
func (p *Parser) iterationBody() ast.Stmt {
	stmt, _ := p.withIteration(func() (ast.Stmt, error) { return p.statement(), nil })
	return stmt
}

func (p *Parser) doStatement() ast.Stmt {
	b := p.startNode()
	p.expect(token.DO)
	body := p.iterationBody()
	p.expect(token.WHILE)
	test := p.parenExpression()
	semi := p.endWithAutoSemi(false)
	return &ast.DoWhile{BaseNode: ast.BaseNode{Sp: b.finish()}, Body: body, Test: test, Semi: semi}
}

func (p *Parser) whileStatement() ast.Stmt {
	b := p.startNode()
	p.expect(token.WHILE)
	test := p.parenExpression()
	body := p.iterationBody()
	return &ast.While{BaseNode: ast.BaseNode{Sp: b.finish()}, Test: test, Body: body}
}

func (p *Parser) switchStatement() ast.Stmt {
	b := p.startNode()
	p.expect(token.SWITCH)
	disc := p.parenExpression()
	outerSwitch := p.cx.switchSt
	p.cx.switchSt = true
	cases := p.switchCases()
	p.cx.switchSt = outerSwitch
	return &ast.Switch{BaseNode: ast.BaseNode{Sp: b.finish()}, Disc: disc, Cases: cases}
}

func (p *Parser) switchCases() []*ast.Case {
	p.expect(token.LBRACE)
	var cases []*ast.Case
	foundDefault := false
	for {
		switch p.peek().Type {
		case token.CASE:
			cases = append(cases, p.caseClause())
		case token.DEFAULT:
			if foundDefault {
				tok := p.read()
				p.fail(&ParseError{Kind: ErrDuplicateDefault, Pos: tok.Span.Start, Token: tok})
			}
			foundDefault = true
			cases = append(cases, p.defaultClause())
		default:
			p.expect(token.RBRACE)
			return cases
		}
	}
}

func (p *Parser) caseClause() *ast.Case {
	b := p.startNode()
	p.expect(token.CASE)
	test := p.withAllowInExpr()
	p.expect(token.COLON)
	body := p.caseBody()
	return &ast.Case{BaseNode: ast.BaseNode{Sp: b.finish()}, Test: &test, Body: body}
}

func (p *Parser) defaultClause() *ast.Case {
	b := p.startNode()
	p.expect(token.DEFAULT)
	p.expect(token.COLON)
	body := p.caseBody()
	return &ast.Case{BaseNode: ast.BaseNode{Sp: b.finish()}, Test: nil, Body: body}
}

func (p *Parser) caseBody() []ast.StmtListItem {
	var items []ast.StmtListItem
	for {
		switch p.peek().Type {
		case token.CASE, token.DEFAULT, token.RBRACE:
			return items
		default:
			items = append(items, p.declarationOrStatement())
		}
	}
}

func (p *Parser) withAllowInExpr() (expr ast.Expr) {
	p.withAllowIn(true, func() error {
		expr = p.expression()
		return nil
	})
	return expr
}

func (p *Parser) returnStatement() ast.Stmt {
	b := p.startNode()
	tok := p.expect(token.RETURN)
	var arg ast.Expr
	if p.hasArgSameLine() {
		arg = p.withAllowInExpr()
	}
	semi := p.endWithAutoSemi(true)
	if !p.cx.function {
		p.fail(&ParseError{Kind: ErrTopLevelReturn, Pos: tok.Span.Start, Token: tok})
	}
	return &ast.Return{BaseNode: ast.BaseNode{Sp: b.finish()}, Arg: arg, Semi: semi}
}

func (p *Parser) breakStatement() ast.Stmt {
	b := p.startNode()
	tok := p.expect(token.BREAK)
	var label *ast.Id
	if p.hasArgSameLine() {
		label = p.id()
		if _, ok := p.cx.labels[label.Name.Text]; !ok {
			p.fail(&ParseError{Kind: ErrInvalidLabel, Pos: label.Sp.Start, Name: label.Name.Text})
		}
	} else if !p.cx.iteration && !p.cx.switchSt {
		p.fail(&ParseError{Kind: ErrIllegalBreak, Pos: tok.Span.Start, Token: tok})
	}
	semi := p.endWithAutoSemi(true)
	return &ast.Break{BaseNode: ast.BaseNode{Sp: b.finish()}, Label: label, Semi: semi}
}

func (p *Parser) continueStatement() ast.Stmt {
	b := p.startNode()
	tok := p.expect(token.CONTINUE)
	var label *ast.Id
	if p.hasArgSameLine() {
		label = p.id()
		typ, ok := p.cx.labels[label.Name.Text]
		if !ok {
			p.fail(&ParseError{Kind: ErrInvalidLabel, Pos: label.Sp.Start, Name: label.Name.Text})
		}
		if typ != labelIteration {
			p.fail(&ParseError{Kind: ErrInvalidLabelType, Pos: label.Sp.Start, Name: label.Name.Text})
		}
	} else if !p.cx.iteration {
		p.fail(&ParseError{Kind: ErrIllegalContinue, Pos: tok.Span.Start, Token: tok})
	}
	semi := p.endWithAutoSemi(true)
	return &ast.Cont{BaseNode: ast.BaseNode{Sp: b.finish()}, Label: label, Semi: semi}
}

func (p *Parser) withStatement() ast.Stmt {
	b := p.startNode()
	tok := p.expect(token.WITH)
	if p.cx2Strict() {
		p.fail(&ParseError{Kind: ErrStrictWith, Pos: tok.Span.Start, Token: tok})
	}
	obj := p.parenExpression()
	body := p.statement()
	return &ast.With{BaseNode: ast.BaseNode{Sp: b.finish()}, Obj: obj, Body: body}
}

func (p *Parser) throwStatement() ast.Stmt {
	b := p.startNode()
	tok := p.expect(token.THROW)
	if !p.hasArgSameLine() {
		p.fail(&ParseError{Kind: ErrThrowArgument, Pos: tok.Span.Start, Token: tok})
	}
	arg := p.withAllowInExpr()
	semi := p.endWithAutoSemi(true)
	return &ast.Throw{BaseNode: ast.BaseNode{Sp: b.finish()}, Arg: arg, Semi: semi}
}

func (p *Parser) block() []ast.StmtListItem {
	p.expect(token.LBRACE)
	body := p.statementList(false)
	p.expect(token.RBRACE)
	return body
}

func (p *Parser) tryStatement() ast.Stmt {
	b := p.startNode()
	p.expect(token.TRY)
	body := p.block()
	switch p.peek().Type {
	case token.CATCH, token.FINALLY:
	default:
		tok := p.read()
		p.fail(&ParseError{Kind: ErrOrphanTry, Pos: tok.Span.Start, Token: tok})
	}
	catch := p.catchOpt()
	finally := p.finallyOpt()
	return &ast.Try{BaseNode: ast.BaseNode{Sp: b.finish()}, Body: body, Catch: catch, Finally: finally}
}

func (p *Parser) catchOpt() *ast.Catch {
	if p.peek().Type != token.CATCH {
		return nil
	}
	b := p.startNode()
	p.expect(token.CATCH)
	p.expect(token.LPAREN)
	param := p.pattern()
	p.expect(token.RPAREN)
	body := p.block()
	return &ast.Catch{BaseNode: ast.BaseNode{Sp: b.finish()}, Param: param, Body: body}
}

func (p *Parser) finallyOpt() []ast.StmtListItem {
	if p.peek().Type != token.FINALLY {
		return nil
	}
	p.expect(token.FINALLY)
	return p.block()
}

func (p *Parser) debuggerStatement() ast.Stmt {
	b := p.startNode()
	p.expect(token.DEBUGGER)
	semi := p.endWithAutoSemi(true)
	return &ast.Debugger{BaseNode: ast.BaseNode{Sp: b.finish()}, Semi: semi}
}

func (p *Parser) parenExpression() ast.Expr {
	p.expect(token.LPAREN)
	expr := p.withAllowInExpr()
	p.expect(token.RPAREN)
	return expr
}

// hasArgSameLine reports whether the statement's optional argument is
// present: it is, unless the next token ends the statement (`;`, `}`,
// EOF) or is preceded by a line terminator (spec.md §4.5's restricted
// productions for return/throw/break/continue).
func (p *Parser) hasArgSameLine() bool {
	tok := p.peekOp()
	if tok.Newline {
		return false
	}
	switch tok.Type {
	case token.SEMICOLON, token.RBRACE, token.EOF:
		return false
	default:
		return true
	}
}

// endWithAutoSemi consumes the statement terminator: an explicit `;`,
// or an automatically-inserted one. required=true is the ordinary ASI
// rule (fires only before `}`, EOF, or a line terminator, else fails);
// required=false additionally allows ASI unconditionally, used for
// `do...while(...)` whose trailing semicolon may always be omitted
// (spec.md §4.5).
func (p *Parser) endWithAutoSemi(required bool) ast.Semi {
	tok := p.peekOp()
	if tok.Type == token.SEMICOLON {
		p.readOp()
		return ast.SemiExplicit
	}
	if !required || tok.Newline || tok.Type == token.RBRACE || tok.Type == token.EOF {
		return ast.SemiInserted
	}
	p.fail(&ParseError{Kind: ErrFailedASI, Pos: tok.Span.Start, Message: "expected ';'"})
	return ast.SemiInserted
}

// startNodeAt is startNode but with an already-known start position,
// used by the identifier fast path where the leading token has already
// been consumed.
func (p *Parser) startNodeAt(start token.Posn) nodeBuilder {
	return nodeBuilder{p: p, start: start}
}
