package estree

import (
	"encoding/json"
	"fmt"

	"github.com/mhaller/es5parser/internal/ast"
	"github.com/mhaller/es5parser/internal/token"
)

// Deserialize is the inverse of Serialize: it rebuilds an *ast.Script
// from ESTree JSON. Spans are not reconstructed (the JSON carries none),
// so a round trip is compared "modulo optional spans" (spec.md §8).
func Deserialize(data json.RawMessage) (*ast.Script, error) {
	var n Node
	if err := json.Unmarshal(data, &n); err != nil {
		return nil, fmt.Errorf("estree: invalid JSON: %w", err)
	}
	if n.typ() != "Program" {
		return nil, fmt.Errorf("estree: expected Program, got %q", n.typ())
	}
	body, err := stmtListItemsFrom(n.nodeList("body"))
	if err != nil {
		return nil, err
	}
	return &ast.Script{Body: body}, nil
}

func stmtListItemsFrom(nodes []Node) ([]ast.StmtListItem, error) {
	items := make([]ast.StmtListItem, len(nodes))
	for i, n := range nodes {
		item, err := stmtListItemFrom(n)
		if err != nil {
			return nil, err
		}
		items[i] = item
	}
	return items, nil
}

func stmtListItemFrom(n Node) (ast.StmtListItem, error) {
	if n.typ() == "FunctionDeclaration" {
		fun, err := funFrom(n)
		if err != nil {
			return nil, err
		}
		return &ast.FunDecl{Fun: fun}, nil
	}
	return stmtFrom(n)
}

func stmtFrom(n Node) (ast.Stmt, error) {
	switch n.typ() {
	case "BlockStatement":
		body, err := stmtListItemsFrom(n.nodeList("body"))
		if err != nil {
			return nil, err
		}
		return &ast.Block{Body: body}, nil
	case "VariableDeclaration":
		ds, err := dtorsFrom(n.nodeList("declarations"))
		if err != nil {
			return nil, err
		}
		return &ast.VarStmt{Dtors: ds}, nil
	case "EmptyStatement":
		return &ast.Empty{}, nil
	case "ExpressionStatement":
		sub, ok := n.node("expression")
		if !ok {
			return nil, fmt.Errorf("estree: ExpressionStatement missing expression")
		}
		e, err := exprFrom(sub)
		if err != nil {
			return nil, err
		}
		return &ast.ExprStmt{Expr: e}, nil
	case "IfStatement":
		test, err := exprFrom(must(n.node("test")))
		if err != nil {
			return nil, err
		}
		cons, err := stmtFrom(must(n.node("consequent")))
		if err != nil {
			return nil, err
		}
		var alt ast.Stmt
		if altN, ok := n.node("alternate"); ok {
			alt, err = stmtFrom(altN)
			if err != nil {
				return nil, err
			}
		}
		return &ast.If{Test: test, Cons: cons, Alt: alt}, nil
	case "DoWhileStatement":
		body, err := stmtFrom(must(n.node("body")))
		if err != nil {
			return nil, err
		}
		test, err := exprFrom(must(n.node("test")))
		if err != nil {
			return nil, err
		}
		return &ast.DoWhile{Body: body, Test: test}, nil
	case "WhileStatement":
		test, err := exprFrom(must(n.node("test")))
		if err != nil {
			return nil, err
		}
		body, err := stmtFrom(must(n.node("body")))
		if err != nil {
			return nil, err
		}
		return &ast.While{Test: test, Body: body}, nil
	case "ForStatement":
		head, err := forHeadFrom(n)
		if err != nil {
			return nil, err
		}
		var test, update ast.Expr
		if tn, ok := n.node("test"); ok {
			if test, err = exprFrom(tn); err != nil {
				return nil, err
			}
		}
		if un, ok := n.node("update"); ok {
			if update, err = exprFrom(un); err != nil {
				return nil, err
			}
		}
		body, err := stmtFrom(must(n.node("body")))
		if err != nil {
			return nil, err
		}
		return &ast.For{Head: head, Test: test, Update: update, Body: body}, nil
	case "ForInStatement":
		head, err := forInHeadFrom(must(n.node("left")))
		if err != nil {
			return nil, err
		}
		obj, err := exprFrom(must(n.node("right")))
		if err != nil {
			return nil, err
		}
		body, err := stmtFrom(must(n.node("body")))
		if err != nil {
			return nil, err
		}
		return &ast.ForIn{Head: head, Obj: obj, Body: body}, nil
	case "ForOfStatement":
		head, err := forOfHeadFrom(must(n.node("left")))
		if err != nil {
			return nil, err
		}
		iter, err := exprFrom(must(n.node("right")))
		if err != nil {
			return nil, err
		}
		body, err := stmtFrom(must(n.node("body")))
		if err != nil {
			return nil, err
		}
		return &ast.ForOf{Head: head, Iter: iter, Body: body}, nil
	case "SwitchStatement":
		disc, err := exprFrom(must(n.node("discriminant")))
		if err != nil {
			return nil, err
		}
		cs, err := casesFrom(n.nodeList("cases"))
		if err != nil {
			return nil, err
		}
		return &ast.Switch{Disc: disc, Cases: cs}, nil
	case "ReturnStatement":
		var arg ast.Expr
		if an, ok := n.node("argument"); ok {
			var err error
			if arg, err = exprFrom(an); err != nil {
				return nil, err
			}
		}
		return &ast.Return{Arg: arg}, nil
	case "BreakStatement":
		return &ast.Break{Label: identFromOpt(n, "label")}, nil
	case "ContinueStatement":
		return &ast.Cont{Label: identFromOpt(n, "label")}, nil
	case "WithStatement":
		obj, err := exprFrom(must(n.node("object")))
		if err != nil {
			return nil, err
		}
		body, err := stmtFrom(must(n.node("body")))
		if err != nil {
			return nil, err
		}
		return &ast.With{Obj: obj, Body: body}, nil
	case "ThrowStatement":
		arg, err := exprFrom(must(n.node("argument")))
		if err != nil {
			return nil, err
		}
		return &ast.Throw{Arg: arg}, nil
	case "TryStatement":
		blockN := must(n.node("block"))
		body, err := stmtListItemsFrom(blockN.nodeList("body"))
		if err != nil {
			return nil, err
		}
		var catch *ast.Catch
		if hn, ok := n.node("handler"); ok {
			param, err := patternFrom(must(hn.node("param")))
			if err != nil {
				return nil, err
			}
			catchBody, err := stmtListItemsFrom(must(hn.node("body")).nodeList("body"))
			if err != nil {
				return nil, err
			}
			catch = &ast.Catch{Param: param, Body: catchBody}
		}
		var finally []ast.StmtListItem
		if fn, ok := n.node("finalizer"); ok {
			if finally, err = stmtListItemsFrom(fn.nodeList("body")); err != nil {
				return nil, err
			}
		}
		return &ast.Try{Body: body, Catch: catch, Finally: finally}, nil
	case "DebuggerStatement":
		return &ast.Debugger{}, nil
	case "LabeledStatement":
		return labelledFrom(n)
	default:
		return nil, fmt.Errorf("estree: unhandled statement type %q", n.typ())
	}
}

func labelledFrom(n Node) (ast.Stmt, error) {
	var labels []*ast.Id
	cur := n
	for cur.typ() == "LabeledStatement" {
		labels = append(labels, &ast.Id{Name: tokenNameOf(must(cur.node("label")))})
		cur = must(cur.node("body"))
	}
	body, err := stmtFrom(cur)
	if err != nil {
		return nil, err
	}
	return &ast.Labelled{Labels: labels, Body: body}, nil
}

func casesFrom(nodes []Node) ([]*ast.Case, error) {
	cs := make([]*ast.Case, len(nodes))
	for i, n := range nodes {
		var test *ast.Expr
		if tn, ok := n.node("test"); ok {
			e, err := exprFrom(tn)
			if err != nil {
				return nil, err
			}
			test = &e
		}
		body, err := stmtListItemsFrom(n.nodeList("consequent"))
		if err != nil {
			return nil, err
		}
		cs[i] = &ast.Case{Test: test, Body: body}
	}
	return cs, nil
}

func dtorsFrom(nodes []Node) ([]*ast.Dtor, error) {
	ds := make([]*ast.Dtor, len(nodes))
	for i, n := range nodes {
		lhs, err := patternFrom(must(n.node("id")))
		if err != nil {
			return nil, err
		}
		var init ast.Expr
		if initN, ok := n.node("init"); ok {
			if init, err = exprFrom(initN); err != nil {
				return nil, err
			}
		}
		ds[i] = &ast.Dtor{Lhs: lhs, Init: init}
	}
	return ds, nil
}

func patternFrom(n Node) (ast.Patt, error) {
	if n.typ() != "Identifier" {
		return nil, fmt.Errorf("estree: unhandled pattern type %q", n.typ())
	}
	return &ast.Id{Name: tokenNameOf(n)}, nil
}

func forHeadFrom(n Node) (ast.ForHead, error) {
	initN, ok := n.node("init")
	if !ok {
		return nil, nil
	}
	if initN.typ() == "VariableDeclaration" {
		ds, err := dtorsFrom(initN.nodeList("declarations"))
		if err != nil {
			return nil, err
		}
		if initN.str("kind") == "let" {
			return &ast.ForHeadLet{Dtors: ds}, nil
		}
		return &ast.ForHeadVar{Dtors: ds}, nil
	}
	e, err := exprFrom(initN)
	if err != nil {
		return nil, err
	}
	return &ast.ForHeadExpr{Expr: e}, nil
}

func forInHeadFrom(n Node) (ast.ForInHead, error) {
	if n.typ() == "VariableDeclaration" {
		decls := n.nodeList("declarations")
		lhs, err := patternFrom(must(decls[0].node("id")))
		if err != nil {
			return nil, err
		}
		if initN, ok := decls[0].node("init"); ok {
			init, err := exprFrom(initN)
			if err != nil {
				return nil, err
			}
			return &ast.ForInHeadVarInit{Lhs: lhs.(*ast.Id), Init: init}, nil
		}
		if n.str("kind") == "let" {
			return &ast.ForInHeadLet{Lhs: lhs}, nil
		}
		return &ast.ForInHeadVar{Lhs: lhs}, nil
	}
	e, err := exprFrom(n)
	if err != nil {
		return nil, err
	}
	target, ok := e.(ast.AssignTarget)
	if !ok {
		return nil, fmt.Errorf("estree: for-in left side is not an assignment target")
	}
	return &ast.ForInHeadPatt{Target: target}, nil
}

func forOfHeadFrom(n Node) (ast.ForOfHead, error) {
	if n.typ() == "VariableDeclaration" {
		decls := n.nodeList("declarations")
		lhs, err := patternFrom(must(decls[0].node("id")))
		if err != nil {
			return nil, err
		}
		if n.str("kind") == "let" {
			return &ast.ForOfHeadLet{Lhs: lhs}, nil
		}
		return &ast.ForOfHeadVar{Lhs: lhs}, nil
	}
	e, err := exprFrom(n)
	if err != nil {
		return nil, err
	}
	target, ok := e.(ast.AssignTarget)
	if !ok {
		return nil, fmt.Errorf("estree: for-of left side is not an assignment target")
	}
	return &ast.ForOfHeadPatt{Target: target}, nil
}

func funFrom(n Node) (*ast.Fun, error) {
	var id *ast.Id
	if idN, ok := n.node("id"); ok {
		id = &ast.Id{Name: tokenNameOf(idN)}
	}
	paramNodes := n.nodeList("params")
	params := make([]ast.Patt, len(paramNodes))
	for i, pn := range paramNodes {
		p, err := patternFrom(pn)
		if err != nil {
			return nil, err
		}
		params[i] = p
	}
	bodyN := must(n.node("body"))
	body, err := stmtListItemsFrom(bodyN.nodeList("body"))
	if err != nil {
		return nil, err
	}
	return &ast.Fun{Id: id, Params: params, Body: body}, nil
}

func exprFrom(n Node) (ast.Expr, error) {
	switch n.typ() {
	case "ThisExpression":
		return &ast.This{}, nil
	case "Literal":
		return literalFrom(n)
	case "Identifier":
		return &ast.Id{Name: tokenNameOf(n)}, nil
	case "ArrayExpression":
		els := n.nodeList("elements")
		elements := make([]ast.Expr, len(els))
		for i, el := range els {
			if el == nil {
				continue
			}
			e, err := exprFrom(el)
			if err != nil {
				return nil, err
			}
			elements[i] = e
		}
		return &ast.Arr{Elements: elements}, nil
	case "ObjectExpression":
		propNodes := n.nodeList("properties")
		props := make([]ast.Prop, len(propNodes))
		for i, pn := range propNodes {
			p, err := propertyFrom(pn)
			if err != nil {
				return nil, err
			}
			props[i] = p
		}
		return &ast.Obj{Props: props}, nil
	case "FunctionExpression":
		fun, err := funFrom(n)
		if err != nil {
			return nil, err
		}
		return &ast.FunExpr{Fun: fun}, nil
	case "SequenceExpression":
		subNodes := n.nodeList("expressions")
		exprs := make([]ast.Expr, len(subNodes))
		for i, sn := range subNodes {
			e, err := exprFrom(sn)
			if err != nil {
				return nil, err
			}
			exprs[i] = e
		}
		return &ast.Seq{Exprs: exprs}, nil
	case "ConditionalExpression":
		test, err := exprFrom(must(n.node("test")))
		if err != nil {
			return nil, err
		}
		cons, err := exprFrom(must(n.node("consequent")))
		if err != nil {
			return nil, err
		}
		alt, err := exprFrom(must(n.node("alternate")))
		if err != nil {
			return nil, err
		}
		return &ast.Cond{Test: test, Cons: cons, Alt: alt}, nil
	case "UnaryExpression":
		arg, err := exprFrom(must(n.node("argument")))
		if err != nil {
			return nil, err
		}
		op, ok := unopFromString(n.str("operator"))
		if !ok {
			return nil, fmt.Errorf("estree: unknown unary operator %q", n.str("operator"))
		}
		return &ast.Unop{Op: op, Arg: arg}, nil
	case "BinaryExpression":
		left, err := exprFrom(must(n.node("left")))
		if err != nil {
			return nil, err
		}
		right, err := exprFrom(must(n.node("right")))
		if err != nil {
			return nil, err
		}
		op, ok := binopFromString(n.str("operator"))
		if !ok {
			return nil, fmt.Errorf("estree: unknown binary operator %q", n.str("operator"))
		}
		return &ast.Binop{Op: op, Left: left, Right: right}, nil
	case "LogicalExpression":
		left, err := exprFrom(must(n.node("left")))
		if err != nil {
			return nil, err
		}
		right, err := exprFrom(must(n.node("right")))
		if err != nil {
			return nil, err
		}
		op, ok := logopFromString(n.str("operator"))
		if !ok {
			return nil, fmt.Errorf("estree: unknown logical operator %q", n.str("operator"))
		}
		return &ast.Logop{Op: op, Left: left, Right: right}, nil
	case "UpdateExpression":
		arg, err := exprFrom(must(n.node("argument")))
		if err != nil {
			return nil, err
		}
		target, ok := arg.(ast.AssignTarget)
		if !ok {
			return nil, fmt.Errorf("estree: update expression argument is not an assignment target")
		}
		inc := n.str("operator") == "++"
		prefix := n.boolean("prefix")
		switch {
		case prefix && inc:
			return &ast.PreInc{Arg: target}, nil
		case prefix && !inc:
			return &ast.PreDec{Arg: target}, nil
		case !prefix && inc:
			return &ast.PostInc{Arg: target}, nil
		default:
			return &ast.PostDec{Arg: target}, nil
		}
	case "AssignmentExpression":
		leftE, err := exprFrom(must(n.node("left")))
		if err != nil {
			return nil, err
		}
		right, err := exprFrom(must(n.node("right")))
		if err != nil {
			return nil, err
		}
		target, ok := leftE.(ast.AssignTarget)
		if !ok {
			return nil, fmt.Errorf("estree: assignment left side is not an assignment target")
		}
		if n.str("operator") == "=" {
			return &ast.Assign{Left: target, Right: right}, nil
		}
		op, ok := assopFromString(n.str("operator"))
		if !ok {
			return nil, fmt.Errorf("estree: unknown assignment operator %q", n.str("operator"))
		}
		return &ast.BinAssign{Op: op, Left: target, Right: right}, nil
	case "CallExpression":
		callee, err := exprFrom(must(n.node("callee")))
		if err != nil {
			return nil, err
		}
		args, err := exprListFrom(n.nodeList("arguments"))
		if err != nil {
			return nil, err
		}
		return &ast.Call{Callee: callee, Args: args}, nil
	case "NewExpression":
		callee, err := exprFrom(must(n.node("callee")))
		if err != nil {
			return nil, err
		}
		argNodes := n.nodeList("arguments")
		args, err := exprListFrom(argNodes)
		if err != nil {
			return nil, err
		}
		return &ast.New{Callee: callee, Args: args, HasArgs: true}, nil
	case "MemberExpression":
		obj, err := exprFrom(must(n.node("object")))
		if err != nil {
			return nil, err
		}
		if n.boolean("computed") {
			idx, err := exprFrom(must(n.node("property")))
			if err != nil {
				return nil, err
			}
			return &ast.Brack{Object: obj, Index: idx}, nil
		}
		propN := must(n.node("property"))
		return &ast.Dot{Object: obj, Name: propN.str("name")}, nil
	case "MetaProperty":
		return &ast.NewTarget{}, nil
	default:
		return nil, fmt.Errorf("estree: unhandled expression type %q", n.typ())
	}
}

func exprListFrom(nodes []Node) ([]ast.Expr, error) {
	out := make([]ast.Expr, len(nodes))
	for i, n := range nodes {
		e, err := exprFrom(n)
		if err != nil {
			return nil, err
		}
		out[i] = e
	}
	return out, nil
}

func literalFrom(n Node) (ast.Expr, error) {
	if _, ok := n.node("regex"); ok {
		regex := must(n.node("regex"))
		return &ast.RegExp{Pattern: regex.str("pattern"), Flags: regex.str("flags")}, nil
	}
	switch v := n["value"].(type) {
	case nil:
		return &ast.Null{}, nil
	case bool:
		if v {
			return &ast.True{}, nil
		}
		return &ast.False{}, nil
	case float64:
		return &ast.Number{Value: v, Raw: n.str("raw")}, nil
	case string:
		return &ast.String{Value: v, Raw: n.str("raw")}, nil
	default:
		return nil, fmt.Errorf("estree: unhandled literal value %T", v)
	}
}

func propertyFrom(n Node) (ast.Prop, error) {
	key, err := propKeyFrom(must(n.node("key")))
	if err != nil {
		return ast.Prop{}, err
	}
	valueN := must(n.node("value"))
	switch n.str("kind") {
	case "get":
		fun, err := funFrom(valueN)
		if err != nil {
			return ast.Prop{}, err
		}
		return ast.Prop{Key: key, Kind: ast.PropGet, Fun: fun}, nil
	case "set":
		fun, err := funFrom(valueN)
		if err != nil {
			return ast.Prop{}, err
		}
		return ast.Prop{Key: key, Kind: ast.PropSet, Fun: fun}, nil
	default:
		val, err := exprFrom(valueN)
		if err != nil {
			return ast.Prop{}, err
		}
		return ast.Prop{Key: key, Kind: ast.PropInit, Value: val}, nil
	}
}

func propKeyFrom(n Node) (ast.PropKey, error) {
	switch n.typ() {
	case "Identifier":
		return ast.PropKey{Kind: ast.PropKeyIdent, Name: n.str("name")}, nil
	case "Literal":
		switch v := n["value"].(type) {
		case string:
			return ast.PropKey{Kind: ast.PropKeyString, Str: v}, nil
		case float64:
			return ast.PropKey{Kind: ast.PropKeyNumber, Num: v}, nil
		default:
			return ast.PropKey{}, fmt.Errorf("estree: unhandled property key literal %T", v)
		}
	default:
		return ast.PropKey{}, fmt.Errorf("estree: unhandled property key type %q", n.typ())
	}
}

func identFromOpt(n Node, key string) *ast.Id {
	sub, ok := n.node(key)
	if !ok {
		return nil
	}
	return &ast.Id{Name: tokenNameOf(sub)}
}

func tokenNameOf(n Node) token.Name {
	return token.NewName(n.str("name"))
}

func must(n Node, ok bool) Node {
	if !ok {
		panic("estree: expected node to be present")
	}
	return n
}

var unopByString = map[string]ast.UnopTag{
	"-": ast.UnopMinus, "+": ast.UnopPlus, "!": ast.UnopNot, "~": ast.UnopBitNot,
	"typeof": ast.UnopTypeof, "void": ast.UnopVoid, "delete": ast.UnopDelete,
}

func unopFromString(s string) (ast.UnopTag, bool) {
	t, ok := unopByString[s]
	return t, ok
}

var binopByString = map[string]ast.BinopTag{
	"==": ast.BinopEq, "!=": ast.BinopNEq, "===": ast.BinopStrictEq, "!==": ast.BinopStrictNEq,
	"<": ast.BinopLt, "<=": ast.BinopLEq, ">": ast.BinopGt, ">=": ast.BinopGEq,
	"<<": ast.BinopLShift, ">>": ast.BinopRShift, ">>>": ast.BinopURShift,
	"+": ast.BinopPlus, "-": ast.BinopMinus, "*": ast.BinopTimes, "/": ast.BinopDiv, "%": ast.BinopMod,
	"|": ast.BinopBitOr, "^": ast.BinopBitXor, "&": ast.BinopBitAnd,
	"in": ast.BinopIn, "instanceof": ast.BinopInstanceof,
}

func binopFromString(s string) (ast.BinopTag, bool) {
	t, ok := binopByString[s]
	return t, ok
}

var logopByString = map[string]ast.LogopTag{"||": ast.LogopOr, "&&": ast.LogopAnd}

func logopFromString(s string) (ast.LogopTag, bool) {
	t, ok := logopByString[s]
	return t, ok
}

var assopByString = map[string]ast.AssopTag{
	"+=": ast.AssopPlus, "-=": ast.AssopMinus, "*=": ast.AssopTimes, "/=": ast.AssopDiv, "%=": ast.AssopMod,
	"<<=": ast.AssopLShift, ">>=": ast.AssopRShift, ">>>=": ast.AssopURShift,
	"|=": ast.AssopBitOr, "^=": ast.AssopBitXor, "&=": ast.AssopBitAnd,
}

func assopFromString(s string) (ast.AssopTag, bool) {
	t, ok := assopByString[s]
	return t, ok
}
