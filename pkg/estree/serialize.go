package estree

import (
	"fmt"

	"github.com/mhaller/es5parser/internal/ast"
)

// Serialize walks script and produces its ESTree `Program` node
// (spec.md §6's serializer contract), one hand-written function per
// concrete AST type rather than reflection.
func Serialize(script *ast.Script) Node {
	return Node{
		"type": "Program",
		"body": stmtListItems(script.Body),
	}
}

func stmtListItems(items []ast.StmtListItem) []any {
	out := make([]any, len(items))
	for i, item := range items {
		out[i] = stmtListItem(item)
	}
	return out
}

func stmtListItem(item ast.StmtListItem) Node {
	switch s := item.(type) {
	case *ast.FunDecl:
		return funNode("FunctionDeclaration", s.Fun)
	case ast.Stmt:
		return stmt(s)
	default:
		panic(fmt.Sprintf("estree: unhandled StmtListItem %T", item))
	}
}

func stmt(s ast.Stmt) Node {
	switch s := s.(type) {
	case *ast.Block:
		return Node{"type": "BlockStatement", "body": stmtListItems(s.Body)}
	case *ast.VarStmt:
		return Node{"type": "VariableDeclaration", "kind": "var", "declarations": dtors(s.Dtors)}
	case *ast.Empty:
		return Node{"type": "EmptyStatement"}
	case *ast.ExprStmt:
		return Node{"type": "ExpressionStatement", "expression": expr(s.Expr)}
	case *ast.If:
		n := Node{"type": "IfStatement", "test": expr(s.Test), "consequent": stmt(s.Cons)}
		if s.Alt != nil {
			n["alternate"] = stmt(s.Alt)
		} else {
			n["alternate"] = nil
		}
		return n
	case *ast.DoWhile:
		return Node{"type": "DoWhileStatement", "body": stmt(s.Body), "test": expr(s.Test)}
	case *ast.While:
		return Node{"type": "WhileStatement", "test": expr(s.Test), "body": stmt(s.Body)}
	case *ast.For:
		n := Node{"type": "ForStatement", "body": stmt(s.Body)}
		n["init"] = forHead(s.Head)
		n["test"] = exprOrNil(s.Test)
		n["update"] = exprOrNil(s.Update)
		return n
	case *ast.ForIn:
		return Node{"type": "ForInStatement", "left": forInHead(s.Head), "right": expr(s.Obj), "body": stmt(s.Body)}
	case *ast.ForOf:
		return Node{"type": "ForOfStatement", "left": forOfHead(s.Head), "right": expr(s.Iter), "body": stmt(s.Body)}
	case *ast.Switch:
		return Node{"type": "SwitchStatement", "discriminant": expr(s.Disc), "cases": cases(s.Cases)}
	case *ast.Return:
		return Node{"type": "ReturnStatement", "argument": exprOrNil(s.Arg)}
	case *ast.Break:
		return Node{"type": "BreakStatement", "label": idOrNil(s.Label)}
	case *ast.Cont:
		return Node{"type": "ContinueStatement", "label": idOrNil(s.Label)}
	case *ast.With:
		return Node{"type": "WithStatement", "object": expr(s.Obj), "body": stmt(s.Body)}
	case *ast.Throw:
		return Node{"type": "ThrowStatement", "argument": expr(s.Arg)}
	case *ast.Try:
		n := Node{"type": "TryStatement", "block": Node{"type": "BlockStatement", "body": stmtListItems(s.Body)}}
		if s.Catch != nil {
			n["handler"] = Node{
				"type":  "CatchClause",
				"param": pattern(s.Catch.Param),
				"body":  Node{"type": "BlockStatement", "body": stmtListItems(s.Catch.Body)},
			}
		} else {
			n["handler"] = nil
		}
		if s.Finally != nil {
			n["finalizer"] = Node{"type": "BlockStatement", "body": stmtListItems(s.Finally)}
		} else {
			n["finalizer"] = nil
		}
		return n
	case *ast.Debugger:
		return Node{"type": "DebuggerStatement"}
	case *ast.Labelled:
		return labelled(s.Labels, s.Body)
	default:
		panic(fmt.Sprintf("estree: unhandled Stmt %T", s))
	}
}

// labelled unwinds the stacked Labels into nested single-label
// LabeledStatement nodes, matching ESTree's shape (one label per node).
func labelled(labels []*ast.Id, body ast.Stmt) Node {
	if len(labels) == 0 {
		return stmt(body)
	}
	return Node{
		"type":  "LabeledStatement",
		"label": ident(labels[0]),
		"body":  labelled(labels[1:], body),
	}
}

func cases(cs []*ast.Case) []any {
	out := make([]any, len(cs))
	for i, c := range cs {
		var test any
		if c.Test != nil {
			test = expr(*c.Test)
		}
		out[i] = Node{"type": "SwitchCase", "test": test, "consequent": stmtListItems(c.Body)}
	}
	return out
}

func dtors(ds []*ast.Dtor) []any {
	out := make([]any, len(ds))
	for i, d := range ds {
		n := Node{"type": "VariableDeclarator", "id": pattern(d.Lhs)}
		n["init"] = exprOrNil(d.Init)
		out[i] = n
	}
	return out
}

func pattern(p ast.Patt) Node {
	switch p := p.(type) {
	case *ast.Id:
		return ident(p)
	default:
		panic(fmt.Sprintf("estree: unhandled Patt %T", p))
	}
}

func forHead(h ast.ForHead) any {
	switch h := h.(type) {
	case nil:
		return nil
	case *ast.ForHeadExpr:
		return expr(h.Expr)
	case *ast.ForHeadVar:
		return Node{"type": "VariableDeclaration", "kind": "var", "declarations": dtors(h.Dtors)}
	case *ast.ForHeadLet:
		return Node{"type": "VariableDeclaration", "kind": "let", "declarations": dtors(h.Dtors)}
	default:
		panic(fmt.Sprintf("estree: unhandled ForHead %T", h))
	}
}

func forInHead(h ast.ForInHead) any {
	switch h := h.(type) {
	case *ast.ForInHeadPatt:
		return expr(h.Target)
	case *ast.ForInHeadVar:
		return Node{"type": "VariableDeclaration", "kind": "var", "declarations": []any{
			Node{"type": "VariableDeclarator", "id": pattern(h.Lhs), "init": nil},
		}}
	case *ast.ForInHeadLet:
		return Node{"type": "VariableDeclaration", "kind": "let", "declarations": []any{
			Node{"type": "VariableDeclarator", "id": pattern(h.Lhs), "init": nil},
		}}
	case *ast.ForInHeadVarInit:
		return Node{"type": "VariableDeclaration", "kind": "var", "declarations": []any{
			Node{"type": "VariableDeclarator", "id": ident(h.Lhs), "init": expr(h.Init)},
		}}
	default:
		panic(fmt.Sprintf("estree: unhandled ForInHead %T", h))
	}
}

func forOfHead(h ast.ForOfHead) any {
	switch h := h.(type) {
	case *ast.ForOfHeadPatt:
		return expr(h.Target)
	case *ast.ForOfHeadVar:
		return Node{"type": "VariableDeclaration", "kind": "var", "declarations": []any{
			Node{"type": "VariableDeclarator", "id": pattern(h.Lhs), "init": nil},
		}}
	case *ast.ForOfHeadLet:
		return Node{"type": "VariableDeclaration", "kind": "let", "declarations": []any{
			Node{"type": "VariableDeclarator", "id": pattern(h.Lhs), "init": nil},
		}}
	default:
		panic(fmt.Sprintf("estree: unhandled ForOfHead %T", h))
	}
}

func exprOrNil(e ast.Expr) any {
	if e == nil {
		return nil
	}
	return expr(e)
}

func idOrNil(id *ast.Id) any {
	if id == nil {
		return nil
	}
	return ident(id)
}

func ident(id *ast.Id) Node {
	return Node{"type": "Identifier", "name": id.Name.Text}
}

func funNode(kind string, f *ast.Fun) Node {
	params := make([]any, len(f.Params))
	for i, p := range f.Params {
		params[i] = pattern(p)
	}
	n := Node{
		"type":   kind,
		"params": params,
		"body":   Node{"type": "BlockStatement", "body": stmtListItems(f.Body)},
	}
	if f.Id != nil {
		n["id"] = ident(f.Id)
	} else {
		n["id"] = nil
	}
	return n
}

func expr(e ast.Expr) Node {
	switch e := e.(type) {
	case *ast.This:
		return Node{"type": "ThisExpression"}
	case *ast.Null:
		return Node{"type": "Literal", "value": nil, "raw": "null"}
	case *ast.True:
		return Node{"type": "Literal", "value": true, "raw": "true"}
	case *ast.False:
		return Node{"type": "Literal", "value": false, "raw": "false"}
	case *ast.Number:
		return Node{"type": "Literal", "value": e.Value, "raw": e.Raw}
	case *ast.String:
		return Node{"type": "Literal", "value": e.Value, "raw": e.Raw}
	case *ast.RegExp:
		return Node{
			"type":  "Literal",
			"value": nil,
			"raw":   "/" + e.Pattern + "/" + e.Flags,
			"regex": Node{"pattern": e.Pattern, "flags": e.Flags},
		}
	case *ast.Id:
		return ident(e)
	case *ast.Arr:
		elements := make([]any, len(e.Elements))
		for i, el := range e.Elements {
			elements[i] = exprOrNil(el)
		}
		return Node{"type": "ArrayExpression", "elements": elements}
	case *ast.Obj:
		props := make([]any, len(e.Props))
		for i, p := range e.Props {
			props[i] = property(p)
		}
		return Node{"type": "ObjectExpression", "properties": props}
	case *ast.FunExpr:
		return funNode("FunctionExpression", e.Fun)
	case *ast.Seq:
		exprs := make([]any, len(e.Exprs))
		for i, sub := range e.Exprs {
			exprs[i] = expr(sub)
		}
		return Node{"type": "SequenceExpression", "expressions": exprs}
	case *ast.Cond:
		return Node{"type": "ConditionalExpression", "test": expr(e.Test), "consequent": expr(e.Cons), "alternate": expr(e.Alt)}
	case *ast.Unop:
		return Node{"type": "UnaryExpression", "operator": e.Op.String(), "prefix": true, "argument": expr(e.Arg)}
	case *ast.Binop:
		return Node{"type": "BinaryExpression", "operator": e.Op.String(), "left": expr(e.Left), "right": expr(e.Right)}
	case *ast.Logop:
		return Node{"type": "LogicalExpression", "operator": e.Op.String(), "left": expr(e.Left), "right": expr(e.Right)}
	case *ast.PreInc:
		return Node{"type": "UpdateExpression", "operator": "++", "prefix": true, "argument": expr(e.Arg)}
	case *ast.PreDec:
		return Node{"type": "UpdateExpression", "operator": "--", "prefix": true, "argument": expr(e.Arg)}
	case *ast.PostInc:
		return Node{"type": "UpdateExpression", "operator": "++", "prefix": false, "argument": expr(e.Arg)}
	case *ast.PostDec:
		return Node{"type": "UpdateExpression", "operator": "--", "prefix": false, "argument": expr(e.Arg)}
	case *ast.Assign:
		return Node{"type": "AssignmentExpression", "operator": "=", "left": expr(e.Left), "right": expr(e.Right)}
	case *ast.BinAssign:
		return Node{"type": "AssignmentExpression", "operator": e.Op.String(), "left": expr(e.Left), "right": expr(e.Right)}
	case *ast.Call:
		return Node{"type": "CallExpression", "callee": expr(e.Callee), "arguments": exprs(e.Args)}
	case *ast.New:
		n := Node{"type": "NewExpression", "callee": expr(e.Callee)}
		if e.HasArgs {
			n["arguments"] = exprs(e.Args)
		} else {
			n["arguments"] = []any{}
		}
		return n
	case *ast.Dot:
		return Node{"type": "MemberExpression", "computed": false, "object": expr(e.Object), "property": Node{"type": "Identifier", "name": e.Name}}
	case *ast.Brack:
		return Node{"type": "MemberExpression", "computed": true, "object": expr(e.Object), "property": expr(e.Index)}
	case *ast.NewTarget:
		return Node{"type": "MetaProperty", "meta": Node{"type": "Identifier", "name": "new"}, "property": Node{"type": "Identifier", "name": "target"}}
	default:
		panic(fmt.Sprintf("estree: unhandled Expr %T", e))
	}
}

func exprs(es []ast.Expr) []any {
	out := make([]any, len(es))
	for i, e := range es {
		out[i] = expr(e)
	}
	return out
}

func property(p ast.Prop) Node {
	n := Node{"key": propKey(p.Key), "computed": false}
	switch p.Kind {
	case ast.PropGet:
		n["type"] = "Property"
		n["kind"] = "get"
		n["value"] = funNode("FunctionExpression", p.Fun)
	case ast.PropSet:
		n["type"] = "Property"
		n["kind"] = "set"
		n["value"] = funNode("FunctionExpression", p.Fun)
	default:
		n["type"] = "Property"
		n["kind"] = "init"
		n["value"] = expr(p.Value)
	}
	return n
}

func propKey(k ast.PropKey) Node {
	switch k.Kind {
	case ast.PropKeyString:
		return Node{"type": "Literal", "value": k.Str, "raw": fmt.Sprintf("%q", k.Str)}
	case ast.PropKeyNumber:
		return Node{"type": "Literal", "value": k.Num, "raw": fmt.Sprintf("%v", k.Num)}
	default:
		return Node{"type": "Identifier", "name": k.Name}
	}
}
