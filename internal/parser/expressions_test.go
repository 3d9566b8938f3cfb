package parser_test

import (
	"testing"

	"github.com/mhaller/es5parser/internal/ast"
	"github.com/mhaller/es5parser/internal/parser"
)

func parseExpr(t *testing.T, src string) ast.Expr {
	t.Helper()
	script, errs := parser.ParseScript(src + ";")
	if len(errs) != 0 {
		t.Fatalf("parsing %q: %v", src, errs)
	}
	if len(script.Body) != 1 {
		t.Fatalf("parsing %q: expected 1 statement, got %d", src, len(script.Body))
	}
	stmt, ok := script.Body[0].(*ast.ExprStmt)
	if !ok {
		t.Fatalf("parsing %q: expected ExprStmt, got %T", src, script.Body[0])
	}
	return stmt.Expr
}

func TestBinaryOperatorPrecedence(t *testing.T) {
	tests := []struct {
		input string
		op    ast.BinopTag
	}{
		{"1 + 2 * 3", ast.BinopPlus},  // top-level op is + : * binds tighter
		{"1 * 2 + 3", ast.BinopPlus},  // left-assoc: (1*2)+3
		{"1 < 2 == true", ast.BinopEq},
		{"a | b & c", ast.BinopBitOr}, // & binds tighter than |
		{"a ^ b | c", ast.BinopBitOr},
		{"a & b ^ c", ast.BinopBitXor},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			expr := parseExpr(t, tt.input)
			bin, ok := expr.(*ast.Binop)
			if !ok {
				t.Fatalf("expected *ast.Binop at top level, got %T", expr)
			}
			if bin.Op != tt.op {
				t.Errorf("top-level op = %s, want %s", bin.Op, tt.op)
			}
		})
	}
}

func TestMultiplicativeBindsTighterThanAdditive(t *testing.T) {
	expr := parseExpr(t, "1 + 2 * 3")
	bin, ok := expr.(*ast.Binop)
	if !ok || bin.Op != ast.BinopPlus {
		t.Fatalf("expected top-level +, got %#v", expr)
	}
	right, ok := bin.Right.(*ast.Binop)
	if !ok || right.Op != ast.BinopTimes {
		t.Fatalf("expected right side to be *, got %#v", bin.Right)
	}
}

func TestLogicalOperatorsLowerThanBinary(t *testing.T) {
	expr := parseExpr(t, "a && b || c")
	or, ok := expr.(*ast.Logop)
	if !ok || or.Op != ast.LogopOr {
		t.Fatalf("expected top-level ||, got %#v", expr)
	}
	and, ok := or.Left.(*ast.Logop)
	if !ok || and.Op != ast.LogopAnd {
		t.Fatalf("expected left side to be &&, got %#v", or.Left)
	}
}

func TestConditionalIsRightAssociative(t *testing.T) {
	expr := parseExpr(t, "a ? b : c ? d : e")
	cond, ok := expr.(*ast.Cond)
	if !ok {
		t.Fatalf("expected *ast.Cond, got %T", expr)
	}
	if _, ok := cond.Alt.(*ast.Cond); !ok {
		t.Errorf("expected alt branch to itself be a conditional, got %T", cond.Alt)
	}
}

func TestConditionalRestoresAllowIn(t *testing.T) {
	// Inside a for-head (allowIn=false), the consequent/alternate of `?:`
	// must still accept `in` (spec.md's allow_in reset for `?:`).
	script, errs := parser.ParseScript("for (x ? y in z : 1;;) {}")
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	forStmt, ok := script.Body[0].(*ast.For)
	if !ok {
		t.Fatalf("expected *ast.For, got %T", script.Body[0])
	}
	head, ok := forStmt.Head.(*ast.ForHeadExpr)
	if !ok {
		t.Fatalf("expected *ast.ForHeadExpr, got %T", forStmt.Head)
	}
	cond, ok := head.Expr.(*ast.Cond)
	if !ok {
		t.Fatalf("expected *ast.Cond, got %T", head.Expr)
	}
	if _, ok := cond.Cons.(*ast.Binop); !ok {
		t.Errorf("expected consequent to parse `y in z` as a Binop, got %T", cond.Cons)
	}
}

func TestNewChains(t *testing.T) {
	tests := []struct {
		input       string
		wantHasArgs bool
	}{
		{"new Foo", false},
		{"new Foo()", true},
		{"new Foo(1, 2)", true},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			expr := parseExpr(t, tt.input)
			n, ok := expr.(*ast.New)
			if !ok {
				t.Fatalf("expected *ast.New, got %T", expr)
			}
			if n.HasArgs != tt.wantHasArgs {
				t.Errorf("HasArgs = %v, want %v", n.HasArgs, tt.wantHasArgs)
			}
		})
	}
}

func TestNewWithMemberCallee(t *testing.T) {
	expr := parseExpr(t, "new a.b.c()")
	n, ok := expr.(*ast.New)
	if !ok {
		t.Fatalf("expected *ast.New, got %T", expr)
	}
	if _, ok := n.Callee.(*ast.Dot); !ok {
		t.Errorf("expected callee to be *ast.Dot, got %T", n.Callee)
	}
}

func TestNestedNew(t *testing.T) {
	expr := parseExpr(t, "new new Foo()()")
	outer, ok := expr.(*ast.New)
	if !ok {
		t.Fatalf("expected outer *ast.New, got %T", expr)
	}
	if _, ok := outer.Callee.(*ast.New); !ok {
		t.Errorf("expected callee to be a nested *ast.New, got %T", outer.Callee)
	}
}

func TestNewChainStopsPairingArgsAfterADeref(t *testing.T) {
	// A deref between a nested `new`'s closing paren and a later `(args)`
	// ends that `new`'s own pairing: the outer `new` finalizes bare, and
	// the trailing `()` is an ordinary call on the result of the deref,
	// not a second argument list for the outer `new`.
	expr := parseExpr(t, "new new Foo().bar()")
	call, ok := expr.(*ast.Call)
	if !ok {
		t.Fatalf("expected outermost *ast.Call, got %T", expr)
	}
	dot, ok := call.Callee.(*ast.Dot)
	if !ok {
		t.Fatalf("expected call's callee to be *ast.Dot, got %T", call.Callee)
	}
	if dot.Name != "bar" {
		t.Errorf("dot.Name = %q, want %q", dot.Name, "bar")
	}
	outerNew, ok := dot.Object.(*ast.New)
	if !ok {
		t.Fatalf("expected deref's object to be *ast.New, got %T", dot.Object)
	}
	if outerNew.HasArgs {
		t.Error("outer new should finalize bare (HasArgs=false): the deref stopped it from claiming the trailing ()")
	}
	innerNew, ok := outerNew.Callee.(*ast.New)
	if !ok {
		t.Fatalf("expected outer new's callee to be the inner *ast.New, got %T", outerNew.Callee)
	}
	if !innerNew.HasArgs {
		t.Error("inner new should have claimed its own () as HasArgs=true")
	}
	if id, ok := innerNew.Callee.(*ast.Id); !ok || id.Name.Text != "Foo" {
		t.Errorf("expected inner new's callee to be identifier Foo, got %#v", innerNew.Callee)
	}
}

func TestNewTargetInsideFunction(t *testing.T) {
	script, errs := parser.ParseScript("function f() { return new.target; }")
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	decl, ok := script.Body[0].(*ast.FunDecl)
	if !ok {
		t.Fatalf("expected *ast.FunDecl, got %T", script.Body[0])
	}
	ret, ok := decl.Fun.Body[0].(*ast.Return)
	if !ok {
		t.Fatalf("expected *ast.Return, got %T", decl.Fun.Body[0])
	}
	if _, ok := ret.Arg.(*ast.NewTarget); !ok {
		t.Errorf("expected *ast.NewTarget, got %T", ret.Arg)
	}
}

func TestNewTargetOutsideFunctionIsError(t *testing.T) {
	_, errs := parser.ParseScript("new.target;")
	if len(errs) == 0 {
		t.Fatal("expected an error for new.target outside a function")
	}
}

func TestAssignmentTargets(t *testing.T) {
	tests := []string{"x = 1", "x.y = 1", "x[0] = 1", "x += 1", "x.y -= 1"}
	for _, input := range tests {
		t.Run(input, func(t *testing.T) {
			expr := parseExpr(t, input)
			switch e := expr.(type) {
			case *ast.Assign:
				if _, ok := e.Left.(ast.AssignTarget); !ok {
					t.Errorf("Left is not a valid AssignTarget: %#v", e.Left)
				}
			case *ast.BinAssign:
				if _, ok := e.Left.(ast.AssignTarget); !ok {
					t.Errorf("Left is not a valid AssignTarget: %#v", e.Left)
				}
			default:
				t.Fatalf("expected *ast.Assign or *ast.BinAssign, got %T", expr)
			}
		})
	}
}

func TestInvalidAssignmentTargetIsError(t *testing.T) {
	tests := []string{"1 = 2", "(a + b) = 1", "f() = 1"}
	for _, input := range tests {
		t.Run(input, func(t *testing.T) {
			_, errs := parser.ParseScript(input + ";")
			if len(errs) == 0 {
				t.Fatalf("expected an error parsing %q", input)
			}
		})
	}
}

func TestPostfixRequiresNoNewlineBeforeOperator(t *testing.T) {
	// ASI: a newline before ++ / -- ends the statement instead of
	// attaching the operator to the prior expression.
	script, errs := parser.ParseScript("a\n++b;")
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	if len(script.Body) != 2 {
		t.Fatalf("expected 2 statements (ASI splits `a` from `++b`), got %d", len(script.Body))
	}
	first, ok := script.Body[0].(*ast.ExprStmt)
	if !ok {
		t.Fatalf("expected ExprStmt, got %T", script.Body[0])
	}
	if _, ok := first.Expr.(*ast.Id); !ok {
		t.Errorf("expected first statement to be a bare identifier, got %T", first.Expr)
	}
	second, ok := script.Body[1].(*ast.ExprStmt)
	if !ok {
		t.Fatalf("expected ExprStmt, got %T", script.Body[1])
	}
	if _, ok := second.Expr.(*ast.PreInc); !ok {
		t.Errorf("expected second statement to be a prefix ++, got %T", second.Expr)
	}
}

func TestPostfixSameLineAttaches(t *testing.T) {
	expr := parseExpr(t, "a++")
	if _, ok := expr.(*ast.PostInc); !ok {
		t.Fatalf("expected *ast.PostInc, got %T", expr)
	}
}

func TestCommaSequenceExpression(t *testing.T) {
	expr := parseExpr(t, "a, b, c")
	seq, ok := expr.(*ast.Seq)
	if !ok {
		t.Fatalf("expected *ast.Seq, got %T", expr)
	}
	if len(seq.Exprs) != 3 {
		t.Errorf("expected 3 elements, got %d", len(seq.Exprs))
	}
}

func TestObjectLiteralTrailingComma(t *testing.T) {
	// Open Question resolution: trailing comma checks the literal's own
	// closing delimiter (RBrace), not RBrack.
	expr := parseExpr(t, "({ a: 1, b: 2, })")
	obj, ok := expr.(*ast.Obj)
	if !ok {
		t.Fatalf("expected *ast.Obj, got %T", expr)
	}
	if len(obj.Props) != 2 {
		t.Errorf("expected 2 properties, got %d", len(obj.Props))
	}
}

func TestObjectLiteralGetSet(t *testing.T) {
	expr := parseExpr(t, "({ get x() { return 1; }, set x(v) {} })")
	obj, ok := expr.(*ast.Obj)
	if !ok {
		t.Fatalf("expected *ast.Obj, got %T", expr)
	}
	if len(obj.Props) != 2 {
		t.Fatalf("expected 2 properties, got %d", len(obj.Props))
	}
	if obj.Props[0].Kind != ast.PropGet {
		t.Errorf("first property kind = %v, want PropGet", obj.Props[0].Kind)
	}
	if obj.Props[1].Kind != ast.PropSet {
		t.Errorf("second property kind = %v, want PropSet", obj.Props[1].Kind)
	}
}

func TestArrayLiteralElisions(t *testing.T) {
	expr := parseExpr(t, "[1, , 3]")
	arr, ok := expr.(*ast.Arr)
	if !ok {
		t.Fatalf("expected *ast.Arr, got %T", expr)
	}
	if len(arr.Elements) != 3 {
		t.Fatalf("expected 3 elements, got %d", len(arr.Elements))
	}
	if arr.Elements[1] != nil {
		t.Errorf("expected middle element to be nil (elision), got %#v", arr.Elements[1])
	}
}

func TestUnaryOperators(t *testing.T) {
	tests := []struct {
		input string
		op    ast.UnopTag
	}{
		{"-a", ast.UnopMinus}, {"+a", ast.UnopPlus}, {"!a", ast.UnopNot},
		{"~a", ast.UnopBitNot}, {"typeof a", ast.UnopTypeof},
		{"void a", ast.UnopVoid}, {"delete a.b", ast.UnopDelete},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			expr := parseExpr(t, tt.input)
			u, ok := expr.(*ast.Unop)
			if !ok {
				t.Fatalf("expected *ast.Unop, got %T", expr)
			}
			if u.Op != tt.op {
				t.Errorf("op = %s, want %s", u.Op, tt.op)
			}
		})
	}
}

func TestRegexpVsDivisionDisambiguation(t *testing.T) {
	// After an identifier (operand), `/` is division.
	expr := parseExpr(t, "a / b")
	if _, ok := expr.(*ast.Binop); !ok {
		t.Fatalf("expected division to parse as *ast.Binop, got %T", expr)
	}

	// At the start of an expression, `/.../ ` is a regexp literal.
	expr = parseExpr(t, "/abc/g")
	if _, ok := expr.(*ast.RegExp); !ok {
		t.Fatalf("expected regexp literal, got %T", expr)
	}
}
