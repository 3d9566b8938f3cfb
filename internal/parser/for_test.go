package parser_test

import (
	"testing"

	"github.com/mhaller/es5parser/internal/ast"
)

func TestForCStyle(t *testing.T) {
	script := parseOK(t, "for (var i = 0; i < 10; i++) {}")
	forStmt, ok := script.Body[0].(*ast.For)
	if !ok {
		t.Fatalf("expected *ast.For, got %T", script.Body[0])
	}
	if _, ok := forStmt.Head.(*ast.ForHeadVar); !ok {
		t.Errorf("expected *ast.ForHeadVar, got %T", forStmt.Head)
	}
	if forStmt.Test == nil || forStmt.Update == nil {
		t.Error("expected both Test and Update to be present")
	}
}

func TestForCStyleAllPartsOmitted(t *testing.T) {
	script := parseOK(t, "for (;;) {}")
	forStmt, ok := script.Body[0].(*ast.For)
	if !ok {
		t.Fatalf("expected *ast.For, got %T", script.Body[0])
	}
	if forStmt.Head != nil || forStmt.Test != nil || forStmt.Update != nil {
		t.Errorf("expected all parts nil, got Head=%#v Test=%#v Update=%#v", forStmt.Head, forStmt.Test, forStmt.Update)
	}
}

func TestForExprHead(t *testing.T) {
	script := parseOK(t, "for (i = 0; i < 10; i++) {}")
	forStmt := script.Body[0].(*ast.For)
	if _, ok := forStmt.Head.(*ast.ForHeadExpr); !ok {
		t.Errorf("expected *ast.ForHeadExpr, got %T", forStmt.Head)
	}
}

func TestForIn(t *testing.T) {
	script := parseOK(t, "for (x in obj) {}")
	forIn, ok := script.Body[0].(*ast.ForIn)
	if !ok {
		t.Fatalf("expected *ast.ForIn, got %T", script.Body[0])
	}
	if _, ok := forIn.Head.(*ast.ForInHeadPatt); !ok {
		t.Errorf("expected *ast.ForInHeadPatt, got %T", forIn.Head)
	}
}

func TestForInWithVar(t *testing.T) {
	script := parseOK(t, "for (var x in obj) {}")
	forIn, ok := script.Body[0].(*ast.ForIn)
	if !ok {
		t.Fatalf("expected *ast.ForIn, got %T", script.Body[0])
	}
	if _, ok := forIn.Head.(*ast.ForInHeadVar); !ok {
		t.Errorf("expected *ast.ForInHeadVar, got %T", forIn.Head)
	}
}

func TestForInLegacyVarInit(t *testing.T) {
	// Annex-B-only legacy form: `for (var x = init in obj)`.
	script := parseOK(t, "for (var x = 0 in obj) {}")
	forIn, ok := script.Body[0].(*ast.ForIn)
	if !ok {
		t.Fatalf("expected *ast.ForIn, got %T", script.Body[0])
	}
	head, ok := forIn.Head.(*ast.ForInHeadVarInit)
	if !ok {
		t.Fatalf("expected *ast.ForInHeadVarInit, got %T", forIn.Head)
	}
	if head.Lhs.Name.Text != "x" {
		t.Errorf("Lhs = %q, want %q", head.Lhs.Name.Text, "x")
	}
}

func TestForInWithLet(t *testing.T) {
	script := parseOK(t, "for (let x in obj) {}")
	forIn, ok := script.Body[0].(*ast.ForIn)
	if !ok {
		t.Fatalf("expected *ast.ForIn, got %T", script.Body[0])
	}
	if _, ok := forIn.Head.(*ast.ForInHeadLet); !ok {
		t.Errorf("expected *ast.ForInHeadLet, got %T", forIn.Head)
	}
}

func TestForOf(t *testing.T) {
	script := parseOK(t, "for (x of iter) {}")
	forOf, ok := script.Body[0].(*ast.ForOf)
	if !ok {
		t.Fatalf("expected *ast.ForOf, got %T", script.Body[0])
	}
	if _, ok := forOf.Head.(*ast.ForOfHeadPatt); !ok {
		t.Errorf("expected *ast.ForOfHeadPatt, got %T", forOf.Head)
	}
}

func TestForOfWithVarAndLet(t *testing.T) {
	script := parseOK(t, "for (var x of iter) {}")
	forOf := script.Body[0].(*ast.ForOf)
	if _, ok := forOf.Head.(*ast.ForOfHeadVar); !ok {
		t.Errorf("expected *ast.ForOfHeadVar, got %T", forOf.Head)
	}

	script = parseOK(t, "for (let x of iter) {}")
	forOf = script.Body[0].(*ast.ForOf)
	if _, ok := forOf.Head.(*ast.ForOfHeadLet); !ok {
		t.Errorf("expected *ast.ForOfHeadLet, got %T", forOf.Head)
	}
}

func TestForOfHasNoLegacyVarInitForm(t *testing.T) {
	parseErr(t, "for (var x = 0 of iter) {}")
}

func TestForConstIsUnsupported(t *testing.T) {
	parseErr(t, "for (const x = 0; x < 1; x++) {}")
}

func TestForHeadSuppressesInOperator(t *testing.T) {
	// Without allow_in=false in the for-head, `a in b` inside the test
	// position of a C-style for's first clause would be ambiguous with
	// a for-in head; parenthesizing recovers the binary `in`.
	script := parseOK(t, "for ((a in b); ; ) {}")
	forStmt, ok := script.Body[0].(*ast.For)
	if !ok {
		t.Fatalf("expected *ast.For, got %T", script.Body[0])
	}
	head, ok := forStmt.Head.(*ast.ForHeadExpr)
	if !ok {
		t.Fatalf("expected *ast.ForHeadExpr, got %T", forStmt.Head)
	}
	if _, ok := head.Expr.(*ast.Binop); !ok {
		t.Errorf("expected parenthesized `in` to parse as *ast.Binop, got %T", head.Expr)
	}
}

func TestForUpdateAllowsIn(t *testing.T) {
	// allow_in is restored to true for the update clause.
	parseOK(t, "for (var i = 0; i < 10; i = i in obj ? 1 : 0) {}")
}

func TestMultipleVarDeclaratorsInForHead(t *testing.T) {
	script := parseOK(t, "for (var i = 0, j = 10; i < j; i++) {}")
	forStmt := script.Body[0].(*ast.For)
	head, ok := forStmt.Head.(*ast.ForHeadVar)
	if !ok {
		t.Fatalf("expected *ast.ForHeadVar, got %T", forStmt.Head)
	}
	if len(head.Dtors) != 2 {
		t.Errorf("expected 2 declarators, got %d", len(head.Dtors))
	}
}
