package parser

import "github.com/mhaller/es5parser/internal/ast"

// toAssignTarget reinterprets an already-parsed Expr as an assignment
// target, implementing the cover grammar's "Expr -> AssignTarget"
// conversion (spec.md §4.6): only an identifier or a member expression
// (`a.b`, `a[b]`) is a legal target of `++`, `--`, `=`, or a compound
// assignment. Anything else fails with a reason describing what was
// found instead, used to build an ErrInvalidLHS.
func toAssignTarget(e ast.Expr) (ast.AssignTarget, string) {
	switch t := e.(type) {
	case *ast.Id:
		return t, ""
	case *ast.Dot:
		return t, ""
	case *ast.Brack:
		return t, ""
	default:
		return nil, describeCoverFailure(e)
	}
}

// toAssignPatt reinterprets an Expr as the left side of `=`. The full
// ES6 grammar additionally covers array/object literals reinterpreted
// as destructuring patterns; destructuring beyond a bare identifier is
// an explicit non-goal here, so AssignPatt coincides with AssignTarget
// and an array/object literal on the left of `=` is reported as
// ErrUnsupportedFeature by the caller rather than ErrInvalidLHS.
func toAssignPatt(e ast.Expr) (ast.AssignPatt, string, bool) {
	if _, isArr := e.(*ast.Arr); isArr {
		return nil, "", true
	}
	if _, isObj := e.(*ast.Obj); isObj {
		return nil, "", true
	}
	target, reason := toAssignTarget(e)
	return target, reason, false
}

func describeCoverFailure(e ast.Expr) string {
	switch e.(type) {
	case *ast.Call:
		return "a call expression is not assignable"
	case *ast.Binop, *ast.Logop:
		return "a binary expression is not assignable"
	case *ast.Number, *ast.String, *ast.True, *ast.False, *ast.Null, *ast.RegExp:
		return "a literal is not assignable"
	case *ast.Assign, *ast.BinAssign:
		return "an assignment expression is not assignable"
	default:
		return "expression is not a valid assignment target"
	}
}
