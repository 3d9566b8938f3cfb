package ast_test

import (
	"testing"

	"github.com/mhaller/es5parser/internal/ast"
	"github.com/mhaller/es5parser/internal/token"
)

func TestToUnopCoversAllSevenOperators(t *testing.T) {
	tests := []struct {
		typ token.Type
		tag ast.UnopTag
		str string
	}{
		{token.MINUS, ast.UnopMinus, "-"},
		{token.PLUS, ast.UnopPlus, "+"},
		{token.BANG, ast.UnopNot, "!"},
		{token.TILDE, ast.UnopBitNot, "~"},
		{token.TYPEOF, ast.UnopTypeof, "typeof"},
		{token.VOID, ast.UnopVoid, "void"},
		{token.DELETE, ast.UnopDelete, "delete"},
	}
	for _, tt := range tests {
		tag, ok := ast.ToUnop(tt.typ)
		if !ok {
			t.Fatalf("ToUnop(%v) = false, want true", tt.typ)
		}
		if tag != tt.tag {
			t.Errorf("ToUnop(%v) = %v, want %v", tt.typ, tag, tt.tag)
		}
		if tag.String() != tt.str {
			t.Errorf("%v.String() = %q, want %q", tag, tag.String(), tt.str)
		}
	}
}

func TestToUnopRejectsNonUnaryTokens(t *testing.T) {
	if _, ok := ast.ToUnop(token.INC); ok {
		t.Error("ToUnop(INC) = true, want false (it's a prefix/postfix update, not a unary op)")
	}
}

func TestBinopPrecedenceLevels(t *testing.T) {
	// 8 distinct precedence levels (4 through 11) spread across the 21
	// binary operators.
	tests := []struct {
		tag   ast.BinopTag
		level int
	}{
		{ast.BinopBitOr, 4},
		{ast.BinopBitXor, 5},
		{ast.BinopBitAnd, 6},
		{ast.BinopEq, 7},
		{ast.BinopNEq, 7},
		{ast.BinopStrictEq, 7},
		{ast.BinopStrictNEq, 7},
		{ast.BinopLt, 8},
		{ast.BinopIn, 8},
		{ast.BinopInstanceof, 8},
		{ast.BinopLShift, 9},
		{ast.BinopPlus, 10},
		{ast.BinopMinus, 10},
		{ast.BinopTimes, 11},
		{ast.BinopDiv, 11},
		{ast.BinopMod, 11},
	}
	for _, tt := range tests {
		if got := tt.tag.Precedence(); got != tt.level {
			t.Errorf("%v.Precedence() = %d, want %d", tt.tag, got, tt.level)
		}
	}
}

func TestToBinopInRequiresAllowIn(t *testing.T) {
	if _, ok := ast.ToBinop(token.IN, false); ok {
		t.Error("ToBinop(IN, allowIn=false) = true, want false")
	}
	tag, ok := ast.ToBinop(token.IN, true)
	if !ok || tag != ast.BinopIn {
		t.Errorf("ToBinop(IN, allowIn=true) = (%v, %v), want (BinopIn, true)", tag, ok)
	}
}

func TestToBinopRejectsAssignmentTokens(t *testing.T) {
	if _, ok := ast.ToBinop(token.ASSIGN, true); ok {
		t.Error("ToBinop(ASSIGN) = true, want false")
	}
}

func TestLogicalOperatorsAreLowerPrecedenceThanAnyBinop(t *testing.T) {
	orTag, _ := ast.ToLogop(token.OR_OR)
	andTag, _ := ast.ToLogop(token.AND_AND)
	if orTag.Precedence() >= andTag.Precedence() {
		t.Errorf("|| precedence (%d) should be lower than && (%d)", orTag.Precedence(), andTag.Precedence())
	}
	for _, level := range []int{4, 5, 6, 7, 8, 9, 10, 11} {
		if andTag.Precedence() >= level {
			t.Errorf("&& precedence (%d) should be lower than every binop level, found >= %d", andTag.Precedence(), level)
		}
	}
}

func TestToAssopCoversAllElevenCompoundOperators(t *testing.T) {
	tests := []struct {
		typ token.Type
		tag ast.AssopTag
		str string
	}{
		{token.PLUS_EQ, ast.AssopPlus, "+="},
		{token.MINUS_EQ, ast.AssopMinus, "-="},
		{token.STAR_EQ, ast.AssopTimes, "*="},
		{token.SLASH_EQ, ast.AssopDiv, "/="},
		{token.PERCENT_EQ, ast.AssopMod, "%="},
		{token.SHL_EQ, ast.AssopLShift, "<<="},
		{token.SHR_EQ, ast.AssopRShift, ">>="},
		{token.USHR_EQ, ast.AssopURShift, ">>>="},
		{token.OR_EQ, ast.AssopBitOr, "|="},
		{token.XOR_EQ, ast.AssopBitXor, "^="},
		{token.AND_EQ, ast.AssopBitAnd, "&="},
	}
	for _, tt := range tests {
		tag, ok := ast.ToAssop(tt.typ)
		if !ok || tag != tt.tag {
			t.Errorf("ToAssop(%v) = (%v, %v), want (%v, true)", tt.typ, tag, ok, tt.tag)
		}
		if tag.String() != tt.str {
			t.Errorf("%v.String() = %q, want %q", tag, tag.String(), tt.str)
		}
	}
}

func TestToAssopRejectsPlainAssign(t *testing.T) {
	if _, ok := ast.ToAssop(token.ASSIGN); ok {
		t.Error("ToAssop(ASSIGN) = true, want false (plain `=` is not a compound assignment)")
	}
}
