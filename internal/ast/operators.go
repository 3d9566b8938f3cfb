package ast

import "github.com/mhaller/es5parser/internal/token"

// UnopTag classifies a prefix unary operator (spec.md §4.1).
type UnopTag int

const (
	UnopMinus UnopTag = iota
	UnopPlus
	UnopNot
	UnopBitNot
	UnopTypeof
	UnopVoid
	UnopDelete
)

var unopNames = map[UnopTag]string{
	UnopMinus: "-", UnopPlus: "+", UnopNot: "!", UnopBitNot: "~",
	UnopTypeof: "typeof", UnopVoid: "void", UnopDelete: "delete",
}

func (t UnopTag) String() string { return unopNames[t] }

// ToUnop classifies tok as a prefix unary operator, or reports false.
func ToUnop(typ token.Type) (UnopTag, bool) {
	switch typ {
	case token.MINUS:
		return UnopMinus, true
	case token.PLUS:
		return UnopPlus, true
	case token.BANG:
		return UnopNot, true
	case token.TILDE:
		return UnopBitNot, true
	case token.TYPEOF:
		return UnopTypeof, true
	case token.VOID:
		return UnopVoid, true
	case token.DELETE:
		return UnopDelete, true
	default:
		return 0, false
	}
}

// BinopTag classifies one of the 21 binary operators, each carrying its
// own fixed precedence (spec.md §4.1: "21 binary ops, 11 precedence
// levels"). Precedence numbers follow the original grammar's table:
// equality=7, relational/in/instanceof=8, shift=9, additive=10,
// multiplicative=11, bitwise-or=4, bitwise-xor=5, bitwise-and=6.
type BinopTag int

const (
	BinopEq BinopTag = iota
	BinopNEq
	BinopStrictEq
	BinopStrictNEq
	BinopLt
	BinopLEq
	BinopGt
	BinopGEq
	BinopLShift
	BinopRShift
	BinopURShift
	BinopPlus
	BinopMinus
	BinopTimes
	BinopDiv
	BinopMod
	BinopBitOr
	BinopBitXor
	BinopBitAnd
	BinopIn
	BinopInstanceof
)

var binopNames = map[BinopTag]string{
	BinopEq: "==", BinopNEq: "!=", BinopStrictEq: "===", BinopStrictNEq: "!==",
	BinopLt: "<", BinopLEq: "<=", BinopGt: ">", BinopGEq: ">=",
	BinopLShift: "<<", BinopRShift: ">>", BinopURShift: ">>>",
	BinopPlus: "+", BinopMinus: "-", BinopTimes: "*", BinopDiv: "/", BinopMod: "%",
	BinopBitOr: "|", BinopBitXor: "^", BinopBitAnd: "&",
	BinopIn: "in", BinopInstanceof: "instanceof",
}

func (t BinopTag) String() string { return binopNames[t] }

var binopPrecedence = map[BinopTag]int{
	BinopEq: 7, BinopNEq: 7, BinopStrictEq: 7, BinopStrictNEq: 7,
	BinopLt: 8, BinopLEq: 8, BinopGt: 8, BinopGEq: 8, BinopIn: 8, BinopInstanceof: 8,
	BinopLShift: 9, BinopRShift: 9, BinopURShift: 9,
	BinopPlus: 10, BinopMinus: 10,
	BinopTimes: 11, BinopDiv: 11, BinopMod: 11,
	BinopBitOr: 4, BinopBitXor: 5, BinopBitAnd: 6,
}

// Precedence returns the binding power used by the expression parser's
// precedence-climbing loop.
func (t BinopTag) Precedence() int { return binopPrecedence[t] }

// ToBinop classifies typ as a binary operator. "in" only counts when
// allowIn is true (spec.md §4.4: the for-head suppresses "in" so that
// `for (x in y)` parses as a ForIn rather than a binary expression).
func ToBinop(typ token.Type, allowIn bool) (BinopTag, bool) {
	switch typ {
	case token.EQ:
		return BinopEq, true
	case token.NOT_EQ:
		return BinopNEq, true
	case token.STRICT_EQ:
		return BinopStrictEq, true
	case token.STRICT_NE:
		return BinopStrictNEq, true
	case token.LT:
		return BinopLt, true
	case token.LE:
		return BinopLEq, true
	case token.GT:
		return BinopGt, true
	case token.GE:
		return BinopGEq, true
	case token.SHL:
		return BinopLShift, true
	case token.SHR:
		return BinopRShift, true
	case token.USHR:
		return BinopURShift, true
	case token.PLUS:
		return BinopPlus, true
	case token.MINUS:
		return BinopMinus, true
	case token.STAR:
		return BinopTimes, true
	case token.SLASH:
		return BinopDiv, true
	case token.PERCENT:
		return BinopMod, true
	case token.PIPE:
		return BinopBitOr, true
	case token.CARET:
		return BinopBitXor, true
	case token.AMP:
		return BinopBitAnd, true
	case token.INSTANCEOF:
		return BinopInstanceof, true
	case token.IN:
		if !allowIn {
			return 0, false
		}
		return BinopIn, true
	default:
		return 0, false
	}
}

// LogopTag classifies the 2 logical (short-circuiting) operators.
type LogopTag int

const (
	LogopOr LogopTag = iota
	LogopAnd
)

var logopNames = map[LogopTag]string{LogopOr: "||", LogopAnd: "&&"}

func (t LogopTag) String() string { return logopNames[t] }

var logopPrecedence = map[LogopTag]int{LogopOr: 2, LogopAnd: 3}

func (t LogopTag) Precedence() int { return logopPrecedence[t] }

// ToLogop classifies typ as a logical operator.
func ToLogop(typ token.Type) (LogopTag, bool) {
	switch typ {
	case token.OR_OR:
		return LogopOr, true
	case token.AND_AND:
		return LogopAnd, true
	default:
		return 0, false
	}
}

// AssopTag classifies a compound assignment operator (`+=`, `-=`, ...).
// All compound assignment operators share precedence 0 (lowest) and are
// right-associative, handled directly by the assignment-expression rule
// rather than the binary precedence climb.
type AssopTag int

const (
	AssopPlus AssopTag = iota
	AssopMinus
	AssopTimes
	AssopDiv
	AssopMod
	AssopLShift
	AssopRShift
	AssopURShift
	AssopBitOr
	AssopBitXor
	AssopBitAnd
)

var assopNames = map[AssopTag]string{
	AssopPlus: "+=", AssopMinus: "-=", AssopTimes: "*=", AssopDiv: "/=", AssopMod: "%=",
	AssopLShift: "<<=", AssopRShift: ">>=", AssopURShift: ">>>=",
	AssopBitOr: "|=", AssopBitXor: "^=", AssopBitAnd: "&=",
}

func (t AssopTag) String() string { return assopNames[t] }

// ToAssop classifies typ as a compound assignment operator.
func ToAssop(typ token.Type) (AssopTag, bool) {
	switch typ {
	case token.PLUS_EQ:
		return AssopPlus, true
	case token.MINUS_EQ:
		return AssopMinus, true
	case token.STAR_EQ:
		return AssopTimes, true
	case token.SLASH_EQ:
		return AssopDiv, true
	case token.PERCENT_EQ:
		return AssopMod, true
	case token.SHL_EQ:
		return AssopLShift, true
	case token.SHR_EQ:
		return AssopRShift, true
	case token.USHR_EQ:
		return AssopURShift, true
	case token.OR_EQ:
		return AssopBitOr, true
	case token.XOR_EQ:
		return AssopBitXor, true
	case token.AND_EQ:
		return AssopBitAnd, true
	default:
		return 0, false
	}
}
