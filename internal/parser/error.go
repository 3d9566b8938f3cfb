package parser

import (
	"fmt"

	"github.com/mhaller/es5parser/internal/token"
)

// ErrorKind is the closed taxonomy of parse failures (spec.md §7).
type ErrorKind int

const (
	ErrUnexpectedToken ErrorKind = iota
	ErrFailedASI
	ErrContextualKeyword
	ErrIllegalStrictBinding
	ErrInvalidLHS
	ErrInvalidLabel
	ErrInvalidLabelType
	ErrIllegalBreak
	ErrIllegalContinue
	ErrTopLevelReturn
	ErrStrictWith
	ErrThrowArgument
	ErrOrphanTry
	ErrDuplicateDefault
	ErrUnsupportedFeature
	ErrLexError
)

var errorKindNames = map[ErrorKind]string{
	ErrUnexpectedToken:      "unexpected token",
	ErrFailedASI:            "failed automatic semicolon insertion",
	ErrContextualKeyword:    "unexpected contextual keyword",
	ErrIllegalStrictBinding: "illegal strict-mode binding",
	ErrInvalidLHS:           "invalid left-hand side",
	ErrInvalidLabel:         "undefined label",
	ErrInvalidLabelType:     "label does not denote an iteration statement",
	ErrIllegalBreak:         "illegal break",
	ErrIllegalContinue:      "illegal continue",
	ErrTopLevelReturn:       "return outside of a function",
	ErrStrictWith:           "'with' statement not allowed in strict mode",
	ErrThrowArgument:        "throw argument required on the same line",
	ErrOrphanTry:            "missing catch or finally after try block",
	ErrDuplicateDefault:     "more than one default clause in switch",
	ErrUnsupportedFeature:   "unsupported feature",
	ErrLexError:             "lexical error",
}

func (k ErrorKind) String() string { return errorKindNames[k] }

// ParseError is the single structured error type the parser produces
// (spec.md §7): a Kind plus a Pos and whatever payload that kind needs.
type ParseError struct {
	Kind ErrorKind
	Pos  token.Posn

	Token   token.Token // ErrUnexpectedToken, ErrContextualKeyword, ErrIllegalBreak/Continue, ErrOrphanTry
	Name    string      // ErrIllegalStrictBinding, ErrInvalidLabel, ErrInvalidLabelType, ErrUnsupportedFeature
	Reason  string       // ErrInvalidLHS: what about the cover grammar failed
	Message string       // freeform fallback (ErrFailedASI, ErrLexError)
}

func (e *ParseError) Error() string {
	switch e.Kind {
	case ErrUnexpectedToken:
		return fmt.Sprintf("%s: unexpected token %q", e.Pos, e.Token.Literal)
	case ErrContextualKeyword:
		return fmt.Sprintf("%s: %q cannot be used here", e.Pos, e.Token.Literal)
	case ErrIllegalStrictBinding:
		return fmt.Sprintf("%s: %q is not a legal strict-mode binding name", e.Pos, e.Name)
	case ErrInvalidLHS:
		return fmt.Sprintf("%s: invalid left-hand side in assignment (%s)", e.Pos, e.Reason)
	case ErrInvalidLabel:
		return fmt.Sprintf("%s: undefined label %q", e.Pos, e.Name)
	case ErrInvalidLabelType:
		return fmt.Sprintf("%s: label %q does not denote an iteration statement", e.Pos, e.Name)
	case ErrIllegalBreak:
		return fmt.Sprintf("%s: illegal break statement", e.Pos)
	case ErrIllegalContinue:
		return fmt.Sprintf("%s: illegal continue statement", e.Pos)
	case ErrTopLevelReturn:
		return fmt.Sprintf("%s: return statement outside of a function", e.Pos)
	case ErrStrictWith:
		return fmt.Sprintf("%s: 'with' statement not allowed in strict mode code", e.Pos)
	case ErrThrowArgument:
		return fmt.Sprintf("%s: throw requires an argument on the same line", e.Pos)
	case ErrOrphanTry:
		return fmt.Sprintf("%s: missing catch or finally after try block", e.Pos)
	case ErrDuplicateDefault:
		return fmt.Sprintf("%s: more than one default clause in switch statement", e.Pos)
	case ErrUnsupportedFeature:
		return fmt.Sprintf("%s: unsupported feature: %s", e.Pos, e.Name)
	case ErrFailedASI, ErrLexError:
		return fmt.Sprintf("%s: %s", e.Pos, e.Message)
	default:
		return fmt.Sprintf("%s: parse error", e.Pos)
	}
}
