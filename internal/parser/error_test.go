package parser_test

import (
	"testing"

	"github.com/mhaller/es5parser/internal/parser"
)

func TestErrorKinds(t *testing.T) {
	tests := []struct {
		name string
		src  string
		kind parser.ErrorKind
	}{
		{"unexpected token", "var;", parser.ErrUnexpectedToken},
		{"failed ASI", "a = 1 b = 2;", parser.ErrFailedASI},
		{"contextual keyword in new.target", "new.foo;", parser.ErrUnexpectedToken},
		{"illegal strict binding", `"use strict"; var eval = 1;`, parser.ErrIllegalStrictBinding},
		{"invalid LHS", "1 = 2;", parser.ErrInvalidLHS},
		{"invalid label", "continue nope;", parser.ErrInvalidLabel},
		{"illegal break", "break;", parser.ErrIllegalBreak},
		{"illegal continue", "continue;", parser.ErrIllegalContinue},
		{"top level return", "return 1;", parser.ErrTopLevelReturn},
		{"strict with", `"use strict"; with (x) {}`, parser.ErrStrictWith},
		{"throw argument", "throw\n1;", parser.ErrThrowArgument},
		{"orphan try", "try { a(); }", parser.ErrOrphanTry},
		{"duplicate default", "switch (x) { default: break; default: break; }", parser.ErrDuplicateDefault},
		{"unsupported feature", "for (const x = 1;;) {}", parser.ErrUnsupportedFeature},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, errs := parser.ParseScript(tt.src)
			if len(errs) == 0 {
				t.Fatalf("expected an error parsing %q", tt.src)
			}
			if errs[0].Kind != tt.kind {
				t.Errorf("Kind = %s, want %s (message: %s)", errs[0].Kind, tt.kind, errs[0].Error())
			}
		})
	}
}

func TestParserStopsAtFirstError(t *testing.T) {
	_, errs := parser.ParseScript("break; break; break;")
	if len(errs) != 1 {
		t.Fatalf("expected exactly 1 error (parser stops at the first), got %d", len(errs))
	}
}

func TestErrorMessagesIncludePosition(t *testing.T) {
	_, errs := parser.ParseScript("break;")
	if len(errs) == 0 {
		t.Fatal("expected an error")
	}
	msg := errs[0].Error()
	if msg == "" {
		t.Error("expected a non-empty error message")
	}
}
