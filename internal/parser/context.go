package parser

import "github.com/mhaller/es5parser/internal/ast"

// labelType distinguishes a plain statement label from one attached to
// an iteration statement — `continue` may only target the latter
// (spec.md §4.4, ErrInvalidLabelType).
type labelType int

const (
	labelStatement labelType = iota
	labelIteration
)

// parseContext is the stack-discipline state threaded through statement
// and expression parsing: which constructs legally nest inside which
// (spec.md §4.4). Every field is saved and restored around the
// constructs that temporarily change it, rather than being a true
// stack, since at most one save is ever live at a time per construct.
type parseContext struct {
	iteration bool
	switchSt  bool
	function  bool
	allowIn   bool
	labels    map[string]labelType
}

func newParseContext() *parseContext {
	return &parseContext{allowIn: true, labels: map[string]labelType{}}
}

// withAllowIn runs fn with allowIn temporarily set, restoring the prior
// value afterward regardless of how fn returns.
func (p *Parser) withAllowIn(allowIn bool, fn func() error) error {
	saved := p.cx.allowIn
	p.cx.allowIn = allowIn
	err := fn()
	p.cx.allowIn = saved
	return err
}

// withIteration runs fn with the iteration flag set, for parsing the
// body of a loop (enables bare `break`/`continue` inside it).
func (p *Parser) withIteration(fn func() (ast.Stmt, error)) (ast.Stmt, error) {
	saved := p.cx.iteration
	p.cx.iteration = true
	stmt, err := fn()
	p.cx.iteration = saved
	return stmt, err
}

// withLabels binds each of labels to typ for the duration of fn, then
// removes them — labels only scope over the statement they prefix.
func (p *Parser) withLabels(labels []*ast.Id, typ labelType, fn func() (ast.Stmt, error)) (ast.Stmt, error) {
	for _, id := range labels {
		p.cx.labels[id.Name.Text] = typ
	}
	stmt, err := fn()
	for _, id := range labels {
		delete(p.cx.labels, id.Name.Text)
	}
	return stmt, err
}
