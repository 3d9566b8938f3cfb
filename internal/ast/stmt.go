package ast

func (*Block) statementNode()    {}
func (*VarStmt) statementNode()  {}
func (*Empty) statementNode()    {}
func (*ExprStmt) statementNode() {}
func (*If) statementNode()       {}
func (*DoWhile) statementNode()  {}
func (*While) statementNode()    {}
func (*For) statementNode()      {}
func (*ForIn) statementNode()    {}
func (*ForOf) statementNode()    {}
func (*Switch) statementNode()   {}
func (*Return) statementNode()   {}
func (*Break) statementNode()    {}
func (*Cont) statementNode()     {}
func (*With) statementNode()     {}
func (*Throw) statementNode()    {}
func (*Try) statementNode()      {}
func (*Debugger) statementNode() {}
func (*Labelled) statementNode() {}

// Semi records whether a statement's terminating semicolon was
// explicit in the source or inserted by ASI (spec.md §4.5); kept for
// tooling that round-trips source formatting, not consulted by the AST
// consumer otherwise.
type Semi int

const (
	SemiExplicit Semi = iota
	SemiInserted
)

// Block is a `{ ... }` statement list.
type Block struct {
	BaseNode
	Body []StmtListItem
}

// VarStmt is a `var a = 1, b;` declaration statement.
type VarStmt struct {
	BaseNode
	Dtors []*Dtor
	Semi  Semi
}

// Empty is a bare `;`.
type Empty struct{ BaseNode }

// ExprStmt is an expression used as a statement.
type ExprStmt struct {
	BaseNode
	Expr Expr
	Semi Semi
}

// If is an `if (test) cons [else alt]` statement.
type If struct {
	BaseNode
	Test       Expr
	Cons       Stmt
	Alt        Stmt // nil if no else clause
}

// DoWhile is `do body while (test);`.
type DoWhile struct {
	BaseNode
	Body Stmt
	Test Expr
	Semi Semi
}

// While is `while (test) body`.
type While struct {
	BaseNode
	Test Expr
	Body Stmt
}

// ForHead is the sealed set of C-style `for` head shapes.
type ForHead interface {
	Node
	forHeadNode()
}

func (*ForHeadExpr) forHeadNode() {}
func (*ForHeadVar) forHeadNode()  {}
func (*ForHeadLet) forHeadNode()  {}

// ForHeadExpr is `for (expr; ...)`.
type ForHeadExpr struct {
	BaseNode
	Expr Expr
}

// ForHeadVar is `for (var a = 1, b; ...)`.
type ForHeadVar struct {
	BaseNode
	Dtors []*Dtor
}

// ForHeadLet is `for (let a = 1, b; ...)`.
type ForHeadLet struct {
	BaseNode
	Dtors []*Dtor
}

// For is the C-style `for (head; test; update) body` statement. Head,
// Test, and Update are independently optional (`for (;;) {}` is legal).
type For struct {
	BaseNode
	Head   ForHead // nil if omitted
	Test   Expr    // nil if omitted
	Update Expr    // nil if omitted
	Body   Stmt
}

// ForInHead is the sealed set of `for (... in ...)` head shapes,
// including the legacy `for (var x = init in obj)` form (spec.md §4.5's
// "legacy VarInit").
type ForInHead interface {
	Node
	forInHeadNode()
}

func (*ForInHeadPatt) forInHeadNode()    {}
func (*ForInHeadVar) forInHeadNode()     {}
func (*ForInHeadLet) forInHeadNode()     {}
func (*ForInHeadVarInit) forInHeadNode() {}

// ForInHeadPatt is `for (lhs in obj)` where lhs is a plain assignment
// target (no var/let).
type ForInHeadPatt struct {
	BaseNode
	Target AssignTarget
}

// ForInHeadVar is `for (var x in obj)`.
type ForInHeadVar struct {
	BaseNode
	Lhs Patt
}

// ForInHeadLet is `for (let x in obj)`.
type ForInHeadLet struct {
	BaseNode
	Lhs Patt
}

// ForInHeadVarInit is the legacy, annex-B-only `for (var x = init in
// obj)` form: only legal when Lhs is a simple identifier.
type ForInHeadVarInit struct {
	BaseNode
	Lhs  *Id
	Init Expr
}

// ForIn is `for (head in obj) body`.
type ForIn struct {
	BaseNode
	Head ForInHead
	Obj  Expr
	Body Stmt
}

// ForOfHead is the sealed set of `for (... of ...)` head shapes.
type ForOfHead interface {
	Node
	forOfHeadNode()
}

func (*ForOfHeadPatt) forOfHeadNode() {}
func (*ForOfHeadVar) forOfHeadNode()  {}
func (*ForOfHeadLet) forOfHeadNode()  {}

// ForOfHeadPatt is `for (lhs of iter)` where lhs is a plain assignment target.
type ForOfHeadPatt struct {
	BaseNode
	Target AssignTarget
}

// ForOfHeadVar is `for (var x of iter)`.
type ForOfHeadVar struct {
	BaseNode
	Lhs Patt
}

// ForOfHeadLet is `for (let x of iter)`.
type ForOfHeadLet struct {
	BaseNode
	Lhs Patt
}

// ForOf is `for (head of iter) body`.
type ForOf struct {
	BaseNode
	Head ForOfHead
	Iter Expr
	Body Stmt
}

// Case is one `case test:` or `default:` clause of a switch.
type Case struct {
	BaseNode
	Test *Expr // nil for the default clause
	Body []StmtListItem
}

// Switch is `switch (disc) { case ... default ... }`.
type Switch struct {
	BaseNode
	Disc  Expr
	Cases []*Case
}

// Return is `return [arg];`.
type Return struct {
	BaseNode
	Arg  Expr // nil if omitted
	Semi Semi
}

// Break is `break [label];`.
type Break struct {
	BaseNode
	Label *Id // nil if omitted
	Semi  Semi
}

// Cont is `continue [label];`.
type Cont struct {
	BaseNode
	Label *Id // nil if omitted
	Semi  Semi
}

// With is `with (obj) body` (sloppy-mode only).
type With struct {
	BaseNode
	Obj  Expr
	Body Stmt
}

// Throw is `throw arg;`.
type Throw struct {
	BaseNode
	Arg  Expr
	Semi Semi
}

// Catch is the `catch (param) { body }` clause of a try statement.
type Catch struct {
	BaseNode
	Param Patt
	Body  []StmtListItem
}

// Try is `try { body } [catch (e) { ... }] [finally { ... }]`.
type Try struct {
	BaseNode
	Body    []StmtListItem
	Catch   *Catch          // nil if absent
	Finally []StmtListItem  // nil if absent
}

// Debugger is a bare `debugger;` statement.
type Debugger struct {
	BaseNode
	Semi Semi
}

// Labelled is `label: stmt`, possibly with several stacked labels
// (`a: b: stmt`) collapsed into one Labelled with Labels=[a,b].
type Labelled struct {
	BaseNode
	Labels []*Id
	Body   Stmt
}
