// Package ast defines the Abstract Syntax Tree node types produced by
// the parser: expressions, statements, patterns, and the program root.
package ast

import "github.com/mhaller/es5parser/internal/token"

// Node is the base interface for all AST nodes: every node can report
// its own source span.
type Node interface {
	Span() token.Span
}

// Expr is any node that produces a value.
type Expr interface {
	Node
	expressionNode()
}

// Stmt is any node that performs an action.
type Stmt interface {
	Node
	statementNode()
	stmtListItemNode()
}

// BaseNode carries the span every concrete node embeds. Its zero value
// means "not yet resolved"; the node builder back-patches EndPos once
// the node's extent is known (spec.md §4.2). Embedding it also
// satisfies StmtListItem's marker method, so every Stmt and Decl
// concrete type is usable directly in a statement list.
type BaseNode struct {
	Sp token.Span
}

func (b BaseNode) Span() token.Span   { return b.Sp }
func (b BaseNode) stmtListItemNode()  {}

// Script is the root of a parsed program.
type Script struct {
	BaseNode
	Body []StmtListItem
}

// StmtListItem is either a Stmt or a Decl (currently only function
// declarations; spec.md's declaration_opt only recognizes `function`).
type StmtListItem interface {
	Node
	stmtListItemNode()
}

// Decl is a declaration appearing directly in a statement list.
type Decl interface {
	Node
	stmtListItemNode()
	declNode()
}

// Id is an identifier used as an expression (IdentifierReference) or as
// a simple binding pattern.
type Id struct {
	BaseNode
	Name token.Name
}

func (i *Id) expressionNode() {}

// Patt is a binding pattern: currently only Id (spec.md's non-goals
// exclude destructuring beyond identifiers). CompoundPatt exists as a
// distinct type so the cover-grammar and for-head code can detect "a
// destructuring pattern was attempted" and raise UnsupportedFeature
// instead of silently mis-parsing.
type Patt interface {
	Node
	pattNode()
}

func (i *Id) pattNode() {}

// CompoundPatt stands in for an object/array destructuring pattern that
// was detected but is not supported; it carries only its span so the
// caller can report UnsupportedFeature("destructuring") with a precise
// location.
type CompoundPatt struct {
	BaseNode
}

func (c *CompoundPatt) pattNode() {}

// Dtor is one `name = init` (or bare `name`) clause of a var/let
// declaration list.
type Dtor struct {
	BaseNode
	Lhs  Patt
	Init Expr // nil if omitted
}

func (d *Dtor) declaratorNode() {}

// FunDecl is a `function name(...) { ... }` declaration.
type FunDecl struct {
	BaseNode
	Fun *Fun
}

func (f *FunDecl) stmtListItemNode() {}
func (f *FunDecl) declNode()         {}

// Fun is the shared shape of function declarations and function
// expressions.
type Fun struct {
	BaseNode
	Id     *Id // nil for anonymous function expressions
	Params []Patt
	Body   []StmtListItem
}
