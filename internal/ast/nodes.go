// Package ast defines the typed abstract syntax tree of a Chi program.
//
// Every node set is closed: the interfaces carry unexported marker methods,
// so only this package can add variants and a type switch over the
// variants listed here is exhaustive.
package ast

import "github.com/you-not-fish/chi/internal/syntax"

// ----------------------------------------------------------------------------
// Interfaces
//
// Nodes are split into expressions and statements. Literals and the other
// primary forms are expressions too. Declarations are statements that may
// also appear at the top level of a program.

// Node is the interface implemented by all AST nodes.
type Node interface {
	Pos() syntax.Pos // position of the first token belonging to the node
	aNode()
}

// Expr is the interface for all expression nodes.
type Expr interface {
	Node
	aExpr()
}

// Primary is an expression that is not a unary or binary operation.
type Primary interface {
	Expr
	aPrimary()
}

// Literal is a primary holding a constant value.
type Literal interface {
	Primary
	aLiteral()
}

// Stmt is the interface for all statement nodes.
type Stmt interface {
	Node
	aStmt()
}

// ----------------------------------------------------------------------------
// Base node types

type node struct {
	pos syntax.Pos
}

func (n *node) Pos() syntax.Pos { return n.pos }

// SetPos records the node position. It is meant for the tree builder;
// nodes are not modified once the builder returns them.
func (n *node) SetPos(pos syntax.Pos) { n.pos = pos }

func (*node) aNode() {}

type expr struct{ node }

func (*expr) aExpr() {}

type primary struct{ expr }

func (*primary) aPrimary() {}

type literal struct{ primary }

func (*literal) aLiteral() {}

type stmt struct{ node }

func (*stmt) aStmt() {}

// ----------------------------------------------------------------------------
// Program

// Program is the root of one source file.
type Program struct {
	node
	Globals []*Declaration // global declarations, in source order
	Funcs   []*Function    // function declarations, in source order
	Uses    []*UseStmt     // use statements, in source order
}

// UseStmt names a module dependency: use Name;
type UseStmt struct {
	node
	Name string
}

// Function is a function declaration: Result Name(Params) Body
type Function struct {
	node
	Result Type
	Name   string
	Params []*Param
	Body   *Block
}

// Param is one function parameter.
type Param struct {
	node
	Type Type
	Name string
}

// ----------------------------------------------------------------------------
// Literals

// IntLit is a 64-bit signed integer literal.
type IntLit struct {
	literal
	Value int64
}

// BoolLit is true or false.
type BoolLit struct {
	literal
	Value bool
}

// CharLit is a single character.
type CharLit struct {
	literal
	Value rune
}

// StringLit holds the decoded string content.
type StringLit struct {
	literal
	Value string
}

// ----------------------------------------------------------------------------
// Primary expressions

// Ident is a reference to a name. Names are not resolved at this layer.
type Ident struct {
	primary
	Name string
}

// IndexExpr is an array element access: Name[Index]
type IndexExpr struct {
	primary
	Name  string
	Index Expr
}

// CallExpr is a function call used as a value: Name(Args...)
type CallExpr struct {
	primary
	Name string
	Args []Expr
}

// ArrayLit is an array literal: [Elems...]
type ArrayLit struct {
	primary
	Elems []Expr
}

// LenExpr is the length-of operator: len(X)
type LenExpr struct {
	primary
	X Expr
}

// ----------------------------------------------------------------------------
// Operations

// UnaryExpr is Op X.
type UnaryExpr struct {
	expr
	Op Uop
	X  Expr
}

// BinaryExpr is X Op Y.
type BinaryExpr struct {
	expr
	Op Bop
	X  Expr
	Y  Expr
}

// ----------------------------------------------------------------------------
// Statements

// Declaration declares one or more variables of one type:
// Type Names... [= Values...];
// Values is either empty or exactly as long as Names.
type Declaration struct {
	stmt
	Type   Type
	Names  []string
	Values []Expr
}

// AssignStmt is Name = Value;
type AssignStmt struct {
	stmt
	Name  string
	Value Expr
}

// Block is { Stmts... }
type Block struct {
	stmt
	Stmts []Stmt
}

// IfStmt is if Cond Then [else Else].
type IfStmt struct {
	stmt
	Cond Expr
	Then *Block
	Else *Block // nil if absent
}

// WhileStmt is while Cond Body.
type WhileStmt struct {
	stmt
	Cond Expr
	Body *Block
}

// ReturnStmt is return [Result];
type ReturnStmt struct {
	stmt
	Result Expr // nil for a bare return
}

// CallStmt is a procedure call: Name(Args...);
type CallStmt struct {
	stmt
	Name string
	Args []Expr
}
