package ast

import (
	"github.com/yohashinoio/twkl/typing"
)

// Expr represents an expression node.  The expression variant is closed: the
// code generator dispatches exhaustively over the types below.
type Expr interface {
	ASTNode
}

// -----------------------------------------------------------------------------

// LitKind enumerates the kinds of literal.
type LitKind int

const (
	LitInt LitKind = iota
	LitFloat
	LitBool
	LitString
	LitChar
)

// Literal represents a single literal value.  The literal's type determines
// its width and signedness: the parser resolves suffixed and contextual
// integer literals to a concrete builtin type before generation.
type Literal struct {
	ASTBase

	Kind  LitKind
	Value string
	Type  typing.DataType
}

// Identifier represents a named value.
type Identifier struct {
	ASTBase

	Name string
}

// BinaryOp represents a binary operator application.  The operator is kept as
// its source spelling; the generator matches on the spelling.
type BinaryOp struct {
	ASTBase

	Op       string
	Lhs, Rhs Expr
}

// UnaryOp represents a unary operator application (+, -, !, &).
type UnaryOp struct {
	ASTBase

	Op      string
	Operand Expr
}

// Deref represents a pointer dereference (`*p`).
type Deref struct {
	ASTBase

	Operand Expr
}

// Call is a function call expression.
type Call struct {
	ASTBase

	Callee Expr
	Args   []Expr
}

// Cast represents an explicit type conversion (`expr as T`).
type Cast struct {
	ASTBase

	Src    Expr
	Target typing.DataType
}

// Subscript represents an array subscript (`a[i]`).
type Subscript struct {
	ASTBase

	Root  Expr
	Index Expr
}

// MemberAccess represents a class field access (`obj.field`).
type MemberAccess struct {
	ASTBase

	Root      Expr
	FieldName string
}

// ArrayLit represents an array literal (`[a, b, c]`).  All elements must
// share one type.
type ArrayLit struct {
	ASTBase

	Elems []Expr
}

// ClassLit represents a class literal (`Point { 1, 2 }`): one initializer
// per field, in declaration order.
type ClassLit struct {
	ASTBase

	Type  typing.DataType
	Inits []Expr
}

// ScopeResolution represents a qualified reference (`ns::item`).  Qualifiers
// holds the namespace path left of the final operand.
type ScopeResolution struct {
	ASTBase

	Qualifiers []string
	Operand    Expr
}
