package ast

import (
	"github.com/yohashinoio/twkl/typing"
)

// Stmt represents a statement node.  The statement variant is closed: the
// code generator dispatches exhaustively over the types below.
type Stmt interface {
	ASTNode
}

// -----------------------------------------------------------------------------

// Block is a compound statement.  Each block opens a fresh scope overlaying
// its parent.
type Block struct {
	ASTBase

	Stmts []Stmt
}

// ExprStmt is an expression evaluated for its side effects.
type ExprStmt struct {
	ASTBase

	Expr Expr
}

// Return is a return statement with an optional value.
type Return struct {
	ASTBase

	Value Expr
}

// VarDecl declares a local variable.  At least one of Type and Initializer
// must be present; when Type is nil the variable's type is inferred from the
// initializer.
type VarDecl struct {
	ASTBase

	Mutable     bool
	Name        string
	Type        typing.DataType
	Initializer Expr
}

// Assign is a direct or compound assignment statement.  The operator is kept
// as its source spelling (`=`, `+=`, `-=`, `*=`, `/=`, `%=`).
type Assign struct {
	ASTBase

	Lhs Expr // must be addressable
	Op  string
	Rhs Expr
}

// MemberInit is an assignment used for one-time member initialization inside
// a constructor.  It deliberately bypasses the mutability check: it is first
// initialization, not reassignment.  Never created by the parser.
type MemberInit struct {
	Assign
}

// IncDec is a prefix increment or decrement statement (`++x`, `--x`).
type IncDec struct {
	ASTBase

	Op      string
	Operand Expr // must be addressable
}

// If is a two-way conditional with an optional else arm.
type If struct {
	ASTBase

	Cond Expr
	Then Stmt
	Else Stmt
}

// Loop is an unconditional loop: its body repeats until broken out of.
type Loop struct {
	ASTBase

	Body Stmt
}

// While is a condition-tested loop.
type While struct {
	ASTBase

	Cond Expr
	Body Stmt
}

// For is a three-clause loop.  Any of Init, Cond, and Post may be nil; a
// missing condition is treated as always true.
type For struct {
	ASTBase

	Init Stmt
	Cond Expr
	Post Stmt
	Body Stmt
}

// Break breaks out of the innermost enclosing loop.
type Break struct {
	ASTBase
}

// Continue continues the innermost enclosing loop.
type Continue struct {
	ASTBase
}
