package ast

import (
	"github.com/yohashinoio/twkl/typing"
)

// TopLevel represents a top-level item of a translation unit.  The top-level
// variant is closed: the driver dispatches exhaustively over the types below.
type TopLevel interface {
	ASTNode
}

// -----------------------------------------------------------------------------

// Param is one parameter of a function signature.
type Param struct {
	Name    string
	Mutable bool
	Type    typing.DataType

	// IsVarArg marks the trailing `...` pseudo-parameter of a variadic
	// declaration.  A vararg parameter has no name and no type.
	IsVarArg bool
}

// FuncDecl declares a callable signature.  A declaration without a body has
// external linkage and is satisfied at link time.
type FuncDecl struct {
	ASTBase

	Name       string
	Params     []Param
	ReturnType typing.DataType

	// IsPublic selects external over internal linkage.
	IsPublic bool

	// NoMangle suppresses name mangling for linkage against foreign code.
	NoMangle bool

	// TemplateParams holds the template parameter names of a function
	// template; empty for an ordinary function.
	TemplateParams []string
}

// IsTemplate returns whether the declaration is a function template.
func (fd *FuncDecl) IsTemplate() bool {
	return len(fd.TemplateParams) != 0
}

// FuncDef is a function definition: a declaration plus a body.
type FuncDef struct {
	ASTBase

	Decl *FuncDecl
	Body *Block
}

// Field is one member variable of a class definition.
type Field struct {
	Name string
	Type typing.DataType
}

// MemberInitializer is one entry of a constructor's member initializer list.
type MemberInitializer struct {
	MemberName  string
	Initializer Expr
}

// Constructor is a class constructor: member initializers followed by a body.
type Constructor struct {
	ASTBase

	Params      []Param
	MemberInits []MemberInitializer
	Body        *Block
}

// ClassDef defines a class: ordered fields, optional constructor and
// destructor, and methods.
type ClassDef struct {
	ASTBase

	Name           string
	IsPublic       bool
	Fields         []Field
	Ctor           *Constructor
	Dtor           *FuncDef
	Methods        []*FuncDef
	TemplateParams []string
}

// IsTemplate returns whether the definition is a class template.
func (cd *ClassDef) IsTemplate() bool {
	return len(cd.TemplateParams) != 0
}

// UnionTag is one tagged alternative of a union definition.
type UnionTag struct {
	Name string
	Type typing.DataType
}

// UnionDef defines a tagged union.
type UnionDef struct {
	ASTBase

	Name     string
	IsPublic bool
	Tags     []UnionTag
}

// TypeAlias introduces an alias for an existing type.
type TypeAlias struct {
	ASTBase

	Name string
	Type typing.DataType
}

// Namespace wraps top-level items in a named scope.
type Namespace struct {
	ASTBase

	Name  string
	Items []TopLevel
}

// Import records a unit-level import.  Import resolution happens in the
// frontend; the generator only records the path.
type Import struct {
	ASTBase

	Path string
}

// TranslationUnit is the parsed form of one source file.
type TranslationUnit struct {
	// Path is the path of the source file the unit was parsed from.
	Path string

	Items []TopLevel
}
