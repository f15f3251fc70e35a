package generate

import (
	"github.com/yohashinoio/twkl/typing"

	"github.com/llir/llvm/ir"
	"github.com/llir/llvm/ir/value"
)

// Value is an LLVM value paired with its twkl type.  The twkl type carries
// the information LLVM erases: signedness, mutability, and the distinction
// between pointers and references.
type Value struct {
	// LL is the underlying LLVM value.  It is nil for the result of a void
	// call, which may only appear in expression-statement position.
	LL value.Value

	// Type is the twkl type of the value.
	Type typing.DataType

	// Mutable indicates whether the value designates mutable storage.  It is
	// only meaningful for address values produced by genAddr.
	Mutable bool
}

// Variable is a named local bound to stack storage.  All variable storage is
// allocated in the entry block of the enclosing function.
type Variable struct {
	Name    string
	Alloca  *ir.InstAlloca
	Type    typing.DataType
	Mutable bool
}
