package typing

import (
	"fmt"
	"strings"
)

// DataType is the common interface for all twkl data types.  Two types are
// equal iff their variant and all substructure match: equality is value
// based, never identity based.  Types are immutable once constructed and are
// freely shared between values.
type DataType interface {
	// Equals returns whether this type is exactly equal to other.
	Equals(other DataType) bool

	// Repr returns the string representation of the type as written in twkl
	// source text.
	Repr() string
}

// -----------------------------------------------------------------------------

// BuiltinKind enumerates the builtin scalar types.
type BuiltinKind int

const (
	KindVoid BuiltinKind = iota
	KindBool
	KindI8
	KindU8
	KindI16
	KindU16
	KindI32
	KindU32
	KindI64
	KindU64
	KindF32
	KindF64
	KindChar
)

// builtinReprs maps builtin kinds to their source-level spellings.
var builtinReprs = map[BuiltinKind]string{
	KindVoid: "void",
	KindBool: "bool",
	KindI8:   "i8",
	KindU8:   "u8",
	KindI16:  "i16",
	KindU16:  "u16",
	KindI32:  "i32",
	KindU32:  "u32",
	KindI64:  "i64",
	KindU64:  "u64",
	KindF32:  "f32",
	KindF64:  "f64",
	KindChar: "char",
}

// BuiltinType is a builtin scalar type.
type BuiltinType struct {
	Kind BuiltinKind
}

func (bt BuiltinType) Equals(other DataType) bool {
	if obt, ok := other.(BuiltinType); ok {
		return bt.Kind == obt.Kind
	}

	return false
}

func (bt BuiltinType) Repr() string {
	return builtinReprs[bt.Kind]
}

// -----------------------------------------------------------------------------

// PointerType is a pointer to a pointee type.
type PointerType struct {
	Pointee DataType
}

func (pt *PointerType) Equals(other DataType) bool {
	if opt, ok := other.(*PointerType); ok {
		return pt.Pointee.Equals(opt.Pointee)
	}

	return false
}

func (pt *PointerType) Repr() string {
	return "*" + pt.Pointee.Repr()
}

// RefType is a reference to a referenced type.  References are handles like
// pointers but may not be reseated or null.
type RefType struct {
	Refee DataType
}

func (rt *RefType) Equals(other DataType) bool {
	if ort, ok := other.(*RefType); ok {
		return rt.Refee.Equals(ort.Refee)
	}

	return false
}

func (rt *RefType) Repr() string {
	return "&" + rt.Refee.Repr()
}

// ArrayType is a fixed-size array of an element type.
type ArrayType struct {
	Elem DataType
	Size uint64
}

func (at *ArrayType) Equals(other DataType) bool {
	if oat, ok := other.(*ArrayType); ok {
		return at.Size == oat.Size && at.Elem.Equals(oat.Elem)
	}

	return false
}

func (at *ArrayType) Repr() string {
	return fmt.Sprintf("[%s; %d]", at.Elem.Repr(), at.Size)
}

// NamedType refers to a user-defined class or union by name.  The definition
// is resolved through the generator's class and union tables.
type NamedType struct {
	Name string
}

func (nt *NamedType) Equals(other DataType) bool {
	if ont, ok := other.(*NamedType); ok {
		return nt.Name == ont.Name
	}

	return false
}

func (nt *NamedType) Repr() string {
	return nt.Name
}

// TemplateType is the application of a user-defined template to a list of
// type arguments, eg. `Vec[i32]`.
type TemplateType struct {
	Name string
	Args []DataType
}

func (tt *TemplateType) Equals(other DataType) bool {
	ott, ok := other.(*TemplateType)
	if !ok || tt.Name != ott.Name || len(tt.Args) != len(ott.Args) {
		return false
	}

	for i, arg := range tt.Args {
		if !arg.Equals(ott.Args[i]) {
			return false
		}
	}

	return true
}

func (tt *TemplateType) Repr() string {
	argReprs := make([]string, len(tt.Args))
	for i, arg := range tt.Args {
		argReprs[i] = arg.Repr()
	}

	return fmt.Sprintf("%s[%s]", tt.Name, strings.Join(argReprs, ", "))
}
