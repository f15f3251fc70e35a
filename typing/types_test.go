package typing

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuiltinEquality(t *testing.T) {
	assert.True(t, BuiltinType{Kind: KindI32}.Equals(BuiltinType{Kind: KindI32}))
	assert.False(t, BuiltinType{Kind: KindI32}.Equals(BuiltinType{Kind: KindU32}))
	assert.False(t, BuiltinType{Kind: KindI32}.Equals(&PointerType{Pointee: BuiltinType{Kind: KindI32}}))
}

func TestStructuralEquality(t *testing.T) {
	p1 := &PointerType{Pointee: BuiltinType{Kind: KindU8}}
	p2 := &PointerType{Pointee: BuiltinType{Kind: KindU8}}

	// Equality is value based: distinct instances of one shape are equal.
	assert.True(t, p1.Equals(p2))

	a1 := &ArrayType{Elem: BuiltinType{Kind: KindI32}, Size: 4}
	a2 := &ArrayType{Elem: BuiltinType{Kind: KindI32}, Size: 8}
	assert.False(t, a1.Equals(a2))

	r := &RefType{Refee: BuiltinType{Kind: KindU8}}
	assert.False(t, p1.Equals(r))

	assert.True(t, (&NamedType{Name: "Vec"}).Equals(&NamedType{Name: "Vec"}))
	assert.False(t, (&NamedType{Name: "Vec"}).Equals(&NamedType{Name: "Map"}))
}

func TestTemplateEquality(t *testing.T) {
	t1 := &TemplateType{Name: "Vec", Args: []DataType{BuiltinType{Kind: KindI32}}}
	t2 := &TemplateType{Name: "Vec", Args: []DataType{BuiltinType{Kind: KindI32}}}
	t3 := &TemplateType{Name: "Vec", Args: []DataType{BuiltinType{Kind: KindI64}}}

	assert.True(t, t1.Equals(t2))
	assert.False(t, t1.Equals(t3))
	assert.Equal(t, "Vec[i32]", t1.Repr())
}

func TestReprs(t *testing.T) {
	assert.Equal(t, "*u8", (&PointerType{Pointee: BuiltinType{Kind: KindU8}}).Repr())
	assert.Equal(t, "&i32", (&RefType{Refee: BuiltinType{Kind: KindI32}}).Repr())
	assert.Equal(t, "[i32; 4]", (&ArrayType{Elem: BuiltinType{Kind: KindI32}, Size: 4}).Repr())
	assert.Equal(t, "bool", BuiltinType{Kind: KindBool}.Repr())
}

func TestInspect(t *testing.T) {
	// Booleans and characters count as integers and are unsigned.
	assert.True(t, IsInteger(BuiltinType{Kind: KindBool}))
	assert.True(t, IsInteger(BuiltinType{Kind: KindChar}))
	assert.False(t, IsSigned(BuiltinType{Kind: KindBool}))
	assert.False(t, IsSigned(BuiltinType{Kind: KindU64}))
	assert.True(t, IsSigned(BuiltinType{Kind: KindI8}))

	// The boolean's canonical representation is a full byte.
	assert.Equal(t, uint64(8), BitWidth(BuiltinType{Kind: KindBool}))
	assert.Equal(t, uint64(32), BitWidth(BuiltinType{Kind: KindChar}))
	assert.Equal(t, uint64(0), BitWidth(BuiltinType{Kind: KindF64}))

	assert.True(t, IsHandle(&RefType{Refee: BuiltinType{Kind: KindI32}}))
	assert.False(t, IsPointer(&RefType{Refee: BuiltinType{Kind: KindI32}}))

	pointee, ok := Pointee(&RefType{Refee: BuiltinType{Kind: KindI32}})
	assert.True(t, ok)
	assert.True(t, pointee.Equals(BuiltinType{Kind: KindI32}))

	_, ok = Pointee(BuiltinType{Kind: KindI32})
	assert.False(t, ok)
}
