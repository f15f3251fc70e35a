package typing

// IsVoid returns whether dt is the void type.
func IsVoid(dt DataType) bool {
	bt, ok := dt.(BuiltinType)
	return ok && bt.Kind == KindVoid
}

// IsBool returns whether dt is the boolean type.
func IsBool(dt DataType) bool {
	bt, ok := dt.(BuiltinType)
	return ok && bt.Kind == KindBool
}

// IsInteger returns whether dt is an integer type.  The boolean and char
// types count as integers: both are represented as unsigned integers.
func IsInteger(dt DataType) bool {
	bt, ok := dt.(BuiltinType)
	if !ok {
		return false
	}

	switch bt.Kind {
	case KindBool, KindChar, KindI8, KindU8, KindI16, KindU16,
		KindI32, KindU32, KindI64, KindU64:
		return true
	}

	return false
}

// IsFloat returns whether dt is a floating-point type.
func IsFloat(dt DataType) bool {
	bt, ok := dt.(BuiltinType)
	return ok && (bt.Kind == KindF32 || bt.Kind == KindF64)
}

// IsSigned returns whether dt is a signed integer type.
func IsSigned(dt DataType) bool {
	bt, ok := dt.(BuiltinType)
	if !ok {
		return false
	}

	switch bt.Kind {
	case KindI8, KindI16, KindI32, KindI64:
		return true
	}

	return false
}

// BitWidth returns the bit width of an integer type.  It returns 0 for
// non-integer types.  The boolean type reports the width of its canonical
// representation: the smallest addressable integer, not a single bit.
func BitWidth(dt DataType) uint64 {
	bt, ok := dt.(BuiltinType)
	if !ok {
		return 0
	}

	switch bt.Kind {
	case KindBool, KindI8, KindU8:
		return 8
	case KindI16, KindU16:
		return 16
	case KindChar, KindI32, KindU32:
		return 32
	case KindI64, KindU64:
		return 64
	}

	return 0
}

// IsPointer returns whether dt is a pointer type.
func IsPointer(dt DataType) bool {
	_, ok := dt.(*PointerType)
	return ok
}

// IsHandle returns whether dt denotes a handle to storage (pointer or
// reference) rather than a value.
func IsHandle(dt DataType) bool {
	switch dt.(type) {
	case *PointerType, *RefType:
		return true
	}

	return false
}

// Pointee returns the pointee of a pointer or reference type and a boolean
// indicating whether dt was such a handle type.
func Pointee(dt DataType) (DataType, bool) {
	switch v := dt.(type) {
	case *PointerType:
		return v.Pointee, true
	case *RefType:
		return v.Refee, true
	}

	return nil, false
}
