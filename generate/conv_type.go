package generate

import (
	"github.com/yohashinoio/twkl/report"
	"github.com/yohashinoio/twkl/typing"

	"github.com/llir/llvm/ir/constant"
	"github.com/llir/llvm/ir/types"
	"github.com/llir/llvm/ir/value"
)

// resolveType rewrites dt with all type aliases substituted so that the
// structural equality of the typing package sees through them.  Class and
// union names are left as named types: they resolve through the generator's
// own tables.
func (g *Generator) resolveType(dt typing.DataType) typing.DataType {
	switch v := dt.(type) {
	case *typing.PointerType:
		return &typing.PointerType{Pointee: g.resolveType(v.Pointee)}
	case *typing.RefType:
		return &typing.RefType{Refee: g.resolveType(v.Refee)}
	case *typing.ArrayType:
		return &typing.ArrayType{Elem: g.resolveType(v.Elem), Size: v.Size}
	case *typing.NamedType:
		if aliased, ok := g.aliases[v.Name]; ok {
			return g.resolveType(aliased)
		}
	}

	return dt
}

// convType lowers a twkl type to its LLVM representation.  Booleans lower to
// the smallest addressable integer rather than i1; characters lower to their
// 32 bit code point.
func (g *Generator) convType(dt typing.DataType) types.Type {
	switch v := g.resolveType(dt).(type) {
	case typing.BuiltinType:
		switch v.Kind {
		case typing.KindVoid:
			return types.Void
		case typing.KindBool, typing.KindI8, typing.KindU8:
			return types.I8
		case typing.KindI16, typing.KindU16:
			return types.I16
		case typing.KindChar, typing.KindI32, typing.KindU32:
			return types.I32
		case typing.KindI64, typing.KindU64:
			return types.I64
		case typing.KindF32:
			return types.Float
		case typing.KindF64:
			return types.Double
		}
	case *typing.PointerType:
		return types.NewPointer(g.convType(v.Pointee))
	case *typing.RefType:
		// References are storage handles; they lower exactly like pointers.
		return types.NewPointer(g.convType(v.Refee))
	case *typing.ArrayType:
		return types.NewArray(v.Size, g.convType(v.Elem))
	case *typing.NamedType:
		if ci, ok := g.classes[v.Name]; ok {
			return ci.llType
		}

		if ui, ok := g.unions[v.Name]; ok {
			return ui.llType
		}

		report.Raise(report.ErrCodegen, nil, "unknown type name `%s`", v.Name)
	case *typing.TemplateType:
		report.Raise(report.ErrCodegen, nil,
			"template type `%s` cannot be used before instantiation", v.Repr())
	}

	report.Raise(report.ErrCodegen, nil, "type `%s` has no LLVM representation", dt.Repr())
	return nil
}

// sizeOf returns the byte size of dt's LLVM representation assuming no
// padding.  Only used to size union payloads.
func (g *Generator) sizeOf(dt typing.DataType) uint64 {
	switch v := g.resolveType(dt).(type) {
	case typing.BuiltinType:
		if typing.IsFloat(v) {
			if v.Kind == typing.KindF32 {
				return 4
			}

			return 8
		}

		return typing.BitWidth(v) / 8
	case *typing.PointerType, *typing.RefType:
		return 8
	case *typing.ArrayType:
		return v.Size * g.sizeOf(v.Elem)
	case *typing.NamedType:
		if ci, ok := g.classes[v.Name]; ok {
			var total uint64
			for _, field := range ci.fields {
				total += g.sizeOf(field.Type)
			}

			return total
		}

		if ui, ok := g.unions[v.Name]; ok {
			// Tag word plus payload.
			return 4 + uint64(ui.llType.Fields[1].(*types.ArrayType).Len)
		}
	}

	report.Raise(report.ErrCodegen, nil, "type `%s` has no size", dt.Repr())
	return 0
}

// zeroOf returns the zero constant of an integer or pointer typed value,
// used for truth testing in conditions.
func zeroOf(t types.Type) value.Value {
	switch v := t.(type) {
	case *types.IntType:
		return constant.NewInt(v, 0)
	case *types.PointerType:
		return constant.NewNull(v)
	}

	return nil
}
