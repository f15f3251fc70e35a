package generate

import (
	"github.com/yohashinoio/twkl/ast"
	"github.com/yohashinoio/twkl/report"
	"github.com/yohashinoio/twkl/typing"

	"github.com/llir/llvm/ir"
	"github.com/llir/llvm/ir/constant"
	"github.com/llir/llvm/ir/types"
	"github.com/llir/llvm/ir/value"
)

// genCall generates a call expression.  The callee is resolved before any
// argument is generated: a call to an unknown name fails without evaluating
// its arguments.
func (g *Generator) genCall(scope *SymbolTable, call *ast.Call) Value {
	switch callee := call.Callee.(type) {
	case *ast.Identifier:
		// A call spelled with a class name is a construction expression.
		if ci, ok := g.classes[callee.Name]; ok {
			return g.genConstruction(scope, call, callee.Name, ci)
		}

		fn := g.lookupFunc(g.mangler.Mangle(g.ns.Path(), callee.Name))
		if fn == nil {
			fn = g.lookupFunc(callee.Name)
		}

		if fn == nil {
			report.Raise(report.ErrUnknownFunction, callee.Span(),
				"unknown function name `%s`", callee.Name)
		}

		return g.genCallTo(scope, callee.Name, fn, nil, call)
	case *ast.MemberAccess:
		base, className := g.genClassBase(scope, callee.Root)

		ci, ok := g.classes[className]
		if !ok {
			report.Raise(report.ErrCodegen, callee.Span(),
				"`%s` is not a class type", className)
		}

		fn := g.lookupFunc(g.mangler.Mangle(ci.nsPath, callee.FieldName))
		if fn == nil {
			report.Raise(report.ErrUnknownFunction, callee.Span(),
				"`%s` has no method named `%s`", className, callee.FieldName)
		}

		return g.genCallTo(scope, callee.FieldName, fn, base.LL, call)
	case *ast.ScopeResolution:
		for _, q := range callee.Qualifiers {
			g.ns.Push(q, NSNamespace)
		}

		inner := &ast.Call{
			ASTBase: ast.NewASTBaseOn(call.Span()),
			Callee:  callee.Operand,
			Args:    call.Args,
		}
		v := g.genCall(scope, inner)

		for range callee.Qualifiers {
			g.ns.Pop()
		}

		return v
	}

	report.Raise(report.ErrCodegen, call.Span(), "expression is not callable")
	return Value{}
}

// genCallTo checks arity and argument types against fn's declared signature
// and emits the call.  A non-nil this is passed as the hidden first argument
// of a method or constructor.
func (g *Generator) genCallTo(scope *SymbolTable, name string, fn *ir.Func, this value.Value, call *ast.Call) Value {
	expected := g.paramTypes[fn]

	var args []value.Value
	if this != nil {
		args = append(args, this)
		expected = expected[1:]
	}

	if fn.Sig.Variadic {
		if len(call.Args) < len(expected) {
			report.Raise(report.ErrArityMismatch, call.Span(),
				"`%s` expects at least %d arguments, but %d were provided",
				name, len(expected), len(call.Args))
		}
	} else if len(call.Args) != len(expected) {
		report.Raise(report.ErrArityMismatch, call.Span(),
			"`%s` expects %d arguments, but %d were provided",
			name, len(expected), len(call.Args))
	}

	for i, argExpr := range call.Args {
		v := g.genExpr(scope, argExpr)

		if i < len(expected) {
			want := g.resolveType(expected[i])
			if !g.resolveType(v.Type).Equals(want) {
				report.Raise(report.ErrArgumentTypeMismatch, argExpr.Span(),
					"argument %d of `%s` expects `%s`, but `%s` was provided",
					i+1, name, want.Repr(), v.Type.Repr())
			}
		}

		args = append(args, v.LL)
	}

	ret := g.returnTypes[fn]
	result := g.block.NewCall(fn, args...)

	if typing.IsVoid(ret) {
		return Value{Type: ret}
	}

	return Value{LL: result, Type: ret}
}

// genConstruction generates a construction expression: stack temporary,
// constructor call, load of the constructed value.
func (g *Generator) genConstruction(scope *SymbolTable, call *ast.Call, name string, ci *classInfo) Value {
	ctor := g.lookupFunc(g.mangler.MangleConstructor(ci.nsPath))
	if ctor == nil {
		report.Raise(report.ErrUnknownFunction, call.Span(),
			"class `%s` has no constructor", name)
	}

	tmp := g.entryAlloca(ci.llType)
	g.genCallTo(scope, name, ctor, tmp, call)

	return Value{
		LL:   g.block.NewLoad(ci.llType, tmp),
		Type: &typing.NamedType{Name: name},
	}
}

// -----------------------------------------------------------------------------

// genCast generates an explicit conversion.  Integer conversions are sign
// aware; pointer conversions reinterpret the pointee layout and are
// deliberately permissive.  Everything else is unsupported.
func (g *Generator) genCast(scope *SymbolTable, cast *ast.Cast) Value {
	src := g.genExpr(scope, cast.Src)
	st := g.resolveType(src.Type)
	tt := g.resolveType(cast.Target)

	switch {
	case typing.IsInteger(tt) && typing.IsInteger(st):
		sw, tw := typing.BitWidth(st), typing.BitWidth(tt)

		switch {
		case tw > sw:
			return Value{LL: g.widenInt(src.LL, st, tt), Type: cast.Target}
		case tw < sw:
			return Value{LL: g.block.NewTrunc(src.LL, g.convType(tt)), Type: cast.Target}
		default:
			// Same representation; only the twkl type changes.
			return Value{LL: src.LL, Type: cast.Target}
		}
	case typing.IsPointer(tt) && typing.IsHandle(st):
		return Value{LL: g.block.NewBitCast(src.LL, g.convType(tt)), Type: cast.Target}
	}

	report.Raise(report.ErrUnsupportedConversion, cast.Span(),
		"cannot convert `%s` to `%s`", src.Type.Repr(), cast.Target.Repr())
	return Value{}
}

// -----------------------------------------------------------------------------

// genArrayLit builds an array value in a stack temporary.  All elements must
// share one type.
func (g *Generator) genArrayLit(scope *SymbolTable, lit *ast.ArrayLit) Value {
	if len(lit.Elems) == 0 {
		report.Raise(report.ErrCodegen, lit.Span(), "array literal must have at least one element")
	}

	elems := make([]Value, len(lit.Elems))
	for i, e := range lit.Elems {
		elems[i] = g.genExpr(scope, e)

		if i > 0 && !g.resolveType(elems[i].Type).Equals(g.resolveType(elems[0].Type)) {
			report.Raise(report.ErrTypeMismatch, e.Span(),
				"array element %d has type `%s`, but the array is of `%s`",
				i+1, elems[i].Type.Repr(), elems[0].Type.Repr())
		}
	}

	at := &typing.ArrayType{Elem: elems[0].Type, Size: uint64(len(elems))}
	llAt := g.convType(at)

	tmp := g.entryAlloca(llAt)
	for i, e := range elems {
		gep := g.block.NewGetElementPtr(llAt, tmp,
			constant.NewInt(types.I32, 0), constant.NewInt(types.I32, int64(i)))
		g.block.NewStore(e.LL, gep)
	}

	return Value{LL: g.block.NewLoad(llAt, tmp), Type: at}
}

// genClassLit builds a class value in a stack temporary: one initializer per
// field, in declaration order, without invoking the constructor.
func (g *Generator) genClassLit(scope *SymbolTable, lit *ast.ClassLit) Value {
	nt, ok := g.resolveType(lit.Type).(*typing.NamedType)
	if !ok {
		report.Raise(report.ErrTypeMismatch, lit.Span(),
			"`%s` is not a class type", lit.Type.Repr())
	}

	ci, ok := g.classes[nt.Name]
	if !ok {
		report.Raise(report.ErrTypeMismatch, lit.Span(),
			"`%s` is not a class type", nt.Name)
	}

	if len(lit.Inits) != len(ci.fields) {
		report.Raise(report.ErrArityMismatch, lit.Span(),
			"class `%s` has %d fields, but %d initializers were provided",
			nt.Name, len(ci.fields), len(lit.Inits))
	}

	tmp := g.entryAlloca(ci.llType)
	for i, init := range lit.Inits {
		v := g.genExpr(scope, init)

		want := g.resolveType(ci.fields[i].Type)
		if !g.resolveType(v.Type).Equals(want) {
			report.Raise(report.ErrInitializerTypeMismatch, init.Span(),
				"field `%s` of `%s` expects `%s`, but `%s` was provided",
				ci.fields[i].Name, nt.Name, want.Repr(), v.Type.Repr())
		}

		gep := g.block.NewGetElementPtr(ci.llType, tmp,
			constant.NewInt(types.I32, 0), constant.NewInt(types.I32, int64(i)))
		g.block.NewStore(v.LL, gep)
	}

	return Value{LL: g.block.NewLoad(ci.llType, tmp), Type: nt}
}
