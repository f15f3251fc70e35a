package generate

import (
	"strconv"
	"unicode/utf8"

	"github.com/yohashinoio/twkl/ast"
	"github.com/yohashinoio/twkl/report"
	"github.com/yohashinoio/twkl/typing"

	"github.com/llir/llvm/ir/constant"
	"github.com/llir/llvm/ir/enum"
	"github.com/llir/llvm/ir/types"
	"github.com/llir/llvm/ir/value"
)

// Canonical builtin types used throughout generation.
var (
	voidType = typing.BuiltinType{Kind: typing.KindVoid}
	boolType = typing.BuiltinType{Kind: typing.KindBool}
	charType = typing.BuiltinType{Kind: typing.KindChar}
	i32Type  = typing.BuiltinType{Kind: typing.KindI32}
	f64Type  = typing.BuiltinType{Kind: typing.KindF64}
	strType  = &typing.PointerType{Pointee: typing.BuiltinType{Kind: typing.KindU8}}
)

// genExpr generates an expression and returns its value.
func (g *Generator) genExpr(scope *SymbolTable, expr ast.Expr) Value {
	switch v := expr.(type) {
	case *ast.Literal:
		return g.genLiteral(v)
	case *ast.Identifier:
		addr := g.genAddr(scope, v)
		return Value{
			LL:      g.block.NewLoad(g.convType(addr.Type), addr.LL),
			Type:    addr.Type,
			Mutable: addr.Mutable,
		}
	case *ast.BinaryOp:
		lhs := g.genExpr(scope, v.Lhs)
		rhs := g.genExpr(scope, v.Rhs)
		return g.genArith(v.Op, lhs, rhs, v.Span())
	case *ast.UnaryOp:
		return g.genUnaryOp(scope, v)
	case *ast.Deref:
		addr := g.genAddr(scope, v)
		return Value{
			LL:   g.block.NewLoad(g.convType(addr.Type), addr.LL),
			Type: addr.Type,
		}
	case *ast.Call:
		return g.genCall(scope, v)
	case *ast.Cast:
		return g.genCast(scope, v)
	case *ast.Subscript:
		addr := g.genSubscriptAddr(scope, v)
		return Value{
			LL:   g.block.NewLoad(g.convType(addr.Type), addr.LL),
			Type: addr.Type,
		}
	case *ast.MemberAccess:
		addr := g.genMemberAddr(scope, v)
		return Value{
			LL:   g.block.NewLoad(g.convType(addr.Type), addr.LL),
			Type: addr.Type,
		}
	case *ast.ArrayLit:
		return g.genArrayLit(scope, v)
	case *ast.ClassLit:
		return g.genClassLit(scope, v)
	case *ast.ScopeResolution:
		for _, q := range v.Qualifiers {
			g.ns.Push(q, NSNamespace)
		}

		val := g.genExpr(scope, v.Operand)

		for range v.Qualifiers {
			g.ns.Pop()
		}

		return val
	}

	report.Raise(report.ErrCodegen, expr.Span(), "expression kind has no generation rule")
	return Value{}
}

// genLiteral generates a literal constant.
func (g *Generator) genLiteral(lit *ast.Literal) Value {
	switch lit.Kind {
	case ast.LitInt:
		dt := lit.Type
		if dt == nil {
			dt = i32Type
		}

		x, err := strconv.ParseUint(lit.Value, 0, 64)
		if err != nil {
			report.Raise(report.ErrCodegen, lit.Span(), "invalid integer literal `%s`", lit.Value)
		}

		return Value{
			LL:   constant.NewInt(g.convType(dt).(*types.IntType), int64(x)),
			Type: dt,
		}
	case ast.LitFloat:
		dt := lit.Type
		if dt == nil {
			dt = f64Type
		}

		x, err := strconv.ParseFloat(lit.Value, 64)
		if err != nil {
			report.Raise(report.ErrCodegen, lit.Span(), "invalid float literal `%s`", lit.Value)
		}

		return Value{
			LL:   constant.NewFloat(g.convType(dt).(*types.FloatType), x),
			Type: dt,
		}
	case ast.LitBool:
		var x int64
		if lit.Value == "true" {
			x = 1
		}

		return Value{LL: constant.NewInt(types.I8, x), Type: boolType}
	case ast.LitString:
		global := g.internString(lit.Value)

		// Decay the interned array to a pointer to its first character.
		zero := constant.NewInt(types.I32, 0)
		return Value{
			LL:   constant.NewGetElementPtr(global.ContentType, global, zero, zero),
			Type: strType,
		}
	case ast.LitChar:
		r, _ := utf8.DecodeRuneInString(lit.Value)
		return Value{LL: constant.NewInt(types.I32, int64(r)), Type: charType}
	}

	report.Raise(report.ErrCodegen, lit.Span(), "literal kind has no generation rule")
	return Value{}
}

// -----------------------------------------------------------------------------

// genArith applies a binary operator to two generated operands.  It is
// shared between binary expressions and compound assignment, which both
// require the left operand to stay on the left.
func (g *Generator) genArith(op string, lhs, rhs Value, span *report.TextSpan) Value {
	lt := g.resolveType(lhs.Type)
	rt := g.resolveType(rhs.Type)

	switch {
	case typing.IsInteger(lt) && typing.IsInteger(rt):
		return g.genIntArith(op, lhs, rhs, span)
	case typing.IsFloat(lt) && typing.IsFloat(rt) && lt.Equals(rt):
		return g.genFloatArith(op, lhs, rhs, span)
	case typing.IsHandle(lt) && typing.IsHandle(rt) && lt.Equals(rt):
		switch op {
		case "==":
			return g.boolValue(g.block.NewICmp(enum.IPredEQ, lhs.LL, rhs.LL))
		case "!=":
			return g.boolValue(g.block.NewICmp(enum.IPredNE, lhs.LL, rhs.LL))
		}
	}

	report.Raise(report.ErrTypeMismatch, span,
		"invalid operands to binary `%s` (`%s` and `%s`)", op, lhs.Type.Repr(), rhs.Type.Repr())
	return Value{}
}

// genIntArith applies a binary operator to two integer operands after
// implicit widening.
func (g *Generator) genIntArith(op string, lhs, rhs Value, span *report.TextSpan) Value {
	x, y, resType := g.promoteInts(lhs, rhs, span)
	signed := typing.IsSigned(resType)

	switch op {
	case "+":
		return Value{LL: g.block.NewAdd(x, y), Type: resType}
	case "-":
		return Value{LL: g.block.NewSub(x, y), Type: resType}
	case "*":
		return Value{LL: g.block.NewMul(x, y), Type: resType}
	case "/":
		if signed {
			return Value{LL: g.block.NewSDiv(x, y), Type: resType}
		}

		return Value{LL: g.block.NewUDiv(x, y), Type: resType}
	case "%":
		if signed {
			return Value{LL: g.block.NewSRem(x, y), Type: resType}
		}

		return Value{LL: g.block.NewURem(x, y), Type: resType}
	case "==":
		return g.boolValue(g.block.NewICmp(enum.IPredEQ, x, y))
	case "!=":
		return g.boolValue(g.block.NewICmp(enum.IPredNE, x, y))
	case "<":
		return g.boolValue(g.block.NewICmp(ipred(signed, enum.IPredSLT, enum.IPredULT), x, y))
	case ">":
		return g.boolValue(g.block.NewICmp(ipred(signed, enum.IPredSGT, enum.IPredUGT), x, y))
	case "<=":
		return g.boolValue(g.block.NewICmp(ipred(signed, enum.IPredSLE, enum.IPredULE), x, y))
	case ">=":
		return g.boolValue(g.block.NewICmp(ipred(signed, enum.IPredSGE, enum.IPredUGE), x, y))
	}

	report.Raise(report.ErrCodegen, span, "binary operator `%s` has no generation rule", op)
	return Value{}
}

// genFloatArith applies a binary operator to two floating point operands of
// one type.
func (g *Generator) genFloatArith(op string, lhs, rhs Value, span *report.TextSpan) Value {
	switch op {
	case "+":
		return Value{LL: g.block.NewFAdd(lhs.LL, rhs.LL), Type: lhs.Type}
	case "-":
		return Value{LL: g.block.NewFSub(lhs.LL, rhs.LL), Type: lhs.Type}
	case "*":
		return Value{LL: g.block.NewFMul(lhs.LL, rhs.LL), Type: lhs.Type}
	case "/":
		return Value{LL: g.block.NewFDiv(lhs.LL, rhs.LL), Type: lhs.Type}
	case "%":
		return Value{LL: g.block.NewFRem(lhs.LL, rhs.LL), Type: lhs.Type}
	case "==":
		return g.boolValue(g.block.NewFCmp(enum.FPredOEQ, lhs.LL, rhs.LL))
	case "!=":
		return g.boolValue(g.block.NewFCmp(enum.FPredONE, lhs.LL, rhs.LL))
	case "<":
		return g.boolValue(g.block.NewFCmp(enum.FPredOLT, lhs.LL, rhs.LL))
	case ">":
		return g.boolValue(g.block.NewFCmp(enum.FPredOGT, lhs.LL, rhs.LL))
	case "<=":
		return g.boolValue(g.block.NewFCmp(enum.FPredOLE, lhs.LL, rhs.LL))
	case ">=":
		return g.boolValue(g.block.NewFCmp(enum.FPredOGE, lhs.LL, rhs.LL))
	}

	report.Raise(report.ErrCodegen, span, "binary operator `%s` has no generation rule", op)
	return Value{}
}

// promoteInts widens the narrower of two integer operands to the width of
// the wider one and returns the common result type.  Each operand widens
// according to its own signedness; the result takes the signedness of the
// wider operand.  Equal-width operands of different types do not convert.
func (g *Generator) promoteInts(lhs, rhs Value, span *report.TextSpan) (value.Value, value.Value, typing.DataType) {
	lt := g.resolveType(lhs.Type)
	rt := g.resolveType(rhs.Type)
	lw, rw := typing.BitWidth(lt), typing.BitWidth(rt)

	switch {
	case lw < rw:
		return g.widenInt(lhs.LL, lt, rt), rhs.LL, rt
	case lw > rw:
		return lhs.LL, g.widenInt(rhs.LL, rt, lt), lt
	case !lt.Equals(rt):
		report.Raise(report.ErrTypeMismatch, span,
			"mismatched integer types `%s` and `%s`", lhs.Type.Repr(), rhs.Type.Repr())
	}

	return lhs.LL, rhs.LL, lt
}

// widenInt extends v from its own type to the width of target, sign
// extending when v's own type is signed.
func (g *Generator) widenInt(v value.Value, from, target typing.DataType) value.Value {
	if typing.IsSigned(from) {
		return g.block.NewSExt(v, g.convType(target))
	}

	return g.block.NewZExt(v, g.convType(target))
}

// boolValue normalizes an i1 result into a canonical boolean value.
func (g *Generator) boolValue(i1 value.Value) Value {
	return Value{LL: g.block.NewZExt(i1, types.I8), Type: boolType}
}

func ipred(signed bool, s, u enum.IPred) enum.IPred {
	if signed {
		return s
	}

	return u
}

// -----------------------------------------------------------------------------

// genUnaryOp generates a unary operator application.
func (g *Generator) genUnaryOp(scope *SymbolTable, un *ast.UnaryOp) Value {
	if un.Op == "&" {
		addr := g.genAddr(scope, un.Operand)
		return Value{
			LL:   addr.LL,
			Type: &typing.PointerType{Pointee: addr.Type},
		}
	}

	v := g.genExpr(scope, un.Operand)
	rt := g.resolveType(v.Type)

	switch un.Op {
	case "+":
		if typing.IsInteger(rt) || typing.IsFloat(rt) {
			return v
		}
	case "-":
		if typing.IsInteger(rt) {
			zero := constant.NewInt(g.convType(rt).(*types.IntType), 0)
			return Value{LL: g.block.NewSub(zero, v.LL), Type: v.Type}
		}

		if typing.IsFloat(rt) {
			return Value{LL: g.block.NewFNeg(v.LL), Type: v.Type}
		}
	case "!":
		if typing.IsInteger(rt) {
			zero := zeroOf(g.convType(rt))
			return g.boolValue(g.block.NewICmp(enum.IPredEQ, v.LL, zero))
		}
	default:
		report.Raise(report.ErrCodegen, un.Span(), "unary operator `%s` has no generation rule", un.Op)
	}

	report.Raise(report.ErrTypeMismatch, un.Span(),
		"invalid operand to unary `%s` (`%s`)", un.Op, v.Type.Repr())
	return Value{}
}

// genCond generates a truth test for a condition expression.  Conditions
// must be of integer or pointer type; the test compares against the typed
// zero value.
func (g *Generator) genCond(scope *SymbolTable, expr ast.Expr) value.Value {
	v := g.genExpr(scope, expr)
	rt := g.resolveType(v.Type)

	if !typing.IsInteger(rt) && !typing.IsHandle(rt) {
		report.Raise(report.ErrTypeMismatch, expr.Span(),
			"condition must be of integer or pointer type, not `%s`", v.Type.Repr())
	}

	return g.block.NewICmp(enum.IPredNE, v.LL, zeroOf(v.LL.Type()))
}
