package generate

import (
	"testing"

	"github.com/yohashinoio/twkl/ast"
	"github.com/yohashinoio/twkl/report"
	"github.com/yohashinoio/twkl/typing"

	"github.com/llir/llvm/ir"
	"github.com/stretchr/testify/require"
)

// Test helpers building typed AST fragments.  Zero ASTBases are fine: nodes
// without spans only matter for display, never for generation.

func bt(kind typing.BuiltinKind) typing.BuiltinType {
	return typing.BuiltinType{Kind: kind}
}

func intLit(v string) *ast.Literal {
	return typedLit(v, typing.KindI32)
}

func typedLit(v string, kind typing.BuiltinKind) *ast.Literal {
	lk := ast.LitInt
	if kind == typing.KindF32 || kind == typing.KindF64 {
		lk = ast.LitFloat
	}

	return &ast.Literal{Kind: lk, Value: v, Type: bt(kind)}
}

func boolLit(v bool) *ast.Literal {
	val := "false"
	if v {
		val = "true"
	}

	return &ast.Literal{Kind: ast.LitBool, Value: val}
}

func ident(name string) *ast.Identifier {
	return &ast.Identifier{Name: name}
}

func binop(op string, lhs, rhs ast.Expr) *ast.BinaryOp {
	return &ast.BinaryOp{Op: op, Lhs: lhs, Rhs: rhs}
}

func exprStmt(e ast.Expr) *ast.ExprStmt {
	return &ast.ExprStmt{Expr: e}
}

func letDecl(name string, init ast.Expr) *ast.VarDecl {
	return &ast.VarDecl{Name: name, Initializer: init}
}

func varDecl(name string, init ast.Expr) *ast.VarDecl {
	return &ast.VarDecl{Mutable: true, Name: name, Initializer: init}
}

func retStmt(v ast.Expr) *ast.Return {
	return &ast.Return{Value: v}
}

func block(stmts ...ast.Stmt) *ast.Block {
	return &ast.Block{Stmts: stmts}
}

func mainFn(stmts ...ast.Stmt) *ast.FuncDef {
	return &ast.FuncDef{
		Decl: &ast.FuncDecl{Name: "main", ReturnType: bt(typing.KindI32)},
		Body: block(stmts...),
	}
}

func testUnit(items ...ast.TopLevel) *ast.TranslationUnit {
	return &ast.TranslationUnit{Path: "test.twkl", Items: items}
}

// mustGen generates a unit that must succeed and returns the module text.
func mustGen(t *testing.T, items ...ast.TopLevel) (*ir.Module, string) {
	t.Helper()

	mod, err := Generate(testUnit(items...))
	require.NoError(t, err)

	return mod, mod.String()
}

// mustFail generates a unit that must fail and returns the compile error.
func mustFail(t *testing.T, items ...ast.TopLevel) *report.CompileError {
	t.Helper()

	mod, err := Generate(testUnit(items...))
	require.Error(t, err)
	require.Nil(t, mod)

	cerr, ok := err.(*report.CompileError)
	require.True(t, ok, "expected a compile error, got %T", err)

	return cerr
}

// requireAllTerminated asserts the structural invariant every generated
// function must satisfy: exactly one terminator per block.
func requireAllTerminated(t *testing.T, mod *ir.Module) {
	t.Helper()

	for _, fn := range mod.Funcs {
		for _, b := range fn.Blocks {
			require.NotNil(t, b.Term, "function %s: block %s has no terminator", fn.GlobalName, b.LocalName)
		}
	}
}
