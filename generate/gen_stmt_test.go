package generate

import (
	"regexp"
	"strings"
	"testing"

	"github.com/yohashinoio/twkl/ast"
	"github.com/yohashinoio/twkl/report"
	"github.com/yohashinoio/twkl/typing"

	"github.com/google/go-cmp/cmp"
	"github.com/llir/llvm/ir"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUnifiedReturn(t *testing.T) {
	mod, text := mustGen(t, mainFn(
		letDecl("x", intLit("5")),
		letDecl("y", intLit("10")),
		retStmt(binop("+", ident("x"), ident("y"))),
	))

	// Return slot, x, and y all live in the entry block.
	assert.Equal(t, 3, strings.Count(text, "alloca i32"))
	assert.Contains(t, text, "add i32")

	// The return value travels through the return slot to the exit block.
	assert.Regexp(t, regexp.MustCompile(`ret i32 %\d+`), text)
	requireAllTerminated(t, mod)
}

func TestBlockOrderKeepsExitLast(t *testing.T) {
	mod, _ := mustGen(t, mainFn(retStmt(intLit("0"))))

	fn := findFunc(t, mod, "main")

	var names []string
	for _, b := range fn.Blocks {
		names = append(names, b.LocalName)
	}

	// entry, then the body's teardown block, then the unified exit.
	want := []string{"entry", "bb2", "bb1"}
	if diff := cmp.Diff(want, names); diff != "" {
		t.Fatalf("block order mismatch (-want +got):\n%s", diff)
	}
}

func TestMissingReturnFixups(t *testing.T) {
	// main falls back to returning zero.
	_, text := mustGen(t, mainFn())
	assert.Contains(t, text, "ret i32 0")

	// Other value returning functions yield undef on never-returning paths.
	f := &ast.FuncDef{
		Decl: &ast.FuncDecl{Name: "f", ReturnType: bt(typing.KindI32)},
		Body: block(),
	}
	_, text = mustGen(t, f)
	assert.Contains(t, text, "ret i32 undef")

	// Void paths drain into the exit block.
	v := &ast.FuncDef{
		Decl: &ast.FuncDecl{Name: "v"},
		Body: block(),
	}
	mod, text := mustGen(t, v)
	assert.Contains(t, text, "ret void")
	requireAllTerminated(t, mod)
}

func TestVarDeclErrors(t *testing.T) {
	cerr := mustFail(t, mainFn(&ast.VarDecl{Name: "x"}))
	assert.Equal(t, report.ErrAmbiguousType, cerr.Kind)

	cerr = mustFail(t, mainFn(&ast.VarDecl{Name: "x", Type: bt(typing.KindVoid), Initializer: intLit("1")}))
	assert.Equal(t, report.ErrIncompleteType, cerr.Kind)

	cerr = mustFail(t, mainFn(
		letDecl("x", intLit("1")),
		letDecl("x", intLit("2")),
	))
	assert.Equal(t, report.ErrRedefinition, cerr.Kind)

	cerr = mustFail(t, mainFn(&ast.VarDecl{Name: "x", Type: bt(typing.KindI32), Initializer: typedLit("1", typing.KindI64)}))
	assert.Equal(t, report.ErrInitializerTypeMismatch, cerr.Kind)
}

func TestShadowingInNestedBlock(t *testing.T) {
	mod, _ := mustGen(t, mainFn(
		letDecl("x", intLit("1")),
		block(letDecl("x", typedLit("2", typing.KindI64))),
	))

	requireAllTerminated(t, mod)
}

func TestAssignmentChecks(t *testing.T) {
	cerr := mustFail(t, mainFn(
		letDecl("x", intLit("1")),
		&ast.Assign{Lhs: ident("x"), Op: "=", Rhs: intLit("2")},
	))
	assert.Equal(t, report.ErrReadOnlyAssignment, cerr.Kind)

	cerr = mustFail(t, mainFn(
		&ast.Assign{Lhs: intLit("1"), Op: "=", Rhs: intLit("2")},
	))
	assert.Equal(t, report.ErrCodegen, cerr.Kind)

	cerr = mustFail(t, mainFn(
		varDecl("x", intLit("1")),
		&ast.Assign{Lhs: ident("x"), Op: "=", Rhs: typedLit("2", typing.KindI64)},
	))
	assert.Equal(t, report.ErrTypeMismatch, cerr.Kind)
}

func TestCompoundAssignKeepsOperandOrder(t *testing.T) {
	// x -= 4 must lower with the loaded x on the left: `sub %x, 4`, never
	// `sub 4, %x`.
	_, text := mustGen(t, mainFn(
		varDecl("x", intLit("10")),
		&ast.Assign{Lhs: ident("x"), Op: "-=", Rhs: intLit("4")},
	))

	assert.Regexp(t, regexp.MustCompile(`sub i32 %\d+, 4`), text)

	_, text = mustGen(t, mainFn(
		varDecl("x", intLit("10")),
		&ast.Assign{Lhs: ident("x"), Op: "/=", Rhs: intLit("2")},
	))

	assert.Regexp(t, regexp.MustCompile(`sdiv i32 %\d+, 2`), text)
}

func TestIncDec(t *testing.T) {
	_, text := mustGen(t, mainFn(
		varDecl("x", intLit("5")),
		&ast.IncDec{Op: "++", Operand: ident("x")},
		&ast.IncDec{Op: "--", Operand: ident("x")},
	))

	assert.Regexp(t, regexp.MustCompile(`add i32 %\d+, 1`), text)
	assert.Regexp(t, regexp.MustCompile(`sub i32 %\d+, 1`), text)

	cerr := mustFail(t, mainFn(
		letDecl("x", intLit("5")),
		&ast.IncDec{Op: "++", Operand: ident("x")},
	))
	assert.Equal(t, report.ErrReadOnlyAssignment, cerr.Kind)
}

func TestReturnTypeMismatch(t *testing.T) {
	cerr := mustFail(t, mainFn(retStmt(typedLit("0", typing.KindI64))))
	assert.Equal(t, report.ErrReturnTypeMismatch, cerr.Kind)

	cerr = mustFail(t, mainFn(retStmt(nil)))
	assert.Equal(t, report.ErrReturnTypeMismatch, cerr.Kind)
}

// -----------------------------------------------------------------------------

func TestIfCondition(t *testing.T) {
	mod, text := mustGen(t, mainFn(
		&ast.If{Cond: boolLit(true), Then: block(retStmt(intLit("1")))},
		retStmt(intLit("0")),
	))

	// Boolean conditions test against the typed zero of their byte
	// representation.
	assert.Contains(t, text, "icmp ne i8 1, 0")
	requireAllTerminated(t, mod)

	cerr := mustFail(t, mainFn(
		&ast.If{Cond: typedLit("1.0", typing.KindF64), Then: block()},
	))
	assert.Equal(t, report.ErrTypeMismatch, cerr.Kind)
}

func TestIfBothArmsTerminate(t *testing.T) {
	// The merge block survives unreachable: everything stays terminated.
	mod, _ := mustGen(t, mainFn(
		&ast.If{
			Cond: boolLit(true),
			Then: block(retStmt(intLit("1"))),
			Else: block(retStmt(intLit("2"))),
		},
	))

	requireAllTerminated(t, mod)
}

func findFunc(t *testing.T, mod *ir.Module, name string) *ir.Func {
	t.Helper()

	for _, fn := range mod.Funcs {
		if fn.GlobalName == name {
			return fn
		}
	}

	t.Fatalf("function %s not found", name)
	return nil
}

// condBlock finds the single conditionally branching block of fn.
func condBlock(t *testing.T, fn *ir.Func) *ir.Block {
	t.Helper()

	for _, b := range fn.Blocks {
		if _, ok := b.Term.(*ir.TermCondBr); ok {
			return b
		}
	}

	t.Fatal("no conditional branch found")
	return nil
}

// brChainReaches follows unconditional branches from b and reports whether
// the chain arrives at target.
func brChainReaches(b, target *ir.Block) bool {
	for hops := 0; hops < 8; hops++ {
		if b == target {
			return true
		}

		br, ok := b.Term.(*ir.TermBr)
		if !ok {
			return false
		}

		b = br.Target.(*ir.Block)
	}

	return false
}

func TestReturnInBareThenArmDrainsToExit(t *testing.T) {
	// A bare (non-block) arm gets its own teardown block, so its return
	// value still travels through the return slot into the unified exit
	// instead of dead-ending in the enclosing compound's teardown.
	mod, text := mustGen(t, mainFn(
		&ast.If{Cond: boolLit(true), Then: retStmt(intLit("1"))},
	))

	requireAllTerminated(t, mod)
	assert.Contains(t, text, "store i32 1")

	fn := findFunc(t, mod, "main")
	exit := fn.Blocks[len(fn.Blocks)-1]

	// The exit block returns the loaded return slot.
	ret, ok := exit.Term.(*ir.TermRet)
	require.True(t, ok)
	_, ok = ret.X.(*ir.InstLoad)
	require.True(t, ok)

	then := condBlock(t, fn).Term.(*ir.TermCondBr).TargetTrue.(*ir.Block)
	assert.True(t, brChainReaches(then, exit))
}

func TestReturnInBareLoopBodyDrainsToExit(t *testing.T) {
	mod, text := mustGen(t, mainFn(
		&ast.While{Cond: boolLit(true), Body: retStmt(intLit("7"))},
	))

	requireAllTerminated(t, mod)
	assert.Contains(t, text, "store i32 7")

	fn := findFunc(t, mod, "main")
	exit := fn.Blocks[len(fn.Blocks)-1]

	body := condBlock(t, fn).Term.(*ir.TermCondBr).TargetTrue.(*ir.Block)
	assert.True(t, brChainReaches(body, exit))
}

func TestWhileContinueTargetsCondition(t *testing.T) {
	mod, _ := mustGen(t, mainFn(
		&ast.While{Cond: boolLit(true), Body: block(&ast.Continue{})},
		retStmt(intLit("0")),
	))

	fn := findFunc(t, mod, "main")
	cond := condBlock(t, fn)

	body := cond.Term.(*ir.TermCondBr).TargetTrue.(*ir.Block)
	br, ok := body.Term.(*ir.TermBr)
	require.True(t, ok)
	assert.Same(t, cond, br.Target.(*ir.Block))
}

func TestForContinueTargetsIncrement(t *testing.T) {
	mod, text := mustGen(t, mainFn(
		&ast.For{
			Init: varDecl("i", intLit("0")),
			Cond: binop("<", ident("i"), intLit("10")),
			Post: &ast.IncDec{Op: "++", Operand: ident("i")},
			Body: block(&ast.Continue{}),
		},
		retStmt(intLit("0")),
	))

	fn := findFunc(t, mod, "main")
	cond := condBlock(t, fn)

	// continue goes to the increment block, which loops back to the
	// condition, not straight to the condition itself.
	body := cond.Term.(*ir.TermCondBr).TargetTrue.(*ir.Block)
	post := body.Term.(*ir.TermBr).Target.(*ir.Block)
	require.NotSame(t, cond, post)
	assert.Same(t, cond, post.Term.(*ir.TermBr).Target.(*ir.Block))

	// The increment itself lives in the post block.
	assert.Regexp(t, regexp.MustCompile(`add i32 %\d+, 1`), text)
}

func TestBreakInForPostLeavesThisLoop(t *testing.T) {
	mod, _ := mustGen(t, mainFn(
		&ast.For{Cond: boolLit(true), Post: &ast.Break{}, Body: block()},
		retStmt(intLit("0")),
	))

	requireAllTerminated(t, mod)

	fn := findFunc(t, mod, "main")
	end := condBlock(t, fn).Term.(*ir.TermCondBr).TargetFalse.(*ir.Block)

	// The break in the post clause jumps straight to this loop's end block;
	// nothing else branches there unconditionally.
	var brs int
	for _, b := range fn.Blocks {
		if br, ok := b.Term.(*ir.TermBr); ok && br.Target.(*ir.Block) == end {
			brs++
		}
	}
	assert.Equal(t, 1, brs)
}

func TestForWithoutConditionLoopsForever(t *testing.T) {
	mod, _ := mustGen(t, mainFn(
		&ast.For{Body: block(&ast.Break{})},
		retStmt(intLit("0")),
	))

	requireAllTerminated(t, mod)
}

func TestLoopBreak(t *testing.T) {
	mod, _ := mustGen(t, mainFn(
		&ast.Loop{Body: block(&ast.Break{})},
		retStmt(intLit("0")),
	))

	requireAllTerminated(t, mod)
}

func TestBreakContinueOutsideLoopAreNoOps(t *testing.T) {
	// Outside of a loop, break and continue generate nothing rather than
	// erroring.
	mod, _ := mustGen(t, mainFn(
		&ast.Break{},
		&ast.Continue{},
		retStmt(intLit("0")),
	))

	requireAllTerminated(t, mod)

	fn := findFunc(t, mod, "main")
	for _, b := range fn.Blocks {
		_, ok := b.Term.(*ir.TermCondBr)
		assert.False(t, ok)
	}
}
