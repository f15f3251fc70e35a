package generate

import (
	"strings"

	"github.com/yohashinoio/twkl/ast"
	"github.com/yohashinoio/twkl/report"
	"github.com/yohashinoio/twkl/typing"

	"github.com/llir/llvm/ir"
	"github.com/llir/llvm/ir/constant"
	"github.com/llir/llvm/ir/types"
)

// StmtContext carries the block targets statement generation branches to.
// It is passed by value: each compound and each loop overrides its own
// fields without disturbing the enclosing context.
type StmtContext struct {
	// ReturnVar is the unified return slot of the enclosing function, nil
	// for void functions.
	ReturnVar *ir.InstAlloca

	// DestructBlock is the scope teardown block of the innermost compound.
	// Return statements branch here, never directly to ExitBlock.
	DestructBlock *ir.Block

	// ExitBlock is the unified exit block of the enclosing function.
	ExitBlock *ir.Block

	// BreakBlock and ContinueBlock are the targets of break and continue.
	// Both are nil outside of a loop.
	BreakBlock    *ir.Block
	ContinueBlock *ir.Block
}

// genStmt generates a single statement.
func (g *Generator) genStmt(scope *SymbolTable, sctx StmtContext, stmt ast.Stmt) {
	switch v := stmt.(type) {
	case *ast.Block:
		g.genCompound(scope, sctx, v)
	case *ast.ExprStmt:
		g.genExpr(scope, v.Expr)
	case *ast.VarDecl:
		g.genVarDecl(scope, v)
	case *ast.MemberInit:
		// First initialization of a member: the mutability check does not
		// apply.
		g.genAssign(scope, &v.Assign, true)
	case *ast.Assign:
		g.genAssign(scope, v, false)
	case *ast.IncDec:
		g.genIncDec(scope, v)
	case *ast.Return:
		g.genReturn(scope, sctx, v)
	case *ast.If:
		g.genIf(scope, sctx, v)
	case *ast.Loop:
		g.genLoop(scope, sctx, v)
	case *ast.While:
		g.genWhile(scope, sctx, v)
	case *ast.For:
		g.genFor(scope, sctx, v)
	case *ast.Break:
		// Break outside of a loop is tolerated and generates nothing.
		if sctx.BreakBlock != nil {
			g.block.NewBr(sctx.BreakBlock)
		}
	case *ast.Continue:
		if sctx.ContinueBlock != nil {
			g.block.NewBr(sctx.ContinueBlock)
		}
	default:
		report.Raise(report.ErrCodegen, stmt.Span(), "statement kind has no generation rule")
	}
}

// genCompound generates a compound statement.  Each compound opens a fresh
// scope and a fresh teardown block.  Statement generation stops at the first
// terminator; the teardown block then runs the destructors of the scope's
// own class-typed variables and either branches to the function exit (the
// body returned) or becomes the fall-through cursor.
func (g *Generator) genCompound(scope *SymbolTable, sctx StmtContext, block *ast.Block) {
	inner := newSymbolTable(scope)
	sctx.DestructBlock = g.appendBlock()

	for _, stmt := range block.Stmts {
		g.genStmt(inner, sctx, stmt)

		if g.block.Term != nil {
			break
		}
	}

	terminated := g.block.Term != nil
	if !terminated {
		g.block.NewBr(sctx.DestructBlock)
	}

	g.block = sctx.DestructBlock
	g.emitDestructors(inner)

	if terminated {
		g.block.NewBr(sctx.ExitBlock)
	}
}

// genBodyStmt generates a statement in arm or body position.  A bare
// statement gets the same treatment as a compound: its own scope and its own
// teardown block, so a return in it still drains through teardown into the
// function exit rather than into the enclosing compound's teardown.
func (g *Generator) genBodyStmt(scope *SymbolTable, sctx StmtContext, stmt ast.Stmt) {
	body, ok := stmt.(*ast.Block)
	if !ok {
		body = &ast.Block{ASTBase: ast.NewASTBaseOn(stmt.Span()), Stmts: []ast.Stmt{stmt}}
	}

	g.genCompound(scope, sctx, body)
}

// emitDestructors calls the destructor of every class-typed variable
// declared directly in scope, in reverse declaration order.
func (g *Generator) emitDestructors(scope *SymbolTable) {
	locals := scope.Locals()
	for i := len(locals) - 1; i >= 0; i-- {
		v := locals[i]

		nt, ok := g.resolveType(v.Type).(*typing.NamedType)
		if !ok {
			continue
		}

		ci, ok := g.classes[nt.Name]
		if !ok || ci.dtorName == "" {
			continue
		}

		if dtor := g.lookupFunc(ci.dtorName); dtor != nil {
			g.block.NewCall(dtor, v.Alloca)
		}
	}
}

// -----------------------------------------------------------------------------

// genVarDecl generates a local variable declaration.
func (g *Generator) genVarDecl(scope *SymbolTable, decl *ast.VarDecl) {
	if decl.Type == nil && decl.Initializer == nil {
		report.Raise(report.ErrAmbiguousType, decl.Span(),
			"type inference failed: cannot deduce the type of `%s`", decl.Name)
	}

	var init *Value
	if decl.Initializer != nil {
		v := g.genExpr(scope, decl.Initializer)
		init = &v
	}

	dt := decl.Type
	if dt == nil {
		dt = init.Type
	}

	if typing.IsVoid(g.resolveType(dt)) {
		report.Raise(report.ErrIncompleteType, decl.Span(),
			"variable `%s` declared with incomplete type `void`", decl.Name)
	}

	if init != nil && decl.Type != nil {
		if !g.resolveType(init.Type).Equals(g.resolveType(dt)) {
			report.Raise(report.ErrInitializerTypeMismatch, decl.Initializer.Span(),
				"`%s` is declared as `%s`, but its initializer has type `%s`",
				decl.Name, dt.Repr(), init.Type.Repr())
		}
	}

	alloca := g.entryAlloca(g.convType(dt))

	scope.Define(&Variable{
		Name:    decl.Name,
		Alloca:  alloca,
		Type:    dt,
		Mutable: decl.Mutable,
	}, decl.Span())

	if init != nil {
		g.block.NewStore(init.LL, alloca)
	}
}

// genAssign generates a direct or compound assignment.  For compound forms
// the loaded left hand side stays the left operand of the operation, which
// matters for every non-commutative operator.
func (g *Generator) genAssign(scope *SymbolTable, assign *ast.Assign, skipMutCheck bool) {
	lhs := g.genAddr(scope, assign.Lhs)

	if !skipMutCheck && !lhs.Mutable {
		report.Raise(report.ErrReadOnlyAssignment, assign.Lhs.Span(),
			"cannot assign to immutable value")
	}

	rhs := g.genExpr(scope, assign.Rhs)

	var stored Value
	if assign.Op == "=" {
		stored = rhs
	} else {
		op := strings.TrimSuffix(assign.Op, "=")
		if op == assign.Op {
			report.Raise(report.ErrCodegen, assign.Span(),
				"assignment operator `%s` has no generation rule", assign.Op)
		}

		loaded := Value{
			LL:   g.block.NewLoad(g.convType(lhs.Type), lhs.LL),
			Type: lhs.Type,
		}
		stored = g.genArith(op, loaded, rhs, assign.Span())
	}

	if !g.resolveType(stored.Type).Equals(g.resolveType(lhs.Type)) {
		report.Raise(report.ErrTypeMismatch, assign.Span(),
			"cannot assign `%s` to `%s`", stored.Type.Repr(), lhs.Type.Repr())
	}

	g.block.NewStore(stored.LL, lhs.LL)
}

// genIncDec generates a prefix increment or decrement.
func (g *Generator) genIncDec(scope *SymbolTable, incdec *ast.IncDec) {
	addr := g.genAddr(scope, incdec.Operand)

	if !addr.Mutable {
		report.Raise(report.ErrReadOnlyAssignment, incdec.Operand.Span(),
			"cannot assign to immutable value")
	}

	rt := g.resolveType(addr.Type)
	if !typing.IsInteger(rt) {
		report.Raise(report.ErrTypeMismatch, incdec.Span(),
			"cannot apply `%s` to value of type `%s`", incdec.Op, addr.Type.Repr())
	}

	loaded := g.block.NewLoad(g.convType(rt), addr.LL)
	one := constant.NewInt(g.convType(rt).(*types.IntType), 1)

	if incdec.Op == "++" {
		g.block.NewStore(g.block.NewAdd(loaded, one), addr.LL)
	} else {
		g.block.NewStore(g.block.NewSub(loaded, one), addr.LL)
	}
}

// genReturn generates a return statement.  The value is stored into the
// unified return slot and control branches into the innermost teardown
// block, which chains to the function exit.
func (g *Generator) genReturn(scope *SymbolTable, sctx StmtContext, ret *ast.Return) {
	retType := g.resolveType(g.returnTypes[g.enclosingFunc])

	if ret.Value == nil {
		if !typing.IsVoid(retType) {
			report.Raise(report.ErrReturnTypeMismatch, ret.Span(),
				"function returning `%s` must return a value", retType.Repr())
		}
	} else {
		v := g.genExpr(scope, ret.Value)

		if !g.resolveType(v.Type).Equals(retType) {
			report.Raise(report.ErrReturnTypeMismatch, ret.Value.Span(),
				"function returns `%s`, but the return value has type `%s`",
				retType.Repr(), v.Type.Repr())
		}

		g.block.NewStore(v.LL, sctx.ReturnVar)
	}

	g.block.NewBr(sctx.DestructBlock)
}

// -----------------------------------------------------------------------------

// genIf generates a two-way conditional.  The merge block becomes the cursor
// even when both arms terminate and it is unreachable.
func (g *Generator) genIf(scope *SymbolTable, sctx StmtContext, stmt *ast.If) {
	cond := g.genCond(scope, stmt.Cond)

	thenB := g.appendBlock()

	var elseB *ir.Block
	if stmt.Else != nil {
		elseB = g.appendBlock()
	}

	mergeB := g.appendBlock()

	if elseB != nil {
		g.block.NewCondBr(cond, thenB, elseB)
	} else {
		g.block.NewCondBr(cond, thenB, mergeB)
	}

	g.block = thenB
	g.genBodyStmt(scope, sctx, stmt.Then)
	if g.block.Term == nil {
		g.block.NewBr(mergeB)
	}

	if elseB != nil {
		g.block = elseB
		g.genBodyStmt(scope, sctx, stmt.Else)
		if g.block.Term == nil {
			g.block.NewBr(mergeB)
		}
	}

	g.block = mergeB
}

// genLoop generates an unconditional loop.  Continue targets the head of
// the body.
func (g *Generator) genLoop(scope *SymbolTable, sctx StmtContext, stmt *ast.Loop) {
	bodyB := g.appendBlock()
	endB := g.appendBlock()

	g.block.NewBr(bodyB)
	g.block = bodyB

	sctx.BreakBlock = endB
	sctx.ContinueBlock = bodyB
	g.genBodyStmt(scope, sctx, stmt.Body)

	if g.block.Term == nil {
		g.block.NewBr(bodyB)
	}

	g.block = endB
}

// genWhile generates a condition-tested loop.  Continue targets the
// condition block.
func (g *Generator) genWhile(scope *SymbolTable, sctx StmtContext, stmt *ast.While) {
	condB := g.appendBlock()
	bodyB := g.appendBlock()
	endB := g.appendBlock()

	g.block.NewBr(condB)

	g.block = condB
	g.block.NewCondBr(g.genCond(scope, stmt.Cond), bodyB, endB)

	g.block = bodyB
	sctx.BreakBlock = endB
	sctx.ContinueBlock = condB
	g.genBodyStmt(scope, sctx, stmt.Body)

	if g.block.Term == nil {
		g.block.NewBr(condB)
	}

	g.block = endB
}

// genFor generates a three-clause loop.  The init clause lives in a scope
// of its own; a missing condition is constant truth; continue targets the
// increment block.
func (g *Generator) genFor(scope *SymbolTable, sctx StmtContext, stmt *ast.For) {
	forScope := newSymbolTable(scope)

	if stmt.Init != nil {
		g.genStmt(forScope, sctx, stmt.Init)
	}

	condB := g.appendBlock()
	bodyB := g.appendBlock()
	loopB := g.appendBlock()
	endB := g.appendBlock()

	g.block.NewBr(condB)

	g.block = condB
	if stmt.Cond != nil {
		g.block.NewCondBr(g.genCond(forScope, stmt.Cond), bodyB, endB)
	} else {
		g.block.NewBr(bodyB)
	}

	g.block = bodyB
	inner := sctx
	inner.BreakBlock = endB
	inner.ContinueBlock = loopB
	g.genBodyStmt(forScope, inner, stmt.Body)

	if g.block.Term == nil {
		g.block.NewBr(loopB)
	}

	// The post clause runs in the loop's own context: a break here leaves
	// this loop.
	g.block = loopB
	if stmt.Post != nil {
		g.genStmt(forScope, inner, stmt.Post)
	}
	if g.block.Term == nil {
		g.block.NewBr(condB)
	}

	g.block = endB
}
