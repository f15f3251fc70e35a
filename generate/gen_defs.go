package generate

import (
	"github.com/yohashinoio/twkl/ast"
	"github.com/yohashinoio/twkl/report"
	"github.com/yohashinoio/twkl/typing"

	"github.com/llir/llvm/ir"
	"github.com/llir/llvm/ir/constant"
	"github.com/llir/llvm/ir/enum"
	"github.com/llir/llvm/ir/types"
)

// genTopLevel generates one top-level item of the unit.
func (g *Generator) genTopLevel(item ast.TopLevel) {
	switch v := item.(type) {
	case *ast.FuncDecl:
		if v.IsTemplate() {
			g.registerFuncTemplate(&ast.FuncDef{Decl: v})
			return
		}

		g.genFuncDecl(v)
	case *ast.FuncDef:
		if v.Decl.IsTemplate() {
			g.registerFuncTemplate(v)
			return
		}

		fn := g.genFuncDecl(v.Decl)
		g.genFuncBody(fn, v.Decl, "", v.Body)
	case *ast.ClassDef:
		g.genClassDef(v)
	case *ast.UnionDef:
		g.genUnionDef(v)
	case *ast.TypeAlias:
		g.genTypeAlias(v)
	case *ast.Namespace:
		g.ns.Push(v.Name, NSNamespace)

		for _, inner := range v.Items {
			g.genTopLevel(inner)
		}

		g.ns.Pop()
	case *ast.Import:
		g.imports = append(g.imports, v.Path)
	default:
		report.Raise(report.ErrCodegen, item.Span(), "top-level item has no generation rule")
	}
}

// -----------------------------------------------------------------------------

// genFuncDecl declares a function with its default linkage name: mangled
// against the current namespace path unless the function is main or marked
// nomangle.  Redeclaring an existing signature reuses it.
func (g *Generator) genFuncDecl(decl *ast.FuncDecl) *ir.Func {
	linkName := decl.Name
	if decl.Name != "main" && !decl.NoMangle {
		linkName = g.mangler.Mangle(g.ns.Path(), decl.Name)
	}

	return g.declareFunc(linkName, decl, "")
}

// declareFunc declares a function under an explicit linkage name.  A non
// empty recvClass prepends the hidden `this` parameter of a class member.
func (g *Generator) declareFunc(linkName string, decl *ast.FuncDecl, recvClass string) *ir.Func {
	if existing := g.lookupFunc(linkName); existing != nil {
		return existing
	}

	var params []*ir.Param
	var ptypes []typing.DataType

	if recvClass != "" {
		thisType := &typing.PointerType{Pointee: &typing.NamedType{Name: recvClass}}
		params = append(params, ir.NewParam("this", g.convType(thisType)))
		ptypes = append(ptypes, thisType)
	}

	variadic := false
	for _, p := range decl.Params {
		if p.IsVarArg {
			variadic = true
			continue
		}

		params = append(params, ir.NewParam(p.Name, g.convType(p.Type)))
		ptypes = append(ptypes, p.Type)
	}

	retType := decl.ReturnType
	if retType == nil {
		retType = voidType
	}

	fn := g.mod.NewFunc(linkName, g.convType(retType), params...)
	fn.Sig.Variadic = variadic

	g.returnTypes[fn] = retType
	g.paramTypes[fn] = ptypes

	return fn
}

// genFuncBody generates the body of a declared function: entry block,
// parameter spills, the unified return slot and exit block, then the body
// itself as a compound statement.
func (g *Generator) genFuncBody(fn *ir.Func, decl *ast.FuncDecl, recvClass string, body *ast.Block) {
	if len(fn.Blocks) > 0 {
		report.Raise(report.ErrRedefinition, body.Span(), "redefinition of `%s`", decl.Name)
	}

	if !decl.IsPublic && fn.GlobalName != "main" {
		fn.Linkage = enum.LinkageInternal
	}

	g.enclosingFunc = fn
	g.block = fn.NewBlock("entry")

	scope := newSymbolTable(nil)

	paramIdx := 0
	if recvClass != "" {
		thisType := g.paramTypes[fn][0]
		alloca := g.entryAlloca(g.convType(thisType))
		g.block.NewStore(fn.Params[0], alloca)
		scope.Define(&Variable{Name: "this", Alloca: alloca, Type: thisType}, decl.Span())
		paramIdx = 1
	}

	for _, p := range decl.Params {
		if p.IsVarArg {
			continue
		}

		alloca := g.entryAlloca(g.convType(p.Type))
		g.block.NewStore(fn.Params[paramIdx], alloca)
		scope.Define(&Variable{
			Name:    p.Name,
			Alloca:  alloca,
			Type:    p.Type,
			Mutable: p.Mutable,
		}, decl.Span())

		paramIdx++
	}

	retType := g.resolveType(g.returnTypes[fn])

	var retVar *ir.InstAlloca
	if !typing.IsVoid(retType) {
		retVar = g.entryAlloca(g.convType(retType))
	}

	exitB := g.appendBlock()

	g.genCompound(scope, StmtContext{ReturnVar: retVar, ExitBlock: exitB}, body)
	g.ensureTerminators(fn, exitB)

	g.block = exitB
	if retVar != nil {
		exitB.NewRet(exitB.NewLoad(g.convType(retType), retVar))
	} else {
		exitB.NewRet(nil)
	}

	g.moveBlockToEnd(exitB)

	g.verifyFunc(fn)
	g.passes.Run(fn)
}

// ensureTerminators closes every open block of fn.  main falls back to
// returning zero; other value returning functions yield undef on the paths
// the source never returns from; void paths drain into the exit block.  The
// fix-up is idempotent: terminated blocks are never touched.
func (g *Generator) ensureTerminators(fn *ir.Func, exitB *ir.Block) {
	intRet, retIsInt := fn.Sig.RetType.(*types.IntType)

	for _, b := range fn.Blocks {
		if b == exitB || b.Term != nil {
			continue
		}

		switch {
		case fn.GlobalName == "main" && retIsInt:
			b.NewRet(constant.NewInt(intRet, 0))
		case !fn.Sig.RetType.Equal(types.Void):
			b.NewRet(constant.NewUndef(fn.Sig.RetType))
		default:
			b.NewBr(exitB)
		}
	}
}

// -----------------------------------------------------------------------------

// genClassDef registers the class struct type, then generates its members
// inside a class namespace frame.
func (g *Generator) genClassDef(cd *ast.ClassDef) {
	if cd.IsTemplate() {
		g.registerClassTemplate(cd)
		return
	}

	if g.typeNameTaken(cd.Name) {
		report.Raise(report.ErrRedefinition, cd.Span(), "redefinition of `%s`", cd.Name)
	}

	// The struct is registered before its fields lower so that fields may
	// point back at the class.
	st := types.NewStruct()
	g.mod.NewTypeDef(cd.Name, st)

	ci := &classInfo{
		llType: st,
		fields: cd.Fields,
		nsPath: append(g.ns.Path(), cd.Name),
	}
	g.classes[cd.Name] = ci

	for _, field := range cd.Fields {
		st.Fields = append(st.Fields, g.convType(field.Type))
	}

	g.ns.Push(cd.Name, NSClass)

	if cd.Dtor != nil {
		ci.dtorName = g.mangler.MangleDestructor(ci.nsPath)
		fn := g.declareFunc(ci.dtorName, cd.Dtor.Decl, cd.Name)
		g.genFuncBody(fn, cd.Dtor.Decl, cd.Name, cd.Dtor.Body)
	}

	if cd.Ctor != nil {
		g.genConstructorDef(cd, ci)
	}

	for _, method := range cd.Methods {
		fn := g.declareFunc(g.mangler.Mangle(ci.nsPath, method.Decl.Name), method.Decl, cd.Name)
		g.genFuncBody(fn, method.Decl, cd.Name, method.Body)
	}

	g.ns.Pop()
}

// genConstructorDef generates the class constructor.  The member initializer
// list runs before the body as first-initialization assignments, which are
// exempt from the mutability check.
func (g *Generator) genConstructorDef(cd *ast.ClassDef, ci *classInfo) {
	ctor := cd.Ctor

	decl := &ast.FuncDecl{
		ASTBase: ast.NewASTBaseOn(ctor.Span()),
		Name:    cd.Name,
		Params:  ctor.Params,
	}

	stmts := make([]ast.Stmt, 0, len(ctor.MemberInits)+len(ctor.Body.Stmts))
	for _, mi := range ctor.MemberInits {
		stmts = append(stmts, &ast.MemberInit{Assign: ast.Assign{
			ASTBase: ast.NewASTBaseOn(mi.Initializer.Span()),
			Lhs: &ast.MemberAccess{
				ASTBase:   ast.NewASTBaseOn(mi.Initializer.Span()),
				Root:      &ast.Identifier{ASTBase: ast.NewASTBaseOn(ctor.Span()), Name: "this"},
				FieldName: mi.MemberName,
			},
			Op:  "=",
			Rhs: mi.Initializer,
		}})
	}
	stmts = append(stmts, ctor.Body.Stmts...)

	body := &ast.Block{ASTBase: ast.NewASTBaseOn(ctor.Span()), Stmts: stmts}

	fn := g.declareFunc(g.mangler.MangleConstructor(ci.nsPath), decl, cd.Name)
	g.genFuncBody(fn, decl, cd.Name, body)
}

// genUnionDef registers a tagged union as {i32 tag, [size x i8] payload}
// with the payload sized by the widest alternative.
func (g *Generator) genUnionDef(ud *ast.UnionDef) {
	if g.typeNameTaken(ud.Name) {
		report.Raise(report.ErrRedefinition, ud.Span(), "redefinition of `%s`", ud.Name)
	}

	var size uint64
	for _, tag := range ud.Tags {
		if s := g.sizeOf(tag.Type); s > size {
			size = s
		}
	}

	st := types.NewStruct(types.I32, types.NewArray(size, types.I8))
	g.mod.NewTypeDef(ud.Name, st)

	g.unions[ud.Name] = &unionInfo{llType: st, tags: ud.Tags}
}

// genTypeAlias records a type alias for resolution during type lowering.
func (g *Generator) genTypeAlias(ta *ast.TypeAlias) {
	if g.typeNameTaken(ta.Name) {
		report.Raise(report.ErrRedefinition, ta.Span(), "redefinition of `%s`", ta.Name)
	}

	g.aliases[ta.Name] = ta.Type
}

// typeNameTaken reports whether name already names a class, union, or alias.
func (g *Generator) typeNameTaken(name string) bool {
	if _, ok := g.classes[name]; ok {
		return true
	}

	if _, ok := g.unions[name]; ok {
		return true
	}

	_, ok := g.aliases[name]
	return ok
}

// -----------------------------------------------------------------------------

// registerFuncTemplate records a function template for later instantiation.
// Templates with the same name collide only at equal arity within one
// namespace path.
func (g *Generator) registerFuncTemplate(def *ast.FuncDef) {
	key := TemplateKey{
		Name:   def.Decl.Name,
		Arity:  len(def.Decl.TemplateParams),
		NSPath: g.ns.PathKey(),
	}

	if _, ok := g.funcTemplates[key]; ok {
		report.Raise(report.ErrRedefinition, def.Decl.Span(), "redefinition of `%s`", def.Decl.Name)
	}

	g.funcTemplates[key] = def
}

// registerClassTemplate records a class template for later instantiation.
func (g *Generator) registerClassTemplate(cd *ast.ClassDef) {
	key := TemplateKey{
		Name:   cd.Name,
		Arity:  len(cd.TemplateParams),
		NSPath: g.ns.PathKey(),
	}

	if _, ok := g.classTemplates[key]; ok {
		report.Raise(report.ErrRedefinition, cd.Span(), "redefinition of `%s`", cd.Name)
	}

	g.classTemplates[key] = cd
}
