package generate

import (
	"fmt"

	"github.com/yohashinoio/twkl/ast"
	"github.com/yohashinoio/twkl/mangle"
	"github.com/yohashinoio/twkl/typing"

	"github.com/llir/llvm/ir"
	"github.com/llir/llvm/ir/constant"
	"github.com/llir/llvm/ir/enum"
	"github.com/llir/llvm/ir/types"
)

// classInfo is the generator's record of a defined class.
type classInfo struct {
	// llType is the named LLVM struct carrying the fields in order.
	llType *types.StructType

	// fields are the class fields in declaration order.
	fields []ast.Field

	// nsPath is the namespace path the class was defined under, including
	// the class frame itself.  Member linkage names mangle against it.
	nsPath []string

	// dtorName is the mangled name of the destructor, or empty if the class
	// has none.
	dtorName string
}

// fieldIndex returns the positional index of the named field.
func (ci *classInfo) fieldIndex(name string) (int, bool) {
	for i, field := range ci.fields {
		if field.Name == name {
			return i, true
		}
	}

	return 0, false
}

// unionInfo is the generator's record of a defined union.
type unionInfo struct {
	// llType is the named LLVM struct {i32 tag, [size x i8] payload}.
	llType *types.StructType

	// tags are the union alternatives in declaration order.
	tags []ast.UnionTag
}

// -----------------------------------------------------------------------------

// Generator converts one typed translation unit into one LLVM module.  A
// generator is single threaded; the driver creates one per unit, so separate
// units may generate concurrently.
type Generator struct {
	// file is the path of the source file the unit was parsed from.
	file string

	// mod is the LLVM module being generated.
	mod *ir.Module

	// block is the insertion cursor: new instructions are appended here.
	block *ir.Block

	// enclosingFunc is the function enclosing the block being generated.
	enclosingFunc *ir.Func

	// returnTypes maps each declared function to its twkl return type, which
	// LLVM's own signature cannot fully express.
	returnTypes map[*ir.Func]typing.DataType

	// paramTypes maps each declared function to its twkl parameter types.
	paramTypes map[*ir.Func][]typing.DataType

	// classes, unions, and aliases are the unit's user-defined type tables.
	classes map[string]*classInfo
	unions  map[string]*unionInfo
	aliases map[string]typing.DataType

	// funcTemplates and classTemplates hold registered templates awaiting
	// instantiation.
	funcTemplates  map[TemplateKey]*ast.FuncDef
	classTemplates map[TemplateKey]*ast.ClassDef

	// ns is the namespace stack qualifying the item being generated.
	ns NamespaceStack

	// mangler encodes qualified names into linkage names.
	mangler mangle.Mangler

	// passes is the per-function pass pipeline run after verification.
	passes *PassPipeline

	// imports are the unit-level import paths in source order.
	imports []string

	// globalCounter numbers anonymous globals such as interned strings.
	globalCounter int
}

// NewGenerator creates a generator for the unit parsed from file.
func NewGenerator(file string) *Generator {
	return &Generator{
		file:           file,
		mod:            ir.NewModule(),
		returnTypes:    make(map[*ir.Func]typing.DataType),
		paramTypes:     make(map[*ir.Func][]typing.DataType),
		classes:        make(map[string]*classInfo),
		unions:         make(map[string]*unionInfo),
		aliases:        make(map[string]typing.DataType),
		funcTemplates:  make(map[TemplateKey]*ast.FuncDef),
		classTemplates: make(map[TemplateKey]*ast.ClassDef),
		passes:         NewPassPipeline(),
	}
}

// Module returns the module under generation.
func (g *Generator) Module() *ir.Module {
	return g.mod
}

// -----------------------------------------------------------------------------

// appendBlock adds a new basic block to the enclosing function.  It does
// *not* move the cursor to the new block.
func (g *Generator) appendBlock() *ir.Block {
	return g.enclosingFunc.NewBlock(fmt.Sprintf("bb%d", len(g.enclosingFunc.Blocks)))
}

// entryAlloca allocates stack storage in the entry block of the enclosing
// function, regardless of where the cursor currently is.  Keeping all allocas
// in the entry block keeps them out of loops.
func (g *Generator) entryAlloca(t types.Type) *ir.InstAlloca {
	return g.enclosingFunc.Blocks[0].NewAlloca(t)
}

// moveBlockToEnd reorders b to the end of the enclosing function's block
// list.  Used to keep the unified exit block last in the emitted IR.
func (g *Generator) moveBlockToEnd(b *ir.Block) {
	blocks := g.enclosingFunc.Blocks
	for i, blk := range blocks {
		if blk == b {
			g.enclosingFunc.Blocks = append(append(blocks[:i], blocks[i+1:]...), b)
			return
		}
	}
}

// lookupFunc finds a function in the module by its linkage name.
func (g *Generator) lookupFunc(name string) *ir.Func {
	for _, f := range g.mod.Funcs {
		if f.GlobalName == name {
			return f
		}
	}

	return nil
}

// internString creates a private immutable global holding s as a NUL
// terminated character array and returns the global.
func (g *Generator) internString(s string) *ir.Global {
	name := fmt.Sprintf(".str.%d", g.globalCounter)
	g.globalCounter++

	global := g.mod.NewGlobalDef(name, constant.NewCharArrayFromString(s+"\x00"))
	global.Immutable = true
	global.Linkage = enum.LinkageInternal

	return global
}
