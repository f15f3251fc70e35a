package generate

import (
	"github.com/yohashinoio/twkl/ast"
	"github.com/yohashinoio/twkl/report"

	"github.com/llir/llvm/ir"
)

// Generate converts one translation unit into an LLVM module.  Generation is
// all or nothing: on the first compile error the partial module is discarded
// and the error is returned.
func Generate(unit *ast.TranslationUnit) (*ir.Module, error) {
	g := NewGenerator(unit.Path)

	if err := g.GenerateUnit(unit); err != nil {
		return nil, err
	}

	return g.mod, nil
}

// GenerateUnit generates all top-level items of unit into the generator's
// module, recovering any compile error raised along the way.
func (g *Generator) GenerateUnit(unit *ast.TranslationUnit) (err error) {
	defer report.CatchUnit(&err)

	for _, item := range unit.Items {
		g.genTopLevel(item)
	}

	return nil
}

// Passes exposes the generator's pass pipeline so that the driver can
// configure it before generation.
func (g *Generator) Passes() *PassPipeline {
	return g.passes
}
