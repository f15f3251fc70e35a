package generate

import (
	"github.com/yohashinoio/twkl/report"

	"github.com/llir/llvm/ir"
)

// verifyFunc checks the structural invariants of a generated function.  A
// failure here is a generator bug, not a user error, but it is raised as a
// compile error so the unit aborts cleanly.
func (g *Generator) verifyFunc(fn *ir.Func) {
	if len(fn.Blocks) == 0 {
		report.Raise(report.ErrCodegen, nil,
			"verification of `%s` failed: function body has no blocks", fn.GlobalName)
	}

	for _, b := range fn.Blocks {
		if b.Term == nil {
			report.Raise(report.ErrCodegen, nil,
				"verification of `%s` failed: block `%s` has no terminator",
				fn.GlobalName, b.LocalName)
		}
	}
}
