package generate

import "github.com/llir/llvm/ir"

// FuncPass is one transformation run over each function after it verifies.
type FuncPass interface {
	// Name identifies the pass in diagnostics.
	Name() string

	// Run transforms fn in place.
	Run(fn *ir.Func)
}

// PassPipeline is the ordered set of function passes applied by a generator.
// The pipeline is opaque to generation: passes may rewrite anything as long
// as they preserve the verifier's invariants.
type PassPipeline struct {
	passes []FuncPass
}

// NewPassPipeline creates an empty pipeline.
func NewPassPipeline() *PassPipeline {
	return &PassPipeline{}
}

// Add appends a pass to the pipeline.
func (pp *PassPipeline) Add(pass FuncPass) {
	pp.passes = append(pp.passes, pass)
}

// Run applies the pipeline to one function in order.
func (pp *PassPipeline) Run(fn *ir.Func) {
	for _, pass := range pp.passes {
		pass.Run(fn)
	}
}
