package generate

import (
	"github.com/yohashinoio/twkl/report"
)

// SymbolTable is one lexical scope of local variables.  Tables are chained
// through their parent: looking up a name walks the chain innermost first, so
// an inner definition shadows an outer one without touching it.
type SymbolTable struct {
	parent *SymbolTable

	symbols map[string]*Variable

	// order records the variables of this table in declaration order so that
	// scope teardown can run destructors deterministically.
	order []*Variable
}

// newSymbolTable creates a scope overlaying parent.  A nil parent makes a
// function root scope.
func newSymbolTable(parent *SymbolTable) *SymbolTable {
	return &SymbolTable{
		parent:  parent,
		symbols: make(map[string]*Variable),
	}
}

// Lookup resolves name against this scope and its ancestors.  The innermost
// binding wins.
func (st *SymbolTable) Lookup(name string) (*Variable, bool) {
	for s := st; s != nil; s = s.parent {
		if v, ok := s.symbols[name]; ok {
			return v, true
		}
	}

	return nil, false
}

// Define binds a variable in this exact scope.  Redefinition within the same
// scope is an error; shadowing an outer binding is not.
func (st *SymbolTable) Define(v *Variable, span *report.TextSpan) {
	if _, ok := st.symbols[v.Name]; ok {
		report.Raise(report.ErrRedefinition, span, "redefinition of `%s`", v.Name)
	}

	st.symbols[v.Name] = v
	st.order = append(st.order, v)
}

// Locals returns the variables declared directly in this scope in declaration
// order, not including any ancestor's.
func (st *SymbolTable) Locals() []*Variable {
	return st.order
}
