package cmd

import "github.com/yohashinoio/twkl/ast"

// Frontend parses one twkl source file into its top-level AST items.  The
// lexer and parser live outside this repository: embedders register theirs
// before calling Execute.
type Frontend func(path string) ([]ast.TopLevel, error)

// frontend is the registered frontend, nil until SetFrontend is called.
var frontend Frontend

// SetFrontend registers the parser used to produce translation units.
func SetFrontend(fe Frontend) {
	frontend = fe
}
