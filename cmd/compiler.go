package cmd

import (
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/yohashinoio/twkl/ast"
	"github.com/yohashinoio/twkl/generate"
	"github.com/yohashinoio/twkl/proj"
	"github.com/yohashinoio/twkl/report"
)

// Compiler orchestrates one build of a project: parsing and generating every
// source unit and writing the emitted modules.
type Compiler struct {
	// project is the loaded project being built.
	project *proj.Project

	// outputPath is the directory the emitted modules are written to.
	outputPath string
}

// NewCompiler creates a compiler for a loaded project.
func NewCompiler(project *proj.Project) *Compiler {
	return &Compiler{
		project:    project,
		outputPath: filepath.Join(project.AbsPath, "out"),
	}
}

// Compile builds every source unit of the project.  Units are independent,
// so each parses and generates on its own goroutine with its own generator.
// It returns whether the whole build succeeded.
func (c *Compiler) Compile() bool {
	if frontend == nil {
		report.ReportFatal("no frontend registered: call cmd.SetFrontend before building")
	}

	if err := os.MkdirAll(c.outputPath, 0755); err != nil {
		report.ReportFatal("failed to create output directory: %s", err.Error())
	}

	wg := &sync.WaitGroup{}
	for _, src := range c.project.Sources {
		wg.Add(1)

		go func(src string) {
			defer wg.Done()
			c.compileUnit(src)
		}(src)
	}

	wg.Wait()
	return !report.AnyErrors()
}

// compileUnit parses, generates, and emits one source unit.
func (c *Compiler) compileUnit(src string) {
	reprPath := c.reprPath(src)

	items, err := frontend(src)
	if err != nil {
		report.ReportStdError(reprPath, err)
		return
	}

	unit := &ast.TranslationUnit{Path: src, Items: items}

	mod, err := generate.Generate(unit)
	if err != nil {
		if cerr, ok := err.(*report.CompileError); ok {
			report.ReportCompileError(src, reprPath, cerr)
		} else {
			report.ReportStdError(reprPath, err)
		}

		return
	}

	outFile := filepath.Join(c.outputPath, unitBaseName(src)+".ll")
	f, err := os.Create(outFile)
	if err != nil {
		report.ReportStdError(reprPath, err)
		return
	}
	defer f.Close()

	if _, err := mod.WriteTo(f); err != nil {
		report.ReportStdError(reprPath, err)
	}
}

// reprPath returns the path of a source file as it is shown to the user:
// relative to the project root when possible.
func (c *Compiler) reprPath(src string) string {
	if rel, err := filepath.Rel(c.project.AbsPath, src); err == nil {
		return rel
	}

	return src
}

// unitBaseName returns the source file name without its extension.
func unitBaseName(src string) string {
	base := filepath.Base(src)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
