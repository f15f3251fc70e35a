package cmd

import (
	"os"
	"path/filepath"

	"github.com/yohashinoio/twkl/proj"
	"github.com/yohashinoio/twkl/report"

	"github.com/ComedicChimera/olive"
)

// TwklVersion is the version of the compiler middle-end.
const TwklVersion = "0.1.0"

// logLevels maps the log level selector spellings to reporter log levels.
var logLevels = map[string]int{
	"silent":  report.LogLevelSilent,
	"error":   report.LogLevelError,
	"warn":    report.LogLevelWarn,
	"verbose": report.LogLevelVerbose,
}

// Execute is the main entry point for the `twkl` CLI utility.
func Execute() {
	// set up the argument parser and all its commands and arguments
	cli := olive.NewCLI("twkl", "twkl is a tool for building twkl projects", true)
	logLvlArg := cli.AddSelectorArg("loglevel", "ll", "the compiler log level", false,
		[]string{"silent", "error", "warn", "verbose"})
	logLvlArg.SetDefaultValue("verbose")

	emitArg := cli.AddSelectorArg("emit", "e", "the kind of output to emit", false,
		[]string{"llvm"})
	emitArg.SetDefaultValue("llvm")

	buildCmd := cli.AddSubcommand("build", "compile a twkl project", true)
	buildCmd.AddPrimaryArg("project-path", "the path to the project to build", true)

	cli.AddSubcommand("version", "print the twkl version", false)

	// run the argument parser
	result, err := olive.ParseArgs(cli, os.Args)
	if err != nil {
		report.InitReporter(report.LogLevelVerbose)
		report.ReportFatal(err.Error())
	}

	// process the inputed command line
	subcmdName, subResult, _ := result.Subcommand()
	switch subcmdName {
	case "build":
		execBuildCommand(subResult, result.Arguments)
	case "version":
		report.InitReporter(report.LogLevelVerbose)
		report.DisplayInfoMessage("twkl Version", TwklVersion)
	}
}

// execBuildCommand executes the build subcommand and handles all its errors.
func execBuildCommand(result *olive.ArgParseResult, rootArgs map[string]interface{}) {
	report.InitReporter(logLevels[rootArgs["loglevel"].(string)])

	// get the primary argument: the project root path
	rootPath, _ := result.PrimaryArg()

	absPath, err := filepath.Abs(rootPath)
	if err != nil {
		report.ReportFatal("unable to resolve project path `%s`: %s", rootPath, err.Error())
	}

	project := proj.LoadProject(absPath)
	if emit, ok := rootArgs["emit"]; ok {
		project.Emit = emit.(string)
	}

	c := NewCompiler(project)
	if !c.Compile() {
		os.Exit(1)
	}

	report.DisplayInfoMessage("Compilation", "finished successfully")
}
