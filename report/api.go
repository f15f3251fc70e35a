package report

import (
	"fmt"
	"os"
)

// ReportCompileError reports a compile error raised while generating a
// translation unit.  The absPath is the absolute path to the erroneous source
// file; the reprPath is the path as it should be shown to the user.
func ReportCompileError(absPath, reprPath string, cerr *CompileError) {
	if rep.logLevel > LogLevelSilent {
		rep.m.Lock()
		defer rep.m.Unlock()

		rep.isErr = true

		displayCompileMessage(cerr.Kind.Label()+" Error", absPath, reprPath, cerr.Span, cerr.Message)
	}
}

// ReportCompileWarning reports a compilation warning.  The arguments are of
// the same form as those to ReportCompileError.
func ReportCompileWarning(absPath, reprPath string, span *TextSpan, msg string, args ...interface{}) {
	if rep.logLevel > LogLevelWarn {
		rep.m.Lock()
		defer rep.m.Unlock()

		displayWarning(absPath, reprPath, span, fmt.Sprintf(msg, args...))
	}
}

// ReportStdError reports a non-fatal, standard Go error.
func ReportStdError(reprPath string, err error) {
	if rep.logLevel > LogLevelError {
		rep.m.Lock()
		defer rep.m.Unlock()

		rep.isErr = true

		displayStdError(reprPath, err)
	}
}

// ReportFatal reports a fatal error and exits.  These are expected errors
// that generally result from invalid configuration: a missing project file,
// an unregistered frontend, an unwritable output path, etc.
func ReportFatal(msg string, args ...interface{}) {
	if rep.logLevel > LogLevelSilent {
		rep.m.Lock()
		defer rep.m.Unlock()

		displayFatal(fmt.Sprintf(msg, args...))
	}

	os.Exit(1)
}

// ReportICE reports an internal compiler error.  These errors are always
// displayed regardless of log level.
func ReportICE(msg string, args ...interface{}) {
	rep.m.Lock()
	defer rep.m.Unlock()

	displayICE(fmt.Sprintf(msg, args...))

	os.Exit(-1)
}

// DisplayInfoMessage displays a tagged informational message to the user.
func DisplayInfoMessage(tag, msg string) {
	if rep.logLevel == LogLevelVerbose {
		displayInfo(tag, msg)
	}
}
