package report

import "fmt"

// ErrorKind classifies the compile errors the code generator can detect.
type ErrorKind int

// Enumeration of compile error kinds.
const (
	// ErrCodegen is the catch-all for conditions that should be unreachable
	// given a correctly validated parse tree, such as an operator spelling
	// with no matching semantic rule.
	ErrCodegen ErrorKind = iota

	ErrUnknownVariable
	ErrUnknownFunction
	ErrRedefinition
	ErrAmbiguousType
	ErrInitializerTypeMismatch
	ErrReturnTypeMismatch
	ErrTypeMismatch
	ErrArityMismatch
	ErrArgumentTypeMismatch
	ErrUnsupportedConversion
	ErrReadOnlyAssignment
	ErrIncompleteType
)

// errorKindLabels maps error kinds to the labels used in their display
// banners.
var errorKindLabels = map[ErrorKind]string{
	ErrCodegen:                 "Codegen",
	ErrUnknownVariable:         "Name",
	ErrUnknownFunction:         "Name",
	ErrRedefinition:            "Definition",
	ErrAmbiguousType:           "Type",
	ErrInitializerTypeMismatch: "Type",
	ErrReturnTypeMismatch:      "Type",
	ErrTypeMismatch:            "Type",
	ErrArityMismatch:           "Argument",
	ErrArgumentTypeMismatch:    "Argument",
	ErrUnsupportedConversion:   "Conversion",
	ErrReadOnlyAssignment:      "Mutability",
	ErrIncompleteType:          "Type",
}

// Label returns the human-readable label of the error kind.
func (k ErrorKind) Label() string {
	if label, ok := errorKindLabels[k]; ok {
		return label
	}

	return "Codegen"
}

// CompileError is a compilation error detected while generating a translation
// unit.  The span may be nil for errors with no precise source location.
type CompileError struct {
	// The kind of the error.
	Kind ErrorKind

	// The error message.
	Message string

	// The span over which the error occurs.
	Span *TextSpan
}

func (ce *CompileError) Error() string {
	return ce.Message
}

// Raise aborts generation of the current translation unit with a compile
// error.  It panics with a *CompileError which is recovered by CatchUnit at
// the unit boundary: generation is all-or-nothing per unit.
func Raise(kind ErrorKind, span *TextSpan, msg string, args ...interface{}) {
	panic(&CompileError{Kind: kind, Message: fmt.Sprintf(msg, args...), Span: span})
}

// CatchUnit recovers a compile error raised during generation of one
// translation unit and stores it into err.  Panics that are not compile
// errors are rethrown.  This function must always be deferred.
func CatchUnit(err *error) {
	if x := recover(); x != nil {
		if cerr, ok := x.(*CompileError); ok {
			*err = cerr
			return
		}

		panic(x)
	}
}
