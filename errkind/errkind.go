// Package errkind defines the closed set of error kinds the engine can
// raise, and the typed error value that carries one plus an optional
// recipe line number.
package errkind

import "fmt"

// Kind identifies the category of a simulation error. The set is closed:
// callers may switch over it exhaustively.
type Kind int

// The closed set of error kinds produced anywhere in the engine.
const (
	UnknownError Kind = iota
	UnknownFunction
	MismatchedArgumentType
	IndexOutOfBounds
	OutputFileWriteFailed
	DivisionByZero
	LogOfNonPositive
	InvalidPowerOperation
	VectorSizeMismatch
	EmptyVectorOperation
	ConditionNotBoolean
	LogicalOperatorRequiresBoolean
	InvalidSamplerParameters
	CsvFileNotFound
	CsvColumnNotFound
	CsvRowIndexOutOfBounds
	CsvConversionError
	RecipeFileNotFound
	RecipeParseError
	RecipeConfigError
	IncorrectArgumentCount
)

var kindNames = [...]string{
	"UnknownError",
	"UnknownFunction",
	"MismatchedArgumentType",
	"IndexOutOfBounds",
	"OutputFileWriteFailed",
	"DivisionByZero",
	"LogOfNonPositive",
	"InvalidPowerOperation",
	"VectorSizeMismatch",
	"EmptyVectorOperation",
	"ConditionNotBoolean",
	"LogicalOperatorRequiresBoolean",
	"InvalidSamplerParameters",
	"CsvFileNotFound",
	"CsvColumnNotFound",
	"CsvRowIndexOutOfBounds",
	"CsvConversionError",
	"RecipeFileNotFound",
	"RecipeParseError",
	"RecipeConfigError",
	"IncorrectArgumentCount",
}

// String returns the kind's name, or "Kind(n)" for an out-of-range value.
func (k Kind) String() string {
	if int(k) < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return kindNames[k]
}

// Error is the engine's error value: a kind, a human message, and the
// 1-based recipe line that produced it (0 if none applies).
type Error struct {
	Kind    Kind
	Message string
	Line    int
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("L%d: %s", e.Line, e.Message)
	}
	return e.Message
}

// New builds an Error with no line annotation.
func New(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// NewAt builds an Error annotated with a 1-based recipe line.
func NewAt(kind Kind, line int, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...), Line: line}
}

// As extracts an *Error from err, the same way errors.As would, without
// requiring callers to import errors for the common case.
func As(err error) (*Error, bool) {
	e, ok := err.(*Error)
	return e, ok
}

// KindOf returns the Kind carried by err, or UnknownError if err is not
// an *Error.
func KindOf(err error) Kind {
	if e, ok := As(err); ok {
		return e.Kind
	}
	return UnknownError
}

// WrapCall prefixes err's message with the calling-function annotation
// from spec §4.2, preserving the original Kind and overwriting Line with
// the outer call's line (the innermost line a caller sees is the one
// that invoked the failing function).
func WrapCall(err error, name string, line int) error {
	return wrap(err, line, fmt.Sprintf("In function '%s': ", name))
}

// WrapNested is WrapCall's counterpart for nested argument-plan calls
// (spec §4.7), using the "In nested function" phrasing.
func WrapNested(err error, name string, line int) error {
	return wrap(err, line, fmt.Sprintf("In nested function '%s': ", name))
}

func wrap(err error, line int, prefix string) error {
	inner, ok := As(err)
	if !ok {
		return NewAt(UnknownError, line, "%s%s", prefix, err.Error())
	}
	return &Error{
		Kind:    inner.Kind,
		Message: prefix + inner.Message,
		Line:    line,
	}
}
