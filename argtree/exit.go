package argtree

import "errors"

// ExitCodeDefaults holds common default codes.
type ExitCodeDefaults struct {
	Success         int // default: 0
	GeneralError    int // default: 1
	MisusageError   int // default: 2
	ValidationError int // default: 3
}

// DefaultExitCodes returns the conventional exit codes.
func DefaultExitCodes() ExitCodeDefaults {
	return ExitCodeDefaults{Success: 0, GeneralError: 1, MisusageError: 2, ValidationError: 3}
}

// ExitCodes maps parse errors to process exit codes.
type ExitCodes struct {
	byType   map[ErrorType]int
	defaults ExitCodeDefaults
}

// NewExitCodes creates a mapping prewired with the default codes: misuse of
// the command line exits 2, values that fail conversion or choices exit 3.
func NewExitCodes() *ExitCodes {
	e := &ExitCodes{byType: make(map[ErrorType]int)}
	return e.Default(DefaultExitCodes())
}

// Default replaces the default codes and rewires the error types to them.
// Overrides made with Define before the call are discarded.
func (e *ExitCodes) Default(d ExitCodeDefaults) *ExitCodes {
	e.defaults = d
	for _, typ := range []ErrorType{
		ErrorTypeUnknownSubcommand,
		ErrorTypeUnexpectedFlag,
		ErrorTypeExpectedOptionValue,
		ErrorTypeUnexpectedAssignment,
		ErrorTypeUnexpectedPositional,
		ErrorTypeInsufficientValues,
		ErrorTypeTooManyValues,
		ErrorTypeMissingArgument,
		ErrorTypeMissingSubcommand,
	} {
		e.byType[typ] = d.MisusageError
	}
	e.byType[ErrorTypeInvalidValue] = d.ValidationError
	e.byType[ErrorTypeInvalidChoice] = d.ValidationError
	return e
}

// Define overrides the exit code for one error category.
func (e *ExitCodes) Define(typ ErrorType, code int) *ExitCodes {
	e.byType[typ] = code
	return e
}

// Resolve converts err to an exit code. Scope wrappers are looked through,
// so the category of the original cause decides. Errors that are not
// ParsingErrors map to GeneralError.
func (e *ExitCodes) Resolve(err error) int {
	if err == nil {
		return e.defaults.Success
	}
	var perr ParsingError
	if !errors.As(Cause(err), &perr) {
		return e.defaults.GeneralError
	}
	if code, ok := e.byType[perr.Type()]; ok {
		return code
	}
	return e.defaults.GeneralError
}

var defaultExitCodes = NewExitCodes()

// ExitCode resolves err with the default mapping.
func ExitCode(err error) int {
	return defaultExitCodes.Resolve(err)
}
