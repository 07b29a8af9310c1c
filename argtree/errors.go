package argtree

import (
	"errors"
	"fmt"
	"strings"

	"github.com/dzonerzy/go-argtree/result"
)

// ErrorType represents parse error categories.
// These categories drive diagnostics and exit-code mapping (via ExitCodes).
type ErrorType string

const (
	ErrorTypeUnknownSubcommand      ErrorType = "unknown_subcommand"
	ErrorTypeUnexpectedFlag         ErrorType = "unexpected_flag"
	ErrorTypeExpectedOptionValue    ErrorType = "expected_option_value"
	ErrorTypeUnexpectedAssignment   ErrorType = "unexpected_assignment"
	ErrorTypeUnexpectedPositional   ErrorType = "unexpected_positional"
	ErrorTypeInsufficientValues     ErrorType = "insufficient_values"
	ErrorTypeTooManyValues          ErrorType = "too_many_values"
	ErrorTypeMissingArgument        ErrorType = "missing_argument"
	ErrorTypeMissingSubcommand      ErrorType = "missing_subcommand"
	ErrorTypeInvalidValue           ErrorType = "invalid_value"
	ErrorTypeInvalidChoice          ErrorType = "invalid_choice"
	ErrorTypeSubcommandParsing      ErrorType = "subcommand_parsing"
	ErrorTypeParentParsing          ErrorType = "parent_parsing"
	ErrorTypeSubcommandFinalization ErrorType = "subcommand_finalization"
)

// ParsingError is implemented by every error the parse pipeline returns.
type ParsingError interface {
	error
	Type() ErrorType
}

// ErrInvalidCommand is wrapped by every error NewCommand returns.
var ErrInvalidCommand = errors.New("invalid command")

func invalidCommand(name, format string, args ...any) error {
	return fmt.Errorf("%w %q: %s", ErrInvalidCommand, name, fmt.Sprintf(format, args...))
}

var dialectText = posix{}

// UnknownSubcommandError reports a word that names no declared subcommand.
type UnknownSubcommandError struct {
	Name       string
	Suggestion string
}

func (e *UnknownSubcommandError) Error() string {
	return fmt.Sprintf("unknown subcommand %q", e.Name)
}

func (e *UnknownSubcommandError) Type() ErrorType { return ErrorTypeUnknownSubcommand }

// UnexpectedFlagError reports a flag known to no scope in the chain.
type UnexpectedFlagError struct {
	Flag       string
	Suggestion string
}

func (e *UnexpectedFlagError) Error() string {
	return "unknown flag " + dialectText.FormatFlag(e.Flag)
}

func (e *UnexpectedFlagError) Type() ErrorType { return ErrorTypeUnexpectedFlag }

// ExpectedOptionValueError reports an option without a value. Found holds
// the token seen instead, or None at the end of argv.
type ExpectedOptionValueError struct {
	Flag  string
	Found result.Option[string]
}

func (e *ExpectedOptionValueError) Error() string {
	flag := dialectText.FormatFlag(e.Flag)
	if found, ok := e.Found.Get(); ok {
		return fmt.Sprintf("option %s expects a value, found %s", flag, found)
	}
	return fmt.Sprintf("option %s expects a value", flag)
}

func (e *ExpectedOptionValueError) Type() ErrorType { return ErrorTypeExpectedOptionValue }

// UnexpectedAssignmentError reports a value attached where none is allowed:
// on a flag, or on an option that reads several words.
type UnexpectedAssignmentError struct {
	Flag  string
	Value string
}

func (e *UnexpectedAssignmentError) Error() string {
	return fmt.Sprintf("%s does not take an attached value (got %q)", dialectText.FormatFlag(e.Flag), e.Value)
}

func (e *UnexpectedAssignmentError) Type() ErrorType { return ErrorTypeUnexpectedAssignment }

// UnexpectedPositionalError reports a word no positional accepted.
type UnexpectedPositionalError struct {
	Word string
}

func (e *UnexpectedPositionalError) Error() string {
	return fmt.Sprintf("unexpected argument %q", e.Word)
}

func (e *UnexpectedPositionalError) Type() ErrorType { return ErrorTypeUnexpectedPositional }

// InsufficientValuesError reports fewer values than an argument requires.
type InsufficientValuesError struct {
	Argument    string
	MinRequired int
	Got         int
	label       string
}

func (e *InsufficientValuesError) Error() string {
	return fmt.Sprintf("%s requires at least %d value(s), got %d", e.label, e.MinRequired, e.Got)
}

func (e *InsufficientValuesError) Type() ErrorType { return ErrorTypeInsufficientValues }

// TooManyValuesError reports more values than an argument accepts.
type TooManyValuesError struct {
	Argument    string
	MaxRequired int
	Got         int
	label       string
}

func (e *TooManyValuesError) Error() string {
	return fmt.Sprintf("%s accepts at most %d value(s), got %d", e.label, e.MaxRequired, e.Got)
}

func (e *TooManyValuesError) Type() ErrorType { return ErrorTypeTooManyValues }

// MissingArgError reports a required argument that was never supplied.
type MissingArgError struct {
	Argument string
	label    string
}

func (e *MissingArgError) Error() string {
	return "missing required argument " + e.label
}

func (e *MissingArgError) Type() ErrorType { return ErrorTypeMissingArgument }

// MissingSubcommandError reports a subcommand group invoked without one of
// its subcommands.
type MissingSubcommandError struct {
	Command   string
	Available []string
}

func (e *MissingSubcommandError) Error() string {
	return fmt.Sprintf("command %q requires a subcommand", e.Command)
}

func (e *MissingSubcommandError) Type() ErrorType { return ErrorTypeMissingSubcommand }

// InvalidValueError reports a processor or reducer failure, including a
// recovered panic.
type InvalidValueError struct {
	Argument string
	Value    string
	Err      error
	label    string
}

func (e *InvalidValueError) Error() string {
	if e.Value == "" {
		return fmt.Sprintf("invalid value for %s: %v", e.label, e.Err)
	}
	return fmt.Sprintf("invalid value %q for %s: %v", e.Value, e.label, e.Err)
}

func (e *InvalidValueError) Type() ErrorType { return ErrorTypeInvalidValue }

func (e *InvalidValueError) Unwrap() error { return e.Err }

// InvalidChoiceError reports a value outside an argument's choices.
type InvalidChoiceError struct {
	Argument string
	Value    string
	Choices  []string
	label    string
}

func (e *InvalidChoiceError) Error() string {
	return fmt.Sprintf("invalid choice %q for %s (choose from %s)", e.Value, e.label, strings.Join(e.Choices, ", "))
}

func (e *InvalidChoiceError) Type() ErrorType { return ErrorTypeInvalidChoice }

// SubcommandParsingError wraps a failure raised while parsing a subcommand.
type SubcommandParsingError struct {
	Subcommand string
	Err        ParsingError
}

func (e *SubcommandParsingError) Error() string {
	return fmt.Sprintf("subcommand %s: %v", e.Subcommand, e.Err)
}

func (e *SubcommandParsingError) Type() ErrorType { return ErrorTypeSubcommandParsing }

func (e *SubcommandParsingError) Unwrap() error { return e.Err }

// ParentCommandParsingError wraps a failure raised by an enclosing scope
// while it handled a flag delegated from a subcommand.
type ParentCommandParsingError struct {
	Command string
	Err     ParsingError
}

func (e *ParentCommandParsingError) Error() string {
	return fmt.Sprintf("command %s: %v", e.Command, e.Err)
}

func (e *ParentCommandParsingError) Type() ErrorType { return ErrorTypeParentParsing }

func (e *ParentCommandParsingError) Unwrap() error { return e.Err }

// SubcommandFinalizationError wraps a failure raised while finalizing a
// subcommand node.
type SubcommandFinalizationError struct {
	Subcommand string
	Err        ParsingError
}

func (e *SubcommandFinalizationError) Error() string {
	return fmt.Sprintf("subcommand %s: %v", e.Subcommand, e.Err)
}

func (e *SubcommandFinalizationError) Type() ErrorType { return ErrorTypeSubcommandFinalization }

func (e *SubcommandFinalizationError) Unwrap() error { return e.Err }

// Cause strips the scope wrappers from err and returns the error that
// started the failure.
func Cause(err error) error {
	for {
		switch w := err.(type) {
		case *SubcommandParsingError:
			err = w.Err
		case *ParentCommandParsingError:
			err = w.Err
		case *SubcommandFinalizationError:
			err = w.Err
		default:
			return err
		}
	}
}
