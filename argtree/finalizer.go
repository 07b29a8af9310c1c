package argtree

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/dzonerzy/go-argtree/result"
)

type finalizer struct {
	log *zap.Logger
}

// Finalize checks raw against cmd, reduces the collected values, and fills
// in defaults. raw is left untouched.
func Finalize(cmd *Command, raw *ParseResult) result.Result[*Tree, ParsingError] {
	return finalizer{log: zap.NewNop()}.finalize(cmd, raw)
}

func (f finalizer) finalize(cmd *Command, raw *ParseResult) result.Result[*Tree, ParsingError] {
	args, err := f.finalizeArgs(cmd, raw.Values)
	if err != nil {
		return result.Err[*Tree](err)
	}
	node := &Tree{Name: raw.Name, Args: args}

	if !cmd.HasSubcommands() {
		return result.Ok[*Tree, ParsingError](node)
	}
	if raw.Child == nil {
		return result.Err[*Tree, ParsingError](&MissingSubcommandError{
			Command:   cmd.name,
			Available: cmd.subcommandNames(),
		})
	}

	sub, ok := cmd.Subcommand(raw.Child.Name)
	if !ok {
		return result.Err[*Tree, ParsingError](&UnknownSubcommandError{Name: raw.Child.Name})
	}
	child := f.finalize(sub, raw.Child)
	if child.IsErr() {
		return result.Err[*Tree, ParsingError](&SubcommandFinalizationError{
			Subcommand: sub.name,
			Err:        child.UnwrapErr(),
		})
	}
	node.Child = child.Unwrap()
	return result.Ok[*Tree, ParsingError](node)
}

func (f finalizer) finalizeArgs(cmd *Command, raw map[string][]any) (map[string]any, ParsingError) {
	args := make(map[string]any, len(cmd.arguments))

	for _, arg := range cmd.arguments {
		name := arg.argName()

		if values, ok := raw[name]; ok {
			v, err := reduce(arg, values)
			if err != nil {
				return nil, err
			}
			args[name] = v
			continue
		}

		v, err := defaultOf(arg)
		if err != nil {
			return nil, err
		}
		f.log.Debug("default applied", zap.String("command", cmd.name), zap.String("argument", name))
		args[name] = v
	}
	return args, nil
}

func reduce(arg Argument, values []any) (v any, perr ParsingError) {
	arity := arg.reducer().Arity()
	if len(values) < arity.Min {
		return nil, &InsufficientValuesError{Argument: arg.argName(), MinRequired: arity.Min, Got: len(values), label: arg.label()}
	}
	if arity.Bounded() && len(values) > arity.Max {
		return nil, &TooManyValuesError{Argument: arg.argName(), MaxRequired: arity.Max, Got: len(values), label: arg.label()}
	}

	defer func() {
		if r := recover(); r != nil {
			perr = &InvalidValueError{Argument: arg.argName(), Err: fmt.Errorf("panic: %v", r), label: arg.label()}
		}
	}()
	v, err := arg.reducer().Reduce(values)
	if err != nil {
		return nil, &InvalidValueError{Argument: arg.argName(), Err: err, label: arg.label()}
	}
	return v, nil
}

func defaultOf(arg Argument) (any, ParsingError) {
	var def Default
	switch a := arg.(type) {
	case *Flag:
		// Flags always have a default; NewCommand fills in false.
		v, _ := a.Default.Resolve()
		return v, nil
	case *Option:
		def = a.Default
	case *Positional:
		def = a.Default
	}

	v, ok := def.Resolve()
	if !ok {
		return nil, &MissingArgError{Argument: arg.argName(), label: arg.label()}
	}
	return v, nil
}
