package specfile

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/dzonerzy/go-argtree/argtree"
)

// ErrInvalidSpec is wrapped by every Build error caused by the document
// itself rather than by command validation.
var ErrInvalidSpec = errors.New("specfile: invalid spec")

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidSpec, fmt.Sprintf(format, args...))
}

// Build converts the document into a validated command tree. A command
// with subcommands becomes a group; its arguments, if any, must be options
// and flags.
func (s *CommandSpec) Build() (*argtree.Command, error) {
	args := make([]argtree.Argument, 0, len(s.Arguments))
	for i := range s.Arguments {
		arg, err := s.Arguments[i].build()
		if err != nil {
			return nil, fmt.Errorf("command %q, argument %d: %w", s.Name, i+1, err)
		}
		args = append(args, arg)
	}

	opts := []argtree.CommandOption{
		argtree.Description(s.Description),
		argtree.Aliases(s.Aliases...),
	}
	if len(s.Subcommands) == 0 || len(args) > 0 {
		opts = append(opts, argtree.Arguments(args...))
	}
	if len(s.Subcommands) > 0 {
		subs := make([]*argtree.Command, 0, len(s.Subcommands))
		for i := range s.Subcommands {
			sub, err := s.Subcommands[i].Build()
			if err != nil {
				return nil, err
			}
			subs = append(subs, sub)
		}
		opts = append(opts, argtree.Subcommands(subs...))
	}
	return argtree.NewCommand(s.Name, opts...)
}

func (a *ArgumentSpec) build() (argtree.Argument, error) {
	kind := a.Kind
	if kind == "" {
		kind = "option"
		if len(a.Aliases) == 0 {
			kind = "positional"
		}
	}

	switch kind {
	case "positional":
		return a.positional()
	case "option":
		return a.option()
	case "flag":
		return a.flag()
	default:
		return nil, invalid("unknown kind %q", a.Kind)
	}
}

func (a *ArgumentSpec) positional() (argtree.Argument, error) {
	if a.Name == "" {
		return nil, invalid("positional without a name")
	}
	if a.Words != nil {
		return nil, invalid("positional %q cannot read several words", a.Name)
	}
	proc, err := processorFor(a.Type)
	if err != nil {
		return nil, err
	}
	red, err := a.reducer()
	if err != nil {
		return nil, err
	}
	def, err := a.defaultFor(proc)
	if err != nil {
		return nil, err
	}
	return &argtree.Positional{
		Name:        argtree.Identifier(a.Name),
		Description: a.Description,
		DisplayName: a.Metavar,
		Processor:   proc,
		Reducer:     red,
		Default:     def,
		Choices:     a.Choices,
	}, nil
}

func (a *ArgumentSpec) option() (argtree.Argument, error) {
	var (
		proc argtree.Processor
		err  error
	)
	if a.Words != nil {
		proc, err = wordsProcessorFor(a.Type, a.Words.Min, a.Words.Max)
	} else {
		proc, err = processorFor(a.Type)
	}
	if err != nil {
		return nil, err
	}
	red, err := a.reducer()
	if err != nil {
		return nil, err
	}
	def, err := a.defaultFor(proc)
	if err != nil {
		return nil, err
	}

	opt := argtree.NewOption(a.Aliases...)
	if a.Name != "" {
		opt.WithName(a.Name)
	}
	opt.Description = a.Description
	opt.Processor = proc
	opt.Reducer = red
	opt.Default = def
	opt.Choices = a.Choices
	return opt, nil
}

func (a *ArgumentSpec) flag() (argtree.Argument, error) {
	if a.Type != "" || a.Words != nil || len(a.Choices) > 0 {
		return nil, invalid("flag %v takes no type, words or choices", a.Aliases)
	}
	if a.Reducer == "multiple" {
		return nil, invalid("flag %v cannot use the multiple reducer", a.Aliases)
	}

	var f *argtree.Flag
	if a.Reducer == "count" {
		f = argtree.NewCounter(a.Aliases...)
	} else {
		f = argtree.NewFlag(a.Aliases...)
	}
	if a.Name != "" {
		f.WithName(a.Name)
	}
	f.Description = a.Description

	red, err := a.reducer()
	if err != nil {
		return nil, err
	}
	f.Reducer = red
	if a.Default != nil {
		f.Default = argtree.DefaultValue(normalize(a.Default))
	}
	if a.Set != nil {
		f.SetValue = normalize(a.Set)
	}
	return f, nil
}

func (a *ArgumentSpec) reducer() (argtree.Reducer, error) {
	max := argtree.Unbounded
	if a.Max != nil {
		max = *a.Max
	}

	switch a.Reducer {
	case "", "single":
		if a.Min != nil || a.Max != nil {
			return nil, invalid("min and max need the multiple or count reducer")
		}
		return argtree.Single(), nil
	case "count":
		if a.Min != nil {
			return nil, invalid("count reducer takes no min")
		}
		return argtree.Count(max), nil
	case "multiple":
		min := 1
		if a.Min != nil {
			min = *a.Min
		}
		return collectorFor(a.Type, min, max, a.Words != nil)
	default:
		return nil, invalid("unknown reducer %q", a.Reducer)
	}
}

// defaultFor turns the document default into an argtree.Default. String
// defaults run through the processor; numbers are converted to the
// argument type.
func (a *ArgumentSpec) defaultFor(proc argtree.Processor) (argtree.Default, error) {
	if a.Default == nil {
		if a.Required != nil && !*a.Required {
			return argtree.DefaultValue(nil), nil
		}
		return argtree.Required(), nil
	}
	if a.Words != nil {
		return argtree.Default{}, invalid("option %q reads several words and cannot have a default", a.label())
	}
	if a.Required != nil && *a.Required {
		return argtree.Default{}, invalid("argument %q is required but has a default", a.label())
	}

	if list, ok := a.Default.([]any); ok {
		if a.Reducer != "multiple" {
			return argtree.Default{}, invalid("list default for %q needs the multiple reducer", a.label())
		}
		values := make([]any, 0, len(list))
		for _, item := range list {
			v, err := coerce(proc, a.Type, item)
			if err != nil {
				return argtree.Default{}, invalid("default of %q: %v", a.label(), err)
			}
			values = append(values, v)
		}
		red, err := collectorFor(a.Type, 0, argtree.Unbounded, false)
		if err != nil {
			return argtree.Default{}, err
		}
		return argtree.DefaultFunc(func() any {
			// the collector builds a fresh typed slice on every call
			v, _ := red.Reduce(values)
			return v
		}), nil
	}

	v, err := coerce(proc, a.Type, a.Default)
	if err != nil {
		return argtree.Default{}, invalid("default of %q: %v", a.label(), err)
	}
	return argtree.DefaultValue(v), nil
}

func (a *ArgumentSpec) label() string {
	if a.Name != "" {
		return a.Name
	}
	return argtree.NameFromAliases(a.Aliases...)
}

func processorFor(typ string) (argtree.Processor, error) {
	switch typ {
	case "", "string":
		return argtree.String(), nil
	case "int":
		return argtree.Int(), nil
	case "float":
		return argtree.Float(), nil
	case "bool":
		return argtree.Bool(), nil
	case "duration":
		return argtree.Duration(), nil
	default:
		return nil, invalid("unknown type %q", typ)
	}
}

// wordsProcessorFor reads min..max words per occurrence into a []T.
func wordsProcessorFor(typ string, min, max int) (argtree.Processor, error) {
	single, err := processorFor(typ)
	if err != nil {
		return nil, err
	}
	switch typ {
	case "", "string":
		return wordsOf[string](single, min, max), nil
	case "int":
		return wordsOf[int](single, min, max), nil
	case "float":
		return wordsOf[float64](single, min, max), nil
	case "bool":
		return wordsOf[bool](single, min, max), nil
	default:
		return wordsOf[time.Duration](single, min, max), nil
	}
}

func wordsOf[T any](single argtree.Processor, min, max int) argtree.Processor {
	return argtree.Words(min, max, func(words []string) ([]T, error) {
		out := make([]T, 0, len(words))
		for _, w := range words {
			v, err := single.Process(w)
			if err != nil {
				return nil, err
			}
			out = append(out, v.(T))
		}
		return out, nil
	})
}

// collectorFor builds a Between reducer over the argument type. With
// perWord set each occurrence is already a slice, so the result is [][]T.
func collectorFor(typ string, min, max int, perWord bool) (argtree.Reducer, error) {
	switch typ {
	case "", "string":
		return between[string](min, max, perWord), nil
	case "int":
		return between[int](min, max, perWord), nil
	case "float":
		return between[float64](min, max, perWord), nil
	case "bool":
		return between[bool](min, max, perWord), nil
	case "duration":
		return between[time.Duration](min, max, perWord), nil
	default:
		return nil, invalid("unknown type %q", typ)
	}
}

func between[T any](min, max int, perWord bool) argtree.Reducer {
	if perWord {
		return argtree.Between[[]T](min, max)
	}
	return argtree.Between[T](min, max)
}

// coerce converts a decoded default to the Go type the processor yields.
func coerce(proc argtree.Processor, typ string, v any) (any, error) {
	if s, ok := v.(string); ok {
		return proc.Process(s)
	}

	v = normalize(v)
	switch typ {
	case "", "string":
		return nil, fmt.Errorf("expected a string, got %T", v)
	case "int":
		switch n := v.(type) {
		case int:
			return n, nil
		case float64:
			if n == math.Trunc(n) {
				return int(n), nil
			}
		}
		return nil, fmt.Errorf("expected an integer, got %v", v)
	case "float":
		switch n := v.(type) {
		case float64:
			return n, nil
		case int:
			return float64(n), nil
		}
		return nil, fmt.Errorf("expected a number, got %v", v)
	case "bool":
		if b, ok := v.(bool); ok {
			return b, nil
		}
		return nil, fmt.Errorf("expected true or false, got %v", v)
	case "duration":
		return nil, fmt.Errorf("expected a duration string, got %v", v)
	}
	return nil, fmt.Errorf("unknown type %q", typ)
}

// normalize maps the integer types decoders produce (TOML yields int64)
// to int.
func normalize(v any) any {
	switch n := v.(type) {
	case int64:
		return int(n)
	case uint64:
		return int(n)
	case int32:
		return int(n)
	default:
		return v
	}
}
