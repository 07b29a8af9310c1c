package argtree

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"go.uber.org/zap"

	"github.com/dzonerzy/go-argtree/internal/fuzzy"
	"github.com/dzonerzy/go-argtree/result"
)

// suggestDistance is the edit distance within which unknown names get a
// "did you mean" suggestion.
const suggestDistance = 2

// tokenWalker is the token cursor shared by every scope of one parse.
type tokenWalker struct {
	tokens []Token
	pos    int
}

func (w *tokenWalker) next() (Token, bool) {
	if w.pos >= len(w.tokens) {
		return nil, false
	}
	t := w.tokens[w.pos]
	w.pos++
	return t, true
}

func (w *tokenWalker) peek() (Token, bool) {
	if w.pos >= len(w.tokens) {
		return nil, false
	}
	return w.tokens[w.pos], true
}

// scope parses the tokens that belong to one command. Flags it does not know
// are handed to the parent scope.
type scope struct {
	cmd    *Command
	parent *scope
	values map[string][]any
	cursor int // index into cmd.positionals, -1 before the first word
	walker *tokenWalker
	dia    Dialect
	log    *zap.Logger
}

func newScope(cmd *Command, parent *scope, walker *tokenWalker, dia Dialect, log *zap.Logger) *scope {
	return &scope{
		cmd:    cmd,
		parent: parent,
		values: make(map[string][]any),
		cursor: -1,
		walker: walker,
		dia:    dia,
		log:    log,
	}
}

// parseTokens runs the root scope of cmd over tokens.
func parseTokens(cmd *Command, tokens []Token, dia Dialect, log *zap.Logger) result.Result[*ParseResult, ParsingError] {
	root := newScope(cmd, nil, &tokenWalker{tokens: tokens}, dia, log)
	res, err := root.consume()
	if err != nil {
		return result.Err[*ParseResult](err)
	}
	return result.Ok[*ParseResult, ParsingError](res)
}

func (s *scope) consume() (*ParseResult, ParsingError) {
	for {
		tok, ok := s.walker.next()
		if !ok {
			break
		}

		switch t := tok.(type) {
		case FlagToken:
			if err := s.consumeFlag(t); err != nil {
				s.suggestFlag(err)
				return nil, err
			}
		case WordToken:
			// A word names a subcommand before it is ever a positional.
			if s.cmd.HasSubcommands() {
				return s.enter(t)
			}
			if err := s.consumeWord(t); err != nil {
				return nil, err
			}
		case FlagStopToken:
			// Already applied by the tokenizer.
		}
	}

	return &ParseResult{Name: s.cmd.name, Values: s.values}, nil
}

// enter hands the rest of the stream to the subcommand named by word.
// The current scope consumes nothing after that.
func (s *scope) enter(word WordToken) (*ParseResult, ParsingError) {
	sub, ok := s.cmd.Subcommand(word.Text)
	if !ok {
		return nil, &UnknownSubcommandError{
			Name:       word.Text,
			Suggestion: fuzzy.FindBestCommand(word.Text, s.cmd.invocationNames(), suggestDistance),
		}
	}

	s.log.Debug("entering subcommand",
		zap.String("command", s.cmd.name),
		zap.String("subcommand", sub.name),
	)

	child := newScope(sub, s, s.walker, s.dia, s.log)
	res, err := child.consume()
	if err != nil {
		return nil, &SubcommandParsingError{Subcommand: sub.name, Err: err}
	}
	return &ParseResult{Name: s.cmd.name, Values: s.values, Child: res}, nil
}

func (s *scope) consumeFlag(t FlagToken) ParsingError {
	arg, ok := s.cmd.named[t.Name]
	if !ok {
		if s.parent == nil {
			return &UnexpectedFlagError{Flag: t.Name}
		}
		if err := s.parent.consumeFlag(t); err != nil {
			return &ParentCommandParsingError{Command: s.parent.cmd.name, Err: err}
		}
		return nil
	}

	switch a := arg.(type) {
	case *Option:
		return s.consumeOption(a, t)
	case *Flag:
		if v, ok := t.Value.Get(); ok {
			return &UnexpectedAssignmentError{Flag: t.Name, Value: v}
		}
		s.log.Debug("flag set", zap.String("command", s.cmd.name), zap.String("argument", a.Name))
		s.values[a.Name] = append(s.values[a.Name], a.SetValue)
	}
	return nil
}

func (s *scope) consumeOption(o *Option, t FlagToken) ParsingError {
	words := o.Processor.Words()

	if !words.Bounded() || words.Max > 1 {
		if v, ok := t.Value.Get(); ok {
			return &UnexpectedAssignmentError{Flag: t.Name, Value: v}
		}

		var run []string
		for !words.Full(len(run)) {
			next, ok := s.walker.peek()
			word, isWord := next.(WordToken)
			if !ok || !isWord {
				break
			}
			s.walker.next()
			run = append(run, word.Text)
		}
		if len(run) < words.Min {
			return &InsufficientValuesError{Argument: o.Name, MinRequired: words.Min, Got: len(run), label: o.label()}
		}
		return s.store(o, o.Processor, o.Choices, run)
	}

	raw, ok := t.Value.Get()
	if !ok {
		next, more := s.walker.peek()
		word, isWord := next.(WordToken)
		if !more || !isWord {
			return &ExpectedOptionValueError{Flag: t.Name, Found: s.describe(next)}
		}
		s.walker.next()
		raw = word.Text
	}
	return s.store(o, o.Processor, o.Choices, []string{raw})
}

func (s *scope) consumeWord(t WordToken) ParsingError {
	pos := s.currentPositional()
	if pos == nil {
		return &UnexpectedPositionalError{Word: t.Text}
	}

	// Once a positional is full the word goes to the next one; errors from
	// here on are reported against that next positional.
	if pos.Reducer.Arity().Full(len(s.values[pos.Name])) {
		if pos = s.nextPositional(); pos == nil {
			return &UnexpectedPositionalError{Word: t.Text}
		}
	}
	return s.store(pos, pos.Processor, pos.Choices, []string{t.Text})
}

func (s *scope) currentPositional() *Positional {
	if s.cursor < 0 {
		s.cursor = 0
	}
	if s.cursor < len(s.cmd.positionals) {
		return s.cmd.positionals[s.cursor]
	}
	return nil
}

func (s *scope) nextPositional() *Positional {
	s.cursor++
	return s.currentPositional()
}

// store validates choices, processes words and appends the value.
func (s *scope) store(arg Argument, p Processor, choices []string, words []string) ParsingError {
	raw := strings.Join(words, " ")
	if len(choices) > 0 && !slices.Contains(choices, raw) {
		return &InvalidChoiceError{Argument: arg.argName(), Value: raw, Choices: slices.Clone(choices), label: arg.label()}
	}

	v, err := process(arg, p, words)
	if err != nil {
		return err
	}

	s.log.Debug("value stored",
		zap.String("command", s.cmd.name),
		zap.String("argument", arg.argName()),
		zap.Strings("words", words),
	)
	name := arg.argName()
	s.values[name] = append(s.values[name], v)
	return nil
}

// process runs a processor and converts both errors and panics into an
// InvalidValueError.
func process(arg Argument, p Processor, words []string) (v any, perr ParsingError) {
	raw := strings.Join(words, " ")
	defer func() {
		if r := recover(); r != nil {
			perr = &InvalidValueError{Argument: arg.argName(), Value: raw, Err: fmt.Errorf("panic: %v", r), label: arg.label()}
		}
	}()

	v, err := p.Process(words...)
	if err != nil {
		return nil, &InvalidValueError{Argument: arg.argName(), Value: raw, Err: err, label: arg.label()}
	}
	return v, nil
}

// describe renders the token found where an option value was expected.
func (s *scope) describe(t Token) result.Option[string] {
	switch t := t.(type) {
	case FlagToken:
		return result.Some(s.dia.FormatFlag(t.Name))
	case FlagStopToken:
		return result.Some("--")
	case WordToken:
		return result.Some(t.Text)
	}
	return result.None[string]()
}

// suggestFlag fills in the suggestion of an unknown flag error using every
// flag visible from this scope.
func (s *scope) suggestFlag(err ParsingError) {
	var unknown *UnexpectedFlagError
	if !errors.As(err, &unknown) || unknown.Suggestion != "" {
		return
	}

	var names []string
	for sc := s; sc != nil; sc = sc.parent {
		for name := range sc.cmd.named {
			if len(name) > 1 {
				names = append(names, name)
			}
		}
	}
	slices.Sort(names)
	unknown.Suggestion = fuzzy.FindBestFlag(unknown.Flag, names, suggestDistance)
}
