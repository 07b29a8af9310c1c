package argtree

import (
	"slices"
)

// Argument is one declared argument of a Command. The set of
// implementations is closed: *Positional, *Option and *Flag.
type Argument interface {
	argName() string
	argDescription() string
	label() string
	reducer() Reducer
	clone() Argument
}

// ArgumentName returns the identifier a finalized Tree stores a's value under.
func ArgumentName(a Argument) string { return a.argName() }

// Positional is an argument identified by its position in argv.
type Positional struct {
	Name        string
	Description string
	DisplayName string // shown in diagnostics; defaults to the upper-cased name
	Processor   Processor
	Reducer     Reducer
	Default     Default
	Choices     []string
}

// NewPositional declares a required single-value positional.
func NewPositional(name string) *Positional {
	return &Positional{
		Name:      Identifier(name),
		Processor: String(),
		Reducer:   Single(),
	}
}

// WithDescription sets the description shown in diagnostics.
func (p *Positional) WithDescription(s string) *Positional { p.Description = s; return p }

// WithDisplayName sets the label used in error messages instead of NAME.
func (p *Positional) WithDisplayName(s string) *Positional { p.DisplayName = s; return p }

// WithProcessor sets the word conversion. It must read exactly one word.
func (p *Positional) WithProcessor(pr Processor) *Positional { p.Processor = pr; return p }

// WithReducer sets how many words the positional takes and how they combine.
func (p *Positional) WithReducer(r Reducer) *Positional { p.Reducer = r; return p }

// WithDefault makes the positional optional with a fixed default.
func (p *Positional) WithDefault(v any) *Positional { p.Default = DefaultValue(v); return p }

// WithChoices restricts the accepted words.
func (p *Positional) WithChoices(c ...string) *Positional { p.Choices = c; return p }

// WithDefaultFunc sets a default computed on every parse.
func (p *Positional) WithDefaultFunc(fn func() any) *Positional {
	p.Default = DefaultFunc(fn)
	return p
}

func (p *Positional) argName() string        { return p.Name }
func (p *Positional) argDescription() string { return p.Description }
func (p *Positional) reducer() Reducer       { return p.Reducer }

func (p *Positional) label() string {
	if p.DisplayName != "" {
		return p.DisplayName
	}
	return dialectText.FormatWord(p.Name)
}

func (p *Positional) clone() Argument {
	c := *p
	c.Choices = slices.Clone(p.Choices)
	return &c
}

// Option is a named argument that takes a value: "--name value",
// "--name=value" or "-n value".
type Option struct {
	Name        string
	Aliases     []string
	Description string
	Processor   Processor
	Reducer     Reducer
	Default     Default
	Choices     []string
}

// NewOption declares a required single-value option. Its name is derived
// from the longest alias.
func NewOption(aliases ...string) *Option {
	return &Option{
		Name:      NameFromAliases(aliases...),
		Aliases:   aliases,
		Processor: String(),
		Reducer:   Single(),
	}
}

// WithName overrides the name derived from the aliases.
func (o *Option) WithName(name string) *Option { o.Name = Identifier(name); return o }

// WithDescription sets the description shown in diagnostics.
func (o *Option) WithDescription(s string) *Option { o.Description = s; return o }

// WithProcessor sets the value conversion and how many words each
// occurrence reads.
func (o *Option) WithProcessor(p Processor) *Option { o.Processor = p; return o }

// WithReducer sets how many occurrences are accepted and how they combine.
func (o *Option) WithReducer(r Reducer) *Option { o.Reducer = r; return o }

// WithDefault makes the option optional with a fixed default.
func (o *Option) WithDefault(v any) *Option { o.Default = DefaultValue(v); return o }

// WithChoices restricts the accepted values.
func (o *Option) WithChoices(c ...string) *Option { o.Choices = c; return o }

// WithDefaultFunc sets a default computed on every parse.
func (o *Option) WithDefaultFunc(fn func() any) *Option {
	o.Default = DefaultFunc(fn)
	return o
}

func (o *Option) argName() string        { return o.Name }
func (o *Option) argDescription() string { return o.Description }
func (o *Option) reducer() Reducer       { return o.Reducer }
func (o *Option) label() string          { return longestAlias(o.Aliases, o.Name) }

func (o *Option) clone() Argument {
	c := *o
	c.Aliases = slices.Clone(o.Aliases)
	c.Choices = slices.Clone(o.Choices)
	return &c
}

// Flag is a named argument without a value. Each occurrence contributes
// SetValue; an absent flag takes Default.
type Flag struct {
	Name        string
	Aliases     []string
	Description string
	Reducer     Reducer
	Default     Default
	SetValue    any
}

// NewFlag declares a boolean flag: false when absent, true when present.
func NewFlag(aliases ...string) *Flag {
	return &Flag{
		Name:     NameFromAliases(aliases...),
		Aliases:  aliases,
		Reducer:  Single(),
		Default:  DefaultValue(false),
		SetValue: true,
	}
}

// NewCounter declares a flag counting its occurrences: "-vvv" yields 3 and
// an absent flag yields 0.
func NewCounter(aliases ...string) *Flag {
	return NewFlag(aliases...).WithReducer(Count(Unbounded)).WithDefault(0)
}

// WithName overrides the name derived from the aliases.
func (f *Flag) WithName(name string) *Flag { f.Name = Identifier(name); return f }

// WithDescription sets the description shown in diagnostics.
func (f *Flag) WithDescription(s string) *Flag { f.Description = s; return f }

// WithReducer sets how many occurrences are accepted and how they combine.
func (f *Flag) WithReducer(r Reducer) *Flag { f.Reducer = r; return f }

// WithDefault sets the value used when the flag is absent.
func (f *Flag) WithDefault(v any) *Flag { f.Default = DefaultValue(v); return f }

// WithSetValue sets the value each occurrence records.
func (f *Flag) WithSetValue(v any) *Flag { f.SetValue = v; return f }

func (f *Flag) argName() string        { return f.Name }
func (f *Flag) argDescription() string { return f.Description }
func (f *Flag) reducer() Reducer       { return f.Reducer }
func (f *Flag) label() string          { return longestAlias(f.Aliases, f.Name) }

func (f *Flag) clone() Argument {
	c := *f
	c.Aliases = slices.Clone(f.Aliases)
	return &c
}

func longestAlias(aliases []string, name string) string {
	longest := ""
	for _, a := range aliases {
		if len(a) > len(longest) {
			longest = a
		}
	}
	if longest == "" {
		return dialectText.FormatFlag(name)
	}
	return longest
}
