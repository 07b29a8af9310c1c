package argtree

import (
	"slices"
	"strings"
)

// Command is an immutable node of a command tree. A command either declares
// arguments or groups subcommands. A group may still declare options and
// flags; they are visible from every subcommand below it.
type Command struct {
	name        string
	description string
	aliases     []string
	arguments   []Argument
	subcommands []*Command

	positionals []*Positional
	named       map[string]Argument // option and flag aliases plus names, as identifiers
	subIndex    map[string]*Command // subcommand names and aliases, as typed
}

// CommandOption configures a Command under construction.
type CommandOption func(*commandBuilder)

type commandBuilder struct {
	description    string
	aliases        []string
	arguments      []Argument
	subcommands    []*Command
	hasArguments   bool
	hasSubcommands bool
}

// Arguments declares the arguments of a command, in positional order.
// Calling it with no arguments declares a command that takes none.
func Arguments(args ...Argument) CommandOption {
	return func(b *commandBuilder) {
		b.hasArguments = true
		b.arguments = append(b.arguments, args...)
	}
}

// Subcommands makes the command a group of the given subcommands.
func Subcommands(cmds ...*Command) CommandOption {
	return func(b *commandBuilder) {
		b.hasSubcommands = true
		b.subcommands = append(b.subcommands, cmds...)
	}
}

// Description sets the command description.
func Description(s string) CommandOption {
	return func(b *commandBuilder) { b.description = s }
}

// Aliases adds alternative names the command can be invoked by as a
// subcommand.
func Aliases(names ...string) CommandOption {
	return func(b *commandBuilder) { b.aliases = append(b.aliases, names...) }
}

// NewCommand validates and builds a command. Arguments are copied, so
// later changes to the values passed in do not affect the command.
func NewCommand(name string, opts ...CommandOption) (*Command, error) {
	var b commandBuilder
	for _, opt := range opts {
		opt(&b)
	}

	if name == "" || strings.ContainsAny(name, " \t\n") {
		return nil, invalidCommand(name, "name must be a non-empty word")
	}
	if !b.hasArguments && !b.hasSubcommands {
		return nil, invalidCommand(name, "declares neither arguments nor subcommands")
	}
	if b.hasSubcommands && len(b.subcommands) == 0 {
		return nil, invalidCommand(name, "declares an empty subcommand list")
	}

	cmd := &Command{
		name:        name,
		description: b.description,
		aliases:     slices.Clone(b.aliases),
		named:       make(map[string]Argument),
	}

	if err := cmd.addArguments(b.arguments); err != nil {
		return nil, err
	}
	if len(b.subcommands) > 0 && len(cmd.positionals) > 0 {
		return nil, invalidCommand(name, "declares both positional arguments and subcommands")
	}
	if err := cmd.addSubcommands(b.subcommands); err != nil {
		return nil, err
	}
	return cmd, nil
}

// MustCommand is like NewCommand but panics on an invalid declaration.
// It suits package-level command trees.
func MustCommand(name string, opts ...CommandOption) *Command {
	cmd, err := NewCommand(name, opts...)
	if err != nil {
		panic(err)
	}
	return cmd
}

func (c *Command) addArguments(args []Argument) error {
	seen := make(map[string]bool, len(args))
	for _, arg := range args {
		if arg == nil {
			return invalidCommand(c.name, "nil argument")
		}
		arg = arg.clone()
		if err := c.validateArgument(arg); err != nil {
			return err
		}
		name := arg.argName()
		if seen[name] {
			return invalidCommand(c.name, "duplicate argument %q", name)
		}
		seen[name] = true

		switch a := arg.(type) {
		case *Positional:
			c.positionals = append(c.positionals, a)
		case *Option:
			if err := c.index(a.Name, a.Aliases, a); err != nil {
				return err
			}
		case *Flag:
			if err := c.index(a.Name, a.Aliases, a); err != nil {
				return err
			}
		}
		c.arguments = append(c.arguments, arg)
	}
	return nil
}

func (c *Command) validateArgument(arg Argument) error {
	if arg.argName() == "" {
		return invalidCommand(c.name, "argument without a name")
	}

	var def Default
	switch a := arg.(type) {
	case *Positional:
		if a.Processor == nil {
			a.Processor = String()
		}
		if a.Reducer == nil {
			a.Reducer = Single()
		}
		if a.Processor.Words() != Exactly(1) {
			return invalidCommand(c.name, "positional %q must take exactly one word per value", a.Name)
		}
		def = a.Default
	case *Option:
		if len(a.Aliases) == 0 {
			return invalidCommand(c.name, "option %q has no aliases", a.Name)
		}
		if a.Processor == nil {
			a.Processor = String()
		}
		if a.Reducer == nil {
			a.Reducer = Single()
		}
		if !a.Processor.Words().valid() {
			return invalidCommand(c.name, "option %q has an invalid word range %s", a.Name, a.Processor.Words())
		}
		def = a.Default
	case *Flag:
		if len(a.Aliases) == 0 {
			return invalidCommand(c.name, "flag %q has no aliases", a.Name)
		}
		if a.Reducer == nil {
			a.Reducer = Single()
		}
		if a.Default.IsRequired() {
			a.Default = DefaultValue(false)
		}
		def = a.Default
	}

	if !arg.reducer().Arity().valid() {
		return invalidCommand(c.name, "argument %q has an invalid value range %s", arg.argName(), arg.reducer().Arity())
	}
	if def.kind == factory && def.factory == nil {
		return invalidCommand(c.name, "argument %q has a nil default function", arg.argName())
	}
	return nil
}

func (c *Command) index(name string, aliases []string, arg Argument) error {
	keys := []string{name}
	for _, alias := range aliases {
		key := Identifier(alias)
		if key == "" {
			return invalidCommand(c.name, "alias %q of %q has no name", alias, name)
		}
		keys = append(keys, key)
	}
	for _, key := range keys {
		if other, ok := c.named[key]; ok && other != arg {
			return invalidCommand(c.name, "%q is declared by both %q and %q", key, other.argName(), name)
		}
		c.named[key] = arg
	}
	return nil
}

func (c *Command) addSubcommands(subs []*Command) error {
	if len(subs) == 0 {
		return nil
	}
	c.subIndex = make(map[string]*Command, len(subs))
	for _, sub := range subs {
		if sub == nil {
			return invalidCommand(c.name, "nil subcommand")
		}
		for _, key := range append([]string{sub.name}, sub.aliases...) {
			if _, ok := c.subIndex[key]; ok {
				return invalidCommand(c.name, "duplicate subcommand %q", key)
			}
			c.subIndex[key] = sub
		}
		c.subcommands = append(c.subcommands, sub)
	}
	return nil
}

// Name returns the command name.
func (c *Command) Name() string { return c.name }

// Description returns the command description.
func (c *Command) Description() string { return c.description }

// Aliases returns the alternative names of the command.
func (c *Command) Aliases() []string { return slices.Clone(c.aliases) }

// Arguments returns the declared arguments in declaration order.
func (c *Command) Arguments() []Argument { return slices.Clone(c.arguments) }

// Subcommands returns the subcommands in declaration order.
func (c *Command) Subcommands() []*Command { return slices.Clone(c.subcommands) }

// HasSubcommands reports whether c is a subcommand group.
func (c *Command) HasSubcommands() bool { return len(c.subcommands) > 0 }

// Subcommand returns the subcommand invoked as name (its name or an alias).
func (c *Command) Subcommand(name string) (*Command, bool) {
	sub, ok := c.subIndex[name]
	return sub, ok
}

// Lookup resolves a flag spelling ("-v", "--verbose" or "verbose") to the
// option or flag it names in this command only.
func (c *Command) Lookup(flag string) (Argument, bool) {
	arg, ok := c.named[Identifier(flag)]
	return arg, ok
}

// subcommandNames lists the canonical subcommand names in declaration order.
func (c *Command) subcommandNames() []string {
	names := make([]string, len(c.subcommands))
	for i, sub := range c.subcommands {
		names[i] = sub.name
	}
	return names
}

// invocationNames lists every word that selects a subcommand.
func (c *Command) invocationNames() []string {
	names := make([]string, 0, len(c.subIndex))
	for _, sub := range c.subcommands {
		names = append(names, sub.name)
		names = append(names, sub.aliases...)
	}
	return names
}
