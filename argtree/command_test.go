package argtree

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCommand_Invalid(t *testing.T) {
	leaf := MustCommand("leaf", Arguments())

	tests := []struct {
		name string
		cmd  string
		opts []CommandOption
	}{
		{name: "empty name", cmd: "", opts: []CommandOption{Arguments()}},
		{name: "name with space", cmd: "a b", opts: []CommandOption{Arguments()}},
		{name: "neither arguments nor subcommands", cmd: "app"},
		{name: "empty subcommand list", cmd: "app", opts: []CommandOption{Subcommands()}},
		{
			name: "positionals with subcommands",
			cmd:  "app",
			opts: []CommandOption{Arguments(NewPositional("file")), Subcommands(leaf)},
		},
		{
			name: "duplicate argument",
			cmd:  "app",
			opts: []CommandOption{Arguments(NewPositional("file"), NewOption("--file"))},
		},
		{
			name: "alias clash",
			cmd:  "app",
			opts: []CommandOption{Arguments(NewFlag("-v", "--verbose"), NewOption("-v", "--value"))},
		},
		{
			name: "option without aliases",
			cmd:  "app",
			opts: []CommandOption{Arguments(NewOption().WithName("level"))},
		},
		{
			name: "positional reading two words",
			cmd:  "app",
			opts: []CommandOption{Arguments(NewPositional("point").WithProcessor(Words(2, 2, func(w []string) ([]string, error) { return w, nil })))},
		},
		{
			name: "invalid reducer range",
			cmd:  "app",
			opts: []CommandOption{Arguments(NewPositional("files").WithReducer(Between[string](3, 1)))},
		},
		{
			name: "nil default function",
			cmd:  "app",
			opts: []CommandOption{Arguments(NewOption("--tags").WithDefaultFunc(nil))},
		},
		{
			name: "duplicate subcommand alias",
			cmd:  "app",
			opts: []CommandOption{Subcommands(
				MustCommand("remove", Arguments(), Aliases("rm")),
				MustCommand("rm", Arguments()),
			)},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd, err := NewCommand(tt.cmd, tt.opts...)
			require.ErrorIs(t, err, ErrInvalidCommand)
			assert.Nil(t, cmd)
		})
	}
}

func TestNewCommand_GroupWithGlobalFlags(t *testing.T) {
	cmd, err := NewCommand("git",
		Arguments(NewFlag("-q", "--quiet")),
		Subcommands(MustCommand("status", Arguments())),
	)
	require.NoError(t, err)
	assert.True(t, cmd.HasSubcommands())

	arg, ok := cmd.Lookup("--quiet")
	require.True(t, ok)
	assert.Equal(t, "quiet", ArgumentName(arg))

	_, ok = cmd.Lookup("-q")
	assert.True(t, ok)
}

func TestNewCommand_CopiesArguments(t *testing.T) {
	opt := NewOption("--level").WithChoices("low", "high")
	cmd := MustCommand("app", Arguments(opt))

	opt.Name = "changed"
	opt.Choices[0] = "changed"

	arg, ok := cmd.Lookup("--level")
	require.True(t, ok)
	got := arg.(*Option)
	assert.Equal(t, "level", got.Name)
	assert.Equal(t, []string{"low", "high"}, got.Choices)

	args := cmd.Arguments()
	args[0] = nil
	assert.NotNil(t, cmd.Arguments()[0])
}

func TestNewCommand_FillsDefaults(t *testing.T) {
	pos := &Positional{Name: "file"}
	flag := &Flag{Name: "force", Aliases: []string{"-f"}}
	cmd := MustCommand("app", Arguments(pos, flag))

	args := cmd.Arguments()
	p := args[0].(*Positional)
	f := args[1].(*Flag)
	assert.NotNil(t, p.Processor)
	assert.NotNil(t, p.Reducer)
	assert.NotNil(t, f.Reducer)
	v, ok := f.Default.Resolve()
	assert.True(t, ok)
	assert.Equal(t, false, v)
}

func TestSubcommandLookup(t *testing.T) {
	rm := MustCommand("remove", Arguments(NewPositional("name")), Aliases("rm"))
	root := MustCommand("app", Subcommands(rm, MustCommand("list", Arguments())))

	got, ok := root.Subcommand("rm")
	require.True(t, ok)
	assert.Same(t, rm, got)

	_, ok = root.Subcommand("delete")
	assert.False(t, ok)
	assert.Equal(t, []string{"remove", "list"}, root.subcommandNames())
	assert.Equal(t, []string{"remove", "rm", "list"}, root.invocationNames())
}

func TestMustCommand_Panics(t *testing.T) {
	assert.Panics(t, func() { MustCommand("app") })
}

func TestArity(t *testing.T) {
	a := Arity{Min: 1, Max: 2}
	assert.True(t, a.Allows(1))
	assert.True(t, a.Allows(2))
	assert.False(t, a.Allows(0))
	assert.False(t, a.Allows(3))
	assert.True(t, a.Full(2))
	assert.Equal(t, "1..2", a.String())

	open := Arity{Min: 0, Max: Unbounded}
	assert.True(t, open.Allows(100))
	assert.False(t, open.Full(100))
	assert.Equal(t, "0..", open.String())
	assert.Equal(t, "1", Exactly(1).String())
}
