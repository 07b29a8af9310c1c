package argtree

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFinalize_Arity(t *testing.T) {
	cmd := MustCommand("app", Arguments(
		NewOption("--name"),
		NewPositional("files").WithReducer(Between[string](2, 3)),
	))

	_, err := ParseArgs(cmd, []string{"--name", "a", "--name", "b", "x", "y"})
	var many *TooManyValuesError
	require.ErrorAs(t, err, &many)
	assert.Equal(t, "name", many.Argument)
	assert.Equal(t, 1, many.MaxRequired)
	assert.Equal(t, 2, many.Got)

	_, err = ParseArgs(cmd, []string{"--name", "a", "x"})
	var few *InsufficientValuesError
	require.ErrorAs(t, err, &few)
	assert.Equal(t, "files", few.Argument)
	assert.Equal(t, 2, few.MinRequired)

	tree, err := ParseArgs(cmd, []string{"--name", "a", "x", "y", "z"})
	require.NoError(t, err)
	assert.Equal(t, []string{"x", "y", "z"}, tree.Args["files"])
}

func TestFinalize_Defaults(t *testing.T) {
	cmd := MustCommand("app", Arguments(
		NewOption("--answer").WithProcessor(Int()).WithDefault(42),
		NewOption("--nothing").WithDefault(nil),
		NewFlag("-f", "--force"),
		NewOption("--tags").
			WithReducer(Multiple[string](Unbounded)).
			WithDefaultFunc(func() any { return []string{} }),
	))

	tree, err := ParseArgs(cmd, nil)
	require.NoError(t, err)
	assert.Equal(t, 42, tree.Args["answer"])
	assert.Equal(t, false, tree.Args["force"])
	v, ok := tree.Args["nothing"]
	assert.True(t, ok)
	assert.Nil(t, v)

	first := tree.Args["tags"].([]string)
	again, err := ParseArgs(cmd, nil)
	require.NoError(t, err)
	second := again.Args["tags"].([]string)
	first = append(first, "mutated")
	assert.Len(t, first, 1)
	assert.Empty(t, second, "default factory runs per parse")
}

func TestFinalize_MissingArg(t *testing.T) {
	cmd := MustCommand("app", Arguments(
		NewOption("--answer").WithProcessor(Int()),
		NewPositional("name"),
	))

	_, err := ParseArgs(cmd, []string{"someone"})
	var missing *MissingArgError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, "answer", missing.Argument)
	assert.Equal(t, "missing required argument --answer", missing.Error())

	_, err = ParseArgs(cmd, []string{"--answer", "1"})
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, "name", missing.Argument)
	assert.Equal(t, "missing required argument NAME", missing.Error())
}

func TestFinalize_Counter(t *testing.T) {
	cmd := MustCommand("app", Arguments(NewCounter("-v", "--verbose")))

	tree, err := ParseArgs(cmd, []string{"-vvv", "--verbose"})
	require.NoError(t, err)
	assert.Equal(t, 4, tree.Args["verbose"])

	tree, err = ParseArgs(cmd, nil)
	require.NoError(t, err)
	assert.Equal(t, 0, tree.Args["verbose"])
}

func TestFinalize_FlagRepeatedTwice(t *testing.T) {
	cmd := MustCommand("app", Arguments(NewFlag("-f")))

	_, err := ParseArgs(cmd, []string{"-ff"})
	var many *TooManyValuesError
	require.ErrorAs(t, err, &many)
}

func TestFinalize_ReducerError(t *testing.T) {
	errOdd := errors.New("odd sum")
	sum := Fold(1, Unbounded, func() int { return 0 }, func(acc int, v any) (int, error) {
		return acc + v.(int), nil
	})
	even := Transform(1, Unbounded, func(values []any) (any, error) {
		if len(values)%2 == 1 {
			return nil, errOdd
		}
		return len(values), nil
	})
	cmd := MustCommand("app", Arguments(
		NewOption("--add").WithProcessor(Int()).WithReducer(sum).WithDefault(0),
		NewOption("--pair").WithReducer(even).WithDefault(0),
	))

	tree, err := ParseArgs(cmd, []string{"--add", "2", "--add", "5"})
	require.NoError(t, err)
	assert.Equal(t, 7, tree.Args["add"])

	_, err = ParseArgs(cmd, []string{"--pair", "a"})
	var invalid *InvalidValueError
	require.ErrorAs(t, err, &invalid)
	assert.Equal(t, "pair", invalid.Argument)
	assert.ErrorIs(t, err, errOdd)
}

func TestFinalize_MissingSubcommand(t *testing.T) {
	cmd := MustCommand("git",
		Arguments(NewFlag("-q")),
		Subcommands(MustCommand("status", Arguments()), MustCommand("log", Arguments())),
	)

	_, err := ParseArgs(cmd, []string{"-q"})
	var missing *MissingSubcommandError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, "git", missing.Command)
	assert.Equal(t, []string{"status", "log"}, missing.Available)
}

func TestFinalize_WrapsChildErrors(t *testing.T) {
	cmd := MustCommand("root", Subcommands(
		MustCommand("cmd1", Subcommands(
			MustCommand("sub1", Arguments(NewPositional("name"))),
		)),
	))

	_, err := ParseArgs(cmd, []string{"cmd1", "sub1"})
	var wrap *SubcommandFinalizationError
	require.ErrorAs(t, err, &wrap)
	assert.Equal(t, "cmd1", wrap.Subcommand)

	inner, ok := wrap.Err.(*SubcommandFinalizationError)
	require.True(t, ok)
	assert.Equal(t, "sub1", inner.Subcommand)

	var missing *MissingArgError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, "name", missing.Argument)
}

func TestFinalize_DoesNotMutateRaw(t *testing.T) {
	cmd := MustCommand("app", Arguments(NewOption("--n").WithProcessor(Int()).WithDefault(1)))
	raw := &ParseResult{Name: "app", Values: map[string][]any{}}

	tree := Finalize(cmd, raw).Unwrap()
	assert.Equal(t, 1, tree.Args["n"])
	assert.Empty(t, raw.Values)
}
