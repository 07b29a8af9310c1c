package specfile

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dzonerzy/go-argtree/argtree"
)

func TestLoad_YAMLAndTOMLAgree(t *testing.T) {
	fromYAML, err := Load(filepath.Join("testdata", "git.yaml"))
	require.NoError(t, err)
	fromTOML, err := Load(filepath.Join("testdata", "git.toml"))
	require.NoError(t, err)

	argvs := [][]string{
		{"-vv", "clone", "https://example.com/repo.git", "--depth", "3"},
		{"cl", "git@host:repo", "--protocol=ssh", "-q"},
		{"-c", "/src", "stash", "pop", "--index"},
		{"stash", "list"},
		{"add", "a.go", "b.go", "--timeout", "1m", "--point", "1.5", "2"},
	}
	for _, argv := range argvs {
		a, err := argtree.ParseArgs(fromYAML, argv)
		require.NoError(t, err, "yaml %v", argv)
		b, err := argtree.ParseArgs(fromTOML, argv)
		require.NoError(t, err, "toml %v", argv)
		if diff := cmp.Diff(a, b); diff != "" {
			t.Errorf("%v: yaml and toml trees differ (-yaml +toml):\n%s", argv, diff)
		}
	}
}

func TestLoad_Values(t *testing.T) {
	cmd, err := Load(filepath.Join("testdata", "git.toml"))
	require.NoError(t, err)

	tree, err := argtree.ParseArgs(cmd, []string{"-vv", "clone", "https://example.com/repo.git", "--depth", "3"})
	require.NoError(t, err)
	merged := argtree.Merge(tree)
	assert.Equal(t, "git.clone", merged.Command)
	want := map[string]any{
		"quiet":       false,
		"verbose":     2,
		"dir":         ".",
		"url":         "https://example.com/repo.git",
		"depth_limit": 3,
		"protocol":    "https",
	}
	if diff := cmp.Diff(want, merged.Args); diff != "" {
		t.Errorf("merged args mismatch (-want +got):\n%s", diff)
	}

	tree, err = argtree.ParseArgs(cmd, []string{"add", "x"})
	require.NoError(t, err)
	leaf := tree.Leaf()
	assert.Equal(t, []string{"x"}, leaf.Args["paths"])
	assert.Equal(t, 30*time.Second, leaf.Args["timeout"])
	v, ok := leaf.Args["point"]
	assert.True(t, ok)
	assert.Nil(t, v)

	tree, err = argtree.ParseArgs(cmd, []string{"add", "x", "--point", "1", "2", "--point", "3", "4"})
	require.NoError(t, err)
	assert.Equal(t, [][]float64{{1, 2}, {3, 4}}, tree.Leaf().Args["point"])
}

func TestBuild_MultiWordOptionOccurrences(t *testing.T) {
	doc := "name: app\narguments:\n  - aliases: [--point]\n    type: float\n    words: {min: 2, max: 2}\n"
	spec, err := Decode([]byte(doc), FormatYAML)
	require.NoError(t, err)
	cmd, err := spec.Build()
	require.NoError(t, err)

	tree, err := argtree.ParseArgs(cmd, []string{"--point", "1", "2"})
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 2}, tree.Args["point"])

	_, err = argtree.ParseArgs(cmd, []string{"--point", "1", "2", "--point", "3", "4"})
	var many *argtree.TooManyValuesError
	require.ErrorAs(t, err, &many)
	assert.Equal(t, "point", many.Argument)
	assert.Equal(t, 1, many.MaxRequired)
	assert.Equal(t, 2, many.Got)
}

func TestLoad_ChoicesAndErrors(t *testing.T) {
	cmd, err := Load(filepath.Join("testdata", "git.yaml"))
	require.NoError(t, err)

	_, err = argtree.ParseArgs(cmd, []string{"clone", "u", "--protocol", "ftp"})
	var choice *argtree.InvalidChoiceError
	require.ErrorAs(t, err, &choice)
	assert.Equal(t, []string{"https", "ssh"}, choice.Choices)

	_, err = argtree.ParseArgs(cmd, []string{"clne"})
	var unknown *argtree.UnknownSubcommandError
	require.ErrorAs(t, err, &unknown)
	assert.Equal(t, "clone", unknown.Suggestion)

	_, err = argtree.ParseArgs(cmd, []string{"stash", "pop", "a", "b"})
	assert.Error(t, err)
}

func TestDecode_UnknownKeys(t *testing.T) {
	_, err := Decode([]byte("name: app\nargumnts: []\n"), FormatYAML)
	assert.Error(t, err)

	_, err = Decode([]byte("name = \"app\"\nargumnts = []\n"), FormatTOML)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "argumnts")

	_, err = Decode([]byte("name: app\n"), Format("ini"))
	assert.ErrorIs(t, err, ErrUnknownFormat)
}

func TestDecode_JSONThroughYAML(t *testing.T) {
	spec, err := Decode([]byte(`{"name": "app", "arguments": [{"name": "file"}]}`), FormatYAML)
	require.NoError(t, err)
	cmd, err := spec.Build()
	require.NoError(t, err)

	tree, err := argtree.ParseArgs(cmd, []string{"f.txt"})
	require.NoError(t, err)
	assert.Equal(t, "f.txt", tree.Args["file"])
}

func TestFormatFromPath(t *testing.T) {
	tests := []struct {
		path string
		want Format
		ok   bool
	}{
		{"cli.yaml", FormatYAML, true},
		{"cli.YML", FormatYAML, true},
		{"cli.json", FormatYAML, true},
		{"dir/cli.toml", FormatTOML, true},
		{"cli.ini", "", false},
		{"cli", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			got, err := FormatFromPath(tt.path)
			if !tt.ok {
				assert.ErrorIs(t, err, ErrUnknownFormat)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestBuild_Defaults(t *testing.T) {
	doc := `
name = "app"

[[arguments]]
aliases = ["--retries"]
type = "int"
default = 3

[[arguments]]
aliases = ["--ratio"]
type = "float"
default = 1

[[arguments]]
aliases = ["--tag"]
reducer = "multiple"
default = ["a", "b"]

[[arguments]]
kind = "flag"
aliases = ["--mode"]
default = "auto"
set = "manual"

[[arguments]]
kind = "flag"
aliases = ["--level"]
default = 1
set = 5
`
	spec, err := Decode([]byte(doc), FormatTOML)
	require.NoError(t, err)
	cmd, err := spec.Build()
	require.NoError(t, err)

	tree, err := argtree.ParseArgs(cmd, nil)
	require.NoError(t, err)
	want := map[string]any{
		"retries": 3,
		"ratio":   1.0,
		"tag":     []string{"a", "b"},
		"mode":    "auto",
		"level":   1,
	}
	if diff := cmp.Diff(want, tree.Args); diff != "" {
		t.Errorf("defaults mismatch (-want +got):\n%s", diff)
	}

	// list defaults are rebuilt on every parse
	tree.Args["tag"].([]string)[0] = "changed"
	again, err := argtree.ParseArgs(cmd, []string{"--mode", "--level"})
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, again.Args["tag"])
	assert.Equal(t, "manual", again.Args["mode"])
	assert.Equal(t, 5, again.Args["level"])
}

func TestBuild_Invalid(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"unknown kind", "name: app\narguments:\n  - kind: switch\n    aliases: [-s]\n"},
		{"unknown type", "name: app\narguments:\n  - name: n\n    type: uint\n"},
		{"unknown reducer", "name: app\narguments:\n  - name: n\n    reducer: last\n"},
		{"nameless positional", "name: app\narguments:\n  - description: x\n"},
		{"positional words", "name: app\narguments:\n  - name: p\n    words: {min: 2, max: 2}\n"},
		{"typed flag", "name: app\narguments:\n  - kind: flag\n    aliases: [-f]\n    type: int\n"},
		{"multiple flag", "name: app\narguments:\n  - kind: flag\n    aliases: [-f]\n    reducer: multiple\n"},
		{"bad int default", "name: app\narguments:\n  - aliases: [--n]\n    type: int\n    default: 1.5\n"},
		{"string default for int", "name: app\narguments:\n  - aliases: [--n]\n    type: int\n    default: many\n"},
		{"required with default", "name: app\narguments:\n  - aliases: [--n]\n    required: true\n    default: x\n"},
		{"list default on single", "name: app\narguments:\n  - aliases: [--n]\n    default: [a]\n"},
		{"min on single", "name: app\narguments:\n  - aliases: [--n]\n    min: 2\n"},
		{"default on words option", "name: app\narguments:\n  - aliases: [--p]\n    words: {min: 1, max: 2}\n    default: x\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			spec, err := Decode([]byte(tt.doc), FormatYAML)
			require.NoError(t, err)
			_, err = spec.Build()
			assert.ErrorIs(t, err, ErrInvalidSpec)
		})
	}
}

func TestBuild_CommandValidation(t *testing.T) {
	doc := "name: app\narguments:\n  - name: file\nsubcommands:\n  - name: run\n"
	spec, err := Decode([]byte(doc), FormatYAML)
	require.NoError(t, err)

	_, err = spec.Build()
	assert.ErrorIs(t, err, argtree.ErrInvalidCommand)
}
