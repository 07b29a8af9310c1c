// Package specfile loads argtree command trees from YAML or TOML documents.
//
// A document describes one root command:
//
//	name: deploy
//	arguments:
//	  - kind: flag
//	    aliases: [-v, --verbose]
//	    reducer: count
//	  - kind: option
//	    aliases: [--replicas]
//	    type: int
//	    default: 1
//	  - kind: positional
//	    name: service
//	subcommands: []
package specfile

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/dzonerzy/go-argtree/argtree"
)

// Format is a document syntax.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
)

// ErrUnknownFormat is returned for files whose extension names no Format.
var ErrUnknownFormat = errors.New("specfile: unknown format")

// CommandSpec is the document form of an argtree.Command.
type CommandSpec struct {
	Name        string         `yaml:"name" toml:"name"`
	Description string         `yaml:"description,omitempty" toml:"description,omitempty"`
	Aliases     []string       `yaml:"aliases,omitempty" toml:"aliases,omitempty"`
	Arguments   []ArgumentSpec `yaml:"arguments,omitempty" toml:"arguments,omitempty"`
	Subcommands []CommandSpec  `yaml:"subcommands,omitempty" toml:"subcommands,omitempty"`
}

// ArgumentSpec is the document form of one argument.
type ArgumentSpec struct {
	Kind        string     `yaml:"kind" toml:"kind"` // positional, option or flag
	Name        string     `yaml:"name,omitempty" toml:"name,omitempty"`
	Aliases     []string   `yaml:"aliases,omitempty" toml:"aliases,omitempty"`
	Description string     `yaml:"description,omitempty" toml:"description,omitempty"`
	Type        string     `yaml:"type,omitempty" toml:"type,omitempty"` // string, int, float, bool, duration
	Words       *WordRange `yaml:"words,omitempty" toml:"words,omitempty"`
	Default     any        `yaml:"default,omitempty" toml:"default,omitempty"`
	Required    *bool      `yaml:"required,omitempty" toml:"required,omitempty"`
	Set         any        `yaml:"set,omitempty" toml:"set,omitempty"`
	Choices     []string   `yaml:"choices,omitempty" toml:"choices,omitempty"`
	Reducer     string     `yaml:"reducer,omitempty" toml:"reducer,omitempty"` // single, multiple or count
	Min         *int       `yaml:"min,omitempty" toml:"min,omitempty"`
	Max         *int       `yaml:"max,omitempty" toml:"max,omitempty"`
	Metavar     string     `yaml:"metavar,omitempty" toml:"metavar,omitempty"`
}

// WordRange is how many words one option occurrence reads.
type WordRange struct {
	Min int `yaml:"min" toml:"min"`
	Max int `yaml:"max" toml:"max"`
}

// FormatFromPath picks the format from a file extension. JSON is read with
// the YAML decoder.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml", ".json":
		return FormatYAML, nil
	case ".toml":
		return FormatTOML, nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnknownFormat, path)
	}
}

// Decode parses a document. Unknown keys are rejected.
func Decode(data []byte, format Format) (*CommandSpec, error) {
	var spec CommandSpec
	switch format {
	case FormatYAML:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&spec); err != nil {
			return nil, fmt.Errorf("specfile: decode yaml: %w", err)
		}
	case FormatTOML:
		meta, err := toml.Decode(string(data), &spec)
		if err != nil {
			return nil, fmt.Errorf("specfile: decode toml: %w", err)
		}
		if undecoded := meta.Undecoded(); len(undecoded) > 0 {
			return nil, fmt.Errorf("specfile: decode toml: unknown key %q", undecoded[0].String())
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
	return &spec, nil
}

// Load reads, decodes and builds the command tree at path.
func Load(path string) (*argtree.Command, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	spec, err := Decode(data, format)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	cmd, err := spec.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build %s: %w", path, err)
	}
	return cmd, nil
}
