package main

import (
	"encoding/json"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/dzonerzy/go-argtree/argtree"
)

type node struct {
	Name  string         `json:"name" yaml:"name"`
	Args  map[string]any `json:"args" yaml:"args"`
	Child *node          `json:"child,omitempty" yaml:"child,omitempty"`
}

type merged struct {
	Command string         `json:"command" yaml:"command"`
	Args    map[string]any `json:"args" yaml:"args"`
}

func toNode(t *argtree.Tree) *node {
	if t == nil {
		return nil
	}
	return &node{Name: t.Name, Args: t.Args, Child: toNode(t.Child)}
}

func write(w io.Writer, format string, tree *argtree.Tree) error {
	switch format {
	case "json":
		return writeJSON(w, toNode(tree))
	case "merged":
		m := argtree.Merge(tree)
		return writeJSON(w, merged{Command: m.Command, Args: m.Args})
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(toNode(tree)); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("unknown format %q", format)
	}
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
