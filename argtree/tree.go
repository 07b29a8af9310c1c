package argtree

import (
	"fmt"
	"maps"
	"strings"
)

// ParseResult is the raw tree built by the token parser. Values maps an
// argument name to the processed value of each occurrence, in argv order.
type ParseResult struct {
	Name   string
	Values map[string][]any
	Child  *ParseResult
}

// Tree is a finalized parse: one node per command from the root down to the
// deepest matched subcommand. Args holds a value for every declared argument.
type Tree struct {
	Name  string
	Args  map[string]any
	Child *Tree
}

// Path returns the command names from t down to its leaf.
func (t *Tree) Path() []string {
	var path []string
	for n := t; n != nil; n = n.Child {
		path = append(path, n.Name)
	}
	return path
}

// Leaf returns the deepest node of t.
func (t *Tree) Leaf() *Tree {
	n := t
	for n.Child != nil {
		n = n.Child
	}
	return n
}

// Lookup finds name in the nearest node, searching from the leaf up, the
// same way flags resolve from the innermost scope outwards.
func (t *Tree) Lookup(name string) (any, bool) {
	var nodes []*Tree
	for n := t; n != nil; n = n.Child {
		nodes = append(nodes, n)
	}
	for i := len(nodes) - 1; i >= 0; i-- {
		if v, ok := nodes[i].Args[name]; ok {
			return v, true
		}
	}
	return nil, false
}

// Value returns the argument name of t (searched as in Lookup) as a T.
func Value[T any](t *Tree, name string) (T, error) {
	var zero T
	v, ok := t.Lookup(name)
	if !ok {
		return zero, fmt.Errorf("argtree: no argument %q in %s", name, strings.Join(t.Path(), " "))
	}
	if v == nil {
		return zero, nil
	}
	typed, ok := v.(T)
	if !ok {
		return zero, fmt.Errorf("argtree: argument %q is %T, not %T", name, v, zero)
	}
	return typed, nil
}

// MustValue is like Value but panics on a missing or mistyped argument.
func MustValue[T any](t *Tree, name string) T {
	v, err := Value[T](t, name)
	if err != nil {
		panic(err)
	}
	return v
}

// GetString returns a string argument.
func (t *Tree) GetString(name string) (string, bool) { return get[string](t, name) }

// GetInt returns an int argument.
func (t *Tree) GetInt(name string) (int, bool) { return get[int](t, name) }

// GetBool returns a bool argument.
func (t *Tree) GetBool(name string) (bool, bool) { return get[bool](t, name) }

// GetFloat returns a float64 argument.
func (t *Tree) GetFloat(name string) (float64, bool) { return get[float64](t, name) }

// GetStrings returns a []string argument.
func (t *Tree) GetStrings(name string) ([]string, bool) { return get[[]string](t, name) }

func get[T any](t *Tree, name string) (T, bool) {
	v, ok := t.Lookup(name)
	if !ok {
		var zero T
		return zero, false
	}
	typed, ok := v.(T)
	return typed, ok
}

// Merged is a tree flattened into one dotted command path and a single
// argument map.
type Merged struct {
	Command string
	Args    map[string]any
}

// Merge flattens t root to leaf. The command path joins the command names,
// as identifiers, with dots ("git.stash.pop"); a child argument overrides an
// ancestor one of the same name.
func Merge(t *Tree) Merged {
	m := Merged{Args: make(map[string]any)}
	var names []string
	for n := t; n != nil; n = n.Child {
		names = append(names, Identifier(n.Name))
		maps.Copy(m.Args, n.Args)
	}
	m.Command = strings.Join(names, ".")
	return m
}
