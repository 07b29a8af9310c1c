// Package argtree parses POSIX/GNU style command lines into a typed tree of
// commands and argument values.
//
// A command tree is declared up front:
//
//	root := argtree.MustCommand("app", argtree.Arguments(
//		argtree.NewFlag("-a", "--no-check"),
//		argtree.NewOption("--bar").WithProcessor(argtree.Int()).WithDefault(42),
//		argtree.NewPositional("name"),
//	))
//
// and argv is run through three stages: the dialect turns it into tokens,
// the token parser matches tokens against the tree (one scope per command,
// unknown flags falling back to enclosing commands), and the finalizer
// reduces repeated values, applies defaults and checks counts:
//
//	res := argtree.Parse(root, []string{"Some Name", "--bar", "19", "--no-check"})
//	tree := res.Unwrap() // tree.Args: name="Some Name" bar=19 no_check=true
//
// Every stage reports failure through result.Result; errors are values of
// the types in this package and scope wrappers keep the original cause.
package argtree
