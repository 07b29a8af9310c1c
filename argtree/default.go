package argtree

type defaultKind uint8

const (
	required defaultKind = iota
	literal
	factory
)

// Default is the value an argument takes when argv does not supply it.
// The zero Default means the argument is required.
type Default struct {
	kind    defaultKind
	value   any
	factory func() any
}

// Required is the Default of an argument that has none.
func Required() Default { return Default{} }

// DefaultValue returns a Default of v. A nil v is a legal default and is
// distinct from Required.
func DefaultValue(v any) Default {
	return Default{kind: literal, value: v}
}

// DefaultFunc returns a Default computed by fn on every parse, so that
// mutable values are never shared between results.
func DefaultFunc(fn func() any) Default {
	return Default{kind: factory, factory: fn}
}

// IsRequired reports whether d carries no default.
func (d Default) IsRequired() bool { return d.kind == required }

// Resolve returns the default value, or false when d is Required.
func (d Default) Resolve() (any, bool) {
	switch d.kind {
	case literal:
		return d.value, true
	case factory:
		return d.factory(), true
	default:
		return nil, false
	}
}
