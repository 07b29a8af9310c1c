package argtree

import "fmt"

// Unbounded marks an Arity without an upper limit.
const Unbounded = -1

// Arity is an inclusive count range. Max may be Unbounded.
type Arity struct {
	Min int
	Max int
}

// Exactly returns the arity n..n.
func Exactly(n int) Arity { return Arity{Min: n, Max: n} }

// Bounded reports whether the arity has an upper limit.
func (a Arity) Bounded() bool { return a.Max != Unbounded }

// Allows reports whether n lies within the arity.
func (a Arity) Allows(n int) bool {
	return n >= a.Min && (!a.Bounded() || n <= a.Max)
}

// Full reports whether n has reached the upper limit.
func (a Arity) Full(n int) bool {
	return a.Bounded() && n >= a.Max
}

func (a Arity) valid() bool {
	return a.Min >= 0 && (!a.Bounded() || (a.Max >= a.Min && a.Max > 0))
}

func (a Arity) String() string {
	switch {
	case !a.Bounded():
		return fmt.Sprintf("%d..", a.Min)
	case a.Min == a.Max:
		return fmt.Sprint(a.Min)
	default:
		return fmt.Sprintf("%d..%d", a.Min, a.Max)
	}
}
