package result

import "fmt"

// Option is a value that may be absent. The zero Option is None.
type Option[T any] struct {
	value T
	some  bool
}

// Some returns an Option holding v.
func Some[T any](v T) Option[T] {
	return Option[T]{value: v, some: true}
}

// None returns an empty Option.
func None[T any]() Option[T] {
	return Option[T]{}
}

// IsSome reports whether o holds a value.
func (o Option[T]) IsSome() bool { return o.some }

// IsNone reports whether o is empty.
func (o Option[T]) IsNone() bool { return !o.some }

// Unwrap returns the held value and panics on None.
func (o Option[T]) Unwrap() T {
	if !o.some {
		panic("result: Unwrap called on None")
	}
	return o.value
}

// UnwrapOr returns the held value, or def on None.
func (o Option[T]) UnwrapOr(def T) T {
	if !o.some {
		return def
	}
	return o.value
}

// Get returns the held value and whether it was present.
func (o Option[T]) Get() (T, bool) {
	return o.value, o.some
}

func (o Option[T]) String() string {
	if !o.some {
		return "None"
	}
	return fmt.Sprintf("Some(%v)", o.value)
}
