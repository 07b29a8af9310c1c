// Package result provides the success/failure container threaded through the
// argtree pipeline, plus a small Option type for values that may be absent.
package result

import "fmt"

type state uint8

const (
	uninitialized state = iota
	ok
	failed
)

// Result holds exactly one of a success value or a failure value.
// The zero Result is uninitialized and every accessor panics on it;
// build one with Ok or Err.
type Result[T, E any] struct {
	value T
	err   E
	state state
}

// Ok returns a successful Result holding v.
func Ok[T, E any](v T) Result[T, E] {
	return Result[T, E]{value: v, state: ok}
}

// Err returns a failed Result holding e.
func Err[T, E any](e E) Result[T, E] {
	return Result[T, E]{err: e, state: failed}
}

func (r Result[T, E]) check() {
	if r.state == uninitialized {
		panic("result: use of uninitialized Result")
	}
}

// IsOk reports whether r holds a success value.
func (r Result[T, E]) IsOk() bool {
	r.check()
	return r.state == ok
}

// IsErr reports whether r holds a failure value.
func (r Result[T, E]) IsErr() bool {
	r.check()
	return r.state == failed
}

// Unwrap returns the success value and panics if r is a failure.
func (r Result[T, E]) Unwrap() T {
	return r.Expect("result: Unwrap called on Err")
}

// UnwrapErr returns the failure value and panics if r is a success.
func (r Result[T, E]) UnwrapErr() E {
	return r.ExpectErr("result: UnwrapErr called on Ok")
}

// Expect is Unwrap with a caller supplied panic message.
func (r Result[T, E]) Expect(msg string) T {
	if !r.IsOk() {
		panic(fmt.Sprintf("%s: %v", msg, r.err))
	}
	return r.value
}

// ExpectErr is UnwrapErr with a caller supplied panic message.
func (r Result[T, E]) ExpectErr(msg string) E {
	if !r.IsErr() {
		panic(fmt.Sprintf("%s: %v", msg, r.value))
	}
	return r.err
}

// UnwrapOr returns the success value, or def if r is a failure.
func (r Result[T, E]) UnwrapOr(def T) T {
	if r.IsOk() {
		return r.value
	}
	return def
}

// UnwrapOrElse returns the success value, or fn applied to the failure.
func (r Result[T, E]) UnwrapOrElse(fn func(E) T) T {
	if r.IsOk() {
		return r.value
	}
	return fn(r.err)
}

// Get unpacks r into the usual (value, error) pair. Exactly one side is
// meaningful; the other is its zero value.
func (r Result[T, E]) Get() (T, E) {
	r.check()
	return r.value, r.err
}

func (r Result[T, E]) String() string {
	switch r.state {
	case ok:
		return fmt.Sprintf("Ok(%v)", r.value)
	case failed:
		return fmt.Sprintf("Err(%v)", r.err)
	default:
		return "Result(uninitialized)"
	}
}

// Map transforms the success value of r, leaving a failure untouched.
func Map[T, U, E any](r Result[T, E], fn func(T) U) Result[U, E] {
	if r.IsErr() {
		return Err[U](r.err)
	}
	return Ok[U, E](fn(r.value))
}

// MapErr transforms the failure value of r, leaving a success untouched.
func MapErr[T, E, F any](r Result[T, E], fn func(E) F) Result[T, F] {
	if r.IsOk() {
		return Ok[T, F](r.value)
	}
	return Err[T](fn(r.err))
}

// AndThen chains a fallible step onto a success; a failure short-circuits.
func AndThen[T, U, E any](r Result[T, E], fn func(T) Result[U, E]) Result[U, E] {
	if r.IsErr() {
		return Err[U](r.err)
	}
	return fn(r.value)
}
