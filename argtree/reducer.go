package argtree

import "fmt"

// Reducer folds the values collected for one argument into its final value.
// Arity bounds how many occurrences the argument accepts.
type Reducer interface {
	Arity() Arity
	Reduce(values []any) (any, error)
}

type reducer struct {
	arity Arity
	fn    func(values []any) (any, error)
}

func (r *reducer) Arity() Arity                     { return r.arity }
func (r *reducer) Reduce(values []any) (any, error) { return r.fn(values) }

// Single accepts exactly one occurrence and keeps its value.
func Single() Reducer {
	return &reducer{
		arity: Exactly(1),
		fn:    func(values []any) (any, error) { return values[len(values)-1], nil },
	}
}

// Multiple accepts 1..max occurrences and collects them into a []T.
func Multiple[T any](max int) Reducer {
	return Between[T](1, max)
}

// Between accepts min..max occurrences and collects them into a []T.
func Between[T any](min, max int) Reducer {
	return &reducer{
		arity: Arity{Min: min, Max: max},
		fn: func(values []any) (any, error) {
			out := make([]T, 0, len(values))
			for _, v := range values {
				t, ok := v.(T)
				if !ok {
					return nil, fmt.Errorf("cannot collect %T as %T", v, *new(T))
				}
				out = append(out, t)
			}
			return out, nil
		},
	}
}

// Count accepts 0..max occurrences and yields how many there were, so
// "-vvv" becomes 3.
func Count(max int) Reducer {
	return &reducer{
		arity: Arity{Min: 0, Max: max},
		fn:    func(values []any) (any, error) { return len(values), nil },
	}
}

// Fold accepts min..max occurrences and folds them left, starting from
// initial().
func Fold[A any](min, max int, initial func() A, fn func(acc A, value any) (A, error)) Reducer {
	return &reducer{
		arity: Arity{Min: min, Max: max},
		fn: func(values []any) (any, error) {
			acc := initial()
			for _, v := range values {
				var err error
				if acc, err = fn(acc, v); err != nil {
					return nil, err
				}
			}
			return acc, nil
		},
	}
}

// Transform accepts min..max occurrences and hands them all to fn.
func Transform(min, max int, fn func(values []any) (any, error)) Reducer {
	return &reducer{arity: Arity{Min: min, Max: max}, fn: fn}
}
