// Package pool provides typed object pooling for argtree parsing.
// Used by the parser to reuse token buffers between Parse calls.
package pool

import "sync"

// Pool is a generic, type-safe wrapper around sync.Pool.
type Pool[T any] struct {
	pool  sync.Pool
	reset func(*T) // Optional reset function called before reuse
	keep  func(*T) bool
}

// NewPool creates a new generic pool with the given factory function
func NewPool[T any](factory func() *T) *Pool[T] {
	return &Pool[T]{
		pool: sync.Pool{
			New: func() any {
				return factory()
			},
		},
	}
}

// NewPoolWithReset creates a pool with a reset function called before reuse
func NewPoolWithReset[T any](factory func() *T, reset func(*T)) *Pool[T] {
	p := NewPool(factory)
	p.reset = reset
	return p
}

// Get retrieves an object from the pool or creates a new one
func (p *Pool[T]) Get() *T {
	obj := p.pool.Get().(*T)
	if p.reset != nil {
		p.reset(obj)
	}
	return obj
}

// Put returns an object to the pool for reuse. Objects rejected by the
// keep predicate are dropped.
func (p *Pool[T]) Put(obj *T) {
	if obj == nil {
		return
	}
	if p.keep != nil && !p.keep(obj) {
		return
	}
	p.pool.Put(obj)
}

// SlicePool pools slices of T, dropping any that grew past maxCap.
type SlicePool[T any] struct {
	*Pool[[]T]
}

// NewSlicePool creates a pool of slices with the given initial capacity.
func NewSlicePool[T any](defaultCap, maxCap int) *SlicePool[T] {
	p := NewPoolWithReset(
		func() *[]T {
			s := make([]T, 0, defaultCap)
			return &s
		},
		func(s *[]T) {
			clear(*s)
			*s = (*s)[:0]
		},
	)
	p.keep = func(s *[]T) bool { return cap(*s) <= maxCap }
	return &SlicePool[T]{Pool: p}
}
