// Package intern caches normalized names so that repeated spellings of the
// same flag or alias resolve to one canonical string.
// Used by argtree for identifier normalization during tokenization and
// command construction.
package intern

import "sync"

// DefaultLimit bounds how many distinct inputs a Table remembers.
const DefaultLimit = 1024

// Table maps raw strings to their normalized form, computing each at most
// once while the table has room. It is safe for concurrent use.
type Table struct {
	normalize func(string) string
	entries   map[string]string
	limit     int
	mutex     sync.RWMutex
}

// NewTable creates a table that normalizes with fn and remembers up to
// limit entries (DefaultLimit when limit <= 0).
func NewTable(fn func(string) string, limit int) *Table {
	if limit <= 0 {
		limit = DefaultLimit
	}
	return &Table{
		normalize: fn,
		entries:   make(map[string]string, 64),
		limit:     limit,
	}
}

// Get returns the normalized form of raw.
func (t *Table) Get(raw string) string {
	// Fast path: read lock for the common case
	t.mutex.RLock()
	if v, ok := t.entries[raw]; ok {
		t.mutex.RUnlock()
		return v
	}
	full := len(t.entries) >= t.limit
	t.mutex.RUnlock()

	v := t.normalize(raw)
	if full {
		// table is full; argv must not grow it
		return v
	}

	t.mutex.Lock()
	defer t.mutex.Unlock()
	if existing, ok := t.entries[raw]; ok {
		return existing
	}
	if len(t.entries) < t.limit {
		t.entries[raw] = v
	}
	return v
}

// Preload normalizes and stores names ahead of time.
func (t *Table) Preload(names ...string) {
	for _, n := range names {
		t.Get(n)
	}
}

// Len returns the number of remembered entries.
func (t *Table) Len() int {
	t.mutex.RLock()
	defer t.mutex.RUnlock()
	return len(t.entries)
}

// Clear removes all entries (useful for testing)
func (t *Table) Clear() {
	t.mutex.Lock()
	defer t.mutex.Unlock()
	for k := range t.entries {
		delete(t.entries, k)
	}
}

// Pre-allocated single letter strings for zero-allocation short flags
var letters = [26]string{
	"a", "b", "c", "d", "e", "f", "g", "h", "i", "j", "k", "l", "m",
	"n", "o", "p", "q", "r", "s", "t", "u", "v", "w", "x", "y", "z",
}

// Letter returns the one-character string for a lowercase ASCII letter
// without allocating. Any other byte is converted normally.
func Letter(b byte) string {
	if b >= 'a' && b <= 'z' {
		return letters[b-'a']
	}
	return string(rune(b))
}
