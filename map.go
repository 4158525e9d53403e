package lazycell

import "sync"

// Map is a keyed collection of cells: the value under each key is computed at
// most once, independently of every other key. Poisoning is per-key, so one
// failed producer does not affect the rest of the map.
//
// The zero value is ready to use.
type Map[K comparable, V any] struct {
	cells sync.Map // K → *Cell[V]
}

// NewMap returns an empty Map.
func NewMap[K comparable, V any]() *Map[K, V] {
	return &Map[K, V]{}
}

// Get returns a pointer to the value under key, running producer to compute
// it if no caller has before. It has the same contract as Cell.Get, applied
// to the cell for this key.
func (m *Map[K, V]) Get(key K, producer func() (V, error)) (*V, error) {
	return m.cell(key).Get(producer)
}

// Initialize eagerly forces the entry under key, discarding the value.
// Idempotent per key.
func (m *Map[K, V]) Initialize(key K, producer func() (V, error)) error {
	return m.cell(key).Initialize(producer)
}

// Ready reports whether the entry under key holds a value.
func (m *Map[K, V]) Ready(key K) bool {
	if c, ok := m.cells.Load(key); ok {
		return c.(*Cell[V]).Ready()
	}
	return false
}

func (m *Map[K, V]) cell(key K) *Cell[V] {
	if c, ok := m.cells.Load(key); ok {
		return c.(*Cell[V])
	}
	c, _ := m.cells.LoadOrStore(key, New[V]())
	return c.(*Cell[V])
}
