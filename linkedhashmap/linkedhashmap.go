// Package linkedhashmap implements a hash map that remembers the order in
// which entries were inserted or touched.
//
// Entries live in a slab-backed doubly linked list (oldest at the front,
// newest at the back) and a key index points at their slots. Insert, Get,
// Touch, Remove, PopFront and PopLast are all amortized O(1).
//
// The map never evicts on its own. It is the building block for LRU/MRU
// style caches, where the caller checks Len after each Insert and calls
// PopFront (or PopLast) to enforce its own capacity:
//
//	m := linkedhashmap.New[string, []byte](linkedhashmap.Options[string]{Capacity: 1024})
//	m.Insert(k, v)
//	if m.Len() > 1024 {
//	    m.PopFront() // drop the least recently used entry
//	}
//
// A Map is not safe for concurrent use. Touch and GetMut both change state,
// so even lookups need exclusive access when they promote entries.
package linkedhashmap

import (
	"github.com/IvanBrykalov/slabcache/hasher"
	"github.com/IvanBrykalov/slabcache/linkedlist"
)

// Options configures a Map. The zero value is valid.
type Options[K comparable] struct {
	// Capacity pre-sizes the node arena and the key index.
	Capacity int
	// Hasher selects the key index hashing strategy.
	// nil uses the built-in map (randomly seeded per process).
	Hasher hasher.Func[K]
}

// entry is the node payload. The key is kept alongside the value so that
// PopFront/PopLast can unindex the evicted entry without a reverse lookup.
type entry[K comparable, V any] struct {
	key K
	val V
}

// Map is an insertion/recency ordered hash map.
type Map[K comparable, V any] struct {
	nodes *linkedlist.NodeSlab[entry[K, V]]
	order linkedlist.List[entry[K, V]]
	index index[K]
}

// New constructs an empty Map.
func New[K comparable, V any](opt Options[K]) *Map[K, V] {
	capacity := max(opt.Capacity, 0)
	return &Map[K, V]{
		nodes: linkedlist.NewNodeSlab[entry[K, V]](capacity),
		order: linkedlist.New[entry[K, V]](),
		index: newIndex(capacity, opt.Hasher),
	}
}

// Len returns the number of entries.
func (m *Map[K, V]) Len() int { return m.index.len() }

// Insert stores k -> v at the back of the order.
//
// If k was already present, its old entry is removed from wherever it was
// and the old value is returned with replaced == true. The new entry always
// lands at the back: re-inserting a key counts as the most recent use and
// does not keep the key's former position.
func (m *Map[K, V]) Insert(k K, v V) (old V, replaced bool) {
	prev, ok := m.index.upsert(k, func() int {
		return m.order.Push(m.nodes, entry[K, V]{key: k, val: v})
	})
	if !ok {
		return old, false
	}
	e, ok := m.order.Remove(m.nodes, prev)
	if !ok {
		panic("linkedhashmap: index referenced a vacant node")
	}
	return e.val, true
}

// Get returns the value for k without changing the order.
func (m *Map[K, V]) Get(k K) (V, bool) {
	h, ok := m.index.get(k)
	if !ok {
		var zero V
		return zero, false
	}
	e, ok := m.nodes.Get(h)
	return e.val, ok
}

// GetMut returns a pointer to the value for k without changing the order,
// or nil if k is absent. The pointer is valid until the next Insert.
func (m *Map[K, V]) GetMut(k K) *V {
	h, ok := m.index.get(k)
	if !ok {
		return nil
	}
	if e := m.nodes.GetMut(h); e != nil {
		return &e.val
	}
	return nil
}

// Contains reports whether k is present.
func (m *Map[K, V]) Contains(k K) bool {
	_, ok := m.index.get(k)
	return ok
}

// Touch moves k to the back of the order (most recently used) and returns
// a pointer to its value, or nil if k is absent. The pointer is valid until
// the next Insert.
func (m *Map[K, V]) Touch(k K) *V {
	h, ok := m.index.get(k)
	if !ok {
		return nil
	}
	if e := m.order.Touch(m.nodes, h); e != nil {
		return &e.val
	}
	return nil
}

// Remove deletes k and returns its value.
func (m *Map[K, V]) Remove(k K) (V, bool) {
	h, ok := m.index.del(k)
	if !ok {
		var zero V
		return zero, false
	}
	e, ok := m.order.Remove(m.nodes, h)
	if !ok {
		panic("linkedhashmap: index referenced a vacant node")
	}
	return e.val, true
}

// PopFront removes and returns the oldest entry.
func (m *Map[K, V]) PopFront() (K, V, bool) {
	e, ok := m.order.PopFront(m.nodes)
	if !ok {
		return e.key, e.val, false
	}
	m.unindex(e.key)
	return e.key, e.val, true
}

// PopLast removes and returns the newest entry.
func (m *Map[K, V]) PopLast() (K, V, bool) {
	e, ok := m.order.PopLast(m.nodes)
	if !ok {
		return e.key, e.val, false
	}
	m.unindex(e.key)
	return e.key, e.val, true
}

func (m *Map[K, V]) unindex(k K) {
	if _, ok := m.index.del(k); !ok {
		panic("linkedhashmap: popped node has no index entry")
	}
}

// Front returns the oldest entry without removing it.
func (m *Map[K, V]) Front() (K, V, bool) {
	h, ok := m.order.Front()
	return m.at(h, ok)
}

// Back returns the newest entry without removing it.
func (m *Map[K, V]) Back() (K, V, bool) {
	h, ok := m.order.Back()
	return m.at(h, ok)
}

func (m *Map[K, V]) at(h int, ok bool) (K, V, bool) {
	var e entry[K, V]
	if ok {
		e, ok = m.nodes.Get(h)
	}
	return e.key, e.val, ok
}

// Clear removes every entry, keeping allocated capacity for reuse.
func (m *Map[K, V]) Clear() {
	m.nodes.Clear()
	m.order.Reset()
	m.index.reset()
}

// Reserve makes room for at least additional more entries.
func (m *Map[K, V]) Reserve(additional int) {
	m.nodes.Reserve(additional)
	m.index.reserve(additional)
}

// ShrinkToFit releases capacity not needed by the current entries.
func (m *Map[K, V]) ShrinkToFit() {
	m.nodes.ShrinkToFit()
	m.index.shrink()
}
