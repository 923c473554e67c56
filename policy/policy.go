// Package policy defines the eviction policies a cache shard delegates
// ordering to. Every policy keeps its entries in one or more
// linkedhashmap.Map values; the shard decides when to evict and asks the
// policy which entry goes.
package policy

import "github.com/IvanBrykalov/slabcache/linkedhashmap"

// Store is a per-shard policy instance holding the resident entries.
// Stores are not safe for concurrent use; the shard serialises calls.
//
// Semantics:
//   - Get returns the value and records the access (e.g. promote to MRU).
//   - Peek returns the value without recording an access.
//   - Set inserts or replaces; replaced reports whether k was resident.
//   - Evict removes and returns the entry the policy would drop next.
//     It never runs on its own; the shard calls it while over capacity.
type Store[K comparable, V any] interface {
	Get(k K) (V, bool)
	Peek(k K) (V, bool)
	Set(k K, v V) (replaced bool)
	Remove(k K) (V, bool)
	Evict() (K, V, bool)
	Len() int
	Clear()
}

// Policy is a factory that creates shard-local stores.
// opt carries the shard's capacity hint and key hasher.
type Policy[K comparable, V any] interface {
	New(opt linkedhashmap.Options[K]) Store[K, V]
}
