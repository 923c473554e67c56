// Package lru implements the Least-Recently-Used eviction policy.
package lru

import (
	"github.com/IvanBrykalov/slabcache/linkedhashmap"
	"github.com/IvanBrykalov/slabcache/policy"
)

// lru keeps entries oldest-first; the front of the map is the LRU entry.
type lru[K comparable, V any] struct {
	m *linkedhashmap.Map[K, V]
}

type lruPolicy[K comparable, V any] struct{}

// New returns a Policy factory that constructs per-shard LRU stores.
func New[K comparable, V any]() policy.Policy[K, V] { return lruPolicy[K, V]{} }

// New implements policy.Policy.
func (lruPolicy[K, V]) New(opt linkedhashmap.Options[K]) policy.Store[K, V] {
	return &lru[K, V]{m: linkedhashmap.New[K, V](opt)}
}

// Get promotes the entry to MRU.
func (p *lru[K, V]) Get(k K) (V, bool) {
	if v := p.m.Touch(k); v != nil {
		return *v, true
	}
	var zero V
	return zero, false
}

func (p *lru[K, V]) Peek(k K) (V, bool) { return p.m.Get(k) }

// Set inserts at MRU; an update is treated as a recent use.
func (p *lru[K, V]) Set(k K, v V) bool {
	_, replaced := p.m.Insert(k, v)
	return replaced
}

func (p *lru[K, V]) Remove(k K) (V, bool) { return p.m.Remove(k) }

// Evict drops the least recently used entry.
func (p *lru[K, V]) Evict() (K, V, bool) { return p.m.PopFront() }

func (p *lru[K, V]) Len() int { return p.m.Len() }
func (p *lru[K, V]) Clear()   { p.m.Clear() }
