// Package mru implements the Most-Recently-Used eviction policy, which
// suits cyclic scans larger than the cache where the newest entry is the
// one least likely to be read again soon.
package mru

import (
	"github.com/IvanBrykalov/slabcache/linkedhashmap"
	"github.com/IvanBrykalov/slabcache/policy"
)

type mru[K comparable, V any] struct {
	m *linkedhashmap.Map[K, V]
}

type mruPolicy[K comparable, V any] struct{}

// New returns a Policy factory that constructs per-shard MRU stores.
func New[K comparable, V any]() policy.Policy[K, V] { return mruPolicy[K, V]{} }

// New implements policy.Policy.
func (mruPolicy[K, V]) New(opt linkedhashmap.Options[K]) policy.Store[K, V] {
	return &mru[K, V]{m: linkedhashmap.New[K, V](opt)}
}

func (p *mru[K, V]) Get(k K) (V, bool) {
	if v := p.m.Touch(k); v != nil {
		return *v, true
	}
	var zero V
	return zero, false
}

func (p *mru[K, V]) Peek(k K) (V, bool) { return p.m.Get(k) }

func (p *mru[K, V]) Set(k K, v V) bool {
	_, replaced := p.m.Insert(k, v)
	return replaced
}

func (p *mru[K, V]) Remove(k K) (V, bool) { return p.m.Remove(k) }

// Evict drops the most recently used entry other than the one just
// written. The shard evicts right after an insertion, so a plain PopLast
// would always discard the fresh insert; it is kept and the previous MRU
// goes instead.
func (p *mru[K, V]) Evict() (K, V, bool) {
	if p.m.Len() <= 1 {
		return p.m.PopLast()
	}
	// Keep the entry that was just inserted; drop the previous MRU.
	k, v, _ := p.m.PopLast()
	ek, ev, ok := p.m.PopLast()
	p.m.Insert(k, v)
	return ek, ev, ok
}

func (p *mru[K, V]) Len() int { return p.m.Len() }
func (p *mru[K, V]) Clear()   { p.m.Clear() }
