// Package twoq implements the 2Q eviction policy.
package twoq

import (
	"github.com/IvanBrykalov/slabcache/linkedhashmap"
	"github.com/IvanBrykalov/slabcache/policy"
)

// twoQ keeps three ordered maps:
//   - in  (A1in): first-time entries, FIFO; a scan only ever churns this queue
//   - am  (Am):   entries hit at least once, LRU
//   - out (A1out): keys recently evicted from in, no values
//
// A key found in out on Set skips in and goes straight to am.
type twoQ[K comparable, V any] struct {
	capIn    int
	capGhost int

	in  *linkedhashmap.Map[K, V]
	am  *linkedhashmap.Map[K, V]
	out *linkedhashmap.Map[K, struct{}]
}

type twoQPolicy[K comparable, V any] struct {
	capIn    int
	capGhost int
}

// New constructs a 2Q policy factory with per-shard queue sizes.
// Common choices: capIn ≈ 25% of shard capacity; capGhost ≈ 50% of it.
// A value <= 0 derives that share from the shard's capacity hint.
func New[K comparable, V any](capIn, capGhost int) policy.Policy[K, V] {
	return twoQPolicy[K, V]{capIn: capIn, capGhost: capGhost}
}

// New implements policy.Policy.
func (p twoQPolicy[K, V]) New(opt linkedhashmap.Options[K]) policy.Store[K, V] {
	capIn, capGhost := p.capIn, p.capGhost
	if capIn <= 0 {
		capIn = max(opt.Capacity/4, 1)
	}
	if capGhost <= 0 {
		capGhost = max(opt.Capacity/2, 1)
	}
	ghostOpt := linkedhashmap.Options[K]{Capacity: capGhost, Hasher: opt.Hasher}
	return &twoQ[K, V]{
		capIn:    capIn,
		capGhost: capGhost,
		in:       linkedhashmap.New[K, V](linkedhashmap.Options[K]{Capacity: capIn, Hasher: opt.Hasher}),
		am:       linkedhashmap.New[K, V](opt),
		out:      linkedhashmap.New[K, struct{}](ghostOpt),
	}
}

// Get promotes a hit in A1in to Am; a hit in Am moves it to MRU.
func (q *twoQ[K, V]) Get(k K) (V, bool) {
	if v := q.am.Touch(k); v != nil {
		return *v, true
	}
	if v, ok := q.in.Remove(k); ok {
		q.am.Insert(k, v)
		return v, true
	}
	var zero V
	return zero, false
}

func (q *twoQ[K, V]) Peek(k K) (V, bool) {
	if v, ok := q.am.Get(k); ok {
		return v, true
	}
	return q.in.Get(k)
}

// Set treats an update as a hit. New keys enter A1in unless they are
// remembered in A1out.
func (q *twoQ[K, V]) Set(k K, v V) bool {
	if q.am.Contains(k) {
		q.am.Insert(k, v)
		return true
	}
	if _, ok := q.in.Remove(k); ok {
		q.am.Insert(k, v)
		return true
	}
	if _, ok := q.out.Remove(k); ok {
		q.am.Insert(k, v)
		return false
	}
	q.in.Insert(k, v)
	return false
}

func (q *twoQ[K, V]) Remove(k K) (V, bool) {
	if v, ok := q.am.Remove(k); ok {
		return v, true
	}
	return q.in.Remove(k)
}

// Evict drains A1in while it exceeds its share (remembering the key in
// A1out), otherwise drops the LRU entry of Am.
func (q *twoQ[K, V]) Evict() (K, V, bool) {
	if q.in.Len() > q.capIn || q.am.Len() == 0 {
		k, v, ok := q.in.PopFront()
		if ok {
			q.remember(k)
		}
		return k, v, ok
	}
	return q.am.PopFront()
}

func (q *twoQ[K, V]) remember(k K) {
	q.out.Insert(k, struct{}{})
	for q.out.Len() > q.capGhost {
		q.out.PopFront()
	}
}

func (q *twoQ[K, V]) Len() int { return q.in.Len() + q.am.Len() }

func (q *twoQ[K, V]) Clear() {
	q.in.Clear()
	q.am.Clear()
	q.out.Clear()
}
