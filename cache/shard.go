package cache

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/IvanBrykalov/slabcache/internal/util"
	"github.com/IvanBrykalov/slabcache/policy"
)

// shard is an independent partition of the cache: a policy store behind
// one mutex. Every operation takes the exclusive lock because a policy Get
// promotes the entry, which rewrites list links.
type shard[K comparable, V any] struct {
	// ---- guarded by mu ----
	mu    sync.Mutex
	store policy.Store[K, V]
	cap   int

	opt  *Options[K, V]
	size *atomic.Int64 // cache-wide entry count

	// ---- hot counters (separate cache lines to avoid false sharing) ----
	_      util.CacheLinePad
	hits   util.Counter
	misses util.Counter
	evicts util.Counter
}

func newShard[K comparable, V any](capacity int, store policy.Store[K, V], opt *Options[K, V], size *atomic.Int64) *shard[K, V] {
	return &shard[K, V]{
		store: store,
		cap:   capacity,
		opt:   opt,
		size:  size,
	}
}

// Add inserts a new entry. Returns false if the key already exists.
func (s *shard[K, V]) Add(k K, v V) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.store.Peek(k); ok {
		return false
	}
	s.store.Set(k, v)
	s.size.Add(1)
	s.enforceLimitLocked()
	return true
}

// Set inserts or updates an entry.
func (s *shard[K, V]) Set(k K, v V) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.store.Set(k, v) {
		s.size.Add(1)
	}
	s.enforceLimitLocked()
}

// Get returns the value and lets the policy record the access.
func (s *shard[K, V]) Get(k K) (V, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	v, ok := s.store.Get(k)
	if !ok {
		s.misses.Add(1)
		s.opt.Metrics.Miss()
		return v, false
	}
	s.hits.Add(1)
	s.opt.Metrics.Hit()
	return v, true
}

func (s *shard[K, V]) Peek(k K) (V, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.store.Peek(k)
}

// Remove deletes an entry by key. Explicit removals are not evictions.
func (s *shard[K, V]) Remove(k K) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.store.Remove(k); !ok {
		return false
	}
	s.opt.Metrics.Size(int(s.size.Add(-1)))
	return true
}

func (s *shard[K, V]) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.store.Len()
}

// Purge empties the shard and its policy history. With an OnEvict callback
// entries are drained first so each can be reported.
func (s *shard[K, V]) Purge() {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := s.store.Len()
	if s.opt.OnEvict != nil {
		for {
			k, v, ok := s.store.Evict()
			if !ok {
				break
			}
			s.opt.OnEvict(k, v, EvictPurge)
		}
	}
	// Draining through Evict may record policy history (2Q ghosts);
	// Clear drops it so both paths leave the same empty store.
	s.store.Clear()
	for i := 0; i < n; i++ {
		s.opt.Metrics.Evict(EvictPurge)
	}
	s.evicts.Add(uint64(n))
	s.opt.Metrics.Size(int(s.size.Add(-int64(n))))
}

// enforceLimitLocked evicts until the shard is back within capacity.
func (s *shard[K, V]) enforceLimitLocked() {
	for s.store.Len() > s.cap {
		k, v, ok := s.store.Evict()
		if !ok {
			break
		}
		s.size.Add(-1)
		s.evicts.Add(1)
		s.opt.Metrics.Evict(EvictCapacity)
		if s.opt.Logger.Enabled(context.Background(), slog.LevelDebug) {
			s.opt.Logger.Debug("cache: evicted", slog.Any("key", k), slog.String("reason", EvictCapacity.String()))
		}
		if cb := s.opt.OnEvict; cb != nil {
			cb(k, v, EvictCapacity)
		}
	}
	s.opt.Metrics.Size(int(s.size.Load()))
}
