package cache

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"

	"github.com/IvanBrykalov/slabcache/hasher"
	"github.com/IvanBrykalov/slabcache/internal/singleflight"
	"github.com/IvanBrykalov/slabcache/internal/util"
	"github.com/IvanBrykalov/slabcache/linkedhashmap"
	"github.com/IvanBrykalov/slabcache/policy/lru"
)

var (
	// ErrNoLoader is returned by GetOrLoad when no Loader was configured in Options.
	ErrNoLoader = errors.New("cache: no Loader provided")
	// ErrClosed is returned by GetOrLoad after Close.
	ErrClosed = errors.New("cache: closed")
)

// cache is a sharded in-memory KV store with a pluggable eviction policy.
// All methods are safe for concurrent use by multiple goroutines.
type cache[K comparable, V any] struct {
	shards []*shard[K, V]
	hash   hasher.Func[K]
	closed atomic.Bool
	size   atomic.Int64

	opt Options[K, V]

	// coalesces concurrent loads in GetOrLoad, keyed by K itself.
	sf singleflight.Group[K, V]
}

// New constructs a cache with the provided Options.
// It panics if Capacity is not positive.
func New[K comparable, V any](opt Options[K, V]) Cache[K, V] {
	if opt.Capacity <= 0 {
		panic("cache: Capacity must be > 0")
	}
	if opt.Metrics == nil {
		opt.Metrics = NoopMetrics{}
	}
	if opt.Policy == nil {
		opt.Policy = lru.New[K, V]()
	}
	if opt.Logger == nil {
		opt.Logger = slog.New(slog.DiscardHandler)
	}

	c := &cache[K, V]{opt: opt, hash: opt.Hasher}
	if c.hash == nil {
		c.hash = hasher.Seeded[K]()
	}

	n := util.ShardCount(opt.Shards, opt.Capacity)
	perShardCap := (opt.Capacity + n - 1) / n // split capacity evenly (ceil)
	c.shards = make([]*shard[K, V], n)
	for i := range c.shards {
		store := opt.Policy.New(linkedhashmap.Options[K]{Capacity: perShardCap, Hasher: opt.Hasher})
		c.shards[i] = newShard(perShardCap, store, &c.opt, &c.size)
	}
	return c
}

func (c *cache[K, V]) Add(k K, v V) bool {
	if c.closed.Load() {
		return false
	}
	return c.getShard(k).Add(k, v)
}

func (c *cache[K, V]) Set(k K, v V) {
	if c.closed.Load() {
		return
	}
	c.getShard(k).Set(k, v)
}

func (c *cache[K, V]) Get(k K) (V, bool) {
	if c.closed.Load() {
		var zero V
		return zero, false
	}
	return c.getShard(k).Get(k)
}

func (c *cache[K, V]) Peek(k K) (V, bool) {
	if c.closed.Load() {
		var zero V
		return zero, false
	}
	return c.getShard(k).Peek(k)
}

func (c *cache[K, V]) Remove(k K) bool {
	if c.closed.Load() {
		return false
	}
	return c.getShard(k).Remove(k)
}

// Len returns the total number of resident entries across all shards.
func (c *cache[K, V]) Len() int {
	total := 0
	for _, s := range c.shards {
		total += s.Len()
	}
	return total
}

func (c *cache[K, V]) Purge() {
	if c.closed.Load() {
		return
	}
	for _, s := range c.shards {
		s.Purge()
	}
}

func (c *cache[K, V]) Stats() Stats {
	var st Stats
	for _, s := range c.shards {
		st.Hits += s.hits.Load()
		st.Misses += s.misses.Load()
		st.Evictions += s.evicts.Load()
	}
	st.Entries = int(c.size.Load())
	return st
}

func (c *cache[K, V]) Close() error {
	c.closed.Store(true)
	return nil
}

// GetOrLoad returns the value for k; on miss it loads via Options.Loader,
// coalescing concurrent loads for the same key. A follower whose ctx ends
// returns ctx.Err() while the leader's load keeps running.
func (c *cache[K, V]) GetOrLoad(ctx context.Context, k K) (V, error) {
	var zero V
	if c.closed.Load() {
		return zero, ErrClosed
	}
	if v, ok := c.Get(k); ok {
		return v, nil
	}
	if c.opt.Loader == nil {
		return zero, ErrNoLoader
	}

	v, err, shared := c.sf.Do(ctx, k, func() (V, error) {
		// double-check after winning the flight
		if v, ok := c.Peek(k); ok {
			return v, nil
		}
		v, err := c.opt.Loader(ctx, k)
		if err != nil {
			return zero, fmt.Errorf("cache: load %v: %w", k, err)
		}
		c.Set(k, v)
		return v, nil
	})
	if err != nil && ctx.Err() == nil {
		c.opt.Logger.Debug("cache: load failed", slog.Any("key", k), slog.Bool("shared", shared), slog.Any("err", err))
	}
	return v, err
}

// getShard picks a shard by hashing the key and masking with len-1.
// len(c.shards) is guaranteed to be a power of two.
func (c *cache[K, V]) getShard(k K) *shard[K, V] {
	return c.shards[util.ShardIndex(c.hash(k), len(c.shards))]
}
