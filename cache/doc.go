// Package cache provides a generic, sharded in-memory cache built on
// linkedhashmap.Map, with pluggable eviction policies (LRU by default),
// singleflight loading and lightweight metrics hooks.
//
// Design
//
//   - Concurrency: the cache is split into shards, each protected by a
//     Mutex. The ordered maps underneath are single-owner structures and a
//     promoting Get rewrites links, so reads take the exclusive lock too.
//     The default shard count is ≈ 2×GOMAXPROCS rounded to a power of two.
//
//   - Storage: each shard's policy keeps entries in one or more
//     linkedhashmap.Map values (slab-backed nodes linked by slot index plus a
//     key index). All operations are O(1) expected.
//
//   - Capacity: the maps never evict by themselves. After every write the
//     shard asks its policy for victims until it is back within Capacity.
//
//   - Policies: LRU (default), MRU and 2Q (resists scan pollution) live
//     under policy/.
//
//   - Hashing: Options.Hasher selects shards and the key index strategy
//     (see package hasher). By default shards use a seeded maphash and the
//     index uses Go's built-in map.
//
//   - GetOrLoad: coalesces concurrent loads for the same key (compared
//     with ==, never by its printed form). If Loader is nil, GetOrLoad
//     returns ErrNoLoader.
//
//   - Metrics: Options.Metrics receives Hit/Miss/Evict/Size signals.
//     By default NoopMetrics is used; metrics/prom exports to Prometheus.
//
//   - Callbacks: Options.OnEvict(k, v, reason) is called for every eviction
//     (reason is EvictCapacity or EvictPurge).
//
// Basic usage
//
//	c := cache.New[string, []byte](cache.Options[string, []byte]{Capacity: 10_000})
//	c.Set("a", []byte("1"))
//	if v, ok := c.Get("a"); ok {
//	    _ = v // use value
//	}
//	c.Remove("a")
//
// With GetOrLoad (singleflight)
//
//	c := cache.New[string, string](cache.Options[string, string]{
//	    Capacity: 1024,
//	    Loader: func(ctx context.Context, k string) (string, error) {
//	        return "v:" + k, nil // e.g. fetch from DB
//	    },
//	})
//	v, err := c.GetOrLoad(context.Background(), "key")
//
// Using an alternative policy (2Q)
//
//	c := cache.New[string, string](cache.Options[string, string]{
//	    Capacity: 50_000,
//	    Policy:   twoq.New[string, string](0, 0), // A1in 25%, ghosts 50% per shard
//	})
package cache
