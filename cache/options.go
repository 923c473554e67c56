package cache

import (
	"context"
	"log/slog"

	"github.com/IvanBrykalov/slabcache/hasher"
	"github.com/IvanBrykalov/slabcache/policy"
)

// EvictReason explains why an entry was removed.
type EvictReason int

const (
	// EvictCapacity: removed by the active policy to get back under Capacity.
	EvictCapacity EvictReason = iota
	// EvictPurge: removed by Purge.
	EvictPurge
)

// String returns a stable label for the reason.
func (r EvictReason) String() string {
	switch r {
	case EvictPurge:
		return "purge"
	default:
		return "capacity"
	}
}

// Metrics exposes cache-level observability hooks.
// A NoopMetrics implementation is provided and used by default.
type Metrics interface {
	Hit()
	Miss()
	Evict(reason EvictReason)
	Size(entries int)
}

// Options configures the cache behavior. Zero values are safe;
// sane defaults are applied in New():
//   - nil Policy   => LRU
//   - Shards <= 0  => auto (rounded up to power of two)
//   - nil Metrics  => NoopMetrics
//   - nil Logger   => discard
type Options[K comparable, V any] struct {
	// Capacity is the entry count limit. Must be > 0.
	Capacity int

	// Shards defines the number of shards. If 0, an automatic value is chosen
	// (≈ 2*GOMAXPROCS) and rounded to the next power of two. It is lowered
	// when it would exceed Capacity.
	Shards int

	// Policy is a pluggable eviction policy (LRU/MRU/2Q); nil => LRU.
	Policy policy.Policy[K, V]

	// Hasher picks shards and backs each shard's key index.
	// nil => a randomly seeded maphash for sharding and the built-in map
	// for the index.
	Hasher hasher.Func[K]

	// Loader fetches a value on cache miss. Used by GetOrLoad.
	Loader func(ctx context.Context, k K) (V, error)

	// OnEvict is called on eviction under the shard lock; keep callbacks lightweight.
	OnEvict func(k K, v V, reason EvictReason)
	Metrics Metrics

	// Logger receives debug records for evictions and failed loads.
	Logger *slog.Logger
}
