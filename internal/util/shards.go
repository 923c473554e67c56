package util

import (
	"math/bits"
	"runtime"
)

// maxShards caps the automatic shard count.
const maxShards = 256

// NextPow2 returns the smallest power of two >= x (1 for x <= 1).
// Values above 1<<63 are clamped to 1<<63.
func NextPow2(x uint64) uint64 {
	if x <= 1 {
		return 1
	}
	n := bits.Len64(x - 1)
	if n >= 64 {
		return 1 << 63
	}
	return 1 << n
}

// ShardCount normalises a requested shard count to a power of two.
// n <= 0 selects nextPow2(2*GOMAXPROCS) clamped to [1..256]. Shards never
// outnumber capacity, so every shard can hold at least one entry.
func ShardCount(n, capacity int) int {
	if n <= 0 {
		n = int(NextPow2(uint64(2 * runtime.GOMAXPROCS(0))))
		if n > maxShards {
			n = maxShards
		}
	} else {
		n = int(NextPow2(uint64(n)))
	}
	for n > 1 && n > capacity {
		n >>= 1
	}
	return n
}

// ShardIndex maps a 64-bit hash onto one of shards buckets.
// shards must be a power of two.
func ShardIndex(hash uint64, shards int) int {
	return int(hash & uint64(shards-1))
}
