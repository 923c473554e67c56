package util

import (
	"sync/atomic"
	"unsafe"
)

// CacheLineSize is a reasonable default for most modern CPUs.
const CacheLineSize = 64

// CacheLinePad separates hot fields into distinct cache lines.
type CacheLinePad struct{ _ [CacheLineSize]byte }

// Counter is an atomic counter padded to one cache line so that per-shard
// hit/miss/evict counters updated by different goroutines do not share lines.
type Counter struct {
	atomic.Uint64
	_ [CacheLineSize - 8]byte
}

// Compile-time size check: exactly one cache line.
var _ [CacheLineSize - int(unsafe.Sizeof(Counter{}))]byte
