// Package hasher provides the hashing strategies a linkedhashmap.Map can use
// for its key index.
//
// A nil Func selects Go's built-in map hashing, which is seeded per process
// and is the default. The other strategies trade that for determinism
// (FNV, XXHash) or for an explicit per-instance seed (Seeded). The choice
// affects collision behaviour only; it never changes entry order.
package hasher

import (
	"errors"
	"fmt"
	"hash/maphash"

	"github.com/cespare/xxhash/v2"

	"github.com/IvanBrykalov/slabcache/internal/util"
)

// ErrUnknownHasher is returned by ByName for an unrecognised strategy.
var ErrUnknownHasher = errors.New("hasher: unknown strategy")

// Func hashes a key to 64 bits.
type Func[K comparable] func(K) uint64

// Strategy names accepted by ByName.
const (
	Runtime = "runtime"
	Maphash = "maphash"
	FNVName = "fnv"
	XXName  = "xxhash"
)

// ByName resolves a strategy name. "runtime" (or "") returns a nil Func.
func ByName[K comparable](name string) (Func[K], error) {
	switch name {
	case "", Runtime:
		return nil, nil
	case Maphash:
		return Seeded[K](), nil
	case FNVName:
		return FNV[K](), nil
	case XXName:
		return XXHash[K](), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownHasher, name)
	}
}

// Seeded hashes any comparable key with hash/maphash under a fresh random
// seed. Two Funcs from separate calls hash the same key differently.
func Seeded[K comparable]() Func[K] {
	seed := maphash.MakeSeed()
	return func(k K) uint64 { return maphash.Comparable(seed, k) }
}

const (
	fnvOffset64 = 1469598103934665603
	fnvPrime64  = 1099511628211
)

// FNV hashes keys with 64-bit FNV-1a. Keys must be supported by
// util.AppendKey (strings, integers, fixed byte arrays, fmt.Stringer).
func FNV[K comparable]() Func[K] {
	return func(k K) uint64 {
		var buf [64]byte
		h := uint64(fnvOffset64)
		for _, c := range util.AppendKey(buf[:0], k) {
			h ^= uint64(c)
			h *= fnvPrime64
		}
		return h
	}
}

// XXHash hashes keys with xxHash64. Key support matches FNV.
func XXHash[K comparable]() Func[K] {
	return func(k K) uint64 {
		if s, ok := any(k).(string); ok {
			return xxhash.Sum64String(s)
		}
		var buf [64]byte
		return xxhash.Sum64(util.AppendKey(buf[:0], k))
	}
}
