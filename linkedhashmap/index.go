package linkedhashmap

import (
	"maps"
	"slices"

	"github.com/IvanBrykalov/slabcache/hasher"
)

// index maps keys to node handles. It never looks at list links.
type index[K comparable] interface {
	get(k K) (int, bool)
	// upsert stores k -> push() and returns the handle it replaced, if any.
	// k is hashed before push runs, so a hasher panic leaves nothing behind.
	upsert(k K, push func() int) (old int, replaced bool)
	del(k K) (int, bool)
	len() int
	reset()
	reserve(additional int)
	shrink()
}

func newIndex[K comparable](capacity int, h hasher.Func[K]) index[K] {
	if h == nil {
		return &runtimeIndex[K]{m: make(map[K]int, capacity)}
	}
	return &hashedIndex[K]{hash: h, buckets: make(map[uint64][]entryRef[K], capacity)}
}

// runtimeIndex uses the built-in map and its per-process seed.
type runtimeIndex[K comparable] struct {
	m map[K]int
}

func (x *runtimeIndex[K]) get(k K) (int, bool) {
	h, ok := x.m[k]
	return h, ok
}

func (x *runtimeIndex[K]) upsert(k K, push func() int) (int, bool) {
	old, ok := x.m[k]
	x.m[k] = push()
	return old, ok
}

func (x *runtimeIndex[K]) del(k K) (int, bool) {
	h, ok := x.m[k]
	if ok {
		delete(x.m, k)
	}
	return h, ok
}

func (x *runtimeIndex[K]) len() int { return len(x.m) }
func (x *runtimeIndex[K]) reset()   { clear(x.m) }

// Go maps cannot be resized in place; growing or shrinking means rebuilding.
func (x *runtimeIndex[K]) reserve(additional int) {
	if additional <= 0 {
		return
	}
	m := make(map[K]int, len(x.m)+additional)
	maps.Copy(m, x.m)
	x.m = m
}

func (x *runtimeIndex[K]) shrink() {
	m := make(map[K]int, len(x.m))
	maps.Copy(m, x.m)
	x.m = m
}

// entryRef is one key in a hash bucket.
type entryRef[K comparable] struct {
	key    K
	handle int
}

// hashedIndex buckets keys by a caller-supplied hash and resolves
// collisions by key equality.
type hashedIndex[K comparable] struct {
	hash    hasher.Func[K]
	buckets map[uint64][]entryRef[K]
	n       int
}

func (x *hashedIndex[K]) get(k K) (int, bool) {
	for _, e := range x.buckets[x.hash(k)] {
		if e.key == k {
			return e.handle, true
		}
	}
	return 0, false
}

func (x *hashedIndex[K]) upsert(k K, push func() int) (int, bool) {
	sum := x.hash(k)
	b := x.buckets[sum]
	for i := range b {
		if b[i].key == k {
			old := b[i].handle
			b[i].handle = push()
			return old, true
		}
	}
	x.buckets[sum] = append(b, entryRef[K]{key: k, handle: push()})
	x.n++
	return 0, false
}

func (x *hashedIndex[K]) del(k K) (int, bool) {
	sum := x.hash(k)
	b := x.buckets[sum]
	for i := range b {
		if b[i].key != k {
			continue
		}
		h := b[i].handle
		if len(b) == 1 {
			delete(x.buckets, sum)
		} else {
			x.buckets[sum] = slices.Delete(b, i, i+1)
		}
		x.n--
		return h, true
	}
	return 0, false
}

func (x *hashedIndex[K]) len() int { return x.n }

func (x *hashedIndex[K]) reset() {
	clear(x.buckets)
	x.n = 0
}

func (x *hashedIndex[K]) reserve(additional int) {
	if additional <= 0 {
		return
	}
	m := make(map[uint64][]entryRef[K], len(x.buckets)+additional)
	maps.Copy(m, x.buckets)
	x.buckets = m
}

func (x *hashedIndex[K]) shrink() {
	m := make(map[uint64][]entryRef[K], len(x.buckets))
	for sum, b := range x.buckets {
		m[sum] = slices.Clip(b)
	}
	x.buckets = m
}
