package mru

import (
	"testing"

	"github.com/IvanBrykalov/slabcache/linkedhashmap"
	"github.com/IvanBrykalov/slabcache/policy"
	"github.com/IvanBrykalov/slabcache/policy/lru"
)

// With a full store, inserting a new key evicts the previous MRU entry and
// keeps the new one.
func TestMRU_EvictsPreviousMostRecent(t *testing.T) {
	t.Parallel()

	s := New[string, int]().New(linkedhashmap.Options[string]{Capacity: 2})
	s.Set("a", 1)
	s.Set("b", 2)
	s.Get("a") // a is now MRU
	s.Set("c", 3)

	k, _, ok := s.Evict()
	if !ok || k != "a" {
		t.Fatalf("Evict = %q, %v; want a", k, ok)
	}
	if _, ok := s.Peek("c"); !ok {
		t.Fatal("freshly inserted c must stay resident")
	}
	if _, ok := s.Peek("b"); !ok {
		t.Fatal("b must stay resident")
	}
}

func TestMRU_SingleEntry(t *testing.T) {
	t.Parallel()

	s := New[string, int]().New(linkedhashmap.Options[string]{})
	s.Set("only", 1)
	k, v, ok := s.Evict()
	if !ok || k != "only" || v != 1 {
		t.Fatalf("Evict = %q:%d, %v", k, v, ok)
	}
	if _, _, ok := s.Evict(); ok {
		t.Fatal("Evict on empty store must miss")
	}
}

// On a cyclic scan larger than the cache LRU never hits; MRU keeps part of
// the cycle resident.
func TestMRU_CyclicScanBeatsLRU(t *testing.T) {
	t.Parallel()

	scan := func(s policy.Store[int, int]) (hits int) {
		const capacity = 4
		for round := 0; round < 3; round++ {
			for k := 0; k < 8; k++ {
				if _, ok := s.Get(k); ok {
					hits++
					continue
				}
				s.Set(k, k)
				if s.Len() > capacity {
					s.Evict()
				}
			}
		}
		return hits
	}

	opt := linkedhashmap.Options[int]{Capacity: 4}
	mruHits := scan(New[int, int]().New(opt))
	lruHits := scan(lru.New[int, int]().New(opt))
	if lruHits != 0 {
		t.Fatalf("LRU hits on cyclic scan = %d, want 0", lruHits)
	}
	if mruHits == 0 {
		t.Fatal("MRU must hit on a cyclic scan")
	}
}
