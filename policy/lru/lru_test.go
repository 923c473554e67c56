package lru

import (
	"testing"

	"github.com/IvanBrykalov/slabcache/linkedhashmap"
	"github.com/IvanBrykalov/slabcache/policy"
)

func newStore() policy.Store[string, int] {
	return New[string, int]().New(linkedhashmap.Options[string]{Capacity: 4})
}

// Evict must return entries least-recently-used first.
func TestLRU_EvictOrder(t *testing.T) {
	t.Parallel()

	s := newStore()
	s.Set("a", 1)
	s.Set("b", 2)
	s.Set("c", 3)

	if _, ok := s.Get("a"); !ok { // a -> MRU
		t.Fatal("expect hit for a")
	}
	for _, want := range []string{"b", "c", "a"} {
		k, _, ok := s.Evict()
		if !ok || k != want {
			t.Fatalf("Evict = %q, %v; want %q", k, ok, want)
		}
	}
	if _, _, ok := s.Evict(); ok {
		t.Fatal("Evict on empty store must miss")
	}
}

// Peek must not change recency.
func TestLRU_PeekDoesNotPromote(t *testing.T) {
	t.Parallel()

	s := newStore()
	s.Set("a", 1)
	s.Set("b", 2)
	if v, ok := s.Peek("a"); !ok || v != 1 {
		t.Fatalf("Peek a = %d, %v", v, ok)
	}
	if k, _, _ := s.Evict(); k != "a" {
		t.Fatalf("Evict after Peek = %q, want a", k)
	}
}

// Set on an existing key updates the value and counts as a use.
func TestLRU_SetUpdatePromotes(t *testing.T) {
	t.Parallel()

	s := newStore()
	s.Set("a", 1)
	s.Set("b", 2)
	if replaced := s.Set("a", 10); !replaced {
		t.Fatal("Set on resident key must report replaced")
	}
	if s.Len() != 2 {
		t.Fatalf("Len = %d, want 2", s.Len())
	}
	k, v, _ := s.Evict()
	if k != "b" {
		t.Fatalf("Evict = %q, want b", k)
	}
	if k, v, _ = s.Evict(); k != "a" || v != 10 {
		t.Fatalf("Evict = %q:%d, want a:10", k, v)
	}
}

func TestLRU_RemoveAndClear(t *testing.T) {
	t.Parallel()

	s := newStore()
	s.Set("a", 1)
	s.Set("b", 2)
	if v, ok := s.Remove("a"); !ok || v != 1 {
		t.Fatalf("Remove a = %d, %v", v, ok)
	}
	if _, ok := s.Remove("a"); ok {
		t.Fatal("second Remove must miss")
	}
	s.Clear()
	if s.Len() != 0 {
		t.Fatalf("Len after Clear = %d", s.Len())
	}
}
