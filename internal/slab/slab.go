// Package slab implements index-addressed storage with slot reuse.
//
// A Slab hands out integer handles for stored values. Freed slots are kept
// on an intrusive free list and reused by later inserts, so a handle is only
// meaningful until the value behind it is removed.
package slab

import (
	"fmt"
	"slices"
)

// slot is either occupied (holds val) or vacant (links to the next free slot).
type slot[T any] struct {
	val      T
	nextFree int
	occupied bool
}

// Slab is a growable arena of T values addressed by int handles.
// The zero value is an empty slab ready to use. Not safe for concurrent use.
type Slab[T any] struct {
	slots []slot[T]
	// free is the most recently vacated slot, or len(slots) if none.
	free int
	len  int
}

// New returns a slab with room for capacity values before it grows.
func New[T any](capacity int) *Slab[T] {
	s := &Slab[T]{}
	if capacity > 0 {
		s.slots = make([]slot[T], 0, capacity)
	}
	return s
}

// Len returns the number of occupied slots.
func (s *Slab[T]) Len() int { return s.len }

// Cap returns the number of slots the slab can hold without reallocating.
func (s *Slab[T]) Cap() int { return cap(s.slots) }

// Insert stores v and returns its handle. A vacant slot is reused when one
// exists; otherwise storage is appended (amortized O(1)).
func (s *Slab[T]) Insert(v T) int {
	s.len++
	if s.free == len(s.slots) {
		s.slots = append(s.slots, slot[T]{val: v, occupied: true})
		s.free = len(s.slots)
		return len(s.slots) - 1
	}
	i := s.free
	sl := &s.slots[i]
	s.free = sl.nextFree
	sl.val = v
	sl.nextFree = 0
	sl.occupied = true
	return i
}

// Contains reports whether i refers to an occupied slot.
func (s *Slab[T]) Contains(i int) bool {
	return i >= 0 && i < len(s.slots) && s.slots[i].occupied
}

// Get returns the value at i. Vacant or out-of-range handles report false.
func (s *Slab[T]) Get(i int) (T, bool) {
	if !s.Contains(i) {
		var zero T
		return zero, false
	}
	return s.slots[i].val, true
}

// GetMut returns a pointer to the value at i, or nil if i is vacant.
// The pointer is invalidated by the next Insert, Reserve or ShrinkToFit.
func (s *Slab[T]) GetMut(i int) *T {
	if !s.Contains(i) {
		return nil
	}
	return &s.slots[i].val
}

// Remove frees slot i and returns its value.
// It panics if i is not occupied; callers check Contains first.
func (s *Slab[T]) Remove(i int) T {
	if !s.Contains(i) {
		panic(fmt.Sprintf("slab: remove of vacant slot %d", i))
	}
	sl := &s.slots[i]
	v := sl.val
	var zero T
	sl.val = zero // drop the reference for the GC
	sl.occupied = false
	sl.nextFree = s.free
	s.free = i
	s.len--
	return v
}

// Reserve makes room for at least additional more values without growing.
func (s *Slab[T]) Reserve(additional int) {
	vacant := len(s.slots) - s.len
	if need := additional - vacant; need > 0 {
		s.slots = slices.Grow(s.slots, need)
	}
}

// ShrinkToFit drops trailing vacant slots and releases spare capacity.
// Handles of occupied slots stay valid.
func (s *Slab[T]) ShrinkToFit() {
	n := len(s.slots)
	for n > 0 && !s.slots[n-1].occupied {
		n--
	}
	if cap(s.slots) > n {
		s.slots = slices.Clone(s.slots[:n])
	} else {
		s.slots = s.slots[:n]
	}

	// Rebuild the free list from the remaining holes.
	s.free = n
	for i := n - 1; i >= 0; i-- {
		if !s.slots[i].occupied {
			s.slots[i].nextFree = s.free
			s.free = i
		}
	}
}

// Clear removes every value but keeps the allocated capacity.
func (s *Slab[T]) Clear() {
	clear(s.slots)
	s.slots = s.slots[:0]
	s.free = 0
	s.len = 0
}
