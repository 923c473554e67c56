// Package linkedlist implements a doubly linked list whose nodes live in a
// slab and link to each other by slot index instead of by pointer.
//
// A NodeSlab owns node storage; a List owns only the head/tail handles and
// the meaning of each node's prev/next fields. Several lists may share one
// NodeSlab as long as every handle is passed back to the list that issued it.
//
// Handles returned by Push are stable until the node is removed. After that
// the slot may be reused for an unrelated node, so callers must not keep a
// handle past Remove/PopFront/PopLast. Stale handles to vacant slots are
// reported as misses rather than corrupting the list.
package linkedlist

import (
	"fmt"

	"github.com/IvanBrykalov/slabcache/internal/slab"
)

// none marks an absent link.
const none = -1

// Node is a list element stored in a NodeSlab.
type Node[T any] struct {
	Value T
	prev  int
	next  int
}

// NodeSlab is the arena backing one or more Lists.
// The zero value is ready to use.
type NodeSlab[T any] struct {
	slots slab.Slab[Node[T]]
}

// NewNodeSlab returns an arena with room for capacity nodes.
func NewNodeSlab[T any](capacity int) *NodeSlab[T] {
	return &NodeSlab[T]{slots: *slab.New[Node[T]](capacity)}
}

// Len returns the number of live nodes.
func (ns *NodeSlab[T]) Len() int { return ns.slots.Len() }

// Cap returns the node capacity before the arena grows.
func (ns *NodeSlab[T]) Cap() int { return ns.slots.Cap() }

// Contains reports whether i is a live node.
func (ns *NodeSlab[T]) Contains(i int) bool { return ns.slots.Contains(i) }

// Get returns the value stored at i.
func (ns *NodeSlab[T]) Get(i int) (T, bool) {
	n, ok := ns.slots.Get(i)
	return n.Value, ok
}

// GetMut returns a pointer to the value stored at i, or nil if i is vacant.
// The pointer must not be used after the next Push on this arena.
func (ns *NodeSlab[T]) GetMut(i int) *T {
	n := ns.slots.GetMut(i)
	if n == nil {
		return nil
	}
	return &n.Value
}

// Reserve grows the arena so that additional nodes fit without reallocating.
func (ns *NodeSlab[T]) Reserve(additional int) { ns.slots.Reserve(additional) }

// ShrinkToFit releases unused arena capacity. Live handles stay valid.
func (ns *NodeSlab[T]) ShrinkToFit() { ns.slots.ShrinkToFit() }

// Clear drops every node. Lists built on this arena must be Reset as well.
func (ns *NodeSlab[T]) Clear() { ns.slots.Clear() }

// linked returns the node a live link points at. A link to a vacant slot
// means the list structure is already corrupt, so it panics.
func (ns *NodeSlab[T]) linked(i int) *Node[T] {
	n := ns.slots.GetMut(i)
	if n == nil {
		panic(fmt.Sprintf("linkedlist: link to vacant slot %d", i))
	}
	return n
}

// List tracks the head (oldest) and tail (newest) of a chain of nodes in a
// NodeSlab. The zero value is an empty list. Not safe for concurrent use.
type List[T any] struct {
	// start and end are only meaningful while len > 0.
	start int
	end   int
	len   int
}

// New returns an empty list.
func New[T any]() List[T] { return List[T]{start: none, end: none} }

// Len returns the number of nodes on the list.
func (l *List[T]) Len() int { return l.len }

// Front returns the handle of the head node.
func (l *List[T]) Front() (int, bool) {
	if l.len == 0 {
		return none, false
	}
	return l.start, true
}

// Back returns the handle of the tail node.
func (l *List[T]) Back() (int, bool) {
	if l.len == 0 {
		return none, false
	}
	return l.end, true
}

// Reset forgets every node without touching the arena.
// Use it together with NodeSlab.Clear.
func (l *List[T]) Reset() { *l = New[T]() }

// Push appends v at the tail and returns its handle.
func (l *List[T]) Push(ns *NodeSlab[T], v T) int {
	if l.len == 0 {
		i := ns.slots.Insert(Node[T]{Value: v, prev: none, next: none})
		l.start, l.end = i, i
		l.len = 1
		return i
	}

	tail := l.end
	i := ns.slots.Insert(Node[T]{Value: v, prev: tail, next: none})
	t := ns.linked(tail)
	if t.next != none {
		panic(fmt.Sprintf("linkedlist: tail %d has successor %d", tail, t.next))
	}
	t.next = i
	l.end = i
	l.len++
	return i
}

// PopFront removes the head node and returns its value.
func (l *List[T]) PopFront(ns *NodeSlab[T]) (T, bool) {
	if l.len == 0 {
		var zero T
		return zero, false
	}
	i := l.start
	if !ns.slots.Contains(i) {
		panic(fmt.Sprintf("linkedlist: head %d is vacant", i))
	}
	n := ns.slots.Remove(i)
	if n.prev != none {
		panic(fmt.Sprintf("linkedlist: head %d has predecessor %d", i, n.prev))
	}

	l.len--
	if l.len == 0 {
		if n.next != none || l.end != i {
			panic(fmt.Sprintf("linkedlist: sole node %d is not the tail", i))
		}
		l.start, l.end = none, none
		return n.Value, true
	}
	l.start = n.next
	ns.linked(n.next).prev = none
	return n.Value, true
}

// PopLast removes the tail node and returns its value.
func (l *List[T]) PopLast(ns *NodeSlab[T]) (T, bool) {
	if l.len == 0 {
		var zero T
		return zero, false
	}
	i := l.end
	if !ns.slots.Contains(i) {
		panic(fmt.Sprintf("linkedlist: tail %d is vacant", i))
	}
	n := ns.slots.Remove(i)
	if n.next != none {
		panic(fmt.Sprintf("linkedlist: tail %d has successor %d", i, n.next))
	}

	l.len--
	if l.len == 0 {
		if n.prev != none || l.start != i {
			panic(fmt.Sprintf("linkedlist: sole node %d is not the head", i))
		}
		l.start, l.end = none, none
		return n.Value, true
	}
	l.end = n.prev
	ns.linked(n.prev).next = none
	return n.Value, true
}

// Touch moves node i to the tail and returns a pointer to its value.
// A node that is already the tail is left where it is. It returns nil if
// i is not a live node.
func (l *List[T]) Touch(ns *NodeSlab[T], i int) *T {
	n := ns.slots.GetMut(i)
	if n == nil {
		return nil
	}
	if n.next == none {
		if l.end != i {
			panic(fmt.Sprintf("linkedlist: node %d has no successor but tail is %d", i, l.end))
		}
		return &n.Value
	}

	prev, next := n.prev, n.next
	ns.linked(next).prev = prev
	if prev != none {
		ns.linked(prev).next = next
	} else {
		l.start = next
	}

	tail := l.end
	ns.linked(tail).next = i
	n.prev = tail
	n.next = none
	l.end = i
	return &n.Value
}

// Remove unlinks node i and returns its value. Removing a vacant handle
// reports false, so a second Remove of the same handle is harmless as long
// as the slot has not been reused.
func (l *List[T]) Remove(ns *NodeSlab[T], i int) (T, bool) {
	if !ns.slots.Contains(i) {
		var zero T
		return zero, false
	}
	n := ns.slots.Remove(i)

	if n.prev != none {
		ns.linked(n.prev).next = n.next
	} else {
		l.start = n.next
	}
	if n.next != none {
		ns.linked(n.next).prev = n.prev
	} else {
		l.end = n.prev
	}
	l.len--
	return n.Value, true
}
