// Package singleflight coalesces concurrent loads of the same key.
package singleflight

import (
	"context"
	"errors"
	"sync"
)

// ErrLeaderPanicked is returned to callers that shared a load whose fn
// panicked. The panic itself propagates in the leader's goroutine.
var ErrLeaderPanicked = errors.New("singleflight: shared call panicked")

// Group runs at most one fn per key at a time. Keys are compared with ==,
// so two distinct keys never share a result even if they print alike.
//
// The first caller for a key is the leader and runs fn in its own
// goroutine. Later callers for the same key wait for the leader's result.
// A waiter whose ctx ends returns ctx.Err(); the leader keeps running, so
// fn should observe its own context if the work itself must stop.
//
// The zero Group is ready to use.
type Group[K comparable, V any] struct {
	mu sync.Mutex
	m  map[K]*call[V]
}

type call[V any] struct {
	done    chan struct{} // closed after val/err are set
	val     V
	err     error
	waiters int
}

// Do runs fn for key unless a call for key is already in flight, in which
// case it waits for that call. shared reports whether the result was
// handed to more than one caller.
func (g *Group[K, V]) Do(ctx context.Context, key K, fn func() (V, error)) (v V, err error, shared bool) {
	g.mu.Lock()
	if g.m == nil {
		g.m = make(map[K]*call[V])
	}
	if c, ok := g.m[key]; ok {
		c.waiters++
		g.mu.Unlock()

		select {
		case <-c.done:
			return c.val, c.err, true
		case <-ctx.Done():
			var zero V
			return zero, ctx.Err(), true
		}
	}

	c := &call[V]{done: make(chan struct{}), err: ErrLeaderPanicked}
	g.m[key] = c
	g.mu.Unlock()

	// Waiters must be released even if fn panics.
	defer func() {
		g.mu.Lock()
		delete(g.m, key)
		shared = c.waiters > 0
		g.mu.Unlock()
		close(c.done)
	}()

	c.val, c.err = fn()
	return c.val, c.err, false
}

// InFlight returns the number of keys currently being loaded.
func (g *Group[K, V]) InFlight() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.m)
}
