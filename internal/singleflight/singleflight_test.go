package singleflight

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"golang.org/x/sync/errgroup"
)

func waiters[K comparable, V any](g *Group[K, V], k K) int {
	g.mu.Lock()
	defer g.mu.Unlock()
	if c, ok := g.m[k]; ok {
		return c.waiters
	}
	return 0
}

func TestGroup_CoalescesSameKey(t *testing.T) {
	t.Parallel()

	var g Group[string, int]
	var calls atomic.Int64
	release := make(chan struct{})

	const N = 16
	var eg errgroup.Group
	var sharedN atomic.Int64
	for i := 0; i < N; i++ {
		eg.Go(func() error {
			v, err, shared := g.Do(context.Background(), "k", func() (int, error) {
				calls.Add(1)
				<-release
				return 42, nil
			})
			if shared {
				sharedN.Add(1)
			}
			if err != nil || v != 42 {
				return errors.New("unexpected result")
			}
			return nil
		})
	}
	// Let the followers pile up behind the leader.
	for waiters(&g, "k") < N-1 {
		time.Sleep(time.Millisecond)
	}
	if g.InFlight() != 1 {
		t.Fatalf("InFlight = %d, want 1", g.InFlight())
	}
	close(release)

	if err := eg.Wait(); err != nil {
		t.Fatal(err)
	}
	if calls.Load() != 1 {
		t.Fatalf("fn ran %d times, want 1", calls.Load())
	}
	if sharedN.Load() != N {
		t.Fatalf("shared reported by %d callers, want %d", sharedN.Load(), N)
	}
	if g.InFlight() != 0 {
		t.Fatalf("InFlight = %d after completion", g.InFlight())
	}
}

type label struct{ tenant, id string }

func (l label) String() string { return l.id }

// Keys that print the same but compare unequal run separately.
func TestGroup_DistinctKeysDoNotShare(t *testing.T) {
	t.Parallel()

	var g Group[label, string]
	entered := make(chan struct{}, 2)
	release := make(chan struct{})
	load := func(k label) func() (string, error) {
		return func() (string, error) {
			entered <- struct{}{}
			<-release
			return k.tenant + "/" + k.id, nil
		}
	}

	a, b := label{"a", "1"}, label{"b", "1"}
	var eg errgroup.Group
	var gotA, gotB string
	eg.Go(func() (err error) { gotA, err, _ = g.Do(context.Background(), a, load(a)); return })
	eg.Go(func() (err error) { gotB, err, _ = g.Do(context.Background(), b, load(b)); return })

	for i := 0; i < 2; i++ {
		select {
		case <-entered:
		case <-time.After(2 * time.Second):
			t.Fatal("both keys must load concurrently")
		}
	}
	close(release)
	if err := eg.Wait(); err != nil {
		t.Fatal(err)
	}
	if gotA != "a/1" || gotB != "b/1" {
		t.Fatalf("got %q and %q, want a/1 and b/1", gotA, gotB)
	}
}

func TestGroup_WaiterContextEnds(t *testing.T) {
	t.Parallel()

	var g Group[int, int]
	started := make(chan struct{})
	release := make(chan struct{})
	leader := make(chan int, 1)
	go func() {
		v, _, _ := g.Do(context.Background(), 1, func() (int, error) {
			close(started)
			<-release
			return 7, nil
		})
		leader <- v
	}()
	<-started

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err, shared := g.Do(ctx, 1, func() (int, error) { return 0, nil }); !errors.Is(err, context.Canceled) || !shared {
		t.Fatalf("waiter err = %v shared = %v, want context.Canceled, true", err, shared)
	}

	close(release)
	if v := <-leader; v != 7 {
		t.Fatalf("leader got %d, want 7", v)
	}
}

func TestGroup_PanicReleasesWaiters(t *testing.T) {
	t.Parallel()

	var g Group[string, int]
	started := make(chan struct{})
	release := make(chan struct{})
	go func() {
		defer func() { _ = recover() }()
		g.Do(context.Background(), "k", func() (int, error) {
			close(started)
			<-release
			panic("boom")
		})
	}()
	<-started

	waiter := make(chan error, 1)
	go func() {
		_, err, _ := g.Do(context.Background(), "k", func() (int, error) { return 1, nil })
		waiter <- err
	}()
	for waiters(&g, "k") == 0 {
		time.Sleep(time.Millisecond)
	}
	close(release)

	select {
	case err := <-waiter:
		if !errors.Is(err, ErrLeaderPanicked) {
			t.Fatalf("waiter err = %v, want ErrLeaderPanicked", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("waiter still blocked after leader panic")
	}
}
