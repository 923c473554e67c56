package cache

import (
	"strings"
	"testing"
)

// Fuzz basic Set/Get/Remove semantics under arbitrary string inputs.
// Key/value lengths are capped to keep memory bounded while fuzzing.
func FuzzCache_SetGetRemove(f *testing.F) {
	f.Add("", "")
	f.Add("a", "1")
	f.Add("αβγ", "δ")
	f.Add("emoji🙂", "🙂🙂")
	f.Add("long", strings.Repeat("x", 1024))

	f.Fuzz(func(t *testing.T, k, v string) {
		const limit = 1 << 12
		if len(k) > limit {
			k = k[:limit]
		}
		if len(v) > limit {
			v = v[:limit]
		}

		c := New[string, string](Options[string, string]{Capacity: 16})
		t.Cleanup(func() { _ = c.Close() })

		c.Set(k, v)
		got, ok := c.Get(k)
		if !ok || got != v {
			t.Fatalf("after Set/Get: want %q, got %q ok=%v", v, got, ok)
		}

		if ok := c.Add(k, "other"); ok {
			t.Fatalf("Add duplicate returned true")
		}
		if got2, ok := c.Peek(k); !ok || got2 != v {
			t.Fatalf("after duplicate Add: want %q, got %q ok=%v", v, got2, ok)
		}

		if !c.Remove(k) {
			t.Fatalf("Remove must return true")
		}
		if _, ok := c.Get(k); ok {
			t.Fatalf("key must be absent after Remove")
		}
		if ok := c.Add(k, v); !ok {
			t.Fatalf("Add after Remove must return true")
		}
		if c.Len() != 1 || c.Stats().Entries != 1 {
			t.Fatalf("Len = %d, Stats.Entries = %d; want 1", c.Len(), c.Stats().Entries)
		}
	})
}
