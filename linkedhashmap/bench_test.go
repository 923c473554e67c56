package linkedhashmap

import (
	"container/list"
	"testing"

	genlist "github.com/bahlo/generic-list-go"

	"github.com/IvanBrykalov/slabcache/hasher"
)

// The workload matches the typical bounded-LRU use: insert a fresh key and
// drop the oldest entry once the map is full.

const benchCap = 1024

type payload [4]uint64

func benchmarkMap(b *testing.B, h hasher.Func[int]) {
	m := New[int, payload](Options[int]{Capacity: benchCap, Hasher: h})
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		m.Insert(i, payload{0x42, 0x42, 0x42, 0x42})
		if m.Len() >= benchCap {
			m.PopFront()
		}
	}
}

func BenchmarkMap_Runtime(b *testing.B) { benchmarkMap(b, nil) }
func BenchmarkMap_Maphash(b *testing.B) { benchmarkMap(b, hasher.Seeded[int]()) }
func BenchmarkMap_FNV(b *testing.B)     { benchmarkMap(b, hasher.FNV[int]()) }
func BenchmarkMap_XXHash(b *testing.B)  { benchmarkMap(b, hasher.XXHash[int]()) }

// Baselines: a pointer-linked list plus a map of elements.

type kvPair struct {
	k int
	v payload
}

func BenchmarkBaseline_ContainerList(b *testing.B) {
	l := list.New()
	idx := make(map[int]*list.Element, benchCap)
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		idx[i] = l.PushBack(kvPair{i, payload{0x42, 0x42, 0x42, 0x42}})
		if len(idx) >= benchCap {
			front := l.Front()
			l.Remove(front)
			delete(idx, front.Value.(kvPair).k)
		}
	}
}

func BenchmarkBaseline_GenericList(b *testing.B) {
	l := genlist.New[kvPair]()
	idx := make(map[int]*genlist.Element[kvPair], benchCap)
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		idx[i] = l.PushBack(kvPair{i, payload{0x42, 0x42, 0x42, 0x42}})
		if len(idx) >= benchCap {
			front := l.Front()
			l.Remove(front)
			delete(idx, front.Value.k)
		}
	}
}

// BenchmarkMap_Touch measures promotion of hot keys in a full map.
func BenchmarkMap_Touch(b *testing.B) {
	m := New[int, payload](Options[int]{Capacity: benchCap})
	for i := 0; i < benchCap; i++ {
		m.Insert(i, payload{})
	}
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		m.Touch(i & (benchCap - 1))
	}
}
