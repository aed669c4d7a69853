// Package concurrent provides a sharded map keyed by integers. Each shard has
// its own mutex, so writers to keys in different shards never contend.
package concurrent

import (
	"sync"
)

// Integer is the set of key types the map can shard by modulo.
type Integer interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64
}

type shard[K Integer, V any] struct {
	mu sync.Mutex
	m  map[K]V
}

// Map is a fixed-size array of independently locked shards. The shard count
// never changes after construction.
type Map[K Integer, V any] struct {
	shards []shard[K, V]
}

// NewMap creates a map with shardCount shards (at least one).
func NewMap[K Integer, V any](shardCount int) *Map[K, V] {
	if shardCount < 1 {
		shardCount = 1
	}
	shards := make([]shard[K, V], shardCount)
	for i := range shards {
		shards[i].m = make(map[K]V)
	}
	return &Map[K, V]{shards: shards}
}

func (c *Map[K, V]) ShardCount() int {
	return len(c.shards)
}

func (c *Map[K, V]) shardFor(key K) *shard[K, V] {
	var idx uint64
	if key < 0 {
		idx = uint64(-int64(key))
	} else {
		idx = uint64(key)
	}
	return &c.shards[idx%uint64(len(c.shards))]
}

// Access is a guarded handle on one slot. The shard stays locked until
// Release is called.
type Access[K Integer, V any] struct {
	s        *shard[K, V]
	key      K
	released bool
}

// Access locks the shard owning key and returns a handle on its slot. The
// slot reads as the zero value until set.
func (c *Map[K, V]) Access(key K) *Access[K, V] {
	s := c.shardFor(key)
	s.mu.Lock()
	return &Access[K, V]{s: s, key: key}
}

func (a *Access[K, V]) Value() V {
	return a.s.m[a.key]
}

func (a *Access[K, V]) Set(v V) {
	a.s.m[a.key] = v
}

// Release unlocks the shard. Calling it more than once is a no-op.
func (a *Access[K, V]) Release() {
	if a.released {
		return
	}
	a.released = true
	a.s.mu.Unlock()
}

// Update applies fn to the slot for key while holding its shard lock. The
// lock is released on every exit path, including a panic in fn.
func (c *Map[K, V]) Update(key K, fn func(v *V)) {
	a := c.Access(key)
	defer a.Release()
	v := a.Value()
	fn(&v)
	a.Set(v)
}

// Erase removes key from its shard.
func (c *Map[K, V]) Erase(key K) {
	s := c.shardFor(key)
	s.mu.Lock()
	delete(s.m, key)
	s.mu.Unlock()
}

// BuildOrdinaryMap copies every shard, each under its own lock, into one
// plain map. It is meant to run after all writers have finished.
func (c *Map[K, V]) BuildOrdinaryMap() map[K]V {
	size := 0
	for i := range c.shards {
		s := &c.shards[i]
		s.mu.Lock()
		size += len(s.m)
		s.mu.Unlock()
	}
	out := make(map[K]V, size)
	for i := range c.shards {
		s := &c.shards[i]
		s.mu.Lock()
		for k, v := range s.m {
			out[k] = v
		}
		s.mu.Unlock()
	}
	return out
}
