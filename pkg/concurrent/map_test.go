package concurrent

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMapAccessDefaultsToZero(t *testing.T) {
	m := NewMap[int, float64](4)
	a := m.Access(7)
	assert.Equal(t, 0.0, a.Value())
	a.Set(1.5)
	a.Release()
	a.Release()

	assert.Equal(t, map[int]float64{7: 1.5}, m.BuildOrdinaryMap())
}

func TestMapShardCountClamped(t *testing.T) {
	assert.Equal(t, 1, NewMap[int, int](0).ShardCount())
	assert.Equal(t, 100, NewMap[int, int](100).ShardCount())
}

func TestMapNegativeKeys(t *testing.T) {
	m := NewMap[int64, int](3)
	m.Update(-4, func(v *int) { *v += 2 })
	m.Update(-4, func(v *int) { *v += 3 })
	assert.Equal(t, map[int64]int{-4: 5}, m.BuildOrdinaryMap())
}

func TestMapErase(t *testing.T) {
	m := NewMap[int, int](2)
	m.Update(1, func(v *int) { *v = 10 })
	m.Update(2, func(v *int) { *v = 20 })
	m.Erase(1)
	m.Erase(99)
	assert.Equal(t, map[int]int{2: 20}, m.BuildOrdinaryMap())
}

func TestMapUpdateReleasesOnPanic(t *testing.T) {
	m := NewMap[int, int](1)
	require.Panics(t, func() {
		m.Update(5, func(v *int) { panic("boom") })
	})
	// Would deadlock if the shard were still held.
	m.Update(5, func(v *int) { *v++ })
	assert.Equal(t, map[int]int{5: 1}, m.BuildOrdinaryMap())
}

func TestMapConcurrentIncrements(t *testing.T) {
	const (
		workers = 16
		perKey  = 200
		keys    = 50
	)
	m := NewMap[int, float64](7)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < perKey; i++ {
				for k := 0; k < keys; k++ {
					m.Update(k, func(v *float64) { *v += 1 })
				}
			}
		}()
	}
	wg.Wait()

	got := m.BuildOrdinaryMap()
	require.Len(t, got, keys)
	for k := 0; k < keys; k++ {
		assert.Equal(t, float64(workers*perKey), got[k], "key %d", k)
	}
}
