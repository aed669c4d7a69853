package execution

import (
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
)

func policies() []Policy {
	return []Policy{Sequential, Parallel(0), Parallel(3)}
}

func TestForEachVisitsEveryIndex(t *testing.T) {
	for _, p := range policies() {
		t.Run(p.String(), func(t *testing.T) {
			var sum atomic.Int64
			p.ForEach(100, func(i int) { sum.Add(int64(i)) })
			assert.Equal(t, int64(4950), sum.Load())
		})
	}
}

func TestMapPreservesOrder(t *testing.T) {
	in := []string{"a", "bb", "ccc", "dddd"}
	for _, p := range policies() {
		got := Map(p, in, func(s string) int { return len(s) })
		assert.Equal(t, []int{1, 2, 3, 4}, got, p.String())
	}
}

func TestAnyOf(t *testing.T) {
	in := []int{1, 3, 5, 8}
	for _, p := range policies() {
		assert.True(t, AnyOf(p, in, func(v int) bool { return v%2 == 0 }), p.String())
		assert.False(t, AnyOf(p, in, func(v int) bool { return v > 10 }), p.String())
		assert.False(t, AnyOf(p, []int{}, func(int) bool { return true }), p.String())
	}
}

func TestForEachGeneric(t *testing.T) {
	var n atomic.Int32
	ForEach(Parallel(2), []int{1, 2, 3}, func(v int) { n.Add(int32(v)) })
	assert.Equal(t, int32(6), n.Load())
}

func TestName(t *testing.T) {
	assert.Equal(t, "sequential", Name(Sequential))
	assert.Equal(t, "parallel", Name(Parallel(4)))
	assert.Equal(t, "parallel(4)", Parallel(4).String())
}
