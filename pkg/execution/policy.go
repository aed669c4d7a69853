// Package execution selects between sequential and data-parallel strategies
// for per-element work. Parallel work is fan-out/fan-in: every call returns
// only after all elements were processed.
package execution

import (
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// Policy runs fn once for every index in [0, n).
type Policy interface {
	ForEach(n int, fn func(i int))
	Parallel() bool
	String() string
}

type sequential struct{}

// Sequential runs every element on the calling goroutine, in order.
var Sequential Policy = sequential{}

func (sequential) ForEach(n int, fn func(i int)) {
	for i := 0; i < n; i++ {
		fn(i)
	}
}

func (sequential) Parallel() bool { return false }

func (sequential) String() string { return "sequential" }

type parallel struct {
	workers int
}

// Parallel fans elements out to at most workers goroutines. workers <= 0
// means GOMAXPROCS.
func Parallel(workers int) Policy {
	return parallel{workers: workers}
}

func (p parallel) limit() int {
	if p.workers > 0 {
		return p.workers
	}
	return runtime.GOMAXPROCS(0)
}

func (p parallel) ForEach(n int, fn func(i int)) {
	if n <= 1 {
		sequential{}.ForEach(n, fn)
		return
	}
	var g errgroup.Group
	g.SetLimit(p.limit())
	for i := 0; i < n; i++ {
		g.Go(func() error {
			fn(i)
			return nil
		})
	}
	_ = g.Wait()
}

func (parallel) Parallel() bool { return true }

func (p parallel) String() string {
	return fmt.Sprintf("parallel(%d)", p.limit())
}

// Name returns the label used for logs and metrics.
func Name(p Policy) string {
	if p.Parallel() {
		return "parallel"
	}
	return "sequential"
}

// ForEach calls fn for every item.
func ForEach[T any](p Policy, items []T, fn func(T)) {
	p.ForEach(len(items), func(i int) {
		fn(items[i])
	})
}

// Map returns fn applied to every item, in input order.
func Map[T, R any](p Policy, items []T, fn func(T) R) []R {
	out := make([]R, len(items))
	p.ForEach(len(items), func(i int) {
		out[i] = fn(items[i])
	})
	return out
}

// AnyOf reports whether pred holds for at least one item.
func AnyOf[T any](p Policy, items []T, pred func(T) bool) bool {
	hits := Map(p, items, pred)
	for _, hit := range hits {
		if hit {
			return true
		}
	}
	return false
}
