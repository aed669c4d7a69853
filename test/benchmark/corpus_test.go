// Package benchmark contains Go benchmarks for the index store, the search
// engine's sequential and parallel paths, and duplicate removal.
package benchmark

import (
	"math/rand/v2"
	"strings"
	"testing"

	"github.com/Adithya-Monish-Kumar-K/search-server/internal/engine"
	"github.com/Adithya-Monish-Kumar-K/search-server/internal/indexer/index"
	"github.com/Adithya-Monish-Kumar-K/search-server/pkg/config"
	"github.com/Adithya-Monish-Kumar-K/search-server/pkg/logger"
)

const alphabet = "abcdefghijklmnopqrstuvwxyz"

func randomWord(r *rand.Rand, maxLen int) string {
	n := 1 + r.IntN(maxLen)
	var b strings.Builder
	for range n {
		b.WriteByte(alphabet[r.IntN(len(alphabet))])
	}
	return b.String()
}

func dictionary(r *rand.Rand, size, maxLen int) []string {
	words := make([]string, size)
	for i := range words {
		words[i] = randomWord(r, maxLen)
	}
	return words
}

// text builds a space-separated string of n dictionary words. With
// minusProb > 0 some words get the exclusion marker.
func text(r *rand.Rand, dict []string, n int, minusProb float64) string {
	words := make([]string, n)
	for i := range words {
		w := dict[r.IntN(len(dict))]
		if r.Float64() < minusProb {
			w = "-" + w
		}
		words[i] = w
	}
	return strings.Join(words, " ")
}

type fixture struct {
	docs    []string
	queries []string
}

func newFixture(docCount, queryCount int) fixture {
	r := rand.New(rand.NewPCG(42, 1024))
	dict := dictionary(r, 1000, 10)
	f := fixture{
		docs:    make([]string, docCount),
		queries: make([]string, queryCount),
	}
	for i := range f.docs {
		f.docs[i] = text(r, dict, 70, 0)
	}
	for i := range f.queries {
		f.queries[i] = text(r, dict, 20, 0.1)
	}
	return f
}

func (f fixture) engine(b *testing.B) *engine.Engine {
	b.Helper()
	e, err := engine.New(config.DefaultSearch(), []string{"a", "the", "and"}, engine.WithLogger(logger.Discard()))
	if err != nil {
		b.Fatal(err)
	}
	for i, d := range f.docs {
		if err := e.AddDocument(i, d, index.StatusActual, []int{1, 2, 3}); err != nil {
			b.Fatal(err)
		}
	}
	return e
}
