package benchmark

import (
	"context"
	"testing"

	"github.com/Adithya-Monish-Kumar-K/search-server/internal/batch"
	"github.com/Adithya-Monish-Kumar-K/search-server/internal/indexer/dedup"
	"github.com/Adithya-Monish-Kumar-K/search-server/internal/searcher/executor"
	"github.com/Adithya-Monish-Kumar-K/search-server/pkg/execution"
)

// BenchmarkFindTopDocuments compares the sequential and parallel ranking
// paths over 10 000 documents.
func BenchmarkFindTopDocuments(b *testing.B) {
	f := newFixture(10000, 100)
	e := f.engine(b)
	for _, policy := range []execution.Policy{execution.Sequential, e.Parallel()} {
		b.Run(execution.Name(policy), func(b *testing.B) {
			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				if _, err := e.FindTopDocumentsWith(policy, f.queries[i%len(f.queries)], executor.Actual); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}

// BenchmarkMatchDocument matches every query against a rotating document.
func BenchmarkMatchDocument(b *testing.B) {
	f := newFixture(10000, 100)
	e := f.engine(b)
	for _, policy := range []execution.Policy{execution.Sequential, e.Parallel()} {
		b.Run(execution.Name(policy), func(b *testing.B) {
			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				if _, err := e.MatchDocument(policy, f.queries[i%len(f.queries)], i%len(f.docs)); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}

// BenchmarkProcessQueries measures concurrent batch search throughput.
func BenchmarkProcessQueries(b *testing.B) {
	f := newFixture(10000, 200)
	e := f.engine(b)
	ctx := context.Background()

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := batch.ProcessQueriesJoined(ctx, e, f.queries); err != nil {
			b.Fatal(err)
		}
	}
}

// BenchmarkRemoveDuplicates runs duplicate detection over a corpus where every
// document appears twice.
func BenchmarkRemoveDuplicates(b *testing.B) {
	f := newFixture(1000, 0)
	f.docs = append(f.docs, f.docs...)
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		b.StopTimer()
		e := f.engine(b)
		b.StartTimer()
		removed := dedup.RemoveDuplicates(e)
		if len(removed) != 1000 {
			b.Fatalf("removed %d documents, want 1000", len(removed))
		}
	}
}
