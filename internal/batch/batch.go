// Package batch runs many search queries against one engine concurrently.
package batch

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/Adithya-Monish-Kumar-K/search-server/internal/searcher/ranker"
	"github.com/Adithya-Monish-Kumar-K/search-server/pkg/tracing"
)

type Searcher interface {
	FindTopDocuments(raw string) ([]ranker.Document, error)
}

// ProcessQueries runs every query through FindTopDocuments. Result i
// belongs to queries[i]. The first failing query cancels the rest and its
// error is returned.
func ProcessQueries(ctx context.Context, s Searcher, queries []string) ([][]ranker.Document, error) {
	logger := slog.Default().With("component", "batch")
	ctx, root := tracing.StartSpan(ctx, "process_queries")
	root.SetAttr("queries", len(queries))
	defer func() {
		root.End()
		root.Log(logger)
	}()

	results := make([][]ranker.Document, len(queries))
	g, gctx := errgroup.WithContext(ctx)
	for i, raw := range queries {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			_, span := tracing.StartChildSpan(gctx, fmt.Sprintf("query-%d", i))
			defer span.End()
			span.SetAttr("query", raw)

			docs, err := s.FindTopDocuments(raw)
			if err != nil {
				return fmt.Errorf("query %d: %w", i, err)
			}
			span.SetAttr("results", len(docs))
			results[i] = docs
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// ProcessQueriesJoined is ProcessQueries flattened in query order.
func ProcessQueriesJoined(ctx context.Context, s Searcher, queries []string) ([]ranker.Document, error) {
	perQuery, err := ProcessQueries(ctx, s, queries)
	if err != nil {
		return nil, err
	}
	total := 0
	for _, docs := range perQuery {
		total += len(docs)
	}
	joined := make([]ranker.Document, 0, total)
	for _, docs := range perQuery {
		joined = append(joined, docs...)
	}
	return joined, nil
}
