package executor

import (
	"log/slog"
	"slices"

	"github.com/Adithya-Monish-Kumar-K/search-server/internal/indexer/index"
	"github.com/Adithya-Monish-Kumar-K/search-server/internal/searcher/parser"
	"github.com/Adithya-Monish-Kumar-K/search-server/internal/searcher/ranker"
	"github.com/Adithya-Monish-Kumar-K/search-server/pkg/concurrent"
	"github.com/Adithya-Monish-Kumar-K/search-server/pkg/execution"
	apperrors "github.com/Adithya-Monish-Kumar-K/search-server/pkg/errors"
)

// DefaultScoreMapShards is the shard count of the parallel score accumulator.
const DefaultScoreMapShards = 100

// Predicate selects the documents eligible for ranking.
type Predicate func(id int, status index.Status, rating int) bool

// ByStatus accepts documents whose status equals status.
func ByStatus(status index.Status) Predicate {
	return func(_ int, s index.Status, _ int) bool {
		return s == status
	}
}

// Actual is the default predicate.
var Actual = ByStatus(index.StatusActual)

type MatchResult struct {
	Terms  []string     `json:"terms"`
	Status index.Status `json:"status"`
}

type Executor struct {
	store  *index.Store
	shards int
	logger *slog.Logger
}

func New(store *index.Store, scoreMapShards int) *Executor {
	if scoreMapShards <= 0 {
		scoreMapShards = DefaultScoreMapShards
	}
	return &Executor{
		store:  store,
		shards: scoreMapShards,
		logger: slog.Default().With("component", "query-executor"),
	}
}

// FindAllDocuments scores every eligible document containing an inclusion
// term and drops documents containing any exclusion term. The result is in
// ascending id order and unranked.
func (e *Executor) FindAllDocuments(policy execution.Policy, q *parser.Query, pred Predicate) []ranker.Document {
	if pred == nil {
		pred = Actual
	}
	var relevance map[int]float64
	if policy.Parallel() {
		relevance = e.accumulateParallel(policy, q, pred)
	} else {
		relevance = e.accumulate(q, pred)
	}

	ids := make([]int, 0, len(relevance))
	for id := range relevance {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	docs := make([]ranker.Document, 0, len(ids))
	for _, id := range ids {
		data, _ := e.store.Document(id)
		docs = append(docs, ranker.Document{
			ID:        id,
			Relevance: relevance[id],
			Rating:    data.Rating,
		})
	}
	e.logger.Debug("documents scored",
		"query", q.Raw,
		"path", execution.Name(policy),
		"include", q.Include,
		"exclude", q.Exclude,
		"candidates", len(docs),
	)
	return docs
}

func (e *Executor) accumulate(q *parser.Query, pred Predicate) map[int]float64 {
	total := e.store.DocumentCount()
	relevance := make(map[int]float64)
	for _, term := range q.Include {
		postings, ok := e.store.Postings(term)
		if !ok {
			continue
		}
		idf := ranker.InverseDocumentFrequency(total, len(postings))
		for id, tf := range postings {
			data, _ := e.store.Document(id)
			if pred(id, data.Status, data.Rating) {
				relevance[id] += tf * idf
			}
		}
	}
	for _, term := range q.Exclude {
		postings, ok := e.store.Postings(term)
		if !ok {
			continue
		}
		for id := range postings {
			delete(relevance, id)
		}
	}
	return relevance
}

func (e *Executor) accumulateParallel(policy execution.Policy, q *parser.Query, pred Predicate) map[int]float64 {
	total := e.store.DocumentCount()
	scores := concurrent.NewMap[int, float64](e.shards)
	execution.ForEach(policy, q.Include, func(term string) {
		postings, ok := e.store.Postings(term)
		if !ok {
			return
		}
		idf := ranker.InverseDocumentFrequency(total, len(postings))
		for id, tf := range postings {
			data, _ := e.store.Document(id)
			if !pred(id, data.Status, data.Rating) {
				continue
			}
			scores.Update(id, func(score *float64) {
				*score += tf * idf
			})
		}
	})
	execution.ForEach(policy, q.Exclude, func(term string) {
		postings, ok := e.store.Postings(term)
		if !ok {
			return
		}
		for id := range postings {
			scores.Erase(id)
		}
	})
	return scores.BuildOrdinaryMap()
}

// FindTopDocuments ranks FindAllDocuments and keeps the best limit results.
func (e *Executor) FindTopDocuments(policy execution.Policy, q *parser.Query, pred Predicate, limit int) []ranker.Document {
	return ranker.Rank(e.FindAllDocuments(policy, q, pred), limit)
}

// MatchDocument reports which inclusion terms document id contains. A hit on
// any exclusion term empties the list. It fails with ErrNotFound if id is not
// indexed.
func (e *Executor) MatchDocument(policy execution.Policy, q *parser.Query, id int) (MatchResult, error) {
	data, ok := e.store.Document(id)
	if !ok {
		return MatchResult{}, apperrors.Newf(apperrors.ErrNotFound, "document %d", id)
	}
	has := func(term string) bool {
		return e.store.HasTerm(id, term)
	}
	if execution.AnyOf(policy, q.Exclude, has) {
		return MatchResult{Terms: []string{}, Status: data.Status}, nil
	}
	present := execution.Map(policy, q.Include, has)
	terms := make([]string, 0, len(q.Include))
	for i, term := range q.Include {
		if present[i] {
			terms = append(terms, term)
		}
	}
	return MatchResult{Terms: terms, Status: data.Status}, nil
}
