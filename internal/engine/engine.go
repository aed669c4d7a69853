// Package engine is the search server: it owns the stop words, the inverted
// index and the query executor, and exposes document indexing, ranked
// search, matching and removal.
//
// An Engine is not safe for concurrent mutation. AddDocument and
// RemoveDocument must be serialized by the caller; searches, matches and
// frequency lookups may run concurrently with each other.
package engine

import (
	"iter"
	"log/slog"
	"time"

	"github.com/Adithya-Monish-Kumar-K/search-server/internal/indexer/index"
	"github.com/Adithya-Monish-Kumar-K/search-server/internal/indexer/tokenizer"
	"github.com/Adithya-Monish-Kumar-K/search-server/internal/searcher/executor"
	"github.com/Adithya-Monish-Kumar-K/search-server/internal/searcher/parser"
	"github.com/Adithya-Monish-Kumar-K/search-server/internal/searcher/ranker"
	"github.com/Adithya-Monish-Kumar-K/search-server/pkg/config"
	"github.com/Adithya-Monish-Kumar-K/search-server/pkg/execution"
	"github.com/Adithya-Monish-Kumar-K/search-server/pkg/metrics"
)

type Engine struct {
	cfg      config.SearchConfig
	store    *index.Store
	exec     *executor.Executor
	parallel execution.Policy
	logger   *slog.Logger
	metrics  *metrics.Metrics
}

type Option func(*Engine)

func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = l
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(e *Engine) {
		e.metrics = m
	}
}

// New creates an engine with the given stop words. It fails with
// ErrInvalidArgument if a stop word contains control characters.
func New(cfg config.SearchConfig, stopWords []string, opts ...Option) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	sw, err := tokenizer.NewStopWords(stopWords)
	if err != nil {
		return nil, err
	}
	store := index.NewStore(sw)
	e := &Engine{
		cfg:      cfg,
		store:    store,
		exec:     executor.New(store, cfg.ScoreMapShards),
		parallel: execution.Parallel(cfg.Parallelism),
		logger:   slog.Default().With("component", "search-engine"),
	}
	for _, opt := range opts {
		opt(e)
	}
	e.logger.Debug("search engine created",
		"stop_words", sw.Len(),
		"max_results", cfg.MaxResults,
		"score_map_shards", cfg.ScoreMapShards,
	)
	return e, nil
}

// NewFromText creates an engine whose stop words are the space-separated
// words of text.
func NewFromText(cfg config.SearchConfig, stopWordsText string, opts ...Option) (*Engine, error) {
	return New(cfg, tokenizer.Split(stopWordsText), opts...)
}

// Parallel returns the engine's configured data-parallel policy.
func (e *Engine) Parallel() execution.Policy {
	return e.parallel
}

func (e *Engine) AddDocument(id int, text string, status index.Status, ratings []int) error {
	if err := e.store.AddDocument(id, text, status, ratings); err != nil {
		e.metrics.InvalidRequest("add_document")
		e.logger.Warn("document rejected", "doc_id", id, "error", err)
		return err
	}
	e.metrics.DocumentAdded(e.store.DocumentCount())
	e.logger.Debug("document indexed",
		"doc_id", id,
		"status", status,
		"terms", len(e.store.WordFrequencies(id)),
	)
	return nil
}

// FindTopDocuments returns the best ACTUAL documents for raw, sequentially.
func (e *Engine) FindTopDocuments(raw string) ([]ranker.Document, error) {
	return e.FindTopDocumentsWith(execution.Sequential, raw, executor.Actual)
}

func (e *Engine) FindTopDocumentsByStatus(raw string, status index.Status) ([]ranker.Document, error) {
	return e.FindTopDocumentsWith(execution.Sequential, raw, executor.ByStatus(status))
}

func (e *Engine) FindTopDocumentsFunc(raw string, pred executor.Predicate) ([]ranker.Document, error) {
	return e.FindTopDocumentsWith(execution.Sequential, raw, pred)
}

// FindTopDocumentsWith parses raw and ranks the documents accepted by pred
// using policy. A nil policy runs sequentially; a nil pred selects ACTUAL
// documents.
func (e *Engine) FindTopDocumentsWith(policy execution.Policy, raw string, pred executor.Predicate) ([]ranker.Document, error) {
	if policy == nil {
		policy = execution.Sequential
	}
	start := time.Now()
	path := execution.Name(policy)
	q, err := parser.Parse(raw, e.store.StopWords())
	if err != nil {
		e.metrics.InvalidRequest("find_top_documents")
		e.metrics.ObserveSearch(path, "error", time.Since(start), 0)
		return nil, err
	}
	docs := e.exec.FindTopDocuments(policy, q, pred, e.cfg.MaxResults)
	outcome := "hit"
	if len(docs) == 0 {
		outcome = "zero_result"
	}
	e.metrics.ObserveSearch(path, outcome, time.Since(start), len(docs))
	e.logger.Debug("query executed",
		"query", raw,
		"path", path,
		"results", len(docs),
		"took", time.Since(start),
	)
	return docs, nil
}

// MatchDocument reports the query's inclusion terms present in document id
// together with its status. It fails with ErrNotFound if id is not indexed.
func (e *Engine) MatchDocument(policy execution.Policy, raw string, id int) (executor.MatchResult, error) {
	if policy == nil {
		policy = execution.Sequential
	}
	q, err := parser.Parse(raw, e.store.StopWords())
	if err != nil {
		e.metrics.InvalidRequest("match_document")
		return executor.MatchResult{}, err
	}
	return e.exec.MatchDocument(policy, q, id)
}

// RemoveDocument deletes id from the index. Removing an absent id is a no-op.
func (e *Engine) RemoveDocument(policy execution.Policy, id int) {
	if policy == nil {
		policy = execution.Sequential
	}
	if !e.store.RemoveDocument(policy, id) {
		return
	}
	e.metrics.DocumentRemoved(e.store.DocumentCount())
	e.logger.Debug("document removed", "doc_id", id, "path", execution.Name(policy))
}

// GetWordFrequencies returns the term frequencies of id, or an empty map.
func (e *Engine) GetWordFrequencies(id int) map[string]float64 {
	return e.store.WordFrequencies(id)
}

func (e *Engine) GetDocumentCount() int {
	return e.store.DocumentCount()
}

// All enumerates live document ids in ascending order.
func (e *Engine) All() iter.Seq[int] {
	return e.store.All()
}

func (e *Engine) IDs() []int {
	return e.store.IDs()
}

func (e *Engine) StopWords() []string {
	return e.store.StopWords().Words()
}
