// Package requestqueue records the outcome of recent search requests and
// counts how many of them returned nothing. The window holds one request
// per logical minute, a day's worth by default.
package requestqueue

import (
	"log/slog"
	"sync"

	"golang.org/x/time/rate"

	"github.com/Adithya-Monish-Kumar-K/search-server/internal/indexer/index"
	"github.com/Adithya-Monish-Kumar-K/search-server/internal/searcher/executor"
	"github.com/Adithya-Monish-Kumar-K/search-server/internal/searcher/ranker"
	apperrors "github.com/Adithya-Monish-Kumar-K/search-server/pkg/errors"
	"github.com/Adithya-Monish-Kumar-K/search-server/pkg/metrics"
)

// MinutesInDay is the default history size.
const MinutesInDay = 1440

// Searcher is the search operation the queue wraps.
type Searcher interface {
	FindTopDocumentsFunc(raw string, pred executor.Predicate) ([]ranker.Document, error)
}

type Queue struct {
	mu        sync.Mutex
	searcher  Searcher
	capacity  int
	empty     []bool
	head      int
	size      int
	noResults int
	limiter   *rate.Limiter
	metrics   *metrics.Metrics
	logger    *slog.Logger
}

type Option func(*Queue)

// WithHistorySize overrides the number of requests remembered.
func WithHistorySize(n int) Option {
	return func(q *Queue) {
		if n > 0 {
			q.capacity = n
		}
	}
}

// WithRateLimit throttles requests to r per second with the given burst.
// A zero or negative r leaves requests unthrottled.
func WithRateLimit(r float64, burst int) Option {
	return func(q *Queue) {
		if r <= 0 {
			return
		}
		if burst < 1 {
			burst = 1
		}
		q.limiter = rate.NewLimiter(rate.Limit(r), burst)
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(q *Queue) {
		q.metrics = m
	}
}

func New(searcher Searcher, opts ...Option) *Queue {
	q := &Queue{
		searcher: searcher,
		capacity: MinutesInDay,
		logger:   slog.Default().With("component", "request-queue"),
	}
	for _, opt := range opts {
		opt(q)
	}
	q.empty = make([]bool, q.capacity)
	return q
}

// AddFindRequest searches ACTUAL documents and records the outcome.
func (q *Queue) AddFindRequest(raw string) ([]ranker.Document, error) {
	return q.AddFindRequestFunc(raw, executor.Actual)
}

func (q *Queue) AddFindRequestByStatus(raw string, status index.Status) ([]ranker.Document, error) {
	return q.AddFindRequestFunc(raw, executor.ByStatus(status))
}

// AddFindRequestFunc searches with pred and records the outcome. Throttled
// and failed requests are returned to the caller and not recorded.
func (q *Queue) AddFindRequestFunc(raw string, pred executor.Predicate) ([]ranker.Document, error) {
	if q.limiter != nil && !q.limiter.Allow() {
		q.metrics.Throttled()
		q.logger.Warn("request throttled", "query", raw)
		return nil, apperrors.Newf(apperrors.ErrRateLimited, "query %q", raw)
	}
	docs, err := q.searcher.FindTopDocumentsFunc(raw, pred)
	if err != nil {
		return nil, err
	}
	q.record(len(docs) == 0)
	return docs, nil
}

func (q *Queue) record(empty bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.size == q.capacity {
		// The oldest request falls out of the window.
		if q.empty[q.head] {
			q.noResults--
		}
		q.head = (q.head + 1) % q.capacity
		q.size--
	}
	q.empty[(q.head+q.size)%q.capacity] = empty
	q.size++
	if empty {
		q.noResults++
		q.metrics.EmptyResult()
	}
}

// NoResultRequests returns how many remembered requests returned nothing.
func (q *Queue) NoResultRequests() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.noResults
}

// Len returns the number of remembered requests.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.size
}
