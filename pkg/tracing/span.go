// Package tracing provides lightweight timing spans that propagate through Go
// contexts. Spans form parent-child trees and are written to slog when the
// root span is logged.
package tracing

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"
)

type contextKey string

const spanKey contextKey = "trace_span"

var traceSeq atomic.Uint64

// Span represents a timed operation within a trace.
type Span struct {
	Name      string
	TraceID   string
	StartTime time.Time
	Duration  time.Duration
	Children  []*Span
	Attrs     map[string]any
	mu        sync.Mutex
}

func newSpan(name, traceID string) *Span {
	return &Span{
		Name:      name,
		TraceID:   traceID,
		StartTime: time.Now(),
		Attrs:     make(map[string]any),
	}
}

// StartSpan creates a root span with a fresh trace id and stores it in the
// returned context.
func StartSpan(ctx context.Context, name string) (context.Context, *Span) {
	span := newSpan(name, fmt.Sprintf("trace-%d", traceSeq.Add(1)))
	return context.WithValue(ctx, spanKey, span), span
}

// StartChildSpan creates a span linked to the span in ctx, or a new root
// if ctx carries none.
func StartChildSpan(ctx context.Context, name string) (context.Context, *Span) {
	parent := SpanFromContext(ctx)
	if parent == nil {
		return StartSpan(ctx, name)
	}
	child := newSpan(name, parent.TraceID)
	parent.mu.Lock()
	parent.Children = append(parent.Children, child)
	parent.mu.Unlock()
	return context.WithValue(ctx, spanKey, child), child
}

// End records the span's duration.
func (s *Span) End() {
	s.mu.Lock()
	s.Duration = time.Since(s.StartTime)
	s.mu.Unlock()
}

func (s *Span) SetAttr(key string, value any) {
	s.mu.Lock()
	s.Attrs[key] = value
	s.mu.Unlock()
}

func SpanFromContext(ctx context.Context) *Span {
	if span, ok := ctx.Value(spanKey).(*Span); ok {
		return span
	}
	return nil
}

// Log writes the span tree to logger at debug level.
func (s *Span) Log(logger *slog.Logger) {
	s.logRecursive(logger, 0)
}

func (s *Span) logRecursive(logger *slog.Logger, depth int) {
	s.mu.Lock()
	attrs := []any{
		"trace_id", s.TraceID,
		"span", s.Name,
		"duration", s.Duration,
		"depth", depth,
	}
	for k, v := range s.Attrs {
		attrs = append(attrs, k, v)
	}
	children := append([]*Span(nil), s.Children...)
	s.mu.Unlock()

	logger.Debug("span", attrs...)
	for _, child := range children {
		child.logRecursive(logger, depth+1)
	}
}

// LogDuration starts a timer and returns a func that logs the elapsed time
// under name. Use as: defer tracing.LogDuration(logger, "load corpus")().
func LogDuration(logger *slog.Logger, name string) func() {
	start := time.Now()
	return func() {
		logger.Info("operation finished", "operation", name, "took", time.Since(start))
	}
}
