package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/urfave/cli/v3"

	"github.com/Adithya-Monish-Kumar-K/search-server/internal/engine"
	"github.com/Adithya-Monish-Kumar-K/search-server/internal/requestqueue"
	"github.com/Adithya-Monish-Kumar-K/search-server/pkg/config"
	"github.com/Adithya-Monish-Kumar-K/search-server/pkg/logger"
	"github.com/Adithya-Monish-Kumar-K/search-server/pkg/metrics"
	"github.com/Adithya-Monish-Kumar-K/search-server/pkg/tracing"
)

// app is the state every subcommand starts from: a loaded config and an
// engine holding the corpus.
type app struct {
	cfg      *config.Config
	engine   *engine.Engine
	registry *prometheus.Registry
	metrics  *metrics.Metrics
	out      io.Writer
}

func newApp(c *cli.Command) (*app, error) {
	cfg, err := config.Load(c.String("config"))
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	if lvl := c.String("log-level"); lvl != "" {
		cfg.Logging.Level = lvl
	}
	logger.Setup(cfg.Logging.Level, cfg.Logging.Format, nil)
	if words := c.StringSlice("stop-word"); len(words) > 0 {
		cfg.Search.StopWords = words
	}

	a := &app{cfg: cfg, out: c.Root().Writer}
	if a.out == nil {
		a.out = os.Stdout
	}
	var opts []engine.Option
	if cfg.Metrics.Enabled {
		a.registry = prometheus.NewRegistry()
		a.metrics = metrics.New(a.registry)
		opts = append(opts, engine.WithMetrics(a.metrics))
	}
	a.engine, err = engine.New(cfg.Search, cfg.Search.StopWords, opts...)
	if err != nil {
		return nil, fmt.Errorf("creating engine: %w", err)
	}

	path := c.String("corpus")
	if path == "" {
		return nil, errors.New("no corpus provided (flag --corpus or SP_CORPUS required)")
	}
	done := tracing.LogDuration(logger.WithComponent("searchctl"), "load corpus")
	defer done()
	corp, err := loadCorpus(path)
	if err != nil {
		return nil, err
	}
	if err := corp.indexInto(a.engine); err != nil {
		return nil, err
	}
	return a, nil
}

func (a *app) queue() *requestqueue.Queue {
	return requestqueue.New(a.engine,
		requestqueue.WithHistorySize(a.cfg.Queue.HistorySize),
		requestqueue.WithRateLimit(a.cfg.Queue.RateLimit, a.cfg.Queue.RateBurst),
		requestqueue.WithMetrics(a.metrics),
	)
}

// withApp adapts an action that needs a loaded corpus to cli.ActionFunc.
func withApp(fn func(ctx context.Context, c *cli.Command, a *app) error) cli.ActionFunc {
	return func(ctx context.Context, c *cli.Command) error {
		a, err := newApp(c)
		if err != nil {
			return err
		}
		return fn(ctx, c, a)
	}
}
