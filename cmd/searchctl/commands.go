package main

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/Adithya-Monish-Kumar-K/search-server/internal/batch"
	"github.com/Adithya-Monish-Kumar-K/search-server/internal/indexer/dedup"
	"github.com/Adithya-Monish-Kumar-K/search-server/internal/indexer/index"
	"github.com/Adithya-Monish-Kumar-K/search-server/internal/searcher/executor"
	"github.com/Adithya-Monish-Kumar-K/search-server/pkg/execution"
	"github.com/Adithya-Monish-Kumar-K/search-server/pkg/metrics"
)

func policyFlag() cli.Flag {
	return &cli.BoolFlag{
		Name:  "parallel",
		Usage: "Use the parallel execution path",
	}
}

func policyFor(c *cli.Command, a *app) execution.Policy {
	if c.Bool("parallel") {
		return a.engine.Parallel()
	}
	return execution.Sequential
}

func searchCommand() *cli.Command {
	return &cli.Command{
		Name:      "search",
		Usage:     "Rank documents for one or more queries",
		ArgsUsage: "QUERY [QUERY...]",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "status",
				Usage: "Only return documents with this status",
				Value: index.StatusActual.String(),
			},
			&cli.IntFlag{
				Name:  "page-size",
				Usage: "Results per page (0 for a single page)",
				Value: 2,
			},
			&cli.BoolFlag{
				Name:  "batch",
				Usage: "Run all queries concurrently and print the joined results",
			},
			policyFlag(),
		},
		Action: withApp(runSearch),
	}
}

func runSearch(ctx context.Context, c *cli.Command, a *app) error {
	queries := c.Args().Slice()
	if len(queries) == 0 {
		return errors.New("at least one query is required")
	}
	status, err := index.ParseStatus(c.String("status"))
	if err != nil {
		return err
	}
	pageSize := c.Int("page-size")

	if c.Bool("batch") {
		docs, err := batch.ProcessQueriesJoined(ctx, a.engine, queries)
		if err != nil {
			return err
		}
		printResults(a.out, strings.Join(queries, " | "), docs, pageSize)
		return nil
	}

	q := a.queue()
	policy := policyFor(c, a)
	pred := executor.ByStatus(status)
	for _, raw := range queries {
		if c.Bool("parallel") {
			docs, err := a.engine.FindTopDocumentsWith(policy, raw, pred)
			if err != nil {
				return err
			}
			printResults(a.out, raw, docs, pageSize)
			continue
		}
		docs, err := q.AddFindRequestFunc(raw, pred)
		if err != nil {
			return err
		}
		printResults(a.out, raw, docs, pageSize)
	}
	if q.Len() > 0 {
		fmt.Fprintf(a.out, "%s %d of %d\n", headerStyle.Render("requests without results:"), q.NoResultRequests(), q.Len())
	}
	return nil
}

func matchCommand() *cli.Command {
	return &cli.Command{
		Name:      "match",
		Usage:     "Show which query terms a document contains",
		ArgsUsage: "QUERY",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:     "id",
				Usage:    "Document id",
				Required: true,
			},
			policyFlag(),
		},
		Action: withApp(func(ctx context.Context, c *cli.Command, a *app) error {
			raw := strings.Join(c.Args().Slice(), " ")
			id := c.Int("id")
			m, err := a.engine.MatchDocument(policyFor(c, a), raw, id)
			if err != nil {
				return err
			}
			printMatch(a.out, id, m)
			return nil
		}),
	}
}

func dedupCommand() *cli.Command {
	return &cli.Command{
		Name:  "dedup",
		Usage: "Remove documents whose term set repeats an earlier document",
		Flags: []cli.Flag{
			policyFlag(),
		},
		Action: withApp(func(ctx context.Context, c *cli.Command, a *app) error {
			removed := dedup.New(policyFor(c, a), a.metrics).RemoveDuplicates(a.engine)
			printRemoved(a.out, removed, a.engine.GetDocumentCount())
			return nil
		}),
	}
}

func statsCommand() *cli.Command {
	return &cli.Command{
		Name:      "stats",
		Usage:     "Print index statistics and collected metrics",
		ArgsUsage: "[QUERY...]",
		Action: withApp(func(ctx context.Context, c *cli.Command, a *app) error {
			if queries := c.Args().Slice(); len(queries) > 0 {
				if _, err := batch.ProcessQueries(ctx, a.engine, queries); err != nil {
					return err
				}
			}
			fmt.Fprintln(a.out, titleStyle.Render("Index"))
			fmt.Fprintf(a.out, "%s %d\n", headerStyle.Render("documents:"), a.engine.GetDocumentCount())
			fmt.Fprintf(a.out, "%s %s\n", headerStyle.Render("stop words:"), strings.Join(a.engine.StopWords(), " "))
			if a.registry == nil {
				fmt.Fprintln(a.out, dimStyle.Render("metrics disabled"))
				return nil
			}
			fmt.Fprintln(a.out, titleStyle.Render("Metrics"))
			return metrics.WriteText(a.out, a.registry)
		}),
	}
}
