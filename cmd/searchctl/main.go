// Command searchctl indexes a YAML corpus in memory and runs searches,
// matches and duplicate removal against it.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"

	apperrors "github.com/Adithya-Monish-Kumar-K/search-server/pkg/errors"
)

func main() {
	if err := newRootCommand().Run(context.Background(), os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "searchctl: %v\n", err)
		os.Exit(exitCode(err))
	}
}

func newRootCommand() *cli.Command {
	return &cli.Command{
		Name:  "searchctl",
		Usage: "In-memory TF-IDF document search",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Usage:   "Configuration file path",
				Sources: cli.EnvVars("SP_CONFIG"),
			},
			&cli.StringFlag{
				Name:    "corpus",
				Usage:   "YAML corpus file to index",
				Sources: cli.EnvVars("SP_CORPUS"),
			},
			&cli.StringFlag{
				Name:  "log-level",
				Usage: "Override logging.level (debug, info, warn, error)",
			},
			&cli.StringSliceFlag{
				Name:  "stop-word",
				Usage: "Stop word, repeatable; replaces search.stopWords",
			},
		},
		Commands: []*cli.Command{
			searchCommand(),
			matchCommand(),
			dedupCommand(),
			statsCommand(),
		},
	}
}

func exitCode(err error) int {
	switch apperrors.CodeOf(err) {
	case apperrors.CodeInvalidArgument:
		return 2
	case apperrors.CodeNotFound:
		return 3
	case apperrors.CodeRateLimited:
		return 4
	default:
		return 1
	}
}
