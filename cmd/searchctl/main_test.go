package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	apperrors "github.com/Adithya-Monish-Kumar-K/search-server/pkg/errors"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testCorpus = `documents:
  - id: 1
    text: funny pet and nasty rat
    ratings: [7, 2, 7]
  - id: 2
    text: funny pet with curly hair
    status: actual
    ratings: [1, 2]
  - id: 3
    text: funny pet with curly hair
    ratings: [1, 2]
  - id: 4
    text: big dog sparrow
    status: banned
    ratings: [9]
`

func TestMain(m *testing.M) {
	lipgloss.SetColorProfile(termenv.Ascii)
	os.Exit(m.Run())
}

func writeCorpus(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "corpus.yaml")
	require.NoError(t, os.WriteFile(path, []byte(testCorpus), 0o644))
	return path
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCommand()
	cmd.Writer = &out
	cmd.ErrWriter = &out
	err := cmd.Run(context.Background(), append([]string{"searchctl", "--log-level", "error"}, args...))
	return out.String(), err
}

func TestLoadCorpus(t *testing.T) {
	c, err := loadCorpus(writeCorpus(t))
	require.NoError(t, err)
	require.Len(t, c.Documents, 4)
	assert.Equal(t, "ACTUAL", c.Documents[0].Status.String())
	assert.Equal(t, "BANNED", c.Documents[3].Status.String())
	assert.Equal(t, []int{9}, c.Documents[3].Ratings)

	_, err = loadCorpus(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestSearchCommand(t *testing.T) {
	corpus := writeCorpus(t)

	out, err := run(t, "--corpus", corpus, "--stop-word", "and", "--stop-word", "with", "search", "curly", "nasty")
	require.NoError(t, err)
	assert.Contains(t, out, `Results for "curly"`)
	assert.Contains(t, out, "#2")
	assert.Contains(t, out, "#1")
	assert.Contains(t, out, "requests without results:")

	out, err = run(t, "--corpus", corpus, "search", "--status", "banned", "dog")
	require.NoError(t, err)
	assert.Contains(t, out, "#4")

	out, err = run(t, "--corpus", corpus, "search", "--batch", "--parallel", "rat", "hair")
	require.NoError(t, err)
	assert.Contains(t, out, `"rat | hair"`)
}

func TestSearchCommandErrors(t *testing.T) {
	corpus := writeCorpus(t)

	_, err := run(t, "--corpus", corpus, "search", "--cat")
	require.Error(t, err)

	_, err = run(t, "--corpus", corpus, "search", "cat -")
	require.Error(t, err)
	assert.Equal(t, 2, exitCode(err))

	_, err = run(t, "search", "cat")
	assert.Error(t, err)
}

func TestMatchCommand(t *testing.T) {
	corpus := writeCorpus(t)

	out, err := run(t, "--corpus", corpus, "match", "--id", "2", "curly pet rat")
	require.NoError(t, err)
	assert.Contains(t, out, "curly pet")
	assert.Contains(t, out, "ACTUAL")

	_, err = run(t, "--corpus", corpus, "match", "--id", "42", "curly")
	require.Error(t, err)
	assert.Equal(t, 3, exitCode(err))
}

func TestDedupAndStatsCommands(t *testing.T) {
	corpus := writeCorpus(t)

	out, err := run(t, "--corpus", corpus, "--stop-word", "with", "dedup")
	require.NoError(t, err)
	assert.Contains(t, out, "Found duplicate document id 3")
	assert.Contains(t, out, "documents left:")

	out, err = run(t, "--corpus", corpus, "stats", "pet", "nothing")
	require.NoError(t, err)
	assert.Contains(t, out, "documents:")
	assert.Contains(t, out, "docs_indexed_total 4")
}

func TestExitCode(t *testing.T) {
	assert.Equal(t, 2, exitCode(apperrors.New(apperrors.ErrInvalidArgument, "bad")))
	assert.Equal(t, 4, exitCode(apperrors.ErrRateLimited))
	assert.Equal(t, 1, exitCode(assert.AnError))
}
