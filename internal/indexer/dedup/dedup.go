// Package dedup removes documents whose set of distinct terms equals that of
// a lower-id document. Term frequencies and ratings are ignored.
package dedup

import (
	"iter"
	"log/slog"
	"slices"

	"github.com/cespare/xxhash/v2"

	"github.com/Adithya-Monish-Kumar-K/search-server/pkg/execution"
	"github.com/Adithya-Monish-Kumar-K/search-server/pkg/metrics"
)

// Server is the part of the search engine the eliminator needs.
type Server interface {
	All() iter.Seq[int]
	GetWordFrequencies(id int) map[string]float64
	RemoveDocument(policy execution.Policy, id int)
}

type group struct {
	terms []string
	first int
}

// Eliminator finds and removes duplicate documents.
type Eliminator struct {
	policy  execution.Policy
	logger  *slog.Logger
	metrics *metrics.Metrics
}

func New(policy execution.Policy, m *metrics.Metrics) *Eliminator {
	if policy == nil {
		policy = execution.Sequential
	}
	return &Eliminator{
		policy:  policy,
		logger:  slog.Default().With("component", "dedup"),
		metrics: m,
	}
}

// RemoveDuplicates keeps the lowest id of every group of documents sharing
// an identical term set and removes the rest. It returns the removed ids in
// ascending order.
func (e *Eliminator) RemoveDuplicates(s Server) []int {
	groups := make(map[uint64][]group)
	var duplicates []int
	for id := range s.All() {
		terms := termSet(s.GetWordFrequencies(id))
		key := fingerprint(terms)
		bucket := groups[key]
		found := false
		for _, g := range bucket {
			if slices.Equal(g.terms, terms) {
				found = true
				break
			}
		}
		if found {
			duplicates = append(duplicates, id)
			continue
		}
		groups[key] = append(bucket, group{terms: terms, first: id})
	}

	for _, id := range duplicates {
		e.logger.Info("found duplicate document id", "doc_id", id)
		s.RemoveDocument(e.policy, id)
		e.metrics.DuplicateRemoved()
	}
	return duplicates
}

// RemoveDuplicates removes duplicates sequentially without metrics.
func RemoveDuplicates(s Server) []int {
	return New(execution.Sequential, nil).RemoveDuplicates(s)
}

func termSet(freqs map[string]float64) []string {
	terms := make([]string, 0, len(freqs))
	for term := range freqs {
		terms = append(terms, term)
	}
	slices.Sort(terms)
	return terms
}

// fingerprint hashes the sorted terms. Terms never contain bytes below
// 0x20, so a NUL separator keeps distinct sets from concatenating equally.
func fingerprint(terms []string) uint64 {
	d := xxhash.New()
	for _, term := range terms {
		_, _ = d.WriteString(term)
		_, _ = d.Write([]byte{0})
	}
	return d.Sum64()
}
