package index

import (
	"iter"
	"sort"

	"github.com/Adithya-Monish-Kumar-K/search-server/internal/indexer/tokenizer"
	"github.com/Adithya-Monish-Kumar-K/search-server/pkg/execution"
	apperrors "github.com/Adithya-Monish-Kumar-K/search-server/pkg/errors"
)

// Store is the inverted index plus document store. Forward postings map a
// term to the frequency of that term in every document containing it;
// reverse postings hold the same pairs keyed by document.
//
// Store does no locking. Readers may run concurrently with each other, but
// AddDocument and RemoveDocument must be serialized by the caller.
type Store struct {
	stopWords tokenizer.StopWords
	forward   map[string]map[int]float64
	reverse   map[int]map[string]float64
	documents map[int]DocumentData
	ids       []int
}

func NewStore(stopWords tokenizer.StopWords) *Store {
	return &Store{
		stopWords: stopWords,
		forward:   make(map[string]map[int]float64),
		reverse:   make(map[int]map[string]float64),
		documents: make(map[int]DocumentData),
	}
}

func (s *Store) StopWords() tokenizer.StopWords {
	return s.stopWords
}

// AddDocument indexes text under id. Every term occurrence adds
// 1/len(terms) to the term's frequency. Nothing is mutated when an error is
// returned.
func (s *Store) AddDocument(id int, text string, status Status, ratings []int) error {
	if id < 0 {
		return apperrors.Newf(apperrors.ErrInvalidArgument, "document id %d is negative", id)
	}
	if _, exists := s.documents[id]; exists {
		return apperrors.Newf(apperrors.ErrInvalidArgument, "document id %d already exists", id)
	}
	words, err := s.stopWords.SplitNoStop(text)
	if err != nil {
		return err
	}

	freqs := make(map[string]float64, len(words))
	if len(words) > 0 {
		inv := 1.0 / float64(len(words))
		for _, word := range words {
			freqs[word] += inv
		}
	}

	for term, freq := range freqs {
		docs, ok := s.forward[term]
		if !ok {
			docs = make(map[int]float64)
			s.forward[term] = docs
		}
		docs[id] = freq
	}
	s.reverse[id] = freqs
	s.documents[id] = DocumentData{
		Rating: ComputeAverageRating(ratings),
		Status: status,
	}
	pos := sort.SearchInts(s.ids, id)
	s.ids = append(s.ids, 0)
	copy(s.ids[pos+1:], s.ids[pos:])
	s.ids[pos] = id
	return nil
}

// ComputeAverageRating returns the mean rating truncated toward zero, or 0
// for no ratings.
func ComputeAverageRating(ratings []int) int {
	if len(ratings) == 0 {
		return 0
	}
	sum := 0
	for _, r := range ratings {
		sum += r
	}
	return sum / len(ratings)
}

// RemoveDocument purges id from every structure. Removing an absent id is a
// no-op and reports false. With a parallel policy the forward postings are
// cleaned up concurrently, one term per task; each term owns a distinct
// postings map and the term map itself is only read until the fan-out ends.
func (s *Store) RemoveDocument(policy execution.Policy, id int) bool {
	if _, ok := s.documents[id]; !ok {
		return false
	}
	freqs := s.reverse[id]
	terms := make([]string, 0, len(freqs))
	for term := range freqs {
		terms = append(terms, term)
	}

	delete(s.documents, id)
	pos := sort.SearchInts(s.ids, id)
	s.ids = append(s.ids[:pos], s.ids[pos+1:]...)

	execution.ForEach(policy, terms, func(term string) {
		if docs, ok := s.forward[term]; ok {
			delete(docs, id)
		}
	})
	for _, term := range terms {
		if len(s.forward[term]) == 0 {
			delete(s.forward, term)
		}
	}
	delete(s.reverse, id)
	return true
}

// WordFrequencies returns a copy of the term frequencies of id, or an empty
// map if id is not indexed.
func (s *Store) WordFrequencies(id int) map[string]float64 {
	freqs := s.reverse[id]
	out := make(map[string]float64, len(freqs))
	for term, freq := range freqs {
		out[term] = freq
	}
	return out
}

// Postings returns the document frequencies for term. The map is owned by
// the store and must not be modified.
func (s *Store) Postings(term string) (map[int]float64, bool) {
	docs, ok := s.forward[term]
	return docs, ok
}

// HasTerm reports whether document id contains term.
func (s *Store) HasTerm(id int, term string) bool {
	_, ok := s.reverse[id][term]
	return ok
}

func (s *Store) Document(id int) (DocumentData, bool) {
	d, ok := s.documents[id]
	return d, ok
}

func (s *Store) Contains(id int) bool {
	_, ok := s.documents[id]
	return ok
}

func (s *Store) DocumentCount() int {
	return len(s.documents)
}

// TermCount returns the number of distinct indexed terms.
func (s *Store) TermCount() int {
	return len(s.forward)
}

// IDs returns the live document ids in ascending order.
func (s *Store) IDs() []int {
	out := make([]int, len(s.ids))
	copy(out, s.ids)
	return out
}

// All enumerates live ids in ascending order over a snapshot taken when
// iteration starts, so callers may remove documents while ranging.
func (s *Store) All() iter.Seq[int] {
	return func(yield func(int) bool) {
		for _, id := range s.IDs() {
			if !yield(id) {
				return
			}
		}
	}
}
