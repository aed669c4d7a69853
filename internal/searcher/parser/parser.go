package parser

import (
	"slices"
	"strings"

	"github.com/Adithya-Monish-Kumar-K/search-server/internal/indexer/tokenizer"
	apperrors "github.com/Adithya-Monish-Kumar-K/search-server/pkg/errors"
)

// ExcludeMarker prefixes a query word that documents must not contain.
const ExcludeMarker = '-'

// Query is a normalized query. Include and Exclude are sorted and free of
// duplicates and stop words.
type Query struct {
	Include []string
	Exclude []string
	Raw     string
}

// Empty reports whether the query has no inclusion terms.
func (q *Query) Empty() bool {
	return len(q.Include) == 0
}

type queryWord struct {
	term    string
	exclude bool
	stop    bool
}

func parseWord(word string, stop tokenizer.StopWords) (queryWord, error) {
	term := word
	exclude := false
	if term[0] == ExcludeMarker {
		exclude = true
		term = term[1:]
	}
	if term == "" || term[0] == ExcludeMarker || !tokenizer.IsValidWord(term) {
		return queryWord{}, apperrors.Newf(apperrors.ErrInvalidArgument, "query word %q is invalid", word)
	}
	return queryWord{term: term, exclude: exclude, stop: stop.Contains(term)}, nil
}

// Parse splits text into inclusion and exclusion terms. A word is rejected
// if it is only the exclusion marker, starts with a doubled marker, or
// contains control characters.
func Parse(text string, stop tokenizer.StopWords) (*Query, error) {
	q := &Query{
		Include: make([]string, 0),
		Exclude: make([]string, 0),
		Raw:     text,
	}
	if strings.TrimSpace(text) == "" {
		return q, nil
	}
	for _, word := range tokenizer.Split(text) {
		qw, err := parseWord(word, stop)
		if err != nil {
			return nil, err
		}
		if qw.stop {
			continue
		}
		if qw.exclude {
			q.Exclude = append(q.Exclude, qw.term)
		} else {
			q.Include = append(q.Include, qw.term)
		}
	}
	slices.Sort(q.Include)
	q.Include = slices.Compact(q.Include)
	slices.Sort(q.Exclude)
	q.Exclude = slices.Compact(q.Exclude)
	return q, nil
}
