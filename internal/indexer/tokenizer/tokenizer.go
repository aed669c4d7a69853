// Package tokenizer splits raw text into terms and owns the stop-word set.
// Terms are case-sensitive; words are separated by single spaces and
// punctuation is kept as part of the word.
package tokenizer

import (
	"sort"
	"strings"

	apperrors "github.com/Adithya-Monish-Kumar-K/search-server/pkg/errors"
)

// Split breaks text into words on the space character, dropping empty runs.
func Split(text string) []string {
	words := make([]string, 0, strings.Count(text, " ")+1)
	for _, word := range strings.Split(text, " ") {
		if word != "" {
			words = append(words, word)
		}
	}
	return words
}

// IsValidWord reports whether word is free of control characters.
func IsValidWord(word string) bool {
	for i := 0; i < len(word); i++ {
		if word[i] < ' ' {
			return false
		}
	}
	return true
}

// StopWords is an immutable set of terms excluded from indexing and queries.
type StopWords struct {
	words map[string]struct{}
}

// NewStopWords builds a stop-word set, ignoring empty strings and duplicates.
func NewStopWords(words []string) (StopWords, error) {
	set := make(map[string]struct{}, len(words))
	for _, word := range words {
		if word == "" {
			continue
		}
		if !IsValidWord(word) {
			return StopWords{}, apperrors.Newf(apperrors.ErrInvalidArgument, "stop word %q contains control characters", word)
		}
		set[word] = struct{}{}
	}
	return StopWords{words: set}, nil
}

// StopWordsFromText builds a stop-word set from space-separated text.
func StopWordsFromText(text string) (StopWords, error) {
	return NewStopWords(Split(text))
}

func (s StopWords) Contains(word string) bool {
	_, ok := s.words[word]
	return ok
}

func (s StopWords) Len() int {
	return len(s.words)
}

// Words returns the stop words in ascending order.
func (s StopWords) Words() []string {
	out := make([]string, 0, len(s.words))
	for w := range s.words {
		out = append(out, w)
	}
	sort.Strings(out)
	return out
}

// SplitNoStop splits text and drops stop words. It fails if any word,
// stop word or not, contains control characters.
func (s StopWords) SplitNoStop(text string) ([]string, error) {
	words := Split(text)
	out := words[:0]
	for _, word := range words {
		if !IsValidWord(word) {
			return nil, apperrors.Newf(apperrors.ErrInvalidArgument, "word %q is invalid", word)
		}
		if !s.Contains(word) {
			out = append(out, word)
		}
	}
	return out, nil
}
