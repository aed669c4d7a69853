package ranker

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInverseDocumentFrequency(t *testing.T) {
	assert.InDelta(t, math.Log(3), InverseDocumentFrequency(3, 1), 1e-12)
	assert.Equal(t, 0.0, InverseDocumentFrequency(4, 4))
	assert.Equal(t, 0.0, InverseDocumentFrequency(0, 1))
	assert.Equal(t, 0.0, InverseDocumentFrequency(3, 0))
}

func TestRankOrdersAndTruncates(t *testing.T) {
	docs := []Document{
		{ID: 0, Relevance: 0.1, Rating: 1},
		{ID: 1, Relevance: 0.9, Rating: 0},
		{ID: 2, Relevance: 0.5, Rating: 3},
		{ID: 3, Relevance: 0.5 + Epsilon/10, Rating: 7},
		{ID: 4, Relevance: 0.3, Rating: 0},
		{ID: 5, Relevance: 0.2, Rating: 0},
		{ID: 6, Relevance: 0.5, Rating: 7},
	}
	got := Rank(docs, 0)

	ids := make([]int, len(got))
	for i, d := range got {
		ids[i] = d.ID
	}
	assert.Equal(t, []int{1, 3, 6, 2, 4}, ids)
}

func TestRankLimit(t *testing.T) {
	docs := []Document{{ID: 0, Relevance: 1}, {ID: 1, Relevance: 2}}
	assert.Len(t, Rank(docs, 1), 1)
	assert.Empty(t, Rank(nil, 3))
}

func TestDocumentString(t *testing.T) {
	d := Document{ID: 2, Relevance: 0.5, Rating: -1}
	assert.Equal(t, "{ document_id = 2, relevance = 0.5, rating = -1 }", d.String())
}
