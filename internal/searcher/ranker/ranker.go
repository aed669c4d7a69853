package ranker

import (
	"fmt"
	"math"
	"sort"
)

const (
	// MaxResultDocumentCount is the default number of documents returned.
	MaxResultDocumentCount = 5
	// Epsilon is the relevance difference below which two documents tie.
	Epsilon = 1e-6
)

type Document struct {
	ID        int     `json:"document_id" yaml:"document_id"`
	Relevance float64 `json:"relevance" yaml:"relevance"`
	Rating    int     `json:"rating" yaml:"rating"`
}

func (d Document) String() string {
	return fmt.Sprintf("{ document_id = %d, relevance = %g, rating = %d }", d.ID, d.Relevance, d.Rating)
}

// InverseDocumentFrequency returns ln(totalDocs / docsWithTerm), or 0 when
// either count is not positive.
func InverseDocumentFrequency(totalDocs, docsWithTerm int) float64 {
	if totalDocs <= 0 || docsWithTerm <= 0 {
		return 0
	}
	return math.Log(float64(totalDocs) / float64(docsWithTerm))
}

// Less orders documents by descending relevance. Relevances within Epsilon
// tie and fall back to descending rating, then ascending id.
func Less(a, b Document) bool {
	if math.Abs(a.Relevance-b.Relevance) >= Epsilon {
		return a.Relevance > b.Relevance
	}
	if a.Rating != b.Rating {
		return a.Rating > b.Rating
	}
	return a.ID < b.ID
}

// Rank sorts docs in place and truncates to limit. A limit <= 0 means
// MaxResultDocumentCount.
func Rank(docs []Document, limit int) []Document {
	if limit <= 0 {
		limit = MaxResultDocumentCount
	}
	sort.SliceStable(docs, func(i, j int) bool {
		return Less(docs[i], docs[j])
	})
	if len(docs) > limit {
		docs = docs[:limit]
	}
	return docs
}
