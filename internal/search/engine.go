// Package search answers free-text queries against a built index: it
// preprocesses the query through the same pipeline as documents, forms
// a candidate set from the query's terms, scores each candidate by
// cosine similarity, and returns the top-scoring documents.
package search

import (
	"context"
	"fmt"
	"sort"

	"github.com/melisekm/skwiki-search/internal/index"
	"github.com/melisekm/skwiki-search/internal/preprocess"
	"github.com/melisekm/skwiki-search/internal/vectorizer"
	"github.com/melisekm/skwiki-search/internal/wiki"
)

// CombineMode selects how a multi-term query's postings are combined
// into a candidate set.
type CombineMode int

const (
	CombineOR CombineMode = iota
	CombineAND
)

// Query is one search request.
type Query struct {
	Text string
	Mode CombineMode
	// TopK caps the number of results returned; 0 means unlimited.
	TopK int
}

// ScoredResult is one ranked hit.
type ScoredResult struct {
	DocID uint64
	Title string
	Score float64
}

// Engine answers queries against a fixed corpus snapshot: an inverted
// index and the TF-IDF vectorizer built against it. Each candidate's
// term/vector arrays for scoring come from the index's own doc
// catalog (index.InvertedIndex.Document), so Engine itself needs no
// separate page set.
type Engine struct {
	idx        *index.InvertedIndex
	vectorizer *vectorizer.Vectorizer
	pipeline   *preprocess.Pipeline
}

// New builds an Engine. pipeline should have the document_saver stage
// disabled: a query is not a corpus document and must never be
// checkpointed.
func New(idx *index.InvertedIndex, vec *vectorizer.Vectorizer, pipeline *preprocess.Pipeline) *Engine {
	return &Engine{idx: idx, vectorizer: vec, pipeline: pipeline}
}

// Search preprocesses query.Text, builds a candidate set, scores it by
// cosine similarity against the query vector, and returns results
// sorted by descending score. Ties are broken by ascending doc_id, for
// a deterministic order across runs.
func (e *Engine) Search(ctx context.Context, q Query) ([]ScoredResult, error) {
	queryPage := &wiki.Page{RawText: q.Text}
	if err := e.pipeline.Process(ctx, queryPage); err != nil {
		return nil, fmt.Errorf("search: preprocessing query: %w", err)
	}
	queryTerms := queryPage.Terms
	if len(queryTerms) == 0 {
		return nil, nil
	}

	candidates := e.candidateDocIDs(queryTerms, q.Mode)
	queryVec := e.vectorizer.Weights(queryTerms)

	results := make([]ScoredResult, 0, len(candidates))
	for _, docID := range candidates {
		doc, ok := e.idx.Document(docID)
		if !ok {
			continue
		}
		score := cosineSimilarity(queryTerms, queryVec, doc.Terms, doc.Vector)
		results = append(results, ScoredResult{DocID: docID, Title: doc.Title, Score: score})
	}

	sort.SliceStable(results, func(i, j int) bool {
		if results[i].Score != results[j].Score {
			return results[i].Score > results[j].Score
		}
		return results[i].DocID < results[j].DocID
	})

	if q.TopK > 0 && len(results) > q.TopK {
		results = results[:q.TopK]
	}
	return results, nil
}
