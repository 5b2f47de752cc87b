// Package vectorizer turns a document's terms into a TF-IDF weight
// vector, using document-frequency statistics from an inverted index.
package vectorizer

import (
	"math"

	"github.com/melisekm/skwiki-search/internal/index"
	"github.com/melisekm/skwiki-search/internal/wiki"
)

// Config selects which TF-IDF variant to compute.
type Config struct {
	// SublinearTF replaces raw term frequency tf with 1 + log10(tf).
	SublinearTF bool
	// SmoothIDF computes idf as log10((1+N)/(1+df)) + 1 instead of
	// log10(N/df), avoiding a division by zero for unseen terms and
	// damping the weight of very rare terms.
	SmoothIDF bool
	// L2Normalize scales the resulting vector to unit Euclidean norm.
	L2Normalize bool
}

// Vectorizer computes TF-IDF vectors against a fixed corpus snapshot
// (document count and document frequencies come from idx).
type Vectorizer struct {
	idx    *index.InvertedIndex
	config Config
}

func New(idx *index.InvertedIndex, config Config) *Vectorizer {
	return &Vectorizer{idx: idx, config: config}
}

// Vectorize computes the TF-IDF weight for every entry of page.Terms,
// writing it to page.Vector in the same order (duplicates get the
// same weight repeated, matching Terms position-for-position — the
// vector is parallel to the token stream, not to the vocabulary).
func (v *Vectorizer) Vectorize(page *wiki.Page) {
	page.Vector = v.Weights(page.Terms)
}

// Weights computes one TF-IDF weight per entry of terms, in the same
// order (duplicates get the same weight repeated — the result is
// parallel to the token stream, not to the vocabulary). It is used
// both for indexed documents and for one-off query vectors, which
// share the corpus statistics but aren't themselves stored in the
// index.
func (v *Vectorizer) Weights(terms []string) []float64 {
	n := float64(v.idx.DocumentCount())

	freq := make(map[string]int, len(terms))
	for _, t := range terms {
		freq[t]++
	}

	docLen := float64(len(terms))
	weights := make(map[string]float64, len(freq))
	for term, tf := range freq {
		weights[term] = v.weight(term, tf, docLen, n)
	}

	vec := make([]float64, len(terms))
	for i, term := range terms {
		vec[i] = weights[term]
	}

	if v.config.L2Normalize {
		normalize(vec)
	}

	return vec
}

func (v *Vectorizer) weight(term string, tf int, docLen, n float64) float64 {
	tfWeight := float64(tf) / docLen
	if v.config.SublinearTF && tf > 0 {
		tfWeight = 1 + math.Log10(float64(tf))
	}

	df, ok := v.idx.DocumentFrequency(term)
	var idf float64
	switch {
	case v.config.SmoothIDF:
		idf = math.Log10((1+n)/(1+float64(df))) + 1
	case ok && df > 0:
		idf = math.Log10(n / float64(df))
	default:
		idf = 0
	}

	return tfWeight * idf
}

func normalize(vec []float64) {
	var sumSquares float64
	for _, w := range vec {
		sumSquares += w * w
	}
	if sumSquares == 0 {
		return
	}
	norm := math.Sqrt(sumSquares)
	for i := range vec {
		vec[i] /= norm
	}
}
