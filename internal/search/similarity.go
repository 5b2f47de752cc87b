package search

import "math"

// cosineSimilarity scores a query against one document. Both Terms
// arrays carry their TF-IDF weight in the parallel Vector array rather
// than a dense, vocabulary-wide array, so the dot product is formed by
// looking up each query term's weight at its position in the
// document's term/vector arrays, not by indexing a shared vocabulary
// dimension. A document's full vector (not just the matched terms)
// still contributes to its magnitude in the denominator, as cosine
// similarity requires.
func cosineSimilarity(queryTerms []string, queryVec []float64, docTerms []string, docVec []float64) float64 {
	docWeight := make(map[string]float64, len(docTerms))
	for i, t := range docTerms {
		docWeight[t] = docVec[i]
	}

	var dot, queryNormSq, docNormSq float64
	for i, t := range queryTerms {
		dot += queryVec[i] * docWeight[t]
		queryNormSq += queryVec[i] * queryVec[i]
	}
	for _, w := range docVec {
		docNormSq += w * w
	}

	if queryNormSq == 0 || docNormSq == 0 {
		return 0
	}
	return dot / (math.Sqrt(queryNormSq) * math.Sqrt(docNormSq))
}
