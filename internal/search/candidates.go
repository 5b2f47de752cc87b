package search

import "sort"

// candidateDocIDs folds a query's term postings into one candidate
// set, sorted ascending by doc_id.
//
// In AND mode, a query term absent from the index is skipped rather
// than forcing the whole candidate set empty: the result is the
// intersection of postings across whichever query terms are actually
// present in the corpus. This deliberately departs from a literal
// set-intersection reading of AND (where any missing term, being an
// empty set, would annihilate the whole query) — a single rare or
// misspelled term in an otherwise-matchable multi-word query should
// narrow the results, not erase them.
func (e *Engine) candidateDocIDs(terms []string, mode CombineMode) []uint64 {
	var result map[uint64]struct{}
	initialized := false

	for _, term := range terms {
		postings, err := e.idx.Get(term)
		if err != nil {
			continue
		}

		termSet := make(map[uint64]struct{}, len(postings))
		for _, p := range postings {
			termSet[p.DocID] = struct{}{}
		}

		switch mode {
		case CombineOR:
			if result == nil {
				result = make(map[uint64]struct{})
			}
			for id := range termSet {
				result[id] = struct{}{}
			}
		case CombineAND:
			if !initialized {
				result = termSet
				initialized = true
				continue
			}
			for id := range result {
				if _, ok := termSet[id]; !ok {
					delete(result, id)
				}
			}
		}
	}

	ids := make([]uint64, 0, len(result))
	for id := range result {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}
