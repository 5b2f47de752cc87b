// Package index builds and serializes the inverted index: for every
// term, which documents contain it, how many times, and how many
// documents in the whole corpus contain it at all.
package index

import (
	"errors"
	"sort"
	"sync"

	"github.com/melisekm/skwiki-search/internal/wiki"
)

// Posting is one (document, frequency) pair in a term's postings list.
// Postings carry only the doc_id, never a *wiki.Page: resolving a
// posting back to a page goes through the index's doc_id-to-page
// catalog (InvertedIndex.Document), so no posting holds a reference
// cycle back to the documents it indexes.
type Posting struct {
	DocID    uint64
	TermFreq uint32
}

// ErrMissingTerm is returned by Get for a term that never appears in
// the corpus.
var ErrMissingTerm = errors.New("index: term not found")

type termEntry struct {
	docFreq    uint32
	corpusFreq uint64
	postings   []Posting // ascending DocID
}

// InvertedIndex maps terms to postings lists, and doc_ids to the full
// page catalog entry search needs to score and display a hit (title,
// terms, TF-IDF vector, infobox). Postings themselves carry only the
// doc_id (see Posting), so the only place a *wiki.Page is reachable
// from is this catalog — there is no cycle back from a posting to the
// page it came from. Safe for concurrent use.
type InvertedIndex struct {
	mu    sync.RWMutex
	terms map[string]*termEntry
	docs  map[uint64]*wiki.Page
}

// New returns an empty InvertedIndex.
func New() *InvertedIndex {
	return &InvertedIndex{
		terms: make(map[string]*termEntry),
		docs:  make(map[uint64]*wiki.Page),
	}
}

// InsertDocument adds page's terms to the index and records page in
// the doc catalog (by reference: later mutations to page, such as a
// Vectorizer filling in page.Vector, are visible through the index
// without a separate update call). Repeated terms within the page are
// counted once per occurrence into that document's term frequency;
// InsertDocument must not be called twice for the same DocID.
func (idx *InvertedIndex) InsertDocument(page *wiki.Page) {
	idx.mu.Lock()
	defer idx.mu.Unlock()

	idx.docs[page.DocID] = page

	freq := make(map[string]uint32, len(page.Terms))
	for _, t := range page.Terms {
		freq[t]++
	}
	for term, tf := range freq {
		e, ok := idx.terms[term]
		if !ok {
			e = &termEntry{}
			idx.terms[term] = e
		}
		e.docFreq++
		e.corpusFreq += uint64(tf)
		ps := e.postings
		pos := sort.Search(len(ps), func(i int) bool { return ps[i].DocID >= page.DocID })
		ps = append(ps, Posting{})
		copy(ps[pos+1:], ps[pos:])
		ps[pos] = Posting{DocID: page.DocID, TermFreq: tf}
		e.postings = ps
	}
}

// Get returns term's postings list, sorted by ascending DocID, or
// ErrMissingTerm if term was never indexed.
func (idx *InvertedIndex) Get(term string) ([]Posting, error) {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	e, ok := idx.terms[term]
	if !ok {
		return nil, ErrMissingTerm
	}
	out := make([]Posting, len(e.postings))
	copy(out, e.postings)
	return out, nil
}

// DocumentFrequency reports in how many distinct documents term
// occurs.
func (idx *InvertedIndex) DocumentFrequency(term string) (uint32, bool) {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	e, ok := idx.terms[term]
	if !ok {
		return 0, false
	}
	return e.docFreq, true
}

// CorpusFrequency reports the total number of occurrences of term
// across the whole corpus.
func (idx *InvertedIndex) CorpusFrequency(term string) (uint64, bool) {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	e, ok := idx.terms[term]
	if !ok {
		return 0, false
	}
	return e.corpusFreq, true
}

// Title returns the title recorded for docID.
func (idx *InvertedIndex) Title(docID uint64) (string, bool) {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	page, ok := idx.docs[docID]
	if !ok {
		return "", false
	}
	return page.Title, true
}

// Document returns the catalog entry for docID: its title, terms,
// TF-IDF vector and (if present) infobox.
func (idx *InvertedIndex) Document(docID uint64) (*wiki.Page, bool) {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	page, ok := idx.docs[docID]
	return page, ok
}

// DocumentCount returns how many documents have been indexed.
func (idx *InvertedIndex) DocumentCount() int {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	return len(idx.docs)
}

// TermCount returns the vocabulary size.
func (idx *InvertedIndex) TermCount() int {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	return len(idx.terms)
}

// DocumentFrequencies returns the document frequency of every indexed
// term, in no particular order. Used by diagnostics tooling that plots
// the shape of the vocabulary's document-frequency distribution.
func (idx *InvertedIndex) DocumentFrequencies() []uint32 {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	out := make([]uint32, 0, len(idx.terms))
	for _, e := range idx.terms {
		out = append(out, e.docFreq)
	}
	return out
}
