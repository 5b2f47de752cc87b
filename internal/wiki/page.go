// Package wiki parses a MediaWiki XML dump into pages, extracting each
// page's title, article body and (optionally) its infobox sidebar.
package wiki

// Page is one article from the dump. DocID is assigned in parse order
// and never reused; it is the sole identity used to compare pages and
// to key postings in the inverted index.
type Page struct {
	DocID   uint64
	Title   string
	RawText string
	Infobox *Infobox

	// Terms holds the token/lemma sequence produced by the
	// preprocessing pipeline, in original token order with duplicates
	// retained. Vector is the parallel per-token TF-IDF weight: once
	// computed, len(Vector) == len(Terms) always holds.
	Terms  []string
	Vector []float64
}

// Equal reports whether two pages are the same document. DocID is the
// only field that matters for identity, matching spec.md's invariant.
func (p *Page) Equal(other *Page) bool {
	if p == nil || other == nil {
		return p == other
	}
	return p.DocID == other.DocID
}

// DiscardRawText drops the article body once preprocessing has
// consumed it, per spec.md's "raw_text may be discarded" invariant.
func (p *Page) DiscardRawText() {
	p.RawText = ""
}
