package index

import (
	"context"
	"fmt"
	"runtime"
	"strconv"
	"strings"

	"github.com/lanrat/extsort"
	"golang.org/x/sync/errgroup"

	"github.com/melisekm/skwiki-search/internal/wiki"
)

// docIDWidth is wide enough to zero-pad any uint64 doc_id so that
// lexicographic string sorting on the padded decimal agrees with
// numeric sorting.
const docIDWidth = 20

// Build constructs an InvertedIndex from pages, the same way the
// Wikidata QRank builder's buildTitles feeds an unsorted stream of
// lines into extsort and consumes the sorted result on another
// goroutine: one goroutine emits one "term\x00doc_id\x00freq" line per
// (term, page) pair, lanrat/extsort sorts that stream (bounded memory,
// spilling to disk for corpora too large to sort in place), and a
// second goroutine folds consecutive same-term lines into this term's
// postings list. This keeps postings ordering deterministic across
// runs and workers without a global mutex on a shared in-memory map.
func Build(ctx context.Context, pages []*wiki.Page) (*InvertedIndex, error) {
	idx := New()
	for _, p := range pages {
		idx.docs[p.DocID] = p
	}

	lines := make(chan string, 4096)
	config := extsort.DefaultConfig()
	config.NumWorkers = runtime.NumCPU()
	sorter, outChan, errChan := extsort.Strings(lines, config)

	group, groupCtx := errgroup.WithContext(ctx)
	group.Go(func() error {
		defer close(lines)
		for _, p := range pages {
			freq := make(map[string]uint32, len(p.Terms))
			for _, t := range p.Terms {
				freq[t]++
			}
			for term, tf := range freq {
				select {
				case <-groupCtx.Done():
					return groupCtx.Err()
				case lines <- encodeTermLine(term, p.DocID, tf):
				}
			}
		}
		return nil
	})

	group.Go(func() error {
		sorter.Sort(groupCtx)

		var currentTerm string
		var postings []Posting
		var corpusFreq uint64

		flush := func() {
			if currentTerm == "" {
				return
			}
			idx.terms[currentTerm] = &termEntry{
				docFreq:    uint32(len(postings)),
				corpusFreq: corpusFreq,
				postings:   postings,
			}
		}

		for {
			select {
			case <-groupCtx.Done():
				return groupCtx.Err()
			case line, more := <-outChan:
				if !more {
					flush()
					return nil
				}
				term, docID, tf, err := decodeTermLine(line)
				if err != nil {
					return err
				}
				if term != currentTerm {
					flush()
					currentTerm = term
					postings = nil
					corpusFreq = 0
				}
				postings = append(postings, Posting{DocID: docID, TermFreq: tf})
				corpusFreq += uint64(tf)
			}
		}
	})

	if err := group.Wait(); err != nil {
		return nil, err
	}
	if err := <-errChan; err != nil {
		return nil, err
	}

	return idx, nil
}

func encodeTermLine(term string, docID uint64, termFreq uint32) string {
	var b strings.Builder
	b.WriteString(term)
	b.WriteByte(0)
	fmt.Fprintf(&b, "%0*d", docIDWidth, docID)
	b.WriteByte(0)
	b.WriteString(strconv.FormatUint(uint64(termFreq), 10))
	return b.String()
}

func decodeTermLine(line string) (term string, docID uint64, termFreq uint32, err error) {
	parts := strings.SplitN(line, "\x00", 3)
	if len(parts) != 3 {
		return "", 0, 0, fmt.Errorf("index: malformed sort line %q", line)
	}
	id, err := strconv.ParseUint(parts[1], 10, 64)
	if err != nil {
		return "", 0, 0, err
	}
	tf, err := strconv.ParseUint(parts[2], 10, 32)
	if err != nil {
		return "", 0, 0, err
	}
	return parts[0], id, uint32(tf), nil
}
