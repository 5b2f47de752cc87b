package index

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/melisekm/skwiki-search/internal/wiki"
)

func TestInsertDocumentAndGet(t *testing.T) {
	idx := New()
	idx.InsertDocument(&wiki.Page{DocID: 0, Title: "Bratislava", Terms: []string{"mesto", "hlavné", "mesto"}})
	idx.InsertDocument(&wiki.Page{DocID: 1, Title: "Košice", Terms: []string{"mesto", "východ"}})

	postings, err := idx.Get("mesto")
	require.NoError(t, err)
	require.Len(t, postings, 2)
	assert.Equal(t, uint64(0), postings[0].DocID)
	assert.Equal(t, uint32(2), postings[0].TermFreq)
	assert.Equal(t, uint64(1), postings[1].DocID)
	assert.Equal(t, uint32(1), postings[1].TermFreq)

	df, ok := idx.DocumentFrequency("mesto")
	require.True(t, ok)
	assert.Equal(t, uint32(2), df)

	cf, ok := idx.CorpusFrequency("mesto")
	require.True(t, ok)
	assert.Equal(t, uint64(3), cf)

	title, ok := idx.Title(1)
	require.True(t, ok)
	assert.Equal(t, "Košice", title)
}

func TestGetMissingTermReturnsSentinel(t *testing.T) {
	idx := New()
	_, err := idx.Get("neexistuje")
	assert.ErrorIs(t, err, ErrMissingTerm)
}

func TestDocumentAndTermCounts(t *testing.T) {
	idx := New()
	idx.InsertDocument(&wiki.Page{DocID: 0, Title: "A", Terms: []string{"x", "y"}})
	idx.InsertDocument(&wiki.Page{DocID: 1, Title: "B", Terms: []string{"y", "z"}})
	assert.Equal(t, 2, idx.DocumentCount())
	assert.Equal(t, 3, idx.TermCount())
}

func TestDocumentFrequenciesCoversEveryTerm(t *testing.T) {
	idx := New()
	idx.InsertDocument(&wiki.Page{DocID: 0, Title: "A", Terms: []string{"x", "y"}})
	idx.InsertDocument(&wiki.Page{DocID: 1, Title: "B", Terms: []string{"y", "z"}})

	dfs := idx.DocumentFrequencies()
	assert.Len(t, dfs, 3)

	var total uint32
	for _, df := range dfs {
		total += df
	}
	assert.Equal(t, uint32(4), total) // x:1 + y:2 + z:1
}
