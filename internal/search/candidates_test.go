package search

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/melisekm/skwiki-search/internal/index"
	"github.com/melisekm/skwiki-search/internal/wiki"
)

func testIndexForCandidates(t *testing.T) *index.InvertedIndex {
	t.Helper()
	docs := []*wiki.Page{
		{DocID: 0, Title: "A", Terms: []string{"alfa", "beta"}},
		{DocID: 1, Title: "B", Terms: []string{"beta", "gama"}},
		{DocID: 2, Title: "C", Terms: []string{"gama"}},
	}
	idx, err := index.Build(context.Background(), docs)
	require.NoError(t, err)
	return idx
}

func TestCandidateDocIDsOR(t *testing.T) {
	e := &Engine{idx: testIndexForCandidates(t)}
	ids := e.candidateDocIDs([]string{"alfa", "gama"}, CombineOR)
	assert.Equal(t, []uint64{0, 1, 2}, ids)
}

func TestCandidateDocIDsANDIntersects(t *testing.T) {
	e := &Engine{idx: testIndexForCandidates(t)}
	ids := e.candidateDocIDs([]string{"beta", "gama"}, CombineAND)
	assert.Equal(t, []uint64{1}, ids)
}

func TestCandidateDocIDsANDSkipsMissingTerm(t *testing.T) {
	e := &Engine{idx: testIndexForCandidates(t)}
	ids := e.candidateDocIDs([]string{"neexistuje", "alfa"}, CombineAND)
	assert.Equal(t, []uint64{0}, ids)
}

func TestCandidateDocIDsANDAllTermsMissingYieldsEmpty(t *testing.T) {
	e := &Engine{idx: testIndexForCandidates(t)}
	ids := e.candidateDocIDs([]string{"neexistuje1", "neexistuje2"}, CombineAND)
	assert.Empty(t, ids)
}
