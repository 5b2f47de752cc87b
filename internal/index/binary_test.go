package index

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/melisekm/skwiki-search/internal/wiki"
)

func buildSampleIndex() *InvertedIndex {
	idx := New()
	idx.InsertDocument(&wiki.Page{
		DocID:  0,
		Title:  "Bratislava",
		Terms:  []string{"mesto", "hlavné", "mesto"},
		Vector: []float64{0.41, 0.81, 0.41},
		Infobox: &wiki.Infobox{
			Name:       "mesto",
			Keys:       []string{"kraj", "počet obyvateľov"},
			Properties: map[string]string{"kraj": "Bratislavský", "počet obyvateľov": "475000"},
		},
	})
	idx.InsertDocument(&wiki.Page{DocID: 1, Title: "Košice", Terms: []string{"mesto", "východ"}, Vector: []float64{0.7, 0.71}})
	return idx
}

func TestSaveLoadRoundTrip(t *testing.T) {
	idx := buildSampleIndex()

	var buf bytes.Buffer
	require.NoError(t, Save(idx, &buf))

	loaded, err := Load(&buf)
	require.NoError(t, err)

	assert.Equal(t, idx.DocumentCount(), loaded.DocumentCount())
	assert.Equal(t, idx.TermCount(), loaded.TermCount())

	title, ok := loaded.Title(0)
	require.True(t, ok)
	assert.Equal(t, "Bratislava", title)

	doc, ok := loaded.Document(0)
	require.True(t, ok)
	assert.Equal(t, []string{"mesto", "hlavné", "mesto"}, doc.Terms)
	assert.Equal(t, []float64{0.41, 0.81, 0.41}, doc.Vector)
	require.NotNil(t, doc.Infobox)
	assert.Equal(t, "mesto", doc.Infobox.Name)
	assert.Equal(t, []string{"kraj", "počet obyvateľov"}, doc.Infobox.Keys)
	assert.Equal(t, "Bratislavský", doc.Infobox.Properties["kraj"])

	docNoInfobox, ok := loaded.Document(1)
	require.True(t, ok)
	assert.Nil(t, docNoInfobox.Infobox)
	assert.Equal(t, []float64{0.7, 0.71}, docNoInfobox.Vector)

	postings, err := loaded.Get("mesto")
	require.NoError(t, err)
	assert.Equal(t, []Posting{{DocID: 0, TermFreq: 2}, {DocID: 1, TermFreq: 1}}, postings)

	df, _ := loaded.DocumentFrequency("mesto")
	assert.Equal(t, uint32(2), df)
	cf, _ := loaded.CorpusFrequency("mesto")
	assert.Equal(t, uint64(3), cf)
}

func TestLoadRejectsBadMagic(t *testing.T) {
	_, err := Load(bytes.NewReader([]byte("NOPE\x01\x00\x00")))
	assert.Error(t, err)
}

func TestLoadRejectsUnsupportedVersion(t *testing.T) {
	var buf bytes.Buffer
	buf.WriteString(magic)
	buf.WriteByte(99)
	_, err := Load(&buf)
	assert.Error(t, err)
}
