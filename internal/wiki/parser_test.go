package wiki

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleDump = `<mediawiki>
<page>
<title>Hlavná stránka</title>
<revision>
<text xml:space="preserve">Toto je hlavná stránka.</text>
</revision>
</page>
<page>
<title>Rusko</title>
<revision>
<text xml:space="preserve">{{Infobox štát
| názov = Rusko
| hlavné mesto = [[Moskva]]
| mena =
}}
Rusko je štát vo východnej Európe a severnej Ázii.</text>
</revision>
</page>
<page>
<title>Wikipédia:O projekte</title>
<revision>
<text xml:space="preserve">Toto sa preskočí.</text>
</revision>
</page>
<page>
<title>Prázdna stránka</title>
<revision>
</revision>
</page>
</mediawiki>`

func TestParseAssignsDocIDsInOrder(t *testing.T) {
	parser := NewParser()
	pages := parser.ParseBytes([]byte(sampleDump))
	require.Len(t, pages, 3)

	assert.Equal(t, uint64(0), pages[0].DocID)
	assert.Equal(t, "Hlavná stránka", pages[0].Title)

	assert.Equal(t, uint64(1), pages[1].DocID)
	assert.Equal(t, "Rusko", pages[1].Title)

	assert.Equal(t, uint64(2), pages[2].DocID)
	assert.Equal(t, "Prázdna stránka", pages[2].Title)
	assert.Equal(t, "", pages[2].RawText)
}

func TestParseSkipsNamespacedPages(t *testing.T) {
	parser := NewParser()
	pages := parser.ParseBytes([]byte(sampleDump))
	for _, page := range pages {
		assert.NotEqual(t, "Wikipédia:O projekte", page.Title)
	}
}

func TestParseExtractsFirstInfobox(t *testing.T) {
	parser := NewParser()
	pages := parser.ParseBytes([]byte(sampleDump))

	russia := pages[1]
	require.NotNil(t, russia.Infobox)
	assert.Equal(t, "Štát", russia.Infobox.Name)
	assert.Equal(t, "Rusko", russia.Infobox.Properties["názov"])
	assert.Equal(t, "Moskva", russia.Infobox.Properties["hlavné mesto"])
	_, hasEmptyKey := russia.Infobox.Properties["mena"]
	assert.False(t, hasEmptyKey)
}

func TestParseEmptyDumpYieldsNoPages(t *testing.T) {
	parser := NewParser()
	pages := parser.ParseBytes([]byte("<mediawiki></mediawiki>"))
	assert.Empty(t, pages)
}

func TestPageEqualByDocID(t *testing.T) {
	a := &Page{DocID: 5, Title: "A"}
	b := &Page{DocID: 5, Title: "B"}
	c := &Page{DocID: 6, Title: "A"}
	assert.True(t, a.Equal(b))
	assert.False(t, a.Equal(c))
}
