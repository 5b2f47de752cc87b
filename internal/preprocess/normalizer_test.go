package preprocess

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeCollapsesWhitespaceAndStripsURL(t *testing.T) {
	input := "Toto je test na\n odstranenie novych riadkov a URL adries. https://www.google.com"
	want := "Toto je test na odstranenie novych riadkov a URL adries. "
	assert.Equal(t, want, Normalize(input))
}

func TestNormalizeReplacesZeroWidthSpaceWithSpace(t *testing.T) {
	input := "slovo​slovo"
	assert.Equal(t, "slovo slovo", Normalize(input))
}

func TestNormalizeIsIdempotent(t *testing.T) {
	input := "Text  s   medzerami​a URL http://example.com/x"
	once := Normalize(input)
	twice := Normalize(once)
	assert.Equal(t, once, twice)
}
