package preprocess

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTokenizeSplitsLowercasedWordRuns(t *testing.T) {
	input := "Toto je test na odstranenie novych riadkov a URL adries. "
	want := []string{"toto", "je", "test", "na", "odstranenie", "novych", "riadkov", "url", "adries"}
	assert.Equal(t, want, Tokenize(input))
}

func TestTokenizeDropsDigitsEntirely(t *testing.T) {
	assert.Equal(t, []string{"rok"}, Tokenize("rok2024"))
}

func TestTokenizeDropsTooShortAndTooLongTokens(t *testing.T) {
	long := ""
	for i := 0; i < 16; i++ {
		long += "a"
	}
	tokens := Tokenize("a bb " + long)
	assert.Equal(t, []string{"bb"}, tokens)
}

func TestTokenizeDropsUnderscorePrefixedTokens(t *testing.T) {
	assert.Empty(t, Tokenize("_internal"))
}

func TestTokenizeKeepsSlovakDiacritics(t *testing.T) {
	assert.Equal(t, []string{"štátny", "príslušník"}, Tokenize("Štátny príslušník"))
}
