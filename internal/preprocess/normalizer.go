package preprocess

import (
	"regexp"
	"strings"

	"golang.org/x/text/unicode/norm"
)

const zeroWidthSpace = "​"

var (
	whitespaceRunPattern = regexp.MustCompile(`\s+`)
	urlPattern           = regexp.MustCompile(`http\S+`)
)

// Normalize applies Unicode NFKC normalization, turns zero-width
// spaces into plain spaces, strips URLs, and collapses whitespace runs
// — in that order. Collapsing runs last, so neither a removed URL nor
// an NFKC-mapped space (such as a no-break space) leaves a double space
// behind, which keeps it idempotent:
// Normalize(Normalize(s)) == Normalize(s).
func Normalize(s string) string {
	s = norm.NFKC.String(s)
	s = strings.ReplaceAll(s, zeroWidthSpace, " ")
	s = urlPattern.ReplaceAllString(s, "")
	return whitespaceRunPattern.ReplaceAllString(s, " ")
}
