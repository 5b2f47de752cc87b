package preprocess

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

const (
	minTokenLen = 2
	maxTokenLen = 15
)

// wordRunPattern matches maximal runs of Unicode letters and
// underscores. The Python original's tokenizer regex is
// (((?![\d])\w)+): a \w run where every character must fail a
// lookahead for a digit. Since \w already includes digits, that
// lookahead's net effect is to exclude digits entirely from the run —
// which is exactly what matching letters-and-underscore runs gives us
// without needing a lookahead RE2 can't express.
var wordRunPattern = regexp.MustCompile(`[\p{L}_]+`)

// Tokenize lowercases s and splits it into word tokens, keeping only
// tokens whose rune length is within [2, 15] and that don't start with
// an underscore.
func Tokenize(s string) []string {
	lower := strings.ToLower(s)
	matches := wordRunPattern.FindAllString(lower, -1)
	tokens := make([]string, 0, len(matches))
	for _, tok := range matches {
		if strings.HasPrefix(tok, "_") {
			continue
		}
		n := utf8.RuneCountInString(tok)
		if n < minTokenLen || n > maxTokenLen {
			continue
		}
		tokens = append(tokens, tok)
	}
	return tokens
}
