package preprocess

import (
	"bufio"
	"io"
	"strings"
	"unicode/utf8"
)

// StopWords is a set of Slovak function words dropped from token
// streams, loaded once at startup and shared across documents.
type StopWords struct {
	set map[string]struct{}
}

// NewStopWords builds a StopWords set from already-split words.
func NewStopWords(words []string) *StopWords {
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		w = strings.ToLower(strings.TrimSpace(w))
		if w == "" {
			continue
		}
		set[w] = struct{}{}
	}
	return &StopWords{set: set}
}

// LoadStopWords reads one word per line from r.
func LoadStopWords(r io.Reader) (*StopWords, error) {
	scanner := bufio.NewScanner(r)
	var words []string
	for scanner.Scan() {
		words = append(words, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return NewStopWords(words), nil
}

func (sw *StopWords) Contains(word string) bool {
	_, ok := sw.set[word]
	return ok
}

// Filter drops tokens that are stop words or shorter than two runes.
func (sw *StopWords) Filter(tokens []string) []string {
	out := make([]string, 0, len(tokens))
	for _, t := range tokens {
		if utf8.RuneCountInString(t) <= 1 {
			continue
		}
		if sw.Contains(t) {
			continue
		}
		out = append(out, t)
	}
	return out
}
