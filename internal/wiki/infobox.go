package wiki

import (
	"regexp"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Infobox is the structured sidebar of a wiki article:
// {{Infobox <name> | key = value | ... }}. Properties preserves
// insertion order via Keys, since the data model treats the attribute
// map as ordered.
type Infobox struct {
	Name       string
	Keys       []string
	Properties map[string]string
}

var (
	linkPattern    = regexp.MustCompile(`\[\[(?:(.+?)\|)?(.+?)\]\]`)
	nonAlnumRegexp = regexp.MustCompile(`[^\p{L}\p{N}]+`)
	titleCaser     = cases.Title(language.Und)
)

const infoboxOpen = "{{Infobox"

// ParseInfobox extracts the first {{Infobox ...}} block from text and
// normalizes it per spec.md §4.2. It returns nil if no infobox is
// present, or if the one found has no surviving attributes (an
// infobox with zero properties is rejected, not returned empty).
//
// Go's RE2 engine has no lookahead or backreference tracking, so both
// the outer block boundary (which must balance nested {{templates}}
// to find its true closing "}}", not just the first one) and the
// attribute-value grammar (balanced [[links]], {{templates}} and
// <tags>, one level deep) are hand-parsed below rather than expressed
// as regular expressions the way the Python original does.
func ParseInfobox(text string) *Infobox {
	name, attrsRaw, ok := findInfoboxBlock(text)
	if !ok {
		return nil
	}

	normalizedName := normalizeInfoboxName(name)
	keys, properties := parseInfoboxAttrs(attrsRaw)
	if len(keys) == 0 {
		return nil
	}

	return &Infobox{Name: normalizedName, Keys: keys, Properties: properties}
}

// findInfoboxBlock locates the first {{Infobox ...}} block in text and
// splits it into the raw name (up to the first newline or pipe) and
// the raw attributes blob (everything up to the block's balanced
// closing "}}").
func findInfoboxBlock(text string) (name string, attrs string, ok bool) {
	start := strings.Index(text, infoboxOpen)
	if start == -1 {
		return "", "", false
	}
	rest := text[start+len(infoboxOpen):]

	nameEnd := strings.IndexAny(rest, "\n|")
	if nameEnd == -1 {
		return "", "", false
	}
	name = rest[:nameEnd]
	body := rest[nameEnd:]

	depth := 1
	i, n := 0, len(body)
	for i < n {
		switch {
		case i+1 < n && body[i] == '{' && body[i+1] == '{':
			depth++
			i += 2
		case i+1 < n && body[i] == '}' && body[i+1] == '}':
			depth--
			i += 2
			if depth == 0 {
				return name, body[:i-2], true
			}
		default:
			i++
		}
	}
	return "", "", false
}

// normalizeInfoboxName trims, title-cases, keeps only the first two
// whitespace-delimited words, then strips everything that isn't a
// letter or digit.
func normalizeInfoboxName(raw string) string {
	titled := titleCaser.String(strings.TrimSpace(raw))
	words := strings.Fields(titled)
	if len(words) > 2 {
		words = words[:2]
	}
	joined := strings.Join(words, "")
	return nonAlnumRegexp.ReplaceAllString(joined, "")
}

// parseInfoboxAttrs scans a "| key = value | key = value ..." string
// for top-level "|"-delimited attributes. Empty values are dropped;
// [[link|text]] and [[text]] collapse to their display text.
func parseInfoboxAttrs(raw string) ([]string, map[string]string) {
	keys := make([]string, 0, 8)
	properties := make(map[string]string, 8)

	n := len(raw)
	i := 0
	for i < n {
		if raw[i] != '|' {
			i++
			continue
		}
		i++ // consume '|'

		eq := strings.IndexByte(raw[i:], '=')
		if eq == -1 {
			break
		}
		key := strings.TrimSpace(raw[i : i+eq])
		i += eq + 1

		value, consumed := parseInfoboxValue(raw[i:])
		i += consumed

		value = strings.TrimSpace(value)
		value = linkPattern.ReplaceAllString(value, "$2")
		if value == "" || key == "" {
			continue
		}

		if _, seen := properties[key]; !seen {
			keys = append(keys, key)
		}
		properties[key] = value
	}

	return keys, properties
}

// parseInfoboxValue consumes the maximal prefix of s that is a
// concatenation of balanced <tags>, [[links]], {{templates}} (each one
// level deep, no further nesting) and runs of plain characters
// excluding "|{}[]<>". It returns the assembled value and how many
// bytes of s were consumed; a disallowed stray bracket character ends
// the value there, mirroring how the Python regex's "+" repetition
// stops at the first component it can't match.
func parseInfoboxValue(s string) (string, int) {
	var b strings.Builder
	n := len(s)
	i := 0
	for i < n {
		switch {
		case s[i] == '<':
			end := strings.IndexByte(s[i+1:], '>')
			if end == -1 || strings.ContainsAny(s[i+1:i+1+end], "<>") {
				return b.String(), i
			}
			b.WriteString(s[i : i+1+end+1])
			i += end + 2

		case s[i] == '[' && i+1 < n && s[i+1] == '[':
			closeAt := strings.Index(s[i+2:], "]]")
			if closeAt == -1 {
				return b.String(), i
			}
			end := i + 2 + closeAt + 2
			b.WriteString(s[i:end])
			i = end

		case s[i] == '{' && i+1 < n && s[i+1] == '{':
			closeAt := strings.Index(s[i+2:], "}}")
			if closeAt == -1 {
				return b.String(), i
			}
			end := i + 2 + closeAt + 2
			b.WriteString(s[i:end])
			i = end

		case strings.IndexByte("|{}[]<>", s[i]) >= 0:
			return b.String(), i

		default:
			start := i
			for i < n && strings.IndexByte("|{}[]<>", s[i]) < 0 {
				i++
			}
			b.WriteString(s[start:i])
		}
	}
	return b.String(), i
}
