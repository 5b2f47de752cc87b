package wiki

import (
	"io"
	"regexp"
)

var (
	pagePattern  = regexp.MustCompile(`(?s)<page>(.*?)</page>`)
	titlePattern = regexp.MustCompile(`(?s)<title>(.*?)</title>`)
	textPattern  = regexp.MustCompile(`(?s)<text.*?>(.*?)</text>`)
)

// SkipNamespaces lists the title prefixes whose pages are discarded by
// Parse, per spec.md §4.1's skip list.
var SkipNamespaces = []string{"Wikipédia:", "MediaWiki:"}

// Parser splits a MediaWiki export dump into Pages. It tolerates
// malformed XML inside <text> bodies (wiki markup routinely contains
// unbalanced tags) by matching on explicit literal delimiters instead
// of parsing the dump as strict XML.
type Parser struct {
	skipNamespaces []string
}

func NewParser() *Parser {
	return &Parser{skipNamespaces: SkipNamespaces}
}

// Parse reads the whole dump from r and returns its pages in dump
// order, with DocID assigned 0, 1, 2, ... skipping only the pages
// whose title starts with a namespace in the skip list. A page with no
// <text> body gets an empty RawText rather than being treated as an
// error.
func (p *Parser) Parse(r io.Reader) ([]*Page, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return p.ParseBytes(data), nil
}

// ParseBytes is like Parse but takes the dump contents already in
// memory, avoiding a copy when the caller has already buffered it.
func (p *Parser) ParseBytes(data []byte) []*Page {
	blocks := pagePattern.FindAllSubmatch(data, -1)
	pages := make([]*Page, 0, len(blocks))

	var docID uint64
	for _, block := range blocks {
		page := block[1]

		title := ""
		if m := titlePattern.FindSubmatch(page); m != nil {
			title = string(m[1])
		}
		if p.skipped(title) {
			continue
		}

		text := ""
		if m := textPattern.FindSubmatch(page); m != nil {
			text = string(m[1])
		}

		var infobox *Infobox
		if text != "" {
			infobox = ParseInfobox(text)
		}

		pages = append(pages, &Page{
			DocID:   docID,
			Title:   title,
			RawText: text,
			Infobox: infobox,
		})
		docID++
	}

	return pages
}

func (p *Parser) skipped(title string) bool {
	for _, ns := range p.skipNamespaces {
		if len(title) >= len(ns) && title[:len(ns)] == ns {
			return true
		}
	}
	return false
}
