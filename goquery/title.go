package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/novelex"
)

// Ensure TitleReader implements novelex.TitleReader at compile time.
var _ novelex.TitleReader = (*TitleReader)(nil)

// TitleReader reads the document title for the bot-challenge check.
type TitleReader struct{}

// NewTitleReader creates a new TitleReader.
func NewTitleReader() *TitleReader {
	return &TitleReader{}
}

// Title returns the trimmed text of the first <title> element.
func (r *TitleReader) Title(html string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return ""
	}
	return strings.TrimSpace(doc.Find("title").First().Text())
}
