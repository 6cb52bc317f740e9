package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/novelex"
)

// DefaultContentSelector selects the paragraphs of a chapter body.
const DefaultContentSelector = "div.epcontent p"

// Ensure ContentExtractor implements novelex.ContentExtractor at compile time.
var _ novelex.ContentExtractor = (*ContentExtractor)(nil)

// ContentExtractor returns the paragraphs of a chapter page.
type ContentExtractor struct {
	selector string
}

// NewContentExtractor creates a ContentExtractor for the given selector.
// An empty selector uses DefaultContentSelector.
func NewContentExtractor(selector string) *ContentExtractor {
	if selector == "" {
		selector = DefaultContentSelector
	}
	return &ContentExtractor{selector: selector}
}

// ExtractContent returns the selected paragraphs as HTML joined by newlines.
func (e *ContentExtractor) ExtractContent(html string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", novelex.Errorf(novelex.EMALFORMED, "failed to parse HTML: %v", err)
	}

	var paragraphs []string
	var outerErr error
	doc.Find(e.selector).EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		p, err := goquery.OuterHtml(sel)
		if err != nil {
			outerErr = err
			return false
		}
		paragraphs = append(paragraphs, p)
		return true
	})
	if outerErr != nil {
		return "", novelex.Errorf(novelex.EMALFORMED, "failed to render paragraph: %v", outerErr)
	}
	return strings.Join(paragraphs, "\n"), nil
}
