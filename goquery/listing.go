package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/novelex"
)

// Ensure ListingParser implements novelex.ListingParser at compile time.
var _ novelex.ListingParser = (*ListingParser)(nil)

// ListingLayout locates work cards on a family's listing pages.
type ListingLayout struct {
	// Card selects one element per work.
	Card string

	// Link selects the card's link; its href is the work URL.
	Link string

	// NameAttr is the link attribute holding the name. Empty reads the
	// link text.
	NameAttr string

	// Strip selects elements removed from a card before reading it.
	Strip string

	// CoverAttrs are tried in order on the card's first image.
	CoverAttrs []string
}

// ArticleLayout reads LightNovel theme listings: one <article> per work
// whose first titled link carries the name.
var ArticleLayout = ListingLayout{
	Card:       "article",
	Link:       "a[href][title]",
	NameAttr:   "title",
	CoverAttrs: []string{"data-src", "src"},
}

// MadaraLayout reads Madara theme listings and search results.
var MadaraLayout = ListingLayout{
	Card:       ".page-item-detail, .c-tabs-item__content",
	Link:       ".post-title a[href]",
	Strip:      ".manga-title-badges",
	CoverAttrs: []string{"data-src", "src", "data-lazy-srcset"},
}

// ListingParser reads work cards from popular and search listings. A card
// contributes one item when its link has both an href and a name.
type ListingParser struct {
	layout ListingLayout
}

// NewListingParser creates a ListingParser for layout. A layout without a
// card selector uses ArticleLayout.
func NewListingParser(layout ListingLayout) *ListingParser {
	if layout.Card == "" {
		layout = ArticleLayout
	}
	return &ListingParser{layout: layout}
}

// ParseListing returns the cards in document order.
func (p *ListingParser) ParseListing(html string, baseURL string) ([]novelex.WorkItem, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, novelex.Errorf(novelex.EMALFORMED, "failed to parse HTML: %v", err)
	}

	items := []novelex.WorkItem{}
	doc.Find(p.layout.Card).Each(func(_ int, card *goquery.Selection) {
		if p.layout.Strip != "" {
			card.Find(p.layout.Strip).Remove()
		}
		link := card.Find(p.layout.Link).First()
		href, _ := link.Attr("href")
		name := link.Text()
		if p.layout.NameAttr != "" {
			name, _ = link.Attr(p.layout.NameAttr)
		}
		name = strings.Join(strings.Fields(name), " ")
		if href == "" || name == "" {
			return
		}

		items = append(items, novelex.WorkItem{
			Name:  name,
			Path:  workPath(href, baseURL),
			Cover: coverURL(card.Find("img").First(), p.layout.CoverAttrs),
		})
	})
	return items, nil
}

// workPath makes href relative to baseURL. Links to another host, which
// sites emit after moving domains, keep everything after the host.
func workPath(href, baseURL string) string {
	if strings.Contains(href, baseURL) {
		return strings.Replace(href, baseURL, "", 1)
	}
	parts := strings.SplitN(href, "/", 4)
	if len(parts) < 4 {
		return ""
	}
	return parts[3]
}

func coverURL(img *goquery.Selection, attrs []string) string {
	for _, attr := range attrs {
		if v, ok := img.Attr(attr); ok && strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v)
		}
	}
	return novelex.DefaultCover
}
