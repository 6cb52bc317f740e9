package mock

import "github.com/fwojciec/novelex"

var _ novelex.ListingParser = (*ListingParser)(nil)

// ListingParser is a mock implementation of novelex.ListingParser.
type ListingParser struct {
	ParseListingFn func(html string, baseURL string) ([]novelex.WorkItem, error)
}

func (p *ListingParser) ParseListing(html string, baseURL string) ([]novelex.WorkItem, error) {
	return p.ParseListingFn(html, baseURL)
}

var _ novelex.ContentExtractor = (*ContentExtractor)(nil)

// ContentExtractor is a mock implementation of novelex.ContentExtractor.
type ContentExtractor struct {
	ExtractContentFn func(html string) (string, error)
}

func (e *ContentExtractor) ExtractContent(html string) (string, error) {
	return e.ExtractContentFn(html)
}

var _ novelex.TitleReader = (*TitleReader)(nil)

// TitleReader is a mock implementation of novelex.TitleReader.
type TitleReader struct {
	TitleFn func(html string) string
}

func (r *TitleReader) Title(html string) string {
	return r.TitleFn(html)
}
