package novelex

import (
	"iter"
	"time"
)

// Extractor runs a grammar over a document's event stream.
type Extractor interface {
	// Extract consumes events exactly once and returns the accumulated
	// record. It never fails: missing fields resolve to their defaults.
	Extract(events iter.Seq[Event], g *Grammar, p Policy) *Work

	// ExtractChapters reads a detached chapter-list fragment as if it were
	// the content of the grammar's chapter list.
	ExtractChapters(events iter.Seq[Event], g *Grammar, p Policy) []Chapter
}

// RecordNormalizer finalizes an extracted record: chapter order and
// release-date resolution.
type RecordNormalizer interface {
	Normalize(w *Work, g *Grammar, now time.Time)
}

// DateNormalizer resolves localized relative dates ("3 days ago") and
// absolute dates to a calendar date. Unrecognized input is returned as is.
type DateNormalizer interface {
	Normalize(raw string, now time.Time) string
}

// ListingParser extracts work cards from popular and search listings.
type ListingParser interface {
	// ParseListing returns the cards in document order. Paths are made
	// relative to baseURL.
	ParseListing(html string, baseURL string) ([]WorkItem, error)
}

// ContentExtractor extracts a chapter's body from its page.
type ContentExtractor interface {
	// ExtractContent returns the chapter paragraphs as HTML.
	// Returns an empty string when the page has no recognizable body.
	ExtractContent(html string) (string, error)
}

// TitleReader reads a page's <title> text.
type TitleReader interface {
	// Title returns the trimmed title, or "" when the page has none.
	Title(html string) string
}
