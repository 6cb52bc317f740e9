// Package crawl drives sites: it fetches their pages, runs the extraction
// pipeline over them and keeps a local catalog of works in sync.
package crawl

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/fwojciec/novelex"
)

// DefaultPopularPath is the listing path used when a grammar names none.
const DefaultPopularPath = "/series/"

var _ novelex.Source = (*Source)(nil)

// Source scrapes one site by composing a transport, the extraction
// pipeline and the access guard.
type Source struct {
	site *novelex.Site

	Fetcher     novelex.Fetcher
	Tokenizer   novelex.Tokenizer
	Extractor   novelex.Extractor
	Normalizer  novelex.RecordNormalizer
	Listings    novelex.ListingParser
	Content     novelex.ContentExtractor
	Titles      novelex.TitleReader
	Preferences novelex.PreferenceService // optional

	// Now returns the reference time for relative dates. Defaults to time.Now.
	Now func() time.Time
}

// NewSource returns a Source for site. The caller fills in the collaborators.
func NewSource(site *novelex.Site) *Source {
	return &Source{site: site, Now: time.Now}
}

// Site returns the site the source scrapes.
func (s *Source) Site() *novelex.Site {
	return s.site
}

// PopularWorks returns one page of the popular listing, or of the most
// recently updated works when opts.Latest is set.
func (s *Source) PopularWorks(ctx context.Context, page int, opts novelex.ListOptions) ([]novelex.WorkItem, error) {
	return s.list(ctx, &novelex.Request{URL: s.PopularURL(page, opts)})
}

// SearchWorks returns one page of search results for term.
func (s *Source) SearchWorks(ctx context.Context, term string, page int) ([]novelex.WorkItem, error) {
	return s.list(ctx, &novelex.Request{URL: s.SearchURL(term, page), Search: true})
}

// PopularURL builds the popular listing URL for a page. Grammars with a
// post type list popular works through an empty search.
func (s *Source) PopularURL(page int, opts novelex.ListOptions) string {
	g := s.site.Grammar

	var b strings.Builder
	if g.PostType != "" {
		b.WriteString(s.SearchURL("", page))
	} else {
		path := g.PopularPath
		if path == "" {
			path = DefaultPopularPath
		}
		b.WriteString(s.join(path))
		b.WriteString("?page=")
		b.WriteString(strconv.Itoa(max(page, 1)))
	}
	if opts.Latest {
		b.WriteString("&")
		b.WriteString(g.Latest())
	}
	if len(opts.Filters) > 0 {
		b.WriteString("&")
		b.WriteString(opts.Filters.Encode())
	}
	return b.String()
}

// SearchURL builds the search URL for a term and page.
func (s *Source) SearchURL(term string, page int) string {
	u := s.join("page/" + strconv.Itoa(max(page, 1)) + "/?s=" + url.QueryEscape(term))
	if pt := s.site.Grammar.PostType; pt != "" {
		u += "&post_type=" + url.QueryEscape(pt)
	}
	return u
}

func (s *Source) list(ctx context.Context, req *novelex.Request) ([]novelex.WorkItem, error) {
	resp, err := s.fetch(ctx, req)
	if err != nil {
		return nil, err
	}
	if !resp.OK() {
		// A failed search means no results.
		return []novelex.WorkItem{}, nil
	}
	return s.Listings.ParseListing(resp.Body, s.site.Grammar.BaseURL)
}

// ParseWork fetches a work's page and extracts its record.
//
// Returns EBLOCKED when the site served a challenge page or redirected
// elsewhere, EUNAVAILABLE on a non-2xx status, EMALFORMED when the page
// cannot be tokenized and ESTRUCTURE when it carries no work name.
func (s *Source) ParseWork(ctx context.Context, path string) (*novelex.Work, error) {
	g := s.site.Grammar
	workURL := s.join(path)

	resp, err := s.fetch(ctx, &novelex.Request{URL: workURL})
	if err != nil {
		return nil, err
	}

	policy, err := s.policy(ctx)
	if err != nil {
		return nil, err
	}

	var tokErr error
	work := s.Extractor.Extract(novelex.Stream(s.Tokenizer.Tokenize(resp.Body), &tokErr), g, policy)
	if tokErr != nil {
		return nil, tokErr
	}

	if len(work.Chapters) == 0 && g.ChapterEndpoint != "" {
		chapters, err := s.fetchChapters(ctx, workURL, policy)
		if err != nil {
			return nil, err
		}
		work.Chapters = chapters
	}

	work.Path = path
	s.Normalizer.Normalize(work, g, s.now())
	if err := work.Validate(); err != nil {
		return nil, err
	}
	return work, nil
}

// fetchChapters POSTs to the grammar's chapter endpoint and reads the
// returned fragment as a chapter list.
func (s *Source) fetchChapters(ctx context.Context, workURL string, policy novelex.Policy) ([]novelex.Chapter, error) {
	g := s.site.Grammar
	endpoint := strings.TrimSuffix(workURL, "/") + "/" + strings.TrimPrefix(g.ChapterEndpoint, "/")

	resp, err := s.fetch(ctx, &novelex.Request{
		URL:     endpoint,
		Method:  "POST",
		Referer: workURL,
	})
	if err != nil {
		return nil, err
	}

	var tokErr error
	chapters := s.Extractor.ExtractChapters(novelex.Stream(s.Tokenizer.Tokenize(resp.Body), &tokErr), g, policy)
	if tokErr != nil {
		return nil, tokErr
	}
	return chapters, nil
}

// ParseChapter fetches a chapter page and returns its body as HTML.
// Returns ENOTFOUND when the page has no recognizable body.
func (s *Source) ParseChapter(ctx context.Context, path string) (string, error) {
	resp, err := s.fetch(ctx, &novelex.Request{URL: s.join(path)})
	if err != nil {
		return "", err
	}
	content, err := s.Content.ExtractContent(resp.Body)
	if err != nil {
		return "", err
	}
	if content == "" {
		return "", novelex.Errorf(novelex.ENOTFOUND, "chapter content not found at %q", path)
	}
	return content, nil
}

// fetch performs req and applies the access guard. Non-2xx responses are
// returned for search requests only.
func (s *Source) fetch(ctx context.Context, req *novelex.Request) (*novelex.Response, error) {
	resp, err := s.Fetcher.Fetch(ctx, req)
	if err != nil {
		var e *novelex.Error
		if errors.As(err, &e) {
			return nil, err
		}
		return nil, fmt.Errorf("fetching %s: %w", req.URL, err)
	}

	title := ""
	if s.Titles != nil {
		title = s.Titles.Title(resp.Body)
	}
	if err := novelex.Inspect(req.URL, resp.FinalURL, title).Err(); err != nil {
		return nil, err
	}

	if !resp.OK() && !req.Search {
		return nil, novelex.Errorf(novelex.EUNAVAILABLE, "could not reach site %s (status %d)", s.site.Name, resp.Status)
	}
	return resp, nil
}

// policy reads the caller preferences for this site. The hide-locked
// setting only applies to sites that publish locked chapters.
func (s *Source) policy(ctx context.Context) (novelex.Policy, error) {
	if !s.site.HasLocked || s.Preferences == nil {
		return novelex.Policy{}, nil
	}
	hide, err := s.Preferences.HideLocked(ctx, s.site.ID)
	if err != nil {
		return novelex.Policy{}, fmt.Errorf("reading hide-locked preference: %w", err)
	}
	return novelex.Policy{HideLocked: hide}, nil
}

func (s *Source) now() time.Time {
	if s.Now == nil {
		return time.Now()
	}
	return s.Now()
}

// join appends path to the site's base URL and collapses duplicate
// slashes after the scheme.
func (s *Source) join(path string) string {
	return SanitizeURL(s.site.Grammar.BaseURL + path)
}

// SanitizeURL collapses runs of slashes after the scheme separator.
func SanitizeURL(raw string) string {
	scheme, rest, ok := strings.Cut(raw, "://")
	if !ok {
		scheme, rest = "", raw
	}
	for strings.Contains(rest, "//") {
		rest = strings.ReplaceAll(rest, "//", "/")
	}
	if !ok {
		return rest
	}
	return scheme + "://" + rest
}
