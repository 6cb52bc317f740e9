package novelex

import (
	"context"
	"net/url"
)

// Family identifies a site template family sharing one markup convention.
type Family string

// Supported site families.
const (
	FamilyUnknown      Family = ""
	FamilyLightNovelWP Family = "lightnovelwp"
	FamilyMadara       Family = "madara"
)

// Site is one content site: its identity plus the grammar for its family.
type Site struct {
	ID        string
	Name      string
	Lang      string
	Family    Family
	HasLocked bool // the site publishes paid chapters; offer the hide-locked setting
	Grammar   *Grammar
}

// Validate returns an error if the site contains invalid fields.
func (s *Site) Validate() error {
	if s.ID == "" {
		return Errorf(EINVALID, "site ID required")
	}
	if s.Name == "" {
		return Errorf(EINVALID, "site name required")
	}
	if s.Grammar == nil {
		return Errorf(EINVALID, "site %q grammar required", s.ID)
	}
	return s.Grammar.Validate()
}

// SiteOptions are the per-site knobs a family's grammar builder accepts.
type SiteOptions struct {
	ReverseChapters bool
	SeriesPath      string
	ChapterEndpoint string
	LockedItemClass string
	DeriveNumbers   bool
}

// GrammarBuilder constructs a family grammar for a site's base URL.
type GrammarBuilder func(baseURL string, opts SiteOptions) *Grammar

// ListOptions configures a popular-works listing request.
type ListOptions struct {
	// Latest orders the listing by most recent update.
	Latest bool

	// Filters are appended as query parameters in key order.
	Filters url.Values
}

// Source scrapes one site.
type Source interface {
	// Site returns the site the source scrapes.
	Site() *Site

	// PopularWorks returns one page of the site's popular listing.
	PopularWorks(ctx context.Context, page int, opts ListOptions) ([]WorkItem, error)

	// SearchWorks returns one page of search results. A non-2xx response
	// yields no results rather than an error.
	SearchWorks(ctx context.Context, term string, page int) ([]WorkItem, error)

	// ParseWork fetches and extracts a work's page.
	// Returns EBLOCKED if the site served a challenge page or redirected.
	ParseWork(ctx context.Context, path string) (*Work, error)

	// ParseChapter fetches a chapter and returns its body as HTML.
	ParseChapter(ctx context.Context, path string) (string, error)
}

// SourceRegistry manages the sources known to the program.
type SourceRegistry interface {
	// Get returns the source for a site ID.
	// Returns ENOTFOUND if no source is registered for the ID.
	Get(id string) (Source, error)

	// Register adds a source. A source with the same site ID is replaced.
	Register(source Source)

	// List returns the registered sites sorted by ID.
	List() []*Site
}

// PreferenceService stores user preferences consumed by sources.
type PreferenceService interface {
	// HideLocked reports whether locked chapters should be hidden for a site.
	// Returns false when no preference has been stored.
	HideLocked(ctx context.Context, siteID string) (bool, error)

	// SetHideLocked stores the hide-locked preference for a site.
	SetHideLocked(ctx context.Context, siteID string, hide bool) error
}
