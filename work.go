package novelex

import (
	"context"
	"strings"
	"time"
)

// DefaultCover is the cover value used when a page advertises no image.
const DefaultCover = "novelex:default-cover"

// LockGlyph is the default marker sites use for paid chapters. It prefixes
// the display title of a locked chapter that is not hidden.
const LockGlyph = "🔒"

// Status is the publication status of a work.
type Status string

// Publication statuses.
const (
	StatusUnknown   Status = "Unknown"
	StatusOngoing   Status = "Ongoing"
	StatusCompleted Status = "Completed"
	StatusOnHiatus  Status = "On Hiatus"
)

// Work is the normalized record extracted from a work's page: its metadata
// and ordered chapter list.
type Work struct {
	Path     string    `json:"path"`
	Name     string    `json:"name"`
	Cover    string    `json:"cover"`
	Summary  string    `json:"summary"`
	Author   string    `json:"author"`
	Artist   string    `json:"artist"`
	Status   Status    `json:"status"`
	Genres   []string  `json:"genres"`
	Rating   *float64  `json:"rating,omitempty"`
	Chapters []Chapter `json:"chapters"`
}

// Validate returns ESTRUCTURE if the work lacks the name every recognized
// page carries. The extractor never makes this judgment itself. An empty
// chapter list is valid: new works and fully hidden locked lists have none.
func (w *Work) Validate() error {
	if w.Name == "" {
		return Errorf(ESTRUCTURE, "work name not found, page structure not recognized")
	}
	return nil
}

// GenreString returns the genres joined the way sites display them.
func (w *Work) GenreString() string {
	return strings.Join(w.Genres, ", ")
}

// Chapter is one entry of a work's chapter list.
type Chapter struct {
	Path        string `json:"path"`
	Name        string `json:"name"`
	ReleaseTime string `json:"releaseTime,omitempty"`
	Number      int    `json:"chapterNumber"`
	Locked      bool   `json:"locked"`
}

// Validate returns an error if the chapter contains invalid fields.
func (c *Chapter) Validate() error {
	if c.Path == "" {
		return Errorf(EINVALID, "chapter path required")
	}
	return nil
}

// WorkItem is one card of a popular or search listing.
type WorkItem struct {
	Name  string `json:"name"`
	Path  string `json:"path"`
	Cover string `json:"cover"`
}

// Policy carries caller preferences consumed during extraction.
type Policy struct {
	// HideLocked drops locked chapters from the output instead of
	// prefixing their titles with the lock glyph.
	HideLocked bool
}

// Entry is a work persisted for a site.
type Entry struct {
	ID        string    `json:"id"`
	SiteID    string    `json:"siteId"`
	Hash      string    `json:"hash"`
	Work      *Work     `json:"work"`
	FetchedAt time.Time `json:"fetchedAt"`
}

// Validate returns an error if the entry contains invalid fields.
func (e *Entry) Validate() error {
	if e.SiteID == "" {
		return Errorf(EINVALID, "entry site ID required")
	}
	if e.Work == nil || e.Work.Path == "" {
		return Errorf(EINVALID, "entry work path required")
	}
	return nil
}

// WorkService represents a service for managing persisted works.
type WorkService interface {
	// SaveWork inserts or replaces the entry for (SiteID, Work.Path).
	SaveWork(ctx context.Context, entry *Entry) error

	// FindWork retrieves the entry for a work.
	// Returns ENOTFOUND if the work has not been saved.
	FindWork(ctx context.Context, siteID, path string) (*Entry, error)

	// FindWorks retrieves entries matching the filter, without chapters.
	FindWorks(ctx context.Context, filter WorkFilter) ([]*Entry, error)

	// DeleteWork permanently removes a work and its chapters.
	// Returns ENOTFOUND if the work does not exist.
	DeleteWork(ctx context.Context, siteID, path string) error
}

// WorkFilter represents a filter for FindWorks.
type WorkFilter struct {
	SiteID *string `json:"siteId"`
	Name   *string `json:"name"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}
