package novelex

import (
	"context"
	"time"
)

// ChapterDocument is a downloaded chapter body ready to be written out.
type ChapterDocument struct {
	SiteID    string
	WorkName  string
	Chapter   Chapter
	SourceURL string
	Content   string // Markdown
	FetchedAt time.Time
}

// Validate returns an error if the document contains invalid fields.
func (d *ChapterDocument) Validate() error {
	if d.SiteID == "" {
		return Errorf(EINVALID, "chapter document site ID required")
	}
	return d.Chapter.Validate()
}

// ChapterWriter persists downloaded chapters.
type ChapterWriter interface {
	WriteChapter(ctx context.Context, doc *ChapterDocument) error
}
