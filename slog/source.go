package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/novelex"
)

// Ensure LoggingSource implements novelex.Source.
var _ novelex.Source = (*LoggingSource)(nil)

// LoggingSource wraps a Source with logging of every site operation.
type LoggingSource struct {
	next   novelex.Source
	logger *slog.Logger
}

// NewLoggingSource creates a new LoggingSource. Log records carry the
// site ID.
func NewLoggingSource(next novelex.Source, logger *slog.Logger) *LoggingSource {
	return &LoggingSource{next: next, logger: logger.With("site", next.Site().ID)}
}

// Site delegates to the wrapped source.
func (s *LoggingSource) Site() *novelex.Site {
	return s.next.Site()
}

// PopularWorks delegates to the wrapped source and logs the listing.
func (s *LoggingSource) PopularWorks(ctx context.Context, page int, opts novelex.ListOptions) (items []novelex.WorkItem, err error) {
	defer func(begin time.Time) {
		s.logger.Info("popular works",
			"page", page,
			"latest", opts.Latest,
			"count", len(items),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.PopularWorks(ctx, page, opts)
}

// SearchWorks delegates to the wrapped source and logs the search.
func (s *LoggingSource) SearchWorks(ctx context.Context, term string, page int) (items []novelex.WorkItem, err error) {
	defer func(begin time.Time) {
		s.logger.Info("search works",
			"term", term,
			"page", page,
			"count", len(items),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.SearchWorks(ctx, term, page)
}

// ParseWork delegates to the wrapped source and logs the extraction.
func (s *LoggingSource) ParseWork(ctx context.Context, path string) (work *novelex.Work, err error) {
	defer func(begin time.Time) {
		attrs := []any{"path", path}
		if work != nil {
			attrs = append(attrs, "name", work.Name, "chapters", len(work.Chapters))
		}
		attrs = append(attrs, "duration", time.Since(begin))
		if err != nil {
			attrs = append(attrs, "code", novelex.ErrorCode(err), "err", err)
		}
		s.logger.Info("parse work", attrs...)
	}(time.Now())
	return s.next.ParseWork(ctx, path)
}

// ParseChapter delegates to the wrapped source and logs the chapter fetch.
func (s *LoggingSource) ParseChapter(ctx context.Context, path string) (content string, err error) {
	defer func(begin time.Time) {
		s.logger.Info("parse chapter",
			"path", path,
			"bytes", len(content),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.ParseChapter(ctx, path)
}
