// Package slog provides logging decorators for novelex services built on
// the standard log/slog package.
package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/novelex"
)

// Ensure LoggingFetcher implements novelex.Fetcher.
var _ novelex.Fetcher = (*LoggingFetcher)(nil)

// LoggingFetcher wraps a Fetcher with logging.
type LoggingFetcher struct {
	next   novelex.Fetcher
	logger *slog.Logger
}

// NewLoggingFetcher creates a new LoggingFetcher.
func NewLoggingFetcher(next novelex.Fetcher, logger *slog.Logger) *LoggingFetcher {
	return &LoggingFetcher{next: next, logger: logger}
}

// Fetch delegates to the wrapped fetcher and logs the request.
func (f *LoggingFetcher) Fetch(ctx context.Context, req *novelex.Request) (resp *novelex.Response, err error) {
	defer func(begin time.Time) {
		attrs := []any{
			"url", req.URL,
			"method", method(req),
			"duration", time.Since(begin),
		}
		if resp != nil {
			attrs = append(attrs, "status", resp.Status, "bytes", len(resp.Body))
			if resp.FinalURL != "" && resp.FinalURL != req.URL {
				attrs = append(attrs, "final_url", resp.FinalURL)
			}
		}
		if err != nil {
			attrs = append(attrs, "err", err)
		}
		f.logger.Info("fetch", attrs...)
	}(time.Now())
	return f.next.Fetch(ctx, req)
}

// Close delegates to the wrapped fetcher.
func (f *LoggingFetcher) Close() error {
	return f.next.Close()
}

func method(req *novelex.Request) string {
	if req.Method == "" {
		return "GET"
	}
	return req.Method
}
