package crawl

import (
	"context"
	"net/http"
	"time"

	"github.com/fwojciec/novelex"
)

// LogFunc is the signature for a logging function.
type LogFunc func(format string, args ...any)

// DefaultRetryDelays returns the backoff delays for fetch retries: 1s, 2s, 4s.
func DefaultRetryDelays() []time.Duration {
	return []time.Duration{1 * time.Second, 2 * time.Second, 4 * time.Second}
}

// FetchWithRetry fetches req with exponential backoff, retrying up to 3
// times (4 total attempts) with delays of 1s, 2s, 4s.
func FetchWithRetry(ctx context.Context, fetcher novelex.Fetcher, req *novelex.Request, logger LogFunc) (*novelex.Response, error) {
	return FetchWithRetryDelays(ctx, fetcher, req, logger, DefaultRetryDelays())
}

// FetchWithRetryDelays is like FetchWithRetry but allows configurable delays.
//
// Transport errors and transient statuses (429 and 5xx) are retried. Any
// other response is returned as is, so a 404 reaches the caller on the
// first attempt. After the last attempt a transient response is returned
// rather than turned into an error.
func FetchWithRetryDelays(ctx context.Context, fetcher novelex.Fetcher, req *novelex.Request, logger LogFunc, delays []time.Duration) (*novelex.Response, error) {
	maxAttempts := len(delays) + 1 // 1 initial + N retries

	var (
		lastResp *novelex.Response
		lastErr  error
	)
	for attempt := 0; attempt < maxAttempts; attempt++ {
		resp, err := fetcher.Fetch(ctx, req)
		if err == nil && !transient(resp.Status) {
			return resp, nil
		}
		lastResp, lastErr = resp, err

		// Don't retry after the last attempt
		if attempt >= maxAttempts-1 {
			break
		}

		// Check context before sleeping
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		if logger != nil {
			if err != nil {
				logger("  retry %s (attempt %d): %v", req.URL, attempt+2, err)
			} else {
				logger("  retry %s (attempt %d): status %d", req.URL, attempt+2, resp.Status)
			}
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(delays[attempt]):
		}
	}

	if lastErr != nil {
		return nil, lastErr
	}
	return lastResp, nil
}

func transient(status int) bool {
	return status == http.StatusTooManyRequests || status >= 500
}

var _ novelex.Fetcher = (*RetryFetcher)(nil)

// RetryFetcher wraps a Fetcher with FetchWithRetryDelays.
type RetryFetcher struct {
	Fetcher novelex.Fetcher
	Delays  []time.Duration // DefaultRetryDelays when nil
	Logger  LogFunc
}

// Fetch fetches req, retrying transient failures.
func (f *RetryFetcher) Fetch(ctx context.Context, req *novelex.Request) (*novelex.Response, error) {
	delays := f.Delays
	if delays == nil {
		delays = DefaultRetryDelays()
	}
	return FetchWithRetryDelays(ctx, f.Fetcher, req, f.Logger, delays)
}

// Close closes the wrapped Fetcher.
func (f *RetryFetcher) Close() error {
	return f.Fetcher.Close()
}
