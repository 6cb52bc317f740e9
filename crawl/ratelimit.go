package crawl

import (
	"context"
	"net/url"
	"sync"

	"github.com/fwojciec/novelex"
	"golang.org/x/time/rate"
)

var _ novelex.DomainLimiter = (*DomainLimiter)(nil)

// DomainLimiter provides per-domain rate limiting using token buckets.
// It creates a separate rate limiter for each domain, so a sync over two
// sites proceeds in parallel while each site sees a polite request rate.
type DomainLimiter struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	rps      float64
}

// NewDomainLimiter creates a new DomainLimiter with the specified requests per second limit.
// Each domain gets its own limiter with a burst of 1 (no bursting allowed).
func NewDomainLimiter(rps float64) *DomainLimiter {
	return &DomainLimiter{
		limiters: make(map[string]*rate.Limiter),
		rps:      rps,
	}
}

// Wait blocks until the rate limit allows a request to the domain.
// Returns an error if the context is canceled before the wait completes.
func (d *DomainLimiter) Wait(ctx context.Context, domain string) error {
	d.mu.Lock()
	limiter, ok := d.limiters[domain]
	if !ok {
		limiter = rate.NewLimiter(rate.Limit(d.rps), 1)
		d.limiters[domain] = limiter
	}
	d.mu.Unlock()

	return limiter.Wait(ctx)
}

var _ novelex.Fetcher = (*LimitedFetcher)(nil)

// LimitedFetcher waits on a DomainLimiter keyed by the request host before
// delegating to the wrapped Fetcher.
type LimitedFetcher struct {
	fetcher novelex.Fetcher
	limiter novelex.DomainLimiter
}

// NewLimitedFetcher wraps fetcher with per-host rate limiting.
func NewLimitedFetcher(fetcher novelex.Fetcher, limiter novelex.DomainLimiter) *LimitedFetcher {
	return &LimitedFetcher{fetcher: fetcher, limiter: limiter}
}

// Fetch waits for the request's host and then fetches.
func (f *LimitedFetcher) Fetch(ctx context.Context, req *novelex.Request) (*novelex.Response, error) {
	u, err := url.Parse(req.URL)
	if err != nil {
		return nil, novelex.Errorf(novelex.EINVALID, "invalid URL %q", req.URL)
	}
	if err := f.limiter.Wait(ctx, u.Host); err != nil {
		return nil, err
	}
	return f.fetcher.Fetch(ctx, req)
}

// Close closes the wrapped Fetcher.
func (f *LimitedFetcher) Close() error {
	return f.fetcher.Close()
}
