package mock

import (
	"context"

	"github.com/fwojciec/novelex"
)

var _ novelex.Fetcher = (*Fetcher)(nil)

// Fetcher is a mock implementation of novelex.Fetcher.
type Fetcher struct {
	FetchFn func(ctx context.Context, req *novelex.Request) (*novelex.Response, error)
	CloseFn func() error
}

func (f *Fetcher) Fetch(ctx context.Context, req *novelex.Request) (*novelex.Response, error) {
	return f.FetchFn(ctx, req)
}

func (f *Fetcher) Close() error {
	return f.CloseFn()
}

var _ novelex.DomainLimiter = (*DomainLimiter)(nil)

// DomainLimiter is a mock implementation of novelex.DomainLimiter.
type DomainLimiter struct {
	WaitFn func(ctx context.Context, domain string) error
}

func (l *DomainLimiter) Wait(ctx context.Context, domain string) error {
	return l.WaitFn(ctx, domain)
}
