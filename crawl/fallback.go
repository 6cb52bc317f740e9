package crawl

import (
	"context"
	"sync"

	"github.com/fwojciec/novelex"
)

var _ novelex.Fetcher = (*FallbackFetcher)(nil)

// FallbackFetcher fetches with a fast primary transport and repeats the
// request with a browser-backed secondary when the primary is served a
// bot-challenge page. The secondary is created on first use, so a run that
// never meets a challenge never launches a browser.
type FallbackFetcher struct {
	primary      novelex.Fetcher
	newSecondary func() (novelex.Fetcher, error)
	titles       novelex.TitleReader

	once      sync.Once
	secondary novelex.Fetcher
	err       error
}

// NewFallbackFetcher returns a FallbackFetcher. newSecondary is called at
// most once.
func NewFallbackFetcher(primary novelex.Fetcher, newSecondary func() (novelex.Fetcher, error), titles novelex.TitleReader) *FallbackFetcher {
	return &FallbackFetcher{
		primary:      primary,
		newSecondary: newSecondary,
		titles:       titles,
	}
}

// Fetch fetches req with the primary and falls back on a challenge page.
// The secondary's response is returned as is; the caller's guard decides
// whether it is still blocked.
func (f *FallbackFetcher) Fetch(ctx context.Context, req *novelex.Request) (*novelex.Response, error) {
	resp, err := f.primary.Fetch(ctx, req)
	if err != nil {
		return nil, err
	}
	if !novelex.IsChallengeTitle(f.titles.Title(resp.Body)) {
		return resp, nil
	}

	secondary, err := f.getSecondary()
	if err != nil {
		// Without a browser the challenge page is the best answer.
		return resp, nil
	}
	return secondary.Fetch(ctx, req)
}

func (f *FallbackFetcher) getSecondary() (novelex.Fetcher, error) {
	f.once.Do(func() {
		f.secondary, f.err = f.newSecondary()
	})
	return f.secondary, f.err
}

// Close closes the primary and, if it was created, the secondary.
func (f *FallbackFetcher) Close() error {
	err := f.primary.Close()
	f.once.Do(func() {
		f.err = novelex.Errorf(novelex.EINVALID, "fetcher is closed")
	})
	if f.secondary != nil {
		if serr := f.secondary.Close(); err == nil {
			err = serr
		}
	}
	return err
}
