// Package rod provides a browser-backed novelex.Fetcher for sites that
// gate their pages behind JavaScript bot challenges.
package rod

import (
	"context"
	"net/http"
	"time"

	"github.com/fwojciec/novelex"
	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/proto"
)

// DefaultFetchTimeout is the default timeout for page loads.
const DefaultFetchTimeout = 10 * time.Second

// DefaultSettle is how long a fetch waits for a challenge page to clear.
const DefaultSettle = 8 * time.Second

// Ensure Fetcher implements novelex.Fetcher at compile time.
var _ novelex.Fetcher = (*Fetcher)(nil)

// Fetcher retrieves rendered pages using Chrome browser automation. After
// the page loads it waits up to the settle duration for a bot-challenge
// interstitial to hand over to the real page.
// Fetcher is safe for concurrent use by multiple goroutines.
type Fetcher struct {
	manager     *BrowserManager
	managerOpts []ManagerOption
	timeout     time.Duration
	settle      time.Duration
	poll        time.Duration
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithManagerOptions configures the Fetcher's browser.
func WithManagerOptions(opts ...ManagerOption) Option {
	return func(f *Fetcher) {
		f.managerOpts = append(f.managerOpts, opts...)
	}
}

// WithTimeout sets the page load timeout.
func WithTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		f.timeout = d
	}
}

// WithSettle sets how long to wait for challenge pages to clear.
// Zero disables waiting.
func WithSettle(d time.Duration) Option {
	return func(f *Fetcher) {
		f.settle = d
	}
}

// NewFetcher creates a Fetcher on a recycling headless browser.
// Close must be called when the Fetcher is no longer needed.
//
// Returns an error if Chrome/Chromium cannot be found or launched.
func NewFetcher(opts ...Option) (*Fetcher, error) {
	f := &Fetcher{
		timeout: DefaultFetchTimeout,
		settle:  DefaultSettle,
		poll:    500 * time.Millisecond,
	}
	for _, opt := range opts {
		opt(f)
	}

	manager, err := NewBrowserManager(f.managerOpts...)
	if err != nil {
		return nil, err
	}
	f.manager = manager
	return f, nil
}

// Fetch navigates to the URL and returns the rendered page. Only GET is
// supported; form posts need the HTTP fetcher.
func (f *Fetcher) Fetch(ctx context.Context, r *novelex.Request) (*novelex.Response, error) {
	if r.Method != "" && r.Method != http.MethodGet {
		return nil, novelex.Errorf(novelex.EINVALID, "browser fetch supports GET only, got %s", r.Method)
	}
	if f.manager.closed.Load() {
		return nil, novelex.Errorf(novelex.EINVALID, "fetcher is closed")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	page, err := f.manager.Browser().Page(proto.TargetCreateTarget{})
	if err != nil {
		return nil, err
	}
	defer page.Close()
	defer f.manager.IncrementPageCount()

	loadCtx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()
	page = page.Context(loadCtx)

	status := http.StatusOK
	var doc proto.NetworkResponseReceived
	waitDoc := page.WaitEvent(&doc)

	if r.Referer != "" {
		if _, err := page.SetExtraHeaders([]string{"Referer", r.Referer}); err != nil {
			return nil, err
		}
	}
	if err := page.Navigate(r.URL); err != nil {
		return nil, err
	}
	if err := page.WaitLoad(); err != nil {
		return nil, err
	}
	waitDoc()
	if doc.Response != nil && doc.Type == proto.NetworkResourceTypeDocument {
		status = doc.Response.Status
	}

	page = page.Context(ctx)
	f.waitChallenge(ctx, page)

	html, err := page.HTML()
	if err != nil {
		return nil, err
	}
	info, err := page.Info()
	if err != nil {
		return nil, err
	}

	return &novelex.Response{
		Status:   status,
		FinalURL: info.URL,
		Body:     html,
	}, nil
}

// waitChallenge polls the page title until it is no longer a challenge
// title or the settle duration passes.
func (f *Fetcher) waitChallenge(ctx context.Context, page *rod.Page) {
	deadline := time.Now().Add(f.settle)
	for time.Now().Before(deadline) {
		info, err := page.Info()
		if err != nil || !novelex.IsChallengeTitle(info.Title) {
			return
		}
		select {
		case <-ctx.Done():
			return
		case <-time.After(f.poll):
		}
	}
}

// Close releases browser resources.
func (f *Fetcher) Close() error {
	return f.manager.Close()
}

// LauncherPID returns the process ID of the browser launcher.
// This method exists for testing purposes to verify proper cleanup.
func (f *Fetcher) LauncherPID() int {
	return f.manager.LauncherPID()
}
