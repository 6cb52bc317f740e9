package crawl

import (
	"context"
	"fmt"
	"time"

	"github.com/fwojciec/novelex"
	"github.com/fwojciec/novelex/bloom"
	"golang.org/x/sync/errgroup"
)

// Listing deduplication settings. Sites repeat cards across listing pages
// while the ranking shifts under a running sync.
const (
	syncExpectedWorks     = 10000
	syncFalsePositiveRate = 0.001
)

// Syncer walks a site's popular listing and stores every work it finds,
// skipping works whose content hash has not changed since the last sync.
type Syncer struct {
	Source      novelex.Source
	Works       novelex.WorkService
	Pages       int  // listing pages to walk, defaults to 1
	Latest      bool // walk the latest-updates listing instead
	Concurrency int  // parallel work extractions, defaults to 4

	// Now returns the fetch time recorded on saved entries. Defaults to time.Now.
	Now func() time.Time
}

// SyncResult holds the outcome of a sync.
type SyncResult struct {
	Listed    int
	Saved     int
	Unchanged int
	Failed    int
}

// ProgressEvent reports progress during a sync.
type ProgressEvent struct {
	Type      ProgressType
	Completed int
	Total     int
	Path      string
	Error     error
}

// ProgressType indicates the type of progress event.
type ProgressType int

const (
	ProgressStarted ProgressType = iota
	ProgressSaved
	ProgressUnchanged
	ProgressFailed
	ProgressFinished
)

// ProgressFunc is a callback for reporting sync progress.
type ProgressFunc func(event ProgressEvent)

type syncResult struct {
	path string
	work *novelex.Work
	err  error
}

// Sync runs one sync. Listing failures abort it; failures of single works
// are counted and reported through progress.
func (s *Syncer) Sync(ctx context.Context, progress ProgressFunc) (*SyncResult, error) {
	paths, err := s.listPaths(ctx)
	if err != nil {
		return nil, err
	}

	result := &SyncResult{Listed: len(paths)}
	total := len(paths)
	notify := func(ev ProgressEvent) {
		if progress != nil {
			ev.Total = total
			progress(ev)
		}
	}
	notify(ProgressEvent{Type: ProgressStarted})

	concurrency := s.Concurrency
	if concurrency <= 0 {
		concurrency = 4
	}

	resultCh := make(chan syncResult, len(paths))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	go func() {
		for _, path := range paths {
			g.Go(func() error {
				work, err := s.Source.ParseWork(gctx, path)
				resultCh <- syncResult{path: path, work: work, err: err}
				return nil
			})
		}
		_ = g.Wait()
		close(resultCh)
	}()

	// Entries are saved from this goroutine only.
	completed := 0
	siteID := s.Source.Site().ID
	for r := range resultCh {
		completed++
		if r.err == nil {
			var unchanged bool
			unchanged, r.err = s.save(ctx, siteID, r.work)
			if r.err == nil && unchanged {
				result.Unchanged++
				notify(ProgressEvent{Type: ProgressUnchanged, Completed: completed, Path: r.path})
				continue
			}
		}
		if r.err != nil {
			result.Failed++
			notify(ProgressEvent{Type: ProgressFailed, Completed: completed, Path: r.path, Error: r.err})
			continue
		}
		result.Saved++
		notify(ProgressEvent{Type: ProgressSaved, Completed: completed, Path: r.path})
	}

	notify(ProgressEvent{Type: ProgressFinished, Completed: total})
	return result, ctx.Err()
}

// listPaths collects unique work paths from the listing pages, stopping
// at the first empty page.
func (s *Syncer) listPaths(ctx context.Context) ([]string, error) {
	pages := s.Pages
	if pages <= 0 {
		pages = 1
	}

	seen := bloom.NewFilter(syncExpectedWorks, syncFalsePositiveRate)
	var paths []string
	for page := 1; page <= pages; page++ {
		items, err := s.Source.PopularWorks(ctx, page, novelex.ListOptions{Latest: s.Latest})
		if err != nil {
			return nil, fmt.Errorf("listing page %d: %w", page, err)
		}
		if len(items) == 0 {
			break
		}
		for _, item := range items {
			if item.Path == "" || seen.Test(item.Path) {
				continue
			}
			seen.Add(item.Path)
			paths = append(paths, item.Path)
		}
	}
	return paths, nil
}

// save stores work unless the stored entry carries the same hash.
func (s *Syncer) save(ctx context.Context, siteID string, work *novelex.Work) (unchanged bool, err error) {
	hash := Hash(work)

	entry := &novelex.Entry{SiteID: siteID, Hash: hash, Work: work, FetchedAt: s.now()}
	existing, err := s.Works.FindWork(ctx, siteID, work.Path)
	switch {
	case err == nil:
		if existing.Hash == hash {
			return true, nil
		}
		entry.ID = existing.ID
	case novelex.ErrorCode(err) != novelex.ENOTFOUND:
		return false, err
	}

	return false, s.Works.SaveWork(ctx, entry)
}

func (s *Syncer) now() time.Time {
	if s.Now == nil {
		return time.Now()
	}
	return s.Now()
}
