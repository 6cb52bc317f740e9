package crawl_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/fwojciec/novelex"
	"github.com/fwojciec/novelex/crawl"
	"github.com/fwojciec/novelex/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func listingSource(pages map[int][]string, parse func(path string) (*novelex.Work, error)) *mock.Source {
	site := testSite()
	return &mock.Source{
		SiteFn: func() *novelex.Site { return site },
		PopularWorksFn: func(_ context.Context, page int, _ novelex.ListOptions) ([]novelex.WorkItem, error) {
			var items []novelex.WorkItem
			for _, p := range pages[page] {
				items = append(items, novelex.WorkItem{Name: p, Path: p})
			}
			return items, nil
		},
		ParseWorkFn: func(_ context.Context, path string) (*novelex.Work, error) {
			return parse(path)
		},
	}
}

func namedWork(path string) (*novelex.Work, error) {
	return &novelex.Work{Path: path, Name: "Work " + path}, nil
}

// memoryWorks is a WorkService backed by a map.
func memoryWorks() (*mock.WorkService, map[string]*novelex.Entry) {
	var mu sync.Mutex
	store := make(map[string]*novelex.Entry)
	return &mock.WorkService{
		FindWorkFn: func(_ context.Context, _ string, path string) (*novelex.Entry, error) {
			mu.Lock()
			defer mu.Unlock()
			e, ok := store[path]
			if !ok {
				return nil, novelex.Errorf(novelex.ENOTFOUND, "work not found")
			}
			return e, nil
		},
		SaveWorkFn: func(_ context.Context, e *novelex.Entry) error {
			mu.Lock()
			defer mu.Unlock()
			store[e.Work.Path] = e
			return nil
		},
	}, store
}

func TestSyncer_Sync(t *testing.T) {
	t.Parallel()

	now := time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)

	t.Run("saves every listed work once", func(t *testing.T) {
		t.Parallel()

		works, store := memoryWorks()
		s := &crawl.Syncer{
			Source: listingSource(map[int][]string{
				1: {"a/", "b/"},
				2: {"b/", "c/"},
			}, namedWork),
			Works:       works,
			Pages:       3,
			Concurrency: 2,
			Now:         func() time.Time { return now },
		}

		result, err := s.Sync(context.Background(), nil)

		require.NoError(t, err)
		assert.Equal(t, 3, result.Listed)
		assert.Equal(t, 3, result.Saved)
		assert.Equal(t, 0, result.Failed)
		require.Len(t, store, 3)
		assert.Equal(t, "knoxt", store["a/"].SiteID)
		assert.Equal(t, now, store["a/"].FetchedAt)
		assert.Equal(t, crawl.Hash(store["c/"].Work), store["c/"].Hash)
	})

	t.Run("skips works whose hash is unchanged", func(t *testing.T) {
		t.Parallel()

		works, store := memoryWorks()
		w, _ := namedWork("a/")
		store["a/"] = &novelex.Entry{ID: "id-a", SiteID: "knoxt", Hash: crawl.Hash(w), Work: w}
		stale := &novelex.Work{Path: "b/", Name: "old name"}
		store["b/"] = &novelex.Entry{ID: "id-b", SiteID: "knoxt", Hash: crawl.Hash(stale), Work: stale}

		s := &crawl.Syncer{
			Source: listingSource(map[int][]string{1: {"a/", "b/"}}, namedWork),
			Works:  works,
		}

		result, err := s.Sync(context.Background(), nil)

		require.NoError(t, err)
		assert.Equal(t, 1, result.Unchanged)
		assert.Equal(t, 1, result.Saved)
		assert.Equal(t, "id-b", store["b/"].ID, "updated entry keeps its ID")
		assert.Equal(t, "Work b/", store["b/"].Work.Name)
	})

	t.Run("counts failed works and continues", func(t *testing.T) {
		t.Parallel()

		works, store := memoryWorks()
		s := &crawl.Syncer{
			Source: listingSource(map[int][]string{1: {"a/", "bad/"}}, func(path string) (*novelex.Work, error) {
				if path == "bad/" {
					return nil, novelex.Errorf(novelex.ESTRUCTURE, "work name not found")
				}
				return namedWork(path)
			}),
			Works: works,
		}

		var mu sync.Mutex
		var failed []crawl.ProgressEvent
		result, err := s.Sync(context.Background(), func(ev crawl.ProgressEvent) {
			mu.Lock()
			defer mu.Unlock()
			if ev.Type == crawl.ProgressFailed {
				failed = append(failed, ev)
			}
		})

		require.NoError(t, err)
		assert.Equal(t, 1, result.Saved)
		assert.Equal(t, 1, result.Failed)
		assert.Len(t, store, 1)
		require.Len(t, failed, 1)
		assert.Equal(t, "bad/", failed[0].Path)
		assert.Equal(t, novelex.ESTRUCTURE, novelex.ErrorCode(failed[0].Error))
	})

	t.Run("stops at the first empty listing page", func(t *testing.T) {
		t.Parallel()

		var pagesRequested []int
		site := testSite()
		src := &mock.Source{
			SiteFn: func() *novelex.Site { return site },
			PopularWorksFn: func(_ context.Context, page int, _ novelex.ListOptions) ([]novelex.WorkItem, error) {
				pagesRequested = append(pagesRequested, page)
				if page == 1 {
					return []novelex.WorkItem{{Path: "a/"}}, nil
				}
				return nil, nil
			},
			ParseWorkFn: func(_ context.Context, path string) (*novelex.Work, error) { return namedWork(path) },
		}
		works, _ := memoryWorks()
		s := &crawl.Syncer{Source: src, Works: works, Pages: 5}

		_, err := s.Sync(context.Background(), nil)

		require.NoError(t, err)
		assert.Equal(t, []int{1, 2}, pagesRequested)
	})

	t.Run("returns listing errors", func(t *testing.T) {
		t.Parallel()

		site := testSite()
		s := &crawl.Syncer{
			Source: &mock.Source{
				SiteFn: func() *novelex.Site { return site },
				PopularWorksFn: func(_ context.Context, _ int, _ novelex.ListOptions) ([]novelex.WorkItem, error) {
					return nil, novelex.Errorf(novelex.EBLOCKED, "access blocked")
				},
			},
			Works: &mock.WorkService{},
		}

		_, err := s.Sync(context.Background(), nil)

		assert.Equal(t, novelex.EBLOCKED, novelex.ErrorCode(err))
	})

	t.Run("counts storage errors as failures", func(t *testing.T) {
		t.Parallel()

		s := &crawl.Syncer{
			Source: listingSource(map[int][]string{1: {"a/"}}, namedWork),
			Works: &mock.WorkService{
				FindWorkFn: func(_ context.Context, _, _ string) (*novelex.Entry, error) {
					return nil, errors.New("disk I/O error")
				},
			},
		}

		result, err := s.Sync(context.Background(), nil)

		require.NoError(t, err)
		assert.Equal(t, 1, result.Failed)
		assert.Equal(t, 0, result.Saved)
	})

	t.Run("reports start and finish", func(t *testing.T) {
		t.Parallel()

		works, _ := memoryWorks()
		s := &crawl.Syncer{
			Source: listingSource(map[int][]string{1: {"a/", "b/"}}, namedWork),
			Works:  works,
		}

		var events []crawl.ProgressEvent
		_, err := s.Sync(context.Background(), func(ev crawl.ProgressEvent) {
			events = append(events, ev)
		})

		require.NoError(t, err)
		require.Len(t, events, 4)
		assert.Equal(t, crawl.ProgressStarted, events[0].Type)
		assert.Equal(t, 2, events[0].Total)
		assert.Equal(t, crawl.ProgressFinished, events[3].Type)
		assert.Equal(t, 2, events[3].Completed)
	})
}
