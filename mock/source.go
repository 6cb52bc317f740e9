package mock

import (
	"context"

	"github.com/fwojciec/novelex"
)

var _ novelex.Source = (*Source)(nil)

// Source is a mock implementation of novelex.Source.
type Source struct {
	SiteFn         func() *novelex.Site
	PopularWorksFn func(ctx context.Context, page int, opts novelex.ListOptions) ([]novelex.WorkItem, error)
	SearchWorksFn  func(ctx context.Context, term string, page int) ([]novelex.WorkItem, error)
	ParseWorkFn    func(ctx context.Context, path string) (*novelex.Work, error)
	ParseChapterFn func(ctx context.Context, path string) (string, error)
}

func (s *Source) Site() *novelex.Site {
	return s.SiteFn()
}

func (s *Source) PopularWorks(ctx context.Context, page int, opts novelex.ListOptions) ([]novelex.WorkItem, error) {
	return s.PopularWorksFn(ctx, page, opts)
}

func (s *Source) SearchWorks(ctx context.Context, term string, page int) ([]novelex.WorkItem, error) {
	return s.SearchWorksFn(ctx, term, page)
}

func (s *Source) ParseWork(ctx context.Context, path string) (*novelex.Work, error) {
	return s.ParseWorkFn(ctx, path)
}

func (s *Source) ParseChapter(ctx context.Context, path string) (string, error) {
	return s.ParseChapterFn(ctx, path)
}

var _ novelex.SourceRegistry = (*SourceRegistry)(nil)

// SourceRegistry is a mock implementation of novelex.SourceRegistry.
type SourceRegistry struct {
	GetFn      func(id string) (novelex.Source, error)
	RegisterFn func(source novelex.Source)
	ListFn     func() []*novelex.Site
}

func (r *SourceRegistry) Get(id string) (novelex.Source, error) {
	return r.GetFn(id)
}

func (r *SourceRegistry) Register(source novelex.Source) {
	r.RegisterFn(source)
}

func (r *SourceRegistry) List() []*novelex.Site {
	return r.ListFn()
}
