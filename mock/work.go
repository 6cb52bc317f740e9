package mock

import (
	"context"

	"github.com/fwojciec/novelex"
)

var _ novelex.WorkService = (*WorkService)(nil)

// WorkService is a mock implementation of novelex.WorkService.
type WorkService struct {
	SaveWorkFn   func(ctx context.Context, entry *novelex.Entry) error
	FindWorkFn   func(ctx context.Context, siteID, path string) (*novelex.Entry, error)
	FindWorksFn  func(ctx context.Context, filter novelex.WorkFilter) ([]*novelex.Entry, error)
	DeleteWorkFn func(ctx context.Context, siteID, path string) error
}

func (s *WorkService) SaveWork(ctx context.Context, entry *novelex.Entry) error {
	return s.SaveWorkFn(ctx, entry)
}

func (s *WorkService) FindWork(ctx context.Context, siteID, path string) (*novelex.Entry, error) {
	return s.FindWorkFn(ctx, siteID, path)
}

func (s *WorkService) FindWorks(ctx context.Context, filter novelex.WorkFilter) ([]*novelex.Entry, error) {
	return s.FindWorksFn(ctx, filter)
}

func (s *WorkService) DeleteWork(ctx context.Context, siteID, path string) error {
	return s.DeleteWorkFn(ctx, siteID, path)
}

var _ novelex.PreferenceService = (*PreferenceService)(nil)

// PreferenceService is a mock implementation of novelex.PreferenceService.
type PreferenceService struct {
	HideLockedFn    func(ctx context.Context, siteID string) (bool, error)
	SetHideLockedFn func(ctx context.Context, siteID string, hide bool) error
}

func (s *PreferenceService) HideLocked(ctx context.Context, siteID string) (bool, error) {
	return s.HideLockedFn(ctx, siteID)
}

func (s *PreferenceService) SetHideLocked(ctx context.Context, siteID string, hide bool) error {
	return s.SetHideLockedFn(ctx, siteID, hide)
}
