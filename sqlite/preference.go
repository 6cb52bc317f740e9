package sqlite

import (
	"context"
	"database/sql"

	"github.com/fwojciec/novelex"
)

// Compile-time interface verification.
var _ novelex.PreferenceService = (*PreferenceService)(nil)

// PreferenceService implements novelex.PreferenceService using SQLite.
type PreferenceService struct {
	db *DB
}

// NewPreferenceService creates a new PreferenceService.
func NewPreferenceService(db *DB) *PreferenceService {
	return &PreferenceService{db: db}
}

// HideLocked reports the stored hide-locked preference for a site.
func (s *PreferenceService) HideLocked(ctx context.Context, siteID string) (bool, error) {
	var hide bool
	err := s.db.QueryRowContext(ctx, "SELECT hide_locked FROM preferences WHERE site_id = ?", siteID).Scan(&hide)
	if err == sql.ErrNoRows {
		return false, nil
	}
	return hide, err
}

// SetHideLocked stores the hide-locked preference for a site.
func (s *PreferenceService) SetHideLocked(ctx context.Context, siteID string, hide bool) error {
	if siteID == "" {
		return novelex.Errorf(novelex.EINVALID, "site ID required")
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO preferences (site_id, hide_locked) VALUES (?, ?)
		ON CONFLICT (site_id) DO UPDATE SET hide_locked = excluded.hide_locked
	`, siteID, hide)
	return err
}
