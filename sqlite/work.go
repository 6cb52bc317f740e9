package sqlite

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/fwojciec/novelex"
	"github.com/google/uuid"
)

// Compile-time interface verification.
var _ novelex.WorkService = (*WorkService)(nil)

// WorkService implements novelex.WorkService using SQLite.
type WorkService struct {
	db *DB
}

// NewWorkService creates a new WorkService.
func NewWorkService(db *DB) *WorkService {
	return &WorkService{db: db}
}

// SaveWork inserts or replaces the entry for (SiteID, Work.Path) together
// with its chapter list. A replaced entry keeps its stored ID.
func (s *WorkService) SaveWork(ctx context.Context, entry *novelex.Entry) error {
	if err := entry.Validate(); err != nil {
		return err
	}
	if entry.FetchedAt.IsZero() {
		entry.FetchedAt = time.Now().UTC()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	w := entry.Work
	var existingID string
	err = tx.QueryRowContext(ctx, "SELECT id FROM works WHERE site_id = ? AND path = ?", entry.SiteID, w.Path).Scan(&existingID)
	switch {
	case err == sql.ErrNoRows:
		if entry.ID == "" {
			entry.ID = uuid.New().String()
		}
		_, err = tx.ExecContext(ctx, `
			INSERT INTO works (id, site_id, path, name, cover, summary, author, artist, status, genres, rating, hash, fetched_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		`, entry.ID, entry.SiteID, w.Path, w.Name, w.Cover, w.Summary, w.Author, w.Artist, string(w.Status),
			encodeGenres(w.Genres), w.Rating, entry.Hash, encodeFetchedAt(entry.FetchedAt))
	case err == nil:
		entry.ID = existingID
		_, err = tx.ExecContext(ctx, `
			UPDATE works
			SET name = ?, cover = ?, summary = ?, author = ?, artist = ?, status = ?, genres = ?, rating = ?, hash = ?, fetched_at = ?
			WHERE id = ?
		`, w.Name, w.Cover, w.Summary, w.Author, w.Artist, string(w.Status),
			encodeGenres(w.Genres), w.Rating, entry.Hash, encodeFetchedAt(entry.FetchedAt), entry.ID)
	}
	if err != nil {
		return err
	}

	if _, err := tx.ExecContext(ctx, "DELETE FROM chapters WHERE work_id = ?", entry.ID); err != nil {
		return err
	}
	for i, ch := range w.Chapters {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO chapters (work_id, position, path, name, release_time, number, locked)
			VALUES (?, ?, ?, ?, ?, ?, ?)
		`, entry.ID, i, ch.Path, ch.Name, ch.ReleaseTime, ch.Number, ch.Locked); err != nil {
			return err
		}
	}

	return tx.Commit()
}

// FindWork retrieves the entry for a work, including its chapters.
func (s *WorkService) FindWork(ctx context.Context, siteID, path string) (*novelex.Entry, error) {
	entry, err := scanEntry(s.db.QueryRowContext(ctx, `
		SELECT id, site_id, path, name, cover, summary, author, artist, status, genres, rating, hash, fetched_at
		FROM works
		WHERE site_id = ? AND path = ?
	`, siteID, path))
	if err == sql.ErrNoRows {
		return nil, novelex.Errorf(novelex.ENOTFOUND, "work not found")
	}
	if err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT path, name, release_time, number, locked
		FROM chapters
		WHERE work_id = ?
		ORDER BY position ASC
	`, entry.ID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var ch novelex.Chapter
		if err := rows.Scan(&ch.Path, &ch.Name, &ch.ReleaseTime, &ch.Number, &ch.Locked); err != nil {
			return nil, err
		}
		entry.Work.Chapters = append(entry.Work.Chapters, ch)
	}
	return entry, rows.Err()
}

// FindWorks retrieves entries matching the filter, most recently fetched
// first. Chapters are not loaded.
func (s *WorkService) FindWorks(ctx context.Context, filter novelex.WorkFilter) ([]*novelex.Entry, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT id, site_id, path, name, cover, summary, author, artist, status, genres, rating, hash, fetched_at FROM works WHERE 1=1")

	if filter.SiteID != nil {
		query.WriteString(" AND site_id = ?")
		args = append(args, *filter.SiteID)
	}
	if filter.Name != nil {
		query.WriteString(" AND name = ?")
		args = append(args, *filter.Name)
	}

	query.WriteString(" ORDER BY fetched_at DESC, name ASC")
	appendPage(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []*novelex.Entry
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

// DeleteWork permanently removes a work and its chapters.
func (s *WorkService) DeleteWork(ctx context.Context, siteID, path string) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM works WHERE site_id = ? AND path = ?", siteID, path)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return novelex.Errorf(novelex.ENOTFOUND, "work not found")
	}

	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanEntry(row scanner) (*novelex.Entry, error) {
	var (
		entry     novelex.Entry
		w         novelex.Work
		status    string
		genres    string
		rating    sql.NullFloat64
		fetchedAt string
	)
	if err := row.Scan(&entry.ID, &entry.SiteID, &w.Path, &w.Name, &w.Cover, &w.Summary, &w.Author, &w.Artist,
		&status, &genres, &rating, &entry.Hash, &fetchedAt); err != nil {
		return nil, err
	}

	w.Status = novelex.Status(status)
	w.Genres = decodeGenres(genres)
	if rating.Valid {
		w.Rating = &rating.Float64
	}
	w.Chapters = []novelex.Chapter{}

	var err error
	entry.FetchedAt, err = decodeFetchedAt(fetchedAt)
	if err != nil {
		return nil, err
	}
	entry.Work = &w
	return &entry, nil
}
