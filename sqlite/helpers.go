package sqlite

import (
	"fmt"
	"strings"
	"time"
)

// genreSep separates genres in the genres column. Genres never contain
// newlines once trimmed.
const genreSep = "\n"

func encodeGenres(genres []string) string {
	return strings.Join(genres, genreSep)
}

func decodeGenres(s string) []string {
	if s == "" {
		return []string{}
	}
	return strings.Split(s, genreSep)
}

// encodeFetchedAt stores fetch times in UTC so the column orders
// chronologically as text.
func encodeFetchedAt(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

func decodeFetchedAt(s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to parse fetched_at %q: %w", s, err)
	}
	return t, nil
}

// appendPage limits a catalog listing to one page. SQLite rejects OFFSET
// without LIMIT, so an offset alone is paired with LIMIT -1.
func appendPage(query *strings.Builder, args *[]any, limit, offset int) {
	switch {
	case limit > 0:
		query.WriteString(" LIMIT ?")
		*args = append(*args, limit)
	case offset > 0:
		query.WriteString(" LIMIT -1")
	}
	if offset > 0 {
		query.WriteString(" OFFSET ?")
		*args = append(*args, offset)
	}
}
