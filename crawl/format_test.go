package crawl_test

import (
	"testing"

	"github.com/fwojciec/novelex"
	"github.com/fwojciec/novelex/crawl"
	"github.com/stretchr/testify/assert"
)

func TestTruncateURL(t *testing.T) {
	t.Parallel()

	t.Run("returns URL unchanged when shorter than max", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "https://x.com", crawl.TruncateURL("https://x.com", 50))
	})

	t.Run("truncates with ellipsis when longer than max", func(t *testing.T) {
		t.Parallel()
		url := "https://example.com/very/long/path/to/documentation"
		result := crawl.TruncateURL(url, 20)
		assert.Equal(t, ".../to/documentation", result)
		assert.Len(t, result, 20)
	})

	t.Run("returns URL unchanged when exactly max length", func(t *testing.T) {
		t.Parallel()
		url := "https://example.com"
		assert.Equal(t, url, crawl.TruncateURL(url, len(url)))
	})

	t.Run("returns empty string when maxLen is zero", func(t *testing.T) {
		t.Parallel()
		assert.Empty(t, crawl.TruncateURL("https://example.com", 0))
	})

	t.Run("returns empty string when maxLen is negative", func(t *testing.T) {
		t.Parallel()
		assert.Empty(t, crawl.TruncateURL("https://example.com", -1))
	})

	t.Run("returns prefix of URL when maxLen is very small", func(t *testing.T) {
		t.Parallel()
		// When maxLen < 4, we can't fit "..." prefix, so return URL prefix
		assert.Equal(t, "htt", crawl.TruncateURL("https://example.com", 3))
		assert.Equal(t, "ht", crawl.TruncateURL("https://example.com", 2))
		assert.Equal(t, "h", crawl.TruncateURL("https://example.com", 1))
	})

	t.Run("handles short URL with small maxLen", func(t *testing.T) {
		t.Parallel()
		// URL shorter than maxLen should return unchanged
		assert.Equal(t, "ab", crawl.TruncateURL("ab", 3))
		assert.Equal(t, "a", crawl.TruncateURL("a", 2))
	})
}

func TestFormatBytes(t *testing.T) {
	t.Parallel()

	t.Run("formats bytes as B", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "512 B", crawl.FormatBytes(512))
	})

	t.Run("formats kilobytes as KB", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "1.5 KB", crawl.FormatBytes(1536))
	})

	t.Run("formats megabytes as MB", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "2.0 MB", crawl.FormatBytes(2*1024*1024))
	})
}

func TestHash(t *testing.T) {
	t.Parallel()

	work := func() *novelex.Work {
		rating := 8.5
		return &novelex.Work{
			Name:     "Solo Leveling",
			Status:   novelex.StatusOngoing,
			Genres:   []string{"Action", "Fantasy"},
			Rating:   &rating,
			Chapters: []novelex.Chapter{{Path: "solo-leveling-1/", Name: "Chapter 1", Number: 1}},
		}
	}

	t.Run("returns consistent hash for same work", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, crawl.Hash(work()), crawl.Hash(work()))
	})

	t.Run("changes when a chapter is added", func(t *testing.T) {
		t.Parallel()
		w := work()
		before := crawl.Hash(w)
		w.Chapters = append(w.Chapters, novelex.Chapter{Path: "solo-leveling-2/", Name: "Chapter 2", Number: 2})
		assert.NotEqual(t, before, crawl.Hash(w))
	})

	t.Run("changes when a chapter unlocks", func(t *testing.T) {
		t.Parallel()
		w := work()
		w.Chapters[0].Locked = true
		locked := crawl.Hash(w)
		w.Chapters[0].Locked = false
		assert.NotEqual(t, locked, crawl.Hash(w))
	})

	t.Run("separates adjacent fields", func(t *testing.T) {
		t.Parallel()
		a := &novelex.Work{Author: "ab", Artist: "c"}
		b := &novelex.Work{Author: "a", Artist: "bc"}
		assert.NotEqual(t, crawl.Hash(a), crawl.Hash(b))
	})

	t.Run("returns hex string", func(t *testing.T) {
		t.Parallel()
		assert.Regexp(t, `^[0-9a-f]+$`, crawl.Hash(work()))
	})
}
