package lightnovelwp_test

import (
	"os"
	"testing"
	"time"

	"github.com/fwojciec/novelex"
	"github.com/fwojciec/novelex/dateparse"
	"github.com/fwojciec/novelex/extract"
	"github.com/fwojciec/novelex/html"
	"github.com/fwojciec/novelex/lightnovelwp"
	"github.com/fwojciec/novelex/yaml"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parse(t *testing.T, g *novelex.Grammar, p novelex.Policy) *novelex.Work {
	t.Helper()

	body, err := os.ReadFile("testdata/series.html")
	require.NoError(t, err)
	kw, err := yaml.DefaultKeywords()
	require.NoError(t, err)

	var tokErr error
	events := novelex.Stream(html.NewTokenizer().Tokenize(string(body)), &tokErr)
	w := extract.NewExtractor(kw).Extract(events, g, p)
	require.NoError(t, tokErr)

	now := time.Date(2024, 1, 10, 12, 0, 0, 0, time.UTC)
	extract.NewNormalizer(dateparse.NewNormalizer(kw)).Normalize(w, g, now)
	return w
}

func TestNewGrammar(t *testing.T) {
	t.Parallel()

	t.Run("defaults series path", func(t *testing.T) {
		t.Parallel()

		g := lightnovelwp.NewGrammar("https://knoxt.space/", novelex.SiteOptions{})

		assert.Equal(t, lightnovelwp.DefaultSeriesPath, g.PopularPath)
		require.NoError(t, g.Validate())
	})

	t.Run("applies site options", func(t *testing.T) {
		t.Parallel()

		g := lightnovelwp.NewGrammar("https://example.com/", novelex.SiteOptions{
			ReverseChapters: true,
			SeriesPath:      "/novel/",
			LockedItemClass: "premium",
		})

		assert.True(t, g.ReverseChapters)
		assert.Equal(t, "/novel/", g.PopularPath)
		assert.Equal(t, "premium", g.LockedItemClass)
	})
}

func TestGrammar_SeriesPage(t *testing.T) {
	t.Parallel()

	g := lightnovelwp.NewGrammar("https://knoxt.space/", novelex.SiteOptions{ReverseChapters: true})

	t.Run("extracts metadata", func(t *testing.T) {
		t.Parallel()

		w := parse(t, g, novelex.Policy{})

		assert.Equal(t, "The Wandering Sword", w.Name)
		assert.Equal(t, "https://knoxt.space/wp-content/uploads/sword.jpg", w.Cover)
		assert.Equal(t, []string{"Action", "Wuxia"}, w.Genres)
		assert.Equal(t, "A young swordsman leaves his village.\n\nHe learns the world is wider than he thought.\nMuch wider.", w.Summary)
		assert.Equal(t, "Li Wei", w.Author)
		assert.Equal(t, "Zhang San", w.Artist)
		assert.Equal(t, novelex.StatusOngoing, w.Status)
		require.NotNil(t, w.Rating)
		assert.InDelta(t, 8.7, *w.Rating, 0.001)
	})

	t.Run("extracts ascending chapters", func(t *testing.T) {
		t.Parallel()

		w := parse(t, g, novelex.Policy{})

		require.Len(t, w.Chapters, 3)
		assert.Equal(t, novelex.Chapter{
			Path:        "the-wandering-sword-chapter-1/",
			Name:        "Chapter 1",
			ReleaseTime: "2023-12-25",
			Number:      1,
		}, w.Chapters[0])
		assert.Equal(t, "2024-01-01", w.Chapters[1].ReleaseTime)
		assert.Equal(t, novelex.Chapter{
			Path:        "the-wandering-sword-chapter-3/",
			Name:        novelex.LockGlyph + " Chapter 3 – Rain",
			ReleaseTime: "2024-01-08",
			Number:      3,
			Locked:      true,
		}, w.Chapters[2])
	})

	t.Run("hides locked chapters", func(t *testing.T) {
		t.Parallel()

		w := parse(t, g, novelex.Policy{HideLocked: true})

		require.Len(t, w.Chapters, 2)
		assert.Equal(t, 1, w.Chapters[0].Number)
		assert.Equal(t, 2, w.Chapters[1].Number)
	})
}
