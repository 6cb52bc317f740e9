package goquery_test

import (
	"testing"

	"github.com/fwojciec/novelex/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContentExtractor_ExtractContent(t *testing.T) {
	t.Parallel()

	t.Run("joins chapter paragraphs", func(t *testing.T) {
		t.Parallel()

		html := `<html><body>
<div class="epheader"><p>Header</p></div>
<div class="epcontent entry-content" itemprop="text">
	<p>First line.</p>
	<p class="x">Second <em>line</em>.</p>
</div>
<div class="bottomnav"><p>Next</p></div>
</body></html>`

		got, err := goquery.NewContentExtractor("").ExtractContent(html)

		require.NoError(t, err)
		assert.Equal(t, "<p>First line.</p>\n<p class=\"x\">Second <em>line</em>.</p>", got)
	})

	t.Run("returns empty for unrecognized page", func(t *testing.T) {
		t.Parallel()

		got, err := goquery.NewContentExtractor("").ExtractContent(`<div><p>Nope</p></div>`)

		require.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("uses custom selector", func(t *testing.T) {
		t.Parallel()

		got, err := goquery.NewContentExtractor(".text-left p").ExtractContent(`<div class="text-left"><p>Hi</p></div>`)

		require.NoError(t, err)
		assert.Equal(t, "<p>Hi</p>", got)
	})
}

func TestTitleReader_Title_Basic(t *testing.T) {
	t.Parallel()

	t.Run("reads trimmed title", func(t *testing.T) {
		t.Parallel()

		got := goquery.NewTitleReader().Title("<html><head><title>\n Just a moment... </title></head></html>")

		assert.Equal(t, "Just a moment...", got)
	})

	t.Run("returns empty without title", func(t *testing.T) {
		t.Parallel()

		assert.Empty(t, goquery.NewTitleReader().Title("<p>x</p>"))
	})
}
