package novelex_test

import (
	"testing"

	"github.com/fwojciec/novelex"
	"github.com/stretchr/testify/assert"
)

func TestPredicate_Match(t *testing.T) {
	t.Parallel()

	div := func(attrs map[string]string) novelex.Event { return novelex.OpenTag("div", attrs) }

	tests := []struct {
		name string
		pred novelex.Predicate
		ev   novelex.Event
		want bool
	}{
		{"tag matches name", novelex.Tag("li"), novelex.OpenTag("li", nil), true},
		{"tag rejects other name", novelex.Tag("li"), novelex.OpenTag("ul", nil), false},
		{"class equality matches whole attribute", novelex.Class("genxed"), div(map[string]string{"class": "genxed"}), true},
		{"class equality rejects multi-class attribute", novelex.Class("genxed"), div(map[string]string{"class": "genxed wide"}), false},
		{"class equality rejects missing attribute", novelex.Class(""), div(nil), false},
		{"class contains matches substring", novelex.ClassContains("eplister"), div(map[string]string{"class": "eplister eplisterfull"}), true},
		{"class contains rejects missing attribute", novelex.ClassContains("eplister"), div(nil), false},
		{"attr equality matches", novelex.Attr("itemprop", "description"), div(map[string]string{"itemprop": "description"}), true},
		{"attr equality rejects other value", novelex.Attr("itemprop", "description"), div(map[string]string{"itemprop": "name"}), false},
		{"tag constraint applies to class predicate", novelex.Class("entry-content").On("div"), novelex.OpenTag("span", map[string]string{"class": "entry-content"}), false},
		{"tag constraint accepts matching tag", novelex.Class("entry-content").On("div"), div(map[string]string{"class": "entry-content"}), true},
		{"close events never match", novelex.Tag("li"), novelex.CloseTag("li"), false},
		{"text events never match", novelex.Tag("li"), novelex.Text("li"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, tt.pred.Match(tt.ev))
		})
	}
}

func TestAnyOf_Match(t *testing.T) {
	t.Parallel()

	genres := novelex.AnyOf{novelex.Class("genxed"), novelex.Class("sertogenre")}

	assert.True(t, genres.Match(novelex.OpenTag("div", map[string]string{"class": "sertogenre"})))
	assert.False(t, genres.Match(novelex.OpenTag("div", map[string]string{"class": "spe"})))
	assert.False(t, novelex.AnyOf(nil).Match(novelex.OpenTag("div", nil)))
}

func TestGrammar_StripBase(t *testing.T) {
	t.Parallel()

	g := &novelex.Grammar{BaseURL: "https://knoxt.space/"}

	assert.Equal(t, "solo-leveling-chapter-1/", g.StripBase("https://knoxt.space/solo-leveling-chapter-1/"))
	assert.Equal(t, "https://mirror.example/x/", g.StripBase(" https://mirror.example/x/ "))
	assert.Equal(t, "/x/", (&novelex.Grammar{}).StripBase(" /x/"))
}

func TestGrammar_Glyph(t *testing.T) {
	t.Parallel()

	assert.Equal(t, novelex.LockGlyph, (&novelex.Grammar{}).Glyph())
	assert.Equal(t, "[paid]", (&novelex.Grammar{LockGlyph: "[paid]"}).Glyph())
}

func TestGrammar_Latest(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "order=latest", (&novelex.Grammar{}).Latest())
	assert.Equal(t, "m_orderby=latest", (&novelex.Grammar{LatestParam: "m_orderby=latest"}).Latest())
}

func TestGrammar_Validate(t *testing.T) {
	t.Parallel()

	t.Run("requires base URL", func(t *testing.T) {
		t.Parallel()

		g := &novelex.Grammar{}

		assert.Equal(t, novelex.EINVALID, novelex.ErrorCode(g.Validate()))
	})

	t.Run("requires chapter predicates", func(t *testing.T) {
		t.Parallel()

		g := &novelex.Grammar{BaseURL: "https://example.com/"}

		assert.Equal(t, novelex.EINVALID, novelex.ErrorCode(g.Validate()))
	})

	t.Run("accepts minimal chapter grammar", func(t *testing.T) {
		t.Parallel()

		g := &novelex.Grammar{
			BaseURL:        "https://example.com/",
			ChapterList:    novelex.AnyOf{novelex.ClassContains("eplister")},
			ChapterListEnd: "ul",
			ChapterItem:    novelex.AnyOf{novelex.Tag("li")},
			ChapterItemEnd: "li",
		}

		assert.NoError(t, g.Validate())
	})
}
