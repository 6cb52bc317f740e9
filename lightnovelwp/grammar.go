// Package lightnovelwp describes the markup of sites built on the
// LightNovel WordPress theme.
package lightnovelwp

import "github.com/fwojciec/novelex"

// DefaultSeriesPath is the popular listing path when a site sets none.
const DefaultSeriesPath = "/series/"

// Ensure NewGrammar satisfies novelex.GrammarBuilder at compile time.
var _ novelex.GrammarBuilder = NewGrammar

// NewGrammar returns the family grammar for a site rooted at baseURL.
func NewGrammar(baseURL string, opts novelex.SiteOptions) *novelex.Grammar {
	seriesPath := opts.SeriesPath
	if seriesPath == "" {
		seriesPath = DefaultSeriesPath
	}

	return &novelex.Grammar{
		BaseURL:         baseURL,
		ReverseChapters: opts.ReverseChapters,
		PopularPath:     seriesPath,
		ChapterEndpoint: opts.ChapterEndpoint,
		LockedItemClass: opts.LockedItemClass,
		DeriveNumbers:   opts.DeriveNumbers,

		Cover:      novelex.AnyOf{novelex.ClassContains("ts-post-image")},
		CoverAttrs: []string{"data-src", "src"},
		NameAttr:   "title",
		NameText:   novelex.AnyOf{novelex.Class("entry-title").On("h1")},

		Rating:     novelex.AnyOf{novelex.Attr("itemprop", "ratingValue")},
		RatingAttr: "content",

		GenreList: novelex.AnyOf{novelex.Class("genxed"), novelex.Class("sertogenre")},
		GenreItem: novelex.AnyOf{novelex.Tag("a")},

		Summary: novelex.AnyOf{
			novelex.Class("entry-content").On("div"),
			novelex.Attr("itemprop", "description").On("div"),
		},
		SummaryBoundary: []string{"div", "script"},

		Info:         novelex.AnyOf{novelex.Class("spe"), novelex.Class("serl")},
		InfoEnd:      "div",
		InfoLabel:    novelex.AnyOf{novelex.Tag("span")},
		InfoLabelEnd: "span",
		InfoStatus:   novelex.AnyOf{novelex.Class("sertostat").On("div")},

		ChapterList:    novelex.AnyOf{novelex.ClassContains("eplister")},
		ChapterListEnd: "ul",
		ChapterItem:    novelex.AnyOf{novelex.Tag("li")},
		ChapterItemEnd: "li",
		ChapterLink:    novelex.AnyOf{novelex.Tag("a")},
		ChapterNumber:  novelex.AnyOf{novelex.Class("epl-num")},
		ChapterTitle:   novelex.AnyOf{novelex.Class("epl-title")},
		ChapterDate:    novelex.AnyOf{novelex.Class("epl-date")},
		ChapterPrice:   novelex.AnyOf{novelex.Class("epl-price")},
	}
}
