// Package madara describes the markup of sites built on the Madara
// WordPress theme.
package madara

import "github.com/fwojciec/novelex"

// Theme defaults used when a site sets none.
const (
	PostType        = "wp-manga"
	LatestParam     = "m_orderby=latest"
	ChapterEndpoint = "ajax/chapters/"
	LockedItemClass = "premium-block"
)

// ContentSelector selects the paragraphs of a chapter body.
const ContentSelector = "div.text-left p, div.text-right p"

// Ensure NewGrammar satisfies novelex.GrammarBuilder at compile time.
var _ novelex.GrammarBuilder = NewGrammar

// NewGrammar returns the family grammar for a site rooted at baseURL.
// Chapter lists come newest-first, so they are always reversed and
// numbered by position.
func NewGrammar(baseURL string, opts novelex.SiteOptions) *novelex.Grammar {
	endpoint := opts.ChapterEndpoint
	if endpoint == "" {
		endpoint = ChapterEndpoint
	}
	lockedClass := opts.LockedItemClass
	if lockedClass == "" {
		lockedClass = LockedItemClass
	}

	return &novelex.Grammar{
		BaseURL:          baseURL,
		ReverseChapters:  true,
		PostType:         PostType,
		LatestParam:      LatestParam,
		ChapterEndpoint:  endpoint,
		LockedItemClass:  lockedClass,
		NumberByPosition: true,

		Cover:       novelex.AnyOf{novelex.Tag("img")},
		CoverWithin: novelex.AnyOf{novelex.ClassContains("summary_image")},
		CoverAttrs:  []string{"data-lazy-src", "data-src", "src"},
		NameText:    novelex.AnyOf{novelex.ClassContains("post-title").On("div")},
		NameExclude: novelex.AnyOf{novelex.ClassContains("manga-title-badges")},

		RatingText: novelex.AnyOf{
			novelex.ClassContains("total_votes"),
			novelex.Attr("id", "averagerate"),
		},

		GenreList: novelex.AnyOf{novelex.ClassContains("genres-content")},
		GenreItem: novelex.AnyOf{novelex.Tag("a")},

		Summary:         novelex.AnyOf{novelex.ClassContains("summary__content").On("div")},
		SummaryBoundary: []string{"div", "script", "noscript"},

		Info:         novelex.AnyOf{novelex.ClassContains("post-content_item")},
		InfoEnd:      "div",
		InfoLabel:    novelex.AnyOf{novelex.Tag("h5")},
		InfoLabelEnd: "h5",

		ChapterList:    novelex.AnyOf{novelex.ClassContains("listing-chapters_wrap")},
		ChapterListEnd: "ul",
		ChapterItem:    novelex.AnyOf{novelex.ClassContains("wp-manga-chapter").On("li")},
		ChapterItemEnd: "li",
		ChapterLink:    novelex.AnyOf{novelex.Tag("a")},
		ChapterTitle:   novelex.AnyOf{novelex.Tag("a")},
		ChapterDate:    novelex.AnyOf{novelex.ClassContains("chapter-release-date")},
	}
}
