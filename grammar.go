package novelex

import "strings"

// PredicateKind enumerates the ways a Predicate inspects an open tag.
type PredicateKind int

// Predicate kinds.
const (
	// MatchTag matches on tag name alone.
	MatchTag PredicateKind = iota
	// MatchClass matches when the class attribute equals Value exactly.
	MatchClass
	// MatchClassContains matches when the class attribute contains Value.
	MatchClassContains
	// MatchAttr matches when attribute Attr equals Value exactly.
	MatchAttr
)

// Predicate tests an open-tag event. A non-empty Tag additionally
// constrains the tag name for every kind.
type Predicate struct {
	Kind  PredicateKind
	Tag   string
	Attr  string
	Value string
}

// Tag returns a predicate matching open tags with the given name.
func Tag(name string) Predicate {
	return Predicate{Kind: MatchTag, Tag: name}
}

// Class returns a predicate matching a class attribute equal to value.
func Class(value string) Predicate {
	return Predicate{Kind: MatchClass, Attr: "class", Value: value}
}

// ClassContains returns a predicate matching a class attribute containing value.
func ClassContains(value string) Predicate {
	return Predicate{Kind: MatchClassContains, Attr: "class", Value: value}
}

// Attr returns a predicate matching an attribute equal to value.
func Attr(key, value string) Predicate {
	return Predicate{Kind: MatchAttr, Attr: key, Value: value}
}

// On returns a copy of p that also requires the given tag name.
func (p Predicate) On(tag string) Predicate {
	p.Tag = tag
	return p
}

// Match reports whether ev is an open tag satisfying the predicate.
func (p Predicate) Match(ev Event) bool {
	if ev.Kind != EventOpen {
		return false
	}
	if p.Tag != "" && ev.Name != p.Tag {
		return false
	}

	switch p.Kind {
	case MatchTag:
		return p.Tag != ""
	case MatchClass:
		v, ok := ev.Attrs["class"]
		return ok && v == p.Value
	case MatchClassContains:
		v, ok := ev.Attrs["class"]
		return ok && strings.Contains(v, p.Value)
	case MatchAttr:
		v, ok := ev.Attrs[p.Attr]
		return ok && v == p.Value
	}
	return false
}

// AnyOf matches when at least one of its predicates matches.
// An empty AnyOf never matches.
type AnyOf []Predicate

// Match reports whether any predicate matches ev.
func (ps AnyOf) Match(ev Event) bool {
	for _, p := range ps {
		if p.Match(ev) {
			return true
		}
	}
	return false
}

// Grammar is the declarative description of one site family's markup.
// It maps open-tag predicates onto the extraction contexts (genres,
// summary, info block, chapter list) and carries the family's knobs.
type Grammar struct {
	// BaseURL is stripped from chapter hrefs to produce chapter paths.
	BaseURL string

	// ReverseChapters reverses the collected chapter list. Sites that
	// list newest-first set it so the output is ascending.
	ReverseChapters bool

	// PopularPath is the listing path for popular works (e.g. "/series/").
	PopularPath string

	// PostType, when set, turns the popular listing into an empty site
	// search restricted to this WordPress post type. Searches carry it too.
	PostType string

	// LatestParam is the query pair that orders a listing by update.
	// Empty means "order=latest".
	LatestParam string

	// ChapterEndpoint, when set, is POSTed (relative to the work URL) to
	// fetch the chapter list out of band if the page itself has none.
	ChapterEndpoint string

	// Cover matches the element carrying the cover image and, via
	// NameAttr, the work's name. CoverAttrs are tried in order. When
	// CoverWithin is set, only a Cover element after it is read.
	Cover       AnyOf
	CoverWithin AnyOf
	CoverAttrs  []string
	NameAttr    string

	// Rating matches the element whose RatingAttr holds the score.
	// RatingText matches an element whose text is the score.
	Rating     AnyOf
	RatingAttr string
	RatingText AnyOf

	// NameText matches a heading whose text names the work. It is read
	// only when the cover element supplied no name. Text inside
	// NameExclude elements, such as badges, is skipped.
	NameText    AnyOf
	NameExclude AnyOf

	GenreList AnyOf
	GenreItem AnyOf

	// Summary matches the description container. Nested SummaryBoundary
	// tags raise the depth; only depth-one text is kept.
	Summary         AnyOf
	SummaryBoundary []string

	// Info matches the author/artist/status container; InfoEnd closes it.
	// InfoLabel elements hold "Label: value" pairs and end on InfoLabelEnd.
	// InfoStatus matches containers that hold only a status value.
	Info         AnyOf
	InfoEnd      string
	InfoLabel    AnyOf
	InfoLabelEnd string
	InfoStatus   AnyOf

	ChapterList    AnyOf
	ChapterListEnd string
	ChapterItem    AnyOf
	ChapterItemEnd string
	ChapterLink    AnyOf
	ChapterNumber  AnyOf
	ChapterTitle   AnyOf
	ChapterDate    AnyOf
	ChapterPrice   AnyOf

	// LockedItemClass marks a chapter item locked from its class attribute.
	LockedItemClass string

	// LockGlyph overrides the default lock marker.
	LockGlyph string

	// DeriveNumbers gives chapters without an ordinal their one-based
	// position in the final ascending list.
	DeriveNumbers bool

	// NumberByPosition numbers every chapter by its one-based position in
	// the final ascending list, ignoring ordinals read from the page.
	NumberByPosition bool
}

// Latest returns the query pair ordering a listing by update.
func (g *Grammar) Latest() string {
	if g.LatestParam == "" {
		return "order=latest"
	}
	return g.LatestParam
}

// Glyph returns the lock marker for the grammar.
func (g *Grammar) Glyph() string {
	if g.LockGlyph == "" {
		return LockGlyph
	}
	return g.LockGlyph
}

// StripBase removes the first occurrence of the base URL from href.
func (g *Grammar) StripBase(href string) string {
	if g.BaseURL == "" {
		return strings.TrimSpace(href)
	}
	return strings.TrimSpace(strings.Replace(href, g.BaseURL, "", 1))
}

// Validate returns an error if the grammar cannot drive an extraction.
func (g *Grammar) Validate() error {
	if g.BaseURL == "" {
		return Errorf(EINVALID, "grammar base URL required")
	}
	if len(g.ChapterList) == 0 || len(g.ChapterItem) == 0 {
		return Errorf(EINVALID, "grammar chapter list predicates required")
	}
	if g.ChapterListEnd == "" || g.ChapterItemEnd == "" {
		return Errorf(EINVALID, "grammar chapter list end tags required")
	}
	return nil
}
