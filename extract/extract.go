// Package extract implements the streaming extraction state machine: a
// single forward pass over a document's markup events that, driven by a
// site family's Grammar, accumulates a novelex.Work without building a
// document tree or backtracking.
package extract

import (
	"iter"
	"strconv"
	"strings"

	"github.com/fwojciec/novelex"
)

// Ensure Extractor implements novelex.Extractor at compile time.
var _ novelex.Extractor = (*Extractor)(nil)

// Extractor runs grammars over event streams. It holds no per-document
// state and is safe for concurrent use; every call allocates its own Machine.
type Extractor struct {
	keywords *novelex.Keywords
}

// NewExtractor creates a new Extractor using the given keyword tables.
func NewExtractor(keywords *novelex.Keywords) *Extractor {
	return &Extractor{keywords: keywords}
}

// Extract consumes events once and returns the accumulated work.
func (e *Extractor) Extract(events iter.Seq[novelex.Event], g *novelex.Grammar, p novelex.Policy) *novelex.Work {
	m := NewMachine(g, e.keywords, p)
	for ev := range events {
		m.Feed(ev)
	}
	return m.Work()
}

// ExtractChapters reads a detached chapter-list fragment, such as the body
// of an out-of-band chapter endpoint, as if it sat inside the grammar's
// chapter list.
func (e *Extractor) ExtractChapters(events iter.Seq[novelex.Event], g *novelex.Grammar, p novelex.Policy) []novelex.Chapter {
	m := NewMachine(g, e.keywords, p)
	m.mode = modeChapters
	for ev := range events {
		m.Feed(ev)
	}
	return m.Work().Chapters
}

// mode is the active top-level context. Only one context reads at a time.
type mode int

const (
	modeIdle mode = iota
	modeName
	modeGenres
	modeSummary
	modeInfo
	modeChapters
)

// Machine is the extraction state of one document. A Machine must not be
// shared between goroutines or reused across documents.
type Machine struct {
	g        *novelex.Grammar
	keywords *novelex.Keywords
	policy   novelex.Policy

	mode mode
	work novelex.Work

	coverSet    bool
	coverArmed  bool
	ratingArmed bool
	name        nameState
	genre    genreState
	summary  summaryState
	info     infoState
	chapters chapterState
}

// NewMachine returns a Machine in the idle state.
func NewMachine(g *novelex.Grammar, keywords *novelex.Keywords, p novelex.Policy) *Machine {
	if keywords == nil {
		keywords = novelex.NewKeywords(nil, nil, nil, nil)
	}
	return &Machine{
		g:        g,
		keywords: keywords,
		policy:   p,
	}
}

// Feed applies one event.
func (m *Machine) Feed(ev novelex.Event) {
	switch ev.Kind {
	case novelex.EventOpen:
		m.open(ev)
	case novelex.EventText:
		m.text(ev.Text)
	case novelex.EventClose:
		m.close(ev.Name)
	}
}

// Work finalizes and returns the accumulated record. Contexts left open by
// a truncated document are flushed as if their elements had closed.
func (m *Machine) Work() *novelex.Work {
	switch m.mode {
	case modeName:
		m.endName()
	case modeGenres:
		m.endGenres()
	case modeInfo:
		m.endInfo()
	case modeChapters:
		if m.chapters.item != nil {
			m.endItem()
		}
	}
	m.mode = modeIdle

	w := m.work
	w.Summary = strings.TrimSpace(m.summary.buf.String())
	if w.Cover == "" {
		w.Cover = novelex.DefaultCover
	}
	if w.Status == "" {
		w.Status = novelex.StatusUnknown
	}
	w.Genres = append([]string{}, m.genre.genres...)
	w.Chapters = append([]novelex.Chapter{}, m.chapters.out...)
	return &w
}

func (m *Machine) open(ev novelex.Event) {
	if !m.coverSet && len(m.g.CoverWithin) > 0 && m.g.CoverWithin.Match(ev) {
		m.coverArmed = true
	}
	if !m.coverSet && (len(m.g.CoverWithin) == 0 || m.coverArmed) && m.g.Cover.Match(ev) {
		m.readCover(ev)
		return
	}
	if m.work.Rating == nil && m.g.Rating.Match(ev) {
		m.readRating(ev)
		return
	}
	if m.work.Rating == nil && m.g.RatingText.Match(ev) {
		m.ratingArmed = true
	}

	switch m.mode {
	case modeIdle:
		m.openIdle(ev)
	case modeName:
		m.openName(ev)
	case modeGenres:
		m.openGenres(ev)
	case modeSummary:
		m.openSummary(ev)
	case modeInfo:
		m.openInfo(ev)
	case modeChapters:
		m.openChapters(ev)
	}
}

func (m *Machine) openIdle(ev novelex.Event) {
	switch {
	case m.g.GenreList.Match(ev):
		m.mode = modeGenres
		m.genre.reading = false
	case m.g.Summary.Match(ev):
		m.mode = modeSummary
		m.summary.depth = 1
		m.summary.tag = ev.Name
	case m.g.Info.Match(ev):
		m.mode = modeInfo
		m.info = infoState{}
	case m.g.InfoStatus.Match(ev):
		m.mode = modeInfo
		m.info = infoState{readingLabel: true, field: novelex.FieldStatus}
	case m.g.ChapterList.Match(ev):
		m.mode = modeChapters
	case m.work.Name == "" && m.g.NameText.Match(ev):
		m.mode = modeName
		m.name = nameState{depth: 1}
	}
}

func (m *Machine) text(s string) {
	if m.ratingArmed {
		m.readRatingText(s)
	}

	switch m.mode {
	case modeName:
		m.textName(s)
	case modeGenres:
		m.textGenres(s)
	case modeSummary:
		m.textSummary(s)
	case modeInfo:
		m.textInfo(s)
	case modeChapters:
		m.textChapters(s)
	}
}

func (m *Machine) close(name string) {
	m.ratingArmed = false

	switch m.mode {
	case modeName:
		m.closeName()
	case modeGenres:
		m.closeGenres(name)
	case modeSummary:
		m.closeSummary(name)
	case modeInfo:
		m.closeInfo(name)
	case modeChapters:
		m.closeChapters(name)
	}
}

// readCover takes the work's name and cover from the cover element.
func (m *Machine) readCover(ev novelex.Event) {
	m.coverSet = true
	if m.g.NameAttr != "" {
		if name := strings.TrimSpace(ev.Attr(m.g.NameAttr)); name != "" {
			m.work.Name = name
		}
	}
	m.work.Cover = novelex.DefaultCover
	for _, attr := range m.g.CoverAttrs {
		if v := strings.TrimSpace(ev.Attr(attr)); v != "" {
			m.work.Cover = v
			break
		}
	}
}

func (m *Machine) readRating(ev novelex.Event) {
	m.setRating(ev.Attr(m.g.RatingAttr))
}

func (m *Machine) readRatingText(s string) {
	if strings.TrimSpace(s) == "" {
		return
	}
	m.ratingArmed = false
	m.setRating(s)
}

func (m *Machine) setRating(s string) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return
	}
	m.work.Rating = &v
}

// nameState reads the text of a heading that names the work. It is only
// consulted when the cover element did not carry a name. skip is the depth
// inside an excluded element, zero outside one.
type nameState struct {
	depth int
	skip  int
	buf   strings.Builder
}

func (m *Machine) openName(ev novelex.Event) {
	m.name.depth++
	switch {
	case m.name.skip > 0:
		m.name.skip++
	case m.g.NameExclude.Match(ev):
		m.name.skip = 1
	}
}

func (m *Machine) textName(s string) {
	if m.name.skip == 0 {
		m.name.buf.WriteString(s)
	}
}

func (m *Machine) closeName() {
	if m.name.skip > 0 {
		m.name.skip--
	}
	m.name.depth--
	if m.name.depth == 0 {
		m.endName()
	}
}

func (m *Machine) endName() {
	if m.work.Name == "" {
		m.work.Name = strings.Join(strings.Fields(m.name.buf.String()), " ")
	}
	m.name = nameState{}
	m.mode = modeIdle
}
