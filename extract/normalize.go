package extract

import (
	"slices"
	"strings"
	"time"

	"github.com/fwojciec/novelex"
)

// Ensure Normalizer implements novelex.RecordNormalizer at compile time.
var _ novelex.RecordNormalizer = (*Normalizer)(nil)

// Normalizer is the post-pass over an extracted work: it orders chapters
// ascending, resolves release times and finishes trimming. Normalizing an
// already normalized work changes nothing except when the grammar asks for
// chapter reversal, which is applied on every call.
type Normalizer struct {
	dates novelex.DateNormalizer
}

// NewNormalizer creates a Normalizer. A nil dates leaves release times as
// extracted.
func NewNormalizer(dates novelex.DateNormalizer) *Normalizer {
	return &Normalizer{dates: dates}
}

// Normalize rewrites w in place.
func (n *Normalizer) Normalize(w *novelex.Work, g *novelex.Grammar, now time.Time) {
	w.Summary = strings.TrimSpace(w.Summary)
	w.Author = strings.TrimSpace(w.Author)
	w.Artist = strings.TrimSpace(w.Artist)

	genres := w.Genres[:0]
	for _, genre := range w.Genres {
		if genre = strings.TrimSpace(genre); genre != "" {
			genres = append(genres, genre)
		}
	}
	w.Genres = genres

	if g.ReverseChapters {
		slices.Reverse(w.Chapters)
	}
	for i := range w.Chapters {
		ch := &w.Chapters[i]
		if n.dates != nil && ch.ReleaseTime != "" {
			ch.ReleaseTime = n.dates.Normalize(ch.ReleaseTime, now)
		}
		if g.NumberByPosition || (g.DeriveNumbers && ch.Number == 0) {
			ch.Number = i + 1
		}
	}
}
