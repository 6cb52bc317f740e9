package mock

import (
	"iter"
	"time"

	"github.com/fwojciec/novelex"
)

var _ novelex.Tokenizer = (*Tokenizer)(nil)

// Tokenizer is a mock implementation of novelex.Tokenizer.
type Tokenizer struct {
	TokenizeFn func(body string) iter.Seq2[novelex.Event, error]
}

func (t *Tokenizer) Tokenize(body string) iter.Seq2[novelex.Event, error] {
	return t.TokenizeFn(body)
}

var _ novelex.Extractor = (*Extractor)(nil)

// Extractor is a mock implementation of novelex.Extractor.
type Extractor struct {
	ExtractFn         func(events iter.Seq[novelex.Event], g *novelex.Grammar, p novelex.Policy) *novelex.Work
	ExtractChaptersFn func(events iter.Seq[novelex.Event], g *novelex.Grammar, p novelex.Policy) []novelex.Chapter
}

func (e *Extractor) Extract(events iter.Seq[novelex.Event], g *novelex.Grammar, p novelex.Policy) *novelex.Work {
	return e.ExtractFn(events, g, p)
}

func (e *Extractor) ExtractChapters(events iter.Seq[novelex.Event], g *novelex.Grammar, p novelex.Policy) []novelex.Chapter {
	return e.ExtractChaptersFn(events, g, p)
}

var _ novelex.RecordNormalizer = (*RecordNormalizer)(nil)

// RecordNormalizer is a mock implementation of novelex.RecordNormalizer.
type RecordNormalizer struct {
	NormalizeFn func(w *novelex.Work, g *novelex.Grammar, now time.Time)
}

func (n *RecordNormalizer) Normalize(w *novelex.Work, g *novelex.Grammar, now time.Time) {
	n.NormalizeFn(w, g, now)
}

var _ novelex.DateNormalizer = (*DateNormalizer)(nil)

// DateNormalizer is a mock implementation of novelex.DateNormalizer.
type DateNormalizer struct {
	NormalizeFn func(raw string, now time.Time) string
}

func (n *DateNormalizer) Normalize(raw string, now time.Time) string {
	return n.NormalizeFn(raw, now)
}
