package mock

import (
	"context"

	"github.com/fwojciec/novelex"
)

var _ novelex.ChapterWriter = (*ChapterWriter)(nil)

// ChapterWriter is a mock implementation of novelex.ChapterWriter.
type ChapterWriter struct {
	WriteChapterFn func(ctx context.Context, doc *novelex.ChapterDocument) error
}

func (w *ChapterWriter) WriteChapter(ctx context.Context, doc *novelex.ChapterDocument) error {
	return w.WriteChapterFn(ctx, doc)
}
