package main

import (
	"fmt"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/fwojciec/novelex"
	"github.com/fwojciec/novelex/crawl"
)

// Run executes the download command. Chapters are fetched one at a time
// and published together; any failure discards the whole download.
func (c *DownloadCmd) Run(deps *Dependencies) error {
	source, err := deps.Sources.Get(c.Site)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s. Use 'novelex sites' to see available sites.\n", novelex.ErrorMessage(err))
		return err
	}

	work, err := source.ParseWork(deps.Ctx, c.Path)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", novelex.ErrorMessage(err))
		return err
	}

	chapters := make([]novelex.Chapter, 0, len(work.Chapters))
	for _, ch := range work.Chapters {
		if ch.Locked && !c.Locked {
			continue
		}
		chapters = append(chapters, ch)
	}
	if len(chapters) == 0 {
		fmt.Fprintf(deps.Stdout, "No chapters to download for %q.\n", work.Name)
		return nil
	}

	baseURL := source.Site().Grammar.BaseURL
	name := workDirName(c.Path)
	store := deps.NewStore(c.Dir, name)
	conv := deps.NewConverter(baseURL)

	total := 0
	for i, ch := range chapters {
		fmt.Fprintf(deps.Stderr, "[%d/%d] %s\n", i+1, len(chapters), ch.Name)

		doc, err := c.fetchChapter(deps, source, conv, baseURL, work, ch)
		if err == nil {
			err = store.WriteChapter(deps.Ctx, doc)
		}
		if err != nil {
			_ = store.Abort()
			fmt.Fprintf(deps.Stderr, "error: chapter %q: %s\n", ch.Path, novelex.ErrorMessage(err))
			return err
		}
		total += len(doc.Content)
	}

	if err := store.Commit(); err != nil {
		_ = store.Abort()
		fmt.Fprintf(deps.Stderr, "error: %s\n", err)
		return err
	}

	fmt.Fprintf(deps.Stdout, "Downloaded %d chapters of %q (%s) to %s\n",
		len(chapters), work.Name, crawl.FormatBytes(total), filepath.Join(c.Dir, name))
	return nil
}

func (c *DownloadCmd) fetchChapter(deps *Dependencies, source novelex.Source, conv novelex.Converter, baseURL string, work *novelex.Work, ch novelex.Chapter) (*novelex.ChapterDocument, error) {
	body, err := source.ParseChapter(deps.Ctx, ch.Path)
	if err != nil {
		return nil, err
	}
	content, err := conv.Convert(body)
	if err != nil {
		return nil, err
	}
	return &novelex.ChapterDocument{
		SiteID:    source.Site().ID,
		WorkName:  work.Name,
		Chapter:   ch,
		SourceURL: crawl.SanitizeURL(baseURL + ch.Path),
		Content:   content,
		FetchedAt: time.Now().UTC(),
	}, nil
}

// workDirName names the download directory after the work's slug.
func workDirName(workPath string) string {
	name := path.Base(strings.Trim(workPath, "/"))
	if name == "." || name == ".." || name == "/" || name == "" {
		return "work"
	}
	return name
}
