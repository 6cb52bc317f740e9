package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/fwojciec/novelex"
	"github.com/fwojciec/novelex/crawl"
)

// Run executes the work command.
func (c *WorkCmd) Run(deps *Dependencies) error {
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

	if c.Save {
		entry := &novelex.Entry{
			SiteID:    source.Site().ID,
			Hash:      crawl.Hash(work),
			Work:      work,
			FetchedAt: time.Now().UTC(),
		}
		if err := deps.Works.SaveWork(deps.Ctx, entry); err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", novelex.ErrorMessage(err))
			return err
		}
	}

	if c.JSON {
		enc := json.NewEncoder(deps.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(work)
	}

	printWork(deps.Stdout, work)
	return nil
}

func printWork(w io.Writer, work *novelex.Work) {
	fmt.Fprintln(w, work.Name)
	printField(w, "Author", work.Author)
	printField(w, "Artist", work.Artist)
	printField(w, "Status", string(work.Status))
	printField(w, "Genres", work.GenreString())
	if work.Rating != nil {
		printField(w, "Rating", strconv.FormatFloat(*work.Rating, 'f', -1, 64))
	}
	if work.Cover != novelex.DefaultCover {
		printField(w, "Cover", work.Cover)
	}
	if work.Summary != "" {
		fmt.Fprintf(w, "\n%s\n", work.Summary)
	}

	fmt.Fprintf(w, "\nChapters (%d):\n", len(work.Chapters))
	for _, ch := range work.Chapters {
		released := ch.ReleaseTime
		if released == "" {
			released = "-"
		}
		fmt.Fprintf(w, "  %4d  %-10s  %s  %s\n", ch.Number, released, ch.Name, ch.Path)
	}
}

func printField(w io.Writer, label, value string) {
	if value == "" {
		return
	}
	fmt.Fprintf(w, "%s: %s\n", label, value)
}
