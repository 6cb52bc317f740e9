package main

import (
	"context"
	"io"

	"github.com/fwojciec/novelex"
	"github.com/fwojciec/novelex/sqlite"
)

// ChapterStore receives the chapters of one download and publishes them
// all at once.
type ChapterStore interface {
	novelex.ChapterWriter

	// Commit publishes the written chapters.
	Commit() error

	// Abort discards the written chapters.
	Abort() error
}

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx         context.Context
	Stdout      io.Writer
	Stderr      io.Writer
	DB          *sqlite.DB
	Sources     novelex.SourceRegistry
	Works       novelex.WorkService
	Preferences novelex.PreferenceService

	// NewConverter returns a Markdown converter resolving links against baseURL.
	NewConverter func(baseURL string) novelex.Converter

	// NewStore returns the store for a download named name under dir.
	NewStore func(dir, name string) ChapterStore
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Debug bool `help:"Log fetches and extractions to stderr"`

	Sites      SitesCmd      `cmd:"" help:"List supported sites"`
	Popular    PopularCmd    `cmd:"" help:"Show a page of a site's popular works"`
	Search     SearchCmd     `cmd:"" help:"Search a site for works"`
	Work       WorkCmd       `cmd:"" help:"Show a work's details and chapters"`
	Chapter    ChapterCmd    `cmd:"" help:"Print a chapter's content"`
	Download   DownloadCmd   `cmd:"" help:"Download a work's chapters as Markdown files"`
	Sync       SyncCmd       `cmd:"" help:"Store a site's popular works in the local catalog"`
	List       ListCmd       `cmd:"" help:"List works in the local catalog"`
	Delete     DeleteCmd     `cmd:"" help:"Delete a work from the local catalog"`
	HideLocked HideLockedCmd `cmd:"" name:"hide-locked" help:"Hide or show locked chapters for a site"`
}

// SitesCmd is the "sites" subcommand.
type SitesCmd struct{}

// PopularCmd is the "popular" subcommand.
type PopularCmd struct {
	Site   string   `arg:"" help:"Site ID"`
	Page   int      `short:"p" default:"1" help:"Listing page"`
	Latest bool     `short:"l" help:"Order by latest update"`
	Filter []string `short:"F" name:"filter" help:"Listing filter as key=value (repeatable)"`
}

// SearchCmd is the "search" subcommand.
type SearchCmd struct {
	Site string `arg:"" help:"Site ID"`
	Term string `arg:"" help:"Search term"`
	Page int    `short:"p" default:"1" help:"Results page"`
}

// WorkCmd is the "work" subcommand.
type WorkCmd struct {
	Site string `arg:"" help:"Site ID"`
	Path string `arg:"" help:"Work path relative to the site"`
	JSON bool   `name:"json" help:"Print the work as JSON"`
	Save bool   `short:"s" help:"Store the work in the local catalog"`
}

// ChapterCmd is the "chapter" subcommand.
type ChapterCmd struct {
	Site     string `arg:"" help:"Site ID"`
	Path     string `arg:"" help:"Chapter path relative to the site"`
	Markdown bool   `short:"m" help:"Convert the content to Markdown"`
}

// DownloadCmd is the "download" subcommand.
type DownloadCmd struct {
	Site   string `arg:"" help:"Site ID"`
	Path   string `arg:"" help:"Work path relative to the site"`
	Dir    string `short:"o" default:"." help:"Output directory"`
	Locked bool   `help:"Also download locked chapters"`
}

// SyncCmd is the "sync" subcommand.
type SyncCmd struct {
	Site        string `arg:"" help:"Site ID"`
	Pages       int    `short:"p" default:"1" help:"Listing pages to walk"`
	Latest      bool   `short:"l" help:"Walk the latest-updates listing"`
	Concurrency int    `short:"c" default:"4" help:"Concurrent work extractions"`
}

// ListCmd is the "list" subcommand.
type ListCmd struct {
	Site  string `help:"Only list works of this site"`
	Limit int    `short:"n" default:"0" help:"Maximum number of works (0 for all)"`
}

// DeleteCmd is the "delete" subcommand.
type DeleteCmd struct {
	Site  string `arg:"" help:"Site ID"`
	Path  string `arg:"" help:"Work path relative to the site"`
	Force bool   `help:"Confirm deletion"`
}

// HideLockedCmd is the "hide-locked" subcommand.
type HideLockedCmd struct {
	Site  string `arg:"" help:"Site ID"`
	State string `arg:"" enum:"on,off" help:"on or off"`
}
