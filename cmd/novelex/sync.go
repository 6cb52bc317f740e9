package main

import (
	"fmt"

	"github.com/fwojciec/novelex"
	"github.com/fwojciec/novelex/crawl"
)

// Run executes the sync command.
func (c *SyncCmd) Run(deps *Dependencies) error {
	source, err := deps.Sources.Get(c.Site)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s. Use 'novelex sites' to see available sites.\n", novelex.ErrorMessage(err))
		return err
	}

	syncer := &crawl.Syncer{
		Source:      source,
		Works:       deps.Works,
		Pages:       c.Pages,
		Latest:      c.Latest,
		Concurrency: c.Concurrency,
	}

	result, err := syncer.Sync(deps.Ctx, func(ev crawl.ProgressEvent) {
		switch ev.Type {
		case crawl.ProgressStarted:
			fmt.Fprintf(deps.Stdout, "Syncing %d works from %s\n", ev.Total, source.Site().Name)
		case crawl.ProgressSaved:
			fmt.Fprintf(deps.Stdout, "[%d/%d] saved %s\n", ev.Completed, ev.Total, ev.Path)
		case crawl.ProgressUnchanged:
			fmt.Fprintf(deps.Stdout, "[%d/%d] unchanged %s\n", ev.Completed, ev.Total, ev.Path)
		case crawl.ProgressFailed:
			fmt.Fprintf(deps.Stderr, "[%d/%d] failed %s: %s\n", ev.Completed, ev.Total, ev.Path, novelex.ErrorMessage(ev.Error))
		}
	})
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", novelex.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Listed %d, saved %d, unchanged %d, failed %d\n",
		result.Listed, result.Saved, result.Unchanged, result.Failed)
	return nil
}
