package main

import (
	"fmt"

	"github.com/fwojciec/novelex"
)

// Run executes the list command.
func (c *ListCmd) Run(deps *Dependencies) error {
	filter := novelex.WorkFilter{Limit: c.Limit}
	if c.Site != "" {
		filter.SiteID = &c.Site
	}

	entries, err := deps.Works.FindWorks(deps.Ctx, filter)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", novelex.ErrorMessage(err))
		return err
	}

	if len(entries) == 0 {
		fmt.Fprintln(deps.Stdout, "No works found. Use 'novelex sync' to fetch some.")
		return nil
	}

	for _, e := range entries {
		fmt.Fprintf(deps.Stdout, "%s  %s  %s  %s\n", e.SiteID, e.Work.Path, e.Work.Name, e.FetchedAt.Format("2006-01-02"))
	}
	return nil
}
