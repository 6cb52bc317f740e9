package main

import (
	"fmt"
)

// Run executes the sites command.
func (c *SitesCmd) Run(deps *Dependencies) error {
	sites := deps.Sources.List()
	if len(sites) == 0 {
		fmt.Fprintln(deps.Stdout, "No sites configured. Check NOVELEX_SITES.")
		return nil
	}

	for _, s := range sites {
		line := fmt.Sprintf("%s  %s  %s  %s", s.ID, s.Name, s.Lang, s.Family)
		if s.HasLocked {
			line += "  (locked chapters)"
		}
		fmt.Fprintln(deps.Stdout, line)
	}
	return nil
}
