package main

import (
	"fmt"

	"github.com/fwojciec/novelex"
)

// Run executes the hide-locked command.
func (c *HideLockedCmd) Run(deps *Dependencies) error {
	source, err := deps.Sources.Get(c.Site)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s. Use 'novelex sites' to see available sites.\n", novelex.ErrorMessage(err))
		return err
	}

	site := source.Site()
	if !site.HasLocked {
		err := novelex.Errorf(novelex.EINVALID, "site %s does not publish locked chapters", site.Name)
		fmt.Fprintf(deps.Stderr, "error: %s\n", novelex.ErrorMessage(err))
		return err
	}

	hide := c.State == "on"
	if err := deps.Preferences.SetHideLocked(deps.Ctx, site.ID, hide); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", novelex.ErrorMessage(err))
		return err
	}

	if hide {
		fmt.Fprintf(deps.Stdout, "Locked chapters are now hidden for %s\n", site.Name)
	} else {
		fmt.Fprintf(deps.Stdout, "Locked chapters are now shown for %s\n", site.Name)
	}
	return nil
}
