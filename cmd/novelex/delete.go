package main

import (
	"fmt"

	"github.com/fwojciec/novelex"
)

// Run executes the delete command.
func (c *DeleteCmd) Run(deps *Dependencies) error {
	if !c.Force {
		fmt.Fprintf(deps.Stderr, "error: use --force to confirm deletion\n")
		return novelex.Errorf(novelex.EINVALID, "use --force to confirm deletion")
	}

	if err := deps.Works.DeleteWork(deps.Ctx, c.Site, c.Path); err != nil {
		if novelex.ErrorCode(err) == novelex.ENOTFOUND {
			fmt.Fprintf(deps.Stderr, "error: work %q not found. Use 'novelex list' to see stored works.\n", c.Path)
			return err
		}
		fmt.Fprintf(deps.Stderr, "error: %s\n", novelex.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Deleted work %q from %s\n", c.Path, c.Site)
	return nil
}
