package main

import (
	"fmt"

	"github.com/fwojciec/novelex"
)

// Run executes the chapter command.
func (c *ChapterCmd) Run(deps *Dependencies) error {
	source, err := deps.Sources.Get(c.Site)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s. Use 'novelex sites' to see available sites.\n", novelex.ErrorMessage(err))
		return err
	}

	content, err := source.ParseChapter(deps.Ctx, c.Path)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", novelex.ErrorMessage(err))
		return err
	}

	if c.Markdown {
		content, err = deps.NewConverter(source.Site().Grammar.BaseURL).Convert(content)
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", novelex.ErrorMessage(err))
			return err
		}
	}

	fmt.Fprintln(deps.Stdout, content)
	return nil
}
