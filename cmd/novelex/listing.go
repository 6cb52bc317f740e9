package main

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/fwojciec/novelex"
)

// Run executes the popular command.
func (c *PopularCmd) Run(deps *Dependencies) error {
	source, err := deps.Sources.Get(c.Site)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s. Use 'novelex sites' to see available sites.\n", novelex.ErrorMessage(err))
		return err
	}

	filters, err := parseFilters(c.Filter)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", novelex.ErrorMessage(err))
		return err
	}

	items, err := source.PopularWorks(deps.Ctx, c.Page, novelex.ListOptions{Latest: c.Latest, Filters: filters})
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", novelex.ErrorMessage(err))
		return err
	}

	printItems(deps, items)
	return nil
}

// Run executes the search command.
func (c *SearchCmd) Run(deps *Dependencies) error {
	source, err := deps.Sources.Get(c.Site)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s. Use 'novelex sites' to see available sites.\n", novelex.ErrorMessage(err))
		return err
	}

	items, err := source.SearchWorks(deps.Ctx, c.Term, c.Page)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", novelex.ErrorMessage(err))
		return err
	}

	printItems(deps, items)
	return nil
}

func printItems(deps *Dependencies, items []novelex.WorkItem) {
	if len(items) == 0 {
		fmt.Fprintln(deps.Stdout, "No works found.")
		return
	}
	for _, item := range items {
		fmt.Fprintf(deps.Stdout, "%s  %s\n", item.Path, item.Name)
	}
}

// parseFilters turns key=value pairs into listing query parameters.
func parseFilters(pairs []string) (url.Values, error) {
	if len(pairs) == 0 {
		return nil, nil
	}
	values := url.Values{}
	for _, pair := range pairs {
		key, value, ok := strings.Cut(pair, "=")
		if !ok || key == "" {
			return nil, novelex.Errorf(novelex.EINVALID, "filter %q must be key=value", pair)
		}
		values.Add(key, value)
	}
	return values, nil
}
