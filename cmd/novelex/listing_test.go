package main_test

import (
	"context"
	"net/url"
	"testing"

	"github.com/fwojciec/novelex"
	main "github.com/fwojciec/novelex/cmd/novelex"
	"github.com/fwojciec/novelex/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPopularCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("passes page and options to the source", func(t *testing.T) {
		t.Parallel()

		var gotPage int
		var gotOpts novelex.ListOptions
		source := &mock.Source{
			SiteFn: testSite,
			PopularWorksFn: func(_ context.Context, page int, opts novelex.ListOptions) ([]novelex.WorkItem, error) {
				gotPage, gotOpts = page, opts
				return []novelex.WorkItem{
					{Name: "The Wandering Sword", Path: "/series/the-wandering-sword/"},
					{Name: "Iron Lotus", Path: "/series/iron-lotus/"},
				}, nil
			},
		}
		deps, stdout, _ := newDeps(registryWith(source))

		cmd := &main.PopularCmd{Site: "knoxt", Page: 2, Latest: true, Filter: []string{"genre[]=action", "status=ongoing"}}
		err := cmd.Run(deps)

		require.NoError(t, err)
		assert.Equal(t, 2, gotPage)
		assert.True(t, gotOpts.Latest)
		assert.Equal(t, url.Values{"genre[]": {"action"}, "status": {"ongoing"}}, gotOpts.Filters)
		assert.Contains(t, stdout.String(), "/series/the-wandering-sword/  The Wandering Sword\n")
		assert.Contains(t, stdout.String(), "/series/iron-lotus/  Iron Lotus\n")
	})

	t.Run("rejects malformed filters", func(t *testing.T) {
		t.Parallel()

		source := &mock.Source{SiteFn: testSite}
		deps, _, stderr := newDeps(registryWith(source))

		err := (&main.PopularCmd{Site: "knoxt", Page: 1, Filter: []string{"order"}}).Run(deps)

		require.Error(t, err)
		assert.Equal(t, novelex.EINVALID, novelex.ErrorCode(err))
		assert.Contains(t, stderr.String(), "key=value")
	})

	t.Run("points at the sites command for unknown sites", func(t *testing.T) {
		t.Parallel()

		source := &mock.Source{SiteFn: testSite}
		deps, _, stderr := newDeps(registryWith(source))

		err := (&main.PopularCmd{Site: "nope", Page: 1}).Run(deps)

		require.Error(t, err)
		assert.Equal(t, novelex.ENOTFOUND, novelex.ErrorCode(err))
		assert.Contains(t, stderr.String(), "novelex sites")
	})
}

func TestSearchCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("prints results", func(t *testing.T) {
		t.Parallel()

		var gotTerm string
		source := &mock.Source{
			SiteFn: testSite,
			SearchWorksFn: func(_ context.Context, term string, page int) ([]novelex.WorkItem, error) {
				gotTerm = term
				return []novelex.WorkItem{{Name: "The Wandering Sword", Path: "/series/the-wandering-sword/"}}, nil
			},
		}
		deps, stdout, _ := newDeps(registryWith(source))

		err := (&main.SearchCmd{Site: "knoxt", Term: "sword", Page: 1}).Run(deps)

		require.NoError(t, err)
		assert.Equal(t, "sword", gotTerm)
		assert.Contains(t, stdout.String(), "The Wandering Sword")
	})

	t.Run("reports no results", func(t *testing.T) {
		t.Parallel()

		source := &mock.Source{
			SiteFn: testSite,
			SearchWorksFn: func(_ context.Context, _ string, _ int) ([]novelex.WorkItem, error) {
				return []novelex.WorkItem{}, nil
			},
		}
		deps, stdout, _ := newDeps(registryWith(source))

		err := (&main.SearchCmd{Site: "knoxt", Term: "zzz", Page: 1}).Run(deps)

		require.NoError(t, err)
		assert.Equal(t, "No works found.\n", stdout.String())
	})

	t.Run("surfaces blocked sites", func(t *testing.T) {
		t.Parallel()

		source := &mock.Source{
			SiteFn: testSite,
			SearchWorksFn: func(_ context.Context, _ string, _ int) ([]novelex.WorkItem, error) {
				return nil, novelex.Errorf(novelex.EBLOCKED, "open the site in a browser to pass the challenge")
			},
		}
		deps, _, stderr := newDeps(registryWith(source))

		err := (&main.SearchCmd{Site: "knoxt", Term: "sword", Page: 1}).Run(deps)

		require.Error(t, err)
		assert.Equal(t, novelex.EBLOCKED, novelex.ErrorCode(err))
		assert.Contains(t, stderr.String(), "challenge")
	})
}
