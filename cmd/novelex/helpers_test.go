package main_test

import (
	"bytes"
	"context"

	"github.com/fwojciec/novelex"
	main "github.com/fwojciec/novelex/cmd/novelex"
	"github.com/fwojciec/novelex/fs"
	"github.com/fwojciec/novelex/htmltomarkdown"
	"github.com/fwojciec/novelex/mock"
)

func testSite() *novelex.Site {
	return &novelex.Site{
		ID:      "knoxt",
		Name:    "KnoxT",
		Lang:    "English",
		Family:  novelex.FamilyLightNovelWP,
		Grammar: &novelex.Grammar{BaseURL: "https://knoxt.space/"},
	}
}

// registryWith returns a registry serving source for its site ID only.
func registryWith(source novelex.Source) *mock.SourceRegistry {
	return &mock.SourceRegistry{
		GetFn: func(id string) (novelex.Source, error) {
			if id != source.Site().ID {
				return nil, novelex.Errorf(novelex.ENOTFOUND, "unknown site %q", id)
			}
			return source, nil
		},
		ListFn: func() []*novelex.Site {
			return []*novelex.Site{source.Site()}
		},
	}
}

func newDeps(registry novelex.SourceRegistry) (*main.Dependencies, *bytes.Buffer, *bytes.Buffer) {
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	return &main.Dependencies{
		Ctx:     context.Background(),
		Stdout:  stdout,
		Stderr:  stderr,
		Sources: registry,
		NewConverter: func(baseURL string) novelex.Converter {
			return htmltomarkdown.NewConverter(htmltomarkdown.WithDomain(baseURL))
		},
		NewStore: func(dir, name string) main.ChapterStore {
			return fs.NewWriter(dir, name)
		},
	}, stdout, stderr
}
