package yaml

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/fwojciec/novelex"
	"gopkg.in/yaml.v3"
)

type sitesFile struct {
	Sites []siteEntry `yaml:"sites"`
}

type siteEntry struct {
	ID        string `yaml:"id"`
	Name      string `yaml:"name"`
	URL       string `yaml:"url"`
	Lang      string `yaml:"lang"`
	Family    string `yaml:"family"`
	HasLocked bool   `yaml:"has_locked"`
	Options   struct {
		ReverseChapters bool   `yaml:"reverse_chapters"`
		SeriesPath      string `yaml:"series_path"`
		ChapterEndpoint string `yaml:"chapter_endpoint"`
		LockedItemClass string `yaml:"locked_item_class"`
		DeriveNumbers   bool   `yaml:"derive_numbers"`
	} `yaml:"options"`
}

// DefaultSites returns the embedded site catalog.
func DefaultSites(builders map[novelex.Family]novelex.GrammarBuilder) ([]*novelex.Site, error) {
	return LoadSites(bytes.NewReader(defaultSites), builders)
}

// LoadSites parses a site catalog from r, building each site's grammar with
// the builder registered for its family. Site URLs are normalized to end
// in a slash.
// Returns EINVALID if a site names a family without a builder or fails
// validation.
func LoadSites(r io.Reader, builders map[novelex.Family]novelex.GrammarBuilder) ([]*novelex.Site, error) {
	var f sitesFile
	if err := yaml.NewDecoder(r).Decode(&f); err != nil && err != io.EOF {
		return nil, fmt.Errorf("failed to parse sites: %w", err)
	}

	sites := make([]*novelex.Site, 0, len(f.Sites))
	for _, e := range f.Sites {
		family := novelex.Family(e.Family)
		build, ok := builders[family]
		if !ok {
			return nil, novelex.Errorf(novelex.EINVALID, "site %q: unknown family %q", e.ID, e.Family)
		}

		base := e.URL
		if !strings.HasSuffix(base, "/") {
			base += "/"
		}

		site := &novelex.Site{
			ID:        e.ID,
			Name:      e.Name,
			Lang:      e.Lang,
			Family:    family,
			HasLocked: e.HasLocked,
			Grammar: build(base, novelex.SiteOptions{
				ReverseChapters: e.Options.ReverseChapters,
				SeriesPath:      e.Options.SeriesPath,
				ChapterEndpoint: e.Options.ChapterEndpoint,
				LockedItemClass: e.Options.LockedItemClass,
				DeriveNumbers:   e.Options.DeriveNumbers,
			}),
		}
		if err := site.Validate(); err != nil {
			return nil, err
		}
		sites = append(sites, site)
	}
	return sites, nil
}
