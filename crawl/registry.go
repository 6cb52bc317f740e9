package crawl

import (
	"slices"
	"strings"
	"sync"

	"github.com/fwojciec/novelex"
)

var _ novelex.SourceRegistry = (*Registry)(nil)

// Registry holds the sources known to the program, keyed by site ID.
// It is safe for concurrent use.
type Registry struct {
	mu      sync.RWMutex
	sources map[string]novelex.Source
}

// NewRegistry returns an empty Registry.
func NewRegistry() *Registry {
	return &Registry{sources: make(map[string]novelex.Source)}
}

// Get returns the source registered for id.
func (r *Registry) Get(id string) (novelex.Source, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, ok := r.sources[id]
	if !ok {
		return nil, novelex.Errorf(novelex.ENOTFOUND, "unknown site %q", id)
	}
	return s, nil
}

// Register adds source, replacing any source with the same site ID.
func (r *Registry) Register(source novelex.Source) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sources[source.Site().ID] = source
}

// List returns the registered sites sorted by ID.
func (r *Registry) List() []*novelex.Site {
	r.mu.RLock()
	defer r.mu.RUnlock()

	sites := make([]*novelex.Site, 0, len(r.sources))
	for _, s := range r.sources {
		sites = append(sites, s.Site())
	}
	slices.SortFunc(sites, func(a, b *novelex.Site) int {
		return strings.Compare(a.ID, b.ID)
	})
	return sites
}
