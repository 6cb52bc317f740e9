package novelex

import (
	"context"
	"net/url"
)

// Request describes one page fetch.
type Request struct {
	URL     string
	Method  string     // defaults to GET
	Form    url.Values // sent form-encoded when Method is POST
	Referer string

	// Search marks a search request. Sources treat a non-2xx status of a
	// search as "no results" instead of an unreachable site.
	Search bool
}

// Response is the result of a fetch.
type Response struct {
	Status   int
	FinalURL string // URL after redirects
	Body     string
}

// OK reports whether the status is 2xx.
func (r *Response) OK() bool {
	return r.Status >= 200 && r.Status < 300
}

// Fetcher retrieves pages. It is the transport collaborator of a Source.
type Fetcher interface {
	// Fetch performs the request and returns the response whatever its
	// status. Errors are reserved for transport failures.
	// The context controls timeout and cancellation.
	Fetch(ctx context.Context, req *Request) (*Response, error)

	// Close releases transport resources.
	Close() error
}

// DomainLimiter provides per-domain rate limiting.
type DomainLimiter interface {
	// Wait blocks until the rate limit allows a request to the domain.
	// Returns an error if the context is canceled.
	Wait(ctx context.Context, domain string) error
}
