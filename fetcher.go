package folio

import "context"

// Page is a fetched HTML document.
type Page struct {
	// URL is the source URL and the base for resolving references.
	URL        string
	StatusCode int
	Body       []byte
	Headers    map[string][]string
}

// Fetcher retrieves documents over the network.
type Fetcher interface {
	// Fetch performs one GET of url.
	// Transport failures and non-2xx responses return a *FetchError.
	// The context controls timeout and cancellation.
	Fetch(ctx context.Context, url string) (*Page, error)
}

// DomainLimiter provides per-domain rate limiting.
type DomainLimiter interface {
	// Wait blocks until the rate limit allows a request to the domain.
	// Returns an error if the context is canceled.
	Wait(ctx context.Context, domain string) error
}
