package scrape

import (
	"context"
	"strings"
	"sync"

	"github.com/fwojciec/folio"
	"golang.org/x/time/rate"
)

var _ folio.DomainLimiter = (*DomainLimiter)(nil)

// DomainLimiter spaces fetches per host. Hosts are compared without case
// and without a leading "www.", so www.behance.net and behance.net share
// one budget.
type DomainLimiter struct {
	limit rate.Limit

	mu      sync.Mutex
	buckets map[string]*rate.Limiter
}

// NewDomainLimiter returns a limiter allowing rps fetches per second to
// each host, with no burst. An rps of zero or less disables limiting.
func NewDomainLimiter(rps float64) *DomainLimiter {
	limit := rate.Limit(rps)
	if rps <= 0 {
		limit = rate.Inf
	}
	return &DomainLimiter{
		limit:   limit,
		buckets: make(map[string]*rate.Limiter),
	}
}

// Wait blocks until a fetch to domain is allowed or ctx ends.
func (d *DomainLimiter) Wait(ctx context.Context, domain string) error {
	if d.limit == rate.Inf {
		return ctx.Err()
	}
	return d.bucket(domain).Wait(ctx)
}

func (d *DomainLimiter) bucket(domain string) *rate.Limiter {
	key := strings.TrimPrefix(strings.ToLower(domain), "www.")

	d.mu.Lock()
	defer d.mu.Unlock()
	b, ok := d.buckets[key]
	if !ok {
		b = rate.NewLimiter(d.limit, 1)
		d.buckets[key] = b
	}
	return b
}
