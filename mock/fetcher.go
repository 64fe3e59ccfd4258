package mock

import (
	"context"

	"github.com/fwojciec/folio"
)

var _ folio.Fetcher = (*Fetcher)(nil)

// Fetcher is a mock implementation of folio.Fetcher.
type Fetcher struct {
	FetchFn func(ctx context.Context, url string) (*folio.Page, error)
}

func (f *Fetcher) Fetch(ctx context.Context, url string) (*folio.Page, error) {
	return f.FetchFn(ctx, url)
}

var _ folio.DomainLimiter = (*DomainLimiter)(nil)

// DomainLimiter is a mock implementation of folio.DomainLimiter.
type DomainLimiter struct {
	WaitFn func(ctx context.Context, domain string) error
}

func (l *DomainLimiter) Wait(ctx context.Context, domain string) error {
	return l.WaitFn(ctx, domain)
}
