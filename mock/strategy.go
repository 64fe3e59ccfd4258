package mock

import (
	"context"

	"github.com/fwojciec/folio"
)

var _ folio.Strategy = (*Strategy)(nil)

// Strategy is a mock implementation of folio.Strategy.
type Strategy struct {
	ExtractFn func(ctx context.Context, page *folio.Page) (*folio.ExtractionResult, error)
}

func (s *Strategy) Extract(ctx context.Context, page *folio.Page) (*folio.ExtractionResult, error) {
	return s.ExtractFn(ctx, page)
}

var _ folio.StrategyRegistry = (*StrategyRegistry)(nil)

// StrategyRegistry is a mock implementation of folio.StrategyRegistry.
type StrategyRegistry struct {
	RegisterFn  func(platform folio.Platform, domain string, strategy folio.Strategy)
	SelectFn    func(url string) (folio.Platform, folio.Strategy)
	PlatformsFn func() []folio.Platform
}

func (r *StrategyRegistry) Register(platform folio.Platform, domain string, strategy folio.Strategy) {
	r.RegisterFn(platform, domain, strategy)
}

func (r *StrategyRegistry) Select(url string) (folio.Platform, folio.Strategy) {
	return r.SelectFn(url)
}

func (r *StrategyRegistry) Platforms() []folio.Platform {
	return r.PlatformsFn()
}
