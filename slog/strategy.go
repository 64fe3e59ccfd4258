package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/folio"
)

// Ensure LoggingStrategy implements folio.Strategy.
var _ folio.Strategy = (*LoggingStrategy)(nil)

// LoggingStrategy wraps a Strategy with logging. Every diagnostic on the
// result is logged at WARN so tolerated failures stay visible.
type LoggingStrategy struct {
	next     folio.Strategy
	platform folio.Platform
	logger   *slog.Logger
}

// NewLoggingStrategy creates a new LoggingStrategy for platform.
func NewLoggingStrategy(next folio.Strategy, platform folio.Platform, logger *slog.Logger) *LoggingStrategy {
	return &LoggingStrategy{next: next, platform: platform, logger: logger}
}

// Extract delegates to the wrapped strategy and logs the result counts.
func (s *LoggingStrategy) Extract(ctx context.Context, page *folio.Page) (result *folio.ExtractionResult, err error) {
	var url string
	if page != nil {
		url = page.URL
	}

	defer func(begin time.Time) {
		if result == nil {
			s.logger.Info("extract",
				"url", url,
				"platform", s.platform,
				"duration", time.Since(begin),
				"err", err,
			)
			return
		}
		for _, d := range result.Diagnostics {
			s.logger.Warn("extraction step failed",
				"url", url,
				"source", d.Source,
				"err", d.Message,
			)
		}
		s.logger.Info("extract",
			"url", url,
			"platform", s.platform,
			"blocks", len(result.Blocks),
			"images", len(result.Images),
			"videos", len(result.Videos),
			"social", len(result.SocialLinks),
			"contacts", len(result.Contacts),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.Extract(ctx, page)
}

// Ensure LoggingRegistry implements folio.StrategyRegistry.
var _ folio.StrategyRegistry = (*LoggingRegistry)(nil)

// LoggingRegistry wraps a StrategyRegistry so that every selected strategy
// is a LoggingStrategy.
type LoggingRegistry struct {
	next   folio.StrategyRegistry
	logger *slog.Logger
}

// NewLoggingRegistry creates a new LoggingRegistry.
func NewLoggingRegistry(next folio.StrategyRegistry, logger *slog.Logger) *LoggingRegistry {
	return &LoggingRegistry{next: next, logger: logger}
}

// Register delegates to the wrapped registry.
func (r *LoggingRegistry) Register(platform folio.Platform, domain string, strategy folio.Strategy) {
	r.next.Register(platform, domain, strategy)
}

// Select delegates to the wrapped registry, logs the choice, and wraps the
// strategy with logging.
func (r *LoggingRegistry) Select(url string) (folio.Platform, folio.Strategy) {
	platform, strategy := r.next.Select(url)
	r.logger.Debug("strategy selected", "url", url, "platform", platform)
	return platform, NewLoggingStrategy(strategy, platform, r.logger)
}

// Platforms delegates to the wrapped registry.
func (r *LoggingRegistry) Platforms() []folio.Platform {
	return r.next.Platforms()
}
