// Package prometheus provides Prometheus instrumentation for folio services.
package prometheus

import (
	"context"
	"net/http"
	"time"

	"github.com/fwojciec/folio"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Namespace prefixes every folio metric.
const Namespace = "folio"

// Metrics holds the scrape metrics.
type Metrics struct {
	ScrapesTotal          *prometheus.CounterVec
	ScrapeDurationSeconds *prometheus.HistogramVec
	DiagnosticsTotal      *prometheus.CounterVec
}

// NewMetrics creates and registers the scrape metrics on reg.
// A nil reg uses the default registerer.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	factory := promauto.With(reg)

	return &Metrics{
		ScrapesTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: Namespace,
				Name:      "scrapes_total",
				Help:      "Total number of scrapes, labeled by platform and resulting status.",
			},
			[]string{"platform", "status"},
		),
		ScrapeDurationSeconds: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: Namespace,
				Name:      "scrape_duration_seconds",
				Help:      "Duration of scrapes in seconds.",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"platform"},
		),
		DiagnosticsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: Namespace,
				Name:      "extraction_diagnostics_total",
				Help:      "Total number of tolerated extraction failures, labeled by source.",
			},
			[]string{"source"},
		),
	}
}

// Handler returns the HTTP handler exposing the metrics gathered by g.
func Handler(g prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(g, promhttp.HandlerOpts{})
}

// Ensure Scraper implements folio.Scraper.
var _ folio.Scraper = (*Scraper)(nil)

// Scraper wraps a folio.Scraper with scrape count and duration metrics.
type Scraper struct {
	next    folio.Scraper
	metrics *Metrics
}

// NewScraper creates a new instrumented Scraper.
func NewScraper(next folio.Scraper, metrics *Metrics) *Scraper {
	return &Scraper{next: next, metrics: metrics}
}

// Scrape delegates to the wrapped scraper and records the outcome.
// Scrapes rejected before a record exists are counted as "rejected".
func (s *Scraper) Scrape(ctx context.Context, url string) (*folio.ScrapeRecord, error) {
	begin := time.Now()
	record, err := s.next.Scrape(ctx, url)

	platform, status := "unknown", "rejected"
	if record != nil {
		platform, status = string(record.Platform), string(record.Status)
	} else if err == nil {
		status = string(folio.StatusCompleted)
	}

	s.metrics.ScrapesTotal.WithLabelValues(platform, status).Inc()
	s.metrics.ScrapeDurationSeconds.WithLabelValues(platform).Observe(time.Since(begin).Seconds())
	return record, err
}

// Ensure Strategy implements folio.Strategy.
var _ folio.Strategy = (*Strategy)(nil)

// Strategy wraps a folio.Strategy and counts the diagnostics it reports.
type Strategy struct {
	next    folio.Strategy
	metrics *Metrics
}

// NewStrategy creates a new instrumented Strategy.
func NewStrategy(next folio.Strategy, metrics *Metrics) *Strategy {
	return &Strategy{next: next, metrics: metrics}
}

// Extract delegates to the wrapped strategy and counts its diagnostics.
func (s *Strategy) Extract(ctx context.Context, page *folio.Page) (*folio.ExtractionResult, error) {
	result, err := s.next.Extract(ctx, page)
	if result != nil {
		for _, d := range result.Diagnostics {
			s.metrics.DiagnosticsTotal.WithLabelValues(d.Source).Inc()
		}
	}
	return result, err
}
