// Package scrape orchestrates single-page scrapes: strategy dispatch,
// rate-limited fetching with retry, extraction, and persistence of the
// assembled record.
package scrape

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/fwojciec/folio"
	"golang.org/x/sync/errgroup"
)

var _ folio.Scraper = (*Service)(nil)

// DefaultConcurrency is the number of URLs Batch scrapes at once when no
// limit is given.
const DefaultConcurrency = 4

// Service scrapes URLs into persisted records.
type Service struct {
	Records    folio.RecordService
	Fetcher    folio.Fetcher
	Strategies folio.StrategyRegistry

	// RateLimiter spaces fetches per domain. Optional.
	RateLimiter folio.DomainLimiter

	// Locker serializes scrapes of the same URL.
	Locker *URLLocker

	// RetryDelays are the waits between fetch attempts. Nil means
	// DefaultRetryDelays; an empty slice disables retries.
	RetryDelays []time.Duration

	// Logf, if set, receives retry notices.
	Logf LogFunc
}

// NewService creates a new Service with its own URL locker.
func NewService(records folio.RecordService, fetcher folio.Fetcher, strategies folio.StrategyRegistry) *Service {
	return &Service{
		Records:    records,
		Fetcher:    fetcher,
		Strategies: strategies,
		Locker:     NewURLLocker(),
	}
}

// Scrape fetches and extracts url and replaces the stored record's
// children with the result. Scrapes of the same URL run one at a time.
//
// An invalid URL is rejected before any state changes. Once the record
// exists, a failure still persists it as failed with the error in its
// content detail; the record is returned alongside the error.
func (s *Service) Scrape(ctx context.Context, url string) (*folio.ScrapeRecord, error) {
	if err := folio.ValidateURL(url); err != nil {
		return nil, err
	}

	unlock := s.Locker.Lock(url)
	defer unlock()

	platform, strategy := s.Strategies.Select(url)

	record, err := s.Records.FindOrCreateRecord(ctx, url, platform)
	if err != nil {
		return nil, fmt.Errorf("find or create record: %w", err)
	}
	if err := s.Records.SetStatus(ctx, record.ID, folio.StatusPending); err != nil {
		return nil, fmt.Errorf("set pending: %w", err)
	}

	result, err := s.extract(ctx, url, strategy)
	if err != nil {
		return s.fail(ctx, record.ID, err)
	}

	if err := s.Records.ReplaceChildren(ctx, record.ID, Assemble(result)); err != nil {
		return s.fail(ctx, record.ID, fmt.Errorf("save result: %w", err))
	}
	if err := s.Records.SetStatus(ctx, record.ID, folio.StatusCompleted); err != nil {
		return s.fail(ctx, record.ID, fmt.Errorf("set completed: %w", err))
	}

	return s.Records.FindRecordByID(ctx, record.ID)
}

func (s *Service) extract(ctx context.Context, url string, strategy folio.Strategy) (*folio.ExtractionResult, error) {
	if s.RateLimiter != nil {
		if err := s.RateLimiter.Wait(ctx, folio.Hostname(url)); err != nil {
			return nil, err
		}
	}

	delays := s.RetryDelays
	if delays == nil {
		delays = DefaultRetryDelays()
	}

	page, err := FetchWithRetryDelays(ctx, url, s.Fetcher.Fetch, s.Logf, delays)
	if err != nil {
		return nil, err
	}

	result, err := strategy.Extract(ctx, page)
	if err != nil {
		return nil, fmt.Errorf("extract: %w", err)
	}
	return result, nil
}

// fail records cause on the record and marks it failed. The writes outlive
// a canceled ctx so an aborted scrape never stays pending.
func (s *Service) fail(ctx context.Context, id string, cause error) (*folio.ScrapeRecord, error) {
	ctx = context.WithoutCancel(ctx)

	if err := s.Records.ReplaceChildren(ctx, id, FailureChangeSet(cause)); err != nil {
		return nil, errors.Join(cause, fmt.Errorf("save failure: %w", err))
	}
	if err := s.Records.SetStatus(ctx, id, folio.StatusFailed); err != nil {
		return nil, errors.Join(cause, fmt.Errorf("set failed: %w", err))
	}

	record, err := s.Records.FindRecordByID(ctx, id)
	if err != nil {
		return nil, errors.Join(cause, err)
	}
	return record, cause
}

// BatchResult is the outcome of scraping one URL in a batch.
type BatchResult struct {
	URL    string
	Record *folio.ScrapeRecord
	Err    error
}

// Batch scrapes urls with at most concurrency scrapes in flight and
// returns one result per URL, in input order. Failures are reported per
// URL and never stop the rest of the batch.
func Batch(ctx context.Context, scraper folio.Scraper, urls []string, concurrency int) []BatchResult {
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}

	results := make([]BatchResult, len(urls))

	var g errgroup.Group
	g.SetLimit(concurrency)
	for i, url := range urls {
		g.Go(func() error {
			record, err := scraper.Scrape(ctx, url)
			results[i] = BatchResult{URL: url, Record: record, Err: err}
			return nil
		})
	}
	_ = g.Wait()

	return results
}
