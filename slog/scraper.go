package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/folio"
)

// Ensure LoggingScraper implements folio.Scraper.
var _ folio.Scraper = (*LoggingScraper)(nil)

// LoggingScraper wraps a Scraper with logging.
type LoggingScraper struct {
	next   folio.Scraper
	logger *slog.Logger
}

// NewLoggingScraper creates a new LoggingScraper.
func NewLoggingScraper(next folio.Scraper, logger *slog.Logger) *LoggingScraper {
	return &LoggingScraper{next: next, logger: logger}
}

// Scrape delegates to the wrapped scraper and logs the outcome. Failures
// are logged at ERROR.
func (s *LoggingScraper) Scrape(ctx context.Context, url string) (record *folio.ScrapeRecord, err error) {
	defer func(begin time.Time) {
		attrs := []any{"url", url, "duration", time.Since(begin)}
		if record != nil {
			attrs = append(attrs, "id", record.ID, "platform", record.Platform, "status", record.Status)
		}
		if err != nil {
			s.logger.Error("scrape", append(attrs, "code", folio.ErrorCode(err), "err", err)...)
			return
		}
		s.logger.Info("scrape", attrs...)
	}(time.Now())
	return s.next.Scrape(ctx, url)
}
