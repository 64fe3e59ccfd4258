package mock

import (
	"context"

	"github.com/fwojciec/folio"
)

var _ folio.RecordService = (*RecordService)(nil)

// RecordService is a mock implementation of folio.RecordService.
type RecordService struct {
	FindOrCreateRecordFn func(ctx context.Context, url string, platform folio.Platform) (*folio.ScrapeRecord, error)
	ReplaceChildrenFn    func(ctx context.Context, id string, cs *folio.ChangeSet) error
	SetStatusFn          func(ctx context.Context, id string, status folio.Status) error
	FindRecordByIDFn     func(ctx context.Context, id string) (*folio.ScrapeRecord, error)
	FindRecordByURLFn    func(ctx context.Context, url string) (*folio.ScrapeRecord, error)
	FindRecordsFn        func(ctx context.Context, filter folio.RecordFilter) ([]*folio.ScrapeRecord, error)
	DeleteRecordFn       func(ctx context.Context, id string) error
}

func (s *RecordService) FindOrCreateRecord(ctx context.Context, url string, platform folio.Platform) (*folio.ScrapeRecord, error) {
	return s.FindOrCreateRecordFn(ctx, url, platform)
}

func (s *RecordService) ReplaceChildren(ctx context.Context, id string, cs *folio.ChangeSet) error {
	return s.ReplaceChildrenFn(ctx, id, cs)
}

func (s *RecordService) SetStatus(ctx context.Context, id string, status folio.Status) error {
	return s.SetStatusFn(ctx, id, status)
}

func (s *RecordService) FindRecordByID(ctx context.Context, id string) (*folio.ScrapeRecord, error) {
	return s.FindRecordByIDFn(ctx, id)
}

func (s *RecordService) FindRecordByURL(ctx context.Context, url string) (*folio.ScrapeRecord, error) {
	return s.FindRecordByURLFn(ctx, url)
}

func (s *RecordService) FindRecords(ctx context.Context, filter folio.RecordFilter) ([]*folio.ScrapeRecord, error) {
	return s.FindRecordsFn(ctx, filter)
}

func (s *RecordService) DeleteRecord(ctx context.Context, id string) error {
	return s.DeleteRecordFn(ctx, id)
}

var _ folio.Scraper = (*Scraper)(nil)

// Scraper is a mock implementation of folio.Scraper.
type Scraper struct {
	ScrapeFn func(ctx context.Context, url string) (*folio.ScrapeRecord, error)
}

func (s *Scraper) Scrape(ctx context.Context, url string) (*folio.ScrapeRecord, error) {
	return s.ScrapeFn(ctx, url)
}
