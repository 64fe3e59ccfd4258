package prometheus_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/fwojciec/folio"
	"github.com/fwojciec/folio/mock"
	folioprom "github.com/fwojciec/folio/prometheus"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScraper_Scrape(t *testing.T) {
	t.Parallel()

	t.Run("counts completed scrapes by platform and status", func(t *testing.T) {
		t.Parallel()

		metrics := folioprom.NewMetrics(prometheus.NewRegistry())
		inner := &mock.Scraper{
			ScrapeFn: func(_ context.Context, url string) (*folio.ScrapeRecord, error) {
				return &folio.ScrapeRecord{URL: url, Platform: folio.PlatformCanva, Status: folio.StatusCompleted}, nil
			},
		}

		scraper := folioprom.NewScraper(inner, metrics)
		_, err := scraper.Scrape(context.Background(), "https://a.canva.site")
		require.NoError(t, err)
		_, err = scraper.Scrape(context.Background(), "https://a.canva.site")
		require.NoError(t, err)

		assert.InDelta(t, 2, testutil.ToFloat64(metrics.ScrapesTotal.WithLabelValues("canva", "completed")), 0)
		assert.Equal(t, 1, testutil.CollectAndCount(metrics.ScrapeDurationSeconds))
	})

	t.Run("counts failed and rejected scrapes", func(t *testing.T) {
		t.Parallel()

		metrics := folioprom.NewMetrics(prometheus.NewRegistry())
		inner := &mock.Scraper{
			ScrapeFn: func(_ context.Context, url string) (*folio.ScrapeRecord, error) {
				if url == "" {
					return nil, folio.Errorf(folio.EINVALID, "url required")
				}
				return &folio.ScrapeRecord{URL: url, Platform: folio.PlatformGeneric, Status: folio.StatusFailed}, errors.New("boom")
			},
		}

		scraper := folioprom.NewScraper(inner, metrics)
		_, _ = scraper.Scrape(context.Background(), "https://a.com")
		_, _ = scraper.Scrape(context.Background(), "")

		assert.InDelta(t, 1, testutil.ToFloat64(metrics.ScrapesTotal.WithLabelValues("generic", "failed")), 0)
		assert.InDelta(t, 1, testutil.ToFloat64(metrics.ScrapesTotal.WithLabelValues("unknown", "rejected")), 0)
	})
}

func TestStrategy_Extract(t *testing.T) {
	t.Parallel()

	metrics := folioprom.NewMetrics(prometheus.NewRegistry())
	inner := &mock.Strategy{
		ExtractFn: func(_ context.Context, _ *folio.Page) (*folio.ExtractionResult, error) {
			result := &folio.ExtractionResult{}
			result.Diagnose("video-sweep", errors.New("panic"))
			result.Diagnose("json-script", errors.New("bad json"))
			result.Diagnose("json-script", errors.New("bad json"))
			return result, nil
		},
	}

	_, err := folioprom.NewStrategy(inner, metrics).Extract(context.Background(), &folio.Page{})
	require.NoError(t, err)

	assert.InDelta(t, 2, testutil.ToFloat64(metrics.DiagnosticsTotal.WithLabelValues("json-script")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(metrics.DiagnosticsTotal.WithLabelValues("video-sweep")), 0)
}

func TestHandler(t *testing.T) {
	t.Parallel()

	reg := prometheus.NewRegistry()
	metrics := folioprom.NewMetrics(reg)
	metrics.ScrapesTotal.WithLabelValues("generic", "completed").Inc()

	rec := httptest.NewRecorder()
	folioprom.Handler(reg).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `folio_scrapes_total{platform="generic",status="completed"} 1`)
}
