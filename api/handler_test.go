package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/fwojciec/folio"
	"github.com/fwojciec/folio/api"
	"github.com/fwojciec/folio/mock"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type envelope struct {
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
}

func newRouter(scraper folio.Scraper, records folio.RecordService) (*gin.Engine, *bytes.Buffer) {
	var buf bytes.Buffer
	return api.NewRouter(api.Config{
		Scraper: scraper,
		Records: records,
		Metrics: http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte("folio_scrapes_total 0"))
		}),
		Logger: slog.New(slog.NewTextHandler(&buf, nil)),
	}), &buf
}

func do(t *testing.T, h http.Handler, method, path, body string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	var env envelope
	if strings.HasPrefix(rec.Header().Get("Content-Type"), "application/json") {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	}
	return rec, env
}

func TestScrape(t *testing.T) {
	t.Parallel()

	t.Run("returns the scraped record", func(t *testing.T) {
		t.Parallel()

		var gotURL string
		scraper := &mock.Scraper{
			ScrapeFn: func(_ context.Context, url string) (*folio.ScrapeRecord, error) {
				gotURL = url
				return &folio.ScrapeRecord{ID: "rec-1", URL: url, Status: folio.StatusCompleted}, nil
			},
		}
		router, logs := newRouter(scraper, &mock.RecordService{})

		rec, env := do(t, router, http.MethodPost, "/api/scrape", `{"url":"https://a.com/me"}`)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "https://a.com/me", gotURL)
		assert.Equal(t, "Scraping completed successfully", env.Message)

		var record folio.ScrapeRecord
		require.NoError(t, json.Unmarshal(env.Data, &record))
		assert.Equal(t, "rec-1", record.ID)
		assert.Contains(t, logs.String(), "path=/api/scrape")
	})

	t.Run("missing url is unprocessable", func(t *testing.T) {
		t.Parallel()

		router, _ := newRouter(&mock.Scraper{}, &mock.RecordService{})

		rec, env := do(t, router, http.MethodPost, "/api/scrape", `{}`)

		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
		assert.NotEmpty(t, env.Error)
	})

	t.Run("non-http url is unprocessable", func(t *testing.T) {
		t.Parallel()

		router, _ := newRouter(&mock.Scraper{}, &mock.RecordService{})

		rec, env := do(t, router, http.MethodPost, "/api/scrape", `{"url":"javascript:alert(1)"}`)

		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
		assert.Contains(t, env.Error, "http or https")
	})

	t.Run("scrape failure is a server error", func(t *testing.T) {
		t.Parallel()

		scraper := &mock.Scraper{
			ScrapeFn: func(_ context.Context, url string) (*folio.ScrapeRecord, error) {
				return &folio.ScrapeRecord{URL: url, Status: folio.StatusFailed}, &folio.FetchError{URL: url, StatusCode: 503}
			},
		}
		router, logs := newRouter(scraper, &mock.RecordService{})

		rec, env := do(t, router, http.MethodPost, "/api/scrape", `{"url":"https://a.com"}`)

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.Equal(t, "Scraping failed", env.Message)
		assert.Contains(t, env.Error, "HTTP 503")
		assert.Contains(t, logs.String(), "level=ERROR")
	})
}

func TestGetRecord(t *testing.T) {
	t.Parallel()

	t.Run("returns the record", func(t *testing.T) {
		t.Parallel()

		records := &mock.RecordService{
			FindRecordByIDFn: func(_ context.Context, id string) (*folio.ScrapeRecord, error) {
				return &folio.ScrapeRecord{ID: id, URL: "https://a.com"}, nil
			},
		}
		router, _ := newRouter(&mock.Scraper{}, records)

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/scrape/rec-1", nil))

		assert.Equal(t, http.StatusOK, rec.Code)
		var record folio.ScrapeRecord
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &record))
		assert.Equal(t, "rec-1", record.ID)
	})

	t.Run("unknown id is not found", func(t *testing.T) {
		t.Parallel()

		records := &mock.RecordService{
			FindRecordByIDFn: func(_ context.Context, id string) (*folio.ScrapeRecord, error) {
				return nil, folio.Errorf(folio.ENOTFOUND, "record not found")
			},
		}
		router, _ := newRouter(&mock.Scraper{}, records)

		rec, env := do(t, router, http.MethodGet, "/api/scrape/missing", "")

		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Equal(t, "record not found", env.Error)
	})
}

func TestListRecords(t *testing.T) {
	t.Parallel()

	t.Run("passes filters through", func(t *testing.T) {
		t.Parallel()

		var got folio.RecordFilter
		records := &mock.RecordService{
			FindRecordsFn: func(_ context.Context, filter folio.RecordFilter) ([]*folio.ScrapeRecord, error) {
				got = filter
				return []*folio.ScrapeRecord{{ID: "rec-1"}}, nil
			},
		}
		router, _ := newRouter(&mock.Scraper{}, records)

		rec, env := do(t, router, http.MethodGet, "/api/scraped-data?platform=canva&status=completed&limit=5&offset=10", "")

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "All scraped data retrieved successfully", env.Message)
		require.NotNil(t, got.Platform)
		assert.Equal(t, folio.PlatformCanva, *got.Platform)
		require.NotNil(t, got.Status)
		assert.Equal(t, folio.StatusCompleted, *got.Status)
		assert.Equal(t, 5, got.Limit)
		assert.Equal(t, 10, got.Offset)

		var list []folio.ScrapeRecord
		require.NoError(t, json.Unmarshal(env.Data, &list))
		assert.Len(t, list, 1)
	})

	t.Run("empty store returns empty list", func(t *testing.T) {
		t.Parallel()

		records := &mock.RecordService{
			FindRecordsFn: func(_ context.Context, _ folio.RecordFilter) ([]*folio.ScrapeRecord, error) {
				return nil, nil
			},
		}
		router, _ := newRouter(&mock.Scraper{}, records)

		rec, env := do(t, router, http.MethodGet, "/api/scraped-data", "")

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `[]`, string(env.Data))
	})

	t.Run("rejects unknown platform", func(t *testing.T) {
		t.Parallel()

		router, _ := newRouter(&mock.Scraper{}, &mock.RecordService{})

		rec, _ := do(t, router, http.MethodGet, "/api/scraped-data?platform=myspace", "")

		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	})

	t.Run("rejects negative limit", func(t *testing.T) {
		t.Parallel()

		router, _ := newRouter(&mock.Scraper{}, &mock.RecordService{})

		rec, _ := do(t, router, http.MethodGet, "/api/scraped-data?limit=-1", "")

		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	})
}

func TestHealthAndMetrics(t *testing.T) {
	t.Parallel()

	router, _ := newRouter(&mock.Scraper{}, &mock.RecordService{})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "folio_scrapes_total")
}
