// Package api exposes folio over HTTP using gin.
package api

import (
	"log/slog"
	"net/http"

	"github.com/fwojciec/folio"
	"github.com/gin-gonic/gin"
)

// Config holds the collaborators the router serves.
type Config struct {
	Scraper folio.Scraper
	Records folio.RecordService

	// Metrics is mounted at /metrics when set.
	Metrics http.Handler

	Logger *slog.Logger
}

// NewRouter creates a gin engine with all routes and middleware.
//
// Routes:
//
//	POST /api/scrape         scrape a URL and return the stored record
//	GET  /api/scrape/:id     return one stored record
//	GET  /api/scraped-data   list stored records
//	GET  /health             liveness check
//	GET  /metrics            Prometheus metrics
func NewRouter(cfg Config) *gin.Engine {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(RequestLogger(logger))

	r.GET("/health", Health())
	if cfg.Metrics != nil {
		r.GET("/metrics", gin.WrapH(cfg.Metrics))
	}

	api := r.Group("/api")
	api.POST("/scrape", Scrape(cfg.Scraper))
	api.GET("/scrape/:id", GetRecord(cfg.Records))
	api.GET("/scraped-data", ListRecords(cfg.Records))

	return r
}
