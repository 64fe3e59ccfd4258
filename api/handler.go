package api

import (
	"net/http"
	"strconv"

	"github.com/fwojciec/folio"
	"github.com/gin-gonic/gin"
)

// Response is the JSON envelope of every /api response.
type Response struct {
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
}

// ScrapeRequest is the payload for POST /api/scrape.
type ScrapeRequest struct {
	URL string `json:"url" binding:"required"`
}

// Health returns a handler for GET /health.
func Health() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
}

// Scrape returns a handler for POST /api/scrape.
//
// Invalid input is answered with 422 before anything is stored. Any other
// failure is answered with 500; the failed record is still persisted.
func Scrape(scraper folio.Scraper) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req ScrapeRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusUnprocessableEntity, Response{Message: "The given data was invalid.", Error: err.Error()})
			return
		}
		if err := folio.ValidateURL(req.URL); err != nil {
			c.JSON(http.StatusUnprocessableEntity, Response{Message: "The given data was invalid.", Error: folio.ErrorMessage(err)})
			return
		}

		record, err := scraper.Scrape(c.Request.Context(), req.URL)
		if err != nil {
			status := http.StatusInternalServerError
			if folio.ErrorCode(err) == folio.EINVALID {
				status = http.StatusUnprocessableEntity
			}
			c.JSON(status, Response{Message: "Scraping failed", Error: folio.ErrorMessage(err)})
			return
		}

		c.JSON(http.StatusOK, Response{Message: "Scraping completed successfully", Data: record})
	}
}

// GetRecord returns a handler for GET /api/scrape/:id.
func GetRecord(records folio.RecordService) gin.HandlerFunc {
	return func(c *gin.Context) {
		record, err := records.FindRecordByID(c.Request.Context(), c.Param("id"))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, record)
	}
}

// ListRecords returns a handler for GET /api/scraped-data.
// Optional query parameters: platform, status, limit, offset.
func ListRecords(records folio.RecordService) gin.HandlerFunc {
	return func(c *gin.Context) {
		filter, err := parseFilter(c)
		if err != nil {
			respondError(c, err)
			return
		}

		list, err := records.FindRecords(c.Request.Context(), filter)
		if err != nil {
			respondError(c, err)
			return
		}
		if list == nil {
			list = []*folio.ScrapeRecord{}
		}

		c.JSON(http.StatusOK, Response{Message: "All scraped data retrieved successfully", Data: list})
	}
}

func parseFilter(c *gin.Context) (folio.RecordFilter, error) {
	var filter folio.RecordFilter

	if v := c.Query("platform"); v != "" {
		platform := folio.Platform(v)
		if !platform.Valid() {
			return filter, folio.Errorf(folio.EINVALID, "unknown platform %q", v)
		}
		filter.Platform = &platform
	}
	if v := c.Query("status"); v != "" {
		status := folio.Status(v)
		if !status.Valid() {
			return filter, folio.Errorf(folio.EINVALID, "unknown status %q", v)
		}
		filter.Status = &status
	}

	var err error
	if filter.Limit, err = queryInt(c, "limit"); err != nil {
		return filter, err
	}
	if filter.Offset, err = queryInt(c, "offset"); err != nil {
		return filter, err
	}
	return filter, nil
}

func queryInt(c *gin.Context, key string) (int, error) {
	v := c.Query(key)
	if v == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		return 0, folio.Errorf(folio.EINVALID, "%s must be a non-negative integer", key)
	}
	return n, nil
}

// respondError maps an application error code to an HTTP status and writes
// the error envelope.
func respondError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch folio.ErrorCode(err) {
	case folio.EINVALID:
		status = http.StatusUnprocessableEntity
	case folio.ENOTFOUND:
		status = http.StatusNotFound
	case folio.ECONFLICT:
		status = http.StatusConflict
	case folio.EFETCH:
		status = http.StatusBadGateway
	}
	c.JSON(status, Response{Message: http.StatusText(status), Error: folio.ErrorMessage(err)})
}
