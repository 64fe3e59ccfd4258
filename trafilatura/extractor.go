// Package trafilatura extracts the main article of a page with
// go-trafilatura.
package trafilatura

import (
	"bytes"
	"net/url"
	"strings"

	"github.com/fwojciec/folio"
	"github.com/markusmobius/go-trafilatura"
	"golang.org/x/net/html"
)

var _ folio.ArticleExtractor = (*Extractor)(nil)

// Extractor wraps go-trafilatura. It is tuned for precision, so short
// portfolio pages often yield no content; pair it with a fallback.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract returns the main content of rawHTML. An empty ContentHTML means
// trafilatura found nothing it considers an article.
func (e *Extractor) Extract(rawHTML, pageURL string) (*folio.Article, error) {
	if strings.TrimSpace(rawHTML) == "" {
		return nil, folio.Errorf(folio.EINVALID, "empty HTML input")
	}

	opts := trafilatura.Options{EnableFallback: true}
	if u, err := url.Parse(pageURL); err == nil && u.Host != "" {
		opts.OriginalURL = u
	}

	result, err := trafilatura.Extract(strings.NewReader(rawHTML), opts)
	if err != nil {
		return nil, err
	}

	article := &folio.Article{Title: result.Metadata.Title}
	if result.ContentNode != nil {
		var buf bytes.Buffer
		if err := html.Render(&buf, result.ContentNode); err != nil {
			return nil, err
		}
		article.ContentHTML = buf.String()
	}
	return article, nil
}
