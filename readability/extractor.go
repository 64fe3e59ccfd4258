package readability

import (
	"net/url"
	"strings"

	"github.com/fwojciec/folio"
	"github.com/go-shiori/go-readability"
)

// Ensure Extractor implements folio.ArticleExtractor at compile time.
var _ folio.ArticleExtractor = (*Extractor)(nil)

// Extractor wraps go-readability to pull the main article out of a page.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract processes raw HTML and returns the main article. A pageURL that
// does not parse is ignored and relative links are left as they are.
func (e *Extractor) Extract(rawHTML, pageURL string) (*folio.Article, error) {
	if strings.TrimSpace(rawHTML) == "" {
		return nil, folio.Errorf(folio.EINVALID, "empty HTML input")
	}

	var base *url.URL
	if u, err := url.Parse(pageURL); err == nil && u.Host != "" {
		base = u
	}

	article, err := readability.FromReader(strings.NewReader(rawHTML), base)
	if err != nil {
		return nil, err
	}

	return &folio.Article{
		Title:       article.Title,
		ContentHTML: article.Content,
	}, nil
}
