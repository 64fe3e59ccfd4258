package mock

import "github.com/fwojciec/folio"

var _ folio.ArticleExtractor = (*ArticleExtractor)(nil)

// ArticleExtractor is a mock implementation of folio.ArticleExtractor.
type ArticleExtractor struct {
	ExtractFn func(html, pageURL string) (*folio.Article, error)
}

func (e *ArticleExtractor) Extract(html, pageURL string) (*folio.Article, error) {
	return e.ExtractFn(html, pageURL)
}

var _ folio.Converter = (*Converter)(nil)

// Converter is a mock implementation of folio.Converter.
type Converter struct {
	ConvertFn func(html string) (string, error)
}

func (c *Converter) Convert(html string) (string, error) {
	return c.ConvertFn(html)
}
