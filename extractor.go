package folio

import (
	"context"
	"errors"
	"strings"
)

// ExtractionResult holds everything a strategy extracted from one page.
type ExtractionResult struct {
	Title        string
	Description  string
	Descriptions []string
	Metadata     map[string]string
	Blocks       []ContentBlock
	Sections     []Section
	Images       []Image
	Videos       []Video
	Links        LinkSet
	SocialLinks  []SocialLink
	Contacts     []ContactInfo

	// Article is the main content as Markdown. Empty when unavailable.
	Article string

	// Diagnostics records best-effort steps that failed without aborting
	// the extraction.
	Diagnostics []Diagnostic
}

// Diagnose records a failed best-effort step.
func (r *ExtractionResult) Diagnose(source string, err error) {
	if err == nil {
		return
	}
	r.Diagnostics = append(r.Diagnostics, Diagnostic{Source: source, Message: err.Error()})
}

// Diagnostic describes a sub-extractor failure that was tolerated.
type Diagnostic struct {
	Source  string `json:"source"`
	Message string `json:"message"`
}

// Strategy extracts structured fields from a fetched page.
// Implementations must be stateless; the page URL is the base for
// resolving relative references.
type Strategy interface {
	Extract(ctx context.Context, page *Page) (*ExtractionResult, error)
}

// StrategyRegistry maps URLs to extraction strategies.
type StrategyRegistry interface {
	// Register associates a domain with a platform and strategy.
	Register(platform Platform, domain string, strategy Strategy)

	// Select returns the platform and strategy for url.
	// The most specific matching domain wins; URLs matching no registered
	// domain get PlatformGeneric and the fallback strategy.
	Select(url string) (Platform, Strategy)

	// Platforms returns all registered platforms.
	Platforms() []Platform
}

// Article holds the main content of a page.
type Article struct {
	// Title is the article title extracted from metadata.
	Title string

	// ContentHTML is the main content as clean HTML with boilerplate removed.
	ContentHTML string
}

// ArticleExtractor extracts the main article from HTML pages.
type ArticleExtractor interface {
	// Extract returns the main content of html. Relative links in the
	// result are resolved against pageURL.
	Extract(html, pageURL string) (*Article, error)
}

var _ ArticleExtractor = ArticleExtractors(nil)

// ArticleExtractors tries each extractor in order and returns the first
// article with content. Errors from earlier extractors are only returned
// when no extractor produced an article at all.
type ArticleExtractors []ArticleExtractor

// Extract implements ArticleExtractor.
func (a ArticleExtractors) Extract(html, pageURL string) (*Article, error) {
	var empty *Article
	var errs []error
	for _, e := range a {
		article, err := e.Extract(html, pageURL)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		if article == nil {
			continue
		}
		if strings.TrimSpace(article.ContentHTML) != "" {
			return article, nil
		}
		if empty == nil {
			empty = article
		}
	}
	if empty != nil {
		return empty, nil
	}
	if len(errs) == 0 {
		return &Article{}, nil
	}
	return nil, errors.Join(errs...)
}
