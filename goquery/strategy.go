package goquery

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/folio"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

var _ folio.Strategy = (*Strategy)(nil)

// Diagnostic sources reported by the generic strategy.
const (
	SourceJSONScript = "json-script"
	SourceArticle    = "article"
)

// Strategy is the generic extraction strategy. It reads every field from a
// CSS-selector view of the page and never fails on sparse markup: missing
// elements yield empty collections.
type Strategy struct {
	// Article and Converter are optional. When both are set the page's
	// main content is stored as Markdown.
	Article   folio.ArticleExtractor
	Converter folio.Converter
}

// NewStrategy creates a generic Strategy.
func NewStrategy(article folio.ArticleExtractor, converter folio.Converter) *Strategy {
	return &Strategy{Article: article, Converter: converter}
}

// Extract parses page and runs every field extractor over the same document.
func (s *Strategy) Extract(ctx context.Context, page *folio.Page) (*folio.ExtractionResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if page == nil {
		return nil, folio.Errorf(folio.EINVALID, "page required")
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(page.Body))
	if err != nil {
		return nil, folio.Errorf(folio.EINVALID, "failed to parse HTML: %v", err)
	}

	base := page.URL
	result := &folio.ExtractionResult{
		Title:    strings.TrimSpace(doc.Find("title").First().Text()),
		Metadata: extractMetadata(doc),
	}

	hints := scanScripts(doc, result)

	result.Descriptions = descriptionCandidates(doc, result.Metadata)
	if len(result.Descriptions) > 0 {
		result.Description = result.Descriptions[0]
	}

	result.Blocks = append(extractBlocks(doc), hints.Content...)
	result.Images = extractImages(doc, base)
	result.Videos = extractVideos(doc, page)

	result.Links = folio.ClassifyLinks(base, extractAnchors(doc))

	text := bodyText(doc)
	result.SocialLinks = folio.MergeSocial(result.Links, hints, folio.ScanHandles(text))
	result.Contacts = folio.CollectContacts(text, result.Links.Contact, hints)

	s.extractArticle(page, result)

	return result, nil
}

// extractArticle fills result.Article. Failures are recorded as
// diagnostics and leave the article empty.
func (s *Strategy) extractArticle(page *folio.Page, result *folio.ExtractionResult) {
	if s.Article == nil || s.Converter == nil {
		return
	}
	article, err := s.Article.Extract(string(page.Body), page.URL)
	if err != nil {
		result.Diagnose(SourceArticle, fmt.Errorf("extract article: %w", err))
		return
	}
	if strings.TrimSpace(article.ContentHTML) == "" {
		return
	}
	md, err := s.Converter.Convert(article.ContentHTML)
	if err != nil {
		result.Diagnose(SourceArticle, fmt.Errorf("convert article: %w", err))
		return
	}
	result.Article = md
}

// bodyText returns the visible text of the body with whitespace collapsed.
// Text nodes are joined with spaces so adjacent blocks never fuse into one
// word. Script and style contents are excluded.
func bodyText(doc *goquery.Document) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		switch n.Type {
		case html.TextNode:
			b.WriteString(n.Data)
			b.WriteByte(' ')
			return
		case html.ElementNode:
			switch n.DataAtom {
			case atom.Script, atom.Style, atom.Noscript, atom.Template:
				return
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	for _, n := range doc.Find("body").Nodes {
		walk(n)
	}
	return normalizeSpace(b.String())
}

// normalizeSpace trims s and collapses internal whitespace runs to one space.
func normalizeSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
