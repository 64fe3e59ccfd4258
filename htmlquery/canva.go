// Package htmlquery implements platform strategies over an XPath view of
// the document.
package htmlquery

import (
	"bytes"
	"context"
	"sort"
	"strconv"
	"strings"

	"github.com/antchfx/htmlquery"
	"github.com/antchfx/xpath"
	"github.com/fwojciec/folio"
	"golang.org/x/net/html"
)

var _ folio.Strategy = (*CanvaStrategy)(nil)

var (
	titleExpr        = xpath.MustCompile("//h1")
	sectionExpr      = xpath.MustCompile("//section")
	sectionTitleExpr = xpath.MustCompile(".//h2 | .//h3")
	textExpr         = xpath.MustCompile("//p | //h2 | //h3 | //h4 | //h5 | //h6")
	imageExpr        = xpath.MustCompile("//img[@src]")
	videoExpr        = xpath.MustCompile(`//video | //iframe[contains(@src, "youtube") or contains(@src, "vimeo")]`)
)

// CanvaStrategy extracts sites published with Canva. Canva pages are
// assembled from sections, so content is kept as heading and body pairs.
// Videos come from markup only; the raw-HTML sweep is not run.
type CanvaStrategy struct{}

// NewCanvaStrategy creates a CanvaStrategy.
func NewCanvaStrategy() *CanvaStrategy {
	return &CanvaStrategy{}
}

// Extract parses page and returns the Canva field set.
func (s *CanvaStrategy) Extract(ctx context.Context, page *folio.Page) (*folio.ExtractionResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if page == nil {
		return nil, folio.Errorf(folio.EINVALID, "page required")
	}

	doc, err := htmlquery.Parse(bytes.NewReader(page.Body))
	if err != nil {
		return nil, folio.Errorf(folio.EINVALID, "failed to parse HTML: %v", err)
	}
	order := documentOrder(doc)

	result := &folio.ExtractionResult{
		Metadata: responseMetadata(page),
	}
	if h1 := htmlquery.QuerySelector(doc, titleExpr); h1 != nil {
		result.Title = innerText(h1)
	}

	for _, n := range htmlquery.QuerySelectorAll(doc, sectionExpr) {
		section := folio.Section{Content: innerText(n)}
		if heading := first(htmlquery.QuerySelectorAll(n, sectionTitleExpr), order); heading != nil {
			section.Title = innerText(heading)
		}
		result.Sections = append(result.Sections, section)
	}

	for _, n := range sorted(htmlquery.QuerySelectorAll(doc, textExpr), order) {
		text := innerText(n)
		if text == "" {
			continue
		}
		result.Blocks = append(result.Blocks, folio.ContentBlock{Type: n.Data, Text: text})
	}

	for _, n := range htmlquery.QuerySelectorAll(doc, imageExpr) {
		src := strings.TrimSpace(htmlquery.SelectAttr(n, "src"))
		if src == "" {
			continue
		}
		result.Images = append(result.Images, folio.Image{
			Src:   folio.ResolveURL(page.URL, src),
			Alt:   strings.TrimSpace(htmlquery.SelectAttr(n, "alt")),
			Title: strings.TrimSpace(htmlquery.SelectAttr(n, "title")),
		})
	}

	var videos []folio.Video
	for _, n := range sorted(htmlquery.QuerySelectorAll(doc, videoExpr), order) {
		if v, ok := videoFrom(n, page.URL); ok {
			videos = append(videos, v)
		}
	}
	result.Videos = folio.DedupVideos(videos)

	return result, nil
}

// videoFrom converts a video or iframe node.
func videoFrom(n *html.Node, base string) (folio.Video, bool) {
	src := strings.TrimSpace(htmlquery.SelectAttr(n, "src"))
	if src == "" {
		return folio.Video{}, false
	}
	v := folio.Video{Src: folio.ResolveURL(base, src)}
	switch n.Data {
	case "video":
		v.Type = folio.VideoTypeVideo
		if poster := strings.TrimSpace(htmlquery.SelectAttr(n, "poster")); poster != "" {
			v.Poster = folio.ResolveURL(base, poster)
		}
	default:
		v.Type = folio.VideoTypeIframe
		v.AllowFullscreen = htmlquery.ExistsAttr(n, "allowfullscreen")
		v.Sandbox = strings.TrimSpace(htmlquery.SelectAttr(n, "sandbox"))
	}
	return v, true
}

// responseMetadata records the HTTP status and response headers.
func responseMetadata(page *folio.Page) map[string]string {
	metadata := map[string]string{
		"status_code": strconv.Itoa(page.StatusCode),
	}
	for name, values := range page.Headers {
		metadata[strings.ToLower(name)] = strings.Join(values, ", ")
	}
	return metadata
}

func innerText(n *html.Node) string {
	return strings.Join(strings.Fields(htmlquery.InnerText(n)), " ")
}

// documentOrder numbers every node of the tree in document order. XPath
// unions are not guaranteed to come back in that order.
func documentOrder(root *html.Node) map[*html.Node]int {
	order := make(map[*html.Node]int)
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		order[n] = len(order)
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(root)
	return order
}

func sorted(nodes []*html.Node, order map[*html.Node]int) []*html.Node {
	sort.SliceStable(nodes, func(i, j int) bool {
		return order[nodes[i]] < order[nodes[j]]
	})
	return nodes
}

func first(nodes []*html.Node, order map[*html.Node]int) *html.Node {
	if len(nodes) == 0 {
		return nil
	}
	return sorted(nodes, order)[0]
}
