package goquery

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/andybalholm/cascadia"
	"github.com/fwojciec/folio"
)

var (
	anchorMatcher = cascadia.MustCompile("a[href]")
	jsonMatcher   = cascadia.MustCompile(`script[type="application/json"], script[type="application/ld+json"]`)
)

// extractAnchors returns every anchor with a non-empty href, unresolved.
func extractAnchors(doc *goquery.Document) []folio.Anchor {
	var anchors []folio.Anchor
	doc.FindMatcher(anchorMatcher).Each(func(_ int, sel *goquery.Selection) {
		href := strings.TrimSpace(sel.AttrOr("href", ""))
		if href == "" {
			return
		}
		anchors = append(anchors, folio.Anchor{
			Href:  href,
			Text:  normalizeSpace(sel.Text()),
			Title: strings.TrimSpace(sel.AttrOr("title", "")),
		})
	})
	return anchors
}

// scanScripts collects hints from every embedded JSON script block. A
// block that fails to parse is reported as a diagnostic and skipped.
func scanScripts(doc *goquery.Document, result *folio.ExtractionResult) *folio.JSONHints {
	hints := &folio.JSONHints{Social: make(map[folio.SocialPlatform][]string)}
	doc.FindMatcher(jsonMatcher).Each(func(i int, sel *goquery.Selection) {
		payload := strings.TrimSpace(sel.Text())
		if payload == "" {
			return
		}
		h, err := folio.ScanJSONHints([]byte(payload))
		if err != nil {
			result.Diagnose(SourceJSONScript, fmt.Errorf("script %d: %w", i, err))
			return
		}
		hints.Merge(h)
	})
	return hints
}
