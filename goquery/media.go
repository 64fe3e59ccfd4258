package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/andybalholm/cascadia"
	"github.com/fwojciec/folio"
)

var (
	imageMatcher  = cascadia.MustCompile("img")
	videoMatcher  = cascadia.MustCompile("video")
	iframeMatcher = cascadia.MustCompile("iframe[src]")
)

// extractImages returns one image per img element with a source. Lazy
// loaded images fall back to data-src; an img with neither attribute is
// skipped. Only exact duplicates are dropped.
func extractImages(doc *goquery.Document, base string) []folio.Image {
	var images []folio.Image
	seen := make(map[folio.Image]bool)
	doc.FindMatcher(imageMatcher).Each(func(_ int, sel *goquery.Selection) {
		src := strings.TrimSpace(sel.AttrOr("src", ""))
		if src == "" {
			src = strings.TrimSpace(sel.AttrOr("data-src", ""))
		}
		if src == "" {
			return
		}
		img := folio.Image{
			Src:   folio.ResolveURL(base, src),
			Alt:   strings.TrimSpace(sel.AttrOr("alt", "")),
			Title: strings.TrimSpace(sel.AttrOr("title", "")),
		}
		if seen[img] {
			return
		}
		seen[img] = true
		images = append(images, img)
	})
	return images
}

// extractVideos runs the three video passes over the page and returns the
// union, unique by type and source. The raw sweep reads the body already
// fetched and cannot fail.
func extractVideos(doc *goquery.Document, page *folio.Page) []folio.Video {
	videos := nativeVideos(doc, page.URL)
	videos = append(videos, iframeVideos(doc, page.URL)...)
	videos = append(videos, folio.ScanVideoURLs(page.Body)...)
	return folio.DedupVideos(videos)
}

// nativeVideos reads video elements. A video without a src uses its first
// source child.
func nativeVideos(doc *goquery.Document, base string) []folio.Video {
	var videos []folio.Video
	doc.FindMatcher(videoMatcher).Each(func(_ int, sel *goquery.Selection) {
		src := strings.TrimSpace(sel.AttrOr("src", ""))
		if src == "" {
			src = strings.TrimSpace(sel.Find("source[src]").First().AttrOr("src", ""))
		}
		if src == "" {
			return
		}
		v := folio.Video{
			Type: folio.VideoTypeVideo,
			Src:  folio.ResolveURL(base, src),
		}
		if poster := strings.TrimSpace(sel.AttrOr("poster", "")); poster != "" {
			v.Poster = folio.ResolveURL(base, poster)
		}
		videos = append(videos, v)
	})
	return videos
}

// iframeVideos reads iframes embedding a known video host.
func iframeVideos(doc *goquery.Document, base string) []folio.Video {
	var videos []folio.Video
	doc.FindMatcher(iframeMatcher).Each(func(_ int, sel *goquery.Selection) {
		src := strings.TrimSpace(sel.AttrOr("src", ""))
		if src == "" || !folio.IsVideoHost(src) {
			return
		}
		_, fullscreen := sel.Attr("allowfullscreen")
		videos = append(videos, folio.Video{
			Type:            folio.VideoTypeIframe,
			Src:             folio.ResolveURL(base, src),
			AllowFullscreen: fullscreen,
			Sandbox:         strings.TrimSpace(sel.AttrOr("sandbox", "")),
		})
	})
	return videos
}
