package goquery

import (
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"github.com/andybalholm/cascadia"
	"github.com/fwojciec/folio"
)

// MinDescriptionLen is the rune count a text block must exceed to be
// considered a description.
const MinDescriptionLen = 40

// descriptionKeywords mark headings that introduce a self-description.
var descriptionKeywords = []string{
	"about",
	"bio",
	"summary",
	"introduction",
	"profile",
	"description",
	"what i do",
}

// descriptionAttrKeywords mark elements whose class or id suggest they hold
// a description.
var descriptionAttrKeywords = []string{"description", "about", "summary"}

var (
	blockMatcher     = cascadia.MustCompile("h1, h2, h3, h4, h5, h6, p, article, section")
	headingMatcher   = cascadia.MustCompile("h1, h2, h3, h4, h5, h6")
	attrBlockMatcher = cascadia.MustCompile("body [class], body [id]")
	textBlockMatcher = cascadia.MustCompile("p, span")
	metaMatcher      = cascadia.MustCompile("meta")
)

// extractMetadata maps every meta name or property to its content. A
// later tag with the same key overwrites an earlier one.
func extractMetadata(doc *goquery.Document) map[string]string {
	metadata := make(map[string]string)
	doc.FindMatcher(metaMatcher).Each(func(_ int, sel *goquery.Selection) {
		key := sel.AttrOr("name", "")
		if key == "" {
			key = sel.AttrOr("property", "")
		}
		if key == "" {
			return
		}
		metadata[key] = sel.AttrOr("content", "")
	})
	return metadata
}

// descriptionCandidates returns every description candidate, best first:
// the description meta, og:description, blocks after about-style headings,
// elements whose class or id mention a description, then long paragraphs
// and spans in document order. Duplicates and empty values are dropped.
func descriptionCandidates(doc *goquery.Document, metadata map[string]string) []string {
	var candidates []string
	seen := make(map[string]bool)
	add := func(s string) {
		s = normalizeSpace(s)
		if s == "" || seen[s] {
			return
		}
		seen[s] = true
		candidates = append(candidates, s)
	}
	addLong := func(s string) {
		if s = normalizeSpace(s); utf8.RuneCountInString(s) > MinDescriptionLen {
			add(s)
		}
	}

	add(metadata["description"])
	add(metadata["og:description"])

	doc.FindMatcher(headingMatcher).Each(func(_ int, sel *goquery.Selection) {
		if !containsAny(strings.ToLower(sel.Text()), descriptionKeywords) {
			return
		}
		next := sel.Next()
		if next.Length() == 0 {
			next = sel.Parent().Next()
		}
		if next.Length() > 0 {
			addLong(next.Text())
		}
	})

	doc.FindMatcher(attrBlockMatcher).Each(func(_ int, sel *goquery.Selection) {
		haystack := strings.ToLower(sel.AttrOr("class", "") + " " + sel.AttrOr("id", ""))
		if containsAny(haystack, descriptionAttrKeywords) {
			addLong(sel.Text())
		}
	})

	doc.FindMatcher(textBlockMatcher).Each(func(_ int, sel *goquery.Selection) {
		addLong(sel.Text())
	})

	return candidates
}

// extractBlocks returns headings, paragraphs, articles and sections as a
// flat list in document order.
func extractBlocks(doc *goquery.Document) []folio.ContentBlock {
	var blocks []folio.ContentBlock
	doc.FindMatcher(blockMatcher).Each(func(_ int, sel *goquery.Selection) {
		inner, _ := sel.Html()
		blocks = append(blocks, folio.ContentBlock{
			Type: goquery.NodeName(sel),
			Text: strings.TrimSpace(sel.Text()),
			HTML: strings.TrimSpace(inner),
		})
	})
	return blocks
}

func containsAny(s string, needles []string) bool {
	for _, n := range needles {
		if strings.Contains(s, n) {
			return true
		}
	}
	return false
}
