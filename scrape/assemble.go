package scrape

import (
	"fmt"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/folio"
)

// Assemble turns an extraction result into the change set persisted for a
// completed scrape.
func Assemble(result *folio.ExtractionResult) *folio.ChangeSet {
	if result == nil {
		result = &folio.ExtractionResult{}
	}

	metadata := result.Metadata
	if metadata == nil {
		metadata = map[string]string{}
	}

	content := &folio.ContentDetail{
		Title:        result.Title,
		Description:  result.Description,
		Descriptions: result.Descriptions,
		Metadata:     metadata,
		Blocks:       result.Blocks,
		Sections:     result.Sections,
		Article:      result.Article,
	}
	content.Hash = ContentHash(content)

	return &folio.ChangeSet{
		Content:      content,
		Images:       result.Images,
		Videos:       folio.DedupVideos(result.Videos),
		SocialLinks:  result.SocialLinks,
		ContactInfos: result.Contacts,
	}
}

// FailureChangeSet returns the change set persisted for a failed scrape:
// a content detail carrying the error and no children.
func FailureChangeSet(err error) *folio.ChangeSet {
	msg := err.Error()
	return &folio.ChangeSet{
		Content: &folio.ContentDetail{
			Metadata: map[string]string{"error": msg},
			Error:    msg,
		},
	}
}

// ContentHash fingerprints the title, description, blocks and sections of
// c using xxhash.
func ContentHash(c *folio.ContentDetail) string {
	h := xxhash.New()
	write := func(s string) {
		_, _ = h.WriteString(s)
		_, _ = h.WriteString("\x00")
	}

	write(c.Title)
	write(c.Description)
	for _, b := range c.Blocks {
		write(b.Type)
		write(b.Text)
	}
	for _, s := range c.Sections {
		write(s.Title)
		write(s.Content)
	}
	return fmt.Sprintf("%x", h.Sum64())
}
