package folio

// Converter converts HTML to Markdown.
type Converter interface {
	// Convert transforms article HTML (e.g., from an ArticleExtractor)
	// into Markdown.
	Convert(html string) (string, error)
}
