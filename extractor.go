package sitechat

// ExtractResult holds the extracted content from an HTML page.
type ExtractResult struct {
	// Title is the page title extracted from metadata.
	Title string

	// ContentHTML is the main content as clean HTML.
	// Boilerplate (nav, footer, sidebar, ads) has been removed.
	ContentHTML string
}

// Extractor extracts main content from HTML pages, removing boilerplate.
// Extraction is pure: no I/O, and identical input yields identical output.
type Extractor interface {
	// Extract processes raw HTML and returns the main content.
	// Returns EEMPTY if the input yields no meaningful text and
	// EMALFORMED if the input cannot be parsed as HTML.
	Extract(html string) (*ExtractResult, error)
}

// Converter converts HTML to Markdown.
type Converter interface {
	// Convert transforms clean content HTML (e.g., from an Extractor)
	// into its Markdown representation.
	Convert(html string) (string, error)
}
