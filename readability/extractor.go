// Package readability implements sitechat.Extractor using the
// go-readability library. It is an alternative to the trafilatura
// extractor for pages where readability's heuristics work better.
package readability

import (
	"strings"

	"github.com/duna-akin/sitechat"
	"github.com/go-shiori/go-readability"
)

// Ensure Extractor implements sitechat.Extractor at compile time.
var _ sitechat.Extractor = (*Extractor)(nil)

// Extractor wraps go-readability to extract main content from HTML.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract processes raw HTML and returns the main content.
func (e *Extractor) Extract(rawHTML string) (*sitechat.ExtractResult, error) {
	if strings.TrimSpace(rawHTML) == "" {
		return nil, sitechat.Errorf(sitechat.EEMPTY, "empty HTML input")
	}

	article, err := readability.FromReader(strings.NewReader(rawHTML), nil)
	if err != nil {
		return nil, sitechat.Errorf(sitechat.EMALFORMED, "content extraction failed: %v", err)
	}

	return &sitechat.ExtractResult{
		Title:       article.Title,
		ContentHTML: article.Content,
	}, nil
}
