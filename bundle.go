package sitechat

import (
	"strings"
	"unicode/utf8"
)

// Excerpt is one attributed fragment of the assembled context.
type Excerpt struct {
	SourceURL string
	Title     string
	Text      string
	Truncated bool
}

// ContextBundle is the ordered, size-bounded set of excerpts handed to the
// generation collaborator. Built fresh per request and consumed once.
type ContextBundle struct {
	Excerpts []Excerpt
}

// Empty reports whether the bundle contains no excerpts.
func (b *ContextBundle) Empty() bool {
	return b == nil || len(b.Excerpts) == 0
}

// Len returns the character length of the rendered bundle.
func (b *ContextBundle) Len() int {
	if b == nil {
		return 0
	}
	return utf8.RuneCountInString(b.Render())
}

// Render formats the bundle for inclusion in a model prompt. Every
// excerpt is attributed to its source URL.
func (b *ContextBundle) Render() string {
	if b.Empty() {
		return ""
	}

	blocks := make([]string, 0, len(b.Excerpts))
	for _, e := range b.Excerpts {
		blocks = append(blocks, excerptHeader(e.SourceURL)+e.Text)
	}
	return strings.Join(blocks, "\n\n")
}

// Sources returns the source URLs of the excerpts, in bundle order.
func (b *ContextBundle) Sources() []string {
	if b.Empty() {
		return nil
	}

	urls := make([]string, 0, len(b.Excerpts))
	for _, e := range b.Excerpts {
		urls = append(urls, e.SourceURL)
	}
	return urls
}

// AssembleContext greedily packs documents into a ContextBundle in rank
// order, stopping before the rendered length would exceed maxTotalLength.
// If the first document alone exceeds the budget it is truncated rather
// than omitted, so a lone oversized page still produces usable context.
func AssembleContext(docs []*Document, maxTotalLength int) *ContextBundle {
	bundle := &ContextBundle{}
	if maxTotalLength <= 0 {
		return bundle
	}

	total := 0
	for _, doc := range docs {
		header := utf8.RuneCountInString(excerptHeader(doc.SourceURL))
		sep := 0
		if len(bundle.Excerpts) > 0 {
			sep = 2 // "\n\n" between excerpts
		}

		if total+sep+header+utf8.RuneCountInString(doc.Text) <= maxTotalLength {
			bundle.Excerpts = append(bundle.Excerpts, Excerpt{
				SourceURL: doc.SourceURL,
				Title:     doc.Title,
				Text:      doc.Text,
				Truncated: doc.Truncated,
			})
			total += sep + header + utf8.RuneCountInString(doc.Text)
			continue
		}

		if len(bundle.Excerpts) == 0 {
			if text, ok := Truncate(doc.Text, maxTotalLength-header); ok {
				bundle.Excerpts = append(bundle.Excerpts, Excerpt{
					SourceURL: doc.SourceURL,
					Title:     doc.Title,
					Text:      text,
					Truncated: true,
				})
			}
		}
		break
	}

	return bundle
}

func excerptHeader(sourceURL string) string {
	return "From " + sourceURL + ":\n"
}
