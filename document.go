package sitechat

import "time"

// Document is the cleaned text of one fetched page. Documents live only
// for the duration of a single request; nothing fetched is persisted.
type Document struct {
	SourceURL   string
	Title       string
	Text        string
	ContentHash string

	// SearchRank is the best search-engine rank among the results that
	// resolved to this document's URL. Used as a ranking tie-breaker.
	SearchRank int

	// Truncated reports whether Text was cut to fit the excerpt budget.
	Truncated bool

	FetchedAt time.Time
}

// Validate returns an error if the document contains invalid fields.
func (d *Document) Validate() error {
	if d.SourceURL == "" {
		return Errorf(EINVALID, "document source URL required")
	}
	if d.Text == "" {
		return Errorf(EEMPTY, "document text required")
	}
	return nil
}
