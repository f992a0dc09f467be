package sitechat

import "context"

// Retriever turns planned queries into a ranked, deduplicated set of
// documents. Per-document failures are recorded in the report, never
// propagated as a whole-request failure.
type Retriever interface {
	// Retrieve runs search, fetch, and extraction for the queries and
	// returns documents in rank order. Returns ENORESULTS (with an empty
	// document slice and a populated report) when nothing survives.
	Retrieve(ctx context.Context, question string, queries []SearchQuery) ([]*Document, *RetrievalReport, error)
}

// RetrievalFailure records one page that could not be turned into a
// document.
type RetrievalFailure struct {
	URL string
	Err error
}

// RetrievalReport summarizes what happened during one retrieval.
type RetrievalReport struct {
	// Queries is the number of search queries executed.
	Queries int

	// Results is the number of search results seen before deduplication.
	Results int

	// Deduplicated is the number of results dropped as duplicate URLs or
	// duplicate content.
	Deduplicated int

	// UsedFallback reports whether candidates came from the sitemap
	// fallback rather than the primary searcher.
	UsedFallback bool

	// Failures lists pages that failed to fetch or extract.
	Failures []RetrievalFailure
}
