// Package retrieve orchestrates the retrieval pipeline: search, URL
// deduplication, polite concurrent fetching, extraction, and ranking.
package retrieve

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/duna-akin/sitechat"
	"golang.org/x/sync/errgroup"
)

var _ sitechat.Retriever = (*Retriever)(nil)

// Retriever turns planned queries into ranked, deduplicated documents.
// Per-page failures are recorded, never fatal: one unreachable page must
// not abort the whole request.
type Retriever struct {
	Searcher  sitechat.Searcher
	Fetcher   sitechat.Fetcher
	Extractor sitechat.Extractor
	Converter sitechat.Converter
	Limiter   sitechat.DomainLimiter

	// Fallback supplies candidates when the primary searcher returns
	// nothing (e.g., a sitemap-backed searcher). Optional.
	Fallback sitechat.Searcher

	MaxResultsPerQuery int
	MaxTotalDocuments  int
	MaxExcerptLength   int
	Concurrency        int
	RetryDelays        []time.Duration
}

// Retrieve runs the full pipeline for one request. Documents come back in
// rank order. Returns ENORESULTS with an empty slice when every candidate
// failed or no candidates were found; the report always describes what
// happened.
func (r *Retriever) Retrieve(ctx context.Context, question string, queries []sitechat.SearchQuery) ([]*sitechat.Document, *sitechat.RetrievalReport, error) {
	report := &sitechat.RetrievalReport{}

	candidates := r.collectCandidates(ctx, r.Searcher, queries, report)
	if len(candidates) == 0 && r.Fallback != nil {
		report.UsedFallback = true
		candidates = r.collectCandidates(ctx, r.Fallback, queries, report)
	}

	if len(candidates) == 0 {
		return nil, report, sitechat.Errorf(sitechat.ENORESULTS, "no results found for question")
	}

	docs := r.fetchAll(ctx, candidates, report)
	docs = r.dropDuplicateContent(docs, report)
	docs = rankDocuments(question, docs)

	if max := r.MaxTotalDocuments; max > 0 && len(docs) > max {
		docs = docs[:max]
	}

	if len(docs) == 0 {
		return nil, report, sitechat.Errorf(sitechat.ENORESULTS, "all candidate pages failed")
	}
	return docs, report, nil
}

// collectCandidates searches every query and dedupes results by
// normalized URL before any fetching happens, so the same page is never
// fetched twice in one request.
func (r *Retriever) collectCandidates(ctx context.Context, searcher sitechat.Searcher, queries []sitechat.SearchQuery, report *sitechat.RetrievalReport) []sitechat.SearchResult {
	maxResults := r.MaxResultsPerQuery
	if maxResults <= 0 {
		maxResults = 3
	}

	seen := make(map[string]int) // normalized URL -> candidate index
	var candidates []sitechat.SearchResult

	for _, q := range queries {
		report.Queries++

		results, err := searcher.Search(ctx, q.Text, maxResults)
		if err != nil {
			report.Failures = append(report.Failures, sitechat.RetrievalFailure{URL: q.Text, Err: err})
			continue
		}
		// The searcher is untrusted; clamp even if it over-delivers.
		if len(results) > maxResults {
			results = results[:maxResults]
		}
		report.Results += len(results)

		for _, res := range results {
			norm, err := sitechat.NormalizeURL(res.URL)
			if err != nil {
				report.Failures = append(report.Failures, sitechat.RetrievalFailure{URL: res.URL, Err: err})
				continue
			}
			if i, ok := seen[norm]; ok {
				report.Deduplicated++
				if res.Rank < candidates[i].Rank {
					candidates[i].Rank = res.Rank
				}
				continue
			}
			seen[norm] = len(candidates)
			candidates = append(candidates, sitechat.SearchResult{
				URL:     norm,
				Title:   res.Title,
				Snippet: res.Snippet,
				Rank:    res.Rank,
			})
		}
	}

	return candidates
}

// fetchAll runs the fetch+extract pipeline for all candidates on a bounded
// worker pool. A request-level context timeout cancels outstanding fetches;
// documents that completed in time are still returned.
func (r *Retriever) fetchAll(ctx context.Context, candidates []sitechat.SearchResult, report *sitechat.RetrievalReport) []*sitechat.Document {
	concurrency := r.Concurrency
	if concurrency <= 0 {
		concurrency = 4
	}

	results := make([]*sitechat.Document, len(candidates))
	var mu sync.Mutex // guards report.Failures

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)
	for i, cand := range candidates {
		g.Go(func() error {
			doc, err := r.processResult(gctx, cand)
			if err != nil {
				mu.Lock()
				report.Failures = append(report.Failures, sitechat.RetrievalFailure{URL: cand.URL, Err: err})
				mu.Unlock()
				return nil
			}
			results[i] = doc
			return nil
		})
	}
	_ = g.Wait()

	docs := make([]*sitechat.Document, 0, len(candidates))
	for _, doc := range results {
		if doc != nil {
			docs = append(docs, doc)
		}
	}
	return docs
}

// processResult turns one search result into a document: polite fetch with
// retry, boilerplate extraction, markdown conversion, whitespace collapse,
// and excerpt truncation.
func (r *Retriever) processResult(ctx context.Context, res sitechat.SearchResult) (*sitechat.Document, error) {
	fetch := r.Fetcher.Fetch
	if r.Limiter != nil {
		// Every attempt, including retries, waits out the politeness delay.
		fetch = func(ctx context.Context, url string) (string, error) {
			if err := r.Limiter.Wait(ctx, sitechat.Domain(url)); err != nil {
				return "", err
			}
			return r.Fetcher.Fetch(ctx, url)
		}
	}

	delays := r.RetryDelays
	if delays == nil {
		delays = DefaultRetryDelays()
	}

	html, err := FetchWithRetryDelays(ctx, res.URL, fetch, delays)
	if err != nil {
		return nil, err
	}

	extracted, err := r.Extractor.Extract(html)
	if err != nil {
		return nil, err
	}

	text := extracted.ContentHTML
	if r.Converter != nil {
		text, err = r.Converter.Convert(extracted.ContentHTML)
		if err != nil {
			return nil, err
		}
	}

	text = sitechat.CollapseWhitespace(text)
	if text == "" {
		return nil, sitechat.Errorf(sitechat.EEMPTY, "no text extracted from %s", res.URL)
	}

	truncated := false
	if r.MaxExcerptLength > 0 {
		if cut, ok := sitechat.Truncate(text, r.MaxExcerptLength); ok {
			text, truncated = cut, true
		}
	}

	title := extracted.Title
	if title == "" {
		title = res.Title
	}

	return &sitechat.Document{
		SourceURL:   res.URL,
		Title:       title,
		Text:        text,
		ContentHash: fmt.Sprintf("%016x", xxhash.Sum64String(text)),
		SearchRank:  res.Rank,
		Truncated:   truncated,
		FetchedAt:   time.Now().UTC(),
	}, nil
}

// dropDuplicateContent keeps the first document for each content hash, so
// mirror URLs serving identical pages don't crowd the context.
func (r *Retriever) dropDuplicateContent(docs []*sitechat.Document, report *sitechat.RetrievalReport) []*sitechat.Document {
	seen := make(map[string]bool, len(docs))
	out := docs[:0]
	for _, d := range docs {
		if seen[d.ContentHash] {
			report.Deduplicated++
			continue
		}
		seen[d.ContentHash] = true
		out = append(out, d)
	}
	return out
}
