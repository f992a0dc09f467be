package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/duna-akin/sitechat"
)

// Ensure LoggingSearcher implements sitechat.Searcher.
var _ sitechat.Searcher = (*LoggingSearcher)(nil)

// LoggingSearcher wraps a Searcher with per-query logging.
type LoggingSearcher struct {
	next   sitechat.Searcher
	logger *slog.Logger
}

// NewLoggingSearcher creates a new LoggingSearcher.
func NewLoggingSearcher(next sitechat.Searcher, logger *slog.Logger) *LoggingSearcher {
	return &LoggingSearcher{next: next, logger: logger}
}

// Search delegates to the wrapped searcher and logs the operation.
func (s *LoggingSearcher) Search(ctx context.Context, query string, maxResults int) (results []sitechat.SearchResult, err error) {
	defer func(begin time.Time) {
		s.logger.Info("search",
			"query", query,
			"count", len(results),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.Search(ctx, query, maxResults)
}
