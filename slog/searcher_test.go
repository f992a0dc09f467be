package slog_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/duna-akin/sitechat"
	"github.com/duna-akin/sitechat/mock"
	sitechatslog "github.com/duna-akin/sitechat/slog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggingSearcher_Search(t *testing.T) {
	t.Parallel()

	t.Run("logs query with result count", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.Searcher{
			SearchFn: func(ctx context.Context, query string, maxResults int) ([]sitechat.SearchResult, error) {
				return []sitechat.SearchResult{
					{URL: "https://example.edu/a"},
					{URL: "https://example.edu/b"},
				}, nil
			},
		}

		s := sitechatslog.NewLoggingSearcher(inner, logger)
		results, err := s.Search(context.Background(), "site:example.edu tuition", 5)

		require.NoError(t, err)
		assert.Len(t, results, 2)
		output := buf.String()
		assert.Contains(t, output, "search")
		assert.Contains(t, output, "query=\"site:example.edu tuition\"")
		assert.Contains(t, output, "count=2")
		assert.Contains(t, output, "duration=")
	})

	t.Run("logs error on failure", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.Searcher{
			SearchFn: func(ctx context.Context, query string, maxResults int) ([]sitechat.SearchResult, error) {
				return nil, errors.New("engine unavailable")
			},
		}

		s := sitechatslog.NewLoggingSearcher(inner, logger)
		_, err := s.Search(context.Background(), "anything", 5)

		require.Error(t, err)
		assert.Contains(t, buf.String(), "err=\"engine unavailable\"")
	})
}
