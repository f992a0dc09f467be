package retrieve_test

import (
	"context"
	"testing"
	"time"

	"github.com/duna-akin/sitechat"
	"github.com/duna-akin/sitechat/retrieve"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fastDelays keeps retry tests quick.
func fastDelays() []time.Duration {
	return []time.Duration{time.Millisecond, time.Millisecond}
}

func TestFetchWithRetryDelays(t *testing.T) {
	t.Parallel()

	t.Run("returns on first success", func(t *testing.T) {
		t.Parallel()

		calls := 0
		fetch := func(ctx context.Context, url string) (string, error) {
			calls++
			return "<html>ok</html>", nil
		}

		html, err := retrieve.FetchWithRetryDelays(context.Background(), "https://x.edu", fetch, fastDelays())
		require.NoError(t, err)
		assert.Equal(t, "<html>ok</html>", html)
		assert.Equal(t, 1, calls)
	})

	t.Run("retries transient failures", func(t *testing.T) {
		t.Parallel()

		calls := 0
		fetch := func(ctx context.Context, url string) (string, error) {
			calls++
			if calls < 3 {
				return "", sitechat.Errorf(sitechat.EUNAVAILABLE, "server error")
			}
			return "ok", nil
		}

		html, err := retrieve.FetchWithRetryDelays(context.Background(), "https://x.edu", fetch, fastDelays())
		require.NoError(t, err)
		assert.Equal(t, "ok", html)
		assert.Equal(t, 3, calls)
	})

	t.Run("does not retry not-found", func(t *testing.T) {
		t.Parallel()

		calls := 0
		fetch := func(ctx context.Context, url string) (string, error) {
			calls++
			return "", sitechat.Errorf(sitechat.ENOTFOUND, "HTTP 404")
		}

		_, err := retrieve.FetchWithRetryDelays(context.Background(), "https://x.edu", fetch, fastDelays())
		require.Error(t, err)
		assert.Equal(t, sitechat.ENOTFOUND, sitechat.ErrorCode(err))
		assert.Equal(t, 1, calls)
	})

	t.Run("returns last error after exhausting retries", func(t *testing.T) {
		t.Parallel()

		calls := 0
		fetch := func(ctx context.Context, url string) (string, error) {
			calls++
			return "", sitechat.Errorf(sitechat.ETIMEOUT, "deadline exceeded")
		}

		_, err := retrieve.FetchWithRetryDelays(context.Background(), "https://x.edu", fetch, fastDelays())
		require.Error(t, err)
		assert.Equal(t, sitechat.ETIMEOUT, sitechat.ErrorCode(err))
		assert.Equal(t, 3, calls) // 1 initial + 2 retries
	})

	t.Run("stops when context is canceled", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		fetch := func(ctx context.Context, url string) (string, error) {
			cancel()
			return "", sitechat.Errorf(sitechat.EUNAVAILABLE, "network down")
		}

		_, err := retrieve.FetchWithRetryDelays(ctx, "https://x.edu", fetch,
			[]time.Duration{time.Minute})
		require.Error(t, err)
		assert.ErrorIs(t, err, context.Canceled)
	})
}
