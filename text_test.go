package sitechat_test

import (
	"strings"
	"testing"

	"github.com/duna-akin/sitechat"
	"github.com/stretchr/testify/assert"
)

func TestCollapseWhitespace(t *testing.T) {
	t.Parallel()

	t.Run("collapses runs of spaces and tabs", func(t *testing.T) {
		t.Parallel()

		got := sitechat.CollapseWhitespace("Early  Decision \t I")
		assert.Equal(t, "Early Decision I", got)
	})

	t.Run("trims lines and collapses blank runs", func(t *testing.T) {
		t.Parallel()

		got := sitechat.CollapseWhitespace("  first line  \n\n\n\n  second line ")
		assert.Equal(t, "first line\n\nsecond line", got)
	})

	t.Run("drops leading and trailing blank lines", func(t *testing.T) {
		t.Parallel()

		got := sitechat.CollapseWhitespace("\n\ncontent\n\n")
		assert.Equal(t, "content", got)
	})

	t.Run("is deterministic", func(t *testing.T) {
		t.Parallel()

		in := "a  b\n\n\nc\t d "
		assert.Equal(t, sitechat.CollapseWhitespace(in), sitechat.CollapseWhitespace(in))
	})
}

func TestTruncate(t *testing.T) {
	t.Parallel()

	t.Run("returns short text unchanged", func(t *testing.T) {
		t.Parallel()

		got, truncated := sitechat.Truncate("hello", 10)
		assert.Equal(t, "hello", got)
		assert.False(t, truncated)
	})

	t.Run("cuts to budget including marker", func(t *testing.T) {
		t.Parallel()

		long := strings.Repeat("a", 100)
		got, truncated := sitechat.Truncate(long, 10)

		assert.True(t, truncated)
		assert.Len(t, got, 10)
		assert.True(t, strings.HasSuffix(got, sitechat.TruncationMarker))
	})

	t.Run("returns nothing when budget cannot hold marker", func(t *testing.T) {
		t.Parallel()

		got, truncated := sitechat.Truncate("hello world", 2)
		assert.Empty(t, got)
		assert.False(t, truncated)
	})

	t.Run("counts characters not bytes", func(t *testing.T) {
		t.Parallel()

		got, truncated := sitechat.Truncate(strings.Repeat("é", 20), 10)
		assert.True(t, truncated)
		assert.Equal(t, strings.Repeat("é", 7)+sitechat.TruncationMarker, got)
	})
}
