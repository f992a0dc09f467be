package fs_test

import (
	"os"
	"testing"
	"time"

	"github.com/duna-akin/sitechat"
	"github.com/duna-akin/sitechat/fs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatTranscript(t *testing.T) {
	t.Parallel()

	exchanges := []sitechat.Exchange{
		{
			Question: "When are applications due?",
			Answer:   "Applications close January 15.",
			AskedAt:  time.Date(2026, 8, 20, 10, 0, 0, 0, time.UTC),
		},
		{
			Question: "What about financial aid?",
			Answer:   "The FAFSA priority deadline is February 1.",
			AskedAt:  time.Date(2026, 8, 20, 10, 1, 0, 0, time.UTC),
		},
	}

	got := fs.FormatTranscript("conv-1", "example.edu", exchanges)

	assert.Contains(t, got, "conversation: conv-1")
	assert.Contains(t, got, "site: example.edu")
	assert.Contains(t, got, "started: 2026-08-20")
	assert.Contains(t, got, "## When are applications due?")
	assert.Contains(t, got, "Applications close January 15.")
	assert.Contains(t, got, "## What about financial aid?")
}

func TestTranscriptWriter_WriteTranscript(t *testing.T) {
	t.Parallel()

	t.Run("writes dated markdown file", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		w := fs.NewTranscriptWriter(dir)

		exchanges := []sitechat.Exchange{
			{
				Question: "Can I visit campus?",
				Answer:   "Tours run daily at 10am and 2pm.",
				AskedAt:  time.Date(2026, 8, 20, 10, 0, 0, 0, time.UTC),
			},
		}

		path, err := w.WriteTranscript("conv-2", "example.edu", exchanges)
		require.NoError(t, err)
		assert.Contains(t, path, "2026-08-20-conv-2.md")

		content, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Contains(t, string(content), "Tours run daily")
	})

	t.Run("creates missing directories", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir() + "/nested/exports"
		w := fs.NewTranscriptWriter(dir)

		path, err := w.WriteTranscript("conv-3", "example.edu", nil)
		require.NoError(t, err)
		assert.FileExists(t, path)
	})

	t.Run("rejects empty conversation ID", func(t *testing.T) {
		t.Parallel()

		w := fs.NewTranscriptWriter(t.TempDir())

		_, err := w.WriteTranscript("", "example.edu", nil)
		require.Error(t, err)
		assert.Equal(t, sitechat.EINVALID, sitechat.ErrorCode(err))
	})
}
