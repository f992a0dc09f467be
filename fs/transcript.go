// Package fs exports conversation transcripts as markdown files.
package fs

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/duna-akin/sitechat"
)

// FormatTranscript renders a conversation as a markdown document with
// YAML frontmatter.
func FormatTranscript(conversationID, domain string, exchanges []sitechat.Exchange) string {
	var b strings.Builder
	b.WriteString("---\n")
	b.WriteString("conversation: ")
	b.WriteString(conversationID)
	b.WriteString("\nsite: ")
	b.WriteString(domain)
	if len(exchanges) > 0 {
		b.WriteString("\nstarted: ")
		b.WriteString(exchanges[0].AskedAt.Format("2006-01-02"))
	}
	b.WriteString("\n---\n")
	for _, x := range exchanges {
		fmt.Fprintf(&b, "\n## %s\n\n%s\n", x.Question, x.Answer)
	}
	return b.String()
}

// TranscriptWriter writes conversation transcripts to a directory.
type TranscriptWriter struct {
	baseDir string
}

// NewTranscriptWriter creates a new TranscriptWriter that writes to the
// given base directory.
func NewTranscriptWriter(baseDir string) *TranscriptWriter {
	return &TranscriptWriter{baseDir: baseDir}
}

// WriteTranscript writes a conversation to disk and returns the file path.
// The filename combines the conversation's start date and ID so exports
// sort chronologically.
func (w *TranscriptWriter) WriteTranscript(conversationID, domain string, exchanges []sitechat.Exchange) (string, error) {
	if conversationID == "" {
		return "", sitechat.Errorf(sitechat.EINVALID, "conversation ID required")
	}

	started := time.Now().UTC()
	if len(exchanges) > 0 {
		started = exchanges[0].AskedAt
	}

	name := fmt.Sprintf("%s-%s.md", started.Format("2006-01-02"), conversationID)
	fullPath := filepath.Join(w.baseDir, name)

	if err := os.MkdirAll(w.baseDir, 0755); err != nil {
		return "", err
	}

	content := FormatTranscript(conversationID, domain, exchanges)
	if err := os.WriteFile(fullPath, []byte(content), 0644); err != nil {
		return "", err
	}
	return fullPath, nil
}
