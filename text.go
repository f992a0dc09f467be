package sitechat

import (
	"strings"
	"unicode/utf8"
)

// TruncationMarker is appended whenever excerpt text is cut to fit a
// character budget. A truncated excerpt is never silently shortened.
const TruncationMarker = "..."

// CollapseWhitespace normalizes extracted text: runs of spaces and tabs
// collapse to a single space, lines are trimmed, and runs of blank lines
// collapse to a single blank line. The result is deterministic for
// identical input.
func CollapseWhitespace(s string) string {
	var out []string
	blank := false
	for _, line := range strings.Split(s, "\n") {
		line = strings.Join(strings.Fields(line), " ")
		if line == "" {
			blank = true
			continue
		}
		if blank && len(out) > 0 {
			out = append(out, "")
		}
		blank = false
		out = append(out, line)
	}
	return strings.Join(out, "\n")
}

// Truncate cuts s to at most max characters, appending TruncationMarker
// when a cut occurs. The second return reports whether s was truncated.
// If max cannot even hold the marker, Truncate returns ("", false).
func Truncate(s string, max int) (string, bool) {
	if max <= 0 {
		return "", false
	}
	if utf8.RuneCountInString(s) <= max {
		return s, false
	}
	marker := utf8.RuneCountInString(TruncationMarker)
	if max <= marker {
		return "", false
	}

	runes := []rune(s)
	return string(runes[:max-marker]) + TruncationMarker, true
}
