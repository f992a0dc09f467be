package retrieve

import (
	"sort"
	"strings"

	"github.com/duna-akin/sitechat"
)

// rankDocuments orders documents by question-term overlap, breaking ties
// with the original search-engine rank. The sort is stable so output order
// is deterministic regardless of fetch completion order.
//
// Term overlap is a deliberate placeholder heuristic; swapping in an
// embedding-based ranker would not change this function's contract.
func rankDocuments(question string, docs []*sitechat.Document) []*sitechat.Document {
	terms := sitechat.KeyTerms(question)

	scores := make(map[*sitechat.Document]int, len(docs))
	for _, d := range docs {
		scores[d] = overlap(terms, d.Text)
	}

	ranked := make([]*sitechat.Document, len(docs))
	copy(ranked, docs)
	sort.SliceStable(ranked, func(i, j int) bool {
		if scores[ranked[i]] != scores[ranked[j]] {
			return scores[ranked[i]] > scores[ranked[j]]
		}
		return ranked[i].SearchRank < ranked[j].SearchRank
	})
	return ranked
}

// overlap counts how many distinct terms appear in the text,
// case-insensitively.
func overlap(terms []string, text string) int {
	lower := strings.ToLower(text)
	n := 0
	for _, t := range terms {
		if strings.Contains(lower, t) {
			n++
		}
	}
	return n
}
