package sitechat

import (
	"strings"
	"unicode"
)

// stopwords are question words that carry no search signal.
var stopwords = map[string]struct{}{
	"a": {}, "an": {}, "and": {}, "are": {}, "as": {}, "at": {}, "be": {},
	"by": {}, "can": {}, "do": {}, "does": {}, "for": {}, "from": {},
	"how": {}, "i": {}, "in": {}, "is": {}, "it": {}, "me": {}, "my": {},
	"of": {}, "on": {}, "or": {}, "tell": {}, "that": {}, "the": {},
	"their": {}, "there": {}, "this": {}, "to": {}, "was": {}, "what": {},
	"when": {}, "where": {}, "which": {}, "who": {}, "why": {}, "will": {},
	"with": {}, "you": {}, "your": {},
}

// KeyTerms returns the lowercased, stopword-filtered terms of a question
// in order of first occurrence, deduplicated. Surrounding punctuation is
// stripped from each term.
func KeyTerms(s string) []string {
	seen := make(map[string]struct{})
	var terms []string
	for _, w := range strings.Fields(strings.ToLower(s)) {
		w = strings.TrimFunc(w, func(r rune) bool {
			return !unicode.IsLetter(r) && !unicode.IsDigit(r)
		})
		if w == "" {
			continue
		}
		if _, ok := stopwords[w]; ok {
			continue
		}
		if _, ok := seen[w]; ok {
			continue
		}
		seen[w] = struct{}{}
		terms = append(terms, w)
	}
	return terms
}

// Facet is a topic recognized by the planner. Questions touching several
// facets fan out into one supplementary query per facet.
type Facet struct {
	Label    string
	Keywords []string
}

// DefaultFacets returns the topic lexicon for a college website. Callers
// targeting a different kind of site can supply their own.
func DefaultFacets() []Facet {
	return []Facet{
		{Label: "admissions", Keywords: []string{
			"admission", "admissions", "apply", "application", "deadline",
			"deadlines", "requirement", "requirements", "early decision",
			"regular decision",
		}},
		{Label: "financial aid", Keywords: []string{
			"financial", "aid", "scholarship", "scholarships", "cost",
			"costs", "tuition", "grant", "grants",
		}},
		{Label: "academics", Keywords: []string{
			"academic", "academics", "major", "majors", "program",
			"programs", "course", "courses", "department", "departments",
			"curriculum",
		}},
		{Label: "campus life", Keywords: []string{
			"campus", "housing", "dining", "club", "clubs", "organization",
			"organizations", "athletics",
		}},
		{Label: "about", Keywords: []string{
			"history", "mission", "overview", "glance",
		}},
		{Label: "president", Keywords: []string{
			"president",
		}},
	}
}

// matched returns the facet keywords present in the lowercased question.
func (f Facet) matched(questionLower string) []string {
	var hits []string
	for _, kw := range f.Keywords {
		if strings.Contains(questionLower, kw) {
			hits = append(hits, kw)
		}
	}
	return hits
}

// Planner turns a user question plus conversation history into one or more
// site-restricted search queries. Planning is deterministic: identical
// (question, history) input yields identical queries.
type Planner struct {
	// Domain is the site: restriction applied to every query.
	Domain string

	// MaxQueries caps the fan-out per question. Defaults to 3.
	MaxQueries int

	// Facets is the topic lexicon. Defaults to DefaultFacets.
	Facets []Facet
}

// NewPlanner creates a Planner for the given target domain.
func NewPlanner(domain string) *Planner {
	return &Planner{Domain: domain, MaxQueries: 3, Facets: DefaultFacets()}
}

// Plan builds the ordered query list for a question. The primary query is
// always first. Supplementary facet queries are added only when the
// question touches two or more facets. Returns EINVALID for an empty or
// whitespace-only question.
func (p *Planner) Plan(question string, history []Exchange) ([]SearchQuery, error) {
	trimmed := strings.TrimSpace(question)
	if trimmed == "" {
		return nil, Errorf(EINVALID, "empty question")
	}

	maxQueries := p.MaxQueries
	if maxQueries <= 0 {
		maxQueries = 3
	}
	facets := p.Facets
	if facets == nil {
		facets = DefaultFacets()
	}

	terms := KeyTerms(trimmed)
	if len(terms) == 0 {
		// Question is all stopwords ("what is it?"); search it verbatim.
		terms = strings.Fields(strings.ToLower(trimmed))
	}

	// Short follow-ups inherit terms from the previous question so that
	// "what about deadlines?" stays anchored to the prior topic.
	if len(terms) < 3 && len(history) > 0 {
		prev := KeyTerms(history[len(history)-1].Question)
		have := make(map[string]struct{}, len(terms))
		for _, t := range terms {
			have[t] = struct{}{}
		}
		added := 0
		for _, t := range prev {
			if _, ok := have[t]; ok {
				continue
			}
			terms = append(terms, t)
			if added++; added >= 4 {
				break
			}
		}
	}

	queries := []SearchQuery{{Text: p.restrict(strings.Join(terms, " "))}}

	questionLower := strings.ToLower(trimmed)
	var hit []Facet
	for _, f := range facets {
		if len(f.matched(questionLower)) > 0 {
			hit = append(hit, f)
		}
	}

	// A single matched facet adds nothing over the primary query.
	if len(hit) >= 2 {
		for _, f := range hit {
			if len(queries) >= maxQueries {
				break
			}
			parts := f.matched(questionLower)
			if !containsFold(parts, f.Label) {
				parts = append(parts, f.Label)
			}
			queries = append(queries, SearchQuery{
				Text:  p.restrict(strings.Join(parts, " ")),
				Facet: f.Label,
			})
		}
	}

	return queries, nil
}

func (p *Planner) restrict(terms string) string {
	return "site:" + p.Domain + " " + terms
}

func containsFold(parts []string, s string) bool {
	for _, p := range parts {
		if strings.EqualFold(p, s) {
			return true
		}
	}
	return false
}
