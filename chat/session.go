// Package chat orchestrates a question-answering session against a single
// website: plan queries, retrieve pages, assemble context, generate an
// answer, and record the exchange.
package chat

import (
	"context"
	"fmt"
	"time"

	"github.com/duna-akin/sitechat"
	"github.com/google/uuid"
)

// Answer is the result of one question posed to a session.
type Answer struct {
	// Text is the generated answer.
	Text string

	// Sources are the URLs of the pages the answer drew on, in the
	// order they appeared in the context.
	Sources []string

	// NoResults is true when the site yielded no usable pages and Text
	// carries the canned fallback instead of a generated answer.
	NoResults bool
}

// Session ties the collaborators together for one conversation. It is not
// safe for concurrent use; a session serves one user at a time.
type Session struct {
	ID            string
	Planner       *sitechat.Planner
	Retriever     sitechat.Retriever
	Answerer      sitechat.Answerer
	Conversations sitechat.ConversationService
	Config        sitechat.Config

	// LastReport exposes retrieval counters from the most recent Ask,
	// for verbose output. Nil before the first question.
	LastReport *sitechat.RetrievalReport
}

// NewSession creates a session with a fresh conversation ID.
func NewSession(planner *sitechat.Planner, retriever sitechat.Retriever, answerer sitechat.Answerer, conversations sitechat.ConversationService, config sitechat.Config) *Session {
	return &Session{
		ID:            uuid.New().String(),
		Planner:       planner,
		Retriever:     retriever,
		Answerer:      answerer,
		Conversations: conversations,
		Config:        config,
	}
}

// Ask answers one question. Every step runs under a single deadline; a
// question that cannot complete in Config.RequestTimeout fails rather
// than hanging the conversation.
//
// When the site yields nothing relevant the user still gets a response:
// a canned no-results answer is returned (and recorded) without calling
// the model.
func (s *Session) Ask(ctx context.Context, question string) (*Answer, error) {
	ctx, cancel := context.WithTimeout(ctx, s.Config.RequestTimeout)
	defer cancel()

	history, err := s.Conversations.RecentExchanges(ctx, s.ID, s.Config.HistoryWindow)
	if err != nil {
		return nil, err
	}

	queries, err := s.Planner.Plan(question, history)
	if err != nil {
		return nil, err
	}

	docs, report, err := s.Retriever.Retrieve(ctx, question, queries)
	s.LastReport = report
	if sitechat.ErrorCode(err) == sitechat.ENORESULTS {
		return s.noResults(ctx, question)
	}
	if err != nil {
		return nil, err
	}

	bundle := sitechat.AssembleContext(docs, s.Config.MaxTotalLength)
	if bundle.Empty() {
		return s.noResults(ctx, question)
	}

	text, err := s.Answerer.Answer(ctx, question, history, bundle)
	if err != nil {
		return nil, err
	}

	answer := &Answer{Text: text, Sources: bundle.Sources()}
	if err := s.record(ctx, question, answer); err != nil {
		return nil, err
	}
	return answer, nil
}

// noResults returns and records the canned answer for questions the site
// has nothing on. The model is not consulted.
func (s *Session) noResults(ctx context.Context, question string) (*Answer, error) {
	answer := &Answer{
		Text:      fmt.Sprintf("I could not find information about that on %s. Try rephrasing the question or asking about another topic the site covers.", s.Planner.Domain),
		NoResults: true,
	}
	if err := s.record(ctx, question, answer); err != nil {
		return nil, err
	}
	return answer, nil
}

// record appends the exchange to the conversation history.
func (s *Session) record(ctx context.Context, question string, answer *Answer) error {
	return s.Conversations.AppendExchange(ctx, s.ID, sitechat.Exchange{
		Question: question,
		Answer:   answer.Text,
		AskedAt:  time.Now().UTC(),
	})
}
