package mock

import (
	"context"

	"github.com/duna-akin/sitechat"
)

var _ sitechat.Answerer = (*Answerer)(nil)

// Answerer is a mock implementation of sitechat.Answerer.
type Answerer struct {
	AnswerFn func(ctx context.Context, question string, history []sitechat.Exchange, bundle *sitechat.ContextBundle) (string, error)
}

func (a *Answerer) Answer(ctx context.Context, question string, history []sitechat.Exchange, bundle *sitechat.ContextBundle) (string, error) {
	return a.AnswerFn(ctx, question, history, bundle)
}

var _ sitechat.Retriever = (*Retriever)(nil)

// Retriever is a mock implementation of sitechat.Retriever.
type Retriever struct {
	RetrieveFn func(ctx context.Context, question string, queries []sitechat.SearchQuery) ([]*sitechat.Document, *sitechat.RetrievalReport, error)
}

func (r *Retriever) Retrieve(ctx context.Context, question string, queries []sitechat.SearchQuery) ([]*sitechat.Document, *sitechat.RetrievalReport, error) {
	return r.RetrieveFn(ctx, question, queries)
}
