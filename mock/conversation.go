package mock

import (
	"context"

	"github.com/duna-akin/sitechat"
)

var _ sitechat.ConversationService = (*ConversationService)(nil)

// ConversationService is a mock implementation of sitechat.ConversationService.
type ConversationService struct {
	AppendExchangeFn  func(ctx context.Context, conversationID string, x sitechat.Exchange) error
	RecentExchangesFn func(ctx context.Context, conversationID string, n int) ([]sitechat.Exchange, error)
}

func (s *ConversationService) AppendExchange(ctx context.Context, conversationID string, x sitechat.Exchange) error {
	return s.AppendExchangeFn(ctx, conversationID, x)
}

func (s *ConversationService) RecentExchanges(ctx context.Context, conversationID string, n int) ([]sitechat.Exchange, error) {
	return s.RecentExchangesFn(ctx, conversationID, n)
}
