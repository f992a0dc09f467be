package sitechat

import (
	"context"
	"time"
)

// Exchange is one question/answer pair in a conversation. Exchanges are
// append-only and ordered; recent exchanges give the planner and the model
// conversational continuity.
type Exchange struct {
	Question string
	Answer   string
	AskedAt  time.Time
}

// Validate returns an error if the exchange contains invalid fields.
func (x *Exchange) Validate() error {
	if x.Question == "" {
		return Errorf(EINVALID, "exchange question required")
	}
	return nil
}

// ConversationService stores and retrieves conversation history.
type ConversationService interface {
	// AppendExchange adds an exchange to the end of a conversation.
	AppendExchange(ctx context.Context, conversationID string, x Exchange) error

	// RecentExchanges returns the most recent n exchanges of a
	// conversation in chronological order.
	RecentExchanges(ctx context.Context, conversationID string, n int) ([]Exchange, error)
}

// Ensure Conversation implements ConversationService at compile time.
var _ ConversationService = (*Conversation)(nil)

// Conversation is an in-memory, append-only exchange history capped at a
// fixed window. It holds a single conversation and ignores the
// conversationID argument. A Conversation belongs to one session and is
// not safe for concurrent use.
type Conversation struct {
	window    int
	exchanges []Exchange
}

// NewConversation creates a Conversation retaining at most window
// exchanges. A non-positive window defaults to 20.
func NewConversation(window int) *Conversation {
	if window <= 0 {
		window = 20
	}
	return &Conversation{window: window}
}

// AppendExchange adds an exchange, evicting the oldest once the window is
// full.
func (c *Conversation) AppendExchange(_ context.Context, _ string, x Exchange) error {
	if err := x.Validate(); err != nil {
		return err
	}

	c.exchanges = append(c.exchanges, x)
	if len(c.exchanges) > c.window {
		c.exchanges = c.exchanges[len(c.exchanges)-c.window:]
	}
	return nil
}

// RecentExchanges returns the most recent n exchanges in chronological
// order.
func (c *Conversation) RecentExchanges(_ context.Context, _ string, n int) ([]Exchange, error) {
	if n <= 0 || len(c.exchanges) == 0 {
		return nil, nil
	}
	if n > len(c.exchanges) {
		n = len(c.exchanges)
	}

	out := make([]Exchange, n)
	copy(out, c.exchanges[len(c.exchanges)-n:])
	return out, nil
}
