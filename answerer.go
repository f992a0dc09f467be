package sitechat

import "context"

// Answerer generates a natural-language answer from a question, recent
// conversation history, and the assembled site context. The core's
// responsibility ends at producing the bundle and prompt inputs; sampling
// behavior belongs to the implementation.
type Answerer interface {
	Answer(ctx context.Context, question string, history []Exchange, bundle *ContextBundle) (string, error)
}
