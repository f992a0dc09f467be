package sqlite

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/duna-akin/sitechat"
	"github.com/google/uuid"
)

// Compile-time interface verification.
var _ sitechat.ConversationService = (*ConversationService)(nil)

// ConversationInfo is a stored conversation's metadata.
type ConversationInfo struct {
	ID        string
	Domain    string
	CreatedAt time.Time
	Exchanges int
}

// ConversationService implements sitechat.ConversationService using SQLite.
// Unlike the in-memory sitechat.Conversation, it persists full transcripts
// across process restarts and can hold many conversations keyed by ID.
type ConversationService struct {
	db     *DB
	domain string
}

// NewConversationService creates a new ConversationService. The domain is
// recorded on every conversation the service creates.
func NewConversationService(db *DB, domain string) *ConversationService {
	return &ConversationService{db: db, domain: domain}
}

// CreateConversation starts a new conversation and returns its ID.
func (s *ConversationService) CreateConversation(ctx context.Context) (string, error) {
	id := uuid.New().String()
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO conversations (id, domain, created_at)
		VALUES (?, ?, ?)
	`, id, s.domain, time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return "", err
	}
	return id, nil
}

// AppendExchange adds an exchange to the end of a conversation. The
// conversation row is created on first append so resumed and fresh
// sessions follow the same path.
func (s *ConversationService) AppendExchange(ctx context.Context, conversationID string, x sitechat.Exchange) error {
	if conversationID == "" {
		return sitechat.Errorf(sitechat.EINVALID, "conversation ID required")
	}
	if err := x.Validate(); err != nil {
		return err
	}

	askedAt := x.AskedAt
	if askedAt.IsZero() {
		askedAt = time.Now().UTC()
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT OR IGNORE INTO conversations (id, domain, created_at)
		VALUES (?, ?, ?)
	`, conversationID, s.domain, askedAt.Format(time.RFC3339))
	if err != nil {
		return err
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO exchanges (conversation_id, question, answer, asked_at)
		VALUES (?, ?, ?, ?)
	`, conversationID, x.Question, x.Answer, askedAt.Format(time.RFC3339))

	return err
}

// RecentExchanges returns the most recent n exchanges of a conversation in
// chronological order.
func (s *ConversationService) RecentExchanges(ctx context.Context, conversationID string, n int) ([]sitechat.Exchange, error) {
	if conversationID == "" {
		return nil, sitechat.Errorf(sitechat.EINVALID, "conversation ID required")
	}
	if n <= 0 {
		return nil, nil
	}

	// Newest-first window, reversed below. The exchanges id column
	// preserves insertion order even when timestamps collide.
	rows, err := s.db.QueryContext(ctx, `
		SELECT question, answer, asked_at
		FROM exchanges
		WHERE conversation_id = ?
		ORDER BY id DESC
		LIMIT ?
	`, conversationID, n)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	exchanges, err := scanExchanges(rows)
	if err != nil {
		return nil, err
	}

	for i, j := 0, len(exchanges)-1; i < j; i, j = i+1, j-1 {
		exchanges[i], exchanges[j] = exchanges[j], exchanges[i]
	}
	return exchanges, nil
}

// Exchanges returns a conversation's full transcript in chronological order.
func (s *ConversationService) Exchanges(ctx context.Context, conversationID string) ([]sitechat.Exchange, error) {
	if conversationID == "" {
		return nil, sitechat.Errorf(sitechat.EINVALID, "conversation ID required")
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT question, answer, asked_at
		FROM exchanges
		WHERE conversation_id = ?
		ORDER BY id ASC
	`, conversationID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanExchanges(rows)
}

// FindConversation retrieves a conversation's metadata by ID.
func (s *ConversationService) FindConversation(ctx context.Context, conversationID string) (*ConversationInfo, error) {
	var info ConversationInfo
	var createdAt string

	err := s.db.QueryRowContext(ctx, `
		SELECT c.id, c.domain, c.created_at,
			(SELECT COUNT(*) FROM exchanges e WHERE e.conversation_id = c.id)
		FROM conversations c
		WHERE c.id = ?
	`, conversationID).Scan(&info.ID, &info.Domain, &createdAt, &info.Exchanges)

	if err == sql.ErrNoRows {
		return nil, sitechat.Errorf(sitechat.ENOTFOUND, "conversation not found")
	}
	if err != nil {
		return nil, err
	}

	info.CreatedAt, err = parseRFC3339(createdAt, "created_at")
	if err != nil {
		return nil, err
	}
	return &info, nil
}

// ListConversations returns stored conversations, newest first.
func (s *ConversationService) ListConversations(ctx context.Context, limit, offset int) ([]*ConversationInfo, error) {
	var query strings.Builder
	var args []any

	query.WriteString(`
		SELECT c.id, c.domain, c.created_at,
			(SELECT COUNT(*) FROM exchanges e WHERE e.conversation_id = c.id)
		FROM conversations c
		ORDER BY c.created_at DESC, c.id DESC
	`)
	appendPagination(&query, &args, limit, offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var infos []*ConversationInfo
	for rows.Next() {
		var info ConversationInfo
		var createdAt string
		if err := rows.Scan(&info.ID, &info.Domain, &createdAt, &info.Exchanges); err != nil {
			return nil, err
		}
		info.CreatedAt, err = parseRFC3339(createdAt, "created_at")
		if err != nil {
			return nil, err
		}
		infos = append(infos, &info)
	}
	return infos, rows.Err()
}

// scanExchanges reads exchange rows in query order.
func scanExchanges(rows *sql.Rows) ([]sitechat.Exchange, error) {
	var exchanges []sitechat.Exchange
	for rows.Next() {
		var x sitechat.Exchange
		var askedAt string
		if err := rows.Scan(&x.Question, &x.Answer, &askedAt); err != nil {
			return nil, err
		}
		parsed, err := parseRFC3339(askedAt, "asked_at")
		if err != nil {
			return nil, err
		}
		x.AskedAt = parsed
		exchanges = append(exchanges, x)
	}
	return exchanges, rows.Err()
}
