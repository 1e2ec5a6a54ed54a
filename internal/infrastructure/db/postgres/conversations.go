package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/baechuer/real-time-ressys/services/barter-service/internal/domain"
	"github.com/lib/pq"
)

type ConversationRepo struct {
	db *sql.DB
}

func NewConversationRepo(db *sql.DB) *ConversationRepo { return &ConversationRepo{db: db} }

func (r *ConversationRepo) Create(ctx context.Context, c *domain.Conversation) error {
	return withTx(ctx, r.db, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, insertConversationSQL,
			c.ID, c.ListingID, pq.Array(c.Participants), c.LastMessage, c.LastMessageAt,
			c.ExchangeValidated, c.CreatedAt,
		); err != nil {
			return mapWriteErr(err, "conversation")
		}
		for _, p := range c.Participants {
			if _, err := tx.ExecContext(ctx, insertUnreadSQL, c.ID, p, c.Unread[p]); err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *ConversationRepo) GetByID(ctx context.Context, id string) (*domain.Conversation, error) {
	return r.one(ctx, getConversationSQL, id)
}

// Find expects participants sorted, the same way they are stored.
func (r *ConversationRepo) Find(ctx context.Context, listingID string, participants []string) (*domain.Conversation, error) {
	return r.one(ctx, findConversationSQL, listingID, pq.Array(participants))
}

func (r *ConversationRepo) ListByParticipant(ctx context.Context, userID string) ([]domain.Conversation, error) {
	rows, err := r.db.QueryContext(ctx, listConversationsByParticipantSQL, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []domain.Conversation{}
	for rows.Next() {
		c, err := scanConversation(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if err := r.loadUnread(ctx, out); err != nil {
		return nil, err
	}
	return out, nil
}

// AppendMessage stores m and updates the conversation summary in one transaction.
func (r *ConversationRepo) AppendMessage(ctx context.Context, m *domain.Message) (*domain.Conversation, error) {
	err := withTx(ctx, r.db, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, touchConversationSQL, m.ConversationID, m.Text, m.CreatedAt)
		if err != nil {
			return err
		}
		if err := requireAffected(res, "conversation not found"); err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, insertMessageSQL,
			m.ID, m.ConversationID, m.SenderID, m.Text, m.CreatedAt,
		); err != nil {
			return err
		}
		_, err = tx.ExecContext(ctx, bumpUnreadSQL, m.ConversationID, m.SenderID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return r.GetByID(ctx, m.ConversationID)
}

func (r *ConversationRepo) ListMessages(ctx context.Context, conversationID string) ([]domain.Message, error) {
	if err := r.mustExist(ctx, conversationID); err != nil {
		return nil, err
	}
	rows, err := r.db.QueryContext(ctx, listMessagesSQL, conversationID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []domain.Message{}
	for rows.Next() {
		var m domain.Message
		if err := rows.Scan(&m.ID, &m.ConversationID, &m.SenderID, &m.Text, &m.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

func (r *ConversationRepo) MarkRead(ctx context.Context, conversationID, userID string) error {
	if err := r.mustExist(ctx, conversationID); err != nil {
		return err
	}
	_, err := r.db.ExecContext(ctx, markReadSQL, conversationID, userID)
	return err
}

func (r *ConversationRepo) MarkValidated(ctx context.Context, conversationID string) error {
	res, err := r.db.ExecContext(ctx, markValidatedSQL, conversationID)
	if err != nil {
		return err
	}
	return requireAffected(res, "conversation not found")
}

func (r *ConversationRepo) one(ctx context.Context, query string, args ...any) (*domain.Conversation, error) {
	c, err := scanConversation(r.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound("conversation not found")
	}
	if err != nil {
		return nil, err
	}
	list := []domain.Conversation{*c}
	if err := r.loadUnread(ctx, list); err != nil {
		return nil, err
	}
	return &list[0], nil
}

func (r *ConversationRepo) mustExist(ctx context.Context, id string) error {
	var ok bool
	if err := r.db.QueryRowContext(ctx, conversationExistsSQL, id).Scan(&ok); err != nil {
		return err
	}
	if !ok {
		return domain.ErrNotFound("conversation not found")
	}
	return nil
}

func (r *ConversationRepo) loadUnread(ctx context.Context, convs []domain.Conversation) error {
	if len(convs) == 0 {
		return nil
	}
	ids := make([]string, len(convs))
	idx := make(map[string]int, len(convs))
	for i, c := range convs {
		ids[i] = c.ID
		idx[c.ID] = i
	}

	rows, err := r.db.QueryContext(ctx, listUnreadSQL, pq.Array(ids))
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var convID, userID string
		var n int
		if err := rows.Scan(&convID, &userID, &n); err != nil {
			return err
		}
		if i, ok := idx[convID]; ok {
			convs[i].Unread[userID] = n
		}
	}
	return rows.Err()
}

func scanConversation(row rowScanner) (*domain.Conversation, error) {
	var c domain.Conversation
	var participants pq.StringArray
	var last sql.NullTime
	if err := row.Scan(
		&c.ID, &c.ListingID, &participants, &c.LastMessage, &last, &c.ExchangeValidated, &c.CreatedAt,
	); err != nil {
		return nil, err
	}
	c.Participants = []string(participants)
	if last.Valid {
		t := last.Time
		c.LastMessageAt = &t
	}
	c.Unread = make(map[string]int, len(c.Participants))
	for _, p := range c.Participants {
		c.Unread[p] = 0
	}
	return &c, nil
}
