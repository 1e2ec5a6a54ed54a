package memory

import (
	"context"
	"slices"
	"sort"
	"sync"
	"time"

	"github.com/baechuer/real-time-ressys/services/barter-service/internal/domain"
)

type ConversationStore struct {
	mu       sync.RWMutex
	convs    map[string]domain.Conversation
	messages map[string][]domain.Message
}

func NewConversationStore() *ConversationStore {
	return &ConversationStore{
		convs:    make(map[string]domain.Conversation),
		messages: make(map[string][]domain.Message),
	}
}

func (s *ConversationStore) Create(ctx context.Context, c *domain.Conversation) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.convs[c.ID] = c.Clone()
	return nil
}

func (s *ConversationStore) GetByID(ctx context.Context, id string) (*domain.Conversation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.convs[id]
	if !ok {
		return nil, domain.ErrNotFound("conversation not found")
	}
	out := c.Clone()
	return &out, nil
}

// Find returns the conversation about listingID between exactly participants (sorted).
func (s *ConversationStore) Find(ctx context.Context, listingID string, participants []string) (*domain.Conversation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, c := range s.convs {
		if c.ListingID == listingID && slices.Equal(c.Participants, participants) {
			out := c.Clone()
			return &out, nil
		}
	}
	return nil, domain.ErrNotFound("conversation not found")
}

// ListByParticipant orders by last activity, newest first.
func (s *ConversationStore) ListByParticipant(ctx context.Context, userID string) ([]domain.Conversation, error) {
	s.mu.RLock()
	out := []domain.Conversation{}
	for _, c := range s.convs {
		if c.HasParticipant(userID) {
			out = append(out, c.Clone())
		}
	}
	s.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		ai, aj := lastActivity(out[i]), lastActivity(out[j])
		if !ai.Equal(aj) {
			return ai.After(aj)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

// AppendMessage stores m and updates the conversation summary atomically.
func (s *ConversationStore) AppendMessage(ctx context.Context, m *domain.Message) (*domain.Conversation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.convs[m.ConversationID]
	if !ok {
		return nil, domain.ErrNotFound("conversation not found")
	}
	c = c.Clone()
	c.Record(*m)
	s.convs[c.ID] = c
	s.messages[c.ID] = append(s.messages[c.ID], *m)

	out := c.Clone()
	return &out, nil
}

func (s *ConversationStore) ListMessages(ctx context.Context, conversationID string) ([]domain.Message, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if _, ok := s.convs[conversationID]; !ok {
		return nil, domain.ErrNotFound("conversation not found")
	}
	return append([]domain.Message{}, s.messages[conversationID]...), nil
}

func (s *ConversationStore) MarkRead(ctx context.Context, conversationID, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.convs[conversationID]
	if !ok {
		return domain.ErrNotFound("conversation not found")
	}
	c = c.Clone()
	c.Unread[userID] = 0
	s.convs[c.ID] = c
	return nil
}

func (s *ConversationStore) MarkValidated(ctx context.Context, conversationID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.convs[conversationID]
	if !ok {
		return domain.ErrNotFound("conversation not found")
	}
	c.ExchangeValidated = true
	s.convs[c.ID] = c
	return nil
}

func lastActivity(c domain.Conversation) time.Time {
	if c.LastMessageAt != nil {
		return *c.LastMessageAt
	}
	return c.CreatedAt
}
