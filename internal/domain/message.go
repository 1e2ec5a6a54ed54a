package domain

import (
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Conversation is a thread about one listing; Participants are sorted and unique.
type Conversation struct {
	ID                string
	ListingID         string
	Participants      []string
	LastMessage       string
	LastMessageAt     *time.Time
	Unread            map[string]int // participant -> unread count
	ExchangeValidated bool
	CreatedAt         time.Time
}

func NewConversation(listingID string, participants []string, now time.Time) (*Conversation, error) {
	listingID = strings.TrimSpace(listingID)
	if listingID == "" {
		return nil, ErrValidation("listing_id is required")
	}
	seen := map[string]bool{}
	var ps []string
	for _, p := range participants {
		p = strings.TrimSpace(p)
		if p == "" || seen[p] {
			continue
		}
		seen[p] = true
		ps = append(ps, p)
	}
	sort.Strings(ps)
	if len(ps) < 2 {
		return nil, ErrValidation("a conversation needs at least two participants")
	}
	unread := make(map[string]int, len(ps))
	for _, p := range ps {
		unread[p] = 0
	}
	return &Conversation{
		ID:           uuid.NewString(),
		ListingID:    listingID,
		Participants: ps,
		Unread:       unread,
		CreatedAt:    now.UTC(),
	}, nil
}

func (c *Conversation) HasParticipant(userID string) bool {
	for _, p := range c.Participants {
		if p == userID {
			return true
		}
	}
	return false
}

// Record updates the conversation summary for a message and bumps unread for everyone but the sender.
func (c *Conversation) Record(m Message) {
	c.LastMessage = m.Text
	t := m.CreatedAt
	c.LastMessageAt = &t
	if c.Unread == nil {
		c.Unread = map[string]int{}
	}
	for _, p := range c.Participants {
		if p != m.SenderID {
			c.Unread[p]++
		}
	}
}

func (c Conversation) Clone() Conversation {
	out := c
	out.Participants = append([]string(nil), c.Participants...)
	out.Unread = make(map[string]int, len(c.Unread))
	for k, v := range c.Unread {
		out.Unread[k] = v
	}
	if c.LastMessageAt != nil {
		t := *c.LastMessageAt
		out.LastMessageAt = &t
	}
	return out
}

type Message struct {
	ID             string
	ConversationID string
	SenderID       string
	Text           string
	CreatedAt      time.Time
}

func NewMessage(conversationID, senderID, text string, now time.Time) (*Message, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, ErrValidation("message text is required")
	}
	if len(text) > 2000 {
		return nil, ErrValidation("message text must be <= 2000 chars")
	}
	return &Message{
		ID:             uuid.NewString(),
		ConversationID: conversationID,
		SenderID:       senderID,
		Text:           text,
		CreatedAt:      now.UTC(),
	}, nil
}
