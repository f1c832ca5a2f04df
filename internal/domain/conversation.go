package domain

import "time"

type Participant struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	Avatar       string   `json:"avatar,omitempty"`
	BusinessName string   `json:"business_name,omitempty"`
	Title        string   `json:"title,omitempty"`
	Industries   []string `json:"industries,omitempty"`
	IsPremium    bool     `json:"is_premium"`
}

type Message struct {
	ID        string    `json:"id"`
	SenderID  string    `json:"sender_id"`
	Text      string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}

// Conversation holds an ordered participant pair: the owning user first,
// the matched counterpart second.
type Conversation struct {
	ID           string         `json:"id"`
	Participants [2]Participant `json:"participants"`
	Messages     []Message      `json:"messages"`
	LastMessage  *Message       `json:"last_message,omitempty"`
	UnreadCount  int            `json:"unread_count"`
	CreatedAt    time.Time      `json:"created_at"`
}

func (c *Conversation) Counterpart() Participant {
	return c.Participants[1]
}

func (c *Conversation) Append(m Message, unread bool) {
	c.Messages = append(c.Messages, m)
	last := m
	c.LastMessage = &last
	if unread {
		c.UnreadCount++
	}
}

// Inbox is the persisted messaging state of one user.
type Inbox struct {
	Conversations []Conversation `json:"conversations"`
	HasNewMatches bool           `json:"has_new_matches"`
}

func (in *Inbox) Find(id string) *Conversation {
	for i := range in.Conversations {
		if in.Conversations[i].ID == id {
			return &in.Conversations[i]
		}
	}
	return nil
}

func (in *Inbox) TotalUnread() int {
	total := 0
	for _, c := range in.Conversations {
		total += c.UnreadCount
	}
	return total
}
