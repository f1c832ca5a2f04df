package domain

import "time"

// Compatibility is the scorer's verdict for a viewer/candidate pair.
type Compatibility struct {
	Nickname string   `json:"nickname"`
	Reasons  []string `json:"reasons"`
	Score    int      `json:"score"`
}

// Match is created once per (user, profile) pair and never mutated.
type Match struct {
	ID             string        `json:"id"`
	UserID         string        `json:"user_id"`
	Profile        Profile       `json:"profile"`
	MatchedAt      time.Time     `json:"matched_at"`
	Compatibility  Compatibility `json:"compatibility"`
	ConversationID *string       `json:"conversation_id,omitempty"`
	AutoMatched    bool          `json:"auto_matched"`
}
