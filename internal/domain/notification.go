package domain

import "time"

type NotificationType string

const (
	NotificationMatch    NotificationType = "match"
	NotificationGoal     NotificationType = "goal"
	NotificationDiscount NotificationType = "discount"
	NotificationDeal     NotificationType = "deal"
)

type Notification struct {
	ID        string           `json:"id"`
	Type      NotificationType `json:"type"`
	Title     string           `json:"title"`
	Message   string           `json:"message"`
	Read      bool             `json:"read"`
	CreatedAt time.Time        `json:"created_at"`
}
