package domain

import (
	"strconv"
	"strings"
	"time"
)

type DealStatus string

const (
	DealInProgress DealStatus = "In Progress"
	DealCompleted  DealStatus = "Completed"
)

func (s DealStatus) IsValid() bool {
	return s == DealInProgress || s == DealCompleted
}

type Deal struct {
	ID              string     `json:"id"`
	UserID          string     `json:"user_id"`
	Title           string     `json:"title"`
	Partner         string     `json:"partner"`
	Amount          string     `json:"amount"`
	PartnershipType string     `json:"partnership_type"`
	Date            string     `json:"date"`
	Status          DealStatus `json:"status"`
	Description     *string    `json:"description,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
}

// Value parses amounts like "$250,000". Unparseable amounts count as zero.
func (d *Deal) Value() int64 {
	raw := strings.NewReplacer("$", "", ",", "").Replace(strings.TrimSpace(d.Amount))
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0
	}
	return v
}

type DealStats struct {
	TotalValue     int64 `json:"total_value"`
	CompletedDeals int   `json:"completed_deals"`
	OpenDeals      int   `json:"open_deals"`
}
