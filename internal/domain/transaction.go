package domain

import "time"

// CoinsPerDollar is the shop's fixed exchange rate.
const CoinsPerDollar = 10

type TransactionType string

const (
	TxGiftSent     TransactionType = "gift_sent"
	TxGiftReceived TransactionType = "gift_received"
	TxSubscription TransactionType = "subscription"
	TxDeposit      TransactionType = "deposit"
	TxWithdrawal   TransactionType = "withdrawal"
	TxProfileCard  TransactionType = "profile_card"
)

func (t TransactionType) IsValid() bool {
	switch t {
	case TxGiftSent, TxGiftReceived, TxSubscription, TxDeposit, TxWithdrawal, TxProfileCard:
		return true
	}
	return false
}

type Transaction struct {
	ID           string          `json:"id"`
	Type         TransactionType `json:"type"`
	Description  string          `json:"description"`
	Amount       int64           `json:"amount"`
	DollarAmount float64         `json:"dollar_amount"`
	Timestamp    time.Time       `json:"timestamp"`
	IsPositive   bool            `json:"is_positive"`
}

// Wallet is the coin ledger of one user. Balance is always the starting
// balance plus the sum of all transaction amounts.
type Wallet struct {
	StartingBalance int64         `json:"starting_balance"`
	Balance         int64         `json:"balance"`
	Transactions    []Transaction `json:"transactions"`
}

func DollarsFor(coins int64) float64 {
	return float64(coins) / CoinsPerDollar
}
