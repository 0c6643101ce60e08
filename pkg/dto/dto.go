// Package dto holds read-optimized shapes returned by repositories and
// services to the web layer.
package dto

import (
	"time"

	"github.com/google/uuid"
)

// UserRead is one row of the admin user list.
type UserRead struct {
	ID            uuid.UUID `json:"id"`
	Name          string    `json:"name"`
	Email         string    `json:"email"`
	IBAN          string    `json:"iban"`
	Balance       float64   `json:"balance"`
	Role          string    `json:"role"`
	Blocked       bool      `json:"blocked"`
	CreatedAt     time.Time `json:"created_at"`
	SentCount     int64     `json:"sent_exchanges_count"`
	ReceivedCount int64     `json:"received_exchanges_count"`
}

// ExchangeParty identifies one side of an exchange in admin views.
type ExchangeParty struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Email string    `json:"email"`
}

// ExchangeRead is one row of the admin exchange list.
type ExchangeRead struct {
	ID        uuid.UUID     `json:"id"`
	Sender    ExchangeParty `json:"sender"`
	Receiver  ExchangeParty `json:"receiver"`
	Amount    float64       `json:"amount"`
	Currency  string        `json:"currency"`
	Rate      float64       `json:"exchange_rate"`
	AmountEUR float64       `json:"amount_eur"`
	Message   string        `json:"message,omitempty"`
	CreatedAt time.Time     `json:"created_at"`
}

// ExchangeEntry is one line of a user's merged sent/received history.
// Direction is "sent" or "received"; OtherUser names the counterparty.
type ExchangeEntry struct {
	ID             uuid.UUID `json:"id"`
	Direction      string    `json:"type"`
	OtherUser      string    `json:"other_user"`
	OtherUserEmail string    `json:"other_user_email"`
	Amount         float64   `json:"amount"`
	Currency       string    `json:"currency"`
	Rate           float64   `json:"exchange_rate"`
	Message        string    `json:"message,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}

// ExchangeStats summarizes the ledger for the admin exchange view.
type ExchangeStats struct {
	TotalExchanges int64   `json:"total_exchanges"`
	TotalAmountEUR float64 `json:"total_amount"`
	TodayExchanges int64   `json:"today_exchanges"`
}

// MonthActivity is one month's sent-transfer count for the dashboard chart.
type MonthActivity struct {
	Name      string `json:"name"`
	Transfers int64  `json:"transfers"`
}

// RecentTransfer is one line of the dashboard's recent-transfer list.
type RecentTransfer struct {
	ID        uuid.UUID `json:"id"`
	Recipient string    `json:"recipient"`
	Amount    float64   `json:"amount"`
	Currency  string    `json:"currency"`
	Date      string    `json:"date"`
	Status    string    `json:"status"`
}

// Page wraps a list result with offset pagination metadata.
type Page[T any] struct {
	Items   []T   `json:"data"`
	Total   int64 `json:"total"`
	Page    int   `json:"page"`
	PerPage int   `json:"per_page"`
}
