package domain

import (
	"time"

	"github.com/amirasaad/transfeo/pkg/money"
	"github.com/google/uuid"
)

// Exchange is one completed transfer, as recorded in the append-only ledger.
// Amount is in the sender's chosen currency; Rate is the multiplier that was
// actually applied to obtain the EUR value moved between the two balances,
// whichever source produced it. Records are immutable once created.
type Exchange struct {
	ID         uuid.UUID
	SenderID   uuid.UUID
	ReceiverID uuid.UUID
	Amount     money.Money
	Rate       float64
	Message    string
	// Reference is an optional client-supplied idempotency token; a unique
	// index rejects a second commit with the same token.
	Reference string
	CreatedAt time.Time
}

// EURAmount returns the EUR value moved by this exchange: amount * rate,
// rounded half-up to the cent.
func (e *Exchange) EURAmount() money.Money {
	return e.Amount.Convert(e.Rate, money.EUR)
}
