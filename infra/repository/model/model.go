// Package model holds the gorm table mappings. Domain types never carry gorm
// tags; mapping happens in infra/repository.
package model

import (
	"time"

	"github.com/google/uuid"
)

// User is the users table row. Balances are stored as EUR cents.
type User struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name         string    `gorm:"not null;size:255"`
	Email        string    `gorm:"uniqueIndex;not null;size:255"`
	IBAN         string    `gorm:"column:iban;uniqueIndex;not null;size:34"`
	BalanceCents int64     `gorm:"not null;default:0"`
	Role         string    `gorm:"not null;size:32;default:'ROLE_USER'"`
	Active       bool      `gorm:"not null;default:true"`
	Password     string    `gorm:"not null"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (User) TableName() string {
	return "users"
}

// Exchange is one committed transfer. Rows are append-only; the amount is kept
// in the sender's currency with the EUR rate applied at commit time.
type Exchange struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	SenderID    uuid.UUID `gorm:"type:uuid;not null;index"`
	ReceiverID  uuid.UUID `gorm:"type:uuid;not null;index"`
	AmountCents int64     `gorm:"not null"`
	Currency    string    `gorm:"not null;size:3"`
	Rate        float64   `gorm:"not null"`
	Message     string    `gorm:"size:500"`
	// Reference is nullable so transfers without an idempotency token do not
	// collide on the unique index.
	Reference *string   `gorm:"uniqueIndex;size:64"`
	CreatedAt time.Time `gorm:"index"`

	Sender   User `gorm:"foreignKey:SenderID"`
	Receiver User `gorm:"foreignKey:ReceiverID"`
}

func (Exchange) TableName() string {
	return "exchanges"
}
