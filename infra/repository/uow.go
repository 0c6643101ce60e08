package repository

import (
	"context"

	"github.com/amirasaad/transfeo/pkg/repository"
	"gorm.io/gorm"
)

// UoW provides the transaction boundary and repository access in one
// abstraction. Every repository handed out inside Do shares the same
// transaction session, so multi-row commits are atomic by construction.
type UoW struct {
	db *gorm.DB
	tx *gorm.DB
}

// NewUoW creates a UoW over the base connection.
func NewUoW(db *gorm.DB) *UoW {
	return &UoW{db: db}
}

func (u *UoW) session() *gorm.DB {
	if u.tx != nil {
		return u.tx
	}
	return u.db
}

// Do runs fn inside a database transaction. A non-nil error from fn rolls the
// whole transaction back. Nested calls reuse the ambient transaction.
func (u *UoW) Do(ctx context.Context, fn func(uow repository.UnitOfWork) error) error {
	if u.tx != nil {
		return fn(u)
	}
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&UoW{db: u.db, tx: tx})
	})
}

// Users returns a user repository bound to the current session.
func (u *UoW) Users() repository.UserRepository {
	return NewUserRepository(u.session())
}

// Exchanges returns an exchange repository bound to the current session.
func (u *UoW) Exchanges() repository.ExchangeRepository {
	return NewExchangeRepository(u.session())
}

var _ repository.UnitOfWork = (*UoW)(nil)
