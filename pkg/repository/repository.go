// Package repository defines the persistence ports the services depend on.
// The gorm implementations live in infra/repository.
package repository

import (
	"context"
	"time"

	"github.com/amirasaad/transfeo/pkg/domain"
	"github.com/amirasaad/transfeo/pkg/dto"
	"github.com/google/uuid"
)

// ListQuery is the shared search/pagination shape of the admin list views.
type ListQuery struct {
	Search  string
	Page    int
	PerPage int
}

// UserRepository persists account holders.
type UserRepository interface {
	Get(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetByIBAN(ctx context.Context, iban string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	// GetForUpdate reads a user under a row-level write lock. Only valid
	// inside a UnitOfWork transaction.
	GetForUpdate(ctx context.Context, id uuid.UUID) (*domain.User, error)
	Create(ctx context.Context, u *domain.User) error
	// UpdateBalance writes the new balance for a row previously locked with
	// GetForUpdate.
	UpdateBalance(ctx context.Context, id uuid.UUID, balanceCents int64) error
	SetRole(ctx context.Context, id uuid.UUID, role domain.Role) error
	SetActive(ctx context.Context, id uuid.UUID, active bool) error
	// List searches name/email/IBAN and returns rows with sent/received counts.
	List(ctx context.Context, q ListQuery) (*dto.Page[dto.UserRead], error)
}

// ExchangeRepository persists the append-only transfer ledger.
type ExchangeRepository interface {
	Create(ctx context.Context, e *domain.Exchange) error
	// ListForUser merges sent and received exchanges, most recent first.
	ListForUser(ctx context.Context, userID uuid.UUID) ([]dto.ExchangeEntry, error)
	// RecentBySender returns the sender's latest exchanges with recipient names.
	RecentBySender(ctx context.Context, senderID uuid.UUID, limit int) ([]dto.ExchangeRead, error)
	// MonthlyCountsBySender returns sent-transfer counts per month (index 0 =
	// January) for the given year.
	MonthlyCountsBySender(ctx context.Context, senderID uuid.UUID, year int) ([12]int64, error)
	CountBySender(ctx context.Context, senderID uuid.UUID, year int) (int64, error)
	// Search filters by party name/email, currency or amount for admin views.
	Search(ctx context.Context, q ListQuery) (*dto.Page[dto.ExchangeRead], error)
	Stats(ctx context.Context, now time.Time) (*dto.ExchangeStats, error)
}

// UnitOfWork provides repository access and a transaction boundary the
// transfer engine composes its atomic commit with. Outside Do, repositories
// run on the base connection; inside Do they share one transaction.
type UnitOfWork interface {
	Do(ctx context.Context, fn func(uow UnitOfWork) error) error
	Users() UserRepository
	Exchanges() ExchangeRepository
}
