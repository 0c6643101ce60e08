// Package admin implements the back-office operations: auditing users and
// exchanges, promoting admins and blocking accounts.
package admin

import (
	"context"
	"log/slog"
	"time"

	"github.com/amirasaad/transfeo/pkg/domain"
	"github.com/amirasaad/transfeo/pkg/dto"
	"github.com/amirasaad/transfeo/pkg/repository"
	"github.com/google/uuid"
)

// UserDetails is a single account with its full exchange history.
type UserDetails struct {
	User      dto.UserRead        `json:"user"`
	Exchanges []dto.ExchangeEntry `json:"exchanges"`
}

// Service holds the admin operations. Authorization happens in the transport
// layer; every call here assumes an authenticated admin.
type Service struct {
	uow    repository.UnitOfWork
	logger *slog.Logger
	now    func() time.Time
}

// Option configures a Service.
type Option func(*Service)

// WithClock injects the time source used for the daily stats window.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// New creates an admin service.
func New(uow repository.UnitOfWork, logger *slog.Logger, opts ...Option) *Service {
	s := &Service{uow: uow, logger: logger, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Users returns a page of accounts matching the search, with per-user
// sent/received counts.
func (s *Service) Users(ctx context.Context, q repository.ListQuery) (*dto.Page[dto.UserRead], error) {
	return s.uow.Users().List(ctx, q)
}

// UserDetails returns one account and its merged sent/received history.
func (s *Service) UserDetails(ctx context.Context, id uuid.UUID) (*UserDetails, error) {
	u, err := s.uow.Users().Get(ctx, id)
	if err != nil {
		return nil, err
	}
	exchanges, err := s.uow.Exchanges().ListForUser(ctx, id)
	if err != nil {
		return nil, err
	}
	return &UserDetails{
		User: dto.UserRead{
			ID:        u.ID,
			Name:      u.Name,
			Email:     u.Email,
			IBAN:      u.IBAN,
			Balance:   u.Balance.Float(),
			Role:      string(u.Role),
			Blocked:   !u.Active,
			CreatedAt: u.CreatedAt,
		},
		Exchanges: exchanges,
	}, nil
}

// ToggleAdmin flips the target's role between user and admin and returns the
// new role. Admins cannot change their own role.
func (s *Service) ToggleAdmin(ctx context.Context, actorID, targetID uuid.UUID) (domain.Role, error) {
	if actorID == targetID {
		return "", domain.ErrSelfModification
	}
	target, err := s.uow.Users().Get(ctx, targetID)
	if err != nil {
		return "", err
	}

	role := domain.RoleAdmin
	if target.IsAdmin() {
		role = domain.RoleUser
	}
	if err := s.uow.Users().SetRole(ctx, targetID, role); err != nil {
		return "", err
	}
	s.logger.Info("role toggled", "actor_id", actorID, "target_id", targetID, "role", role)
	return role, nil
}

// ToggleBlock flips the target's active flag and reports whether the account
// is now blocked. Admins cannot block themselves.
func (s *Service) ToggleBlock(ctx context.Context, actorID, targetID uuid.UUID) (bool, error) {
	if actorID == targetID {
		return false, domain.ErrSelfModification
	}
	target, err := s.uow.Users().Get(ctx, targetID)
	if err != nil {
		return false, err
	}

	active := !target.Active
	if err := s.uow.Users().SetActive(ctx, targetID, active); err != nil {
		return false, err
	}
	s.logger.Info("account block toggled",
		"actor_id", actorID, "target_id", targetID, "blocked", !active)
	return !active, nil
}

// Exchanges returns a page of the transfer ledger matching the search.
func (s *Service) Exchanges(ctx context.Context, q repository.ListQuery) (*dto.Page[dto.ExchangeRead], error) {
	return s.uow.Exchanges().Search(ctx, q)
}

// Stats summarizes the ledger for the exchange audit view.
func (s *Service) Stats(ctx context.Context) (*dto.ExchangeStats, error) {
	return s.uow.Exchanges().Stats(ctx, s.now())
}
