// Package user handles account creation and profile reads.
package user

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"sync"
	"time"

	"github.com/amirasaad/transfeo/pkg/domain"
	"github.com/amirasaad/transfeo/pkg/iban"
	"github.com/amirasaad/transfeo/pkg/money"
	"github.com/amirasaad/transfeo/pkg/repository"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// ibanAttempts bounds the generate-and-insert retry loop on IBAN collisions.
const ibanAttempts = 5

// CreateRequest is a new account submission.
type CreateRequest struct {
	Name     string `json:"name" validate:"required,min=2,max=255"`
	Email    string `json:"email" validate:"required,email,max=255"`
	Password string `json:"password" validate:"required,min=8,max=72"`
}

// Service creates accounts and reads profiles.
type Service struct {
	uow      repository.UnitOfWork
	logger   *slog.Logger
	validate *validator.Validate

	randMu sync.Mutex
	rand   *rand.Rand
}

// Option configures a Service.
type Option func(*Service)

// WithRand injects the random source used for IBAN generation, for
// deterministic tests.
func WithRand(r *rand.Rand) Option {
	return func(s *Service) { s.rand = r }
}

// New creates a user service.
func New(uow repository.UnitOfWork, logger *slog.Logger, opts ...Option) *Service {
	s := &Service{
		uow:      uow,
		logger:   logger,
		validate: validator.New(),
		rand:     rand.New(rand.NewSource(time.Now().UnixNano())),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Create registers a new account with a freshly generated IBAN, a zero EUR
// balance and the user role. IBAN collisions retry with a new IBAN; a taken
// email aborts with ErrAlreadyExists.
func (s *Service) Create(ctx context.Context, req CreateRequest) (*domain.User, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	if _, err := s.uow.Users().GetByEmail(ctx, req.Email); err == nil {
		return nil, fmt.Errorf("%w: email is taken", domain.ErrAlreadyExists)
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	u := &domain.User{
		ID:           uuid.New(),
		Name:         req.Name,
		Email:        req.Email,
		Balance:      money.FromCents(0, money.EUR),
		Role:         domain.RoleUser,
		Active:       true,
		PasswordHash: string(hash),
	}

	for attempt := 1; attempt <= ibanAttempts; attempt++ {
		u.IBAN = s.nextIBAN()
		err = s.uow.Users().Create(ctx, u)
		if err == nil {
			s.logger.Info("account created", "user_id", u.ID, "iban", u.IBAN)
			return u, nil
		}
		if !errors.Is(err, domain.ErrAlreadyExists) {
			return nil, err
		}
		// The email was checked above, so the conflict is almost certainly
		// the IBAN. Generate a new one and try again.
		s.logger.Warn("iban collision on create, retrying",
			"attempt", attempt, "iban", u.IBAN)
	}
	return nil, fmt.Errorf("could not allocate a unique IBAN after %d attempts: %w", ibanAttempts, err)
}

// Get returns the account for id.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	return s.uow.Users().Get(ctx, id)
}

// FindByIBAN resolves the account holding the given IBAN, for recipient
// previews before a transfer is submitted.
func (s *Service) FindByIBAN(ctx context.Context, ibanStr string) (*domain.User, error) {
	u, err := s.uow.Users().GetByIBAN(ctx, ibanStr)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrRecipientNotFound
		}
		return nil, err
	}
	return u, nil
}

func (s *Service) nextIBAN() string {
	s.randMu.Lock()
	defer s.randMu.Unlock()
	return iban.Generate(s.rand)
}
