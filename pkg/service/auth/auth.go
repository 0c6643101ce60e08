// Package auth verifies credentials and issues signed session tokens.
package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/amirasaad/transfeo/config"
	"github.com/amirasaad/transfeo/pkg/domain"
	"github.com/amirasaad/transfeo/pkg/repository"
	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

// LoginRequest is a credential submission.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// Service authenticates users against the store and mints JWTs.
type Service struct {
	uow      repository.UnitOfWork
	cfg      *config.Jwt
	logger   *slog.Logger
	validate *validator.Validate
	now      func() time.Time
}

// Option configures a Service.
type Option func(*Service)

// WithClock injects the time source used for token expiry, for tests.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// New creates an auth service.
func New(uow repository.UnitOfWork, cfg *config.Jwt, logger *slog.Logger, opts ...Option) *Service {
	s := &Service{
		uow:      uow,
		cfg:      cfg,
		logger:   logger,
		validate: validator.New(),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Login verifies the credentials and returns the user with a signed token.
// Unknown email and wrong password both map to ErrInvalidCredentials; blocked
// accounts are rejected after the password check so probing cannot tell a bad
// password from a blocked account.
func (s *Service) Login(ctx context.Context, req LoginRequest) (*domain.User, string, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, "", fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	u, err := s.uow.Users().GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, "", domain.ErrInvalidCredentials
		}
		return nil, "", err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.Password)); err != nil {
		return nil, "", domain.ErrInvalidCredentials
	}

	if !u.Active {
		s.logger.Warn("blocked account attempted login", "user_id", u.ID)
		return nil, "", domain.ErrAccountInactive
	}

	token, err := s.GenerateToken(u)
	if err != nil {
		return nil, "", err
	}

	s.logger.Info("user logged in", "user_id", u.ID, "role", u.Role)
	return u, token, nil
}

// GenerateToken mints an HS256 JWT carrying the user id and role.
func (s *Service) GenerateToken(u *domain.User) (string, error) {
	now := s.now()
	claims := jwt.MapClaims{
		"sub":  u.ID.String(),
		"role": string(u.Role),
		"iat":  now.Unix(),
		"exp":  now.Add(s.cfg.Expiry).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.Secret))
}
