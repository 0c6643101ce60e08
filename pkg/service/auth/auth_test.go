package auth

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/amirasaad/transfeo/config"
	"github.com/amirasaad/transfeo/pkg/domain"
	"github.com/amirasaad/transfeo/pkg/dto"
	"github.com/amirasaad/transfeo/pkg/repository"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const testSecret = "test-secret"

type fakeUsers struct {
	user *domain.User
}

func (f *fakeUsers) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	if f.user != nil && f.user.Email == email {
		return f.user, nil
	}
	return nil, domain.ErrUserNotFound
}

func (f *fakeUsers) Get(context.Context, uuid.UUID) (*domain.User, error) {
	return nil, domain.ErrUserNotFound
}
func (f *fakeUsers) GetByIBAN(context.Context, string) (*domain.User, error) {
	return nil, domain.ErrUserNotFound
}
func (f *fakeUsers) GetForUpdate(context.Context, uuid.UUID) (*domain.User, error) {
	return nil, domain.ErrUserNotFound
}
func (f *fakeUsers) Create(context.Context, *domain.User) error           { return nil }
func (f *fakeUsers) UpdateBalance(context.Context, uuid.UUID, int64) error { return nil }
func (f *fakeUsers) SetRole(context.Context, uuid.UUID, domain.Role) error { return nil }
func (f *fakeUsers) SetActive(context.Context, uuid.UUID, bool) error      { return nil }
func (f *fakeUsers) List(context.Context, repository.ListQuery) (*dto.Page[dto.UserRead], error) {
	return nil, errors.New("not implemented")
}

type fakeUoW struct {
	users *fakeUsers
}

func (f *fakeUoW) Do(_ context.Context, fn func(repository.UnitOfWork) error) error {
	return fn(f)
}
func (f *fakeUoW) Users() repository.UserRepository         { return f.users }
func (f *fakeUoW) Exchanges() repository.ExchangeRepository { return nil }

func newService(u *domain.User, opts ...Option) *Service {
	return New(
		&fakeUoW{users: &fakeUsers{user: u}},
		&config.Jwt{Secret: testSecret, Expiry: time.Hour},
		slog.New(slog.NewTextHandler(io.Discard, nil)),
		opts...,
	)
}

func testUser(t *testing.T, password string, active bool) *domain.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return &domain.User{
		ID:           uuid.New(),
		Email:        "alice@example.com",
		Role:         domain.RoleUser,
		Active:       active,
		PasswordHash: string(hash),
	}
}

func TestLogin(t *testing.T) {
	u := testUser(t, "s3cret-pass", true)
	svc := newService(u)

	got, token, err := svc.Login(context.Background(), LoginRequest{
		Email:    "alice@example.com",
		Password: "s3cret-pass",
	})
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)

	parsed, err := jwt.Parse(token, func(*jwt.Token) (any, error) {
		return []byte(testSecret), nil
	}, jwt.WithValidMethods([]string{"HS256"}))
	require.NoError(t, err)

	claims := parsed.Claims.(jwt.MapClaims)
	assert.Equal(t, u.ID.String(), claims["sub"])
	assert.Equal(t, "ROLE_USER", claims["role"])
}

func TestLogin_WrongPassword(t *testing.T) {
	svc := newService(testUser(t, "s3cret-pass", true))

	_, _, err := svc.Login(context.Background(), LoginRequest{
		Email:    "alice@example.com",
		Password: "wrong",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestLogin_UnknownEmail(t *testing.T) {
	svc := newService(testUser(t, "s3cret-pass", true))

	_, _, err := svc.Login(context.Background(), LoginRequest{
		Email:    "nobody@example.com",
		Password: "s3cret-pass",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestLogin_BlockedAccount(t *testing.T) {
	svc := newService(testUser(t, "s3cret-pass", false))

	_, _, err := svc.Login(context.Background(), LoginRequest{
		Email:    "alice@example.com",
		Password: "s3cret-pass",
	})
	assert.ErrorIs(t, err, domain.ErrAccountInactive)
}

func TestLogin_Validation(t *testing.T) {
	svc := newService(nil)

	_, _, err := svc.Login(context.Background(), LoginRequest{Email: "not-an-email", Password: "x"})
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestGenerateToken_Expiry(t *testing.T) {
	u := testUser(t, "s3cret-pass", true)
	issued := time.Date(2026, time.March, 1, 12, 0, 0, 0, time.UTC)
	svc := newService(u, WithClock(func() time.Time { return issued }))

	token, err := svc.GenerateToken(u)
	require.NoError(t, err)

	parsed, err := jwt.Parse(token, func(*jwt.Token) (any, error) {
		return []byte(testSecret), nil
	}, jwt.WithValidMethods([]string{"HS256"}), jwt.WithTimeFunc(func() time.Time { return issued }))
	require.NoError(t, err)

	claims := parsed.Claims.(jwt.MapClaims)
	assert.EqualValues(t, issued.Add(time.Hour).Unix(), claims["exp"])
}
