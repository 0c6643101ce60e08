package admin

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/amirasaad/transfeo/pkg/domain"
	"github.com/amirasaad/transfeo/pkg/dto"
	"github.com/amirasaad/transfeo/pkg/money"
	"github.com/amirasaad/transfeo/pkg/repository"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeUsers struct {
	users map[uuid.UUID]*domain.User
}

func (f *fakeUsers) Get(_ context.Context, id uuid.UUID) (*domain.User, error) {
	if u, ok := f.users[id]; ok {
		return u, nil
	}
	return nil, domain.ErrUserNotFound
}

func (f *fakeUsers) GetByIBAN(context.Context, string) (*domain.User, error) {
	return nil, domain.ErrUserNotFound
}
func (f *fakeUsers) GetByEmail(context.Context, string) (*domain.User, error) {
	return nil, domain.ErrUserNotFound
}
func (f *fakeUsers) GetForUpdate(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	return f.Get(ctx, id)
}
func (f *fakeUsers) Create(context.Context, *domain.User) error            { return nil }
func (f *fakeUsers) UpdateBalance(context.Context, uuid.UUID, int64) error { return nil }

func (f *fakeUsers) SetRole(_ context.Context, id uuid.UUID, role domain.Role) error {
	u, ok := f.users[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	u.Role = role
	return nil
}

func (f *fakeUsers) SetActive(_ context.Context, id uuid.UUID, active bool) error {
	u, ok := f.users[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	u.Active = active
	return nil
}

func (f *fakeUsers) List(context.Context, repository.ListQuery) (*dto.Page[dto.UserRead], error) {
	items := make([]dto.UserRead, 0, len(f.users))
	for _, u := range f.users {
		items = append(items, dto.UserRead{ID: u.ID, Name: u.Name})
	}
	return &dto.Page[dto.UserRead]{Items: items, Total: int64(len(items)), Page: 1, PerPage: 20}, nil
}

type fakeExchanges struct {
	entries []dto.ExchangeEntry
	stats   *dto.ExchangeStats
}

func (f *fakeExchanges) Create(context.Context, *domain.Exchange) error { return nil }

func (f *fakeExchanges) ListForUser(context.Context, uuid.UUID) ([]dto.ExchangeEntry, error) {
	return f.entries, nil
}

func (f *fakeExchanges) RecentBySender(context.Context, uuid.UUID, int) ([]dto.ExchangeRead, error) {
	return nil, errors.New("not implemented")
}
func (f *fakeExchanges) MonthlyCountsBySender(context.Context, uuid.UUID, int) ([12]int64, error) {
	return [12]int64{}, errors.New("not implemented")
}
func (f *fakeExchanges) CountBySender(context.Context, uuid.UUID, int) (int64, error) {
	return 0, errors.New("not implemented")
}
func (f *fakeExchanges) Search(context.Context, repository.ListQuery) (*dto.Page[dto.ExchangeRead], error) {
	return &dto.Page[dto.ExchangeRead]{Items: []dto.ExchangeRead{}, Page: 1, PerPage: 20}, nil
}
func (f *fakeExchanges) Stats(context.Context, time.Time) (*dto.ExchangeStats, error) {
	return f.stats, nil
}

type fakeUoW struct {
	users     *fakeUsers
	exchanges *fakeExchanges
}

func (f *fakeUoW) Do(_ context.Context, fn func(repository.UnitOfWork) error) error {
	return fn(f)
}
func (f *fakeUoW) Users() repository.UserRepository         { return f.users }
func (f *fakeUoW) Exchanges() repository.ExchangeRepository { return f.exchanges }

func newService(users ...*domain.User) (*Service, *fakeUoW) {
	f := &fakeUoW{
		users:     &fakeUsers{users: make(map[uuid.UUID]*domain.User)},
		exchanges: &fakeExchanges{stats: &dto.ExchangeStats{TotalExchanges: 7}},
	}
	for _, u := range users {
		f.users.users[u.ID] = u
	}
	return New(f, slog.New(slog.NewTextHandler(io.Discard, nil))), f
}

func TestToggleAdmin(t *testing.T) {
	admin := &domain.User{ID: uuid.New(), Role: domain.RoleAdmin, Active: true}
	target := &domain.User{ID: uuid.New(), Role: domain.RoleUser, Active: true}
	svc, _ := newService(admin, target)
	ctx := context.Background()

	role, err := svc.ToggleAdmin(ctx, admin.ID, target.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.RoleAdmin, role)
	assert.Equal(t, domain.RoleAdmin, target.Role)

	role, err = svc.ToggleAdmin(ctx, admin.ID, target.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.RoleUser, role)
	assert.Equal(t, domain.RoleUser, target.Role)
}

func TestToggleAdmin_Self(t *testing.T) {
	admin := &domain.User{ID: uuid.New(), Role: domain.RoleAdmin, Active: true}
	svc, _ := newService(admin)

	_, err := svc.ToggleAdmin(context.Background(), admin.ID, admin.ID)
	assert.ErrorIs(t, err, domain.ErrSelfModification)
	assert.Equal(t, domain.RoleAdmin, admin.Role)
}

func TestToggleAdmin_UnknownTarget(t *testing.T) {
	admin := &domain.User{ID: uuid.New(), Role: domain.RoleAdmin, Active: true}
	svc, _ := newService(admin)

	_, err := svc.ToggleAdmin(context.Background(), admin.ID, uuid.New())
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestToggleBlock(t *testing.T) {
	admin := &domain.User{ID: uuid.New(), Role: domain.RoleAdmin, Active: true}
	target := &domain.User{ID: uuid.New(), Role: domain.RoleUser, Active: true}
	svc, _ := newService(admin, target)
	ctx := context.Background()

	blocked, err := svc.ToggleBlock(ctx, admin.ID, target.ID)
	require.NoError(t, err)
	assert.True(t, blocked)
	assert.False(t, target.Active)

	blocked, err = svc.ToggleBlock(ctx, admin.ID, target.ID)
	require.NoError(t, err)
	assert.False(t, blocked)
	assert.True(t, target.Active)
}

func TestToggleBlock_Self(t *testing.T) {
	admin := &domain.User{ID: uuid.New(), Role: domain.RoleAdmin, Active: true}
	svc, _ := newService(admin)

	_, err := svc.ToggleBlock(context.Background(), admin.ID, admin.ID)
	assert.ErrorIs(t, err, domain.ErrSelfModification)
	assert.True(t, admin.Active)
}

func TestUserDetails(t *testing.T) {
	target := &domain.User{
		ID:      uuid.New(),
		Name:    "Bob",
		Email:   "bob@example.com",
		IBAN:    "FR7612345",
		Balance: money.FromCents(12345, money.EUR),
		Role:    domain.RoleUser,
		Active:  false,
	}
	svc, uow := newService(target)
	uow.exchanges.entries = []dto.ExchangeEntry{{Direction: "sent", OtherUser: "Alice"}}

	details, err := svc.UserDetails(context.Background(), target.ID)
	require.NoError(t, err)
	assert.Equal(t, "Bob", details.User.Name)
	assert.InDelta(t, 123.45, details.User.Balance, 1e-9)
	assert.True(t, details.User.Blocked)
	require.Len(t, details.Exchanges, 1)
	assert.Equal(t, "Alice", details.Exchanges[0].OtherUser)
}

func TestStats(t *testing.T) {
	svc, _ := newService()

	stats, err := svc.Stats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(7), stats.TotalExchanges)
}
