package repository

import (
	"context"

	"github.com/amirasaad/transfeo/infra/repository/model"
	"github.com/amirasaad/transfeo/pkg/domain"
	"github.com/amirasaad/transfeo/pkg/dto"
	"github.com/amirasaad/transfeo/pkg/money"
	"github.com/amirasaad/transfeo/pkg/repository"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type userRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a user repository over the given session.
func NewUserRepository(db *gorm.DB) repository.UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Get(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	var u model.User
	if err := r.db.WithContext(ctx).First(&u, "id = ?", id).Error; err != nil {
		return nil, mapError(err)
	}
	return mapUserToDomain(&u), nil
}

func (r *userRepository) GetByIBAN(ctx context.Context, iban string) (*domain.User, error) {
	var u model.User
	if err := r.db.WithContext(ctx).Where("iban = ?", iban).First(&u).Error; err != nil {
		return nil, mapError(err)
	}
	return mapUserToDomain(&u), nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	var u model.User
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&u).Error; err != nil {
		return nil, mapError(err)
	}
	return mapUserToDomain(&u), nil
}

func (r *userRepository) GetForUpdate(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	var u model.User
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&u, "id = ?", id).Error
	if err != nil {
		return nil, mapError(err)
	}
	return mapUserToDomain(&u), nil
}

func (r *userRepository) Create(ctx context.Context, u *domain.User) error {
	row := &model.User{
		ID:           u.ID,
		Name:         u.Name,
		Email:        u.Email,
		IBAN:         u.IBAN,
		BalanceCents: u.Balance.Cents(),
		Role:         string(u.Role),
		Active:       u.Active,
		Password:     u.PasswordHash,
	}
	return mapError(r.db.WithContext(ctx).Create(row).Error)
}

func (r *userRepository) UpdateBalance(ctx context.Context, id uuid.UUID, balanceCents int64) error {
	return r.updateColumn(ctx, id, "balance_cents", balanceCents)
}

func (r *userRepository) SetRole(ctx context.Context, id uuid.UUID, role domain.Role) error {
	return r.updateColumn(ctx, id, "role", string(role))
}

func (r *userRepository) SetActive(ctx context.Context, id uuid.UUID, active bool) error {
	return r.updateColumn(ctx, id, "active", active)
}

func (r *userRepository) updateColumn(ctx context.Context, id uuid.UUID, column string, value any) error {
	res := r.db.WithContext(ctx).Model(&model.User{}).
		Where("id = ?", id).
		Update(column, value)
	if res.Error != nil {
		return mapError(res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

type userListRow struct {
	model.User
	SentCount     int64
	ReceivedCount int64
}

func (r *userRepository) List(ctx context.Context, q repository.ListQuery) (*dto.Page[dto.UserRead], error) {
	page, perPage := normalizePage(q)

	base := r.db.WithContext(ctx).Model(&model.User{})
	if q.Search != "" {
		pattern := "%" + q.Search + "%"
		base = base.Where(
			"users.name ILIKE ? OR users.email ILIKE ? OR users.iban ILIKE ?",
			pattern, pattern, pattern,
		)
	}

	var total int64
	if err := base.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, mapError(err)
	}

	var rows []userListRow
	err := base.
		Select(`users.*,
			(SELECT count(*) FROM exchanges WHERE exchanges.sender_id = users.id) AS sent_count,
			(SELECT count(*) FROM exchanges WHERE exchanges.receiver_id = users.id) AS received_count`).
		Order("users.created_at DESC").
		Offset((page - 1) * perPage).
		Limit(perPage).
		Scan(&rows).Error
	if err != nil {
		return nil, mapError(err)
	}

	items := make([]dto.UserRead, 0, len(rows))
	for _, row := range rows {
		items = append(items, dto.UserRead{
			ID:            row.ID,
			Name:          row.Name,
			Email:         row.Email,
			IBAN:          row.IBAN,
			Balance:       money.FromCents(row.BalanceCents, money.EUR).Float(),
			Role:          row.Role,
			Blocked:       !row.Active,
			CreatedAt:     row.CreatedAt,
			SentCount:     row.SentCount,
			ReceivedCount: row.ReceivedCount,
		})
	}
	return &dto.Page[dto.UserRead]{Items: items, Total: total, Page: page, PerPage: perPage}, nil
}

func mapUserToDomain(u *model.User) *domain.User {
	return &domain.User{
		ID:           u.ID,
		Name:         u.Name,
		Email:        u.Email,
		IBAN:         u.IBAN,
		Balance:      money.FromCents(u.BalanceCents, money.EUR),
		Role:         domain.Role(u.Role),
		Active:       u.Active,
		PasswordHash: u.Password,
		CreatedAt:    u.CreatedAt,
	}
}

var _ repository.UserRepository = (*userRepository)(nil)
