package repository

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/amirasaad/transfeo/infra/repository/model"
	"github.com/amirasaad/transfeo/pkg/domain"
	"github.com/amirasaad/transfeo/pkg/dto"
	"github.com/amirasaad/transfeo/pkg/money"
	"github.com/amirasaad/transfeo/pkg/repository"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type exchangeRepository struct {
	db *gorm.DB
}

// NewExchangeRepository creates an exchange repository over the given session.
func NewExchangeRepository(db *gorm.DB) repository.ExchangeRepository {
	return &exchangeRepository{db: db}
}

func (r *exchangeRepository) Create(ctx context.Context, e *domain.Exchange) error {
	row := &model.Exchange{
		ID:          e.ID,
		SenderID:    e.SenderID,
		ReceiverID:  e.ReceiverID,
		AmountCents: e.Amount.Cents(),
		Currency:    e.Amount.Currency(),
		Rate:        e.Rate,
		Message:     e.Message,
	}
	if e.Reference != "" {
		ref := e.Reference
		row.Reference = &ref
	}
	if err := r.db.WithContext(ctx).Create(row).Error; err != nil {
		return mapError(err)
	}
	e.CreatedAt = row.CreatedAt
	return nil
}

// exchangeRow is the joined shape shared by the list queries.
type exchangeRow struct {
	ID            uuid.UUID
	SenderID      uuid.UUID
	ReceiverID    uuid.UUID
	AmountCents   int64
	Currency      string
	Rate          float64
	Message       string
	CreatedAt     time.Time
	SenderName    string
	SenderEmail   string
	ReceiverName  string
	ReceiverEmail string
}

const exchangeRowSelect = `exchanges.id, exchanges.sender_id, exchanges.receiver_id,
	exchanges.amount_cents, exchanges.currency, exchanges.rate, exchanges.message,
	exchanges.created_at,
	s.name AS sender_name, s.email AS sender_email,
	r.name AS receiver_name, r.email AS receiver_email`

func (r *exchangeRepository) joined(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Table("exchanges").
		Joins("JOIN users s ON s.id = exchanges.sender_id").
		Joins("JOIN users r ON r.id = exchanges.receiver_id")
}

func (r *exchangeRepository) ListForUser(ctx context.Context, userID uuid.UUID) ([]dto.ExchangeEntry, error) {
	var rows []exchangeRow
	err := r.joined(ctx).
		Select(exchangeRowSelect).
		Where("exchanges.sender_id = ? OR exchanges.receiver_id = ?", userID, userID).
		Order("exchanges.created_at DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, mapError(err)
	}

	entries := make([]dto.ExchangeEntry, 0, len(rows))
	for _, row := range rows {
		entry := dto.ExchangeEntry{
			ID:        row.ID,
			Amount:    money.FromCents(row.AmountCents, row.Currency).Float(),
			Currency:  row.Currency,
			Rate:      row.Rate,
			Message:   row.Message,
			CreatedAt: row.CreatedAt,
		}
		if row.SenderID == userID {
			entry.Direction = "sent"
			entry.OtherUser = row.ReceiverName
			entry.OtherUserEmail = row.ReceiverEmail
		} else {
			entry.Direction = "received"
			entry.OtherUser = row.SenderName
			entry.OtherUserEmail = row.SenderEmail
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

func (r *exchangeRepository) RecentBySender(ctx context.Context, senderID uuid.UUID, limit int) ([]dto.ExchangeRead, error) {
	if limit < 1 {
		limit = 5
	}
	var rows []exchangeRow
	err := r.joined(ctx).
		Select(exchangeRowSelect).
		Where("exchanges.sender_id = ?", senderID).
		Order("exchanges.created_at DESC").
		Limit(limit).
		Scan(&rows).Error
	if err != nil {
		return nil, mapError(err)
	}
	return mapExchangeRows(rows), nil
}

func (r *exchangeRepository) MonthlyCountsBySender(ctx context.Context, senderID uuid.UUID, year int) ([12]int64, error) {
	var counts [12]int64
	from := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(1, 0, 0)

	var rows []struct {
		Month int
		Count int64
	}
	err := r.db.WithContext(ctx).Raw(
		`SELECT EXTRACT(MONTH FROM created_at)::int AS month, count(*) AS count
		 FROM exchanges
		 WHERE sender_id = ? AND created_at >= ? AND created_at < ?
		 GROUP BY 1`,
		senderID, from, to,
	).Scan(&rows).Error
	if err != nil {
		return counts, mapError(err)
	}
	for _, row := range rows {
		if row.Month >= 1 && row.Month <= 12 {
			counts[row.Month-1] = row.Count
		}
	}
	return counts, nil
}

func (r *exchangeRepository) CountBySender(ctx context.Context, senderID uuid.UUID, year int) (int64, error) {
	from := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(1, 0, 0)

	var count int64
	err := r.db.WithContext(ctx).Model(&model.Exchange{}).
		Where("sender_id = ? AND created_at >= ? AND created_at < ?", senderID, from, to).
		Count(&count).Error
	if err != nil {
		return 0, mapError(err)
	}
	return count, nil
}

func (r *exchangeRepository) Search(ctx context.Context, q repository.ListQuery) (*dto.Page[dto.ExchangeRead], error) {
	page, perPage := normalizePage(q)

	base := r.joined(ctx)
	if q.Search != "" {
		pattern := "%" + q.Search + "%"
		cond := r.db.Where(
			"s.name ILIKE ? OR s.email ILIKE ? OR r.name ILIKE ? OR r.email ILIKE ? OR exchanges.currency = ?",
			pattern, pattern, pattern, pattern, strings.ToUpper(q.Search),
		)
		if amount, err := strconv.ParseFloat(q.Search, 64); err == nil {
			cond = cond.Or("exchanges.amount_cents = ?", int64(amount*100))
		}
		base = base.Where(cond)
	}

	var total int64
	if err := base.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, mapError(err)
	}

	var rows []exchangeRow
	err := base.
		Select(exchangeRowSelect).
		Order("exchanges.created_at DESC").
		Offset((page - 1) * perPage).
		Limit(perPage).
		Scan(&rows).Error
	if err != nil {
		return nil, mapError(err)
	}
	return &dto.Page[dto.ExchangeRead]{
		Items:   mapExchangeRows(rows),
		Total:   total,
		Page:    page,
		PerPage: perPage,
	}, nil
}

func (r *exchangeRepository) Stats(ctx context.Context, now time.Time) (*dto.ExchangeStats, error) {
	startOfDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	var row struct {
		Total         int64
		TotalEurCents float64
		Today         int64
	}
	err := r.db.WithContext(ctx).Raw(
		`SELECT count(*) AS total,
			COALESCE(SUM(amount_cents * rate), 0) AS total_eur_cents,
			count(*) FILTER (WHERE created_at >= ?) AS today
		 FROM exchanges`,
		startOfDay,
	).Scan(&row).Error
	if err != nil {
		return nil, mapError(err)
	}
	return &dto.ExchangeStats{
		TotalExchanges: row.Total,
		TotalAmountEUR: money.Round2(row.TotalEurCents / 100),
		TodayExchanges: row.Today,
	}, nil
}

func mapExchangeRows(rows []exchangeRow) []dto.ExchangeRead {
	items := make([]dto.ExchangeRead, 0, len(rows))
	for _, row := range rows {
		amount := money.FromCents(row.AmountCents, row.Currency)
		items = append(items, dto.ExchangeRead{
			ID:        row.ID,
			Sender:    dto.ExchangeParty{ID: row.SenderID, Name: row.SenderName, Email: row.SenderEmail},
			Receiver:  dto.ExchangeParty{ID: row.ReceiverID, Name: row.ReceiverName, Email: row.ReceiverEmail},
			Amount:    amount.Float(),
			Currency:  row.Currency,
			Rate:      row.Rate,
			AmountEUR: amount.Convert(row.Rate, money.EUR).Float(),
			Message:   row.Message,
			CreatedAt: row.CreatedAt,
		})
	}
	return items
}

var _ repository.ExchangeRepository = (*exchangeRepository)(nil)
