// Package dashboard aggregates a user's transfer activity for the home view.
package dashboard

import (
	"context"
	"log/slog"
	"time"

	"github.com/amirasaad/transfeo/pkg/dto"
	"github.com/amirasaad/transfeo/pkg/repository"
	"github.com/google/uuid"
)

const recentTransferCount = 5

// French short month labels, matching the chart the frontend renders.
var monthNames = [12]string{
	"Jan", "Fév", "Mar", "Avr", "Mai", "Juin",
	"Juil", "Août", "Sep", "Oct", "Nov", "Déc",
}

// View is the dashboard payload: the current year's monthly chart, the latest
// sent transfers and the yearly total.
type View struct {
	TransfersData   []dto.MonthActivity  `json:"transfers_data"`
	RecentTransfers []dto.RecentTransfer `json:"recent_transfers"`
	TotalTransfers  int64                `json:"total_transfers"`
}

// Service builds dashboard views.
type Service struct {
	uow    repository.UnitOfWork
	logger *slog.Logger
	now    func() time.Time
}

// Option configures a Service.
type Option func(*Service)

// WithClock injects the time source that decides the current year.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// New creates a dashboard service.
func New(uow repository.UnitOfWork, logger *slog.Logger, opts ...Option) *Service {
	s := &Service{uow: uow, logger: logger, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// View returns the dashboard for the given user. All twelve months are always
// present, zero-filled when the user sent nothing.
func (s *Service) View(ctx context.Context, userID uuid.UUID) (*View, error) {
	year := s.now().Year()
	exchanges := s.uow.Exchanges()

	counts, err := exchanges.MonthlyCountsBySender(ctx, userID, year)
	if err != nil {
		return nil, err
	}
	months := make([]dto.MonthActivity, 12)
	for i := range months {
		months[i] = dto.MonthActivity{Name: monthNames[i], Transfers: counts[i]}
	}

	recent, err := exchanges.RecentBySender(ctx, userID, recentTransferCount)
	if err != nil {
		return nil, err
	}
	recentTransfers := make([]dto.RecentTransfer, 0, len(recent))
	for _, e := range recent {
		recentTransfers = append(recentTransfers, dto.RecentTransfer{
			ID:        e.ID,
			Recipient: e.Receiver.Name,
			Amount:    e.Amount,
			Currency:  e.Currency,
			Date:      e.CreatedAt.Format("2006-01-02"),
			Status:    "Terminé",
		})
	}

	total, err := exchanges.CountBySender(ctx, userID, year)
	if err != nil {
		return nil, err
	}

	return &View{
		TransfersData:   months,
		RecentTransfers: recentTransfers,
		TotalTransfers:  total,
	}, nil
}
