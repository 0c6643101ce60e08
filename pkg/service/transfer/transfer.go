// Package transfer implements the money transfer engine: recipient
// resolution, currency conversion, balance validation and the atomic
// debit/credit commit.
package transfer

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/amirasaad/transfeo/pkg/domain"
	"github.com/amirasaad/transfeo/pkg/money"
	"github.com/amirasaad/transfeo/pkg/repository"
	"github.com/amirasaad/transfeo/pkg/service/rates"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// RateResolver is the slice of the rate service the engine needs.
type RateResolver interface {
	GetRate(ctx context.Context, from, to string) (float64, error)
}

// Request is a transfer submission as entered by the sender.
type Request struct {
	Amount        float64 `json:"amount" validate:"required,gt=0"`
	Currency      string  `json:"currency" validate:"required,len=3,alpha"`
	RecipientIBAN string  `json:"recipient_iban" validate:"required,min=15"`
	Message       string  `json:"message" validate:"omitempty,max=500"`
	// Reference is an optional idempotency token; resubmitting the same token
	// aborts the duplicate commit instead of moving money twice.
	Reference string `json:"reference" validate:"omitempty,max=64"`
}

// Result confirms a committed transfer.
type Result struct {
	ID            uuid.UUID `json:"id"`
	RecipientName string    `json:"recipient_name"`
	Amount        float64   `json:"amount"`
	Currency      string    `json:"currency"`
	Rate          float64   `json:"exchange_rate"`
	AmountEUR     float64   `json:"amount_eur"`
	FallbackMode  bool      `json:"fallback_mode"`
	SenderBalance float64   `json:"sender_balance"`
}

// Service executes transfers. It holds no per-request state; every call is
// processed independently given the sender identity and the request.
type Service struct {
	uow      repository.UnitOfWork
	rates    RateResolver
	logger   *slog.Logger
	validate *validator.Validate
	fallback bool
}

// New creates a transfer engine. enableFallback controls whether a live-rate
// failure degrades to the static table or aborts the transfer.
func New(uow repository.UnitOfWork, rateResolver RateResolver, logger *slog.Logger, enableFallback bool) *Service {
	return &Service{
		uow:      uow,
		rates:    rateResolver,
		logger:   logger,
		validate: validator.New(),
		fallback: enableFallback,
	}
}

// Execute runs the transfer state machine for one request. Terminal states
// are Committed (nil error, Result) and Aborted (error, no side effects).
func (s *Service) Execute(ctx context.Context, senderID uuid.UUID, req Request) (*Result, error) {
	req.Currency = strings.ToUpper(req.Currency)
	if err := s.validate.Struct(req); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	amount, err := money.New(req.Amount, req.Currency)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	// Resolve the recipient up front so bad IBANs fail before any rate call.
	recipient, err := s.uow.Users().GetByIBAN(ctx, req.RecipientIBAN)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrRecipientNotFound
		}
		return nil, fmt.Errorf("%w: %v", domain.ErrTransactionFailure, err)
	}
	if recipient.ID == senderID {
		return nil, domain.ErrSelfTransfer
	}

	// The rate lookup is I/O-bound and must complete before any account row
	// is locked.
	rate, fallbackMode, err := s.resolveEURRate(ctx, req.Currency)
	if err != nil {
		return nil, err
	}

	exchange := &domain.Exchange{
		ID:         uuid.New(),
		SenderID:   senderID,
		ReceiverID: recipient.ID,
		Amount:     amount,
		Rate:       rate,
		Message:    req.Message,
		Reference:  req.Reference,
	}
	eurAmount := exchange.EURAmount()

	var result *Result
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		users := uow.Users()

		// Lock both rows in ascending id order so two opposite-direction
		// transfers cannot deadlock.
		first, second := senderID, recipient.ID
		if bytes.Compare(second[:], first[:]) < 0 {
			first, second = second, first
		}
		locked := make(map[uuid.UUID]*domain.User, 2)
		for _, id := range []uuid.UUID{first, second} {
			u, err := users.GetForUpdate(ctx, id)
			if err != nil {
				return err
			}
			locked[id] = u
		}
		sender, receiver := locked[senderID], locked[recipient.ID]

		if sender.Balance.Less(eurAmount) {
			return &domain.InsufficientBalanceError{Balance: sender.Balance}
		}

		if err := uow.Exchanges().Create(ctx, exchange); err != nil {
			return err
		}

		newSenderBalance, err := sender.Balance.Sub(eurAmount)
		if err != nil {
			return err
		}
		newReceiverBalance, err := receiver.Balance.Add(eurAmount)
		if err != nil {
			return err
		}
		if err := users.UpdateBalance(ctx, sender.ID, newSenderBalance.Cents()); err != nil {
			return err
		}
		if err := users.UpdateBalance(ctx, receiver.ID, newReceiverBalance.Cents()); err != nil {
			return err
		}

		result = &Result{
			ID:            exchange.ID,
			RecipientName: receiver.Name,
			Amount:        req.Amount,
			Currency:      req.Currency,
			Rate:          rate,
			AmountEUR:     eurAmount.Float(),
			FallbackMode:  fallbackMode,
			SenderBalance: newSenderBalance.Float(),
		}
		return nil
	})
	if err != nil {
		var insufficient *domain.InsufficientBalanceError
		if errors.As(err, &insufficient) {
			return nil, insufficient
		}
		s.logger.Error("transfer aborted",
			"sender_id", senderID, "recipient_iban", req.RecipientIBAN, "error", err)
		return nil, fmt.Errorf("%w: %v", domain.ErrTransactionFailure, err)
	}

	s.logger.Info("transfer committed",
		"exchange_id", result.ID,
		"sender_id", senderID,
		"receiver_id", recipient.ID,
		"amount", req.Amount,
		"currency", req.Currency,
		"rate", rate,
		"fallback_mode", fallbackMode,
	)
	return result, nil
}

// resolveEURRate determines the multiplier into EUR. A live failure degrades
// to the static table when fallback is enabled; the rate actually used is the
// one recorded in the ledger, whichever source produced it.
func (s *Service) resolveEURRate(ctx context.Context, currency string) (rate float64, fallbackMode bool, err error) {
	if currency == money.EUR {
		return 1.0, false, nil
	}

	rate, err = s.rates.GetRate(ctx, currency, money.EUR)
	if err == nil {
		return rate, false, nil
	}
	if !s.fallback {
		return 0, false, err
	}

	rate, known := rates.FallbackEURRate(currency)
	if !known {
		s.logger.Warn("currency missing from fallback table, degrading to 1.0", "currency", currency)
	} else {
		s.logger.Warn("live rate unavailable, using static fallback rate",
			"currency", currency, "rate", rate, "error", err)
	}
	return rate, true, nil
}
