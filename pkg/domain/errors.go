package domain

import (
	"errors"
	"fmt"

	"github.com/amirasaad/transfeo/pkg/money"
)

// Business-rule violations. These are expected, user-recoverable conditions
// returned as values, never panics.
var (
	// ErrValidation is returned for malformed request input.
	ErrValidation = errors.New("validation error")
	// ErrRecipientNotFound is returned when an IBAN resolves to no account.
	ErrRecipientNotFound = errors.New("no user found with this IBAN")
	// ErrSelfTransfer is returned when the recipient account is the sender.
	ErrSelfTransfer = errors.New("cannot transfer money to yourself")
	// ErrInsufficientBalance is returned when the sender cannot cover the EUR amount.
	ErrInsufficientBalance = errors.New("insufficient balance")
	// ErrRateUnavailable is returned by the rate provider when the live source
	// is unreachable or returned malformed data.
	ErrRateUnavailable = errors.New("exchange rate unavailable")
	// ErrUserNotFound is returned when a user id resolves to no account.
	ErrUserNotFound = errors.New("user not found")
	// ErrAlreadyExists is returned on unique constraint conflicts, e.g. a
	// duplicate email or transfer reference.
	ErrAlreadyExists = errors.New("already exists")
	// ErrInvalidCredentials is returned for a wrong email or password. The two
	// cases are deliberately indistinguishable.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrAccountInactive is returned when a blocked user tries to authenticate
	// or transact.
	ErrAccountInactive = errors.New("account is blocked")
	// ErrSelfModification is returned when an admin targets their own account.
	ErrSelfModification = errors.New("cannot modify your own account")
	// ErrTransactionFailure is an infrastructural fault during the atomic
	// commit. The whole operation rolled back; safe to retry.
	ErrTransactionFailure = errors.New("transfer could not be completed, please retry")
)

// InsufficientBalanceError carries the sender's current balance for user
// feedback. It matches ErrInsufficientBalance under errors.Is.
type InsufficientBalanceError struct {
	Balance money.Money
}

func (e *InsufficientBalanceError) Error() string {
	return fmt.Sprintf("insufficient balance: current balance is %s", e.Balance)
}

func (e *InsufficientBalanceError) Is(target error) bool {
	return target == ErrInsufficientBalance
}
