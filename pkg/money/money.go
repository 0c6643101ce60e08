// Package money provides a monetary value object stored as an integer number
// of cents, plus currency-aware conversion helpers.
//
// Invariants:
//   - Amounts are stored in the smallest currency unit (cents), never floats.
//   - Currency codes are ISO 4217: exactly three uppercase letters.
//   - Arithmetic requires matching currencies.
package money

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// EUR is the pivot currency of the system; account balances are EUR-denominated.
const EUR = "EUR"

var (
	// ErrInvalidCurrencyCode is returned when a currency code is not three uppercase letters.
	ErrInvalidCurrencyCode = errors.New("invalid currency code")
	// ErrCurrencyMismatch is returned by arithmetic on values of different currencies.
	ErrCurrencyMismatch = errors.New("currency mismatch")
)

// Money is an immutable amount of a single currency, held in cents.
type Money struct {
	cents    int64
	currency string
}

// New builds Money from a main-unit amount (e.g. 12.34 EUR), rounding half-up
// to the cent.
func New(amount float64, currency string) (Money, error) {
	if !ValidCode(currency) {
		return Money{}, fmt.Errorf("%w: %q", ErrInvalidCurrencyCode, currency)
	}
	cents := decimal.NewFromFloat(amount).Mul(decimal.NewFromInt(100)).Round(0).IntPart()
	return Money{cents: cents, currency: currency}, nil
}

// FromCents builds Money directly from a cents amount, as read from the store.
func FromCents(cents int64, currency string) Money {
	return Money{cents: cents, currency: currency}
}

// Cents returns the amount in the smallest currency unit.
func (m Money) Cents() int64 { return m.cents }

// Currency returns the ISO 4217 code.
func (m Money) Currency() string { return m.currency }

// Float returns the amount in main units. For display and DTOs only; never
// feed it back into arithmetic.
func (m Money) Float() float64 {
	f, _ := decimal.NewFromInt(m.cents).Div(decimal.NewFromInt(100)).Float64()
	return f
}

// IsNegative reports whether the amount is below zero.
func (m Money) IsNegative() bool { return m.cents < 0 }

// Add returns m + other. Currencies must match.
func (m Money) Add(other Money) (Money, error) {
	if m.currency != other.currency {
		return Money{}, ErrCurrencyMismatch
	}
	return Money{cents: m.cents + other.cents, currency: m.currency}, nil
}

// Sub returns m - other. Currencies must match.
func (m Money) Sub(other Money) (Money, error) {
	if m.currency != other.currency {
		return Money{}, ErrCurrencyMismatch
	}
	return Money{cents: m.cents - other.cents, currency: m.currency}, nil
}

// Less reports whether m is strictly smaller than other, ignoring currency.
// Callers compare only values they know share a currency.
func (m Money) Less(other Money) bool { return m.cents < other.cents }

// Convert applies an exchange-rate multiplier and returns the value in the
// target currency, rounded half-up to the cent at this point only.
func (m Money) Convert(rate float64, toCurrency string) Money {
	cents := decimal.NewFromInt(m.cents).
		Mul(decimal.NewFromFloat(rate)).
		Round(0).
		IntPart()
	return Money{cents: cents, currency: toCurrency}
}

// String formats the amount with two decimals and its currency code.
func (m Money) String() string {
	return fmt.Sprintf(
		"%s %s",
		decimal.NewFromInt(m.cents).Div(decimal.NewFromInt(100)).StringFixed(2),
		m.currency,
	)
}

// ValidCode reports whether code is exactly three uppercase ASCII letters.
func ValidCode(code string) bool {
	if len(code) != 3 {
		return false
	}
	for i := 0; i < 3; i++ {
		if code[i] < 'A' || code[i] > 'Z' {
			return false
		}
	}
	return true
}

// Round2 rounds a main-unit amount half-up to two decimal places. Used where
// the API reports converted amounts without building a Money value.
func Round2(amount float64) float64 {
	f, _ := decimal.NewFromFloat(amount).Round(2).Float64()
	return f
}
