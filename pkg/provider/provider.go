// Package provider defines the outbound port to live exchange-rate sources.
package provider

import (
	"context"
	"time"
)

// RateTable is one fetched set of rates against a base currency, with the
// expiry stamp the cache uses. Rates map currency code to units of that
// currency per one unit of the base.
type RateTable struct {
	Base      string             `json:"base"`
	Rates     map[string]float64 `json:"rates"`
	FetchedAt time.Time          `json:"fetched_at"`
	ExpiresAt time.Time          `json:"expires_at"`
}

// Expired reports whether the table is past its expiry at the given instant.
func (t *RateTable) Expired(now time.Time) bool {
	return now.After(t.ExpiresAt)
}

// RateSource fetches rate tables and currency symbols from a live API.
// Implementations must treat non-2xx responses and malformed payloads as
// errors and honor ctx cancellation.
type RateSource interface {
	// FetchRates returns all rates against base. An empty symbols slice asks
	// for the source's full table.
	FetchRates(ctx context.Context, base string, symbols []string) (map[string]float64, error)
	// FetchSymbols returns the currency codes the source supports, mapped to
	// display names.
	FetchSymbols(ctx context.Context) (map[string]string, error)
	// Name identifies the source in logs and ledger records.
	Name() string
}
