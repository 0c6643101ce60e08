// Package cache defines the rate-table cache port shared by the in-memory and
// Redis backends.
package cache

import (
	"context"
	"time"

	"github.com/amirasaad/transfeo/pkg/provider"
)

// RatesCache stores fetched rate tables keyed by base currency (plus symbol
// set when a partial table was requested). A miss is (nil, nil), not an error;
// backends reserve errors for infrastructure failures so callers can fall
// through to the live source.
type RatesCache interface {
	Get(ctx context.Context, key string) (*provider.RateTable, error)
	Set(ctx context.Context, key string, table *provider.RateTable, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}
