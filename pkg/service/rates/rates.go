// Package rates resolves conversion multipliers between ISO currency codes,
// preferring the live source and degrading to cached tables. EUR is the pivot
// base: a single EUR table answers every pair.
package rates

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"sync"
	"time"

	"github.com/amirasaad/transfeo/config"
	"github.com/amirasaad/transfeo/pkg/cache"
	"github.com/amirasaad/transfeo/pkg/domain"
	"github.com/amirasaad/transfeo/pkg/money"
	"github.com/amirasaad/transfeo/pkg/provider"
	"golang.org/x/sync/singleflight"
)

// Service caches live rate tables and computes cross rates through the EUR
// pivot. Concurrent refreshes of one cache key collapse to a single upstream
// fetch.
type Service struct {
	source provider.RateSource
	cache  cache.RatesCache
	logger *slog.Logger
	cfg    *config.Exchange
	now    func() time.Time
	group  singleflight.Group

	symbolsMu  sync.RWMutex
	symbols    map[string]string
	symbolsExp time.Time
}

// Option configures a Service.
type Option func(*Service)

// WithClock injects the time source, for deterministic expiry in tests.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// New creates a rate service over the given source and cache.
func New(
	source provider.RateSource,
	ratesCache cache.RatesCache,
	logger *slog.Logger,
	cfg *config.Exchange,
	opts ...Option,
) *Service {
	s := &Service{
		source: source,
		cache:  ratesCache,
		logger: logger,
		cfg:    cfg,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// GetRate returns the multiplier converting one unit of from into to. Equal
// currencies return 1.0 without any external call. Failures of the live
// source surface as domain.ErrRateUnavailable; substituting a fallback is the
// caller's decision.
func (s *Service) GetRate(ctx context.Context, from, to string) (float64, error) {
	if from == to {
		return 1.0, nil
	}

	table, err := s.eurTable(ctx)
	if err != nil {
		return 0, err
	}

	fromRate, err := table.rateVsEUR(from)
	if err != nil {
		return 0, err
	}
	toRate, err := table.rateVsEUR(to)
	if err != nil {
		return 0, err
	}

	rate := toRate / fromRate
	if rate <= 0 || math.IsNaN(rate) || math.IsInf(rate, 0) {
		return 0, fmt.Errorf("%w: bogus rate %v for %s->%s", domain.ErrRateUnavailable, rate, from, to)
	}
	return rate, nil
}

// Convert converts an amount between two currencies, rounding half-up to two
// decimals at this point only. It returns the converted amount and the
// effective rate.
func (s *Service) Convert(ctx context.Context, amount float64, from, to string) (float64, float64, error) {
	rate, err := s.GetRate(ctx, from, to)
	if err != nil {
		return 0, 0, err
	}
	m, err := money.New(amount, from)
	if err != nil {
		return 0, 0, err
	}
	return m.Convert(rate, to).Float(), rate, nil
}

// ConvertOrFallback is Convert for the preview endpoint: a live failure
// substitutes the static cross table when fallback is enabled, flagged so the
// caller can warn that the rate is approximate.
func (s *Service) ConvertOrFallback(ctx context.Context, amount float64, from, to string) (converted, rate float64, fallback bool, err error) {
	converted, rate, err = s.Convert(ctx, amount, from, to)
	if err == nil {
		return converted, rate, false, nil
	}
	if !s.cfg.EnableFallback {
		return 0, 0, false, err
	}

	rate, known := FallbackCrossRate(from, to)
	if !known {
		s.logger.Warn("pair missing from fallback cross table, degrading to 1.0",
			"from", from, "to", to)
	} else {
		s.logger.Warn("live rate unavailable, converting with static cross rate",
			"from", from, "to", to, "rate", rate, "error", err)
	}

	m, merr := money.New(amount, from)
	if merr != nil {
		return 0, 0, false, merr
	}
	return m.Convert(rate, to).Float(), rate, true, nil
}

// GetSymbols returns the currency codes the live source supports, cached
// long-lived. On failure it returns an empty map, never an error.
func (s *Service) GetSymbols(ctx context.Context) map[string]string {
	s.symbolsMu.RLock()
	if s.symbols != nil && s.now().Before(s.symbolsExp) {
		defer s.symbolsMu.RUnlock()
		return s.symbols
	}
	s.symbolsMu.RUnlock()

	result, err, _ := s.group.Do("symbols", func() (any, error) {
		symbols, err := s.source.FetchSymbols(ctx)
		if err != nil {
			return nil, err
		}
		s.symbolsMu.Lock()
		s.symbols = symbols
		s.symbolsExp = s.now().Add(s.cfg.SymbolsTTL)
		s.symbolsMu.Unlock()
		return symbols, nil
	})
	if err != nil {
		s.logger.Warn("failed to fetch currency symbols", "error", err)
		return map[string]string{}
	}
	return result.(map[string]string)
}

type eurTable struct {
	rates map[string]float64
}

// rateVsEUR returns how many units of code one EUR buys.
func (t eurTable) rateVsEUR(code string) (float64, error) {
	if code == money.EUR {
		return 1.0, nil
	}
	rate, ok := t.rates[code]
	if !ok || rate == 0 {
		return 0, fmt.Errorf("%w: no rate for %s", domain.ErrRateUnavailable, code)
	}
	return rate, nil
}

// eurTable returns the EUR-based rate table, from cache when fresh, otherwise
// fetched once per expiry regardless of how many requests race here.
func (s *Service) eurTable(ctx context.Context) (eurTable, error) {
	const cacheKey = money.EUR

	if cached, err := s.cache.Get(ctx, cacheKey); err == nil && cached != nil {
		if !cached.Expired(s.now()) {
			return eurTable{rates: cached.Rates}, nil
		}
		_ = s.cache.Delete(ctx, cacheKey)
	}

	result, err, shared := s.group.Do(cacheKey, func() (any, error) {
		rates, err := s.source.FetchRates(ctx, money.EUR, nil)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrRateUnavailable, err)
		}

		table := &provider.RateTable{
			Base:      money.EUR,
			Rates:     rates,
			FetchedAt: s.now(),
			ExpiresAt: s.now().Add(s.cfg.CacheTTL),
		}
		if err := s.cache.Set(ctx, cacheKey, table, s.cfg.CacheTTL); err != nil {
			s.logger.Warn("failed to cache rate table", "error", err)
		}
		s.logger.Info("rate table refreshed",
			"source", s.source.Name(), "base", money.EUR, "count", len(rates))
		return table, nil
	})
	if err != nil {
		return eurTable{}, err
	}
	if shared {
		s.logger.Debug("rate refresh collapsed into in-flight fetch")
	}
	return eurTable{rates: result.(*provider.RateTable).Rates}, nil
}
