package rates

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync/atomic"
	"testing"
	"time"

	"github.com/amirasaad/transfeo/config"
	infracache "github.com/amirasaad/transfeo/infra/cache"
	"github.com/amirasaad/transfeo/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubSource struct {
	rates      map[string]float64
	symbols    map[string]string
	err        error
	rateCalls  atomic.Int64
	symbolFail bool
}

func (s *stubSource) FetchRates(_ context.Context, base string, _ []string) (map[string]float64, error) {
	s.rateCalls.Add(1)
	if s.err != nil {
		return nil, s.err
	}
	return s.rates, nil
}

func (s *stubSource) FetchSymbols(context.Context) (map[string]string, error) {
	if s.symbolFail {
		return nil, errors.New("boom")
	}
	return s.symbols, nil
}

func (s *stubSource) Name() string { return "stub" }

func newService(source *stubSource, opts ...Option) *Service {
	return New(
		source,
		infracache.NewMemory(),
		slog.New(slog.NewTextHandler(io.Discard, nil)),
		&config.Exchange{CacheTTL: time.Hour, SymbolsTTL: 24 * time.Hour},
		opts...,
	)
}

func TestGetRate_SameCurrency_NoExternalCall(t *testing.T) {
	source := &stubSource{err: errors.New("must not be called")}
	svc := newService(source)

	rate, err := svc.GetRate(context.Background(), "USD", "USD")
	require.NoError(t, err)
	assert.InEpsilon(t, 1.0, rate, 1e-9)
	assert.Zero(t, source.rateCalls.Load())
}

func TestGetRate_EURPivot(t *testing.T) {
	source := &stubSource{rates: map[string]float64{"USD": 1.10, "GBP": 0.88}}
	svc := newService(source)
	ctx := context.Background()

	tests := []struct {
		from, to string
		want     float64
	}{
		{"EUR", "USD", 1.10},
		{"USD", "EUR", 1 / 1.10},
		{"USD", "GBP", 0.88 / 1.10},
		{"GBP", "USD", 1.10 / 0.88},
	}
	for _, tt := range tests {
		rate, err := svc.GetRate(ctx, tt.from, tt.to)
		require.NoError(t, err, "%s->%s", tt.from, tt.to)
		assert.InEpsilon(t, tt.want, rate, 1e-9, "%s->%s", tt.from, tt.to)
	}
}

func TestGetRate_CachesTable(t *testing.T) {
	source := &stubSource{rates: map[string]float64{"USD": 1.10}}
	svc := newService(source)
	ctx := context.Background()

	_, err := svc.GetRate(ctx, "EUR", "USD")
	require.NoError(t, err)
	_, err = svc.GetRate(ctx, "USD", "EUR")
	require.NoError(t, err)

	assert.Equal(t, int64(1), source.rateCalls.Load())
}

func TestGetRate_ExpiredTableRefetches(t *testing.T) {
	source := &stubSource{rates: map[string]float64{"USD": 1.10}}
	now := time.Now()
	svc := newService(source, WithClock(func() time.Time { return now }))
	ctx := context.Background()

	_, err := svc.GetRate(ctx, "EUR", "USD")
	require.NoError(t, err)

	now = now.Add(2 * time.Hour)
	_, err = svc.GetRate(ctx, "EUR", "USD")
	require.NoError(t, err)

	assert.Equal(t, int64(2), source.rateCalls.Load())
}

func TestGetRate_SourceDown(t *testing.T) {
	source := &stubSource{err: errors.New("connection refused")}
	svc := newService(source)

	_, err := svc.GetRate(context.Background(), "USD", "EUR")
	assert.ErrorIs(t, err, domain.ErrRateUnavailable)
}

func TestGetRate_MissingSymbol(t *testing.T) {
	source := &stubSource{rates: map[string]float64{"USD": 1.10}}
	svc := newService(source)

	_, err := svc.GetRate(context.Background(), "XTS", "EUR")
	assert.ErrorIs(t, err, domain.ErrRateUnavailable)
}

func TestConvert_RoundsToTwoDecimals(t *testing.T) {
	source := &stubSource{rates: map[string]float64{"USD": 1.0 / 0.92}}
	svc := newService(source)

	converted, rate, err := svc.Convert(context.Background(), 100, "USD", "EUR")
	require.NoError(t, err)
	assert.InDelta(t, 92.00, converted, 0.01)
	assert.InDelta(t, 0.92, rate, 1e-9)
}

func TestConvert_Identity(t *testing.T) {
	svc := newService(&stubSource{})

	for _, amount := range []float64{0.01, 1, 99.99, 12345.67} {
		converted, rate, err := svc.Convert(context.Background(), amount, "CHF", "CHF")
		require.NoError(t, err)
		assert.InDelta(t, amount, converted, 1e-9)
		assert.InEpsilon(t, 1.0, rate, 1e-9)
	}
}

func TestConvertOrFallback_LiveRate(t *testing.T) {
	source := &stubSource{rates: map[string]float64{"USD": 1.10}}
	svc := newService(source)

	converted, rate, fallback, err := svc.ConvertOrFallback(context.Background(), 110, "USD", "EUR")
	require.NoError(t, err)
	assert.False(t, fallback)
	assert.InDelta(t, 100.00, converted, 0.01)
	assert.InEpsilon(t, 1/1.10, rate, 1e-9)
}

func TestConvertOrFallback_StaticCrossRate(t *testing.T) {
	source := &stubSource{err: errors.New("connection refused")}
	svc := New(
		source,
		infracache.NewMemory(),
		slog.New(slog.NewTextHandler(io.Discard, nil)),
		&config.Exchange{CacheTTL: time.Hour, SymbolsTTL: 24 * time.Hour, EnableFallback: true},
	)

	converted, rate, fallback, err := svc.ConvertOrFallback(context.Background(), 100, "EUR", "USD")
	require.NoError(t, err)
	assert.True(t, fallback)
	assert.InDelta(t, 1.09, rate, 1e-9)
	assert.InDelta(t, 109.00, converted, 1e-9)
}

func TestConvertOrFallback_Disabled(t *testing.T) {
	source := &stubSource{err: errors.New("connection refused")}
	svc := newService(source)

	_, _, _, err := svc.ConvertOrFallback(context.Background(), 100, "EUR", "USD")
	assert.ErrorIs(t, err, domain.ErrRateUnavailable)
}

func TestGetSymbols(t *testing.T) {
	source := &stubSource{symbols: map[string]string{"EUR": "Euro"}}
	svc := newService(source)

	symbols := svc.GetSymbols(context.Background())
	assert.Equal(t, "Euro", symbols["EUR"])
}

func TestGetSymbols_EmptyOnFailure(t *testing.T) {
	source := &stubSource{symbolFail: true}
	svc := newService(source)

	symbols := svc.GetSymbols(context.Background())
	assert.NotNil(t, symbols)
	assert.Empty(t, symbols)
}

func TestFallbackEURRate(t *testing.T) {
	rate, ok := FallbackEURRate("USD")
	assert.True(t, ok)
	assert.InDelta(t, 0.92, rate, 1e-9)

	rate, ok = FallbackEURRate("EUR")
	assert.True(t, ok)
	assert.InEpsilon(t, 1.0, rate, 1e-9)

	rate, ok = FallbackEURRate("XTS")
	assert.False(t, ok)
	assert.InEpsilon(t, 1.0, rate, 1e-9)
}

func TestFallbackCrossRate(t *testing.T) {
	rate, ok := FallbackCrossRate("EUR", "USD")
	assert.True(t, ok)
	assert.InDelta(t, 1.09, rate, 1e-9)

	rate, ok = FallbackCrossRate("JPY", "GBP")
	assert.True(t, ok)
	assert.InDelta(t, 0.0053, rate, 1e-9)

	rate, ok = FallbackCrossRate("CHF", "CAD")
	assert.False(t, ok)
	assert.InEpsilon(t, 1.0, rate, 1e-9)
}
