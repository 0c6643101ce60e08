package fixer

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/amirasaad/transfeo/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return New(config.Exchange{
		ApiKey:      "test-key",
		ApiUrl:      srv.URL,
		HTTPTimeout: 2 * time.Second,
	}, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestFetchRates(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/latest", r.URL.Path)
		assert.Equal(t, "test-key", r.URL.Query().Get("access_key"))
		assert.Equal(t, "EUR", r.URL.Query().Get("base"))
		assert.Equal(t, "USD,GBP", r.URL.Query().Get("symbols"))
		_, _ = w.Write([]byte(`{"success":true,"base":"EUR","rates":{"USD":1.09,"GBP":0.86}}`))
	})

	rates, err := client.FetchRates(context.Background(), "EUR", []string{"USD", "GBP"})
	require.NoError(t, err)
	assert.InDelta(t, 1.09, rates["USD"], 1e-9)
	assert.InDelta(t, 0.86, rates["GBP"], 1e-9)
}

func TestFetchRates_APIError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"success":false,"error":{"code":101,"type":"invalid_access_key"}}`))
	})

	_, err := client.FetchRates(context.Background(), "EUR", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid_access_key")
}

func TestFetchRates_NonOKStatus(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})

	_, err := client.FetchRates(context.Background(), "EUR", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "502")
}

func TestFetchRates_MalformedJSON(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"success":true,"rates":`))
	})

	_, err := client.FetchRates(context.Background(), "EUR", nil)
	require.Error(t, err)
}

func TestFetchSymbols(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/symbols", r.URL.Path)
		_, _ = w.Write([]byte(`{"success":true,"symbols":{"EUR":"Euro","USD":"United States Dollar"}}`))
	})

	symbols, err := client.FetchSymbols(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Euro", symbols["EUR"])
	assert.Len(t, symbols, 2)
}

func TestFetchRates_ContextCancelled(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	})

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	_, err := client.FetchRates(ctx, "EUR", nil)
	require.Error(t, err)
}
