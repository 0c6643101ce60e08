// Package fixer implements the provider.RateSource port against the fixer.io
// HTTP API.
package fixer

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/amirasaad/transfeo/config"
	"github.com/amirasaad/transfeo/pkg/provider"
)

// Client calls the fixer.io /latest and /symbols endpoints. Every request is
// bounded by the configured HTTP timeout; a slow upstream must not stall
// transfer throughput.
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
}

type latestResponse struct {
	Success bool               `json:"success"`
	Base    string             `json:"base"`
	Rates   map[string]float64 `json:"rates"`
	Error   *apiError          `json:"error"`
}

type symbolsResponse struct {
	Success bool              `json:"success"`
	Symbols map[string]string `json:"symbols"`
	Error   *apiError         `json:"error"`
}

type apiError struct {
	Code int    `json:"code"`
	Type string `json:"type"`
}

// New creates a fixer client from the exchange config.
func New(cfg config.Exchange, logger *slog.Logger) *Client {
	return &Client{
		apiKey:  cfg.ApiKey,
		baseURL: strings.TrimRight(cfg.ApiUrl, "/"),
		httpClient: &http.Client{
			Timeout: cfg.HTTPTimeout,
		},
		logger: logger,
	}
}

// FetchRates returns the rate table for base, optionally restricted to the
// given symbols. Non-2xx responses and malformed payloads are errors.
func (c *Client) FetchRates(ctx context.Context, base string, symbols []string) (map[string]float64, error) {
	params := url.Values{}
	params.Set("access_key", c.apiKey)
	params.Set("base", base)
	if len(symbols) > 0 {
		params.Set("symbols", strings.Join(symbols, ","))
	}

	var resp latestResponse
	if err := c.get(ctx, "/latest", params, &resp); err != nil {
		return nil, err
	}
	if !resp.Success || resp.Rates == nil {
		if resp.Error != nil {
			return nil, fmt.Errorf("fixer API error %d: %s", resp.Error.Code, resp.Error.Type)
		}
		return nil, fmt.Errorf("fixer API returned no rates for base %s", base)
	}
	return resp.Rates, nil
}

// FetchSymbols returns the currency codes fixer supports, mapped to names.
func (c *Client) FetchSymbols(ctx context.Context) (map[string]string, error) {
	params := url.Values{}
	params.Set("access_key", c.apiKey)

	var resp symbolsResponse
	if err := c.get(ctx, "/symbols", params, &resp); err != nil {
		return nil, err
	}
	if !resp.Success || resp.Symbols == nil {
		if resp.Error != nil {
			return nil, fmt.Errorf("fixer API error %d: %s", resp.Error.Code, resp.Error.Type)
		}
		return nil, fmt.Errorf("fixer API returned no symbols")
	}
	return resp.Symbols, nil
}

// Name identifies this source in logs and ledger records.
func (c *Client) Name() string {
	return "fixer"
}

func (c *Client) get(ctx context.Context, path string, params url.Values, out any) error {
	reqURL := fmt.Sprintf("%s%s?%s", c.baseURL, path, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	started := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to reach fixer API: %w", err)
	}
	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("fixer API returned status %d: %s", resp.StatusCode, string(body))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode fixer response: %w", err)
	}

	c.logger.Debug("fixer API call", "path", path, "took", time.Since(started))
	return nil
}

// Ensure Client implements provider.RateSource.
var _ provider.RateSource = (*Client)(nil)
