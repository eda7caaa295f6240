// Package ratesapi fetches base-relative exchange rates from an HTTP JSON API.
package ratesapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/PaesslerAG/jsonpath"
	"github.com/SscSPs/fintrack_app/internal/apperrors"
	"github.com/SscSPs/fintrack_app/internal/core/domain"
	portsprov "github.com/SscSPs/fintrack_app/internal/core/ports/providers"
	"github.com/shopspring/decimal"
)

const (
	DefaultRatesPath = "$.rates"
	DefaultTimeout   = 10 * time.Second

	basePlaceholder = "{base}"
	maxBodyBytes    = 4 << 20
)

// Config describes where the rates live in the response.
type Config struct {
	// URLTemplate may contain {base}, replaced with the requested base currency.
	URLTemplate string
	// RatesPath is a JSONPath to an object of currency code to rate.
	RatesPath string
	// TimestampPath optionally points at the quote time: unix seconds, RFC 3339 or a date.
	TimestampPath string
	Timeout       time.Duration
}

// Client implements the rate provider port over HTTP.
type Client struct {
	cfg    Config
	http   *http.Client
	logger *slog.Logger
	now    func() time.Time
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the default http.Client.
func WithHTTPClient(c *http.Client) Option {
	return func(cl *Client) {
		cl.http = c
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(cl *Client) {
		cl.logger = logger
	}
}

// New creates a Client. An empty RatesPath falls back to $.rates.
func New(cfg Config, opts ...Option) (*Client, error) {
	if strings.TrimSpace(cfg.URLTemplate) == "" {
		return nil, fmt.Errorf("rate provider URL is required")
	}
	if cfg.RatesPath == "" {
		cfg.RatesPath = DefaultRatesPath
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	c := &Client{
		cfg:    cfg,
		http:   &http.Client{Timeout: cfg.Timeout},
		logger: slog.Default(),
		now:    func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

var _ portsprov.RateProvider = (*Client)(nil)

func (c *Client) Name() string { return "ratesapi" }

// FetchRates performs one GET and returns every parseable quote. Any quote that
// is not a positive number invalidates the whole response.
func (c *Client) FetchRates(ctx context.Context, base string) (domain.RateSnapshot, error) {
	url := strings.ReplaceAll(c.cfg.URLTemplate, basePlaceholder, base)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return domain.RateSnapshot{}, apperrors.NewExternalServiceError("build rates request", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return domain.RateSnapshot{}, apperrors.NewExternalServiceError("rates request failed", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 256))
		return domain.RateSnapshot{}, apperrors.NewExternalServiceError(
			fmt.Sprintf("rates endpoint returned %d: %s", resp.StatusCode, strings.TrimSpace(string(snippet))), nil)
	}

	var doc any
	dec := json.NewDecoder(io.LimitReader(resp.Body, maxBodyBytes))
	dec.UseNumber()
	if err := dec.Decode(&doc); err != nil {
		return domain.RateSnapshot{}, apperrors.NewExternalServiceError("malformed rates payload", err)
	}

	snap, err := c.parse(doc, base)
	if err != nil {
		return domain.RateSnapshot{}, err
	}
	c.logger.DebugContext(ctx, "Fetched exchange rates",
		slog.String("base", base),
		slog.Int("count", len(snap.Rates)))
	return snap, nil
}

func (c *Client) parse(doc any, base string) (domain.RateSnapshot, error) {
	raw, err := jsonpath.Get(c.cfg.RatesPath, doc)
	if err != nil {
		return domain.RateSnapshot{}, apperrors.NewExternalServiceError(fmt.Sprintf("rates path %s", c.cfg.RatesPath), err)
	}
	// jsonpath wraps single matches of wildcard paths in a list
	if list, ok := raw.([]any); ok && len(list) == 1 {
		raw = list[0]
	}
	table, ok := raw.(map[string]any)
	if !ok {
		return domain.RateSnapshot{}, apperrors.NewExternalServiceError(
			fmt.Sprintf("rates path %s is not an object", c.cfg.RatesPath), nil)
	}

	codes := make([]string, 0, len(table))
	for code := range table {
		codes = append(codes, code)
	}
	sort.Strings(codes)

	snap := domain.RateSnapshot{Base: base, AsOf: c.now(), Rates: make([]domain.RateQuote, 0, len(codes))}
	for _, code := range codes {
		normalized := strings.ToUpper(code)
		if err := domain.ValidateCurrencyCode(normalized); err != nil {
			return domain.RateSnapshot{}, apperrors.NewExternalServiceError("rates payload", err)
		}
		rate, err := toDecimal(table[code])
		if err != nil {
			return domain.RateSnapshot{}, apperrors.NewExternalServiceError(fmt.Sprintf("rate for %s", code), err)
		}
		if !rate.IsPositive() {
			return domain.RateSnapshot{}, apperrors.NewExternalServiceError(
				fmt.Sprintf("rate for %s is not positive: %s", code, rate.String()), nil)
		}
		snap.Rates = append(snap.Rates, domain.RateQuote{CurrencyCode: normalized, Rate: rate})
	}

	if c.cfg.TimestampPath != "" {
		if v, err := jsonpath.Get(c.cfg.TimestampPath, doc); err == nil {
			if t, ok := toTime(v); ok {
				snap.AsOf = t
			}
		}
	}
	return snap, nil
}

func toDecimal(v any) (decimal.Decimal, error) {
	switch n := v.(type) {
	case json.Number:
		return decimal.NewFromString(n.String())
	case float64:
		return decimal.NewFromFloat(n), nil
	case string:
		return decimal.NewFromString(n)
	default:
		return decimal.Zero, fmt.Errorf("not a number: %v", v)
	}
}

func toTime(v any) (time.Time, bool) {
	switch t := v.(type) {
	case json.Number:
		secs, err := t.Int64()
		if err != nil {
			return time.Time{}, false
		}
		return time.Unix(secs, 0).UTC(), true
	case string:
		for _, layout := range []string{time.RFC3339, time.DateOnly, time.RFC1123Z} {
			if parsed, err := time.Parse(layout, t); err == nil {
				return parsed.UTC(), true
			}
		}
		if secs, err := strconv.ParseInt(t, 10, 64); err == nil {
			return time.Unix(secs, 0).UTC(), true
		}
	}
	return time.Time{}, false
}
