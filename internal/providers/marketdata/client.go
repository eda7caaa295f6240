// Package marketdata prices holdings against an EODHD-style real-time quote API.
package marketdata

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PaesslerAG/jsonpath"
	"github.com/SscSPs/fintrack_app/internal/apperrors"
	"github.com/SscSPs/fintrack_app/internal/core/domain"
	portsprov "github.com/SscSPs/fintrack_app/internal/core/ports/providers"
	"github.com/shopspring/decimal"
)

const closePath = "$.close"

// Client calls GET {baseURL}/real-time/{ticker}?api_token=..&fmt=json.
type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
}

func New(baseURL, apiKey string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		http:    &http.Client{Timeout: timeout},
	}
}

var _ portsprov.MarketDataProvider = (*Client)(nil)

// Ticker maps a holding onto the provider's symbol. Crypto pairs are quoted
// directly in the requested currency.
func Ticker(symbol string, assetType domain.AssetType, currency string) string {
	symbol = strings.ToUpper(strings.TrimSpace(symbol))
	if assetType == domain.AssetCrypto {
		return fmt.Sprintf("%s-%s.CC", symbol, currency)
	}
	return symbol
}

func (c *Client) GetAssetPrice(ctx context.Context, symbol string, assetType domain.AssetType, currency string) (decimal.Decimal, error) {
	ticker := Ticker(symbol, assetType, currency)
	q := url.Values{}
	q.Set("api_token", c.apiKey)
	q.Set("fmt", "json")
	endpoint := fmt.Sprintf("%s/real-time/%s?%s", c.baseURL, url.PathEscape(ticker), q.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return decimal.Zero, apperrors.NewExternalServiceError("build quote request", err)
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return decimal.Zero, apperrors.NewExternalServiceError(fmt.Sprintf("quote for %s", ticker), err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return decimal.Zero, apperrors.NewExternalServiceError(
			fmt.Sprintf("quote for %s: status %d", ticker, resp.StatusCode), nil)
	}

	var doc any
	dec := json.NewDecoder(io.LimitReader(resp.Body, 1<<20))
	dec.UseNumber()
	if err := dec.Decode(&doc); err != nil {
		return decimal.Zero, apperrors.NewExternalServiceError(fmt.Sprintf("quote for %s: malformed payload", ticker), err)
	}
	raw, err := jsonpath.Get(closePath, doc)
	if err != nil {
		return decimal.Zero, apperrors.NewExternalServiceError(fmt.Sprintf("quote for %s has no close price", ticker), err)
	}
	// "NA" when the exchange has no trade for the symbol
	n, ok := raw.(json.Number)
	if !ok {
		return decimal.Zero, apperrors.NewExternalServiceError(fmt.Sprintf("quote for %s: close is %v", ticker, raw), nil)
	}
	price, err := decimal.NewFromString(n.String())
	if err != nil || price.IsNegative() {
		return decimal.Zero, apperrors.NewExternalServiceError(fmt.Sprintf("quote for %s: invalid close %s", ticker, n), err)
	}
	return price, nil
}
