// Package ratesfile serves exchange rates from a YAML file, for deployments
// without outbound network access.
package ratesfile

import (
	"context"
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/SscSPs/fintrack_app/internal/apperrors"
	"github.com/SscSPs/fintrack_app/internal/core/domain"
	portsprov "github.com/SscSPs/fintrack_app/internal/core/ports/providers"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// document is the file layout:
//
//	base: USD
//	asOf: 2025-01-31T00:00:00Z
//	rates:
//	  EUR: 0.92
//	  GBP: 0.79
type document struct {
	Base  string               `yaml:"base"`
	AsOf  *time.Time           `yaml:"asOf,omitempty"`
	Rates map[string]yaml.Node `yaml:"rates"`
}

// Provider re-reads the file on every fetch so edits apply at the next sync.
type Provider struct {
	path string
}

func New(path string) *Provider {
	return &Provider{path: path}
}

var _ portsprov.RateProvider = (*Provider)(nil)

func (p *Provider) Name() string { return "ratesfile" }

func (p *Provider) FetchRates(ctx context.Context, base string) (domain.RateSnapshot, error) {
	if err := ctx.Err(); err != nil {
		return domain.RateSnapshot{}, err
	}
	buf, err := os.ReadFile(p.path)
	if err != nil {
		return domain.RateSnapshot{}, apperrors.NewExternalServiceError("read rates file", err)
	}
	return Parse(buf, base)
}

// Parse decodes a rates document and checks it is quoted against base.
func Parse(buf []byte, base string) (domain.RateSnapshot, error) {
	var doc document
	if err := yaml.Unmarshal(buf, &doc); err != nil {
		return domain.RateSnapshot{}, apperrors.NewExternalServiceError("malformed rates file", err)
	}
	if !strings.EqualFold(doc.Base, base) {
		return domain.RateSnapshot{}, apperrors.NewExternalServiceError(
			fmt.Sprintf("rates file is quoted against %q, expected %s", doc.Base, base), nil)
	}

	codes := make([]string, 0, len(doc.Rates))
	for code := range doc.Rates {
		codes = append(codes, code)
	}
	sort.Strings(codes)

	snap := domain.RateSnapshot{Base: base, AsOf: time.Now().UTC()}
	if doc.AsOf != nil {
		snap.AsOf = doc.AsOf.UTC()
	}
	for _, code := range codes {
		node := doc.Rates[code]
		normalized := strings.ToUpper(code)
		if err := domain.ValidateCurrencyCode(normalized); err != nil {
			return domain.RateSnapshot{}, apperrors.NewExternalServiceError("rates file", err)
		}
		rate, err := decimal.NewFromString(node.Value)
		if err != nil || !rate.IsPositive() {
			return domain.RateSnapshot{}, apperrors.NewExternalServiceError(
				fmt.Sprintf("rates file line %d: rate for %s must be a positive number", node.Line, code), err)
		}
		snap.Rates = append(snap.Rates, domain.RateQuote{CurrencyCode: normalized, Rate: rate})
	}
	return snap, nil
}
