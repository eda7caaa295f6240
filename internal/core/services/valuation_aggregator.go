package services

import (
	"context"
	"fmt"

	"github.com/SscSPs/fintrack_app/internal/core/domain"
	portssvc "github.com/SscSPs/fintrack_app/internal/core/ports/services"
	"github.com/shopspring/decimal"
)

type valuationAggregator struct {
	converter portssvc.ConverterSvc
}

// NewValuationAggregator creates an aggregator that sums line items in the base currency.
func NewValuationAggregator(converter portssvc.ConverterSvc) portssvc.ValuationAggregatorSvc {
	return &valuationAggregator{converter: converter}
}

var _ portssvc.ValuationAggregatorSvc = (*valuationAggregator)(nil)

func (a *valuationAggregator) inBase(ctx context.Context, i int, item domain.LineItem) (decimal.Decimal, error) {
	if item.Amount.Currency() == a.converter.BaseCurrency() {
		return item.Amount.Amount(), nil
	}
	converted, err := a.converter.ConvertToBase(ctx, item.Amount.Amount(), item.Amount.Currency())
	if err != nil {
		return decimal.Zero, fmt.Errorf("line item %d (%s %s): %w", i, item.Kind, item.Category, err)
	}
	return converted.Amount(), nil
}

// TotalInBase fails on the first item that cannot be converted. There is no
// partial total.
func (a *valuationAggregator) TotalInBase(ctx context.Context, items []domain.LineItem) (domain.Money, error) {
	total := decimal.Zero
	for i, item := range items {
		amount, err := a.inBase(ctx, i, item)
		if err != nil {
			return domain.Money{}, err
		}
		total = total.Add(amount)
	}
	return domain.NewMoney(total, a.converter.BaseCurrency())
}

// GroupBy sums items per key in the base currency, with the same fail-fast rule.
func (a *valuationAggregator) GroupBy(ctx context.Context, items []domain.LineItem, key func(domain.LineItem) string) (map[string]domain.Money, error) {
	base := a.converter.BaseCurrency()
	sums := make(map[string]decimal.Decimal)
	for i, item := range items {
		amount, err := a.inBase(ctx, i, item)
		if err != nil {
			return nil, err
		}
		k := key(item)
		sums[k] = sums[k].Add(amount)
	}

	groups := make(map[string]domain.Money, len(sums))
	for k, sum := range sums {
		m, err := domain.NewMoney(sum, base)
		if err != nil {
			return nil, err
		}
		groups[k] = m
	}
	return groups, nil
}

// Common grouping keys.
func ByKind(item domain.LineItem) string     { return string(item.Kind) }
func ByCategory(item domain.LineItem) string { return item.Category }
func ByMonth(item domain.LineItem) string    { return item.Date.Format("2006-01") }
