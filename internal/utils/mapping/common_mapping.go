package mapping

import (
	"fmt"

	"github.com/SscSPs/fintrack_app/internal/core/domain"
	"github.com/SscSPs/fintrack_app/internal/models"
)

// ToModelAuditFields converts a domain AuditFields to a model AuditFields
func ToModelAuditFields(d domain.AuditFields) models.AuditFields {
	return models.AuditFields{
		CreatedAt:     d.CreatedAt,
		CreatedBy:     d.CreatedBy,
		LastUpdatedAt: d.LastUpdatedAt,
		LastUpdatedBy: d.LastUpdatedBy,
	}
}

// ToDomainAuditFields converts a model AuditFields to a domain AuditFields
func ToDomainAuditFields(m models.AuditFields) domain.AuditFields {
	return domain.AuditFields{
		CreatedAt:     m.CreatedAt,
		CreatedBy:     m.CreatedBy,
		LastUpdatedAt: m.LastUpdatedAt,
		LastUpdatedBy: m.LastUpdatedBy,
	}
}

func ToModelConvertedAmount(d domain.ConvertedAmount) models.ConvertedAmount {
	return models.ConvertedAmount{
		Amount:       d.Original.Amount(),
		Currency:     d.Original.Currency(),
		BaseAmount:   d.Base.Amount(),
		BaseCurrency: d.Base.Currency(),
		RateUsed:     d.RateUsed,
	}
}

// ToDomainConvertedAmount fails on rows holding malformed currency codes.
func ToDomainConvertedAmount(m models.ConvertedAmount) (domain.ConvertedAmount, error) {
	original, err := domain.NewMoney(m.Amount, m.Currency)
	if err != nil {
		return domain.ConvertedAmount{}, fmt.Errorf("stored amount: %w", err)
	}
	base, err := domain.NewMoney(m.BaseAmount, m.BaseCurrency)
	if err != nil {
		return domain.ConvertedAmount{}, fmt.Errorf("stored base amount: %w", err)
	}
	return domain.ConvertedAmount{Original: original, Base: base, RateUsed: m.RateUsed}, nil
}

func toModelRecurrence(r domain.Recurrence) (string, int) {
	return string(r.Frequency()), r.Interval()
}

func toDomainRecurrence(freq string, interval int) (domain.Recurrence, error) {
	return domain.NewRecurrence(freq, interval)
}
