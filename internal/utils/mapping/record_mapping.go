package mapping

import (
	"github.com/SscSPs/fintrack_app/internal/core/domain"
	"github.com/SscSPs/fintrack_app/internal/models"
)

// ToModelIncome converts a domain Income to a model Income
func ToModelIncome(d domain.Income) models.Income {
	freq, interval := toModelRecurrence(d.Recurrence)
	return models.Income{
		IncomeID:           d.IncomeID,
		UserID:             d.UserID,
		Source:             d.Source,
		Description:        d.Description,
		ReceivedOn:         d.ReceivedOn,
		Recurrence:         freq,
		RecurrenceInterval: interval,
		ConvertedAmount:    ToModelConvertedAmount(d.Amount),
		AuditFields:        ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainIncome converts a model Income to a domain Income
func ToDomainIncome(m models.Income) (domain.Income, error) {
	amount, err := ToDomainConvertedAmount(m.ConvertedAmount)
	if err != nil {
		return domain.Income{}, err
	}
	recurrence, err := toDomainRecurrence(m.Recurrence, m.RecurrenceInterval)
	if err != nil {
		return domain.Income{}, err
	}
	return domain.Income{
		IncomeID:    m.IncomeID,
		UserID:      m.UserID,
		Source:      m.Source,
		Description: m.Description,
		Amount:      amount,
		ReceivedOn:  m.ReceivedOn.UTC(),
		Recurrence:  recurrence,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}, nil
}

// ToModelExpense converts a domain Expense to a model Expense
func ToModelExpense(d domain.Expense) models.Expense {
	freq, interval := toModelRecurrence(d.Recurrence)
	return models.Expense{
		ExpenseID:          d.ExpenseID,
		UserID:             d.UserID,
		Category:           d.Category,
		Description:        d.Description,
		SpentOn:            d.SpentOn,
		Recurrence:         freq,
		RecurrenceInterval: interval,
		ConvertedAmount:    ToModelConvertedAmount(d.Amount),
		AuditFields:        ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainExpense converts a model Expense to a domain Expense
func ToDomainExpense(m models.Expense) (domain.Expense, error) {
	amount, err := ToDomainConvertedAmount(m.ConvertedAmount)
	if err != nil {
		return domain.Expense{}, err
	}
	recurrence, err := toDomainRecurrence(m.Recurrence, m.RecurrenceInterval)
	if err != nil {
		return domain.Expense{}, err
	}
	return domain.Expense{
		ExpenseID:   m.ExpenseID,
		UserID:      m.UserID,
		Category:    m.Category,
		Description: m.Description,
		Amount:      amount,
		SpentOn:     m.SpentOn.UTC(),
		Recurrence:  recurrence,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}, nil
}

// ToModelSaving converts a domain Saving to a model Saving
func ToModelSaving(d domain.Saving) models.Saving {
	return models.Saving{
		SavingID:        d.SavingID,
		UserID:          d.UserID,
		Goal:            d.Goal,
		TargetAmount:    d.Target.Amount(),
		TargetDate:      d.TargetDate,
		ConvertedAmount: ToModelConvertedAmount(d.Saved),
		AuditFields:     ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainSaving converts a model Saving to a domain Saving
func ToDomainSaving(m models.Saving) (domain.Saving, error) {
	saved, err := ToDomainConvertedAmount(m.ConvertedAmount)
	if err != nil {
		return domain.Saving{}, err
	}
	target, err := domain.NewMoney(m.TargetAmount, m.Currency)
	if err != nil {
		return domain.Saving{}, err
	}
	return domain.Saving{
		SavingID:    m.SavingID,
		UserID:      m.UserID,
		Goal:        m.Goal,
		Target:      target,
		Saved:       saved,
		TargetDate:  m.TargetDate,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}, nil
}

// ToModelInvestment converts a domain Investment to a model Investment
func ToModelInvestment(d domain.Investment) models.Investment {
	return models.Investment{
		InvestmentID:    d.InvestmentID,
		UserID:          d.UserID,
		Symbol:          d.Symbol,
		Name:            d.Name,
		AssetType:       string(d.AssetType),
		Quantity:        d.Quantity,
		PurchasePrice:   d.PurchasePrice.Amount(),
		CurrentPrice:    d.CurrentPrice.Amount(),
		PurchasedOn:     d.PurchasedOn,
		PriceUpdatedAt:  d.PriceUpdatedAt,
		ConvertedAmount: ToModelConvertedAmount(d.CostBasis),
		AuditFields:     ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainInvestment converts a model Investment to a domain Investment
func ToDomainInvestment(m models.Investment) (domain.Investment, error) {
	costBasis, err := ToDomainConvertedAmount(m.ConvertedAmount)
	if err != nil {
		return domain.Investment{}, err
	}
	assetType, err := domain.ParseAssetType(m.AssetType)
	if err != nil {
		return domain.Investment{}, err
	}
	purchase, err := domain.NewMoney(m.PurchasePrice, m.Currency)
	if err != nil {
		return domain.Investment{}, err
	}
	current, err := domain.NewMoney(m.CurrentPrice, m.Currency)
	if err != nil {
		return domain.Investment{}, err
	}
	return domain.Investment{
		InvestmentID:   m.InvestmentID,
		UserID:         m.UserID,
		Symbol:         m.Symbol,
		Name:           m.Name,
		AssetType:      assetType,
		Quantity:       m.Quantity,
		PurchasePrice:  purchase,
		CurrentPrice:   current,
		CostBasis:      costBasis,
		PurchasedOn:    m.PurchasedOn.UTC(),
		PriceUpdatedAt: m.PriceUpdatedAt,
		AuditFields:    ToDomainAuditFields(m.AuditFields),
	}, nil
}
