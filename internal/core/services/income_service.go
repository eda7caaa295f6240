package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/SscSPs/fintrack_app/internal/core/domain"
	portsrepo "github.com/SscSPs/fintrack_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/fintrack_app/internal/core/ports/services"
	"github.com/SscSPs/fintrack_app/internal/dto"
	"github.com/google/uuid"
)

type incomeService struct {
	recordBase
	repo portsrepo.IncomeRepositoryFacade
}

// NewIncomeService creates a new income service.
func NewIncomeService(repo portsrepo.IncomeRepositoryFacade, converter portssvc.ConverterSvc, opts ...RecordServiceOption) portssvc.IncomeSvcFacade {
	return &incomeService{recordBase: newRecordBase(converter, opts), repo: repo}
}

var _ portssvc.IncomeSvcFacade = (*incomeService)(nil)

func (s *incomeService) CreateIncome(ctx context.Context, req dto.CreateIncomeRequest, userID string) (*domain.Income, error) {
	source, err := requireText("source", req.Source)
	if err != nil {
		return nil, err
	}
	if err := requirePositive("amount", req.Amount); err != nil {
		return nil, err
	}
	if err := requireDate("receivedOn", req.ReceivedOn); err != nil {
		return nil, err
	}
	recurrence, err := domain.NewRecurrence(req.Recurrence, req.RecurrenceInterval)
	if err != nil {
		return nil, err
	}
	amount, err := s.convertAmount(ctx, req.Amount, req.Currency)
	if err != nil {
		return nil, err
	}

	now := s.now()
	income := domain.Income{
		IncomeID:    uuid.NewString(),
		UserID:      userID,
		Source:      source,
		Description: req.Description,
		Amount:      amount,
		ReceivedOn:  req.ReceivedOn.UTC(),
		Recurrence:  recurrence,
		AuditFields: domain.NewAuditFields(userID, now),
	}
	if err := s.repo.SaveIncome(ctx, income); err != nil {
		s.LogError(ctx, err, "Failed to save income", slog.String("user_id", userID))
		return nil, fmt.Errorf("failed to save income: %w", err)
	}

	s.LogInfo(ctx, "Income recorded",
		slog.String("income_id", income.IncomeID),
		slog.String("amount", amount.Original.String()))
	s.afterCreate(ctx, domain.RecordEvent{
		Kind:       domain.LineItemIncome,
		RecordID:   income.IncomeID,
		UserID:     userID,
		Label:      income.Source,
		Amount:     amount.Original,
		BaseAmount: amount.Base,
		OccurredAt: now,
	})
	return &income, nil
}

func (s *incomeService) GetIncome(ctx context.Context, incomeID, userID string) (*domain.Income, error) {
	return s.repo.FindIncomeByID(ctx, userID, incomeID)
}

func (s *incomeService) ListIncomes(ctx context.Context, params dto.ListRecordsParams, userID string) ([]domain.Income, error) {
	filter, err := recordFilter(params, userID)
	if err != nil {
		return nil, err
	}
	return s.repo.ListIncomes(ctx, filter)
}

// UpdateIncome re-converts at the current rate whenever amount or currency change.
func (s *incomeService) UpdateIncome(ctx context.Context, incomeID string, req dto.UpdateIncomeRequest, userID string) (*domain.Income, error) {
	income, err := s.repo.FindIncomeByID(ctx, userID, incomeID)
	if err != nil {
		return nil, err
	}

	if req.Source != nil {
		if income.Source, err = requireText("source", *req.Source); err != nil {
			return nil, err
		}
	}
	if req.Description != nil {
		income.Description = *req.Description
	}
	if req.ReceivedOn != nil {
		if err := requireDate("receivedOn", *req.ReceivedOn); err != nil {
			return nil, err
		}
		income.ReceivedOn = req.ReceivedOn.UTC()
	}
	if req.Recurrence != nil || req.RecurrenceInterval != nil {
		freq, interval := string(income.Recurrence.Frequency()), income.Recurrence.Interval()
		if req.Recurrence != nil {
			freq = *req.Recurrence
		}
		if req.RecurrenceInterval != nil {
			interval = *req.RecurrenceInterval
		}
		if income.Recurrence, err = domain.NewRecurrence(freq, interval); err != nil {
			return nil, err
		}
	}
	if req.Amount != nil || req.Currency != nil {
		amount, currency := income.Amount.Original.Amount(), income.Amount.Original.Currency()
		if req.Amount != nil {
			amount = *req.Amount
		}
		if req.Currency != nil {
			currency = *req.Currency
		}
		if err := requirePositive("amount", amount); err != nil {
			return nil, err
		}
		if income.Amount, err = s.convertAmount(ctx, amount, currency); err != nil {
			return nil, err
		}
	}

	income.Touch(userID, s.now())
	if err := s.repo.UpdateIncome(ctx, *income); err != nil {
		s.LogError(ctx, err, "Failed to update income", slog.String("income_id", incomeID))
		return nil, fmt.Errorf("failed to update income: %w", err)
	}
	return income, nil
}

func (s *incomeService) DeleteIncome(ctx context.Context, incomeID, userID string) error {
	if err := s.repo.DeleteIncome(ctx, userID, incomeID); err != nil {
		return err
	}
	s.LogInfo(ctx, "Income deleted", slog.String("income_id", incomeID))
	return nil
}
