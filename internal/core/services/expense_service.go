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

type expenseService struct {
	recordBase
	repo portsrepo.ExpenseRepositoryFacade
}

// NewExpenseService creates a new expense service.
func NewExpenseService(repo portsrepo.ExpenseRepositoryFacade, converter portssvc.ConverterSvc, opts ...RecordServiceOption) portssvc.ExpenseSvcFacade {
	return &expenseService{recordBase: newRecordBase(converter, opts), repo: repo}
}

var _ portssvc.ExpenseSvcFacade = (*expenseService)(nil)

func (s *expenseService) CreateExpense(ctx context.Context, req dto.CreateExpenseRequest, userID string) (*domain.Expense, error) {
	category, err := requireText("category", req.Category)
	if err != nil {
		return nil, err
	}
	if err := requirePositive("amount", req.Amount); err != nil {
		return nil, err
	}
	if err := requireDate("spentOn", req.SpentOn); err != nil {
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
	expense := domain.Expense{
		ExpenseID:   uuid.NewString(),
		UserID:      userID,
		Category:    category,
		Description: req.Description,
		Amount:      amount,
		SpentOn:     req.SpentOn.UTC(),
		Recurrence:  recurrence,
		AuditFields: domain.NewAuditFields(userID, now),
	}
	if err := s.repo.SaveExpense(ctx, expense); err != nil {
		s.LogError(ctx, err, "Failed to save expense", slog.String("user_id", userID))
		return nil, fmt.Errorf("failed to save expense: %w", err)
	}

	s.LogInfo(ctx, "Expense recorded",
		slog.String("expense_id", expense.ExpenseID),
		slog.String("amount", amount.Original.String()))
	s.afterCreate(ctx, domain.RecordEvent{
		Kind:       domain.LineItemExpense,
		RecordID:   expense.ExpenseID,
		UserID:     userID,
		Label:      expense.Category,
		Amount:     amount.Original,
		BaseAmount: amount.Base,
		OccurredAt: now,
	})
	return &expense, nil
}

func (s *expenseService) GetExpense(ctx context.Context, expenseID, userID string) (*domain.Expense, error) {
	return s.repo.FindExpenseByID(ctx, userID, expenseID)
}

func (s *expenseService) ListExpenses(ctx context.Context, params dto.ListRecordsParams, userID string) ([]domain.Expense, error) {
	filter, err := recordFilter(params, userID)
	if err != nil {
		return nil, err
	}
	return s.repo.ListExpenses(ctx, filter)
}

func (s *expenseService) UpdateExpense(ctx context.Context, expenseID string, req dto.UpdateExpenseRequest, userID string) (*domain.Expense, error) {
	expense, err := s.repo.FindExpenseByID(ctx, userID, expenseID)
	if err != nil {
		return nil, err
	}

	if req.Category != nil {
		if expense.Category, err = requireText("category", *req.Category); err != nil {
			return nil, err
		}
	}
	if req.Description != nil {
		expense.Description = *req.Description
	}
	if req.SpentOn != nil {
		if err := requireDate("spentOn", *req.SpentOn); err != nil {
			return nil, err
		}
		expense.SpentOn = req.SpentOn.UTC()
	}
	if req.Recurrence != nil || req.RecurrenceInterval != nil {
		freq, interval := string(expense.Recurrence.Frequency()), expense.Recurrence.Interval()
		if req.Recurrence != nil {
			freq = *req.Recurrence
		}
		if req.RecurrenceInterval != nil {
			interval = *req.RecurrenceInterval
		}
		if expense.Recurrence, err = domain.NewRecurrence(freq, interval); err != nil {
			return nil, err
		}
	}
	if req.Amount != nil || req.Currency != nil {
		amount, currency := expense.Amount.Original.Amount(), expense.Amount.Original.Currency()
		if req.Amount != nil {
			amount = *req.Amount
		}
		if req.Currency != nil {
			currency = *req.Currency
		}
		if err := requirePositive("amount", amount); err != nil {
			return nil, err
		}
		if expense.Amount, err = s.convertAmount(ctx, amount, currency); err != nil {
			return nil, err
		}
	}

	expense.Touch(userID, s.now())
	if err := s.repo.UpdateExpense(ctx, *expense); err != nil {
		s.LogError(ctx, err, "Failed to update expense", slog.String("expense_id", expenseID))
		return nil, fmt.Errorf("failed to update expense: %w", err)
	}
	return expense, nil
}

func (s *expenseService) DeleteExpense(ctx context.Context, expenseID, userID string) error {
	if err := s.repo.DeleteExpense(ctx, userID, expenseID); err != nil {
		return err
	}
	s.LogInfo(ctx, "Expense deleted", slog.String("expense_id", expenseID))
	return nil
}
