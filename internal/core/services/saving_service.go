package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/SscSPs/fintrack_app/internal/apperrors"
	"github.com/SscSPs/fintrack_app/internal/core/domain"
	portsrepo "github.com/SscSPs/fintrack_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/fintrack_app/internal/core/ports/services"
	"github.com/SscSPs/fintrack_app/internal/dto"
	"github.com/google/uuid"
)

type savingService struct {
	recordBase
	repo portsrepo.SavingRepositoryFacade
}

// NewSavingService creates a new savings service.
func NewSavingService(repo portsrepo.SavingRepositoryFacade, converter portssvc.ConverterSvc, opts ...RecordServiceOption) portssvc.SavingSvcFacade {
	return &savingService{recordBase: newRecordBase(converter, opts), repo: repo}
}

var _ portssvc.SavingSvcFacade = (*savingService)(nil)

func (s *savingService) CreateSaving(ctx context.Context, req dto.CreateSavingRequest, userID string) (*domain.Saving, error) {
	goal, err := requireText("goal", req.Goal)
	if err != nil {
		return nil, err
	}
	if err := requirePositive("targetAmount", req.TargetAmount); err != nil {
		return nil, err
	}
	if err := requireNonNegative("savedAmount", req.SavedAmount); err != nil {
		return nil, err
	}
	saved, err := s.convertAmount(ctx, req.SavedAmount, req.Currency)
	if err != nil {
		return nil, err
	}
	target, err := domain.NewMoney(req.TargetAmount, saved.Original.Currency())
	if err != nil {
		return nil, err
	}

	now := s.now()
	saving := domain.Saving{
		SavingID:    uuid.NewString(),
		UserID:      userID,
		Goal:        goal,
		Target:      target,
		Saved:       saved,
		TargetDate:  req.TargetDate,
		AuditFields: domain.NewAuditFields(userID, now),
	}
	if err := s.repo.SaveSaving(ctx, saving); err != nil {
		s.LogError(ctx, err, "Failed to save savings goal", slog.String("user_id", userID))
		return nil, fmt.Errorf("failed to save savings goal: %w", err)
	}

	s.LogInfo(ctx, "Savings goal created", slog.String("saving_id", saving.SavingID))
	s.afterCreate(ctx, domain.RecordEvent{
		Kind:       domain.LineItemSaving,
		RecordID:   saving.SavingID,
		UserID:     userID,
		Label:      saving.Goal,
		Amount:     saved.Original,
		BaseAmount: saved.Base,
		OccurredAt: now,
	})
	return &saving, nil
}

func (s *savingService) GetSaving(ctx context.Context, savingID, userID string) (*domain.Saving, error) {
	return s.repo.FindSavingByID(ctx, userID, savingID)
}

func (s *savingService) ListSavings(ctx context.Context, params dto.ListRecordsParams, userID string) ([]domain.Saving, error) {
	filter, err := recordFilter(params, userID)
	if err != nil {
		return nil, err
	}
	return s.repo.ListSavings(ctx, filter)
}

// UpdateSaving keeps the goal's currency; only amounts, goal and date change.
func (s *savingService) UpdateSaving(ctx context.Context, savingID string, req dto.UpdateSavingRequest, userID string) (*domain.Saving, error) {
	saving, err := s.repo.FindSavingByID(ctx, userID, savingID)
	if err != nil {
		return nil, err
	}
	currency := saving.Target.Currency()

	if req.Goal != nil {
		if saving.Goal, err = requireText("goal", *req.Goal); err != nil {
			return nil, err
		}
	}
	if req.TargetAmount != nil {
		if err := requirePositive("targetAmount", *req.TargetAmount); err != nil {
			return nil, err
		}
		if saving.Target, err = domain.NewMoney(*req.TargetAmount, currency); err != nil {
			return nil, err
		}
	}
	if req.SavedAmount != nil {
		if err := requireNonNegative("savedAmount", *req.SavedAmount); err != nil {
			return nil, err
		}
		if saving.Saved, err = s.convertAmount(ctx, *req.SavedAmount, currency); err != nil {
			return nil, err
		}
	}
	if req.TargetDate != nil {
		saving.TargetDate = req.TargetDate
	}

	return s.persistUpdate(ctx, saving, userID)
}

// AddContribution adds (or, when negative, withdraws) an amount in the goal's currency.
func (s *savingService) AddContribution(ctx context.Context, savingID string, req dto.ContributionRequest, userID string) (*domain.Saving, error) {
	if req.Amount.IsZero() {
		return nil, apperrors.NewValidationError("contribution amount must not be zero")
	}
	code, err := domain.NormalizeCurrencyCode(req.Currency)
	if err != nil {
		return nil, err
	}
	contribution, err := domain.NewMoney(req.Amount, code)
	if err != nil {
		return nil, err
	}

	saving, err := s.repo.FindSavingByID(ctx, userID, savingID)
	if err != nil {
		return nil, err
	}
	total, err := saving.Saved.Original.Add(contribution)
	if err != nil {
		return nil, err
	}
	if total.IsNegative() {
		return nil, apperrors.NewValidationError(fmt.Sprintf("withdrawal exceeds saved amount %s", saving.Saved.Original.String()))
	}
	if saving.Saved, err = s.convertAmount(ctx, total.Amount(), total.Currency()); err != nil {
		return nil, err
	}

	updated, err := s.persistUpdate(ctx, saving, userID)
	if err != nil {
		return nil, err
	}
	s.LogInfo(ctx, "Savings contribution recorded",
		slog.String("saving_id", savingID),
		slog.String("amount", contribution.String()))
	return updated, nil
}

func (s *savingService) persistUpdate(ctx context.Context, saving *domain.Saving, userID string) (*domain.Saving, error) {
	saving.Touch(userID, s.now())
	if err := s.repo.UpdateSaving(ctx, *saving); err != nil {
		s.LogError(ctx, err, "Failed to update savings goal", slog.String("saving_id", saving.SavingID))
		return nil, fmt.Errorf("failed to update savings goal: %w", err)
	}
	return saving, nil
}

func (s *savingService) DeleteSaving(ctx context.Context, savingID, userID string) error {
	if err := s.repo.DeleteSaving(ctx, userID, savingID); err != nil {
		return err
	}
	s.LogInfo(ctx, "Savings goal deleted", slog.String("saving_id", savingID))
	return nil
}

