package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/SscSPs/fintrack_app/internal/core/domain"
	portsrepo "github.com/SscSPs/fintrack_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/fintrack_app/internal/core/ports/services"
	"github.com/SscSPs/fintrack_app/internal/dto"
	"github.com/google/uuid"
)

const defaultNotificationLimit = 50

type notificationService struct {
	BaseService
	repo portsrepo.NotificationRepositoryFacade
	now  func() time.Time
}

// NewNotificationService creates the notification service. It doubles as the
// record hook that turns record events into notifications.
func NewNotificationService(repo portsrepo.NotificationRepositoryFacade) portssvc.NotificationSvcFacade {
	return &notificationService{repo: repo, now: utcNow}
}

var _ portssvc.NotificationSvcFacade = (*notificationService)(nil)

var notificationTypes = map[domain.LineItemKind]domain.NotificationType{
	domain.LineItemIncome:     domain.NotificationIncomeRecorded,
	domain.LineItemExpense:    domain.NotificationExpenseRecorded,
	domain.LineItemSaving:     domain.NotificationSavingRecorded,
	domain.LineItemInvestment: domain.NotificationInvestmentRecorded,
}

var notificationTitles = map[domain.LineItemKind]string{
	domain.LineItemIncome:     "Income recorded",
	domain.LineItemExpense:    "Expense recorded",
	domain.LineItemSaving:     "Savings goal created",
	domain.LineItemInvestment: "Investment added",
}

func (s *notificationService) AfterCreate(ctx context.Context, event domain.RecordEvent) error {
	nType, ok := notificationTypes[event.Kind]
	if !ok {
		return fmt.Errorf("no notification type for %q", event.Kind)
	}

	message := fmt.Sprintf("%s: %s", event.Label, event.Amount.String())
	if event.BaseAmount.Currency() != "" && event.BaseAmount.Currency() != event.Amount.Currency() {
		message = fmt.Sprintf("%s (%s)", message, event.BaseAmount.String())
	}

	n := domain.Notification{
		NotificationID: uuid.NewString(),
		UserID:         event.UserID,
		Type:           nType,
		Title:          notificationTitles[event.Kind],
		Message:        message,
		CreatedAt:      s.now(),
	}
	if err := s.repo.SaveNotification(ctx, n); err != nil {
		return fmt.Errorf("failed to save notification: %w", err)
	}
	s.LogDebug(ctx, "Notification created", slog.String("notification_id", n.NotificationID))
	return nil
}

func (s *notificationService) ListNotifications(ctx context.Context, params dto.ListNotificationsParams, userID string) ([]domain.Notification, error) {
	limit := params.Limit
	if limit <= 0 {
		limit = defaultNotificationLimit
	}
	return s.repo.ListNotifications(ctx, userID, params.UnreadOnly, limit, params.Offset)
}

func (s *notificationService) CountUnread(ctx context.Context, userID string) (int, error) {
	return s.repo.CountUnread(ctx, userID)
}

func (s *notificationService) MarkRead(ctx context.Context, notificationID, userID string) error {
	return s.repo.MarkRead(ctx, userID, notificationID)
}

func (s *notificationService) MarkAllRead(ctx context.Context, userID string) (int, error) {
	marked, err := s.repo.MarkAllRead(ctx, userID)
	if err != nil {
		return 0, err
	}
	s.LogInfo(ctx, "Notifications marked read", slog.Int("count", marked))
	return marked, nil
}
