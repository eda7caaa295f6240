package services

import (
	"context"

	"github.com/SscSPs/fintrack_app/internal/core/domain"
	"github.com/SscSPs/fintrack_app/internal/dto"
)

// RecordHook runs after a record write has committed. Returned errors are
// logged by the caller and never undo the write.
type RecordHook interface {
	AfterCreate(ctx context.Context, event domain.RecordEvent) error
}

// RecordHookFunc adapts a function to RecordHook.
type RecordHookFunc func(ctx context.Context, event domain.RecordEvent) error

func (f RecordHookFunc) AfterCreate(ctx context.Context, event domain.RecordEvent) error {
	return f(ctx, event)
}

// NotificationSvcFacade defines the notification use cases.
type NotificationSvcFacade interface {
	RecordHook
	ListNotifications(ctx context.Context, params dto.ListNotificationsParams, userID string) ([]domain.Notification, error)
	CountUnread(ctx context.Context, userID string) (int, error)
	MarkRead(ctx context.Context, notificationID, userID string) error
	MarkAllRead(ctx context.Context, userID string) (int, error)
}
