package repositories

import (
	"context"

	"github.com/SscSPs/fintrack_app/internal/core/domain"
)

// NotificationReader defines read operations for notifications.
type NotificationReader interface {
	ListNotifications(ctx context.Context, userID string, unreadOnly bool, limit, offset int) ([]domain.Notification, error)
	CountUnread(ctx context.Context, userID string) (int, error)
}

// NotificationWriter defines write operations for notifications.
type NotificationWriter interface {
	SaveNotification(ctx context.Context, n domain.Notification) error
	MarkRead(ctx context.Context, userID, notificationID string) error
	MarkAllRead(ctx context.Context, userID string) (int, error)
}

// NotificationRepositoryFacade combines all notification repository interfaces.
type NotificationRepositoryFacade interface {
	NotificationReader
	NotificationWriter
}
