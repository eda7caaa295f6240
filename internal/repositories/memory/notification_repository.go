package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/SscSPs/fintrack_app/internal/apperrors"
	"github.com/SscSPs/fintrack_app/internal/core/domain"
	portsrepo "github.com/SscSPs/fintrack_app/internal/core/ports/repositories"
)

type NotificationRepository struct {
	mu   sync.RWMutex
	rows map[string]domain.Notification
}

func NewNotificationRepository() *NotificationRepository {
	return &NotificationRepository{rows: make(map[string]domain.Notification)}
}

var _ portsrepo.NotificationRepositoryFacade = (*NotificationRepository)(nil)

func (r *NotificationRepository) ListNotifications(_ context.Context, userID string, unreadOnly bool, limit, offset int) ([]domain.Notification, error) {
	r.mu.RLock()
	out := make([]domain.Notification, 0)
	for _, n := range r.rows {
		if n.UserID != userID || (unreadOnly && n.IsRead) {
			continue
		}
		out = append(out, n)
	}
	r.mu.RUnlock()
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return paginate(out, limit, offset), nil
}

func (r *NotificationRepository) CountUnread(_ context.Context, userID string) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	count := 0
	for _, n := range r.rows {
		if n.UserID == userID && !n.IsRead {
			count++
		}
	}
	return count, nil
}

func (r *NotificationRepository) SaveNotification(_ context.Context, n domain.Notification) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rows[n.NotificationID] = n
	return nil
}

func (r *NotificationRepository) MarkRead(_ context.Context, userID, notificationID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	n, ok := r.rows[notificationID]
	if !ok || n.UserID != userID {
		return fmt.Errorf("%w: notification %s", apperrors.ErrNotFound, notificationID)
	}
	n.IsRead = true
	r.rows[notificationID] = n
	return nil
}

func (r *NotificationRepository) MarkAllRead(_ context.Context, userID string) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	marked := 0
	for id, n := range r.rows {
		if n.UserID == userID && !n.IsRead {
			n.IsRead = true
			r.rows[id] = n
			marked++
		}
	}
	return marked, nil
}
