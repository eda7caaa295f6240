package pgsql

import (
	"context"
	"fmt"

	"github.com/SscSPs/fintrack_app/internal/core/domain"
	portsrepo "github.com/SscSPs/fintrack_app/internal/core/ports/repositories"
	"github.com/SscSPs/fintrack_app/internal/models"
	"github.com/SscSPs/fintrack_app/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxNotificationRepository struct {
	BaseRepository
}

func newPgxNotificationRepository(db *pgxpool.Pool) *PgxNotificationRepository {
	return &PgxNotificationRepository{BaseRepository: BaseRepository{Pool: db}}
}

var _ portsrepo.NotificationRepositoryFacade = (*PgxNotificationRepository)(nil)

func scanNotification(row pgx.Row) (models.Notification, error) {
	var m models.Notification
	err := row.Scan(&m.NotificationID, &m.UserID, &m.Type, &m.Title, &m.Message, &m.IsRead, &m.CreatedAt)
	return m, err
}

func (r *PgxNotificationRepository) ListNotifications(ctx context.Context, userID string, unreadOnly bool, limit, offset int) ([]domain.Notification, error) {
	query := `
		SELECT notification_id, user_id, type, title, message, is_read, created_at
		FROM notifications
		WHERE user_id = $1 AND ($2 = FALSE OR is_read = FALSE)
		ORDER BY created_at DESC, notification_id
		LIMIT NULLIF($3, 0) OFFSET $4`
	toDomain := func(m models.Notification) (domain.Notification, error) { return mapping.ToDomainNotification(m), nil }
	return collect(ctx, r.Pool, "notifications", query, []any{userID, unreadOnly, limit, offset}, scanNotification, toDomain)
}

func (r *PgxNotificationRepository) CountUnread(ctx context.Context, userID string) (int, error) {
	var count int
	err := r.Pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM notifications WHERE user_id = $1 AND is_read = FALSE`, userID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count unread notifications: %w", err)
	}
	return count, nil
}

func (r *PgxNotificationRepository) SaveNotification(ctx context.Context, n domain.Notification) error {
	m := mapping.ToModelNotification(n)
	_, err := r.Pool.Exec(ctx, `
		INSERT INTO notifications (notification_id, user_id, type, title, message, is_read, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		m.NotificationID, m.UserID, m.Type, m.Title, m.Message, m.IsRead, m.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to save notification %s: %w", m.NotificationID, err)
	}
	return nil
}

func (r *PgxNotificationRepository) MarkRead(ctx context.Context, userID, notificationID string) error {
	return r.execOne(ctx, "notification", notificationID,
		`UPDATE notifications SET is_read = TRUE WHERE user_id = $1 AND notification_id = $2`, userID, notificationID)
}

func (r *PgxNotificationRepository) MarkAllRead(ctx context.Context, userID string) (int, error) {
	tag, err := r.Pool.Exec(ctx,
		`UPDATE notifications SET is_read = TRUE WHERE user_id = $1 AND is_read = FALSE`, userID)
	if err != nil {
		return 0, fmt.Errorf("failed to mark notifications read: %w", err)
	}
	return int(tag.RowsAffected()), nil
}
