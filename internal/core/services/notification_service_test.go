package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/SscSPs/fintrack_app/internal/apperrors"
	"github.com/SscSPs/fintrack_app/internal/core/domain"
	"github.com/SscSPs/fintrack_app/internal/core/services"
	"github.com/SscSPs/fintrack_app/internal/dto"
	"github.com/SscSPs/fintrack_app/internal/repositories/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNotificationService_AfterCreateAndRead(t *testing.T) {
	ctx := context.Background()
	svc := services.NewNotificationService(memory.NewNotificationRepository())

	err := svc.AfterCreate(ctx, domain.RecordEvent{
		Kind:       domain.LineItemExpense,
		RecordID:   "e1",
		UserID:     testUser,
		Label:      "groceries",
		Amount:     money("46", "EUR"),
		BaseAmount: money("50", "USD"),
		OccurredAt: time.Now(),
	})
	require.NoError(t, err)
	require.NoError(t, svc.AfterCreate(ctx, domain.RecordEvent{
		Kind: domain.LineItemIncome, RecordID: "i1", UserID: testUser, Label: "salary",
		Amount: money("1000", "USD"), BaseAmount: money("1000", "USD"),
	}))

	list, err := svc.ListNotifications(ctx, dto.ListNotificationsParams{}, testUser)
	require.NoError(t, err)
	require.Len(t, list, 2)

	var expense domain.Notification
	for _, n := range list {
		if n.Type == domain.NotificationExpenseRecorded {
			expense = n
		}
	}
	assert.Equal(t, "Expense recorded", expense.Title)
	assert.Contains(t, expense.Message, "groceries")
	assert.Contains(t, expense.Message, "46.00")
	assert.Contains(t, expense.Message, "$50.00")

	unread, err := svc.CountUnread(ctx, testUser)
	require.NoError(t, err)
	assert.Equal(t, 2, unread)

	require.NoError(t, svc.MarkRead(ctx, expense.NotificationID, testUser))
	assert.ErrorIs(t, svc.MarkRead(ctx, expense.NotificationID, "other-user"), apperrors.ErrNotFound)

	unreadOnly, err := svc.ListNotifications(ctx, dto.ListNotificationsParams{UnreadOnly: true}, testUser)
	require.NoError(t, err)
	assert.Len(t, unreadOnly, 1)

	marked, err := svc.MarkAllRead(ctx, testUser)
	require.NoError(t, err)
	assert.Equal(t, 1, marked)

	unread, err = svc.CountUnread(ctx, testUser)
	require.NoError(t, err)
	assert.Zero(t, unread)
}
