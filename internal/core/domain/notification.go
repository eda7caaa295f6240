package domain

import "time"

// NotificationType identifies the event a notification was raised for.
type NotificationType string

const (
	NotificationIncomeRecorded     NotificationType = "INCOME_RECORDED"
	NotificationExpenseRecorded    NotificationType = "EXPENSE_RECORDED"
	NotificationSavingRecorded     NotificationType = "SAVING_RECORDED"
	NotificationInvestmentRecorded NotificationType = "INVESTMENT_RECORDED"
)

// Notification is a user-facing message.
type Notification struct {
	NotificationID string           `json:"notificationID"`
	UserID         string           `json:"userID"`
	Type           NotificationType `json:"type"`
	Title          string           `json:"title"`
	Message        string           `json:"message"`
	IsRead         bool             `json:"isRead"`
	CreatedAt      time.Time        `json:"createdAt"`
}

// RecordEvent is emitted after a record write commits.
type RecordEvent struct {
	Kind       LineItemKind
	RecordID   string
	UserID     string
	Label      string
	Amount     Money
	BaseAmount Money
	OccurredAt time.Time
}
