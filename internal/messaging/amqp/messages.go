package amqp

import (
	"encoding/json"
	"time"

	"github.com/SscSPs/fintrack_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// RecordCreatedMessage announces a committed record write to downstream consumers.
type RecordCreatedMessage struct {
	Kind         domain.LineItemKind `json:"kind"`
	RecordID     string              `json:"recordID"`
	UserID       string              `json:"userID"`
	Label        string              `json:"label"`
	Amount       decimal.Decimal     `json:"amount"`
	Currency     string              `json:"currency"`
	BaseAmount   decimal.Decimal     `json:"baseAmount"`
	BaseCurrency string              `json:"baseCurrency"`
	OccurredAt   time.Time           `json:"occurredAt"`
}

// NewRecordCreatedMessage flattens a record event.
func NewRecordCreatedMessage(event domain.RecordEvent) *RecordCreatedMessage {
	return &RecordCreatedMessage{
		Kind:         event.Kind,
		RecordID:     event.RecordID,
		UserID:       event.UserID,
		Label:        event.Label,
		Amount:       event.Amount.Amount(),
		Currency:     event.Amount.Currency(),
		BaseAmount:   event.BaseAmount.Amount(),
		BaseCurrency: event.BaseAmount.Currency(),
		OccurredAt:   event.OccurredAt,
	}
}

// ToJSON converts the message to JSON bytes
func (m *RecordCreatedMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// RecordCreatedMessageFromJSON decodes a message body.
func RecordCreatedMessageFromJSON(data []byte) (*RecordCreatedMessage, error) {
	var msg RecordCreatedMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
