package amqp

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/SscSPs/fintrack_app/internal/core/domain"
	"github.com/rabbitmq/amqp091-go"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type published struct {
	exchange string
	key      string
	msg      amqp091.Publishing
}

type fakeChannel struct {
	sent []published
	err  error
}

func (f *fakeChannel) PublishWithContext(_ context.Context, exchange, key string, _, _ bool, msg amqp091.Publishing) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, published{exchange: exchange, key: key, msg: msg})
	return nil
}

func (f *fakeChannel) Close() error { return nil }

func mustMoney(t *testing.T, amount, code string) domain.Money {
	t.Helper()
	m, err := domain.NewMoney(decimal.RequireFromString(amount), code)
	require.NoError(t, err)
	return m
}

func TestPublisher_AfterCreate(t *testing.T) {
	ch := &fakeChannel{}
	p := newPublisher(ch, "fintrack", "records", nil)
	at := time.Date(2025, 5, 1, 8, 0, 0, 0, time.UTC)

	err := p.AfterCreate(context.Background(), domain.RecordEvent{
		Kind:       domain.LineItemExpense,
		RecordID:   "exp-1",
		UserID:     "u1",
		Label:      "groceries",
		Amount:     mustMoney(t, "46", "EUR"),
		BaseAmount: mustMoney(t, "50", "USD"),
		OccurredAt: at,
	})
	require.NoError(t, err)
	require.Len(t, ch.sent, 1)

	sent := ch.sent[0]
	assert.Equal(t, "fintrack", sent.exchange)
	assert.Equal(t, "records.expense.created", sent.key)
	assert.Equal(t, "application/json", sent.msg.ContentType)
	assert.Equal(t, amqp091.Persistent, sent.msg.DeliveryMode)
	assert.Equal(t, "exp-1", sent.msg.MessageId)

	msg, err := RecordCreatedMessageFromJSON(sent.msg.Body)
	require.NoError(t, err)
	assert.Equal(t, domain.LineItemExpense, msg.Kind)
	assert.Equal(t, "EUR", msg.Currency)
	assert.True(t, msg.BaseAmount.Equal(decimal.NewFromInt(50)))
	assert.True(t, msg.OccurredAt.Equal(at))
}

func TestPublisher_AfterCreateError(t *testing.T) {
	p := newPublisher(&fakeChannel{err: errors.New("channel closed")}, "fintrack", "records", nil)
	err := p.AfterCreate(context.Background(), domain.RecordEvent{
		Kind: domain.LineItemIncome, Amount: mustMoney(t, "1", "USD"), BaseAmount: mustMoney(t, "1", "USD"),
	})
	assert.ErrorContains(t, err, "publish message")
}
