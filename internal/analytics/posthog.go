// Package analytics wraps the PostHog client so callers can use it whether or not
// an API key was configured.
package analytics

import (
	"context"
	"log/slog"

	"github.com/SscSPs/fintrack_app/internal/core/domain"
	"github.com/posthog/posthog-go"
)

const defaultEndpoint = "https://eu.i.posthog.com"

// PosthogClientWrapper is safe to use uninitialized; every call is then a no-op.
type PosthogClientWrapper struct {
	posthogClient posthog.Client
	logger        *slog.Logger
}

// InitializePosthogClient returns an uninitialized wrapper when apiKey is empty.
func InitializePosthogClient(apiKey string, logger *slog.Logger) *PosthogClientWrapper {
	if apiKey == "" {
		logger.Warn("Posthog API key is empty, not initializing posthog client.")
		return &PosthogClientWrapper{logger: logger}
	}
	client, err := posthog.NewWithConfig(apiKey, posthog.Config{Endpoint: defaultEndpoint})
	if err != nil {
		logger.Error("Failed to initialize posthog client", slog.String("error", err.Error()))
		return &PosthogClientWrapper{logger: logger}
	}
	logger.Info("Posthog client initialized")
	return &PosthogClientWrapper{posthogClient: client, logger: logger}
}

// NewPosthogClientWrapper wraps an existing client, mainly for tests.
func NewPosthogClientWrapper(client posthog.Client, logger *slog.Logger) *PosthogClientWrapper {
	return &PosthogClientWrapper{posthogClient: client, logger: logger}
}

func (w *PosthogClientWrapper) IsInitialized() bool {
	return w != nil && w.posthogClient != nil
}

func (w *PosthogClientWrapper) Enqueue(distinctID string, event string, properties map[string]any) {
	if !w.IsInitialized() {
		return
	}
	if w.logger != nil {
		w.logger.Debug("Enqueueing event", slog.String("distinct_id", distinctID), slog.String("event", event))
	}
	if err := w.posthogClient.Enqueue(posthog.Capture{
		DistinctId: distinctID,
		Event:      event,
		Properties: properties,
	}); err != nil && w.logger != nil {
		w.logger.Warn("Failed to enqueue posthog event", slog.String("event", event), slog.String("error", err.Error()))
	}
}

// AfterCreate captures a "<kind>_created" event. Amounts are sent in the base currency only.
func (w *PosthogClientWrapper) AfterCreate(_ context.Context, event domain.RecordEvent) error {
	w.Enqueue(event.UserID, eventName(event.Kind), map[string]any{
		"record_id":     event.RecordID,
		"currency":      event.Amount.Currency(),
		"base_amount":   event.BaseAmount.Amount().InexactFloat64(),
		"base_currency": event.BaseAmount.Currency(),
	})
	return nil
}

func eventName(kind domain.LineItemKind) string {
	switch kind {
	case domain.LineItemIncome:
		return "income_created"
	case domain.LineItemExpense:
		return "expense_created"
	case domain.LineItemSaving:
		return "saving_created"
	case domain.LineItemInvestment:
		return "investment_created"
	}
	return "record_created"
}

func (w *PosthogClientWrapper) Close() {
	if !w.IsInitialized() {
		return
	}
	if err := w.posthogClient.Close(); err != nil && w.logger != nil {
		w.logger.Warn("Failed to close posthog client", slog.String("error", err.Error()))
	}
}
