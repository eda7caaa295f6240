package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/SscSPs/fintrack_app/internal/apperrors"
)

// RecurrenceFrequency is how often a record repeats.
type RecurrenceFrequency string

const (
	RecurrenceNone    RecurrenceFrequency = "NONE"
	RecurrenceDaily   RecurrenceFrequency = "DAILY"
	RecurrenceWeekly  RecurrenceFrequency = "WEEKLY"
	RecurrenceMonthly RecurrenceFrequency = "MONTHLY"
	RecurrenceYearly  RecurrenceFrequency = "YEARLY"
)

// Recurrence is a frequency plus a positive interval ("every 2 weeks").
type Recurrence struct {
	frequency RecurrenceFrequency
	interval  int
}

// NoRecurrence is a one-off.
var NoRecurrence = Recurrence{frequency: RecurrenceNone, interval: 0}

// NewRecurrence validates the frequency name; an empty name means NONE.
func NewRecurrence(frequency string, interval int) (Recurrence, error) {
	freq := RecurrenceFrequency(strings.ToUpper(strings.TrimSpace(frequency)))
	switch freq {
	case "", RecurrenceNone:
		return NoRecurrence, nil
	case RecurrenceDaily, RecurrenceWeekly, RecurrenceMonthly, RecurrenceYearly:
	default:
		return Recurrence{}, fmt.Errorf("%w: unknown recurrence %q", apperrors.ErrValidation, frequency)
	}
	if interval == 0 {
		interval = 1
	}
	if interval < 0 {
		return Recurrence{}, fmt.Errorf("%w: recurrence interval must be positive", apperrors.ErrValidation)
	}
	return Recurrence{frequency: freq, interval: interval}, nil
}

func (r Recurrence) Frequency() RecurrenceFrequency {
	if r.frequency == "" {
		return RecurrenceNone
	}
	return r.frequency
}

func (r Recurrence) Interval() int     { return r.interval }
func (r Recurrence) IsRecurring() bool { return r.Frequency() != RecurrenceNone }

// Next returns the occurrence after t, or false for one-off records.
func (r Recurrence) Next(t time.Time) (time.Time, bool) {
	switch r.Frequency() {
	case RecurrenceDaily:
		return t.AddDate(0, 0, r.interval), true
	case RecurrenceWeekly:
		return t.AddDate(0, 0, 7*r.interval), true
	case RecurrenceMonthly:
		return t.AddDate(0, r.interval, 0), true
	case RecurrenceYearly:
		return t.AddDate(r.interval, 0, 0), true
	default:
		return time.Time{}, false
	}
}
