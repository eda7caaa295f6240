package domain

import (
	"fmt"
	"time"

	"github.com/SscSPs/fintrack_app/internal/apperrors"
)

// DateRange is an inclusive [start, end] interval.
type DateRange struct {
	start time.Time
	end   time.Time
}

// NewDateRange fails when end is before start.
func NewDateRange(start, end time.Time) (DateRange, error) {
	if start.IsZero() || end.IsZero() {
		return DateRange{}, fmt.Errorf("%w: date range bounds are required", apperrors.ErrValidation)
	}
	if end.Before(start) {
		return DateRange{}, fmt.Errorf("%w: date range end %s is before start %s",
			apperrors.ErrValidation, end.Format(time.DateOnly), start.Format(time.DateOnly))
	}
	return DateRange{start: start, end: end}, nil
}

// MonthOf returns the calendar month containing t.
func MonthOf(t time.Time) DateRange {
	start := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
	end := start.AddDate(0, 1, 0).Add(-time.Nanosecond)
	return DateRange{start: start, end: end}
}

func (r DateRange) Start() time.Time { return r.start }
func (r DateRange) End() time.Time   { return r.end }

// Contains is inclusive at both ends.
func (r DateRange) Contains(t time.Time) bool {
	return !t.Before(r.start) && !t.After(r.end)
}

// Days counts whole days spanned, at least 1.
func (r DateRange) Days() int {
	d := int(r.end.Sub(r.start).Hours()/24) + 1
	if d < 1 {
		return 1
	}
	return d
}
