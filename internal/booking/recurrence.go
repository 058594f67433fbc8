package booking

import (
	"context"
	"errors"
	"time"

	"floorten/internal/metrics"
	"floorten/internal/models"
)

// Expand materialises a recurrence spec into concrete start times. The
// series runs from the spec's start through its end date inclusive.
// Monthly expansion keeps the day-of-month; if any month in the range
// lacks that day (31st in November, 29th in a non-leap February), the
// whole expansion is rejected rather than silently skipping or
// clamping occurrences.
func Expand(spec models.RecurrenceSpec) ([]time.Time, error) {
	startDay := dateOnly(spec.Start)
	endDay := dateOnly(spec.EndDate)
	if !startDay.Before(endDay) {
		return nil, ErrInvalidDateRange
	}

	switch spec.Frequency {
	case models.FreqDaily, models.FreqWeekly, models.FreqBiweekly, models.FreqMonthly:
	default:
		return nil, ErrInvalidRecurrence
	}

	var out []time.Time
	cur := spec.Start
	for !dateOnly(cur).After(endDay) {
		out = append(out, cur)
		next, err := advance(cur, spec.Frequency)
		if err != nil {
			return nil, err
		}
		cur = next
	}
	return out, nil
}

func advance(t time.Time, f models.Frequency) (time.Time, error) {
	switch f {
	case models.FreqDaily:
		return t.AddDate(0, 0, 1), nil
	case models.FreqWeekly:
		return t.AddDate(0, 0, 7), nil
	case models.FreqBiweekly:
		return t.AddDate(0, 0, 14), nil
	case models.FreqMonthly:
		y, m := t.Year(), t.Month()
		if m == time.December {
			y, m = y+1, time.January
		} else {
			m++
		}
		if t.Day() > daysIn(y, m) {
			return time.Time{}, ErrInvalidRecurrence
		}
		return time.Date(y, m, t.Day(), t.Hour(), t.Minute(), 0, 0, t.Location()), nil
	default:
		return time.Time{}, ErrInvalidRecurrence
	}
}

func daysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// RecurringRequest describes a whole series; every occurrence shares
// the room, duration and booking details.
type RecurringRequest struct {
	RoomID      string
	Recurrence  models.RecurrenceSpec
	EventName   string
	MeetingType models.MeetingType
	ContactName string
	OwnerID     string
}

// FailedOccurrence records one occurrence that could not be booked.
// Conflict is set when an existing booking blocked the slot.
type FailedOccurrence struct {
	Start    time.Time
	Conflict *models.Booking
	Err      error
}

// RecurringResult summarises a partially-successful series.
type RecurringResult struct {
	Successful []models.Booking
	Failed     []FailedOccurrence
}

// BookRecurring expands the series and books each occurrence
// independently. A conflicting occurrence fails alone; the rest of the
// series still books. Expansion errors reject the whole series before
// anything is written.
func (e *Engine) BookRecurring(ctx context.Context, req RecurringRequest) (*RecurringResult, error) {
	starts, err := Expand(req.Recurrence)
	if err != nil {
		return nil, err
	}
	if len(starts) == 0 {
		return nil, ErrNothingToSchedule
	}

	res := &RecurringResult{}
	for _, start := range starts {
		b, err := e.Book(ctx, Request{
			RoomID:      req.RoomID,
			Start:       start,
			Duration:    req.Recurrence.Duration,
			EventName:   req.EventName,
			MeetingType: req.MeetingType,
			ContactName: req.ContactName,
			OwnerID:     req.OwnerID,
		})
		if err != nil {
			failed := FailedOccurrence{Start: start, Err: err}
			var ce *ConflictError
			if errors.As(err, &ce) {
				failed.Conflict = &ce.Conflict
			}
			res.Failed = append(res.Failed, failed)
			continue
		}
		res.Successful = append(res.Successful, *b)
	}

	metrics.AddRecurringOutcome("booked", len(res.Successful))
	metrics.AddRecurringOutcome("skipped", len(res.Failed))
	e.logger.Info().
		Str("room", req.RoomID).
		Str("frequency", string(req.Recurrence.Frequency)).
		Int("booked", len(res.Successful)).
		Int("skipped", len(res.Failed)).
		Msg("recurring series processed")
	return res, nil
}
