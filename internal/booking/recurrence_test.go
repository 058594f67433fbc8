package booking

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"floorten/internal/models"
)

func TestExpandWeekly(t *testing.T) {
	got, err := Expand(models.RecurrenceSpec{
		Frequency: models.FreqWeekly,
		Start:     time.Date(2024, 11, 4, 14, 0, 0, 0, time.Local),
		EndDate:   time.Date(2024, 11, 25, 0, 0, 0, 0, time.Local),
		Duration:  time.Hour,
	})
	require.NoError(t, err)
	require.Len(t, got, 4)
	assert.Equal(t, 4, got[0].Day())
	assert.Equal(t, 11, got[1].Day())
	assert.Equal(t, 18, got[2].Day())
	assert.Equal(t, 25, got[3].Day())
	for _, d := range got {
		assert.Equal(t, 14, d.Hour())
	}
}

func TestExpandDailyAndBiweekly(t *testing.T) {
	daily, err := Expand(models.RecurrenceSpec{
		Frequency: models.FreqDaily,
		Start:     time.Date(2024, 11, 4, 9, 0, 0, 0, time.Local),
		EndDate:   time.Date(2024, 11, 8, 0, 0, 0, 0, time.Local),
	})
	require.NoError(t, err)
	assert.Len(t, daily, 5)

	biweekly, err := Expand(models.RecurrenceSpec{
		Frequency: models.FreqBiweekly,
		Start:     time.Date(2024, 11, 4, 9, 0, 0, 0, time.Local),
		EndDate:   time.Date(2024, 12, 2, 0, 0, 0, 0, time.Local),
	})
	require.NoError(t, err)
	require.Len(t, biweekly, 3)
	assert.Equal(t, 2, biweekly[2].Day())
	assert.Equal(t, time.December, biweekly[2].Month())
}

func TestExpandMonthlyYearRollover(t *testing.T) {
	got, err := Expand(models.RecurrenceSpec{
		Frequency: models.FreqMonthly,
		Start:     time.Date(2024, 11, 15, 10, 0, 0, 0, time.Local),
		EndDate:   time.Date(2025, 1, 20, 0, 0, 0, 0, time.Local),
	})
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, time.December, got[1].Month())
	assert.Equal(t, 2025, got[2].Year())
	assert.Equal(t, time.January, got[2].Month())
	assert.Equal(t, 15, got[2].Day())
}

func TestExpandMonthlyShortMonthRejected(t *testing.T) {
	// October 31st has no November counterpart; the whole series fails.
	_, err := Expand(models.RecurrenceSpec{
		Frequency: models.FreqMonthly,
		Start:     time.Date(2024, 10, 31, 10, 0, 0, 0, time.Local),
		EndDate:   time.Date(2024, 12, 31, 0, 0, 0, 0, time.Local),
	})
	assert.ErrorIs(t, err, ErrInvalidRecurrence)
}

func TestExpandInvalidRange(t *testing.T) {
	for _, end := range []time.Time{
		time.Date(2024, 11, 4, 0, 0, 0, 0, time.Local),  // same day
		time.Date(2024, 11, 1, 0, 0, 0, 0, time.Local),  // before start
		time.Date(2024, 11, 4, 23, 0, 0, 0, time.Local), // same day, later clock time
	} {
		_, err := Expand(models.RecurrenceSpec{
			Frequency: models.FreqWeekly,
			Start:     time.Date(2024, 11, 4, 14, 0, 0, 0, time.Local),
			EndDate:   end,
		})
		assert.ErrorIs(t, err, ErrInvalidDateRange)
	}
}

func TestExpandUnknownFrequency(t *testing.T) {
	_, err := Expand(models.RecurrenceSpec{
		Frequency: models.Frequency("fortnightly-ish"),
		Start:     time.Date(2024, 11, 4, 14, 0, 0, 0, time.Local),
		EndDate:   time.Date(2024, 11, 25, 0, 0, 0, 0, time.Local),
	})
	assert.ErrorIs(t, err, ErrInvalidRecurrence)
}

func TestBookRecurringPartialConflicts(t *testing.T) {
	e, _ := newTestEngine(t)
	ctx := context.Background()

	// Block three of the five daily occurrences up front.
	for _, day := range []int{5, 6, 8} {
		mustBook(t, e, "NEST", at(day, 14, 0), time.Hour)
	}

	res, err := e.BookRecurring(ctx, RecurringRequest{
		RoomID: "NEST",
		Recurrence: models.RecurrenceSpec{
			Frequency: models.FreqDaily,
			Start:     at(4, 14, 0),
			EndDate:   at(8, 0, 0),
			Duration:  time.Hour,
		},
		EventName:   "Standup",
		MeetingType: models.MeetingInternal,
		ContactName: "Jane",
		OwnerID:     "U2",
	})
	require.NoError(t, err)
	assert.Len(t, res.Successful, 2)
	require.Len(t, res.Failed, 3)
	for _, f := range res.Failed {
		require.NotNil(t, f.Conflict)
		assert.Equal(t, "x", f.Conflict.EventName)
	}

	// Catalog stays consistent: only the two free days were written.
	sched, err := e.RoomSchedule("NEST")
	require.NoError(t, err)
	assert.Len(t, sched, 5)
}

func TestBookRecurringRejectsBadSeries(t *testing.T) {
	e, _ := newTestEngine(t)
	ctx := context.Background()

	_, err := e.BookRecurring(ctx, RecurringRequest{
		RoomID: "NEST",
		Recurrence: models.RecurrenceSpec{
			Frequency: models.FreqMonthly,
			Start:     time.Date(2024, 10, 31, 10, 0, 0, 0, time.Local),
			EndDate:   time.Date(2024, 12, 31, 0, 0, 0, 0, time.Local),
			Duration:  time.Hour,
		},
		EventName:   "Review",
		MeetingType: models.MeetingInternal,
		ContactName: "Jane",
		OwnerID:     "U2",
	})
	require.ErrorIs(t, err, ErrInvalidRecurrence)

	// Nothing was written.
	sched, err := e.RoomSchedule("NEST")
	require.NoError(t, err)
	assert.Empty(t, sched)
}
