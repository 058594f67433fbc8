package parser

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"floorten/internal/models"
)

func TestParseBook(t *testing.T) {
	cmd, err := Parse("@floorten book nest, tomorrow, 2pm, 2 hours, NWG NCF Customer Playback, client, John Smith", parseNow)
	require.NoError(t, err)

	book, ok := cmd.(BookCommand)
	require.True(t, ok)
	assert.Equal(t, "NEST", book.RoomID)
	assert.True(t, book.Start.Equal(time.Date(2024, 11, 5, 14, 0, 0, 0, time.Local)))
	assert.Equal(t, 2*time.Hour, book.Duration)
	assert.Equal(t, "NWG NCF Customer Playback", book.EventName)
	assert.Equal(t, models.MeetingClient, book.MeetingType)
	assert.Equal(t, "John Smith", book.ContactName)
}

func TestParseBookMinutes(t *testing.T) {
	cmd, err := Parse("book raven, today, 14:00, 30 minutes, 1:1, internal, Jane Doe", parseNow)
	require.NoError(t, err)

	book := cmd.(BookCommand)
	assert.Equal(t, 30*time.Minute, book.Duration)
	assert.True(t, book.Start.Equal(time.Date(2024, 11, 4, 14, 0, 0, 0, time.Local)))
}

func TestParseBookErrors(t *testing.T) {
	tests := []struct {
		name string
		in   string
		err  error
	}{
		{"too few fields", "book nest, tomorrow, 2pm", ErrBadFormat},
		{"empty field", "book nest, tomorrow, 2pm, 1 hour, , internal, Jane", ErrBadFormat},
		{"bad date", "book nest, someday, 2pm, 1 hour, Sync, internal, Jane", ErrBadDate},
		{"bad time", "book nest, tomorrow, noon, 1 hour, Sync, internal, Jane", ErrBadTime},
		{"bad duration", "book nest, tomorrow, 2pm, a while, Sync, internal, Jane", ErrBadDuration},
		{"odd minutes", "book nest, tomorrow, 2pm, 20 minutes, Sync, internal, Jane", ErrBadMinuteInterval},
		{"bad type", "book nest, tomorrow, 2pm, 1 hour, Sync, external, Jane", ErrBadMeetingType},
		{"bad recurrence", "book nest, tomorrow, 2pm, 1 hour, Sync, internal, Jane, sometimes", ErrBadRecurrence},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.in, parseNow)
			assert.ErrorIs(t, err, tt.err)
		})
	}
}

func TestParseRecurringBook(t *testing.T) {
	cmd, err := Parse("book treehouse, 5/11, 10am, 1 hour, Weekly Sync, internal, Jane Doe, weekly until 26/11", parseNow)
	require.NoError(t, err)

	rec, ok := cmd.(RecurringBookCommand)
	require.True(t, ok)
	assert.Equal(t, "TREEHOUSE", rec.RoomID)
	assert.Equal(t, models.FreqWeekly, rec.Recurrence.Frequency)
	assert.True(t, rec.Recurrence.Start.Equal(time.Date(2024, 11, 5, 10, 0, 0, 0, time.Local)))
	assert.True(t, rec.Recurrence.EndDate.Equal(time.Date(2024, 11, 26, 0, 0, 0, 0, time.Local)))
	assert.Equal(t, time.Hour, rec.Recurrence.Duration)
	assert.Equal(t, "Weekly Sync", rec.EventName)
}

func TestParseRecurrenceClauseVariants(t *testing.T) {
	tests := []struct {
		clause string
		want   models.Frequency
	}{
		{"daily until 20/12", models.FreqDaily},
		{"every day until 20/12", models.FreqDaily},
		{"weekly until 20/12", models.FreqWeekly},
		{"every week until 20/12", models.FreqWeekly},
		{"fortnightly until 20/12", models.FreqBiweekly},
		{"every 2 weeks until 20/12", models.FreqBiweekly},
		{"every other week until 20/12", models.FreqBiweekly},
		{"monthly until 20/12", models.FreqMonthly},
		{"every month until 20/12", models.FreqMonthly},
	}
	for _, tt := range tests {
		t.Run(tt.clause, func(t *testing.T) {
			freq, until, err := parseRecurrenceClause(tt.clause, parseNow)
			require.NoError(t, err)
			assert.Equal(t, tt.want, freq)
			assert.Equal(t, 20, until.Day())
		})
	}
}

func TestParseCancel(t *testing.T) {
	cmd, err := Parse("cancel booking 2", parseNow)
	require.NoError(t, err)
	assert.Equal(t, CancelCommand{Numbers: []int{2}}, cmd)

	cmd, err = Parse("cancel bookings 1, 2, 4", parseNow)
	require.NoError(t, err)
	assert.Equal(t, CancelCommand{Numbers: []int{1, 2, 4}}, cmd)

	cmd, err = Parse("cancel booking #3", parseNow)
	require.NoError(t, err)
	assert.Equal(t, CancelCommand{Numbers: []int{3}}, cmd)

	cmd, err = Parse("cancel all bookings", parseNow)
	require.NoError(t, err)
	assert.Equal(t, CancelCommand{All: true}, cmd)

	cmd, err = Parse("cancel booking", parseNow)
	require.NoError(t, err)
	assert.IsType(t, CancelPromptCommand{}, cmd)
}

func TestParseSimpleCommands(t *testing.T) {
	for _, tt := range []struct {
		in   string
		want Command
	}{
		{"list rooms", ListRoomsCommand{}},
		{"LIST ROOMS", ListRoomsCommand{}},
		{"book a room", BookHelpCommand{}},
		{"my bookings", MyBookingsCommand{}},
		{"what can you do", HelpCommand{}},
		{"", HelpCommand{}},
	} {
		t.Run(tt.in, func(t *testing.T) {
			cmd, err := Parse(tt.in, parseNow)
			require.NoError(t, err)
			assert.IsType(t, tt.want, cmd)
		})
	}
}

func TestParseListAvailable(t *testing.T) {
	cmd, err := Parse("list available rooms for tomorrow", parseNow)
	require.NoError(t, err)
	la := cmd.(ListAvailableCommand)
	assert.True(t, la.Day.Equal(time.Date(2024, 11, 5, 0, 0, 0, 0, time.Local)))
	assert.Nil(t, la.At)

	cmd, err = Parse("list available rooms for tomorrow at 2pm", parseNow)
	require.NoError(t, err)
	la = cmd.(ListAvailableCommand)
	require.NotNil(t, la.At)
	assert.True(t, la.At.Equal(time.Date(2024, 11, 5, 14, 0, 0, 0, time.Local)))

	cmd, err = Parse("list available rooms for 21 august", parseNow)
	require.NoError(t, err)
	la = cmd.(ListAvailableCommand)
	assert.True(t, la.Day.Equal(time.Date(2025, 8, 21, 0, 0, 0, 0, time.Local)))

	_, err = Parse("list available rooms", parseNow)
	assert.ErrorIs(t, err, ErrBadDate)
}

func TestParseStripsMention(t *testing.T) {
	cmd, err := Parse("<@U0BOT> list rooms", parseNow)
	require.NoError(t, err)
	assert.IsType(t, ListRoomsCommand{}, cmd)
}
