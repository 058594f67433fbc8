package report

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"floorten/internal/models"
)

func TestScheduleWorkbook(t *testing.T) {
	start := time.Date(2024, 11, 4, 14, 0, 0, 0, time.Local)
	b1, err := models.NewBooking(start, time.Hour, "Playback", models.MeetingClient, "John Smith", "U1")
	require.NoError(t, err)
	b2, err := models.NewBooking(start.Add(-4*time.Hour), 30*time.Minute, "Standup", models.MeetingInternal, "Jane", "U2")
	require.NoError(t, err)

	nest := models.NewRoom("NEST", "The Nest", 30)
	nest.Bookings = []models.Booking{*b1, *b2}
	raven := models.NewRoom("RAVEN", "Raven", 4)

	f, err := ScheduleWorkbook([]models.Room{*nest, *raven})
	require.NoError(t, err)
	defer f.Close()

	assert.ElementsMatch(t, []string{"The Nest", "Raven"}, f.GetSheetList())

	got, err := f.GetCellValue("The Nest", "A1")
	require.NoError(t, err)
	assert.Equal(t, "Date", got)

	// Bookings come out sorted by start, earliest first.
	got, err = f.GetCellValue("The Nest", "D2")
	require.NoError(t, err)
	assert.Equal(t, "Standup", got)
	got, err = f.GetCellValue("The Nest", "D3")
	require.NoError(t, err)
	assert.Equal(t, "Playback", got)

	got, err = f.GetCellValue("The Nest", "B3")
	require.NoError(t, err)
	assert.Equal(t, "14:00", got)
}

func TestWriteScheduleFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "schedule.xlsx")
	require.NoError(t, WriteScheduleFile(path, []models.Room{*models.NewRoom("NEST", "The Nest", 30)}))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()
	assert.Equal(t, []string{"The Nest"}, f.GetSheetList())
}
