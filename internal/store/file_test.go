package store

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"floorten/internal/models"
)

func TestFileStoreSeedsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rooms.json")
	st, err := NewFileStore(path)
	require.NoError(t, err)

	rooms, err := st.Load(context.Background())
	require.NoError(t, err)

	assert.Len(t, rooms, 5)
	assert.Equal(t, "The Nest", rooms["NEST"].Name)
	assert.Equal(t, 30, rooms["NEST"].Capacity)

	// Seeding persists immediately.
	_, err = os.Stat(path)
	assert.NoError(t, err)
}

func TestFileStoreRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rooms.json")
	st, err := NewFileStore(path)
	require.NoError(t, err)

	ctx := context.Background()
	rooms, err := st.Load(ctx)
	require.NoError(t, err)

	start := time.Date(2024, 11, 4, 14, 0, 0, 0, time.Local)
	b, err := models.NewBooking(start, 2*time.Hour, "Customer Playback", models.MeetingClient, "John Smith", "U42")
	require.NoError(t, err)
	rooms["NEST"].Bookings = append(rooms["NEST"].Bookings, *b)

	require.NoError(t, st.Save(ctx, rooms))

	reloaded, err := st.Load(ctx)
	require.NoError(t, err)
	require.Len(t, reloaded["NEST"].Bookings, 1)

	got := reloaded["NEST"].Bookings[0]
	assert.Equal(t, b.ID, got.ID)
	assert.True(t, got.StartTime.Equal(start))
	assert.True(t, got.EndTime.Equal(start.Add(2*time.Hour)))
	assert.Equal(t, 120, got.DurationMinutes)
	assert.Equal(t, models.MeetingClient, got.MeetingType)
	assert.Equal(t, "U42", got.OwnerID)
}

func TestFileStorePersistsNaiveTimestamps(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rooms.json")
	st, err := NewFileStore(path)
	require.NoError(t, err)

	ctx := context.Background()
	rooms, err := st.Load(ctx)
	require.NoError(t, err)

	start := time.Date(2024, 11, 4, 14, 0, 0, 0, time.Local)
	b, err := models.NewBooking(start, time.Hour, "Standup", models.MeetingInternal, "Jane", "U1")
	require.NoError(t, err)
	rooms["RAVEN"].Bookings = append(rooms["RAVEN"].Bookings, *b)
	require.NoError(t, st.Save(ctx, rooms))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"2024-11-04T14:00:00"`)
}

func TestFileStoreRejectsCorruptCatalog(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rooms.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	st, err := NewFileStore(path)
	require.NoError(t, err)

	_, err = st.Load(context.Background())
	assert.Error(t, err)
}

func TestFileStoreRejectsInvalidBooking(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rooms.json")
	raw := `{"NEST": {"room_id": "NEST", "name": "The Nest", "capacity": 30,
		"bookings": [{"start_time": "2024-11-04T15:00:00", "end_time": "2024-11-04T14:00:00",
		"duration_minutes": 60, "event_name": "x", "meeting_type": "internal",
		"contact_name": "y", "owner_id": "U1"}]}}`
	require.NoError(t, os.WriteFile(path, []byte(raw), 0o644))

	st, err := NewFileStore(path)
	require.NoError(t, err)

	_, err = st.Load(context.Background())
	assert.Error(t, err)
}
