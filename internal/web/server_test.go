package web

import (
	"bufio"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"floorten/internal/events"
	"floorten/internal/models"
)

func TestHealthz(t *testing.T) {
	s := New(0, nil, nil, nil)
	ts := httptest.NewServer(s.Handler())
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/healthz")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestReadyz(t *testing.T) {
	healthy := New(0, nil, func(context.Context) error { return nil }, nil)
	ts := httptest.NewServer(healthy.Handler())
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/readyz")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	broken := New(0, nil, func(context.Context) error { return errors.New("store down") }, nil)
	ts2 := httptest.NewServer(broken.Handler())
	defer ts2.Close()

	resp, err = http.Get(ts2.URL + "/readyz")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
}

func TestEventsStream(t *testing.T) {
	bus := events.NewBus()
	s := New(0, bus, nil, nil)
	ts := httptest.NewServer(s.Handler())
	defer ts.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, ts.URL+"/events?stream=bookings", nil)
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	go func() {
		time.Sleep(100 * time.Millisecond)
		start := time.Date(2024, 11, 4, 14, 0, 0, 0, time.Local)
		b, _ := models.NewBooking(start, time.Hour, "Playback", models.MeetingClient, "John", "U7")
		bus.Publish(events.BookingEvent{
			Type:     events.TypeBooked,
			RoomID:   "NEST",
			RoomName: "The Nest",
			Booking:  *b,
		})
	}()

	scanner := bufio.NewScanner(resp.Body)
	var data string
	for scanner.Scan() {
		line := scanner.Text()
		if strings.HasPrefix(line, "data:") {
			data = line
			break
		}
	}
	require.NotEmpty(t, data)
	assert.Contains(t, data, `"room_id":"NEST"`)
	assert.Contains(t, data, `"booking.created"`)
}
