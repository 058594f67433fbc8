// Package booking implements the reservation engine: availability
// checking, conflict detection, slot-gap computation, recurring-booking
// expansion and alternative suggestions. The invariant it guards: for
// every room, confirmed bookings are pairwise non-overlapping at all
// times.
package booking

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"floorten/internal/events"
	"floorten/internal/metrics"
	"floorten/internal/models"
	"floorten/internal/store"
)

// BusinessHours bounds the bookable window of a day, in whole hours.
type BusinessHours struct {
	Open  int
	Close int
}

// Config tunes the engine.
type Config struct {
	Hours          BusinessHours
	LockTimeout    time.Duration
	MaxSuggestions int
}

func (c *Config) applyDefaults() {
	if c.Hours.Open == 0 && c.Hours.Close == 0 {
		c.Hours = BusinessHours{Open: 9, Close: 18}
	}
	if c.LockTimeout <= 0 {
		c.LockTimeout = 2 * time.Second
	}
	if c.MaxSuggestions <= 0 {
		c.MaxSuggestions = 8
	}
}

// Engine owns the room catalog. Availability check, mutation and
// persist happen as one unit under the write lock; reads take the
// shared lock.
type Engine struct {
	mu     sync.RWMutex
	rooms  map[string]*models.Room
	store  store.Store
	bus    *events.Bus
	cfg    Config
	logger *zerolog.Logger
}

// New loads the catalog from the store and constructs the engine.
// A catalog that fails to load stops startup.
func New(ctx context.Context, st store.Store, cfg Config, bus *events.Bus, logger *zerolog.Logger) (*Engine, error) {
	cfg.applyDefaults()
	if logger == nil {
		nop := zerolog.Nop()
		logger = &nop
	}

	rooms, err := st.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load room catalog: %w", err)
	}

	return &Engine{
		rooms:  rooms,
		store:  st,
		bus:    bus,
		cfg:    cfg,
		logger: logger,
	}, nil
}

// acquireWrite takes the write lock with a bounded wait, so a stalled
// caller sees ErrEngineBusy instead of hanging indefinitely.
func (e *Engine) acquireWrite(ctx context.Context) error {
	deadline := time.Now().Add(e.cfg.LockTimeout)
	for {
		if e.mu.TryLock() {
			return nil
		}
		if time.Now().After(deadline) {
			return ErrEngineBusy
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(5 * time.Millisecond):
		}
	}
}

// Request carries everything needed to attempt one reservation.
type Request struct {
	RoomID      string
	Start       time.Time
	Duration    time.Duration
	EventName   string
	MeetingType models.MeetingType
	ContactName string
	OwnerID     string
}

// Book attempts one reservation. The availability check, the in-memory
// append and the durable write form a single critical section; if the
// write fails, the append is rolled back and ErrPersistenceFailed is
// returned.
func (e *Engine) Book(ctx context.Context, req Request) (*models.Booking, error) {
	iv := models.NewInterval(req.Start, req.Duration)
	if !iv.Valid() {
		return nil, ErrInvalidInterval
	}

	if err := e.acquireWrite(ctx); err != nil {
		return nil, err
	}
	defer e.mu.Unlock()

	roomID := models.NormalizeRoomID(req.RoomID)
	room, ok := e.rooms[roomID]
	if !ok {
		return nil, ErrUnknownRoom
	}

	if c := e.findConflictLocked(roomID, iv); c != nil {
		metrics.IncBookingConflict(roomID)
		return nil, &ConflictError{Conflict: *c}
	}

	b, err := models.NewBooking(req.Start, req.Duration, req.EventName, req.MeetingType, req.ContactName, req.OwnerID)
	if err != nil {
		return nil, err
	}

	room.Bookings = append(room.Bookings, *b)
	if err := e.store.Save(ctx, e.rooms); err != nil {
		room.Bookings = room.Bookings[:len(room.Bookings)-1]
		e.logger.Error().Err(err).Str("room", roomID).Msg("persist failed, booking rolled back")
		return nil, fmt.Errorf("%w: %v", ErrPersistenceFailed, err)
	}

	metrics.IncBookingCreated(roomID)
	e.publish(events.TypeBooked, room, *b)
	e.logger.Info().
		Str("room", roomID).
		Str("booking_id", b.ID).
		Time("start", b.StartTime).
		Int("duration_minutes", b.DurationMinutes).
		Msg("booking created")
	return b, nil
}

// Cancel removes the booking whose start exactly equals start, if the
// requester owns it. Cancelling twice yields ErrNotFound the second
// time; that distinction is intentional.
func (e *Engine) Cancel(ctx context.Context, roomID string, start time.Time, requesterID string) error {
	if err := e.acquireWrite(ctx); err != nil {
		return err
	}
	defer e.mu.Unlock()

	id := models.NormalizeRoomID(roomID)
	room, ok := e.rooms[id]
	if !ok {
		return ErrUnknownRoom
	}

	for i := range room.Bookings {
		if !room.Bookings[i].StartTime.Equal(start) {
			continue
		}
		if room.Bookings[i].OwnerID != requesterID {
			return ErrUnauthorized
		}

		removed := room.Bookings[i]
		room.Bookings = append(room.Bookings[:i], room.Bookings[i+1:]...)
		if err := e.store.Save(ctx, e.rooms); err != nil {
			// Order within the collection is irrelevant.
			room.Bookings = append(room.Bookings, removed)
			e.logger.Error().Err(err).Str("room", id).Msg("persist failed, cancel rolled back")
			return fmt.Errorf("%w: %v", ErrPersistenceFailed, err)
		}

		metrics.IncBookingCancelled()
		e.publish(events.TypeCancelled, room, removed)
		e.logger.Info().Str("room", id).Str("booking_id", removed.ID).Msg("booking cancelled")
		return nil
	}
	return ErrNotFound
}

// IsAvailable reports whether the room is free for the whole interval.
// Unknown rooms are reported unavailable, not as an error.
func (e *Engine) IsAvailable(roomID string, iv models.Interval) bool {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.isAvailableLocked(models.NormalizeRoomID(roomID), iv)
}

// FindConflict returns the first stored booking overlapping the
// interval, or nil.
func (e *Engine) FindConflict(roomID string, iv models.Interval) *models.Booking {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.findConflictLocked(models.NormalizeRoomID(roomID), iv)
}

// UserBooking pairs a booking with its room for display.
type UserBooking struct {
	RoomID   string
	RoomName string
	Booking  models.Booking
}

// ListUserBookings returns the owner's bookings across all rooms that
// start strictly after at, ascending by start time. The caller supplies
// "now" so the engine stays deterministic.
func (e *Engine) ListUserBookings(ownerID string, at time.Time) []UserBooking {
	e.mu.RLock()
	defer e.mu.RUnlock()

	var out []UserBooking
	for _, room := range e.sortedRoomsLocked() {
		for _, b := range room.Bookings {
			if b.OwnerID == ownerID && b.StartTime.After(at) {
				out = append(out, UserBooking{RoomID: room.RoomID, RoomName: room.Name, Booking: b})
			}
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Booking.StartTime.Before(out[j].Booking.StartTime)
	})
	return out
}

// Rooms returns a deep-copied snapshot of all rooms sorted by name.
func (e *Engine) Rooms() []models.Room {
	e.mu.RLock()
	defer e.mu.RUnlock()

	out := make([]models.Room, 0, len(e.rooms))
	for _, room := range e.sortedRoomsLocked() {
		out = append(out, *room.Clone())
	}
	return out
}

// RoomSchedule returns one room's bookings sorted by start time.
func (e *Engine) RoomSchedule(roomID string) ([]models.Booking, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	room, ok := e.rooms[models.NormalizeRoomID(roomID)]
	if !ok {
		return nil, ErrUnknownRoom
	}
	return room.SortedBookings(), nil
}

// AvailableRooms returns every room free for the whole interval,
// sorted by name.
func (e *Engine) AvailableRooms(iv models.Interval) []models.Room {
	e.mu.RLock()
	defer e.mu.RUnlock()

	var out []models.Room
	for _, room := range e.sortedRoomsLocked() {
		if e.isAvailableLocked(room.RoomID, iv) {
			out = append(out, *room.Clone())
		}
	}
	return out
}

func (e *Engine) isAvailableLocked(roomID string, iv models.Interval) bool {
	room, ok := e.rooms[roomID]
	if !ok {
		return false
	}
	for i := range room.Bookings {
		if room.Bookings[i].Interval().Overlaps(iv) {
			return false
		}
	}
	return true
}

func (e *Engine) findConflictLocked(roomID string, iv models.Interval) *models.Booking {
	room, ok := e.rooms[roomID]
	if !ok {
		return nil
	}
	for i := range room.Bookings {
		if room.Bookings[i].Interval().Overlaps(iv) {
			b := room.Bookings[i]
			return &b
		}
	}
	return nil
}

// sortedRoomsLocked returns rooms ordered by display name so listings
// and suggestions are deterministic.
func (e *Engine) sortedRoomsLocked() []*models.Room {
	out := make([]*models.Room, 0, len(e.rooms))
	for _, room := range e.rooms {
		out = append(out, room)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

func (e *Engine) publish(t events.Type, room *models.Room, b models.Booking) {
	if e.bus == nil {
		return
	}
	e.bus.Publish(events.BookingEvent{
		Type:     t,
		RoomID:   room.RoomID,
		RoomName: room.Name,
		Booking:  b,
	})
}
