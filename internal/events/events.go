package events

import (
	"sync"
	"time"

	"floorten/internal/models"
)

// Type identifies a booking lifecycle event.
type Type string

const (
	TypeBooked    Type = "booking.created"
	TypeCancelled Type = "booking.cancelled"
)

// BookingEvent describes a change to a room's bookings.
type BookingEvent struct {
	Type       Type           `json:"type"`
	RoomID     string         `json:"room_id"`
	RoomName   string         `json:"room_name"`
	Booking    models.Booking `json:"booking"`
	OccurredAt time.Time      `json:"occurred_at"`
}

// Handler reacts to a booking event.
type Handler func(event BookingEvent)

// Bus provides in-process pub/sub for booking events.
type Bus struct {
	subscribers map[Type][]Handler
	mu          sync.RWMutex
}

// NewBus constructs an empty bus.
func NewBus() *Bus {
	return &Bus{subscribers: make(map[Type][]Handler)}
}

// Subscribe registers a handler for a given event type.
func (b *Bus) Subscribe(eventType Type, handler Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.subscribers[eventType] = append(b.subscribers[eventType], handler)
}

// Publish notifies subscribers of the event type.
func (b *Bus) Publish(event BookingEvent) {
	b.mu.RLock()
	handlers := append([]Handler(nil), b.subscribers[event.Type]...)
	b.mu.RUnlock()

	if event.OccurredAt.IsZero() {
		event.OccurredAt = time.Now()
	}

	for _, handler := range handlers {
		// Handlers run synchronously; caller decides concurrency model.
		handler(event)
	}
}
