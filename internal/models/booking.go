package models

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

// MeetingType classifies who a booking is for.
type MeetingType string

const (
	MeetingInternal MeetingType = "internal"
	MeetingClient   MeetingType = "client"
)

// ParseMeetingType normalizes a user-supplied meeting type.
func ParseMeetingType(s string) (MeetingType, bool) {
	switch MeetingType(strings.ToLower(strings.TrimSpace(s))) {
	case MeetingInternal:
		return MeetingInternal, true
	case MeetingClient:
		return MeetingClient, true
	}
	return "", false
}

// Validation errors reported by NewBooking.
var (
	ErrEmptyEventName   = errors.New("event name must not be empty")
	ErrEmptyContactName = errors.New("contact name must not be empty")
	ErrEmptyOwnerID     = errors.New("owner id must not be empty")
	ErrBadMeetingType   = errors.New("meeting type must be internal or client")
	ErrBadDuration      = errors.New("duration must be positive")
)

// Booking is a confirmed reservation of a room for a time interval.
// Bookings are immutable after creation; they are removed only by an
// authorized cancel.
type Booking struct {
	ID              string      `json:"id"`
	StartTime       time.Time   `json:"start_time"`
	EndTime         time.Time   `json:"end_time"`
	DurationMinutes int         `json:"duration_minutes"`
	EventName       string      `json:"event_name"`
	MeetingType     MeetingType `json:"meeting_type"`
	ContactName     string      `json:"contact_name"`
	OwnerID         string      `json:"owner_id"`
}

// NewBooking validates the fields and derives the end time and duration.
func NewBooking(start time.Time, d time.Duration, eventName string, mt MeetingType, contactName, ownerID string) (*Booking, error) {
	if d <= 0 {
		return nil, ErrBadDuration
	}
	if strings.TrimSpace(eventName) == "" {
		return nil, ErrEmptyEventName
	}
	if strings.TrimSpace(contactName) == "" {
		return nil, ErrEmptyContactName
	}
	if strings.TrimSpace(ownerID) == "" {
		return nil, ErrEmptyOwnerID
	}
	if mt != MeetingInternal && mt != MeetingClient {
		return nil, ErrBadMeetingType
	}
	return &Booking{
		ID:              uuid.NewString(),
		StartTime:       start,
		EndTime:         start.Add(d),
		DurationMinutes: int(d / time.Minute),
		EventName:       strings.TrimSpace(eventName),
		MeetingType:     mt,
		ContactName:     strings.TrimSpace(contactName),
		OwnerID:         ownerID,
	}, nil
}

// Interval returns the booking's half-open time interval.
func (b *Booking) Interval() Interval {
	return Interval{Start: b.StartTime, End: b.EndTime}
}
