package models

import (
	"sort"
	"strings"
)

// Room is a bookable meeting room. Identity and capacity never change
// after creation; the bookings collection is mutated only by the engine.
type Room struct {
	RoomID   string    `json:"room_id"`
	Name     string    `json:"name"`
	Capacity int       `json:"capacity"`
	Bookings []Booking `json:"bookings"`
}

// NormalizeRoomID canonicalizes a room identifier for lookups.
// Room IDs are case-insensitive.
func NormalizeRoomID(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}

// NewRoom creates a room with no bookings.
func NewRoom(roomID, name string, capacity int) *Room {
	return &Room{RoomID: NormalizeRoomID(roomID), Name: name, Capacity: capacity}
}

// Clone returns a deep copy, safe to hand out while the catalog keeps
// mutating behind its lock.
func (r *Room) Clone() *Room {
	out := &Room{RoomID: r.RoomID, Name: r.Name, Capacity: r.Capacity}
	if len(r.Bookings) > 0 {
		out.Bookings = append([]Booking(nil), r.Bookings...)
	}
	return out
}

// SortedBookings returns the room's bookings ordered by start time.
func (r *Room) SortedBookings() []Booking {
	out := append([]Booking(nil), r.Bookings...)
	sort.Slice(out, func(i, j int) bool {
		return out[i].StartTime.Before(out[j].StartTime)
	})
	return out
}
