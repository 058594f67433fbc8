package store

import (
	"encoding/json"
	"fmt"
	"time"

	"floorten/internal/models"
)

// Persisted timestamps are naive local datetimes, no timezone offset.
const timeLayout = "2006-01-02T15:04:05"

type bookingRecord struct {
	ID              string `json:"id,omitempty"`
	StartTime       string `json:"start_time"`
	EndTime         string `json:"end_time"`
	DurationMinutes int    `json:"duration_minutes"`
	EventName       string `json:"event_name"`
	MeetingType     string `json:"meeting_type"`
	ContactName     string `json:"contact_name"`
	OwnerID         string `json:"owner_id"`
}

type roomRecord struct {
	RoomID   string          `json:"room_id"`
	Name     string          `json:"name"`
	Capacity int             `json:"capacity"`
	Bookings []bookingRecord `json:"bookings"`
}

func encodeCatalog(rooms map[string]*models.Room) ([]byte, error) {
	out := make(map[string]roomRecord, len(rooms))
	for id, room := range rooms {
		rec := roomRecord{
			RoomID:   room.RoomID,
			Name:     room.Name,
			Capacity: room.Capacity,
			Bookings: make([]bookingRecord, 0, len(room.Bookings)),
		}
		for _, b := range room.Bookings {
			rec.Bookings = append(rec.Bookings, bookingRecord{
				ID:              b.ID,
				StartTime:       b.StartTime.Format(timeLayout),
				EndTime:         b.EndTime.Format(timeLayout),
				DurationMinutes: b.DurationMinutes,
				EventName:       b.EventName,
				MeetingType:     string(b.MeetingType),
				ContactName:     b.ContactName,
				OwnerID:         b.OwnerID,
			})
		}
		out[id] = rec
	}
	return json.MarshalIndent(out, "", "  ")
}

func decodeCatalog(data []byte) (map[string]*models.Room, error) {
	var raw map[string]roomRecord
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}

	rooms := make(map[string]*models.Room, len(raw))
	for id, rec := range raw {
		roomID := models.NormalizeRoomID(rec.RoomID)
		if roomID == "" {
			roomID = models.NormalizeRoomID(id)
		}
		if rec.Capacity <= 0 {
			return nil, fmt.Errorf("room %s: capacity must be positive", roomID)
		}
		room := models.NewRoom(roomID, rec.Name, rec.Capacity)
		for i, br := range rec.Bookings {
			start, err := time.ParseInLocation(timeLayout, br.StartTime, time.Local)
			if err != nil {
				return nil, fmt.Errorf("room %s booking %d: bad start_time: %w", roomID, i, err)
			}
			end, err := time.ParseInLocation(timeLayout, br.EndTime, time.Local)
			if err != nil {
				return nil, fmt.Errorf("room %s booking %d: bad end_time: %w", roomID, i, err)
			}
			if !end.After(start) {
				return nil, fmt.Errorf("room %s booking %d: end not after start", roomID, i)
			}
			room.Bookings = append(room.Bookings, models.Booking{
				ID:              br.ID,
				StartTime:       start,
				EndTime:         end,
				DurationMinutes: br.DurationMinutes,
				EventName:       br.EventName,
				MeetingType:     models.MeetingType(br.MeetingType),
				ContactName:     br.ContactName,
				OwnerID:         br.OwnerID,
			})
		}
		rooms[roomID] = room
	}
	return rooms, nil
}
