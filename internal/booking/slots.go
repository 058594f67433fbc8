package booking

import (
	"sort"
	"time"

	"floorten/internal/models"
)

// AvailableSlots returns the free gaps within business hours for a room
// on a calendar day, ascending. Adjacent or overlapping bookings
// collapse because the cursor only advances forward. Unknown or fully
// booked rooms yield an empty sequence.
func (e *Engine) AvailableSlots(roomID string, day time.Time) []models.Interval {
	e.mu.RLock()
	defer e.mu.RUnlock()

	room, ok := e.rooms[models.NormalizeRoomID(roomID)]
	if !ok {
		return nil
	}

	open := e.hourOnDay(day, e.cfg.Hours.Open)
	close := e.hourOnDay(day, e.cfg.Hours.Close)

	dayStart := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	dayWindow := models.Interval{Start: dayStart, End: dayStart.AddDate(0, 0, 1)}

	todays := make([]models.Booking, 0, len(room.Bookings))
	for _, b := range room.Bookings {
		if b.Interval().Overlaps(dayWindow) {
			todays = append(todays, b)
		}
	}
	sort.Slice(todays, func(i, j int) bool {
		return todays[i].StartTime.Before(todays[j].StartTime)
	})

	var gaps []models.Interval
	cursor := open
	for _, b := range todays {
		if cursor.Before(b.StartTime) {
			end := b.StartTime
			if end.After(close) {
				end = close
			}
			if cursor.Before(end) {
				gaps = append(gaps, models.Interval{Start: cursor, End: end})
			}
		}
		if b.EndTime.After(cursor) {
			cursor = b.EndTime
		}
	}
	if cursor.Before(close) {
		gaps = append(gaps, models.Interval{Start: cursor, End: close})
	}
	return gaps
}

// HourlyCandidateTimes probes every hour boundary within business hours
// (09:00 through 17:00 with default hours) and keeps the start times for
// which the room is free for the whole duration. Coarser than
// AvailableSlots on purpose; used only to build suggestion lists.
func (e *Engine) HourlyCandidateTimes(roomID string, day time.Time, d time.Duration) []time.Time {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.hourlyCandidatesLocked(models.NormalizeRoomID(roomID), day, d)
}

func (e *Engine) hourlyCandidatesLocked(roomID string, day time.Time, d time.Duration) []time.Time {
	if _, ok := e.rooms[roomID]; !ok {
		return nil
	}

	var out []time.Time
	for hour := e.cfg.Hours.Open; hour < e.cfg.Hours.Close; hour++ {
		t := e.hourOnDay(day, hour)
		if e.isAvailableLocked(roomID, models.NewInterval(t, d)) {
			out = append(out, t)
		}
	}
	return out
}

func (e *Engine) hourOnDay(day time.Time, hour int) time.Time {
	return time.Date(day.Year(), day.Month(), day.Day(), hour, 0, 0, 0, day.Location())
}
