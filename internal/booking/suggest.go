package booking

import (
	"time"

	"floorten/internal/models"
)

// Suggestions is the answer to "that slot is taken, what else is
// there": the blocking booking, up to MaxSuggestions alternative start
// times in the same room on the same day, and every other room free at
// the originally requested time.
type Suggestions struct {
	Conflict       *models.Booking
	AlternateTimes []time.Time
	OtherRooms     []models.Room
}

// SuggestAlternatives builds suggestions for a blocked request. All
// three parts come from one consistent snapshot of the catalog. A nil
// Conflict means the slot is actually free and no suggestions are
// needed.
func (e *Engine) SuggestAlternatives(roomID string, start time.Time, d time.Duration) Suggestions {
	e.mu.RLock()
	defer e.mu.RUnlock()

	id := models.NormalizeRoomID(roomID)
	iv := models.NewInterval(start, d)

	s := Suggestions{Conflict: e.findConflictLocked(id, iv)}
	if s.Conflict == nil {
		return s
	}

	times := e.hourlyCandidatesLocked(id, start, d)
	if len(times) > e.cfg.MaxSuggestions {
		times = times[:e.cfg.MaxSuggestions]
	}
	s.AlternateTimes = times

	for _, room := range e.sortedRoomsLocked() {
		if room.RoomID == id {
			continue
		}
		if e.isAvailableLocked(room.RoomID, iv) {
			s.OtherRooms = append(s.OtherRooms, *room.Clone())
		}
	}
	return s
}
