package booking

import (
	"errors"
	"fmt"

	"floorten/internal/models"
)

// All engine failure modes are expected, recoverable conditions; the
// caller decides user-facing wording.
var (
	ErrUnknownRoom       = errors.New("unknown room")
	ErrInvalidInterval   = errors.New("interval end must be after start")
	ErrConflict          = errors.New("requested time conflicts with an existing booking")
	ErrNotFound          = errors.New("no booking found for the specified time")
	ErrUnauthorized      = errors.New("booking belongs to another user")
	ErrInvalidDateRange  = errors.New("recurrence end date must be after start date")
	ErrInvalidRecurrence = errors.New("invalid recurrence")
	ErrNothingToSchedule = errors.New("recurrence produced no occurrences")
	ErrPersistenceFailed = errors.New("failed to persist booking state")
	ErrEngineBusy        = errors.New("engine busy, try again shortly")
)

// ConflictError carries the booking that blocks a requested interval.
// It unwraps to ErrConflict.
type ConflictError struct {
	Conflict models.Booking
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("time conflicts with %q (%s - %s)",
		e.Conflict.EventName,
		e.Conflict.StartTime.Format("15:04"),
		e.Conflict.EndTime.Format("15:04"))
}

func (e *ConflictError) Unwrap() error { return ErrConflict }
