// Package presenter renders engine results as chat text. It holds no
// state and never talks to the engine; handlers pass in what they got
// back.
package presenter

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"floorten/internal/booking"
	"floorten/internal/models"
	"floorten/internal/parser"
)

const (
	dateFormat     = "January 02, 2006"
	clockFormat    = "03:04 PM"
	dateTimeFormat = "January 02 at 03:04 PM"
)

// Confirmation renders a successful booking.
func Confirmation(roomName string, b models.Booking) string {
	return fmt.Sprintf(
		"Room %s booked:\n"+
			"• Date: %s\n"+
			"• Time: %s - %s\n"+
			"• Event: %s\n"+
			"• Type: %s\n"+
			"• Contact: %s",
		roomName,
		b.StartTime.Format(dateFormat),
		b.StartTime.Format(clockFormat),
		b.EndTime.Format(clockFormat),
		b.EventName,
		b.MeetingType,
		b.ContactName,
	)
}

// Alternatives renders the conflict and what else is on offer.
func Alternatives(roomName string, s booking.Suggestions) string {
	var sb strings.Builder

	if s.Conflict != nil {
		kind := "an internal meeting"
		if s.Conflict.MeetingType == models.MeetingClient {
			kind = "a client meeting"
		}
		fmt.Fprintf(&sb, "That time is not available:\n")
		fmt.Fprintf(&sb, "• %s is booked for '%s' for %s\n", roomName, s.Conflict.EventName, kind)
		fmt.Fprintf(&sb, "• Time: %s - %s\n", s.Conflict.StartTime.Format(clockFormat), s.Conflict.EndTime.Format(clockFormat))
		fmt.Fprintf(&sb, "• Contact: %s\n", s.Conflict.ContactName)
	} else {
		sb.WriteString("That time is not available.\n")
	}

	sb.WriteString("\nHere are some alternatives:")

	if len(s.AlternateTimes) > 0 {
		sb.WriteString("\n\nOther times for the same room:")
		for _, t := range s.AlternateTimes {
			fmt.Fprintf(&sb, "\n• %s", t.Format(clockFormat))
		}
	}
	if len(s.OtherRooms) > 0 {
		sb.WriteString("\n\nOther available rooms at the requested time:")
		for _, r := range s.OtherRooms {
			fmt.Fprintf(&sb, "\n• %s (Capacity: %d)", r.Name, r.Capacity)
		}
	}
	return sb.String()
}

// RoomList renders the catalog.
func RoomList(rooms []models.Room) string {
	lines := []string{"Available rooms:"}
	for _, r := range rooms {
		lines = append(lines, fmt.Sprintf("• %s (Capacity: %d)", r.Name, r.Capacity))
	}
	return strings.Join(lines, "\n")
}

// RoomSlots pairs a room with its free gaps for one day.
type RoomSlots struct {
	Room  models.Room
	Slots []models.Interval
}

// DayAvailability renders each room's free gaps for a day. Rooms with
// no free time are left out.
func DayAvailability(day time.Time, rooms []RoomSlots) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Available rooms for %s:", day.Format("January 02"))
	any := false
	for _, rs := range rooms {
		if len(rs.Slots) == 0 {
			continue
		}
		any = true
		fmt.Fprintf(&sb, "\n\n%s:", rs.Room.Name)
		for _, slot := range rs.Slots {
			fmt.Fprintf(&sb, "\n• %s - %s", slot.Start.Format(clockFormat), slot.End.Format(clockFormat))
		}
	}
	if !any {
		sb.WriteString("\nNo rooms have free slots that day.")
	}
	return sb.String()
}

// AvailableRoomsAt renders the rooms free at a specific time.
func AvailableRoomsAt(at models.Interval, rooms []models.Room) string {
	if len(rooms) == 0 {
		return fmt.Sprintf("No rooms available at %s", at.Start.Format(dateTimeFormat))
	}
	lines := []string{fmt.Sprintf("Available rooms for %s:", at.Start.Format(dateTimeFormat))}
	for _, r := range rooms {
		lines = append(lines, fmt.Sprintf("• %s (Capacity: %d)", r.Name, r.Capacity))
	}
	return strings.Join(lines, "\n")
}

// UserBookings renders a numbered list of upcoming bookings; the
// numbers are what cancel commands refer to.
func UserBookings(list []booking.UserBooking) string {
	if len(list) == 0 {
		return "You don't have any upcoming bookings."
	}
	lines := []string{"Your upcoming bookings:"}
	for i, ub := range list {
		lines = append(lines, fmt.Sprintf("%d. %s on %s - %s",
			i+1, ub.RoomName, ub.Booking.StartTime.Format(dateTimeFormat), ub.Booking.EventName))
	}
	return strings.Join(lines, "\n")
}

// CancelPrompt renders the numbered list plus cancellation instructions.
func CancelPrompt(list []booking.UserBooking) string {
	if len(list) == 0 {
		return "You don't have any active bookings to cancel."
	}
	lines := []string{"Your active bookings:"}
	for i, ub := range list {
		lines = append(lines, fmt.Sprintf("%d. %s on %s - %s",
			i+1, ub.RoomName, ub.Booking.StartTime.Format(dateTimeFormat), ub.Booking.EventName))
	}
	lines = append(lines,
		"",
		"To cancel a booking, reply with one of:",
		"• cancel booking <number> (e.g. 1)",
		"• cancel bookings <numbers> (e.g. 1,2,4)",
		"• cancel all bookings",
	)
	return strings.Join(lines, "\n")
}

// Cancelled renders the bookings that were removed.
func Cancelled(list []booking.UserBooking) string {
	if len(list) == 0 {
		return "No bookings were cancelled."
	}
	lines := []string{"The following booking(s) were successfully cancelled:"}
	for _, ub := range list {
		lines = append(lines, fmt.Sprintf("• %s on %s - %s",
			ub.RoomName, ub.Booking.StartTime.Format(dateTimeFormat), ub.Booking.EventName))
	}
	return strings.Join(lines, "\n")
}

// InvalidNumbers reports cancel numbers outside the listed range.
func InvalidNumbers(nums []int) string {
	strs := make([]string, len(nums))
	for i, n := range nums {
		strs[i] = fmt.Sprintf("%d", n)
	}
	return fmt.Sprintf("Invalid booking number(s): %s", strings.Join(strs, ", "))
}

// RecurringSummary renders a series outcome, split into what booked and
// what was skipped.
func RecurringSummary(roomName string, res *booking.RecurringResult) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Recurring booking for %s: %d booked, %d skipped.",
		roomName, len(res.Successful), len(res.Failed))

	if len(res.Successful) > 0 {
		sb.WriteString("\n\nBooked:")
		for _, b := range res.Successful {
			fmt.Fprintf(&sb, "\n• %s", b.StartTime.Format(dateTimeFormat))
		}
	}
	if len(res.Failed) > 0 {
		sb.WriteString("\n\nSkipped:")
		for _, f := range res.Failed {
			if f.Conflict != nil {
				fmt.Fprintf(&sb, "\n• %s - conflicts with '%s'", f.Start.Format(dateTimeFormat), f.Conflict.EventName)
			} else {
				fmt.Fprintf(&sb, "\n• %s - %v", f.Start.Format(dateTimeFormat), f.Err)
			}
		}
	}
	return sb.String()
}

// Help is the fallback reply.
func Help() string {
	return strings.Join([]string{
		"Try these commands:",
		"• book a room",
		"• list rooms",
		"• list available rooms for eg. 21 August",
		"• my bookings",
		"• cancel booking",
	}, "\n")
}

// BookHelp explains the booking message format.
func BookHelp() string {
	return strings.Join([]string{
		"Please book a room using this format:",
		"book [room], [date], [time], [duration], [event details], [internal/client], [Full Contact Name]",
		"",
		"Example: book nest, tomorrow, 2pm, 2 hours, NWG NCF Customer Playback, client, John Smith",
		"For a series, add a final clause: ..., John Smith, weekly until 20/12",
		"Date formats accepted: 'today', 'tomorrow', '28th November', '22nd of November', '19/12', '19/12/2024'",
	}, "\n")
}

// ErrorMessage maps parser and engine errors to user wording. Unknown
// errors get a generic apology so internals never leak into chat.
func ErrorMessage(err error) string {
	switch {
	case errors.Is(err, parser.ErrBadFormat):
		return BookHelp()
	case errors.Is(err, parser.ErrBadDate), errors.Is(err, parser.ErrBadTime):
		return "I couldn't understand the date and time. Please try again."
	case errors.Is(err, parser.ErrBadMinuteInterval):
		return "For bookings less than 1 hour, please use 15, 30, or 45 minute intervals."
	case errors.Is(err, parser.ErrBadDuration):
		return "I couldn't understand the duration. Try '2 hours' or '30 minutes'."
	case errors.Is(err, parser.ErrBadMeetingType):
		return "Please mark the meeting as either 'internal' or 'client'."
	case errors.Is(err, parser.ErrBadRecurrence):
		return "I couldn't understand the recurrence. Try 'weekly until 20/12'."
	case errors.Is(err, booking.ErrUnknownRoom):
		return "I don't know that room. Try 'list rooms'."
	case errors.Is(err, booking.ErrConflict):
		return "That time is not available."
	case errors.Is(err, booking.ErrInvalidInterval):
		return "The booking needs a positive duration."
	case errors.Is(err, booking.ErrNotFound):
		return "I couldn't find that booking."
	case errors.Is(err, booking.ErrUnauthorized):
		return "That booking belongs to someone else."
	case errors.Is(err, booking.ErrInvalidDateRange):
		return "The series end date must be after its start date."
	case errors.Is(err, booking.ErrInvalidRecurrence):
		return "That series would skip months without the chosen day. Pick a day that exists in every month of the range."
	case errors.Is(err, booking.ErrNothingToSchedule):
		return "That series has no occurrences to book."
	case errors.Is(err, booking.ErrEngineBusy):
		return "I'm a bit busy right now, please try again."
	case errors.Is(err, models.ErrEmptyEventName):
		return "Please include the event details."
	case errors.Is(err, models.ErrEmptyContactName):
		return "Please include a contact name."
	default:
		return "Sorry, something went wrong. Please try again."
	}
}
