// Package parser turns free-form chat messages into typed commands.
// Parsing is deterministic: the caller supplies "now" so relative dates
// like "tomorrow" resolve the same way in tests and production.
package parser

import (
	"errors"
	"regexp"
	"strconv"
	"strings"
	"time"

	"floorten/internal/models"
)

var (
	ErrBadFormat         = errors.New("message does not match the booking format")
	ErrBadDate           = errors.New("could not understand the date")
	ErrBadTime           = errors.New("could not understand the time")
	ErrBadDuration       = errors.New("could not understand the duration")
	ErrBadMinuteInterval = errors.New("sub-hour bookings must use 15, 30 or 45 minutes")
	ErrBadMeetingType    = errors.New("meeting type must be internal or client")
	ErrBadRecurrence     = errors.New("could not understand the recurrence rule")
)

// Command is implemented by every parsed message shape.
type Command interface{ command() }

// BookCommand is a single reservation request.
type BookCommand struct {
	RoomID      string
	Start       time.Time
	Duration    time.Duration
	EventName   string
	MeetingType models.MeetingType
	ContactName string
}

// RecurringBookCommand is a series request; the trailing clause of the
// booking message ("weekly until 20/12") selects it.
type RecurringBookCommand struct {
	RoomID      string
	Recurrence  models.RecurrenceSpec
	EventName   string
	MeetingType models.MeetingType
	ContactName string
}

// CancelCommand cancels by list position ("cancel bookings 1,3") or
// everything at once.
type CancelCommand struct {
	Numbers []int
	All     bool
}

// CancelPromptCommand asks for the numbered list before cancelling.
type CancelPromptCommand struct{}

// ListRoomsCommand lists the catalog.
type ListRoomsCommand struct{}

// ListAvailableCommand shows free slots for a day, or free rooms at a
// specific time when At is set.
type ListAvailableCommand struct {
	Day time.Time
	At  *time.Time
}

// MyBookingsCommand lists the sender's upcoming bookings.
type MyBookingsCommand struct{}

// HelpCommand is the fallback for anything unrecognised.
type HelpCommand struct{}

// BookHelpCommand shows the booking message format.
type BookHelpCommand struct{}

func (BookCommand) command()          {}
func (RecurringBookCommand) command() {}
func (CancelCommand) command()        {}
func (CancelPromptCommand) command()  {}
func (ListRoomsCommand) command()     {}
func (ListAvailableCommand) command() {}
func (MyBookingsCommand) command()    {}
func (HelpCommand) command()          {}
func (BookHelpCommand) command()      {}

var (
	mentionRe      = regexp.MustCompile(`^(<@[A-Za-z0-9]+>|@\w+)\s*`)
	cancelNumsRe   = regexp.MustCompile(`^cancel bookings?\s+#?(\d+(?:\s*,\s*\d+)*)$`)
	durationRe     = regexp.MustCompile(`^(\d+)\s*(hours?|hrs?|h|minutes?|mins?|m)$`)
	recurrenceRe   = regexp.MustCompile(`^(?:repeat(?:ing)?\s+)?(daily|weekly|biweekly|fortnightly|monthly|every\s+(?:day|week|other\s+week|2\s+weeks|month))\s+until\s+(.+)$`)
	availableDayRe = regexp.MustCompile(`(today|tomorrow|\d{1,2}(?:st|nd|rd|th)?(?:\s+of)?\s+[a-z]+|\d{1,2}/\d{1,2}(?:/\d{4})?)`)
	availableAtRe  = regexp.MustCompile(`\b(\d{1,2}(?::\d{2})?(?:am|pm)|\d{1,2}:\d{2})\b`)
)

// Parse classifies a message. It never returns a nil Command without an
// error; unrecognised input yields HelpCommand so the caller always has
// something to say.
func Parse(text string, now time.Time) (Command, error) {
	text = strings.TrimSpace(mentionRe.ReplaceAllString(strings.TrimSpace(text), ""))
	lower := strings.ToLower(text)

	if m := cancelNumsRe.FindStringSubmatch(lower); m != nil {
		var nums []int
		for _, part := range strings.Split(m[1], ",") {
			n, err := strconv.Atoi(strings.TrimSpace(part))
			if err != nil {
				return nil, ErrBadFormat
			}
			nums = append(nums, n)
		}
		return CancelCommand{Numbers: nums}, nil
	}

	switch lower {
	case "cancel all bookings":
		return CancelCommand{All: true}, nil
	case "cancel booking", "cancel bookings":
		return CancelPromptCommand{}, nil
	case "book a room":
		return BookHelpCommand{}, nil
	case "list rooms":
		return ListRoomsCommand{}, nil
	case "my bookings":
		return MyBookingsCommand{}, nil
	}

	if strings.HasPrefix(lower, "list available") {
		return parseListAvailable(lower, now)
	}
	if strings.HasPrefix(lower, "book ") {
		return parseBook(text[len("book "):], now)
	}
	return HelpCommand{}, nil
}

// parseBook handles the comma-separated booking message:
//
//	[room], [date], [time], [duration], [event], [internal/client], [contact]
//
// with an optional trailing clause like "weekly until 20/12" turning it
// into a series. Event and contact keep the sender's capitalisation.
func parseBook(body string, now time.Time) (Command, error) {
	fields := strings.Split(body, ",")
	for i := range fields {
		fields[i] = strings.TrimSpace(fields[i])
	}
	if len(fields) < 7 || len(fields) > 8 {
		return nil, ErrBadFormat
	}
	for _, f := range fields {
		if f == "" {
			return nil, ErrBadFormat
		}
	}

	day, err := parseDate(strings.ToLower(fields[1]), now)
	if err != nil {
		return nil, err
	}
	hour, min, err := parseClock(strings.ToLower(fields[2]))
	if err != nil {
		return nil, err
	}
	start := time.Date(day.Year(), day.Month(), day.Day(), hour, min, 0, 0, now.Location())

	dur, err := parseDuration(strings.ToLower(fields[3]))
	if err != nil {
		return nil, err
	}

	mt, ok := models.ParseMeetingType(fields[5])
	if !ok {
		return nil, ErrBadMeetingType
	}

	roomID := models.NormalizeRoomID(fields[0])
	event := fields[4]
	contact := fields[6]

	if len(fields) == 7 {
		return BookCommand{
			RoomID:      roomID,
			Start:       start,
			Duration:    dur,
			EventName:   event,
			MeetingType: mt,
			ContactName: contact,
		}, nil
	}

	freq, until, err := parseRecurrenceClause(strings.ToLower(fields[7]), now)
	if err != nil {
		return nil, err
	}
	return RecurringBookCommand{
		RoomID: roomID,
		Recurrence: models.RecurrenceSpec{
			Frequency: freq,
			Start:     start,
			EndDate:   until,
			Duration:  dur,
		},
		EventName:   event,
		MeetingType: mt,
		ContactName: contact,
	}, nil
}

func parseRecurrenceClause(clause string, now time.Time) (models.Frequency, time.Time, error) {
	m := recurrenceRe.FindStringSubmatch(clause)
	if m == nil {
		return "", time.Time{}, ErrBadRecurrence
	}

	var freq models.Frequency
	switch strings.Join(strings.Fields(m[1]), " ") {
	case "daily", "every day":
		freq = models.FreqDaily
	case "weekly", "every week":
		freq = models.FreqWeekly
	case "biweekly", "fortnightly", "every other week", "every 2 weeks":
		freq = models.FreqBiweekly
	case "monthly", "every month":
		freq = models.FreqMonthly
	default:
		return "", time.Time{}, ErrBadRecurrence
	}

	until, err := parseDate(strings.TrimSpace(m[2]), now)
	if err != nil {
		return "", time.Time{}, err
	}
	return freq, until, nil
}

func parseDuration(s string) (time.Duration, error) {
	m := durationRe.FindStringSubmatch(s)
	if m == nil {
		return 0, ErrBadDuration
	}
	amount, err := strconv.Atoi(m[1])
	if err != nil || amount <= 0 {
		return 0, ErrBadDuration
	}

	switch m[2][0] {
	case 'h':
		return time.Duration(amount) * time.Hour, nil
	default:
		if amount < 60 && amount != 15 && amount != 30 && amount != 45 {
			return 0, ErrBadMinuteInterval
		}
		return time.Duration(amount) * time.Minute, nil
	}
}

// parseListAvailable accepts "list available rooms for tomorrow" and
// variants, with an optional time. Without a time the whole day's free
// slots are wanted; with one, the rooms free at that moment.
func parseListAvailable(lower string, now time.Time) (Command, error) {
	rest := strings.TrimPrefix(lower, "list available")

	dayMatch := availableDayRe.FindString(rest)
	if dayMatch == "" {
		return nil, ErrBadDate
	}
	day, err := parseDate(dayMatch, now)
	if err != nil {
		return nil, err
	}

	cmd := ListAvailableCommand{Day: day}
	if tm := availableAtRe.FindString(rest); tm != "" {
		hour, min, err := parseClock(tm)
		if err != nil {
			return nil, err
		}
		at := time.Date(day.Year(), day.Month(), day.Day(), hour, min, 0, 0, now.Location())
		cmd.At = &at
	}
	return cmd, nil
}
