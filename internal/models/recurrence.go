package models

import (
	"strings"
	"time"
)

// Frequency is the step between occurrences of a recurring booking.
type Frequency string

const (
	FreqDaily    Frequency = "daily"
	FreqWeekly   Frequency = "weekly"
	FreqBiweekly Frequency = "biweekly"
	FreqMonthly  Frequency = "monthly"
)

// ParseFrequency normalizes a user-supplied frequency.
func ParseFrequency(s string) (Frequency, bool) {
	switch Frequency(strings.ToLower(strings.TrimSpace(s))) {
	case FreqDaily:
		return FreqDaily, true
	case FreqWeekly:
		return FreqWeekly, true
	case FreqBiweekly:
		return FreqBiweekly, true
	case FreqMonthly:
		return FreqMonthly, true
	}
	return "", false
}

// RecurrenceSpec describes a series of occurrences sharing a time of day
// and duration. Start carries both the first occurrence's date and the
// time of day; EndDate bounds the date component inclusively, independent
// of its own time of day.
type RecurrenceSpec struct {
	Frequency Frequency
	Start     time.Time
	EndDate   time.Time
	Duration  time.Duration
}
