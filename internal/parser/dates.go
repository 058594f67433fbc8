package parser

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

var (
	dayMonthRe = regexp.MustCompile(`^(\d{1,2})(?:st|nd|rd|th)?(?:\s+of)?\s+([a-z]+)$`)
	slashRe    = regexp.MustCompile(`^(\d{1,2})/(\d{1,2})(?:/(\d{4}))?$`)
	clockRe    = regexp.MustCompile(`^(\d{1,2})(?::(\d{2}))?(am|pm)?$`)
)

var monthsByName = map[string]time.Month{}

func init() {
	for m := time.January; m <= time.December; m++ {
		name := strings.ToLower(m.String())
		monthsByName[name] = m
		monthsByName[name[:3]] = m
	}
}

// parseDate resolves a lowercased date phrase to a calendar day in
// now's location. Supported: "today", "tomorrow", "28th november",
// "22nd of november", "19/12", "19/12/2024". Day-month and day/month
// forms without a year resolve to the next occurrence: a date already
// past this year means next year.
func parseDate(s string, now time.Time) (time.Time, error) {
	s = strings.TrimSpace(s)
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	switch s {
	case "today":
		return today, nil
	case "tomorrow":
		return today.AddDate(0, 0, 1), nil
	}

	var day int
	var month time.Month
	year := 0

	if m := dayMonthRe.FindStringSubmatch(s); m != nil {
		day, _ = strconv.Atoi(m[1])
		var ok bool
		month, ok = monthsByName[m[2]]
		if !ok {
			return time.Time{}, ErrBadDate
		}
	} else if m := slashRe.FindStringSubmatch(s); m != nil {
		day, _ = strconv.Atoi(m[1])
		mo, _ := strconv.Atoi(m[2])
		if mo < 1 || mo > 12 {
			return time.Time{}, ErrBadDate
		}
		month = time.Month(mo)
		if m[3] != "" {
			year, _ = strconv.Atoi(m[3])
		}
	} else {
		return time.Time{}, ErrBadDate
	}

	rolling := year == 0
	if rolling {
		year = now.Year()
	}
	if day < 1 || day > daysInMonth(year, month) {
		return time.Time{}, ErrBadDate
	}

	date := time.Date(year, month, day, 0, 0, 0, 0, now.Location())
	if rolling && date.Before(today) {
		year++
		if day > daysInMonth(year, month) {
			return time.Time{}, ErrBadDate
		}
		date = time.Date(year, month, day, 0, 0, 0, 0, now.Location())
	}
	return date, nil
}

// parseClock resolves a lowercased clock phrase to hour and minute.
// Supported: "2pm", "2:30pm", "14:00". A bare "14" without a meridiem
// is rejected rather than guessed.
func parseClock(s string) (int, int, error) {
	m := clockRe.FindStringSubmatch(strings.TrimSpace(s))
	if m == nil {
		return 0, 0, ErrBadTime
	}

	hour, _ := strconv.Atoi(m[1])
	min := 0
	if m[2] != "" {
		min, _ = strconv.Atoi(m[2])
	}
	if min > 59 {
		return 0, 0, ErrBadTime
	}

	switch m[3] {
	case "":
		if m[2] == "" || hour > 23 {
			return 0, 0, ErrBadTime
		}
	case "am":
		if hour < 1 || hour > 12 {
			return 0, 0, ErrBadTime
		}
		if hour == 12 {
			hour = 0
		}
	case "pm":
		if hour < 1 || hour > 12 {
			return 0, 0, ErrBadTime
		}
		if hour != 12 {
			hour += 12
		}
	}
	return hour, min, nil
}

func daysInMonth(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
