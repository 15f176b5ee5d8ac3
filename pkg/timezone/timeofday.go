package timezone

import (
	"fmt"
	"strings"
	"time"
)

// timeOfDayLayouts are tried in order against a normalized (trimmed,
// uppercased meridiem) time string.
var timeOfDayLayouts = []string{
	"15:04",
	"3:04PM",
	"3:04 PM",
	"3PM",
	"15:04:05",
}

// ParseTimeOfDay parses a clock-of-day string ("3:30 PM", "15:30", "3pm")
// into hour/minute, ignoring date. Returns ok=false if no layout matches.
func ParseTimeOfDay(text string) (hour, minute int, ok bool) {
	normalized := strings.ToUpper(strings.TrimSpace(text))
	for _, layout := range timeOfDayLayouts {
		t, err := time.Parse(layout, normalized)
		if err == nil {
			return t.Hour(), t.Minute(), true
		}
	}
	return 0, 0, false
}

// ShiftTimeOfDay applies an hour offset delta to an hour/minute pair,
// wrapping within a 24-hour clock.
func ShiftTimeOfDay(hour, minute, offsetHoursDelta int) (int, int) {
	total := hour*60 + minute + offsetHoursDelta*60
	total %= (24 * 60)
	if total < 0 {
		total += 24 * 60
	}
	return total / 60, total % 60
}

// Format12Hour renders an hour/minute pair in 12-hour clock notation with
// a trailing AM/PM marker, e.g. (15, 5) -> "3:05 PM".
func Format12Hour(hour, minute int) string {
	suffix := "AM"
	h := hour
	switch {
	case hour == 0:
		h = 12
	case hour == 12:
		suffix = "PM"
	case hour > 12:
		h = hour - 12
		suffix = "PM"
	}
	return fmt.Sprintf("%d:%02d %s", h, minute, suffix)
}

// Format24Hour renders an hour/minute pair in 24-hour clock notation.
func Format24Hour(hour, minute int) string {
	return fmt.Sprintf("%02d:%02d", hour, minute)
}
