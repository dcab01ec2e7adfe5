package schedule

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

// DefaultDurationMinutes is assumed when an activity carries no parseable
// duration text.
const DefaultDurationMinutes = 60

var (
	hourPattern   = regexp.MustCompile(`(\d+(?:\.\d+)?)\s*(?:hours?|hrs?|h)\b`)
	minutePattern = regexp.MustCompile(`(\d+(?:\.\d+)?)\s*(?:minutes?|mins?|m)\b`)
)

// ParseTimeToMinutes converts a 12-hour clock string ("9:00 AM", "12:30 PM")
// to minutes since midnight. The second return value is false when the input
// is empty or unparsable; callers treat that as "unscheduled", never as an
// error.
func ParseTimeToMinutes(s string) (int, bool) {
	parts := strings.Fields(strings.TrimSpace(s))
	if len(parts) != 2 {
		return 0, false
	}

	clock := strings.SplitN(parts[0], ":", 2)
	if len(clock) != 2 {
		return 0, false
	}

	hour, err := strconv.Atoi(clock[0])
	if err != nil {
		return 0, false
	}
	minute, err := strconv.Atoi(clock[1])
	if err != nil {
		return 0, false
	}
	if hour < 1 || hour > 12 || minute < 0 || minute > 59 {
		return 0, false
	}

	switch strings.ToUpper(parts[1]) {
	case "PM":
		if hour < 12 {
			hour += 12
		}
	case "AM":
		if hour == 12 {
			hour = 0
		}
	default:
		return 0, false
	}

	return hour*60 + minute, true
}

// FormatMinutesToTime is the inverse of ParseTimeToMinutes. It renders
// minutes since midnight as a zero-padded 12-hour clock string ("08:05 AM").
func FormatMinutesToTime(minutes int) string {
	hour := (minutes / 60) % 24
	minute := minutes % 60

	period := "AM"
	if hour >= 12 {
		period = "PM"
	}

	display := hour % 12
	if display == 0 {
		display = 12
	}

	return twoDigits(display) + ":" + twoDigits(minute) + " " + period
}

func twoDigits(n int) string {
	if n < 10 {
		return "0" + strconv.Itoa(n)
	}
	return strconv.Itoa(n)
}

// ParseDurationToMinutes converts free-text duration ("2 hours", "45 mins",
// "1-2 hours") to minutes. It never fails: unparsable input yields
// DefaultDurationMinutes. A range takes the midpoint, so "1-2 hours" is 90.
func ParseDurationToMinutes(s string) int {
	text := strings.ToLower(strings.TrimSpace(s))
	if text == "" {
		return DefaultDurationMinutes
	}

	if strings.Contains(text, "-") {
		halves := strings.SplitN(text, "-", 2)
		low := parseSingleDuration(halves[0])
		high := parseSingleDuration(halves[1])
		return int(math.Round((low + high) / 2))
	}

	return int(math.Round(parseSingleDuration(text)))
}

// parseSingleDuration parses one duration value. Hour units take priority
// over minute units, so "1.5 hours 10 min" resolves via the hour match.
func parseSingleDuration(text string) float64 {
	if m := hourPattern.FindStringSubmatch(text); m != nil {
		if v, err := strconv.ParseFloat(m[1], 64); err == nil {
			return v * 60
		}
	}
	if m := minutePattern.FindStringSubmatch(text); m != nil {
		if v, err := strconv.ParseFloat(m[1], 64); err == nil {
			return v
		}
	}
	return DefaultDurationMinutes
}
