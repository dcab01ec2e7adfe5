package schedule_test

import (
	"testing"

	"github.com/roamplan/roamplan/internal/schedule"
)

const (
	eightAM = 8 * 60
	tenPM   = 22 * 60
)

func TestSimulateDay_Empty(t *testing.T) {
	sim := schedule.SimulateDay(nil, eightAM, tenPM)
	if len(sim.Timeline) != 0 {
		t.Errorf("expected empty timeline, got %d entries", len(sim.Timeline))
	}
	if sim.TotalTimeMinutes != 0 {
		t.Errorf("expected zero total time, got %d", sim.TotalTimeMinutes)
	}
}

func TestSimulateDay_SingleActivity(t *testing.T) {
	activities := []schedule.Activity{
		{PlaceName: "Fine Arts Museum", DurationText: "1 hour"},
	}

	sim := schedule.SimulateDay(activities, eightAM, tenPM)
	if len(sim.Timeline) != 1 {
		t.Fatalf("expected 1 timeline entry, got %d", len(sim.Timeline))
	}

	entry := sim.Timeline[0]
	if entry.StartMinute != eightAM {
		t.Errorf("start = %d, want %d", entry.StartMinute, eightAM)
	}
	if entry.EndMinute != eightAM+60 {
		t.Errorf("end = %d, want %d", entry.EndMinute, eightAM+60)
	}
	if entry.TravelBefore != 0 {
		t.Errorf("travel before first activity = %d, want 0", entry.TravelBefore)
	}
	if sim.TotalTimeMinutes != 60 {
		t.Errorf("total = %d, want 60", sim.TotalTimeMinutes)
	}
}

// The running clock advances from each activity's effective start plus its
// duration plus the travel estimated before it, so an unscheduled follow-up
// starts at the previous end and the travel shifts the activity after it.
func TestSimulateDay_RunningClock(t *testing.T) {
	activities := []schedule.Activity{
		{PlaceName: "Fine Arts Museum", DurationText: "1 hour"},
		{PlaceName: "Harbor Cruise", DurationText: "30 mins"},
		{PlaceName: "Observatory Deck", DurationText: "30 mins"},
	}

	sim := schedule.SimulateDay(activities, eightAM, tenPM)
	if len(sim.Timeline) != 3 {
		t.Fatalf("expected 3 timeline entries, got %d", len(sim.Timeline))
	}

	second := sim.Timeline[1]
	if second.TravelBefore != 15 {
		t.Errorf("second travel = %d, want default 15", second.TravelBefore)
	}
	if second.StartMinute != eightAM+60 {
		t.Errorf("second start = %d, want %d", second.StartMinute, eightAM+60)
	}

	// The 15-minute travel before the cruise lands in the clock after it.
	third := sim.Timeline[2]
	wantThirdStart := eightAM + 60 + 30 + 15
	if third.StartMinute != wantThirdStart {
		t.Errorf("third start = %d, want %d", third.StartMinute, wantThirdStart)
	}

	wantTotal := third.StartMinute + 30 + third.TravelBefore - eightAM
	if sim.TotalTimeMinutes != wantTotal {
		t.Errorf("total = %d, want %d", sim.TotalTimeMinutes, wantTotal)
	}
}

func TestSimulateDay_ScheduledTimeOverridesClock(t *testing.T) {
	activities := []schedule.Activity{
		{PlaceName: "Fine Arts Museum", ScheduledTime: "09:00 AM", DurationText: "1 hour"},
		{PlaceName: "Harbor Cruise", ScheduledTime: "02:00 PM", DurationText: "1 hour"},
	}

	sim := schedule.SimulateDay(activities, eightAM, tenPM)

	if sim.Timeline[0].StartMinute != 540 {
		t.Errorf("first start = %d, want 540", sim.Timeline[0].StartMinute)
	}

	// The deliberate afternoon gap is honored: the second activity starts at
	// its own scheduled time, not at the running clock.
	if sim.Timeline[1].StartMinute != 840 {
		t.Errorf("second start = %d, want 840", sim.Timeline[1].StartMinute)
	}
}

func TestSimulateDay_UnparsableFieldsDegrade(t *testing.T) {
	activities := []schedule.Activity{
		{PlaceName: "Fine Arts Museum", ScheduledTime: "whenever", DurationText: "a while"},
	}

	sim := schedule.SimulateDay(activities, eightAM, tenPM)
	entry := sim.Timeline[0]

	if entry.StartMinute != eightAM {
		t.Errorf("unparsable time should inherit the clock, got start %d", entry.StartMinute)
	}
	if entry.DurationMinutes != schedule.DefaultDurationMinutes {
		t.Errorf("unparsable duration = %d, want default %d",
			entry.DurationMinutes, schedule.DefaultDurationMinutes)
	}
}
