package schedule_test

import (
	"testing"

	"github.com/roamplan/roamplan/internal/schedule"
)

func TestEstimateTravelTime_LogisticsActivity(t *testing.T) {
	from := schedule.Activity{PlaceName: "National Museum of Anthropology"}

	logistics := []string{
		"Taxi to airport",
		"Airport transfer",
		"Hotel check-in",
		"Departure for Cebu",
		"Shuttle to pier",
		"Flight to Palawan",
	}

	for _, name := range logistics {
		got := schedule.EstimateTravelTime(from, schedule.Activity{PlaceName: name})
		if got != 0 {
			t.Errorf("EstimateTravelTime(_, %q) = %d, want 0", name, got)
		}
	}
}

func TestEstimateTravelTime_Reflexive(t *testing.T) {
	activities := []schedule.Activity{
		{PlaceName: "Rizal Park"},
		{PlaceName: "Rizal Park", ScheduledTime: "09:00 AM", DurationText: "2 hours"},
		{},
	}

	for _, a := range activities {
		if got := schedule.EstimateTravelTime(a, a); got != 0 {
			t.Errorf("EstimateTravelTime(a, a) = %d for %+v, want 0", got, a)
		}
	}
}

func TestEstimateTravelTime_SameLocationNormalized(t *testing.T) {
	tests := []struct {
		from string
		to   string
	}{
		{"Shangri-La Hotel", "Return to Shangri-La Hotel"},
		{"Check-in at Seda Vertis", "Seda Vertis"},
		{"Okada Resort", "Departure from Okada Resort"},
	}

	for _, tc := range tests {
		got := schedule.EstimateTravelTime(
			schedule.Activity{PlaceName: tc.from},
			schedule.Activity{PlaceName: tc.to},
		)
		if got != 0 {
			t.Errorf("EstimateTravelTime(%q, %q) = %d, want 0", tc.from, tc.to, got)
		}
	}
}

func TestEstimateTravelTime_ExplicitMetadata(t *testing.T) {
	from := schedule.Activity{PlaceName: "Museum of Natural History"}

	t.Run("travel from previous override", func(t *testing.T) {
		to := schedule.Activity{PlaceName: "Seaside Boardwalk", TravelFromPrevious: "45 mins"}
		if got := schedule.EstimateTravelTime(from, to); got != 45 {
			t.Errorf("got %d, want 45", got)
		}
	})

	t.Run("embedded hint in place name", func(t *testing.T) {
		to := schedule.Activity{PlaceName: "30 min drive to Tagaytay"}
		if got := schedule.EstimateTravelTime(from, to); got != 30 {
			t.Errorf("got %d, want 30", got)
		}
	})

	t.Run("travel mention in place details", func(t *testing.T) {
		to := schedule.Activity{
			PlaceName:    "Pagsanjan Falls",
			PlaceDetails: "Famous waterfall, about 90 minutes of travel from the city center.",
		}
		if got := schedule.EstimateTravelTime(from, to); got != 90 {
			t.Errorf("got %d, want 90", got)
		}
	})

	t.Run("override beats embedded hint", func(t *testing.T) {
		to := schedule.Activity{
			PlaceName:          "20 min drive to Antipolo",
			TravelFromPrevious: "1 hour",
		}
		if got := schedule.EstimateTravelTime(from, to); got != 60 {
			t.Errorf("got %d, want 60", got)
		}
	})
}

func TestEstimateTravelTime_Proximity(t *testing.T) {
	t.Run("keyword overlap", func(t *testing.T) {
		from := schedule.Activity{PlaceName: "Binondo Chinatown Food Crawl"}
		to := schedule.Activity{PlaceName: "Binondo Chinatown Temple"}
		if got := schedule.EstimateTravelTime(from, to); got != 10 {
			t.Errorf("got %d, want 10", got)
		}
	})

	t.Run("contained name", func(t *testing.T) {
		from := schedule.Activity{PlaceName: "Okada Manila"}
		to := schedule.Activity{PlaceName: "Okada Manila Fountain Show"}
		if got := schedule.EstimateTravelTime(from, to); got != 10 {
			t.Errorf("got %d, want 10", got)
		}
	})

	t.Run("short shared fragment is not proximity", func(t *testing.T) {
		from := schedule.Activity{PlaceName: "East Gate"}
		to := schedule.Activity{PlaceName: "West Wing Gallery"}
		if got := schedule.EstimateTravelTime(from, to); got != 15 {
			t.Errorf("got %d, want default 15", got)
		}
	})
}

func TestEstimateTravelTime_Category(t *testing.T) {
	t.Run("attraction to attraction", func(t *testing.T) {
		from := schedule.Activity{PlaceName: "Fort Santiago", Category: "Historical Landmark"}
		to := schedule.Activity{PlaceName: "Manila Cathedral", Category: "Tourist Attraction"}
		if got := schedule.EstimateTravelTime(from, to); got != 12 {
			t.Errorf("got %d, want 12", got)
		}
	})

	t.Run("attraction to restaurant", func(t *testing.T) {
		from := schedule.Activity{PlaceName: "Fort Santiago", Category: "Tourist Attraction"}
		to := schedule.Activity{PlaceName: "Barbara's Heritage", Category: "Restaurant"}
		if got := schedule.EstimateTravelTime(from, to); got != 10 {
			t.Errorf("got %d, want 10", got)
		}
	})
}

func TestEstimateTravelTime_TimeGap(t *testing.T) {
	t.Run("large gap implies planned transit", func(t *testing.T) {
		from := schedule.Activity{
			PlaceName:     "City Aquarium",
			ScheduledTime: "09:00 AM",
			DurationText:  "1 hour",
		}
		to := schedule.Activity{PlaceName: "Mountain Viewpoint", ScheduledTime: "01:00 PM"}
		if got := schedule.EstimateTravelTime(from, to); got != 30 {
			t.Errorf("got %d, want 30", got)
		}
	})

	t.Run("tight gap implies nearby", func(t *testing.T) {
		from := schedule.Activity{
			PlaceName:     "City Aquarium",
			ScheduledTime: "09:00 AM",
			DurationText:  "1 hour",
		}
		to := schedule.Activity{PlaceName: "Mountain Viewpoint", ScheduledTime: "10:15 AM"}
		if got := schedule.EstimateTravelTime(from, to); got != 8 {
			t.Errorf("got %d, want 8", got)
		}
	})
}

func TestEstimateTravelTime_Default(t *testing.T) {
	from := schedule.Activity{PlaceName: "City Aquarium"}
	to := schedule.Activity{PlaceName: "Mountain Viewpoint"}
	if got := schedule.EstimateTravelTime(from, to); got != 15 {
		t.Errorf("got %d, want 15", got)
	}
}

// Earlier tiers must pre-empt later ones: a logistics-named stop resolves to
// zero even when explicit travel metadata says otherwise.
func TestEstimateTravelTime_TierOrder(t *testing.T) {
	from := schedule.Activity{PlaceName: "Grand Palace"}

	t.Run("logistics beats explicit metadata", func(t *testing.T) {
		to := schedule.Activity{
			PlaceName:          "Airport shuttle",
			TravelFromPrevious: "25 mins",
		}
		if got := schedule.EstimateTravelTime(from, to); got != 0 {
			t.Errorf("got %d, want 0", got)
		}
	})

	t.Run("same location beats explicit metadata", func(t *testing.T) {
		to := schedule.Activity{
			PlaceName:          "Return to Grand Palace",
			TravelFromPrevious: "25 mins",
		}
		if got := schedule.EstimateTravelTime(from, to); got != 0 {
			t.Errorf("got %d, want 0", got)
		}
	})

	t.Run("explicit metadata beats category", func(t *testing.T) {
		withCategory := schedule.Activity{
			PlaceName:          "Riverside Gardens",
			Category:           "Tourist Attraction",
			TravelFromPrevious: "50 mins",
		}
		fromAttraction := schedule.Activity{PlaceName: "Grand Palace", Category: "Tourist Attraction"}
		if got := schedule.EstimateTravelTime(fromAttraction, withCategory); got != 50 {
			t.Errorf("got %d, want 50", got)
		}
	})
}

func TestIsLogisticsActivity(t *testing.T) {
	tests := []struct {
		name string
		want bool
	}{
		{"Taxi to airport", true},
		{"Hotel check-in", true},
		{"Ferry transfer", true},
		{"Arrival in Manila", true},
		{"Rizal Park", false},
		{"", false},
	}

	for _, tc := range tests {
		if got := schedule.IsLogisticsActivity(tc.name); got != tc.want {
			t.Errorf("IsLogisticsActivity(%q) = %v, want %v", tc.name, got, tc.want)
		}
	}
}

func TestIsSameLocation(t *testing.T) {
	tests := []struct {
		a    string
		b    string
		want bool
	}{
		{"Rizal Park", "Rizal Park", true},
		{"rizal park", "RIZAL PARK", true},
		{"Shangri-La Hotel", "Return to Shangri-La Hotel", true},
		{"Check-in at Seda Vertis", "Seda Vertis", true},
		{"Rizal Park", "Fort Santiago", false},
		// Without a relational phrase a prefix is not the same venue.
		{"Okada Manila", "Okada Manila Fountain Show", false},
		{"Return to A", "A", false},
	}

	for _, tc := range tests {
		if got := schedule.IsSameLocation(tc.a, tc.b); got != tc.want {
			t.Errorf("IsSameLocation(%q, %q) = %v, want %v", tc.a, tc.b, got, tc.want)
		}
	}
}
