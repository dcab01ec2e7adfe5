package schedule

import (
	"regexp"
	"strconv"
	"strings"
)

// Travel-time estimates in minutes returned by the heuristic tiers.
const (
	travelNone           = 0
	travelNearby         = 8
	travelCoLocated      = 10
	travelTouristZone    = 12
	travelDefault        = 15
	travelPlannedTransit = 30
)

// minMeaningfulNameLength guards the substring-based location matches against
// accidental hits on short or generic name fragments.
const minMeaningfulNameLength = 5

// logisticsKeywords mark an activity that is itself transit, arrival, or
// departure; travel to it is the activity, not a prelude.
var logisticsKeywords = []string{
	"taxi",
	"transfer",
	"shuttle",
	"flight",
	"boarding",
	"departure",
	"arrival",
	"check-in",
	"check in",
	"check-out",
	"check out",
}

// relationalPhrases are venue-relational prefixes stripped before comparing
// place names for the same-location check.
var relationalPhrases = []string{
	"check-in at",
	"check in at",
	"check-out from",
	"check out from",
	"return to",
	"back to",
	"departure from",
	"depart from",
	"arrive at",
	"arrival at",
	"visit to",
}

// fillerWords are function words and itinerary verbs that carry no location
// signal when extracting keywords from a place name.
var fillerWords = map[string]bool{
	"visit": true, "explore": true, "tour": true, "see": true,
	"the": true, "a": true, "an": true, "at": true, "in": true,
	"of": true, "to": true, "and": true, "with": true, "for": true,
	"on": true, "near": true, "around": true,
}

// genericVenueNouns are venue words too common to indicate a shared location.
var genericVenueNouns = map[string]bool{
	"hotel": true, "restaurant": true, "cafe": true, "shop": true,
	"market": true, "store": true, "mall": true,
}

var (
	embeddedTravelPattern = regexp.MustCompile(`(\d+)\s*min`)
	detailsTravelPattern  = regexp.MustCompile(`(\d+)\s*min(?:ute)?s?[^.]*?(?:drive|travel|away)`)
	keywordSplitPattern   = regexp.MustCompile(`[^a-z0-9]+`)
)

// travelTier is one ranked rule in the estimation chain. Estimate returns
// (minutes, true) when the tier can answer; later tiers are never consulted
// once an earlier one has.
type travelTier struct {
	name     string
	estimate func(from, to Activity) (int, bool)
}

// travelTiers is the ordered fallback chain. The order is load-bearing: a
// logistics-named stop at the same location must resolve via the logistics
// tier, not the same-location tier.
var travelTiers = []travelTier{
	{name: "logistics", estimate: estimateLogistics},
	{name: "same_location", estimate: estimateSameLocation},
	{name: "explicit_metadata", estimate: estimateExplicit},
	{name: "proximity", estimate: estimateProximity},
	{name: "category", estimate: estimateCategory},
	{name: "time_gap", estimate: estimateTimeGap},
}

// EstimateTravelTime estimates the minutes needed to travel between two
// consecutive activities using the tier chain, falling back to a generic
// 15-minute buffer when no tier answers.
func EstimateTravelTime(from, to Activity) int {
	for _, tier := range travelTiers {
		if minutes, ok := tier.estimate(from, to); ok {
			return minutes
		}
	}
	return travelDefault
}

// IsLogisticsActivity reports whether the place name marks the activity as
// transit, arrival, or departure.
func IsLogisticsActivity(placeName string) bool {
	name := strings.ToLower(placeName)
	for _, kw := range logisticsKeywords {
		if strings.Contains(name, kw) {
			return true
		}
	}
	return false
}

// IsSameLocation reports whether two place names refer to the same venue,
// either verbatim or after stripping venue-relational phrases ("check-in at",
// "return to"). The substring comparison only applies when a relational
// phrase was actually stripped; plain prefix relationships between distinct
// venues are the proximity tier's concern, not this one's.
func IsSameLocation(a, b string) bool {
	left := strings.ToLower(strings.TrimSpace(a))
	right := strings.ToLower(strings.TrimSpace(b))
	if left == right {
		return true
	}

	normLeft := normalizePlaceName(left)
	normRight := normalizePlaceName(right)
	if normLeft == left && normRight == right {
		return false
	}

	shorter, longer := normLeft, normRight
	if len(shorter) > len(longer) {
		shorter, longer = longer, shorter
	}
	return len(shorter) > minMeaningfulNameLength && strings.Contains(longer, shorter)
}

func estimateLogistics(_, to Activity) (int, bool) {
	if IsLogisticsActivity(to.PlaceName) {
		return travelNone, true
	}
	return 0, false
}

func estimateSameLocation(from, to Activity) (int, bool) {
	if IsSameLocation(from.PlaceName, to.PlaceName) {
		return travelNone, true
	}
	return 0, false
}

// estimateExplicit uses upstream-supplied travel metadata: the explicit
// override field first, then travel hints embedded in the place name or the
// place details.
func estimateExplicit(_, to Activity) (int, bool) {
	if strings.TrimSpace(to.TravelFromPrevious) != "" {
		return ParseDurationToMinutes(to.TravelFromPrevious), true
	}

	if m := embeddedTravelPattern.FindStringSubmatch(strings.ToLower(to.PlaceName)); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil {
			return n, true
		}
	}

	if m := detailsTravelPattern.FindStringSubmatch(strings.ToLower(to.PlaceDetails)); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil {
			return n, true
		}
	}

	return 0, false
}

// estimateProximity treats the pair as co-located when their significant
// keywords overlap by at least 40%, or one normalized name contains the
// other.
func estimateProximity(from, to Activity) (int, bool) {
	fromKeywords := significantKeywords(from.PlaceName)
	toKeywords := significantKeywords(to.PlaceName)

	if len(fromKeywords) > 0 && len(toKeywords) > 0 {
		shared := 0
		for kw := range fromKeywords {
			if toKeywords[kw] {
				shared++
			}
		}
		size := len(fromKeywords)
		if len(toKeywords) > size {
			size = len(toKeywords)
		}
		if float64(shared)/float64(size) >= 0.4 {
			return travelCoLocated, true
		}
	}

	shorter := normalizePlaceName(strings.ToLower(from.PlaceName))
	longer := normalizePlaceName(strings.ToLower(to.PlaceName))
	if len(shorter) > len(longer) {
		shorter, longer = longer, shorter
	}
	if len(shorter) > minMeaningfulNameLength && strings.Contains(longer, shorter) {
		return travelCoLocated, true
	}

	return 0, false
}

// estimateCategory assumes tourist attractions cluster together, and that
// restaurants sit near the attractions that precede them.
func estimateCategory(from, to Activity) (int, bool) {
	fromCat := strings.ToLower(from.Category)
	toCat := strings.ToLower(to.Category)

	fromAttraction := strings.Contains(fromCat, "attraction") || strings.Contains(fromCat, "landmark")
	toAttraction := strings.Contains(toCat, "attraction") || strings.Contains(toCat, "landmark")

	if fromAttraction && toAttraction {
		return travelTouristZone, true
	}

	if fromAttraction && (strings.Contains(toCat, "restaurant") || strings.Contains(toCat, "food")) {
		return travelCoLocated, true
	}

	return 0, false
}

// estimateTimeGap infers travel from the slack the planner left between two
// scheduled activities: a gap over two hours suggests substantial transit, a
// gap under half an hour suggests the stops are near each other.
func estimateTimeGap(from, to Activity) (int, bool) {
	fromTime, fromOK := ParseTimeToMinutes(from.ScheduledTime)
	toTime, toOK := ParseTimeToMinutes(to.ScheduledTime)
	if !fromOK || !toOK {
		return 0, false
	}

	gap := toTime - fromTime - ParseDurationToMinutes(from.DurationText)
	switch {
	case gap > 120:
		return travelPlannedTransit, true
	case gap > 0 && gap < 30:
		return travelNearby, true
	}

	return 0, false
}

// normalizePlaceName strips venue-relational phrases so "Return to Shangri-La
// Hotel" and "Shangri-La Hotel" compare equal.
func normalizePlaceName(name string) string {
	for _, phrase := range relationalPhrases {
		name = strings.ReplaceAll(name, phrase, " ")
	}
	return strings.TrimSpace(strings.Join(strings.Fields(name), " "))
}

// significantKeywords extracts the location-bearing tokens of a place name:
// filler words and generic venue nouns are dropped, as is anything of three
// characters or fewer.
func significantKeywords(placeName string) map[string]bool {
	keywords := make(map[string]bool)
	for _, token := range keywordSplitPattern.Split(strings.ToLower(placeName), -1) {
		if len(token) <= 3 || fillerWords[token] || genericVenueNouns[token] {
			continue
		}
		keywords[token] = true
	}
	return keywords
}
