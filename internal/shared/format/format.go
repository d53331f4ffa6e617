package format

import (
	"fmt"
	"math"
	"time"
)

const metersPerMile = 1609.344

// MetersToMiles converts a distance in meters to statute miles.
func MetersToMiles(meters float64) float64 {
	return meters / metersPerMile
}

// FormatDistanceMiles renders a distance in meters as a mile string: one
// decimal place under 10 miles, whole miles above.
func FormatDistanceMiles(distanceMeters float64) string {
	mi := MetersToMiles(distanceMeters)
	if mi < 10 {
		return fmt.Sprintf("%.1f mi", mi)
	}
	return fmt.Sprintf("%.0f mi", mi)
}

// FormatDurationSeconds renders a duration rounded to whole minutes:
// "N min" under an hour, otherwise "H hr" or "H hr M min".
func FormatDurationSeconds(durationSeconds float64) string {
	totalMin := int(math.Round(durationSeconds / 60))
	h := totalMin / 60
	m := totalMin % 60

	if h <= 0 {
		return fmt.Sprintf("%d min", m)
	}
	if m == 0 {
		return fmt.Sprintf("%d hr", h)
	}
	return fmt.Sprintf("%d hr %d min", h, m)
}

// AvgSpeedMph returns average speed in miles per hour, 0 for non-positive
// durations.
func AvgSpeedMph(distanceMeters, durationSeconds float64) float64 {
	hours := durationSeconds / 3600
	if hours <= 0 {
		return 0
	}
	return MetersToMiles(distanceMeters) / hours
}

// FormatSpeedMph renders a speed as a whole-number mph string.
func FormatSpeedMph(mph float64) string {
	return fmt.Sprintf("%d mph", int(math.Round(mph)))
}

// FormatShortDate renders an RFC3339 timestamp as a short human date,
// e.g. "Jan 11, 2026". Unparseable input comes back unchanged.
func FormatShortDate(iso string) string {
	t, err := time.Parse(time.RFC3339, iso)
	if err != nil {
		return iso
	}
	return t.Format("Jan 2, 2006")
}

// FormatClock renders elapsed whole seconds as a zero-padded MM:SS clock.
func FormatClock(seconds int64) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}
