package flights

import (
	"fmt"
	"time"
)

// Route durations based on actual distances between the served airports.
// Unknown routes fall back to a flat 2h30m.
var routeDurations = map[string]time.Duration{
	// From Delhi (DEL)
	"DEL-BOM": 2*time.Hour + 20*time.Minute,
	"DEL-BLR": 2*time.Hour + 45*time.Minute,
	"DEL-MAA": 2*time.Hour + 50*time.Minute,
	"DEL-CCU": 2*time.Hour + 30*time.Minute,
	"DEL-HYD": 2*time.Hour + 35*time.Minute,
	"DEL-COK": 3*time.Hour + 15*time.Minute,
	"DEL-GOI": 2*time.Hour + 45*time.Minute,

	// From Mumbai (BOM)
	"BOM-DEL": 2*time.Hour + 20*time.Minute,
	"BOM-BLR": 1*time.Hour + 35*time.Minute,
	"BOM-MAA": 1*time.Hour + 50*time.Minute,
	"BOM-CCU": 2*time.Hour + 45*time.Minute,
	"BOM-HYD": 1*time.Hour + 25*time.Minute,
	"BOM-COK": 1*time.Hour + 30*time.Minute,
	"BOM-GOI": 1*time.Hour + 15*time.Minute,

	// From Bangalore (BLR)
	"BLR-DEL": 2*time.Hour + 45*time.Minute,
	"BLR-BOM": 1*time.Hour + 35*time.Minute,
	"BLR-MAA": 1 * time.Hour,
	"BLR-CCU": 2*time.Hour + 30*time.Minute,
	"BLR-HYD": 1*time.Hour + 10*time.Minute,
	"BLR-COK": 1*time.Hour + 5*time.Minute,
	"BLR-GOI": 1*time.Hour + 20*time.Minute,
}

const defaultDuration = 2*time.Hour + 30*time.Minute

// Duration returns the flight duration for an origin/destination pair.
func Duration(origin, destination string) time.Duration {
	if d, ok := routeDurations[origin+"-"+destination]; ok {
		return d
	}
	return defaultDuration
}

// FormatDuration renders a duration as "2h 20m" for display.
func FormatDuration(d time.Duration) string {
	h := int(d.Hours())
	m := int(d.Minutes()) % 60
	return fmt.Sprintf("%dh %dm", h, m)
}
