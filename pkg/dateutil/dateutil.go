package dateutil

import "time"

// BoundsOfDay returns the half-open interval [midnight, next midnight)
// containing t. The bounds are taken in t's location, so passing a local
// time yields server-local day windows.
func BoundsOfDay(t time.Time) (time.Time, time.Time) {
	start := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	return start, start.AddDate(0, 0, 1)
}

// DayKey formats t as a stable per-day key in t's location.
func DayKey(t time.Time) string {
	return t.Format("2006-01-02")
}
