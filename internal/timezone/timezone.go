package timezone

import "time"

// The hospital operates in a single fixed locale; slot labels and "now" are
// always interpreted here, never per-user.
const DefaultTimezone = "Asia/Kolkata"

func Location() *time.Location {
	loc, err := time.LoadLocation(DefaultTimezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

func Now() time.Time {
	return time.Now().In(Location())
}
