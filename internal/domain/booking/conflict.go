package booking

import "time"

// SlotDuration is the fixed length of every booking. Service-specific
// durations are not modeled; EndTime is always StartTime + SlotDuration.
const SlotDuration = time.Hour

// Overlaps reports whether the half-open intervals [s1,e1) and [s2,e2)
// intersect. Intervals that only touch at an endpoint do not conflict.
func Overlaps(s1, e1, s2, e2 time.Time) bool {
	return s1.Before(e2) && e1.After(s2)
}

// SlotEnd derives the booking end from its start.
func SlotEnd(start time.Time) time.Time {
	return start.Add(SlotDuration)
}
