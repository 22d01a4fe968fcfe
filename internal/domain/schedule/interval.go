package schedule

import "time"

// Overlaps reports whether the half-open intervals [aStart, aEnd) and
// [bStart, bEnd) intersect. Touching endpoints do not count: a window
// ending at 10:00 does not overlap one starting at 10:00.
//
// The same predicate is used for availability-vs-availability and
// appointment-vs-appointment checks, and is mirrored by the SQL
// conditions in the repositories.
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && bStart.Before(aEnd)
}

// Contains reports whether [innerStart, innerEnd) lies entirely within
// [outerStart, outerEnd). Shared endpoints are allowed.
func Contains(outerStart, outerEnd, innerStart, innerEnd time.Time) bool {
	return !outerStart.After(innerStart) && !outerEnd.Before(innerEnd)
}
