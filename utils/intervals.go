// utils/intervals.go
package utils

import (
	"fmt"
	"time"
)

// Overlaps reports whether the half-open intervals [aStart, aEnd) and
// [bStart, bEnd) intersect. Touching endpoints are not a conflict. This is
// the single overlap predicate used by slot filtering and by the commit-time
// conflict check; both must agree or offered slots would not match what the
// allocator accepts.
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && bStart.Before(aEnd)
}

// Contains reports whether [innerStart, innerEnd) lies fully inside
// [outerStart, outerEnd).
func Contains(outerStart, outerEnd, innerStart, innerEnd time.Time) bool {
	return !innerStart.Before(outerStart) && !innerEnd.After(outerEnd)
}

// TimeOnDate anchors a "HH:MM" clock time on the calendar day and location
// of date.
func TimeOnDate(date time.Time, hhmm string) (time.Time, error) {
	t, err := time.Parse("15:04", hhmm)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid time %q: expected HH:MM", hhmm)
	}
	year, month, day := date.Date()
	return time.Date(year, month, day, t.Hour(), t.Minute(), 0, 0, date.Location()), nil
}
