package clock

import "time"

// NowFunc returns current time. Override in tests for determinism.
var NowFunc = time.Now

func Now() time.Time { return NowFunc() }

// Today truncates now to a UTC calendar date.
func Today() time.Time {
	return DateOf(NowFunc())
}

// DateOf drops the time of day, keeping the calendar date as UTC midnight.
func DateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
