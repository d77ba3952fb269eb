package domain

import "time"

// ISOWeekStart returns the start of the ISO week (Monday 00:00:00) containing t,
// in t's location. ISO weeks run Monday through Sunday and are the reset
// boundary for all weekly counters.
func ISOWeekStart(t time.Time) time.Time {
	// time.Weekday numbers Sunday as 0; shift so Monday is 0.
	weekday := (int(t.Weekday()) + 6) % 7
	day := t.AddDate(0, 0, -weekday)
	return time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, t.Location())
}

// DayStart returns midnight at the start of the day containing t, in t's location.
func DayStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// SameISOWeek reports whether a and b fall within the same ISO week.
func SameISOWeek(a, b time.Time) bool {
	ay, aw := a.ISOWeek()
	by, bw := b.ISOWeek()
	return ay == by && aw == bw
}

// SameDay reports whether a and b fall on the same calendar day.
func SameDay(a, b time.Time) bool {
	return DayStart(a).Equal(DayStart(b.In(a.Location())))
}
