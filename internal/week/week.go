// Package week assigns a (year, week) identity to timestamps. Weekly
// submissions are keyed on it, so the only property that matters is that
// every caller derives the same pair for the same instant. The numbering
// follows a day-of-year scheme rather than ISO-8601 and may produce 53 or
// 54 near year boundaries; those values are stored verbatim.
package week

import "time"

// Of returns the year and week number for the given instant.
//
// The week is computed from the day of year offset by the weekday of
// January 1st: week = (dayIndex + weekday(Jan 1) + 1) / 7 + 1. Switching
// to a strict ISO-8601 calculation would change which submissions collide
// under the per-week uniqueness constraint, so the scheme is fixed.
func Of(t time.Time) (year, weekNumber int) {
	year = t.Year()
	jan1 := time.Date(year, time.January, 1, 0, 0, 0, 0, t.Location())
	offset := int(jan1.Weekday()) + 1
	dayIndex := t.YearDay() - 1
	weekNumber = (dayIndex+offset)/7 + 1
	return year, weekNumber
}

// Current returns the week identity for the current instant.
func Current() (year, weekNumber int) {
	return Of(time.Now())
}
