package dates

import "time"

// DurationWeeks converts a session date span into a count of five-day camp
// weeks.
//
// A span that starts on a Monday and ends on a Friday is treated as a pure
// weekday camp: weekends inside the span are not camp days. Every other
// span counts each calendar day, which models camps that run through
// weekends. The effective day count is rounded up to whole five-day weeks,
// with a floor of one week.
func DurationWeeks(start, end Date) int {
	if start.IsZero() || end.IsZero() || end.Before(start) {
		return 1
	}

	totalDays := DaysBetween(start, end)
	campDays := totalDays
	if start.Weekday() == time.Monday && end.Weekday() == time.Friday && totalDays >= 5 {
		fullWeeks := totalDays / 7
		remainder := totalDays % 7
		campDays = fullWeeks*5 + min(remainder, 5)
	}

	weeks := (campDays + 4) / 5
	if weeks < 1 {
		weeks = 1
	}
	return weeks
}
