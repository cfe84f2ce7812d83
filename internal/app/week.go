package app

import (
	"fmt"
	"math"
	"time"
)

const oneDay = 24 * time.Hour

// midnight drops the time of day, keeping the location
func midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// isoWeekday returns 0 for Monday through 6 for Sunday
func isoWeekday(t time.Time) int {
	return (int(t.Weekday()) + 6) % 7
}

// daysBetween counts calendar days from b to a, immune to DST shifts
func daysBetween(a, b time.Time) int {
	ua := time.Date(a.Year(), a.Month(), a.Day(), 0, 0, 0, 0, time.UTC)
	ub := time.Date(b.Year(), b.Month(), b.Day(), 0, 0, 0, 0, time.UTC)
	return int(ua.Sub(ub) / oneDay)
}

// thursday returns the Thursday of the ISO week containing t; its year is the ISO week year
func thursday(t time.Time) time.Time {
	t = midnight(t)
	return t.AddDate(0, 0, 3-isoWeekday(t))
}

// WeekNumber returns the ISO 8601 week number of t
func WeekNumber(t time.Time) int {
	date := thursday(t)
	// January 4 is always in week 1
	week1 := time.Date(date.Year(), time.January, 4, 0, 0, 0, 0, date.Location())
	diff := float64(daysBetween(date, week1)-3+isoWeekday(week1)) / 7
	return 1 + int(math.Round(diff))
}

// ISOWeek returns week number and ISO week year of t
func ISOWeek(t time.Time) WeekID {
	return WeekID{Week: WeekNumber(t), Year: thursday(t).Year()}
}

// Monday returns the Monday starting the week of t, at midnight
func Monday(t time.Time) time.Time {
	t = midnight(t)
	return t.AddDate(0, 0, -isoWeekday(t))
}

// ShiftWeek moves a date n weeks forward (or back for negative n)
func ShiftWeek(t time.Time, n int) time.Time {
	return t.AddDate(0, 0, 7*n)
}

// ShownWeek resolves the Monday of the week to display. An empty dateParam
// means the current week; duties turn over on Tuesday so Monday still shows
// the previous week.
func ShownWeek(dateParam string, now time.Time) (time.Time, error) {
	date := now.AddDate(0, 0, -1)
	if dateParam != "" {
		parsed, err := time.ParseInLocation(ISODateFormat, dateParam, now.Location())
		if err != nil {
			return Monday(date), fmt.Errorf("invalid date %q: %w", dateParam, err)
		}
		date = parsed
	}

	return Monday(date), nil
}

// ShortDate formats t as a Dutch short date, e.g. "6 jan"
func ShortDate(t time.Time) string {
	return fmt.Sprintf("%d %s", t.Day(), dutchMonths[t.Month()-1])
}
