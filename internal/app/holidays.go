package app

import (
	"sort"
	"time"
)

// Holiday is a public holiday on a given date
type Holiday struct {
	Date time.Time
	Name string
}

// GetDutchHolidays returns all Dutch public holidays for the given year, keyed by ISO date
func GetDutchHolidays(year int) map[string]string {
	holidays := make(map[string]string)

	// Fixed holidays
	holidays[formatDate(year, 1, 1)] = "Nieuwjaarsdag"
	holidays[formatDate(year, 5, 5)] = "Bevrijdingsdag"
	holidays[formatDate(year, 12, 25)] = "Eerste Kerstdag"
	holidays[formatDate(year, 12, 26)] = "Tweede Kerstdag"

	// Koningsdag moves to Saturday when April 27 is a Sunday
	kingsDay := time.Date(year, time.April, 27, 12, 0, 0, 0, time.UTC)
	if kingsDay.Weekday() == time.Sunday {
		kingsDay = kingsDay.AddDate(0, 0, -1)
	}
	holidays[formatDateFromTime(kingsDay)] = "Koningsdag"

	// Easter-based holidays (movable)
	easter := calculateEaster(year)
	holidays[formatDateFromTime(easter.AddDate(0, 0, -2))] = "Goede Vrijdag"
	holidays[formatDateFromTime(easter)] = "Eerste Paasdag"
	holidays[formatDateFromTime(easter.AddDate(0, 0, 1))] = "Tweede Paasdag"
	holidays[formatDateFromTime(easter.AddDate(0, 0, 39))] = "Hemelvaartsdag"
	holidays[formatDateFromTime(easter.AddDate(0, 0, 49))] = "Eerste Pinksterdag"
	holidays[formatDateFromTime(easter.AddDate(0, 0, 50))] = "Tweede Pinksterdag"

	return holidays
}

// HolidaysInDutyWeek returns the holidays from the Tuesday after monday up to the next Monday
func HolidaysInDutyWeek(monday time.Time) []Holiday {
	var found []Holiday
	years := map[int]map[string]string{}
	for i := 1; i <= 7; i++ {
		date := monday.AddDate(0, 0, i)
		if years[date.Year()] == nil {
			years[date.Year()] = GetDutchHolidays(date.Year())
		}
		if name, ok := years[date.Year()][date.Format(ISODateFormat)]; ok {
			found = append(found, Holiday{Date: date, Name: name})
		}
	}
	sort.Slice(found, func(i, j int) bool { return found[i].Date.Before(found[j].Date) })
	return found
}

// calculateEaster calculates Easter Sunday using the Meeus/Jones/Butcher algorithm
func calculateEaster(year int) time.Time {
	a := year % 19
	b := year / 100
	c := year % 100
	d := b / 4
	e := b % 4
	f := (b + 8) / 25
	g := (b - f + 1) / 3
	h := (19*a + b - d - g + 15) % 30
	i := c / 4
	k := c % 4
	l := (32 + 2*e + 2*i - h - k) % 7
	m := (a + 11*h + 22*l) / 451
	month := (h + l - 7*m + 114) / 31
	day := ((h + l - 7*m + 114) % 31) + 1

	// Use noon to avoid timezone issues when formatting to YYYY-MM-DD
	return time.Date(year, time.Month(month), day, 12, 0, 0, 0, time.UTC)
}

// formatDate formats a date as YYYY-MM-DD
func formatDate(year, month, day int) string {
	return time.Date(year, time.Month(month), day, 12, 0, 0, 0, time.UTC).Format(ISODateFormat)
}

// formatDateFromTime formats a time.Time as YYYY-MM-DD
func formatDateFromTime(t time.Time) string {
	return t.Format(ISODateFormat)
}
