package app

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCalculateEaster(t *testing.T) {
	tests := []struct {
		year int
		want string
	}{
		{2023, "2023-04-09"},
		{2024, "2024-03-31"},
		{2025, "2025-04-20"},
		{2026, "2026-04-05"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, formatDateFromTime(calculateEaster(tt.year)), "Easter %d", tt.year)
	}
}

func TestGetDutchHolidays(t *testing.T) {
	holidays := GetDutchHolidays(2025)

	assert.Len(t, holidays, 11)
	assert.Equal(t, "Nieuwjaarsdag", holidays["2025-01-01"])
	assert.Equal(t, "Goede Vrijdag", holidays["2025-04-18"])
	assert.Equal(t, "Tweede Paasdag", holidays["2025-04-21"])
	// April 27 2025 is a Sunday
	assert.Equal(t, "Koningsdag", holidays["2025-04-26"])
	assert.Empty(t, holidays["2025-04-27"])
	assert.Equal(t, "Bevrijdingsdag", holidays["2025-05-05"])
	assert.Equal(t, "Hemelvaartsdag", holidays["2025-05-29"])
	assert.Equal(t, "Tweede Pinksterdag", holidays["2025-06-09"])

	assert.Equal(t, "Koningsdag", GetDutchHolidays(2024)["2024-04-27"])
}

func TestHolidaysInDutyWeek(t *testing.T) {
	// Duty week of Monday 2024-04-01 runs Tuesday 2 April to Monday 8 April
	assert.Empty(t, HolidaysInDutyWeek(date(2024, 4, 1)))

	// The Monday itself belongs to the previous duty week
	got := HolidaysInDutyWeek(date(2024, 3, 25))
	var names []string
	for _, h := range got {
		names = append(names, h.Name)
	}
	assert.Equal(t, []string{"Goede Vrijdag", "Eerste Paasdag", "Tweede Paasdag"}, names)
}
