package app

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func TestWeekNumber(t *testing.T) {
	tests := []struct {
		name string
		date time.Time
		want int
	}{
		{name: "first monday of 2024", date: date(2024, 1, 1), want: 1},
		{name: "last day of 2023", date: date(2023, 12, 31), want: 52},
		{name: "late december in week 1 of next year", date: date(2024, 12, 30), want: 1},
		{name: "early january in week 53 of previous year", date: date(2021, 1, 3), want: 53},
		{name: "thursday of week 53", date: date(2020, 12, 31), want: 53},
		{name: "2026 has 53 weeks", date: date(2026, 12, 31), want: 53},
		{name: "mid year", date: date(2025, 6, 18), want: 25},
		{name: "time of day is ignored", date: time.Date(2024, 1, 7, 23, 59, 0, 0, time.UTC), want: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, WeekNumber(tt.date))
			// Stable under recomputation
			assert.Equal(t, tt.want, WeekNumber(tt.date))
		})
	}
}

func TestWeekNumberMatchesReference(t *testing.T) {
	zones := []*time.Location{time.UTC, time.FixedZone("UTC-10", -10*3600)}
	if amsterdam, err := time.LoadLocation("Europe/Amsterdam"); err == nil {
		zones = append(zones, amsterdam)
	}

	for _, loc := range zones {
		for d := time.Date(2015, 1, 1, 12, 0, 0, 0, loc); d.Year() < 2031; d = d.AddDate(0, 0, 1) {
			year, week := d.ISOWeek()
			got := ISOWeek(d)
			if got.Week != week || got.Year != year {
				t.Fatalf("ISOWeek(%s in %s) = %+v, want week %d of %d", d.Format(ISODateFormat), loc, got, week, year)
			}
		}
	}
}

func TestWeekRoundTrip(t *testing.T) {
	for m := date(2019, 12, 30); m.Year() < 2027; m = m.AddDate(0, 0, 7) {
		want := ISOWeek(m)
		for i := 0; i < 7; i++ {
			d := m.AddDate(0, 0, i)
			require.Equal(t, want, ISOWeek(d), "day %s of week %s", d.Format(ISODateFormat), m.Format(ISODateFormat))
			require.Equal(t, m, Monday(d))
		}
	}
}

func TestShownWeek(t *testing.T) {
	tests := []struct {
		name    string
		param   string
		now     time.Time
		want    time.Time
		wantErr bool
	}{
		{
			name: "tuesday shows the new week",
			now:  time.Date(2024, 1, 9, 10, 0, 0, 0, time.UTC),
			want: date(2024, 1, 8),
		},
		{
			name: "monday still shows the previous week",
			now:  time.Date(2024, 1, 8, 10, 0, 0, 0, time.UTC),
			want: date(2024, 1, 1),
		},
		{
			name:  "date parameter is aligned to monday",
			param: "2024-12-31",
			now:   time.Date(2024, 1, 9, 10, 0, 0, 0, time.UTC),
			want:  date(2024, 12, 30),
		},
		{
			name:  "monday parameter is used as is",
			param: "2025-01-06",
			now:   time.Date(2024, 1, 9, 10, 0, 0, 0, time.UTC),
			want:  date(2025, 1, 6),
		},
		{
			name:    "invalid parameter falls back to current week",
			param:   "06-01-2025",
			now:     time.Date(2024, 1, 9, 10, 0, 0, 0, time.UTC),
			want:    date(2024, 1, 8),
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ShownWeek(tt.param, tt.now)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, tt.want, got)
			assert.Equal(t, time.Monday, got.Weekday())
		})
	}
}

func TestShiftWeek(t *testing.T) {
	assert.Equal(t, date(2025, 1, 6), ShiftWeek(date(2024, 12, 30), 1))
	assert.Equal(t, date(2024, 12, 23), ShiftWeek(date(2024, 12, 30), -1))
	assert.Equal(t, date(2024, 3, 4), ShiftWeek(date(2024, 2, 26), 1))
}

func TestShortDate(t *testing.T) {
	assert.Equal(t, "6 jan", ShortDate(date(2025, 1, 6)))
	assert.Equal(t, "31 mrt", ShortDate(date(2024, 3, 31)))
	assert.Equal(t, "25 dec", ShortDate(date(2024, 12, 25)))
}

func TestWeekIDBefore(t *testing.T) {
	assert.True(t, WeekID{Week: 9, Year: 2024}.Before(WeekID{Week: 10, Year: 2024}))
	assert.False(t, WeekID{Week: 10, Year: 2024}.Before(WeekID{Week: 9, Year: 2024}))
	assert.True(t, WeekID{Week: 52, Year: 2024}.Before(WeekID{Week: 1, Year: 2025}))
	assert.Equal(t, "1-2025", WeekID{Week: 1, Year: 2025}.Key())
}
