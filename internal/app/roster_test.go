package app

import (
	"bytes"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/omhp/weektaak/internal/logger"
)

// captureLogs routes the package logger into a buffer for the duration of the test
func captureLogs(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	saved := logger.Logger
	logger.Logger = log.New(&buf)
	t.Cleanup(func() { logger.Logger = saved })
	return &buf
}

// mkWeek builds a week starting on the given ISO date
func mkWeek(t *testing.T, start string, names ...string) Week {
	t.Helper()
	require.Len(t, names, SlotCount)
	s := mustDate(t, start)
	w := Week{Start: s, End: ShiftWeek(s, 1)}
	copy(w.Names[:], names)
	return w
}

func mustDate(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := time.Parse(ISODateFormat, s)
	require.NoError(t, err)
	return d
}

func testRoster(t *testing.T) *Roster {
	t.Helper()
	r, err := NewRoster([]Week{
		mkWeek(t, "2024-01-08", "Bob", "Alice", "Dave", "Eve", "Carol"),
		mkWeek(t, "2024-01-01", "Alice", "Bob", "Carol", "Dave", "Eve"),
		mkWeek(t, "2024-01-15", "Carol", "Dave", "Eve", "Alice", "Alice"),
	})
	require.NoError(t, err)
	return r
}

func TestFindTasksForPerson(t *testing.T) {
	row := []string{"01-01", "07-01", "Alice", "Bob", "Alice", "Carol", "Dave"}

	positions := FindTasksForPerson(row, "Alice")
	assert.Equal(t, []int{2, 4}, positions)

	labels := LabelsFor(positions)
	assert.Equal(t, []string{"Keuken", "Keuken"}, labels)
	assert.Equal(t, "Keuken & Keuken", JoinTasks(labels))

	assert.Equal(t, []string{"Wc's"}, LabelsFor(FindTasksForPerson(row, "Carol")))
	assert.Equal(t, []string{"Douches"}, LabelsFor(FindTasksForPerson(row, "Dave")))
	assert.Nil(t, FindTasksForPerson(row, "Zoe"))
}

func TestLabelsForIgnoresDateColumns(t *testing.T) {
	assert.Nil(t, LabelsFor([]int{0, 1, 7}))
}

func TestRosterSortedAndIndexed(t *testing.T) {
	r := testRoster(t)

	weeks := r.Weeks()
	require.Len(t, weeks, 3)
	assert.Equal(t, "2024-01-01", weeks[0].Start.Format(ISODateFormat))
	assert.Equal(t, "2024-01-15", weeks[2].Start.Format(ISODateFormat))

	week, ok := r.LookupWeek("2024-01-08")
	require.True(t, ok)
	assert.Equal(t, "Bob", week.Names[Kitchen1])

	week, ok = r.LookupByWeekKey("3-2024")
	require.True(t, ok)
	assert.Equal(t, "2024-01-15", week.Start.Format(ISODateFormat))

	_, ok = r.LookupWeek("2030-01-07")
	assert.False(t, ok)
	_, ok = r.LookupByWeekKey("9-2030")
	assert.False(t, ok)
}

func TestRosterWeekKeyUsesISOYear(t *testing.T) {
	r, err := NewRoster([]Week{mkWeek(t, "2024-12-30", "A", "B", "C", "D", "E")})
	require.NoError(t, err)

	_, ok := r.LookupByWeekKey("1-2025")
	assert.True(t, ok)
	_, ok = r.LookupByWeekKey("1-2024")
	assert.False(t, ok)
}

func TestRosterNonMondayStart(t *testing.T) {
	logs := captureLogs(t)

	// 1 January 2023 is a Sunday
	r, err := NewRoster([]Week{mkWeek(t, "2023-01-01", "A", "B", "C", "D", "E")})
	require.NoError(t, err)

	week, ok := r.LookupWeek("2022-12-26")
	require.True(t, ok)
	assert.Equal(t, "2023-01-01", week.Start.Format(ISODateFormat))

	_, ok = r.LookupByWeekKey("52-2022")
	assert.True(t, ok)

	assert.Contains(t, logs.String(), "Week start is not a monday")
	assert.Contains(t, logs.String(), "2023-01-01")
}

func TestRosterMondayStartDoesNotWarn(t *testing.T) {
	logs := captureLogs(t)

	_, err := NewRoster([]Week{mkWeek(t, "2023-01-02", "A", "B", "C", "D", "E")})
	require.NoError(t, err)
	assert.Empty(t, logs.String())
}

func TestRosterRejectsDuplicateWeeks(t *testing.T) {
	_, err := NewRoster([]Week{
		mkWeek(t, "2024-01-01", "A", "B", "C", "D", "E"),
		mkWeek(t, "2024-01-01", "F", "G", "H", "I", "J"),
	})
	assert.ErrorIs(t, err, ErrDuplicateWeek)
}

func TestPeople(t *testing.T) {
	r, err := NewRoster([]Week{
		mkWeek(t, "2024-01-01", "Bob", "alice", "Bob", "", "alice"),
		mkWeek(t, "2024-01-08", "Bob", "Bob", "Bob", "Bob", "Bob"),
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"Bob", "alice"}, r.People())
}

func TestFindPerson(t *testing.T) {
	r := testRoster(t)

	person, ok := r.FindPerson("alice")
	require.True(t, ok)
	assert.Equal(t, "Alice", person)

	_, ok = r.FindPerson("zoe")
	assert.False(t, ok)
}

func TestHistory(t *testing.T) {
	r := testRoster(t)

	rows := r.History("Alice", nil)
	require.Len(t, rows, 3)
	assert.Equal(t, WeekID{Week: 1, Year: 2024}, rows[0].ID)
	assert.Equal(t, "1 jan", rows[0].Date)
	assert.Equal(t, []string{"Keuken"}, rows[0].Tasks)
	assert.Equal(t, "2024-01-15", rows[2].Monday)
	assert.Equal(t, []string{"Wc's", "Douches"}, rows[2].Tasks)

	assert.Empty(t, r.History("Zoe", nil))
}

func TestHistorySinceComparesNumerically(t *testing.T) {
	r, err := NewRoster([]Week{
		mkWeek(t, "2024-01-08", "Alice", "B", "C", "D", "E"), // week 2
		mkWeek(t, "2024-02-26", "Alice", "B", "C", "D", "E"), // week 9
		mkWeek(t, "2024-03-04", "Alice", "B", "C", "D", "E"), // week 10
		mkWeek(t, "2025-01-06", "Alice", "B", "C", "D", "E"), // week 2 of 2025
	})
	require.NoError(t, err)

	rows := r.History("Alice", &WeekID{Week: 9, Year: 2024})
	require.Len(t, rows, 3)
	assert.Equal(t, 9, rows[0].ID.Week)
	assert.Equal(t, 10, rows[1].ID.Week)
	assert.Equal(t, WeekID{Week: 2, Year: 2025}, rows[2].ID)
}

func TestWeekTasksFor(t *testing.T) {
	w := mkWeek(t, "2024-01-01", "Alice", "Bob", "Alice", "Carol", "Dave")
	assert.Equal(t, []string{"Keuken", "Keuken"}, w.TasksFor("Alice"))
	assert.True(t, w.Has("Dave"))
	assert.False(t, w.Has("Zoe"))
}
