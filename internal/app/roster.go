package app

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/omhp/weektaak/internal/logger"
)

// ErrDuplicateWeek is returned when two rows describe the same week
var ErrDuplicateWeek = errors.New("duplicate week")

// Roster is the parsed dataset. It is never mutated after NewRoster.
type Roster struct {
	weeks    []Week
	byMonday map[string]int
	byKey    map[string]int
}

// NewRoster sorts weeks by start date and indexes them by Monday and week key
func NewRoster(weeks []Week) (*Roster, error) {
	sorted := make([]Week, len(weeks))
	copy(sorted, weeks)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Start.Before(sorted[j].Start)
	})

	r := &Roster{
		weeks:    sorted,
		byMonday: make(map[string]int, len(sorted)),
		byKey:    make(map[string]int, len(sorted)),
	}
	for i, w := range sorted {
		if w.Start.Weekday() != time.Monday {
			// Indexed under its Monday so the week pages still find it
			logger.Warn("Week start is not a monday",
				"start", w.Start.Format(ISODateFormat), "weekday", w.Start.Weekday().String())
		}
		date := Monday(w.Start).Format(ISODateFormat)
		if _, ok := r.byMonday[date]; ok {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateWeek, date)
		}
		key := w.ID().Key()
		if _, ok := r.byKey[key]; ok {
			return nil, fmt.Errorf("%w: week %s", ErrDuplicateWeek, key)
		}
		r.byMonday[date] = i
		r.byKey[key] = i
	}
	return r, nil
}

// Weeks returns a copy of all weeks in start order
func (r *Roster) Weeks() []Week {
	weeks := make([]Week, len(r.weeks))
	copy(weeks, r.weeks)
	return weeks
}

// Len returns the number of weeks
func (r *Roster) Len() int {
	return len(r.weeks)
}

// LookupWeek returns the week starting on the given Monday (YYYY-MM-DD)
func (r *Roster) LookupWeek(monday string) (Week, bool) {
	i, ok := r.byMonday[monday]
	if !ok {
		return Week{}, false
	}
	return r.weeks[i], true
}

// LookupByWeekKey returns the week with key "<week>-<year>"
func (r *Roster) LookupByWeekKey(key string) (Week, bool) {
	i, ok := r.byKey[key]
	if !ok {
		return Week{}, false
	}
	return r.weeks[i], true
}

// People returns every distinct name on the roster, sorted
func (r *Roster) People() []string {
	seen := make(map[string]bool)
	var names []string
	for _, w := range r.weeks {
		for _, name := range w.Names {
			if name == "" || seen[name] {
				continue
			}
			seen[name] = true
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}

// FindPerson resolves a name case-insensitively, as used by calendar file names
func (r *Roster) FindPerson(name string) (string, bool) {
	for _, person := range r.People() {
		if person == name {
			return person, true
		}
	}
	for _, person := range r.People() {
		if strings.EqualFold(person, name) {
			return person, true
		}
	}
	return "", false
}

// PersonWeeks returns the weeks in which person holds any slot
func (r *Roster) PersonWeeks(person string) []Week {
	var weeks []Week
	for _, w := range r.weeks {
		if w.Has(person) {
			weeks = append(weeks, w)
		}
	}
	return weeks
}

// History lists the weeks of person in order. When since is set, earlier weeks are skipped.
func (r *Roster) History(person string, since *WeekID) []HistoryRow {
	var rows []HistoryRow
	for _, w := range r.PersonWeeks(person) {
		id := w.ID()
		if since != nil && id.Before(*since) {
			continue
		}
		rows = append(rows, HistoryRow{
			ID:     id,
			Monday: w.Start.Format(ISODateFormat),
			Date:   ShortDate(w.Start),
			Tasks:  w.TasksFor(person),
		})
	}
	return rows
}

// FindTasksForPerson returns every position in row holding person
func FindTasksForPerson(row []string, person string) []int {
	var indexes []int
	for i, name := range row {
		if name == person {
			indexes = append(indexes, i)
		}
	}
	return indexes
}

// LabelsFor maps CSV row positions to task labels; date columns are ignored
func LabelsFor(positions []int) []string {
	var labels []string
	for _, pos := range positions {
		slot := pos - csvSlotOffset
		if slot < 0 || slot >= SlotCount {
			continue
		}
		labels = append(labels, TaskLabels[Slot(slot)])
	}
	return labels
}

// JoinTasks joins task labels for display
func JoinTasks(labels []string) string {
	return strings.Join(labels, TaskJoiner)
}

// CurrentWeek returns the ID of the week being shown at now, following Tuesday turnover
func CurrentWeek(now time.Time) WeekID {
	return ISOWeek(now.AddDate(0, 0, -1))
}
