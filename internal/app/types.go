package app

import (
	"fmt"
	"time"
)

// Slot is a fixed duty position within a week
type Slot int

const (
	Kitchen1 Slot = iota
	Kitchen2
	Kitchen3
	Toilets
	Showers
)

// SlotCount is the number of duty slots in every week
const SlotCount = 5

// csvSlotOffset is the column of the first duty slot in a CSV row (after start and end date)
const csvSlotOffset = 2

// TaskLabels maps slots to their Dutch display names
var TaskLabels = map[Slot]string{
	Kitchen1: LabelKitchen,
	Kitchen2: LabelKitchen,
	Kitchen3: LabelKitchen,
	Toilets:  LabelToilets,
	Showers:  LabelShowers,
}

// Week is the set of duty assignments for one calendar week
type Week struct {
	Start time.Time
	End   time.Time
	Names [SlotCount]string
}

// Kitchen returns the three kitchen names
func (w Week) Kitchen() []string {
	return []string{w.Names[Kitchen1], w.Names[Kitchen2], w.Names[Kitchen3]}
}

// ID returns the ISO week of the week start
func (w Week) ID() WeekID {
	return ISOWeek(w.Start)
}

// Row returns the week in CSV row layout: start, end, then the slots
func (w Week) Row() []string {
	row := []string{w.Start.Format(CSVDateFormat), w.End.Format(CSVDateFormat)}
	return append(row, w.Names[:]...)
}

// Has reports whether person holds any slot this week
func (w Week) Has(person string) bool {
	for _, name := range w.Names {
		if name == person {
			return true
		}
	}
	return false
}

// TasksFor returns the labels of every slot person holds this week
func (w Week) TasksFor(person string) []string {
	return LabelsFor(FindTasksForPerson(w.Row(), person))
}

// WeekID identifies an ISO 8601 week
type WeekID struct {
	Week int `json:"week"`
	Year int `json:"year"`
}

// Key renders the week as "<week>-<year>"
func (id WeekID) Key() string {
	return fmt.Sprintf("%d-%d", id.Week, id.Year)
}

// Before compares numerically, year first
func (id WeekID) Before(other WeekID) bool {
	if id.Year != other.Year {
		return id.Year < other.Year
	}
	return id.Week < other.Week
}

// WeekRecord is the JSON shape of one week in tasks.json
type WeekRecord struct {
	Kitchen1 string `json:"kitchen-1"`
	Kitchen2 string `json:"kitchen-2"`
	Kitchen3 string `json:"kitchen-3"`
	Toilets  string `json:"toilets"`
	Showers  string `json:"showers"`
}

// HistoryRow is one week in a person's history
type HistoryRow struct {
	ID     WeekID   `json:"id"`
	Monday string   `json:"monday"`
	Date   string   `json:"date"`
	Tasks  []string `json:"tasks"`
}
