package app

import (
	"fmt"
	"html"
	"html/template"
	"net/url"
	"strings"
	"time"
)

// WeekView holds the fragments of the week overview page
type WeekView struct {
	Monday     string        `json:"monday"`
	ID         WeekID        `json:"id"`
	Kitchen    template.HTML `json:"kitchen"`
	Toilet     template.HTML `json:"toilet"`
	Shower     template.HTML `json:"shower"`
	WeekNumber template.HTML `json:"weeknumber"`
	NextWeek   string        `json:"nextWeek"`
	PrevWeek   string        `json:"prevWeek"`
	Holidays   []string      `json:"holidays,omitempty"`
	Empty      bool          `json:"empty"`
}

// PersonOption is one entry of the names list
type PersonOption struct {
	Name     string
	Selected bool
}

// PersonHistory holds the fragments of the personal page for one person
type PersonHistory struct {
	Person   string        `json:"person"`
	Rows     []HistoryRow  `json:"rows"`
	Table    template.HTML `json:"-"`
	ICSLink  string        `json:"icslink"`
	Title    string        `json:"title"`
	Fragment string        `json:"fragment"`
}

// personalLink links a name to its personal page
func personalLink(name string) string {
	return fmt.Sprintf(`<a href="%s#%s">%s</a>`,
		PersonalPage, html.EscapeString(url.PathEscape(name)), html.EscapeString(name))
}

// weekURL returns current with the date parameter set to date
func weekURL(current *url.URL, date time.Time) string {
	next := url.URL{}
	if current != nil {
		next = *current
	}
	q := next.Query()
	q.Set(ParamDate, date.Format(ISODateFormat))
	next.RawQuery = q.Encode()
	return next.String()
}

// RenderWeekView formats the week starting on monday. A nil week renders the empty state.
func RenderWeekView(week *Week, monday time.Time, current *url.URL) WeekView {
	// Duties run from Tuesday until the next Monday
	start := ShortDate(monday.AddDate(0, 0, 1))
	end := ShortDate(monday.AddDate(0, 0, 7))

	view := WeekView{
		Monday:     monday.Format(ISODateFormat),
		ID:         ISOWeek(monday),
		WeekNumber: template.HTML(fmt.Sprintf("<em>Week %d</em><br>%s - %s", WeekNumber(monday), start, end)),
		NextWeek:   weekURL(current, ShiftWeek(monday, 1)),
		PrevWeek:   weekURL(current, ShiftWeek(monday, -1)),
	}

	for _, h := range HolidaysInDutyWeek(monday) {
		view.Holidays = append(view.Holidays, fmt.Sprintf("%s (%s)", h.Name, ShortDate(h.Date)))
	}

	if week == nil {
		view.Empty = true
		return view
	}

	links := make([]string, 0, 3)
	for _, name := range week.Kitchen() {
		links = append(links, personalLink(name))
	}
	view.Kitchen = template.HTML(strings.Join(links, ", "))
	view.Toilet = template.HTML(personalLink(week.Names[Toilets]))
	view.Shower = template.HTML(personalLink(week.Names[Showers]))

	return view
}

// RenderPersonOptions lists every person, marking selected when present
func RenderPersonOptions(roster *Roster, selected string) ([]PersonOption, bool) {
	found := false
	var options []PersonOption
	for _, name := range roster.People() {
		isSelected := name == selected
		found = found || isSelected
		options = append(options, PersonOption{Name: name, Selected: isSelected})
	}
	return options, found
}

// RenderPersonHistory builds the table and links of the personal page
func RenderPersonHistory(roster *Roster, person string, since *WeekID) PersonHistory {
	rows := roster.History(person, since)

	var table strings.Builder
	for _, row := range rows {
		fmt.Fprintf(&table, "<tr><td>%d</td><td>%s</td><td>%s</td></tr>",
			row.ID.Week, html.EscapeString(row.Date), html.EscapeString(JoinTasks(row.Tasks)))
	}

	return PersonHistory{
		Person:   person,
		Rows:     rows,
		Table:    template.HTML(table.String()),
		ICSLink:  CalendarPath(person),
		Title:    "Weektaken " + person,
		Fragment: person,
	}
}

// CalendarPath returns the personal calendar path for person
func CalendarPath(person string) string {
	return CalendarDir + url.PathEscape(strings.ToLower(person)) + ".ics"
}
