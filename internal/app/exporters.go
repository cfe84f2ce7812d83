package app

import (
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/omhp/weektaak/internal/logger"
)

// uidNamespace seeds the deterministic event UIDs so calendar apps update instead of duplicating
var uidNamespace = uuid.NewSHA1(uuid.NameSpaceDNS, []byte(ICSUIDDomain))

// CalendarEvent is one all-day duty week in a calendar
type CalendarEvent struct {
	UID         string
	Start       time.Time
	Days        int
	Summary     string
	Description string
}

// WeekText renders a week as plain text, used as event description
func WeekText(w Week) string {
	var b strings.Builder
	fmt.Fprintf(&b, "TAKEN WEEK %d\n\n", WeekNumber(w.Start))
	b.WriteString(LabelKitchen + " 🍳\n")
	for _, name := range w.Kitchen() {
		fmt.Fprintf(&b, "- %s\n", name)
	}
	fmt.Fprintf(&b, "\n%s 🚽\n- %s\n", LabelToilets, w.Names[Toilets])
	fmt.Fprintf(&b, "\n%s 🚿\n- %s", LabelShowers, w.Names[Showers])
	return b.String()
}

func eventUID(w Week, person string) string {
	name := w.Start.Format(ISODateFormat) + "/" + strings.ToLower(person)
	return uuid.NewSHA1(uidNamespace, []byte(name)).String() + "@" + ICSUIDDomain
}

// PersonalEvents returns one event per week in which person has a task
func PersonalEvents(r *Roster, person string) []CalendarEvent {
	var events []CalendarEvent
	for _, w := range r.PersonWeeks(person) {
		events = append(events, CalendarEvent{
			UID:         eventUID(w, person),
			Start:       w.Start,
			Days:        6,
			Summary:     "Weektaak: " + JoinTasks(w.TasksFor(person)),
			Description: WeekText(w),
		})
	}
	return events
}

// AdminEvents returns one event for every week on the roster
func AdminEvents(r *Roster) []CalendarEvent {
	var events []CalendarEvent
	for _, w := range r.Weeks() {
		events = append(events, CalendarEvent{
			UID:         eventUID(w, AdminCalName),
			Start:       w.Start,
			Days:        6,
			Summary:     "Weektaak",
			Description: WeekText(w),
		})
	}
	return events
}

// icsWriter writes CRLF terminated lines and keeps the first error
type icsWriter struct {
	w   io.Writer
	err error
}

func (iw *icsWriter) line(format string, args ...interface{}) {
	if iw.err != nil {
		return
	}
	_, iw.err = io.WriteString(iw.w, foldLine(fmt.Sprintf(format, args...))+"\r\n")
}

// maxLineOctets is the content line limit of RFC 5545 3.1, excluding CRLF
const maxLineOctets = 75

// foldLine splits a content line into CRLF + space continuations of at most
// maxLineOctets octets, never inside a UTF-8 sequence
func foldLine(s string) string {
	if len(s) <= maxLineOctets {
		return s
	}

	var b strings.Builder
	n := 0
	for i := 0; i < len(s); {
		_, size := utf8.DecodeRuneInString(s[i:])
		if n+size > maxLineOctets {
			b.WriteString("\r\n ")
			n = 1
		}
		b.WriteString(s[i : i+size])
		n += size
		i += size
	}
	return b.String()
}

// escapeText escapes a TEXT value (RFC 5545 3.3.11)
func escapeText(s string) string {
	r := strings.NewReplacer(`\`, `\\`, ";", `\;`, ",", `\,`, "\r\n", `\n`, "\n", `\n`)
	return r.Replace(s)
}

// WriteCalendar writes a published iCalendar feed
func WriteCalendar(w io.Writer, name string, events []CalendarEvent, stamp time.Time) error {
	iw := &icsWriter{w: w}

	iw.line("BEGIN:VCALENDAR")
	iw.line("VERSION:2.0")
	iw.line("PRODID:%s", ICSProductID)
	iw.line("METHOD:PUBLISH")
	iw.line("X-WR-CALNAME:%s", escapeText(name))
	iw.line("X-WR-TIMEZONE:%s", ICSTimezone)
	iw.line("CALSCALE:GREGORIAN")
	iw.line("X-PUBLISHED-TTL:%s", ICSRefreshTTL)

	dtstamp := stamp.UTC().Format("20060102T150405Z")
	for _, event := range events {
		// All-day event spanning the duty days
		iw.line("BEGIN:VEVENT")
		iw.line("UID:%s", event.UID)
		iw.line("DTSTAMP:%s", dtstamp)
		iw.line("DTSTART;VALUE=DATE:%s", event.Start.Format("20060102"))
		iw.line("DTEND;VALUE=DATE:%s", event.Start.AddDate(0, 0, event.Days).Format("20060102"))
		iw.line("SUMMARY:%s", escapeText(event.Summary))
		iw.line("DESCRIPTION:%s", escapeText(event.Description))
		iw.line("TRANSP:TRANSPARENT")
		iw.line("END:VEVENT")
	}

	iw.line("END:VCALENDAR")
	return iw.err
}

// GenerateCalendarICS serves a calendar feed inline so it can be subscribed to
func GenerateCalendarICS(w http.ResponseWriter, name string, events []CalendarEvent, stamp time.Time) {
	w.Header().Set("Content-Type", "text/calendar; charset=utf-8")
	if err := WriteCalendar(w, name, events, stamp); err != nil {
		logger.Error("Error writing calendar", "calendar", name, "error", err)
	}
}

// GenerateJSON serves the roster in the tasks.json layout
func GenerateJSON(w http.ResponseWriter, r *Roster) {
	data, err := EncodeJSON(r)
	if err != nil {
		logger.Error("Error encoding JSON export", "error", err)
		http.Error(w, ErrInternalServer, http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	if _, err := w.Write(data); err != nil {
		logger.Error("Error writing JSON export", "error", err)
	}
}
