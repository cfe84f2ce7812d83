package app

import (
	"time"
)

// Constants
const (
	ISODateFormat = "2006-01-02"
	CSVDateFormat = "02-01-2006"

	DefaultTimezone = "Europe/Amsterdam"
	DefaultPort     = 8080

	// Task labels
	LabelKitchen = "Keuken"
	LabelToilets = "Wc's"
	LabelShowers = "Douches"
	TaskJoiner   = " & "

	// Error messages
	ErrNoRoster       = "Geen rooster voor deze week"
	ErrFetchFailed    = "Rooster kon niet geladen worden"
	ErrUnknownPerson  = "Unknown person"
	ErrInternalServer = "Internal server error"

	// Paths
	PersonalPage = "/persoonlijk.html"
	CalendarDir  = "/cal/"
	AdminCalName = "admin"

	// Query parameters
	ParamDate   = "date"
	ParamPerson = "persoon"

	// ICS constants
	ICSProductID  = "-//OMHP//Weektaak//NL"
	ICSTimezone   = "Europe/Amsterdam"
	ICSUIDDomain  = "weektaak.omhp.nl"
	ICSRefreshTTL = "PT12H"

	FilePermissions = 0644
)

// dutchMonths are the short month names used on the pages
var dutchMonths = [12]string{
	"jan", "feb", "mrt", "apr", "mei", "jun",
	"jul", "aug", "sep", "okt", "nov", "dec",
}

// Config holds the runtime settings of the server
type Config struct {
	Source   Source
	Format   Format
	Location *time.Location
	// HidePast drops weeks before the current week from personal histories
	HidePast bool
	// Now is overridable for tests
	Now func() time.Time
}

func (c Config) now() time.Time {
	now := time.Now
	if c.Now != nil {
		now = c.Now
	}
	loc := c.Location
	if loc == nil {
		loc = time.Local
	}
	return now().In(loc)
}

// LoadLocation loads an IANA timezone, "" and "Local" mean the system zone
func LoadLocation(name string) (*time.Location, error) {
	if name == "" || name == "Local" {
		return time.Local, nil
	}
	return time.LoadLocation(name)
}
