package commands

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/omhp/weektaak/internal/app"
	"github.com/omhp/weektaak/internal/logger"
)

// ICSCmd writes the personal calendars and the admin calendar
type ICSCmd struct {
	Template string `help:"Filename template for personal calendars; {} is replaced by the lowercased name." default:"cal/{}.ics"`
	Admin    string `help:"Path of the admin calendar; empty skips it." default:"cal/admin.ics"`
}

func (c *ICSCmd) Run(g *Globals) error {
	_, roster, err := g.load(context.Background())
	if err != nil {
		return err
	}

	written, err := app.WriteCalendars(roster, c.Template, c.Admin, time.Now())
	if err != nil {
		return err
	}
	logger.Info("Calendars written", "count", len(written))
	return nil
}

// ConvertCmd converts the dataset into the tasks.json layout
type ConvertCmd struct {
	Output string `help:"Output path." default:"public/tasks.json" short:"o"`
}

func (c *ConvertCmd) Run(g *Globals) error {
	_, roster, err := g.load(context.Background())
	if err != nil {
		return err
	}

	if err := app.WriteJSONFile(roster, c.Output); err != nil {
		return fmt.Errorf("failed to write %s: %w", c.Output, err)
	}
	logger.Info("Dataset converted", "weeks", roster.Len(), "output", c.Output)
	return nil
}

// WeekCmd prints the roster of a week
type WeekCmd struct {
	Date string `arg:"" optional:"" help:"Any date in the week (YYYY-MM-DD); defaults to the current week."`
}

func (c *WeekCmd) Run(g *Globals) error {
	cfg, roster, err := g.load(context.Background())
	if err != nil {
		return err
	}

	return PrintWeek(os.Stdout, roster, c.Date, time.Now().In(cfg.Location))
}

// PrintWeek writes the text rendering of the week containing date
func PrintWeek(w io.Writer, roster *app.Roster, date string, now time.Time) error {
	monday, err := app.ShownWeek(date, now)
	if err != nil {
		return err
	}

	week, ok := roster.LookupWeek(monday.Format(app.ISODateFormat))
	if !ok {
		_, err := fmt.Fprintf(w, "%s (week %d)\n", app.ErrNoRoster, app.WeekNumber(monday))
		return err
	}
	_, err = fmt.Fprintln(w, app.WeekText(week))
	return err
}
