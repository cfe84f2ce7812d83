package main

import (
	"fmt"
	"os"

	"github.com/alecthomas/kong"
	"github.com/joho/godotenv"

	"github.com/omhp/weektaak/internal/commands"
	"github.com/omhp/weektaak/internal/logger"
)

var CLI struct {
	commands.Globals

	Serve   commands.ServeCmd   `cmd:"" default:"withargs" help:"Serve the roster pages and feeds."`
	ICS     commands.ICSCmd     `cmd:"" name:"ics" help:"Write personal and admin calendars to disk."`
	Convert commands.ConvertCmd `cmd:"" help:"Convert the dataset to tasks.json."`
	Week    commands.WeekCmd    `cmd:"" help:"Print the roster of a week."`
}

func main() {
	// A missing .env is fine; the environment may already be set
	_ = godotenv.Load()

	ctx := kong.Parse(&CLI,
		kong.Name("weektaak"),
		kong.Description("Household chore roster: week overview, personal pages and calendars."),
		kong.UsageOnError(),
	)

	if err := logger.Init(logger.Config{Debug: CLI.Debug, LogFile: CLI.LogFile}); err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to initialize logger: %v\n", err)
		os.Exit(1)
	}

	if err := ctx.Run(&CLI.Globals); err != nil {
		logger.Fatal("Command failed", "command", ctx.Command(), "error", err)
	}
}
