package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/omhp/weektaak/internal/app"
)

// Globals are the flags shared by every command
type Globals struct {
	Data     string `help:"Dataset location: file path, http(s) URL or s3://bucket/key." env:"WEEKTAAK_DATA" default:"data.csv"`
	Format   string `help:"Dataset format (auto, json, csv, base32)." env:"WEEKTAAK_FORMAT" default:"auto" enum:"auto,json,csv,base32"`
	Timezone string `help:"Timezone deciding the current week." env:"WEEKTAAK_TIMEZONE" default:"Europe/Amsterdam"`
	Debug    bool   `help:"Enable debug logging." env:"WEEKTAAK_DEBUG"`
	LogFile  string `help:"Also log to this rotating file." env:"WEEKTAAK_LOG_FILE" type:"path"`

	S3Endpoint  string `help:"Custom S3 endpoint (R2, MinIO)." env:"WEEKTAAK_S3_ENDPOINT" group:"s3"`
	S3Region    string `help:"S3 region." env:"WEEKTAAK_S3_REGION" group:"s3"`
	S3AccessKey string `help:"S3 access key." env:"WEEKTAAK_S3_ACCESS_KEY" group:"s3"`
	S3SecretKey string `help:"S3 secret key." env:"WEEKTAAK_S3_SECRET_KEY" group:"s3"`
}

// Config builds the app configuration from the flags
func (g *Globals) Config(ctx context.Context) (app.Config, error) {
	loc, err := app.LoadLocation(g.Timezone)
	if err != nil {
		return app.Config{}, fmt.Errorf("invalid timezone %q: %w", g.Timezone, err)
	}

	format, err := app.ParseFormat(g.Format)
	if err != nil {
		return app.Config{}, err
	}

	source, err := app.NewSource(ctx, g.Data, app.S3Config{
		Endpoint:  g.S3Endpoint,
		Region:    g.S3Region,
		AccessKey: g.S3AccessKey,
		SecretKey: g.S3SecretKey,
	})
	if err != nil {
		return app.Config{}, err
	}

	return app.Config{Source: source, Format: format, Location: loc}, nil
}

// load fetches and parses the dataset once, for the batch commands
func (g *Globals) load(ctx context.Context) (app.Config, *app.Roster, error) {
	cfg, err := g.Config(ctx)
	if err != nil {
		return cfg, nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	ds, err := app.LoadDataset(ctx, cfg)
	if err != nil {
		return cfg, nil, err
	}
	return cfg, ds.Roster, nil
}
