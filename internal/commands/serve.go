package commands

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/omhp/weektaak/internal/app"
	"github.com/omhp/weektaak/internal/logger"
)

// ServeCmd runs the web server
type ServeCmd struct {
	Port     int  `help:"Port to listen on." env:"PORT" default:"8080"`
	HidePast bool `help:"Hide weeks before the current week on personal pages." env:"WEEKTAAK_HIDE_PAST"`
}

func (c *ServeCmd) Run(g *Globals) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := g.Config(ctx)
	if err != nil {
		return err
	}
	cfg.HidePast = c.HidePast

	server, err := app.NewServer(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize server: %w", err)
	}

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", c.Port),
		Handler:           server.Routes(),
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      30 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("Starting Weektaak", "addr", fmt.Sprintf("http://localhost:%d", c.Port), "data", g.Data)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
