package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/praxisdesk/availability/adapter/cli"
	cliAvailability "github.com/praxisdesk/availability/adapter/cli/availability"
	cliBooking "github.com/praxisdesk/availability/adapter/cli/booking"
	"github.com/praxisdesk/availability/internal/app"
	"github.com/praxisdesk/availability/pkg/config"
)

func main() {
	// Setup logger
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	// Create context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle shutdown signals
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		cancel()
	}()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		// In development without .env, use defaults
		logger.Warn("failed to load config, using development mode", "error", err)
		cfg = &config.Config{AppEnv: "development"}
	}

	// Update logger level based on config
	logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: logLevel(cfg),
	}))
	cli.SetLogger(logger)

	// Try to initialize the full container
	var cliApp *cli.App
	container, err := app.NewContainer(ctx, cfg, logger)
	if err != nil {
		if cfg.IsDevelopment() {
			logger.Warn("failed to initialize container, running in limited mode", "error", err)
			// In development, allow CLI to run without storage
			cliApp = nil
		} else {
			logger.Error("failed to initialize container", "error", err)
			os.Exit(1)
		}
	} else {
		defer container.Close()

		// Create CLI app with handlers
		cliApp = cli.NewApp(
			container.SaveAvailabilityHandler,
			container.BookAppointmentHandler,
			container.BlockTimeHandler,
			container.UnblockTimeHandler,
			container.CancelSeriesHandler,
			container.GetAvailabilityHandler,
			container.ExpandSlotsHandler,
			container.CalendarSlotsHandler,
		)

		if container.CalDAVPublisher != nil {
			cliApp.SetCalDAVPublisher(container.CalDAVPublisher)
		}
	}

	// Set the CLI app
	cli.SetApp(cliApp)

	// Register commands
	cli.AddCommand(cliAvailability.Cmd)
	cli.AddCommand(cliBooking.Cmd)

	// Execute CLI
	cli.Execute()
}

func logLevel(cfg *config.Config) slog.Level {
	switch strings.ToLower(cfg.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		if cfg.IsDevelopment() {
			return slog.LevelDebug
		}
		return slog.LevelInfo
	}
}
