package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/mattn/go-isatty"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/alexanderramin/tripboard/internal/cli"
	"github.com/alexanderramin/tripboard/internal/config"
	"github.com/alexanderramin/tripboard/internal/db"
	"github.com/alexanderramin/tripboard/internal/importer"
	"github.com/alexanderramin/tripboard/internal/logging"
	"github.com/alexanderramin/tripboard/internal/repository"
	"github.com/alexanderramin/tripboard/internal/service"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	configPath := config.DefaultPath()
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	lvl, err := zapcore.ParseLevel(cfg.Logging.Level)
	if err != nil {
		return fmt.Errorf("parsing log level: %w", err)
	}
	level := zap.NewAtomicLevelAt(lvl)
	logger, err := logging.NewAtomic(level, cfg.Logging.JSON)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	observer := service.NewLogUseCaseObserver(logger)
	trips := service.NewTripService(importer.NewLoader(), cfg.Content, observer)

	app := &cli.App{
		Trips:      trips,
		Config:     cfg,
		ConfigPath: configPath,
		Logger:     logger,
		Level:      &level,
	}

	// Snapshots are optional: every other command works without the store.
	database, err := db.OpenDB(cfg.DBPath)
	if err != nil {
		logger.Warn("snapshot store unavailable", zap.String("path", cfg.DBPath), zap.Error(err))
	} else {
		defer database.Close()

		snapshotRepo := repository.NewSQLiteSnapshotRepo(database)
		dayStatRepo := repository.NewSQLiteDayStatRepo(database)
		uow := db.NewSQLiteUnitOfWork(database)
		app.Snapshots = service.NewSnapshotService(trips, snapshotRepo, dayStatRepo, uow, observer)
	}

	// Prompts and the TUI need a terminal on both ends.
	app.IsInteractive = func() bool {
		in := isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
		out := isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())
		return in && out
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rootCmd := cli.NewRootCmd(app)
	return rootCmd.ExecuteContext(ctx)
}
