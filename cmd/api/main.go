package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"time"

	"github.com/FitCoachOrg/FitCoachTrainer-sub001/internal/envstruct"
	"github.com/FitCoachOrg/FitCoachTrainer-sub001/internal/errors"
	"github.com/FitCoachOrg/FitCoachTrainer-sub001/internal/logging"
	"github.com/FitCoachOrg/FitCoachTrainer-sub001/internal/program"
	"github.com/FitCoachOrg/FitCoachTrainer-sub001/internal/sqlite"
)

type application struct {
	logger         *slog.Logger
	programService *program.Service
}

type config struct {
	// Addr is the address to listen on. It's possible to choose the address dynamically with localhost:0.
	Addr string `env:"FITCOACH_ADDR" envDefault:"localhost:8080"`
	// SqliteURL is the URL to the SQLite database. You can use ":memory:" for an ethereal in-memory database.
	SqliteURL string `env:"FITCOACH_SQLITE_URL" envDefault:"./fitcoach.sqlite3"`
	// CatalogTTLMinutes bounds how long the exercise catalog snapshot is served from memory.
	CatalogTTLMinutes int `env:"FITCOACH_CATALOG_TTL_MINUTES" envDefault:"15"`
	// GenerationTimeoutSeconds is the per-request budget for program generation.
	GenerationTimeoutSeconds int `env:"FITCOACH_GENERATION_TIMEOUT_SECONDS" envDefault:"60"`
}

func run(ctx context.Context, logger *slog.Logger, lookupEnv func(string) (string, bool)) error {
	var (
		cancel context.CancelFunc
		err    error
	)

	ctx, cancel = signal.NotifyContext(ctx, os.Interrupt)
	defer cancel()

	var cfg config
	if err = envstruct.Populate(&cfg, lookupEnv); err != nil {
		return errors.Wrap(err, "populate config")
	}

	db, err := sqlite.NewDatabase(ctx, cfg.SqliteURL, logger)
	if err != nil {
		return errors.Wrap(err, "open db", slog.String("url", cfg.SqliteURL))
	}
	logger.LogAttrs(ctx, slog.LevelInfo, "connected to db")

	presets, err := program.LoadPresets(logger)
	if err != nil {
		return errors.Wrap(err, "load presets")
	}

	app := application{
		logger: logger,
		programService: program.NewService(db, logger, presets,
			time.Duration(cfg.CatalogTTLMinutes)*time.Minute),
	}

	handler := app.routes(time.Duration(cfg.GenerationTimeoutSeconds) * time.Second)
	if err = app.configureAndStartServer(ctx, cfg.Addr, handler); err != nil {
		return errors.Wrap(err, "start server")
	}
	return nil
}

func main() {
	ctx := context.Background()
	loggerHandler := logging.NewContextHandler(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		AddSource:   false,
		Level:       slog.LevelDebug,
		ReplaceAttr: nil,
	}))
	logger := slog.New(loggerHandler)
	if err := run(ctx, logger, os.LookupEnv); err != nil {
		logger.LogAttrs(ctx, slog.LevelError, "failure starting application", errors.SlogError(err))
		os.Exit(1)
	}
}
