// Command smoketest generates a program for the seeded demo client against
// an in-memory database and prints the plan. It exercises the whole
// pipeline without needing a running server.
package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/FitCoachOrg/FitCoachTrainer-sub001/internal/errors"
	"github.com/FitCoachOrg/FitCoachTrainer-sub001/internal/logging"
	"github.com/FitCoachOrg/FitCoachTrainer-sub001/internal/program"
	"github.com/FitCoachOrg/FitCoachTrainer-sub001/internal/sqlite"
)

const demoClientID = 1

func run(ctx context.Context, logger *slog.Logger) error {
	ctx, cancel := context.WithTimeout(ctx, time.Minute)
	defer cancel()

	db, err := sqlite.NewDatabase(ctx, ":memory:", logger)
	if err != nil {
		return errors.Wrap(err, "open db")
	}
	defer db.Close()

	presets, err := program.LoadPresets(logger)
	if err != nil {
		return errors.Wrap(err, "load presets")
	}
	svc := program.NewService(db, logger, presets, time.Minute)

	prog, err := svc.GenerateProgram(ctx, demoClientID, 4, time.Time{})
	if err != nil {
		return errors.Wrap(err, "generate program")
	}

	logger.LogAttrs(ctx, slog.LevelInfo, "program generated",
		slog.String("summary", prog.Summary),
		slog.String("recommendation", prog.Recommendation.Reason))
	for _, day := range prog.Days {
		if !day.IsWorkoutDay {
			continue
		}
		names := make([]string, 0, len(day.Exercises))
		for _, ex := range day.Exercises {
			names = append(names, ex.Name)
		}
		logger.LogAttrs(ctx, slog.LevelInfo, "workout day",
			slog.Int("day", day.DayNumber),
			slog.String("focus", day.Focus),
			slog.Any("exercises", names))
	}
	return nil
}

func main() {
	ctx := context.Background()
	logger := slog.New(logging.NewContextHandler(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		AddSource:   false,
		Level:       slog.LevelInfo,
		ReplaceAttr: nil,
	})))
	if err := run(ctx, logger); err != nil {
		logger.LogAttrs(ctx, slog.LevelError, "smoketest failed", errors.SlogError(err))
		os.Exit(1)
	}
}
