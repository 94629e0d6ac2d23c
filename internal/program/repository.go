package program

import (
	"log/slog"
	"time"

	"github.com/FitCoachOrg/FitCoachTrainer-sub001/internal/sqlite"
)

const timestampFormat = "2006-01-02T15:04:05.000Z"

// repository aggregates the per-entity SQLite repositories.
type repository struct {
	exercises *sqliteExerciseRepository
	clients   *sqliteClientRepository
	logs      *sqliteLogRepository
}

// baseRepository carries the shared database handle.
type baseRepository struct {
	db *sqlite.Database
}

func newBaseRepository(db *sqlite.Database) baseRepository {
	return baseRepository{db: db}
}

func newRepository(db *sqlite.Database, logger *slog.Logger) *repository {
	return &repository{
		exercises: newSQLiteExerciseRepository(db),
		clients:   newSQLiteClientRepository(db),
		logs:      newSQLiteLogRepository(db, logger),
	}
}

func formatTimestamp(t time.Time) string {
	return t.UTC().Format(timestampFormat)
}

func parseTimestamp(s string) (time.Time, error) {
	return time.Parse(timestampFormat, s)
}
