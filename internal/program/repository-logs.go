package program

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/FitCoachOrg/FitCoachTrainer-sub001/internal/sqlite"
)

// sqliteLogRepository stores executed workouts and serves the aggregated
// history views the engine consumes.
type sqliteLogRepository struct {
	baseRepository
	logger *slog.Logger
}

func newSQLiteLogRepository(db *sqlite.Database, logger *slog.Logger) *sqliteLogRepository {
	return &sqliteLogRepository{
		baseRepository: newBaseRepository(db),
		logger:         logger,
	}
}

// Insert records one executed workout. Exercises are written row-per-entry
// in a single transaction so a torn write never produces a partial session.
func (r *sqliteLogRepository) Insert(ctx context.Context, clientID int64, workout LoggedWorkout) (err error) {
	tx, err := r.db.ReadWrite.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() {
		if err != nil {
			err = errors.Join(err, tx.Rollback())
		}
	}()

	for _, ex := range workout.Exercises {
		var (
			category string
			bodyPart string
			equip    string
		)
		// Enrich from the catalog when the exercise is known; free-form
		// names are still accepted.
		row := tx.QueryRowContext(ctx, `
			SELECT category, primary_muscle, equipment FROM exercises WHERE name = ?`, ex.Name)
		if scanErr := row.Scan(&category, &bodyPart, &equip); scanErr != nil {
			category, bodyPart, equip = "", "", ""
		}
		if _, err = tx.ExecContext(ctx, `
			INSERT INTO workout_logs (
				client_id, logged_at, exercise_name, equipment, category,
				body_part, sets, reps, weight
			) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			clientID,
			formatTimestamp(workout.Date),
			ex.Name,
			equip,
			category,
			bodyPart,
			ex.Sets,
			ex.Reps,
			ex.Weight,
		); err != nil {
			return fmt.Errorf("insert workout log: %w", err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}

// ListSince returns the client's logged workouts on or after the cutoff,
// grouped back into sessions by logged_at.
func (r *sqliteLogRepository) ListSince(ctx context.Context, clientID int64, since time.Time) (_ []LoggedWorkout, err error) {
	rows, err := r.db.ReadOnly.QueryContext(ctx, `
		SELECT logged_at, exercise_name, sets, reps, weight
		FROM workout_logs
		WHERE client_id = ? AND logged_at >= ?
		ORDER BY logged_at`, clientID, formatTimestamp(since))
	if err != nil {
		return nil, fmt.Errorf("query workout logs: %w", err)
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil {
			err = errors.Join(err, fmt.Errorf("close rows: %w", closeErr))
		}
	}()

	sessions := make(map[string]*LoggedWorkout)
	var order []string
	for rows.Next() {
		var (
			loggedAt string
			ex       LoggedExercise
		)
		if err = rows.Scan(&loggedAt, &ex.Name, &ex.Sets, &ex.Reps, &ex.Weight); err != nil {
			return nil, fmt.Errorf("scan workout log: %w", err)
		}
		session, ok := sessions[loggedAt]
		if !ok {
			date, parseErr := parseTimestamp(loggedAt)
			if parseErr != nil {
				r.logger.WarnContext(ctx, "skipping workout log with malformed timestamp",
					slog.String("logged_at", loggedAt))
				continue
			}
			session = &LoggedWorkout{Date: date}
			sessions[loggedAt] = session
			order = append(order, loggedAt)
		}
		session.Exercises = append(session.Exercises, ex)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}

	sort.Strings(order)
	workouts := make([]LoggedWorkout, 0, len(order))
	for _, key := range order {
		workouts = append(workouts, *sessions[key])
	}
	return workouts, nil
}

// AggregateHistory returns the client's per-exercise usage since the
// cutoff, deduplicated by name with summed counts and the most recent use
// date. The classifier derives the movement pattern from the name.
func (r *sqliteLogRepository) AggregateHistory(ctx context.Context, clientID int64, since time.Time, classify func(string) string) (_ []HistoryRecord, err error) {
	rows, err := r.db.ReadOnly.QueryContext(ctx, `
		SELECT exercise_name, MAX(equipment), MAX(category), MAX(body_part),
		       MAX(logged_at), COUNT(*)
		FROM workout_logs
		WHERE client_id = ? AND logged_at >= ?
		GROUP BY exercise_name COLLATE NOCASE
		ORDER BY exercise_name`, clientID, formatTimestamp(since))
	if err != nil {
		return nil, fmt.Errorf("query history: %w", err)
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil {
			err = errors.Join(err, fmt.Errorf("close rows: %w", closeErr))
		}
	}()

	var records []HistoryRecord
	for rows.Next() {
		var (
			record   HistoryRecord
			lastUsed string
		)
		if err = rows.Scan(
			&record.ExerciseName,
			&record.Equipment,
			&record.Category,
			&record.BodyPart,
			&lastUsed,
			&record.UseCount,
		); err != nil {
			return nil, fmt.Errorf("scan history record: %w", err)
		}
		if record.LastUsed, err = parseTimestamp(lastUsed); err != nil {
			return nil, fmt.Errorf("parse last used %q: %w", lastUsed, err)
		}
		record.MovementPattern = classify(record.ExerciseName)
		records = append(records, record)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}
	return records, nil
}
