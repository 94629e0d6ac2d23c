package program

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/FitCoachOrg/FitCoachTrainer-sub001/internal/sqlite"
)

// sqliteClientRepository stores client profiles. Multi-valued fields are
// kept as comma-separated text, matching the catalog's equipment encoding.
type sqliteClientRepository struct {
	baseRepository
}

func newSQLiteClientRepository(db *sqlite.Database) *sqliteClientRepository {
	return &sqliteClientRepository{
		baseRepository: newBaseRepository(db),
	}
}

// Get retrieves a client profile by ID.
func (r *sqliteClientRepository) Get(ctx context.Context, id int64) (ClientProfile, error) {
	var (
		profile    ClientProfile
		goal       string
		experience string
		days       string
		equipment  string
		muscles    string
		injuries   string
	)
	err := r.db.ReadOnly.QueryRowContext(ctx, `
		SELECT id, goal, experience_level, session_minutes, workout_days,
		       available_equipment, target_muscles, injuries
		FROM clients
		WHERE id = ?`, id).Scan(
		&profile.ID,
		&goal,
		&experience,
		&profile.SessionMinutes,
		&days,
		&equipment,
		&muscles,
		&injuries,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return ClientProfile{}, fmt.Errorf("client %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return ClientProfile{}, fmt.Errorf("query client: %w", err)
	}
	profile.Goal = Goal(goal)
	profile.Experience = ExperienceLevel(experience)
	profile.WorkoutDays = splitCSV(days)
	profile.Equipment = splitCSV(equipment)
	profile.TargetMuscles = splitCSV(muscles)
	profile.Injuries = splitCSV(injuries)
	return profile, nil
}

// Upsert writes a client profile, replacing every field.
func (r *sqliteClientRepository) Upsert(ctx context.Context, profile ClientProfile) error {
	_, err := r.db.ReadWrite.ExecContext(ctx, `
		INSERT INTO clients (
			id, goal, experience_level, session_minutes, workout_days,
			available_equipment, target_muscles, injuries
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET
			goal = excluded.goal,
			experience_level = excluded.experience_level,
			session_minutes = excluded.session_minutes,
			workout_days = excluded.workout_days,
			available_equipment = excluded.available_equipment,
			target_muscles = excluded.target_muscles,
			injuries = excluded.injuries`,
		profile.ID,
		string(profile.Goal),
		string(profile.Experience),
		profile.SessionMinutes,
		strings.Join(profile.WorkoutDays, ","),
		strings.Join(profile.Equipment, ","),
		strings.Join(profile.TargetMuscles, ","),
		strings.Join(profile.Injuries, ","),
	)
	if err != nil {
		return fmt.Errorf("upsert client: %w", err)
	}
	return nil
}
