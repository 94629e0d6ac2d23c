package program

import (
	"context"
	"errors"
	"fmt"

	"github.com/FitCoachOrg/FitCoachTrainer-sub001/internal/sqlite"
)

// sqliteExerciseRepository reads the exercise catalog.
type sqliteExerciseRepository struct {
	baseRepository
}

func newSQLiteExerciseRepository(db *sqlite.Database) *sqliteExerciseRepository {
	return &sqliteExerciseRepository{
		baseRepository: newBaseRepository(db),
	}
}

// List returns the full catalog in a deterministic order.
func (r *sqliteExerciseRepository) List(ctx context.Context) (_ []Exercise, err error) {
	rows, err := r.db.ReadOnly.QueryContext(ctx, `
		SELECT name, primary_muscle, secondary_muscle, category, equipment, experience_level, video_url
		FROM exercises
		ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("query exercises: %w", err)
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil {
			err = errors.Join(err, fmt.Errorf("close rows: %w", closeErr))
		}
	}()

	var exercises []Exercise
	for rows.Next() {
		var (
			exercise   Exercise
			experience string
		)
		if err = rows.Scan(
			&exercise.Name,
			&exercise.PrimaryMuscle,
			&exercise.SecondaryMuscle,
			&exercise.Category,
			&exercise.Equipment,
			&experience,
			&exercise.VideoURL,
		); err != nil {
			return nil, fmt.Errorf("scan exercise: %w", err)
		}
		exercise.Experience = ExperienceLevel(experience)
		exercises = append(exercises, exercise)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}
	return exercises, nil
}
