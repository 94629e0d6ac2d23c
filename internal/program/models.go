// Package program generates multi-week, day-by-day training programs from a
// client profile and an exercise catalog.
package program

import (
	"strings"
	"time"
)

// Goal represents the training goal of a client.
type Goal string

const (
	GoalFatLoss       Goal = "fat_loss"
	GoalHypertrophy   Goal = "hypertrophy"
	GoalStrength      Goal = "strength"
	GoalEndurance     Goal = "endurance"
	GoalPower         Goal = "power"
	GoalCoreStability Goal = "core_stability"
)

// ExperienceLevel orders clients and exercises from novice to advanced.
type ExperienceLevel string

const (
	ExperienceBeginner     ExperienceLevel = "Beginner"
	ExperienceIntermediate ExperienceLevel = "Intermediate"
	ExperienceAdvanced     ExperienceLevel = "Advanced"
)

// rank maps experience levels onto a comparable scale. Unknown levels rank
// as beginner so sparse catalog data never blocks selection.
func (l ExperienceLevel) rank() int {
	switch l {
	case ExperienceBeginner:
		return 1
	case ExperienceIntermediate:
		return 2
	case ExperienceAdvanced:
		return 3
	default:
		return 1
	}
}

// Exercise is an immutable catalog entry.
type Exercise struct {
	Name            string          `json:"name"`
	PrimaryMuscle   string          `json:"primary_muscle"`
	SecondaryMuscle string          `json:"secondary_muscle,omitempty"`
	Category        string          `json:"category"`
	Equipment       string          `json:"equipment"`
	Experience      ExperienceLevel `json:"experience_level"`
	VideoURL        string          `json:"video_url,omitempty"`
}

// equipmentTokens splits the comma-tokenized equipment string.
func (e Exercise) equipmentTokens() []string {
	return splitCSV(e.Equipment)
}

// ClientProfile is the validated per-request input. The engine never
// mutates it.
type ClientProfile struct {
	ID             int64           `json:"id"`
	Goal           Goal            `json:"goal"`
	Experience     ExperienceLevel `json:"experience_level"`
	SessionMinutes int             `json:"session_minutes"`
	WorkoutDays    []string        `json:"workout_days"`
	Equipment      []string        `json:"available_equipment"`
	TargetMuscles  []string        `json:"target_muscles,omitempty"`
	Injuries       []string        `json:"injuries,omitempty"`
}

// HistoryRecord is an aggregated view of a client's recent use of one
// exercise, deduplicated by name with summed counts.
type HistoryRecord struct {
	ExerciseName    string    `json:"exercise_name"`
	Equipment       string    `json:"equipment,omitempty"`
	Category        string    `json:"category,omitempty"`
	BodyPart        string    `json:"body_part,omitempty"`
	LastUsed        time.Time `json:"last_used"`
	UseCount        int       `json:"use_count"`
	MovementPattern string    `json:"movement_pattern"`
}

// LoggedExercise is one exercise as recorded in a past session. Weight is a
// free-text descriptor, not a number.
type LoggedExercise struct {
	Name   string `json:"name"`
	Sets   int    `json:"sets"`
	Reps   string `json:"reps"`
	Weight string `json:"weight"`
}

// LoggedWorkout is one recorded training session.
type LoggedWorkout struct {
	Date      time.Time        `json:"date"`
	Exercises []LoggedExercise `json:"exercises"`
}

// ExerciseType buckets exercises by their role in a session.
type ExerciseType string

const (
	TypePrimary   ExerciseType = "primary"
	TypeSecondary ExerciseType = "secondary"
	TypeAccessory ExerciseType = "accessory"
)

// ScoredExercise pairs a catalog entry with its suitability score and the
// classifications derived from its name. Built per generation call, never
// persisted.
type ScoredExercise struct {
	Exercise
	Score           int
	MovementPattern string
	Type            ExerciseType
}

// TimeBudget allocates a session-length target across warm-up, cooldown,
// and exercise slots. Derived once per run and reused for every day.
type TimeBudget struct {
	WarmupMinutes    int `json:"warmup_minutes"`
	CooldownMinutes  int `json:"cooldown_minutes"`
	AvailableMinutes int `json:"available_minutes"`
	ExercisesPerDay  int `json:"exercises_per_day"`
}

// Confidence grades a progression recommendation.
type Confidence string

const (
	ConfidenceHigh   Confidence = "high"
	ConfidenceMedium Confidence = "medium"
	ConfidenceLow    Confidence = "low"
)

// Trend summarises performance across the lookback window.
type Trend string

const (
	TrendImproving Trend = "improving"
	TrendStable    Trend = "stable"
	TrendDeclining Trend = "declining"
)

// Recommendation carries the load parameters derived from history. Applied
// uniformly to every week of a single generation call.
type Recommendation struct {
	Sets       int        `json:"sets"`
	RepRange   string     `json:"rep_range"`
	Weight     string     `json:"weight"`
	Reason     string     `json:"reason"`
	Confidence Confidence `json:"confidence"`
	Trend      Trend      `json:"trend"`
}

// PlannedExercise is a single prescription inside a workout day.
type PlannedExercise struct {
	Name            string       `json:"name"`
	Sets            int          `json:"sets"`
	Reps            string       `json:"reps"`
	RestSeconds     int          `json:"rest_seconds"`
	RPE             string       `json:"rpe"`
	Equipment       string       `json:"equipment"`
	Category        string       `json:"category"`
	MovementPattern string       `json:"movement_pattern"`
	Type            ExerciseType `json:"type"`
	DurationMinutes int          `json:"duration_minutes"`
	VideoURL        string       `json:"video_url,omitempty"`
	// Fallback marks exercises placed by the generic last-resort strategy
	// rather than a muscle-group match.
	Fallback bool `json:"fallback,omitempty"`
}

// TimeBreakdown reports where a workout day's minutes go. TotalMinutes may
// drift from TargetMinutes; both are exposed so callers can detect it.
type TimeBreakdown struct {
	WarmupMinutes   int `json:"warmup_minutes"`
	ExerciseMinutes int `json:"exercise_minutes"`
	CooldownMinutes int `json:"cooldown_minutes"`
	TotalMinutes    int `json:"total_minutes"`
	TargetMinutes   int `json:"target_minutes"`
}

// WorkoutDay is one calendar day of a program. Rest days carry no
// exercises and a zero duration.
type WorkoutDay struct {
	DayNumber     int               `json:"day_number"`
	Date          time.Time         `json:"date"`
	Focus         string            `json:"focus"`
	Exercises     []PlannedExercise `json:"exercises"`
	IsWorkoutDay  bool              `json:"is_workout_day"`
	TimeBreakdown TimeBreakdown     `json:"time_breakdown"`
}

// WorkoutProgram is the ordered result of one generation call covering
// weeks × 7 calendar days. The caller owns persistence.
type WorkoutProgram struct {
	ClientID       int64          `json:"client_id"`
	StartDate      time.Time      `json:"start_date"`
	Weeks          int            `json:"weeks"`
	Days           []WorkoutDay   `json:"days"`
	Recommendation Recommendation `json:"recommendation"`
	Summary        string         `json:"summary"`
}

// splitCSV splits a comma-separated field into trimmed, lowercased,
// non-empty tokens.
func splitCSV(s string) []string {
	var tokens []string
	for _, part := range strings.Split(s, ",") {
		token := strings.ToLower(strings.TrimSpace(part))
		if token != "" {
			tokens = append(tokens, token)
		}
	}
	return tokens
}
