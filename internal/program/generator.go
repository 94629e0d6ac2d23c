package program

import (
	"fmt"
	"log/slog"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/FitCoachOrg/FitCoachTrainer-sub001/internal/errors"
)

var weekdayNames = map[string]time.Weekday{
	"sunday":    time.Sunday,
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
}

// Generator assembles workout programs. Safe for concurrent use except for
// the injected random source, so construct one per call or guard it.
type Generator struct {
	logger  *slog.Logger
	presets *Presets
	rng     *rand.Rand
	now     func() time.Time
}

// GeneratorOption tweaks a Generator, used by tests to pin randomness and
// time.
type GeneratorOption func(*Generator)

// WithRand replaces the jitter source.
func WithRand(rng *rand.Rand) GeneratorOption {
	return func(g *Generator) { g.rng = rng }
}

// WithNow replaces the clock.
func WithNow(now func() time.Time) GeneratorOption {
	return func(g *Generator) { g.now = now }
}

func NewGenerator(logger *slog.Logger, presets *Presets, opts ...GeneratorOption) *Generator {
	g := &Generator{
		logger:  logger,
		presets: presets,
		rng:     rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// ValidateProfile rejects input the engine cannot degrade around.
func (p *Presets) ValidateProfile(profile ClientProfile) error {
	if _, ok := p.Goals[profile.Goal]; !ok {
		return errors.Wrap(ErrConfiguration, "unknown goal",
			slog.String("goal", string(profile.Goal)))
	}
	if profile.SessionMinutes <= 0 {
		return errors.Wrap(ErrConfiguration, "session minutes must be positive",
			slog.Int("session_minutes", profile.SessionMinutes))
	}
	if len(profile.WorkoutDays) == 0 {
		return errors.Wrap(ErrConfiguration, "no workout days configured")
	}
	for _, day := range profile.WorkoutDays {
		if _, ok := weekdayNames[strings.ToLower(strings.TrimSpace(day))]; !ok {
			return errors.Wrap(ErrConfiguration, "unknown weekday",
				slog.String("weekday", day))
		}
	}
	return nil
}

// GenerateProgram builds a weeks×7-day program starting at startDate. The
// catalog and history are read-only snapshots owned by the caller; the
// progression recommendation is derived once and held constant for every
// week of the call.
func (g *Generator) GenerateProgram(profile ClientProfile, catalog []Exercise, history []HistoryRecord, logged []LoggedWorkout, startDate time.Time, weeks int) (*WorkoutProgram, error) {
	if err := g.presets.ValidateProfile(profile); err != nil {
		return nil, err
	}
	if weeks < 1 {
		weeks = 1
	}
	if startDate.IsZero() {
		startDate = g.now()
	}
	startDate = startDate.Truncate(24 * time.Hour)

	preset := g.presets.goal(profile.Goal)
	budget := buildTimeBudget(profile.SessionMinutes, preset)
	rec := analyzeHistory(logged, g.now())

	baseSets, baseReps := preset.Sets, preset.RepRange
	if rec.Confidence != ConfidenceLow {
		baseSets, baseReps = rec.Sets, rec.RepRange
	}

	trainingDays := make(map[time.Weekday]bool, len(profile.WorkoutDays))
	for _, day := range profile.WorkoutDays {
		trainingDays[weekdayNames[strings.ToLower(strings.TrimSpace(day))]] = true
	}

	program := &WorkoutProgram{
		ClientID:       profile.ID,
		StartDate:      startDate,
		Weeks:          weeks,
		Recommendation: rec,
	}

	for week := 1; week <= weeks; week++ {
		phase := g.presets.phaseForWeek(week)
		sets := baseSets + phase.SetsDelta
		if sets < 1 {
			sets = 1
		}
		rest := preset.RestSeconds + phase.RestDeltaSeconds

		// Variety constraints hold within a week only, so each week gets
		// a fresh pool.
		pool, err := newWeeklyPool(g.logger, g.presets, profile, preset, catalog, history)
		if err != nil {
			return nil, err
		}

		workoutIdx := 0
		for d := 0; d < 7; d++ {
			dayNumber := (week-1)*7 + d + 1
			date := startDate.AddDate(0, 0, dayNumber-1)
			if !trainingDays[date.Weekday()] {
				program.Days = append(program.Days, restDay(dayNumber, date))
				continue
			}
			workoutIdx++
			muscle := pool.muscles[(workoutIdx-1)%len(pool.muscles)]
			selected, fellBack := pool.selectDay(g.rng, workoutIdx, muscle, budget.ExercisesPerDay)
			day := g.buildWorkoutDay(dayNumber, date, muscle, selected, fellBack, sets, baseReps, rest, phase.RPE, budget, profile.SessionMinutes)
			program.Days = append(program.Days, day)
		}
	}

	program.Summary = summarize(profile, program, budget)
	return program, nil
}

// GenerateSingleSession produces one day's worth of exercises without
// weekly rotation bookkeeping.
func (g *Generator) GenerateSingleSession(profile ClientProfile, catalog []Exercise, history []HistoryRecord, logged []LoggedWorkout) (*WorkoutDay, error) {
	if err := g.presets.ValidateProfile(profile); err != nil {
		return nil, err
	}
	preset := g.presets.goal(profile.Goal)
	budget := buildTimeBudget(profile.SessionMinutes, preset)
	rec := analyzeHistory(logged, g.now())

	sets, reps := preset.Sets, preset.RepRange
	if rec.Confidence != ConfidenceLow {
		sets, reps = rec.Sets, rec.RepRange
	}

	pool, err := newWeeklyPool(g.logger, g.presets, profile, preset, catalog, history)
	if err != nil {
		return nil, err
	}
	muscle := pool.muscles[0]
	selected, fellBack := pool.selectDay(g.rng, 1, muscle, budget.ExercisesPerDay)
	day := g.buildWorkoutDay(1, g.now().Truncate(24*time.Hour), muscle, selected, fellBack, sets, reps, preset.RestSeconds, preset.RPE, budget, profile.SessionMinutes)
	return &day, nil
}

func (g *Generator) buildWorkoutDay(dayNumber int, date time.Time, muscle string, selected []ScoredExercise, fellBack bool, sets int, reps string, restSeconds int, rpe string, budget TimeBudget, targetMinutes int) WorkoutDay {
	day := WorkoutDay{
		DayNumber:    dayNumber,
		Date:         date,
		Focus:        focusLabel(muscle),
		IsWorkoutDay: true,
	}
	exerciseMinutes := 0
	for _, e := range selected {
		duration := exerciseDuration(e.Category, e.Equipment, sets, restSeconds)
		exerciseMinutes += duration
		day.Exercises = append(day.Exercises, PlannedExercise{
			Name:            e.Name,
			Sets:            sets,
			Reps:            reps,
			RestSeconds:     restSeconds,
			RPE:             rpe,
			Equipment:       e.Equipment,
			Category:        e.Category,
			MovementPattern: e.MovementPattern,
			Type:            e.Type,
			DurationMinutes: duration,
			VideoURL:        e.VideoURL,
			Fallback:        fellBack,
		})
	}
	day.TimeBreakdown = TimeBreakdown{
		WarmupMinutes:   budget.WarmupMinutes,
		ExerciseMinutes: exerciseMinutes,
		CooldownMinutes: budget.CooldownMinutes,
		TotalMinutes:    budget.WarmupMinutes + exerciseMinutes + budget.CooldownMinutes,
		TargetMinutes:   targetMinutes,
	}
	return day
}

func restDay(dayNumber int, date time.Time) WorkoutDay {
	return WorkoutDay{
		DayNumber:    dayNumber,
		Date:         date,
		Focus:        "Rest",
		Exercises:    []PlannedExercise{},
		IsWorkoutDay: false,
	}
}

// focusLabel turns a muscle-group token into a display label.
func focusLabel(muscle string) string {
	label := strings.ReplaceAll(muscle, "_", " ")
	if label == "" {
		return "Full body"
	}
	return strings.ToUpper(label[:1]) + label[1:]
}

func summarize(profile ClientProfile, program *WorkoutProgram, budget TimeBudget) string {
	workoutDays := 0
	for _, day := range program.Days {
		if day.IsWorkoutDay {
			workoutDays++
		}
	}
	return fmt.Sprintf("%d-week %s program: %d training days, up to %d exercises per session, %d minute sessions.",
		program.Weeks, strings.ReplaceAll(string(profile.Goal), "_", " "), workoutDays, budget.ExercisesPerDay, profile.SessionMinutes)
}
