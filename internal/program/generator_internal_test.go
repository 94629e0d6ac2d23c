package program

import (
	"errors"
	"math/rand/v2"
	"strings"
	"testing"
	"time"

	"github.com/FitCoachOrg/FitCoachTrainer-sub001/internal/testhelpers"
)

func testGenerator(t *testing.T) (*Generator, *Presets) {
	t.Helper()
	logger := testhelpers.NewLogger(testhelpers.NewWriter(t))
	presets, err := LoadPresets(logger)
	if err != nil {
		t.Fatalf("load presets: %v", err)
	}
	gen := NewGenerator(logger, presets,
		WithRand(rand.New(rand.NewPCG(1, 2))),
		WithNow(func() time.Time { return time.Date(2025, 9, 1, 10, 0, 0, 0, time.UTC) }),
	)
	return gen, presets
}

// testCatalog spans every category with a mix of equipment and experience
// levels so each goal's default muscles find candidates.
func testCatalog() []Exercise {
	return []Exercise{
		{Name: "Back Squat", PrimaryMuscle: "legs", SecondaryMuscle: "glutes", Category: "lower_body", Equipment: "barbell", Experience: ExperienceBeginner, VideoURL: "https://videos.example.com/back-squat"},
		{Name: "Front Squat", PrimaryMuscle: "legs", SecondaryMuscle: "core", Category: "lower_body", Equipment: "barbell", Experience: ExperienceIntermediate},
		{Name: "Walking Lunge", PrimaryMuscle: "legs", SecondaryMuscle: "glutes", Category: "lower_body", Equipment: "bodyweight", Experience: ExperienceBeginner},
		{Name: "Romanian Deadlift", PrimaryMuscle: "legs", SecondaryMuscle: "back", Category: "lower_body", Equipment: "barbell", Experience: ExperienceBeginner, VideoURL: "https://videos.example.com/rdl"},
		{Name: "Leg Press", PrimaryMuscle: "legs", Category: "lower_body", Equipment: "machine", Experience: ExperienceBeginner},
		{Name: "Calf Raise", PrimaryMuscle: "legs", Category: "lower_body", Equipment: "bodyweight", Experience: ExperienceBeginner},
		{Name: "Deadlift", PrimaryMuscle: "back", SecondaryMuscle: "legs", Category: "lower_body", Equipment: "barbell", Experience: ExperienceBeginner, VideoURL: "https://videos.example.com/deadlift"},
		{Name: "Barbell Row", PrimaryMuscle: "back", SecondaryMuscle: "arms", Category: "upper_body", Equipment: "barbell", Experience: ExperienceBeginner},
		{Name: "Pull-Up", PrimaryMuscle: "back", SecondaryMuscle: "arms", Category: "upper_body", Equipment: "pull-up bar", Experience: ExperienceAdvanced},
		{Name: "Lat Pulldown", PrimaryMuscle: "back", Category: "upper_body", Equipment: "cable", Experience: ExperienceBeginner},
		{Name: "Bench Press", PrimaryMuscle: "chest", SecondaryMuscle: "arms", Category: "upper_body", Equipment: "barbell,bench", Experience: ExperienceBeginner, VideoURL: "https://videos.example.com/bench-press"},
		{Name: "Push-Up", PrimaryMuscle: "chest", SecondaryMuscle: "arms", Category: "upper_body", Equipment: "bodyweight", Experience: ExperienceBeginner},
		{Name: "Overhead Press", PrimaryMuscle: "shoulders", SecondaryMuscle: "arms", Category: "upper_body", Equipment: "barbell", Experience: ExperienceIntermediate},
		{Name: "Lateral Raise", PrimaryMuscle: "shoulders", Category: "upper_body", Equipment: "dumbbell", Experience: ExperienceBeginner},
		{Name: "Bicep Curl", PrimaryMuscle: "arms", Category: "upper_body", Equipment: "dumbbell", Experience: ExperienceBeginner},
		{Name: "Plank", PrimaryMuscle: "core", Category: "core", Equipment: "bodyweight", Experience: ExperienceBeginner, VideoURL: "https://videos.example.com/plank"},
		{Name: "Dead Bug", PrimaryMuscle: "core", Category: "core", Equipment: "bodyweight", Experience: ExperienceBeginner},
		{Name: "Russian Twist", PrimaryMuscle: "core", Category: "core", Equipment: "bodyweight", Experience: ExperienceBeginner},
		{Name: "Burpee", PrimaryMuscle: "full body", SecondaryMuscle: "core", Category: "cardio", Equipment: "bodyweight", Experience: ExperienceIntermediate},
		{Name: "Mountain Climber", PrimaryMuscle: "core", SecondaryMuscle: "shoulders", Category: "cardio", Equipment: "bodyweight", Experience: ExperienceBeginner},
		{Name: "Kettlebell Swing", PrimaryMuscle: "glutes", SecondaryMuscle: "back", Category: "full_body", Equipment: "kettlebell", Experience: ExperienceIntermediate},
		{Name: "Goblet Squat", PrimaryMuscle: "legs", SecondaryMuscle: "glutes", Category: "lower_body", Equipment: "dumbbell,kettlebell", Experience: ExperienceBeginner},
	}
}

func strengthBeginnerProfile() ClientProfile {
	return ClientProfile{
		ID:             1,
		Goal:           GoalStrength,
		Experience:     ExperienceBeginner,
		SessionMinutes: 45,
		WorkoutDays:    []string{"monday", "wednesday", "friday"},
		Equipment:      []string{"barbell", "bench"},
	}
}

func TestGenerateProgram_strengthBeginnerScenario(t *testing.T) {
	gen, _ := testGenerator(t)
	monday := time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC)

	prog, err := gen.GenerateProgram(strengthBeginnerProfile(), testCatalog(), nil, nil, monday, 1)
	if err != nil {
		t.Fatalf("generate program: %v", err)
	}

	if len(prog.Days) != 7 {
		t.Fatalf("want 7 days, got %d", len(prog.Days))
	}
	var workoutWeekdays []time.Weekday
	for _, day := range prog.Days {
		if !day.IsWorkoutDay {
			continue
		}
		workoutWeekdays = append(workoutWeekdays, day.Date.Weekday())
		if len(day.Exercises) < 1 || len(day.Exercises) > 3 {
			t.Errorf("day %d: want 1-3 exercises, got %d", day.DayNumber, len(day.Exercises))
		}
		for _, ex := range day.Exercises {
			if ex.Sets != 4 {
				t.Errorf("day %d %s: want 4 sets, got %d", day.DayNumber, ex.Name, ex.Sets)
			}
			if ex.Reps != "3-6" {
				t.Errorf("day %d %s: want reps 3-6, got %s", day.DayNumber, ex.Name, ex.Reps)
			}
		}
	}
	want := []time.Weekday{time.Monday, time.Wednesday, time.Friday}
	if len(workoutWeekdays) != len(want) {
		t.Fatalf("want %d workout days, got %d", len(want), len(workoutWeekdays))
	}
	for i, weekday := range want {
		if workoutWeekdays[i] != weekday {
			t.Errorf("workout day %d: want %s, got %s", i+1, weekday, workoutWeekdays[i])
		}
	}
	if prog.Recommendation.Reason != "no previous data" {
		t.Errorf("want baseline reason, got %q", prog.Recommendation.Reason)
	}
	if prog.Recommendation.Confidence != ConfidenceLow {
		t.Errorf("want low confidence, got %s", prog.Recommendation.Confidence)
	}
}

func TestGenerateProgram_budgetRespected(t *testing.T) {
	gen, presets := testGenerator(t)
	start := time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC)

	testCases := []struct {
		name    string
		profile ClientProfile
	}{
		{
			name:    "strength beginner",
			profile: strengthBeginnerProfile(),
		},
		{
			name: "short fat loss sessions",
			profile: ClientProfile{
				Goal:           GoalFatLoss,
				Experience:     ExperienceBeginner,
				SessionMinutes: 20,
				WorkoutDays:    []string{"tuesday", "thursday"},
			},
		},
		{
			name: "long hypertrophy sessions",
			profile: ClientProfile{
				Goal:           GoalHypertrophy,
				Experience:     ExperienceAdvanced,
				SessionMinutes: 90,
				WorkoutDays:    []string{"monday", "tuesday", "thursday", "friday", "saturday"},
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			prog, err := gen.GenerateProgram(tc.profile, testCatalog(), nil, nil, start, 1)
			if err != nil {
				t.Fatalf("generate program: %v", err)
			}
			budget := buildTimeBudget(tc.profile.SessionMinutes, presets.goal(tc.profile.Goal))
			for _, day := range prog.Days {
				if !day.IsWorkoutDay {
					continue
				}
				if len(day.Exercises) < 1 || len(day.Exercises) > budget.ExercisesPerDay {
					t.Errorf("day %d: %d exercises outside 1..%d",
						day.DayNumber, len(day.Exercises), budget.ExercisesPerDay)
				}
			}
		})
	}
}

func TestGenerateProgram_noRepetitionWithinWeek(t *testing.T) {
	gen, _ := testGenerator(t)
	profile := ClientProfile{
		Goal:           GoalHypertrophy,
		Experience:     ExperienceBeginner,
		SessionMinutes: 60,
		WorkoutDays:    []string{"monday", "wednesday", "friday"},
		Equipment:      []string{"full_gym"},
	}

	prog, err := gen.GenerateProgram(profile, testCatalog(), nil, nil,
		time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC), 2)
	if err != nil {
		t.Fatalf("generate program: %v", err)
	}

	for week := 0; week < prog.Weeks; week++ {
		seen := make(map[string]int)
		for _, day := range prog.Days[week*7 : (week+1)*7] {
			for _, ex := range day.Exercises {
				if ex.Fallback {
					continue
				}
				seen[ex.Name]++
			}
		}
		for name, count := range seen {
			if count > 1 {
				t.Errorf("week %d: %s appears %d times", week+1, name, count)
			}
		}
	}
}

func TestGenerateProgram_restDayShape(t *testing.T) {
	gen, _ := testGenerator(t)

	prog, err := gen.GenerateProgram(strengthBeginnerProfile(), testCatalog(), nil, nil,
		time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC), 1)
	if err != nil {
		t.Fatalf("generate program: %v", err)
	}

	restDays := 0
	for _, day := range prog.Days {
		if day.IsWorkoutDay {
			continue
		}
		restDays++
		if len(day.Exercises) != 0 {
			t.Errorf("rest day %d has %d exercises", day.DayNumber, len(day.Exercises))
		}
		if day.TimeBreakdown.TotalMinutes != 0 {
			t.Errorf("rest day %d has %d total minutes", day.DayNumber, day.TimeBreakdown.TotalMinutes)
		}
	}
	if restDays != 4 {
		t.Errorf("want 4 rest days, got %d", restDays)
	}
}

func TestGenerateProgram_injuryExclusion(t *testing.T) {
	gen, presets := testGenerator(t)
	profile := strengthBeginnerProfile()
	profile.Injuries = []string{"knee"}

	prog, err := gen.GenerateProgram(profile, testCatalog(), nil, nil,
		time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC), 1)
	if err != nil {
		t.Fatalf("generate program: %v", err)
	}

	keywords := presets.Injuries["knee"]
	for _, day := range prog.Days {
		for _, ex := range day.Exercises {
			lower := strings.ToLower(ex.Name)
			for _, kw := range keywords {
				if strings.Contains(lower, kw) {
					t.Errorf("day %d: %s conflicts with knee injury keyword %q", day.DayNumber, ex.Name, kw)
				}
			}
		}
	}
}

func TestGenerateProgram_deloadNeverExceedsIntensification(t *testing.T) {
	gen, _ := testGenerator(t)

	prog, err := gen.GenerateProgram(strengthBeginnerProfile(), testCatalog(), nil, nil,
		time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC), 4)
	if err != nil {
		t.Fatalf("generate program: %v", err)
	}

	maxSets := func(week int) int {
		sets := 0
		for _, day := range prog.Days[(week-1)*7 : week*7] {
			for _, ex := range day.Exercises {
				if ex.Sets > sets {
					sets = ex.Sets
				}
			}
		}
		return sets
	}
	if deload, build := maxSets(4), maxSets(3); deload > build {
		t.Errorf("deload week has %d sets, intensification week %d", deload, build)
	}
}

func TestGenerateProgram_configurationErrors(t *testing.T) {
	gen, _ := testGenerator(t)
	start := time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC)

	testCases := []struct {
		name    string
		mutate  func(*ClientProfile)
		catalog []Exercise
		wantErr error
	}{
		{
			name:    "unknown goal",
			mutate:  func(p *ClientProfile) { p.Goal = "crossfit" },
			catalog: testCatalog(),
			wantErr: ErrConfiguration,
		},
		{
			name:    "no workout days",
			mutate:  func(p *ClientProfile) { p.WorkoutDays = nil },
			catalog: testCatalog(),
			wantErr: ErrConfiguration,
		},
		{
			name:    "bad weekday name",
			mutate:  func(p *ClientProfile) { p.WorkoutDays = []string{"moonday"} },
			catalog: testCatalog(),
			wantErr: ErrConfiguration,
		},
		{
			name:    "zero session minutes",
			mutate:  func(p *ClientProfile) { p.SessionMinutes = 0 },
			catalog: testCatalog(),
			wantErr: ErrConfiguration,
		},
		{
			name:    "empty catalog",
			mutate:  func(p *ClientProfile) {},
			catalog: nil,
			wantErr: ErrNoCandidates,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			profile := strengthBeginnerProfile()
			tc.mutate(&profile)
			_, err := gen.GenerateProgram(profile, tc.catalog, nil, nil, start, 1)
			if !errors.Is(err, tc.wantErr) {
				t.Errorf("want %v, got %v", tc.wantErr, err)
			}
		})
	}
}

func TestGenerateSingleSession(t *testing.T) {
	gen, _ := testGenerator(t)

	day, err := gen.GenerateSingleSession(strengthBeginnerProfile(), testCatalog(), nil, nil)
	if err != nil {
		t.Fatalf("generate session: %v", err)
	}
	if !day.IsWorkoutDay {
		t.Error("single session should be a workout day")
	}
	if len(day.Exercises) < 1 || len(day.Exercises) > 3 {
		t.Errorf("want 1-3 exercises, got %d", len(day.Exercises))
	}
	if day.TimeBreakdown.WarmupMinutes != 8 || day.TimeBreakdown.CooldownMinutes != 5 {
		t.Errorf("want 8/5 warmup/cooldown for 45 minutes, got %d/%d",
			day.TimeBreakdown.WarmupMinutes, day.TimeBreakdown.CooldownMinutes)
	}
}
