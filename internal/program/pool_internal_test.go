package program

import (
	"math/rand/v2"
	"strings"
	"testing"

	"github.com/FitCoachOrg/FitCoachTrainer-sub001/internal/testhelpers"
)

func TestAssignMuscles(t *testing.T) {
	testCases := []struct {
		name     string
		targets  []string
		defaults []string
		days     int
		want     []string
	}{
		{
			name:     "defaults round-robin over more days",
			defaults: []string{"legs", "back", "chest"},
			days:     5,
			want:     []string{"legs", "back", "chest", "legs", "back"},
		},
		{
			name:     "client targets win over defaults",
			targets:  []string{"Glutes", "Core"},
			defaults: []string{"legs", "back", "chest"},
			days:     3,
			want:     []string{"glutes", "core", "glutes"},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := assignMuscles(tc.targets, tc.defaults, tc.days)
			if len(got) != len(tc.want) {
				t.Fatalf("want %d muscles, got %d", len(tc.want), len(got))
			}
			for i := range tc.want {
				if got[i] != tc.want[i] {
					t.Errorf("day %d: want %q, got %q", i+1, tc.want[i], got[i])
				}
			}
		})
	}
}

func TestTypeTargets(t *testing.T) {
	testCases := []struct {
		name      string
		day       int
		n         int
		primary   int
		secondary int
	}{
		{"day one front-loads primaries", 1, 5, 3, 2},
		{"midweek leans secondary", 3, 5, 2, 2},
		{"day five again primary heavy", 5, 5, 3, 2},
		{"day six mostly accessory", 6, 5, 1, 2},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			primary, secondary, accessory := typeTargets(tc.day, tc.n)
			if primary+secondary+accessory != tc.n {
				t.Fatalf("targets sum to %d, want %d", primary+secondary+accessory, tc.n)
			}
			if primary != tc.primary || secondary != tc.secondary {
				t.Errorf("want %d/%d primary/secondary, got %d/%d",
					tc.primary, tc.secondary, primary, secondary)
			}
			if accessory < 0 {
				t.Errorf("negative accessory target %d", accessory)
			}
		})
	}
}

func TestBuildBuckets_fallbackStrategies(t *testing.T) {
	logger := testhelpers.NewLogger(testhelpers.NewWriter(t))
	presets := testPresets(t)

	catalog := []Exercise{
		{Name: "Back Squat", PrimaryMuscle: "quadriceps", SecondaryMuscle: "glutes", Category: "lower_body", Equipment: "barbell", Experience: ExperienceBeginner},
		{Name: "Bench Press", PrimaryMuscle: "chest", Category: "upper_body", Equipment: "barbell,bench", Experience: ExperienceBeginner},
		{Name: "Plank", PrimaryMuscle: "core", Category: "core", Equipment: "bodyweight", Experience: ExperienceBeginner},
	}
	profile := ClientProfile{
		Goal:           GoalStrength,
		Experience:     ExperienceBeginner,
		SessionMinutes: 45,
		WorkoutDays:    []string{"monday"},
		Equipment:      []string{"barbell", "bench"},
	}

	testCases := []struct {
		name     string
		muscle   string
		wantName string
	}{
		// Direct primary-muscle match.
		{"exact muscle match", "chest", "Bench Press"},
		// No exercise lists "legs" as a muscle; the muscle→category table
		// resolves it to lower_body.
		{"category fallback", "legs", "Back Squat"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			profile := profile
			profile.TargetMuscles = []string{tc.muscle}
			pool, err := newWeeklyPool(logger, presets, profile, presets.goal(profile.Goal), catalog, nil)
			if err != nil {
				t.Fatalf("build pool: %v", err)
			}
			bucket := pool.buckets[tc.muscle]
			all := append(append(bucket.primary, bucket.secondary...), bucket.accessory...)
			if len(all) == 0 {
				t.Fatal("empty bucket")
			}
			found := false
			for _, e := range all {
				if e.Name == tc.wantName {
					found = true
				}
			}
			if !found {
				t.Errorf("want %s in bucket for %s", tc.wantName, tc.muscle)
			}
			if bucket.fallback {
				t.Error("matched strategies should not flag fallback")
			}
		})
	}

	t.Run("last resort flags fallback", func(t *testing.T) {
		profile := profile
		profile.TargetMuscles = []string{"forearms"}
		pool, err := newWeeklyPool(logger, presets, profile, presets.goal(profile.Goal), catalog, nil)
		if err != nil {
			t.Fatalf("build pool: %v", err)
		}
		bucket := pool.buckets["forearms"]
		if !bucket.fallback {
			t.Error("unmatchable muscle group should flag fallback")
		}
		total := len(bucket.primary) + len(bucket.secondary) + len(bucket.accessory)
		if total != len(catalog) {
			t.Errorf("last resort should carry the whole catalog, got %d of %d", total, len(catalog))
		}
	})

	t.Run("empty catalog errors", func(t *testing.T) {
		_, err := newWeeklyPool(logger, presets, profile, presets.goal(profile.Goal), nil, nil)
		if err == nil {
			t.Fatal("want error for empty catalog")
		}
		if !strings.Contains(err.Error(), "no candidate exercises") {
			t.Errorf("unexpected error: %v", err)
		}
	})
}

func TestSelectDay_recordsUsageAndAvoidsRepeats(t *testing.T) {
	logger := testhelpers.NewLogger(testhelpers.NewWriter(t))
	presets := testPresets(t)
	rng := rand.New(rand.NewPCG(7, 7))

	catalog := testCatalog()
	profile := strengthBeginnerProfile()
	profile.TargetMuscles = []string{"legs"}
	pool, err := newWeeklyPool(logger, presets, profile, presets.goal(profile.Goal), catalog, nil)
	if err != nil {
		t.Fatalf("build pool: %v", err)
	}

	first, _ := pool.selectDay(rng, 1, "legs", 3)
	if len(first) == 0 {
		t.Fatal("first day selected nothing")
	}
	second, _ := pool.selectDay(rng, 2, "legs", 3)

	firstNames := make(map[string]struct{})
	for _, e := range first {
		firstNames[strings.ToLower(e.Name)] = struct{}{}
	}
	for _, e := range second {
		if _, repeated := firstNames[strings.ToLower(e.Name)]; repeated {
			t.Errorf("%s selected on both days", e.Name)
		}
	}

	usage := pool.used[1]
	if len(usage.Exercises) != len(first) {
		t.Errorf("usage records %d exercises, day selected %d", len(usage.Exercises), len(first))
	}
	if len(usage.MovementPatterns) != len(first) {
		t.Errorf("usage records %d patterns, day selected %d", len(usage.MovementPatterns), len(first))
	}
}
