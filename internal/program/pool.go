package program

import (
	"log/slog"
	"sort"
	"strings"

	"github.com/FitCoachOrg/FitCoachTrainer-sub001/internal/errors"
)

// dayUsage records what one filled day consumed, read by later days in the
// same run to steer variety.
type dayUsage struct {
	Exercises        []string
	MuscleGroups     []string
	MovementPatterns []string
	EquipmentUsed    []string
}

// poolBuckets holds one muscle group's candidates partitioned by session
// role, each sorted descending by score.
type poolBuckets struct {
	primary   []ScoredExercise
	secondary []ScoredExercise
	accessory []ScoredExercise
	fallback  bool
}

// weeklyPool is the run-scoped candidate state for one week of assembly.
// Mutated by the rotation engine as days are filled; never shared across
// generation calls.
type weeklyPool struct {
	presets *Presets
	sc      scoreContext
	muscles []string
	buckets map[string]poolBuckets
	catalog []ScoredExercise
	used    map[int]dayUsage
}

// assignMuscles distributes the client's target muscles (or the goal
// defaults) round-robin across the configured workout days.
func assignMuscles(targets, defaults []string, daysPerWeek int) []string {
	source := targets
	if len(source) == 0 {
		source = defaults
	}
	muscles := make([]string, daysPerWeek)
	for i := range muscles {
		muscles[i] = strings.ToLower(strings.TrimSpace(source[i%len(source)]))
	}
	return muscles
}

// newWeeklyPool scores the admissible catalog and builds per-muscle-group
// candidate buckets using a four-strategy degrade-gracefully search. It
// fails only when the entire scored catalog is empty.
func newWeeklyPool(logger *slog.Logger, presets *Presets, profile ClientProfile, preset GoalPreset, catalog []Exercise, history []HistoryRecord) (*weeklyPool, error) {
	recentUse := make(map[string]int, len(history))
	patternCounts := make(map[string]int)
	for _, h := range history {
		recentUse[strings.ToLower(h.ExerciseName)] += h.UseCount
		patternCounts[h.MovementPattern]++
	}

	p := &weeklyPool{
		presets: presets,
		muscles: assignMuscles(profile.TargetMuscles, preset.DefaultMuscles, len(profile.WorkoutDays)),
		buckets: make(map[string]poolBuckets),
		used:    make(map[int]dayUsage),
		sc: scoreContext{
			presets:       presets,
			preset:        preset,
			experience:    profile.Experience,
			equipment:     presets.expandEquipment(profile.Equipment),
			recentUse:     recentUse,
			patternCounts: patternCounts,
		},
	}

	// Score the whole admissible catalog once against each exercise's own
	// primary muscle. This ordering serves the last-resort strategy, keeps
	// the equipment penalty a soft constraint rather than a filter, and
	// tie-breaks by catalog order for reproducible runs.
	for _, ex := range catalog {
		if presets.injuryExcluded(ex, profile.Injuries) {
			continue
		}
		scored := ScoredExercise{
			Exercise:        ex,
			Score:           p.sc.scoreExercise(ex, ex.PrimaryMuscle),
			MovementPattern: presets.classifyMovement(ex.Name),
			Type:            presets.classifyType(ex.Name),
		}
		if scored.Score <= 0 {
			continue
		}
		p.catalog = append(p.catalog, scored)
	}
	sort.SliceStable(p.catalog, func(i, j int) bool { return p.catalog[i].Score > p.catalog[j].Score })

	for _, muscle := range p.muscles {
		if _, ok := p.buckets[muscle]; ok {
			continue
		}
		bucket, err := p.buildBuckets(logger, muscle)
		if err != nil {
			return nil, err
		}
		p.buckets[muscle] = bucket
	}
	return p, nil
}

// buildBuckets runs the fallback strategy chain for one muscle group and
// partitions the winning candidate set by session role.
func (p *weeklyPool) buildBuckets(logger *slog.Logger, muscle string) (poolBuckets, error) {
	if len(p.catalog) == 0 {
		return poolBuckets{}, errors.Wrap(ErrNoCandidates, "empty scored catalog",
			slog.String("muscle_group", muscle))
	}

	category := p.presets.categoryForMuscle(muscle)
	strategies := []struct {
		name  string
		match func(ScoredExercise) bool
	}{
		{"muscle", func(e ScoredExercise) bool {
			return strings.Contains(strings.ToLower(e.PrimaryMuscle), muscle) ||
				strings.Contains(strings.ToLower(e.SecondaryMuscle), muscle)
		}},
		{"category", func(e ScoredExercise) bool {
			return strings.EqualFold(e.Category, category)
		}},
		{"name_keyword", func(e ScoredExercise) bool {
			return strings.Contains(strings.ToLower(e.Name), muscle)
		}},
	}

	var candidates []ScoredExercise
	fallback := false
	chosen := "last_resort"
	for _, strategy := range strategies {
		for _, e := range p.catalog {
			if strategy.match(e) {
				candidates = append(candidates, p.rescored(e, muscle))
			}
		}
		if len(candidates) > 0 {
			chosen = strategy.name
			break
		}
	}
	if len(candidates) == 0 {
		candidates = append(candidates, p.catalog...)
		fallback = true
	}
	if chosen != "muscle" {
		logger.Debug("muscle group degraded to fallback strategy",
			slog.String("muscle_group", muscle),
			slog.String("strategy", chosen))
	}

	// Prefer exercises outside the lookback window, but an empty day is
	// worse than a repeated exercise.
	fresh := make([]ScoredExercise, 0, len(candidates))
	for _, e := range candidates {
		if p.sc.recentUse[strings.ToLower(e.Name)] == 0 {
			fresh = append(fresh, e)
		}
	}
	if len(fresh) > 0 {
		candidates = fresh
	}

	bucket := poolBuckets{fallback: fallback}
	for _, e := range candidates {
		switch e.Type {
		case TypePrimary:
			bucket.primary = append(bucket.primary, e)
		case TypeSecondary:
			bucket.secondary = append(bucket.secondary, e)
		default:
			bucket.accessory = append(bucket.accessory, e)
		}
	}
	sortByScore(bucket.primary)
	sortByScore(bucket.secondary)
	sortByScore(bucket.accessory)
	return bucket, nil
}

// rescored recomputes the score with the muscle-match signal included.
func (p *weeklyPool) rescored(e ScoredExercise, muscle string) ScoredExercise {
	e.Score = p.sc.scoreExercise(e.Exercise, muscle)
	return e
}

// usedNames returns the union of exercise names placed on earlier days.
func (p *weeklyPool) usedNames() map[string]struct{} {
	names := make(map[string]struct{})
	for _, usage := range p.used {
		for _, name := range usage.Exercises {
			names[strings.ToLower(name)] = struct{}{}
		}
	}
	return names
}

// patternUseCount counts how many times a movement pattern has been placed
// on earlier days this run.
func (p *weeklyPool) patternUseCount(pattern string) int {
	count := 0
	for _, usage := range p.used {
		for _, placed := range usage.MovementPatterns {
			if placed == pattern {
				count++
			}
		}
	}
	return count
}

func sortByScore(s []ScoredExercise) {
	sort.SliceStable(s, func(i, j int) bool { return s[i].Score > s[j].Score })
}
