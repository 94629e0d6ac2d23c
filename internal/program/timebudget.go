package program

import "math"

// minutesPerExercise is the nominal slot cost used when deciding how many
// exercises fit into a session.
const minutesPerExercise = 6

// warmupCooldown returns the warm-up and cooldown minutes for a session
// length. Longer sessions earn longer bookends.
func warmupCooldown(sessionMinutes int) (warmup, cooldown int) {
	switch {
	case sessionMinutes <= 20:
		return 3, 2
	case sessionMinutes <= 30:
		return 5, 3
	case sessionMinutes <= 45:
		return 8, 5
	case sessionMinutes <= 60:
		return 10, 7
	default:
		return 12, 8
	}
}

// buildTimeBudget allocates session minutes across warm-up, cooldown, and
// exercise slots. The count is the lesser of what the goal template asks
// for and what fits, never below one so a short session still trains
// something.
func buildTimeBudget(sessionMinutes int, preset GoalPreset) TimeBudget {
	warmup, cooldown := warmupCooldown(sessionMinutes)
	available := sessionMinutes - warmup - cooldown
	if available < 0 {
		available = 0
	}
	count := available / minutesPerExercise
	if count > preset.ExercisesPerDay {
		count = preset.ExercisesPerDay
	}
	if count < 1 {
		count = 1
	}
	return TimeBudget{
		WarmupMinutes:    warmup,
		CooldownMinutes:  cooldown,
		AvailableMinutes: available,
		ExercisesPerDay:  count,
	}
}

// exerciseDuration estimates the wall-clock minutes one prescription takes,
// rest included. Compound lower-body and full-body work takes longer per
// set, and loaded barbell or machine setups add changeover time.
func exerciseDuration(category, equipment string, sets, restSeconds int) int {
	minutes := float64(minutesPerExercise)
	switch category {
	case "lower_body", "full_body":
		minutes += 2
	case "upper_body":
		minutes += 1
	}
	if tokens := splitCSV(equipment); len(tokens) > 0 {
		switch tokens[0] {
		case "barbell", "machine", "cable", "rack":
			minutes += 2
		case "dumbbell", "kettlebell", "bench":
			minutes += 1
		}
	}
	if sets > 1 {
		minutes += float64((sets-1)*restSeconds) / 60
	}
	rounded := int(math.Round(minutes))
	if rounded < 4 {
		rounded = 4
	}
	return rounded
}
