package program

import "strings"

// Scoring signal weights. Signals add independently; the equipment penalty
// is large enough to push unavailable-equipment exercises below any
// available one regardless of other signals.
const (
	scoreMusclePrimary    = 100
	scoreMuscleSecondary  = 50
	scoreEquipmentMatch   = 30
	scoreEquipmentMissing = -120
	scoreHasVideo         = 80
	scoreExperienceFit    = 15
	scoreExperienceAbove  = -40
	scoreUnusedRecently   = 60
	scoreScarcePattern    = 25
	scoreGoalCategory     = 20
)

// scoreContext carries the per-run inputs the scorer consults for every
// candidate. Built once in newWeeklyPool.
type scoreContext struct {
	presets       *Presets
	preset        GoalPreset
	experience    ExperienceLevel
	equipment     []string
	recentUse     map[string]int
	patternCounts map[string]int
}

// scoreExercise computes the additive suitability score of one candidate
// for one target muscle group.
func (sc scoreContext) scoreExercise(ex Exercise, muscle string) int {
	score := 0
	m := strings.ToLower(strings.TrimSpace(muscle))
	if strings.Contains(strings.ToLower(ex.PrimaryMuscle), m) {
		score += scoreMusclePrimary
	} else if strings.Contains(strings.ToLower(ex.SecondaryMuscle), m) {
		score += scoreMuscleSecondary
	}

	if hasEquipment(ex, sc.equipment) {
		score += scoreEquipmentMatch
	} else {
		score += scoreEquipmentMissing
	}

	if ex.VideoURL != "" {
		score += scoreHasVideo
	}

	// Anything at or below the client's level fits; only harder exercises
	// are penalized.
	if diff := ex.Experience.rank() - sc.experience.rank(); diff > 0 {
		score += scoreExperienceAbove
	} else {
		score += scoreExperienceFit
	}

	if sc.recentUse[strings.ToLower(ex.Name)] == 0 {
		score += scoreUnusedRecently
	}

	if sc.patternCounts[sc.presets.classifyMovement(ex.Name)] < 2 {
		score += scoreScarcePattern
	}

	for _, cat := range sc.preset.FavoredCategories {
		if strings.EqualFold(ex.Category, cat) {
			score += scoreGoalCategory
			break
		}
	}

	return score
}
