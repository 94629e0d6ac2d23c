package program

import (
	_ "embed"
	"log/slog"
	"strings"

	"github.com/FitCoachOrg/FitCoachTrainer-sub001/internal/errors"
	"gopkg.in/yaml.v3"
)

//go:embed presets.yaml
var presetsDefinition []byte

// GoalPreset carries the per-goal defaults applied to every generated
// session before phase deltas.
type GoalPreset struct {
	Sets              int      `yaml:"sets"`
	RepRange          string   `yaml:"rep_range"`
	RestSeconds       int      `yaml:"rest_seconds"`
	RPE               string   `yaml:"rpe"`
	ExercisesPerDay   int      `yaml:"exercises_per_day"`
	DefaultMuscles    []string `yaml:"default_muscles"`
	FavoredCategories []string `yaml:"favored_categories"`
}

// Phase is one week of the four-week mesocycle.
type Phase struct {
	Phase            int    `yaml:"phase"`
	Label            string `yaml:"label"`
	SetsDelta        int    `yaml:"sets_delta"`
	RestDeltaSeconds int    `yaml:"rest_delta_seconds"`
	RPE              string `yaml:"rpe"`
}

// Presets bundles every lookup table the engine consults. Immutable after
// Load.
type Presets struct {
	Goals            map[Goal]GoalPreset `yaml:"goals"`
	Phases           []Phase             `yaml:"phases"`
	MuscleCategories map[string]string   `yaml:"muscle_categories"`
	Injuries         map[string][]string `yaml:"injuries"`
	Equipment        map[string][]string `yaml:"equipment"`
	MovementPatterns map[string][]string `yaml:"movement_patterns"`
	Types            map[string][]string `yaml:"types"`
}

// LoadPresets parses the embedded preset tables. Call once at startup.
func LoadPresets(logger *slog.Logger) (*Presets, error) {
	var p Presets
	if err := yaml.Unmarshal(presetsDefinition, &p); err != nil {
		return nil, errors.Wrap(err, "unmarshal presets")
	}
	if len(p.Goals) == 0 || len(p.Phases) == 0 {
		return nil, errors.Wrap(ErrConfiguration, "presets missing goals or phases")
	}
	logger.Debug("presets loaded",
		slog.Int("goals", len(p.Goals)),
		slog.Int("phases", len(p.Phases)))
	return &p, nil
}

// goal returns the preset for g, falling back to hypertrophy for unknown
// goals so a stale profile row never fails generation.
func (p *Presets) goal(g Goal) GoalPreset {
	if preset, ok := p.Goals[g]; ok {
		return preset
	}
	return p.Goals[GoalHypertrophy]
}

// phaseForWeek maps a 1-based week number onto the repeating mesocycle.
func (p *Presets) phaseForWeek(week int) Phase {
	idx := (week - 1) % len(p.Phases)
	return p.Phases[idx]
}

// categoryForMuscle resolves a target muscle to its catalog category,
// defaulting to full_body.
func (p *Presets) categoryForMuscle(muscle string) string {
	if cat, ok := p.MuscleCategories[strings.ToLower(strings.TrimSpace(muscle))]; ok {
		return cat
	}
	return "full_body"
}

// expandEquipment maps client-facing labels to catalog tokens. Unknown
// labels pass through lowercased.
func (p *Presets) expandEquipment(labels []string) []string {
	seen := make(map[string]struct{})
	var tokens []string
	add := func(t string) {
		t = strings.ToLower(strings.TrimSpace(t))
		if t == "" {
			return
		}
		if _, ok := seen[t]; ok {
			return
		}
		seen[t] = struct{}{}
		tokens = append(tokens, t)
	}
	for _, label := range labels {
		key := strings.ToLower(strings.TrimSpace(label))
		if expanded, ok := p.Equipment[key]; ok {
			for _, t := range expanded {
				add(t)
			}
			continue
		}
		add(key)
	}
	return tokens
}

// classifyMovement returns the first movement pattern whose keyword list
// matches the exercise name.
func (p *Presets) classifyMovement(name string) string {
	lower := strings.ToLower(name)
	for _, pattern := range []string{"squat", "hinge", "lunge", "push", "pull", "carry", "rotation"} {
		for _, kw := range p.MovementPatterns[pattern] {
			if strings.Contains(lower, kw) {
				return pattern
			}
		}
	}
	return "isolation"
}

// classifyType returns the session role for an exercise name.
func (p *Presets) classifyType(name string) ExerciseType {
	lower := strings.ToLower(name)
	for _, kw := range p.Types["primary"] {
		if strings.Contains(lower, kw) {
			return TypePrimary
		}
	}
	for _, kw := range p.Types["secondary"] {
		if strings.Contains(lower, kw) {
			return TypeSecondary
		}
	}
	return TypeAccessory
}
