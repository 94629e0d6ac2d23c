package program

import "strings"

// injuryExcluded reports whether an exercise conflicts with any of the
// client's injury areas. The check runs case-insensitive substring matches
// over the exercise name and both muscle fields, so "knee" excludes both
// name matches like "Jump Squat" and anything targeting the area itself.
func (p *Presets) injuryExcluded(ex Exercise, injuries []string) bool {
	if len(injuries) == 0 {
		return false
	}
	name := strings.ToLower(ex.Name)
	muscles := strings.ToLower(ex.PrimaryMuscle + " " + ex.SecondaryMuscle)
	for _, injury := range injuries {
		area := strings.ToLower(strings.TrimSpace(injury))
		if area == "" {
			continue
		}
		if strings.Contains(muscles, area) {
			return true
		}
		for _, kw := range p.Injuries[area] {
			if strings.Contains(name, kw) {
				return true
			}
		}
	}
	return false
}

// hasEquipment reports whether the client can perform the exercise with
// what they have. Bodyweight exercises always pass, an empty available set
// means unconstrained, and otherwise any single matching token suffices
// since the catalog lists alternatives rather than strict requirements.
func hasEquipment(ex Exercise, available []string) bool {
	needs := ex.equipmentTokens()
	if len(needs) == 0 || len(available) == 0 {
		return true
	}
	for _, need := range needs {
		if need == "bodyweight" || need == "none" {
			return true
		}
		for _, have := range available {
			if have == need {
				return true
			}
		}
	}
	return false
}
