package program

import (
	"math"
	"math/rand/v2"
	"strings"
)

// Pattern diversity boosts applied on top of the base score during day
// selection.
const (
	boostPatternUnused = 50
	boostPatternOnce   = 25
	jitterRange        = 10
)

// typeTargets splits n exercise slots across session roles by day position.
// Day 1 and 5 front-load primaries, midweek leans secondary, day six and
// later is mostly accessory work.
func typeTargets(dayIdx, n int) (primary, secondary, accessory int) {
	var pShare, sShare float64
	switch {
	case dayIdx == 1 || dayIdx == 5:
		pShare, sShare = 0.6, 0.3
	case dayIdx >= 6:
		pShare, sShare = 0.2, 0.3
	default:
		pShare, sShare = 0.3, 0.4
	}
	primary = int(math.Round(pShare * float64(n)))
	secondary = int(math.Round(sShare * float64(n)))
	accessory = n - primary - secondary
	if accessory < 0 {
		secondary += accessory
		accessory = 0
	}
	return primary, secondary, accessory
}

// selectDay fills one workout day from the pool. It never fails: when the
// day's buckets are exhausted it degrades to the top-scored catalog
// exercises and reports that via the second return value.
func (p *weeklyPool) selectDay(rng *rand.Rand, dayIdx int, muscle string, n int) ([]ScoredExercise, bool) {
	used := p.usedNames()
	bucket := p.buckets[muscle]

	prep := func(candidates []ScoredExercise) []ScoredExercise {
		out := make([]ScoredExercise, 0, len(candidates))
		for _, e := range candidates {
			if _, taken := used[strings.ToLower(e.Name)]; taken {
				continue
			}
			switch p.patternUseCount(e.MovementPattern) {
			case 0:
				e.Score += boostPatternUnused
			case 1:
				e.Score += boostPatternOnce
			}
			e.Score += rng.IntN(2*jitterRange+1) - jitterRange
			out = append(out, e)
		}
		sortByScore(out)
		return out
	}

	primaries := prep(bucket.primary)
	secondaries := prep(bucket.secondary)
	accessories := prep(bucket.accessory)

	pTarget, sTarget, aTarget := typeTargets(dayIdx, n)
	selected := make([]ScoredExercise, 0, n)
	take := func(from []ScoredExercise, count int) []ScoredExercise {
		for len(from) > 0 && count > 0 {
			selected = append(selected, from[0])
			from = from[1:]
			count--
		}
		return from
	}
	primaries = take(primaries, pTarget)
	secondaries = take(secondaries, sTarget)
	accessories = take(accessories, aTarget)

	// Top up short type buckets from whatever remains, best score first.
	if len(selected) < n {
		rest := append(append(primaries, secondaries...), accessories...)
		sortByScore(rest)
		take(rest, n-len(selected))
	}
	if len(selected) > n {
		selected = selected[:n]
	}

	fallback := bucket.fallback
	if len(selected) == 0 {
		selected = p.genericFallback(used, n)
		fallback = true
	}

	p.recordUsage(dayIdx, muscle, selected)
	return selected, fallback
}

// genericFallback returns the top-n scored exercises from the whole
// catalog, first tagged primary and the rest secondary. Earlier days'
// picks are avoided when enough remain.
func (p *weeklyPool) genericFallback(used map[string]struct{}, n int) []ScoredExercise {
	var out []ScoredExercise
	for _, e := range p.catalog {
		if _, taken := used[strings.ToLower(e.Name)]; taken {
			continue
		}
		out = append(out, e)
		if len(out) == n {
			break
		}
	}
	if len(out) == 0 {
		for _, e := range p.catalog {
			out = append(out, e)
			if len(out) == n {
				break
			}
		}
	}
	for i := range out {
		if i == 0 {
			out[i].Type = TypePrimary
		} else {
			out[i].Type = TypeSecondary
		}
	}
	return out
}

// recordUsage notes the day's selection so later days in the run steer
// away from the same names, patterns, and equipment.
func (p *weeklyPool) recordUsage(dayIdx int, muscle string, selected []ScoredExercise) {
	usage := dayUsage{MuscleGroups: []string{muscle}}
	for _, e := range selected {
		usage.Exercises = append(usage.Exercises, e.Name)
		usage.MovementPatterns = append(usage.MovementPatterns, e.MovementPattern)
		usage.EquipmentUsed = append(usage.EquipmentUsed, e.equipmentTokens()...)
	}
	p.used[dayIdx] = usage
}
