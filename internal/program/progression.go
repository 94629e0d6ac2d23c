package program

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
	"time"
)

// historyLookbackDays bounds the trend analysis window.
const historyLookbackDays = 14

// baselineRecommendation is returned when history is too thin to compare
// week over week. Low confidence signals the assembler to keep the goal
// template's sets and reps.
func baselineRecommendation() Recommendation {
	return Recommendation{
		Sets:       3,
		RepRange:   "8-10",
		Weight:     "Moderate weight",
		Reason:     "no previous data",
		Confidence: ConfidenceLow,
		Trend:      TrendStable,
	}
}

// weekStart truncates a date to the Monday of its ISO week.
func weekStart(t time.Time) time.Time {
	t = t.Truncate(24 * time.Hour)
	weekday := int(t.Weekday())
	if weekday == 0 {
		weekday = 7
	}
	return t.AddDate(0, 0, 1-weekday)
}

// parseRepRange reads "8-12" or a bare "10" into a low/high pair. Malformed
// input parses as zero, which simply mutes the reps vote.
func parseRepRange(s string) (low, high int) {
	parts := strings.SplitN(strings.TrimSpace(s), "-", 2)
	low, _ = strconv.Atoi(strings.TrimSpace(parts[0]))
	if len(parts) == 2 {
		high, _ = strconv.Atoi(strings.TrimSpace(parts[1]))
	} else {
		high = low
	}
	return low, high
}

func repMidpoint(s string) float64 {
	low, high := parseRepRange(s)
	return float64(low+high) / 2
}

// weightRank orders free-text weight descriptors for the heavier/lighter
// vote. Numeric loads compare numerically; descriptors fall back to a
// keyword scale. Zero means unrankable.
func weightRank(s string) float64 {
	lower := strings.ToLower(s)
	start := strings.IndexAny(lower, "0123456789")
	if start >= 0 {
		end := start
		for end < len(lower) && (lower[end] == '.' || (lower[end] >= '0' && lower[end] <= '9')) {
			end++
		}
		if v, err := strconv.ParseFloat(lower[start:end], 64); err == nil {
			return v
		}
	}
	switch {
	case strings.Contains(lower, "heav"), strings.Contains(lower, "progressive"), strings.Contains(lower, "increase"):
		return 3
	case strings.Contains(lower, "moderate"), strings.Contains(lower, "medium"):
		return 2
	case strings.Contains(lower, "light"), strings.Contains(lower, "bodyweight"), strings.Contains(lower, "decrease"):
		return 1
	}
	return 0
}

// compareExercise casts the 3-vote improved/maintained/declined verdict for
// one exercise across consecutive weeks. Positive means improved.
func compareExercise(prev, cur LoggedExercise) int {
	votes := 0
	if cur.Sets > prev.Sets {
		votes++
	} else if cur.Sets < prev.Sets {
		votes--
	}
	if prevMid, curMid := repMidpoint(prev.Reps), repMidpoint(cur.Reps); curMid > prevMid {
		votes++
	} else if curMid < prevMid {
		votes--
	}
	if prevW, curW := weightRank(prev.Weight), weightRank(cur.Weight); prevW > 0 && curW > 0 {
		if curW > prevW {
			votes++
		} else if curW < prevW {
			votes--
		}
	}
	return votes
}

// majority maps improved/declined tallies to a verdict by strict majority.
func majority(improved, declined, total int) string {
	switch {
	case total == 0:
		return "maintained"
	case improved*2 > total:
		return "improved"
	case declined*2 > total:
		return "declined"
	default:
		return "maintained"
	}
}

// analyzeHistory classifies the client's recent trend and derives the load
// recommendation for the run. Fewer than two logged weeks yields the
// low-confidence baseline.
func analyzeHistory(workouts []LoggedWorkout, now time.Time) Recommendation {
	cutoff := now.AddDate(0, 0, -historyLookbackDays)
	byWeek := make(map[time.Time]map[string]LoggedExercise)
	for _, w := range workouts {
		if w.Date.Before(cutoff) {
			continue
		}
		week := weekStart(w.Date)
		if byWeek[week] == nil {
			byWeek[week] = make(map[string]LoggedExercise)
		}
		for _, ex := range w.Exercises {
			// Last occurrence within the week wins.
			byWeek[week][strings.ToLower(ex.Name)] = ex
		}
	}
	if len(byWeek) < 2 {
		return baselineRecommendation()
	}

	weeks := make([]time.Time, 0, len(byWeek))
	for week := range byWeek {
		weeks = append(weeks, week)
	}
	sort.Slice(weeks, func(i, j int) bool { return weeks[i].Before(weeks[j]) })

	weekVerdicts := make([]string, 0, len(weeks)-1)
	for i := 1; i < len(weeks); i++ {
		prev, cur := byWeek[weeks[i-1]], byWeek[weeks[i]]
		improved, declined, total := 0, 0, 0
		for name, curEx := range cur {
			prevEx, ok := prev[name]
			if !ok {
				continue
			}
			total++
			switch votes := compareExercise(prevEx, curEx); {
			case votes > 0:
				improved++
			case votes < 0:
				declined++
			}
		}
		weekVerdicts = append(weekVerdicts, majority(improved, declined, total))
	}

	improvedWeeks, declinedWeeks := 0, 0
	for _, v := range weekVerdicts {
		switch v {
		case "improved":
			improvedWeeks++
		case "declined":
			declinedWeeks++
		}
	}
	trend := TrendStable
	switch majority(improvedWeeks, declinedWeeks, len(weekVerdicts)) {
	case "improved":
		trend = TrendImproving
	case "declined":
		trend = TrendDeclining
	}

	// Base the recommendation on the most recent week's observed volume.
	recent := byWeek[weeks[len(weeks)-1]]
	baseSets, baseLow, baseHigh := recentVolume(recent)

	rec := Recommendation{Trend: trend}
	sets := baseSets
	switch trend {
	case TrendImproving:
		sets++
		if sets > 5 {
			sets = 5
		}
		baseLow += 2
		baseHigh += 2
		rec.Weight = "Progressive weight"
		rec.Confidence = ConfidenceHigh
		rec.Reason = fmt.Sprintf("performance improved over the last %d weeks", len(weeks))
	case TrendDeclining:
		sets--
		if sets < 2 {
			sets = 2
		}
		rec.Weight = "Light weight"
		rec.Confidence = ConfidenceHigh
		rec.Reason = "recent performance decline, reducing volume to recover"
	default:
		baseLow++
		baseHigh++
		rec.Weight = "Moderate weight"
		rec.Confidence = ConfidenceMedium
		rec.Reason = "performance stable, small rep increase"
	}

	// A decline in the single most recent week shaves another half set off
	// whatever the overall trend said.
	if weekVerdicts[len(weekVerdicts)-1] == "declined" {
		reduced := int(math.Floor(float64(sets) - 0.5))
		if reduced < 2 {
			reduced = 2
		}
		sets = reduced
	}

	rec.Sets = sets
	rec.RepRange = fmt.Sprintf("%d-%d", baseLow, baseHigh)
	return rec
}

// recentVolume averages the most recent week's sets and takes the widest
// rep range seen, giving the adjustment a grounded starting point.
func recentVolume(week map[string]LoggedExercise) (sets, repLow, repHigh int) {
	if len(week) == 0 {
		return 3, 8, 10
	}
	totalSets := 0
	repLow, repHigh = math.MaxInt, 0
	for _, ex := range week {
		totalSets += ex.Sets
		low, high := parseRepRange(ex.Reps)
		if low > 0 && low < repLow {
			repLow = low
		}
		if high > repHigh {
			repHigh = high
		}
	}
	sets = int(math.Round(float64(totalSets) / float64(len(week))))
	if sets < 1 {
		sets = 1
	}
	if repLow == math.MaxInt || repLow == 0 {
		repLow = 8
	}
	if repHigh == 0 {
		repHigh = 10
	}
	return sets, repLow, repHigh
}
