package usecase

import "math"

// Grade labels, from best to worst. One canonical table used by every call
// site: FinishSession, result retrieval, completed-list retrieval and
// analytics all go through GradeForScore.
const (
	GradeExcellent        = "Excellent"
	GradeVeryGood         = "Very Good"
	GradeGood             = "Good"
	GradeAverage          = "Average"
	GradeBelowAverage     = "Below Average"
	GradeNeedsImprovement = "Needs Improvement"
	GradeNotGraded        = "Not Graded"
)

// GradeForScore buckets a numeric overall score (1-10) into a human-readable
// grade. Monotonic over the whole input range; 0 or below means no scored
// answers exist yet.
func GradeForScore(score float64) string {
	switch {
	case score >= 9:
		return GradeExcellent
	case score >= 8:
		return GradeVeryGood
	case score >= 7:
		return GradeGood
	case score >= 6:
		return GradeAverage
	case score >= 5:
		return GradeBelowAverage
	case score > 0:
		return GradeNeedsImprovement
	default:
		return GradeNotGraded
	}
}

// fallbackScore derives a deterministic score from answer length when the
// evaluation provider fails. Bands: <10 chars -> 1, <30 -> 2, <100 -> 4,
// else -> 6.
func fallbackScore(answer string) float64 {
	switch n := len(answer); {
	case n < 10:
		return 1
	case n < 30:
		return 2
	case n < 100:
		return 4
	default:
		return 6
	}
}

// overallScore is the arithmetic mean over exactly the scored answers —
// never divided by the total question count. Returns 0 on empty input.
func overallScore(scores []float64) float64 {
	if len(scores) == 0 {
		return 0
	}
	var sum float64
	for _, s := range scores {
		sum += s
	}
	return sum / float64(len(scores))
}

// completionPercentage returns answered/total as a rounded percentage, and 0
// when the session has no questions at all.
func completionPercentage(answered, total int) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(float64(answered) / float64(total) * 100))
}

// roundScore rounds a score to one decimal for display. The unrounded value
// is what gets stored.
func roundScore(score float64) float64 {
	return math.Round(score*10) / 10
}
