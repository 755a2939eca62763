package usecase

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGradeForScore(t *testing.T) {
	cases := []struct {
		score float64
		grade string
	}{
		{0, GradeNotGraded},
		{-1, GradeNotGraded},
		{0.5, GradeNeedsImprovement},
		{4.9, GradeNeedsImprovement},
		{5, GradeBelowAverage},
		{5.9, GradeBelowAverage},
		{6, GradeAverage},
		{6.9, GradeAverage},
		{7, GradeGood},
		{7.9, GradeGood},
		{8, GradeVeryGood},
		{8.9, GradeVeryGood},
		{9, GradeExcellent},
		{10, GradeExcellent},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.grade, GradeForScore(tc.score), "score %v", tc.score)
	}
}

func TestGradeMonotonicity(t *testing.T) {
	// Walking up the score range must never produce a worse grade
	rank := map[string]int{
		GradeNotGraded:        0,
		GradeNeedsImprovement: 1,
		GradeBelowAverage:     2,
		GradeAverage:          3,
		GradeGood:             4,
		GradeVeryGood:         5,
		GradeExcellent:        6,
	}
	prev := rank[GradeForScore(0)]
	for s := 0.0; s <= 10.0; s += 0.1 {
		cur := rank[GradeForScore(s)]
		assert.GreaterOrEqual(t, cur, prev, "grade regressed at score %v", s)
		prev = cur
	}
}

func TestFallbackScore(t *testing.T) {
	assert.Equal(t, 1.0, fallbackScore(""))
	assert.Equal(t, 1.0, fallbackScore("123456789")) // 9 chars
	assert.Equal(t, 2.0, fallbackScore("1234567890")) // 10 chars
	assert.Equal(t, 2.0, fallbackScore(string(make([]byte, 29))))
	assert.Equal(t, 4.0, fallbackScore(string(make([]byte, 30))))
	assert.Equal(t, 4.0, fallbackScore(string(make([]byte, 99))))
	assert.Equal(t, 6.0, fallbackScore(string(make([]byte, 100))))
}

func TestOverallScore(t *testing.T) {
	assert.Equal(t, 0.0, overallScore(nil))
	assert.Equal(t, 0.0, overallScore([]float64{}))
	assert.Equal(t, 7.0, overallScore([]float64{7}))
	assert.Equal(t, 5.0, overallScore([]float64{4, 6}))
	// Mean over the scored answers only; caller never passes unanswered slots
	assert.InDelta(t, 7.33, overallScore([]float64{8, 6, 8}), 0.01)
}

func TestCompletionPercentage(t *testing.T) {
	assert.Equal(t, 0, completionPercentage(0, 0))
	assert.Equal(t, 0, completionPercentage(0, 5))
	assert.Equal(t, 60, completionPercentage(3, 5))
	assert.Equal(t, 67, completionPercentage(2, 3))
	assert.Equal(t, 33, completionPercentage(1, 3))
	assert.Equal(t, 100, completionPercentage(5, 5))
}

func TestRoundScore(t *testing.T) {
	assert.Equal(t, 7.3, roundScore(7.33))
	assert.Equal(t, 7.4, roundScore(7.35))
	assert.Equal(t, 0.0, roundScore(0))
	assert.Equal(t, 10.0, roundScore(10))
}
