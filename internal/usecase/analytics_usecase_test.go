package usecase_test

import (
	"context"
	"testing"
	"time"

	"go-interview-backend/internal/domain"
	"go-interview-backend/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAnalyticsFixture() (*MockSessionRepo, *MockJDRepo, *MockResumeRepo, domain.AnalyticsUsecase) {
	sessionRepo := new(MockSessionRepo)
	jdRepo := new(MockJDRepo)
	resumeRepo := new(MockResumeRepo)
	uc := usecase.NewAnalyticsUsecase(sessionRepo, jdRepo, resumeRepo)
	return sessionRepo, jdRepo, resumeRepo, uc
}

func TestComputeUserAnalytics(t *testing.T) {
	ctx := context.Background()

	t.Run("Should return all zeros for a brand new user", func(t *testing.T) {
		sessionRepo, jdRepo, resumeRepo, uc := newAnalyticsFixture()
		sessionRepo.On("GetByUserID", ctx, "user-1").Return([]domain.InterviewSession{}, nil)
		jdRepo.On("GetByUserID", ctx, "user-1").Return([]domain.JobDescription{}, nil)
		resumeRepo.On("GetByUserID", ctx, "user-1").Return([]domain.Resume{}, nil)

		analytics, err := uc.ComputeUserAnalytics(ctx, "user-1")
		require.NoError(t, err)
		assert.Equal(t, 0, analytics.TotalInterviews)
		assert.Equal(t, 0, analytics.CompletedInterviews)
		assert.Equal(t, 0.0, analytics.AverageScore)
		assert.Empty(t, analytics.RecentInterviews)
		assert.Empty(t, analytics.SkillBreakdown)
		assert.Empty(t, analytics.MonthlyTrends)
		assert.Equal(t, 0, analytics.ResumeStats.TotalAnalyses)
		assert.Equal(t, 0.0, analytics.ResumeStats.AverageScore)
	})

	t.Run("Should average only completed sessions with a score", func(t *testing.T) {
		sessionRepo, jdRepo, resumeRepo, uc := newAnalyticsFixture()
		s1, s2 := 8.0, 6.0
		now := time.Now()
		sessions := []domain.InterviewSession{
			{ID: "s1", Status: domain.SessionStatusCompleted, Score: &s1, JobDescriptionID: "jd-1", StartedAt: now},
			{ID: "s2", Status: domain.SessionStatusCompleted, Score: &s2, JobDescriptionID: "jd-1", StartedAt: now},
			{ID: "s3", Status: domain.SessionStatusActive, JobDescriptionID: "jd-1", StartedAt: now},
			{ID: "s4", Status: domain.SessionStatusAbandoned, JobDescriptionID: "jd-1", StartedAt: now},
		}
		jds := []domain.JobDescription{*backendJD()}

		sessionRepo.On("GetByUserID", ctx, "user-1").Return(sessions, nil)
		jdRepo.On("GetByUserID", ctx, "user-1").Return(jds, nil)
		resumeRepo.On("GetByUserID", ctx, "user-1").Return([]domain.Resume{}, nil)

		analytics, err := uc.ComputeUserAnalytics(ctx, "user-1")
		require.NoError(t, err)
		assert.Equal(t, 4, analytics.TotalInterviews)
		assert.Equal(t, 2, analytics.CompletedInterviews)
		assert.Equal(t, 7.0, analytics.AverageScore)
		assert.Len(t, analytics.RecentInterviews, 4)
		assert.Equal(t, "Backend Engineer", analytics.RecentInterviews[0].JobRole)

		// Both scored sessions share the same three skills
		require.Len(t, analytics.SkillBreakdown, 3)
		for _, stat := range analytics.SkillBreakdown {
			assert.Equal(t, 7.0, stat.AverageScore)
			assert.Equal(t, 2, stat.Sessions)
		}

		// All sessions fall in the current month
		require.Len(t, analytics.MonthlyTrends, 1)
		assert.Equal(t, now.Format("2006-01"), analytics.MonthlyTrends[0].Month)
		assert.Equal(t, 4, analytics.MonthlyTrends[0].Interviews)
		assert.Equal(t, 2, analytics.MonthlyTrends[0].Completed)
		assert.Equal(t, 7.0, analytics.MonthlyTrends[0].AverageScore)
	})

	t.Run("Should cap recent interviews at ten", func(t *testing.T) {
		sessionRepo, jdRepo, resumeRepo, uc := newAnalyticsFixture()
		sessions := make([]domain.InterviewSession, 14)
		for i := range sessions {
			sessions[i] = domain.InterviewSession{
				ID:        "s" + string(rune('a'+i)),
				Status:    domain.SessionStatusActive,
				StartedAt: time.Now(),
			}
		}
		sessionRepo.On("GetByUserID", ctx, "user-1").Return(sessions, nil)
		jdRepo.On("GetByUserID", ctx, "user-1").Return([]domain.JobDescription{}, nil)
		resumeRepo.On("GetByUserID", ctx, "user-1").Return([]domain.Resume{}, nil)

		analytics, err := uc.ComputeUserAnalytics(ctx, "user-1")
		require.NoError(t, err)
		assert.Len(t, analytics.RecentInterviews, 10)
		assert.Equal(t, 14, analytics.TotalInterviews)
	})

	t.Run("Should keep only the last six monthly buckets", func(t *testing.T) {
		sessionRepo, jdRepo, resumeRepo, uc := newAnalyticsFixture()
		sessions := make([]domain.InterviewSession, 0, 9)
		base := time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC)
		for i := 0; i < 9; i++ {
			sessions = append(sessions, domain.InterviewSession{
				ID:        "s" + string(rune('a'+i)),
				Status:    domain.SessionStatusActive,
				StartedAt: base.AddDate(0, i, 0),
			})
		}
		sessionRepo.On("GetByUserID", ctx, "user-1").Return(sessions, nil)
		jdRepo.On("GetByUserID", ctx, "user-1").Return([]domain.JobDescription{}, nil)
		resumeRepo.On("GetByUserID", ctx, "user-1").Return([]domain.Resume{}, nil)

		analytics, err := uc.ComputeUserAnalytics(ctx, "user-1")
		require.NoError(t, err)
		require.Len(t, analytics.MonthlyTrends, 6)
		assert.Equal(t, "2026-04", analytics.MonthlyTrends[0].Month)
		assert.Equal(t, "2026-09", analytics.MonthlyTrends[5].Month)
	})

	t.Run("Should aggregate resume stats with top skills by frequency", func(t *testing.T) {
		sessionRepo, jdRepo, resumeRepo, uc := newAnalyticsFixture()
		resumes := []domain.Resume{
			{ID: "r1", Parsed: domain.ResumeParsedData{Skills: []string{"Go", "SQL"}, OverallScore: 8}},
			{ID: "r2", Parsed: domain.ResumeParsedData{Skills: []string{"go", "Docker"}, OverallScore: 6}},
			{ID: "r3", Parsed: domain.ResumeParsedData{Skills: []string{"Go"}}}, // never analyzed, no score
		}
		sessionRepo.On("GetByUserID", ctx, "user-1").Return([]domain.InterviewSession{}, nil)
		jdRepo.On("GetByUserID", ctx, "user-1").Return([]domain.JobDescription{}, nil)
		resumeRepo.On("GetByUserID", ctx, "user-1").Return(resumes, nil)

		analytics, err := uc.ComputeUserAnalytics(ctx, "user-1")
		require.NoError(t, err)
		assert.Equal(t, 3, analytics.ResumeStats.TotalAnalyses)
		assert.Equal(t, 7.0, analytics.ResumeStats.AverageScore) // unscored resume excluded

		require.NotEmpty(t, analytics.ResumeStats.TopSkills)
		assert.Equal(t, "go", analytics.ResumeStats.TopSkills[0].Skill) // case-folded, 3 occurrences
		assert.Equal(t, 3, analytics.ResumeStats.TopSkills[0].Count)
		assert.Len(t, analytics.ResumeStats.RecentAnalyses, 3)
	})
}
