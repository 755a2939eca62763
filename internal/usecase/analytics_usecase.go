package usecase

import (
	"context"
	"sort"
	"strings"
	"time"

	"go-interview-backend/internal/domain"
	"go-interview-backend/pkg/apperror"
)

const (
	recentInterviewLimit = 10
	monthlyTrendLimit    = 6
	topSkillLimit        = 10
	recentAnalysisLimit  = 5
)

type analyticsUsecase struct {
	sessionRepo domain.SessionRepository
	jdRepo      domain.JobDescriptionRepository
	resumeRepo  domain.ResumeRepository
}

// NewAnalyticsUsecase creates the read-only analytics projection. It only
// ever reads from the repositories; fallback-cached answers are invisible
// here by design.
func NewAnalyticsUsecase(sessionRepo domain.SessionRepository, jdRepo domain.JobDescriptionRepository, resumeRepo domain.ResumeRepository) domain.AnalyticsUsecase {
	return &analyticsUsecase{
		sessionRepo: sessionRepo,
		jdRepo:      jdRepo,
		resumeRepo:  resumeRepo,
	}
}

// ComputeUserAnalytics derives cross-session statistics for one user. Every
// aggregate defaults to 0 on empty input; nothing here divides by zero.
func (uc *analyticsUsecase) ComputeUserAnalytics(ctx context.Context, userID string) (*domain.UserAnalytics, error) {
	sessions, err := uc.sessionRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	jds, err := uc.jdRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	resumes, err := uc.resumeRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, apperror.Internal(err)
	}

	jdByID := make(map[string]domain.JobDescription, len(jds))
	for _, jd := range jds {
		jdByID[jd.ID] = jd
	}

	analytics := &domain.UserAnalytics{
		TotalInterviews:  len(sessions),
		RecentInterviews: []domain.RecentInterview{},
		SkillBreakdown:   []domain.SkillStat{},
		MonthlyTrends:    []domain.MonthlyStat{},
	}

	// Completed count and average over completed sessions with a score
	var completedScoreSum float64
	completedWithScore := 0
	for _, s := range sessions {
		if s.Status != domain.SessionStatusCompleted {
			continue
		}
		analytics.CompletedInterviews++
		if s.Score != nil {
			completedScoreSum += *s.Score
			completedWithScore++
		}
	}
	if completedWithScore > 0 {
		analytics.AverageScore = roundScore(completedScoreSum / float64(completedWithScore))
	}

	// Recent interviews: sessions come back newest first from the repository
	for _, s := range sessions {
		if len(analytics.RecentInterviews) == recentInterviewLimit {
			break
		}
		jobRole := ""
		if jd, ok := jdByID[s.JobDescriptionID]; ok {
			jobRole = jd.Parsed.Title
		}
		grade := GradeForScore(0)
		if s.Score != nil {
			grade = GradeForScore(*s.Score)
		}
		analytics.RecentInterviews = append(analytics.RecentInterviews, domain.RecentInterview{
			SessionID: s.ID,
			JobRole:   jobRole,
			Status:    s.Status,
			Score:     s.Score,
			Grade:     grade,
			StartedAt: s.StartedAt.Format(time.RFC3339),
		})
	}

	analytics.SkillBreakdown = skillBreakdown(sessions, jdByID)
	analytics.MonthlyTrends = monthlyTrends(sessions)
	analytics.ResumeStats = resumeStats(resumes)

	return analytics, nil
}

// skillBreakdown averages session scores per skill token found in each
// scored session's job description.
func skillBreakdown(sessions []domain.InterviewSession, jdByID map[string]domain.JobDescription) []domain.SkillStat {
	type acc struct {
		sum   float64
		count int
	}
	bySkill := map[string]*acc{}
	for _, s := range sessions {
		if s.Score == nil {
			continue
		}
		jd, ok := jdByID[s.JobDescriptionID]
		if !ok {
			continue
		}
		seen := map[string]bool{}
		for _, skill := range jd.Parsed.SkillsRequired {
			key := strings.ToLower(strings.TrimSpace(skill))
			if key == "" || seen[key] {
				continue
			}
			seen[key] = true
			a, ok := bySkill[key]
			if !ok {
				a = &acc{}
				bySkill[key] = a
			}
			a.sum += *s.Score
			a.count++
		}
	}

	stats := make([]domain.SkillStat, 0, len(bySkill))
	for skill, a := range bySkill {
		stats = append(stats, domain.SkillStat{
			Skill:        skill,
			AverageScore: roundScore(a.sum / float64(a.count)),
			Sessions:     a.count,
		})
	}
	sort.Slice(stats, func(i, j int) bool {
		if stats[i].Sessions != stats[j].Sessions {
			return stats[i].Sessions > stats[j].Sessions
		}
		return stats[i].Skill < stats[j].Skill
	})
	return stats
}

// monthlyTrends buckets sessions by calendar year-month of started_at and
// keeps the last six months by key ordering.
func monthlyTrends(sessions []domain.InterviewSession) []domain.MonthlyStat {
	type acc struct {
		interviews int
		completed  int
		scoreSum   float64
		scored     int
	}
	byMonth := map[string]*acc{}
	for _, s := range sessions {
		key := s.StartedAt.Format("2006-01")
		a, ok := byMonth[key]
		if !ok {
			a = &acc{}
			byMonth[key] = a
		}
		a.interviews++
		if s.Status == domain.SessionStatusCompleted {
			a.completed++
			if s.Score != nil {
				a.scoreSum += *s.Score
				a.scored++
			}
		}
	}

	keys := make([]string, 0, len(byMonth))
	for k := range byMonth {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	if len(keys) > monthlyTrendLimit {
		keys = keys[len(keys)-monthlyTrendLimit:]
	}

	trends := make([]domain.MonthlyStat, 0, len(keys))
	for _, k := range keys {
		a := byMonth[k]
		avg := 0.0
		if a.scored > 0 {
			avg = roundScore(a.scoreSum / float64(a.scored))
		}
		trends = append(trends, domain.MonthlyStat{
			Month:        k,
			Interviews:   a.interviews,
			Completed:    a.completed,
			AverageScore: avg,
		})
	}
	return trends
}

// resumeStats mirrors the interview aggregates for resume analyses: average
// analysis score, top skills by frequency (capped at 10) and the 5 most
// recent analyses.
func resumeStats(resumes []domain.Resume) domain.ResumeStats {
	stats := domain.ResumeStats{
		TotalAnalyses:  len(resumes),
		TopSkills:      []domain.SkillFrequency{},
		RecentAnalyses: []domain.Resume{},
	}

	var scoreSum float64
	scored := 0
	freq := map[string]int{}
	for _, r := range resumes {
		if r.Parsed.OverallScore > 0 {
			scoreSum += r.Parsed.OverallScore
			scored++
		}
		for _, skill := range r.Parsed.Skills {
			key := strings.ToLower(strings.TrimSpace(skill))
			if key != "" {
				freq[key]++
			}
		}
	}
	if scored > 0 {
		stats.AverageScore = roundScore(scoreSum / float64(scored))
	}

	for skill, count := range freq {
		stats.TopSkills = append(stats.TopSkills, domain.SkillFrequency{Skill: skill, Count: count})
	}
	sort.Slice(stats.TopSkills, func(i, j int) bool {
		if stats.TopSkills[i].Count != stats.TopSkills[j].Count {
			return stats.TopSkills[i].Count > stats.TopSkills[j].Count
		}
		return stats.TopSkills[i].Skill < stats.TopSkills[j].Skill
	})
	if len(stats.TopSkills) > topSkillLimit {
		stats.TopSkills = stats.TopSkills[:topSkillLimit]
	}

	// Resumes come back newest first from the repository
	limit := recentAnalysisLimit
	if len(resumes) < limit {
		limit = len(resumes)
	}
	stats.RecentAnalyses = append(stats.RecentAnalyses, resumes[:limit]...)

	return stats
}
