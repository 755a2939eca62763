package domain

import "context"

// SkillStat is the average session score for one skill token found in the
// job descriptions of the user's sessions.
type SkillStat struct {
	Skill        string  `json:"skill"`
	AverageScore float64 `json:"average_score"`
	Sessions     int     `json:"sessions"`
}

// MonthlyStat aggregates sessions by calendar year-month of started_at.
type MonthlyStat struct {
	Month        string  `json:"month"` // YYYY-MM
	Interviews   int     `json:"interviews"`
	Completed    int     `json:"completed"`
	AverageScore float64 `json:"average_score"`
}

type RecentInterview struct {
	SessionID string   `json:"session_id"`
	JobRole   string   `json:"job_role"`
	Status    string   `json:"status"`
	Score     *float64 `json:"score,omitempty"`
	Grade     string   `json:"grade"`
	StartedAt string   `json:"started_at"`
}

type SkillFrequency struct {
	Skill string `json:"skill"`
	Count int    `json:"count"`
}

// ResumeStats mirrors the interview analytics for resume analyses.
type ResumeStats struct {
	TotalAnalyses   int              `json:"total_analyses"`
	AverageScore    float64          `json:"average_score"`
	TopSkills       []SkillFrequency `json:"top_skills"`       // capped at 10
	RecentAnalyses  []Resume         `json:"recent_analyses"`  // last 5
}

// UserAnalytics is a pure read-only projection over sessions, answers, job
// descriptions and resumes. Every numeric aggregate defaults to 0 on empty
// input; there is no division by zero anywhere in its derivation.
type UserAnalytics struct {
	TotalInterviews     int               `json:"total_interviews"`
	CompletedInterviews int               `json:"completed_interviews"`
	AverageScore        float64           `json:"average_score"`
	RecentInterviews    []RecentInterview `json:"recent_interviews"` // last 10
	SkillBreakdown      []SkillStat       `json:"skill_breakdown"`
	MonthlyTrends       []MonthlyStat     `json:"monthly_trends"` // last 6 months
	ResumeStats         ResumeStats       `json:"resume_stats"`
}

type AnalyticsUsecase interface {
	ComputeUserAnalytics(ctx context.Context, userID string) (*UserAnalytics, error)
}
