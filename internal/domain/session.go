package domain

import (
	"context"
	"errors"
	"time"
)

var ErrNotFound = errors.New("resource not found")

// Session status constants. Both COMPLETED and ABANDONED are terminal:
// no transition ever leaves them.
const (
	SessionStatusActive    = "ACTIVE"
	SessionStatusCompleted = "COMPLETED"
	SessionStatusAbandoned = "ABANDONED"
)

// InterviewSession is the central aggregate: one interview attempt tied to
// exactly one job description and one resume, both set at creation and
// immutable thereafter.
type InterviewSession struct {
	ID               string     `json:"id"`
	UserID           string     `json:"user_id"`
	ResumeID         string     `json:"resume_id"`
	JobDescriptionID string     `json:"job_description_id"`
	Status           string     `json:"status"`
	Score            *float64   `json:"score,omitempty"` // set exactly once, at FinishSession
	Feedback         *string    `json:"feedback,omitempty"`
	StartedAt        time.Time  `json:"started_at"`
	EndedAt          *time.Time `json:"ended_at,omitempty"`

	// Joined data for list responses
	JobRole *string `json:"job_role,omitempty"`
}

// Question belongs to exactly one session. Order is 1-based, contiguous, and
// defines both display and scoring sequence. Never mutated after creation.
type Question struct {
	ID           string    `json:"id"`
	SessionID    string    `json:"session_id"`
	QuestionText string    `json:"question_text"`
	Order        int       `json:"order"`
	CreatedAt    time.Time `json:"created_at"`
}

// Answer belongs to exactly one (session, question) pair. Resubmission
// overwrites candidate_answer and submitted_at rather than creating a
// duplicate row. Evaluation fields stay nil until FinishSession scores them.
type Answer struct {
	ID              string    `json:"id"`
	SessionID       string    `json:"session_id"`
	QuestionID      string    `json:"question_id"`
	CandidateAnswer string    `json:"candidate_answer"`
	Score           *float64  `json:"score,omitempty"` // 1-10 scale
	Feedback        *string   `json:"feedback,omitempty"`
	Strengths       []string  `json:"strengths,omitempty"`
	Improvements    []string  `json:"improvements,omitempty"`
	SubmittedAt     time.Time `json:"submitted_at"`
}

type SessionRepository interface {
	Create(ctx context.Context, session *InterviewSession) error
	GetByID(ctx context.Context, id string) (*InterviewSession, error)
	GetByUserID(ctx context.Context, userID string) ([]InterviewSession, error)
	// Finish stores the aggregate score and feedback and moves the session to
	// COMPLETED in a single update.
	Finish(ctx context.Context, id string, score float64, feedback string, endedAt time.Time) error
	// Terminate moves the session to ABANDONED.
	Terminate(ctx context.Context, id string, feedback string, endedAt time.Time) error
}

type QuestionRepository interface {
	CreateBatch(ctx context.Context, questions []Question) error
	GetByID(ctx context.Context, id string) (*Question, error)
	GetBySessionID(ctx context.Context, sessionID string) ([]Question, error)
	CountBySessionID(ctx context.Context, sessionID string) (int, error)
}

type AnswerRepository interface {
	// Upsert creates the answer or, if one already exists for the
	// (session, question) pair, overwrites candidate_answer and submitted_at.
	Upsert(ctx context.Context, answer *Answer) error
	GetBySessionID(ctx context.Context, sessionID string) ([]Answer, error)
	// UpdateEvaluation persists one question's scoring result. Each call is
	// independently atomic so a failure mid-FinishSession cannot corrupt
	// already-persisted evaluations.
	UpdateEvaluation(ctx context.Context, id string, score float64, feedback string, strengths, improvements []string) error
}

// CreateSessionInput carries the validated setup form for a new session.
type CreateSessionInput struct {
	JobRole         string
	JobDescription  string
	ExperienceYears int
	ResumeID        *string // reuse an existing resume when set
}

type CreateSessionResult struct {
	SessionID        string `json:"session_id"`
	JobDescriptionID string `json:"job_description_id"`
	ResumeID         string `json:"resume_id"`
}

type SubmitAnswerResult struct {
	AnswerID     string `json:"answer_id,omitempty"`
	FallbackMode bool   `json:"fallback_mode"`
}

// QuestionResult is the per-question slice of a session result view.
type QuestionResult struct {
	QuestionID      string   `json:"question_id"`
	Order           int      `json:"order"`
	QuestionText    string   `json:"question_text"`
	CandidateAnswer *string  `json:"candidate_answer,omitempty"`
	Score           *float64 `json:"score,omitempty"`
	Feedback        *string  `json:"feedback,omitempty"`
	Strengths       []string `json:"strengths,omitempty"`
	Improvements    []string `json:"improvements,omitempty"`
}

// SessionResult joins session, questions and answers with the derived
// aggregates. OverallScore and CompletionPercentage are recomputed from the
// per-answer scores; the stored session score is authoritative only for a
// COMPLETED session.
type SessionResult struct {
	SessionID            string           `json:"session_id"`
	Status               string           `json:"status"`
	JobRole              string           `json:"job_role"`
	OverallScore         float64          `json:"overall_score"`
	Grade                string           `json:"grade"`
	TotalQuestions       int              `json:"total_questions"`
	AnsweredQuestions    int              `json:"answered_questions"`
	CompletionPercentage int              `json:"completion_percentage"`
	Feedback             string           `json:"feedback"`
	FallbackMode         bool             `json:"fallback_mode"`
	StartedAt            time.Time        `json:"started_at"`
	EndedAt              *time.Time       `json:"ended_at,omitempty"`
	Questions            []QuestionResult `json:"questions"`
}

type CompletedSessionSummary struct {
	SessionID            string     `json:"session_id"`
	JobRole              string     `json:"job_role"`
	Score                float64    `json:"score"`
	Grade                string     `json:"grade"`
	CompletionPercentage int        `json:"completion_percentage"`
	StartedAt            time.Time  `json:"started_at"`
	EndedAt              *time.Time `json:"ended_at,omitempty"`
}

type SessionUsecase interface {
	CreateSession(ctx context.Context, userID string, input CreateSessionInput) (*CreateSessionResult, error)
	RegenerateQuestions(ctx context.Context, userID, sessionID string) ([]Question, error)
	GetSessionQuestions(ctx context.Context, userID, sessionID string) ([]Question, error)
	SubmitAnswer(ctx context.Context, userID, sessionID, questionID, answerText string) (*SubmitAnswerResult, error)
	FinishSession(ctx context.Context, userID, sessionID string) (*SessionResult, error)
	TerminateSession(ctx context.Context, userID, sessionID, reason string, warningCount int) error
	ReattemptSession(ctx context.Context, userID, originalSessionID string) (*CreateSessionResult, error)
	GetSessionResult(ctx context.Context, userID, sessionID string) (*SessionResult, error)
	ListCompletedSessions(ctx context.Context, userID string) ([]CompletedSessionSummary, error)
}
