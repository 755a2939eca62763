package domain

import "context"

// Evaluation is the structured scoring result for a single answer.
type Evaluation struct {
	Score        float64  `json:"score"` // 1-10
	Feedback     string   `json:"feedback"`
	Strengths    []string `json:"strengths"`
	Improvements []string `json:"improvements"`
}

// SessionContext is the metadata handed to the evaluation provider alongside
// each question/answer pair.
type SessionContext struct {
	JobRole         string
	JobDescription  string
	ExperienceLevel string
}

// EvaluationProvider is the AI boundary: question generation and answer
// scoring. Implementations may fail or return malformed output; callers must
// carry a deterministic fallback and never let a provider error abort a
// whole request.
type EvaluationProvider interface {
	GenerateQuestions(ctx context.Context, jobRole, jobDescription, experienceLevel string) ([]string, error)
	Evaluate(ctx context.Context, questionText, answerText string, info SessionContext) (*Evaluation, error)
}
