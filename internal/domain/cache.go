package domain

import "time"

// CachedAnswer is an answer held in the process-local fallback store while
// durable storage is unreachable. It does not survive a restart and is never
// visible to analytics.
type CachedAnswer struct {
	SessionID       string
	QuestionID      string
	CandidateAnswer string
	SubmittedAt     time.Time
}

// AnswerCache is the injected fallback answer store. Writes are
// last-writer-wins per (session, question) key; keys are independent, so no
// cross-key locking is required.
type AnswerCache interface {
	Set(answer CachedAnswer)
	Get(sessionID, questionID string) (CachedAnswer, bool)
	GetBySession(sessionID string) []CachedAnswer
	Delete(sessionID, questionID string)
}
