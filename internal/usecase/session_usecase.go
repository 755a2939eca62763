package usecase

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"go-interview-backend/internal/domain"
	"go-interview-backend/pkg/apperror"
	"go-interview-backend/pkg/logger"

	"github.com/google/uuid"
)

// questionGenTimeout bounds the background generation call kicked off by
// CreateSession. The request itself never waits on it.
const questionGenTimeout = 2 * time.Minute

type sessionUsecase struct {
	sessionRepo  domain.SessionRepository
	questionRepo domain.QuestionRepository
	answerRepo   domain.AnswerRepository
	jdRepo       domain.JobDescriptionRepository
	resumeRepo   domain.ResumeRepository
	userRepo     domain.UserRepository
	provider     domain.EvaluationProvider
	answerCache  domain.AnswerCache
}

// NewSessionUsecase creates the session lifecycle usecase. The answer cache
// is injected per process; it is the only in-memory state this usecase holds.
func NewSessionUsecase(
	sessionRepo domain.SessionRepository,
	questionRepo domain.QuestionRepository,
	answerRepo domain.AnswerRepository,
	jdRepo domain.JobDescriptionRepository,
	resumeRepo domain.ResumeRepository,
	userRepo domain.UserRepository,
	provider domain.EvaluationProvider,
	answerCache domain.AnswerCache,
) domain.SessionUsecase {
	return &sessionUsecase{
		sessionRepo:  sessionRepo,
		questionRepo: questionRepo,
		answerRepo:   answerRepo,
		jdRepo:       jdRepo,
		resumeRepo:   resumeRepo,
		userRepo:     userRepo,
		provider:     provider,
		answerCache:  answerCache,
	}
}

// CreateSession validates the setup form, resolves the resume, derives a job
// description record and opens a new ACTIVE session. Question generation runs
// in the background; a generation failure leaves the session with zero
// questions and is recoverable through RegenerateQuestions.
func (uc *sessionUsecase) CreateSession(ctx context.Context, userID string, input domain.CreateSessionInput) (*domain.CreateSessionResult, error) {
	// 1. Validate input
	if strings.TrimSpace(input.JobRole) == "" {
		return nil, apperror.BadRequest("Job role is required")
	}
	if strings.TrimSpace(input.JobDescription) == "" {
		return nil, apperror.BadRequest("Job description is required")
	}
	if input.ExperienceYears < 0 {
		return nil, apperror.BadRequest("Experience years must be a non-negative number")
	}

	// 2. Resolve resume: reuse an owned one or create a placeholder
	var resumeID string
	if input.ResumeID != nil && *input.ResumeID != "" {
		resume, err := uc.resumeRepo.GetByID(ctx, *input.ResumeID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return nil, apperror.NotFound("Resume not found")
			}
			return nil, apperror.Internal(err)
		}
		if resume.UserID != userID {
			// Not-owned surfaces identically to missing
			return nil, apperror.NotFound("Resume not found")
		}
		resumeID = resume.ID
	} else {
		placeholder := &domain.Resume{
			ID:       uuid.NewString(),
			UserID:   userID,
			FileName: "no-resume-provided",
			Parsed:   domain.ResumeParsedData{},
		}
		if err := uc.resumeRepo.Create(ctx, placeholder); err != nil {
			return nil, apperror.Internal(err)
		}
		resumeID = placeholder.ID
	}

	// 3. Create the job description record with naively tokenized skills
	jd := &domain.JobDescription{
		ID:      uuid.NewString(),
		UserID:  userID,
		RawText: input.JobDescription,
		Parsed: domain.JobDescriptionData{
			Title:              input.JobRole,
			SkillsRequired:     tokenizeSkills(input.JobDescription),
			ExperienceRequired: fmt.Sprintf("%d years", input.ExperienceYears),
		},
	}
	if err := uc.jdRepo.Create(ctx, jd); err != nil {
		return nil, apperror.Internal(err)
	}

	// 4. Open the session
	session := &domain.InterviewSession{
		ID:               uuid.NewString(),
		UserID:           userID,
		ResumeID:         resumeID,
		JobDescriptionID: jd.ID,
		Status:           domain.SessionStatusActive,
		StartedAt:        time.Now(),
	}
	if err := uc.sessionRepo.Create(ctx, session); err != nil {
		return nil, apperror.Internal(err)
	}

	// 5. Generate questions in the background. Failure must not fail session
	// creation — the session simply starts with zero questions.
	experienceLevel := jd.Parsed.ExperienceRequired
	go func() {
		genCtx, cancel := context.WithTimeout(context.Background(), questionGenTimeout)
		defer cancel()
		if err := uc.generateQuestions(genCtx, session.ID, input.JobRole, input.JobDescription, experienceLevel); err != nil {
			logger.Log.Error("Question generation failed",
				"session_id", session.ID, "error", err)
		}
	}()

	return &domain.CreateSessionResult{
		SessionID:        session.ID,
		JobDescriptionID: jd.ID,
		ResumeID:         resumeID,
	}, nil
}

// generateQuestions asks the provider for question texts and persists them
// with 1-based contiguous ordering. The provider decides count and content;
// this method's only contract is to preserve order.
func (uc *sessionUsecase) generateQuestions(ctx context.Context, sessionID, jobRole, jobDescription, experienceLevel string) error {
	texts, err := uc.provider.GenerateQuestions(ctx, jobRole, jobDescription, experienceLevel)
	if err != nil {
		return err
	}
	if len(texts) == 0 {
		return errors.New("provider returned no questions")
	}

	questions := make([]domain.Question, 0, len(texts))
	now := time.Now()
	for i, text := range texts {
		questions = append(questions, domain.Question{
			ID:           uuid.NewString(),
			SessionID:    sessionID,
			QuestionText: text,
			Order:        i + 1,
			CreatedAt:    now,
		})
	}
	return uc.questionRepo.CreateBatch(ctx, questions)
}

// RegenerateQuestions is the explicit recovery call for a session whose
// background generation produced nothing.
func (uc *sessionUsecase) RegenerateQuestions(ctx context.Context, userID, sessionID string) ([]domain.Question, error) {
	session, err := uc.getOwnedSession(ctx, userID, sessionID)
	if err != nil {
		return nil, err
	}
	if session.Status != domain.SessionStatusActive {
		return nil, apperror.BadRequest("Session has already ended")
	}

	count, err := uc.questionRepo.CountBySessionID(ctx, sessionID)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if count > 0 {
		return nil, apperror.BadRequest("Questions already exist for this session")
	}

	jd, err := uc.jdRepo.GetByID(ctx, session.JobDescriptionID)
	if err != nil {
		return nil, apperror.Internal(err)
	}

	if err := uc.generateQuestions(ctx, sessionID, jd.Parsed.Title, jd.RawText, jd.Parsed.ExperienceRequired); err != nil {
		return nil, apperror.New(503, "Question generation is currently unavailable", err)
	}
	questions, err := uc.questionRepo.GetBySessionID(ctx, sessionID)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return questions, nil
}

// GetSessionQuestions returns the ordered question list for an owned session.
func (uc *sessionUsecase) GetSessionQuestions(ctx context.Context, userID, sessionID string) ([]domain.Question, error) {
	if _, err := uc.getOwnedSession(ctx, userID, sessionID); err != nil {
		return nil, err
	}
	questions, err := uc.questionRepo.GetBySessionID(ctx, sessionID)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return questions, nil
}

// SubmitAnswer upserts the candidate's answer for one question. When durable
// storage is unreachable the answer goes to the process-local fallback cache
// instead and the caller is told fallback mode was used — availability over
// durability, scoped to this running process.
func (uc *sessionUsecase) SubmitAnswer(ctx context.Context, userID, sessionID, questionID, answerText string) (*domain.SubmitAnswerResult, error) {
	if strings.TrimSpace(answerText) == "" {
		return nil, apperror.BadRequest("Answer text is required")
	}

	// 1. Authorize against the owning session
	session, err := uc.sessionRepo.GetByID(ctx, sessionID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.NotFound("Session not found")
		}
		// Store unreachable: ownership cannot be verified, accept into the
		// fallback cache rather than failing the candidate mid-interview.
		return uc.submitToCache(sessionID, questionID, answerText, err), nil
	}
	if session.UserID != userID {
		return nil, apperror.NotFound("Session not found")
	}
	if session.Status != domain.SessionStatusActive {
		return nil, apperror.BadRequest("Session has already ended")
	}

	// 2. Question must belong to this session
	question, err := uc.questionRepo.GetByID(ctx, questionID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.NotFound("Question not found")
		}
		return uc.submitToCache(sessionID, questionID, answerText, err), nil
	}
	if question.SessionID != sessionID {
		return nil, apperror.NotFound("Question not found")
	}

	// 3. Upsert: a resubmission overwrites text and timestamp
	answer := &domain.Answer{
		ID:              uuid.NewString(),
		SessionID:       sessionID,
		QuestionID:      questionID,
		CandidateAnswer: answerText,
		SubmittedAt:     time.Now(),
	}
	if err := uc.answerRepo.Upsert(ctx, answer); err != nil {
		return uc.submitToCache(sessionID, questionID, answerText, err), nil
	}

	return &domain.SubmitAnswerResult{AnswerID: answer.ID, FallbackMode: false}, nil
}

// submitToCache writes the answer to the in-process fallback store.
// Last-writer-wins per (session, question) key.
func (uc *sessionUsecase) submitToCache(sessionID, questionID, answerText string, cause error) *domain.SubmitAnswerResult {
	logger.Log.Warn("Persistence unavailable, storing answer in fallback cache",
		"session_id", sessionID, "question_id", questionID, "error", cause)
	uc.answerCache.Set(domain.CachedAnswer{
		SessionID:       sessionID,
		QuestionID:      questionID,
		CandidateAnswer: answerText,
		SubmittedAt:     time.Now(),
	})
	return &domain.SubmitAnswerResult{FallbackMode: true}
}

// FinishSession scores every answered question, persists the evaluations,
// stores the aggregate score and moves the session to COMPLETED. A provider
// failure on one question never aborts the call: that question gets a
// deterministic length-based fallback score instead.
func (uc *sessionUsecase) FinishSession(ctx context.Context, userID, sessionID string) (*domain.SessionResult, error) {
	// 1. Authorization and state guard
	session, err := uc.getOwnedSession(ctx, userID, sessionID)
	if err != nil {
		return nil, err
	}
	if session.Status != domain.SessionStatusActive {
		return nil, apperror.BadRequest("Session has already ended")
	}

	jd, err := uc.jdRepo.GetByID(ctx, session.JobDescriptionID)
	if err != nil {
		return nil, apperror.Internal(err)
	}

	questions, err := uc.questionRepo.GetBySessionID(ctx, sessionID)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	answers, err := uc.answerRepo.GetBySessionID(ctx, sessionID)
	if err != nil {
		return nil, apperror.Internal(err)
	}

	// 2. Merge fallback-cached answers collected while the store was down.
	// Each one is re-tried against durable storage first; what still cannot
	// be persisted is scored in memory only.
	fallbackMode := false
	byQuestion := make(map[string]*domain.Answer, len(answers))
	for i := range answers {
		byQuestion[answers[i].QuestionID] = &answers[i]
	}
	for _, cached := range uc.answerCache.GetBySession(sessionID) {
		if existing, ok := byQuestion[cached.QuestionID]; ok && !existing.SubmittedAt.Before(cached.SubmittedAt) {
			uc.answerCache.Delete(sessionID, cached.QuestionID)
			continue
		}
		answer := &domain.Answer{
			ID:              uuid.NewString(),
			SessionID:       sessionID,
			QuestionID:      cached.QuestionID,
			CandidateAnswer: cached.CandidateAnswer,
			SubmittedAt:     cached.SubmittedAt,
		}
		if err := uc.answerRepo.Upsert(ctx, answer); err != nil {
			fallbackMode = true
			answer.ID = "" // in-memory only, nothing durable to update later
		} else {
			uc.answerCache.Delete(sessionID, cached.QuestionID)
		}
		byQuestion[cached.QuestionID] = answer
	}

	if len(byQuestion) == 0 {
		return nil, apperror.BadRequest("No answers submitted for this session")
	}

	// 3. Evaluate each answered question. Evaluate-then-persist is
	// independently atomic per question; a caller disconnect mid-loop leaves
	// already-persisted evaluations intact.
	info := domain.SessionContext{
		JobRole:         jd.Parsed.Title,
		JobDescription:  jd.RawText,
		ExperienceLevel: jd.Parsed.ExperienceRequired,
	}
	var scores []float64
	results := make([]domain.QuestionResult, 0, len(questions))
	for _, q := range questions {
		qr := domain.QuestionResult{
			QuestionID:   q.ID,
			Order:        q.Order,
			QuestionText: q.QuestionText,
		}
		answer, ok := byQuestion[q.ID]
		if !ok {
			results = append(results, qr)
			continue
		}

		eval := uc.evaluateAnswer(ctx, q.QuestionText, answer.CandidateAnswer, info)
		scores = append(scores, eval.Score)

		if answer.ID != "" {
			if err := uc.answerRepo.UpdateEvaluation(ctx, answer.ID, eval.Score, eval.Feedback, eval.Strengths, eval.Improvements); err != nil {
				logger.Log.Error("Failed to persist evaluation",
					"answer_id", answer.ID, "error", err)
				fallbackMode = true
			}
		}

		qr.CandidateAnswer = &answer.CandidateAnswer
		qr.Score = &eval.Score
		qr.Feedback = &eval.Feedback
		qr.Strengths = eval.Strengths
		qr.Improvements = eval.Improvements
		results = append(results, qr)
	}

	// 4. Derive aggregates: the mean runs over scored answers only
	answered := len(scores)
	total := len(questions)
	overall := overallScore(scores)
	completion := completionPercentage(answered, total)
	grade := GradeForScore(overall)
	summary := fmt.Sprintf("Answered %d of %d questions for the %s role. Overall score %.1f/10 (%s).",
		answered, total, jd.Parsed.Title, roundScore(overall), grade)

	// 5. Store the unrounded score and complete the session
	now := time.Now()
	if err := uc.sessionRepo.Finish(ctx, sessionID, overall, summary, now); err != nil {
		return nil, apperror.Internal(err)
	}

	return &domain.SessionResult{
		SessionID:            sessionID,
		Status:               domain.SessionStatusCompleted,
		JobRole:              jd.Parsed.Title,
		OverallScore:         roundScore(overall),
		Grade:                grade,
		TotalQuestions:       total,
		AnsweredQuestions:    answered,
		CompletionPercentage: completion,
		Feedback:             summary,
		FallbackMode:         fallbackMode,
		StartedAt:            session.StartedAt,
		EndedAt:              &now,
		Questions:            results,
	}, nil
}

// evaluateAnswer calls the provider and falls back to the deterministic
// length-band score when it fails or returns garbage.
func (uc *sessionUsecase) evaluateAnswer(ctx context.Context, questionText, answerText string, info domain.SessionContext) domain.Evaluation {
	eval, err := uc.provider.Evaluate(ctx, questionText, answerText, info)
	if err == nil && eval != nil && eval.Score >= 1 && eval.Score <= 10 {
		return *eval
	}
	if err != nil {
		logger.Log.Warn("Evaluation provider failed, using fallback score", "error", err)
	}
	return domain.Evaluation{
		Score:        fallbackScore(answerText),
		Feedback:     "Automated evaluation was unavailable for this answer. The score is estimated from answer completeness.",
		Strengths:    []string{"Answer was submitted"},
		Improvements: []string{"Retry the session later for detailed AI feedback"},
	}
}

// TerminateSession abandons an active session, recording why and how many
// proctoring warnings preceded it. Terminal sessions cannot be terminated
// again.
func (uc *sessionUsecase) TerminateSession(ctx context.Context, userID, sessionID, reason string, warningCount int) error {
	session, err := uc.getOwnedSession(ctx, userID, sessionID)
	if err != nil {
		return err
	}
	if session.Status != domain.SessionStatusActive {
		return apperror.BadRequest("Session has already ended")
	}

	if reason == "" {
		reason = "terminated by user"
	}
	feedback := fmt.Sprintf("Session terminated: %s (warnings: %d)", reason, warningCount)
	if err := uc.sessionRepo.Terminate(ctx, sessionID, feedback, time.Now()); err != nil {
		return apperror.Internal(err)
	}
	return nil
}

// ReattemptSession opens a fresh ACTIVE session against the same resume and
// job description, copying every question verbatim (new ids, same text and
// order) with no answers, and bumps the user's attempt counter.
func (uc *sessionUsecase) ReattemptSession(ctx context.Context, userID, originalSessionID string) (*domain.CreateSessionResult, error) {
	original, err := uc.getOwnedSession(ctx, userID, originalSessionID)
	if err != nil {
		return nil, err
	}

	questions, err := uc.questionRepo.GetBySessionID(ctx, originalSessionID)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if len(questions) == 0 {
		return nil, apperror.BadRequest("Original session has no questions to re-attempt")
	}

	session := &domain.InterviewSession{
		ID:               uuid.NewString(),
		UserID:           userID,
		ResumeID:         original.ResumeID,
		JobDescriptionID: original.JobDescriptionID,
		Status:           domain.SessionStatusActive,
		StartedAt:        time.Now(),
	}
	if err := uc.sessionRepo.Create(ctx, session); err != nil {
		return nil, apperror.Internal(err)
	}

	copies := make([]domain.Question, 0, len(questions))
	now := time.Now()
	for _, q := range questions {
		copies = append(copies, domain.Question{
			ID:           uuid.NewString(),
			SessionID:    session.ID,
			QuestionText: q.QuestionText,
			Order:        q.Order,
			CreatedAt:    now,
		})
	}
	if err := uc.questionRepo.CreateBatch(ctx, copies); err != nil {
		return nil, apperror.Internal(err)
	}

	if err := uc.userRepo.IncrementInterviewAttempts(ctx, userID); err != nil {
		// Counter drift is not worth failing the re-attempt over
		logger.Log.Error("Failed to increment interview attempts", "user_id", userID, "error", err)
	}

	return &domain.CreateSessionResult{
		SessionID:        session.ID,
		JobDescriptionID: original.JobDescriptionID,
		ResumeID:         original.ResumeID,
	}, nil
}

// GetSessionResult is the read-only projection over one session. Aggregates
// are recomputed from the per-answer scores; the stored session score is
// trusted only once the session is COMPLETED.
func (uc *sessionUsecase) GetSessionResult(ctx context.Context, userID, sessionID string) (*domain.SessionResult, error) {
	session, err := uc.getOwnedSession(ctx, userID, sessionID)
	if err != nil {
		return nil, err
	}
	jd, err := uc.jdRepo.GetByID(ctx, session.JobDescriptionID)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	questions, err := uc.questionRepo.GetBySessionID(ctx, sessionID)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	answers, err := uc.answerRepo.GetBySessionID(ctx, sessionID)
	if err != nil {
		return nil, apperror.Internal(err)
	}

	byQuestion := make(map[string]*domain.Answer, len(answers))
	for i := range answers {
		byQuestion[answers[i].QuestionID] = &answers[i]
	}

	// Fold in fallback-cached answers so an in-flight degraded session still
	// shows what the candidate submitted.
	fallbackMode := false
	for _, cached := range uc.answerCache.GetBySession(sessionID) {
		if _, ok := byQuestion[cached.QuestionID]; ok {
			continue
		}
		fallbackMode = true
		byQuestion[cached.QuestionID] = &domain.Answer{
			SessionID:       sessionID,
			QuestionID:      cached.QuestionID,
			CandidateAnswer: cached.CandidateAnswer,
			SubmittedAt:     cached.SubmittedAt,
		}
	}

	var scores []float64
	answered := 0
	results := make([]domain.QuestionResult, 0, len(questions))
	for _, q := range questions {
		qr := domain.QuestionResult{
			QuestionID:   q.ID,
			Order:        q.Order,
			QuestionText: q.QuestionText,
		}
		if answer, ok := byQuestion[q.ID]; ok {
			answered++
			qr.CandidateAnswer = &answer.CandidateAnswer
			qr.Score = answer.Score
			qr.Feedback = answer.Feedback
			qr.Strengths = answer.Strengths
			qr.Improvements = answer.Improvements
			if answer.Score != nil {
				scores = append(scores, *answer.Score)
			}
		}
		results = append(results, qr)
	}
	sort.Slice(results, func(i, j int) bool { return results[i].Order < results[j].Order })

	overall := overallScore(scores)
	if session.Status == domain.SessionStatusCompleted && session.Score != nil {
		overall = *session.Score
	}

	feedback := ""
	if session.Feedback != nil {
		feedback = *session.Feedback
	}

	return &domain.SessionResult{
		SessionID:            sessionID,
		Status:               session.Status,
		JobRole:              jd.Parsed.Title,
		OverallScore:         roundScore(overall),
		Grade:                GradeForScore(overall),
		TotalQuestions:       len(questions),
		AnsweredQuestions:    answered,
		CompletionPercentage: completionPercentage(answered, len(questions)),
		Feedback:             feedback,
		FallbackMode:         fallbackMode,
		StartedAt:            session.StartedAt,
		EndedAt:              session.EndedAt,
		Questions:            results,
	}, nil
}

// ListCompletedSessions summarizes every COMPLETED session for the user,
// newest first. Scores come from the stored aggregate (authoritative for
// completed sessions); completion is recomputed from answers.
func (uc *sessionUsecase) ListCompletedSessions(ctx context.Context, userID string) ([]domain.CompletedSessionSummary, error) {
	sessions, err := uc.sessionRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, apperror.Internal(err)
	}

	summaries := make([]domain.CompletedSessionSummary, 0, len(sessions))
	for _, s := range sessions {
		if s.Status != domain.SessionStatusCompleted {
			continue
		}
		total, err := uc.questionRepo.CountBySessionID(ctx, s.ID)
		if err != nil {
			return nil, apperror.Internal(err)
		}
		answers, err := uc.answerRepo.GetBySessionID(ctx, s.ID)
		if err != nil {
			return nil, apperror.Internal(err)
		}

		score := 0.0
		if s.Score != nil {
			score = *s.Score
		}
		jobRole := ""
		if s.JobRole != nil {
			jobRole = *s.JobRole
		}
		summaries = append(summaries, domain.CompletedSessionSummary{
			SessionID:            s.ID,
			JobRole:              jobRole,
			Score:                roundScore(score),
			Grade:                GradeForScore(score),
			CompletionPercentage: completionPercentage(len(answers), total),
			StartedAt:            s.StartedAt,
			EndedAt:              s.EndedAt,
		})
	}
	return summaries, nil
}

// getOwnedSession loads a session and enforces ownership. Missing and
// not-owned resolve to the same NotFound so resource existence never leaks.
func (uc *sessionUsecase) getOwnedSession(ctx context.Context, userID, sessionID string) (*domain.InterviewSession, error) {
	session, err := uc.sessionRepo.GetByID(ctx, sessionID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.NotFound("Session not found")
		}
		return nil, apperror.Internal(err)
	}
	if session.UserID != userID {
		return nil, apperror.NotFound("Session not found")
	}
	return session, nil
}

// tokenizeSkills splits the raw description on commas to approximate a
// required-skills list. Presentation-level only; scoring never depends on it.
func tokenizeSkills(text string) []string {
	parts := strings.Split(text, ",")
	skills := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" || len(p) > 60 {
			continue
		}
		skills = append(skills, p)
	}
	if len(skills) > 20 {
		skills = skills[:20]
	}
	return skills
}
