package postgres

import (
	"context"
	"errors"
	"time"

	"go-interview-backend/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type sessionRepo struct {
	db *pgxpool.Pool
}

// NewSessionRepository creates a new interview session repository
func NewSessionRepository(db *pgxpool.Pool) domain.SessionRepository {
	return &sessionRepo{db: db}
}

func (r *sessionRepo) Create(ctx context.Context, session *domain.InterviewSession) error {
	query := `
		INSERT INTO interview_sessions (id, user_id, resume_id, job_description_id, status, started_at)
		VALUES ($1, $2, $3, $4, $5, $6)`

	_, err := r.db.Exec(ctx, query,
		session.ID,
		session.UserID,
		session.ResumeID,
		session.JobDescriptionID,
		session.Status,
		session.StartedAt,
	)
	return err
}

func (r *sessionRepo) GetByID(ctx context.Context, id string) (*domain.InterviewSession, error) {
	query := `
		SELECT s.id, s.user_id, s.resume_id, s.job_description_id, s.status,
			s.score, s.feedback, s.started_at, s.ended_at,
			jd.title as job_role
		FROM interview_sessions s
		LEFT JOIN job_descriptions jd ON s.job_description_id = jd.id
		WHERE s.id = $1`

	session, err := scanSession(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return session, nil
}

// GetByUserID returns all of the user's sessions newest first, with the job
// role joined in for list views.
func (r *sessionRepo) GetByUserID(ctx context.Context, userID string) ([]domain.InterviewSession, error) {
	query := `
		SELECT s.id, s.user_id, s.resume_id, s.job_description_id, s.status,
			s.score, s.feedback, s.started_at, s.ended_at,
			jd.title as job_role
		FROM interview_sessions s
		LEFT JOIN job_descriptions jd ON s.job_description_id = jd.id
		WHERE s.user_id = $1
		ORDER BY s.started_at DESC`

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sessions []domain.InterviewSession
	for rows.Next() {
		session, err := scanSession(rows)
		if err != nil {
			return nil, err
		}
		sessions = append(sessions, *session)
	}
	return sessions, nil
}

// Finish stores the final score/feedback and completes the session. Only an
// ACTIVE session can be finished; the status predicate makes the terminal
// states unreachable for further transitions.
func (r *sessionRepo) Finish(ctx context.Context, id string, score float64, feedback string, endedAt time.Time) error {
	query := `
		UPDATE interview_sessions
		SET status = $2, score = $3, feedback = $4, ended_at = $5
		WHERE id = $1 AND status = $6`

	result, err := r.db.Exec(ctx, query, id, domain.SessionStatusCompleted, score, feedback, endedAt, domain.SessionStatusActive)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *sessionRepo) Terminate(ctx context.Context, id string, feedback string, endedAt time.Time) error {
	query := `
		UPDATE interview_sessions
		SET status = $2, feedback = $3, ended_at = $4
		WHERE id = $1 AND status = $5`

	result, err := r.db.Exec(ctx, query, id, domain.SessionStatusAbandoned, feedback, endedAt, domain.SessionStatusActive)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func scanSession(row pgx.Row) (*domain.InterviewSession, error) {
	var session domain.InterviewSession
	err := row.Scan(
		&session.ID, &session.UserID, &session.ResumeID, &session.JobDescriptionID,
		&session.Status, &session.Score, &session.Feedback,
		&session.StartedAt, &session.EndedAt, &session.JobRole,
	)
	if err != nil {
		return nil, err
	}
	return &session, nil
}
