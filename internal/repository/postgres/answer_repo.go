package postgres

import (
	"context"
	"time"

	"go-interview-backend/internal/domain"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lib/pq"
)

type answerRepo struct {
	db *pgxpool.Pool
}

// NewAnswerRepository creates a new answer repository
func NewAnswerRepository(db *pgxpool.Pool) domain.AnswerRepository {
	return &answerRepo{db: db}
}

// Upsert relies on the (session_id, question_id) unique constraint: a
// resubmission overwrites candidate_answer and submitted_at, never creating
// a duplicate. The row id is returned so the caller always holds the
// canonical one.
func (r *answerRepo) Upsert(ctx context.Context, answer *domain.Answer) error {
	query := `
		INSERT INTO answers (id, session_id, question_id, candidate_answer, submitted_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (session_id, question_id)
		DO UPDATE SET candidate_answer = EXCLUDED.candidate_answer, submitted_at = EXCLUDED.submitted_at
		RETURNING id`

	if answer.SubmittedAt.IsZero() {
		answer.SubmittedAt = time.Now()
	}
	return r.db.QueryRow(ctx, query,
		answer.ID,
		answer.SessionID,
		answer.QuestionID,
		answer.CandidateAnswer,
		answer.SubmittedAt,
	).Scan(&answer.ID)
}

func (r *answerRepo) GetBySessionID(ctx context.Context, sessionID string) ([]domain.Answer, error) {
	query := `
		SELECT id, session_id, question_id, candidate_answer, score, feedback, strengths, improvements, submitted_at
		FROM answers WHERE session_id = $1
		ORDER BY submitted_at ASC`

	rows, err := r.db.Query(ctx, query, sessionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var answers []domain.Answer
	for rows.Next() {
		var a domain.Answer
		var strengths, improvements []string
		if err := rows.Scan(
			&a.ID, &a.SessionID, &a.QuestionID, &a.CandidateAnswer,
			&a.Score, &a.Feedback, pq.Array(&strengths), pq.Array(&improvements),
			&a.SubmittedAt,
		); err != nil {
			return nil, err
		}
		a.Strengths = strengths
		a.Improvements = improvements
		answers = append(answers, a)
	}
	return answers, nil
}

// UpdateEvaluation writes one question's scoring result in a single
// statement, keeping each evaluate-then-persist step atomic on its own.
func (r *answerRepo) UpdateEvaluation(ctx context.Context, id string, score float64, feedback string, strengths, improvements []string) error {
	query := `
		UPDATE answers
		SET score = $2, feedback = $3, strengths = $4, improvements = $5
		WHERE id = $1`

	result, err := r.db.Exec(ctx, query, id, score, feedback, pq.Array(strengths), pq.Array(improvements))
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
