package postgres

import (
	"context"
	"errors"

	"go-interview-backend/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type questionRepo struct {
	db *pgxpool.Pool
}

// NewQuestionRepository creates a new question repository
func NewQuestionRepository(db *pgxpool.Pool) domain.QuestionRepository {
	return &questionRepo{db: db}
}

// CreateBatch inserts all questions of a session in one transaction so a
// partial failure never leaves a gap in the ordering.
func (r *questionRepo) CreateBatch(ctx context.Context, questions []domain.Question) error {
	if len(questions) == 0 {
		return nil
	}

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	query := `
		INSERT INTO questions (id, session_id, question_text, question_order, created_at)
		VALUES ($1, $2, $3, $4, $5)`
	for _, q := range questions {
		if _, err := tx.Exec(ctx, query, q.ID, q.SessionID, q.QuestionText, q.Order, q.CreatedAt); err != nil {
			return err
		}
	}
	return tx.Commit(ctx)
}

func (r *questionRepo) GetByID(ctx context.Context, id string) (*domain.Question, error) {
	query := `
		SELECT id, session_id, question_text, question_order, created_at
		FROM questions WHERE id = $1`

	var q domain.Question
	err := r.db.QueryRow(ctx, query, id).Scan(&q.ID, &q.SessionID, &q.QuestionText, &q.Order, &q.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &q, nil
}

func (r *questionRepo) GetBySessionID(ctx context.Context, sessionID string) ([]domain.Question, error) {
	query := `
		SELECT id, session_id, question_text, question_order, created_at
		FROM questions WHERE session_id = $1
		ORDER BY question_order ASC`

	rows, err := r.db.Query(ctx, query, sessionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var questions []domain.Question
	for rows.Next() {
		var q domain.Question
		if err := rows.Scan(&q.ID, &q.SessionID, &q.QuestionText, &q.Order, &q.CreatedAt); err != nil {
			return nil, err
		}
		questions = append(questions, q)
	}
	return questions, nil
}

func (r *questionRepo) CountBySessionID(ctx context.Context, sessionID string) (int, error) {
	query := `SELECT COUNT(*) FROM questions WHERE session_id = $1`
	var count int
	err := r.db.QueryRow(ctx, query, sessionID).Scan(&count)
	return count, err
}
