package postgres

import (
	"context"
	"errors"
	"time"

	"go-interview-backend/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lib/pq"
)

type jobDescriptionRepo struct {
	db *pgxpool.Pool
}

// NewJobDescriptionRepository creates a new job description repository
func NewJobDescriptionRepository(db *pgxpool.Pool) domain.JobDescriptionRepository {
	return &jobDescriptionRepo{db: db}
}

func (r *jobDescriptionRepo) Create(ctx context.Context, jd *domain.JobDescription) error {
	query := `
		INSERT INTO job_descriptions (id, user_id, raw_text, title, skills_required, experience_required, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`

	if jd.CreatedAt.IsZero() {
		jd.CreatedAt = time.Now()
	}
	_, err := r.db.Exec(ctx, query,
		jd.ID,
		jd.UserID,
		jd.RawText,
		jd.Parsed.Title,
		pq.Array(jd.Parsed.SkillsRequired),
		jd.Parsed.ExperienceRequired,
		jd.CreatedAt,
	)
	return err
}

func (r *jobDescriptionRepo) GetByID(ctx context.Context, id string) (*domain.JobDescription, error) {
	query := `
		SELECT id, user_id, raw_text, title, skills_required, experience_required, created_at
		FROM job_descriptions WHERE id = $1`

	jd, err := scanJobDescription(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return jd, nil
}

func (r *jobDescriptionRepo) GetByUserID(ctx context.Context, userID string) ([]domain.JobDescription, error) {
	query := `
		SELECT id, user_id, raw_text, title, skills_required, experience_required, created_at
		FROM job_descriptions WHERE user_id = $1
		ORDER BY created_at DESC`

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var jds []domain.JobDescription
	for rows.Next() {
		jd, err := scanJobDescription(rows)
		if err != nil {
			return nil, err
		}
		jds = append(jds, *jd)
	}
	return jds, nil
}

func scanJobDescription(row pgx.Row) (*domain.JobDescription, error) {
	var jd domain.JobDescription
	var skills []string
	err := row.Scan(
		&jd.ID, &jd.UserID, &jd.RawText, &jd.Parsed.Title,
		pq.Array(&skills), &jd.Parsed.ExperienceRequired, &jd.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	jd.Parsed.SkillsRequired = skills
	return &jd, nil
}
