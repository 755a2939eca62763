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

type resumeRepo struct {
	db *pgxpool.Pool
}

// NewResumeRepository creates a new resume repository
func NewResumeRepository(db *pgxpool.Pool) domain.ResumeRepository {
	return &resumeRepo{db: db}
}

func (r *resumeRepo) Create(ctx context.Context, resume *domain.Resume) error {
	query := `
		INSERT INTO resumes (id, user_id, file_name, file_path, skills, experience, education, summary, overall_score, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

	if resume.CreatedAt.IsZero() {
		resume.CreatedAt = time.Now()
	}
	_, err := r.db.Exec(ctx, query,
		resume.ID,
		resume.UserID,
		resume.FileName,
		resume.FilePath,
		pq.Array(resume.Parsed.Skills),
		pq.Array(resume.Parsed.Experience),
		pq.Array(resume.Parsed.Education),
		resume.Parsed.Summary,
		resume.Parsed.OverallScore,
		resume.CreatedAt,
	)
	return err
}

func (r *resumeRepo) GetByID(ctx context.Context, id string) (*domain.Resume, error) {
	query := `
		SELECT id, user_id, file_name, file_path, skills, experience, education, summary, overall_score, created_at
		FROM resumes WHERE id = $1`

	resume, err := scanResume(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return resume, nil
}

func (r *resumeRepo) GetByUserID(ctx context.Context, userID string) ([]domain.Resume, error) {
	query := `
		SELECT id, user_id, file_name, file_path, skills, experience, education, summary, overall_score, created_at
		FROM resumes WHERE user_id = $1
		ORDER BY created_at DESC`

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var resumes []domain.Resume
	for rows.Next() {
		resume, err := scanResume(rows)
		if err != nil {
			return nil, err
		}
		resumes = append(resumes, *resume)
	}
	return resumes, nil
}

func scanResume(row pgx.Row) (*domain.Resume, error) {
	var resume domain.Resume
	var skills, experience, education []string
	err := row.Scan(
		&resume.ID, &resume.UserID, &resume.FileName, &resume.FilePath,
		pq.Array(&skills), pq.Array(&experience), pq.Array(&education),
		&resume.Parsed.Summary, &resume.Parsed.OverallScore, &resume.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	resume.Parsed.Skills = skills
	resume.Parsed.Experience = experience
	resume.Parsed.Education = education
	return &resume, nil
}
