package postgres

import (
	"context"
	"errors"

	"go-interview-backend/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type goalRepo struct {
	db *pgxpool.Pool
}

// NewGoalRepository creates a new goal repository
func NewGoalRepository(db *pgxpool.Pool) domain.GoalRepository {
	return &goalRepo{db: db}
}

func (r *goalRepo) Create(ctx context.Context, goal *domain.Goal) error {
	query := `
		INSERT INTO goals (id, user_id, title, description, category, target_date, completed, progress, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

	_, err := r.db.Exec(ctx, query,
		goal.ID,
		goal.UserID,
		goal.Title,
		goal.Description,
		goal.Category,
		goal.TargetDate,
		goal.Completed,
		goal.Progress,
		goal.CreatedAt,
		goal.UpdatedAt,
	)
	return err
}

func (r *goalRepo) GetByID(ctx context.Context, id string) (*domain.Goal, error) {
	query := `
		SELECT id, user_id, title, description, category, target_date, completed, progress, created_at, updated_at
		FROM goals WHERE id = $1`

	var g domain.Goal
	err := r.db.QueryRow(ctx, query, id).Scan(
		&g.ID, &g.UserID, &g.Title, &g.Description, &g.Category,
		&g.TargetDate, &g.Completed, &g.Progress, &g.CreatedAt, &g.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &g, nil
}

func (r *goalRepo) GetByUserID(ctx context.Context, userID string) ([]domain.Goal, error) {
	query := `
		SELECT id, user_id, title, description, category, target_date, completed, progress, created_at, updated_at
		FROM goals WHERE user_id = $1
		ORDER BY target_date ASC`

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var goals []domain.Goal
	for rows.Next() {
		var g domain.Goal
		if err := rows.Scan(
			&g.ID, &g.UserID, &g.Title, &g.Description, &g.Category,
			&g.TargetDate, &g.Completed, &g.Progress, &g.CreatedAt, &g.UpdatedAt,
		); err != nil {
			return nil, err
		}
		goals = append(goals, g)
	}
	return goals, nil
}

func (r *goalRepo) Update(ctx context.Context, goal *domain.Goal) error {
	query := `
		UPDATE goals
		SET title = $2, description = $3, category = $4, target_date = $5,
			completed = $6, progress = $7, updated_at = $8
		WHERE id = $1`

	result, err := r.db.Exec(ctx, query,
		goal.ID, goal.Title, goal.Description, goal.Category,
		goal.TargetDate, goal.Completed, goal.Progress, goal.UpdatedAt,
	)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *goalRepo) Delete(ctx context.Context, id string) error {
	result, err := r.db.Exec(ctx, `DELETE FROM goals WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
