package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"go-interview-backend/internal/domain"
	"go-interview-backend/pkg/apperror"

	"github.com/google/uuid"
)

type goalUsecase struct {
	goalRepo domain.GoalRepository
}

func NewGoalUsecase(goalRepo domain.GoalRepository) domain.GoalUsecase {
	return &goalUsecase{goalRepo: goalRepo}
}

// CreateGoal creates a goal in the given category. Category keys come from a
// fixed dictionary; an unknown key is a client error, never a silent default.
func (uc *goalUsecase) CreateGoal(ctx context.Context, userID, title, description, category string, targetDate time.Time) (*domain.Goal, error) {
	if strings.TrimSpace(title) == "" {
		return nil, apperror.BadRequest("Goal title is required")
	}
	mapped, err := mapGoalCategory(category)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	goal := &domain.Goal{
		ID:          uuid.NewString(),
		UserID:      userID,
		Title:       title,
		Description: description,
		Category:    mapped,
		TargetDate:  targetDate,
		Completed:   false,
		Progress:    0,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.goalRepo.Create(ctx, goal); err != nil {
		return nil, apperror.Internal(err)
	}
	return goal, nil
}

func (uc *goalUsecase) ListGoals(ctx context.Context, userID string) ([]domain.Goal, error) {
	goals, err := uc.goalRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return goals, nil
}

// UpdateGoal applies the provided fields and enforces the completed/progress
// invariant in both directions:
//   - progress >= 100 forces completed = true (and clamps progress to 100)
//   - completed = true forces progress = 100
//   - completed = false forces progress = 0
func (uc *goalUsecase) UpdateGoal(ctx context.Context, userID, goalID string, input domain.GoalUpdateInput) (*domain.Goal, error) {
	goal, err := uc.getOwnedGoal(ctx, userID, goalID)
	if err != nil {
		return nil, err
	}

	if input.Title != nil {
		if strings.TrimSpace(*input.Title) == "" {
			return nil, apperror.BadRequest("Goal title is required")
		}
		goal.Title = *input.Title
	}
	if input.Description != nil {
		goal.Description = *input.Description
	}
	if input.Category != nil {
		mapped, err := mapGoalCategory(*input.Category)
		if err != nil {
			return nil, err
		}
		goal.Category = mapped
	}
	if input.TargetDate != nil {
		goal.TargetDate = *input.TargetDate
	}
	if input.Progress != nil {
		if *input.Progress < 0 {
			return nil, apperror.BadRequest("Progress cannot be negative")
		}
		goal.Progress = *input.Progress
		if goal.Progress >= 100 {
			goal.Progress = 100
			goal.Completed = true
		}
	}
	if input.Completed != nil {
		goal.Completed = *input.Completed
		if goal.Completed {
			goal.Progress = 100
		} else {
			goal.Progress = 0
		}
	}

	goal.UpdatedAt = time.Now()
	if err := uc.goalRepo.Update(ctx, goal); err != nil {
		return nil, apperror.Internal(err)
	}
	return goal, nil
}

func (uc *goalUsecase) DeleteGoal(ctx context.Context, userID, goalID string) error {
	if _, err := uc.getOwnedGoal(ctx, userID, goalID); err != nil {
		return err
	}
	if err := uc.goalRepo.Delete(ctx, goalID); err != nil {
		return apperror.Internal(err)
	}
	return nil
}

func (uc *goalUsecase) getOwnedGoal(ctx context.Context, userID, goalID string) (*domain.Goal, error) {
	goal, err := uc.goalRepo.GetByID(ctx, goalID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.NotFound("Goal not found")
		}
		return nil, apperror.Internal(err)
	}
	if goal.UserID != userID {
		return nil, apperror.NotFound("Goal not found")
	}
	return goal, nil
}

func mapGoalCategory(key string) (string, error) {
	mapped, ok := domain.GoalCategories[strings.ToLower(strings.TrimSpace(key))]
	if !ok {
		return "", apperror.BadRequest("Invalid goal category. Must be: interview, learning, practice, or resume")
	}
	return mapped, nil
}
