package domain

import (
	"context"
	"time"
)

// Goal category constants
const (
	GoalCategoryInterview = "INTERVIEW"
	GoalCategoryLearning  = "LEARNING"
	GoalCategoryPractice  = "PRACTICE"
	GoalCategoryResume    = "RESUME"
)

// GoalCategories maps the client-facing category keys to the stored enum.
// Unrecognized keys must fail with a client error, never silently default.
var GoalCategories = map[string]string{
	"interview": GoalCategoryInterview,
	"learning":  GoalCategoryLearning,
	"practice":  GoalCategoryPractice,
	"resume":    GoalCategoryResume,
}

// Goal is a user-owned target independent of interview sessions.
// Invariant, enforced bidirectionally on every update:
// completed == true implies progress == 100, and progress >= 100 implies
// completed == true.
type Goal struct {
	ID          string    `json:"id"`
	UserID      string    `json:"user_id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Category    string    `json:"category"`
	TargetDate  time.Time `json:"target_date"`
	Completed   bool      `json:"completed"`
	Progress    int       `json:"progress"` // 0-100
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type GoalRepository interface {
	Create(ctx context.Context, goal *Goal) error
	GetByID(ctx context.Context, id string) (*Goal, error)
	GetByUserID(ctx context.Context, userID string) ([]Goal, error)
	Update(ctx context.Context, goal *Goal) error
	Delete(ctx context.Context, id string) error
}

// GoalUpdateInput carries the mutable fields of a goal. Nil means "leave
// unchanged".
type GoalUpdateInput struct {
	Title       *string
	Description *string
	Category    *string // client-facing key, mapped through GoalCategories
	TargetDate  *time.Time
	Completed   *bool
	Progress    *int
}

type GoalUsecase interface {
	CreateGoal(ctx context.Context, userID, title, description, category string, targetDate time.Time) (*Goal, error)
	ListGoals(ctx context.Context, userID string) ([]Goal, error)
	UpdateGoal(ctx context.Context, userID, goalID string, input GoalUpdateInput) (*Goal, error)
	DeleteGoal(ctx context.Context, userID, goalID string) error
}
