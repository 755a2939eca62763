package usecase_test

import (
	"context"
	"testing"
	"time"

	"go-interview-backend/internal/domain"
	"go-interview-backend/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockGoalRepo struct {
	mock.Mock
}

func (m *MockGoalRepo) Create(ctx context.Context, goal *domain.Goal) error {
	return m.Called(ctx, goal).Error(0)
}
func (m *MockGoalRepo) GetByID(ctx context.Context, id string) (*domain.Goal, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Goal), args.Error(1)
}
func (m *MockGoalRepo) GetByUserID(ctx context.Context, userID string) ([]domain.Goal, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Goal), args.Error(1)
}
func (m *MockGoalRepo) Update(ctx context.Context, goal *domain.Goal) error {
	return m.Called(ctx, goal).Error(0)
}
func (m *MockGoalRepo) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func ownedGoal() *domain.Goal {
	return &domain.Goal{
		ID:       "g1",
		UserID:   "user-1",
		Title:    "Practice system design",
		Category: domain.GoalCategoryPractice,
		Progress: 40,
	}
}

func TestCreateGoal(t *testing.T) {
	ctx := context.Background()

	t.Run("Should map category keys case-insensitively", func(t *testing.T) {
		repo := new(MockGoalRepo)
		uc := usecase.NewGoalUsecase(repo)
		repo.On("Create", ctx, mock.AnythingOfType("*domain.Goal")).Return(nil)

		goal, err := uc.CreateGoal(ctx, "user-1", "Mock interviews", "", "Interview", time.Now().AddDate(0, 1, 0))
		require.NoError(t, err)
		assert.Equal(t, domain.GoalCategoryInterview, goal.Category)
		assert.Equal(t, 0, goal.Progress)
		assert.False(t, goal.Completed)
	})

	t.Run("Should reject an unknown category", func(t *testing.T) {
		repo := new(MockGoalRepo)
		uc := usecase.NewGoalUsecase(repo)

		_, err := uc.CreateGoal(ctx, "user-1", "Title", "", "fitness", time.Now())
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "Invalid goal category")
	})
}

func TestUpdateGoalInvariant(t *testing.T) {
	ctx := context.Background()

	progress := func(p int) *int { return &p }
	completed := func(b bool) *bool { return &b }

	t.Run("Should complete the goal when progress reaches 100", func(t *testing.T) {
		repo := new(MockGoalRepo)
		uc := usecase.NewGoalUsecase(repo)
		repo.On("GetByID", ctx, "g1").Return(ownedGoal(), nil)
		repo.On("Update", ctx, mock.AnythingOfType("*domain.Goal")).Return(nil)

		goal, err := uc.UpdateGoal(ctx, "user-1", "g1", domain.GoalUpdateInput{Progress: progress(100)})
		require.NoError(t, err)
		assert.True(t, goal.Completed)
		assert.Equal(t, 100, goal.Progress)
	})

	t.Run("Should clamp progress above 100", func(t *testing.T) {
		repo := new(MockGoalRepo)
		uc := usecase.NewGoalUsecase(repo)
		repo.On("GetByID", ctx, "g1").Return(ownedGoal(), nil)
		repo.On("Update", ctx, mock.AnythingOfType("*domain.Goal")).Return(nil)

		goal, err := uc.UpdateGoal(ctx, "user-1", "g1", domain.GoalUpdateInput{Progress: progress(150)})
		require.NoError(t, err)
		assert.True(t, goal.Completed)
		assert.Equal(t, 100, goal.Progress)
	})

	t.Run("Should force progress to 100 when marked completed", func(t *testing.T) {
		repo := new(MockGoalRepo)
		uc := usecase.NewGoalUsecase(repo)
		repo.On("GetByID", ctx, "g1").Return(ownedGoal(), nil)
		repo.On("Update", ctx, mock.AnythingOfType("*domain.Goal")).Return(nil)

		goal, err := uc.UpdateGoal(ctx, "user-1", "g1", domain.GoalUpdateInput{Completed: completed(true)})
		require.NoError(t, err)
		assert.True(t, goal.Completed)
		assert.Equal(t, 100, goal.Progress)
	})

	t.Run("Should reset progress to 0 when marked not completed", func(t *testing.T) {
		repo := new(MockGoalRepo)
		uc := usecase.NewGoalUsecase(repo)
		repo.On("GetByID", ctx, "g1").Return(ownedGoal(), nil)
		repo.On("Update", ctx, mock.AnythingOfType("*domain.Goal")).Return(nil)

		goal, err := uc.UpdateGoal(ctx, "user-1", "g1", domain.GoalUpdateInput{Completed: completed(false)})
		require.NoError(t, err)
		assert.False(t, goal.Completed)
		assert.Equal(t, 0, goal.Progress)
	})

	t.Run("Should apply completed after progress when both are set", func(t *testing.T) {
		repo := new(MockGoalRepo)
		uc := usecase.NewGoalUsecase(repo)
		repo.On("GetByID", ctx, "g1").Return(ownedGoal(), nil)
		repo.On("Update", ctx, mock.AnythingOfType("*domain.Goal")).Return(nil)

		goal, err := uc.UpdateGoal(ctx, "user-1", "g1", domain.GoalUpdateInput{
			Progress:  progress(60),
			Completed: completed(true),
		})
		require.NoError(t, err)
		assert.True(t, goal.Completed)
		assert.Equal(t, 100, goal.Progress)
	})

	t.Run("Should reject negative progress", func(t *testing.T) {
		repo := new(MockGoalRepo)
		uc := usecase.NewGoalUsecase(repo)
		repo.On("GetByID", ctx, "g1").Return(ownedGoal(), nil)

		_, err := uc.UpdateGoal(ctx, "user-1", "g1", domain.GoalUpdateInput{Progress: progress(-5)})
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "negative")
	})
}

func TestGoalOwnership(t *testing.T) {
	ctx := context.Background()

	t.Run("Should hide another user's goal as not found", func(t *testing.T) {
		repo := new(MockGoalRepo)
		uc := usecase.NewGoalUsecase(repo)
		other := ownedGoal()
		other.UserID = "someone-else"
		repo.On("GetByID", ctx, "g1").Return(other, nil)

		err := uc.DeleteGoal(ctx, "user-1", "g1")
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "Goal not found")
	})

	t.Run("Should surface a missing goal identically", func(t *testing.T) {
		repo := new(MockGoalRepo)
		uc := usecase.NewGoalUsecase(repo)
		repo.On("GetByID", ctx, "gone").Return(nil, domain.ErrNotFound)

		err := uc.DeleteGoal(ctx, "user-1", "gone")
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "Goal not found")
	})
}
