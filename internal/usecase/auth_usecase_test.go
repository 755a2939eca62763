package usecase_test

import (
	"context"
	"testing"
	"time"

	"go-interview-backend/config"
	"go-interview-backend/internal/cache"
	"go-interview-backend/internal/domain"
	"go-interview-backend/internal/usecase"
	"go-interview-backend/pkg/auth"
	"go-interview-backend/pkg/email"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newAuthFixture(t *testing.T) (*MockUserRepo, *cache.ResetCodeStore, domain.AuthUsecase) {
	t.Helper()
	userRepo := new(MockUserRepo)
	tokens, err := auth.NewTokenManager("test-secret", time.Hour)
	require.NoError(t, err)
	resetStore := cache.NewResetCodeStore()
	mailer := email.NewEmailService(&config.Config{}) // unconfigured
	uc := usecase.NewAuthUsecase(userRepo, tokens, resetStore, mailer)
	return userRepo, resetStore, uc
}

func hashedPassword(t *testing.T, password string) string {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return string(hash)
}

func TestRegister(t *testing.T) {
	ctx := context.Background()

	t.Run("Should create the user and return a usable token", func(t *testing.T) {
		userRepo, _, uc := newAuthFixture(t)
		userRepo.On("GetByEmail", ctx, "new@example.com").Return(nil, domain.ErrNotFound)
		userRepo.On("Create", ctx, mock.AnythingOfType("*domain.User")).Return(nil)

		user, token, err := uc.Register(ctx, "New@Example.com", "password123", "New User")
		require.NoError(t, err)
		assert.Equal(t, "new@example.com", user.Email) // lowercased
		assert.NotEmpty(t, token)
		assert.NotEqual(t, "password123", user.PasswordHash)
	})

	t.Run("Should reject a short password", func(t *testing.T) {
		_, _, uc := newAuthFixture(t)
		_, _, err := uc.Register(ctx, "a@b.com", "short", "Name")
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "at least 8 characters")
	})

	t.Run("Should reject a duplicate email", func(t *testing.T) {
		userRepo, _, uc := newAuthFixture(t)
		userRepo.On("GetByEmail", ctx, "taken@example.com").Return(&domain.User{ID: "u1"}, nil)

		_, _, err := uc.Register(ctx, "taken@example.com", "password123", "Name")
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "already registered")
	})
}

func TestLogin(t *testing.T) {
	ctx := context.Background()

	t.Run("Should return the same message for unknown email and wrong password", func(t *testing.T) {
		userRepo, _, uc := newAuthFixture(t)
		userRepo.On("GetByEmail", ctx, "ghost@example.com").Return(nil, domain.ErrNotFound)
		userRepo.On("GetByEmail", ctx, "real@example.com").Return(&domain.User{
			ID:           "u1",
			Email:        "real@example.com",
			PasswordHash: hashedPassword(t, "correct-password"),
		}, nil)

		_, _, errUnknown := uc.Login(ctx, "ghost@example.com", "whatever")
		_, _, errWrong := uc.Login(ctx, "real@example.com", "wrong-password")
		require.Error(t, errUnknown)
		require.Error(t, errWrong)
		assert.Equal(t, errUnknown.Error(), errWrong.Error())
	})

	t.Run("Should issue a token on valid credentials", func(t *testing.T) {
		userRepo, _, uc := newAuthFixture(t)
		userRepo.On("GetByEmail", ctx, "real@example.com").Return(&domain.User{
			ID:           "u1",
			Email:        "real@example.com",
			PasswordHash: hashedPassword(t, "correct-password"),
		}, nil)

		user, token, err := uc.Login(ctx, "real@example.com", "correct-password")
		require.NoError(t, err)
		assert.Equal(t, "u1", user.ID)
		assert.NotEmpty(t, token)
	})
}

func TestPasswordReset(t *testing.T) {
	ctx := context.Background()

	t.Run("Should not reveal whether the email exists", func(t *testing.T) {
		userRepo, _, uc := newAuthFixture(t)
		userRepo.On("GetByEmail", ctx, "ghost@example.com").Return(nil, domain.ErrNotFound)

		err := uc.RequestPasswordReset(ctx, "ghost@example.com")
		assert.NoError(t, err)
	})

	t.Run("Should reject a wrong code", func(t *testing.T) {
		userRepo, resetStore, uc := newAuthFixture(t)
		userRepo.On("GetByEmail", ctx, "real@example.com").Return(&domain.User{
			ID: "u1", Email: "real@example.com",
		}, nil)

		codeHash, err := bcrypt.GenerateFromPassword([]byte("123456"), bcrypt.MinCost)
		require.NoError(t, err)
		require.NoError(t, resetStore.Save(ctx, "u1", string(codeHash), time.Minute))

		err = uc.ConfirmPasswordReset(ctx, "real@example.com", "654321", "newpassword1")
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "Invalid or expired")
	})

	t.Run("Should update the password and consume the code", func(t *testing.T) {
		userRepo, resetStore, uc := newAuthFixture(t)
		userRepo.On("GetByEmail", ctx, "real@example.com").Return(&domain.User{
			ID: "u1", Email: "real@example.com",
		}, nil)
		userRepo.On("UpdatePassword", ctx, "u1", mock.AnythingOfType("string")).Return(nil)

		codeHash, err := bcrypt.GenerateFromPassword([]byte("123456"), bcrypt.MinCost)
		require.NoError(t, err)
		require.NoError(t, resetStore.Save(ctx, "u1", string(codeHash), time.Minute))

		require.NoError(t, uc.ConfirmPasswordReset(ctx, "real@example.com", "123456", "newpassword1"))
		userRepo.AssertExpectations(t)

		// Code is single-use
		_, err = resetStore.Get(ctx, "u1")
		assert.Error(t, err)
	})

	t.Run("Should reject an expired code", func(t *testing.T) {
		userRepo, resetStore, uc := newAuthFixture(t)
		userRepo.On("GetByEmail", ctx, "real@example.com").Return(&domain.User{
			ID: "u1", Email: "real@example.com",
		}, nil)

		codeHash, err := bcrypt.GenerateFromPassword([]byte("123456"), bcrypt.MinCost)
		require.NoError(t, err)
		require.NoError(t, resetStore.Save(ctx, "u1", string(codeHash), -time.Second))

		err = uc.ConfirmPasswordReset(ctx, "real@example.com", "123456", "newpassword1")
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "Invalid or expired")
	})
}

func TestUpgradePremium(t *testing.T) {
	ctx := context.Background()

	t.Run("Should set the premium flag once", func(t *testing.T) {
		userRepo, _, uc := newAuthFixture(t)
		userRepo.On("GetByID", ctx, "u1").Return(&domain.User{ID: "u1"}, nil)
		userRepo.On("SetPremium", ctx, "u1", true).Return(nil)

		user, err := uc.UpgradePremium(ctx, "u1")
		require.NoError(t, err)
		assert.True(t, user.IsPremium)
	})

	t.Run("Should be a no-op for an already premium user", func(t *testing.T) {
		userRepo, _, uc := newAuthFixture(t)
		userRepo.On("GetByID", ctx, "u1").Return(&domain.User{ID: "u1", IsPremium: true}, nil)

		user, err := uc.UpgradePremium(ctx, "u1")
		require.NoError(t, err)
		assert.True(t, user.IsPremium)
		userRepo.AssertNotCalled(t, "SetPremium", ctx, "u1", true)
	})
}
