package usecase

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"time"

	"go-interview-backend/internal/domain"
	"go-interview-backend/pkg/apperror"
	"go-interview-backend/pkg/auth"
	"go-interview-backend/pkg/email"
	"go-interview-backend/pkg/logger"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const (
	bcryptCost    = 10
	resetCodeTTL  = 15 * time.Minute
	minPasswordLn = 8
)

type authUsecase struct {
	userRepo   domain.UserRepository
	tokens     *auth.TokenManager
	resetStore domain.ResetCodeStore
	mailer     *email.EmailService
}

func NewAuthUsecase(userRepo domain.UserRepository, tokens *auth.TokenManager, resetStore domain.ResetCodeStore, mailer *email.EmailService) domain.AuthUsecase {
	return &authUsecase{
		userRepo:   userRepo,
		tokens:     tokens,
		resetStore: resetStore,
		mailer:     mailer,
	}
}

// Register creates a user with a bcrypt-hashed password and returns a signed
// token so the client is logged in immediately.
func (u *authUsecase) Register(ctx context.Context, emailAddr, password, name string) (*domain.User, string, error) {
	emailAddr = strings.ToLower(strings.TrimSpace(emailAddr))
	if len(password) < minPasswordLn {
		return nil, "", apperror.BadRequest(fmt.Sprintf("Password must be at least %d characters", minPasswordLn))
	}

	existing, err := u.userRepo.GetByEmail(ctx, emailAddr)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return nil, "", apperror.Internal(err)
	}
	if existing != nil {
		return nil, "", apperror.BadRequest("Email is already registered")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return nil, "", apperror.Internal(err)
	}

	now := time.Now()
	user := &domain.User{
		ID:           uuid.NewString(),
		Email:        emailAddr,
		Name:         name,
		PasswordHash: string(hash),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := u.userRepo.Create(ctx, user); err != nil {
		return nil, "", apperror.Internal(err)
	}

	token, err := u.tokens.Issue(user.ID, user.Email)
	if err != nil {
		return nil, "", apperror.Internal(err)
	}
	return user, token, nil
}

// Login verifies credentials and issues a token. Wrong email and wrong
// password produce the same message.
func (u *authUsecase) Login(ctx context.Context, emailAddr, password string) (*domain.User, string, error) {
	emailAddr = strings.ToLower(strings.TrimSpace(emailAddr))

	user, err := u.userRepo.GetByEmail(ctx, emailAddr)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, "", apperror.Unauthorized("Invalid email or password")
		}
		return nil, "", apperror.Internal(err)
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, "", apperror.Unauthorized("Invalid email or password")
	}

	token, err := u.tokens.Issue(user.ID, user.Email)
	if err != nil {
		return nil, "", apperror.Internal(err)
	}
	return user, token, nil
}

func (u *authUsecase) GetCurrentUser(ctx context.Context, id string) (*domain.User, error) {
	user, err := u.userRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.NotFound("User not found")
		}
		return nil, apperror.Internal(err)
	}
	return user, nil
}

// RequestPasswordReset emails a 6-digit code. The code is stored hashed with
// a short TTL. An unknown email still returns success so account existence
// does not leak.
func (u *authUsecase) RequestPasswordReset(ctx context.Context, emailAddr string) error {
	emailAddr = strings.ToLower(strings.TrimSpace(emailAddr))

	user, err := u.userRepo.GetByEmail(ctx, emailAddr)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			logger.Log.Info("Password reset requested for unknown email")
			return nil
		}
		return apperror.Internal(err)
	}

	if !u.mailer.IsConfigured() {
		return apperror.ServiceUnavailable("Password reset is currently unavailable")
	}

	code, err := generateResetCode()
	if err != nil {
		return apperror.Internal(err)
	}
	codeHash, err := bcrypt.GenerateFromPassword([]byte(code), bcryptCost)
	if err != nil {
		return apperror.Internal(err)
	}
	if err := u.resetStore.Save(ctx, user.ID, string(codeHash), resetCodeTTL); err != nil {
		return apperror.Internal(err)
	}
	if err := u.mailer.SendPasswordResetCode(user.Email, user.Name, code); err != nil {
		return apperror.Internal(err)
	}
	return nil
}

func (u *authUsecase) ConfirmPasswordReset(ctx context.Context, emailAddr, code, newPassword string) error {
	emailAddr = strings.ToLower(strings.TrimSpace(emailAddr))
	if len(newPassword) < minPasswordLn {
		return apperror.BadRequest(fmt.Sprintf("Password must be at least %d characters", minPasswordLn))
	}

	user, err := u.userRepo.GetByEmail(ctx, emailAddr)
	if err != nil {
		return apperror.BadRequest("Invalid or expired reset code")
	}

	codeHash, err := u.resetStore.Get(ctx, user.ID)
	if err != nil {
		return apperror.BadRequest("Invalid or expired reset code")
	}
	if bcrypt.CompareHashAndPassword([]byte(codeHash), []byte(code)) != nil {
		return apperror.BadRequest("Invalid or expired reset code")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcryptCost)
	if err != nil {
		return apperror.Internal(err)
	}
	if err := u.userRepo.UpdatePassword(ctx, user.ID, string(hash)); err != nil {
		return apperror.Internal(err)
	}
	_ = u.resetStore.Delete(ctx, user.ID)
	return nil
}

// UpgradePremium flips the premium flag for the current user.
func (u *authUsecase) UpgradePremium(ctx context.Context, userID string) (*domain.User, error) {
	user, err := u.GetCurrentUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user.IsPremium {
		return user, nil
	}
	if err := u.userRepo.SetPremium(ctx, userID, true); err != nil {
		return nil, apperror.Internal(err)
	}
	user.IsPremium = true
	return user, nil
}

// generateResetCode returns a cryptographically random 6-digit code.
func generateResetCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}
