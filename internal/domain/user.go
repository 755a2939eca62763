package domain

import (
	"context"
	"time"
)

type User struct {
	ID                string    `json:"id"`
	Email             string    `json:"email"`
	Name              string    `json:"name"`
	PasswordHash      string    `json:"-"`
	IsPremium         bool      `json:"is_premium"`
	InterviewAttempts int       `json:"interview_attempts"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

type UserRepository interface {
	Create(ctx context.Context, user *User) error
	GetByID(ctx context.Context, id string) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	UpdatePassword(ctx context.Context, id string, passwordHash string) error
	SetPremium(ctx context.Context, id string, premium bool) error
	IncrementInterviewAttempts(ctx context.Context, id string) error
}

// ResetCodeStore holds short-lived password reset codes (hashed) with a TTL.
type ResetCodeStore interface {
	Save(ctx context.Context, userID string, codeHash string, ttl time.Duration) error
	Get(ctx context.Context, userID string) (string, error)
	Delete(ctx context.Context, userID string) error
}

type AuthUsecase interface {
	Register(ctx context.Context, email, password, name string) (*User, string, error)
	Login(ctx context.Context, email, password string) (*User, string, error)
	GetCurrentUser(ctx context.Context, id string) (*User, error)
	RequestPasswordReset(ctx context.Context, email string) error
	ConfirmPasswordReset(ctx context.Context, email, code, newPassword string) error
	UpgradePremium(ctx context.Context, userID string) (*User, error)
}
