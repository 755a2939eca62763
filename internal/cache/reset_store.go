package cache

import (
	"context"
	"sync"
	"time"

	"go-interview-backend/internal/domain"
	"go-interview-backend/pkg/redis"
)

const resetCodePrefix = "reset:code:"

type memoryCode struct {
	hash      string
	expiresAt time.Time
}

// ResetCodeStore keeps hashed password-reset codes with a TTL. Redis when
// available, an in-memory map otherwise (codes then don't survive a restart,
// which is acceptable for a 15-minute credential).
type ResetCodeStore struct {
	mu    sync.Mutex
	codes map[string]memoryCode
}

func NewResetCodeStore() *ResetCodeStore {
	return &ResetCodeStore{codes: make(map[string]memoryCode)}
}

func (s *ResetCodeStore) Save(ctx context.Context, userID string, codeHash string, ttl time.Duration) error {
	if client := redis.Client(); client != nil {
		return client.Set(ctx, resetCodePrefix+userID, codeHash, ttl).Err()
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.codes[userID] = memoryCode{hash: codeHash, expiresAt: time.Now().Add(ttl)}
	return nil
}

func (s *ResetCodeStore) Get(ctx context.Context, userID string) (string, error) {
	if client := redis.Client(); client != nil {
		return client.Get(ctx, resetCodePrefix+userID).Result()
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	code, ok := s.codes[userID]
	if !ok || time.Now().After(code.expiresAt) {
		delete(s.codes, userID)
		return "", domain.ErrNotFound
	}
	return code.hash, nil
}

func (s *ResetCodeStore) Delete(ctx context.Context, userID string) error {
	if client := redis.Client(); client != nil {
		return client.Del(ctx, resetCodePrefix+userID).Err()
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.codes, userID)
	return nil
}
