package cache_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"go-interview-backend/internal/cache"
	"go-interview-backend/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnswerCache(t *testing.T) {
	t.Run("Should overwrite on resubmission for the same question", func(t *testing.T) {
		c := cache.NewAnswerCache()
		c.Set(domain.CachedAnswer{SessionID: "s1", QuestionID: "q1", CandidateAnswer: "first"})
		c.Set(domain.CachedAnswer{SessionID: "s1", QuestionID: "q1", CandidateAnswer: "second"})

		answer, ok := c.Get("s1", "q1")
		require.True(t, ok)
		assert.Equal(t, "second", answer.CandidateAnswer)
	})

	t.Run("Should scope entries by session", func(t *testing.T) {
		c := cache.NewAnswerCache()
		c.Set(domain.CachedAnswer{SessionID: "s1", QuestionID: "q1", CandidateAnswer: "a"})
		c.Set(domain.CachedAnswer{SessionID: "s1", QuestionID: "q2", CandidateAnswer: "b"})
		c.Set(domain.CachedAnswer{SessionID: "s2", QuestionID: "q1", CandidateAnswer: "c"})

		assert.Len(t, c.GetBySession("s1"), 2)
		assert.Len(t, c.GetBySession("s2"), 1)
		assert.Empty(t, c.GetBySession("s3"))
	})

	t.Run("Should delete a single entry", func(t *testing.T) {
		c := cache.NewAnswerCache()
		c.Set(domain.CachedAnswer{SessionID: "s1", QuestionID: "q1", CandidateAnswer: "a"})
		c.Set(domain.CachedAnswer{SessionID: "s1", QuestionID: "q2", CandidateAnswer: "b"})
		c.Delete("s1", "q1")

		_, ok := c.Get("s1", "q1")
		assert.False(t, ok)
		_, ok = c.Get("s1", "q2")
		assert.True(t, ok)
	})

	t.Run("Should survive concurrent writers on independent keys", func(t *testing.T) {
		c := cache.NewAnswerCache()
		var wg sync.WaitGroup
		for i := 0; i < 50; i++ {
			wg.Add(1)
			go func(n int) {
				defer wg.Done()
				q := "q" + string(rune('a'+n%26))
				c.Set(domain.CachedAnswer{SessionID: "s1", QuestionID: q, CandidateAnswer: "x"})
				c.Get("s1", q)
				c.GetBySession("s1")
			}(i)
		}
		wg.Wait()
		assert.NotEmpty(t, c.GetBySession("s1"))
	})
}

func TestResetCodeStoreInMemory(t *testing.T) {
	ctx := context.Background()

	t.Run("Should round-trip a code within its TTL", func(t *testing.T) {
		s := cache.NewResetCodeStore()
		require.NoError(t, s.Save(ctx, "u1", "hash-value", time.Minute))

		hash, err := s.Get(ctx, "u1")
		require.NoError(t, err)
		assert.Equal(t, "hash-value", hash)
	})

	t.Run("Should expire a code past its TTL", func(t *testing.T) {
		s := cache.NewResetCodeStore()
		require.NoError(t, s.Save(ctx, "u1", "hash-value", -time.Second))

		_, err := s.Get(ctx, "u1")
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("Should delete a consumed code", func(t *testing.T) {
		s := cache.NewResetCodeStore()
		require.NoError(t, s.Save(ctx, "u1", "hash-value", time.Minute))
		require.NoError(t, s.Delete(ctx, "u1"))

		_, err := s.Get(ctx, "u1")
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}
