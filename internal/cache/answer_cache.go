package cache

import (
	"sync"

	"go-interview-backend/internal/domain"
)

// AnswerCache is the process-local fallback answer store used when durable
// storage is unreachable during answer submission. Entries do not survive a
// restart and are never read by analytics. Constructed once per process and
// injected; there is no package-level shared state.
type AnswerCache struct {
	mu      sync.RWMutex
	answers map[string]domain.CachedAnswer // keyed sessionID|questionID
}

func NewAnswerCache() *AnswerCache {
	return &AnswerCache{answers: make(map[string]domain.CachedAnswer)}
}

func key(sessionID, questionID string) string {
	return sessionID + "|" + questionID
}

// Set stores the answer, overwriting any previous one for the same
// (session, question) key. Last writer wins; keys are independent so a single
// lock around the map write is all the coordination needed.
func (c *AnswerCache) Set(answer domain.CachedAnswer) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.answers[key(answer.SessionID, answer.QuestionID)] = answer
}

func (c *AnswerCache) Get(sessionID, questionID string) (domain.CachedAnswer, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	answer, ok := c.answers[key(sessionID, questionID)]
	return answer, ok
}

// GetBySession returns every cached answer belonging to the session.
func (c *AnswerCache) GetBySession(sessionID string) []domain.CachedAnswer {
	c.mu.RLock()
	defer c.mu.RUnlock()
	var result []domain.CachedAnswer
	for _, answer := range c.answers {
		if answer.SessionID == sessionID {
			result = append(result, answer)
		}
	}
	return result
}

func (c *AnswerCache) Delete(sessionID, questionID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.answers, key(sessionID, questionID))
}
