package evaluation

import (
	"context"
	"encoding/json"
	"testing"

	"go-interview-backend/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractJSON(t *testing.T) {
	t.Run("Should strip markdown fences around an array", func(t *testing.T) {
		content := "```json\n[\"q1\", \"q2\"]\n```"
		assert.Equal(t, `["q1", "q2"]`, extractJSON(content, '[', ']'))
	})

	t.Run("Should strip surrounding prose from an object", func(t *testing.T) {
		content := `Here is the evaluation: {"score": 7} Hope this helps!`
		assert.Equal(t, `{"score": 7}`, extractJSON(content, '{', '}'))
	})

	t.Run("Should pass through content without delimiters", func(t *testing.T) {
		assert.Equal(t, "no json here", extractJSON("no json here", '{', '}'))
	})

	t.Run("Should pass through reversed delimiters", func(t *testing.T) {
		assert.Equal(t, "} broken {nothing", extractJSON("} broken {nothing", '[', ']'))
	})
}

func TestStringList(t *testing.T) {
	t.Run("Should decode an array of strings", func(t *testing.T) {
		var s stringList
		require.NoError(t, json.Unmarshal([]byte(`["a", "b"]`), &s))
		assert.Equal(t, stringList{"a", "b"}, s)
	})

	t.Run("Should decode a bare string as a single-element list", func(t *testing.T) {
		var s stringList
		require.NoError(t, json.Unmarshal([]byte(`"only one"`), &s))
		assert.Equal(t, stringList{"only one"}, s)
	})

	t.Run("Should decode an empty string as nil", func(t *testing.T) {
		var s stringList
		require.NoError(t, json.Unmarshal([]byte(`""`), &s))
		assert.Nil(t, []string(s))
	})

	t.Run("Should reject a number", func(t *testing.T) {
		var s stringList
		assert.Error(t, json.Unmarshal([]byte(`42`), &s))
	})
}

func TestEvaluationPayloadDecoding(t *testing.T) {
	t.Run("Should decode strengths arriving as a single string", func(t *testing.T) {
		raw := `{"score": 8, "feedback": "good", "strengths": "clear structure", "improvements": ["more detail"]}`
		var payload evaluationPayload
		require.NoError(t, json.Unmarshal([]byte(raw), &payload))
		assert.Equal(t, 8.0, payload.Score)
		assert.Equal(t, stringList{"clear structure"}, payload.Strengths)
		assert.Equal(t, stringList{"more detail"}, payload.Improvements)
	})
}

func TestUnconfiguredProvider(t *testing.T) {
	p := NewOpenAIProvider("", "gpt-4o-mini")
	ctx := context.Background()

	_, err := p.GenerateQuestions(ctx, "Backend Engineer", "Go", "3 years")
	assert.Error(t, err)

	_, err = p.Evaluate(ctx, "q", "a", domain.SessionContext{})
	assert.Error(t, err)
}
