package evaluation

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"go-interview-backend/internal/domain"

	"github.com/sashabaranov/go-openai"
)

// OpenAIProvider implements the evaluation boundary with OpenAI chat
// completions. It asks for strict JSON and decodes defensively; anything it
// cannot parse surfaces as an error so the caller's deterministic fallback
// takes over.
type OpenAIProvider struct {
	client *openai.Client
	model  string
}

// NewOpenAIProvider creates a provider. With an empty API key the client is
// nil and every call errors, which downstream code treats the same as any
// other provider outage.
func NewOpenAIProvider(apiKey, model string) *OpenAIProvider {
	if apiKey == "" {
		return &OpenAIProvider{client: nil, model: model}
	}
	return &OpenAIProvider{
		client: openai.NewClient(apiKey),
		model:  model,
	}
}

const generatePrompt = `You are an experienced technical interviewer.

Generate interview questions for the following opening:

ROLE: %s
EXPERIENCE LEVEL: %s

JOB DESCRIPTION:
%s

Generate 5 to 8 questions mixing technical depth and behavioral fit,
ordered from warm-up to hardest. Calibrate difficulty to the experience level.

Return ONLY a JSON array of question strings, no markdown, no explanation:
["question 1", "question 2", ...]`

// GenerateQuestions returns an ordered list of question texts. May return an
// error on any transport or parse failure; callers persist whatever comes
// back and treat failure as zero questions.
func (p *OpenAIProvider) GenerateQuestions(ctx context.Context, jobRole, jobDescription, experienceLevel string) ([]string, error) {
	if p.client == nil {
		return nil, errors.New("evaluation: OpenAI client not configured")
	}

	prompt := fmt.Sprintf(generatePrompt, jobRole, experienceLevel, jobDescription)
	content, err := p.complete(ctx, prompt)
	if err != nil {
		return nil, err
	}

	var questions []string
	if err := json.Unmarshal([]byte(extractJSON(content, '[', ']')), &questions); err != nil {
		return nil, fmt.Errorf("evaluation: malformed question payload: %w", err)
	}

	cleaned := make([]string, 0, len(questions))
	for _, q := range questions {
		if q = strings.TrimSpace(q); q != "" {
			cleaned = append(cleaned, q)
		}
	}
	return cleaned, nil
}

const evaluatePrompt = `You are grading a mock interview answer.

ROLE: %s (experience: %s)
QUESTION: %s
CANDIDATE ANSWER: %s

Score the answer from 1 (no substance) to 10 (excellent, specific, complete).

Return ONLY a JSON object, no markdown, no explanation:
{
  "score": <number 1-10>,
  "feedback": "<2-3 sentence assessment>",
  "strengths": ["<strength>", ...],
  "improvements": ["<improvement>", ...]
}`

// evaluationPayload mirrors the model output. Strengths and improvements may
// arrive as a single string or an array; both decode.
type evaluationPayload struct {
	Score        float64    `json:"score"`
	Feedback     string     `json:"feedback"`
	Strengths    stringList `json:"strengths"`
	Improvements stringList `json:"improvements"`
}

// Evaluate scores one answer. Malformed payloads and out-of-range scores are
// returned as errors, never as garbage evaluations.
func (p *OpenAIProvider) Evaluate(ctx context.Context, questionText, answerText string, info domain.SessionContext) (*domain.Evaluation, error) {
	if p.client == nil {
		return nil, errors.New("evaluation: OpenAI client not configured")
	}

	prompt := fmt.Sprintf(evaluatePrompt, info.JobRole, info.ExperienceLevel, questionText, answerText)
	content, err := p.complete(ctx, prompt)
	if err != nil {
		return nil, err
	}

	var payload evaluationPayload
	if err := json.Unmarshal([]byte(extractJSON(content, '{', '}')), &payload); err != nil {
		return nil, fmt.Errorf("evaluation: malformed evaluation payload: %w", err)
	}
	if payload.Score < 1 || payload.Score > 10 {
		return nil, fmt.Errorf("evaluation: score %v out of range", payload.Score)
	}

	return &domain.Evaluation{
		Score:        payload.Score,
		Feedback:     payload.Feedback,
		Strengths:    payload.Strengths,
		Improvements: payload.Improvements,
	}, nil
}

func (p *OpenAIProvider) complete(ctx context.Context, prompt string) (string, error) {
	resp, err := p.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: p.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		Temperature: 0.7,
	})
	if err != nil {
		return "", fmt.Errorf("evaluation: completion failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("evaluation: empty completion response")
	}
	return resp.Choices[0].Message.Content, nil
}

// extractJSON carves the first JSON value delimited by open/close out of
// free-form model text, tolerating markdown fences and prose around it.
func extractJSON(content string, open, close byte) string {
	start := strings.IndexByte(content, open)
	end := strings.LastIndexByte(content, close)
	if start == -1 || end == -1 || end < start {
		return content
	}
	return content[start : end+1]
}

// stringList accepts either a JSON array of strings or a single string.
type stringList []string

func (s *stringList) UnmarshalJSON(data []byte) error {
	var list []string
	if err := json.Unmarshal(data, &list); err == nil {
		*s = list
		return nil
	}
	var single string
	if err := json.Unmarshal(data, &single); err != nil {
		return err
	}
	if single != "" {
		*s = []string{single}
	}
	return nil
}
