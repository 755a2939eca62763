package domain

import (
	"context"
	"time"
)

// JobDescriptionData holds the structured fields derived from the raw job
// description text at session creation. Immutable after creation.
type JobDescriptionData struct {
	Title              string   `json:"title"`
	SkillsRequired     []string `json:"skills_required"`
	ExperienceRequired string   `json:"experience_required"`
}

type JobDescription struct {
	ID        string             `json:"id"`
	UserID    string             `json:"user_id"`
	RawText   string             `json:"raw_text"`
	Parsed    JobDescriptionData `json:"parsed_data"`
	CreatedAt time.Time          `json:"created_at"`
}

type JobDescriptionRepository interface {
	Create(ctx context.Context, jd *JobDescription) error
	GetByID(ctx context.Context, id string) (*JobDescription, error)
	GetByUserID(ctx context.Context, userID string) ([]JobDescription, error)
}
