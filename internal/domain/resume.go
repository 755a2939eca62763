package domain

import (
	"context"
	"time"
)

// ResumeParsedData is the structured content extracted from an uploaded
// resume. A placeholder resume (created when the candidate starts a session
// without uploading one) carries empty fields.
type ResumeParsedData struct {
	Skills       []string `json:"skills"`
	Experience   []string `json:"experience"`
	Education    []string `json:"education"`
	Summary      string   `json:"summary"`
	OverallScore float64  `json:"overall_score,omitempty"` // analysis score, 0 when never analyzed
}

type Resume struct {
	ID        string           `json:"id"`
	UserID    string           `json:"user_id"`
	FileName  string           `json:"file_name"`
	FilePath  *string          `json:"file_path,omitempty"`
	Parsed    ResumeParsedData `json:"parsed_data"`
	CreatedAt time.Time        `json:"created_at"`
}

type ResumeRepository interface {
	Create(ctx context.Context, resume *Resume) error
	GetByID(ctx context.Context, id string) (*Resume, error)
	GetByUserID(ctx context.Context, userID string) ([]Resume, error)
}

type ResumeUsecase interface {
	ListMyResumes(ctx context.Context, userID string) ([]Resume, error)
}
