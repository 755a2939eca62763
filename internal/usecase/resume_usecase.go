package usecase

import (
	"context"

	"go-interview-backend/internal/domain"
	"go-interview-backend/pkg/apperror"
)

type resumeUsecase struct {
	resumeRepo domain.ResumeRepository
}

func NewResumeUsecase(resumeRepo domain.ResumeRepository) domain.ResumeUsecase {
	return &resumeUsecase{resumeRepo: resumeRepo}
}

// ListMyResumes returns the user's resumes, newest first, for reuse when
// setting up a new session.
func (uc *resumeUsecase) ListMyResumes(ctx context.Context, userID string) ([]domain.Resume, error) {
	resumes, err := uc.resumeRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return resumes, nil
}
