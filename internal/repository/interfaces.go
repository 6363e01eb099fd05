package repository

import (
	"context"

	"github.com/alexanderramin/syllabus/internal/domain"
)

// RunRepo stores reconciliation runs with their sections and themes.
type RunRepo interface {
	// Create inserts the run and its whole outline. Callers that need
	// atomicity wrap it in a UnitOfWork.
	Create(ctx context.Context, run *domain.Run) error
	GetByID(ctx context.Context, id string) (*domain.Run, error)
	// List returns the newest runs first, without their sections.
	List(ctx context.Context, limit int) ([]*domain.Run, error)
	Count(ctx context.Context) (int, error)
	Delete(ctx context.Context, id string) error
}

type SubmissionRepo interface {
	Record(ctx context.Context, s *domain.Submission) error
	ListByRun(ctx context.Context, runID string) ([]*domain.Submission, error)
}
