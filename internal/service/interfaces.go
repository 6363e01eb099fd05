package service

import (
	"context"

	"github.com/alexanderramin/syllabus/internal/contract"
	"github.com/alexanderramin/syllabus/internal/domain"
	"github.com/alexanderramin/syllabus/internal/lms"
)

// OutlineService is the application boundary for outline reconciliation,
// generation, storage and submission.
type OutlineService interface {
	Reconcile(ctx context.Context, req contract.ReconcileRequest) (*contract.ReconcileResponse, error)
	Generate(ctx context.Context, req contract.GenerateRequest) (*contract.ReconcileResponse, error)
	// Submit sends a stored run to the LMS section by section. progress may be nil.
	Submit(ctx context.Context, runID string, progress func(done, total int)) (*contract.SubmitResponse, error)
	Quota(ctx context.Context, courseID string) (*domain.Quota, error)
	ListRuns(ctx context.Context, limit int) ([]*domain.Run, error)
	GetRun(ctx context.Context, id string) (*domain.Run, error)
	DeleteRun(ctx context.Context, id string) error
	Submissions(ctx context.Context, runID string) ([]*domain.Submission, error)
	Status(ctx context.Context) (*contract.StatusResponse, error)
}

// LMSClient is the subset of the LMS client the service needs.
type LMSClient interface {
	lms.SectionSubmitter
	GetQuota(ctx context.Context, courseID string) (*domain.Quota, error)
	Reachable(ctx context.Context) bool
}
