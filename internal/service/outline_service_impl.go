package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/syllabus/internal/contract"
	"github.com/alexanderramin/syllabus/internal/db"
	"github.com/alexanderramin/syllabus/internal/domain"
	"github.com/alexanderramin/syllabus/internal/intelligence"
	"github.com/alexanderramin/syllabus/internal/llm"
	"github.com/alexanderramin/syllabus/internal/lms"
	"github.com/alexanderramin/syllabus/internal/outline"
	"github.com/alexanderramin/syllabus/internal/repository"
	"github.com/alexanderramin/syllabus/internal/workload"
	"golang.org/x/sync/errgroup"
)

// OutlineDeps wires the outline service. LMS, Drafter and LLM are nil when
// the corresponding integration is disabled.
type OutlineDeps struct {
	Runs           repository.RunRepo
	Submissions    repository.SubmissionRepo
	UoW            db.UnitOfWork
	LMS            LMSClient
	Drafter        intelligence.OutlineDraftService
	LLM            llm.LLMClient
	SubmitInterval time.Duration
}

type outlineService struct {
	deps     OutlineDeps
	observer UseCaseObserver
}

func NewOutlineService(deps OutlineDeps, observers ...UseCaseObserver) OutlineService {
	return &outlineService{deps: deps, observer: combineObservers(observers)}
}

func (s *outlineService) Reconcile(ctx context.Context, req contract.ReconcileRequest) (resp *contract.ReconcileResponse, err error) {
	fields := map[string]any{"course_id": req.CourseID, "save": req.Save}
	done := track(ctx, s.observer, "reconcile", fields)
	defer func() { done(err) }()

	resp, err = s.reconcile(ctx, req)
	if resp != nil {
		fields["sections"] = resp.Result.Summary.SectionCount
		fields["themes"] = resp.Result.Summary.ThemeCount
		fields["balanced"] = resp.Result.Summary.BalancingSuccess
	}
	return resp, err
}

func (s *outlineService) reconcile(ctx context.Context, req contract.ReconcileRequest) (*contract.ReconcileResponse, error) {
	if err := req.Targets.Validate(); err != nil {
		return nil, &contract.ReconcileError{Code: contract.ErrInvalidTargets, Message: err.Error()}
	}

	var result *contract.ReconcileResult
	if req.Sections != nil {
		if req.RawOutline == "" {
			req.RawOutline = outline.Render(req.Sections)
		}
		result = workload.ReconcileSections(req.Sections, req.Targets)
	} else {
		result = workload.ReconcileText(req.RawOutline, req.Targets)
	}
	resp := &contract.ReconcileResponse{Result: result}

	if req.Quota != nil {
		resp.HourMismatches = workload.HourMismatches(result.Summary, *req.Quota)
		for _, m := range resp.HourMismatches {
			resp.Warnings = append(resp.Warnings, fmt.Sprintf(
				"%s: quota is %d hours but the outline projects %d", m.Type.Title(), m.RequestedHours, m.ProjectedHours))
		}
	}
	for _, sf := range result.Summary.Shortfalls {
		resp.Warnings = append(resp.Warnings, sf.Message)
	}

	if result.Summary.Empty {
		resp.Warnings = append(resp.Warnings, "outline contains no numbered sections")
		return resp, nil
	}
	if !req.Save {
		return resp, nil
	}

	run := &domain.Run{
		CourseID:         req.CourseID,
		Title:            req.Title,
		Targets:          req.Targets,
		RawOutline:       req.RawOutline,
		Sections:         result.Sections,
		BalancingSuccess: result.Summary.BalancingSuccess,
	}
	err := s.deps.UoW.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		return repository.NewSQLiteRunRepo(tx).Create(ctx, run)
	})
	if err != nil {
		return nil, fmt.Errorf("saving run: %w", err)
	}
	resp.RunID = run.ID
	return resp, nil
}

func (s *outlineService) Generate(ctx context.Context, req contract.GenerateRequest) (resp *contract.ReconcileResponse, err error) {
	fields := map[string]any{"course_id": req.CourseID, "sections_requested": req.SectionCount}
	done := track(ctx, s.observer, "generate", fields)
	defer func() { done(err) }()

	if strings.TrimSpace(req.CourseID) == "" {
		return nil, &contract.ReconcileError{Code: contract.ErrMissingCourse, Message: "course id is required"}
	}
	if err := s.requireLMS(); err != nil {
		return nil, err
	}
	if s.deps.Drafter == nil {
		return nil, &contract.ReconcileError{Code: contract.ErrFeatureDisabled, Message: "LLM is disabled (set SYLLABUS_LLM_ENABLED=true)"}
	}

	quota, err := s.deps.LMS.GetQuota(ctx, req.CourseID)
	if err != nil {
		return nil, fmt.Errorf("fetching quota for %s: %w", req.CourseID, err)
	}
	targets := domain.TargetsFromQuota(*quota)

	draft, err := s.deps.Drafter.Draft(ctx, intelligence.OutlineBrief{
		Title:        req.Title,
		Description:  req.Description,
		Language:     req.Language,
		SectionCount: req.SectionCount,
		Targets:      targets,
	})
	if err != nil {
		return nil, err
	}
	fields["model"] = draft.Model
	fields["llm_latency_ms"] = draft.LatencyMs

	resp, err = s.reconcile(ctx, contract.ReconcileRequest{
		CourseID:   req.CourseID,
		Title:      req.Title,
		RawOutline: draft.Text,
		Targets:    targets,
		Quota:      quota,
		Save:       req.Save,
	})
	if resp != nil {
		fields["balanced"] = resp.Result.Summary.BalancingSuccess
	}
	return resp, err
}

func (s *outlineService) Submit(ctx context.Context, runID string, progress func(done, total int)) (resp *contract.SubmitResponse, err error) {
	fields := map[string]any{"run_id": runID}
	done := track(ctx, s.observer, "submit", fields)
	defer func() { done(err) }()

	if err := s.requireLMS(); err != nil {
		return nil, err
	}
	run, err := s.deps.Runs.GetByID(ctx, runID)
	if err != nil {
		return nil, err
	}
	if run.CourseID == "" {
		return nil, &contract.ReconcileError{Code: contract.ErrMissingCourse, Message: "run has no course id; reconcile with --course"}
	}
	if len(run.Sections) == 0 {
		return nil, &contract.ReconcileError{Code: contract.ErrEmptyOutline, Message: "run has no sections to submit"}
	}
	fields["course_id"] = run.CourseID

	resp = &contract.SubmitResponse{RunID: run.ID, CourseID: run.CourseID}
	var recordErr error

	submitter := lms.NewSubmitter(s.deps.LMS, s.deps.SubmitInterval)
	submitter.OnOutcome = func(done, total int, out lms.SectionOutcome) {
		sub := &domain.Submission{
			RunID:        run.ID,
			SectionOrder: out.Section.Order,
			SectionName:  out.Section.Name,
			RemoteID:     out.RemoteID,
			Status:       domain.SubmissionAccepted,
		}
		result := contract.SectionSubmitResult{Order: out.Section.Order, Name: out.Section.Name, RemoteID: out.RemoteID}
		if out.Err != nil {
			sub.Status = domain.SubmissionFailed
			sub.Error = out.Err.Error()
			result.Error = out.Err.Error()
			resp.Failed++
		} else {
			resp.Accepted++
		}
		resp.Results = append(resp.Results, result)

		// Recording uses a fresh context so a cancelled run still keeps its history.
		if err := s.deps.Submissions.Record(context.WithoutCancel(ctx), sub); err != nil && recordErr == nil {
			recordErr = err
		}
		if progress != nil {
			progress(done, total)
		}
	}

	_, err = submitter.SubmitAll(ctx, run.CourseID, run.Sections)
	fields["accepted"] = resp.Accepted
	fields["failed"] = resp.Failed
	if err != nil {
		return resp, fmt.Errorf("submission interrupted: %w", err)
	}
	if recordErr != nil {
		return resp, fmt.Errorf("recording submissions: %w", recordErr)
	}
	return resp, nil
}

func (s *outlineService) Quota(ctx context.Context, courseID string) (q *domain.Quota, err error) {
	done := track(ctx, s.observer, "quota", map[string]any{"course_id": courseID})
	defer func() { done(err) }()

	if err := s.requireLMS(); err != nil {
		return nil, err
	}
	return s.deps.LMS.GetQuota(ctx, courseID)
}

func (s *outlineService) ListRuns(ctx context.Context, limit int) ([]*domain.Run, error) {
	return s.deps.Runs.List(ctx, limit)
}

func (s *outlineService) GetRun(ctx context.Context, id string) (*domain.Run, error) {
	return s.deps.Runs.GetByID(ctx, id)
}

func (s *outlineService) DeleteRun(ctx context.Context, id string) (err error) {
	done := track(ctx, s.observer, "delete-run", map[string]any{"run_id": id})
	defer func() { done(err) }()
	return s.deps.Runs.Delete(ctx, id)
}

func (s *outlineService) Submissions(ctx context.Context, runID string) ([]*domain.Submission, error) {
	return s.deps.Submissions.ListByRun(ctx, runID)
}

// Status probes the LLM, the LMS and the run store concurrently.
func (s *outlineService) Status(ctx context.Context) (*contract.StatusResponse, error) {
	resp := &contract.StatusResponse{
		LLM: contract.ComponentStatus{Enabled: s.deps.LLM != nil},
		LMS: contract.ComponentStatus{Enabled: s.deps.LMS != nil},
	}

	g, gctx := errgroup.WithContext(ctx)
	if s.deps.LLM != nil {
		g.Go(func() error {
			resp.LLM.Reachable = s.deps.LLM.Available(gctx)
			return nil
		})
	} else {
		resp.LLM.Detail = "disabled"
	}
	if s.deps.LMS != nil {
		g.Go(func() error {
			resp.LMS.Reachable = s.deps.LMS.Reachable(gctx)
			return nil
		})
	} else {
		resp.LMS.Detail = "disabled"
	}
	g.Go(func() error {
		n, err := s.deps.Runs.Count(gctx)
		if err != nil {
			return err
		}
		resp.RunCount = n
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("collecting status: %w", err)
	}
	return resp, nil
}

func (s *outlineService) requireLMS() error {
	if s.deps.LMS == nil {
		return &contract.ReconcileError{Code: contract.ErrFeatureDisabled, Message: "LMS integration is disabled (set SYLLABUS_LMS_ENABLED=true)"}
	}
	return nil
}

// IsNotFound reports whether err means a stored run does not exist.
func IsNotFound(err error) bool {
	return errors.Is(err, repository.ErrNotFound)
}
