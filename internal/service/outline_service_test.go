package service

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/alexanderramin/syllabus/internal/contract"
	"github.com/alexanderramin/syllabus/internal/db"
	"github.com/alexanderramin/syllabus/internal/domain"
	"github.com/alexanderramin/syllabus/internal/intelligence"
	"github.com/alexanderramin/syllabus/internal/llm"
	"github.com/alexanderramin/syllabus/internal/lms"
	"github.com/alexanderramin/syllabus/internal/repository"
	"github.com/alexanderramin/syllabus/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleOutline = `1. Relational model
 - Relations and keys (lecture)
 - Schema design (lab)
2. SQL
 - Joins (lecture)
 - Query lab (lab)
`

type fakeLMS struct {
	mu        sync.Mutex
	quota     *domain.Quota
	quotaErr  error
	failOn    map[int]error
	submitted []string
	reachable bool
}

func (f *fakeLMS) GetQuota(_ context.Context, courseID string) (*domain.Quota, error) {
	if f.quotaErr != nil {
		return nil, f.quotaErr
	}
	q := *f.quota
	q.CourseID = courseID
	return &q, nil
}

func (f *fakeLMS) SubmitSection(_ context.Context, _ string, sec *domain.Section) (*lms.SubmitResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.submitted = append(f.submitted, sec.Name)
	if err := f.failOn[sec.Order]; err != nil {
		return nil, err
	}
	return &lms.SubmitResult{RemoteID: "ch-" + sec.Name}, nil
}

func (f *fakeLMS) Reachable(context.Context) bool { return f.reachable }

type fakeDrafter struct {
	text    string
	err     error
	lastReq intelligence.OutlineBrief
}

func (f *fakeDrafter) Draft(_ context.Context, brief intelligence.OutlineBrief) (*intelligence.OutlineDraft, error) {
	f.lastReq = brief
	if f.err != nil {
		return nil, f.err
	}
	return &intelligence.OutlineDraft{Text: f.text, Model: "fake"}, nil
}

type fakeLLM struct{ available bool }

func (f fakeLLM) Generate(context.Context, llm.GenerateRequest) (*llm.GenerateResponse, error) {
	return nil, errors.New("not used")
}
func (f fakeLLM) Available(context.Context) bool { return f.available }

type captureUseCases struct {
	mu     sync.Mutex
	events []UseCaseEvent
}

func (c *captureUseCases) ObserveUseCase(_ context.Context, e UseCaseEvent) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.events = append(c.events, e)
}

func newTestService(t *testing.T, mutate func(*OutlineDeps)) (OutlineService, *captureUseCases) {
	t.Helper()
	database := testutil.NewTestDB(t)
	deps := OutlineDeps{
		Runs:        repository.NewSQLiteRunRepo(database),
		Submissions: repository.NewSQLiteSubmissionRepo(database),
		UoW:         db.NewSQLiteUnitOfWork(database),
	}
	if mutate != nil {
		mutate(&deps)
	}
	obs := &captureUseCases{}
	return NewOutlineService(deps, obs), obs
}

func reconcileErrCode(t *testing.T, err error) contract.ReconcileErrorCode {
	t.Helper()
	var rerr *contract.ReconcileError
	require.True(t, errors.As(err, &rerr), "expected ReconcileError, got %v", err)
	return rerr.Code
}

func TestReconcile_InvalidTargets(t *testing.T) {
	svc, obs := newTestService(t, nil)

	_, err := svc.Reconcile(context.Background(), contract.NewReconcileRequest(sampleOutline, domain.Targets{Lecture: -1}))

	assert.Equal(t, contract.ErrInvalidTargets, reconcileErrCode(t, err))
	require.Len(t, obs.events, 1)
	assert.Equal(t, "reconcile", obs.events[0].Name)
	assert.False(t, obs.events[0].Success())
	assert.Equal(t, contract.ErrInvalidTargets, obs.events[0].Code)
}

func TestReconcile_WithoutSaveDoesNotPersist(t *testing.T) {
	svc, _ := newTestService(t, nil)
	ctx := context.Background()

	resp, err := svc.Reconcile(ctx, contract.NewReconcileRequest(sampleOutline, domain.Targets{Lecture: 2, Lab: 2}))

	require.NoError(t, err)
	assert.Empty(t, resp.RunID)
	assert.True(t, resp.Result.Summary.BalancingSuccess)
	assert.Empty(t, resp.Warnings)

	runs, err := svc.ListRuns(ctx, 10)
	require.NoError(t, err)
	assert.Empty(t, runs)
}

func TestReconcile_SavePersistsRun(t *testing.T) {
	svc, obs := newTestService(t, nil)
	ctx := context.Background()

	req := contract.NewReconcileRequest(sampleOutline, domain.Targets{Lecture: 3, Lab: 2, IndependentStudyHours: 7})
	req.CourseID = "DB-201"
	req.Title = "Databases"
	req.Save = true

	resp, err := svc.Reconcile(ctx, req)
	require.NoError(t, err)
	require.NotEmpty(t, resp.RunID)
	assert.True(t, resp.Result.Summary.BalancingSuccess)

	run, err := svc.GetRun(ctx, resp.RunID)
	require.NoError(t, err)
	assert.Equal(t, "DB-201", run.CourseID)
	assert.Equal(t, "Databases", run.Title)
	assert.Equal(t, sampleOutline, run.RawOutline)
	assert.Equal(t, resp.Result.Summary.BalancingSuccess, run.BalancingSuccess)
	require.Len(t, run.Sections, len(resp.Result.Sections))
	for i, sec := range resp.Result.Sections {
		assert.Equal(t, sec.Name, run.Sections[i].Name)
		assert.Equal(t, sec.IndependentHours, run.Sections[i].IndependentHours)
		assert.Equal(t, len(sec.Themes), len(run.Sections[i].Themes))
	}
	assert.Equal(t, 3, domain.CountByType(run.Sections)[domain.WorkLecture])

	require.Len(t, obs.events, 1)
	assert.True(t, obs.events[0].Success())
	assert.Equal(t, true, obs.events[0].Fields["save"])
}

func TestReconcile_QuotaMismatchWarns(t *testing.T) {
	svc, _ := newTestService(t, nil)

	req := contract.NewReconcileRequest(sampleOutline, domain.Targets{Lecture: 2, Lab: 2})
	req.Quota = &domain.Quota{Hours: map[domain.WorkType]int{domain.WorkLecture: 5, domain.WorkLab: 4}}

	resp, err := svc.Reconcile(context.Background(), req)

	require.NoError(t, err)
	require.Len(t, resp.HourMismatches, 1)
	assert.Equal(t, domain.WorkLecture, resp.HourMismatches[0].Type)
	assert.Equal(t, 5, resp.HourMismatches[0].RequestedHours)
	assert.Equal(t, 4, resp.HourMismatches[0].ProjectedHours)
	assert.Contains(t, resp.Warnings[0], "quota is 5 hours")
}

func TestReconcile_EmptyOutlineIsNotSaved(t *testing.T) {
	svc, _ := newTestService(t, nil)
	ctx := context.Background()

	req := contract.NewReconcileRequest("no numbered headings here", domain.Targets{Lecture: 2})
	req.Save = true

	resp, err := svc.Reconcile(ctx, req)

	require.NoError(t, err)
	assert.True(t, resp.Result.Summary.Empty)
	assert.Empty(t, resp.RunID)
	assert.Contains(t, resp.Warnings, "outline contains no numbered sections")
}

func TestGenerate_RequiresCourseAndIntegrations(t *testing.T) {
	svc, _ := newTestService(t, nil)
	ctx := context.Background()

	_, err := svc.Generate(ctx, contract.NewGenerateRequest("", "X"))
	assert.Equal(t, contract.ErrMissingCourse, reconcileErrCode(t, err))

	_, err = svc.Generate(ctx, contract.NewGenerateRequest("CS-1", "X"))
	assert.Equal(t, contract.ErrFeatureDisabled, reconcileErrCode(t, err))

	svc, _ = newTestService(t, func(d *OutlineDeps) { d.LMS = &fakeLMS{} })
	_, err = svc.Generate(ctx, contract.NewGenerateRequest("CS-1", "X"))
	assert.Equal(t, contract.ErrFeatureDisabled, reconcileErrCode(t, err))
}

func TestGenerate_QuotaDrivesTargets(t *testing.T) {
	quota := &domain.Quota{Hours: map[domain.WorkType]int{
		domain.WorkLecture:          6,
		domain.WorkLab:              4,
		domain.WorkIndependentStudy: 10,
	}}
	drafter := &fakeDrafter{text: sampleOutline}
	svc, obs := newTestService(t, func(d *OutlineDeps) {
		d.LMS = &fakeLMS{quota: quota}
		d.Drafter = drafter
	})
	ctx := context.Background()

	req := contract.NewGenerateRequest("DB-201", "Databases")
	req.SectionCount = 2
	resp, err := svc.Generate(ctx, req)

	require.NoError(t, err)
	assert.Equal(t, domain.Targets{Lecture: 3, Lab: 2, IndependentStudyHours: 10}, drafter.lastReq.Targets)
	assert.Equal(t, 2, drafter.lastReq.SectionCount)
	assert.Equal(t, "Databases", drafter.lastReq.Title)

	summary := resp.Result.Summary
	assert.True(t, summary.BalancingSuccess)
	assert.Equal(t, 3, summary.FinalCounts[domain.WorkLecture])
	assert.Equal(t, 10, summary.ProjectedHours[domain.WorkIndependentStudy])
	assert.Empty(t, resp.HourMismatches)
	require.NotEmpty(t, resp.RunID)

	run, err := svc.GetRun(ctx, resp.RunID)
	require.NoError(t, err)
	assert.Equal(t, "DB-201", run.CourseID)

	require.Len(t, obs.events, 1)
	assert.Equal(t, "generate", obs.events[0].Name)
	assert.Equal(t, "fake", obs.events[0].Fields["model"])
}

func TestGenerate_PropagatesDraftErrors(t *testing.T) {
	svc, _ := newTestService(t, func(d *OutlineDeps) {
		d.LMS = &fakeLMS{quota: &domain.Quota{Hours: map[domain.WorkType]int{}}}
		d.Drafter = &fakeDrafter{err: llm.ErrInvalidOutput}
	})

	_, err := svc.Generate(context.Background(), contract.NewGenerateRequest("CS-1", "X"))

	assert.ErrorIs(t, err, llm.ErrInvalidOutput)
}

func TestSubmit_RecordsEverySection(t *testing.T) {
	fake := &fakeLMS{failOn: map[int]error{2: lms.ErrRejected}}
	svc, _ := newTestService(t, func(d *OutlineDeps) { d.LMS = fake })
	ctx := context.Background()

	req := contract.NewReconcileRequest(sampleOutline, domain.Targets{Lecture: 2, Lab: 2})
	req.CourseID = "DB-201"
	req.Save = true
	saved, err := svc.Reconcile(ctx, req)
	require.NoError(t, err)

	var progress []int
	resp, err := svc.Submit(ctx, saved.RunID, func(done, total int) {
		assert.Equal(t, 2, total)
		progress = append(progress, done)
	})

	require.NoError(t, err)
	assert.Equal(t, 1, resp.Accepted)
	assert.Equal(t, 1, resp.Failed)
	assert.Equal(t, []int{1, 2}, progress)
	assert.Equal(t, []string{"Relational model", "SQL"}, fake.submitted)
	require.Len(t, resp.Results, 2)
	assert.Equal(t, "ch-Relational model", resp.Results[0].RemoteID)
	assert.Contains(t, resp.Results[1].Error, "rejected")

	subs, err := svc.Submissions(ctx, saved.RunID)
	require.NoError(t, err)
	require.Len(t, subs, 2)
	assert.Equal(t, domain.SubmissionAccepted, subs[0].Status)
	assert.Equal(t, domain.SubmissionFailed, subs[1].Status)
}

func TestSubmit_Preconditions(t *testing.T) {
	ctx := context.Background()

	svc, _ := newTestService(t, nil)
	_, err := svc.Submit(ctx, "whatever", nil)
	assert.Equal(t, contract.ErrFeatureDisabled, reconcileErrCode(t, err))

	svc, _ = newTestService(t, func(d *OutlineDeps) { d.LMS = &fakeLMS{} })
	_, err = svc.Submit(ctx, "missing", nil)
	assert.True(t, IsNotFound(err))

	req := contract.NewReconcileRequest(sampleOutline, domain.Targets{})
	req.Save = true
	saved, err := svc.Reconcile(ctx, req)
	require.NoError(t, err)

	_, err = svc.Submit(ctx, saved.RunID, nil)
	assert.Equal(t, contract.ErrMissingCourse, reconcileErrCode(t, err))
}

func TestQuota(t *testing.T) {
	svc, _ := newTestService(t, nil)
	_, err := svc.Quota(context.Background(), "CS-1")
	assert.Equal(t, contract.ErrFeatureDisabled, reconcileErrCode(t, err))

	notFound := &fakeLMS{quotaErr: lms.ErrNotFound}
	svc, _ = newTestService(t, func(d *OutlineDeps) { d.LMS = notFound })
	_, err = svc.Quota(context.Background(), "CS-1")
	assert.ErrorIs(t, err, lms.ErrNotFound)
}

func TestDeleteRun(t *testing.T) {
	svc, _ := newTestService(t, nil)
	ctx := context.Background()

	req := contract.NewReconcileRequest(sampleOutline, domain.Targets{})
	req.Save = true
	saved, err := svc.Reconcile(ctx, req)
	require.NoError(t, err)

	require.NoError(t, svc.DeleteRun(ctx, saved.RunID))
	assert.True(t, IsNotFound(svc.DeleteRun(ctx, saved.RunID)))
}

func TestStatus(t *testing.T) {
	svc, _ := newTestService(t, func(d *OutlineDeps) {
		d.LMS = &fakeLMS{reachable: true}
		d.LLM = fakeLLM{available: false}
	})
	ctx := context.Background()

	req := contract.NewReconcileRequest(sampleOutline, domain.Targets{})
	req.Save = true
	_, err := svc.Reconcile(ctx, req)
	require.NoError(t, err)

	st, err := svc.Status(ctx)
	require.NoError(t, err)
	assert.True(t, st.LLM.Enabled)
	assert.False(t, st.LLM.Reachable)
	assert.True(t, st.LMS.Enabled)
	assert.True(t, st.LMS.Reachable)
	assert.Equal(t, 1, st.RunCount)

	svc, _ = newTestService(t, nil)
	st, err = svc.Status(ctx)
	require.NoError(t, err)
	assert.False(t, st.LLM.Enabled)
	assert.Equal(t, "disabled", st.LMS.Detail)
}
