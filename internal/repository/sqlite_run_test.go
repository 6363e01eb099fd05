package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alexanderramin/syllabus/internal/db"
	"github.com/alexanderramin/syllabus/internal/domain"
	"github.com/alexanderramin/syllabus/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunRepo_CreateAndGetByID(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := NewSQLiteRunRepo(database)
	ctx := context.Background()

	filler := &domain.Theme{Name: domain.FillerThemeName, Label: "independent-study", LabelKind: domain.LabelRecognized, Type: domain.WorkIndependentStudy, Filler: true}
	odd := &domain.Theme{Name: "Mystery", Label: "workshop", LabelKind: domain.LabelUnrecognized, Type: domain.WorkIndependentStudy}
	run := testutil.NewTestRun("Databases", testutil.WithSections(
		testutil.NewTestSection(1, "Intro", testutil.NewTestTheme("Basics", domain.WorkLecture), filler),
		testutil.NewTestSection(2, "Advanced", odd),
	))
	run.RawOutline = "1. Intro\n - Basics (lecture)\n"

	require.NoError(t, repo.Create(ctx, run))

	got, err := repo.GetByID(ctx, run.ID)
	require.NoError(t, err)
	assert.Equal(t, run.ID, got.ID)
	assert.Equal(t, "Databases", got.Title)
	assert.Equal(t, run.Targets, got.Targets)
	assert.Equal(t, run.RawOutline, got.RawOutline)
	assert.True(t, got.BalancingSuccess)
	assert.WithinDuration(t, run.CreatedAt, got.CreatedAt, time.Microsecond)

	require.Len(t, got.Sections, 2)
	assert.Equal(t, "Intro", got.Sections[0].Name)
	require.Len(t, got.Sections[0].Themes, 2)
	assert.Equal(t, "Basics", got.Sections[0].Themes[0].Name)
	assert.Equal(t, domain.WorkLecture, got.Sections[0].Themes[0].Type)
	assert.True(t, got.Sections[0].Themes[1].Filler)
	assert.Equal(t, domain.LabelUnrecognized, got.Sections[1].Themes[0].LabelKind)
	assert.Equal(t, "workshop", got.Sections[1].Themes[0].Label)
}

func TestRunRepo_SectionWithoutThemes(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := NewSQLiteRunRepo(database)
	ctx := context.Background()

	run := testutil.NewTestRun("Empty section", testutil.WithSections(testutil.NewTestSection(1, "Nothing yet")))
	require.NoError(t, repo.Create(ctx, run))

	got, err := repo.GetByID(ctx, run.ID)
	require.NoError(t, err)
	require.Len(t, got.Sections, 1)
	assert.Empty(t, got.Sections[0].Themes)
}

func TestRunRepo_GetByID_NotFound(t *testing.T) {
	repo := NewSQLiteRunRepo(testutil.NewTestDB(t))

	_, err := repo.GetByID(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRunRepo_ListNewestFirst(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := NewSQLiteRunRepo(database)
	ctx := context.Background()

	base := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	for i, title := range []string{"first", "second", "third"} {
		run := testutil.NewTestRun(title, testutil.WithCreatedAt(base.Add(time.Duration(i)*time.Hour)))
		require.NoError(t, repo.Create(ctx, run))
	}

	runs, err := repo.List(ctx, 2)
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, "third", runs[0].Title)
	assert.Equal(t, "second", runs[1].Title)
	assert.Nil(t, runs[0].Sections)

	n, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, n)
}

func TestRunRepo_Delete(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := NewSQLiteRunRepo(database)
	subs := NewSQLiteSubmissionRepo(database)
	ctx := context.Background()

	run := testutil.NewTestRun("to delete")
	require.NoError(t, repo.Create(ctx, run))
	require.NoError(t, subs.Record(ctx, &domain.Submission{RunID: run.ID, SectionOrder: 1, SectionName: "Foundations", Status: domain.SubmissionAccepted}))

	require.NoError(t, repo.Delete(ctx, run.ID))

	_, err := repo.GetByID(ctx, run.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	list, err := subs.ListByRun(ctx, run.ID)
	require.NoError(t, err)
	assert.Empty(t, list)

	assert.ErrorIs(t, repo.Delete(ctx, run.ID), ErrNotFound)
}

func TestRunRepo_CreateRollsBackInsideUnitOfWork(t *testing.T) {
	database := testutil.NewTestDB(t)
	injected := errors.New("disk full")
	// 1 run insert, 1 section insert, then the first theme insert fails.
	uow := testutil.NewFaultyUoW(database, 3, injected)
	ctx := context.Background()

	run := testutil.NewTestRun("partial")
	err := uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		return NewSQLiteRunRepo(tx).Create(ctx, run)
	})
	assert.ErrorIs(t, err, injected)
	assert.Equal(t, 3, uow.Writes())

	n, err := NewSQLiteRunRepo(database).Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)
	assert.Zero(t, testutil.CountRows(t, database, "run_sections"))
}

func TestRunRepo_DeleteCascades(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := NewSQLiteRunRepo(database)
	ctx := context.Background()

	run := testutil.NewTestRun("cascade", testutil.WithSections(
		testutil.NewTestSection(1, "Intro", testutil.NewTestTheme("Overview", domain.WorkLecture)),
	))
	require.NoError(t, repo.Create(ctx, run))
	require.NoError(t, NewSQLiteSubmissionRepo(database).Record(ctx, &domain.Submission{
		RunID: run.ID, SectionOrder: 1, SectionName: "Intro", Status: domain.SubmissionAccepted,
	}))
	require.Equal(t, 1, testutil.CountRows(t, database, "run_themes"))

	require.NoError(t, repo.Delete(ctx, run.ID))
	for _, table := range []string{"runs", "run_sections", "run_themes", "submissions"} {
		assert.Zero(t, testutil.CountRows(t, database, table), table)
	}
}

func TestRunRepo_ReadsThroughContextTransaction(t *testing.T) {
	database := testutil.NewTestDB(t)
	uow := db.NewSQLiteUnitOfWork(database)
	pooled := NewSQLiteRunRepo(database)

	err := uow.WithinTx(context.Background(), func(ctx context.Context, tx db.DBTX) error {
		run := testutil.NewTestRun("in-flight")
		if err := NewSQLiteRunRepo(tx).Create(ctx, run); err != nil {
			return err
		}
		got, err := pooled.GetByID(ctx, run.ID)
		if err != nil {
			return err
		}
		assert.Equal(t, "in-flight", got.Title)
		return nil
	})
	require.NoError(t, err)
}
