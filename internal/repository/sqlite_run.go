package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/syllabus/internal/db"
	"github.com/alexanderramin/syllabus/internal/domain"
	"github.com/google/uuid"
)

// SQLiteRunRepo implements RunRepo using a SQLite database.
type SQLiteRunRepo struct {
	db db.DBTX
}

// NewSQLiteRunRepo creates a new SQLiteRunRepo.
func NewSQLiteRunRepo(conn db.DBTX) *SQLiteRunRepo {
	return &SQLiteRunRepo{db: conn}
}

// conn prefers a transaction carried by ctx over the repo's own handle.
func (r *SQLiteRunRepo) conn(ctx context.Context) db.DBTX {
	return db.TxFromContext(ctx, r.db)
}

const runColumns = `id, course_id, title, lecture_target, lab_target, practice_target,
	independent_study_hours, raw_outline, balancing_success, created_at`

func (r *SQLiteRunRepo) Create(ctx context.Context, run *domain.Run) error {
	if run.ID == "" {
		run.ID = uuid.New().String()
	}
	if run.CreatedAt.IsZero() {
		run.CreatedAt = time.Now().UTC()
	}

	query := `INSERT INTO runs (` + runColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.conn(ctx).ExecContext(ctx, query,
		run.ID,
		run.CourseID,
		run.Title,
		run.Targets.Lecture,
		run.Targets.Lab,
		run.Targets.Practice,
		run.Targets.IndependentStudyHours,
		run.RawOutline,
		boolToInt(run.BalancingSuccess),
		formatTime(run.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("inserting run: %w", err)
	}

	for _, sec := range run.Sections {
		if err := r.insertSection(ctx, run.ID, sec); err != nil {
			return err
		}
	}
	return nil
}

func (r *SQLiteRunRepo) insertSection(ctx context.Context, runID string, sec *domain.Section) error {
	sectionID := uuid.New().String()
	_, err := r.conn(ctx).ExecContext(ctx,
		`INSERT INTO run_sections (id, run_id, order_index, name, independent_hours) VALUES (?, ?, ?, ?, ?)`,
		sectionID, runID, sec.Order, sec.Name, sec.IndependentHours,
	)
	if err != nil {
		return fmt.Errorf("inserting section %d: %w", sec.Order, err)
	}

	for i, th := range sec.Themes {
		_, err := r.conn(ctx).ExecContext(ctx,
			`INSERT INTO run_themes (id, section_id, order_index, name, label, label_kind, work_type, filler)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			uuid.New().String(), sectionID, i, th.Name, th.Label, string(th.LabelKind), string(th.Type), boolToInt(th.Filler),
		)
		if err != nil {
			return fmt.Errorf("inserting theme %q of section %d: %w", th.Name, sec.Order, err)
		}
	}
	return nil
}

func (r *SQLiteRunRepo) GetByID(ctx context.Context, id string) (*domain.Run, error) {
	row := r.conn(ctx).QueryRowContext(ctx, `SELECT `+runColumns+` FROM runs WHERE id = ?`, id)
	run, err := scanRun(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("run %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("scanning run: %w", err)
	}

	sections, err := r.loadSections(ctx, id)
	if err != nil {
		return nil, err
	}
	run.Sections = sections
	return run, nil
}

func (r *SQLiteRunRepo) loadSections(ctx context.Context, runID string) ([]*domain.Section, error) {
	rows, err := r.conn(ctx).QueryContext(ctx,
		`SELECT s.id, s.order_index, s.name, s.independent_hours,
		        t.name, t.label, t.label_kind, t.work_type, t.filler
		FROM run_sections s
		LEFT JOIN run_themes t ON t.section_id = s.id
		WHERE s.run_id = ?
		ORDER BY s.order_index, t.order_index`, runID)
	if err != nil {
		return nil, fmt.Errorf("listing sections: %w", err)
	}
	defer rows.Close()

	var sections []*domain.Section
	var current *domain.Section
	var currentID string
	for rows.Next() {
		var (
			sectionID, sectionName string
			order, hours           int
			themeName, label       sql.NullString
			labelKind, workType    sql.NullString
			filler                 sql.NullInt64
		)
		if err := rows.Scan(&sectionID, &order, &sectionName, &hours,
			&themeName, &label, &labelKind, &workType, &filler); err != nil {
			return nil, fmt.Errorf("scanning section row: %w", err)
		}
		if current == nil || sectionID != currentID {
			current = &domain.Section{Name: sectionName, Order: order, IndependentHours: hours, Themes: []*domain.Theme{}}
			currentID = sectionID
			sections = append(sections, current)
		}
		if !themeName.Valid {
			continue
		}
		current.Themes = append(current.Themes, &domain.Theme{
			Name:      themeName.String,
			Label:     label.String,
			LabelKind: domain.LabelKind(labelKind.String),
			Type:      domain.WorkType(workType.String),
			Filler:    intToBool(int(filler.Int64)),
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating sections: %w", err)
	}
	if sections == nil {
		sections = []*domain.Section{}
	}
	return sections, nil
}

func (r *SQLiteRunRepo) List(ctx context.Context, limit int) ([]*domain.Run, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := r.conn(ctx).QueryContext(ctx,
		`SELECT `+runColumns+` FROM runs ORDER BY created_at DESC, id LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("listing runs: %w", err)
	}
	defer rows.Close()

	var runs []*domain.Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning run: %w", err)
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

func (r *SQLiteRunRepo) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.conn(ctx).QueryRowContext(ctx, `SELECT COUNT(*) FROM runs`).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting runs: %w", err)
	}
	return n, nil
}

func (r *SQLiteRunRepo) Delete(ctx context.Context, id string) error {
	res, err := r.conn(ctx).ExecContext(ctx, `DELETE FROM runs WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting run: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("deleting run: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("run %s: %w", id, ErrNotFound)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRun(row rowScanner) (*domain.Run, error) {
	var run domain.Run
	var success int
	var createdAt string
	err := row.Scan(
		&run.ID, &run.CourseID, &run.Title,
		&run.Targets.Lecture, &run.Targets.Lab, &run.Targets.Practice,
		&run.Targets.IndependentStudyHours, &run.RawOutline, &success, &createdAt,
	)
	if err != nil {
		return nil, err
	}
	run.BalancingSuccess = intToBool(success)
	run.CreatedAt, err = parseTime(createdAt)
	if err != nil {
		return nil, fmt.Errorf("parsing created_at: %w", err)
	}
	return &run, nil
}
