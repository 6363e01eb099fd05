package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/syllabus/internal/db"
	"github.com/alexanderramin/syllabus/internal/domain"
	"github.com/google/uuid"
)

// SQLiteSubmissionRepo implements SubmissionRepo using a SQLite database.
type SQLiteSubmissionRepo struct {
	db db.DBTX
}

func NewSQLiteSubmissionRepo(conn db.DBTX) *SQLiteSubmissionRepo {
	return &SQLiteSubmissionRepo{db: conn}
}

func (r *SQLiteSubmissionRepo) conn(ctx context.Context) db.DBTX {
	return db.TxFromContext(ctx, r.db)
}

func (r *SQLiteSubmissionRepo) Record(ctx context.Context, s *domain.Submission) error {
	if s.ID == "" {
		s.ID = uuid.New().String()
	}
	if s.SubmittedAt.IsZero() {
		s.SubmittedAt = time.Now().UTC()
	}
	_, err := r.conn(ctx).ExecContext(ctx,
		`INSERT INTO submissions (id, run_id, section_order, section_name, remote_id, status, error, submitted_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		s.ID, s.RunID, s.SectionOrder, s.SectionName, s.RemoteID, string(s.Status), s.Error, formatTime(s.SubmittedAt),
	)
	if err != nil {
		return fmt.Errorf("inserting submission: %w", err)
	}
	return nil
}

func (r *SQLiteSubmissionRepo) ListByRun(ctx context.Context, runID string) ([]*domain.Submission, error) {
	rows, err := r.conn(ctx).QueryContext(ctx,
		`SELECT id, run_id, section_order, section_name, remote_id, status, error, submitted_at
		FROM submissions WHERE run_id = ? ORDER BY submitted_at, section_order`, runID)
	if err != nil {
		return nil, fmt.Errorf("listing submissions: %w", err)
	}
	defer rows.Close()

	var out []*domain.Submission
	for rows.Next() {
		var s domain.Submission
		var status, submittedAt string
		if err := rows.Scan(&s.ID, &s.RunID, &s.SectionOrder, &s.SectionName, &s.RemoteID, &status, &s.Error, &submittedAt); err != nil {
			return nil, fmt.Errorf("scanning submission: %w", err)
		}
		s.Status = domain.SubmissionStatus(status)
		if s.SubmittedAt, err = parseTime(submittedAt); err != nil {
			return nil, fmt.Errorf("parsing submitted_at: %w", err)
		}
		out = append(out, &s)
	}
	return out, rows.Err()
}
