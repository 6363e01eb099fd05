package db

import (
	"database/sql"
	"fmt"
	"strings"
)

// Migrate runs all schema migrations. Statements are idempotent and re-run
// on every open.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			// ALTER TABLE ADD COLUMN has no IF NOT EXISTS form in SQLite.
			if strings.Contains(err.Error(), "duplicate column name") {
				continue
			}
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS runs (
		id                      TEXT PRIMARY KEY,
		course_id               TEXT NOT NULL DEFAULT '',
		title                   TEXT NOT NULL DEFAULT '',
		lecture_target          INTEGER NOT NULL DEFAULT 0 CHECK(lecture_target >= 0),
		lab_target              INTEGER NOT NULL DEFAULT 0 CHECK(lab_target >= 0),
		practice_target         INTEGER NOT NULL DEFAULT 0 CHECK(practice_target >= 0),
		independent_study_hours INTEGER NOT NULL DEFAULT 0 CHECK(independent_study_hours >= 0),
		raw_outline             TEXT NOT NULL DEFAULT '',
		balancing_success       INTEGER NOT NULL DEFAULT 0,
		created_at              TEXT NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_runs_course ON runs(course_id)`,
	`CREATE INDEX IF NOT EXISTS idx_runs_created ON runs(created_at)`,

	`CREATE TABLE IF NOT EXISTS run_sections (
		id                TEXT PRIMARY KEY,
		run_id            TEXT NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
		order_index       INTEGER NOT NULL,
		name              TEXT NOT NULL,
		independent_hours INTEGER NOT NULL DEFAULT 0,
		UNIQUE(run_id, order_index)
	)`,
	`CREATE INDEX IF NOT EXISTS idx_run_sections_run ON run_sections(run_id)`,

	`CREATE TABLE IF NOT EXISTS run_themes (
		id          TEXT PRIMARY KEY,
		section_id  TEXT NOT NULL REFERENCES run_sections(id) ON DELETE CASCADE,
		order_index INTEGER NOT NULL,
		name        TEXT NOT NULL,
		label       TEXT NOT NULL DEFAULT '',
		label_kind  TEXT NOT NULL DEFAULT 'none'
		            CHECK(label_kind IN ('none','recognized','unrecognized')),
		work_type   TEXT NOT NULL
		            CHECK(work_type IN ('lecture','lab','practice','independent-study'))
	)`,
	`CREATE INDEX IF NOT EXISTS idx_run_themes_section ON run_themes(section_id)`,
	// Pairing fillers were tracked after the first schema shipped.
	`ALTER TABLE run_themes ADD COLUMN filler INTEGER NOT NULL DEFAULT 0`,

	`CREATE TABLE IF NOT EXISTS submissions (
		id            TEXT PRIMARY KEY,
		run_id        TEXT NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
		section_order INTEGER NOT NULL,
		section_name  TEXT NOT NULL,
		remote_id     TEXT NOT NULL DEFAULT '',
		status        TEXT NOT NULL CHECK(status IN ('accepted','failed')),
		error         TEXT NOT NULL DEFAULT '',
		submitted_at  TEXT NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_submissions_run ON submissions(run_id)`,
}
