package db

import (
	"database/sql"
	"fmt"
)

// Migrate applies the schema. Every statement is idempotent, so it runs on
// each open.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}

// Record kinds stored in record_faculty.
const (
	KindPublication = "publication"
	KindProject     = "project"
	KindPatent      = "patent"
	KindEvent       = "event"
)

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS faculty (
		id   INTEGER PRIMARY KEY CHECK(id >= 1),
		name TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS publications (
		seq      INTEGER PRIMARY KEY,
		year     INTEGER NOT NULL,
		count    INTEGER NOT NULL CHECK(count >= 1),
		type     TEXT NOT NULL DEFAULT ''
		         CHECK(type IN ('','journal','conference','book','bookChapter')),
		indexing TEXT NOT NULL DEFAULT ''
		         CHECK(indexing IN ('','sci','scopus','esci','other'))
	)`,
	`CREATE INDEX IF NOT EXISTS idx_publications_year ON publications(year)`,

	`CREATE TABLE IF NOT EXISTS projects (
		id      INTEGER PRIMARY KEY CHECK(id >= 1),
		seq     INTEGER NOT NULL DEFAULT 0,
		year    INTEGER NOT NULL,
		status  TEXT NOT NULL DEFAULT ''
		        CHECK(status IN ('','ongoing','completed')),
		funding REAL NOT NULL DEFAULT 0 CHECK(funding >= 0)
	)`,
	`CREATE INDEX IF NOT EXISTS idx_projects_year ON projects(year)`,

	`CREATE TABLE IF NOT EXISTS patents (
		id     INTEGER PRIMARY KEY CHECK(id >= 1),
		seq    INTEGER NOT NULL DEFAULT 0,
		year   INTEGER NOT NULL,
		status TEXT NOT NULL DEFAULT ''
		       CHECK(status IN ('','filed','granted'))
	)`,

	`CREATE TABLE IF NOT EXISTS events (
		seq   INTEGER PRIMARY KEY,
		year  INTEGER NOT NULL,
		count INTEGER NOT NULL CHECK(count >= 1),
		type  TEXT NOT NULL DEFAULT ''
		      CHECK(type IN ('','conference','stc','workshop','gian'))
	)`,

	`CREATE TABLE IF NOT EXISTS record_faculty (
		kind       TEXT NOT NULL CHECK(kind IN ('publication','project','patent','event')),
		record_id  INTEGER NOT NULL,
		faculty_id INTEGER NOT NULL REFERENCES faculty(id) ON DELETE CASCADE,
		position   INTEGER NOT NULL DEFAULT 0,
		PRIMARY KEY (kind, record_id, faculty_id)
	)`,
	`CREATE INDEX IF NOT EXISTS idx_record_faculty_faculty ON record_faculty(faculty_id)`,

	`CREATE TABLE IF NOT EXISTS dataset_loads (
		id            TEXT PRIMARY KEY,
		source        TEXT NOT NULL,
		record_count  INTEGER NOT NULL DEFAULT 0,
		faculty_count INTEGER NOT NULL DEFAULT 0,
		loaded_at     TEXT NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_dataset_loads_loaded ON dataset_loads(loaded_at)`,
}
