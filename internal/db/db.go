package db

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

// MemoryPath opens a private in-memory database.
const MemoryPath = ":memory:"

// OpenDB opens the SQLite dataset store at path, creating parent
// directories as needed, and applies migrations. File databases run in WAL
// mode so the loader can read tables in parallel. An in-memory database is
// pinned to one connection because each connection would otherwise see its
// own empty database.
func OpenDB(path string) (*sql.DB, error) {
	if path != MemoryPath {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("creating db directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	if path == MemoryPath {
		db.SetMaxOpenConns(1)
	}

	pragmas := []struct{ stmt, desc string }{
		{"PRAGMA journal_mode = WAL", "setting WAL mode"},
		{"PRAGMA foreign_keys = ON", "enabling foreign keys"},
		{"PRAGMA busy_timeout = 5000", "setting busy timeout"},
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p.stmt); err != nil {
			db.Close()
			return nil, fmt.Errorf("%s: %w", p.desc, err)
		}
	}

	if err := Migrate(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}
	return db, nil
}

// Exists reports whether a database file is present at path.
func Exists(path string) bool {
	if path == MemoryPath {
		return false
	}
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
