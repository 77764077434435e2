package store

import (
	"database/sql"
	"fmt"
	"log/slog"

	_ "modernc.org/sqlite"
)

type Store struct {
	DB  *sql.DB
	log *slog.Logger
}

func NewStore(path string) (*Store, error) {
	// WAL so concurrent worker processes can read while one writes,
	// busy_timeout so competing writers queue instead of erroring. Pragmas
	// go in the DSN because they must hold on every pooled connection.
	dsn := fmt.Sprintf("file:%s?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)", path)

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	if err := runMigrations(db); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return &Store{DB: db, log: slog.Default().With("component", "store")}, nil
}

func runMigrations(db *sql.DB) error {
	schema := `
CREATE TABLE IF NOT EXISTS jobs (
  id TEXT PRIMARY KEY,
  command TEXT NOT NULL,
  state TEXT NOT NULL CHECK (state IN ('pending','processing','completed','failed','dead')),
  attempts INTEGER NOT NULL DEFAULT 0,
  max_retries INTEGER NOT NULL DEFAULT 3,
  priority INTEGER NOT NULL DEFAULT 0,
  timeout_seconds INTEGER NOT NULL DEFAULT 60,
  created_at TEXT NOT NULL,
  updated_at TEXT NOT NULL,
  run_at TEXT NOT NULL,
  retry_at TEXT,
  output TEXT,
  error TEXT
);

CREATE INDEX IF NOT EXISTS idx_jobs_state ON jobs (state);

CREATE TABLE IF NOT EXISTS config (
  key TEXT PRIMARY KEY,
  value TEXT NOT NULL
);

INSERT OR IGNORE INTO config(key,value) VALUES ('max_retries','3');
INSERT OR IGNORE INTO config(key,value) VALUES ('backoff_base','2');

CREATE TABLE IF NOT EXISTS metrics (
  stat_key TEXT PRIMARY KEY,
  stat_value INTEGER NOT NULL DEFAULT 0
);

INSERT OR IGNORE INTO metrics(stat_key,stat_value) VALUES ('jobs_completed',0);
INSERT OR IGNORE INTO metrics(stat_key,stat_value) VALUES ('jobs_failed',0);
`
	_, err := db.Exec(schema)
	return err
}

func (s *Store) Close() error {
	return s.DB.Close()
}
