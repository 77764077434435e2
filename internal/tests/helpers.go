package tests

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"queuectl/internal/model"
	"queuectl/internal/store"
)

// newStore creates a fresh database in a temporary file, removed with its
// WAL sidecars when the test ends.
func newStore(t *testing.T) *store.Store {
	t.Helper()

	tmpFile := filepath.Join(t.TempDir(), fmt.Sprintf("test_%d.db", time.Now().UnixNano()))

	st, err := store.NewStore(tmpFile)
	if err != nil {
		t.Fatalf("Failed to create test store: %v", err)
	}

	t.Cleanup(func() {
		st.Close()
		os.Remove(tmpFile + "-shm")
		os.Remove(tmpFile + "-wal")
	})

	return st
}

// createJob enqueues a plain immediately-runnable job through the store API.
func createJob(t *testing.T, st *store.Store, id, command string, maxRetries int) {
	t.Helper()
	err := st.Create(context.Background(), model.Job{
		ID:         id,
		Command:    command,
		MaxRetries: maxRetries,
	})
	if err != nil {
		t.Fatalf("Failed to enqueue job %s: %v", id, err)
	}
}

// insertJobAt writes a pending job row directly so tests can control
// priority and created_at for ordering checks.
func insertJobAt(t *testing.T, st *store.Store, id, command string, priority int, createdAt time.Time) {
	t.Helper()
	ts := createdAt.UTC().Format("2006-01-02T15:04:05.000000000Z07:00")
	_, err := st.DB.ExecContext(context.Background(), `
		INSERT INTO jobs (id, command, state, attempts, max_retries, priority,
		                  timeout_seconds, created_at, updated_at, run_at)
		VALUES (?, ?, 'pending', 0, 3, ?, 60, ?, ?, ?)
	`, id, command, priority, ts, ts, ts)
	if err != nil {
		t.Fatalf("Failed to insert job %s: %v", id, err)
	}
}

// getJob loads a job by id, failing the test when it is absent.
func getJob(t *testing.T, st *store.Store, id string) *model.Job {
	t.Helper()
	j, err := st.GetJob(context.Background(), id)
	if err != nil {
		t.Fatalf("Failed to get job %s: %v", id, err)
	}
	return j
}
