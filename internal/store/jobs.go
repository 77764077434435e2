package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"queuectl/internal/model"
)

// jobColumns is the full column list in Job field order; every job query
// selects exactly this so scanJob can be shared.
const jobColumns = `id, command, state, attempts, max_retries, priority, timeout_seconds,
       created_at, updated_at, run_at, retry_at, output, error`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanJob(row rowScanner) (*model.Job, error) {
	var (
		j                               model.Job
		createdAt, updatedAt, runAt     string
		retryAt, output, executionError sql.NullString
	)
	err := row.Scan(
		&j.ID, &j.Command, &j.State, &j.Attempts, &j.MaxRetries,
		&j.Priority, &j.TimeoutSeconds,
		&createdAt, &updatedAt, &runAt, &retryAt, &output, &executionError,
	)
	if err != nil {
		return nil, err
	}
	j.CreatedAt = parseTime(createdAt)
	j.UpdatedAt = parseTime(updatedAt)
	j.RunAt = parseTime(runAt)
	if retryAt.Valid {
		j.RetryAt = parseTime(retryAt.String)
	}
	j.Output = output.String
	j.Error = executionError.String
	return &j, nil
}

// Create inserts j as a new pending job. MaxRetries and TimeoutSeconds are
// snapshotted at creation (from config / defaults) and RunAt defaults to now,
// so a job's retry budget is fixed for its lifetime. Returns ErrDuplicateID
// when the id is already taken.
func (s *Store) Create(ctx context.Context, j model.Job) error {
	now := time.Now().UTC()

	if j.MaxRetries == 0 {
		j.MaxRetries = s.MustGetInt("max_retries", 3)
	}
	if j.TimeoutSeconds == 0 {
		j.TimeoutSeconds = 60
	}
	if j.RunAt.IsZero() {
		j.RunAt = now
	}

	tx, err := s.DB.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelSerializable})
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	var exists bool
	if err := tx.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM jobs WHERE id=?)`, j.ID).Scan(&exists); err != nil {
		return fmt.Errorf("check duplicate: %w", err)
	}
	if exists {
		return fmt.Errorf("create job %s: %w", j.ID, ErrDuplicateID)
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO jobs (id, command, state, attempts, max_retries, priority,
		                  timeout_seconds, created_at, updated_at, run_at)
		VALUES (?, ?, ?, 0, ?, ?, ?, ?, ?, ?)
	`, j.ID, j.Command, model.StatePending, j.MaxRetries, j.Priority,
		j.TimeoutSeconds, fmtTime(now), fmtTime(now), fmtTime(j.RunAt))
	if err != nil {
		return fmt.Errorf("insert job: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("tx commit: %w", err)
	}
	return nil
}

// ClaimNext atomically picks the single runnable job with the highest
// priority (oldest first on ties) and transitions it to processing. Eligible
// are pending jobs whose run_at has passed and failed jobs whose retry_at
// has passed. Selection and transition are one statement: a separate
// select-then-update would let two workers grab the same row.
// Returns (nil, nil) when nothing is runnable.
func (s *Store) ClaimNext(ctx context.Context, now time.Time) (*model.Job, error) {
	ts := fmtTime(now)

	row := s.DB.QueryRowContext(ctx, `
		UPDATE jobs
		SET state=?, updated_at=?, retry_at=NULL
		WHERE id = (
			SELECT id
			FROM jobs
			WHERE (state=? AND run_at <= ?)
			   OR (state=? AND retry_at <= ?)
			ORDER BY priority DESC, created_at ASC
			LIMIT 1
		)
		RETURNING `+jobColumns,
		model.StateProcessing, ts,
		model.StatePending, ts,
		model.StateFailed, ts,
	)

	j, err := scanJob(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("claim next job: %w", err)
	}
	return j, nil
}

// RecordSuccess transitions a processing job to completed, stores its output
// and bumps the jobs_completed counter in the same transaction. A missing or
// already-terminal job is logged and left untouched; the row may have been
// removed or resolved out of band and that is not fatal.
func (s *Store) RecordSuccess(ctx context.Context, id, output string) error {
	now := time.Now().UTC()

	tx, err := s.DB.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelSerializable})
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, `
		UPDATE jobs SET state=?, output=?, updated_at=?
		WHERE id=? AND state=?
	`, model.StateCompleted, output, fmtTime(now), id, model.StateProcessing)
	if err != nil {
		return fmt.Errorf("record success: %w", err)
	}

	rows, _ := res.RowsAffected()
	if rows == 0 {
		s.log.Warn("success for unknown or non-processing job, ignoring", "job_id", id)
		return nil
	}

	if _, err := tx.ExecContext(ctx,
		`UPDATE metrics SET stat_value = stat_value + 1 WHERE stat_key='jobs_completed'`); err != nil {
		return fmt.Errorf("bump jobs_completed: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("tx commit: %w", err)
	}
	return nil
}

// RecordFailure increments the job's attempt counter and routes it through
// the backoff policy: back to failed with retry_at = now + backoff_base**attempts,
// or to dead once the retry budget is exhausted. jobs_failed is bumped once
// per failure attempt, in the same transaction as the state write. A missing
// job is logged and left untouched.
func (s *Store) RecordFailure(ctx context.Context, id, execError string) error {
	now := time.Now().UTC()

	tx, err := s.DB.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelSerializable})
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	var attempts, maxRetries int
	err = tx.QueryRowContext(ctx,
		`SELECT attempts, max_retries FROM jobs WHERE id=? AND state=?`,
		id, model.StateProcessing).Scan(&attempts, &maxRetries)
	if errors.Is(err, sql.ErrNoRows) {
		s.log.Warn("failure for unknown or non-processing job, ignoring", "job_id", id)
		return nil
	}
	if err != nil {
		return fmt.Errorf("load job for failure: %w", err)
	}

	newAttempts := attempts + 1
	base := s.MustGetInt("backoff_base", 2)
	decision := NextBackoff(newAttempts, maxRetries, base)

	var retryAt any // NULL for dead jobs
	if decision.State == model.StateFailed {
		retryAt = fmtTime(now.Add(decision.Delay))
	}

	_, err = tx.ExecContext(ctx, `
		UPDATE jobs SET state=?, attempts=?, retry_at=?, error=?, updated_at=?
		WHERE id=?
	`, decision.State, newAttempts, retryAt, execError, fmtTime(now), id)
	if err != nil {
		return fmt.Errorf("record failure: %w", err)
	}

	if _, err := tx.ExecContext(ctx,
		`UPDATE metrics SET stat_value = stat_value + 1 WHERE stat_key='jobs_failed'`); err != nil {
		return fmt.Errorf("bump jobs_failed: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("tx commit: %w", err)
	}

	if decision.State == model.StateDead {
		s.log.Info("job exhausted retries, moved to DLQ", "job_id", id, "attempts", newAttempts)
	}
	return nil
}

// GetJob loads a single job by id. Returns sql.ErrNoRows when absent.
func (s *Store) GetJob(ctx context.Context, id string) (*model.Job, error) {
	row := s.DB.QueryRowContext(ctx,
		`SELECT `+jobColumns+` FROM jobs WHERE id=?`, id)
	return scanJob(row)
}
