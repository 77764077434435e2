package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"queuectl/internal/model"
)

// The DLQ is the set of dead rows in the jobs table; nothing is ever moved
// to a side table or deleted, so a dead job keeps its full history.

// ListDead returns the dead letter queue in creation order.
func (s *Store) ListDead(ctx context.Context) ([]model.Job, error) {
	return s.ListJobs(ctx, model.StateDead)
}

// RetryDead moves a dead job back to pending with its attempt counter reset
// and retry_at cleared. Returns false when the job is absent or not dead.
func (s *Store) RetryDead(ctx context.Context, id string) (bool, error) {
	now := time.Now().UTC()

	tx, err := s.DB.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelSerializable})
	if err != nil {
		return false, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, `
		UPDATE jobs
		SET state=?, attempts=0, retry_at=NULL, updated_at=?
		WHERE id=? AND state=?
	`, model.StatePending, fmtTime(now), id, model.StateDead)
	if err != nil {
		return false, fmt.Errorf("retry dead job: %w", err)
	}

	rows, _ := res.RowsAffected()
	if rows == 0 {
		return false, nil
	}
	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("tx commit: %w", err)
	}
	return true, nil
}
