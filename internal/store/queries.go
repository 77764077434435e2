package store

import (
	"context"

	"queuectl/internal/model"
)

// ListJobs returns jobs in creation order, optionally filtered by state.
func (s *Store) ListJobs(ctx context.Context, state string) ([]model.Job, error) {
	q := `SELECT ` + jobColumns + ` FROM jobs`
	args := []any{}

	if state != "" {
		q += ` WHERE state = ?`
		args = append(args, state)
	}
	q += ` ORDER BY created_at ASC`

	rows, err := s.DB.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.Job
	for rows.Next() {
		j, err := scanJob(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *j)
	}
	return result, rows.Err()
}

// StatusSummary returns a job count per state, zero-filled for empty states.
func (s *Store) StatusSummary(ctx context.Context) (map[string]int, error) {
	stats := map[string]int{}
	for _, st := range model.States {
		stats[st] = 0
	}

	rows, err := s.DB.QueryContext(ctx,
		`SELECT state, COUNT(*) FROM jobs GROUP BY state`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var state string
		var count int
		if err := rows.Scan(&state, &count); err != nil {
			return nil, err
		}
		stats[state] = count
	}
	return stats, rows.Err()
}

// Metrics returns the monotonic execution counters
// (jobs_completed, jobs_failed).
func (s *Store) Metrics(ctx context.Context) (map[string]int, error) {
	rows, err := s.DB.QueryContext(ctx, `SELECT stat_key, stat_value FROM metrics`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := map[string]int{}
	for rows.Next() {
		var key string
		var value int
		if err := rows.Scan(&key, &value); err != nil {
			return nil, err
		}
		result[key] = value
	}
	return result, rows.Err()
}
