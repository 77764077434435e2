package store

import (
	"context"
)

// ResetQueue deletes every job, dead ones included. Development helper; the
// queue itself never deletes rows.
func (s *Store) ResetQueue(ctx context.Context) error {
	_, err := s.DB.ExecContext(ctx, `DELETE FROM jobs;`)
	return err
}
