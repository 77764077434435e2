package model

import "time"

// Job lifecycle states. A job only ever moves forward through these except
// for the failed->processing retry loop and the manual dead->pending reset.
const (
	StatePending    = "pending"
	StateProcessing = "processing"
	StateCompleted  = "completed"
	StateFailed     = "failed"
	StateDead       = "dead"
)

// States lists every job state in display order.
var States = []string{StatePending, StateProcessing, StateCompleted, StateFailed, StateDead}

// ValidState reports whether s names one of the five job states.
func ValidState(s string) bool {
	for _, st := range States {
		if s == st {
			return true
		}
	}
	return false
}

type Job struct {
	ID             string
	Command        string
	State          string
	Attempts       int
	MaxRetries     int
	Priority       int
	TimeoutSeconds int
	CreatedAt      time.Time
	UpdatedAt      time.Time
	// RunAt gates a pending job; RetryAt gates a failed one. At most one of
	// the two is relevant at any point in the lifecycle.
	RunAt   time.Time
	RetryAt time.Time
	Output  string
	Error   string
}

// JobResult is what a single execution attempt produced.
type JobResult struct {
	Success bool
	Output  string
	Error   string
}
