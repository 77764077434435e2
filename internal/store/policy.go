package store

import (
	"math"
	"time"

	"queuectl/internal/model"
)

// BackoffDecision is the outcome of the retry policy for one recorded
// failure: either the job goes back to failed with a delay, or it is dead.
type BackoffDecision struct {
	State string
	Delay time.Duration
}

// NextBackoff decides dead-vs-failed for a job whose attempt counter has
// just been incremented to newAttempts. The comparison uses the job's own
// max_retries snapshot, so later config changes never affect existing jobs.
// Delay is base**newAttempts seconds, exponential with no jitter and no cap.
func NextBackoff(newAttempts, maxRetries, base int) BackoffDecision {
	if newAttempts >= maxRetries {
		return BackoffDecision{State: model.StateDead}
	}
	delay := time.Duration(math.Pow(float64(base), float64(newAttempts))) * time.Second
	return BackoffDecision{State: model.StateFailed, Delay: delay}
}
