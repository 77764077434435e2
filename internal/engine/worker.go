package engine

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"queuectl/internal/store"
)

// Worker is one polling loop: claim, execute, report, repeat. Multiple
// workers coordinate only through the store's atomic claim; they share no
// other state.
type Worker struct {
	ID           string
	Store        *store.Store
	PollInterval time.Duration

	log *slog.Logger
}

func NewWorker(st *store.Store) *Worker {
	id := uuid.NewString()[:8]
	return &Worker{
		ID:           id,
		Store:        st,
		PollInterval: 5 * time.Second,
		log:          slog.Default().With("worker", id),
	}
}

// Run polls until ctx is canceled or a stop file appears. Shutdown is
// cooperative: it is only observed between iterations, so an in-flight
// command always finishes and its outcome is always recorded.
func (w *Worker) Run(ctx context.Context) {
	w.log.Info("worker starting")
	for {
		select {
		case <-ctx.Done():
			w.log.Info("worker shutting down")
			return
		default:
		}
		if ShouldStop() {
			w.log.Info("stop requested, worker exiting")
			return
		}

		job, err := w.Store.ClaimNext(ctx, time.Now().UTC())
		if err != nil {
			// Transient storage trouble degrades to an idle poll.
			w.log.Error("claim failed", "error", err)
			w.idle(ctx)
			continue
		}
		if job == nil {
			w.idle(ctx)
			continue
		}

		w.log.Info("processing job",
			"job_id", job.ID, "attempts", job.Attempts, "command", job.Command)

		result := ExecuteJob(job.Command, time.Duration(job.TimeoutSeconds)*time.Second)

		// The outcome write must land even if shutdown was signaled while
		// the command ran, hence not ctx.
		if result.Success {
			if err := w.Store.RecordSuccess(context.Background(), job.ID, result.Output); err != nil {
				w.log.Error("record success failed", "job_id", job.ID, "error", err)
			} else {
				w.log.Info("job completed", "job_id", job.ID)
			}
		} else {
			if err := w.Store.RecordFailure(context.Background(), job.ID, result.Error); err != nil {
				w.log.Error("record failure failed", "job_id", job.ID, "error", err)
			} else {
				w.log.Info("job failed", "job_id", job.ID, "error", result.Error)
			}
		}
	}
}

func (w *Worker) idle(ctx context.Context) {
	select {
	case <-ctx.Done():
	case <-time.After(w.PollInterval):
	}
}
