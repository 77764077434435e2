package tests

import (
	"context"
	"testing"
	"time"

	"queuectl/internal/model"
	"queuectl/internal/store"
)

// kill fails the job on every claim until it lands in the DLQ. Other jobs
// that get claimed along the way are completed to keep them out of the loop.
func kill(t *testing.T, st *store.Store, id string) {
	t.Helper()
	ctx := context.Background()
	for {
		job, err := st.ClaimNext(ctx, time.Now().UTC().Add(time.Hour))
		if err != nil {
			t.Fatalf("Claim failed: %v", err)
		}
		if job == nil {
			t.Fatalf("Job %s never claimed", id)
		}
		if job.ID != id {
			if err := st.RecordSuccess(ctx, job.ID, ""); err != nil {
				t.Fatalf("RecordSuccess failed: %v", err)
			}
			continue
		}
		if err := st.RecordFailure(ctx, job.ID, "induced failure"); err != nil {
			t.Fatalf("RecordFailure failed: %v", err)
		}
		if getJob(t, st, id).State == model.StateDead {
			return
		}
	}
}

func TestRetryDeadResetsJob(t *testing.T) {
	st := newStore(t)
	ctx := context.Background()

	createJob(t, st, "revive-me", "echo ok", 1)
	kill(t, st, "revive-me")

	ok, err := st.RetryDead(ctx, "revive-me")
	if err != nil {
		t.Fatalf("RetryDead failed: %v", err)
	}
	if !ok {
		t.Fatal("Expected RetryDead to succeed on a dead job")
	}

	job := getJob(t, st, "revive-me")
	if job.State != model.StatePending {
		t.Errorf("Expected pending, got %q", job.State)
	}
	if job.Attempts != 0 {
		t.Errorf("Expected attempts reset to 0, got %d", job.Attempts)
	}
	if !job.RetryAt.IsZero() {
		t.Errorf("Expected retry_at cleared, got %v", job.RetryAt)
	}
	if job.Command != "echo ok" {
		t.Errorf("Expected command preserved, got %q", job.Command)
	}
}

func TestRetryDeadJobRunsAgain(t *testing.T) {
	st := newStore(t)
	ctx := context.Background()

	createJob(t, st, "second-chance", "echo hi", 1)
	kill(t, st, "second-chance")

	ok, err := st.RetryDead(ctx, "second-chance")
	if err != nil || !ok {
		t.Fatalf("RetryDead failed: ok=%v err=%v", ok, err)
	}

	job, err := st.ClaimNext(ctx, time.Now().UTC().Add(time.Second))
	if err != nil {
		t.Fatalf("Claim failed: %v", err)
	}
	if job == nil || job.ID != "second-chance" {
		t.Fatalf("Expected revived job claimable, got %+v", job)
	}
	if err := st.RecordSuccess(ctx, job.ID, "hi"); err != nil {
		t.Fatalf("RecordSuccess failed: %v", err)
	}
	if got := getJob(t, st, "second-chance"); got.State != model.StateCompleted {
		t.Errorf("Expected completed, got %q", got.State)
	}
}

func TestRetryDeadOnNonDeadJobReturnsFalse(t *testing.T) {
	st := newStore(t)
	ctx := context.Background()

	createJob(t, st, "alive", "echo hi", 3)

	ok, err := st.RetryDead(ctx, "alive")
	if err != nil {
		t.Fatalf("RetryDead errored: %v", err)
	}
	if ok {
		t.Fatal("Expected false for a pending job")
	}
	if got := getJob(t, st, "alive"); got.State != model.StatePending || got.Attempts != 0 {
		t.Errorf("Expected pending job untouched, got state=%q attempts=%d", got.State, got.Attempts)
	}

	ok, err = st.RetryDead(ctx, "no-such-job")
	if err != nil {
		t.Fatalf("RetryDead errored: %v", err)
	}
	if ok {
		t.Fatal("Expected false for an absent job")
	}
}

func TestListDead(t *testing.T) {
	st := newStore(t)

	createJob(t, st, "doomed", "false", 1)
	createJob(t, st, "fine", "echo hi", 3)
	kill(t, st, "doomed")

	dead, err := st.ListDead(context.Background())
	if err != nil {
		t.Fatalf("ListDead failed: %v", err)
	}
	if len(dead) != 1 {
		t.Fatalf("Expected 1 dead job, got %d", len(dead))
	}
	if dead[0].ID != "doomed" {
		t.Errorf("Expected 'doomed' in DLQ, got %q", dead[0].ID)
	}
}
