package tests

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"queuectl/internal/model"
)

func TestClaimPriorityOrder(t *testing.T) {
	st := newStore(t)
	ctx := context.Background()
	now := time.Now().UTC()

	insertJobAt(t, st, "low", "echo low", 1, now)
	insertJobAt(t, st, "high", "echo high", 5, now.Add(time.Millisecond))

	first, err := st.ClaimNext(ctx, now.Add(time.Second))
	if err != nil {
		t.Fatalf("Claim failed: %v", err)
	}
	if first == nil || first.ID != "high" {
		t.Fatalf("Expected 'high' claimed first, got %+v", first)
	}
	if first.State != model.StateProcessing {
		t.Errorf("Expected claimed job processing, got %q", first.State)
	}

	second, err := st.ClaimNext(ctx, now.Add(time.Second))
	if err != nil {
		t.Fatalf("Claim failed: %v", err)
	}
	if second == nil || second.ID != "low" {
		t.Fatalf("Expected 'low' claimed second, got %+v", second)
	}
}

func TestClaimFIFOTieBreak(t *testing.T) {
	st := newStore(t)
	ctx := context.Background()
	now := time.Now().UTC()

	insertJobAt(t, st, "newer", "echo newer", 2, now.Add(time.Second))
	insertJobAt(t, st, "older", "echo older", 2, now)

	job, err := st.ClaimNext(ctx, now.Add(time.Minute))
	if err != nil {
		t.Fatalf("Claim failed: %v", err)
	}
	if job == nil || job.ID != "older" {
		t.Fatalf("Expected oldest job on priority tie, got %+v", job)
	}
}

func TestClaimEmptyQueueReturnsNil(t *testing.T) {
	st := newStore(t)

	job, err := st.ClaimNext(context.Background(), time.Now().UTC())
	if err != nil {
		t.Fatalf("Claim on empty queue errored: %v", err)
	}
	if job != nil {
		t.Fatalf("Expected nil job, got %+v", job)
	}
}

func TestClaimSkipsProcessingJobs(t *testing.T) {
	st := newStore(t)
	ctx := context.Background()
	now := time.Now().UTC()

	createJob(t, st, "only", "echo hi", 3)

	first, err := st.ClaimNext(ctx, now.Add(time.Second))
	if err != nil || first == nil {
		t.Fatalf("Expected first claim to win, got job=%v err=%v", first, err)
	}

	// The claimed job is invisible until its worker reports an outcome.
	second, err := st.ClaimNext(ctx, now.Add(time.Second))
	if err != nil {
		t.Fatalf("Claim failed: %v", err)
	}
	if second != nil {
		t.Fatalf("Expected processing job to be unclaimable, got %+v", second)
	}
}

func TestClaimFailedJobClearsRetryAt(t *testing.T) {
	st := newStore(t)
	ctx := context.Background()
	now := time.Now().UTC()

	createJob(t, st, "retryer", "false", 3)

	job, err := st.ClaimNext(ctx, now.Add(time.Second))
	if err != nil || job == nil {
		t.Fatalf("Claim failed: job=%v err=%v", job, err)
	}
	if err := st.RecordFailure(ctx, "retryer", "boom"); err != nil {
		t.Fatalf("RecordFailure failed: %v", err)
	}

	failed := getJob(t, st, "retryer")
	if failed.State != model.StateFailed {
		t.Fatalf("Expected state failed, got %q", failed.State)
	}
	if failed.RetryAt.IsZero() {
		t.Fatal("Expected retry_at to be set")
	}

	// Not eligible before retry_at, eligible and cleaned after.
	early, err := st.ClaimNext(ctx, failed.RetryAt.Add(-time.Second))
	if err != nil {
		t.Fatalf("Claim failed: %v", err)
	}
	if early != nil {
		t.Fatalf("Expected job gated until retry_at, got %+v", early)
	}

	reclaimed, err := st.ClaimNext(ctx, failed.RetryAt.Add(time.Second))
	if err != nil {
		t.Fatalf("Claim failed: %v", err)
	}
	if reclaimed == nil || reclaimed.ID != "retryer" {
		t.Fatalf("Expected failed job reclaimed after retry_at, got %+v", reclaimed)
	}
	if reclaimed.State != model.StateProcessing {
		t.Errorf("Expected processing, got %q", reclaimed.State)
	}
	if !reclaimed.RetryAt.IsZero() {
		t.Errorf("Expected retry_at cleared on claim, got %v", reclaimed.RetryAt)
	}
}

func TestConcurrentClaimsAreDistinct(t *testing.T) {
	st := newStore(t)
	const jobCount = 24
	const workers = 8

	for i := 0; i < jobCount; i++ {
		createJob(t, st, fmt.Sprintf("job-%02d", i), "echo hi", 3)
	}

	now := time.Now().UTC().Add(time.Second)

	var mu sync.Mutex
	claimed := map[string]int{}

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				job, err := st.ClaimNext(context.Background(), now)
				if err != nil {
					t.Errorf("Claim failed: %v", err)
					return
				}
				if job == nil {
					return
				}
				mu.Lock()
				claimed[job.ID]++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	if len(claimed) != jobCount {
		t.Fatalf("Expected %d distinct jobs claimed, got %d", jobCount, len(claimed))
	}
	for id, n := range claimed {
		if n != 1 {
			t.Errorf("Job %s claimed %d times", id, n)
		}
	}
}
