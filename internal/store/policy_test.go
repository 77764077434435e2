package store

import (
	"testing"
	"time"

	"queuectl/internal/model"
)

func TestNextBackoff(t *testing.T) {
	tests := []struct {
		name        string
		newAttempts int
		maxRetries  int
		base        int
		wantState   string
		wantDelay   time.Duration
	}{
		{"first failure", 1, 3, 2, model.StateFailed, 2 * time.Second},
		{"second failure", 2, 3, 2, model.StateFailed, 4 * time.Second},
		{"exhausted", 3, 3, 2, model.StateDead, 0},
		{"past exhausted", 5, 3, 2, model.StateDead, 0},
		{"single retry budget", 1, 1, 2, model.StateDead, 0},
		{"base three", 2, 5, 3, model.StateFailed, 9 * time.Second},
		{"uncapped growth", 6, 10, 2, model.StateFailed, 64 * time.Second},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NextBackoff(tt.newAttempts, tt.maxRetries, tt.base)
			if got.State != tt.wantState {
				t.Errorf("state = %q, want %q", got.State, tt.wantState)
			}
			if got.Delay != tt.wantDelay {
				t.Errorf("delay = %v, want %v", got.Delay, tt.wantDelay)
			}
		})
	}
}
