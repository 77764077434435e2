package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"queuectl/internal/model"
	"queuectl/internal/store"
)

type enqueuePayload struct {
	ID         string `json:"id"`
	Command    string `json:"command"`
	RunAt      string `json:"run_at"`
	Priority   int    `json:"priority"`
	Timeout    *int   `json:"timeout"`
	MaxRetries int    `json:"max_retries"`
}

func NewEnqueueCmd(st *store.Store) *cobra.Command {
	cmd := &cobra.Command{
		Use:   `enqueue '{"id":"job1","command":"sleep 2","priority":5}'`,
		Short: "Add a job to the queue",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var p enqueuePayload
			if err := json.Unmarshal([]byte(args[0]), &p); err != nil {
				return fmt.Errorf("invalid job json: %w", err)
			}

			if p.ID == "" || p.Command == "" {
				return fmt.Errorf("job payload must include 'id' and 'command'")
			}

			j := model.Job{
				ID:         p.ID,
				Command:    p.Command,
				Priority:   p.Priority,
				MaxRetries: p.MaxRetries,
			}

			if p.RunAt != "" {
				runAt, err := time.Parse(time.RFC3339, p.RunAt)
				if err != nil {
					return fmt.Errorf("invalid 'run_at', must be ISO 8601: %w", err)
				}
				j.RunAt = runAt
				fmt.Printf("Job %q will be scheduled for %s\n", p.ID, p.RunAt)
			}

			if p.Timeout != nil {
				if *p.Timeout <= 0 {
					return fmt.Errorf("'timeout' must be a positive integer")
				}
				j.TimeoutSeconds = *p.Timeout
			}

			if err := st.Create(context.Background(), j); err != nil {
				if errors.Is(err, store.ErrDuplicateID) {
					return fmt.Errorf("job with id %q already exists", p.ID)
				}
				return err
			}

			fmt.Println("Job enqueued:", j.ID)
			return nil
		},
	}
	return cmd
}
