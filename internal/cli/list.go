package cli

import (
	"context"
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"queuectl/internal/model"
	"queuectl/internal/store"
)

func NewListCmd(st *store.Store) *cobra.Command {
	var state string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List jobs in the queue",
		RunE: func(cmd *cobra.Command, args []string) error {
			if state != "" && !model.ValidState(state) {
				return fmt.Errorf("unknown state %q, valid states: %v", state, model.States)
			}

			jobs, err := st.ListJobs(context.Background(), state)
			if err != nil {
				return err
			}

			if len(jobs) == 0 {
				fmt.Println("No jobs found.")
				return nil
			}

			for _, j := range jobs {
				fmt.Printf("%s | %-10s | prio=%d | attempts=%d/%d | updated %s | %s\n",
					j.ID, j.State, j.Priority, j.Attempts, j.MaxRetries,
					humanize.Time(j.UpdatedAt), j.Command)
				if j.Output != "" {
					fmt.Printf("    output: %s\n", j.Output)
				}
				if j.Error != "" {
					fmt.Printf("    error:  %s\n", j.Error)
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&state, "state", "", "Filter by job state (pending,processing,completed,failed,dead)")
	return cmd
}
