package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"queuectl/internal/model"
	"queuectl/internal/store"
)

func NewStatusCmd(st *store.Store) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show queue status summary and execution metrics",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			stats, err := st.StatusSummary(ctx)
			if err != nil {
				return err
			}
			fmt.Println("Queue Status:")
			for _, state := range model.States {
				fmt.Printf("  %-10s %d\n", state, stats[state])
			}

			metrics, err := st.Metrics(ctx)
			if err != nil {
				return err
			}
			fmt.Println("Execution Metrics:")
			fmt.Printf("  jobs completed: %d\n", metrics["jobs_completed"])
			fmt.Printf("  jobs failed:    %d\n", metrics["jobs_failed"])
			return nil
		},
	}
}
