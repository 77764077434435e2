package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"queuectl/internal/store"
)

func NewDLQRetryCmd(st *store.Store) *cobra.Command {
	return &cobra.Command{
		Use:   "retry <jobID>",
		Short: "Move a dead job back to pending",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := args[0]
			ok, err := st.RetryDead(context.Background(), id)
			if err != nil {
				return fmt.Errorf("retry failed: %w", err)
			}
			if !ok {
				return fmt.Errorf("could not retry job %q (is it in the DLQ?)", id)
			}
			fmt.Println("Job returned to queue:", id)
			return nil
		},
	}
}
