package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"queuectl/internal/store"
)

func NewResetCmd(st *store.Store) *cobra.Command {
	return &cobra.Command{
		Use:   "reset",
		Short: "Clear all jobs, DLQ included (development only)",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := st.ResetQueue(context.Background()); err != nil {
				return fmt.Errorf("failed to clear jobs: %w", err)
			}
			fmt.Println("Queue cleared.")
			return nil
		},
	}
}
