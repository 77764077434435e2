package cli

import (
	"github.com/spf13/cobra"
)

func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "queuectl",
		Short: "Durable job queue with retries and a dead letter queue",
	}
	return cmd
}
