package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"queuectl/internal/dashboard"
	"queuectl/internal/store"
)

func NewDashboardCmd(st *store.Store, defaultAddr string) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "dashboard",
		Short: "Serve a read-only web dashboard for the queue",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Printf("Dashboard on http://localhost%s\n", addr)
			return dashboard.NewServer(st).ListenAndServe(addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", defaultAddr, "listen address")
	return cmd
}
