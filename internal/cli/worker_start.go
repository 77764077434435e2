package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"queuectl/internal/engine"
	"queuectl/internal/store"
)

func NewWorkerStartCmd(st *store.Store) *cobra.Command {
	var count int

	cmd := &cobra.Command{
		Use:   "start",
		Short: "Start worker loops",
		RunE: func(cmd *cobra.Command, args []string) error {
			if count < 1 {
				return fmt.Errorf("invalid worker count: %d", count)
			}

			// A stale stop file would make fresh workers exit immediately.
			engine.RemoveStopFile()

			if err := engine.WritePID(os.Getpid()); err != nil {
				return fmt.Errorf("write pid file: %w", err)
			}
			defer engine.RemovePID()

			ctx, cancel := context.WithCancel(context.Background())
			defer cancel()

			g, ctx := errgroup.WithContext(ctx)
			for i := 0; i < count; i++ {
				w := engine.NewWorker(st)
				g.Go(func() error {
					w.Run(ctx)
					return nil
				})
			}

			fmt.Printf("Started %d workers (PID: %d). Stop with Ctrl+C or `queuectl worker stop`.\n",
				count, os.Getpid())

			sigCh := make(chan os.Signal, 1)
			signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
			go func() {
				<-sigCh
				fmt.Println("Stopping workers gracefully...")
				cancel()
			}()

			return g.Wait()
		},
	}

	cmd.Flags().IntVar(&count, "count", 1, "number of workers to start")
	return cmd
}
