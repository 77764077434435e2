package main

import (
	"fmt"
	"log/slog"
	"os"

	"queuectl/internal/cli"
	"queuectl/internal/config"
	"queuectl/internal/store"
)

func main() {
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, nil)))

	cfg := config.Load()

	st, err := store.NewStore(cfg.DBPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, "open store:", err)
		os.Exit(1)
	}
	defer st.Close()

	root := cli.NewRootCmd()
	root.AddCommand(
		cli.NewEnqueueCmd(st),
		cli.NewListCmd(st),
		cli.NewStatusCmd(st),
		cli.NewResetCmd(st),
		cli.NewDashboardCmd(st, cfg.DashboardAddr),
	)

	workerCmd := cli.NewWorkerRootCmd()
	workerCmd.AddCommand(cli.NewWorkerStartCmd(st), cli.NewWorkerStopCmd())
	root.AddCommand(workerCmd)

	dlqCmd := cli.NewDLQRootCmd()
	dlqCmd.AddCommand(cli.NewDLQListCmd(st), cli.NewDLQRetryCmd(st))
	root.AddCommand(dlqCmd)

	configCmd := cli.NewConfigRootCmd()
	configCmd.AddCommand(cli.NewConfigGetCmd(st), cli.NewConfigSetCmd(st))
	root.AddCommand(configCmd)

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}
