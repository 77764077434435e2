package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"queuectl/internal/store"
)

// configKeys maps CLI key spellings to their config table names.
var configKeys = map[string]string{
	"max-retries":  "max_retries",
	"backoff-base": "backoff_base",
}

func NewConfigSetCmd(st *store.Store) *cobra.Command {
	return &cobra.Command{
		Use:   "set <key> <value>",
		Args:  cobra.ExactArgs(2),
		Short: "Set a config value (max-retries, backoff-base)",
		RunE: func(cmd *cobra.Command, args []string) error {
			key, value := args[0], args[1]

			dbKey, ok := configKeys[key]
			if !ok {
				return fmt.Errorf("unknown config key %q, valid keys: max-retries, backoff-base", key)
			}

			n, err := strconv.Atoi(value)
			if err != nil || n <= 0 {
				return fmt.Errorf("%s must be a positive integer", key)
			}

			if err := st.SetConfig(context.Background(), dbKey, strconv.Itoa(n)); err != nil {
				return fmt.Errorf("failed to set config: %w", err)
			}
			fmt.Printf("Config updated: %s = %d\n", key, n)
			return nil
		},
	}
}
