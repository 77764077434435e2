package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"queuectl/internal/store"
)

func NewConfigGetCmd(st *store.Store) *cobra.Command {
	return &cobra.Command{
		Use:   "get [key]",
		Args:  cobra.MaximumNArgs(1),
		Short: "Get one config value, or all of them",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			if len(args) == 0 {
				all, err := st.AllConfig(ctx)
				if err != nil {
					return err
				}
				for k, v := range all {
					fmt.Printf("%s = %s\n", k, v)
				}
				return nil
			}

			val, err := st.GetConfig(ctx, args[0])
			if err != nil {
				return err
			}
			if val == "" {
				fmt.Println("(not set)")
			} else {
				fmt.Println(val)
			}
			return nil
		},
	}
}
