package cli

import (
	"context"
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"queuectl/internal/store"
)

func NewDLQListCmd(st *store.Store) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List jobs in the dead letter queue",
		RunE: func(cmd *cobra.Command, args []string) error {
			jobs, err := st.ListDead(context.Background())
			if err != nil {
				return err
			}

			if len(jobs) == 0 {
				fmt.Println("DLQ is empty.")
				return nil
			}

			for _, j := range jobs {
				fmt.Printf("%s | attempts=%d/%d | died %s | %s\n",
					j.ID, j.Attempts, j.MaxRetries, humanize.Time(j.UpdatedAt), j.Command)
				if j.Error != "" {
					fmt.Printf("    error: %s\n", j.Error)
				}
			}
			return nil
		},
	}
}
