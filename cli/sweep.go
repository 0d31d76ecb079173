package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"draftkeep/internal/draft"
)

var sweepCmd = &cobra.Command{
	Use:   "sweep",
	Short: "Remove drafts older than the retention window",
	RunE: func(cmd *cobra.Command, args []string) error {
		st, closeStore, err := openStore()
		if err != nil {
			return err
		}
		defer closeStore()

		retention := time.Duration(cfg.RetentionDays) * 24 * time.Hour
		removed := draft.NewSweeper(st, retention).Sweep()
		fmt.Printf("Removed %d expired draft(s).\n", removed)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(sweepCmd)
}
