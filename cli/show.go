package cli

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"draftkeep/internal/draft"
)

var showCmd = &cobra.Command{
	Use:   "show <page>",
	Short: "Print a stored draft as JSON",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		page := draft.PageKey(args[0])
		if !page.Valid() {
			return fmt.Errorf("unknown page %q", args[0])
		}

		st, closeStore, err := openStore()
		if err != nil {
			return err
		}
		defer closeStore()

		d, err := st.Get(page.Key())
		if err != nil {
			return fmt.Errorf("no draft for %s: %w", page, err)
		}

		out, err := json.MarshalIndent(d, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(out))
		fmt.Printf("last saved %s\n", time.UnixMilli(d.Timestamp).Format(time.RFC3339))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(showCmd)
}
