package cli

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"draftkeep/internal/draft"
)

var clearYes bool

var clearCmd = &cobra.Command{
	Use:   "clear <page>",
	Short: "Delete the stored draft for a page",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		page := draft.PageKey(args[0])
		if !page.Valid() {
			return fmt.Errorf("unknown page %q", args[0])
		}

		if !clearYes && !(stdinConfirmer{}).Confirm(fmt.Sprintf("Delete the draft for %s?", page)) {
			fmt.Println("Aborted.")
			return nil
		}

		st, closeStore, err := openStore()
		if err != nil {
			return err
		}
		defer closeStore()

		if err := st.Remove(page.Key()); err != nil {
			return err
		}
		fmt.Printf("Cleared draft for %s.\n", page)
		return nil
	},
}

// stdinConfirmer satisfies draft.Confirmer for interactive use.
type stdinConfirmer struct{}

func (stdinConfirmer) Confirm(prompt string) bool {
	fmt.Printf("%s [y/N]: ", prompt)
	reader := bufio.NewReader(os.Stdin)
	line, err := reader.ReadString('\n')
	if err != nil {
		return false
	}
	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes"
}

var _ draft.Confirmer = stdinConfirmer{}

func init() {
	clearCmd.Flags().BoolVar(&clearYes, "yes", false, "skip the confirmation prompt")
	rootCmd.AddCommand(clearCmd)
}
